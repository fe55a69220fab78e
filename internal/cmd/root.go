// Package cmd provides the CLI commands for davit.
package cmd

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/davit-sh/davit/internal/ui"
)

const version = "1.8.2"

// chartName labels every rendered resource and scopes derived names.
const chartName = "davit"

// rootCmd represents the base command when called without any subcommands.
var rootCmd = &cobra.Command{
	Use:   "davit",
	Short: "Render deployment manifests and notes for the gateway stack",
	Long: `davit - manifest renderer for the gateway stack

Resolves layered configuration (chart defaults plus your values files),
links container environments into a substitution-safe order, and emits
Kubernetes manifests plus a post-install summary.

RENDER
  render                Render the manifest set for a release
    --values, -f <file> Values overlay (repeatable, later files win)
    --release <name>    Release name (required)
    --namespace <ns>    Target namespace
    --output, -o <dir>  Write one file per component instead of stdout

SUMMARY
  notes                 Render the post-install summary
    --show-secrets      Disclose live secret values (reads the cluster)
    --kubeconfig <file> Kubeconfig for secret lookups`,
	Version: version,
	Run: func(cmd *cobra.Command, args []string) {
		cmd.Help()
	},
}

// ahoyCmd is the hidden easter egg command.
var ahoyCmd = &cobra.Command{
	Use:    "ahoy",
	Hidden: true,
	Short:  "Deck check",
	Run: func(cmd *cobra.Command, args []string) {
		ui.Blue.Println("⚓ All lines coiled, davits swung out. Ready to lower away.")
	},
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func init() {
	rootCmd.AddCommand(ahoyCmd)
	rootCmd.SetVersionTemplate("davit version {{.Version}}\n")
}
