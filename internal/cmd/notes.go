package cmd

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/davit-sh/davit/internal/notes"
	"github.com/davit-sh/davit/internal/secrets"
	"github.com/davit-sh/davit/internal/ui"
)

var (
	notesValues      []string
	notesRelease     string
	notesNamespace   string
	notesShowSecrets bool
	notesKubeconfig  string
)

// notesCmd represents the notes command.
var notesCmd = &cobra.Command{
	Use:   "notes",
	Short: "Render the post-install summary for a release",
	Long: `Render the post-install summary: endpoints, credentials, and a
ready-to-run quick-start sequence.

Secret values are redacted by default; every redacted line carries the
kubectl command to fetch the value out-of-band. Pass --show-secrets to
look the values up live and print them in-line. A secret that does not
exist yet degrades to a placeholder, it never fails the summary.

Examples:
  # Safe summary, nothing fetched from the cluster
  davit notes --release demo --namespace ns1

  # Disclose live credentials (explicit opt-in)
  davit notes --release demo --namespace ns1 --show-secrets`,
	Run: runNotes,
}

func init() {
	notesCmd.Flags().StringSliceVarP(&notesValues, "values", "f", nil, "values overlay file (repeatable, later files win)")
	notesCmd.Flags().StringVar(&notesRelease, "release", "", "release name (required)")
	notesCmd.Flags().StringVar(&notesNamespace, "namespace", "default", "target namespace")
	notesCmd.Flags().BoolVar(&notesShowSecrets, "show-secrets", false, "disclose live secret values in the summary")
	notesCmd.Flags().StringVar(&notesKubeconfig, "kubeconfig", "", "kubeconfig file for secret lookups (defaults to standard loading rules)")
	notesCmd.MarkFlagRequired("release")

	rootCmd.AddCommand(notesCmd)
}

func runNotes(cmd *cobra.Command, args []string) {
	rel, res, err := resolveRelease(notesValues, notesRelease, notesNamespace)
	if err != nil {
		ui.Fatal("%v", err)
	}

	opts := notes.Options{ShowSecrets: notesShowSecrets}
	if notesShowSecrets {
		store, err := secrets.NewKubeStoreFromKubeconfig(notesKubeconfig)
		if err != nil {
			ui.Fatal("%v", err)
		}
		opts.Store = store
	}

	doc, err := notes.Render(context.Background(), rel, res, opts)
	if err != nil {
		ui.Fatal("%v", err)
	}

	for i, section := range doc.Sections {
		if i > 0 {
			ui.Plain("")
		}
		ui.SectionTitle("== %s ==", section.Title)
		for _, line := range section.Lines {
			ui.Plain("  %s", line)
		}
	}
}
