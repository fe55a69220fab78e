package cmd

import (
	"fmt"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/davit-sh/davit/internal/fileutil"
	"github.com/davit-sh/davit/internal/manifest"
	"github.com/davit-sh/davit/internal/ui"
	"github.com/davit-sh/davit/internal/values"
)

var (
	renderValues    []string
	renderRelease   string
	renderNamespace string
	renderOutput    string
	renderDryRun    bool
)

// renderCmd represents the render command.
var renderCmd = &cobra.Command{
	Use:   "render",
	Short: "Render the manifest set for a release",
	Long: `Render the Kubernetes manifests for a release of the gateway stack.

The chart defaults are merged with your values overlays (later files win),
every container environment is linked into substitution order, and the
result is printed as a multi-document YAML stream or written one file per
component with --output.

Examples:
  # Render to stdout with defaults only
  davit render --release demo --namespace ns1

  # Layer a production overlay on top of the base values
  davit render --release demo -f base.yaml -f prod.yaml

  # Write gateway.yaml, console.yaml, ... into ./out
  davit render --release demo -o out`,
	Run: runRender,
}

func init() {
	renderCmd.Flags().StringSliceVarP(&renderValues, "values", "f", nil, "values overlay file (repeatable, later files win)")
	renderCmd.Flags().StringVar(&renderRelease, "release", "", "release name (required)")
	renderCmd.Flags().StringVar(&renderNamespace, "namespace", "default", "target namespace")
	renderCmd.Flags().StringVarP(&renderOutput, "output", "o", "", "output directory (prints to stdout if not set)")
	renderCmd.Flags().BoolVarP(&renderDryRun, "dry-run", "n", false, "print manifests to stdout without writing files")
	renderCmd.MarkFlagRequired("release")

	rootCmd.AddCommand(renderCmd)
}

func runRender(cmd *cobra.Command, args []string) {
	set, err := renderSet(renderValues, renderRelease, renderNamespace)
	if err != nil {
		ui.Fatal("%v", err)
	}

	if renderOutput == "" || renderDryRun {
		data, err := set.Encode()
		if err != nil {
			ui.Fatal("%v", err)
		}
		fmt.Print(string(data))
		return
	}

	ui.Info("Rendering %d component group(s) to %s", len(set.Groups), renderOutput)
	warnSkippedComponents(set)
	for _, group := range set.Groups {
		data, err := manifest.EncodeGroup(group)
		if err != nil {
			ui.Fatal("%v", err)
		}
		path := filepath.Join(renderOutput, group.Component+".yaml")
		if err := fileutil.WriteFileAtomic(path, data, 0644); err != nil {
			ui.Fatal("write %s: %v", path, err)
		}
		ui.Success("Wrote %s", path)
	}
}

// warnSkippedComponents notes components suppressed by an external host override.
func warnSkippedComponents(set *manifest.Set) {
	rendered := make(map[string]bool, len(set.Groups))
	for _, group := range set.Groups {
		rendered[group.Component] = true
	}
	for _, component := range manifest.Components {
		if !rendered[component] {
			ui.Warning("%s: external instance configured, skipping", component)
		}
	}
}

// renderSet resolves the overlays and composes the manifest set. Shared by
// render and notes so both commands resolve configuration identically.
func renderSet(valueFiles []string, release, namespace string) (*manifest.Set, error) {
	rel, res, err := resolveRelease(valueFiles, release, namespace)
	if err != nil {
		return nil, err
	}
	return manifest.Compose(rel, res)
}

// resolveRelease builds the release context and resolver from CLI inputs.
func resolveRelease(valueFiles []string, release, namespace string) (values.Release, *values.Resolver, error) {
	overlay, err := values.LoadOverlays(valueFiles)
	if err != nil {
		return values.Release{}, nil, err
	}

	res, err := values.NewResolver(values.Defaults(), overlay)
	if err != nil {
		return values.Release{}, nil, err
	}

	rel := values.Release{
		Name:         release,
		Namespace:    namespace,
		ChartName:    chartName,
		ChartVersion: version,
	}
	return rel, res, nil
}
