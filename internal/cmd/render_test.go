package cmd

import (
	"bytes"
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/fatih/color"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/davit-sh/davit/internal/manifest"
	"github.com/davit-sh/davit/internal/values"
)

// captureRenderOutput runs runRender with the given flag state and
// returns everything it printed, restoring globals afterwards.
func captureRenderOutput(t *testing.T, valueFiles []string, output string, dryRun bool) string {
	t.Helper()

	oldValues, oldRelease, oldNamespace := renderValues, renderRelease, renderNamespace
	oldOutput, oldDryRun := renderOutput, renderDryRun
	oldNoColor, oldColorOut, oldStdout := color.NoColor, color.Output, os.Stdout
	t.Cleanup(func() {
		renderValues, renderRelease, renderNamespace = oldValues, oldRelease, oldNamespace
		renderOutput, renderDryRun = oldOutput, oldDryRun
		color.NoColor, color.Output, os.Stdout = oldNoColor, oldColorOut, oldStdout
	})

	renderValues = valueFiles
	renderRelease = "demo"
	renderNamespace = "ns1"
	renderOutput = output
	renderDryRun = dryRun

	color.NoColor = true
	r, w, err := os.Pipe()
	require.NoError(t, err)
	color.Output = w
	os.Stdout = w

	runRender(renderCmd, nil)

	w.Close()
	os.Stdout = oldStdout
	var buf bytes.Buffer
	io.Copy(&buf, r)
	return buf.String()
}

func TestRenderSetWithOverlay(t *testing.T) {
	dir := t.TempDir()
	valuesFile := filepath.Join(dir, "values.yaml")
	require.NoError(t, os.WriteFile(valuesFile, []byte(`
gateway:
  replicas: 4
postgres:
  database: app
`), 0644))

	set, err := renderSet([]string{valuesFile}, "demo", "ns1")
	require.NoError(t, err)
	assert.Len(t, set.Groups, 4)

	data, err := set.Encode()
	require.NoError(t, err)
	text := string(data)
	assert.Contains(t, text, "replicas: 4")
	assert.Contains(t, text, "name: demo-gateway")
	assert.Contains(t, text, "namespace: ns1")
}

func TestRenderSetUnknownSection(t *testing.T) {
	dir := t.TempDir()
	valuesFile := filepath.Join(dir, "values.yaml")
	require.NoError(t, os.WriteFile(valuesFile, []byte("gatway:\n  port: 1\n"), 0644))

	_, err := renderSet([]string{valuesFile}, "demo", "ns1")
	var cfgErr *values.ConfigError
	require.ErrorAs(t, err, &cfgErr)
	assert.Equal(t, "gatway", cfgErr.Path)
}

func TestRenderSetLaterOverlayWins(t *testing.T) {
	dir := t.TempDir()
	base := filepath.Join(dir, "base.yaml")
	prod := filepath.Join(dir, "prod.yaml")
	require.NoError(t, os.WriteFile(base, []byte("gateway:\n  replicas: 2\n"), 0644))
	require.NoError(t, os.WriteFile(prod, []byte("gateway:\n  replicas: 8\n"), 0644))

	set, err := renderSet([]string{base, prod}, "demo", "ns1")
	require.NoError(t, err)

	group := set.Groups[0]
	require.Equal(t, manifest.ComponentGateway, group.Component)
	data, err := manifest.EncodeGroup(group)
	require.NoError(t, err)
	assert.Contains(t, string(data), "replicas: 8")
}

func TestRenderDryRunForcesStdout(t *testing.T) {
	flag := renderCmd.Flags().Lookup("dry-run")
	require.NotNil(t, flag)
	assert.Equal(t, "n", flag.Shorthand)

	outDir := t.TempDir()

	out := captureRenderOutput(t, nil, outDir, true)

	assert.Contains(t, out, "kind: Deployment")
	assert.Contains(t, out, "name: demo-gateway")

	entries, err := os.ReadDir(outDir)
	require.NoError(t, err)
	assert.Empty(t, entries, "dry run must not write output files")
}

func TestRenderWritesComponentFiles(t *testing.T) {
	outDir := t.TempDir()

	out := captureRenderOutput(t, nil, outDir, false)

	assert.Contains(t, out, "Rendering 4 component group(s)")
	for _, component := range manifest.Components {
		path := filepath.Join(outDir, component+".yaml")
		data, err := os.ReadFile(path)
		require.NoError(t, err)
		assert.Contains(t, string(data), "kind: Deployment")
	}
}

func TestRenderWarnsOnExternalDatastore(t *testing.T) {
	dir := t.TempDir()
	valuesFile := filepath.Join(dir, "values.yaml")
	require.NoError(t, os.WriteFile(valuesFile, []byte("postgres:\n  host: db.prod.internal\n"), 0644))

	out := captureRenderOutput(t, []string{valuesFile}, t.TempDir(), false)

	assert.Contains(t, out, "postgres: external instance configured, skipping")
	assert.NotContains(t, out, "redis: external instance configured")
}

func TestResolveReleaseContext(t *testing.T) {
	rel, res, err := resolveRelease(nil, "demo", "ns1")
	require.NoError(t, err)
	require.NotNil(t, res)

	assert.Equal(t, "demo", rel.Name)
	assert.Equal(t, "ns1", rel.Namespace)
	assert.Equal(t, chartName, rel.ChartName)
	assert.Equal(t, version, rel.ChartVersion)
}
