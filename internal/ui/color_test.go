package ui

import (
	"bytes"
	"io"
	"os"
	"testing"

	"github.com/fatih/color"
	"github.com/stretchr/testify/assert"
)

// captureColorOutput runs fn with color disabled and both the color
// library's writer and stdout redirected to a pipe, returning what
// was printed.
func captureColorOutput(t *testing.T, fn func()) string {
	t.Helper()

	oldNoColor := color.NoColor
	oldOutput := color.Output
	oldStdout := os.Stdout
	defer func() {
		color.NoColor = oldNoColor
		color.Output = oldOutput
		os.Stdout = oldStdout
	}()

	color.NoColor = true
	r, w, err := os.Pipe()
	if err != nil {
		t.Fatalf("pipe: %v", err)
	}
	color.Output = w
	os.Stdout = w

	fn()

	w.Close()
	var buf bytes.Buffer
	io.Copy(&buf, r)
	return buf.String()
}

func TestSuccess(t *testing.T) {
	out := captureColorOutput(t, func() {
		Success("wrote %s", "gateway.yaml")
	})
	assert.Contains(t, out, "wrote gateway.yaml")
	assert.Contains(t, out, "✓")
	assert.Contains(t, out, "\n")
}

func TestWarning(t *testing.T) {
	out := captureColorOutput(t, func() {
		Warning("%s: external instance configured, skipping", "postgres")
	})
	assert.Contains(t, out, "postgres: external instance configured, skipping")
	assert.Contains(t, out, "⚠")
}

func TestInfo(t *testing.T) {
	out := captureColorOutput(t, func() {
		Info("Rendering %d component group(s)", 4)
	})
	assert.Contains(t, out, "Rendering 4 component group(s)")
}

func TestSectionTitle(t *testing.T) {
	out := captureColorOutput(t, func() {
		SectionTitle("== %s ==", "Gateway")
	})
	assert.Contains(t, out, "== Gateway ==")
}

func TestPlain(t *testing.T) {
	out := captureColorOutput(t, func() {
		Plain("username: %s", "admin")
	})
	assert.Contains(t, out, "username: admin")
}

func TestColorVarsInitialized(t *testing.T) {
	for _, c := range []*color.Color{Red, Green, Yellow, Blue, Cyan} {
		assert.NotNil(t, c)
	}
}
