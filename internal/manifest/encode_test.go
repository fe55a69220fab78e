package manifest

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEncodeMultiDocument(t *testing.T) {
	set := composeWith(t, nil)

	data, err := set.Encode()
	require.NoError(t, err)
	text := string(data)

	// One document per object across the four default groups.
	assert.Equal(t, len(set.Objects()), strings.Count(text, "---\n"))
	assert.Contains(t, text, "kind: Deployment")
	assert.Contains(t, text, "kind: Service")
	assert.Contains(t, text, "name: demo-gateway")
	assert.Contains(t, text, "name: demo-postgres")
}

func TestEncodeOmitsAbsentBlocks(t *testing.T) {
	set := composeWith(t, nil)

	console := findGroup(t, set, ComponentConsole)
	data, err := EncodeGroup(*console)
	require.NoError(t, err)

	// No probe configuration means no probe keys in the output, absent
	// rather than null or empty.
	text := string(data)
	assert.NotContains(t, text, "readinessProbe")
	assert.NotContains(t, text, "livenessProbe")
	assert.NotContains(t, text, "startupProbe")
	assert.NotContains(t, text, "ingressClassName")
}

func TestEncodeGatewayProbes(t *testing.T) {
	set := composeWith(t, nil)

	gateway := findGroup(t, set, ComponentGateway)
	data, err := EncodeGroup(*gateway)
	require.NoError(t, err)

	text := string(data)
	assert.Contains(t, text, "readinessProbe")
	assert.Contains(t, text, "livenessProbe")
	assert.NotContains(t, text, "startupProbe")
}
