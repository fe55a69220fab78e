package notes

import (
	"context"
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/davit-sh/davit/internal/secrets"
	"github.com/davit-sh/davit/internal/values"
)

// countingStore is a Store stub that records lookups per secret name.
type countingStore struct {
	data  map[string]map[string]string
	calls map[string]int
}

func newCountingStore(data map[string]map[string]string) *countingStore {
	return &countingStore{data: data, calls: make(map[string]int)}
}

func (s *countingStore) Get(_ context.Context, namespace, name string) (map[string]string, error) {
	s.calls[name]++
	if d, ok := s.data[name]; ok {
		return d, nil
	}
	return nil, fmt.Errorf("%s/%s: %w", namespace, name, secrets.ErrSecretNotFound)
}

func testRelease() values.Release {
	return values.Release{Name: "demo", Namespace: "ns1", ChartName: "davit", ChartVersion: "1.8.2"}
}

func testResolver(t *testing.T, overlay map[string]any) *values.Resolver {
	t.Helper()
	res, err := values.NewResolver(values.Defaults(), overlay)
	require.NoError(t, err)
	return res
}

func testSecrets() map[string]map[string]string {
	return map[string]map[string]string{
		"demo-gateway-auth": {
			"admin-user":     "admin",
			"admin-password": "hunter2",
		},
		"demo-gateway-signing-key": {
			"signing-key": "sk-live-abc123",
		},
		"demo-postgres-secret": {
			"username": "app",
			"password": "pg-pass",
		},
	}
}

func TestRenderRedactedNeverTouchesStoreOrDisclosesValues(t *testing.T) {
	store := newCountingStore(testSecrets())

	doc, err := Render(context.Background(), testRelease(), testResolver(t, nil), Options{
		ShowSecrets: false,
		Store:       store,
	})
	require.NoError(t, err)

	assert.True(t, doc.Redacted)
	assert.Empty(t, store.calls, "redacted render must not fetch any secret")

	text := doc.String()
	for _, secretValue := range []string{"hunter2", "pg-pass", "sk-live-abc123"} {
		assert.NotContains(t, text, secretValue)
	}
	assert.Contains(t, text, Hidden)
	assert.Contains(t, text, "kubectl get secret demo-gateway-auth -n ns1")
	assert.Contains(t, text, "base64 -d")
}

func TestRenderDisclosureEmbedsValues(t *testing.T) {
	store := newCountingStore(testSecrets())

	doc, err := Render(context.Background(), testRelease(), testResolver(t, nil), Options{
		ShowSecrets: true,
		Store:       store,
	})
	require.NoError(t, err)

	assert.False(t, doc.Redacted)

	text := doc.String()
	assert.Contains(t, text, "Admin password: hunter2")
	assert.Contains(t, text, "Password: pg-pass")
	assert.Contains(t, text, "Signing key: sk-live-abc123")
}

func TestRenderDisclosureSingleAttemptPerSecret(t *testing.T) {
	store := newCountingStore(testSecrets())

	_, err := Render(context.Background(), testRelease(), testResolver(t, nil), Options{
		ShowSecrets: true,
		Store:       store,
	})
	require.NoError(t, err)

	// The gateway auth secret backs both the admin user and admin
	// password lines but is fetched exactly once.
	for name, count := range store.calls {
		assert.Equal(t, 1, count, "secret %s fetched more than once", name)
	}
}

func TestRenderDisclosureMissingSecrets(t *testing.T) {
	store := newCountingStore(nil) // nothing exists yet

	doc, err := Render(context.Background(), testRelease(), testResolver(t, nil), Options{
		ShowSecrets: true,
		Store:       store,
	})
	require.NoError(t, err, "missing secrets must not fail the summary")

	text := doc.String()
	assert.Contains(t, text, "Admin password: "+NotYetCreated)
	assert.Contains(t, text, "Password: "+NotYetCreated)

	// The signing key keeps the hidden placeholder even when its secret
	// is missing; it never reports not-yet-created.
	assert.Contains(t, text, "Signing key: "+Hidden)
	assert.NotContains(t, text, "Signing key: "+NotYetCreated)
}

func TestRenderSectionOrder(t *testing.T) {
	doc, err := Render(context.Background(), testRelease(), testResolver(t, nil), Options{})
	require.NoError(t, err)

	titles := make([]string, len(doc.Sections))
	for i, s := range doc.Sections {
		titles[i] = s.Title
	}
	assert.Equal(t, []string{"Gateway", "Token signing", "Console", "PostgreSQL", "Redis", "Quick start"}, titles)
}

func TestRenderQuickstartUsesResolvedValues(t *testing.T) {
	overlay := map[string]any{
		"gateway": map[string]any{"port": 9443},
	}

	doc, err := Render(context.Background(), testRelease(), testResolver(t, overlay), Options{})
	require.NoError(t, err)

	quickstart := doc.Sections[len(doc.Sections)-1]
	text := strings.Join(quickstart.Lines, "\n")
	assert.Contains(t, text, "port-forward svc/demo-gateway 9443:9443")
	assert.Contains(t, text, "http://localhost:9443/v1/auth/token")
	assert.Contains(t, text, "kubectl get secret demo-gateway-auth -n ns1")
}

func TestRenderIngressEndpointWhenEnabled(t *testing.T) {
	overlay := map[string]any{
		"gateway": map[string]any{
			"ingress": map[string]any{"enabled": true, "host": "gw.example.com"},
		},
	}

	doc, err := Render(context.Background(), testRelease(), testResolver(t, overlay), Options{})
	require.NoError(t, err)
	assert.Contains(t, doc.String(), "External: http://gw.example.com/")
}

func TestRenderIdempotent(t *testing.T) {
	res := testResolver(t, nil)

	first, err := Render(context.Background(), testRelease(), res, Options{})
	require.NoError(t, err)
	second, err := Render(context.Background(), testRelease(), res, Options{})
	require.NoError(t, err)

	assert.Equal(t, first, second)
	assert.Equal(t, first.String(), second.String())
}
