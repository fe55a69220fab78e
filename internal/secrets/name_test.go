package secrets

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/davit-sh/davit/internal/values"
)

func TestName(t *testing.T) {
	rel := values.Release{Name: "demo", Namespace: "ns1"}

	tests := []struct {
		name     string
		override string
		want     string
	}{
		{
			name:     "default is release scoped",
			override: "",
			want:     "demo-postgres-secret",
		},
		{
			name:     "override wins verbatim",
			override: "custom-secret",
			want:     "custom-secret",
		},
		{
			name:     "override trimmed of surrounding whitespace",
			override: "  custom-secret  ",
			want:     "custom-secret",
		},
		{
			name:     "whitespace only override falls back to default",
			override: "   ",
			want:     "demo-postgres-secret",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Name(rel, "postgres", "secret", tt.override))
		})
	}
}

func TestNameIsIdempotent(t *testing.T) {
	rel := values.Release{Name: "demo"}
	first := Name(rel, "gateway", "auth", "")
	second := Name(rel, "gateway", "auth", "")
	assert.Equal(t, first, second)
	assert.Equal(t, "demo-gateway-auth", first)
}
