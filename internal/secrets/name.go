// Package secrets derives secret resource names and reads live secret
// material from the cluster.
package secrets

import (
	"strings"

	"github.com/davit-sh/davit/internal/values"
)

// Name returns the secret name for a component. Precedence:
//
//  1. a non-empty user override, trimmed of surrounding whitespace
//  2. the release-scoped default, "<release>-<component>-<suffix>"
//
// Pure and deterministic; the same inputs always yield the same name, so
// every manifest and the summary agree on the identity without sharing
// state.
func Name(rel values.Release, component, suffix, override string) string {
	if trimmed := strings.TrimSpace(override); trimmed != "" {
		return trimmed
	}
	return rel.ResourceName(component, suffix)
}
