package values

import "strings"

// Release identifies one named deployment instance of the chart. It is
// created once per render invocation and never mutated.
type Release struct {
	// Name is the release name, e.g. "demo".
	Name string

	// Namespace is the target namespace for every rendered resource.
	Namespace string

	// ChartName identifies the chart this release was rendered from.
	ChartName string

	// ChartVersion is the chart version recorded in resource labels.
	ChartVersion string
}

// ResourceName derives the release-scoped name for a component:
// "<release>-<component>[-<suffix>...]". It is a pure function of its
// inputs, so every caller computes the identical name for the same
// component without coordination.
func (r Release) ResourceName(component string, suffix ...string) string {
	parts := append([]string{r.Name, component}, suffix...)
	return strings.Join(parts, "-")
}
