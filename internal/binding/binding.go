// Package binding builds ordered environment-binding lists for containers.
//
// The target runtime expands $(NAME) placeholders by a single left-to-right
// text pass over the environment list: a derived value may only reference
// names that appear strictly earlier in the same list. Link turns that
// documentation-grade constraint into a checked invariant by building the
// reference graph and emitting a stable topological order, rejecting
// forward-unresolvable and circular references at render time.
package binding

import (
	"regexp"

	"github.com/samber/lo"
	corev1 "k8s.io/api/core/v1"
)

// Kind classifies how a binding's value is produced.
type Kind string

const (
	// KindLiteral is a plain name/value pair.
	KindLiteral Kind = "literal"

	// KindSecretRef pulls the value from a named key in a Secret.
	KindSecretRef Kind = "secretRef"

	// KindDerived carries a template whose $(NAME) placeholders the
	// runtime substitutes from earlier bindings in the same list.
	KindDerived Kind = "derived"
)

// SecretKeyRef points at a named, keyed entry in the secret store. The
// secret name always comes from the materializer, never invented here.
type SecretKeyRef struct {
	SecretName string
	Key        string
}

// Binding is one name/value pair destined for a container's environment.
// Immutable once built.
type Binding struct {
	Name   string
	Kind   Kind
	Value  string
	Secret SecretKeyRef
}

// Literal builds a plain name/value binding.
func Literal(name, value string) Binding {
	return Binding{Name: name, Kind: KindLiteral, Value: value}
}

// FromSecret builds a binding resolved from a Secret key at pod start.
func FromSecret(name, secretName, key string) Binding {
	return Binding{
		Name:   name,
		Kind:   KindSecretRef,
		Secret: SecretKeyRef{SecretName: secretName, Key: key},
	}
}

// Derived builds a binding whose value is a $(NAME) template over other
// bindings in the same list.
func Derived(name, template string) Binding {
	return Binding{Name: name, Kind: KindDerived, Value: template}
}

// refPattern matches $(NAME) placeholders in derived templates.
var refPattern = regexp.MustCompile(`\$\(([A-Za-z_][A-Za-z0-9_]*)\)`)

// References returns the distinct binding names a derived template refers
// to, in order of first appearance. Non-derived bindings reference nothing.
func (b Binding) References() []string {
	if b.Kind != KindDerived {
		return nil
	}
	matches := refPattern.FindAllStringSubmatch(b.Value, -1)
	if len(matches) == 0 {
		return nil
	}
	refs := lo.Map(matches, func(m []string, _ int) string { return m[1] })
	return lo.Uniq(refs)
}

// EnvVar converts the binding to its Kubernetes representation. Derived
// templates pass through verbatim; the kubelet performs the substitution.
func (b Binding) EnvVar() corev1.EnvVar {
	if b.Kind == KindSecretRef {
		return corev1.EnvVar{
			Name: b.Name,
			ValueFrom: &corev1.EnvVarSource{
				SecretKeyRef: &corev1.SecretKeySelector{
					LocalObjectReference: corev1.LocalObjectReference{Name: b.Secret.SecretName},
					Key:                  b.Secret.Key,
				},
			},
		}
	}
	return corev1.EnvVar{Name: b.Name, Value: b.Value}
}

// EnvVars converts an already-linked binding list in order.
func EnvVars(bindings []Binding) []corev1.EnvVar {
	return lo.Map(bindings, func(b Binding, _ int) corev1.EnvVar { return b.EnvVar() })
}
