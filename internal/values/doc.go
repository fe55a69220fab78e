// Package values implements layered configuration resolution for a release.
//
// A render works from two trees: the chart defaults owned by this package
// and an overlay supplied by the operator. Resolution never mutates either
// tree; Merge produces a fresh merged view and Resolver answers dot-path
// lookups against it with deterministic scalar coercion.
//
// # Layering
//
// Overlay values win wherever they exist:
//
//	gateway:
//	  image:
//	    tag: 2.4.1   # overrides the default tag, nothing else
//
// Release-scoped resource names are derived exclusively through
// Release.ResourceName so every caller sees identical identifiers.
package values
