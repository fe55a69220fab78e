// Package manifest composes the Kubernetes resources for a gateway stack
// release.
//
// Compose turns the resolved value tree into typed resource objects, one
// group per component:
//
//   - gateway: Deployment, Service, optional Ingress
//   - console: Deployment, Service
//   - postgres / redis: Deployment, Service (skipped entirely when the
//     operator points the stack at an external instance via a host override)
//
// Composition is a pure tree transformation. Identical inputs produce
// deep-equal output; the only I/O in the whole render path lives in the
// summary renderer's optional secret lookup, never here.
package manifest
