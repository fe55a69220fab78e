package manifest

import (
	"fmt"

	"k8s.io/apimachinery/pkg/runtime"
)

// Component names of the stack. They double as the component part of every
// derived resource name.
const (
	ComponentGateway  = "gateway"
	ComponentConsole  = "console"
	ComponentPostgres = "postgres"
	ComponentRedis    = "redis"
)

// Components lists the stack components in composition order.
var Components = []string{ComponentGateway, ComponentConsole, ComponentPostgres, ComponentRedis}

// Group holds the rendered resources of one component.
type Group struct {
	// Component is the component name the resources belong to.
	Component string

	// Objects are the typed resources in a stable order (workload first,
	// then service, then ingress).
	Objects []runtime.Object
}

// Set is the full output of one render: one group per composed component.
// Consumed, never mutated, by whoever submits it to the cluster.
type Set struct {
	Groups []Group
}

// RenderError reports a structural block that is configured but malformed,
// e.g. a probe without a path or an enabled ingress without a host. It
// always aborts the whole render.
type RenderError struct {
	Component string
	Block     string
	Reason    string
}

func (e *RenderError) Error() string {
	return fmt.Sprintf("render %s/%s: %s", e.Component, e.Block, e.Reason)
}
