package manifest

import (
	"fmt"
	"strconv"

	corev1 "k8s.io/api/core/v1"
	"k8s.io/apimachinery/pkg/runtime"

	"github.com/davit-sh/davit/internal/binding"
	"github.com/davit-sh/davit/internal/values"
)

// composeConsole renders the companion console service.
func composeConsole(rel values.Release, res *values.Resolver) (*Group, error) {
	image, pullPolicy, err := imageRef(res, ComponentConsole)
	if err != nil {
		return nil, err
	}
	replicas, err := res.Int("console.replicas", true)
	if err != nil {
		return nil, err
	}
	port, err := res.Int("console.port", true)
	if err != nil {
		return nil, err
	}
	gatewayPort, err := res.Int("gateway.port", true)
	if err != nil {
		return nil, err
	}

	declared := []binding.Binding{
		binding.Literal("CONSOLE_PORT", strconv.Itoa(port)),
		binding.Literal("GATEWAY_URL", fmt.Sprintf("http://%s:%d", rel.ResourceName(ComponentGateway), gatewayPort)),
	}
	env, err := binding.Link(declared)
	if err != nil {
		return nil, err
	}

	container := corev1.Container{
		Name:            ComponentConsole,
		Image:           image,
		ImagePullPolicy: pullPolicy,
		Ports:           []corev1.ContainerPort{{Name: "http", ContainerPort: int32(port)}},
		Env:             binding.EnvVars(env),
	}
	if err := probes(res, ComponentConsole, &container); err != nil {
		return nil, err
	}
	if container.Resources, err = resourceRequirements(res, ComponentConsole); err != nil {
		return nil, err
	}

	return &Group{
		Component: ComponentConsole,
		Objects: []runtime.Object{
			deployment(rel, ComponentConsole, replicas, container),
			service(rel, ComponentConsole, port),
		},
	}, nil
}
