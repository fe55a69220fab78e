package manifest

import (
	"fmt"

	appsv1 "k8s.io/api/apps/v1"
	corev1 "k8s.io/api/core/v1"
	"k8s.io/apimachinery/pkg/api/resource"
	metav1 "k8s.io/apimachinery/pkg/apis/meta/v1"
	"k8s.io/apimachinery/pkg/util/intstr"

	"github.com/davit-sh/davit/internal/values"
)

// probeKinds are the existence-conditional probe blocks a component may
// configure, in manifest field order.
var probeKinds = []string{"startupProbe", "readinessProbe", "livenessProbe"}

func labels(rel values.Release, component string) map[string]string {
	return map[string]string{
		"app.kubernetes.io/name":       component,
		"app.kubernetes.io/instance":   rel.Name,
		"app.kubernetes.io/component":  component,
		"app.kubernetes.io/version":    rel.ChartVersion,
		"app.kubernetes.io/managed-by": rel.ChartName,
	}
}

// selector returns the subset of labels safe to use as an immutable
// pod selector.
func selector(rel values.Release, component string) map[string]string {
	return map[string]string{
		"app.kubernetes.io/name":     component,
		"app.kubernetes.io/instance": rel.Name,
	}
}

// imageRef builds "repository:tag" from a component's image section.
func imageRef(res *values.Resolver, component string) (string, corev1.PullPolicy, error) {
	repo, err := res.String(component+".image.repository", true)
	if err != nil {
		return "", "", err
	}
	tag, err := res.String(component+".image.tag", true)
	if err != nil {
		return "", "", err
	}
	policy, err := res.StringOr(component+".image.pullPolicy", "IfNotPresent")
	if err != nil {
		return "", "", err
	}
	return repo + ":" + tag, corev1.PullPolicy(policy), nil
}

// probe builds one probe block when its configuration path is present.
// Absent configuration yields a nil probe, which keeps the field out of
// the serialized manifest entirely. A present block missing path or port
// is a RenderError.
func probe(res *values.Resolver, component, kind string) (*corev1.Probe, error) {
	base := component + "." + kind
	if !res.Has(base) {
		return nil, nil
	}

	path, err := res.String(base+".path", false)
	if err != nil {
		return nil, err
	}
	if path == "" {
		return nil, &RenderError{Component: component, Block: kind, Reason: "probe requires a path"}
	}

	port, err := res.Int(base+".port", false)
	if err != nil {
		return nil, err
	}
	if port == 0 {
		return nil, &RenderError{Component: component, Block: kind, Reason: "probe requires a port"}
	}

	p := &corev1.Probe{
		ProbeHandler: corev1.ProbeHandler{
			HTTPGet: &corev1.HTTPGetAction{
				Path: path,
				Port: intstr.FromInt32(int32(port)),
			},
		},
	}

	timings := []struct {
		field string
		dst   *int32
	}{
		{"initialDelaySeconds", &p.InitialDelaySeconds},
		{"periodSeconds", &p.PeriodSeconds},
		{"timeoutSeconds", &p.TimeoutSeconds},
		{"failureThreshold", &p.FailureThreshold},
	}
	for _, tm := range timings {
		n, err := res.Int(base+"."+tm.field, false)
		if err != nil {
			return nil, err
		}
		*tm.dst = int32(n)
	}

	return p, nil
}

// probes builds all configured probe blocks for a component and assigns
// them onto the container.
func probes(res *values.Resolver, component string, container *corev1.Container) error {
	for _, kind := range probeKinds {
		p, err := probe(res, component, kind)
		if err != nil {
			return err
		}
		switch kind {
		case "startupProbe":
			container.StartupProbe = p
		case "readinessProbe":
			container.ReadinessProbe = p
		case "livenessProbe":
			container.LivenessProbe = p
		}
	}
	return nil
}

// resourceRequirements copies the component's resources block through
// structurally. Quantities must parse; nothing else is validated.
func resourceRequirements(res *values.Resolver, component string) (corev1.ResourceRequirements, error) {
	var reqs corev1.ResourceRequirements

	tree, ok := res.Subtree(component + ".resources")
	if !ok {
		return reqs, nil
	}

	parse := func(section string) (corev1.ResourceList, error) {
		raw, isMap := tree[section].(map[string]any)
		if !isMap || len(raw) == 0 {
			return nil, nil
		}
		list := make(corev1.ResourceList, len(raw))
		for name, value := range raw {
			text := fmt.Sprintf("%v", value)
			qty, err := resource.ParseQuantity(text)
			if err != nil {
				return nil, &RenderError{
					Component: component,
					Block:     "resources." + section,
					Reason:    fmt.Sprintf("invalid quantity %q for %s", text, name),
				}
			}
			list[corev1.ResourceName(name)] = qty
		}
		return list, nil
	}

	var err error
	if reqs.Requests, err = parse("requests"); err != nil {
		return corev1.ResourceRequirements{}, err
	}
	if reqs.Limits, err = parse("limits"); err != nil {
		return corev1.ResourceRequirements{}, err
	}
	return reqs, nil
}

// deployment wraps a single container in a Deployment for the component.
func deployment(rel values.Release, component string, replicas int, container corev1.Container) *appsv1.Deployment {
	count := int32(replicas)
	return &appsv1.Deployment{
		TypeMeta: metav1.TypeMeta{APIVersion: "apps/v1", Kind: "Deployment"},
		ObjectMeta: metav1.ObjectMeta{
			Name:      rel.ResourceName(component),
			Namespace: rel.Namespace,
			Labels:    labels(rel, component),
		},
		Spec: appsv1.DeploymentSpec{
			Replicas: &count,
			Selector: &metav1.LabelSelector{MatchLabels: selector(rel, component)},
			Template: corev1.PodTemplateSpec{
				ObjectMeta: metav1.ObjectMeta{Labels: labels(rel, component)},
				Spec: corev1.PodSpec{
					Containers: []corev1.Container{container},
				},
			},
		},
	}
}

// service exposes a component on a single named port.
func service(rel values.Release, component string, port int) *corev1.Service {
	return &corev1.Service{
		TypeMeta: metav1.TypeMeta{APIVersion: "v1", Kind: "Service"},
		ObjectMeta: metav1.ObjectMeta{
			Name:      rel.ResourceName(component),
			Namespace: rel.Namespace,
			Labels:    labels(rel, component),
		},
		Spec: corev1.ServiceSpec{
			Type:     corev1.ServiceTypeClusterIP,
			Selector: selector(rel, component),
			Ports: []corev1.ServicePort{
				{
					Name:       "http",
					Port:       int32(port),
					TargetPort: intstr.FromInt32(int32(port)),
				},
			},
		},
	}
}
