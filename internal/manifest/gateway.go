package manifest

import (
	"fmt"
	"strconv"

	corev1 "k8s.io/api/core/v1"
	networkingv1 "k8s.io/api/networking/v1"
	metav1 "k8s.io/apimachinery/pkg/apis/meta/v1"
	"k8s.io/apimachinery/pkg/runtime"

	"github.com/davit-sh/davit/internal/binding"
	"github.com/davit-sh/davit/internal/secrets"
	"github.com/davit-sh/davit/internal/values"
)

// gatewayBindings declares the gateway container's environment: literals
// first, then secret references, then the derived connection strings. Link
// checks the declaration-order invariant the kubelet's single-pass $(VAR)
// substitution depends on.
func gatewayBindings(rel values.Release, res *values.Resolver, pg *postgresConfig, rds *redisConfig) ([]binding.Binding, error) {
	port, err := res.Int("gateway.port", true)
	if err != nil {
		return nil, err
	}
	consolePort, err := res.Int("console.port", true)
	if err != nil {
		return nil, err
	}

	authSecretOverride, err := res.String("gateway.auth.existingSecret", false)
	if err != nil {
		return nil, err
	}
	usernameKey, err := res.StringOr("gateway.auth.usernameKey", "admin-user")
	if err != nil {
		return nil, err
	}
	passwordKey, err := res.StringOr("gateway.auth.passwordKey", "admin-password")
	if err != nil {
		return nil, err
	}
	signSecretOverride, err := res.String("gateway.signing.existingSecret", false)
	if err != nil {
		return nil, err
	}
	signKey, err := res.StringOr("gateway.signing.key", "signing-key")
	if err != nil {
		return nil, err
	}

	authSecret := secrets.Name(rel, ComponentGateway, "auth", authSecretOverride)
	signSecret := secrets.Name(rel, ComponentGateway, "signing-key", signSecretOverride)

	declared := []binding.Binding{
		binding.Literal("GATEWAY_PORT", strconv.Itoa(port)),
		binding.Literal("POSTGRES_HOST", pg.Host),
		binding.Literal("POSTGRES_PORT", strconv.Itoa(pg.Port)),
		binding.Literal("POSTGRES_DB", pg.Database),
		binding.Literal("REDIS_HOST", rds.Host),
		binding.Literal("REDIS_PORT", strconv.Itoa(rds.Port)),
		binding.Literal("CONSOLE_URL", fmt.Sprintf("http://%s:%d", rel.ResourceName(ComponentConsole), consolePort)),
		binding.FromSecret("POSTGRES_USER", pg.SecretName, pg.UserKey),
		binding.FromSecret("POSTGRES_PASSWORD", pg.SecretName, pg.PasswordKey),
		binding.FromSecret("GATEWAY_ADMIN_USER", authSecret, usernameKey),
		binding.FromSecret("GATEWAY_ADMIN_PASSWORD", authSecret, passwordKey),
		binding.FromSecret("GATEWAY_SIGNING_KEY", signSecret, signKey),
	}

	if rds.AuthEnabled {
		declared = append(declared,
			binding.FromSecret("REDIS_PASSWORD", rds.SecretName, rds.PasswordKey),
			binding.Derived("REDIS_URL", "redis://:$(REDIS_PASSWORD)@$(REDIS_HOST):$(REDIS_PORT)/0"),
		)
	} else {
		declared = append(declared,
			binding.Derived("REDIS_URL", "redis://$(REDIS_HOST):$(REDIS_PORT)/0"),
		)
	}

	// The database name is resolved config, not a binding: it lands in the
	// template text itself, leaving exactly the four credential and
	// endpoint references for the runtime to substitute.
	declared = append(declared, binding.Derived("DATABASE_URL",
		fmt.Sprintf("postgresql://$(POSTGRES_USER):$(POSTGRES_PASSWORD)@$(POSTGRES_HOST):$(POSTGRES_PORT)/%s", pg.Database)))

	return binding.Link(declared)
}

// composeGateway renders the gateway Deployment, Service, and, when
// configured, the Ingress.
func composeGateway(rel values.Release, res *values.Resolver, pg *postgresConfig, rds *redisConfig) (*Group, error) {
	image, pullPolicy, err := imageRef(res, ComponentGateway)
	if err != nil {
		return nil, err
	}
	replicas, err := res.Int("gateway.replicas", true)
	if err != nil {
		return nil, err
	}
	port, err := res.Int("gateway.port", true)
	if err != nil {
		return nil, err
	}

	env, err := gatewayBindings(rel, res, pg, rds)
	if err != nil {
		return nil, err
	}

	container := corev1.Container{
		Name:            ComponentGateway,
		Image:           image,
		ImagePullPolicy: pullPolicy,
		Ports:           []corev1.ContainerPort{{Name: "http", ContainerPort: int32(port)}},
		Env:             binding.EnvVars(env),
	}
	if err := probes(res, ComponentGateway, &container); err != nil {
		return nil, err
	}
	if container.Resources, err = resourceRequirements(res, ComponentGateway); err != nil {
		return nil, err
	}

	group := &Group{
		Component: ComponentGateway,
		Objects: []runtime.Object{
			deployment(rel, ComponentGateway, replicas, container),
			service(rel, ComponentGateway, port),
		},
	}

	ingress, err := composeIngress(rel, res, port)
	if err != nil {
		return nil, err
	}
	if ingress != nil {
		group.Objects = append(group.Objects, ingress)
	}

	return group, nil
}

// composeIngress renders the gateway ingress when enabled. Disabled or
// absent configuration yields no object at all, never an empty one.
func composeIngress(rel values.Release, res *values.Resolver, port int) (*networkingv1.Ingress, error) {
	enabled, err := res.Bool("gateway.ingress.enabled", false)
	if err != nil {
		return nil, err
	}
	if !enabled {
		return nil, nil
	}

	host, err := res.String("gateway.ingress.host", false)
	if err != nil {
		return nil, err
	}
	if host == "" {
		return nil, &RenderError{Component: ComponentGateway, Block: "ingress", Reason: "enabled but no host configured"}
	}

	path, err := res.StringOr("gateway.ingress.path", "/")
	if err != nil {
		return nil, err
	}
	className, err := res.String("gateway.ingress.className", false)
	if err != nil {
		return nil, err
	}

	pathType := networkingv1.PathTypePrefix
	ingress := &networkingv1.Ingress{
		TypeMeta: metav1.TypeMeta{APIVersion: "networking.k8s.io/v1", Kind: "Ingress"},
		ObjectMeta: metav1.ObjectMeta{
			Name:      rel.ResourceName(ComponentGateway),
			Namespace: rel.Namespace,
			Labels:    labels(rel, ComponentGateway),
		},
		Spec: networkingv1.IngressSpec{
			Rules: []networkingv1.IngressRule{
				{
					Host: host,
					IngressRuleValue: networkingv1.IngressRuleValue{
						HTTP: &networkingv1.HTTPIngressRuleValue{
							Paths: []networkingv1.HTTPIngressPath{
								{
									Path:     path,
									PathType: &pathType,
									Backend: networkingv1.IngressBackend{
										Service: &networkingv1.IngressServiceBackend{
											Name: rel.ResourceName(ComponentGateway),
											Port: networkingv1.ServiceBackendPort{Number: int32(port)},
										},
									},
								},
							},
						},
					},
				},
			},
		},
	}
	if className != "" {
		ingress.Spec.IngressClassName = &className
	}

	return ingress, nil
}
