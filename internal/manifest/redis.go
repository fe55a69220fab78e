package manifest

import (
	corev1 "k8s.io/api/core/v1"
	"k8s.io/apimachinery/pkg/runtime"

	"github.com/davit-sh/davit/internal/binding"
	"github.com/davit-sh/davit/internal/secrets"
	"github.com/davit-sh/davit/internal/values"
)

// redisConfig is the resolved connection surface of the cache.
type redisConfig struct {
	Host        string
	Port        int
	SecretName  string
	PasswordKey string

	// AuthEnabled is true when the operator supplied an existing secret
	// holding the cache password.
	AuthEnabled bool

	// External mirrors the postgres semantics: a host override suppresses
	// the in-release cache.
	External bool
}

func redisConfigFrom(rel values.Release, res *values.Resolver) (*redisConfig, error) {
	hostOverride, err := res.String("redis.host", false)
	if err != nil {
		return nil, err
	}
	port, err := res.Int("redis.port", true)
	if err != nil {
		return nil, err
	}
	secretOverride, err := res.String("redis.auth.existingSecret", false)
	if err != nil {
		return nil, err
	}
	passwordKey, err := res.StringOr("redis.auth.passwordKey", "redis-password")
	if err != nil {
		return nil, err
	}

	cfg := &redisConfig{
		Host:        hostOverride,
		Port:        port,
		PasswordKey: passwordKey,
		AuthEnabled: secretOverride != "",
		External:    hostOverride != "",
	}
	if cfg.Host == "" {
		cfg.Host = rel.ResourceName(ComponentRedis)
	}
	if cfg.AuthEnabled {
		cfg.SecretName = secrets.Name(rel, ComponentRedis, "secret", secretOverride)
	}
	return cfg, nil
}

// composeRedis renders the in-release cache. Returns nil when the stack
// uses an external cache instead.
func composeRedis(rel values.Release, res *values.Resolver) (*Group, error) {
	cfg, err := redisConfigFrom(rel, res)
	if err != nil {
		return nil, err
	}
	if cfg.External {
		return nil, nil
	}

	image, pullPolicy, err := imageRef(res, ComponentRedis)
	if err != nil {
		return nil, err
	}

	var declared []binding.Binding
	if cfg.AuthEnabled {
		declared = append(declared, binding.FromSecret("REDIS_PASSWORD", cfg.SecretName, cfg.PasswordKey))
	}
	env, err := binding.Link(declared)
	if err != nil {
		return nil, err
	}

	container := corev1.Container{
		Name:            ComponentRedis,
		Image:           image,
		ImagePullPolicy: pullPolicy,
		Ports:           []corev1.ContainerPort{{Name: "redis", ContainerPort: int32(cfg.Port)}},
		Env:             binding.EnvVars(env),
	}
	if err := probes(res, ComponentRedis, &container); err != nil {
		return nil, err
	}
	if container.Resources, err = resourceRequirements(res, ComponentRedis); err != nil {
		return nil, err
	}

	return &Group{
		Component: ComponentRedis,
		Objects: []runtime.Object{
			deployment(rel, ComponentRedis, 1, container),
			service(rel, ComponentRedis, cfg.Port),
		},
	}, nil
}
