package manifest

import (
	corev1 "k8s.io/api/core/v1"
	"k8s.io/apimachinery/pkg/runtime"

	"github.com/davit-sh/davit/internal/binding"
	"github.com/davit-sh/davit/internal/secrets"
	"github.com/davit-sh/davit/internal/values"
)

// postgresConfig is the resolved connection surface of the database, shared
// between the postgres component itself and every consumer of it.
type postgresConfig struct {
	Host        string
	Port        int
	Database    string
	SecretName  string
	UserKey     string
	PasswordKey string

	// External is true when the operator pointed the stack at a database
	// outside the release; no postgres resources are rendered then.
	External bool
}

func postgresConfigFrom(rel values.Release, res *values.Resolver) (*postgresConfig, error) {
	hostOverride, err := res.String("postgres.host", false)
	if err != nil {
		return nil, err
	}

	port, err := res.Int("postgres.port", true)
	if err != nil {
		return nil, err
	}
	database, err := res.String("postgres.database", true)
	if err != nil {
		return nil, err
	}
	secretOverride, err := res.String("postgres.auth.existingSecret", false)
	if err != nil {
		return nil, err
	}
	userKey, err := res.StringOr("postgres.auth.userKey", "username")
	if err != nil {
		return nil, err
	}
	passwordKey, err := res.StringOr("postgres.auth.passwordKey", "password")
	if err != nil {
		return nil, err
	}

	cfg := &postgresConfig{
		Host:        hostOverride,
		Port:        port,
		Database:    database,
		SecretName:  secrets.Name(rel, ComponentPostgres, "secret", secretOverride),
		UserKey:     userKey,
		PasswordKey: passwordKey,
		External:    hostOverride != "",
	}
	if cfg.Host == "" {
		cfg.Host = rel.ResourceName(ComponentPostgres)
	}
	return cfg, nil
}

// composePostgres renders the in-release database. Returns nil when the
// stack uses an external database instead.
func composePostgres(rel values.Release, res *values.Resolver) (*Group, error) {
	cfg, err := postgresConfigFrom(rel, res)
	if err != nil {
		return nil, err
	}
	if cfg.External {
		return nil, nil
	}

	image, pullPolicy, err := imageRef(res, ComponentPostgres)
	if err != nil {
		return nil, err
	}

	declared := []binding.Binding{
		binding.Literal("POSTGRES_DB", cfg.Database),
		binding.Literal("PGDATA", "/var/lib/postgresql/data/pgdata"),
		binding.FromSecret("POSTGRES_USER", cfg.SecretName, cfg.UserKey),
		binding.FromSecret("POSTGRES_PASSWORD", cfg.SecretName, cfg.PasswordKey),
	}
	env, err := binding.Link(declared)
	if err != nil {
		return nil, err
	}

	container := corev1.Container{
		Name:            ComponentPostgres,
		Image:           image,
		ImagePullPolicy: pullPolicy,
		Ports:           []corev1.ContainerPort{{Name: "postgres", ContainerPort: int32(cfg.Port)}},
		Env:             binding.EnvVars(env),
	}
	if err := probes(res, ComponentPostgres, &container); err != nil {
		return nil, err
	}
	if container.Resources, err = resourceRequirements(res, ComponentPostgres); err != nil {
		return nil, err
	}

	return &Group{
		Component: ComponentPostgres,
		Objects: []runtime.Object{
			deployment(rel, ComponentPostgres, 1, container),
			service(rel, ComponentPostgres, cfg.Port),
		},
	}, nil
}
