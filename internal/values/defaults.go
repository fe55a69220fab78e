package values

// Defaults returns the chart default tree. Callers receive a fresh copy on
// every call so nothing downstream can poison the shared defaults.
//
// The tree defines the full values schema: every section an overlay may
// set exists here, and NewResolver rejects overlay sections that do not.
func Defaults() map[string]any {
	return deepCopy(defaultTree).(map[string]any)
}

var defaultTree = map[string]any{
	"gateway": map[string]any{
		"image": map[string]any{
			"repository": "ghcr.io/davit-sh/gateway",
			"tag":        "1.8.2",
			"pullPolicy": "IfNotPresent",
		},
		"replicas": 2,
		"port":     8080,
		"readinessProbe": map[string]any{
			"path":                "/healthz/ready",
			"port":                8080,
			"initialDelaySeconds": 5,
			"periodSeconds":       10,
		},
		"livenessProbe": map[string]any{
			"path":                "/healthz/live",
			"port":                8080,
			"initialDelaySeconds": 15,
			"periodSeconds":       20,
		},
		"resources": map[string]any{
			"requests": map[string]any{
				"cpu":    "100m",
				"memory": "128Mi",
			},
			"limits": map[string]any{
				"cpu":    "500m",
				"memory": "512Mi",
			},
		},
		"auth": map[string]any{
			"existingSecret": "",
			"usernameKey":    "admin-user",
			"passwordKey":    "admin-password",
		},
		"signing": map[string]any{
			"existingSecret": "",
			"key":            "signing-key",
		},
		"ingress": map[string]any{
			"enabled":   false,
			"className": "",
			"host":      "",
			"path":      "/",
		},
	},
	"console": map[string]any{
		"image": map[string]any{
			"repository": "ghcr.io/davit-sh/console",
			"tag":        "1.8.2",
			"pullPolicy": "IfNotPresent",
		},
		"replicas": 1,
		"port":     3000,
	},
	"postgres": map[string]any{
		"image": map[string]any{
			"repository": "postgres",
			"tag":        "16.4",
			"pullPolicy": "IfNotPresent",
		},
		"host":     "",
		"port":     5432,
		"database": "gateway",
		"auth": map[string]any{
			"existingSecret": "",
			"userKey":        "username",
			"passwordKey":    "password",
		},
	},
	"redis": map[string]any{
		"image": map[string]any{
			"repository": "redis",
			"tag":        "7.4",
			"pullPolicy": "IfNotPresent",
		},
		"host": "",
		"port": 6379,
		"auth": map[string]any{
			"existingSecret": "",
			"passwordKey":    "redis-password",
		},
	},
}
