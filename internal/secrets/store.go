package secrets

import (
	"context"
	"errors"
	"fmt"

	apierrors "k8s.io/apimachinery/pkg/api/errors"
	metav1 "k8s.io/apimachinery/pkg/apis/meta/v1"
	"k8s.io/client-go/kubernetes"
	"k8s.io/client-go/tools/clientcmd"
)

// ErrSecretNotFound indicates a live lookup found no secret by that name.
// Callers test for it with errors.Is; the summary renderer degrades to a
// placeholder instead of failing.
var ErrSecretNotFound = errors.New("secret not found")

// Store reads named secrets. It is the only external collaborator the
// renderer touches, and only when the caller explicitly opts into live
// disclosure.
type Store interface {
	// Get returns the decoded key/value pairs of the named secret, or an
	// error wrapping ErrSecretNotFound when it does not exist.
	Get(ctx context.Context, namespace, name string) (map[string]string, error)
}

// KubeStore reads secrets through the Kubernetes API.
type KubeStore struct {
	client kubernetes.Interface
}

// NewKubeStore wraps an existing clientset.
func NewKubeStore(client kubernetes.Interface) *KubeStore {
	return &KubeStore{client: client}
}

// NewKubeStoreFromKubeconfig builds a store from a kubeconfig file.
// An empty path falls back to the standard loading rules ($KUBECONFIG,
// then ~/.kube/config).
func NewKubeStoreFromKubeconfig(path string) (*KubeStore, error) {
	rules := clientcmd.NewDefaultClientConfigLoadingRules()
	if path != "" {
		rules.ExplicitPath = path
	}

	config, err := clientcmd.NewNonInteractiveDeferredLoadingClientConfig(rules, nil).ClientConfig()
	if err != nil {
		return nil, fmt.Errorf("load kubeconfig: %w", err)
	}

	client, err := kubernetes.NewForConfig(config)
	if err != nil {
		return nil, fmt.Errorf("build kubernetes client: %w", err)
	}

	return &KubeStore{client: client}, nil
}

// Get fetches and decodes the named secret. Secret.Data arrives
// base64-decoded from client-go already, so this only converts bytes to
// strings.
func (s *KubeStore) Get(ctx context.Context, namespace, name string) (map[string]string, error) {
	secret, err := s.client.CoreV1().Secrets(namespace).Get(ctx, name, metav1.GetOptions{})
	if apierrors.IsNotFound(err) {
		return nil, fmt.Errorf("%s/%s: %w", namespace, name, ErrSecretNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("get secret %s/%s: %w", namespace, name, err)
	}

	data := make(map[string]string, len(secret.Data))
	for key, value := range secret.Data {
		data[key] = string(value)
	}
	return data, nil
}
