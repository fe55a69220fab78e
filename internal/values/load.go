package values

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// LoadOverlay loads a single values overlay file.
func LoadOverlay(path string) (map[string]any, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read values file: %w", err)
	}

	var overlay map[string]any
	if err := yaml.Unmarshal(content, &overlay); err != nil {
		return nil, fmt.Errorf("parse values file %s: %w", path, err)
	}
	if overlay == nil {
		overlay = make(map[string]any)
	}

	return overlay, nil
}

// LoadOverlays loads and merges multiple overlay files in order; later
// files win for duplicate paths.
func LoadOverlays(paths []string) (map[string]any, error) {
	merged := make(map[string]any)
	for _, path := range paths {
		overlay, err := LoadOverlay(path)
		if err != nil {
			return nil, err
		}
		merged = Merge(merged, overlay)
	}
	return merged, nil
}
