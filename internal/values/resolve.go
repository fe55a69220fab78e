package values

import (
	"fmt"
	"math"
	"sort"
	"strconv"
	"strings"
)

// Resolver answers dot-path lookups against the merged view of the chart
// defaults and the operator overlay. It is read-only after construction,
// so concurrent renders may share one Resolver freely.
type Resolver struct {
	merged map[string]any
}

// NewResolver merges defaults and overlay into a resolver. Top-level keys
// in the overlay that the defaults do not know about are rejected: a typo
// like "gatway:" would otherwise silently render pure defaults.
func NewResolver(defaults, overlay map[string]any) (*Resolver, error) {
	for key := range overlay {
		if _, known := defaults[key]; !known {
			return nil, &ConfigError{
				Path:   key,
				Reason: fmt.Sprintf("unknown section (expected one of %s)", strings.Join(sortedKeys(defaults), ", ")),
			}
		}
	}
	return &Resolver{merged: Merge(defaults, overlay)}, nil
}

// Lookup walks a dot-separated path and reports whether a value exists.
func (r *Resolver) Lookup(path string) (any, bool) {
	current := any(r.merged)
	for _, part := range strings.Split(path, ".") {
		m, ok := current.(map[string]any)
		if !ok {
			return nil, false
		}
		current, ok = m[part]
		if !ok {
			return nil, false
		}
	}
	return current, true
}

// Has reports whether path resolves to a present, non-empty value.
// Empty maps and nil count as absent; that is the presence test every
// existence-conditional manifest block branches on.
func (r *Resolver) Has(path string) bool {
	v, ok := r.Lookup(path)
	if !ok || v == nil {
		return false
	}
	if m, isMap := v.(map[string]any); isMap {
		return len(m) > 0
	}
	return true
}

// Subtree returns the map at path, or false when the path is absent or
// not a map.
func (r *Resolver) Subtree(path string) (map[string]any, bool) {
	v, ok := r.Lookup(path)
	if !ok {
		return nil, false
	}
	m, isMap := v.(map[string]any)
	if !isMap || len(m) == 0 {
		return nil, false
	}
	return m, true
}

// String resolves path to a string. Integers and booleans coerce
// deterministically (1234 -> "1234", true -> "true"); anything else is a
// ConfigError. A missing optional path resolves to "".
func (r *Resolver) String(path string, required bool) (string, error) {
	v, ok := r.Lookup(path)
	if !ok || v == nil {
		if required {
			return "", missingErr(path)
		}
		return "", nil
	}
	return coerceString(path, v)
}

// Int resolves path to an int. Whole floats (how YAML sometimes hands
// numbers over) and numeric strings coerce; fractional values do not.
func (r *Resolver) Int(path string, required bool) (int, error) {
	v, ok := r.Lookup(path)
	if !ok || v == nil {
		if required {
			return 0, missingErr(path)
		}
		return 0, nil
	}
	switch n := v.(type) {
	case int:
		return n, nil
	case int64:
		return int(n), nil
	case float64:
		if n != math.Trunc(n) {
			return 0, typeErr(path, v, "int")
		}
		return int(n), nil
	case string:
		parsed, err := strconv.Atoi(strings.TrimSpace(n))
		if err != nil {
			return 0, typeErr(path, v, "int")
		}
		return parsed, nil
	default:
		return 0, typeErr(path, v, "int")
	}
}

// Bool resolves path to a bool. Only true booleans and the literal
// strings "true"/"false" coerce; truthiness of other types is not a thing.
func (r *Resolver) Bool(path string, required bool) (bool, error) {
	v, ok := r.Lookup(path)
	if !ok || v == nil {
		if required {
			return false, missingErr(path)
		}
		return false, nil
	}
	switch b := v.(type) {
	case bool:
		return b, nil
	case string:
		switch strings.TrimSpace(b) {
		case "true":
			return true, nil
		case "false":
			return false, nil
		}
	}
	return false, typeErr(path, v, "bool")
}

// StringOr resolves path to a string, falling back to def when the path
// is absent or empty. Coercion failures still surface as errors.
func (r *Resolver) StringOr(path, def string) (string, error) {
	s, err := r.String(path, false)
	if err != nil {
		return "", err
	}
	if s == "" {
		return def, nil
	}
	return s, nil
}

func coerceString(path string, v any) (string, error) {
	switch s := v.(type) {
	case string:
		return s, nil
	case int:
		return strconv.Itoa(s), nil
	case int64:
		return strconv.FormatInt(s, 10), nil
	case float64:
		if s != math.Trunc(s) {
			return "", typeErr(path, v, "string")
		}
		return strconv.FormatInt(int64(s), 10), nil
	case bool:
		return strconv.FormatBool(s), nil
	default:
		return "", typeErr(path, v, "string")
	}
}

func sortedKeys(m map[string]any) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
