package values

import "fmt"

// ConfigError reports configuration that cannot be resolved: a required
// path missing from both trees, a value of the wrong type, or a reference
// to a name that is not defined anywhere in scope.
type ConfigError struct {
	// Path is the dot-separated configuration path or binding name at fault.
	Path string

	// Reason describes what is wrong with the value at Path.
	Reason string
}

func (e *ConfigError) Error() string {
	return fmt.Sprintf("config %s: %s", e.Path, e.Reason)
}

// missingErr builds the ConfigError for a required path absent from both trees.
func missingErr(path string) *ConfigError {
	return &ConfigError{Path: path, Reason: "required value not set"}
}

// typeErr builds the ConfigError for a value that cannot be coerced.
func typeErr(path string, value any, want string) *ConfigError {
	return &ConfigError{Path: path, Reason: fmt.Sprintf("cannot use %T as %s", value, want)}
}
