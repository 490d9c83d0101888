// Package secrets resolves API keys from configuration values or key files.
package secrets

import (
	"fmt"
	"os"
	"strings"
)

// Source describes where an API key comes from.
type Source struct {
	// Name is used in error messages to identify the key.
	Name string
	// Value is an inline key provided via configuration or environment.
	Value string
	// File points to a file containing the key. When set it takes
	// precedence over Value.
	File string
}

// Load resolves the key from the provided source. File contents win over the
// inline value, and the result is always trimmed. An error is returned when
// neither yields a usable key.
func Load(src Source) (string, error) {
	name := strings.TrimSpace(src.Name)
	if name == "" {
		name = "secret"
	}

	file := strings.TrimSpace(src.File)
	if file != "" {
		data, err := os.ReadFile(file)
		if err != nil {
			return "", fmt.Errorf("reading %s from file %q: %w", name, file, err)
		}
		src.Value = string(data)
		src.File = file
	}

	secret := strings.TrimSpace(src.Value)
	if secret == "" {
		if src.File != "" {
			return "", fmt.Errorf("%s file %q is empty", name, src.File)
		}
		return "", fmt.Errorf("%s is not configured", name)
	}

	return secret, nil
}
