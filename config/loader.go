package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Load reads and maps the file at path.
func Load(path string) (*Config, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, &Error{Op: "config.load", Path: path, Err: err}
	}

	return parse(path, b)
}

// Parse maps an in-memory document.
func Parse(data []byte) (*Config, error) {
	return parse("", data)
}

func parse(path string, data []byte) (*Config, error) {
	var dto YAMLFile
	if err := yaml.Unmarshal(data, &dto); err != nil {
		return nil, &Error{
			Op:   "config.load",
			Path: path,
			Err:  fmt.Errorf("%w: %w", ErrInvalidConfig, err),
		}
	}

	return Map(path, dto)
}
