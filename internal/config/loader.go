package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// LoadFromFile reads and parses a projflow configuration file. The
// result starts from the built-in defaults; the file overrides them.
func LoadFromFile(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading config file: %w", err)
	}
	return LoadFromBytes(data)
}

// LoadFromBytes parses projflow configuration from raw YAML bytes.
func LoadFromBytes(data []byte) (*Config, error) {
	cfg := Default()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}
	return cfg, nil
}

// Load resolves the configuration for a working directory: an explicit
// path wins, then the search list, then the built-in defaults.
func Load(explicitPath, workDir string) (*Config, error) {
	path := explicitPath
	if path == "" {
		path = FindConfigFile(workDir)
	}
	if path == "" {
		return Default(), nil
	}
	return LoadFromFile(path)
}
