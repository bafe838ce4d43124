// Package config loads the tool configuration: settings overrides for
// scaffolding, changelog and template locations, and the binary-signing
// candidate selection.
package config

import (
	"os"
	"path/filepath"
)

// Config is the parsed .projflow.yml.
type Config struct {
	// Defaults maps setting keys to override values applied during
	// settings resolution.
	Defaults map[string]any `yaml:"defaults"`

	// Changelog is the changelog filename. Defaults to CHANGELOG.md.
	Changelog string `yaml:"changelog"`

	// Templates is the template package root used by init. Defaults to
	// the "template" directory.
	Templates string `yaml:"templates"`

	// Binaries selects signing candidates among build outputs.
	Binaries Binaries `yaml:"binaries"`
}

// Binaries configures the signing step's candidate scan.
type Binaries struct {
	Directories []string `yaml:"directories"`
	Exclude     []string `yaml:"exclude"`
}

// Default returns the built-in configuration.
func Default() *Config {
	return &Config{
		Changelog: "CHANGELOG.md",
		Templates: "template",
		Binaries: Binaries{
			Directories: []string{"bin", "lib", "libexec", "share"},
			Exclude:     []string{"*-test"},
		},
	}
}

// configFileNames lists the files searched for configuration in order.
var configFileNames = []string{
	".projflow.yml",
	".github/projflow.yml",
}

// FindConfigFile searches for a config file in the working directory.
// Returns "" when none exists.
func FindConfigFile(dir string) string {
	for _, name := range configFileNames {
		path := filepath.Join(dir, name)
		if _, err := os.Stat(path); err == nil {
			return path
		}
	}
	return ""
}
