package project

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"github.com/projflow/projflow/internal/semver"
)

// projectFileName is the manifest the built-in suite manages.
const projectFileName = "project.yml"

// Compile-time check that YAMLSuite implements Suite.
var _ Suite = (*YAMLSuite)(nil)

// YAMLSuite manages projects described by a project.yml manifest with
// name and version fields.
type YAMLSuite struct{}

type projectManifest struct {
	Name        string `yaml:"name"`
	Version     string `yaml:"version"`
	Description string `yaml:"description,omitempty"`
}

func (YAMLSuite) Name() string {
	return "yaml"
}

func (YAMLSuite) Detect(dir string) bool {
	_, err := os.Stat(filepath.Join(dir, projectFileName))
	return err == nil
}

func (YAMLSuite) Load(dir string) (Project, error) {
	m, err := readManifest(dir)
	if err != nil {
		return Project{}, err
	}
	if _, ok := semver.TryParse(m.Version, ""); !ok {
		return Project{}, fmt.Errorf("invalid version %q in %s", m.Version, projectFileName)
	}
	return Project{Name: m.Name, Version: m.Version}, nil
}

func (YAMLSuite) SetVersion(dir, version string) error {
	m, err := readManifest(dir)
	if err != nil {
		return err
	}
	m.Version = version

	data, err := yaml.Marshal(m)
	if err != nil {
		return fmt.Errorf("marshaling %s: %w", projectFileName, err)
	}
	if err := os.WriteFile(filepath.Join(dir, projectFileName), data, 0o644); err != nil {
		return fmt.Errorf("writing %s: %w", projectFileName, err)
	}
	return nil
}

func (YAMLSuite) VersionFilePath(string) string {
	return projectFileName
}

func readManifest(dir string) (projectManifest, error) {
	raw, err := os.ReadFile(filepath.Join(dir, projectFileName))
	if err != nil {
		return projectManifest{}, fmt.Errorf("reading %s: %w", projectFileName, err)
	}
	var m projectManifest
	if err := yaml.Unmarshal(raw, &m); err != nil {
		return projectManifest{}, fmt.Errorf("parsing %s: %w", projectFileName, err)
	}
	return m, nil
}
