// Package project locates the project suite responsible for a repository
// and reads and writes the project version through it.
package project

import "errors"

// ErrNoProject reports that no registered suite recognizes the
// repository. The release flow treats this as fatal before any state
// transition.
var ErrNoProject = errors.New("no matching project suite found for this repository")

// Project is the suite-independent view of a project.
type Project struct {
	Name    string
	Version string
}

// Suite knows one project flavor: how to detect it, read its version,
// and write a new one.
type Suite interface {
	// Name identifies the suite in diagnostics.
	Name() string

	// Detect reports whether the directory holds this suite's project.
	Detect(dir string) bool

	// Load reads the project metadata.
	Load(dir string) (Project, error)

	// SetVersion writes the new version into the project's files.
	SetVersion(dir, version string) error

	// VersionFilePath returns the path of the version-holding file,
	// relative to dir, or "" when the suite has none.
	VersionFilePath(dir string) string
}

// Registry is the explicit, ordered collection of suites, populated once
// at bootstrap.
type Registry struct {
	suites []Suite
}

// NewRegistry creates a registry holding the given suites in order.
func NewRegistry(suites ...Suite) *Registry {
	return &Registry{suites: suites}
}

// Add appends a suite.
func (r *Registry) Add(s Suite) {
	r.suites = append(r.suites, s)
}

// Find returns the first suite that detects a project in dir, together
// with the loaded project. ErrNoProject when none matches.
func (r *Registry) Find(dir string) (Suite, Project, error) {
	for _, s := range r.suites {
		if !s.Detect(dir) {
			continue
		}
		p, err := s.Load(dir)
		if err != nil {
			return nil, Project{}, err
		}
		return s, p, nil
	}
	return nil, Project{}, ErrNoProject
}
