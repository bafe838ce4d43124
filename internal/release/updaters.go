package release

// VersionUpdater is a collaborator whose files also carry the project
// version. It is invoked with the new version and returns the paths it
// modified, which join the release commit.
type VersionUpdater interface {
	OnVersionChange(newVersion string) ([]string, error)
}

// UpdaterRegistry is the explicit ordered collection of version
// updaters, populated at bootstrap and passed to the orchestrator.
type UpdaterRegistry struct {
	updaters []VersionUpdater
}

// NewUpdaterRegistry creates a registry with the given updaters in order.
func NewUpdaterRegistry(updaters ...VersionUpdater) *UpdaterRegistry {
	return &UpdaterRegistry{updaters: updaters}
}

// Add appends an updater.
func (r *UpdaterRegistry) Add(u VersionUpdater) {
	r.updaters = append(r.updaters, u)
}

// All returns the registered updaters in registration order.
func (r *UpdaterRegistry) All() []VersionUpdater {
	if r == nil {
		return nil
	}
	return r.updaters
}

// UpdaterFunc adapts a function to the VersionUpdater interface.
type UpdaterFunc func(newVersion string) ([]string, error)

func (f UpdaterFunc) OnVersionChange(newVersion string) ([]string, error) {
	return f(newVersion)
}
