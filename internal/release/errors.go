// Package release implements the version-bump and release orchestration:
// computing the next version from commit history, updating the changelog,
// committing and tagging, and triggering the hosting release.
package release

import "fmt"

// VersionNotAdvancingError reports a release that would re-issue the
// current version. A no-op release is forbidden.
type VersionNotAdvancingError struct {
	Version string
}

func (e *VersionNotAdvancingError) Error() string {
	return fmt.Sprintf("version %s is not advancing", e.Version)
}

// TagExistsError reports that the candidate tag already exists.
type TagExistsError struct {
	Tag string
}

func (e *TagExistsError) Error() string {
	return fmt.Sprintf("tag %s already exists", e.Tag)
}
