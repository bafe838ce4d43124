// Package git provides the VCS collaborator the release flow depends on:
// tag listing, commit-range analysis, staging, committing, annotated
// tagging, and pushing. The interface is the seam tests mock.
package git

import "github.com/projflow/projflow/internal/commit"

// Client is the commit/log abstraction consumed by the release
// orchestrator. Tag order follows the backend's listing order; the most
// recent tag is assumed to be the last element.
type Client interface {
	// TagList returns every tag name in the repository.
	TagList() ([]string, error)

	// Log analyzes the commit range the setup describes (previous tag
	// exclusive to HEAD, or all history when TakeAll is set) into
	// changelog entries and an aggregate commit level.
	Log(setup commit.LogSetup) (commit.Log, error)

	// AddFiles stages the given paths, relative to the worktree root.
	AddFiles(paths ...string) error

	// Commit records the staged changes with the given message.
	Commit(message string) error

	// AnnotatedTag creates an annotated tag at HEAD.
	AnnotatedTag(name, message string) error

	// Push sends the current branch, and its tags when followTags is
	// set, to origin.
	Push(followTags bool) error

	// RemoteURL returns the fetch URL of the named remote, or an error
	// when the remote does not exist.
	RemoteURL(name string) (string, error)
}
