// Package hosting abstracts the repository hosting service capable of
// publishing a release from a tag.
package hosting

import (
	"context"

	"github.com/projflow/projflow/internal/commit"
)

// Result is the outcome of publishing a release. DraftURL is set when a
// draft was created and should be surfaced to the user.
type Result struct {
	DraftURL string
}

// Hosting is the release-publishing collaborator. An inactive hosting
// (no remote, no credentials) skips the release step entirely.
type Hosting interface {
	IsActive() bool
	AddRelease(ctx context.Context, changelog string, setup commit.LogSetup, draft bool) (Result, error)
}

// Compile-time check that Inactive implements Hosting.
var _ Hosting = Inactive{}

// Inactive is the stand-in used when no hosting service is configured.
type Inactive struct{}

func (Inactive) IsActive() bool {
	return false
}

func (Inactive) AddRelease(context.Context, string, commit.LogSetup, bool) (Result, error) {
	return Result{}, nil
}
