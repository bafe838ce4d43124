// Package testutil provides helpers for creating temporary git
// repositories with controlled history for exercising the release flow.
package testutil

import (
	"fmt"
	"os"
	"path/filepath"
	"testing"
	"time"

	gogit "github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/config"
	"github.com/go-git/go-git/v5/plumbing"
	"github.com/go-git/go-git/v5/plumbing/object"
)

// TestRepo is a builder for temporary git repositories with a
// deterministic clock.
type TestRepo struct {
	t    testing.TB
	path string
	repo *gogit.Repository
	time time.Time
}

// NewTestRepo creates and initializes a git repository in a temporary
// directory.
func NewTestRepo(t testing.TB) *TestRepo {
	t.Helper()
	dir := t.TempDir()

	repo, err := gogit.PlainInit(dir, false)
	if err != nil {
		t.Fatalf("failed to init repo: %v", err)
	}

	return &TestRepo{
		t:    t,
		path: dir,
		repo: repo,
		time: time.Date(2026, 1, 1, 12, 0, 0, 0, time.UTC),
	}
}

// Path returns the repository root directory.
func (r *TestRepo) Path() string {
	return r.path
}

// WriteFile writes a file relative to the repository root.
func (r *TestRepo) WriteFile(name, content string) {
	r.t.Helper()
	path := filepath.Join(r.path, name)
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		r.t.Fatalf("creating directory for %s: %v", name, err)
	}
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		r.t.Fatalf("writing %s: %v", name, err)
	}
}

// WriteManifest writes a project.yml with the given name and version.
func (r *TestRepo) WriteManifest(name, version string) {
	r.t.Helper()
	r.WriteFile("project.yml", fmt.Sprintf("name: %s\nversion: %s\n", name, version))
}

// AddCommit creates a new commit with the given message. A file named
// after the commit's timestamp is created so every commit has changes.
// Returns the commit SHA.
func (r *TestRepo) AddCommit(message string) string {
	r.t.Helper()
	r.time = r.time.Add(time.Minute)

	wt, err := r.repo.Worktree()
	if err != nil {
		r.t.Fatalf("getting worktree: %v", err)
	}

	filename := fmt.Sprintf("file-%d.txt", r.time.Unix())
	if err := os.WriteFile(filepath.Join(r.path, filename), []byte(message), 0o644); err != nil {
		r.t.Fatalf("writing file: %v", err)
	}
	if _, err := wt.Add(filename); err != nil {
		r.t.Fatalf("staging file: %v", err)
	}

	hash, err := wt.Commit(message, &gogit.CommitOptions{
		Author: r.signature(),
	})
	if err != nil {
		r.t.Fatalf("committing: %v", err)
	}
	return hash.String()
}

// CommitAll stages everything in the worktree and commits it.
func (r *TestRepo) CommitAll(message string) string {
	r.t.Helper()
	r.time = r.time.Add(time.Minute)

	wt, err := r.repo.Worktree()
	if err != nil {
		r.t.Fatalf("getting worktree: %v", err)
	}
	if err := wt.AddGlob("."); err != nil {
		r.t.Fatalf("staging worktree: %v", err)
	}

	hash, err := wt.Commit(message, &gogit.CommitOptions{Author: r.signature()})
	if err != nil {
		r.t.Fatalf("committing: %v", err)
	}
	return hash.String()
}

// CreateTag creates a lightweight tag pointing at the given SHA.
func (r *TestRepo) CreateTag(name, sha string) {
	r.t.Helper()
	ref := plumbing.NewReferenceFromStrings("refs/tags/"+name, sha)
	if err := r.repo.Storer.SetReference(ref); err != nil {
		r.t.Fatalf("creating tag %s: %v", name, err)
	}
}

// CreateAnnotatedTag creates an annotated tag pointing at the given SHA.
func (r *TestRepo) CreateAnnotatedTag(name, sha, message string) {
	r.t.Helper()
	r.time = r.time.Add(time.Second)

	_, err := r.repo.CreateTag(name, plumbing.NewHash(sha), &gogit.CreateTagOptions{
		Tagger:  r.signature(),
		Message: message,
	})
	if err != nil {
		r.t.Fatalf("creating annotated tag %s: %v", name, err)
	}
}

// AddBareOrigin creates a bare repository in a temporary directory and
// registers it as the "origin" remote, giving pushes somewhere to land.
// Returns the bare repository's path.
func (r *TestRepo) AddBareOrigin() string {
	r.t.Helper()
	dir := r.t.TempDir()

	if _, err := gogit.PlainInit(dir, true); err != nil {
		r.t.Fatalf("initializing bare origin: %v", err)
	}
	_, err := r.repo.CreateRemote(&config.RemoteConfig{
		Name: "origin",
		URLs: []string{dir},
	})
	if err != nil {
		r.t.Fatalf("adding origin remote: %v", err)
	}
	return dir
}

func (r *TestRepo) signature() *object.Signature {
	return &object.Signature{
		Name:  "Test",
		Email: "test@example.com",
		When:  r.time,
	}
}
