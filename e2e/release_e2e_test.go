// Package e2e contains end-to-end tests that exercise the full release
// flow against real (temporary) git repositories.
//
// Each test builds a purpose-made repo with a project manifest and a
// commit history, runs the orchestrator with the real go-git client, and
// asserts on the resulting artifacts: changelog, manifest, tags, and the
// refs that arrive at origin.
package e2e

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	gogit "github.com/go-git/go-git/v5"
	"github.com/stretchr/testify/require"

	"github.com/projflow/projflow/internal/commit"
	"github.com/projflow/projflow/internal/git"
	"github.com/projflow/projflow/internal/hosting"
	"github.com/projflow/projflow/internal/project"
	"github.com/projflow/projflow/internal/release"
	"github.com/projflow/projflow/internal/runtime"
	"github.com/projflow/projflow/internal/testutil"
)

func newOrchestrator(t *testing.T, repoPath string) *release.Orchestrator {
	t.Helper()

	client, err := git.Open(repoPath)
	require.NoError(t, err)

	return &release.Orchestrator{
		Git:       client,
		Hosting:   hosting.Inactive{},
		Suites:    project.NewRegistry(project.YAMLSuite{}),
		Updaters:  release.NewUpdaterRegistry(),
		Changelog: commit.NewChangelogWriter("CHANGELOG.md"),
		Now: func() time.Time {
			return time.Date(2026, 8, 1, 12, 0, 0, 0, time.UTC)
		},
	}
}

func silentRuntime() *runtime.Runtime {
	rt := runtime.New()
	rt.Silent = true
	return rt
}

func TestRelease_EndToEnd(t *testing.T) {
	repo := testutil.NewTestRepo(t)
	repo.WriteManifest("demo", "1.0.0")
	sha := repo.CommitAll("chore: release 1.0.0")
	repo.CreateAnnotatedTag("v1.0.0", sha, "release 1.0.0")
	repo.AddCommit("fix(parser): handle empty input")
	repo.AddCommit("feat(cli): add color flag")
	origin := repo.AddBareOrigin()

	t.Chdir(repo.Path())

	orch := newOrchestrator(t, repo.Path())
	summary, err := orch.Run(context.Background(), silentRuntime(), release.Options{
		WorkDir: repo.Path(),
	})
	require.NoError(t, err)

	require.Equal(t, "1.1.0", summary.Version)
	require.Equal(t, "v1.1.0", summary.Tag)
	require.Equal(t, []string{"CHANGELOG.md", "project.yml"}, summary.FilesToCommit)

	// Artifacts on disk.
	changelog, err := os.ReadFile(filepath.Join(repo.Path(), "CHANGELOG.md"))
	require.NoError(t, err)
	require.Contains(t, string(changelog), "## 1.1.0 (2026-08-01)")
	require.Contains(t, string(changelog), "add color flag")
	require.Contains(t, string(changelog), "handle empty input")

	p, err := project.YAMLSuite{}.Load(repo.Path())
	require.NoError(t, err)
	require.Equal(t, "1.1.0", p.Version)

	// The tag exists locally and arrived at origin.
	tags, err := orch.Git.TagList()
	require.NoError(t, err)
	require.Contains(t, tags, "v1.1.0")

	bare, err := gogit.PlainOpen(origin)
	require.NoError(t, err)
	_, err = bare.Tag("v1.1.0")
	require.NoError(t, err)
}

func TestRelease_DryRunLeavesRepoUntouched(t *testing.T) {
	repo := testutil.NewTestRepo(t)
	repo.WriteManifest("demo", "1.0.0")
	sha := repo.CommitAll("chore: release 1.0.0")
	repo.CreateAnnotatedTag("v1.0.0", sha, "release 1.0.0")
	repo.AddCommit("fix: small repair")
	repo.AddBareOrigin()

	t.Chdir(repo.Path())

	rt := silentRuntime()
	rt.DryRun = true

	orch := newOrchestrator(t, repo.Path())
	summary, err := orch.Run(context.Background(), rt, release.Options{
		WorkDir: repo.Path(),
	})
	require.NoError(t, err)
	require.Equal(t, "1.0.1", summary.Version)
	require.Equal(t, []string{"CHANGELOG.md", "project.yml"}, summary.FilesToCommit)

	// No changelog, no version change, no tag.
	_, err = os.Stat(filepath.Join(repo.Path(), "CHANGELOG.md"))
	require.True(t, os.IsNotExist(err))

	p, err := project.YAMLSuite{}.Load(repo.Path())
	require.NoError(t, err)
	require.Equal(t, "1.0.0", p.Version)

	tags, err := orch.Git.TagList()
	require.NoError(t, err)
	require.NotContains(t, tags, "v1.0.1")
}

func TestRelease_BenignHistoryDoesNotAdvance(t *testing.T) {
	repo := testutil.NewTestRepo(t)
	repo.WriteManifest("demo", "1.0.0")
	sha := repo.CommitAll("chore: release 1.0.0")
	repo.CreateAnnotatedTag("v1.0.0", sha, "release 1.0.0")
	repo.AddCommit("docs: clarify readme")
	repo.AddBareOrigin()

	t.Chdir(repo.Path())

	orch := newOrchestrator(t, repo.Path())
	_, err := orch.Run(context.Background(), silentRuntime(), release.Options{
		WorkDir: repo.Path(),
	})

	var notAdvancing *release.VersionNotAdvancingError
	require.ErrorAs(t, err, &notAdvancing)
	require.Equal(t, "1.0.0", notAdvancing.Version)
}

func TestRelease_ForcedLevelOnBenignHistory(t *testing.T) {
	repo := testutil.NewTestRepo(t)
	repo.WriteManifest("demo", "2.3.4")
	sha := repo.CommitAll("chore: release 2.3.4")
	repo.CreateAnnotatedTag("v2.3.4", sha, "release 2.3.4")
	repo.AddCommit("docs: clarify readme")
	repo.AddBareOrigin()

	t.Chdir(repo.Path())

	level := commit.LevelBreaking
	orch := newOrchestrator(t, repo.Path())
	summary, err := orch.Run(context.Background(), silentRuntime(), release.Options{
		ForcedLevel: &level,
		WorkDir:     repo.Path(),
	})
	require.NoError(t, err)
	require.Equal(t, "3.0.0", summary.Version)

	tags, err := orch.Git.TagList()
	require.NoError(t, err)
	require.Contains(t, tags, "v3.0.0")
}
