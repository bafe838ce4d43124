package git

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/projflow/projflow/internal/commit"
	"github.com/projflow/projflow/internal/testutil"
)

func openTestClient(t *testing.T, repo *testutil.TestRepo) *GoGitClient {
	t.Helper()
	client, err := Open(repo.Path())
	require.NoError(t, err)
	client.now = func() time.Time {
		return time.Date(2026, 2, 1, 12, 0, 0, 0, time.UTC)
	}
	return client
}

func TestOpen_DetectsRepositoryFromSubdirectory(t *testing.T) {
	repo := testutil.NewTestRepo(t)
	repo.AddCommit("chore: seed")
	repo.WriteFile("sub/dir/file.txt", "content")

	client, err := Open(filepath.Join(repo.Path(), "sub", "dir"))
	require.NoError(t, err)
	require.Equal(t, repo.Path(), client.WorkingDirectory())
}

func TestOpen_FailsOutsideRepository(t *testing.T) {
	_, err := Open(t.TempDir())
	require.Error(t, err)
}

func TestTagList(t *testing.T) {
	repo := testutil.NewTestRepo(t)
	sha := repo.AddCommit("feat: first")
	repo.CreateTag("v1.0.0", sha)
	sha = repo.AddCommit("fix: second")
	repo.CreateAnnotatedTag("v1.0.1", sha, "release 1.0.1")

	client := openTestClient(t, repo)
	tags, err := client.TagList()
	require.NoError(t, err)
	require.ElementsMatch(t, []string{"v1.0.0", "v1.0.1"}, tags)
}

func TestLog_StopsAtPreviousTag(t *testing.T) {
	repo := testutil.NewTestRepo(t)
	repo.AddCommit("feat: old work")
	sha := repo.AddCommit("chore: release 1.0.0")
	repo.CreateTag("v1.0.0", sha)
	repo.AddCommit("fix(parser): handle empty input")
	repo.AddCommit("feat(cli): add color flag")

	client := openTestClient(t, repo)
	log, err := client.Log(commit.LogSetup{PrevTag: "v1.0.0", CurrTag: "v1.1.0"})
	require.NoError(t, err)

	require.Len(t, log.Entries, 2)
	require.Equal(t, commit.LevelFeature, log.Level)
	summaries := []string{log.Entries[0].Summary, log.Entries[1].Summary}
	require.ElementsMatch(t, []string{"handle empty input", "add color flag"}, summaries)
}

func TestLog_PeelsAnnotatedPreviousTag(t *testing.T) {
	repo := testutil.NewTestRepo(t)
	sha := repo.AddCommit("chore: release 1.0.0")
	repo.CreateAnnotatedTag("v1.0.0", sha, "release 1.0.0")
	repo.AddCommit("fix: one change")

	client := openTestClient(t, repo)
	log, err := client.Log(commit.LogSetup{PrevTag: "v1.0.0", CurrTag: "v1.0.1"})
	require.NoError(t, err)

	require.Len(t, log.Entries, 1)
	require.Equal(t, commit.LevelPatch, log.Level)
}

func TestLog_TakeAllIgnoresPreviousTag(t *testing.T) {
	repo := testutil.NewTestRepo(t)
	repo.AddCommit("feat: old work")
	sha := repo.AddCommit("chore: release 1.0.0")
	repo.CreateTag("v1.0.0", sha)
	repo.AddCommit("fix: recent work")

	client := openTestClient(t, repo)
	log, err := client.Log(commit.LogSetup{PrevTag: "v1.0.0", CurrTag: "v1.1.0", TakeAll: true})
	require.NoError(t, err)

	require.Len(t, log.Entries, 3)
	require.Equal(t, commit.LevelFeature, log.Level)
}

func TestLog_MissingPreviousTag(t *testing.T) {
	repo := testutil.NewTestRepo(t)
	repo.AddCommit("feat: work")

	client := openTestClient(t, repo)
	_, err := client.Log(commit.LogSetup{PrevTag: "v9.9.9", CurrTag: "v10.0.0"})
	require.ErrorContains(t, err, "v9.9.9")
}

func TestAddFilesCommitAndTag(t *testing.T) {
	repo := testutil.NewTestRepo(t)
	repo.AddCommit("chore: seed")
	repo.WriteFile("CHANGELOG.md", "# Changelog\n")
	repo.WriteFile("project.yml", "name: demo\nversion: 1.1.0\n")

	client := openTestClient(t, repo)
	require.NoError(t, client.AddFiles("CHANGELOG.md", "project.yml"))
	require.NoError(t, client.Commit("chore: release 1.1.0"))
	require.NoError(t, client.AnnotatedTag("v1.1.0", "release 1.1.0"))

	tags, err := client.TagList()
	require.NoError(t, err)
	require.Equal(t, []string{"v1.1.0"}, tags)

	// The release commit itself is benign, so a follow-up log over the
	// new tag range is empty.
	log, err := client.Log(commit.LogSetup{PrevTag: "v1.1.0", CurrTag: "v1.2.0"})
	require.NoError(t, err)
	require.Empty(t, log.Entries)
	require.Equal(t, commit.LevelBenign, log.Level)
}

func TestRemoteURL(t *testing.T) {
	repo := testutil.NewTestRepo(t)
	repo.AddCommit("chore: seed")

	client := openTestClient(t, repo)
	_, err := client.RemoteURL("origin")
	require.Error(t, err)
}
