package cmd

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/projflow/projflow/internal/commit"
	"github.com/projflow/projflow/internal/config"
	"github.com/projflow/projflow/internal/git"
	"github.com/projflow/projflow/internal/hosting"
	"github.com/projflow/projflow/internal/project"
	"github.com/projflow/projflow/internal/release"
)

var (
	flagLevel   string
	flagTakeAll bool
	flagDraft   bool
	flagToken   string
)

var releaseCmd = &cobra.Command{
	Use:   "release",
	Short: "Bump the version, update the changelog, tag, and publish",
	Args:  cobra.NoArgs,
	RunE:  releaseRunE,
}

func init() {
	releaseCmd.Flags().StringVar(&flagLevel, "level", "", "force the bump level: patch, feature, or breaking")
	releaseCmd.Flags().BoolVar(&flagTakeAll, "all", false, "span the changelog over the whole history")
	releaseCmd.Flags().BoolVar(&flagDraft, "draft", false, "publish the hosting release as a draft")
	releaseCmd.Flags().StringVar(&flagToken, "token", "", "hosting API token (default: GITHUB_TOKEN)")
	rootCmd.AddCommand(releaseCmd)
}

func releaseRunE(cmd *cobra.Command, _ []string) error {
	rt := newRuntime()

	client, err := git.Open(".")
	if err != nil {
		return err
	}
	workDir := client.WorkingDirectory()

	cfg, err := config.Load(flagConfig, workDir)
	if err != nil {
		return err
	}

	// Changelog and version-file paths are committed relative to the
	// worktree root.
	if err := os.Chdir(workDir); err != nil {
		return fmt.Errorf("entering worktree: %w", err)
	}

	var forced *commit.Level
	if flagLevel != "" {
		level, ok := commit.ParseLevel(flagLevel)
		if !ok {
			return fmt.Errorf("unknown level %q", flagLevel)
		}
		forced = &level
	}

	orch := &release.Orchestrator{
		Git:       client,
		Hosting:   resolveHosting(client),
		Suites:    project.NewRegistry(project.YAMLSuite{}),
		Updaters:  release.NewUpdaterRegistry(),
		Changelog: commit.NewChangelogWriter(cfg.Changelog),
	}

	summary, err := orch.Run(cmd.Context(), rt, release.Options{
		ForcedLevel: forced,
		TakeAll:     flagTakeAll,
		Draft:       flagDraft,
		WorkDir:     workDir,
	})
	if err != nil {
		var notAdvancing *release.VersionNotAdvancingError
		var tagExists *release.TagExistsError
		if errors.Is(err, project.ErrNoProject) ||
			errors.As(err, &notAdvancing) ||
			errors.As(err, &tagExists) {
			rt.Fatal("%s", err)
		}
		return err
	}

	if !rt.DryRun {
		rt.Message("released", summary.Tag)
	}
	return nil
}

// resolveHosting picks the hosting collaborator: GitHub when origin
// points there and credentials exist, the inactive stub otherwise.
func resolveHosting(client *git.GoGitClient) hosting.Hosting {
	remoteURL, err := client.RemoteURL("origin")
	if err != nil {
		return hosting.Inactive{}
	}
	gh, err := hosting.NewGitHub(remoteURL, hosting.ClientConfig{Token: flagToken})
	if err != nil || gh == nil {
		return hosting.Inactive{}
	}
	return gh
}
