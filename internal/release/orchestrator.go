package release

import (
	"context"
	"fmt"
	"time"

	"github.com/projflow/projflow/internal/commit"
	"github.com/projflow/projflow/internal/git"
	"github.com/projflow/projflow/internal/hosting"
	"github.com/projflow/projflow/internal/project"
	"github.com/projflow/projflow/internal/runtime"
	"github.com/projflow/projflow/internal/semver"
)

// Options selects the release variant for one run.
type Options struct {
	// ForcedLevel overrides the level derived from the commit log.
	ForcedLevel *commit.Level

	// TakeAll spans the changelog over the whole history instead of
	// prev-tag..HEAD.
	TakeAll bool

	// Draft publishes the hosting release as a draft.
	Draft bool

	// WorkDir is the project root, usually the git worktree root.
	WorkDir string
}

// Summary reports what a release run did (or, in dry-run mode, would
// have done).
type Summary struct {
	Version       string
	Tag           string
	FilesToCommit []string
	DraftURL      string
}

// Orchestrator drives the release state machine. All collaborators are
// injected; the zero value is not usable.
type Orchestrator struct {
	Git       git.Client
	Hosting   hosting.Hosting
	Suites    *project.Registry
	Updaters  *UpdaterRegistry
	Changelog *commit.ChangelogWriter

	// Now is swapped out in tests. Defaults to time.Now.
	Now func() time.Time
}

// Run walks the release steps in order: list tags, analyze the log,
// compute and validate the next version, write the artifacts, commit,
// tag, push, and publish the hosting release. A dry run stops before the
// first mutation but still predicts the files that would be committed.
//
// Fatal guards (no matching suite, version not advancing, tag already
// exists) return typed errors before any mutating side effect of their
// step; already-performed steps are never rolled back.
func (o *Orchestrator) Run(ctx context.Context, rt *runtime.Runtime, opts Options) (Summary, error) {
	suite, proj, err := o.Suites.Find(opts.WorkDir)
	if err != nil {
		return Summary{}, err
	}

	tags, err := o.Git.TagList()
	if err != nil {
		return Summary{}, fmt.Errorf("listing tags: %w", err)
	}
	var prevTag string
	if len(tags) > 0 {
		prevTag = tags[len(tags)-1]
	}

	setup := commit.LogSetup{PrevTag: prevTag, TakeAll: opts.TakeAll}
	log, err := o.Git.Log(setup)
	if err != nil {
		return Summary{}, fmt.Errorf("analyzing commit log: %w", err)
	}

	level := log.Level
	if opts.ForcedLevel != nil {
		level = *opts.ForcedLevel
	}

	next, err := Bump(proj.Version, level)
	if err != nil {
		return Summary{}, err
	}
	setup.CurrTag = "v" + next

	if next == proj.Version {
		return Summary{}, &VersionNotAdvancingError{Version: next}
	}
	for _, tag := range tags {
		if tag == setup.CurrTag {
			return Summary{}, &TagExistsError{Tag: setup.CurrTag}
		}
	}
	// The manifest can lag behind the tag history; releasing a version
	// that sorts at or below the previous tag is still a no-op release.
	if prev, ok := semver.TryParse(prevTag, "v"); ok {
		if cand, ok := semver.TryParse(next, ""); ok && cand.CompareTo(prev) <= 0 {
			return Summary{}, &VersionNotAdvancingError{Version: cand.String()}
		}
	}

	body := log.Markdown(next, o.now())
	summary := Summary{Version: next, Tag: setup.CurrTag}

	if rt.DryRun {
		// Predict the commit set without invoking the updaters; their
		// side effects only mean something on a real run.
		summary.FilesToCommit = append(summary.FilesToCommit, o.Changelog.Filename)
		if p := suite.VersionFilePath(opts.WorkDir); p != "" {
			summary.FilesToCommit = append(summary.FilesToCommit, p)
		}
		rt.Message("would release", next, "as", setup.CurrTag)
		for _, f := range summary.FilesToCommit {
			rt.Message(rt.Dim("+"), f)
		}
		return summary, nil
	}

	if err := o.Changelog.Update(body); err != nil {
		return Summary{}, err
	}
	summary.FilesToCommit = append(summary.FilesToCommit, o.Changelog.Filename)

	if err := suite.SetVersion(opts.WorkDir, next); err != nil {
		return Summary{}, fmt.Errorf("setting project version: %w", err)
	}
	if p := suite.VersionFilePath(opts.WorkDir); p != "" {
		summary.FilesToCommit = append(summary.FilesToCommit, p)
	}

	for _, updater := range o.Updaters.All() {
		modified, err := updater.OnVersionChange(next)
		if err != nil {
			return Summary{}, fmt.Errorf("running version updater: %w", err)
		}
		summary.FilesToCommit = append(summary.FilesToCommit, modified...)
	}

	message := "release " + next
	if err := o.Git.AddFiles(summary.FilesToCommit...); err != nil {
		return Summary{}, err
	}
	if err := o.Git.Commit("chore: " + message + log.FormatCommitMessage()); err != nil {
		return Summary{}, err
	}
	if err := o.Git.AnnotatedTag(setup.CurrTag, message); err != nil {
		return Summary{}, err
	}
	if err := o.Git.Push(true); err != nil {
		return Summary{}, err
	}

	if o.Hosting != nil && o.Hosting.IsActive() {
		result, err := o.Hosting.AddRelease(ctx, body, setup, opts.Draft)
		if err != nil {
			return Summary{}, err
		}
		if result.DraftURL != "" {
			summary.DraftURL = result.DraftURL
			rt.Message("-- Visit draft at", result.DraftURL)
		}
	}

	return summary, nil
}

func (o *Orchestrator) now() time.Time {
	if o.Now != nil {
		return o.Now()
	}
	return time.Now()
}
