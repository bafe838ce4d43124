package git

import (
	"errors"
	"fmt"
	"time"

	gogit "github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/config"
	"github.com/go-git/go-git/v5/plumbing"
	"github.com/go-git/go-git/v5/plumbing/object"
	"github.com/go-git/go-git/v5/plumbing/storer"

	"github.com/projflow/projflow/internal/commit"
)

// Compile-time check that GoGitClient implements Client.
var _ Client = (*GoGitClient)(nil)

// GoGitClient implements Client using go-git.
type GoGitClient struct {
	repo    *gogit.Repository
	workDir string

	// now is swapped out in tests for deterministic signatures.
	now func() time.Time
}

// Open opens the git repository containing path.
func Open(path string) (*GoGitClient, error) {
	r, err := gogit.PlainOpenWithOptions(path, &gogit.PlainOpenOptions{
		DetectDotGit: true,
	})
	if err != nil {
		return nil, fmt.Errorf("opening git repository at %s: %w", path, err)
	}

	wt, err := r.Worktree()
	if err != nil {
		return nil, fmt.Errorf("getting worktree: %w", err)
	}

	return &GoGitClient{repo: r, workDir: wt.Filesystem.Root(), now: time.Now}, nil
}

// WorkingDirectory returns the worktree root.
func (c *GoGitClient) WorkingDirectory() string {
	return c.workDir
}

func (c *GoGitClient) TagList() ([]string, error) {
	iter, err := c.repo.Tags()
	if err != nil {
		return nil, fmt.Errorf("listing tags: %w", err)
	}

	var tags []string
	err = iter.ForEach(func(ref *plumbing.Reference) error {
		tags = append(tags, ref.Name().Short())
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("iterating tags: %w", err)
	}
	return tags, nil
}

func (c *GoGitClient) Log(setup commit.LogSetup) (commit.Log, error) {
	head, err := c.repo.Head()
	if err != nil {
		return commit.Log{}, fmt.Errorf("getting HEAD: %w", err)
	}

	var stop plumbing.Hash
	if !setup.TakeAll && setup.PrevTag != "" {
		stop, err = c.peelTag(setup.PrevTag)
		if err != nil {
			return commit.Log{}, err
		}
	}

	iter, err := c.repo.Log(&gogit.LogOptions{From: head.Hash()})
	if err != nil {
		return commit.Log{}, fmt.Errorf("reading commit log: %w", err)
	}

	var parsed []commit.ParsedCommit
	err = iter.ForEach(func(co *object.Commit) error {
		if co.Hash == stop {
			return storer.ErrStop
		}
		parsed = append(parsed, commit.ParsedCommit{
			Sha:     co.Hash.String(),
			Message: co.Message,
		})
		return nil
	})
	if err != nil {
		return commit.Log{}, fmt.Errorf("iterating commit log: %w", err)
	}

	return commit.Analyze(parsed), nil
}

// peelTag resolves a tag name to the commit it points at, peeling
// annotated tags through to their target.
func (c *GoGitClient) peelTag(name string) (plumbing.Hash, error) {
	ref, err := c.repo.Reference(plumbing.NewTagReferenceName(name), true)
	if err != nil {
		return plumbing.ZeroHash, fmt.Errorf("resolving tag %s: %w", name, err)
	}

	if tagObj, err := c.repo.TagObject(ref.Hash()); err == nil {
		co, err := tagObj.Commit()
		if err != nil {
			return plumbing.ZeroHash, fmt.Errorf("peeling tag %s: %w", name, err)
		}
		return co.Hash, nil
	}
	return ref.Hash(), nil
}

func (c *GoGitClient) AddFiles(paths ...string) error {
	wt, err := c.repo.Worktree()
	if err != nil {
		return fmt.Errorf("getting worktree: %w", err)
	}
	for _, path := range paths {
		if _, err := wt.Add(path); err != nil {
			return fmt.Errorf("staging %s: %w", path, err)
		}
	}
	return nil
}

func (c *GoGitClient) Commit(message string) error {
	wt, err := c.repo.Worktree()
	if err != nil {
		return fmt.Errorf("getting worktree: %w", err)
	}
	if _, err := wt.Commit(message, &gogit.CommitOptions{Author: c.signature()}); err != nil {
		return fmt.Errorf("creating commit: %w", err)
	}
	return nil
}

func (c *GoGitClient) AnnotatedTag(name, message string) error {
	head, err := c.repo.Head()
	if err != nil {
		return fmt.Errorf("getting HEAD: %w", err)
	}
	_, err = c.repo.CreateTag(name, head.Hash(), &gogit.CreateTagOptions{
		Message: message,
		Tagger:  c.signature(),
	})
	if err != nil {
		return fmt.Errorf("creating tag %s: %w", name, err)
	}
	return nil
}

func (c *GoGitClient) Push(followTags bool) error {
	err := c.repo.Push(&gogit.PushOptions{
		RemoteName: "origin",
		FollowTags: followTags,
	})
	if errors.Is(err, gogit.NoErrAlreadyUpToDate) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("pushing to origin: %w", err)
	}
	return nil
}

func (c *GoGitClient) RemoteURL(name string) (string, error) {
	remote, err := c.repo.Remote(name)
	if err != nil {
		return "", fmt.Errorf("looking up remote %s: %w", name, err)
	}
	urls := remote.Config().URLs
	if len(urls) == 0 {
		return "", fmt.Errorf("remote %s has no URL", name)
	}
	return urls[0], nil
}

// signature builds the commit/tag signature from the repository's git
// config, falling back to a tool identity when none is set.
func (c *GoGitClient) signature() *object.Signature {
	name, email := "projflow", "projflow@localhost"
	if cfg, err := c.repo.ConfigScoped(config.SystemScope); err == nil {
		if cfg.User.Name != "" {
			name = cfg.User.Name
		}
		if cfg.User.Email != "" {
			email = cfg.User.Email
		}
	}
	return &object.Signature{Name: name, Email: email, When: c.now()}
}
