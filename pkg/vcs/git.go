package vcs

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/dogeorg/flaskgen/pkg/structure"
	"github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/plumbing"
	"github.com/go-git/go-git/v5/plumbing/format/gitignore"
	"github.com/go-git/go-git/v5/plumbing/object"
)

type CommitOptions struct {
	Message     string
	AuthorName  string
	AuthorEmail string
	When        time.Time
}

type CommitResult struct {
	Hash    plumbing.Hash
	Staged  []string
	Ignored []string
}

// Init creates a git repository at path, or opens the one already there.
func Init(path string) (*git.Repository, error) {
	repo, err := git.PlainInit(path, false)
	if errors.Is(err, git.ErrRepositoryAlreadyExists) {
		repo, err = git.PlainOpen(path)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to init repository at %s: %w", path, err)
	}
	return repo, nil
}

// Commit stages every file of tree that the worktree's .gitignore does not
// exclude and records a single commit.
func Commit(repo *git.Repository, tree structure.Tree, opts CommitOptions) (CommitResult, error) {
	var res CommitResult

	if opts.AuthorName == "" || opts.AuthorEmail == "" {
		return res, fmt.Errorf("commit author name and email are required")
	}

	wt, err := repo.Worktree()
	if err != nil {
		return res, fmt.Errorf("failed to get worktree: %w", err)
	}

	patterns, err := gitignore.ReadPatterns(wt.Filesystem, nil)
	if err != nil {
		return res, fmt.Errorf("failed to read ignore patterns: %w", err)
	}
	matcher := gitignore.NewMatcher(patterns)

	err = structure.Walk(tree, func(path string, n structure.Node) error {
		parts := strings.Split(path, "/")
		if matcher.Match(parts, n.IsDir()) {
			res.Ignored = append(res.Ignored, path)
			if n.IsDir() {
				return structure.SkipDir
			}
			return nil
		}
		if n.IsDir() {
			return nil
		}
		if _, err := wt.Add(path); err != nil {
			return fmt.Errorf("failed to stage %s: %w", path, err)
		}
		res.Staged = append(res.Staged, path)
		return nil
	})
	if err != nil {
		return res, err
	}

	status, err := wt.Status()
	if err != nil {
		return res, fmt.Errorf("failed to read worktree status: %w", err)
	}
	if !hasStagedChanges(status) {
		// nothing new since the last commit
		return res, nil
	}

	when := opts.When
	if when.IsZero() {
		when = time.Now()
	}

	res.Hash, err = wt.Commit(opts.Message, &git.CommitOptions{
		Author: &object.Signature{
			Name:  opts.AuthorName,
			Email: opts.AuthorEmail,
			When:  when,
		},
	})
	if err != nil {
		return res, fmt.Errorf("failed to commit: %w", err)
	}

	return res, nil
}

func hasStagedChanges(status git.Status) bool {
	for _, s := range status {
		if s.Staging != git.Unmodified && s.Staging != git.Untracked {
			return true
		}
	}
	return false
}
