// SPDX-License-Identifier: MPL-2.0

package gitsource

import (
	"errors"
	"fmt"
	"time"

	"github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/plumbing/object"
)

// ErrNoCommits indicates a repository whose HEAD cannot be resolved to a
// commit, typically a freshly initialized repository with no history.
var ErrNoCommits = errors.New("repository has no commits")

// Repository is a read-only handle on a local git repository. It wraps the
// go-git repository together with the filesystem path it was opened from,
// which is kept for error reporting.
type Repository struct {
	path string
	repo *git.Repository
}

// Open opens the repository at path. Submodule checkouts, whose .git is a
// gitdir redirect file rather than a directory, are handled transparently.
func Open(path string) (*Repository, error) {
	repo, err := git.PlainOpen(path)
	if err != nil {
		return nil, fmt.Errorf("opening repository %s: %w", path, err)
	}
	return &Repository{path: path, repo: repo}, nil
}

// Path returns the filesystem path the repository was opened from.
func (r *Repository) Path() string {
	return r.path
}

// HeadTimestamp returns the committer time of the HEAD commit in UTC.
func (r *Repository) HeadTimestamp() (time.Time, error) {
	commit, err := r.headCommit()
	if err != nil {
		return time.Time{}, err
	}
	return commit.Committer.When.UTC(), nil
}

// headCommit resolves HEAD to its commit object.
func (r *Repository) headCommit() (*object.Commit, error) {
	head, err := r.repo.Head()
	if err != nil {
		return nil, fmt.Errorf("%w: %s", ErrNoCommits, r.path)
	}

	commit, err := r.repo.CommitObject(head.Hash())
	if err != nil {
		return nil, fmt.Errorf("resolving HEAD commit %s: %w", head.Hash(), err)
	}
	return commit, nil
}
