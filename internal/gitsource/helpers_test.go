// SPDX-License-Identifier: MPL-2.0

package gitsource

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/plumbing"
	"github.com/go-git/go-git/v5/plumbing/object"
)

// testSignature returns a fixed commit signature so fixture repositories are
// deterministic across test runs.
func testSignature(when time.Time) *object.Signature {
	return &object.Signature{
		Name:  "Test Author",
		Email: "test@example.invalid",
		When:  when,
	}
}

// initRepo creates an empty repository in a fresh temp directory.
func initRepo(t *testing.T) (string, *git.Repository) {
	t.Helper()

	dir := t.TempDir()
	repo, err := git.PlainInit(dir, false)
	if err != nil {
		t.Fatalf("PlainInit() error = %v", err)
	}
	return dir, repo
}

// writeFile writes a worktree file, creating parent directories as needed.
func writeFile(t *testing.T, dir, name, content string) {
	t.Helper()

	path := filepath.Join(dir, filepath.FromSlash(name))
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatalf("MkdirAll() error = %v", err)
	}
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("WriteFile() error = %v", err)
	}
}

// commitAll stages the given worktree paths and commits them at a fixed time.
func commitAll(t *testing.T, repo *git.Repository, when time.Time, names ...string) plumbing.Hash {
	t.Helper()

	wt, err := repo.Worktree()
	if err != nil {
		t.Fatalf("Worktree() error = %v", err)
	}
	for _, name := range names {
		if _, err := wt.Add(name); err != nil {
			t.Fatalf("Add(%q) error = %v", name, err)
		}
	}

	sig := testSignature(when)
	hash, err := wt.Commit("commit "+names[0], &git.CommitOptions{
		Author:    sig,
		Committer: sig,
	})
	if err != nil {
		t.Fatalf("Commit() error = %v", err)
	}
	return hash
}

// lightweightTag creates a plain (non-annotated) tag pointing at hash.
func lightweightTag(t *testing.T, repo *git.Repository, name string, hash plumbing.Hash) {
	t.Helper()

	if _, err := repo.CreateTag(name, hash, nil); err != nil {
		t.Fatalf("CreateTag(%q) error = %v", name, err)
	}
}

// annotatedTag creates an annotated tag object pointing at hash.
func annotatedTag(t *testing.T, repo *git.Repository, name string, hash plumbing.Hash) {
	t.Helper()

	_, err := repo.CreateTag(name, hash, &git.CreateTagOptions{
		Tagger:  testSignature(time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC)),
		Message: "release " + name,
	})
	if err != nil {
		t.Fatalf("CreateTag(%q) error = %v", name, err)
	}
}

// mustOpen opens a Repository or fails the test.
func mustOpen(t *testing.T, dir string) *Repository {
	t.Helper()

	repo, err := Open(dir)
	if err != nil {
		t.Fatalf("Open(%q) error = %v", dir, err)
	}
	return repo
}
