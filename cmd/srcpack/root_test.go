// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"errors"
	"testing"

	"srcpack-cli/internal/issue"
)

func TestGetVersionString(t *testing.T) {
	// Not parallel: subtests mutate package-level Version/Commit/BuildDate vars.

	t.Run("ldflags version takes priority", func(t *testing.T) {
		// Save and restore package-level vars.
		origVersion, origCommit, origBuildDate := Version, Commit, BuildDate
		t.Cleanup(func() {
			Version, Commit, BuildDate = origVersion, origCommit, origBuildDate
		})

		Version = "v1.2.3"
		Commit = "abc1234"
		BuildDate = "2026-06-15T10:00:00Z"

		got := getVersionString()
		want := "v1.2.3 (commit: abc1234, built: 2026-06-15T10:00:00Z)"
		if got != want {
			t.Errorf("getVersionString() = %q, want %q", got, want)
		}
	})

	t.Run("fallback to dev when no build info", func(t *testing.T) {
		origVersion, origCommit, origBuildDate := Version, Commit, BuildDate
		t.Cleanup(func() {
			Version, Commit, BuildDate = origVersion, origCommit, origBuildDate
		})

		Version = "dev"
		Commit = "unknown"
		BuildDate = "unknown"

		got := getVersionString()
		want := "dev (built from source)"
		if got != want {
			t.Errorf("getVersionString() = %q, want %q", got, want)
		}
	})
}

func TestFormatErrorForDisplay(t *testing.T) {
	t.Parallel()

	t.Run("plain error", func(t *testing.T) {
		t.Parallel()
		got := formatErrorForDisplay(errors.New("boom"), false)
		if got != "boom" {
			t.Errorf("formatErrorForDisplay() = %q, want %q", got, "boom")
		}
	})

	t.Run("actionable error renders suggestions", func(t *testing.T) {
		t.Parallel()
		err := issue.NewErrorContext().
			WithOperation("load configuration").
			WithSuggestion("Check that the file contains valid CUE syntax").
			BuildError()

		got := formatErrorForDisplay(err, false)
		want := "failed to load configuration\n\n  • Check that the file contains valid CUE syntax"
		if got != want {
			t.Errorf("formatErrorForDisplay() = %q, want %q", got, want)
		}
	})
}

func TestRootCommandRegistration(t *testing.T) {
	t.Parallel()

	sub, _, err := rootCmd.Find([]string{"archive"})
	if err != nil {
		t.Fatalf("Find(archive) error = %v", err)
	}
	if sub.Name() != "archive" {
		t.Errorf("Find(archive) = %q, want the archive subcommand", sub.Name())
	}

	for _, flag := range []string{"root", "output-dir", "project"} {
		if sub.Flags().Lookup(flag) == nil {
			t.Errorf("archive command missing --%s flag", flag)
		}
	}
	if rootCmd.PersistentFlags().Lookup("verbose") == nil {
		t.Error("root command missing --verbose flag")
	}
}
