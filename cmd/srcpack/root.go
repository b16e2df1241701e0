// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/charmbracelet/fang"
	"github.com/spf13/cobra"

	"srcpack-cli/internal/issue"
)

var (
	// Version is the semantic version (set via -ldflags).
	Version = "dev"
	// Commit is the git commit hash (set via -ldflags).
	Commit = "unknown"
	// BuildDate is the build timestamp (set via -ldflags).
	BuildDate = "unknown"

	// verbose enables verbose output
	verbose bool

	// rootCmd represents the base command when called without any subcommands
	rootCmd = &cobra.Command{
		Use:   "srcpack",
		Short: "Assemble distributable source archives for multi-repository projects",
		Long: TitleStyle.Render("srcpack") + SubtitleStyle.Render(" - source archive assembler") + `

srcpack produces one reproducible, self-contained .tar.gz source
archive for a project made of a root git repository plus its registered
submodules. Submodule contents are not part of the root repository's
own tree, so a plain checkout archive is incomplete; srcpack merges the
tracked trees of every repository under a single release directory and
embeds the resolved release tag.

` + SubtitleStyle.Render("Environment:") + `
  TAG_NAME        explicit release tag (skips repository resolution)
  BUILD_REASON    "Schedule" marks a nightly run with a fixed artifact name

` + SubtitleStyle.Render("Examples:") + `
  srcpack archive                  Archive the repository in the current directory
  srcpack archive --root ~/src/x   Archive a specific checkout
  TAG_NAME=20240101-0101 srcpack archive`,
	}
)

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable verbose output")

	rootCmd.AddCommand(archiveCmd)
}

// getVersionString returns a formatted version string for display.
func getVersionString() string {
	if Version == "dev" {
		return "dev (built from source)"
	}
	return fmt.Sprintf("%s (commit: %s, built: %s)", Version, Commit, BuildDate)
}

// Execute adds all child commands to the root command and sets flags
// appropriately. This is called by main.main().
func Execute() {
	if err := fang.Execute(
		context.Background(),
		rootCmd,
		fang.WithVersion(getVersionString()),
		fang.WithNotifySignal(os.Interrupt),
	); err != nil {
		var exitErr *ExitError
		if errors.As(err, &exitErr) {
			os.Exit(exitErr.Code)
		}
		os.Exit(1)
	}
}

// formatErrorForDisplay formats an error for user display. ActionableErrors
// render their suggestions; verbose mode shows the full error chain.
func formatErrorForDisplay(err error, verboseMode bool) string {
	var ae *issue.ActionableError
	if errors.As(err, &ae) {
		return ae.Format(verboseMode)
	}
	return err.Error()
}
