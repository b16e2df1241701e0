// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"srcpack-cli/internal/config"
	"srcpack-cli/internal/release"
)

var (
	archiveRoot      string
	archiveOutputDir string
	archiveProject   string

	archiveCmd = &cobra.Command{
		Use:   "archive",
		Short: "Assemble the source archive for the current release",
		Long: `Assemble the release source archive for the repository at --root.

The run resolves the release tag (TAG_NAME override, then the nearest
date-stamped tag reachable from HEAD, then a timestamp+commit fallback),
snapshots the root repository and every registered submodule into one
tar stream under <project>-<tag>/, embeds the tag in a .tag file, prunes
known-bulky subtrees, and gzips the result.

Scheduled builds (BUILD_REASON=Schedule) always write
<project>-nightly-src.tar.gz; other builds write
<project>-<tag>-src.tar.gz. A failed run leaves no artifact behind.`,
		RunE: runArchive,
	}
)

func init() {
	archiveCmd.Flags().StringVar(&archiveRoot, "root", ".", "root repository checkout")
	archiveCmd.Flags().StringVar(&archiveOutputDir, "output-dir", "", "directory the artifact is written to (default: config or current directory)")
	archiveCmd.Flags().StringVar(&archiveProject, "project", "", "project name for the artifact and prefix (default: config or root directory name)")
}

// runArchive wires configuration, logging, and the release pipeline together.
func runArchive(cc *cobra.Command, _ []string) error {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintln(os.Stderr, ErrorStyle.Render("Error: ")+formatErrorForDisplay(err, verbose))
		return &ExitError{Code: 1}
	}

	rootDir, err := filepath.Abs(archiveRoot)
	if err != nil {
		return fmt.Errorf("resolving root directory: %w", err)
	}

	project := firstNonEmpty(archiveProject, cfg.Project, filepath.Base(rootDir))
	outputDir := firstNonEmpty(archiveOutputDir, cfg.OutputDir, ".")

	level := log.InfoLevel
	if verbose {
		level = log.DebugLevel
	}
	logger := log.NewWithOptions(os.Stderr, log.Options{
		Level:           level,
		ReportTimestamp: false,
	})

	pipeline := release.New(release.Options{
		RootDir:     rootDir,
		OutputDir:   outputDir,
		Project:     project,
		TagOverride: cfg.Tag,
		Scheduled:   cfg.Scheduled(),
		Logger:      logger,
	})

	result, err := pipeline.Run(cc.Context())
	if err != nil {
		return err
	}

	fmt.Fprintln(cc.OutOrStdout(), SuccessStyle.Render("✓ ")+result.ArtifactPath)
	return nil
}

// firstNonEmpty returns the first non-empty value.
func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}
