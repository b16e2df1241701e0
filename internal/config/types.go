// SPDX-License-Identifier: MPL-2.0

package config

import (
	"errors"
	"fmt"
	"strings"
)

// BuildReasonScheduled is the BUILD_REASON value CI sets for unattended
// nightly builds. Any other value (including empty) means an ad-hoc or
// tagged build.
const BuildReasonScheduled = "Schedule"

var (
	// ErrInvalidProjectName is returned when the configured project name is
	// whitespace-only.
	ErrInvalidProjectName = errors.New("invalid project name")
	// ErrInvalidOutputDir is returned when the configured output directory is
	// whitespace-only.
	ErrInvalidOutputDir = errors.New("invalid output directory")
)

// Config is the merged application configuration: config-file defaults
// overlaid with process-environment values.
type Config struct {
	// Project is the base name for the artifact and archive prefix.
	Project string `mapstructure:"project"`

	// OutputDir is where the artifact is written.
	OutputDir string `mapstructure:"output_dir"`

	// Tag is the explicit release tag override (TAG_NAME). Empty means the
	// repository decides.
	Tag string `mapstructure:"tag"`

	// BuildReason is the CI trigger classification (BUILD_REASON).
	BuildReason string `mapstructure:"build_reason"`
}

// Scheduled reports whether this run is an unattended nightly build.
func (c *Config) Scheduled() bool {
	return c.BuildReason == BuildReasonScheduled
}

// Validate checks constraints the CUE schema cannot see, since environment
// values bypass it.
func (c *Config) Validate() error {
	if c.Project != "" && strings.TrimSpace(c.Project) == "" {
		return fmt.Errorf("%w: %q", ErrInvalidProjectName, c.Project)
	}
	if c.OutputDir != "" && strings.TrimSpace(c.OutputDir) == "" {
		return fmt.Errorf("%w: %q", ErrInvalidOutputDir, c.OutputDir)
	}
	return nil
}
