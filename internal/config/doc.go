// SPDX-License-Identifier: MPL-2.0

// Package config handles application configuration using Viper with CUE as
// the file format.
//
// Defaults for the project name and output directory can be set in
// ~/.config/srcpack/config.cue (or the XDG/platform equivalent); the file is
// validated against a CUE schema before use. Release-run inputs arrive
// through the process environment: TAG_NAME overrides tag resolution and
// BUILD_REASON=Schedule marks an unattended nightly build. Environment
// values always win over the config file.
package config
