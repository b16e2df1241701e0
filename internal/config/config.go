// SPDX-License-Identifier: MPL-2.0

package config

import (
	_ "embed"
	"fmt"
	"os"
	"path/filepath"
	"runtime"

	"cuelang.org/go/cue"
	"cuelang.org/go/cue/cuecontext"
	"github.com/spf13/viper"

	"srcpack-cli/internal/cueutil"
	"srcpack-cli/internal/issue"
)

const (
	// AppName is the application name, used for the config directory.
	AppName = "srcpack"
	// ConfigFileName is the name of the config file (without extension).
	ConfigFileName = "config"
	// ConfigFileExt is the config file extension.
	ConfigFileExt = "cue"
)

//go:embed config_schema.cue
var configSchema string

// LoadOptions controls where Load looks for the config file. The zero value
// uses the platform config directory with a current-directory fallback.
type LoadOptions struct {
	// ConfigFilePath, when set, is used exclusively; a missing file is an
	// error rather than a silent fallback.
	ConfigFilePath string

	// ConfigDirPath overrides the platform config directory. When set, the
	// current-directory fallback is skipped so lookups stay hermetic.
	ConfigDirPath string
}

// Load reads the config file (if any) and environment variables into a
// Config using the default lookup locations.
func Load() (*Config, error) {
	return LoadWith(LoadOptions{})
}

// LoadWith is Load with explicit lookup options.
func LoadWith(opts LoadOptions) (*Config, error) {
	v := viper.New()

	v.SetDefault("project", "")
	v.SetDefault("output_dir", "")
	v.SetDefault("tag", "")
	v.SetDefault("build_reason", "")

	switch {
	case opts.ConfigFilePath != "":
		if !fileExists(opts.ConfigFilePath) {
			return nil, issue.NewErrorContext().
				WithOperation("load configuration").
				WithResource(opts.ConfigFilePath).
				WithSuggestion("Verify the file path is correct").
				Wrap(fmt.Errorf("config file not found: %s", opts.ConfigFilePath)).
				BuildError()
		}
		if err := loadCUEIntoViper(v, opts.ConfigFilePath); err != nil {
			return nil, wrapConfigFileError(err, opts.ConfigFilePath)
		}
	default:
		cfgDir, err := configDirWithOverride(opts.ConfigDirPath)
		if err != nil {
			return nil, err
		}

		cuePath := filepath.Join(cfgDir, ConfigFileName+"."+ConfigFileExt)
		localCuePath := ConfigFileName + "." + ConfigFileExt
		switch {
		case fileExists(cuePath):
			if err := loadCUEIntoViper(v, cuePath); err != nil {
				return nil, wrapConfigFileError(err, cuePath)
			}
		case opts.ConfigDirPath == "" && fileExists(localCuePath):
			if err := loadCUEIntoViper(v, localCuePath); err != nil {
				return nil, wrapConfigFileError(err, localCuePath)
			}
		}
		// No config file found: defaults plus environment.
	}

	// Environment always wins over file values. TAG_NAME and BUILD_REASON
	// are the names CI sets; SRCPACK_* cover the file-configurable keys.
	bindings := map[string]string{
		"project":      "SRCPACK_PROJECT",
		"output_dir":   "SRCPACK_OUTPUT_DIR",
		"tag":          "TAG_NAME",
		"build_reason": "BUILD_REASON",
	}
	for key, env := range bindings {
		if err := v.BindEnv(key, env); err != nil {
			return nil, fmt.Errorf("binding %s: %w", env, err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, issue.NewErrorContext().
			WithOperation("validate configuration").
			WithSuggestion("Remove the whitespace-only value or set a real one").
			Wrap(err).
			BuildError()
	}

	return &cfg, nil
}

// ConfigDir returns the srcpack configuration directory using
// platform-specific conventions: Windows uses %APPDATA%, macOS uses
// ~/Library/Application Support, and Linux/others use $XDG_CONFIG_HOME
// (defaulting to ~/.config).
//
//nolint:revive // ConfigDir is more descriptive than Dir for external callers
func ConfigDir() (string, error) {
	var configDir string

	switch runtime.GOOS {
	case "windows":
		configDir = os.Getenv("APPDATA")
		if configDir == "" {
			configDir = filepath.Join(os.Getenv("USERPROFILE"), "AppData", "Roaming")
		}
	case "darwin":
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("failed to get home directory: %w", err)
		}
		configDir = filepath.Join(home, "Library", "Application Support")
	default: // Linux and others
		configDir = os.Getenv("XDG_CONFIG_HOME")
		if configDir == "" {
			home, err := os.UserHomeDir()
			if err != nil {
				return "", fmt.Errorf("failed to get home directory: %w", err)
			}
			configDir = filepath.Join(home, ".config")
		}
	}

	return filepath.Join(configDir, AppName), nil
}

// configDirWithOverride resolves the configuration directory, honoring an
// explicit option before platform defaults.
func configDirWithOverride(configDirPath string) (string, error) {
	if configDirPath != "" {
		return configDirPath, nil
	}
	return ConfigDir()
}

// loadCUEIntoViper parses a CUE file, validates it against the #Config
// schema, and merges its contents into Viper.
func loadCUEIntoViper(v *viper.Viper, path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read config file: %w", err)
	}

	if err := cueutil.CheckFileSize(data, cueutil.DefaultMaxFileSize, path); err != nil {
		return err
	}

	ctx := cuecontext.New()

	schemaValue := ctx.CompileString(configSchema)
	if schemaValue.Err() != nil {
		return fmt.Errorf("internal error: failed to compile config schema: %w", schemaValue.Err())
	}

	userValue := ctx.CompileBytes(data, cue.Filename(path))
	if userValue.Err() != nil {
		return cueutil.FormatError(userValue.Err(), path)
	}

	// Unify with the schema to validate against the #Config definition.
	// Concrete(false) because all config fields are optional.
	schema := schemaValue.LookupPath(cue.ParsePath("#Config"))
	unified := schema.Unify(userValue)
	if err := unified.Validate(cue.Concrete(false)); err != nil {
		return cueutil.FormatError(err, path)
	}

	var configMap map[string]any
	if err := unified.Decode(&configMap); err != nil {
		return cueutil.FormatError(err, path)
	}

	if err := v.MergeConfigMap(configMap); err != nil {
		return fmt.Errorf("failed to merge config: %w", err)
	}

	return nil
}

// wrapConfigFileError attaches user-facing context to a config file failure.
func wrapConfigFileError(err error, path string) error {
	return issue.NewErrorContext().
		WithOperation("load configuration").
		WithResource(path).
		WithSuggestion("Check that the file contains valid CUE syntax").
		WithSuggestion("Verify the configuration values match the expected schema").
		Wrap(err).
		BuildError()
}

// fileExists checks if a file exists and is not a directory.
func fileExists(path string) bool {
	info, err := os.Stat(path)
	if os.IsNotExist(err) {
		return false
	}
	return err == nil && !info.IsDir()
}
