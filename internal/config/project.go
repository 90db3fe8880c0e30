package config

import (
	"context"
	"errors"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/rshade/dropdown/internal/logging"
)

// Environment variables consulted when locating configuration files.
const (
	// EnvConfig names a config file explicitly.
	EnvConfig = "DROPDOWN_CONFIG"

	// EnvHome replaces ~/.dropdown as the user config directory.
	EnvHome = "DROPDOWN_HOME"
)

// ProjectFileName is the per-project config file searched for from the
// working directory upwards.
const ProjectFileName = ".dropdown.yaml"

// userConfigFile is the config file inside the user config directory.
const userConfigFile = "config.yaml"

// ResolveProjectFile determines the project config file path.
// It checks (in order):
//  1. flagValue (--config CLI flag)
//  2. DROPDOWN_CONFIG env var
//  3. a .dropdown.yaml in startDir or any parent
//
// Returns an absolute path, or the empty string if nothing was found. Only the
// walk-up checks that the file exists.
func ResolveProjectFile(ctx context.Context, flagValue, startDir string) string {
	if flagValue != "" {
		return toAbs(ctx, flagValue)
	}

	if envPath := os.Getenv(EnvConfig); envPath != "" {
		return toAbs(ctx, envPath)
	}

	dir := toAbs(ctx, startDir)
	for {
		candidate := filepath.Join(dir, ProjectFileName)
		_, err := os.Stat(candidate)
		if err == nil {
			return candidate
		}
		if !errors.Is(err, fs.ErrNotExist) {
			logger := logging.FromContext(ctx)
			logger.Warn().
				Str("component", "config").
				Err(err).
				Str("path", candidate).
				Msg("unexpected error looking for project config")
			return ""
		}

		parent := filepath.Dir(dir)
		if parent == dir {
			return ""
		}
		dir = parent
	}
}

// UserConfigFile returns the user config file path if it exists, else the
// empty string. The directory is DROPDOWN_HOME or ~/.dropdown.
func UserConfigFile() string {
	dir := os.Getenv(EnvHome)
	if dir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return ""
		}
		dir = filepath.Join(home, ".dropdown")
	}

	path := filepath.Join(dir, userConfigFile)
	if _, err := os.Stat(path); err != nil {
		return ""
	}
	return path
}

// toAbs converts path to an absolute path, returning it unchanged on failure.
func toAbs(ctx context.Context, path string) string {
	abs, err := filepath.Abs(path)
	if err != nil {
		logger := logging.FromContext(ctx)
		logger.Warn().
			Str("component", "config").
			Err(err).
			Str("path", path).
			Msg("failed to resolve absolute path")
		return path
	}
	return abs
}
