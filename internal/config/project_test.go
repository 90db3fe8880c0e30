package config_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rshade/dropdown/internal/config"
)

// writeProjectFile creates a minimal .dropdown.yaml in the given directory.
func writeProjectFile(t *testing.T, dir string) string {
	t.Helper()
	path := filepath.Join(dir, config.ProjectFileName)
	require.NoError(t, os.WriteFile(path, []byte("version: 1.0.0\n"), 0o644))
	return path
}

func TestResolveProjectFile_FlagOverride(t *testing.T) {
	t.Setenv(config.EnvConfig, "/from/env.yaml")

	flagPath := filepath.Join(t.TempDir(), "custom.yaml")
	got := config.ResolveProjectFile(context.Background(), flagPath, "/does/not/matter")

	assert.Equal(t, flagPath, got)
}

func TestResolveProjectFile_EnvVarOverride(t *testing.T) {
	envPath := filepath.Join(t.TempDir(), "env.yaml")
	t.Setenv(config.EnvConfig, envPath)

	got := config.ResolveProjectFile(context.Background(), "", "/does/not/matter")

	assert.Equal(t, envPath, got)
	assert.True(t, filepath.IsAbs(got), "returned path must be absolute")
}

func TestResolveProjectFile_RelativeFlagValue(t *testing.T) {
	t.Setenv(config.EnvConfig, "")

	got := config.ResolveProjectFile(context.Background(), "dropdown.yaml", "")

	assert.True(t, filepath.IsAbs(got))
	assert.Equal(t, "dropdown.yaml", filepath.Base(got))
}

func TestResolveProjectFile_WalkUp(t *testing.T) {
	t.Setenv(config.EnvConfig, "")
	root := t.TempDir()
	want := writeProjectFile(t, root)

	subDir := filepath.Join(root, "a", "b", "c")
	require.NoError(t, os.MkdirAll(subDir, 0o755))

	assert.Equal(t, want, config.ResolveProjectFile(context.Background(), "", subDir))
}

func TestResolveProjectFile_NearestWins(t *testing.T) {
	t.Setenv(config.EnvConfig, "")
	root := t.TempDir()
	writeProjectFile(t, root)

	inner := filepath.Join(root, "inner")
	require.NoError(t, os.MkdirAll(inner, 0o755))
	want := writeProjectFile(t, inner)

	assert.Equal(t, want, config.ResolveProjectFile(context.Background(), "", inner))
}

func TestResolveProjectFile_NotFound(t *testing.T) {
	t.Setenv(config.EnvConfig, "")

	// Temp dirs normally have no .dropdown.yaml up to the root.
	dir := t.TempDir()
	got := config.ResolveProjectFile(context.Background(), "", dir)
	if got != "" {
		assert.NotEqual(t, filepath.Join(dir, config.ProjectFileName), got)
	}
}

func TestUserConfigFile(t *testing.T) {
	home := t.TempDir()
	t.Setenv(config.EnvHome, home)

	assert.Empty(t, config.UserConfigFile(), "missing file")

	path := filepath.Join(home, "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("version: 1.0.0\n"), 0o600))
	assert.Equal(t, path, config.UserConfigFile())
}
