package cli

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rshade/dropdown/internal/config"
)

func TestNewRootCmd(t *testing.T) {
	cmd := NewRootCmd("1.2.3")

	require.NotNil(t, cmd)
	assert.Equal(t, "dropdown", cmd.Use)
	assert.Equal(t, "1.2.3", cmd.Version)

	names := make([]string, 0, len(cmd.Commands()))
	for _, sub := range cmd.Commands() {
		names = append(names, sub.Name())
	}
	assert.ElementsMatch(t, []string{"pick", "filter", "range", "config"}, names)

	assert.NotNil(t, cmd.PersistentFlags().Lookup("config"))
	assert.NotNil(t, cmd.PersistentFlags().Lookup("debug"))
}

func TestRoot_LoadsProjectConfig(t *testing.T) {
	dir := isolate(t)
	writeFile(t, dir, config.ProjectFileName, "select:\n  multiple: true\n  max_selected_items: 2\n")

	out, err := execute(t, nil, "", "config", "validate", "--verbose")

	require.NoError(t, err)
	assert.Contains(t, out, "Configuration is valid")
	assert.Contains(t, out, "Selection: multiple (max 2)")
}

func TestRoot_InvalidConfigReported(t *testing.T) {
	dir := isolate(t)
	path := writeFile(t, dir, "bad.yaml", "version: 3.0.0\n")

	_, err := execute(t, nil, "", "--config", path, "config", "validate")
	require.Error(t, err)
	assert.ErrorIs(t, err, config.ErrInvalidConfig)
	assert.Contains(t, err.Error(), "configuration validation failed")

	_, err = execute(t, nil, "", "--config", path, "filter", "a")
	assert.ErrorIs(t, err, config.ErrInvalidConfig)
}

func TestRoot_MissingConfigFlagFile(t *testing.T) {
	isolate(t)

	_, err := execute(t, nil, "", "--config", "does-not-exist.yaml", "config", "show")

	require.Error(t, err)
	assert.Contains(t, err.Error(), "loading configuration")
}

func TestConfigShow(t *testing.T) {
	dir := isolate(t)
	writeFile(t, dir, config.ProjectFileName, "panel:\n  virtual_scroll: true\n")

	out, err := execute(t, nil, "", "config", "show")
	require.NoError(t, err)
	assert.Contains(t, out, "virtual_scroll: true")
	assert.Contains(t, out, "bind_label: label")

	out, err = execute(t, nil, "", "config", "show", "-o", "json")
	require.NoError(t, err)
	assert.Contains(t, out, `"virtual_scroll": true`)

	_, err = execute(t, nil, "", "config", "show", "-o", "xml")
	assert.Error(t, err)
}
