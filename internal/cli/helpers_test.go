package cli

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/rshade/dropdown/internal/config"
)

// isolate keeps user and project configuration of the machine out of a test.
func isolate(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	t.Setenv(config.EnvHome, t.TempDir())
	t.Setenv(config.EnvConfig, "")
	t.Setenv(config.EnvLogLevel, "error")
	t.Chdir(dir)
	return dir
}

// execute runs the root command with args and returns everything it printed.
func execute(t *testing.T, opts *rootOptions, stdin string, args ...string) (string, error) {
	t.Helper()
	if opts == nil {
		opts = newRootOptions()
		opts.interactive = func() bool { return false }
	}

	var buf bytes.Buffer
	cmd := newRootCmd("test", opts)
	cmd.SetOut(&buf)
	cmd.SetErr(&buf)
	cmd.SetIn(strings.NewReader(stdin))
	cmd.SetArgs(args)

	err := cmd.Execute()
	return buf.String(), err
}

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

const fruitsYAML = `items:
  - label: Apple
    kind: fruit
  - label: Banana
    kind: fruit
  - label: Leek
    kind: veg
  - label: Grape
    kind: fruit
    disabled: true
`
