package ingest_test

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rshade/dropdown/internal/ingest"
)

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestParseItems(t *testing.T) {
	tests := []struct {
		name    string
		data    string
		want    []any
		wantErr string
	}{
		{
			name: "yaml sequence of scalars",
			data: "- red\n- green\n- 3\n",
			want: []any{"red", "green", 3},
		},
		{
			name: "json sequence of objects",
			data: `[{"label": "Ana", "team": {"name": "red"}}]`,
			want: []any{map[string]any{"label": "Ana", "team": map[string]any{"name": "red"}}},
		},
		{
			name: "wrapped in items",
			data: "items:\n  - label: Ana\n    disabled: true\n",
			want: []any{map[string]any{"label": "Ana", "disabled": true}},
		},
		{
			name: "non-string keys are normalized",
			data: "- 1: one\n  true: yes\n",
			want: []any{map[string]any{"1": "one", "true": "yes"}},
		},
		{name: "empty document", data: "  \n"},
		{name: "null items", data: "items:\n"},
		{name: "mapping without items", data: "labels: [a]\n", wantErr: `without an "items" key`},
		{name: "items not a sequence", data: "items: a\n", wantErr: "must be a sequence"},
		{name: "scalar document", data: "42\n", wantErr: "sequence or mapping"},
		{name: "malformed", data: "[unclosed", wantErr: "parsing items document"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ingest.ParseItems(context.Background(), []byte(tt.data))
			if tt.wantErr != "" {
				require.Error(t, err)
				assert.Contains(t, err.Error(), tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestLoadFile(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "items.yaml", "- a\n- b\n")

	items, err := ingest.LoadFile(context.Background(), path)
	require.NoError(t, err)
	assert.Equal(t, []any{"a", "b"}, items)

	_, err = ingest.LoadFile(context.Background(), filepath.Join(dir, "missing.yaml"))
	require.ErrorIs(t, err, os.ErrNotExist)

	bad := writeFile(t, dir, "bad.yaml", "items: 1\n")
	_, err = ingest.LoadFile(context.Background(), bad)
	require.Error(t, err)
	assert.Contains(t, err.Error(), bad)
}

func TestLoadFiles_PreservesOrder(t *testing.T) {
	dir := t.TempDir()
	paths := make([]string, 0, 20)
	want := make([]any, 0, 40)
	for i := range 20 {
		name := string(rune('a' + i))
		paths = append(paths, writeFile(t, dir, name+".yaml", "- "+name+"1\n- "+name+"2\n"))
		want = append(want, name+"1", name+"2")
	}

	items, err := ingest.LoadFiles(context.Background(), nil, paths...)
	require.NoError(t, err)
	assert.Equal(t, want, items)
}

func TestLoadFiles_Stdin(t *testing.T) {
	dir := t.TempDir()
	file := writeFile(t, dir, "items.json", `["from-file"]`)

	items, err := ingest.LoadFiles(context.Background(), strings.NewReader("- from-stdin\n"), ingest.StdinPath, file)
	require.NoError(t, err)
	assert.Equal(t, []any{"from-stdin", "from-file"}, items)

	_, err = ingest.LoadFiles(context.Background(), strings.NewReader(""), ingest.StdinPath, ingest.StdinPath)
	require.Error(t, err)
}

func TestLoadFiles_FirstErrorWins(t *testing.T) {
	dir := t.TempDir()
	good := writeFile(t, dir, "good.yaml", "- a\n")

	_, err := ingest.LoadFiles(context.Background(), nil, good, filepath.Join(dir, "missing.yaml"))
	require.ErrorIs(t, err, os.ErrNotExist)
}

func TestLoadFiles_NoPaths(t *testing.T) {
	items, err := ingest.LoadFiles(context.Background(), nil)
	require.NoError(t, err)
	assert.Empty(t, items)
}
