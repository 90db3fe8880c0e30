package cli

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rshade/dropdown/internal/config"
)

func TestFilter_Text(t *testing.T) {
	dir := isolate(t)
	path := writeFile(t, dir, "fruits.yaml", fruitsYAML)

	out, err := execute(t, nil, "", "filter", "ap", path)

	require.NoError(t, err)
	assert.Equal(t, "  Apple\n  Grape (disabled)\n2 of 4 options match\n", out)
}

func TestFilter_MarkFirstSkipsDisabled(t *testing.T) {
	dir := isolate(t)
	path := writeFile(t, dir, "fruits.yaml", `- {label: Grape, disabled: true}
- {label: Grapefruit}
`)

	out, err := execute(t, nil, "", "filter", "--mark-first", "grape", path)

	require.NoError(t, err)
	assert.Equal(t, "  Grape (disabled)\n> Grapefruit\n2 of 2 options match\n", out)
}

func TestFilter_Groups(t *testing.T) {
	dir := isolate(t)
	writeFile(t, dir, config.ProjectFileName, "select:\n  group_by: kind\n")
	path := writeFile(t, dir, "fruits.yaml", fruitsYAML)

	out, err := execute(t, nil, "", "filter", "e", path)

	require.NoError(t, err)
	assert.Equal(t,
		"  fruit\n    Apple\n    Grape (disabled)\n  veg\n    Leek\n5 of 6 options match\n",
		out)
}

func TestFilter_Pagination(t *testing.T) {
	dir := isolate(t)
	path := writeFile(t, dir, "fruits.yaml", fruitsYAML)

	out, err := execute(t, nil, "", "filter", "", path, "--offset", "1", "--limit", "2")
	require.NoError(t, err)
	assert.Equal(t, "  Banana\n  Leek\n4 of 4 options match, showing 2 from 2\n", out)

	_, err = execute(t, nil, "", "filter", "", path, "--offset", "1", "--page", "2", "--page-size", "2")
	assert.ErrorContains(t, err, "mutually exclusive")
}

func TestFilter_JSONFromStdin(t *testing.T) {
	isolate(t)

	out, err := execute(t, nil, `[{"label": "Bob Nunn", "id": 1}, {"label": "Ann", "id": 2}]`,
		"filter", "--search", "fuzzy", "-o", "json", "bn")
	require.NoError(t, err)

	var result filterResult
	require.NoError(t, json.Unmarshal([]byte(out), &result))
	assert.Equal(t, "bn", result.Term)
	require.Len(t, result.Options, 1)
	assert.Equal(t, "Bob Nunn", result.Options[0].Label)
	assert.Equal(t, 1, result.Pagination.TotalItems)
}

func TestFilter_UnknownSearch(t *testing.T) {
	dir := isolate(t)
	path := writeFile(t, dir, "fruits.yaml", fruitsYAML)

	_, err := execute(t, nil, "", "filter", "--search", "regex", "a", path)

	assert.ErrorIs(t, err, config.ErrInvalidConfig)
}

func TestFilter_RequiresTerm(t *testing.T) {
	isolate(t)

	_, err := execute(t, nil, "", "filter")

	assert.Error(t, err)
}
