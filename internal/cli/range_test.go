package cli

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRange_Text(t *testing.T) {
	isolate(t)

	out, err := execute(t, nil, "", "range",
		"--items", "1000", "--item-height", "10", "--panel-height", "20", "--scroll", "15", "--buffer", "1")

	require.NoError(t, err)
	assert.Contains(t, out, "Start          0\n")
	assert.Contains(t, out, "End            4\n")
	assert.Contains(t, out, "Scroll height  10,000\n")
	assert.NotContains(t, out, "Scroll to")
}

func TestRange_ScrollTo(t *testing.T) {
	isolate(t)

	tests := []struct {
		name     string
		args     []string
		wantTo   float64
		wantText string
	}{
		{
			name:   "below the viewport",
			args:   []string{"--scroll-to", "75"},
			wantTo: 720,
		},
		{
			name:   "already visible",
			args:   []string{"--scroll-to", "2", "--scroll", "10"},
			wantTo: 10,
		},
		{
			name:   "above the viewport",
			args:   []string{"--scroll-to", "3", "--scroll", "200"},
			wantTo: 30,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			args := append([]string{
				"range", "--items", "100", "--item-height", "10", "--panel-height", "40", "-o", "json",
			}, tt.args...)
			out, err := execute(t, nil, "", args...)
			require.NoError(t, err)

			var result rangeResult
			require.NoError(t, json.Unmarshal([]byte(out), &result))
			require.NotNil(t, result.ScrollTo)
			assert.InDelta(t, tt.wantTo, *result.ScrollTo, 0)
		})
	}
}

func TestRange_InViewText(t *testing.T) {
	isolate(t)

	out, err := execute(t, nil, "", "range", "--items", "10", "--scroll-to", "0")

	require.NoError(t, err)
	assert.Contains(t, out, "in view")
}

func TestRange_DefaultsFromConfig(t *testing.T) {
	isolate(t)

	out, err := execute(t, nil, "", "range", "--items", "100", "-o", "yaml")

	require.NoError(t, err)
	// Panel height 10 and buffer 4 by default.
	assert.Contains(t, out, "start: 0\n")
	assert.Contains(t, out, "end: 14\n")
}

func TestRange_Validation(t *testing.T) {
	isolate(t)

	tests := []struct {
		name   string
		args   []string
		errMsg string
	}{
		{"items required", []string{"range"}, "items"},
		{"negative items", []string{"range", "--items", "-1"}, "must not be negative"},
		{"zero item height", []string{"range", "--items", "5", "--item-height", "0"}, "item-height"},
		{"scroll-to outside", []string{"range", "--items", "5", "--scroll-to", "5"}, "outside the list"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := execute(t, nil, "", tt.args...)
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.errMsg)
		})
	}
}
