package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"io"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"gopkg.in/yaml.v3"

	"github.com/rshade/dropdown/internal/ingest"
)

// Output formats accepted by --output.
const (
	formatText = "text"
	formatYAML = "yaml"
	formatJSON = "json"
)

const yamlIndent = 2

// printer formats counts and offsets with digit grouping.
var printer = message.NewPrinter(language.English) //nolint:gochecknoglobals // Printer is stateless after init.

// writeStructured encodes v as YAML or JSON.
func writeStructured(w io.Writer, v any, format string) error {
	switch format {
	case formatYAML:
		enc := yaml.NewEncoder(w)
		enc.SetIndent(yamlIndent)
		if err := enc.Encode(v); err != nil {
			return fmt.Errorf("encoding yaml: %w", err)
		}
		return enc.Close()
	case formatJSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		if err := enc.Encode(v); err != nil {
			return fmt.Errorf("encoding json: %w", err)
		}
		return nil
	default:
		return fmt.Errorf("unsupported output format %q (use %s or %s)", format, formatYAML, formatJSON)
	}
}

// loadItems reads raw items from paths, or from stdin when no path is given.
func loadItems(ctx context.Context, stdin io.Reader, paths []string) ([]any, error) {
	if len(paths) == 0 {
		paths = []string{ingest.StdinPath}
	}
	items, err := ingest.LoadFiles(ctx, stdin, paths...)
	if err != nil {
		return nil, fmt.Errorf("loading items: %w", err)
	}
	logger.Debug().Int("items", len(items)).Int("files", len(paths)).Msg("items loaded")
	return items, nil
}

// parseValues decodes each --value flag as a YAML scalar, so "3" is a number
// and "true" a bool. A multiple selection gets a slice, a single one the first value.
func parseValues(raw []string, multiple bool) (any, error) {
	values := make([]any, 0, len(raw))
	for _, r := range raw {
		var v any
		if err := yaml.Unmarshal([]byte(r), &v); err != nil {
			return nil, fmt.Errorf("parsing value %q: %w", r, err)
		}
		values = append(values, v)
	}

	if multiple {
		return values, nil
	}
	if len(values) == 0 {
		return nil, nil //nolint:nilnil // No value selects nothing.
	}
	return values[0], nil
}
