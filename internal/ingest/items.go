// Package ingest reads raw dropdown items from YAML or JSON documents.
//
// A document is either a sequence of items or a mapping with an "items" key
// holding that sequence. Items are whatever the document holds: scalars or
// mappings. Mappings are normalized to map[string]any so bind paths resolve
// through them.
package ingest

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"os"
	"runtime"

	"golang.org/x/sync/errgroup"
	"gopkg.in/yaml.v3"

	"github.com/rshade/dropdown/internal/logging"
)

// itemsKey is the mapping key holding the items of a wrapped document.
const itemsKey = "items"

// StdinPath is the path that LoadFiles reads from standard input.
const StdinPath = "-"

// ParseItems parses a YAML or JSON document into raw items. An empty document
// yields no items.
func ParseItems(ctx context.Context, data []byte) ([]any, error) {
	log := logging.FromContext(ctx)
	log.Debug().
		Str("component", "ingest").
		Str("operation", "parse_items").
		Int("data_size_bytes", len(data)).
		Msg("parsing items")

	if len(bytes.TrimSpace(data)) == 0 {
		return nil, nil
	}

	var doc any
	if err := yaml.Unmarshal(data, &doc); err != nil {
		log.Error().
			Str("component", "ingest").
			Err(err).
			Msg("failed to parse items document")
		return nil, fmt.Errorf("parsing items document: %w", err)
	}

	items, err := extractItems(normalize(doc))
	if err != nil {
		return nil, err
	}

	log.Debug().
		Str("component", "ingest").
		Int("item_count", len(items)).
		Msg("items parsed successfully")
	return items, nil
}

func extractItems(doc any) ([]any, error) {
	switch v := doc.(type) {
	case nil:
		return nil, nil
	case []any:
		return v, nil
	case map[string]any:
		wrapped, ok := v[itemsKey]
		if !ok {
			return nil, fmt.Errorf("items document is a mapping without an %q key", itemsKey)
		}
		if wrapped == nil {
			return nil, nil
		}
		items, ok := wrapped.([]any)
		if !ok {
			return nil, fmt.Errorf("%q must be a sequence, got %T", itemsKey, wrapped)
		}
		return items, nil
	default:
		return nil, fmt.Errorf("items document must be a sequence or mapping, got %T", doc)
	}
}

// normalize converts map[any]any values, which YAML produces for non-string
// keys, into map[string]any throughout v.
func normalize(v any) any {
	switch t := v.(type) {
	case map[string]any:
		for k, child := range t {
			t[k] = normalize(child)
		}
		return t
	case map[any]any:
		out := make(map[string]any, len(t))
		for k, child := range t {
			out[fmt.Sprint(k)] = normalize(child)
		}
		return out
	case []any:
		for i, child := range t {
			t[i] = normalize(child)
		}
		return t
	default:
		return v
	}
}

// ReadItems parses the document read from r.
func ReadItems(ctx context.Context, r io.Reader) ([]any, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("reading items: %w", err)
	}
	return ParseItems(ctx, data)
}

// LoadFile loads and parses the items file at path.
func LoadFile(ctx context.Context, path string) ([]any, error) {
	log := logging.FromContext(ctx)
	log.Debug().
		Str("component", "ingest").
		Str("operation", "load_items").
		Str("items_path", path).
		Msg("loading items file")

	data, err := os.ReadFile(path)
	if err != nil {
		log.Error().
			Str("component", "ingest").
			Err(err).
			Str("items_path", path).
			Msg("failed to read items file")
		return nil, fmt.Errorf("reading items file: %w", err)
	}

	items, err := ParseItems(ctx, data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return items, nil
}

// LoadFiles loads every path concurrently and concatenates the items in path
// order. The path "-" reads stdin, at most once. The first failure cancels
// the remaining loads and is returned.
func LoadFiles(ctx context.Context, stdin io.Reader, paths ...string) ([]any, error) {
	stdinReads := 0
	for _, path := range paths {
		if path == StdinPath {
			stdinReads++
		}
	}
	if stdinReads > 1 {
		return nil, fmt.Errorf("stdin (%q) can only be read once", StdinPath)
	}

	results := make([][]any, len(paths))

	g, gCtx := errgroup.WithContext(ctx)
	g.SetLimit(runtime.NumCPU())

	for i, path := range paths {
		g.Go(func() error {
			if err := gCtx.Err(); err != nil {
				return err
			}

			var items []any
			var err error
			if path == StdinPath {
				items, err = ReadItems(gCtx, stdin)
			} else {
				items, err = LoadFile(gCtx, path)
			}
			if err != nil {
				return err
			}
			results[i] = items
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}

	var all []any
	for _, items := range results {
		all = append(all, items...)
	}
	return all, nil
}
