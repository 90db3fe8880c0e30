package itemslist_test

import (
	"context"
	"testing"

	"github.com/rshade/dropdown/internal/itemslist"
	"github.com/rshade/dropdown/internal/option"
	"github.com/rshade/dropdown/internal/selection"
)

func newSingleList(t *testing.T, opts itemslist.Options) *itemslist.List {
	t.Helper()
	return itemslist.New(context.Background(), opts, selection.NewSingle(opts.CompareWith))
}

func newMultiList(t *testing.T, maxSelected int, opts itemslist.Options) *itemslist.List {
	t.Helper()
	return itemslist.New(context.Background(), opts, selection.NewMultiple(maxSelected, opts.CompareWith))
}

func item(label string) map[string]any {
	return map[string]any{"label": label}
}

func disabledItem(label string) map[string]any {
	return map[string]any{"label": label, "disabled": true}
}

func raws(labels ...string) []any {
	out := make([]any, 0, len(labels))
	for _, l := range labels {
		out = append(out, item(l))
	}
	return out
}

func labels(opts []*option.Option) []string {
	out := make([]string, 0, len(opts))
	for _, o := range opts {
		out = append(out, o.Label)
	}
	return out
}

func byLabel(t *testing.T, l *itemslist.List, label string) *option.Option {
	t.Helper()
	o := l.FindByLabel(label)
	if o == nil {
		t.Fatalf("no option labelled %q", label)
	}
	return o
}

// isSubsequence reports whether sub appears in full in the same relative order.
func isSubsequence(sub, full []*option.Option) bool {
	j := 0
	for _, o := range full {
		if j < len(sub) && sub[j] == o {
			j++
		}
	}
	return j == len(sub)
}
