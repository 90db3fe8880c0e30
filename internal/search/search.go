// Package search provides alternative match functions for the items list
// filter. The list's built-in match is a folded substring test on the label;
// these trade it for fuzzy or word-prefix matching.
package search

import (
	"fmt"
	"strings"

	"github.com/sahilm/fuzzy"

	"github.com/rshade/dropdown/internal/itemslist"
	"github.com/rshade/dropdown/internal/option"
)

// constError is an immutable error type for sentinel errors.
type constError string

func (e constError) Error() string { return string(e) }

// ErrUnknownSearch is returned by ByName for an unrecognized search name.
const ErrUnknownSearch = constError("unknown search function")

// Search function names accepted by ByName.
const (
	NameContains = "contains"
	NameFuzzy    = "fuzzy"
	NamePrefix   = "prefix"
)

// Params widens a search to more fields of the raw item. Pass it as the params
// argument of List.Filter.
type Params struct {
	// Fields are dotted paths searched in addition to the label.
	Fields []string
}

// ByName returns the search function registered under name. The empty name
// and "contains" return nil, which keeps the list's default match.
func ByName(name, bindLabel string) (itemslist.SearchFunc, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "", NameContains:
		return nil, nil //nolint:nilnil // nil selects the built-in match.
	case NameFuzzy:
		return Fuzzy(bindLabel), nil
	case NamePrefix:
		return Prefix(bindLabel), nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownSearch, name)
	}
}

// Fuzzy matches when the term's characters appear in order in the label, like
// an editor's file finder: "bnn" matches "Banana".
func Fuzzy(bindLabel string) itemslist.SearchFunc {
	return func(term string, value any, params any) bool {
		pattern := option.Fold(term)
		for _, text := range texts(value, bindLabel, params) {
			if len(fuzzy.Find(pattern, []string{option.Fold(text)})) > 0 {
				return true
			}
		}
		return false
	}
}

// Prefix matches when any word of the label starts with the term.
func Prefix(bindLabel string) itemslist.SearchFunc {
	return func(term string, value any, params any) bool {
		want := option.Fold(strings.TrimSpace(term))
		for _, text := range texts(value, bindLabel, params) {
			for _, word := range strings.Fields(option.Fold(text)) {
				if strings.HasPrefix(word, want) {
					return true
				}
			}
		}
		return false
	}
}

func texts(value any, bindLabel string, params any) []string {
	if bindLabel == "" {
		bindLabel = itemslist.DefaultBindLabel
	}
	paths := []string{bindLabel}
	switch p := params.(type) {
	case Params:
		paths = append(paths, p.Fields...)
	case *Params:
		if p != nil {
			paths = append(paths, p.Fields...)
		}
	}

	out := make([]string, 0, len(paths))
	for _, path := range paths {
		if v := option.ResolveNested(value, path); v != nil {
			out = append(out, fmt.Sprint(v))
		}
	}
	return out
}
