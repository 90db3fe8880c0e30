package option

import (
	"unicode"

	"golang.org/x/text/cases"
	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// Fold normalizes s for search comparisons: diacritics are stripped and the
// result is case folded, so "Ábc" and "abc" fold to the same string.
// Casers and transformers are stateful, so a fresh chain is built per call.
func Fold(s string) string {
	stripped, _, err := transform.String(
		transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC),
		s,
	)
	if err != nil {
		stripped = s
	}
	return cases.Fold().String(stripped)
}
