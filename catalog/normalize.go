package catalog

import (
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// Spanish stop names are full of accents users rarely type, so matching
// happens on a folded form: lowercase, diacritics stripped, trimmed.
var stripMarks = transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)

// Normalize folds a stop name or user query for comparison. "Gran Vía"
// and "gran via" normalize to the same string.
func Normalize(s string) string {
	folded, _, err := transform.String(stripMarks, s)
	if err != nil {
		// Transform only fails on invalid UTF-8; fall back to the raw
		// string rather than dropping the query.
		folded = s
	}
	return strings.ToLower(strings.TrimSpace(folded))
}
