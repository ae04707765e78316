// Package parser resolves roster sheets and columns and classifies rows.
package parser

import (
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

var stripMarks = transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)

// NormalizeKey canonicalizes a header or sheet name for fuzzy matching:
// accents stripped, upper-cased, every rune outside [A-Z0-9] removed. Two
// headers differing only by accent, case, spacing or punctuation normalize
// identically. Empty input normalizes to "".
func NormalizeKey(s string) string {
	plain, _, err := transform.String(stripMarks, s)
	if err != nil {
		plain = s
	}
	var b strings.Builder
	b.Grow(len(plain))
	for _, r := range strings.ToUpper(plain) {
		if (r >= 'A' && r <= 'Z') || (r >= '0' && r <= '9') {
			b.WriteRune(r)
		}
	}
	return b.String()
}
