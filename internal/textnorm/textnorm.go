// Package textnorm provides accent-insensitive text normalization
// shared by attribute extraction and product name search.
package textnorm

import (
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// foldTransformer decomposes to NFD, drops combining marks and
// recomposes, so "Atún Clásica" becomes "Atun Clasica".
var foldTransformer = transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)

// Fold removes diacritics from a string, leaving case untouched.
// On a transform error the input is returned as-is.
func Fold(s string) string {
	out, _, err := transform.String(foldTransformer, s)
	if err != nil {
		return s
	}
	return out
}

// Normalize folds accents, lowercases and collapses whitespace.
// This is the canonical form used for search and cache keys.
func Normalize(s string) string {
	folded := strings.ToLower(Fold(s))
	return strings.Join(strings.Fields(folded), " ")
}
