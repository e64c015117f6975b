// Package text implements diacritic-insensitive normalization and tokenization
// for Vietnamese search queries and document fields.
package text

import (
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// foldTransformer decomposes to NFD, strips combining marks, and recomposes.
// "Toán" -> "Toan", "Kỹ Thuật" -> "Ky Thuat".
var foldTransformer = transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)

// Fold lower-cases and strips Vietnamese diacritics, preserving spaces.
// "đ" does not decompose under NFD, so it is replaced explicitly.
// Pure: empty input returns "", never errors.
func Fold(s string) string {
	if s == "" {
		return ""
	}
	s = strings.ToLower(s)
	folded, _, err := transform.String(foldTransformer, s)
	if err != nil {
		folded = s
	}
	return strings.ReplaceAll(folded, "đ", "d")
}

// Compact folds and removes every non-alphanumeric rune, producing a no-space
// comparison key: "Kỹ Thuật" -> "kythuat". Queries like "ky thuat", "kythuat"
// and "kỹ thuật" all compact to the same key.
func Compact(s string) string {
	folded := Fold(s)
	if folded == "" {
		return ""
	}
	var b strings.Builder
	b.Grow(len(folded))
	for _, r := range folded {
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			b.WriteRune(r)
		}
	}
	return b.String()
}
