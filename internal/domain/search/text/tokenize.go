package text

import (
	"strings"
	"unicode"
)

// Tokenize folds the input and splits it into alphanumeric tokens.
// Token order is preserved and duplicates are kept (term frequency matters
// for BM25). Empty tokens are dropped.
func Tokenize(s string) []string {
	folded := Fold(s)
	if folded == "" {
		return nil
	}
	return strings.FieldsFunc(folded, func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsDigit(r)
	})
}
