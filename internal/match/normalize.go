package match

import (
	"strings"
	"unicode"
)

// normalizeToken strips every rune that is not a letter or digit and folds
// case. Every matcher compares through this one function.
func normalizeToken(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	for _, r := range s {
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			b.WriteRune(unicode.ToUpper(r))
		}
	}
	return b.String()
}

// normalizeWords precomputes the normalized form of every word text once per
// call so the matchers never re-normalize.
func normalizeWords(words []Word) []string {
	out := make([]string, len(words))
	for i, w := range words {
		out[i] = normalizeToken(w.Text)
	}
	return out
}
