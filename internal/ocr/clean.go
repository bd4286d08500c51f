package ocr

import (
	"strings"
	"unicode"

	"golang.org/x/text/unicode/norm"
)

// CleanText folds compatibility forms (ligatures, full-width digits) with
// NFKC, drops control characters, and collapses runs of whitespace to single
// spaces. Every engine applies it to word text so presentation variants
// cannot defeat matching.
func CleanText(s string) string {
	normed := norm.NFKC.String(s)
	// Whitespace controls stay so the collapse below can split on them.
	normed = strings.Map(func(r rune) rune {
		if unicode.IsControl(r) && !unicode.IsSpace(r) {
			return -1
		}
		return r
	}, normed)
	return strings.Join(strings.Fields(normed), " ")
}
