package match

import (
	"strings"
	"unicode"
)

// variant is one hypothesis of how a phrase was tokenized by OCR.
type variant struct {
	tokens []string
	kind   string
}

const (
	kindBase      = "base"
	kindMerged    = "merged"
	kindBoundary  = "boundary"
	kindSeparator = "separator"
	kindSplit     = "split"
)

// splitMinLen is the minimum normalized token length before any boundary
// splitting is attempted.
const splitMinLen = 4

// generateVariants expands a phrase into the deduplicated set of token
// sequences to search for. The base tokenization is always first; an empty
// phrase yields no variants.
func generateVariants(text string) []variant {
	base := tokenizeNormalized(text)
	if len(base) == 0 {
		return nil
	}

	out := []variant{{tokens: base, kind: kindBase}}
	seen := map[string]bool{variantKey(base): true}

	add := func(tokens []string, kind string) {
		if len(tokens) == 0 {
			return
		}
		key := variantKey(tokens)
		if seen[key] {
			return
		}
		seen[key] = true
		out = append(out, variant{tokens: tokens, kind: kind})
	}

	// The whole phrase OCR'd with no inter-word gap.
	if len(base) > 1 {
		add([]string{strings.Join(base, "")}, kindMerged)
	}

	splittable := len(base) == 1 && len([]rune(base[0])) >= splitMinLen

	// Break at every letter/digit transition, e.g. a vehicle plate read as
	// one token.
	if splittable {
		add(splitAtTransitions([]rune(base[0])), kindBoundary)
	}

	// Hyphenated or dotted phrases re-tokenized on their separators.
	if exp := expandSeparators(text); len(exp) > 0 {
		add(exp, kindSeparator)
	}

	// Every 2-way split at a transition, plus one 3-way split per starting
	// transition.
	if splittable {
		for _, toks := range boundarySplits([]rune(base[0])) {
			add(toks, kindSplit)
		}
	}

	return out
}

// tokenizeNormalized splits on whitespace and normalizes each token,
// dropping tokens that normalize to nothing.
func tokenizeNormalized(text string) []string {
	var out []string
	for _, f := range strings.Fields(text) {
		if t := normalizeToken(f); t != "" {
			out = append(out, t)
		}
	}
	return out
}

// variantKey is the structural identity of a token sequence. Tokens are
// alphanumeric after normalization, so a space join cannot collide.
func variantKey(tokens []string) string {
	return strings.Join(tokens, " ")
}

// isTransition reports a letter/digit class change between adjacent runes of
// a normalized token.
func isTransition(a, b rune) bool {
	return unicode.IsLetter(a) != unicode.IsLetter(b)
}

// splitAtTransitions breaks a token at every letter/digit boundary, or
// returns nil when the token has none.
func splitAtTransitions(tok []rune) []string {
	var parts []string
	start := 0
	for i := 1; i < len(tok); i++ {
		if isTransition(tok[i-1], tok[i]) {
			parts = append(parts, string(tok[start:i]))
			start = i
		}
	}
	if start == 0 {
		return nil
	}
	parts = append(parts, string(tok[start:]))
	return parts
}

// boundarySplits emits the 2-way split at every letter/digit transition
// plus, per starting transition, one 3-way split at the next transition two
// or more runes further in. Every part is non-empty by construction.
func boundarySplits(tok []rune) [][]string {
	var out [][]string
	for i := 1; i < len(tok); i++ {
		if !isTransition(tok[i-1], tok[i]) {
			continue
		}
		out = append(out, []string{string(tok[:i]), string(tok[i:])})
		for j := i + 2; j < len(tok); j++ {
			if isTransition(tok[j-1], tok[j]) {
				out = append(out, []string{string(tok[:i]), string(tok[i:j]), string(tok[j:])})
				break
			}
		}
	}
	return out
}

// expandSeparators re-tokenizes the original phrase text with hyphens,
// commas, underscores and periods treated as spaces.
func expandSeparators(text string) []string {
	replaced := strings.Map(func(r rune) rune {
		switch r {
		case '-', ',', '_', '.':
			return ' '
		}
		return r
	}, text)
	return tokenizeNormalized(replaced)
}
