package match

import "sort"

const (
	// minFlexTokens is the variant length, in tokens, below which the
	// scattered-word search ignores a variant.
	minFlexTokens = 4
	// maxFlexSpan is the widest index spread a scattered match may cover.
	maxFlexSpan = 20
	// flexConfidenceFloor bounds the span-derived confidence from below.
	flexConfidenceFloor = 0.7
	// maxFlexCombos is how many scattered combinations survive per phrase.
	maxFlexCombos = 3
	// maxFlexStates caps backtracking pushes per phrase so a phrase made of
	// very common tokens cannot run away.
	maxFlexStates = 10000
)

// flexTriggered reports whether the scattered-word search should run: only
// when some variant is long enough and exact matching found nothing.
func flexTriggered(variants []variant, exactCount int) bool {
	if exactCount != 0 {
		return false
	}
	for _, v := range variants {
		if len(v.tokens) >= minFlexTokens {
			return true
		}
	}
	return false
}

// searchFlexible assigns word positions to the tokens of each long variant
// by backtracking, scores complete assignments by index spread, and accepts
// the best non-overlapping few. Accepted positions are claimed.
func searchFlexible(normWords []string, variants []variant, claimed map[int]bool) []candidate {
	var combos []candidate
	states := 0
	for _, v := range variants {
		if len(v.tokens) < minFlexTokens {
			continue
		}
		combos = append(combos, enumerateCombos(normWords, v.tokens, claimed, &states)...)
	}

	// Best first; ties keep enumeration order so output stays deterministic.
	sort.SliceStable(combos, func(i, j int) bool {
		return combos[i].confidence > combos[j].confidence
	})

	var out []candidate
	for _, c := range combos {
		if len(out) == maxFlexCombos {
			break
		}
		if anyIndexClaimed(claimed, c.indices) {
			continue
		}
		for _, p := range c.indices {
			claimed[p] = true
		}
		out = append(out, c)
	}
	return out
}

func anyIndexClaimed(claimed map[int]bool, indices []int) bool {
	for _, p := range indices {
		if claimed[p] {
			return true
		}
	}
	return false
}

// enumerateCombos walks every assignment of occurrence positions to variant
// tokens, in token order, never reusing a position inside one combination
// and never touching a position already claimed for this phrase. The stack
// is explicit: used positions are marked on push and rolled back on pop, and
// work stops once the shared state counter hits maxFlexStates. Branches
// whose partial spread already exceeds maxFlexSpan are cut, since adding
// positions can only widen the spread. A combination is kept when its span
// (max position - min position + 1) is at most maxFlexSpan; its confidence
// is 1 - span/100, floored at flexConfidenceFloor.
func enumerateCombos(normWords []string, tokens []string, claimed map[int]bool, states *int) []candidate {
	occ := make([][]int, len(tokens))
	for i, t := range tokens {
		for p, w := range normWords {
			if w == t && !claimed[p] {
				occ[i] = append(occ[i], p)
			}
		}
		if len(occ[i]) == 0 {
			return nil
		}
	}

	var out []candidate
	chosen := make([]int, 0, len(tokens))
	next := make([]int, len(tokens))
	used := make(map[int]bool, len(tokens))

	depth := 0
	for depth >= 0 {
		if *states >= maxFlexStates {
			break
		}
		if depth == len(tokens) {
			span := spanOf(chosen)
			if span <= maxFlexSpan {
				conf := 1 - float64(span)/100
				if conf < flexConfidenceFloor {
					conf = flexConfidenceFloor
				}
				out = append(out, candidate{
					indices:    append([]int(nil), chosen...),
					confidence: conf,
					strategy:   "flexible",
				})
			}
			depth--
			p := chosen[len(chosen)-1]
			chosen = chosen[:len(chosen)-1]
			delete(used, p)
			continue
		}

		pushed := false
		for next[depth] < len(occ[depth]) {
			p := occ[depth][next[depth]]
			next[depth]++
			if used[p] {
				continue
			}
			if spanWith(chosen, p) > maxFlexSpan {
				continue
			}
			*states++
			used[p] = true
			chosen = append(chosen, p)
			depth++
			if depth < len(tokens) {
				next[depth] = 0
			}
			pushed = true
			break
		}
		if pushed {
			continue
		}

		// Occurrences exhausted at this depth: pop and resume above.
		depth--
		if depth < 0 {
			break
		}
		p := chosen[len(chosen)-1]
		chosen = chosen[:len(chosen)-1]
		delete(used, p)
	}
	return out
}

// spanOf is the index spread of a complete assignment.
func spanOf(indices []int) int {
	lo, hi := indices[0], indices[0]
	for _, p := range indices[1:] {
		if p < lo {
			lo = p
		}
		if p > hi {
			hi = p
		}
	}
	return hi - lo + 1
}

// spanWith is the spread the partial assignment would have after adding p.
func spanWith(chosen []int, p int) int {
	lo, hi := p, p
	for _, c := range chosen {
		if c < lo {
			lo = c
		}
		if c > hi {
			hi = c
		}
	}
	return hi - lo + 1
}
