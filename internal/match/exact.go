package match

// searchExact finds every disjoint occurrence of every variant of one
// phrase. It keeps scanning past each hit so that repeated occurrences are
// all found; positions already claimed for this phrase are never re-matched.
func searchExact(normWords []string, variants []variant, claimed map[int]bool) []candidate {
	var out []candidate
	for _, v := range variants {
		n := len(v.tokens)
		if n == 0 || n > len(normWords) {
			continue
		}
		for start := 0; start+n <= len(normWords); start++ {
			if anyClaimed(claimed, start, n) {
				continue
			}
			if !windowEquals(normWords, start, v.tokens) {
				continue
			}
			out = append(out, candidate{
				indices:    claimRange(claimed, start, n),
				confidence: 1.0,
				strategy:   exactTag(v.kind),
			})
		}
	}
	return out
}

func windowEquals(normWords []string, start int, tokens []string) bool {
	for j, t := range tokens {
		if normWords[start+j] != t {
			return false
		}
	}
	return true
}

// anyClaimed reports whether any position in [start, start+n) is claimed.
func anyClaimed(claimed map[int]bool, start, n int) bool {
	for i := start; i < start+n; i++ {
		if claimed[i] {
			return true
		}
	}
	return false
}

// claimRange claims every position in [start, start+n) and returns them in
// ascending order.
func claimRange(claimed map[int]bool, start, n int) []int {
	indices := make([]int, 0, n)
	for i := start; i < start+n; i++ {
		claimed[i] = true
		indices = append(indices, i)
	}
	return indices
}

// exactTag names the variant kind that produced an exact match.
func exactTag(kind string) string {
	if kind == kindBase {
		return "exact"
	}
	return "exact:" + kind
}
