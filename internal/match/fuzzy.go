package match

import (
	"sort"
	"strings"
)

const (
	// fuzzyThreshold is the minimum similarity for a fuzzy candidate.
	fuzzyThreshold = 0.85
	// maxFuzzyWindow caps how many words one fuzzy window may concatenate.
	maxFuzzyWindow = 5
)

// fuzzyTriggered reports whether the edit-distance search should run: only
// while the phrase has fewer than two matches so far.
func fuzzyTriggered(matchCount int) bool {
	return matchCount < 2
}

type fuzzyHit struct {
	start, length int
	similarity    float64
}

// searchFuzzy slides windows of one to maxFuzzyWindow words across the
// sequence, scores each window's concatenation against the folded phrase by
// normalized edit distance, and greedily keeps the best non-overlapping
// hits. Accepted positions are claimed.
func searchFuzzy(normWords []string, phraseText string, claimed map[int]bool) []candidate {
	target := strings.ToLower(normalizeToken(phraseText))
	if target == "" || len(normWords) == 0 {
		return nil
	}

	folded := make([]string, len(normWords))
	for i, w := range normWords {
		folded[i] = strings.ToLower(w)
	}

	var hits []fuzzyHit
	maxLen := maxFuzzyWindow
	if len(folded) < maxLen {
		maxLen = len(folded)
	}
	for length := 1; length <= maxLen; length++ {
		for start := 0; start+length <= len(folded); start++ {
			sim := similarity(target, strings.Join(folded[start:start+length], ""))
			if sim >= fuzzyThreshold {
				hits = append(hits, fuzzyHit{start: start, length: length, similarity: sim})
			}
		}
	}

	// Best first; ties keep scan order so output stays deterministic.
	sort.SliceStable(hits, func(i, j int) bool {
		return hits[i].similarity > hits[j].similarity
	})

	var accepted []fuzzyHit
	var out []candidate
	for _, h := range hits {
		if suppressed(h, accepted) {
			continue
		}
		if anyClaimed(claimed, h.start, h.length) {
			continue
		}
		accepted = append(accepted, h)
		out = append(out, candidate{
			indices:    claimRange(claimed, h.start, h.length),
			confidence: h.similarity,
			strategy:   "fuzzy",
		})
	}
	return out
}

// suppressed rejects a hit whose start lies closer to an accepted hit's
// start than the larger of the two window spans.
func suppressed(h fuzzyHit, accepted []fuzzyHit) bool {
	for _, a := range accepted {
		limit := h.length
		if a.length > limit {
			limit = a.length
		}
		d := h.start - a.start
		if d < 0 {
			d = -d
		}
		if d < limit {
			return true
		}
	}
	return false
}

// similarity is 1 minus the edit distance normalized by the longer length.
func similarity(a, b string) float64 {
	if a == "" && b == "" {
		return 1
	}
	ra, rb := []rune(a), []rune(b)
	longest := len(ra)
	if len(rb) > longest {
		longest = len(rb)
	}
	return 1 - float64(editDistance(ra, rb))/float64(longest)
}

// editDistance is the two-row Levenshtein dynamic program over runes.
func editDistance(a, b []rune) int {
	if len(a) == 0 {
		return len(b)
	}
	if len(b) == 0 {
		return len(a)
	}

	prev := make([]int, len(b)+1)
	cur := make([]int, len(b)+1)
	for j := range prev {
		prev[j] = j
	}
	for i := 1; i <= len(a); i++ {
		cur[0] = i
		for j := 1; j <= len(b); j++ {
			cost := 1
			if a[i-1] == b[j-1] {
				cost = 0
			}
			best := cur[j-1] + 1 // insertion
			if del := prev[j] + 1; del < best {
				best = del
			}
			if sub := prev[j-1] + cost; sub < best {
				best = sub
			}
			cur[j] = best
		}
		prev, cur = cur, prev
	}
	return prev[len(b)]
}
