package match

import (
	"reflect"
	"strings"
	"testing"
)

func TestFuzzyTriggered(t *testing.T) {
	for count, want := range map[int]bool{0: true, 1: true, 2: false, 5: false} {
		if got := fuzzyTriggered(count); got != want {
			t.Errorf("fuzzyTriggered(%d): expected %v, got %v", count, want, got)
		}
	}
}

func TestEditDistance_KnownValues(t *testing.T) {
	cases := []struct {
		a, b string
		want int
	}{
		{"kitten", "sitting", 3},
		{"hello", "hello", 0},
		{"", "abc", 3},
		{"abc", "", 3},
		{"john", "j0hn", 1},
	}
	for _, c := range cases {
		if got := editDistance([]rune(c.a), []rune(c.b)); got != c.want {
			t.Errorf("editDistance(%q, %q): expected %d, got %d", c.a, c.b, got, c.want)
		}
	}
}

func TestSearchFuzzy_SubstitutedLetterBelowThreshold(t *testing.T) {
	// One substitution over four characters scores 0.75, under the 0.85
	// threshold, so a zero read as the letter O in a short name stays
	// unmatched.
	if sim := similarity("john", "j0hn"); !almostEqual(sim, 0.75) {
		t.Fatalf("expected similarity 0.75, got %v", sim)
	}
	cands := searchFuzzy([]string{"J0HN"}, "JOHN", map[int]bool{})
	if len(cands) != 0 {
		t.Fatalf("expected no candidates, got %d", len(cands))
	}
}

func TestSearchFuzzy_ThresholdBoundary(t *testing.T) {
	phrase := strings.Repeat("A", 20)

	// Three substitutions over twenty characters: similarity exactly 0.85.
	accept := []string{strings.Repeat("A", 17) + "BBB"}
	cands := searchFuzzy(accept, phrase, map[int]bool{})
	if len(cands) != 1 {
		t.Fatalf("expected 1 candidate at similarity 0.85, got %d", len(cands))
	}
	if !almostEqual(cands[0].confidence, 0.85) {
		t.Errorf("expected confidence 0.85, got %v", cands[0].confidence)
	}
	if cands[0].strategy != "fuzzy" {
		t.Errorf("expected strategy %q, got %q", "fuzzy", cands[0].strategy)
	}

	// Four substitutions score 0.8 and are rejected.
	reject := []string{strings.Repeat("A", 16) + "BBBB"}
	if cands := searchFuzzy(reject, phrase, map[int]bool{}); len(cands) != 0 {
		t.Fatalf("expected no candidates below the threshold, got %d", len(cands))
	}
}

func TestSearchFuzzy_SuppressesNearbyWindows(t *testing.T) {
	// Both two-word windows reconstruct the phrase perfectly; their starts
	// are one apart, inside the suppression distance, so only the first
	// survives.
	cands := searchFuzzy([]string{"AAAA", "AAAA", "AAAA"}, "AAAAAAAA", map[int]bool{})
	if len(cands) != 1 {
		t.Fatalf("expected 1 candidate after suppression, got %d", len(cands))
	}
	if !reflect.DeepEqual(cands[0].indices, []int{0, 1}) {
		t.Errorf("expected indices [0 1], got %v", cands[0].indices)
	}
	if !almostEqual(cands[0].confidence, 1.0) {
		t.Errorf("expected confidence 1.0, got %v", cands[0].confidence)
	}
}

func TestSearchFuzzy_AdjacentSingleWordWindowsKept(t *testing.T) {
	// Two perfect single-word hits one position apart: the distance equals
	// the window span, so the second is not suppressed.
	cands := searchFuzzy([]string{"HELLO", "HELLO"}, "HELLO", map[int]bool{})
	if len(cands) != 2 {
		t.Fatalf("expected 2 candidates, got %d", len(cands))
	}
	if !reflect.DeepEqual(cands[0].indices, []int{0}) || !reflect.DeepEqual(cands[1].indices, []int{1}) {
		t.Errorf("expected indices [0] and [1], got %v and %v", cands[0].indices, cands[1].indices)
	}
}

func TestSearchFuzzy_SkipsClaimedWindow(t *testing.T) {
	claimed := map[int]bool{0: true}
	cands := searchFuzzy([]string{"HELLO", "HELLO"}, "HELLO", claimed)
	if len(cands) != 1 {
		t.Fatalf("expected 1 candidate, got %d", len(cands))
	}
	if !reflect.DeepEqual(cands[0].indices, []int{1}) {
		t.Errorf("expected the unclaimed occurrence [1], got %v", cands[0].indices)
	}
	if !claimed[1] {
		t.Error("expected the accepted position to be claimed")
	}
}

func TestSearchFuzzy_WindowCapAtFiveWords(t *testing.T) {
	// The phrase spans six words; no window of five or fewer gets close
	// enough, so the cap leaves it unmatched.
	words := make([]string, 6)
	for i := range words {
		words[i] = "ABCD"
	}
	cands := searchFuzzy(words, strings.Repeat("ABCD", 6), map[int]bool{})
	if len(cands) != 0 {
		t.Fatalf("expected no candidates past the window cap, got %d", len(cands))
	}
}
