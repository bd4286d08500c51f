package match

import (
	"reflect"
	"testing"
)

func TestSearchExact_SingleOccurrence(t *testing.T) {
	claimed := map[int]bool{}
	cands := searchExact(
		[]string{"HELLO", "WORLD"},
		[]variant{{tokens: []string{"HELLO", "WORLD"}, kind: kindBase}},
		claimed,
	)
	if len(cands) != 1 {
		t.Fatalf("expected 1 candidate, got %d", len(cands))
	}
	c := cands[0]
	if !reflect.DeepEqual(c.indices, []int{0, 1}) {
		t.Errorf("expected indices [0 1], got %v", c.indices)
	}
	if c.confidence != 1.0 {
		t.Errorf("expected confidence 1.0, got %v", c.confidence)
	}
	if c.strategy != "exact" {
		t.Errorf("expected strategy %q, got %q", "exact", c.strategy)
	}
	if !claimed[0] || !claimed[1] {
		t.Errorf("expected positions 0 and 1 claimed, got %v", claimed)
	}
}

func TestSearchExact_FindsEveryDisjointOccurrence(t *testing.T) {
	cands := searchExact(
		[]string{"ID", "7", "ID", "7", "ID"},
		[]variant{{tokens: []string{"ID", "7"}, kind: kindBase}},
		map[int]bool{},
	)
	if len(cands) != 2 {
		t.Fatalf("expected 2 disjoint occurrences, got %d", len(cands))
	}
	if !reflect.DeepEqual(cands[0].indices, []int{0, 1}) {
		t.Errorf("expected first occurrence at [0 1], got %v", cands[0].indices)
	}
	if !reflect.DeepEqual(cands[1].indices, []int{2, 3}) {
		t.Errorf("expected second occurrence at [2 3], got %v", cands[1].indices)
	}
}

func TestSearchExact_SkipsWindowTouchingClaimedPosition(t *testing.T) {
	// Position 1 is claimed; the window [0,1] contains it even though the
	// window start does not.
	claimed := map[int]bool{1: true}
	cands := searchExact(
		[]string{"HELLO", "WORLD"},
		[]variant{{tokens: []string{"HELLO", "WORLD"}, kind: kindBase}},
		claimed,
	)
	if len(cands) != 0 {
		t.Fatalf("expected no candidates over a claimed position, got %d", len(cands))
	}
}

func TestSearchExact_LaterVariantCannotOverlapEarlier(t *testing.T) {
	cands := searchExact(
		[]string{"X", "Y", "Z"},
		[]variant{
			{tokens: []string{"X", "Y"}, kind: kindBase},
			{tokens: []string{"Y", "Z"}, kind: kindSeparator},
		},
		map[int]bool{},
	)
	if len(cands) != 1 {
		t.Fatalf("expected 1 candidate, got %d", len(cands))
	}
	if cands[0].strategy != "exact" {
		t.Errorf("expected the base variant to win, got strategy %q", cands[0].strategy)
	}
}

func TestSearchExact_TagIdentifiesVariantKind(t *testing.T) {
	cands := searchExact(
		[]string{"AF", "12", "HPV"},
		generateVariants("AF12HPV"),
		map[int]bool{},
	)
	if len(cands) != 1 {
		t.Fatalf("expected 1 candidate, got %d", len(cands))
	}
	if cands[0].strategy != "exact:boundary" {
		t.Errorf("expected strategy %q, got %q", "exact:boundary", cands[0].strategy)
	}
	if !reflect.DeepEqual(cands[0].indices, []int{0, 1, 2}) {
		t.Errorf("expected indices [0 1 2], got %v", cands[0].indices)
	}
}

func TestSearchExact_VariantLongerThanSequence(t *testing.T) {
	cands := searchExact(
		[]string{"HELLO"},
		[]variant{{tokens: []string{"HELLO", "WORLD"}, kind: kindBase}},
		map[int]bool{},
	)
	if len(cands) != 0 {
		t.Fatalf("expected no candidates, got %d", len(cands))
	}
}
