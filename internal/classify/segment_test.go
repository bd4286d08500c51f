package classify

import (
	"strings"
	"testing"
)

func TestSplitText_ShortTextSingleSegment(t *testing.T) {
	segments := SplitText("short note", 100, 10)
	if len(segments) != 1 {
		t.Fatalf("expected 1 segment, got %d", len(segments))
	}
	if segments[0] != "short note" {
		t.Errorf("expected text unchanged, got %q", segments[0])
	}
}

func TestSplitText_EmptyReturnsNil(t *testing.T) {
	if segments := SplitText("", 100, 10); segments != nil {
		t.Errorf("expected nil for empty text, got %v", segments)
	}
	if segments := SplitText("   \n\t ", 100, 10); segments != nil {
		t.Errorf("expected nil for whitespace text, got %v", segments)
	}
}

func TestSplitText_CutsOnSpacesWithOverlap(t *testing.T) {
	text := "one two three four five six seven eight nine ten"
	segments := SplitText(text, 20, 5)

	want := []string{
		"one two three four",
		"four five six",
		"e six seven eight",
		"eight nine ten",
	}
	if len(segments) != len(want) {
		t.Fatalf("expected %d segments, got %d: %q", len(want), len(segments), segments)
	}
	for i := range want {
		if segments[i] != want[i] {
			t.Errorf("segment %d: expected %q, got %q", i, want[i], segments[i])
		}
	}

	// The overlap repeats the tail of one segment at the head of the next,
	// so a span cut at the boundary survives whole somewhere.
	if !strings.Contains(segments[0], "four") || !strings.Contains(segments[1], "four") {
		t.Error("expected boundary word present in both neighboring segments")
	}
}

func TestSplitText_HardCutWithoutSpaces(t *testing.T) {
	text := strings.Repeat("a", 50)
	segments := SplitText(text, 20, 5)

	if len(segments) != 3 {
		t.Fatalf("expected 3 segments, got %d", len(segments))
	}
	for i, seg := range segments {
		if len(seg) != 20 {
			t.Errorf("segment %d: expected 20 bytes, got %d", i, len(seg))
		}
	}
}

func TestSplitText_TinyLeadingWordStillAdvances(t *testing.T) {
	text := "ab " + strings.Repeat("c", 40)
	segments := SplitText(text, 20, 5)

	if len(segments) < 2 {
		t.Fatalf("expected multiple segments, got %d", len(segments))
	}
	if segments[0] != "ab" {
		t.Errorf("expected first segment %q, got %q", "ab", segments[0])
	}
	for i, seg := range segments {
		if seg == "" {
			t.Errorf("segment %d is empty", i)
		}
		if len(seg) > 20 {
			t.Errorf("segment %d: %d bytes exceeds size", i, len(seg))
		}
	}
}

func TestSplitText_InvalidOverlapFallsBack(t *testing.T) {
	text := "one two three four five six seven eight nine ten"
	for _, overlap := range []int{-1, 20, 25} {
		segments := SplitText(text, 20, overlap)
		if len(segments) < 2 {
			t.Fatalf("overlap %d: expected multiple segments, got %d", overlap, len(segments))
		}
		for i, seg := range segments {
			if len(seg) > 20 {
				t.Errorf("overlap %d: segment %d exceeds size: %q", overlap, i, seg)
			}
		}
	}
}
