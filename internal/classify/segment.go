package classify

import "strings"

// SplitText breaks document text into segments of at most size bytes,
// overlapping consecutive segments by roughly overlap bytes so a span cut at
// one segment's edge appears whole in its neighbor. Cuts land on the last
// space inside the window; a window with no space at all is cut hard.
func SplitText(text string, size, overlap int) []string {
	text = strings.TrimSpace(text)
	if text == "" {
		return nil
	}
	if size <= 0 || len(text) <= size {
		return []string{text}
	}
	if overlap < 0 || overlap >= size {
		overlap = size / 10
	}

	var segments []string
	start := 0
	for start < len(text) {
		end := start + size
		if end >= len(text) {
			if seg := strings.TrimSpace(text[start:]); seg != "" {
				segments = append(segments, seg)
			}
			break
		}

		cut := strings.LastIndexByte(text[start:end], ' ')
		if cut <= 0 {
			cut = size
		}
		if seg := strings.TrimSpace(text[start : start+cut]); seg != "" {
			segments = append(segments, seg)
		}

		next := start + cut - overlap
		if next <= start {
			next = start + cut
		}
		start = next
	}
	return segments
}
