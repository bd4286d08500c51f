package match

// FindAll locates every occurrence of every phrase in the word sequence and
// returns one Record per occurrence, in phrase processing order. The call is
// pure and deterministic: identical inputs produce identical output,
// including record IDs. Degenerate inputs yield an empty result, never an
// error.
func FindAll(words []Word, phrases []Phrase) []Record {
	normWords := normalizeWords(words)

	var records []Record
	nextID := 1
	for _, phrase := range phrases {
		variants := generateVariants(phrase.Text)

		// Claims are scoped to this phrase. A later phrase may claim the
		// same word again under its own label.
		claimed := make(map[int]bool)

		cands := searchExact(normWords, variants, claimed)
		exactCount := len(cands)

		if flexTriggered(variants, exactCount) {
			cands = append(cands, searchFlexible(normWords, variants, claimed)...)
		}
		if fuzzyTriggered(len(cands)) {
			cands = append(cands, searchFuzzy(normWords, phrase.Text, claimed)...)
		}

		for _, c := range cands {
			bbox, vertices, ok := deriveGeometry(words, c.indices)
			if !ok {
				continue
			}
			records = append(records, Record{
				ID:          nextID,
				Label:       phrase.Label,
				Text:        phrase.Text,
				BBox:        bbox,
				Vertices:    vertices,
				Redacted:    true,
				Confidence:  c.confidence,
				MatchType:   c.strategy,
				WordIndices: c.indices,
			})
			nextID++
		}
	}
	return records
}
