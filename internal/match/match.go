package match

import "math"

// Vertex is one corner of a word polygon. Either coordinate may be absent
// when the OCR source could not place it.
type Vertex struct {
	X *float64 `json:"x,omitempty"`
	Y *float64 `json:"y,omitempty"`
}

// Valid reports whether both coordinates are present and numeric.
func (v Vertex) Valid() bool {
	return v.X != nil && v.Y != nil && !math.IsNaN(*v.X) && !math.IsNaN(*v.Y)
}

// Word is a single OCR token with its source polygon. Slice position in the
// containing sequence is the reading order supplied by the OCR layer. Words
// are read-only for the duration of a FindAll call.
type Word struct {
	Text    string   `json:"text"`
	Polygon []Vertex `json:"polygon,omitempty"`
}

// Phrase is a piece of text flagged as sensitive, with the label assigned by
// the classification layer. Arrival order is preserved but not significant.
type Phrase struct {
	Text  string `json:"text"`
	Label string `json:"label"`
}

// Point is a concrete polygon vertex emitted with a match.
type Point struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// Record is one located occurrence of a phrase. BBox is [x, y, width,
// height] in the same pixel space as the input polygons. Vertices preserves
// the order of the surviving input vertices; consumers connect them
// sequentially to form a closed shape.
type Record struct {
	ID         int        `json:"id"`
	Label      string     `json:"label"`
	Text       string     `json:"text"`
	BBox       [4]float64 `json:"bbox"`
	Vertices   []Point    `json:"vertices"`
	Redacted   bool       `json:"redacted"`
	Confidence float64    `json:"confidence"`
	MatchType  string     `json:"matchType"`

	// WordIndices are the positions of the covered words in the input
	// sequence, in the order the matcher claimed them. Not part of the
	// serialized record; callers use it to map matches back to source
	// structure such as pages.
	WordIndices []int `json:"-"`
}

// candidate is a transient match, consumed by geometry derivation. Indices
// keep the order the matcher assigned them and are never re-sorted.
type candidate struct {
	indices    []int
	confidence float64
	strategy   string
}
