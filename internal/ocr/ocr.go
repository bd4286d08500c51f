package ocr

import (
	"context"
	"strings"

	"github.com/dgallion1/docredact/internal/match"
)

// PageSpan maps a half-open word index range [Start, End) onto a source page.
type PageSpan struct {
	Number int `json:"number"`
	Start  int `json:"start"`
	End    int `json:"end"`
}

// Result is the word stream recovered from one document, flattened into
// reading order (page, block, paragraph, word). Text is the space-joined word
// texts, used for classification.
type Result struct {
	Words []match.Word
	Text  string
	Pages []PageSpan
}

// Engine recovers positioned words from raw document bytes.
type Engine interface {
	Recognize(ctx context.Context, data []byte) (Result, error)
}

// Config carries the engine settings that vary per deployment.
type Config struct {
	// Languages are the Tesseract language codes to load, e.g. ["eng"].
	Languages []string
}

// joinWordTexts builds the classification text from the word stream.
func joinWordTexts(words []match.Word) string {
	texts := make([]string, len(words))
	for i, w := range words {
		texts[i] = w.Text
	}
	return strings.Join(texts, " ")
}

// rectPolygon is the four-corner clockwise polygon of an axis-aligned box.
func rectPolygon(x0, y0, x1, y1 float64) []match.Vertex {
	return []match.Vertex{
		{X: &x0, Y: &y0},
		{X: &x1, Y: &y0},
		{X: &x1, Y: &y1},
		{X: &x0, Y: &y1},
	}
}
