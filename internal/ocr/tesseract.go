package ocr

import (
	"context"
	"fmt"

	"github.com/otiai10/gosseract/v2"

	"github.com/dgallion1/docredact/internal/match"
)

// TesseractEngine recognizes raster images through the gosseract client. The
// client factory is injectable so conversion logic can be tested without a
// Tesseract installation.
type TesseractEngine struct {
	languages     []string
	clientFactory func() *gosseract.Client
}

// NewTesseractEngine constructs a Tesseract-backed engine.
func NewTesseractEngine(languages []string) *TesseractEngine {
	return &TesseractEngine{
		languages:     languages,
		clientFactory: gosseract.NewClient,
	}
}

func (e *TesseractEngine) Recognize(ctx context.Context, data []byte) (Result, error) {
	select {
	case <-ctx.Done():
		return Result{}, ctx.Err()
	default:
	}

	c := e.clientFactory()
	defer c.Close()

	if err := c.SetImageFromBytes(data); err != nil {
		return Result{}, fmt.Errorf("set image: %w", err)
	}
	if len(e.languages) > 0 {
		if err := c.SetLanguage(e.languages...); err != nil {
			return Result{}, fmt.Errorf("set languages: %w", err)
		}
	}

	boxes, err := c.GetBoundingBoxes(gosseract.RIL_WORD)
	if err != nil {
		return Result{}, fmt.Errorf("recognize words: %w", err)
	}

	words := boxesToWords(boxes)
	return Result{
		Words: words,
		Text:  joinWordTexts(words),
		Pages: singlePage(len(words)),
	}, nil
}

// boxesToWords converts Tesseract word boxes into matcher words, dropping
// boxes whose text cleans to nothing.
func boxesToWords(boxes []gosseract.BoundingBox) []match.Word {
	var words []match.Word
	for _, b := range boxes {
		text := CleanText(b.Word)
		if text == "" {
			continue
		}
		words = append(words, match.Word{
			Text: text,
			Polygon: rectPolygon(
				float64(b.Box.Min.X), float64(b.Box.Min.Y),
				float64(b.Box.Max.X), float64(b.Box.Max.Y),
			),
		})
	}
	return words
}

func singlePage(wordCount int) []PageSpan {
	if wordCount == 0 {
		return nil
	}
	return []PageSpan{{Number: 1, Start: 0, End: wordCount}}
}
