package ocr

import (
	"bytes"
	"context"
	"fmt"
	"sort"
	"strings"

	pdflib "github.com/ledongthuc/pdf"

	"github.com/dgallion1/docredact/internal/match"
)

// rowTolerance is the Y distance in points within which glyph runs are
// treated as belonging to one line.
const rowTolerance = 3.0

// PDFTextEngine reads the text layer of a born-digital PDF. Glyph runs carry
// their own positions, so the document never goes through OCR; coordinates
// stay in PDF point space, which the matcher treats like any other plane.
type PDFTextEngine struct{}

func (e *PDFTextEngine) Recognize(ctx context.Context, data []byte) (Result, error) {
	select {
	case <-ctx.Done():
		return Result{}, ctx.Err()
	default:
	}

	reader, err := pdflib.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return Result{}, fmt.Errorf("open pdf: %w", err)
	}

	var out Result
	numPages := reader.NumPage()
	for i := 1; i <= numPages; i++ {
		page := reader.Page(i)
		if page.V.IsNull() {
			continue
		}
		start := len(out.Words)
		out.Words = append(out.Words, pageWords(page.Content().Text)...)
		if len(out.Words) > start {
			out.Pages = append(out.Pages, PageSpan{Number: i, Start: start, End: len(out.Words)})
		}
	}
	out.Text = joinWordTexts(out.Words)
	return out, nil
}

// pageWords flattens one page's glyph runs into reading order and merges them
// into words: group runs into lines by Y, order lines top to bottom, order
// runs left to right, then split on horizontal gaps wider than a space.
func pageWords(texts []pdflib.Text) []match.Word {
	runs := make([]pdflib.Text, 0, len(texts))
	for _, t := range texts {
		if strings.TrimSpace(t.S) != "" {
			runs = append(runs, t)
		}
	}
	if len(runs) == 0 {
		return nil
	}

	var words []match.Word
	for _, row := range groupRows(runs) {
		sort.SliceStable(row, func(i, j int) bool { return row[i].X < row[j].X })
		words = append(words, mergeRow(row)...)
	}
	return words
}

// groupRows buckets runs into lines by Y coordinate. PDF y grows upward, so
// the top line of the page has the largest Y.
func groupRows(runs []pdflib.Text) [][]pdflib.Text {
	type bucket struct {
		yMin, yMax float64
		runs       []pdflib.Text
	}
	var buckets []bucket
	for _, t := range runs {
		placed := false
		for i := range buckets {
			if t.Y >= buckets[i].yMin-rowTolerance && t.Y <= buckets[i].yMax+rowTolerance {
				buckets[i].runs = append(buckets[i].runs, t)
				if t.Y < buckets[i].yMin {
					buckets[i].yMin = t.Y
				}
				if t.Y > buckets[i].yMax {
					buckets[i].yMax = t.Y
				}
				placed = true
				break
			}
		}
		if !placed {
			buckets = append(buckets, bucket{yMin: t.Y, yMax: t.Y, runs: []pdflib.Text{t}})
		}
	}

	sort.SliceStable(buckets, func(i, j int) bool { return buckets[i].yMax > buckets[j].yMax })

	rows := make([][]pdflib.Text, len(buckets))
	for i, b := range buckets {
		rows[i] = b.runs
	}
	return rows
}

type wordBuild struct {
	text     strings.Builder
	minX     float64
	maxX     float64
	y        float64
	fontSize float64
}

// mergeRow concatenates adjacent runs of one line into words, starting a new
// word whenever the horizontal gap to the previous run exceeds the width of a
// typical space for the current font size.
func mergeRow(row []pdflib.Text) []match.Word {
	var words []match.Word
	var cur *wordBuild

	flush := func() {
		if cur == nil {
			return
		}
		if text := CleanText(cur.text.String()); text != "" {
			height := cur.fontSize
			if height <= 0 {
				height = 10
			}
			words = append(words, match.Word{
				Text:    text,
				Polygon: rectPolygon(cur.minX, cur.y, cur.maxX, cur.y+height),
			})
		}
		cur = nil
	}

	for _, t := range row {
		if cur != nil && t.X-cur.maxX > wordGap(cur.fontSize) {
			flush()
		}
		if cur == nil {
			cur = &wordBuild{minX: t.X, maxX: t.X + t.W, y: t.Y, fontSize: t.FontSize}
		} else {
			if t.X+t.W > cur.maxX {
				cur.maxX = t.X + t.W
			}
			if t.FontSize > cur.fontSize {
				cur.fontSize = t.FontSize
			}
		}
		cur.text.WriteString(t.S)
	}
	flush()
	return words
}

// wordGap is the inter-run distance beyond which runs belong to different
// words, roughly a third of an em.
func wordGap(fontSize float64) float64 {
	if fontSize <= 0 {
		return 1.5
	}
	return fontSize * 0.3
}
