package ocr

import (
	"bytes"
	"context"
	"fmt"
	"strconv"
	"strings"

	"golang.org/x/net/html"

	"github.com/dgallion1/docredact/internal/match"
)

// HOCREngine parses hOCR output of an external OCR run. Words come from
// ocrx_word elements, box coordinates from their title attributes, pages from
// ocr_page elements.
type HOCREngine struct{}

func (e *HOCREngine) Recognize(ctx context.Context, data []byte) (Result, error) {
	select {
	case <-ctx.Done():
		return Result{}, ctx.Err()
	default:
	}

	doc, err := html.Parse(bytes.NewReader(data))
	if err != nil {
		return Result{}, fmt.Errorf("parse hocr: %w", err)
	}

	var b hocrBuilder
	b.walk(doc)

	// A fragment without ocr_page wrappers still yields a single page.
	if len(b.pages) == 0 && len(b.words) > 0 {
		b.pages = singlePage(len(b.words))
	}

	return Result{
		Words: b.words,
		Text:  joinWordTexts(b.words),
		Pages: b.pages,
	}, nil
}

type hocrBuilder struct {
	words []match.Word
	pages []PageSpan
}

func (b *hocrBuilder) walk(n *html.Node) {
	if n.Type == html.ElementNode {
		switch {
		case hasClass(n, "ocr_page"):
			start := len(b.words)
			for c := n.FirstChild; c != nil; c = c.NextSibling {
				b.walk(c)
			}
			if len(b.words) > start {
				b.pages = append(b.pages, PageSpan{
					Number: len(b.pages) + 1,
					Start:  start,
					End:    len(b.words),
				})
			}
			return
		case hasClass(n, "ocrx_word"):
			if w, ok := b.word(n); ok {
				b.words = append(b.words, w)
			}
			return
		}
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		b.walk(c)
	}
}

func (b *hocrBuilder) word(n *html.Node) (match.Word, bool) {
	text := CleanText(textContent(n))
	if text == "" {
		return match.Word{}, false
	}
	w := match.Word{Text: text}
	if x0, y0, x1, y1, ok := parseBBox(attrValue(n, "title")); ok {
		w.Polygon = rectPolygon(x0, y0, x1, y1)
	}
	return w, true
}

func hasClass(n *html.Node, class string) bool {
	for _, f := range strings.Fields(attrValue(n, "class")) {
		if f == class {
			return true
		}
	}
	return false
}

func attrValue(n *html.Node, key string) string {
	for _, a := range n.Attr {
		if a.Key == key {
			return a.Val
		}
	}
	return ""
}

func textContent(n *html.Node) string {
	var buf strings.Builder
	var extract func(*html.Node)
	extract = func(n *html.Node) {
		if n.Type == html.TextNode {
			buf.WriteString(n.Data)
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			extract(c)
		}
	}
	extract(n)
	return strings.TrimSpace(buf.String())
}

// parseBBox reads the box coordinates out of an hOCR title attribute, e.g.
// "bbox 100 120 250 160; x_wconf 93".
func parseBBox(title string) (x0, y0, x1, y1 float64, ok bool) {
	for _, field := range strings.Split(title, ";") {
		parts := strings.Fields(field)
		if len(parts) != 5 || parts[0] != "bbox" {
			continue
		}
		var coords [4]float64
		for i, p := range parts[1:] {
			v, err := strconv.ParseFloat(p, 64)
			if err != nil {
				return 0, 0, 0, 0, false
			}
			coords[i] = v
		}
		return coords[0], coords[1], coords[2], coords[3], true
	}
	return 0, 0, 0, 0, false
}
