package render

import (
	"bytes"
	"fmt"
	"image"
	"image/color"
	"image/draw"
	"image/png"
	"math"

	_ "image/gif" // Register decoders
	_ "image/jpeg"

	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/tiff"
	"golang.org/x/image/vector"
	_ "golang.org/x/image/webp"

	"github.com/dgallion1/docredact/internal/match"
)

// Redact decodes a raster image, paints every match geometry opaque black and
// re-encodes the result as PNG. Match coordinates are pixel positions with
// the origin at the top left, the space the OCR layer reported them in.
func Redact(data []byte, records []match.Record) ([]byte, error) {
	img, _, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("decode image: %w", err)
	}

	b := img.Bounds()
	dst := image.NewRGBA(image.Rect(0, 0, b.Dx(), b.Dy()))
	draw.Draw(dst, dst.Bounds(), img, b.Min, draw.Src)

	black := image.NewUniform(color.Black)
	z := vector.NewRasterizer(b.Dx(), b.Dy())
	for _, rec := range records {
		// A closed shape needs three vertices. Anything less falls back to
		// the bounding box.
		if len(rec.Vertices) >= 3 {
			z.Reset(b.Dx(), b.Dy())
			z.MoveTo(float32(rec.Vertices[0].X), float32(rec.Vertices[0].Y))
			for _, p := range rec.Vertices[1:] {
				z.LineTo(float32(p.X), float32(p.Y))
			}
			z.ClosePath()
			z.Draw(dst, dst.Bounds(), black, image.Point{})
		} else {
			fillRect(dst, rec.BBox, black)
		}
	}

	var buf bytes.Buffer
	if err := png.Encode(&buf, dst); err != nil {
		return nil, fmt.Errorf("encode redacted image: %w", err)
	}
	return buf.Bytes(), nil
}

// fillRect paints the [x, y, width, height] box, rounded outward so thin
// boxes still cover whole pixels.
func fillRect(dst *image.RGBA, bbox [4]float64, src image.Image) {
	rect := image.Rect(
		int(math.Floor(bbox[0])),
		int(math.Floor(bbox[1])),
		int(math.Ceil(bbox[0]+bbox[2])),
		int(math.Ceil(bbox[1]+bbox[3])),
	).Intersect(dst.Bounds())
	if rect.Empty() {
		return
	}
	draw.Draw(dst, rect, src, image.Point{}, draw.Src)
}
