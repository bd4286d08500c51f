package ocr

import (
	"fmt"
	"path/filepath"
	"strings"
)

// SupportedExtensions lists file extensions this service can handle.
var SupportedExtensions = map[string]bool{
	".png":  true,
	".jpg":  true,
	".jpeg": true,
	".gif":  true,
	".bmp":  true,
	".tif":  true,
	".tiff": true,
	".webp": true,
	".pdf":  true,
	".hocr": true,
	".html": true,
	".htm":  true,
}

// ForFile returns the appropriate engine for a filename. Raster images go
// through Tesseract; born-digital PDFs read their own text layer and skip OCR
// entirely; hOCR files carry the output of an external OCR run.
func ForFile(filename string, cfg Config) (Engine, error) {
	ext := strings.ToLower(filepath.Ext(filename))
	switch ext {
	case ".png", ".jpg", ".jpeg", ".gif", ".bmp", ".tif", ".tiff", ".webp":
		return NewTesseractEngine(cfg.Languages), nil
	case ".pdf":
		return &PDFTextEngine{}, nil
	case ".hocr", ".html", ".htm":
		return &HOCREngine{}, nil
	default:
		return nil, fmt.Errorf("unsupported file extension: %s", ext)
	}
}

// IsSupportedExtension checks if a file extension is supported.
func IsSupportedExtension(filename string) bool {
	ext := strings.ToLower(filepath.Ext(filename))
	return SupportedExtensions[ext]
}

// IsRasterExtension reports whether the file is a pixel image, i.e. whether a
// redacted rendering can be produced for it.
func IsRasterExtension(filename string) bool {
	switch strings.ToLower(filepath.Ext(filename)) {
	case ".png", ".jpg", ".jpeg", ".gif", ".bmp", ".tif", ".tiff", ".webp":
		return true
	}
	return false
}
