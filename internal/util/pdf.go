package util

import (
	"bytes"
	"fmt"
	"image/png"

	"github.com/gen2brain/go-fitz"
)

// RenderPDFPage rasterizes one page of a PDF to PNG bytes.
func RenderPDFPage(data []byte, page int) ([]byte, error) {
	doc, err := fitz.NewFromMemory(data)
	if err != nil {
		return nil, fmt.Errorf("failed to open PDF: %w", err)
	}
	defer doc.Close()

	if doc.NumPage() == 0 {
		return nil, fmt.Errorf("PDF has no pages")
	}
	if page < 0 || page >= doc.NumPage() {
		return nil, fmt.Errorf("page %d out of range (total %d)", page+1, doc.NumPage())
	}

	img, err := doc.Image(page)
	if err != nil {
		return nil, fmt.Errorf("page %d: failed to extract image: %w", page+1, err)
	}

	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		return nil, fmt.Errorf("page %d: failed to encode PNG: %w", page+1, err)
	}
	return buf.Bytes(), nil
}
