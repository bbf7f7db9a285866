// Package export writes finished sketches out as PNG or PDF files.
package export

import (
	"bytes"
	"fmt"
	"image"
	"image/png"
	"io"
	"os"

	"github.com/google/uuid"
	"github.com/jung-kurt/gofpdf"
)

// DefaultName returns a collision-free file name for an exported sketch,
// for the common case where the user did not pick one.
func DefaultName(ext string) string {
	return fmt.Sprintf("sketch-%s.%s", uuid.NewString(), ext)
}

// PNG writes img to w as a PNG.
func PNG(w io.Writer, img image.Image) error {
	if err := png.Encode(w, img); err != nil {
		return fmt.Errorf("encode png: %w", err)
	}
	return nil
}

// PNGFile writes img to path as a PNG.
func PNGFile(path string, img image.Image) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	if err := PNG(f, img); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

// PDF writes img to w as a single-page A4 portrait PDF, scaled to fit
// inside the page margins and centered horizontally.
func PDF(w io.Writer, img image.Image, title string) error {
	if b := img.Bounds(); b.Dx() <= 0 || b.Dy() <= 0 {
		return fmt.Errorf("empty image %v", img.Bounds())
	}
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		return fmt.Errorf("encode png: %w", err)
	}

	p := gofpdf.New("P", "mm", "A4", "")
	if title != "" {
		p.SetTitle(title, true)
	}
	p.AddPage()

	opts := gofpdf.ImageOptions{ImageType: "PNG"}
	p.RegisterImageOptionsReader("sketch", opts, &buf)

	pageW, pageH := p.GetPageSize()
	left, top, right, bottom := p.GetMargins()
	availW := pageW - left - right
	availH := pageH - top - bottom

	b := img.Bounds()
	drawW := availW
	drawH := availW * float64(b.Dy()) / float64(b.Dx())
	if drawH > availH {
		drawH = availH
		drawW = availH * float64(b.Dx()) / float64(b.Dy())
	}
	x := left + (availW-drawW)/2
	p.ImageOptions("sketch", x, top, drawW, drawH, false, opts, 0, "")

	if err := p.Output(w); err != nil {
		return fmt.Errorf("write pdf: %w", err)
	}
	return nil
}

// PDFFile writes img to path as a PDF.
func PDFFile(path string, img image.Image, title string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	if err := PDF(f, img, title); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}
