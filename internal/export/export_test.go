package export

import (
	"bytes"
	"image"
	"image/color"
	"image/draw"
	"strings"
	"testing"
)

func testImage(w, h int) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	draw.Draw(img, img.Bounds(), image.NewUniform(color.RGBA{255, 255, 255, 255}), image.Point{}, draw.Src)
	for x := 0; x < w && x < h; x++ {
		img.SetRGBA(x, x, color.RGBA{0xD3, 0x2F, 0x2F, 255})
	}
	return img
}

func TestDefaultName(t *testing.T) {
	a := DefaultName("png")
	b := DefaultName("png")
	if a == b {
		t.Error("two default names collided")
	}
	if !strings.HasPrefix(a, "sketch-") || !strings.HasSuffix(a, ".png") {
		t.Errorf("unexpected name %q", a)
	}
}

func TestPNGRoundTrip(t *testing.T) {
	var buf bytes.Buffer
	if err := PNG(&buf, testImage(64, 48)); err != nil {
		t.Fatal(err)
	}
	decoded, _, err := image.Decode(&buf)
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	if b := decoded.Bounds(); b.Dx() != 64 || b.Dy() != 48 {
		t.Errorf("decoded bounds %v, want 64x48", b)
	}
}

func TestPDFProducesDocument(t *testing.T) {
	var buf bytes.Buffer
	if err := PDF(&buf, testImage(512, 512), "sketch"); err != nil {
		t.Fatal(err)
	}
	if !bytes.HasPrefix(buf.Bytes(), []byte("%PDF")) {
		t.Error("output does not start with a PDF header")
	}
}

func TestPDFTallImage(t *testing.T) {
	var buf bytes.Buffer
	if err := PDF(&buf, testImage(100, 2000), ""); err != nil {
		t.Fatal(err)
	}
	if buf.Len() == 0 {
		t.Error("empty output")
	}
}

func TestPDFEmptyImage(t *testing.T) {
	if err := PDF(&bytes.Buffer{}, image.NewRGBA(image.Rectangle{}), ""); err == nil {
		t.Error("expected error for empty image")
	}
}
