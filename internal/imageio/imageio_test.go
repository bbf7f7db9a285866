package imageio

import (
	"encoding/base64"
	"image"
	"image/color"
	"strings"
	"testing"
)

func TestFitRectWideSource(t *testing.T) {
	// 1000x500 source onto a 512x512 surface: scale 0.512, full width,
	// vertically centered.
	r := FitRect(512, 512, 1000, 500)
	if r.Dx() != 512 || r.Dy() != 256 {
		t.Fatalf("fit size = %dx%d, want 512x256", r.Dx(), r.Dy())
	}
	if r.Min.X != 0 {
		t.Errorf("x offset = %d, want 0", r.Min.X)
	}
	if r.Min.Y != 128 {
		t.Errorf("y offset = %d, want 128", r.Min.Y)
	}
}

func TestFitRectTallSource(t *testing.T) {
	r := FitRect(512, 512, 250, 1000)
	if r.Dx() != 128 || r.Dy() != 512 {
		t.Fatalf("fit size = %dx%d, want 128x512", r.Dx(), r.Dy())
	}
	if r.Min.X != 192 || r.Min.Y != 0 {
		t.Errorf("offset = %v, want (192,0)", r.Min)
	}
}

func TestFitRectPreservesAspectRatio(t *testing.T) {
	cases := []struct{ dw, dh, sw, sh int }{
		{512, 512, 1000, 500},
		{512, 512, 512, 512},
		{300, 200, 30, 20},
		{640, 480, 3, 7},
	}
	for _, tc := range cases {
		r := FitRect(tc.dw, tc.dh, tc.sw, tc.sh)
		srcRatio := float64(tc.sw) / float64(tc.sh)
		dstRatio := float64(r.Dx()) / float64(r.Dy())
		if diff := srcRatio - dstRatio; diff > 0.05 || diff < -0.05 {
			t.Errorf("fit %v: ratio %v vs source %v", tc, dstRatio, srcRatio)
		}
		if r.Dx() > tc.dw || r.Dy() > tc.dh {
			t.Errorf("fit %v exceeds destination: %v", tc, r)
		}
	}
}

func TestFitRectDegenerate(t *testing.T) {
	if r := FitRect(512, 512, 0, 100); !r.Empty() {
		t.Errorf("expected empty rect for zero-width source, got %v", r)
	}
}

func TestEncodeDecodeRoundTrip(t *testing.T) {
	src := image.NewRGBA(image.Rect(0, 0, 8, 8))
	src.Set(3, 5, color.RGBA{211, 47, 47, 255})

	s, err := EncodeBase64(src)
	if err != nil {
		t.Fatalf("encode: %v", err)
	}
	if strings.HasPrefix(s, "data:") {
		t.Fatal("exported string must not carry a data-URI prefix")
	}
	if _, err := base64.StdEncoding.DecodeString(s); err != nil {
		t.Fatalf("exported string is not valid base64: %v", err)
	}

	img, err := Decode(s)
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	got := color.RGBAModel.Convert(img.At(3, 5)).(color.RGBA)
	if got != (color.RGBA{211, 47, 47, 255}) {
		t.Errorf("pixel = %v after round trip", got)
	}
}

func TestDecodeDataURI(t *testing.T) {
	src := image.NewRGBA(image.Rect(0, 0, 4, 4))
	s, err := EncodeBase64(src)
	if err != nil {
		t.Fatalf("encode: %v", err)
	}
	if _, err := Decode("data:image/png;base64," + s); err != nil {
		t.Fatalf("decode with data URI prefix: %v", err)
	}
}

func TestDecodeErrors(t *testing.T) {
	if _, err := Decode(""); err == nil {
		t.Error("expected error for empty input")
	}
	if _, err := Decode("not-base64!!!"); err == nil {
		t.Error("expected error for invalid base64")
	}
	garbage := base64.StdEncoding.EncodeToString([]byte("not an image"))
	if _, err := Decode(garbage); err == nil {
		t.Error("expected error for undecodable image bytes")
	}
	if _, err := Decode("data:image/png;base64"); err == nil {
		t.Error("expected error for malformed data URI")
	}
}

func TestFitDrawCentersContent(t *testing.T) {
	dst := image.NewRGBA(image.Rect(0, 0, 512, 512))
	bg := color.RGBA{255, 255, 255, 255}
	src := image.NewRGBA(image.Rect(0, 0, 1000, 500))
	blue := color.RGBA{0, 0, 255, 255}
	for y := 0; y < 500; y++ {
		for x := 0; x < 1000; x++ {
			src.Set(x, y, blue)
		}
	}

	FitDraw(dst, src, bg)

	// Above and below the fitted band stays background.
	if got := dst.RGBAAt(256, 64); got != bg {
		t.Errorf("pixel above band = %v, want background", got)
	}
	if got := dst.RGBAAt(256, 512-64); got != bg {
		t.Errorf("pixel below band = %v, want background", got)
	}
	// Inside the band is source content.
	if got := dst.RGBAAt(256, 256); got != blue {
		t.Errorf("pixel inside band = %v, want blue", got)
	}
	// The band spans the full width.
	if got := dst.RGBAAt(2, 256); got != blue {
		t.Errorf("left edge = %v, want blue", got)
	}
}
