// Package imageio converts between the raster surface and portable image
// encodings, and fits external images onto the surface.
package imageio

import (
	"bytes"
	"encoding/base64"
	"fmt"
	"image"
	"image/color"
	"image/draw"
	"image/png"
	"strings"

	xdraw "golang.org/x/image/draw"

	_ "image/gif"
	_ "image/jpeg"
)

// EncodePNG serializes an image to PNG bytes.
func EncodePNG(img image.Image) ([]byte, error) {
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		return nil, fmt.Errorf("encode png: %w", err)
	}
	return buf.Bytes(), nil
}

// EncodeBase64 serializes an image to a base64 PNG string with no data-URI
// prefix. This is the canonical hand-off format for the image callback.
func EncodeBase64(img image.Image) (string, error) {
	data, err := EncodePNG(img)
	if err != nil {
		return "", err
	}
	return base64.StdEncoding.EncodeToString(data), nil
}

// Decode parses an image from a base64 string. A leading data-URI prefix
// ("data:image/png;base64,") is tolerated and stripped. Decode failures are
// reported to the caller rather than swallowed; the surface is untouched on
// error.
func Decode(data string) (image.Image, error) {
	s := strings.TrimSpace(data)
	if s == "" {
		return nil, fmt.Errorf("decode image: empty data")
	}
	if strings.HasPrefix(s, "data:") {
		idx := strings.Index(s, ",")
		if idx < 0 {
			return nil, fmt.Errorf("decode image: malformed data URI")
		}
		s = s[idx+1:]
	}
	raw, err := base64.StdEncoding.DecodeString(s)
	if err != nil {
		return nil, fmt.Errorf("decode image: invalid base64: %w", err)
	}
	return DecodeBytes(raw)
}

// DecodeBytes parses an image from raw encoded bytes (PNG, JPEG or GIF).
func DecodeBytes(raw []byte) (image.Image, error) {
	img, _, err := image.Decode(bytes.NewReader(raw))
	if err != nil {
		return nil, fmt.Errorf("decode image: %w", err)
	}
	return img, nil
}

// FitRect computes where a source of the given dimensions lands inside a
// destination when scaled uniformly by min(dstW/srcW, dstH/srcH) and
// centered. It is a pure function so fitting behaviour is testable without
// pixels.
func FitRect(dstW, dstH, srcW, srcH int) image.Rectangle {
	if srcW <= 0 || srcH <= 0 || dstW <= 0 || dstH <= 0 {
		return image.Rectangle{}
	}
	scale := float64(dstW) / float64(srcW)
	if s := float64(dstH) / float64(srcH); s < scale {
		scale = s
	}
	w := int(float64(srcW)*scale + 0.5)
	h := int(float64(srcH)*scale + 0.5)
	x := (dstW - w) / 2
	y := (dstH - h) / 2
	return image.Rect(x, y, x+w, y+h)
}

// FitDraw clears dst to the background color, then draws src scaled to the
// largest size that preserves its aspect ratio and fits entirely inside dst,
// centered.
func FitDraw(dst *image.RGBA, src image.Image, background color.RGBA) {
	bounds := dst.Bounds()
	draw.Draw(dst, bounds, image.NewUniform(background), image.Point{}, draw.Src)
	sb := src.Bounds()
	target := FitRect(bounds.Dx(), bounds.Dy(), sb.Dx(), sb.Dy()).Add(bounds.Min)
	if target.Empty() {
		return
	}
	xdraw.ApproxBiLinear.Scale(dst, target, src, sb, draw.Over, nil)
}
