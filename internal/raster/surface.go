package raster

import (
	"image"
	"image/color"
	"image/draw"
)

// Surface is the fixed-resolution pixel buffer that holds the drawing. It is
// the single source of truth for canvas content and is owned exclusively by
// the canvas component; nothing outside the component writes to it.
type Surface struct {
	img        *image.RGBA
	background color.RGBA
}

// NewSurface creates a surface of the given backing resolution filled with
// the background color.
func NewSurface(width, height int, background color.RGBA) *Surface {
	if width < 1 {
		width = 1
	}
	if height < 1 {
		height = 1
	}
	s := &Surface{
		img:        image.NewRGBA(image.Rect(0, 0, width, height)),
		background: background,
	}
	s.Clear()
	return s
}

// Width returns the backing resolution width in pixels.
func (s *Surface) Width() int { return s.img.Bounds().Dx() }

// Height returns the backing resolution height in pixels.
func (s *Surface) Height() int { return s.img.Bounds().Dy() }

// Background returns the fill color used by Clear and the eraser.
func (s *Surface) Background() color.RGBA { return s.background }

// Image exposes the backing image for painting and encoding. Callers must
// not retain it across a resize.
func (s *Surface) Image() *image.RGBA { return s.img }

// Clear fills the whole surface with the background color.
func (s *Surface) Clear() {
	draw.Draw(s.img, s.img.Bounds(), image.NewUniform(s.background), image.Point{}, draw.Src)
}

// Snapshot copies the raw pixel state. The copy is immutable from the
// surface's point of view and safe to keep across later painting.
func (s *Surface) Snapshot() []uint8 {
	pix := make([]uint8, len(s.img.Pix))
	copy(pix, s.img.Pix)
	return pix
}

// Restore overwrites the surface with a snapshot previously taken from a
// surface of identical dimensions. Snapshots from other resolutions are
// ignored.
func (s *Surface) Restore(pix []uint8) {
	if len(pix) != len(s.img.Pix) {
		return
	}
	copy(s.img.Pix, pix)
}
