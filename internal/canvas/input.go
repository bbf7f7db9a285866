package canvas

import "github.com/example/draftstudio/internal/raster"

// DisplayRect is the on-screen rectangle the canvas is rendered into. It is
// in display coordinates and may differ from the backing resolution when the
// canvas is scaled to fit its window.
type DisplayRect struct {
	X, Y, W, H float64
}

// Normalize maps a pointer position in display coordinates onto the backing
// surface, scaling each axis independently by the ratio of backing size to
// display size. A degenerate rectangle maps everything to the origin.
func Normalize(x, y float64, rect DisplayRect, surfaceW, surfaceH int) raster.Point {
	var p raster.Point
	if rect.W > 0 {
		p.X = (x - rect.X) * float64(surfaceW) / rect.W
	}
	if rect.H > 0 {
		p.Y = (y - rect.Y) * float64(surfaceH) / rect.H
	}
	return p
}

// Normalize maps a display-space pointer position onto this canvas's
// surface.
func (c *Canvas) Normalize(x, y float64, rect DisplayRect) raster.Point {
	return Normalize(x, y, rect, c.surface.Width(), c.surface.Height())
}
