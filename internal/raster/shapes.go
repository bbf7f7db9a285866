package raster

import (
	"image"
	"math"
)

// Shape outline stroking. Each function recomputes the full outline from the
// gesture's start and current points; the canvas restores its pre-gesture
// snapshot before every call so previews never accumulate.

// StrokeLine strokes a straight segment between the two gesture points.
func (p *Pen) StrokeLine(dst *image.RGBA, start, cur Point) {
	p.Polyline(dst, []Point{start, cur}, false)
}

// StrokeRect strokes the axis-aligned rectangle spanned by the two gesture
// points.
func (p *Pen) StrokeRect(dst *image.RGBA, start, cur Point) {
	p.Polyline(dst, []Point{
		start,
		{X: cur.X, Y: start.Y},
		cur,
		{X: start.X, Y: cur.Y},
	}, true)
}

// StrokeEllipse strokes the ellipse inscribed in the bounding box of the two
// gesture points: centered on the box center with radii of half the box
// dimensions. The outline is sampled into a closed polyline, dense enough
// that segment stroking reads as a smooth curve.
func (p *Pen) StrokeEllipse(dst *image.RGBA, start, cur Point) {
	cx := (start.X + cur.X) / 2
	cy := (start.Y + cur.Y) / 2
	rx := math.Abs(cur.X-start.X) / 2
	ry := math.Abs(cur.Y-start.Y) / 2
	steps := int(math.Ceil(2 * math.Pi * math.Sqrt(rx*rx+ry*ry)))
	if steps < 8 {
		steps = 8
	}
	pts := make([]Point, 0, steps)
	for i := 0; i < steps; i++ {
		angle := 2 * math.Pi * float64(i) / float64(steps)
		pts = append(pts, Point{
			X: cx + math.Cos(angle)*rx,
			Y: cy + math.Sin(angle)*ry,
		})
	}
	p.Polyline(dst, pts, true)
}

// StrokeTriangle strokes an isosceles triangle: apex at the horizontal
// midpoint of the bounding box's top edge, base corners at its bottom
// corners.
func (p *Pen) StrokeTriangle(dst *image.RGBA, start, cur Point) {
	minX := math.Min(start.X, cur.X)
	maxX := math.Max(start.X, cur.X)
	minY := math.Min(start.Y, cur.Y)
	maxY := math.Max(start.Y, cur.Y)
	p.Polyline(dst, []Point{
		{X: (minX + maxX) / 2, Y: minY},
		{X: maxX, Y: maxY},
		{X: minX, Y: maxY},
	}, true)
}
