package raster

import (
	"image"
	"image/color"
	"image/draw"
	"math"

	"github.com/example/draftstudio/internal/brush"
)

// Pen paints one gesture's ink. It owns the precomputed tip footprint and
// stamp spacing for a brush, so nothing about opacity or blur survives the
// gesture: a fresh Pen starts from the brush configuration alone.
type Pen struct {
	mask    *image.Alpha
	src     *image.Uniform
	size    int
	spacing float64
	carry   float64
}

// NewPen builds a pen for freehand strokes with the given brush.
func NewPen(b brush.Brush, background color.RGBA) *Pen {
	b = b.Normalize()
	params := brush.Compute(b, background)
	return &Pen{
		mask:    footprint(b.Shape, b.Size, params.Blur, params.Alpha),
		src:     image.NewUniform(params.Color),
		size:    b.Size,
		spacing: b.Spacing(),
	}
}

// NewShapePen builds a pen for stroking shape outlines. Shapes always use
// the continuous path codepath: a diamond tip falls back to round and stamps
// are placed every pixel.
func NewShapePen(b brush.Brush, background color.RGBA) *Pen {
	if b.Shape == brush.ShapeDiamond {
		b.Shape = brush.ShapeRound
	}
	b = b.Normalize()
	params := brush.Compute(b, background)
	return &Pen{
		mask:    footprint(b.Shape, b.Size, params.Blur, params.Alpha),
		src:     image.NewUniform(params.Color),
		size:    b.Size,
		spacing: 1,
	}
}

// Size returns the brush diameter the pen was built with.
func (p *Pen) Size() int { return p.size }

// Reset clears the spacing carry so the next segment starts with a stamp.
// Shape previews call this before every re-render to stay deterministic.
func (p *Pen) Reset() { p.carry = 0 }

// Dot places a single mark. Pointer-down calls this so a zero-length tap is
// still visible.
func (p *Pen) Dot(dst *image.RGBA, at Point) {
	p.stamp(dst, at.X, at.Y)
	p.carry = p.spacing
}

// Line paints from a to b, stamping the tip at the pen's spacing. The
// leftover distance carries into the next call so stamps stay evenly spaced
// across polyline joints.
func (p *Pen) Line(dst *image.RGBA, a, b Point) {
	dx := b.X - a.X
	dy := b.Y - a.Y
	dist := math.Hypot(dx, dy)
	if dist == 0 {
		return
	}
	for p.carry <= dist {
		t := p.carry / dist
		p.stamp(dst, a.X+dx*t, a.Y+dy*t)
		p.carry += p.spacing
	}
	p.carry -= dist
}

// Quad paints the quadratic curve from p0 to p1 with control point ctrl,
// sampling the curve at discrete parameter steps and stamping along the
// sampled polyline. Step count follows the chord length so flat curves do
// not oversample.
func (p *Pen) Quad(dst *image.RGBA, p0, ctrl, p1 Point) {
	approx := Dist(p0, ctrl) + Dist(ctrl, p1)
	steps := int(math.Ceil(approx))
	if steps < 8 {
		steps = 8
	}
	prev := p0
	for i := 1; i <= steps; i++ {
		t := float64(i) / float64(steps)
		next := quadPoint(p0, ctrl, p1, t)
		p.Line(dst, prev, next)
		prev = next
	}
}

// Polyline strokes the given points in order, optionally closing the path.
func (p *Pen) Polyline(dst *image.RGBA, pts []Point, closed bool) {
	if len(pts) == 0 {
		return
	}
	p.Reset()
	if len(pts) == 1 {
		p.Dot(dst, pts[0])
		return
	}
	for i := 1; i < len(pts); i++ {
		p.Line(dst, pts[i-1], pts[i])
	}
	if closed {
		p.Line(dst, pts[len(pts)-1], pts[0])
	}
}

func (p *Pen) stamp(dst *image.RGBA, x, y float64) {
	b := p.mask.Bounds()
	minX := int(math.Round(x)) - b.Dx()/2
	minY := int(math.Round(y)) - b.Dy()/2
	rect := image.Rect(minX, minY, minX+b.Dx(), minY+b.Dy())
	draw.DrawMask(dst, rect, p.src, image.Point{}, p.mask, b.Min, draw.Over)
}

// footprint renders a brush tip into an alpha mask. The mask is padded by
// the blur radius so the softened skirt is not clipped, and every value is
// scaled by the stroke opacity up front.
func footprint(shape brush.Shape, size, blur int, alpha float64) *image.Alpha {
	pad := blur
	dim := size + 2*pad
	if dim < 1 {
		dim = 1
	}
	mask := image.NewAlpha(image.Rect(0, 0, dim, dim))
	center := float64(dim-1) / 2
	radius := float64(size) / 2
	for y := 0; y < dim; y++ {
		for x := 0; x < dim; x++ {
			dx := float64(x) - center
			dy := float64(y) - center
			var inside bool
			switch shape {
			case brush.ShapeSquare:
				inside = math.Abs(dx) <= radius && math.Abs(dy) <= radius
			case brush.ShapeDiamond:
				inside = math.Abs(dx)+math.Abs(dy) <= radius
			default:
				inside = dx*dx+dy*dy <= radius*radius
			}
			if inside {
				mask.SetAlpha(x, y, color.Alpha{A: 255})
			}
		}
	}
	// A size-1 tip can round to an empty mask for non-round shapes; always
	// mark the center pixel.
	cx := dim / 2
	mask.SetAlpha(cx, cx, color.Alpha{A: 255})
	if blur > 0 {
		mask = blurAlpha(mask, blur)
	}
	if alpha < 1 {
		for i, v := range mask.Pix {
			mask.Pix[i] = uint8(float64(v)*alpha + 0.5)
		}
	}
	return mask
}
