package raster

import (
	"image/color"
	"math"
	"testing"

	"github.com/example/draftstudio/internal/brush"
)

var (
	white = color.RGBA{255, 255, 255, 255}
	red   = color.RGBA{211, 47, 47, 255}
)

func inkedNear(s *Surface, x, y float64, radius int) bool {
	cx := int(math.Round(x))
	cy := int(math.Round(y))
	for dy := -radius; dy <= radius; dy++ {
		for dx := -radius; dx <= radius; dx++ {
			px, py := cx+dx, cy+dy
			if px < 0 || py < 0 || px >= s.Width() || py >= s.Height() {
				continue
			}
			if s.Image().RGBAAt(px, py) != white {
				return true
			}
		}
	}
	return false
}

func TestDotLeavesMark(t *testing.T) {
	s := NewSurface(64, 64, white)
	pen := NewPen(brush.Brush{Shape: brush.ShapeRound, Style: brush.StyleSolid, Size: 4, Color: red}, white)
	pen.Dot(s.Image(), Pt(32, 32))
	if !inkedNear(s, 32, 32, 2) {
		t.Fatal("expected a visible mark after a zero-length tap")
	}
}

func TestSolidRoundStrokeIsContinuous(t *testing.T) {
	s := NewSurface(128, 64, white)
	pen := NewPen(brush.Brush{Shape: brush.ShapeRound, Style: brush.StyleSolid, Size: 4, Color: red}, white)
	a := Pt(10, 32)
	b := Pt(110, 32)
	pen.Dot(s.Image(), a)
	pen.Line(s.Image(), a, b)
	for x := 10.0; x <= 110; x++ {
		if !inkedNear(s, x, 32, 2) {
			t.Fatalf("gap in stroke at x=%v", x)
		}
	}
}

func TestSolidStrokeDepositsExactColor(t *testing.T) {
	s := NewSurface(64, 64, white)
	pen := NewPen(brush.Brush{Shape: brush.ShapeSquare, Style: brush.StyleSolid, Size: 8, Color: red}, white)
	pen.Dot(s.Image(), Pt(32, 32))
	if got := s.Image().RGBAAt(32, 32); got != red {
		t.Fatalf("center pixel = %v, want %v", got, red)
	}
}

func TestEraserDepositsBackgroundAcrossStyles(t *testing.T) {
	for _, style := range []brush.Style{brush.StyleSolid, brush.StylePencil, brush.StyleWatercolor, brush.StyleGouache} {
		s := NewSurface(64, 64, white)
		paint := NewPen(brush.Brush{Shape: brush.ShapeRound, Style: brush.StyleSolid, Size: 12, Color: red}, white)
		paint.Dot(s.Image(), Pt(32, 32))
		if s.Image().RGBAAt(32, 32) != red {
			t.Fatal("setup: expected painted pixel")
		}

		erase := NewPen(brush.Brush{
			Shape: brush.ShapeRound,
			Style: style,
			Size:  16,
			Color: red, // must be ignored in erase mode
			Mode:  brush.ModeErase,
		}, white)
		erase.Dot(s.Image(), Pt(32, 32))
		if got := s.Image().RGBAAt(32, 32); got != white {
			t.Errorf("style %v: eraser left %v, want exact background", style, got)
		}
	}
}

func TestDiamondStampContinuity(t *testing.T) {
	for size := 1; size <= brush.MaxSize; size++ {
		s := NewSurface(256, 64, white)
		pen := NewPen(brush.Brush{Shape: brush.ShapeDiamond, Style: brush.StyleSolid, Size: size, Color: red}, white)
		a := Pt(20, 32)
		b := Pt(220, 32)
		pen.Dot(s.Image(), a)
		pen.Line(s.Image(), a, b)
		// Walk the path; a gap larger than one brush size fails.
		for x := 20.0; x <= 220; x++ {
			if !inkedNear(s, x, 32, size) {
				t.Fatalf("size %d: gap at x=%v", size, x)
			}
		}
	}
}

func TestLineSpacingCarriesAcrossSegments(t *testing.T) {
	s := NewSurface(128, 128, white)
	pen := NewPen(brush.Brush{Shape: brush.ShapeDiamond, Style: brush.StyleSolid, Size: 16, Color: red}, white)
	pen.Dot(s.Image(), Pt(20, 20))
	// Many short segments, each shorter than the stamp spacing of 4.
	prev := Pt(20, 20)
	for x := 21.0; x <= 100; x++ {
		cur := Pt(x, 20)
		pen.Line(s.Image(), prev, cur)
		prev = cur
	}
	for x := 20.0; x <= 100; x++ {
		if !inkedNear(s, x, 20, 16) {
			t.Fatalf("gap at x=%v despite carry", x)
		}
	}
}

func TestQuadPassesThroughEndpoints(t *testing.T) {
	s := NewSurface(128, 128, white)
	pen := NewPen(brush.Brush{Shape: brush.ShapeRound, Style: brush.StyleSolid, Size: 4, Color: red}, white)
	p0 := Pt(20, 100)
	ctrl := Pt(64, 10)
	p1 := Pt(108, 100)
	pen.Dot(s.Image(), p0)
	pen.Quad(s.Image(), p0, ctrl, p1)
	if !inkedNear(s, p0.X, p0.Y, 3) {
		t.Error("curve start not painted")
	}
	if !inkedNear(s, p1.X, p1.Y, 3) {
		t.Error("curve end not painted")
	}
	mid := quadPoint(p0, ctrl, p1, 0.5)
	if !inkedNear(s, mid.X, mid.Y, 3) {
		t.Error("curve midpoint not painted")
	}
	// The control point itself must not be on the curve.
	if inkedNear(s, ctrl.X, ctrl.Y, 2) {
		t.Error("curve should not pass through the control point")
	}
}

func TestWatercolorIsTranslucentAndSoft(t *testing.T) {
	s := NewSurface(96, 96, white)
	pen := NewPen(brush.Brush{Shape: brush.ShapeRound, Style: brush.StyleWatercolor, Size: 12, Color: color.RGBA{0, 0, 0, 255}}, white)
	pen.Dot(s.Image(), Pt(48, 48))
	center := s.Image().RGBAAt(48, 48)
	if center == white {
		t.Fatal("expected paint at center")
	}
	if center.R == 0 {
		t.Errorf("watercolor center fully opaque: %v", center)
	}
	// The blurred skirt reaches beyond the hard footprint radius.
	edge := s.Image().RGBAAt(48+8, 48)
	if edge == white {
		t.Errorf("expected soft skirt outside the footprint, got background")
	}
}

func TestShapePenForcesPathCodepath(t *testing.T) {
	b := brush.Brush{Shape: brush.ShapeDiamond, Style: brush.StyleSolid, Size: 16, Color: red}
	pen := NewShapePen(b, white)
	if pen.spacing != 1 {
		t.Errorf("shape pen spacing = %v, want 1", pen.spacing)
	}
}

func TestFootprintShapes(t *testing.T) {
	round := footprint(brush.ShapeRound, 9, 0, 1)
	square := footprint(brush.ShapeSquare, 9, 0, 1)
	diamond := footprint(brush.ShapeDiamond, 9, 0, 1)

	// The square covers its corners, the diamond does not.
	if square.AlphaAt(0, 0).A == 0 {
		t.Error("square footprint missing corner")
	}
	if diamond.AlphaAt(0, 0).A != 0 {
		t.Error("diamond footprint should not cover the corner")
	}
	if round.AlphaAt(4, 4).A == 0 || diamond.AlphaAt(4, 4).A == 0 {
		t.Error("footprint missing center")
	}
	// The diamond's axis extremes are inside.
	if diamond.AlphaAt(4, 0).A == 0 {
		t.Error("diamond footprint missing top vertex")
	}
}
