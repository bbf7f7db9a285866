package brush

import (
	"fmt"
	"image/color"
	"strings"
)

// Shape selects the geometry of the brush tip.
type Shape int

const (
	ShapeRound Shape = iota
	ShapeSquare
	ShapeDiamond
)

// Style selects the paint behaviour of a stroke.
type Style int

const (
	StyleSolid Style = iota
	StylePencil
	StyleWatercolor
	StyleGouache
)

// Mode selects whether the brush paints or erases.
type Mode int

const (
	ModePaint Mode = iota
	ModeErase
)

// MaxSize is the largest supported brush diameter in pixels.
const MaxSize = 48

// Brush describes one stroke's configuration. A Brush is fixed for the
// duration of a gesture; the canvas may swap it between gestures.
type Brush struct {
	Shape Shape
	Style Style
	Size  int // diameter in pixels
	Color color.RGBA
	Mode  Mode
}

// Default returns the brush used when nothing else is configured.
func Default() Brush {
	return Brush{
		Shape: ShapeRound,
		Style: StyleSolid,
		Size:  4,
		Color: color.RGBA{0, 0, 0, 255},
	}
}

// Params is the explicit style descriptor consumed by the paint routines.
// Computing it up front, instead of mutating shared draw state, means no
// opacity or blur can leak from one operation into the next.
type Params struct {
	Color color.RGBA // effective paint color
	Alpha float64    // stroke opacity, 0..1
	Blur  int        // blur radius in pixels, 0 for a hard edge
}

// Compute resolves a brush into concrete paint parameters. The eraser always
// deposits the background color at full opacity with no blur, whatever style
// is selected.
func Compute(b Brush, background color.RGBA) Params {
	if b.Mode == ModeErase {
		return Params{Color: background, Alpha: 1, Blur: 0}
	}
	p := Params{Color: b.Color, Alpha: 1}
	switch b.Style {
	case StylePencil:
		p.Alpha = 0.7
		p.Blur = 1
	case StyleWatercolor:
		p.Alpha = 0.4
		p.Blur = b.Size / 3
		if p.Blur < 1 {
			p.Blur = 1
		}
	case StyleGouache:
		p.Alpha = 0.9
		p.Blur = 1
	}
	return p
}

// Normalize clamps a brush to usable values.
func (b Brush) Normalize() Brush {
	if b.Size < 1 {
		b.Size = 1
	}
	if b.Size > MaxSize {
		b.Size = MaxSize
	}
	if b.Color.A == 0 {
		b.Color.A = 255
	}
	return b
}

// Spacing returns the distance in pixels between successive tip stamps.
// Round and square tips stamp every pixel so the stroke reads as continuous;
// the diamond tip spaces stamps at a quarter of the brush size, which keeps
// overlap even as the size grows.
func (b Brush) Spacing() float64 {
	if b.Shape == ShapeDiamond {
		s := float64(b.Size) / 4
		if s < 1 {
			s = 1
		}
		return s
	}
	return 1
}

func (s Shape) String() string {
	switch s {
	case ShapeRound:
		return "round"
	case ShapeSquare:
		return "square"
	case ShapeDiamond:
		return "diamond"
	}
	return fmt.Sprintf("Shape(%d)", int(s))
}

func (s Style) String() string {
	switch s {
	case StyleSolid:
		return "solid"
	case StylePencil:
		return "pencil"
	case StyleWatercolor:
		return "watercolor"
	case StyleGouache:
		return "gouache"
	}
	return fmt.Sprintf("Style(%d)", int(s))
}

// ParseShape maps a user-facing name to a Shape.
func ParseShape(s string) (Shape, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "round":
		return ShapeRound, nil
	case "square":
		return ShapeSquare, nil
	case "diamond":
		return ShapeDiamond, nil
	}
	return 0, fmt.Errorf("unknown brush shape %q", s)
}

// ParseStyle maps a user-facing name to a Style.
func ParseStyle(s string) (Style, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "solid":
		return StyleSolid, nil
	case "pencil":
		return StylePencil, nil
	case "watercolor", "watercolour":
		return StyleWatercolor, nil
	case "gouache":
		return StyleGouache, nil
	}
	return 0, fmt.Errorf("unknown brush style %q", s)
}
