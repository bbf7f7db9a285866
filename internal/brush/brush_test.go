package brush

import (
	"image/color"
	"testing"
)

func TestComputeStyles(t *testing.T) {
	bg := color.RGBA{255, 255, 255, 255}
	red := color.RGBA{211, 47, 47, 255}

	cases := []struct {
		name  string
		brush Brush
		alpha float64
		blur  int
	}{
		{"solid", Brush{Style: StyleSolid, Size: 8, Color: red}, 1, 0},
		{"pencil", Brush{Style: StylePencil, Size: 8, Color: red}, 0.7, 1},
		{"watercolor", Brush{Style: StyleWatercolor, Size: 12, Color: red}, 0.4, 4},
		{"watercolor small", Brush{Style: StyleWatercolor, Size: 2, Color: red}, 0.4, 1},
		{"gouache", Brush{Style: StyleGouache, Size: 8, Color: red}, 0.9, 1},
	}
	for _, tc := range cases {
		p := Compute(tc.brush, bg)
		if p.Alpha != tc.alpha {
			t.Errorf("%s: alpha = %v, want %v", tc.name, p.Alpha, tc.alpha)
		}
		if p.Blur != tc.blur {
			t.Errorf("%s: blur = %d, want %d", tc.name, p.Blur, tc.blur)
		}
		if p.Color != red {
			t.Errorf("%s: color = %v, want %v", tc.name, p.Color, red)
		}
	}
}

func TestComputeEraserIgnoresStyle(t *testing.T) {
	bg := color.RGBA{250, 250, 250, 255}
	for _, style := range []Style{StyleSolid, StylePencil, StyleWatercolor, StyleGouache} {
		b := Brush{Style: style, Size: 16, Color: color.RGBA{10, 20, 30, 255}, Mode: ModeErase}
		p := Compute(b, bg)
		if p.Color != bg {
			t.Errorf("style %v: eraser color = %v, want background %v", style, p.Color, bg)
		}
		if p.Alpha != 1 {
			t.Errorf("style %v: eraser alpha = %v, want 1", style, p.Alpha)
		}
		if p.Blur != 0 {
			t.Errorf("style %v: eraser blur = %d, want 0", style, p.Blur)
		}
	}
}

func TestSpacing(t *testing.T) {
	if got := (Brush{Shape: ShapeRound, Size: 32}).Spacing(); got != 1 {
		t.Errorf("round spacing = %v, want 1", got)
	}
	if got := (Brush{Shape: ShapeDiamond, Size: 32}).Spacing(); got != 8 {
		t.Errorf("diamond spacing = %v, want 8", got)
	}
	// Small diamonds never space wider than a pixel.
	if got := (Brush{Shape: ShapeDiamond, Size: 2}).Spacing(); got != 1 {
		t.Errorf("small diamond spacing = %v, want 1", got)
	}
}

func TestNormalize(t *testing.T) {
	b := Brush{Size: 0}.Normalize()
	if b.Size != 1 {
		t.Errorf("size = %d, want 1", b.Size)
	}
	b = Brush{Size: 500}.Normalize()
	if b.Size != MaxSize {
		t.Errorf("size = %d, want %d", b.Size, MaxSize)
	}
	if b.Color.A != 255 {
		t.Errorf("alpha = %d, want opaque", b.Color.A)
	}
}

func TestParseShapeAndStyle(t *testing.T) {
	if s, err := ParseShape(" Diamond "); err != nil || s != ShapeDiamond {
		t.Errorf("ParseShape = %v, %v", s, err)
	}
	if _, err := ParseShape("star"); err == nil {
		t.Error("expected error for unknown shape")
	}
	if s, err := ParseStyle("watercolour"); err != nil || s != StyleWatercolor {
		t.Errorf("ParseStyle = %v, %v", s, err)
	}
	if _, err := ParseStyle(""); err == nil {
		t.Error("expected error for empty style")
	}
}
