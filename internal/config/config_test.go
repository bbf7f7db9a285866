package config

import (
	"strings"
	"testing"

	"github.com/example/draftstudio/internal/brush"
)

func TestParse(t *testing.T) {
	input := `
theme = blueprint
save_dir = /tmp/sketches

[canvas]
width = 800
height = 600
background = #FAFAFA
smoothing = false

[brush]
size = 8
shape = diamond
style = watercolor
color = #D32F2F

[notify]
save = true
export = false
copy = true

[theme.blueprint]
Background = #111111
Foreground = #FFFFFF
`
	cfg, err := Parse(strings.NewReader(input))
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}

	if cfg.Theme != "blueprint" {
		t.Errorf("Expected theme 'blueprint', got '%s'", cfg.Theme)
	}
	if cfg.SaveDir != "/tmp/sketches" {
		t.Errorf("Expected save_dir '/tmp/sketches', got '%s'", cfg.SaveDir)
	}

	if cfg.Canvas.Width != 800 || cfg.Canvas.Height != 600 {
		t.Errorf("Unexpected canvas size %dx%d", cfg.Canvas.Width, cfg.Canvas.Height)
	}
	if cfg.Canvas.Smoothing {
		t.Error("Expected canvas.smoothing to be false")
	}
	if cfg.Canvas.Background.R != 0xFA {
		t.Errorf("Unexpected canvas background: %+v", cfg.Canvas.Background)
	}

	if cfg.Brush.Size != 8 {
		t.Errorf("Expected brush size 8, got %d", cfg.Brush.Size)
	}
	if cfg.Brush.Shape != brush.ShapeDiamond {
		t.Errorf("Expected diamond shape, got %v", cfg.Brush.Shape)
	}
	if cfg.Brush.Style != brush.StyleWatercolor {
		t.Errorf("Expected watercolor style, got %v", cfg.Brush.Style)
	}

	if !cfg.Notify.Save {
		t.Error("Expected notify.save to be true")
	}
	if cfg.Notify.Export {
		t.Error("Expected notify.export to be false")
	}
	if !cfg.Notify.Copy {
		t.Error("Expected notify.copy to be true")
	}

	th, ok := cfg.Themes["blueprint"]
	if !ok {
		t.Fatal("Expected theme 'blueprint' to be loaded")
	}
	if th.Background.R != 0x11 || th.Background.G != 0x11 || th.Background.B != 0x11 {
		t.Errorf("Unexpected Background color: %+v", th.Background)
	}
}

func TestParseClampsBrushSize(t *testing.T) {
	cfg, err := Parse(strings.NewReader("[brush]\nsize = 500\n"))
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}
	if cfg.Brush.Size != brush.MaxSize {
		t.Errorf("Expected clamped size %d, got %d", brush.MaxSize, cfg.Brush.Size)
	}
}

func TestParseRejectsBadValues(t *testing.T) {
	cases := []string{
		"[canvas]\nwidth = nope\n",
		"[canvas]\nbackground = red\n",
		"[brush]\nshape = star\n",
		"[brush]\nstyle = crayon\n",
		"[notify]\nsave = maybe\n",
	}
	for _, input := range cases {
		if _, err := Parse(strings.NewReader(input)); err == nil {
			t.Errorf("Expected error for input %q", input)
		}
	}
}

func TestCircular(t *testing.T) {
	input := `theme = dark
save_dir = /home/user/sketches

[canvas]
width = 1024
height = 768
background = #FFFFFF
smoothing = true

[brush]
size = 12
shape = square
style = gouache
color = #1976D2

[notify]
save = true
export = true
copy = false

[theme.custom]
Name = custom
Background = #000000
Foreground = #FFFFFF
`
	// 1. Parse initial input
	cfg, err := Parse(strings.NewReader(input))
	if err != nil {
		t.Fatalf("Initial parse failed: %v", err)
	}

	// 2. Generate string representation
	generated := cfg.String()

	// 3. Parse generated string
	cfg2, err := Parse(strings.NewReader(generated))
	if err != nil {
		t.Fatalf("Circular parse failed: %v", err)
	}

	// 4. Compare relevant fields
	if cfg.Theme != cfg2.Theme {
		t.Errorf("Theme mismatch: %q vs %q", cfg.Theme, cfg2.Theme)
	}
	if cfg.SaveDir != cfg2.SaveDir {
		t.Errorf("SaveDir mismatch: %q vs %q", cfg.SaveDir, cfg2.SaveDir)
	}
	if cfg.Canvas != cfg2.Canvas {
		t.Errorf("Canvas mismatch: %+v vs %+v", cfg.Canvas, cfg2.Canvas)
	}
	if cfg.Brush != cfg2.Brush {
		t.Errorf("Brush mismatch: %+v vs %+v", cfg.Brush, cfg2.Brush)
	}
	if cfg.Notify != cfg2.Notify {
		t.Errorf("Notify mismatch: %+v vs %+v", cfg.Notify, cfg2.Notify)
	}

	// Check theme persistence
	t1 := cfg.Themes["custom"]
	t2 := cfg2.Themes["custom"]
	if t1 == nil || t2 == nil {
		t.Fatalf("Custom theme missing in one config")
	}
	if t1.Background != t2.Background {
		t.Errorf("Theme background mismatch: %v vs %v", t1.Background, t2.Background)
	}
}
