package studio

import (
	"image/color"
	"testing"
)

func TestFitZoomPicksSmallerAxis(t *testing.T) {
	z := fitZoom(100, 100, 100+toolbarWidth, 50+topHeight+bottomHeight)
	if z != 0.5 {
		t.Errorf("fitZoom = %v, want 0.5", z)
	}
	if got := fitZoom(0, 0, 100, 100); got != 1 {
		t.Errorf("degenerate canvas zoom = %v, want 1", got)
	}
}

func TestEnsurePaletteColor(t *testing.T) {
	before := paletteLen()
	idx := EnsurePaletteColor(color.RGBA{1, 2, 3, 255}, "")
	if idx != before {
		t.Errorf("new color index = %d, want %d", idx, before)
	}
	if again := EnsurePaletteColor(color.RGBA{1, 2, 3, 255}, ""); again != idx {
		t.Errorf("existing color index = %d, want %d", again, idx)
	}
}

func TestEnsureBrushSize(t *testing.T) {
	idx := EnsureBrushSize(4)
	if sizeAt(idx) != 4 {
		t.Errorf("sizeAt(EnsureBrushSize(4)) = %d", sizeAt(idx))
	}
	idx = EnsureBrushSize(7)
	if sizeAt(idx) != 7 {
		t.Errorf("sizeAt(EnsureBrushSize(7)) = %d", sizeAt(idx))
	}
	if sizeAt(idx-1) >= 7 {
		t.Error("inserted size not kept in ascending order")
	}
}
