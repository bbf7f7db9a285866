package studio

import (
	"fmt"
	"image"
	"image/color"
	"image/draw"
	"log"
	"sync"

	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/font/gofont/goregular"
	"golang.org/x/image/font/opentype"
	"golang.org/x/image/math/fixed"
	"golang.org/x/mobile/event/key"

	"github.com/example/draftstudio/internal/brush"
	"github.com/example/draftstudio/internal/canvas"
	"github.com/example/draftstudio/internal/theme"
)

const (
	topHeight    = 24
	bottomHeight = 24
)

var toolbarWidth = 48

var (
	paletteMu sync.RWMutex
	palette   = []color.RGBA{
		{51, 51, 51, 255},    // charcoal
		{211, 47, 47, 255},   // crimson
		{25, 118, 210, 255},  // blue
		{56, 142, 60, 255},   // green
		{249, 168, 37, 255},  // ochre
		{123, 31, 162, 255},  // violet
		{0, 121, 107, 255},   // teal
		{93, 64, 55, 255},    // umber
		{117, 117, 117, 255}, // gray
		{0, 0, 0, 255},       // black
		{255, 255, 255, 255}, // white
	}
	paletteNames = []string{
		"Charcoal",
		"Crimson",
		"Blue",
		"Green",
		"Ochre",
		"Violet",
		"Teal",
		"Umber",
		"Gray",
		"Black",
		"White",
	}
)

var (
	sizesMu    sync.RWMutex
	brushSizes = []int{1, 2, 4, 8, 16, 32}
)

var brushStyles = []brush.Style{brush.StyleSolid, brush.StylePencil, brush.StyleWatercolor, brush.StyleGouache}
var brushShapes = []brush.Shape{brush.ShapeRound, brush.ShapeSquare, brush.ShapeDiamond}

var messageFace font.Face

func init() {
	f, err := opentype.Parse(goregular.TTF)
	if err != nil {
		log.Fatalf("parse font: %v", err)
	}
	messageFace, err = opentype.NewFace(f, &opentype.FaceOptions{Size: 32, DPI: 72, Hinting: font.HintingFull})
	if err != nil {
		log.Fatalf("font face: %v", err)
	}
}

// PaletteEntry pairs a palette color with its display name.
type PaletteEntry struct {
	Name  string
	Color color.RGBA
}

// PaletteColors returns the named palette entries.
func PaletteColors() []PaletteEntry {
	paletteMu.RLock()
	defer paletteMu.RUnlock()
	out := make([]PaletteEntry, len(palette))
	for i, col := range palette {
		out[i] = PaletteEntry{Name: paletteNames[i], Color: col}
	}
	return out
}

// Palette returns a copy of the available brush colors.
func Palette() []color.RGBA {
	paletteMu.RLock()
	defer paletteMu.RUnlock()
	out := make([]color.RGBA, len(palette))
	copy(out, palette)
	return out
}

// EnsurePaletteColor makes sure col is present in the palette and returns its index.
func EnsurePaletteColor(col color.RGBA, name string) int {
	paletteMu.Lock()
	defer paletteMu.Unlock()
	for idx, existing := range palette {
		if existing == col {
			if name != "" && paletteNames[idx] == "" {
				paletteNames[idx] = name
			}
			return idx
		}
	}
	if name == "" {
		name = fmt.Sprintf("#%02X%02X%02X", col.R, col.G, col.B)
	}
	palette = append(palette, col)
	paletteNames = append(paletteNames, name)
	return len(palette) - 1
}

func paletteLen() int {
	paletteMu.RLock()
	defer paletteMu.RUnlock()
	return len(palette)
}

func paletteColorAt(idx int) color.RGBA {
	paletteMu.RLock()
	defer paletteMu.RUnlock()
	if len(palette) == 0 {
		return color.RGBA{}
	}
	if idx < 0 {
		idx = 0
	}
	if idx >= len(palette) {
		idx = len(palette) - 1
	}
	return palette[idx]
}

// EnsureBrushSize makes sure size is included in the options and returns its index.
func EnsureBrushSize(size int) int {
	if size < 1 {
		size = 1
	}
	if size > brush.MaxSize {
		size = brush.MaxSize
	}
	sizesMu.Lock()
	defer sizesMu.Unlock()
	for idx, existing := range brushSizes {
		if existing == size {
			return idx
		}
	}
	brushSizes = append(brushSizes, size)
	for i := len(brushSizes) - 1; i > 0 && brushSizes[i] < brushSizes[i-1]; i-- {
		brushSizes[i], brushSizes[i-1] = brushSizes[i-1], brushSizes[i]
	}
	for idx, existing := range brushSizes {
		if existing == size {
			return idx
		}
	}
	return 0
}

func sizesLen() int {
	sizesMu.RLock()
	defer sizesMu.RUnlock()
	return len(brushSizes)
}

func sizeAt(idx int) int {
	sizesMu.RLock()
	defer sizesMu.RUnlock()
	if len(brushSizes) == 0 {
		return 1
	}
	if idx < 0 {
		idx = 0
	}
	if idx >= len(brushSizes) {
		idx = len(brushSizes) - 1
	}
	return brushSizes[idx]
}

// fitZoom returns the display scale that fits the canvas inside the window
// area left over by the chrome.
func fitZoom(w, h, winW, winH int) float64 {
	availW := winW - toolbarWidth
	availH := winH - topHeight - bottomHeight
	if w <= 0 || h <= 0 || availW <= 0 || availH <= 0 {
		return 1
	}
	zx := float64(availW) / float64(w)
	zy := float64(availH) / float64(h)
	if zx < zy {
		return zx
	}
	return zy
}

// canvasRect returns the destination rectangle for drawing the canvas. It
// anchors the origin just below the title bar so the sketch position stays
// stable across window resizes.
func canvasRect(w, h int, zoom float64) image.Rectangle {
	dw := int(float64(w) * zoom)
	dh := int(float64(h) * zoom)
	x0 := toolbarWidth
	y0 := topHeight
	return image.Rect(x0, y0, x0+dw, y0+dh)
}

func displayRect(r image.Rectangle) canvas.DisplayRect {
	return canvas.DisplayRect{
		X: float64(r.Min.X),
		Y: float64(r.Min.Y),
		W: float64(r.Dx()),
		H: float64(r.Dy()),
	}
}

// KeyShortcut describes a keyboard combination that triggers an action.
type KeyShortcut struct {
	Rune      rune
	Code      key.Code
	Modifiers key.Modifiers
}

// ButtonState describes the visual state of a button.
type ButtonState int

const (
	StateDefault ButtonState = iota
	StateHover
	StatePressed
)

// Button represents an interactive UI element.
type Button interface {
	Draw(dst *image.RGBA, state ButtonState)
	Rect() image.Rectangle
	SetRect(r image.Rectangle)
	Activate()
}

// CacheButton wraps another Button and caches its rendered states.
type CacheButton struct {
	Button
	cache [3]*image.RGBA
}

var _ Button = (*CacheButton)(nil)

func (cb *CacheButton) Draw(dst *image.RGBA, state ButtonState) {
	if cb.cache[state] == nil {
		rect := cb.Button.Rect()
		img := image.NewRGBA(rect)
		cb.Button.Draw(img, state)
		cb.cache[state] = img
	}
	draw.Draw(dst, cb.Button.Rect(), cb.cache[state], cb.Button.Rect().Min, draw.Src)
}

func (cb *CacheButton) Rect() image.Rectangle { return cb.Button.Rect() }

func (cb *CacheButton) SetRect(r image.Rectangle) {
	if r != cb.Button.Rect() {
		cb.Button.SetRect(r)
		cb.cache = [3]*image.RGBA{}
	}
}

func (cb *CacheButton) Activate() { cb.Button.Activate() }

// ToolButton selects a drawing tool from the toolbar.
type ToolButton struct {
	label    string
	tool     canvas.Tool
	theme    *theme.Theme
	rect     image.Rectangle
	onSelect func()
}

func (tb *ToolButton) Draw(dst *image.RGBA, state ButtonState) {
	c := tb.theme.ButtonBackground
	txt := tb.theme.ButtonText
	switch state {
	case StateHover:
		c = tb.theme.ButtonBackgroundHover
		txt = tb.theme.ButtonTextHover
	case StatePressed:
		c = tb.theme.ButtonBackgroundPress
		txt = tb.theme.ButtonTextPress
	}
	draw.Draw(dst, tb.rect, &image.Uniform{c}, image.Point{}, draw.Src)
	d := &font.Drawer{Dst: dst, Src: image.NewUniform(txt), Face: basicfont.Face7x13,
		Dot: fixed.P(tb.rect.Min.X+4, tb.rect.Min.Y+16)}
	d.DrawString(tb.label)
}

func (tb *ToolButton) Rect() image.Rectangle { return tb.rect }

func (tb *ToolButton) SetRect(r image.Rectangle) {
	if r != tb.rect {
		tb.rect = r
	}
}

func (tb *ToolButton) Activate() {
	if tb.onSelect != nil {
		tb.onSelect()
	}
}

// Shortcut draws a clickable hint in the bottom bar.
type Shortcut struct {
	label  string
	action func()
	rect   image.Rectangle
	theme  *theme.Theme
}

func (s *Shortcut) Draw(dst *image.RGBA, state ButtonState) {
	col := s.theme.ButtonBackground
	switch state {
	case StateHover:
		col = s.theme.ButtonBackgroundHover
	case StatePressed:
		col = s.theme.ButtonBackgroundPress
	}
	draw.Draw(dst, s.rect, &image.Uniform{col}, image.Point{}, draw.Src)
	strokeBorder(dst, s.rect, s.theme.ButtonBorder)
	d := &font.Drawer{Dst: dst, Src: image.NewUniform(s.theme.ButtonText), Face: basicfont.Face7x13,
		Dot: fixed.P(s.rect.Min.X+2, s.rect.Min.Y+14)}
	d.DrawString(s.label)
}

func (s *Shortcut) Rect() image.Rectangle { return s.rect }

func (s *Shortcut) SetRect(r image.Rectangle) {
	if r != s.rect {
		s.rect = r
	}
}

func (s *Shortcut) Activate() {
	if s.action != nil {
		s.action()
	}
}

// strokeBorder outlines rect with a 1px frame.
func strokeBorder(dst *image.RGBA, r image.Rectangle, col color.RGBA) {
	u := &image.Uniform{col}
	draw.Draw(dst, image.Rect(r.Min.X, r.Min.Y, r.Max.X, r.Min.Y+1), u, image.Point{}, draw.Src)
	draw.Draw(dst, image.Rect(r.Min.X, r.Max.Y-1, r.Max.X, r.Max.Y), u, image.Point{}, draw.Src)
	draw.Draw(dst, image.Rect(r.Min.X, r.Min.Y, r.Min.X+1, r.Max.Y), u, image.Point{}, draw.Src)
	draw.Draw(dst, image.Rect(r.Max.X-1, r.Min.Y, r.Max.X, r.Max.Y), u, image.Point{}, draw.Src)
}
