// Package canvas implements the freehand drawing component: a raster surface
// painted through pointer gestures, with brush and shape tools, undo/redo
// history and base64 PNG export.
package canvas

import (
	"fmt"
	"image"
	"image/color"
	"io"
	"log"

	"github.com/example/draftstudio/internal/brush"
	"github.com/example/draftstudio/internal/history"
	"github.com/example/draftstudio/internal/imageio"
	"github.com/example/draftstudio/internal/raster"
)

// Tool identifies the active gesture interpretation.
type Tool int

const (
	ToolPen Tool = iota
	ToolEraser
	ToolLine
	ToolRect
	ToolEllipse
	ToolTriangle
)

// IsShape reports whether the tool commits a bounded primitive instead of
// freehand ink.
func (t Tool) IsShape() bool {
	switch t {
	case ToolLine, ToolRect, ToolEllipse, ToolTriangle:
		return true
	}
	return false
}

func (t Tool) String() string {
	switch t {
	case ToolPen:
		return "pen"
	case ToolEraser:
		return "eraser"
	case ToolLine:
		return "line"
	case ToolRect:
		return "rect"
	case ToolEllipse:
		return "ellipse"
	case ToolTriangle:
		return "triangle"
	}
	return fmt.Sprintf("Tool(%d)", int(t))
}

// gesture is the transient record of one pointer-down-to-pointer-up
// interaction. It exists only while the pointer is held and is discarded
// deterministically on every gesture end.
type gesture struct {
	tool     Tool
	pen      *raster.Pen
	start    raster.Point
	last     raster.Point
	lastMid  raster.Point
	snapshot []uint8 // pre-gesture pixels, shape tools only
}

// Canvas owns the raster surface, the history log and the active brush. All
// methods run synchronously on the caller's event loop; the canvas performs
// no background work and requires no locking.
type Canvas struct {
	surface    *raster.Surface
	log        *history.Log
	brush      brush.Brush
	tool       Tool
	smoothing  bool
	enabled    bool
	label      string
	background color.RGBA

	onImage      func(data string)
	lastExported string

	active *gesture
}

// Option configures a Canvas during creation.
type Option func(*Canvas)

// WithSize sets the backing resolution in pixels.
func WithSize(width, height int) Option {
	return func(c *Canvas) { c.surface = raster.NewSurface(width, height, c.background) }
}

// WithBackground sets the background fill used by clears and the eraser.
// Order matters: pass it before WithSize.
func WithBackground(col color.RGBA) Option {
	return func(c *Canvas) { c.background = col }
}

// WithBrush sets the initial brush configuration.
func WithBrush(b brush.Brush) Option {
	return func(c *Canvas) { c.brush = b.Normalize() }
}

// WithTool sets the initial tool.
func WithTool(t Tool) Option {
	return func(c *Canvas) { c.tool = t }
}

// WithSmoothing toggles rolling-midpoint stroke smoothing.
func WithSmoothing(enabled bool) Option {
	return func(c *Canvas) { c.smoothing = enabled }
}

// WithDrawingEnabled controls whether pointer input is honoured. When
// disabled the canvas is a reference-only image slot: upload and clear keep
// working, gestures are ignored.
func WithDrawingEnabled(enabled bool) Option {
	return func(c *Canvas) { c.enabled = enabled }
}

// WithLabel attaches a display label to the canvas.
func WithLabel(label string) Option {
	return func(c *Canvas) { c.label = label }
}

// WithImageListener registers the callback invoked whenever the exported
// image changes. The callback receives a base64 PNG string without data-URI
// prefix, or the empty string after a clear.
func WithImageListener(fn func(data string)) Option {
	return func(c *Canvas) { c.onImage = fn }
}

// New creates a canvas. The surface starts filled with the background color
// and the history log is seeded with that blank state.
func New(opts ...Option) *Canvas {
	c := &Canvas{
		brush:      brush.Default(),
		smoothing:  true,
		enabled:    true,
		background: color.RGBA{255, 255, 255, 255},
	}
	for _, o := range opts {
		o(c)
	}
	if c.surface == nil {
		c.surface = raster.NewSurface(512, 512, c.background)
	}
	c.log = history.New(c.encodeSurface())
	return c
}

// Label returns the display label.
func (c *Canvas) Label() string { return c.label }

// Image exposes the backing pixels for display. Callers must not mutate or
// retain the image across a resize.
func (c *Canvas) Image() *image.RGBA { return c.surface.Image() }

// Size returns the backing resolution.
func (c *Canvas) Size() (width, height int) {
	return c.surface.Width(), c.surface.Height()
}

// Background returns the background fill color.
func (c *Canvas) Background() color.RGBA { return c.background }

// Brush returns the active brush configuration.
func (c *Canvas) Brush() brush.Brush { return c.brush }

// SetBrush swaps the brush used by subsequent gestures. The change does not
// affect a gesture already in progress.
func (c *Canvas) SetBrush(b brush.Brush) { c.brush = b.Normalize() }

// Tool returns the active tool.
func (c *Canvas) Tool() Tool { return c.tool }

// SetTool selects the tool for subsequent gestures.
func (c *Canvas) SetTool(t Tool) { c.tool = t }

// Smoothing reports whether stroke smoothing is on.
func (c *Canvas) Smoothing() bool { return c.smoothing }

// SetSmoothing toggles stroke smoothing for subsequent gestures.
func (c *Canvas) SetSmoothing(enabled bool) { c.smoothing = enabled }

// DrawingEnabled reports whether pointer input is honoured.
func (c *Canvas) DrawingEnabled() bool { return c.enabled }

// SetDrawingEnabled toggles pointer input. Disabling mid-gesture finalizes
// the gesture first.
func (c *Canvas) SetDrawingEnabled(enabled bool) {
	if !enabled && c.active != nil {
		c.PointerLeave()
	}
	c.enabled = enabled
}

// CanUndo reports whether an undo step is available.
func (c *Canvas) CanUndo() bool { return c.log.CanUndo() }

// CanRedo reports whether a redo step is available.
func (c *Canvas) CanRedo() bool { return c.log.CanRedo() }

// LastExported returns the most recent exported image, or the empty string
// after a clear.
func (c *Canvas) LastExported() string { return c.lastExported }

// PointerDown starts a gesture at the given surface point. Freehand tools
// leave an immediate dot so single taps are visible; shape tools snapshot
// the surface for preview restoration.
func (c *Canvas) PointerDown(p raster.Point) {
	if !c.enabled {
		return
	}
	if c.active != nil {
		// A stray second press finalizes the dangling gesture first.
		c.finishGesture(c.active.last)
	}
	g := &gesture{tool: c.tool, start: p, last: p, lastMid: p}
	if g.tool.IsShape() {
		g.pen = raster.NewShapePen(c.paintBrush(), c.background)
		g.snapshot = c.surface.Snapshot()
	} else {
		g.pen = raster.NewPen(c.paintBrush(), c.background)
		g.pen.Dot(c.surface.Image(), p)
	}
	c.active = g
}

// PointerMove extends the active gesture. Freehand strokes paint
// incrementally; shape gestures restore the pre-gesture snapshot and redraw
// the primitive from the start point, so previews never accumulate.
func (c *Canvas) PointerMove(p raster.Point) {
	g := c.active
	if g == nil {
		return
	}
	if g.tool.IsShape() {
		c.surface.Restore(g.snapshot)
		c.strokeShape(g, p)
		g.last = p
		return
	}
	dst := c.surface.Image()
	if c.smoothing {
		mid := raster.Mid(g.last, p)
		g.pen.Quad(dst, g.lastMid, g.last, mid)
		g.lastMid = mid
	} else {
		g.pen.Line(dst, g.last, p)
	}
	g.last = p
}

// PointerUp finalizes the active gesture: the last rendered state becomes
// permanent, the surface is exported and one history entry is recorded.
func (c *Canvas) PointerUp(p raster.Point) {
	if c.active == nil {
		return
	}
	c.finishGesture(p)
}

// PointerLeave finalizes the active gesture at its last known point. Leaving
// the surface mid-gesture commits rather than cancels, so no partial stroke
// or unrestored preview is left behind.
func (c *Canvas) PointerLeave() {
	if c.active == nil {
		return
	}
	c.finishGesture(c.active.last)
}

func (c *Canvas) finishGesture(p raster.Point) {
	g := c.active
	c.active = nil
	switch {
	case g.tool.IsShape():
		if p != g.last {
			c.surface.Restore(g.snapshot)
			c.strokeShape(g, p)
		}
	case c.smoothing:
		// The rolling midpoint stops the curve short of the pointer, so the
		// closing segment always runs through the last raw point to p itself.
		g.pen.Quad(c.surface.Image(), g.lastMid, g.last, p)
	case p != g.last:
		g.pen.Line(c.surface.Image(), g.last, p)
	}
	c.export()
	c.record()
}

func (c *Canvas) strokeShape(g *gesture, p raster.Point) {
	dst := c.surface.Image()
	switch g.tool {
	case ToolLine:
		g.pen.StrokeLine(dst, g.start, p)
	case ToolRect:
		g.pen.StrokeRect(dst, g.start, p)
	case ToolEllipse:
		g.pen.StrokeEllipse(dst, g.start, p)
	case ToolTriangle:
		g.pen.StrokeTriangle(dst, g.start, p)
	}
}

func (c *Canvas) paintBrush() brush.Brush {
	b := c.brush
	if c.tool == ToolEraser {
		b.Mode = brush.ModeErase
	} else {
		b.Mode = brush.ModePaint
	}
	return b
}

// Undo steps back one history entry and repaints the surface from it. At the
// oldest entry it is a no-op. The repaint refits the entry to the current
// surface dimensions, since the surface may have been resized since the
// entry was recorded.
func (c *Canvas) Undo() {
	entry, ok := c.log.Undo()
	if !ok {
		return
	}
	c.repaint(entry)
}

// Redo steps forward one history entry. At the newest entry it is a no-op.
func (c *Canvas) Redo() {
	entry, ok := c.log.Redo()
	if !ok {
		return
	}
	c.repaint(entry)
}

func (c *Canvas) repaint(entry []byte) {
	img, err := imageio.DecodeBytes(entry)
	if err != nil {
		log.Printf("repaint history entry: %v", err)
		return
	}
	imageio.FitDraw(c.surface.Image(), img, c.background)
	c.export()
}

// Clear fills the surface with the background color, drops the last-exported
// reference, signals listeners with an empty export and records a history
// entry.
func (c *Canvas) Clear() {
	c.surface.Clear()
	c.lastExported = ""
	if c.onImage != nil {
		c.onImage("")
	}
	c.record()
}

// Upload decodes an image from r and fit-draws it onto the surface, then
// exports and records history. Decode failures leave the surface untouched
// and are returned to the caller.
func (c *Canvas) Upload(r io.Reader) error {
	raw, err := io.ReadAll(r)
	if err != nil {
		return fmt.Errorf("read upload: %w", err)
	}
	img, err := imageio.DecodeBytes(raw)
	if err != nil {
		return err
	}
	c.applyImage(img)
	return nil
}

// SetImage applies an externally supplied image (base64 or data-URI string)
// through the same fit-and-commit path as an upload. Data matching what the
// canvas itself last exported is skipped, which breaks the feedback loop
// when the listener echoes exports back in.
func (c *Canvas) SetImage(data string) error {
	if data == "" || data == c.lastExported {
		return nil
	}
	img, err := imageio.Decode(data)
	if err != nil {
		return err
	}
	c.applyImage(img)
	return nil
}

// ApplyImage fit-draws a decoded image onto the surface, exporting and
// recording history like any other completed action.
func (c *Canvas) ApplyImage(img image.Image) {
	c.applyImage(img)
}

func (c *Canvas) applyImage(img image.Image) {
	imageio.FitDraw(c.surface.Image(), img, c.background)
	c.export()
	c.record()
}

// Resize changes the backing resolution and refits the current content onto
// it, so nothing is cropped or left stale. The reflow is not a user action:
// it records no history entry and triggers no export.
func (c *Canvas) Resize(width, height int) {
	if width == c.surface.Width() && height == c.surface.Height() {
		return
	}
	if c.active != nil {
		c.PointerLeave()
	}
	old := c.surface.Image()
	c.surface = raster.NewSurface(width, height, c.background)
	imageio.FitDraw(c.surface.Image(), old, c.background)
}

func (c *Canvas) export() {
	data, err := imageio.EncodeBase64(c.surface.Image())
	if err != nil {
		log.Printf("export canvas: %v", err)
		return
	}
	if data == c.lastExported {
		return
	}
	c.lastExported = data
	if c.onImage != nil {
		c.onImage(data)
	}
}

func (c *Canvas) record() {
	c.log.Record(c.encodeSurface())
}

func (c *Canvas) encodeSurface() []byte {
	data, err := imageio.EncodePNG(c.surface.Image())
	if err != nil {
		log.Printf("snapshot canvas: %v", err)
		return nil
	}
	return data
}
