// Package studio hosts the drawing canvas in a desktop window: toolbar,
// palette, keyboard shortcuts and the event loop wiring pointer input into
// canvas gestures.
package studio

import (
	"fmt"
	"image"
	"image/draw"
	"log"
	"os"
	"path/filepath"
	"sync"
	"time"
	"unicode"

	xdraw "golang.org/x/image/draw"
	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"

	"golang.org/x/exp/shiny/driver"
	"golang.org/x/exp/shiny/screen"
	"golang.org/x/mobile/event/key"
	"golang.org/x/mobile/event/lifecycle"
	"golang.org/x/mobile/event/mouse"
	"golang.org/x/mobile/event/paint"
	"golang.org/x/mobile/event/size"

	"github.com/example/draftstudio/internal/brush"
	"github.com/example/draftstudio/internal/canvas"
	"github.com/example/draftstudio/internal/clipboard"
	"github.com/example/draftstudio/internal/export"
	"github.com/example/draftstudio/internal/notify"
	"github.com/example/draftstudio/internal/theme"
)

var shortcutRects []Shortcut
var toolButtons []*CacheButton
var hoverShortcut = -1
var hoverTool = -1
var hoverPalette = -1
var hoverSize = -1
var hoverStyle = -1
var hoverShape = -1

// keyboardAction maps a keyboard shortcut to the action name.
var keyboardAction = map[KeyShortcut]string{}

// Studio holds the window state around a canvas.
type Studio struct {
	Canvas *canvas.Canvas
	Theme  *theme.Theme

	notifier *notify.Notifier
	saveDir  string
	savePath string

	updateCh chan struct{}

	onClose   func()
	closeOnce sync.Once
}

// Option modifies a Studio during creation.
type Option func(*Studio)

// WithCanvas sets the canvas hosted by the window.
func WithCanvas(cv *canvas.Canvas) Option { return func(s *Studio) { s.Canvas = cv } }

// WithTheme sets the UI palette.
func WithTheme(t *theme.Theme) Option { return func(s *Studio) { s.Theme = t } }

// WithNotifier registers the desktop notifier used for save, export and copy.
func WithNotifier(n *notify.Notifier) Option { return func(s *Studio) { s.notifier = n } }

// WithSaveDir sets the directory used for generated output file names.
func WithSaveDir(dir string) Option { return func(s *Studio) { s.saveDir = dir } }

// WithSavePath sets an explicit PNG output path for the save action.
func WithSavePath(path string) Option { return func(s *Studio) { s.savePath = path } }

// WithOnClose registers a callback invoked when the window closes.
func WithOnClose(fn func()) Option { return func(s *Studio) { s.onClose = fn } }

// New creates a Studio with the provided options.
func New(opts ...Option) *Studio {
	s := &Studio{
		Theme:    theme.Default(),
		updateCh: make(chan struct{}, 1),
	}
	for _, o := range opts {
		o(s)
	}
	if s.Canvas == nil {
		s.Canvas = canvas.New()
	}
	if s.Theme == nil {
		s.Theme = theme.Default()
	}
	return s
}

// NotifyImageChanged requests a repaint when the canvas mutates outside the
// event loop.
func (s *Studio) NotifyImageChanged() {
	if s.updateCh == nil {
		return
	}
	select {
	case s.updateCh <- struct{}{}:
	default:
	}
}

func (s *Studio) notifyClose() {
	s.closeOnce.Do(func() {
		if s.onClose != nil {
			s.onClose()
		}
	})
}

func (s *Studio) outputPath(ext string) string {
	if s.savePath != "" && ext == "png" {
		return s.savePath
	}
	dir := s.saveDir
	if dir == "" {
		dir, _ = os.Getwd()
	}
	return filepath.Join(dir, export.DefaultName(ext))
}

// Run executes the UI loop using shiny's driver.
func (s *Studio) Run() { driver.Main(s.Main) }

func (s *Studio) Main(scr screen.Screen) {
	cv := s.Canvas
	th := s.Theme

	// Ensure the toolbar is wide enough to fit the program title and all
	// tool button labels so the UI contents are not clipped on start up.
	d := &font.Drawer{Face: basicfont.Face7x13}
	max := d.MeasureString("DraftStudio").Ceil() + 8 // padding
	toolLabels := []string{"P:Pen", "E:Erase", "L:Line", "X:Rect", "O:Ellipse", "T:Tri"}
	for _, lbl := range toolLabels {
		w := d.MeasureString(lbl).Ceil() + 8
		if w > max {
			max = w
		}
	}
	if max > toolbarWidth {
		toolbarWidth = max
	}

	cw, ch := cv.Size()
	width := cw + toolbarWidth
	height := ch + topHeight + bottomHeight
	w, err := scr.NewWindow(&screen.NewWindowOptions{Width: width, Height: height, Title: windowTitle(cv)})
	if err != nil {
		log.Fatalf("new window: %v", err)
	}
	defer w.Release()
	defer s.notifyClose()

	if s.updateCh != nil {
		done := make(chan struct{})
		go func() {
			for {
				select {
				case <-s.updateCh:
					w.Send(paint.Event{})
				case <-done:
					return
				}
			}
		}()
		defer close(done)
	}

	b := cv.Brush()
	colorIdx := EnsurePaletteColor(b.Color, "")
	sizeIdx := EnsureBrushSize(b.Size)
	styleIdx := styleIndex(b.Style)
	shapeIdx := shapeIndex(b.Shape)
	zoom := fitZoom(cw, ch, width, height)

	var message string
	var messageUntil time.Time
	var pressed bool

	applyBrush := func() {
		nb := cv.Brush()
		nb.Color = paletteColorAt(colorIdx)
		nb.Size = sizeAt(sizeIdx)
		nb.Style = brushStyles[styleIdx]
		nb.Shape = brushShapes[shapeIdx]
		cv.SetBrush(nb)
	}
	applyBrush()

	flash := func(msg string) {
		message = msg
		log.Print(msg)
		messageUntil = time.Now().Add(2 * time.Second)
	}

	keyboardAction = map[KeyShortcut]string{}
	actions := map[string]func(){}
	register := func(name string, keys []KeyShortcut, fn func()) {
		actions[name] = fn
		for _, sc := range keys {
			keyboardAction[sc] = name
		}
	}

	register("undo", []KeyShortcut{{Rune: 'z', Modifiers: key.ModControl}}, func() {
		cv.Undo()
	})
	register("redo", []KeyShortcut{{Rune: 'y', Modifiers: key.ModControl}}, func() {
		cv.Redo()
	})
	register("clear", []KeyShortcut{{Rune: 'k', Modifiers: key.ModControl}}, func() {
		cv.Clear()
		flash("canvas cleared")
	})
	register("copy", []KeyShortcut{{Rune: 'c', Modifiers: key.ModControl}}, func() {
		if err := clipboard.WriteImage(cv.Image()); err != nil {
			log.Printf("copy: %v", err)
			return
		}
		s.notifier.Copy("sketch")
		flash("sketch copied to clipboard")
	})
	register("paste", []KeyShortcut{{Rune: 'v', Modifiers: key.ModControl}}, func() {
		img, err := clipboard.ReadImage()
		if err != nil {
			log.Printf("paste: %v", err)
			return
		}
		cv.ApplyImage(img)
		flash("pasted image")
	})
	register("save", []KeyShortcut{{Rune: 's', Modifiers: key.ModControl}}, func() {
		path := s.outputPath("png")
		if err := export.PNGFile(path, cv.Image()); err != nil {
			log.Printf("save: %v", err)
			return
		}
		s.notifier.Save(path)
		flash(fmt.Sprintf("saved %s", path))
	})
	register("exportpdf", []KeyShortcut{{Rune: 'e', Modifiers: key.ModControl}}, func() {
		path := s.outputPath("pdf")
		if err := export.PDFFile(path, cv.Image(), cv.Label()); err != nil {
			log.Printf("export: %v", err)
			return
		}
		s.notifier.Export(path, cv.Image())
		flash(fmt.Sprintf("exported %s", path))
	})
	register("fit", []KeyShortcut{{Rune: 'f'}}, func() {
		availW := width - toolbarWidth
		availH := height - topHeight - bottomHeight
		if availW > 0 && availH > 0 {
			cv.Resize(availW, availH)
			cw, ch = cv.Size()
			zoom = 1
		}
	})
	register("smoothing", []KeyShortcut{{Rune: 'g'}}, func() {
		cv.SetSmoothing(!cv.Smoothing())
		if cv.Smoothing() {
			flash("smoothing on")
		} else {
			flash("smoothing off")
		}
	})

	handleShortcut := func(action string) {
		if fn, ok := actions[action]; ok {
			fn()
		}
		w.Send(paint.Event{})
	}

	selectTool := func(t canvas.Tool) {
		cv.SetTool(t)
		pressed = false
	}

	toolButtons = []*CacheButton{
		{Button: &ToolButton{label: "P:Pen", tool: canvas.ToolPen, theme: th}},
		{Button: &ToolButton{label: "E:Erase", tool: canvas.ToolEraser, theme: th}},
		{Button: &ToolButton{label: "L:Line", tool: canvas.ToolLine, theme: th}},
		{Button: &ToolButton{label: "X:Rect", tool: canvas.ToolRect, theme: th}},
		{Button: &ToolButton{label: "O:Ellipse", tool: canvas.ToolEllipse, theme: th}},
		{Button: &ToolButton{label: "T:Tri", tool: canvas.ToolTriangle, theme: th}},
	}
	for _, cb := range toolButtons {
		tb := cb.Button.(*ToolButton)
		t := tb.tool
		tb.onSelect = func() { selectTool(t) }
	}

	for {
		e := w.NextEvent()
		switch e := e.(type) {
		case lifecycle.Event:
			if e.To == lifecycle.StageDead {
				return
			}
		case size.Event:
			width = e.WidthPx
			height = e.HeightPx
			cw, ch = cv.Size()
			zoom = fitZoom(cw, ch, width, height)
			w.Send(paint.Event{})
		case paint.Event:
			s.drawFrame(scr, w, frameState{
				width:          width,
				height:         height,
				zoom:           zoom,
				colorIdx:       colorIdx,
				sizeIdx:        sizeIdx,
				styleIdx:       styleIdx,
				shapeIdx:       shapeIdx,
				message:        message,
				messageUntil:   messageUntil,
				handleShortcut: handleShortcut,
			})
		case mouse.Event:
			if message != "" && time.Now().Before(messageUntil) && e.Direction == mouse.DirPress {
				messageUntil = time.Time{}
				w.Send(paint.Event{})
				continue
			}
			px := int(e.X)
			py := int(e.Y)

			// Bottom bar shortcuts.
			if py >= height-bottomHeight {
				if pressed {
					cv.PointerLeave()
					pressed = false
				}
				hoverShortcut = -1
				p := image.Point{px, py}
				for i := range shortcutRects {
					sc := &shortcutRects[i]
					if p.In(sc.rect) {
						hoverShortcut = i
						if e.Button == mouse.ButtonLeft && e.Direction == mouse.DirPress {
							sc.Activate()
						}
						break
					}
				}
				if e.Direction == mouse.DirNone {
					w.Send(paint.Event{})
				}
				continue
			}

			// Toolbar.
			if px < toolbarWidth && py >= topHeight {
				if pressed {
					cv.PointerLeave()
					pressed = false
				}
				if s.handleToolbar(e, px, py, &colorIdx, &sizeIdx, &styleIdx, &shapeIdx) {
					applyBrush()
					w.Send(paint.Event{})
				} else if e.Direction == mouse.DirNone {
					w.Send(paint.Event{})
				}
				continue
			}

			// Canvas surface.
			base := canvasRect(cw, ch, zoom)
			rect := displayRect(base)
			p := cv.Normalize(float64(e.X), float64(e.Y), rect)
			inside := image.Pt(px, py).In(base)

			switch {
			case e.Button == mouse.ButtonLeft && e.Direction == mouse.DirPress:
				if inside {
					cv.PointerDown(p)
					pressed = true
					w.Send(paint.Event{})
				}
			case e.Direction == mouse.DirNone && pressed:
				if inside {
					cv.PointerMove(p)
				} else {
					// Leaving the canvas commits the gesture.
					cv.PointerLeave()
					pressed = false
				}
				w.Send(paint.Event{})
			case e.Button == mouse.ButtonLeft && e.Direction == mouse.DirRelease && pressed:
				cv.PointerUp(p)
				pressed = false
				w.Send(paint.Event{})
			}
		case key.Event:
			if e.Direction != key.DirPress {
				continue
			}
			ks := KeyShortcut{Rune: unicode.ToLower(e.Rune), Code: e.Code, Modifiers: e.Modifiers}
			if action, ok := keyboardAction[ks]; ok {
				handleShortcut(action)
				continue
			}
			switch unicode.ToLower(e.Rune) {
			case 'p':
				selectTool(canvas.ToolPen)
				w.Send(paint.Event{})
			case 'e':
				selectTool(canvas.ToolEraser)
				w.Send(paint.Event{})
			case 'l':
				selectTool(canvas.ToolLine)
				w.Send(paint.Event{})
			case 'x':
				selectTool(canvas.ToolRect)
				w.Send(paint.Event{})
			case 'o':
				selectTool(canvas.ToolEllipse)
				w.Send(paint.Event{})
			case 't':
				selectTool(canvas.ToolTriangle)
				w.Send(paint.Event{})
			case 'q':
				return
			case '+', '=':
				zoom *= 1.25
				w.Send(paint.Event{})
			case '-':
				zoom /= 1.25
				if zoom < 0.1 {
					zoom = 0.1
				}
				w.Send(paint.Event{})
			}
		}
	}
}

func windowTitle(cv *canvas.Canvas) string {
	if cv.Label() != "" {
		return "DraftStudio - " + cv.Label()
	}
	return "DraftStudio"
}

func styleIndex(st brush.Style) int {
	for i, s := range brushStyles {
		if s == st {
			return i
		}
	}
	return 0
}

func shapeIndex(sh brush.Shape) int {
	for i, s := range brushShapes {
		if s == sh {
			return i
		}
	}
	return 0
}

// handleToolbar routes a mouse event inside the toolbar. It reports whether
// a brush setting changed.
func (s *Studio) handleToolbar(e mouse.Event, px, py int, colorIdx, sizeIdx, styleIdx, shapeIdx *int) bool {
	press := e.Button == mouse.ButtonLeft && e.Direction == mouse.DirPress
	hoverTool = -1
	hoverPalette = -1
	hoverSize = -1
	hoverStyle = -1
	hoverShape = -1

	pos := py - topHeight
	idx := pos / 24
	if idx < len(toolButtons) {
		hoverTool = idx
		if press {
			toolButtons[idx].Activate()
		}
		return press
	}
	pos -= len(toolButtons) * 24
	pos -= 4

	// Color swatches.
	paletteCols := toolbarWidth / 18
	rows := (paletteLen() + paletteCols - 1) / paletteCols
	paletteHeight := rows * 18
	if pos >= 0 && pos < paletteHeight {
		colX := (px - 4) / 18
		colY := pos / 18
		cidx := colY*paletteCols + colX
		if cidx >= 0 && cidx < paletteLen() {
			hoverPalette = cidx
			if press {
				*colorIdx = cidx
				return true
			}
		}
		return false
	}
	pos -= paletteHeight
	pos -= 4

	// Brush sizes.
	sizesHeight := sizesLen() * 16
	if pos >= 0 && pos < sizesHeight {
		sidx := pos / 16
		if sidx >= 0 && sidx < sizesLen() {
			hoverSize = sidx
			if press {
				*sizeIdx = sidx
				return true
			}
		}
		return false
	}
	pos -= sizesHeight
	pos -= 4

	// Styles.
	stylesHeight := len(brushStyles) * 16
	if pos >= 0 && pos < stylesHeight {
		stidx := pos / 16
		if stidx >= 0 && stidx < len(brushStyles) {
			hoverStyle = stidx
			if press {
				*styleIdx = stidx
				return true
			}
		}
		return false
	}
	pos -= stylesHeight
	pos -= 4

	// Stamp shapes.
	shapesHeight := len(brushShapes) * 16
	if pos >= 0 && pos < shapesHeight {
		shidx := pos / 16
		if shidx >= 0 && shidx < len(brushShapes) {
			hoverShape = shidx
			if press {
				*shapeIdx = shidx
				return true
			}
		}
	}
	return false
}

type frameState struct {
	width, height  int
	zoom           float64
	colorIdx       int
	sizeIdx        int
	styleIdx       int
	shapeIdx       int
	message        string
	messageUntil   time.Time
	handleShortcut func(string)
}

func (s *Studio) drawFrame(scr screen.Screen, w screen.Window, st frameState) {
	buf, err := scr.NewBuffer(image.Point{st.width, st.height})
	if err != nil {
		log.Printf("new buffer: %v", err)
		return
	}
	defer buf.Release()
	dst := buf.RGBA()
	th := s.Theme
	cv := s.Canvas

	draw.Draw(dst, dst.Bounds(), &image.Uniform{th.Background}, image.Point{}, draw.Src)

	// Canvas.
	cw, ch := cv.Size()
	base := canvasRect(cw, ch, st.zoom)
	img := cv.Image()
	xdraw.NearestNeighbor.Scale(dst, base, img, img.Bounds(), draw.Over, nil)
	strokeBorder(dst, base.Inset(-1), th.CanvasBorder)

	s.drawTitle(dst)
	s.drawToolbar(dst, st)
	s.drawShortcuts(dst, st)

	if st.message != "" && time.Now().Before(st.messageUntil) {
		d := &font.Drawer{Dst: dst, Src: image.NewUniform(th.Foreground), Face: messageFace}
		wmsg := d.MeasureString(st.message).Ceil()
		ascent := messageFace.Metrics().Ascent.Ceil()
		descent := messageFace.Metrics().Descent.Ceil()
		mx := (st.width - wmsg) / 2
		my := (st.height-ascent-descent)/2 + ascent
		rect := image.Rect(mx-8, my-ascent-8, mx+wmsg+8, my+descent+8)
		draw.Draw(dst, rect, &image.Uniform{th.ToolbarBackground}, image.Point{}, draw.Over)
		strokeBorder(dst, rect, th.ButtonBorder)
		d.Dot = fixed.P(mx, my)
		d.DrawString(st.message)
	}

	w.Upload(image.Point{}, buf, buf.Bounds())
	w.Publish()
}

func (s *Studio) drawTitle(dst *image.RGBA) {
	th := s.Theme
	draw.Draw(dst, image.Rect(0, 0, dst.Bounds().Dx(), topHeight),
		&image.Uniform{th.ToolbarBackground}, image.Point{}, draw.Src)
	title := &font.Drawer{Dst: dst, Src: image.NewUniform(th.Foreground), Face: basicfont.Face7x13,
		Dot: fixed.P(4, 16)}
	title.DrawString(windowTitle(s.Canvas))
}

func (s *Studio) drawToolbar(dst *image.RGBA, st frameState) {
	th := s.Theme
	cv := s.Canvas
	draw.Draw(dst, image.Rect(0, topHeight, toolbarWidth, dst.Bounds().Dy()-bottomHeight),
		&image.Uniform{th.ToolbarBackground}, image.Point{}, draw.Src)

	y := topHeight
	for i, cb := range toolButtons {
		r := image.Rect(0, y, toolbarWidth, y+24)
		cb.SetRect(r)
		tb := cb.Button.(*ToolButton)
		state := StateDefault
		if tb.tool == cv.Tool() {
			state = StatePressed
		} else if i == hoverTool {
			state = StateHover
		}
		cb.Draw(dst, state)
		y += 24
	}

	// Color swatches below tools.
	y += 4
	x := 4
	for i := 0; i < paletteLen(); i++ {
		rect := image.Rect(x, y, x+16, y+16)
		draw.Draw(dst, rect, &image.Uniform{paletteColorAt(i)}, image.Point{}, draw.Src)
		if i == hoverPalette {
			strokeBorder(dst, rect, th.ButtonBorder)
		}
		if i == st.colorIdx {
			strokeBorder(dst, rect, th.Accent)
		}
		x += 18
		if x+16 > toolbarWidth {
			x = 4
			y += 18
		}
	}
	if x != 4 {
		y += 18
	}

	// Brush sizes with a stroke preview.
	y += 4
	col := paletteColorAt(st.colorIdx)
	for i := 0; i < sizesLen(); i++ {
		rect := image.Rect(0, y, toolbarWidth, y+16)
		c := th.ButtonBackground
		if i == st.sizeIdx {
			c = th.ButtonBackgroundPress
		} else if i == hoverSize {
			c = th.ButtonBackgroundHover
		}
		draw.Draw(dst, rect, &image.Uniform{c}, image.Point{}, draw.Src)
		d := &font.Drawer{Dst: dst, Src: image.NewUniform(th.ButtonText), Face: basicfont.Face7x13, Dot: fixed.P(4, y+12)}
		d.DrawString(fmt.Sprintf("%d", sizeAt(i)))
		thick := sizeAt(i)
		if thick > 12 {
			thick = 12
		}
		lineY := y + 8 - thick/2
		draw.Draw(dst, image.Rect(30, lineY, toolbarWidth-4, lineY+thick), &image.Uniform{col}, image.Point{}, draw.Src)
		y += 16
	}

	// Styles.
	y += 4
	for i, style := range brushStyles {
		rect := image.Rect(0, y, toolbarWidth, y+16)
		c := th.ButtonBackground
		if i == st.styleIdx {
			c = th.ButtonBackgroundPress
		} else if i == hoverStyle {
			c = th.ButtonBackgroundHover
		}
		draw.Draw(dst, rect, &image.Uniform{c}, image.Point{}, draw.Src)
		d := &font.Drawer{Dst: dst, Src: image.NewUniform(th.ButtonText), Face: basicfont.Face7x13, Dot: fixed.P(4, y+12)}
		d.DrawString(style.String())
		y += 16
	}

	// Stamp shapes.
	y += 4
	for i, shape := range brushShapes {
		rect := image.Rect(0, y, toolbarWidth, y+16)
		c := th.ButtonBackground
		if i == st.shapeIdx {
			c = th.ButtonBackgroundPress
		} else if i == hoverShape {
			c = th.ButtonBackgroundHover
		}
		draw.Draw(dst, rect, &image.Uniform{c}, image.Point{}, draw.Src)
		d := &font.Drawer{Dst: dst, Src: image.NewUniform(th.ButtonText), Face: basicfont.Face7x13, Dot: fixed.P(4, y+12)}
		d.DrawString(shape.String())
		y += 16
	}
}

func (s *Studio) drawShortcuts(dst *image.RGBA, st frameState) {
	th := s.Theme
	rect := image.Rect(0, st.height-bottomHeight, st.width, st.height)
	draw.Draw(dst, rect, &image.Uniform{th.ToolbarBackground}, image.Point{}, draw.Src)
	shortcutRects = shortcutRects[:0]
	zoomStr := fmt.Sprintf("+/-:zoom (%.0f%%)", st.zoom*100)
	trigger := st.handleShortcut
	shortcuts := []Shortcut{
		{label: "^Z:undo", action: func() { trigger("undo") }, theme: th},
		{label: "^Y:redo", action: func() { trigger("redo") }, theme: th},
		{label: "^K:clear", action: func() { trigger("clear") }, theme: th},
		{label: "^C:copy", action: func() { trigger("copy") }, theme: th},
		{label: "^V:paste", action: func() { trigger("paste") }, theme: th},
		{label: "^S:save", action: func() { trigger("save") }, theme: th},
		{label: "^E:pdf", action: func() { trigger("exportpdf") }, theme: th},
		{label: "F:fit", action: func() { trigger("fit") }, theme: th},
		{label: "G:smooth", action: func() { trigger("smoothing") }, theme: th},
		{label: zoomStr, theme: th},
		{label: "Q:quit", theme: th},
	}
	x := toolbarWidth + 4
	y := st.height - bottomHeight + 16
	meas := &font.Drawer{Face: basicfont.Face7x13}
	for i := range shortcuts {
		sc := &shortcuts[i]
		w := meas.MeasureString(sc.label).Ceil()
		sc.SetRect(image.Rect(x-2, y-14, x+w+2, y+4))
		state := StateDefault
		if i == hoverShortcut {
			state = StateHover
		}
		sc.Draw(dst, state)
		shortcutRects = append(shortcutRects, *sc)
		x = sc.rect.Max.X + 8
	}
}
