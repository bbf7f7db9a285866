package main

import (
	"flag"
	"fmt"
	"image"
	"image/color"
	"image/png"
	"log"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"golang.org/x/image/colornames"

	"github.com/example/draftstudio/internal/brush"
	"github.com/example/draftstudio/internal/canvas"
	"github.com/example/draftstudio/internal/clipboard"
	"github.com/example/draftstudio/internal/config"
	"github.com/example/draftstudio/internal/export"
	"github.com/example/draftstudio/internal/raster"
	"github.com/example/draftstudio/internal/studio"
)

// drawCmd applies strokes and shapes to an image without opening a window.
type drawCmd struct {
	file          string
	output        string
	fromClipboard bool
	toClipboard   bool
	colorSpec     string
	size          int
	styleSpec     string
	shapeSpec     string
	width         int
	height        int
	background    string
	smoothing     bool
	erase         bool
	tool          canvas.Tool
	points        []raster.Point
	*root
	fs *flag.FlagSet
}

func (d *drawCmd) FlagSet() *flag.FlagSet {
	return d.fs
}

func parseColor(s string) (color.RGBA, error) {
	spec := strings.ToLower(strings.TrimSpace(s))
	if spec == "" {
		return color.RGBA{}, fmt.Errorf("color cannot be empty")
	}
	if c, ok := colornames.Map[spec]; ok {
		return c, nil
	}
	for _, entry := range studio.PaletteColors() {
		if strings.EqualFold(entry.Name, s) {
			return entry.Color, nil
		}
	}
	if strings.HasPrefix(spec, "#") && (len(spec) == 7 || len(spec) == 9) {
		r, err := strconv.ParseUint(spec[1:3], 16, 8)
		if err != nil {
			return color.RGBA{}, fmt.Errorf("invalid color %q", s)
		}
		g, err := strconv.ParseUint(spec[3:5], 16, 8)
		if err != nil {
			return color.RGBA{}, fmt.Errorf("invalid color %q", s)
		}
		b, err := strconv.ParseUint(spec[5:7], 16, 8)
		if err != nil {
			return color.RGBA{}, fmt.Errorf("invalid color %q", s)
		}
		a := uint64(255)
		if len(spec) == 9 {
			val, err := strconv.ParseUint(spec[7:9], 16, 8)
			if err != nil {
				return color.RGBA{}, fmt.Errorf("invalid color %q", s)
			}
			a = val
		}
		return color.RGBA{uint8(r), uint8(g), uint8(b), uint8(a)}, nil
	}
	return color.RGBA{}, fmt.Errorf("invalid color %q", s)
}

func parseDrawCmd(args []string, r *root) (*drawCmd, error) {
	cfg := config.New()
	if r != nil && r.config != nil {
		cfg = r.config
	}
	fs := flag.NewFlagSet("draw", flag.ExitOnError)
	d := &drawCmd{root: r, fs: fs}
	fs.Usage = usageFunc(d)
	fs.StringVar(&d.file, "file", "", "input image file")
	fs.StringVar(&d.output, "output", "", "output file path (defaults to input file)")
	fs.BoolVar(&d.fromClipboard, "from-clipboard", false, "read the input image from the clipboard")
	fs.BoolVar(&d.fromClipboard, "from-clip", false, "read the input image from the clipboard (alias)")
	fs.BoolVar(&d.toClipboard, "to-clipboard", false, "copy the result to the clipboard")
	fs.BoolVar(&d.toClipboard, "to-clip", false, "copy the result to the clipboard (alias)")
	fs.StringVar(&d.colorSpec, "color", "", "brush color name or hex value")
	fs.IntVar(&d.size, "size", 0, "brush diameter in pixels")
	fs.StringVar(&d.styleSpec, "style", "", "brush style (solid, pencil, watercolor, gouache)")
	fs.StringVar(&d.shapeSpec, "shape", "", "brush stamp shape (round, square, diamond)")
	fs.IntVar(&d.width, "width", cfg.Canvas.Width, "blank canvas width when no input image is given")
	fs.IntVar(&d.height, "height", cfg.Canvas.Height, "blank canvas height when no input image is given")
	fs.StringVar(&d.background, "background", "", "blank canvas background color name or hex value")
	fs.BoolVar(&d.smoothing, "smoothing", cfg.Canvas.Smoothing, "smooth freehand strokes")
	fs.BoolVar(&d.erase, "erase", false, "deposit the background color instead of the brush color")

	flagArgs, positionals, err := splitDrawArgs(args)
	if err != nil {
		return nil, err
	}
	if err := fs.Parse(flagArgs); err != nil {
		return nil, err
	}
	if len(positionals) < 1 {
		return nil, &UsageError{of: d}
	}
	shape := strings.ToLower(positionals[0])
	remaining := positionals[1:]
	var coords []int
	switch shape {
	case "dot":
		d.tool = canvas.ToolPen
		coords, err = expectInts(remaining, 2, shape)
	case "stroke":
		d.tool = canvas.ToolPen
		if len(remaining) < 2 || len(remaining)%2 != 0 {
			return nil, fmt.Errorf("stroke requires an even number of coordinates")
		}
		coords, err = expectInts(remaining, len(remaining), shape)
	case "line":
		d.tool = canvas.ToolLine
		coords, err = expectInts(remaining, 4, shape)
	case "rect":
		d.tool = canvas.ToolRect
		coords, err = expectInts(remaining, 4, shape)
	case "ellipse":
		d.tool = canvas.ToolEllipse
		coords, err = expectInts(remaining, 4, shape)
	case "triangle":
		d.tool = canvas.ToolTriangle
		coords, err = expectInts(remaining, 4, shape)
	default:
		return nil, fmt.Errorf("unsupported shape %q", shape)
	}
	if err != nil {
		return nil, err
	}
	for i := 0; i < len(coords); i += 2 {
		d.points = append(d.points, raster.Pt(float64(coords[i]), float64(coords[i+1])))
	}
	if d.erase && d.tool == canvas.ToolPen {
		d.tool = canvas.ToolEraser
	}
	if d.fromClipboard {
		if d.output == "" {
			if d.file != "" {
				d.output = d.file
			} else {
				return nil, fmt.Errorf("output file is required when reading from the clipboard")
			}
		}
	} else if d.file != "" {
		if d.output == "" {
			d.output = d.file
		}
	} else {
		if d.output == "" {
			return nil, fmt.Errorf("output file is required when drawing on a blank canvas")
		}
		if d.width < 1 || d.height < 1 {
			return nil, fmt.Errorf("canvas dimensions must be positive")
		}
	}
	return d, nil
}

func (d *drawCmd) Run() error {
	src, err := d.loadSource()
	if err != nil {
		return err
	}

	background := d.defaults().Canvas.Background
	if d.background != "" {
		background, err = parseColor(d.background)
		if err != nil {
			return err
		}
	}
	width, height := d.width, d.height
	if src != nil {
		width = src.Bounds().Dx()
		height = src.Bounds().Dy()
	}

	cv := canvas.New(
		canvas.WithBackground(background),
		canvas.WithSize(width, height),
		canvas.WithBrush(d.brush()),
		canvas.WithSmoothing(d.smoothing),
		canvas.WithTool(d.tool),
	)
	if src != nil {
		cv.ApplyImage(src)
	}

	cv.PointerDown(d.points[0])
	for _, p := range d.points[1:] {
		cv.PointerMove(p)
	}
	cv.PointerUp(d.points[len(d.points)-1])

	if err := export.PNGFile(d.output, cv.Image()); err != nil {
		return err
	}
	saved := d.output
	if abs, err := filepath.Abs(d.output); err == nil {
		saved = abs
	}
	fmt.Fprintf(os.Stderr, "saved %s\n", saved)
	d.root.notifySave(saved)
	if d.toClipboard {
		if err := clipboard.WriteImage(cv.Image()); err != nil {
			return fmt.Errorf("copy PNG to clipboard: %w", err)
		}
		detail := filepath.Base(d.output)
		if detail == "" {
			detail = "sketch"
		}
		fmt.Fprintf(os.Stderr, "copied %s to clipboard\n", detail)
		d.root.notifyCopy(detail)
	}
	return nil
}

func (d *drawCmd) defaults() *config.Config {
	if d.root != nil && d.root.config != nil {
		return d.root.config
	}
	return config.New()
}

// brush builds the effective brush from the config defaults and flag overrides.
func (d *drawCmd) brush() brush.Brush {
	b := d.defaults().Brush
	if d.colorSpec != "" {
		if col, err := parseColor(d.colorSpec); err == nil {
			b.Color = col
		}
	}
	if d.size > 0 {
		b.Size = d.size
	}
	if d.styleSpec != "" {
		if style, err := brush.ParseStyle(d.styleSpec); err == nil {
			b.Style = style
		}
	}
	if d.shapeSpec != "" {
		if shape, err := brush.ParseShape(d.shapeSpec); err == nil {
			b.Shape = shape
		}
	}
	return b.Normalize()
}

func (d *drawCmd) loadSource() (image.Image, error) {
	if d.fromClipboard {
		img, err := clipboard.ReadImage()
		if err != nil {
			return nil, fmt.Errorf("read clipboard image: %w", err)
		}
		return img, nil
	}
	if d.file == "" {
		return nil, nil
	}
	f, err := os.Open(d.file)
	if err != nil {
		return nil, err
	}
	img, err := png.Decode(f)
	if err != nil {
		if cerr := f.Close(); cerr != nil {
			log.Printf("error closing %q: %v", f.Name(), cerr)
		}
		return nil, err
	}
	if err := f.Close(); err != nil {
		log.Printf("error closing %q: %v", f.Name(), err)
	}
	return img, nil
}

func expectInts(args []string, n int, shape string) ([]int, error) {
	if len(args) != n {
		return nil, fmt.Errorf("%s requires %d integer arguments", shape, n)
	}
	vals := make([]int, n)
	for i, raw := range args {
		v, err := strconv.Atoi(raw)
		if err != nil {
			return nil, fmt.Errorf("invalid integer %q", raw)
		}
		vals[i] = v
	}
	return vals, nil
}

var drawFlagNames = map[string]struct{}{
	"file":           {},
	"output":         {},
	"from-clipboard": {},
	"from-clip":      {},
	"to-clipboard":   {},
	"to-clip":        {},
	"color":          {},
	"size":           {},
	"style":          {},
	"shape":          {},
	"width":          {},
	"height":         {},
	"background":     {},
	"smoothing":      {},
	"erase":          {},
}

var drawBoolFlags = map[string]struct{}{
	"from-clipboard": {},
	"from-clip":      {},
	"to-clipboard":   {},
	"to-clip":        {},
	"smoothing":      {},
	"erase":          {},
}

func splitDrawArgs(args []string) ([]string, []string, error) {
	var flags []string
	var positionals []string
	for i := 0; i < len(args); i++ {
		arg := args[i]
		if arg == "--" {
			positionals = append(positionals, args[i+1:]...)
			break
		}
		if !strings.HasPrefix(arg, "-") || arg == "-" {
			positionals = append(positionals, arg)
			continue
		}
		name := strings.TrimLeft(arg, "-")
		if name == "" {
			positionals = append(positionals, arg)
			continue
		}
		parts := strings.SplitN(name, "=", 2)
		base := strings.ToLower(parts[0])
		if _, ok := drawFlagNames[base]; !ok {
			positionals = append(positionals, arg)
			continue
		}
		// Normalise to single dash form for the flag parser.
		norm := "-" + base
		if len(parts) == 2 {
			flags = append(flags, norm+"="+parts[1])
			continue
		}
		if _, ok := drawBoolFlags[base]; ok {
			flags = append(flags, norm)
			continue
		}
		if i+1 >= len(args) {
			return nil, nil, fmt.Errorf("flag %s requires a value", arg)
		}
		flags = append(flags, norm, args[i+1])
		i++
	}
	return flags, positionals, nil
}
