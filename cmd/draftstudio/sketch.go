package main

import (
	"flag"
	"fmt"
	"log"
	"os"

	"github.com/example/draftstudio/internal/canvas"
	"github.com/example/draftstudio/internal/config"
	"github.com/example/draftstudio/internal/studio"
)

// sketchCmd opens the interactive drawing window.
type sketchCmd struct {
	file       string
	output     string
	saveDir    string
	width      int
	height     int
	background string
	label      string
	smoothing  bool
	readOnly   bool
	*root
	fs *flag.FlagSet
}

func (s *sketchCmd) FlagSet() *flag.FlagSet {
	return s.fs
}

func parseSketchCmd(args []string, r *root) (*sketchCmd, error) {
	cfg := config.New()
	if r != nil && r.config != nil {
		cfg = r.config
	}
	fs := flag.NewFlagSet("sketch", flag.ExitOnError)
	s := &sketchCmd{root: r, fs: fs}
	fs.Usage = usageFunc(s)
	fs.StringVar(&s.file, "file", "", "open an existing PNG sketch")
	fs.StringVar(&s.output, "output", "", "path used when saving with Ctrl+S (defaults to a generated name)")
	fs.StringVar(&s.saveDir, "save-dir", cfg.SaveDir, "directory for generated save names")
	fs.IntVar(&s.width, "width", cfg.Canvas.Width, "canvas width in pixels")
	fs.IntVar(&s.height, "height", cfg.Canvas.Height, "canvas height in pixels")
	fs.StringVar(&s.background, "background", "", "canvas background color name or hex value")
	fs.StringVar(&s.label, "label", "", "label shown in the window title")
	fs.BoolVar(&s.smoothing, "smoothing", cfg.Canvas.Smoothing, "smooth freehand strokes")
	fs.BoolVar(&s.readOnly, "read-only", false, "open the canvas with drawing disabled")
	if err := fs.Parse(args); err != nil {
		return nil, err
	}
	if s.width < 1 || s.height < 1 {
		return nil, fmt.Errorf("canvas dimensions must be positive")
	}
	return s, nil
}

func (s *sketchCmd) Run() error {
	background := s.root.config.Canvas.Background
	if s.background != "" {
		col, err := parseColor(s.background)
		if err != nil {
			return err
		}
		background = col
	}

	cv := canvas.New(
		canvas.WithBackground(background),
		canvas.WithSize(s.width, s.height),
		canvas.WithBrush(s.root.config.Brush),
		canvas.WithSmoothing(s.smoothing),
		canvas.WithDrawingEnabled(!s.readOnly),
		canvas.WithLabel(s.label),
	)

	if s.file != "" {
		f, err := os.Open(s.file)
		if err != nil {
			return err
		}
		uploadErr := cv.Upload(f)
		if cerr := f.Close(); cerr != nil {
			log.Printf("error closing %q: %v", s.file, cerr)
		}
		if uploadErr != nil {
			return fmt.Errorf("open sketch %q: %w", s.file, uploadErr)
		}
	}

	st := studio.New(
		studio.WithCanvas(cv),
		studio.WithTheme(s.root.activeTheme),
		studio.WithNotifier(s.root.notifier),
		studio.WithSaveDir(s.saveDir),
		studio.WithSavePath(s.output),
	)
	st.Run()
	return nil
}
