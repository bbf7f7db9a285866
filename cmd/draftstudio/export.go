package main

import (
	"flag"
	"fmt"
	"image/png"
	"log"
	"os"
	"path/filepath"
	"strings"

	"github.com/example/draftstudio/internal/export"
)

// exportCmd converts a saved PNG sketch into a PDF document.
type exportCmd struct {
	file   string
	output string
	title  string
	*root
	fs *flag.FlagSet
}

func (e *exportCmd) FlagSet() *flag.FlagSet {
	return e.fs
}

func parseExportCmd(args []string, r *root) (*exportCmd, error) {
	fs := flag.NewFlagSet("export", flag.ExitOnError)
	e := &exportCmd{root: r, fs: fs}
	fs.Usage = usageFunc(e)
	fs.StringVar(&e.file, "file", "", "input PNG sketch")
	fs.StringVar(&e.output, "output", "", "output PDF path (defaults to a generated name)")
	fs.StringVar(&e.title, "title", "", "document title (defaults to the input file name)")
	if err := fs.Parse(args); err != nil {
		return nil, err
	}
	if e.file == "" {
		return nil, fmt.Errorf("input file is required")
	}
	if e.output == "" {
		e.output = export.DefaultName("pdf")
	}
	if e.title == "" {
		base := filepath.Base(e.file)
		e.title = strings.TrimSuffix(base, filepath.Ext(base))
	}
	return e, nil
}

func (e *exportCmd) Run() error {
	f, err := os.Open(e.file)
	if err != nil {
		return err
	}
	img, err := png.Decode(f)
	if cerr := f.Close(); cerr != nil {
		log.Printf("error closing %q: %v", e.file, cerr)
	}
	if err != nil {
		return fmt.Errorf("decode %q: %w", e.file, err)
	}
	if err := export.PDFFile(e.output, img, e.title); err != nil {
		return err
	}
	saved := e.output
	if abs, err := filepath.Abs(e.output); err == nil {
		saved = abs
	}
	fmt.Fprintf(os.Stderr, "exported %s\n", saved)
	e.root.notifyExport(filepath.Base(e.output), img)
	return nil
}
