package theme

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// programName names the directory themes are installed under, both in the
// user config tree and system-wide.
const programName = "draftstudio"

// Loader resolves theme names against the embedded set and on-disk theme
// directories.
type Loader struct {
	ConfigDir string
	SystemDir string
}

// NewLoader creates a Loader with the standard search directories.
func NewLoader() *Loader {
	home, _ := os.UserHomeDir()
	return &Loader{
		ConfigDir: filepath.Join(home, ".config", programName, "themes"),
		SystemDir: filepath.Join("/usr/share", programName, "themes"),
	}
}

// Load resolves name to a theme. An empty name yields the default theme and
// an existing file path is parsed directly; otherwise the name (with a
// ".theme" suffix appended when missing) is searched in the embedded set,
// then ConfigDir, then SystemDir.
func (l *Loader) Load(name string) (*Theme, error) {
	if name == "" {
		return Default(), nil
	}

	if _, err := os.Stat(name); err == nil {
		return l.parseFile(name)
	}

	filename := name
	if !strings.HasSuffix(filename, ".theme") {
		filename += ".theme"
	}

	// Embedded theme names are lowercase.
	if f, err := EmbeddedThemes.Open("defaults/" + strings.ToLower(filename)); err == nil {
		defer f.Close()
		return Parse(f)
	}

	for _, dir := range []string{l.ConfigDir, l.SystemDir} {
		path := filepath.Join(dir, filename)
		if _, err := os.Stat(path); err == nil {
			return l.parseFile(path)
		}
	}

	return nil, fmt.Errorf("theme '%s' not found", name)
}

func (l *Loader) parseFile(path string) (*Theme, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return Parse(f)
}
