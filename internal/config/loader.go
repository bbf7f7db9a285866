package config

import (
	"os"
	"path/filepath"
)

// programName anchors every on-disk path the loader probes. The dev-mode rc
// is ".<program>rc" in the working directory; installed configs live under
// ~/.config/<program>/.
const programName = "draftstudio"

// Loader locates and reads the configuration file.
type Loader struct {
	Version      string // build version; "dev" enables the working-directory rc
	OverridePath string // explicit path, typically injected at build time
}

// NewLoader creates a Loader.
func NewLoader(version, overridePath string) *Loader {
	return &Loader{Version: version, OverridePath: overridePath}
}

// Load reads the configuration from the first candidate path that exists,
// or returns defaults when no config file is present.
func (l *Loader) Load() (*Config, error) {
	path := l.GetConfigPath()
	if path == "" {
		return New(), nil
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	return Parse(f)
}

// GetConfigPath returns the config file path, or "" when none exists.
// Precedence: override path, dev-mode working-directory rc, then the XDG
// config directory.
func (l *Loader) GetConfigPath() string {
	var candidates []string
	if l.OverridePath != "" {
		candidates = append(candidates, l.OverridePath)
	}
	if l.Version == "dev" {
		if wd, err := os.Getwd(); err == nil {
			candidates = append(candidates, filepath.Join(wd, "."+programName+"rc"))
		}
	}
	if home, err := os.UserHomeDir(); err == nil {
		configDir := filepath.Join(home, ".config", programName)
		candidates = append(candidates,
			filepath.Join(configDir, "config.rc"),
			filepath.Join(configDir, programName+".rc"),
		)
	}

	for _, path := range candidates {
		if _, err := os.Stat(path); err == nil {
			return path
		}
	}
	return ""
}
