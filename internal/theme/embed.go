package theme

import "embed"

// EmbeddedThemes holds the theme definitions shipped with the binary.
//
//go:embed defaults/*.theme
var EmbeddedThemes embed.FS
