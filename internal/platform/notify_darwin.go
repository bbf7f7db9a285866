//go:build darwin

package platform

import (
	"fmt"
	"os/exec"
)

// Notify displays a notification through macOS Notification Center via
// osascript. AppleScript notifications cannot carry a custom image, so
// opts.IconPath is ignored here.
func Notify(title, body string, opts Options) error {
	script := fmt.Sprintf("display notification %q with title %q", body, title)
	return exec.Command("osascript", "-e", script).Run()
}
