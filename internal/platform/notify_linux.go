//go:build linux

package platform

import (
	"fmt"

	"github.com/godbus/dbus/v5"
)

const (
	notifyAppName = "DraftStudio"
	notifyService = "org.freedesktop.Notifications"
	notifyPath    = "/org/freedesktop/Notifications"
	notifyExpire  = int32(5000) // ms
)

// Notify sends a desktop notification over the session bus using the
// Freedesktop.org notification interface.
func Notify(title, body string, opts Options) error {
	conn, err := dbus.ConnectSessionBus()
	if err != nil {
		return fmt.Errorf("connect session bus: %w", err)
	}
	defer conn.Close()

	obj := conn.Object(notifyService, dbus.ObjectPath(notifyPath))
	call := obj.Call(notifyService+".Notify", 0,
		notifyAppName,
		uint32(0), // replaces_id: always a fresh notification
		opts.IconPath,
		title,
		body,
		[]string{},
		map[string]dbus.Variant{},
		notifyExpire,
	)
	return call.Err
}
