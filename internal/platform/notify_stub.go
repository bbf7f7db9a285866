//go:build !linux && !darwin && !windows

package platform

// Notify silently discards the notification on platforms without a
// supported notification service.
func Notify(_, _ string, _ Options) error {
	return nil
}
