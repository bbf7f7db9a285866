package platform

// Options carries per-notification extras that only some platforms honour.
type Options struct {
	// IconPath names an image file shown alongside the notification, such as
	// the saved sketch or a rendered preview. Empty means no icon.
	IconPath string
}
