//go:build windows

package platform

import (
	"os/exec"
	"strings"
)

func psQuote(s string) string {
	return "'" + strings.ReplaceAll(s, "'", "''") + "'"
}

// Notify displays a toast through the Windows notification center by driving
// the WinRT toast API from PowerShell. When an icon path is present the
// image-and-text template is used, otherwise the plain two line template.
func Notify(title, body string, opts Options) error {
	icon := strings.TrimSpace(opts.IconPath)
	template := "ToastText02"
	if icon != "" {
		template = "ToastImageAndText02"
	}

	var sb strings.Builder
	sb.WriteString(`[Windows.UI.Notifications.ToastNotificationManager, Windows.UI.Notifications, ContentType=Windows Runtime] > $null; `)
	sb.WriteString(`$template = [Windows.UI.Notifications.ToastNotificationManager]::GetTemplateContent([Windows.UI.Notifications.ToastTemplateType]::` + template + `); `)
	sb.WriteString(`$texts = $template.GetElementsByTagName("text"); `)
	sb.WriteString(`$texts.Item(0).AppendChild($template.CreateTextNode(` + psQuote(title) + `)) > $null; `)
	sb.WriteString(`$texts.Item(1).AppendChild($template.CreateTextNode(` + psQuote(body) + `)) > $null; `)
	if icon != "" {
		sb.WriteString(`$image = $template.GetElementsByTagName("image").Item(0); `)
		sb.WriteString(`$image.SetAttribute("src", ` + psQuote(icon) + `); `)
	}
	sb.WriteString(`$toast = [Windows.UI.Notifications.ToastNotification]::new($template); `)
	sb.WriteString(`$notifier = [Windows.UI.Notifications.ToastNotificationManager]::CreateToastNotifier(` + psQuote("DraftStudio") + `); `)
	sb.WriteString(`$notifier.Show($toast);`)

	return exec.Command("powershell.exe", "-NoProfile", "-Command", sb.String()).Run()
}
