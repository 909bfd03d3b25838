// Package notify raises best-effort desktop notifications after an
// export completes. Dispatch tries notify-send first, then zenity, and
// gives up quietly when neither is installed or the session has no
// display; a failed notification never affects the run's outcome.
package notify

import (
	"os"
	"os/exec"
)

// Send shows a desktop notification with the given title and body. It
// reports whether any notifier accepted the message.
func Send(title, body string) bool {
	if os.Getenv("DISPLAY") == "" && os.Getenv("WAYLAND_DISPLAY") == "" {
		return false
	}

	if path, err := exec.LookPath("notify-send"); err == nil {
		if exec.Command(path, title, body).Run() == nil {
			return true
		}
	}
	if path, err := exec.LookPath("zenity"); err == nil {
		if exec.Command(path, "--notification", "--text", title+"\n"+body).Run() == nil {
			return true
		}
	}
	return false
}
