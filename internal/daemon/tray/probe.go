package tray

import (
	"errors"
	"log"
	"os"
	"runtime"
)

// ErrNoHost means neither a tray nor headless mode is available.
var ErrNoHost = errors.New("no tray host available")

// Remediation tells the user how to get a working tray.
const Remediation = "mail-tray: no graphical session with a system tray found; " +
	"install on Ubuntu: libayatana-appindicator3-1 gir1.2-ayatanaappindicator3-0.1 libnotify-bin, " +
	"or run with --headless (or --allow-headless) to poll without an icon"

// Probe picks the host to run under. Headless wins when requested; otherwise
// the system tray is used when a display is reachable, falling back to
// headless only when allowed.
func Probe(headless, allowHeadless bool) (Host, error) {
	return probe(headless, allowHeadless, os.Getenv, runtime.GOOS)
}

func probe(headless, allowHeadless bool, getenv func(string) string, goos string) (Host, error) {
	if headless {
		return NewHeadlessHost(), nil
	}
	if systrayBuilt && hasDisplay(getenv, goos) {
		return newSystrayHost(), nil
	}
	if allowHeadless {
		log.Printf("[tray] No tray available, running headless")
		return NewHeadlessHost(), nil
	}
	return nil, ErrNoHost
}

// hasDisplay reports whether a graphical session is reachable. Only X11 and
// Wayland desktops need checking; macOS and Windows always have one.
func hasDisplay(getenv func(string) string, goos string) bool {
	switch goos {
	case "darwin", "windows":
		return true
	}
	return getenv("DISPLAY") != "" || getenv("WAYLAND_DISPLAY") != ""
}
