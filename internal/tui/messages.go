package tui

import (
	"github.com/mail-sync/mail-tray/internal/daemon/tray"
	"github.com/mail-sync/mail-tray/internal/icon"
)

// iconMsg carries a new icon state.
type iconMsg struct {
	spec icon.Spec
}

// titleMsg carries the tooltip text.
type titleMsg string

// menuMsg replaces the menu.
type menuMsg struct {
	menu tray.Menu
}

// flashMsg shows a transient line in the status bar.
type flashMsg string
