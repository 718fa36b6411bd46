package tray

import (
	"errors"

	"github.com/mail-sync/mail-tray/internal/icon"
)

// ErrMenuUnsupported is returned by hosts that cannot show a menu.
var ErrMenuUnsupported = errors.New("tray host does not support menus")

// MenuItem is one menu entry. Disabled items are informational and have no
// action.
type MenuItem struct {
	Label    string
	Disabled bool
	Action   func()
}

// Menu has a variable informational section and a fixed action section,
// drawn with a separator between them.
type Menu struct {
	Lines   []MenuItem
	Actions []MenuItem
}

// Host is a surface that shows the icon and menu.
type Host interface {
	// Name identifies the host in logs.
	Name() string
	// Run blocks until Quit is called. onReady runs once the host can
	// accept updates; onExit runs after it has shut down.
	Run(onReady, onExit func())
	// Quit makes Run return. Safe to call more than once and from any goroutine.
	Quit()
	SetIcon(spec icon.Spec) error
	SetTitle(title string)
	// SetMenu replaces the menu. Hosts without menus return ErrMenuUnsupported.
	SetMenu(menu Menu) error
}
