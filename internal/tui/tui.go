// Package tui is a terminal stand-in for the system tray: it shows the icon
// state, the mailbox lines and the action menu, and runs actions on keypress.
package tui

import (
	"sync"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/mail-sync/mail-tray/internal/daemon/tray"
	"github.com/mail-sync/mail-tray/internal/icon"
)

// programRef is a shared reference to the tea.Program for goroutine sends.
// It's set after tea.NewProgram but before p.Run().
type programRef struct {
	mu sync.Mutex
	p  *tea.Program
}

func (r *programRef) Set(p *tea.Program) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.p = p
}

func (r *programRef) Send(msg tea.Msg) {
	r.mu.Lock()
	p := r.p
	r.mu.Unlock()
	if p != nil {
		p.Send(msg)
	}
}

func (r *programRef) Quit() {
	r.mu.Lock()
	p := r.p
	r.mu.Unlock()
	if p != nil {
		p.Quit()
	}
}

// Clear nils out the program reference, preventing post-exit sends.
func (r *programRef) Clear() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.p = nil
}

// Host runs the tray controller inside the terminal. It implements tray.Host.
type Host struct {
	ref  *programRef
	opts []tea.ProgramOption
}

var _ tray.Host = (*Host)(nil)

// NewHost creates a terminal host using the alternate screen.
func NewHost() *Host {
	return &Host{
		ref:  &programRef{},
		opts: []tea.ProgramOption{tea.WithAltScreen()},
	}
}

func (h *Host) Name() string { return "terminal" }

// Run blocks until the user quits or Quit is called.
func (h *Host) Run(onReady, onExit func()) {
	p := tea.NewProgram(NewModel(), h.opts...)

	// Store program reference for goroutine sends
	h.ref.Set(p)
	if onReady != nil {
		onReady()
	}

	_, _ = p.Run()
	h.ref.Clear()

	if onExit != nil {
		onExit()
	}
}

func (h *Host) Quit() {
	h.ref.Quit()
}

func (h *Host) SetIcon(spec icon.Spec) error {
	h.ref.Send(iconMsg{spec: spec})
	return nil
}

func (h *Host) SetTitle(title string) {
	h.ref.Send(titleMsg(title))
}

func (h *Host) SetMenu(menu tray.Menu) error {
	h.ref.Send(menuMsg{menu: menu})
	return nil
}
