//go:build !notray

package tray

import (
	"fmt"
	"log"
	"runtime"
	"sync"

	"github.com/getlantern/systray"

	"github.com/mail-sync/mail-tray/internal/icon"
)

const systrayBuilt = true

// maxLineSlots bounds the informational menu lines. systray cannot remove
// items, so lines are pre-allocated and hidden when unused.
const maxLineSlots = 16

// SystrayHost shows the icon and menu in the desktop's notification area.
type SystrayHost struct {
	quitOnce sync.Once

	mu          sync.Mutex
	built       bool
	lineSlots   [maxLineSlots]*systray.MenuItem
	actionSlots []*systray.MenuItem

	// Maps action slot index → callback
	slotMu      sync.RWMutex
	slotActions []func()
}

func newSystrayHost() Host {
	return &SystrayHost{}
}

func (h *SystrayHost) Name() string { return "systray" }

// Run starts the system tray. This blocks the calling goroutine (must be main).
func (h *SystrayHost) Run(onReady, onExit func()) {
	systray.Run(func() {
		systray.SetTooltip("Mail sync")
		if onReady != nil {
			onReady()
		}
	}, func() {
		if onExit != nil {
			onExit()
		}
	})
}

// Quit signals the tray to exit.
func (h *SystrayHost) Quit() {
	h.quitOnce.Do(systray.Quit)
}

func (h *SystrayHost) SetIcon(spec icon.Spec) error {
	format := icon.FormatPNG
	if runtime.GOOS == "windows" {
		format = icon.FormatICO
	}
	data, err := icon.Bytes(spec, format)
	if err != nil {
		return err
	}
	systray.SetIcon(data)
	return nil
}

func (h *SystrayHost) SetTitle(title string) {
	systray.SetTooltip(title)
}

// SetMenu updates the pre-allocated slots in place. The first call
// allocates them, sized to that menu's action section.
func (h *SystrayHost) SetMenu(menu Menu) error {
	h.mu.Lock()
	defer h.mu.Unlock()

	if !h.built {
		h.build(len(menu.Actions))
	}

	lines := menu.Lines
	if len(lines) > maxLineSlots {
		more := len(lines) - maxLineSlots + 1
		lines = append(lines[:maxLineSlots-1:maxLineSlots-1], MenuItem{Label: fmt.Sprintf("(%d more)", more), Disabled: true})
	}
	for i, slot := range h.lineSlots {
		if i >= len(lines) {
			slot.Hide()
			continue
		}
		applyItem(slot, lines[i])
		slot.Show()
	}

	if len(menu.Actions) > len(h.actionSlots) {
		log.Printf("[systray] %d menu actions, only %d slots", len(menu.Actions), len(h.actionSlots))
	}

	h.slotMu.Lock()
	for i, slot := range h.actionSlots {
		if i >= len(menu.Actions) {
			h.slotActions[i] = nil
			slot.Hide()
			continue
		}
		h.slotActions[i] = menu.Actions[i].Action
		applyItem(slot, menu.Actions[i])
		slot.Show()
	}
	h.slotMu.Unlock()

	return nil
}

func (h *SystrayHost) build(actions int) {
	for i := range h.lineSlots {
		h.lineSlots[i] = systray.AddMenuItem("", "")
		h.lineSlots[i].Disable()
		h.lineSlots[i].Hide()
	}

	systray.AddSeparator()

	h.actionSlots = make([]*systray.MenuItem, actions)
	h.slotActions = make([]func(), actions)
	for i := range h.actionSlots {
		h.actionSlots[i] = systray.AddMenuItem("", "")
		go h.handleClicks(i)
	}
	h.built = true
}

func (h *SystrayHost) handleClicks(slot int) {
	for range h.actionSlots[slot].ClickedCh {
		h.slotMu.RLock()
		fn := h.slotActions[slot]
		h.slotMu.RUnlock()

		if fn != nil {
			fn()
		}
	}
}

func applyItem(slot *systray.MenuItem, item MenuItem) {
	slot.SetTitle(item.Label)
	if item.Disabled {
		slot.Disable()
	} else {
		slot.Enable()
	}
}
