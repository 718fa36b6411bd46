package tray

import (
	"log"
	"sync"

	"github.com/mail-sync/mail-tray/internal/icon"
)

// HeadlessHost keeps the refresh loop running without any visible surface.
// Icon and title changes are logged when they differ from the previous one.
type HeadlessHost struct {
	done     chan struct{}
	quitOnce sync.Once

	mu    sync.Mutex
	spec  icon.Spec
	title string
}

// NewHeadlessHost creates a headless host.
func NewHeadlessHost() *HeadlessHost {
	return &HeadlessHost{done: make(chan struct{})}
}

func (h *HeadlessHost) Name() string { return "headless" }

func (h *HeadlessHost) Run(onReady, onExit func()) {
	if onReady != nil {
		onReady()
	}
	<-h.done
	if onExit != nil {
		onExit()
	}
}

func (h *HeadlessHost) Quit() {
	h.quitOnce.Do(func() { close(h.done) })
}

func (h *HeadlessHost) SetIcon(spec icon.Spec) error {
	h.mu.Lock()
	defer h.mu.Unlock()
	if spec != h.spec {
		log.Printf("[headless] icon %s/%s", spec.Kind, spec.Overlay)
		h.spec = spec
	}
	return nil
}

func (h *HeadlessHost) SetTitle(title string) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if title != h.title {
		log.Printf("[headless] %s", title)
		h.title = title
	}
}

func (h *HeadlessHost) SetMenu(Menu) error {
	return ErrMenuUnsupported
}
