package tray

import (
	"context"
	"errors"
	"log"
	"sync"
	"sync/atomic"
	"time"

	"github.com/mail-sync/mail-tray/internal/actions"
	"github.com/mail-sync/mail-tray/internal/buildinfo"
	"github.com/mail-sync/mail-tray/internal/command"
	"github.com/mail-sync/mail-tray/internal/config"
	"github.com/mail-sync/mail-tray/internal/daemon/watcher"
	"github.com/mail-sync/mail-tray/internal/icon"
	"github.com/mail-sync/mail-tray/internal/inbox"
	"github.com/mail-sync/mail-tray/internal/notify"
	"github.com/mail-sync/mail-tray/internal/status"
	"github.com/mail-sync/mail-tray/internal/summary"
)

// Menu labels.
const (
	LabelNoInboxes = "No inboxes discovered"
	LabelFetch     = "Fetch now"
	LabelRestart   = "Restart service"
	LabelLogs      = "Show logs"
	LabelStatus    = "Show status"
	LabelQuit      = "Quit"
)

// minPollInterval keeps a zero or negative configured interval from spinning.
const minPollInterval = time.Second

// Controller refreshes the presentation state and pushes it to the host.
//
// The snapshot is published through an atomic pointer, so menu callbacks and
// action goroutines read it without locking. Actions never modify the
// controller; they ask for a refresh through a coalescing channel.
type Controller struct {
	cfg        *config.Config
	host       Host
	collector  *inbox.Collector
	dispatcher *actions.Dispatcher

	snap     atomic.Pointer[Snapshot]
	requests chan struct{}
	events   <-chan watcher.Event
	now      func() time.Time

	menuDisabled atomic.Bool
	inflight     sync.WaitGroup
}

// NewController wires a controller and the dispatcher for its menu actions.
func NewController(cfg *config.Config, host Host, collector *inbox.Collector, runner command.Runner, notifier notify.Sender) *Controller {
	c := &Controller{
		cfg:       cfg,
		host:      host,
		collector: collector,
		requests:  make(chan struct{}, 1),
		now:       time.Now,
	}
	c.dispatcher = actions.NewDispatcher(cfg, runner, notifier, c.RequestRefresh)
	c.snap.Store(emptySnapshot())
	return c
}

// Watch makes file system events trigger refreshes.
func (c *Controller) Watch(events <-chan watcher.Event) {
	c.events = events
}

// Snapshot returns the current presentation state. Never nil.
func (c *Controller) Snapshot() *Snapshot {
	return c.snap.Load()
}

// Dispatcher returns the action dispatcher bound to this controller.
func (c *Controller) Dispatcher() *actions.Dispatcher {
	return c.dispatcher
}

// RequestRefresh asks the poll loop for a refresh without blocking. Requests
// made while one is already pending are merged.
func (c *Controller) RequestRefresh() {
	select {
	case c.requests <- struct{}{}:
	default:
	}
}

// Run refreshes immediately, then again after every poll interval, refresh
// request or watched file change, until ctx is cancelled.
func (c *Controller) Run(ctx context.Context) {
	poll := max(c.cfg.PollInterval, minPollInterval)
	log.Printf("[controller] Started on %s host (poll %s, recent %s)", c.host.Name(), poll, c.cfg.RecentThreshold)
	c.Refresh(ctx)

	timer := time.NewTimer(poll)
	defer timer.Stop()

	for {
		select {
		case <-ctx.Done():
			log.Printf("[controller] Stopped")
			return
		case <-timer.C:
		case <-c.requests:
		case ev, ok := <-c.events:
			if !ok {
				c.events = nil
				continue
			}
			log.Printf("[controller] %s changed: %s", ev.Type, ev.Path)
		}

		c.Refresh(ctx)
		timer.Reset(poll)
	}
}

// Refresh rebuilds the snapshot from disk and updates the host.
func (c *Controller) Refresh(ctx context.Context) *Snapshot {
	st := status.Load(c.cfg.StatusFile, c.cfg.StampFile)
	counts := c.collector.Collect(ctx, c.cfg.Maildir)
	now := c.now()

	snap := &Snapshot{
		Status:      st,
		Counts:      counts,
		Icon:        icon.Choose(st, counts, c.cfg.RecentThreshold, now),
		RefreshedAt: now,
	}
	c.snap.Store(snap)

	if err := c.host.SetIcon(snap.Icon); err != nil {
		log.Printf("[controller] Failed to set icon: %v", err)
	}
	c.host.SetTitle(snap.Title())
	c.updateMenu(snap, now)

	return snap
}

func (c *Controller) updateMenu(snap *Snapshot, now time.Time) {
	if c.menuDisabled.Load() {
		return
	}
	err := c.host.SetMenu(c.buildMenu(snap, now))
	switch {
	case err == nil:
	case errors.Is(err, ErrMenuUnsupported):
		c.menuDisabled.Store(true)
		log.Printf("[controller] %s host has no menu, continuing without one", c.host.Name())
	default:
		log.Printf("[controller] Failed to set menu: %v", err)
	}
}

func (c *Controller) buildMenu(snap *Snapshot, now time.Time) Menu {
	var menu Menu

	for _, key := range snap.Counts.SortedKeys() {
		menu.Lines = append(menu.Lines, MenuItem{Label: summary.InboxLine(key, snap.Counts[key]), Disabled: true})
	}
	if len(snap.Counts) == 0 {
		menu.Lines = append(menu.Lines, MenuItem{Label: LabelNoInboxes, Disabled: true})
	}
	menu.Lines = append(menu.Lines, MenuItem{
		Label:    "Last successful fetch: " + summary.FormatAge(snap.Status.LastSuccess, now),
		Disabled: true,
	})

	menu.Actions = []MenuItem{
		{Label: LabelFetch, Action: c.async(c.dispatcher.FetchNow)},
		{Label: LabelRestart, Action: c.async(c.dispatcher.RestartService)},
		{Label: LabelLogs, Action: c.async(c.dispatcher.ShowLogs)},
		{Label: LabelStatus, Action: c.ShowStatus},
		{Label: "Version: " + buildinfo.Version, Disabled: true},
		{Label: LabelQuit, Action: c.host.Quit},
	}
	return menu
}

// ShowStatus notifies with the summary of the current snapshot.
func (c *Controller) ShowStatus() {
	snap := c.Snapshot()
	c.dispatcher.ShowStatus(snap.Status, snap.Counts)
}

// async wraps an action so the host's event goroutine returns immediately.
func (c *Controller) async(action func(context.Context) actions.Result) func() {
	return func() {
		c.inflight.Add(1)
		go func() {
			defer c.inflight.Done()
			action(context.Background())
		}()
	}
}

// WaitActions blocks until every dispatched action has finished.
func (c *Controller) WaitActions() {
	c.inflight.Wait()
}
