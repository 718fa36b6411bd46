// Package actions implements the tray menu actions: starting and restarting
// the sync service, showing its logs and showing the current status.
package actions

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strconv"
	"strings"

	"github.com/google/uuid"

	"github.com/mail-sync/mail-tray/internal/command"
	"github.com/mail-sync/mail-tray/internal/config"
	"github.com/mail-sync/mail-tray/internal/models"
	"github.com/mail-sync/mail-tray/internal/notify"
	"github.com/mail-sync/mail-tray/internal/status"
	"github.com/mail-sync/mail-tray/internal/summary"
)

// Notification titles.
const (
	TitleStarted   = "Mail sync started"
	TitleRestarted = "Mail sync restarted"
	TitleLogs      = "Mail sync logs"
	TitleStatus    = "Mail sync status"
)

// Placeholder bodies.
const (
	NoLogs             = "No logs"
	JournalUnavailable = "journalctl not available"
	okBody             = "OK"
)

// Result is what an action reported to the user.
type Result struct {
	Title string
	Body  string
	OK    bool
}

// Dispatcher runs actions. Every method is synchronous and never fails: the
// outcome is delivered as a notification and returned for callers that print
// it. The tray runs them on their own goroutines.
type Dispatcher struct {
	cfg      *config.Config
	runner   command.Runner
	notifier notify.Sender
	refresh  func()
}

// NewDispatcher creates a dispatcher. refresh is called before and after
// each service command and must not block; nil disables it.
func NewDispatcher(cfg *config.Config, runner command.Runner, notifier notify.Sender, refresh func()) *Dispatcher {
	if refresh == nil {
		refresh = func() {}
	}
	return &Dispatcher{cfg: cfg, runner: runner, notifier: notifier, refresh: refresh}
}

// FetchNow starts one sync run.
func (d *Dispatcher) FetchNow(ctx context.Context) Result {
	return d.serviceAction(ctx, "start", "manual fetch", TitleStarted)
}

// RestartService restarts the sync service.
func (d *Dispatcher) RestartService(ctx context.Context) Result {
	return d.serviceAction(ctx, "restart", "manual restart", TitleRestarted)
}

func (d *Dispatcher) serviceAction(ctx context.Context, verb, reason, title string) Result {
	id := newID()
	log.Printf("[action] %s %s %s", id, verb, d.cfg.Service)

	if err := status.MarkRunning(d.cfg.StatusFile, d.cfg.StampFile, reason); err != nil {
		log.Printf("[action] %s Failed to mark running: %v", id, err)
	}
	d.refresh()

	res := d.run(ctx, id, title, "systemctl", "--user", verb, d.cfg.Service)
	d.refresh()
	return res
}

// ShowLogs notifies with the tail of the service journal.
func (d *Dispatcher) ShowLogs(ctx context.Context) Result {
	id := newID()
	log.Printf("[action] %s logs %s", id, d.cfg.Service)

	out, err := d.runner.Run(ctx, "journalctl",
		"--user", "-u", d.cfg.Service,
		"-n", strconv.Itoa(d.cfg.LogLines),
		"--no-pager")
	if err != nil && isUnavailable(err) {
		log.Printf("[action] %s journalctl unavailable: %v", id, err)
		d.notifier.Notify(TitleLogs, JournalUnavailable)
		return Result{Title: TitleLogs, Body: JournalUnavailable}
	}

	body := firstNonEmpty(out.Stdout, out.Stderr, NoLogs)
	body = Tail(body, d.cfg.LogMaxChars)
	d.notifier.NotifyWithAction(TitleLogs, body)
	return Result{Title: TitleLogs, Body: body, OK: err == nil}
}

// ShowStatus notifies with the full status summary. It does not touch any
// external command so it is safe to call on the host's event goroutine.
func (d *Dispatcher) ShowStatus(st models.RunStatus, counts models.InboxCounts) Result {
	body := summary.FormatStatus(st, counts)
	d.notifier.NotifyWithAction(TitleStatus, body)
	return Result{Title: TitleStatus, Body: body, OK: true}
}

// run executes one service command and reports its outcome.
func (d *Dispatcher) run(ctx context.Context, id, title, name string, args ...string) Result {
	out, err := d.runner.Run(ctx, name, args...)
	if err == nil {
		body := firstNonEmpty(out.Stdout, okBody)
		log.Printf("[action] %s %s ok", id, name)
		d.notifier.NotifyWithAction(title, body)
		return Result{Title: title, Body: body, OK: true}
	}

	if isUnavailable(err) {
		title = title + " error"
		body := err.Error()
		log.Printf("[action] %s %s", id, body)
		d.notifier.Notify(title, body)
		return Result{Title: title, Body: body}
	}

	title = title + " failed"
	body := command.Describe(err)
	log.Printf("[action] %s %s failed: %v", id, name, err)
	d.notifier.NotifyWithAction(title, body)
	return Result{Title: title, Body: body}
}

// isUnavailable reports whether err means the process never ran, as opposed
// to running and failing.
func isUnavailable(err error) bool {
	var cmdErr *command.Error
	if !errors.As(err, &cmdErr) {
		return true
	}
	return cmdErr.Kind == command.ErrNotFound || cmdErr.Kind == nil
}

// Tail keeps the last n characters of s, trimmed. n <= 0 keeps everything.
func Tail(s string, n int) string {
	s = strings.TrimSpace(s)
	if n <= 0 {
		return s
	}
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[len(r)-n:])
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if s := strings.TrimSpace(v); s != "" {
			return s
		}
	}
	return ""
}

func newID() string {
	return fmt.Sprintf("[%s]", uuid.NewString()[:8])
}
