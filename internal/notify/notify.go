// Package notify sends desktop notifications through notify-send, with an
// optional "Open mail" button that focuses mu4e in a running Emacs.
package notify

import (
	"context"
	"errors"
	"log"
	"strings"
	"sync"

	"github.com/gen2brain/beeep"

	"github.com/mail-sync/mail-tray/internal/command"
)

const (
	appName    = "mail-sync-tray"
	iconName   = "mail-unread"
	actionKey  = "open-mail"
	actionText = "Open mail"
)

// focusMu4e switches to the mu4e perspective and raises the frame.
const focusMu4e = `(progn (when (fboundp 'persp-switch) (persp-switch "mu4e")) (when (fboundp 'mu4e) (mu4e)) (when (fboundp 'select-frame-set-input-focus) (select-frame-set-input-focus (selected-frame))))`

// Sender is what the tray and the actions need from a notifier.
type Sender interface {
	Notify(title, body string)
	NotifyWithAction(title, body string)
}

// Notifier delivers notifications best-effort. It never returns errors: a
// missing notify-send falls back to beeep, and a failing beeep to the log.
type Notifier struct {
	runner command.Runner
	beep   func(title, body string) error

	wg sync.WaitGroup
}

// New creates a notifier that runs its collaborators through runner.
func New(runner command.Runner) *Notifier {
	return &Notifier{
		runner: runner,
		beep: func(title, body string) error {
			return beeep.Notify(title, body, "")
		},
	}
}

// Notify shows a plain notification and returns once it is delivered.
func (n *Notifier) Notify(title, body string) {
	n.plain(context.Background(), title, body)
}

// NotifyWithAction shows a notification carrying an "Open mail" button and
// returns immediately. A goroutine waits for the notification to close and
// focuses the mail client when the button was clicked.
func (n *Notifier) NotifyWithAction(title, body string) {
	n.wg.Add(1)
	go func() {
		defer n.wg.Done()
		n.withAction(context.Background(), title, body)
	}()
}

// Wait blocks until every pending action notification has closed.
func (n *Notifier) Wait() {
	n.wg.Wait()
}

func (n *Notifier) withAction(ctx context.Context, title, body string) {
	out, err := n.runner.Run(ctx, "notify-send",
		"--app-name="+appName,
		"--icon="+iconName,
		"--action="+actionKey+"="+actionText,
		"--wait",
		title, body)

	switch {
	case err == nil:
		if strings.TrimSpace(out.Stdout) == actionKey {
			n.openMail(ctx)
		}
	case errors.Is(err, command.ErrTimeout):
		// Still on screen; nobody clicked in time.
	case errors.Is(err, command.ErrNotFound):
		n.fallback(title, body)
	default:
		// Older libnotify without --action/--wait support.
		n.plain(ctx, title, body)
	}
}

func (n *Notifier) plain(ctx context.Context, title, body string) {
	_, err := n.runner.Run(ctx, "notify-send", "--app-name="+appName, "--icon="+iconName, title, body)
	if err == nil {
		return
	}
	if !errors.Is(err, command.ErrNotFound) {
		log.Printf("[notify] notify-send failed: %s", command.Describe(err))
	}
	n.fallback(title, body)
}

func (n *Notifier) fallback(title, body string) {
	if err := n.beep(title, body); err != nil {
		log.Printf("[notify] %s: %s", title, body)
	}
}

func (n *Notifier) openMail(ctx context.Context) {
	if _, err := n.runner.Run(ctx, "emacsclient", "--no-wait", "--eval", focusMu4e); err != nil {
		log.Printf("[notify] Failed to focus mail client: %s", command.Describe(err))
	}
}
