// Package icon renders the tray icon for a health kind and overlay.
package icon

import (
	"time"

	"github.com/mail-sync/mail-tray/internal/models"
)

// Kind is the base health state drawn on the envelope.
type Kind string

// Health kinds.
const (
	KindNormal            Kind = "normal"
	KindMissingCredential Kind = "missing-credential"
	KindFailed            Kind = "failed"
	KindStale             Kind = "stale"
)

// Overlay is a transient glyph drawn in the lower-right quadrant.
type Overlay string

// Overlays.
const (
	OverlayNone    Overlay = "none"
	OverlayUnread  Overlay = "unread-badge"
	OverlaySpinner Overlay = "spinner"
)

// Spec fully determines a rendered icon.
type Spec struct {
	Kind    Kind
	Overlay Overlay
}

// ChooseKind maps the run status to a health kind. A running fetch always
// looks normal; anything other than ok is a failure; an ok status whose last
// success is unknown or older than recent is stale.
func ChooseKind(st models.RunStatus, recent time.Duration, now time.Time) Kind {
	switch {
	case st.IsRunning():
		return KindNormal
	case st.IsMissingCredential():
		return KindMissingCredential
	case st.Status != models.StatusOK:
		return KindFailed
	}

	if st.LastSuccess == 0 || now.Unix()-st.LastSuccess > int64(recent/time.Second) {
		return KindStale
	}
	return KindNormal
}

// ChooseOverlay picks the spinner while running, else the unread badge when
// any mailbox has unread mail.
func ChooseOverlay(st models.RunStatus, counts models.InboxCounts) Overlay {
	if st.IsRunning() {
		return OverlaySpinner
	}
	if counts.TotalUnread() > 0 {
		return OverlayUnread
	}
	return OverlayNone
}

// Choose computes the full spec for a status and its counts.
func Choose(st models.RunStatus, counts models.InboxCounts, recent time.Duration, now time.Time) Spec {
	return Spec{
		Kind:    ChooseKind(st, recent, now),
		Overlay: ChooseOverlay(st, counts),
	}
}
