// Package tray owns the presentation state of the agent and drives a tray
// host: the icon, its title and the menu.
package tray

import (
	"time"

	"github.com/mail-sync/mail-tray/internal/icon"
	"github.com/mail-sync/mail-tray/internal/models"
)

// Snapshot is one refresh worth of presentation state. A snapshot is never
// modified after it is published; each refresh builds a new one.
type Snapshot struct {
	Status      models.RunStatus
	Counts      models.InboxCounts
	Icon        icon.Spec
	RefreshedAt time.Time
}

// Title is the tooltip text for the snapshot.
func (s *Snapshot) Title() string {
	return "Mail sync: " + s.Status.DisplayStatus()
}

func emptySnapshot() *Snapshot {
	return &Snapshot{
		Status: models.RunStatus{Status: models.StatusUnknown},
		Counts: models.InboxCounts{},
		Icon:   icon.Spec{Kind: icon.KindFailed, Overlay: icon.OverlayNone},
	}
}
