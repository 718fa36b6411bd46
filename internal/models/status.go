// Package models defines the data shared between the status store, the inbox
// counter and the tray.
package models

// Status values written by the sync service, plus the ones the tray derives
// itself when the record is missing or broken.
const (
	StatusOK                = "ok"
	StatusRunning           = "running"
	StatusMissingCredential = "missing-credential"
	StatusUnknown           = "unknown"
	StatusCorrupt           = "corrupt"

	// StatusMissingSmartcard is the older spelling still written by some
	// sync scripts. It is treated exactly like StatusMissingCredential.
	StatusMissingSmartcard = "missing-smartcard"
)

// RunStatus is the merged health state of the mail sync service.
// Timestamps are epoch seconds, 0 meaning "never".
type RunStatus struct {
	Status      string `json:"status" yaml:"status"`
	Message     string `json:"message" yaml:"message"`
	LastAttempt int64  `json:"last_attempt" yaml:"last_attempt"`
	LastSuccess int64  `json:"last_success" yaml:"last_success"`
}

// IsRunning reports whether a fetch is in flight.
func (s RunStatus) IsRunning() bool {
	return s.Status == StatusRunning
}

// IsMissingCredential reports whether the last run stopped on a missing key or card.
func (s RunStatus) IsMissingCredential() bool {
	return s.Status == StatusMissingCredential || s.Status == StatusMissingSmartcard
}

// DisplayStatus returns the raw status string, or "unknown" when empty.
func (s RunStatus) DisplayStatus() string {
	if s.Status == "" {
		return StatusUnknown
	}
	return s.Status
}
