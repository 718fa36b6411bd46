// Package summary turns a run status and inbox counts into the text shown in
// notifications, the tray menu and the status command.
package summary

import (
	"fmt"
	"strings"
	"time"

	"github.com/mail-sync/mail-tray/internal/models"
)

// TimeLayout is the absolute timestamp format, in local time.
const TimeLayout = "2006-01-02 15:04:05"

// NoInboxes is the summary line used when the mailbox root has no accounts.
const NoInboxes = "No inboxes discovered."

const unknown = "unknown"

// FormatAbsolute renders epoch seconds as local time, or "unknown" for 0.
func FormatAbsolute(epoch int64) string {
	if epoch == 0 {
		return unknown
	}
	return time.Unix(epoch, 0).Local().Format(TimeLayout)
}

// FormatAge renders how long ago epoch was relative to now. Deltas are
// truncated to whole units and clamped at zero for clock skew.
func FormatAge(epoch int64, now time.Time) string {
	if epoch == 0 {
		return unknown
	}
	delta := max(now.Unix()-epoch, 0)
	switch {
	case delta < 90:
		return fmt.Sprintf("%ds ago", delta)
	case delta < 5400:
		return fmt.Sprintf("%dm ago", delta/60)
	case delta < 172800:
		return fmt.Sprintf("%dh ago", delta/3600)
	default:
		return fmt.Sprintf("%dd ago", delta/86400)
	}
}

// FormatStatus builds the multi-line status text: timestamps, the status
// string, then one line per mailbox in key order.
func FormatStatus(st models.RunStatus, counts models.InboxCounts) string {
	lines := []string{
		"Last successful fetch: " + FormatAbsolute(st.LastSuccess),
		"Last attempt:          " + FormatAbsolute(st.LastAttempt),
		"Status:                " + st.DisplayStatus(),
	}
	if st.Message != "" && st.Status != models.StatusOK {
		lines = append(lines, "Message:               "+st.Message)
	}

	for _, key := range counts.SortedKeys() {
		c := counts[key]
		lines = append(lines, fmt.Sprintf("%s: %d unread / %d total", key, c.Unread, c.Total))
	}
	if len(counts) == 0 {
		lines = append(lines, NoInboxes)
	}
	return strings.Join(lines, "\n")
}

// InboxLine is the short per-mailbox label used in menus.
func InboxLine(key models.InboxKey, c models.InboxCount) string {
	return fmt.Sprintf("%s: %d/%d", key.Label(), c.Unread, c.Total)
}
