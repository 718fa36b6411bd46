package models

import (
	"sort"
	"strings"
)

// InboxKey identifies a mailbox by its path relative to the mailbox root,
// e.g. "work/inbox".
type InboxKey string

// InboxSuffix is the directory every counted mailbox lives in.
const InboxSuffix = "/inbox"

// Label returns the key without its trailing "/inbox".
func (k InboxKey) Label() string {
	return strings.TrimSuffix(string(k), InboxSuffix)
}

// InboxCount holds message counts for one mailbox. Unread never exceeds Total.
type InboxCount struct {
	Unread int `json:"unread" yaml:"unread"`
	Total  int `json:"total" yaml:"total"`
}

// InboxCounts maps every discovered mailbox to its counts.
type InboxCounts map[InboxKey]InboxCount

// SortedKeys returns the keys in ascending order.
func (c InboxCounts) SortedKeys() []InboxKey {
	keys := make([]InboxKey, 0, len(c))
	for k := range c {
		keys = append(keys, k)
	}
	sort.Slice(keys, func(i, j int) bool { return keys[i] < keys[j] })
	return keys
}

// TotalUnread sums unread messages across all mailboxes.
func (c InboxCounts) TotalUnread() int {
	n := 0
	for _, count := range c {
		n += count.Unread
	}
	return n
}
