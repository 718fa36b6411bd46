package inbox

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/mail-sync/mail-tray/internal/command"
	"github.com/mail-sync/mail-tray/internal/models"
)

// Query suffixes appended to every filter variant.
const (
	totalQuery  = " and not flag:trashed"
	unreadQuery = " and flag:unread and not flag:trashed"
)

// Indexer counts messages through an external mu-compatible query command.
type Indexer struct {
	runner  command.Runner
	command string
}

// NewIndexer returns an indexer running name (normally "mu").
func NewIndexer(runner command.Runner, name string) *Indexer {
	return &Indexer{runner: runner, command: name}
}

// Available reports whether the query executable is installed.
func (ix *Indexer) Available() bool {
	if ix == nil || ix.command == "" {
		return false
	}
	_, err := ix.runner.LookPath(ix.command)
	return err == nil
}

// FilterVariants returns the equivalent maildir filters for key, in the order
// they are tried: absolute path quoted, rooted path quoted, rooted path bare.
func FilterVariants(root string, key models.InboxKey) []string {
	abs := filepath.Join(root, string(key))
	if a, err := filepath.Abs(abs); err == nil {
		abs = a
	}
	return []string{
		fmt.Sprintf(`maildir:"=%s"`, abs),
		fmt.Sprintf(`maildir:"=/%s"`, key),
		fmt.Sprintf("maildir:/%s", key),
	}
}

// Count queries total and unread counts for one inbox. The first filter
// variant for which both queries succeed wins. ok is false when the backend
// is missing or no variant worked, so callers can tell "no index" from
// "zero messages".
func (ix *Indexer) Count(ctx context.Context, root string, key models.InboxKey) (models.InboxCount, bool) {
	if ix == nil {
		return models.InboxCount{}, false
	}
	for _, base := range FilterVariants(root, key) {
		total, ok := ix.query(ctx, base+totalQuery)
		if !ok {
			continue
		}
		unread, ok := ix.query(ctx, base+unreadQuery)
		if !ok {
			continue
		}
		return models.InboxCount{Unread: min(unread, total), Total: total}, true
	}
	return models.InboxCount{}, false
}

// query runs one search and counts non-blank result lines.
func (ix *Indexer) query(ctx context.Context, q string) (int, bool) {
	out, err := ix.runner.Run(ctx, ix.command, "find", "--format=plain", "--color", "never", q)
	if err != nil {
		return 0, false
	}

	n := 0
	for _, line := range strings.Split(out.Stdout, "\n") {
		if strings.TrimSpace(line) != "" {
			n++
		}
	}
	return n, true
}
