package inbox

import (
	"context"
	"os"
	"path/filepath"
	"sync"

	"golang.org/x/sync/errgroup"

	"github.com/mail-sync/mail-tray/internal/models"
)

// InboxDirName is the folder counted inside every account directory.
const InboxDirName = "inbox"

// maxConcurrentAccounts bounds parallel index queries.
const maxConcurrentAccounts = 4

// Collector discovers account inboxes under a mailbox root and counts them.
type Collector struct {
	indexer *Indexer
}

// NewCollector returns a collector that prefers indexer and falls back to the
// filesystem. A nil indexer means filesystem only.
func NewCollector(indexer *Indexer) *Collector {
	return &Collector{indexer: indexer}
}

// Discover returns the inbox keys under root: one per immediate subdirectory
// containing an "inbox" directory. A missing root yields no keys.
func Discover(root string) []models.InboxKey {
	entries, err := os.ReadDir(root)
	if err != nil {
		return nil
	}

	var keys []models.InboxKey
	for _, e := range entries {
		account := filepath.Join(root, e.Name())
		if !isDir(account) || !isDir(filepath.Join(account, InboxDirName)) {
			continue
		}
		keys = append(keys, models.InboxKey(e.Name()+"/"+InboxDirName))
	}
	return keys
}

// Collect counts every discovered inbox. The result is a fresh map each call
// and is empty, not nil, when root is missing.
func (c *Collector) Collect(ctx context.Context, root string) models.InboxCounts {
	counts := make(models.InboxCounts)
	keys := Discover(root)
	if len(keys) == 0 {
		return counts
	}

	useIndex := c.indexer.Available()

	var mu sync.Mutex
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(maxConcurrentAccounts)

	for _, key := range keys {
		g.Go(func() error {
			count := c.count(gctx, root, key, useIndex)
			mu.Lock()
			counts[key] = count
			mu.Unlock()
			return nil
		})
	}
	_ = g.Wait()

	return counts
}

func (c *Collector) count(ctx context.Context, root string, key models.InboxKey, useIndex bool) models.InboxCount {
	if useIndex {
		if count, ok := c.indexer.Count(ctx, root, key); ok {
			return count
		}
	}
	return CountMaildir(filepath.Join(root, filepath.FromSlash(string(key))))
}
