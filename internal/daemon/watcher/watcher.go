// Package watcher turns file system changes to the sync status artifacts and
// the mailbox tree into refresh events for the tray.
package watcher

import (
	"log"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/mail-sync/mail-tray/internal/inbox"
)

// EventType represents the type of file system event.
type EventType int

// Event types for file system changes.
const (
	EventStatusChanged   EventType = iota // status record or stamp written
	EventInboxChanged                     // message delivered, flagged or removed
	EventAccountsChanged                  // account directory added or removed
)

func (t EventType) String() string {
	switch t {
	case EventStatusChanged:
		return "status"
	case EventInboxChanged:
		return "inbox"
	case EventAccountsChanged:
		return "accounts"
	}
	return "unknown"
}

// maildirSubdirs are the folders whose entries decide the counts.
var maildirSubdirs = []string{"new", "cur"}

const debounceDelay = 100 * time.Millisecond

// Event represents a file system change event.
type Event struct {
	Type EventType
	Path string
}

// Watcher watches the status file, the stamp file and every account inbox.
type Watcher struct {
	fsWatcher  *fsnotify.Watcher
	eventsChan chan Event
	done       chan struct{}
	stopOnce   sync.Once

	statusFile string
	stampFile  string
	maildir    string

	mu      sync.Mutex
	inboxes map[string]bool // watched new/cur dirs

	debounce   map[string]*time.Timer
	debounceMu sync.Mutex
}

// New creates a watcher for the given artifacts. Nothing is watched until Start.
func New(statusFile, stampFile, maildir string) (*Watcher, error) {
	fsWatcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}

	return &Watcher{
		fsWatcher:  fsWatcher,
		eventsChan: make(chan Event, 16),
		done:       make(chan struct{}),
		statusFile: filepath.Clean(statusFile),
		stampFile:  filepath.Clean(stampFile),
		maildir:    filepath.Clean(maildir),
		inboxes:    make(map[string]bool),
		debounce:   make(map[string]*time.Timer),
	}, nil
}

// Events returns the channel for receiving events.
func (w *Watcher) Events() <-chan Event {
	return w.eventsChan
}

// Start adds the watches and begins processing events. Directories that do
// not exist yet are skipped with a warning.
func (w *Watcher) Start() error {
	seen := make(map[string]bool)
	for _, dir := range []string{filepath.Dir(w.statusFile), filepath.Dir(w.stampFile), w.maildir} {
		if seen[dir] {
			continue
		}
		seen[dir] = true
		if err := w.fsWatcher.Add(dir); err != nil {
			log.Printf("[watcher] Warning: failed to watch %s: %v", dir, err)
		}
	}

	w.rescan()

	go w.processEvents()
	return nil
}

// Stop stops the watcher. It is safe to call more than once.
func (w *Watcher) Stop() {
	w.stopOnce.Do(func() {
		close(w.done)
		_ = w.fsWatcher.Close()

		w.debounceMu.Lock()
		for path, timer := range w.debounce {
			timer.Stop()
			delete(w.debounce, path)
		}
		w.debounceMu.Unlock()
	})
}

// rescan watches the new/cur dirs of every discovered inbox and drops
// watches for inboxes that disappeared.
func (w *Watcher) rescan() {
	current := make(map[string]bool)
	for _, key := range inbox.Discover(w.maildir) {
		for _, sub := range maildirSubdirs {
			current[filepath.Join(w.maildir, filepath.FromSlash(string(key)), sub)] = true
		}
	}

	w.mu.Lock()
	defer w.mu.Unlock()

	for dir := range w.inboxes {
		if !current[dir] {
			_ = w.fsWatcher.Remove(dir)
			delete(w.inboxes, dir)
		}
	}
	for dir := range current {
		if w.inboxes[dir] {
			continue
		}
		if _, err := os.Stat(dir); err != nil {
			continue
		}
		if err := w.fsWatcher.Add(dir); err != nil {
			log.Printf("[watcher] Warning: failed to watch %s: %v", dir, err)
			continue
		}
		w.inboxes[dir] = true
	}
}

// WatchedInboxDirs returns the number of maildir folders being watched.
func (w *Watcher) WatchedInboxDirs() int {
	w.mu.Lock()
	defer w.mu.Unlock()
	return len(w.inboxes)
}

// processEvents processes file system events.
func (w *Watcher) processEvents() {
	for {
		select {
		case <-w.done:
			return
		case event, ok := <-w.fsWatcher.Events:
			if !ok {
				return
			}
			w.handleEvent(event)
		case err, ok := <-w.fsWatcher.Errors:
			if !ok {
				return
			}
			log.Printf("[watcher] Watcher error: %v", err)
		}
	}
}

// handleEvent classifies one fsnotify event and debounces it per type and
// directory, so a burst of deliveries into one inbox yields one event.
func (w *Watcher) handleEvent(event fsnotify.Event) {
	// Rename and Remove matter: the status file is replaced atomically, and
	// reading a message moves it from new to cur.
	if event.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename|fsnotify.Remove) == 0 {
		return
	}

	typ, ok := w.classify(event.Name)
	if !ok {
		return
	}

	key := typ.String() + ":" + filepath.Dir(event.Name)
	w.debounceEvent(key, func() {
		if typ == EventAccountsChanged {
			w.rescan()
		}
		w.emit(Event{Type: typ, Path: event.Name})
	})
}

func (w *Watcher) classify(path string) (EventType, bool) {
	path = filepath.Clean(path)
	dir := filepath.Dir(path)

	if path == w.statusFile || path == w.stampFile {
		return EventStatusChanged, true
	}
	if dir == w.maildir {
		return EventAccountsChanged, true
	}

	w.mu.Lock()
	watched := w.inboxes[dir]
	w.mu.Unlock()
	if watched {
		return EventInboxChanged, true
	}
	return 0, false
}

// debounceEvent debounces events for the same key.
func (w *Watcher) debounceEvent(key string, fn func()) {
	w.debounceMu.Lock()
	defer w.debounceMu.Unlock()

	if timer, ok := w.debounce[key]; ok {
		timer.Stop()
	}

	w.debounce[key] = time.AfterFunc(debounceDelay, func() {
		w.debounceMu.Lock()
		delete(w.debounce, key)
		w.debounceMu.Unlock()
		fn()
	})
}

// emit delivers ev without blocking. The consumer coalesces refreshes, so a
// full buffer already guarantees one is pending.
func (w *Watcher) emit(ev Event) {
	select {
	case <-w.done:
	case w.eventsChan <- ev:
	default:
	}
}
