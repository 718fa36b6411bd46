package watcher

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

type fixture struct {
	status, stamp, maildir string
	w                      *Watcher
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	dir := t.TempDir()
	f := &fixture{
		status:  filepath.Join(dir, "cache", "status.json"),
		stamp:   filepath.Join(dir, "cache", "last"),
		maildir: filepath.Join(dir, "Mail"),
	}
	mkdirs(t, filepath.Dir(f.status), filepath.Join(f.maildir, "work", "inbox", "new"), filepath.Join(f.maildir, "work", "inbox", "cur"))

	w, err := New(f.status, f.stamp, f.maildir)
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	if err := w.Start(); err != nil {
		t.Fatalf("Start() error = %v", err)
	}
	t.Cleanup(w.Stop)
	f.w = w
	return f
}

func mkdirs(t *testing.T, dirs ...string) {
	t.Helper()
	for _, d := range dirs {
		if err := os.MkdirAll(d, 0o755); err != nil {
			t.Fatal(err)
		}
	}
}

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
}

func waitFor(t *testing.T, w *Watcher, want EventType) Event {
	t.Helper()
	deadline := time.After(3 * time.Second)
	for {
		select {
		case ev := <-w.Events():
			if ev.Type == want {
				return ev
			}
		case <-deadline:
			t.Fatalf("no %s event within timeout", want)
			return Event{}
		}
	}
}

func TestWatcherStatusFile(t *testing.T) {
	f := newFixture(t)

	writeFile(t, f.status, `{"status":"ok"}`)
	ev := waitFor(t, f.w, EventStatusChanged)
	if ev.Path != f.status {
		t.Errorf("Path = %q, want %q", ev.Path, f.status)
	}

	writeFile(t, f.stamp, "1700000000")
	waitFor(t, f.w, EventStatusChanged)
}

func TestWatcherInboxDelivery(t *testing.T) {
	f := newFixture(t)
	if got := f.w.WatchedInboxDirs(); got != 2 {
		t.Fatalf("WatchedInboxDirs() = %d, want 2", got)
	}

	msg := filepath.Join(f.maildir, "work", "inbox", "new", "1.host")
	writeFile(t, msg, "Subject: hi\n")
	waitFor(t, f.w, EventInboxChanged)

	// Reading a message moves it to cur with the seen flag.
	if err := os.Rename(msg, filepath.Join(f.maildir, "work", "inbox", "cur", "1.host:2,S")); err != nil {
		t.Fatal(err)
	}
	waitFor(t, f.w, EventInboxChanged)
}

func TestWatcherBurstIsDebounced(t *testing.T) {
	f := newFixture(t)

	for i := range 20 {
		writeFile(t, filepath.Join(f.maildir, "work", "inbox", "new", "m"+string(rune('a'+i))), "x")
	}
	waitFor(t, f.w, EventInboxChanged)

	select {
	case ev := <-f.w.Events():
		if ev.Type == EventInboxChanged {
			t.Errorf("burst produced a second inbox event")
		}
	case <-time.After(4 * debounceDelay):
	}
}

func TestWatcherNewAccount(t *testing.T) {
	f := newFixture(t)

	mkdirs(t, filepath.Join(f.maildir, "home", "inbox", "new"), filepath.Join(f.maildir, "home", "inbox", "cur"))
	waitFor(t, f.w, EventAccountsChanged)

	if got := f.w.WatchedInboxDirs(); got != 4 {
		t.Errorf("WatchedInboxDirs() = %d, want 4", got)
	}

	writeFile(t, filepath.Join(f.maildir, "home", "inbox", "new", "1.host"), "x")
	waitFor(t, f.w, EventInboxChanged)
}

func TestWatcherIgnoresUnrelatedFiles(t *testing.T) {
	f := newFixture(t)

	writeFile(t, filepath.Join(filepath.Dir(f.status), "other.log"), "noise")

	select {
	case ev := <-f.w.Events():
		t.Errorf("unexpected event %+v", ev)
	case <-time.After(4 * debounceDelay):
	}
}

func TestStopIsIdempotent(t *testing.T) {
	f := newFixture(t)
	f.w.Stop()
	f.w.Stop()
}
