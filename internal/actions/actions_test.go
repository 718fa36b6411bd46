package actions

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"

	"github.com/mail-sync/mail-tray/internal/command"
	"github.com/mail-sync/mail-tray/internal/command/commandtest"
	"github.com/mail-sync/mail-tray/internal/config"
	"github.com/mail-sync/mail-tray/internal/models"
	"github.com/mail-sync/mail-tray/internal/status"
)

type sent struct {
	title, body string
	action      bool
}

type fakeNotifier struct {
	mu   sync.Mutex
	sent []sent
}

func (f *fakeNotifier) Notify(title, body string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.sent = append(f.sent, sent{title: title, body: body})
}

func (f *fakeNotifier) NotifyWithAction(title, body string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.sent = append(f.sent, sent{title: title, body: body, action: true})
}

func (f *fakeNotifier) only(t *testing.T) sent {
	t.Helper()
	f.mu.Lock()
	defer f.mu.Unlock()
	if len(f.sent) != 1 {
		t.Fatalf("notifications = %+v, want exactly 1", f.sent)
	}
	return f.sent[0]
}

func testConfig(t *testing.T) *config.Config {
	t.Helper()
	dir := t.TempDir()
	return &config.Config{
		StatusFile:  filepath.Join(dir, "status", "status.json"),
		StampFile:   filepath.Join(dir, "last"),
		Service:     "mail-sync.service",
		LogLines:    40,
		LogMaxChars: 3500,
	}
}

func TestServiceActions(t *testing.T) {
	tests := []struct {
		name      string
		fetch     bool
		handler   func(name string, args []string) (command.Output, error)
		missing   bool
		wantVerb  string
		wantTitle string
		wantBody  string
		wantOK    bool
		wantBtn   bool
	}{
		{
			name:      "fetch ok without output",
			fetch:     true,
			handler:   func(n string, _ []string) (command.Output, error) { return commandtest.Exit(n, 0, "", "") },
			wantVerb:  "start",
			wantTitle: "Mail sync started",
			wantBody:  "OK",
			wantOK:    true,
			wantBtn:   true,
		},
		{
			name:      "restart ok with output",
			handler:   func(n string, _ []string) (command.Output, error) { return commandtest.Exit(n, 0, "  restarted\n", "") },
			wantVerb:  "restart",
			wantTitle: "Mail sync restarted",
			wantBody:  "restarted",
			wantOK:    true,
			wantBtn:   true,
		},
		{
			name:  "failure prefers stderr",
			fetch: true,
			handler: func(n string, _ []string) (command.Output, error) {
				return commandtest.Exit(n, 1, "out", "Unit not found.\n")
			},
			wantVerb:  "start",
			wantTitle: "Mail sync started failed",
			wantBody:  "Unit not found.",
			wantBtn:   true,
		},
		{
			name:      "failure falls back to stdout",
			fetch:     true,
			handler:   func(n string, _ []string) (command.Output, error) { return commandtest.Exit(n, 1, "out", "") },
			wantVerb:  "start",
			wantTitle: "Mail sync started failed",
			wantBody:  "out",
			wantBtn:   true,
		},
		{
			name:      "failure falls back to exit code",
			handler:   func(n string, _ []string) (command.Output, error) { return commandtest.Exit(n, 5, "", "") },
			wantVerb:  "restart",
			wantTitle: "Mail sync restarted failed",
			wantBody:  "exit 5",
			wantBtn:   true,
		},
		{
			name:      "systemctl missing",
			fetch:     true,
			missing:   true,
			wantVerb:  "",
			wantTitle: "Mail sync started error",
			wantBody:  "systemctl: executable not found",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := testConfig(t)
			if err := os.WriteFile(cfg.StampFile, []byte("1700000000\n"), 0o644); err != nil {
				t.Fatal(err)
			}
			fake := &commandtest.Fake{Handler: tt.handler}
			if tt.missing {
				fake.Missing = map[string]bool{"systemctl": true}
			}
			notifier := &fakeNotifier{}

			var refreshes int
			var sawRunning bool
			d := NewDispatcher(cfg, fake, notifier, func() {
				refreshes++
				if refreshes == 1 {
					sawRunning = status.Load(cfg.StatusFile, cfg.StampFile).IsRunning()
				}
			})

			var res Result
			if tt.fetch {
				res = d.FetchNow(context.Background())
			} else {
				res = d.RestartService(context.Background())
			}

			if refreshes != 2 {
				t.Errorf("refreshes = %d, want 2", refreshes)
			}
			if !sawRunning {
				t.Errorf("status not running at first refresh")
			}
			st := status.Load(cfg.StatusFile, cfg.StampFile)
			if st.LastSuccess != 1700000000 {
				t.Errorf("LastSuccess = %d, want stamp value", st.LastSuccess)
			}

			calls := fake.CallsTo("systemctl")
			if len(calls) != 1 {
				t.Fatalf("systemctl calls = %d, want 1", len(calls))
			}
			if !tt.missing {
				want := "systemctl --user " + tt.wantVerb + " mail-sync.service"
				if got := calls[0].String(); got != want {
					t.Errorf("command = %q, want %q", got, want)
				}
			}

			n := notifier.only(t)
			if n.title != tt.wantTitle || n.body != tt.wantBody || n.action != tt.wantBtn {
				t.Errorf("notification = %+v, want {%q %q %v}", n, tt.wantTitle, tt.wantBody, tt.wantBtn)
			}
			if res.Title != tt.wantTitle || res.Body != tt.wantBody || res.OK != tt.wantOK {
				t.Errorf("result = %+v", res)
			}
		})
	}
}

func TestServiceActionSurvivesUnwritableStatus(t *testing.T) {
	cfg := testConfig(t)
	blocker := filepath.Join(t.TempDir(), "file")
	if err := os.WriteFile(blocker, nil, 0o644); err != nil {
		t.Fatal(err)
	}
	cfg.StatusFile = filepath.Join(blocker, "status.json")

	fake := &commandtest.Fake{}
	notifier := &fakeNotifier{}
	res := NewDispatcher(cfg, fake, notifier, nil).FetchNow(context.Background())

	if !res.OK {
		t.Errorf("FetchNow() = %+v, want OK", res)
	}
	if len(fake.CallsTo("systemctl")) != 1 {
		t.Errorf("systemctl not run after failed status write")
	}
}

func TestShowLogs(t *testing.T) {
	long := strings.Repeat("a", 100) + strings.Repeat("z", 50)

	tests := []struct {
		name     string
		maxChars int
		missing  bool
		handler  func(name string, args []string) (command.Output, error)
		want     string
		wantBtn  bool
	}{
		{
			name:     "keeps the end",
			maxChars: 50,
			handler:  func(n string, _ []string) (command.Output, error) { return commandtest.Exit(n, 0, long, "") },
			want:     strings.Repeat("z", 50),
			wantBtn:  true,
		},
		{
			name:     "short output untouched",
			maxChars: 3500,
			handler: func(n string, _ []string) (command.Output, error) {
				return commandtest.Exit(n, 0, "line1\nline2\n", "")
			},
			want:    "line1\nline2",
			wantBtn: true,
		},
		{
			name:     "stderr when stdout empty",
			maxChars: 3500,
			handler: func(n string, _ []string) (command.Output, error) {
				return commandtest.Exit(n, 1, "", "No journal files were found.")
			},
			want:    "No journal files were found.",
			wantBtn: true,
		},
		{
			name:     "nothing at all",
			maxChars: 3500,
			handler:  func(n string, _ []string) (command.Output, error) { return commandtest.Exit(n, 0, "", "") },
			want:     "No logs",
			wantBtn:  true,
		},
		{
			name:     "journalctl missing",
			maxChars: 3500,
			missing:  true,
			want:     "journalctl not available",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := testConfig(t)
			cfg.LogMaxChars = tt.maxChars
			fake := &commandtest.Fake{Handler: tt.handler}
			if tt.missing {
				fake.Missing = map[string]bool{"journalctl": true}
			}
			notifier := &fakeNotifier{}

			NewDispatcher(cfg, fake, notifier, nil).ShowLogs(context.Background())

			n := notifier.only(t)
			if n.title != "Mail sync logs" || n.body != tt.want || n.action != tt.wantBtn {
				t.Errorf("notification = %+v, want body %q", n, tt.want)
			}

			calls := fake.CallsTo("journalctl")
			want := "journalctl --user -u mail-sync.service -n 40 --no-pager"
			if len(calls) != 1 || calls[0].String() != want {
				t.Errorf("calls = %v, want %q", calls, want)
			}
		})
	}
}

func TestShowStatus(t *testing.T) {
	fake := &commandtest.Fake{}
	notifier := &fakeNotifier{}
	d := NewDispatcher(testConfig(t), fake, notifier, nil)

	counts := models.InboxCounts{"work/inbox": {Unread: 1, Total: 2}}
	res := d.ShowStatus(models.RunStatus{Status: "ok"}, counts)

	n := notifier.only(t)
	if n.title != "Mail sync status" || !strings.Contains(n.body, "work/inbox: 1 unread / 2 total") {
		t.Errorf("notification = %+v", n)
	}
	if res.Body != n.body {
		t.Errorf("result body differs from notification")
	}
	if len(fake.Calls()) != 0 {
		t.Errorf("ShowStatus ran commands: %v", fake.Calls())
	}
}

func TestTail(t *testing.T) {
	tests := []struct {
		in       string
		n        int
		expected string
	}{
		{in: "hello", n: 10, expected: "hello"},
		{in: "hello", n: 3, expected: "llo"},
		{in: "  padded  ", n: 3, expected: "ded"},
		{in: "héllo wörld", n: 5, expected: "wörld"},
		{in: "anything", n: 0, expected: "anything"},
	}

	for _, tt := range tests {
		if got := Tail(tt.in, tt.n); got != tt.expected {
			t.Errorf("Tail(%q, %d) = %q, want %q", tt.in, tt.n, got, tt.expected)
		}
	}
}
