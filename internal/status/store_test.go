package status

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/mail-sync/mail-tray/internal/models"
)

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
}

func TestLoad(t *testing.T) {
	tests := []struct {
		name     string
		record   string // "" means no status file
		stamp    string // "" means no stamp file
		expected models.RunStatus
	}{
		{
			name:     "nothing on disk",
			expected: models.RunStatus{Status: "unknown"},
		},
		{
			name:     "stamp only",
			stamp:    " 1700000000\n",
			expected: models.RunStatus{Status: "unknown", LastSuccess: 1700000000},
		},
		{
			name:     "non-numeric stamp",
			stamp:    "yesterday",
			expected: models.RunStatus{Status: "unknown"},
		},
		{
			name:   "full record",
			record: `{"status":"ok","message":"fetched","last_attempt":1700000100,"last_success":1700000100}`,
			stamp:  "1700000000",
			expected: models.RunStatus{
				Status: "ok", Message: "fetched", LastAttempt: 1700000100, LastSuccess: 1700000100,
			},
		},
		{
			name:     "record omits last_success",
			record:   `{"status":"failed","message":"timeout","last_attempt":1700000200}`,
			stamp:    "1700000000",
			expected: models.RunStatus{Status: "failed", Message: "timeout", LastAttempt: 1700000200, LastSuccess: 1700000000},
		},
		{
			name:     "record zeroes last_success",
			record:   `{"status":"ok","last_attempt":5,"last_success":0}`,
			stamp:    "1700000000",
			expected: models.RunStatus{Status: "ok", LastAttempt: 5, LastSuccess: 1700000000},
		},
		{
			name:     "stamp newer than record",
			record:   `{"status":"ok","last_success":1600000000}`,
			stamp:    "1700000000",
			expected: models.RunStatus{Status: "ok", LastSuccess: 1700000000},
		},
		{
			name:     "record without status keeps unknown",
			record:   `{"message":"hello"}`,
			expected: models.RunStatus{Status: "unknown", Message: "hello"},
		},
		{
			name:     "float timestamps",
			record:   `{"status":"ok","last_attempt":1700000000.7}`,
			expected: models.RunStatus{Status: "ok", LastAttempt: 1700000000},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dir := t.TempDir()
			statusPath := filepath.Join(dir, "status.json")
			stampPath := filepath.Join(dir, "last")
			if tt.record != "" {
				writeFile(t, statusPath, tt.record)
			}
			if tt.stamp != "" {
				writeFile(t, stampPath, tt.stamp)
			}

			got := Load(statusPath, stampPath)
			if got != tt.expected {
				t.Errorf("Load() = %+v, want %+v", got, tt.expected)
			}
		})
	}
}

func TestLoadCorruptRecord(t *testing.T) {
	for _, content := range []string{"{not json", "[1,2,3]", `{"last_attempt":"soon"}`} {
		t.Run(content, func(t *testing.T) {
			dir := t.TempDir()
			statusPath := filepath.Join(dir, "status.json")
			stampPath := filepath.Join(dir, "last")
			writeFile(t, statusPath, content)
			writeFile(t, stampPath, "1700000000")

			got := Load(statusPath, stampPath)
			if got.Status != models.StatusCorrupt {
				t.Errorf("Status = %q, want corrupt", got.Status)
			}
			if got.Message == "" {
				t.Error("corrupt status should explain itself")
			}
			if got.LastAttempt != 0 {
				t.Errorf("LastAttempt = %d, want 0", got.LastAttempt)
			}
			if got.LastSuccess != 1700000000 {
				t.Errorf("LastSuccess = %d, want stamp value", got.LastSuccess)
			}
		})
	}
}

func TestMarkRunningRoundTrip(t *testing.T) {
	dir := t.TempDir()
	statusPath := filepath.Join(dir, "nested", "cache", "status.json")
	stampPath := filepath.Join(dir, "last")
	writeFile(t, stampPath, "1700000000\n")

	if err := MarkRunning(statusPath, stampPath, "manual fetch"); err != nil {
		t.Fatalf("MarkRunning() error = %v", err)
	}

	got := Load(statusPath, stampPath)
	if got.Status != models.StatusRunning {
		t.Errorf("Status = %q, want running", got.Status)
	}
	if got.Message != "manual fetch" {
		t.Errorf("Message = %q, want manual fetch", got.Message)
	}
	if got.LastSuccess != 1700000000 {
		t.Errorf("LastSuccess = %d, want 1700000000", got.LastSuccess)
	}
	if got.LastAttempt == 0 {
		t.Error("LastAttempt should be set to now")
	}

	entries, err := os.ReadDir(filepath.Dir(statusPath))
	if err != nil {
		t.Fatal(err)
	}
	if len(entries) != 1 {
		t.Errorf("expected only status.json in dir, found %d entries", len(entries))
	}
}

func TestMarkRunningWithoutStamp(t *testing.T) {
	dir := t.TempDir()
	statusPath := filepath.Join(dir, "status.json")

	if err := MarkRunning(statusPath, filepath.Join(dir, "missing"), "manual restart"); err != nil {
		t.Fatalf("MarkRunning() error = %v", err)
	}
	got := Load(statusPath, filepath.Join(dir, "missing"))
	if got.Status != models.StatusRunning || got.LastSuccess != 0 {
		t.Errorf("Load() = %+v", got)
	}
}
