// Package status reads and writes the persisted health artifacts of the mail
// sync service: a JSON run-status record and a bare-integer success stamp.
package status

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/mail-sync/mail-tray/internal/models"
)

// record mirrors the status file. Pointer fields distinguish "absent" from zero.
type record struct {
	Status      *string      `json:"status"`
	Message     *string      `json:"message"`
	LastAttempt *json.Number `json:"last_attempt"`
	LastSuccess *json.Number `json:"last_success"`
}

// Load merges the status record and the success stamp into one RunStatus.
//
// The stamp is read first. A missing record yields status "unknown"; an
// unparsable one yields "corrupt" while keeping the stamp's last success.
// LastSuccess is the larger of the record's value and the stamp.
func Load(statusPath, stampPath string) models.RunStatus {
	st := models.RunStatus{
		Status:      models.StatusUnknown,
		LastSuccess: ReadStamp(stampPath),
	}

	data, err := os.ReadFile(statusPath)
	if err != nil {
		if !os.IsNotExist(err) {
			return corrupt(st, err)
		}
		return st
	}

	rec, err := parseRecord(data)
	if err != nil {
		return corrupt(st, err)
	}

	if rec.Status != nil {
		st.Status = *rec.Status
	}
	if rec.Message != nil {
		st.Message = *rec.Message
	}
	if rec.LastAttempt != nil {
		n, err := epoch(*rec.LastAttempt)
		if err != nil {
			return corrupt(st, err)
		}
		st.LastAttempt = n
	}
	if rec.LastSuccess != nil {
		n, err := epoch(*rec.LastSuccess)
		if err != nil {
			return corrupt(st, err)
		}
		st.LastSuccess = max(st.LastSuccess, n)
	}
	return st
}

// MarkRunning records an in-flight fetch: status "running", last attempt now
// and last success copied from the stamp. The write is atomic.
func MarkRunning(statusPath, stampPath, message string) error {
	return write(statusPath, models.RunStatus{
		Status:      models.StatusRunning,
		Message:     message,
		LastAttempt: time.Now().Unix(),
		LastSuccess: ReadStamp(stampPath),
	})
}

// ReadStamp returns the epoch stored in the stamp file, or 0 when the file is
// missing, unreadable or not an integer.
func ReadStamp(path string) int64 {
	data, err := os.ReadFile(path)
	if err != nil {
		return 0
	}
	n, err := strconv.ParseInt(strings.TrimSpace(string(data)), 10, 64)
	if err != nil {
		return 0
	}
	return n
}

func parseRecord(data []byte) (*record, error) {
	var rec record
	if err := json.Unmarshal(data, &rec); err != nil {
		return nil, fmt.Errorf("failed to parse status record: %w", err)
	}
	return &rec, nil
}

// epoch accepts integral JSON numbers, and floats the way the sync script's
// int() conversion would.
func epoch(n json.Number) (int64, error) {
	if i, err := n.Int64(); err == nil {
		return i, nil
	}
	f, err := n.Float64()
	if err != nil {
		return 0, fmt.Errorf("invalid timestamp %q: %w", n, err)
	}
	return int64(f), nil
}

func corrupt(st models.RunStatus, err error) models.RunStatus {
	return models.RunStatus{
		Status:      models.StatusCorrupt,
		Message:     fmt.Sprintf("status file unreadable: %v", err),
		LastSuccess: st.LastSuccess,
	}
}

func write(path string, st models.RunStatus) error {
	data, err := json.Marshal(st)
	if err != nil {
		return fmt.Errorf("failed to marshal status: %w", err)
	}

	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("failed to create directory %s: %w", dir, err)
	}

	tmp, err := os.CreateTemp(dir, ".status-*.tmp")
	if err != nil {
		return fmt.Errorf("failed to create temp file: %w", err)
	}
	defer os.Remove(tmp.Name())

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return fmt.Errorf("failed to write status: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("failed to write status: %w", err)
	}
	if err := os.Rename(tmp.Name(), path); err != nil {
		return fmt.Errorf("failed to replace %s: %w", path, err)
	}
	return nil
}
