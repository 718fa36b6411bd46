// Package inbox counts unread and total messages per maildir inbox, through
// the mu index when available and by reading maildir flags otherwise.
package inbox

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/mail-sync/mail-tray/internal/models"
)

// Flag separators tried in order. The second is used on filesystems that
// forbid ':' in names.
var flagSeparators = []string{":2,", ";2,"}

// SeenFlag marks a message as read.
const SeenFlag = 'S'

// Flags returns the flag section of a maildir filename, or "" when the name
// carries no info section.
func Flags(name string) string {
	for _, sep := range flagSeparators {
		if _, flags, ok := strings.Cut(name, sep); ok {
			return flags
		}
	}
	return ""
}

// IsSeen reports whether the filename carries the seen flag.
func IsSeen(name string) bool {
	return strings.ContainsRune(Flags(name), SeenFlag)
}

// CountMaildir counts messages of one maildir folder by walking its new/ and
// cur/ directories. Everything in new/ is unread; cur/ entries are unread
// unless flagged seen. Missing subdirectories count as empty.
func CountMaildir(inboxDir string) models.InboxCount {
	var count models.InboxCount

	fresh := len(regularFiles(filepath.Join(inboxDir, "new")))
	count.Unread += fresh
	count.Total += fresh

	for _, name := range regularFiles(filepath.Join(inboxDir, "cur")) {
		count.Total++
		if !IsSeen(name) {
			count.Unread++
		}
	}

	return count
}

// regularFiles lists names of regular files (following symlinks) directly in dir.
func regularFiles(dir string) []string {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil
	}

	var names []string
	for _, e := range entries {
		if e.Type().IsRegular() || (e.Type()&os.ModeSymlink != 0 && isRegular(filepath.Join(dir, e.Name()))) {
			names = append(names, e.Name())
		}
	}
	return names
}

func isRegular(path string) bool {
	info, err := os.Stat(path)
	return err == nil && info.Mode().IsRegular()
}

func isDir(path string) bool {
	info, err := os.Stat(path)
	return err == nil && info.IsDir()
}
