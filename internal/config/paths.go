// Package config handles configuration resolution, YAML helpers and path management.
package config

import (
	"os"
	"path/filepath"
	"strings"
)

const (
	// AppName names the agent's own config and state directories.
	AppName = "mail-tray"

	// ConfigFileName is the optional config file inside ~/.config/mail-tray/.
	ConfigFileName = "config.yaml"

	// AgentFileName records the running agent's PID.
	AgentFileName = "agent.yaml"
)

// Defaults shared with the mail sync service.
const (
	DefaultStatusFile = "~/.cache/mail-sync/status.json"
	DefaultStampFile  = "~/.cache/mail-sync/last"
	DefaultMaildir    = "~/Mail"
	DefaultService    = "mail-sync.service"
)

// ExpandHome replaces a leading "~" with the user's home directory.
func ExpandHome(path string) string {
	if path != "~" && !strings.HasPrefix(path, "~/") {
		return path
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return path
	}
	return filepath.Join(home, strings.TrimPrefix(path, "~"))
}

// StateDir returns the agent's state directory (~/.cache/mail-tray/).
func StateDir() (string, error) {
	dir, err := os.UserCacheDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, AppName), nil
}

// AgentFile returns the path to the agent.yaml file.
func AgentFile() (string, error) {
	dir, err := StateDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, AgentFileName), nil
}

// DefaultConfigFile returns ~/.config/mail-tray/config.yaml.
func DefaultConfigFile() (string, error) {
	dir, err := os.UserConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, AppName, ConfigFileName), nil
}

// EnsureStateDir creates the state directory if it doesn't exist.
func EnsureStateDir() error {
	dir, err := StateDir()
	if err != nil {
		return err
	}
	return os.MkdirAll(dir, 0o755)
}
