package config

import (
	"errors"
	"os"
	"syscall"

	"github.com/mail-sync/mail-tray/internal/models"
)

// LoadAgentInfo loads the running agent's info from agent.yaml.
// Returns nil if the file doesn't exist.
func LoadAgentInfo() (*models.AgentInfo, error) {
	path, err := AgentFile()
	if err != nil {
		return nil, err
	}

	if !FileExists(path) {
		return nil, nil
	}

	var info models.AgentInfo
	if err := LoadYAML(path, &info); err != nil {
		return nil, err
	}
	return &info, nil
}

// SaveAgentInfo writes agent.yaml.
func SaveAgentInfo(info *models.AgentInfo) error {
	if err := EnsureStateDir(); err != nil {
		return err
	}

	path, err := AgentFile()
	if err != nil {
		return err
	}
	return SaveYAML(path, info)
}

// RemoveAgentInfo removes the agent.yaml file.
func RemoveAgentInfo() error {
	path, err := AgentFile()
	if err != nil {
		return err
	}

	if !FileExists(path) {
		return nil
	}
	return os.Remove(path)
}

// IsAgentRunning checks whether another tray agent is alive.
// A stale agent.yaml left by a crashed process is removed.
func IsAgentRunning() (bool, *models.AgentInfo, error) {
	info, err := LoadAgentInfo()
	if err != nil {
		return false, nil, err
	}
	if info == nil {
		return false, nil, nil
	}
	if info.PID == os.Getpid() {
		return false, info, nil
	}

	process, err := os.FindProcess(info.PID)
	if err != nil {
		return false, info, nil
	}

	// Signal 0 probes for existence without touching the process. EPERM
	// means it exists but belongs to someone else.
	if err := process.Signal(syscall.Signal(0)); err != nil && !errors.Is(err, syscall.EPERM) {
		_ = RemoveAgentInfo()
		return false, info, nil
	}

	return true, info, nil
}
