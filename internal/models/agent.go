package models

import "time"

// AgentInfo describes the running tray agent.
// This corresponds to ~/.cache/mail-tray/agent.yaml.
type AgentInfo struct {
	Version   int       `yaml:"version"`
	Host      string    `yaml:"host"`
	PID       int       `yaml:"pid"`
	StartedAt time.Time `yaml:"started_at"`
}

// NewAgentInfo creates agent info for the current process.
func NewAgentInfo(host string, pid int) *AgentInfo {
	return &AgentInfo{
		Version:   1,
		Host:      host,
		PID:       pid,
		StartedAt: time.Now().UTC(),
	}
}
