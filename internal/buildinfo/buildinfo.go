// Package buildinfo holds version information injected at build time via ldflags.
package buildinfo

var (
	Version    = "0.1.10"
	CommitHash = "unknown"
	BuildDate  = "unknown"
)
