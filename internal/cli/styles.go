package cli

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/mail-sync/mail-tray/internal/icon"
)

// Adaptive colors matching the TUI palette.
var (
	colorWhite  = lipgloss.AdaptiveColor{Light: "0", Dark: "15"}
	colorDim    = lipgloss.AdaptiveColor{Light: "242", Dark: "240"}
	colorGreen  = lipgloss.AdaptiveColor{Light: "28", Dark: "40"}
	colorRed    = lipgloss.AdaptiveColor{Light: "160", Dark: "196"}
	colorYellow = lipgloss.AdaptiveColor{Light: "136", Dark: "220"}
	colorOrange = lipgloss.AdaptiveColor{Light: "166", Dark: "208"}
	colorCyan   = lipgloss.AdaptiveColor{Light: "30", Dark: "45"}
	colorBlue   = lipgloss.AdaptiveColor{Light: "25", Dark: "75"}
)

// Semantic styles for CLI output.
var (
	styleBrand   = lipgloss.NewStyle().Bold(true).Foreground(colorCyan)
	styleVersion = lipgloss.NewStyle().Foreground(colorGreen)
	styleLabel   = lipgloss.NewStyle().Foreground(colorDim)
	styleValue   = lipgloss.NewStyle().Foreground(colorWhite)
	styleWarning = lipgloss.NewStyle().Bold(true).Foreground(colorYellow)
	styleHint    = lipgloss.NewStyle().Foreground(colorDim)
	styleUnread  = lipgloss.NewStyle().Bold(true).Foreground(colorRed)
)

// Health badge styles, one per icon kind.
var kindStyles = map[icon.Kind]lipgloss.Style{
	icon.KindNormal:            lipgloss.NewStyle().Bold(true).Foreground(colorGreen),
	icon.KindMissingCredential: lipgloss.NewStyle().Bold(true).Foreground(colorOrange),
	icon.KindFailed:            lipgloss.NewStyle().Bold(true).Foreground(colorRed),
	icon.KindStale:             lipgloss.NewStyle().Bold(true).Foreground(colorBlue),
}
