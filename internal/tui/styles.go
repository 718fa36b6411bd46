package tui

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/mail-sync/mail-tray/internal/icon"
)

// Colors using AdaptiveColor for light/dark terminal support.
var (
	colorWhite  = lipgloss.AdaptiveColor{Light: "0", Dark: "15"}
	colorDim    = lipgloss.AdaptiveColor{Light: "242", Dark: "240"}
	colorGreen  = lipgloss.AdaptiveColor{Light: "28", Dark: "40"}
	colorRed    = lipgloss.AdaptiveColor{Light: "160", Dark: "196"}
	colorOrange = lipgloss.AdaptiveColor{Light: "166", Dark: "208"}
	colorBlue   = lipgloss.AdaptiveColor{Light: "25", Dark: "75"}
)

// kindColors mirror the tray icon palette.
var kindColors = map[icon.Kind]lipgloss.AdaptiveColor{
	icon.KindNormal:            colorGreen,
	icon.KindMissingCredential: colorOrange,
	icon.KindFailed:            colorRed,
	icon.KindStale:             colorBlue,
}

// Layout styles.
var (
	headerStyle = lipgloss.NewStyle().
			Bold(true).
			Padding(0, 1)

	statusBarStyle = lipgloss.NewStyle().
			Foreground(colorWhite).
			Background(lipgloss.AdaptiveColor{Light: "235", Dark: "236"})

	lineStyle = lipgloss.NewStyle().
			Foreground(colorDim).
			PaddingLeft(2)

	separatorStyle = lipgloss.NewStyle().
			Foreground(colorDim)
)

// Menu styles.
var (
	itemStyle = lipgloss.NewStyle().
			PaddingLeft(2)

	selectedItemStyle = lipgloss.NewStyle().
				PaddingLeft(2).
				Bold(true).
				Background(lipgloss.AdaptiveColor{Light: "254", Dark: "237"})

	disabledItemStyle = lipgloss.NewStyle().
				PaddingLeft(2).
				Foreground(colorDim)

	badgeStyle = lipgloss.NewStyle().
			Foreground(colorRed).
			Bold(true)
)
