package tui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"

	"github.com/mail-sync/mail-tray/internal/icon"
)

const defaultWidth = 48

func (m Model) View() string {
	width := m.width
	if width <= 0 {
		width = defaultWidth
	}

	var b strings.Builder
	b.WriteString(m.renderHeader(width))
	b.WriteString("\n\n")

	for _, line := range m.menu.Lines {
		b.WriteString(fit(lineStyle.Render(line.Label), width))
		b.WriteString("\n")
	}
	if len(m.menu.Lines) > 0 {
		b.WriteString(separatorStyle.Render(strings.Repeat("─", min(width, defaultWidth))))
		b.WriteString("\n")
	}

	for i, item := range m.menu.Actions {
		var s string
		switch {
		case item.Disabled:
			s = disabledItemStyle.Render(item.Label)
		case i == m.cursor:
			s = selectedItemStyle.Render("› " + item.Label)
		default:
			s = itemStyle.Render("  " + item.Label)
		}
		b.WriteString(fit(s, width))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(renderStatusBar(m.flash, width))
	b.WriteString("\n")
	b.WriteString(m.help.View(keys))
	return b.String()
}

func (m Model) renderHeader(width int) string {
	color, ok := kindColors[m.spec.Kind]
	if !ok {
		color = colorDim
	}
	dot := lipgloss.NewStyle().Foreground(color).Render("●")

	var overlay string
	switch m.spec.Overlay {
	case icon.OverlaySpinner:
		overlay = " " + m.spinner.View()
	case icon.OverlayUnread:
		overlay = " " + badgeStyle.Render("unread")
	}

	return fit(headerStyle.Render(dot+" "+m.title)+overlay, width)
}

func renderStatusBar(flash string, width int) string {
	return statusBarStyle.
		Width(width).
		Render(fit(" "+flash, width))
}

// fit truncates s to width cells, keeping ANSI styling intact.
func fit(s string, width int) string {
	return ansi.Truncate(s, width, "…")
}
