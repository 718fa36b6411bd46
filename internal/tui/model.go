package tui

import (
	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/mail-sync/mail-tray/internal/daemon/tray"
	"github.com/mail-sync/mail-tray/internal/icon"
)

// Model is the root Bubbletea model for the terminal host.
type Model struct {
	spec  icon.Spec
	title string
	menu  tray.Menu

	// Index into menu.Actions; always an enabled item when one exists.
	cursor int
	width  int

	flash   string
	spinner spinner.Model
	help    help.Model
}

// NewModel creates the initial model, before the first refresh arrives.
func NewModel() Model {
	return Model{
		title: "Mail sync: starting",
		spinner: spinner.New(
			spinner.WithSpinner(spinner.MiniDot),
			spinner.WithStyle(separatorStyle),
		),
		help: help.New(),
	}
}

func (m Model) Init() tea.Cmd {
	return m.spinner.Tick
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.help.Width = msg.Width
		return m, nil

	case iconMsg:
		m.spec = msg.spec
		return m, nil

	case titleMsg:
		m.title = string(msg)
		return m, nil

	case menuMsg:
		m.menu = msg.menu
		m.cursor = m.clampCursor(m.cursor)
		return m, nil

	case flashMsg:
		m.flash = string(msg)
		return m, nil

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd

	case tea.KeyMsg:
		return m.handleKey(msg)
	}
	return m, nil
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, keys.Quit):
		return m, tea.Quit
	case key.Matches(msg, keys.Help):
		m.help.ShowAll = !m.help.ShowAll
	case key.Matches(msg, keys.Up):
		m.cursor = m.step(-1)
	case key.Matches(msg, keys.Down):
		m.cursor = m.step(1)
	case key.Matches(msg, keys.Select):
		if m.cursor < len(m.menu.Actions) {
			return m, m.run(m.menu.Actions[m.cursor])
		}
	case key.Matches(msg, keys.Fetch):
		return m, m.runLabel(tray.LabelFetch)
	case key.Matches(msg, keys.Restart):
		return m, m.runLabel(tray.LabelRestart)
	case key.Matches(msg, keys.Logs):
		return m, m.runLabel(tray.LabelLogs)
	case key.Matches(msg, keys.Status):
		return m, m.runLabel(tray.LabelStatus)
	}
	return m, nil
}

// run invokes item off the event loop. Actions may call back into the host,
// which sends to this program and would block inside Update.
func (m Model) run(item tray.MenuItem) tea.Cmd {
	if item.Disabled || item.Action == nil {
		return nil
	}
	return func() tea.Msg {
		item.Action()
		return flashMsg(item.Label + ": requested")
	}
}

func (m Model) runLabel(label string) tea.Cmd {
	for _, item := range m.menu.Actions {
		if item.Label == label {
			return m.run(item)
		}
	}
	return nil
}

func (m Model) enabled(i int) bool {
	return i >= 0 && i < len(m.menu.Actions) && !m.menu.Actions[i].Disabled
}

// step moves the cursor to the next enabled item in dir, staying put at the ends.
func (m Model) step(dir int) int {
	for i := m.cursor + dir; i >= 0 && i < len(m.menu.Actions); i += dir {
		if m.enabled(i) {
			return i
		}
	}
	return m.cursor
}

func (m Model) clampCursor(i int) int {
	if m.enabled(i) {
		return i
	}
	for j := range m.menu.Actions {
		if m.enabled(j) {
			return j
		}
	}
	return 0
}
