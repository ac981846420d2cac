package ui

import (
	"strings"

	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/five82/quill/internal/logtail"
)

// logState holds the activity log overlay state.
type logState struct {
	entries []logtail.Entry
	raw     []string // lines that were not JSON
	follow  bool
	err     error
}

type logLinesMsg struct {
	entries []logtail.Entry
	raw     []string
}

type logErrorMsg struct {
	err error
}

func (m *Model) initLogViewport() {
	m.logViewport = viewport.New(m.width-4, m.height-4)
}

func (m *Model) resizeLogViewport() {
	w, h := m.width-4, m.height-4
	if w < 1 {
		w = 1
	}
	if h < 1 {
		h = 1
	}
	m.logViewport.Width = w
	m.logViewport.Height = h
	m.updateLogViewport()
}

// refreshLogs reads the tail of the log file off the update loop.
func (m Model) refreshLogs() tea.Cmd {
	if m.logPath == "" {
		return nil
	}
	fsys, path := m.logFS, m.logPath
	return func() tea.Msg {
		lines, err := logtail.Read(fsys, path, LogTailLines)
		if err != nil {
			return logErrorMsg{err: err}
		}
		var msg logLinesMsg
		for _, line := range lines {
			if e, ok := logtail.Parse(line); ok {
				msg.entries = append(msg.entries, e)
			} else if strings.TrimSpace(line) != "" {
				msg.raw = append(msg.raw, line)
			}
		}
		return msg
	}
}

func (m *Model) handleLogLines(msg logLinesMsg) {
	m.logState.entries = msg.entries
	m.logState.raw = msg.raw
	m.logState.err = nil
	m.updateLogViewport()
}

func (m *Model) updateLogViewport() {
	styles := m.theme.Styles()
	lines := make([]string, 0, len(m.logState.entries)+len(m.logState.raw))
	for _, e := range m.logState.entries {
		lines = append(lines, levelStyle(styles, e.Level).Render(truncate(e.Summary(), m.logViewport.Width)))
	}
	for _, raw := range m.logState.raw {
		lines = append(lines, styles.FaintText.Render(truncate(raw, m.logViewport.Width)))
	}
	if len(lines) == 0 {
		lines = append(lines, styles.MutedText.Render("No activity logged yet."))
	}
	m.logViewport.SetContent(strings.Join(lines, "\n"))
	if m.logState.follow {
		m.logViewport.GotoBottom()
	}
}

func levelStyle(styles Styles, level string) lipgloss.Style {
	switch level {
	case "ERROR", "DPANIC", "PANIC", "FATAL":
		return styles.DangerText
	case "WARN":
		return styles.WarningText
	case "DEBUG":
		return styles.FaintText
	default:
		return styles.Text
	}
}

func (m Model) handleLogsKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case matches(msg, m.keys.Escape), matches(msg, m.keys.ViewLogs):
		m.showLogs = false
		return m, nil
	case matches(msg, m.keys.Quit):
		return m, tea.Quit
	case matches(msg, m.keys.Help):
		m.showHelp = true
		return m, nil
	case matches(msg, m.keys.ToggleFollow):
		m.logState.follow = !m.logState.follow
		if m.logState.follow {
			m.logViewport.GotoBottom()
			return m, m.refreshLogs()
		}
		return m, nil
	case matches(msg, m.keys.Top):
		m.logState.follow = false
		m.logViewport.GotoTop()
		return m, nil
	case matches(msg, m.keys.Bottom):
		m.logViewport.GotoBottom()
		return m, nil
	case matches(msg, m.keys.Up):
		m.logState.follow = false
		m.logViewport.ScrollUp(1)
		return m, nil
	case matches(msg, m.keys.Down):
		m.logViewport.ScrollDown(1)
		return m, nil
	}

	var cmd tea.Cmd
	m.logViewport, cmd = m.logViewport.Update(msg)
	return m, cmd
}

// renderLogs renders the activity log overlay.
func (m Model) renderLogs() string {
	styles := m.theme.Styles()

	title := styles.Text.Bold(true).Render("Activity log")
	follow := styles.FaintText.Render("paused")
	if m.logState.follow {
		follow = styles.SuccessText.Render("following")
	}
	header := title + "  " + follow + "  " + styles.FaintText.Render(truncateMiddle(m.logPath, 60))
	if m.logState.err != nil {
		header += "  " + styles.DangerText.Render(m.logState.err.Error())
	}

	box := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color(m.theme.Border)).
		Render(m.logViewport.View())

	return lipgloss.JoinVertical(lipgloss.Left, header, box)
}
