package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// renderMain renders the form screen.
func (m Model) renderMain() string {
	styles := m.theme.Styles()

	var b strings.Builder
	b.WriteString(m.renderHeader())
	b.WriteString("\n\n")
	b.WriteString(m.renderFields(styles))
	b.WriteString("\n\n")
	if errLine := m.renderError(styles); errLine != "" {
		b.WriteString("  " + errLine)
	}
	body := b.String()

	footer := styles.Footer.Width(m.width).Render(m.help.View(m.keys))

	used := lipgloss.Height(body) + lipgloss.Height(footer)
	if gap := m.height - used; gap > 0 {
		body += strings.Repeat("\n", gap)
	}
	return body + footer
}

// renderHeader renders the status bar: logo, phase badge, counters and the
// time of the last successful save.
func (m Model) renderHeader() string {
	styles := m.theme.Styles().WithBackground(m.theme.Surface)
	bg := NewBgStyle(m.theme.Surface)
	compact := m.width < LayoutCompactWidth
	sep := bg.Spaces(2)

	phase := m.snapshot.Phase
	if phase == "" {
		phase = "idle"
	}
	if m.snapshot.Closed {
		phase = "closed"
	}

	parts := []string{
		bg.Render("quill", styles.Logo),
		styles.PhaseStyle(phase).Render(phaseLabel(phase, m.snapshot.Pending)),
	}

	if !compact {
		st := m.snapshot.Stats
		parts = append(parts, bg.Join([]string{
			bg.Render(fmt.Sprintf("sent %d", st.Submitted), styles.MutedText),
			bg.Render(fmt.Sprintf("saved %d", st.Succeeded), styles.SuccessText),
			bg.Render(fmt.Sprintf("failed %d", st.Failed), failedStyle(styles, st.Failed)),
			bg.Render(fmt.Sprintf("merged %d", st.Coalesced), styles.FaintText),
		}, " · "))
	}

	if m.snapshot.HasSaved {
		parts = append(parts, bg.Render("last save "+m.snapshot.LastSavedAt.Format("15:04:05"), styles.FaintText))
	}

	parts = append(parts, bg.Render("T", styles.AccentText)+bg.Sep(":")+bg.Render(m.theme.Name, styles.FaintText))

	return styles.Header.Width(m.width).Render(bg.Join(parts, sep))
}

func phaseLabel(phase string, pending int) string {
	switch phase {
	case "saving":
		return "● saving"
	case "saving-with-pending":
		return fmt.Sprintf("● saving +%d queued", pending)
	case "closed":
		return "■ closed"
	default:
		return "○ idle"
	}
}

func failedStyle(styles Styles, failed int) lipgloss.Style {
	if failed > 0 {
		return styles.WarningText
	}
	return styles.MutedText
}
