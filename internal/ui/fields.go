package ui

import (
	"fmt"
	"slices"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/five82/quill/internal/form"
)

var fieldLabels = map[form.Field]string{
	form.FieldText:   "Text",
	form.FieldChoice: "Choice",
	form.FieldToggle: "Toggle",
}

func matches(msg tea.KeyMsg, b key.Binding) bool {
	return key.Matches(msg, b)
}

// nextField moves delta steps through form.Fields, wrapping around.
func nextField(current form.Field, delta int) form.Field {
	idx := slices.Index(form.Fields, current)
	if idx < 0 {
		return form.Fields[0]
	}
	n := len(form.Fields)
	return form.Fields[((idx+delta)%n+n)%n]
}

// cycleChoice moves delta steps through form.Choices, wrapping around.
func cycleChoice(current string, delta int) string {
	idx := slices.Index(form.Choices, current)
	if idx < 0 {
		idx = 0
	}
	n := len(form.Choices)
	return form.Choices[((idx+delta)%n+n)%n]
}

func (m *Model) setFocus(f form.Field) tea.Cmd {
	m.focus = f
	if f == form.FieldText {
		return m.text.Focus()
	}
	m.text.Blur()
	return nil
}

func (m *Model) setChoice(v string) {
	if err := m.form.SetChoice(v); err != nil {
		return
	}
	m.values = m.form.Values()
}

// editText feeds a key to the text widget and forwards any resulting change
// to the form, which is what makes typing reach the autosave pipeline.
func (m Model) editText(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd
	m.text, cmd = m.text.Update(msg)
	if v := m.text.Value(); v != m.values.Text {
		m.form.SetText(v)
		m.values = m.form.Values()
	}
	return m, cmd
}

func (m Model) fieldWidth() int {
	w := m.width - labelWidth - savedMarkWidth - 8
	if w < 10 {
		return 10
	}
	return w
}

// renderFields renders every field with its focus marker and saved mark.
func (m Model) renderFields(styles Styles) string {
	rows := make([]string, 0, len(form.Fields))
	for _, f := range form.Fields {
		rows = append(rows, m.renderField(f, styles))
	}
	return strings.Join(rows, "\n\n")
}

func (m Model) renderField(f form.Field, styles Styles) string {
	focused := f == m.focus

	marker := "  "
	labelStyle := styles.MutedText
	if focused {
		marker = styles.AccentText.Render("▸ ")
		labelStyle = styles.Text.Bold(true)
	}
	label := labelStyle.Render(padRight(fieldLabels[f], labelWidth))

	var control string
	switch f {
	case form.FieldText:
		box := lipgloss.NewStyle().
			Border(lipgloss.NormalBorder(), false, false, true, false).
			BorderForeground(lipgloss.Color(m.theme.BorderMuted))
		if focused {
			box = box.BorderForeground(lipgloss.Color(m.theme.BorderFocus))
		}
		control = box.Render(m.text.View())
	case form.FieldChoice:
		options := make([]string, 0, len(form.Choices))
		for _, c := range form.Choices {
			if c == m.values.Choice {
				options = append(options, styles.AccentText.Render("(•) "+c))
			} else {
				options = append(options, styles.FaintText.Render("( ) "+c))
			}
		}
		control = strings.Join(options, "  ")
		if focused {
			control = styles.Selected.Render(" ") + control
		}
	case form.FieldToggle:
		if m.values.Toggle {
			control = styles.AccentText.Render("[x] enabled")
		} else {
			control = styles.FaintText.Render("[ ] disabled")
		}
		if focused {
			control = styles.Selected.Render(" ") + control
		}
	}

	mark := ""
	if m.snapshot.IsSaved(f) {
		mark = styles.SuccessText.Render(savedMark)
	}

	return lipgloss.JoinHorizontal(lipgloss.Center, marker, label, control, "  ", mark)
}

// renderError renders the current save error, or nothing.
func (m Model) renderError(styles Styles) string {
	if !m.snapshot.HasError {
		return ""
	}
	return styles.DangerText.Render(fmt.Sprintf("✗ %s", m.snapshot.ErrorMessage))
}
