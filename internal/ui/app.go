package ui

import (
	"context"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/afero"

	"github.com/five82/quill/internal/form"
	"github.com/five82/quill/internal/prefs"
	"github.com/five82/quill/internal/state"
)

// Options configures the UI.
type Options struct {
	Context   context.Context
	Form      *form.Form
	Store     *state.Store
	Prefs     *prefs.Store // nil disables theme persistence
	LogPath   string       // empty hides the activity log
	LogFS     afero.Fs     // nil uses the OS filesystem
	PollTick  time.Duration
	ThemeName string
}

// Model is the root application state for Bubble Tea.
type Model struct {
	// Configuration
	ctx      context.Context
	form     *form.Form
	store    *state.Store
	prefs    *prefs.Store
	logPath  string
	logFS    afero.Fs
	pollTick time.Duration
	keys     keyMap
	help     help.Model

	// UI state
	theme  Theme
	width  int
	height int
	ready  bool

	// Form state
	focus    form.Field
	text     textinput.Model
	values   form.Snapshot
	revision uint64

	// Pipeline state
	snapshot    state.Snapshot
	lastUpdated time.Time

	// Overlays
	showHelp    bool
	showLogs    bool
	logState    logState
	logViewport viewport.Model
}

// New creates a new Bubble Tea model.
func New(opts Options) Model {
	ctx := opts.Context
	if ctx == nil {
		ctx = context.Background()
	}

	pollTick := opts.PollTick
	if pollTick <= 0 {
		pollTick = DefaultUIInterval
	}

	themeName := opts.ThemeName
	if themeName == "" {
		themeName = DefaultThemeName
	}

	logFS := opts.LogFS
	if logFS == nil {
		logFS = afero.NewOsFs()
	}

	values := opts.Form.Values()
	ti := textinput.New()
	ti.Placeholder = "Type something..."
	ti.CharLimit = TextCharLimit
	ti.Prompt = ""
	ti.SetValue(values.Text)
	ti.Focus()

	return Model{
		ctx:      ctx,
		form:     opts.Form,
		store:    opts.Store,
		prefs:    opts.Prefs,
		logPath:  opts.LogPath,
		logFS:    logFS,
		pollTick: pollTick,
		keys:     DefaultKeyMap(),
		help:     help.New(),
		theme:    GetTheme(themeName),
		focus:    form.FieldText,
		text:     ti,
		values:   values,
		revision: opts.Form.Revision(),
		logState: logState{follow: true},
	}
}

// Init implements tea.Model.
func (m Model) Init() tea.Cmd {
	cmds := []tea.Cmd{
		textinput.Blink,
		tickCmd(m.pollTick),
	}
	if m.store != nil {
		cmds = append(cmds, fetchSnapshotCmd(m.store))
	}
	return tea.Batch(cmds...)
}

// Update implements tea.Model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
		if !m.ready {
			m.initLogViewport()
		}
		m.ready = true
		m.text.Width = m.fieldWidth()
		m.resizeLogViewport()
		return m, nil

	case tickMsg:
		return m.handleTick()

	case snapshotMsg:
		m.snapshot = state.Snapshot(msg)
		m.lastUpdated = time.Now()
		return m, nil

	case logLinesMsg:
		m.handleLogLines(msg)
		return m, nil

	case logErrorMsg:
		m.logState.err = msg.err
		return m, nil
	}

	// Cursor blink and other textinput internals.
	var cmd tea.Cmd
	m.text, cmd = m.text.Update(msg)
	return m, cmd
}

// View implements tea.Model.
func (m Model) View() string {
	if !m.ready {
		return "Loading..."
	}
	if m.showHelp {
		return m.renderHelp()
	}
	if m.showLogs {
		return m.renderLogs()
	}
	return m.renderMain()
}

// handleKey routes keyboard input. While the text field has focus only
// navigation keys and ctrl+c bypass it.
func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if msg.String() == "ctrl+c" {
		return m, tea.Quit
	}

	if m.showHelp {
		// Any key closes help
		m.showHelp = false
		return m, nil
	}

	if m.showLogs {
		return m.handleLogsKey(msg)
	}

	switch {
	case matches(msg, m.keys.NextField):
		return m, m.setFocus(nextField(m.focus, 1))
	case matches(msg, m.keys.PrevField):
		return m, m.setFocus(nextField(m.focus, -1))
	}

	if m.focus == form.FieldText {
		if msg.Type == tea.KeyEsc {
			return m, nil
		}
		return m.editText(msg)
	}

	switch {
	case matches(msg, m.keys.Quit):
		return m, tea.Quit

	case matches(msg, m.keys.Help):
		m.showHelp = true
		return m, nil

	case matches(msg, m.keys.CycleTheme):
		m.theme = GetTheme(NextTheme(m.theme.Name))
		if m.prefs != nil {
			_ = m.prefs.Save(prefs.Prefs{Theme: m.theme.Name})
		}
		return m, nil

	case matches(msg, m.keys.ViewLogs):
		if m.logPath == "" {
			return m, nil
		}
		m.showLogs = true
		return m, m.refreshLogs()
	}

	switch m.focus {
	case form.FieldChoice:
		switch {
		case matches(msg, m.keys.PrevChoice):
			m.setChoice(cycleChoice(m.values.Choice, -1))
		case matches(msg, m.keys.NextChoice):
			m.setChoice(cycleChoice(m.values.Choice, 1))
		}
	case form.FieldToggle:
		if matches(msg, m.keys.Toggle) {
			m.form.SetToggle(!m.values.Toggle)
			m.values = m.form.Values()
		}
	}
	return m, nil
}

// handleTick processes the polling tick.
func (m Model) handleTick() (tea.Model, tea.Cmd) {
	var cmds []tea.Cmd

	m.syncForm()

	if m.store != nil {
		cmds = append(cmds, fetchSnapshotCmd(m.store))
	}

	if m.showLogs && m.logState.follow {
		if cmd := m.refreshLogs(); cmd != nil {
			cmds = append(cmds, cmd)
		}
	}

	cmds = append(cmds, tickCmd(m.pollTick))
	return m, tea.Batch(cmds...)
}

// syncForm reloads widget values after the form was patched by a save.
func (m *Model) syncForm() {
	m.values = m.form.Values()
	rev := m.form.Revision()
	if rev == m.revision {
		return
	}
	m.revision = rev
	if m.text.Value() != m.values.Text {
		m.text.SetValue(m.values.Text)
	}
}

// Messages

type tickMsg time.Time

type snapshotMsg state.Snapshot

// Commands

func tickCmd(d time.Duration) tea.Cmd {
	return tea.Tick(d, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

func fetchSnapshotCmd(store *state.Store) tea.Cmd {
	return func() tea.Msg {
		return snapshotMsg(store.Snapshot())
	}
}

// Run starts the Bubble Tea program and blocks until the user quits or the
// context is cancelled.
func Run(opts Options) error {
	m := New(opts)
	p := tea.NewProgram(m, tea.WithAltScreen(), tea.WithContext(m.ctx))
	_, err := p.Run()
	if err != nil && m.ctx.Err() != nil {
		return nil
	}
	return err
}
