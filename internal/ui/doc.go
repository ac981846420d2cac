// Package ui provides the terminal form for quill, built on Bubble Tea.
//
// # Architecture Overview
//
// The Model renders a three-field form (free text, single choice, checkbox)
// and writes every user edit straight into form.Form. It never talks to the
// autosave pipeline directly: the pipeline subscribes to the form, and the
// UI learns about saves by polling state.Store on a short tick.
//
// # Package Structure
//
//   - app.go: Model, Update/View, key routing and the Run function
//   - fields.go: field widgets, focus handling and edit forwarding
//   - header.go: status bar with phase badge and counters
//   - logs.go: activity log overlay fed by internal/logtail
//   - help.go: keyboard shortcut overlay
//   - keys.go: key bindings (also drive the bubbles/help footer)
//   - theme.go, style_helpers.go: lipgloss themes and background helpers
//
// # Refresh Model
//
// Every tick (100ms by default) the model:
//
//  1. Reloads form values; if form.Revision changed, a save result was
//     merged into the form and the text widget is reset to the new value
//  2. Fetches a state.Snapshot for the phase badge, error line and
//     per-field "✓ saved" marks
//  3. Re-reads the log tail when the activity log is open and following
//
// Reloading the text widget does not go through the form setters, so a
// merged save result never produces a new change event.
//
// # Key Handling
//
// While the text field has focus every key except ctrl+c, tab, shift+tab,
// the arrow keys used for focus, and esc is handed to the text widget. The
// letter shortcuts (q, ?, T, L) only apply on the choice and toggle fields
// or inside overlays.
//
// # Themes
//
// Nightfox (default), Kanagawa and Slate. T cycles them and the choice is
// written through prefs.Store so it survives restarts.
package ui
