// Package replay runs scripted editing sessions against the autosave
// pipeline without a terminal.
//
// A script is YAML:
//
//	settle_ms: 6000
//	steps:
//	  - at_ms: 0
//	    text: a
//	  - at_ms: 100
//	    text: ab
//	  - at_ms: 250
//	    choice: option2
//	    toggle: true
//
// Each step sets one or more fields at its offset through the same setters
// the TUI uses, so the edits go through the debouncer exactly like typing.
// After the last step the run continues for settle_ms and then shuts the
// pipeline down. Run returns a Timeline of every pipeline activity, which
// Write prints as aligned columns.
//
// Offsets are measured on the supplied clock. `quill replay --fast` passes a
// clock.Scaled clock to both the pipeline and the simulator so a long
// script finishes in a fraction of its nominal time.
package replay
