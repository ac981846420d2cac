// Package app provides the orchestration layer for quill.
//
// # Overview
//
// This package wires together configuration, logging, the save backend, the
// autosave pipeline, and the UI. It serves as the composition root where all
// dependencies are initialized and connected.
//
// # Architecture
//
// Run follows a simple initialization pattern:
//
//  1. Load configuration from ~/.config/quill/config.toml
//  2. Open the zap JSON log at <log_dir>/quill.log
//  3. Pick the backend: HTTP client when endpoint is set, simulator otherwise
//  4. Mount a form.Form and a shared state.Store
//  5. Start the autosave pipeline goroutine
//  6. Start the TUI and block until the user exits or the context cancels
//  7. Shut the pipeline down so late save results are discarded
//
// # Data Flow
//
//	┌──────────────┐
//	│   Run()      │ Initialize everything
//	└──────┬───────┘
//	       │
//	       ├─────> config.Load()      Read quill config
//	       ├─────> logging.New()      Open log file
//	       ├─────> newSaver()         Simulator or HTTP client
//	       ├─────> autosave.New()     Subscribe to the form
//	       ├─────> pipeline.Run()     Background event loop
//	       └─────> ui.Run()           Start TUI (blocks)
//
//	Edit path:
//	┌──────────────────────────────────────────────┐
//	│ ui keypress -> form.Set* -> debouncer        │
//	│   -> pipeline loop -> saver goroutine        │
//	│   -> pipeline loop -> store.Update()         │
//	│      └─> UI reads store.Snapshot() on tick   │
//	└──────────────────────────────────────────────┘
//
// # Replay
//
// Replay runs the same wiring without a terminal: it loads a YAML script,
// plays it through internal/replay and prints the timeline. With Fast set,
// pipeline and simulator share a clock.Scaled clock running 50x real time.
//
// # Error Handling
//
// Fatal errors (returned from Run and Replay):
//   - Configuration file invalid or unreadable
//   - Log file cannot be opened
//   - Backend endpoint is not a valid URL
//   - Replay script missing or invalid
//
// Save failures are never fatal; the pipeline turns them into the error line
// shown by the UI.
package app
