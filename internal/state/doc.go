// Package state holds the observable view of the autosave pipeline.
//
// # Overview
//
// The pipeline loop is the only writer. After every state transition it
// publishes a complete Snapshot; the UI reads Snapshot() on its own tick.
// The two sides never share mutable data:
//
//	Pipeline loop:                   UI (Bubble Tea):
//	┌──────────────────┐            ┌──────────────────┐
//	│ Transition()     │            │ tickMsg          │
//	│      ↓           │            │      ↓           │
//	│ store.Update()   │───────────→│ store.Snapshot() │
//	└──────────────────┘  (RWMutex) └──────────────────┘
//
// # Contents
//
//   - Phase: "idle", "saving" or "saving-with-pending"
//   - ErrorMessage/HasError: the classified message of the latest failure,
//     cleared by any success
//   - Saved: fields whose transient "saved" mark is visible
//   - Stats: counters for submissions, outcomes and coalesced snapshots
//
// Field values are not stored here; the form.Form owns them and exposes a
// revision counter for programmatic updates.
//
// # Copying
//
// Update and Snapshot both clone the Saved slice, so callers may keep or
// modify what they pass in and get back. The zero Store is ready to use.
package state
