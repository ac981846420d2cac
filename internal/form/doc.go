// Package form holds the three-field form that feeds the autosave pipeline.
//
// A Form stores the current Snapshot and notifies subscribers whenever a
// user-driven setter changes a value. Setters that leave a value unchanged
// do not notify. Reconcile applies a saved result through a three-way merge
// and never notifies, so results written back by the pipeline cannot start
// another save; it bumps Revision instead so views know to reload.
//
// Snapshot is a comparable value type. Its JSON, TOML and YAML keys are
// textInput, radioInput and checkboxInput.
package form
