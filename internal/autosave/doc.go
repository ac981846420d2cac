// Package autosave turns a form's change stream into serialized save calls.
//
// # Overview
//
// Every user edit on a form.Form produces a snapshot of all field values.
// Typing produces those snapshots far faster than a backend should be asked
// to store them, so the pipeline first waits for the user to pause, then
// makes sure only one save is ever outstanding, and finally feeds each
// outcome back into the form and the observable state.Store.
//
// # Data Flow
//
//	form.Form ──Subscribe──> Debouncer ──snapshotMsg──┐
//	                                                   v
//	                    ┌────────────── Pipeline.Run loop ──────────────┐
//	                    │ Transition(State, Event) -> (State, []Effect) │
//	                    └──┬──────────────┬───────────────┬─────────────┘
//	                       │ Submit       │ Reconcile     │ Acknowledge
//	                       v              v               v
//	               backend.Saver   form.Reconcile    ack timer (3s)
//	                       │                              │
//	                       └──outcomeMsg──> loop <──ackExpiredMsg
//
// # State Machine
//
// The coordinator has three phases:
//
//   - Idle: nothing in flight. A debounced snapshot is submitted at once.
//   - Saving: one save in flight, nothing buffered.
//   - SavingWithPending: one save in flight and at least one newer snapshot
//     waiting behind it.
//
// When the in-flight save finishes, its outcome is processed first (error
// message, or reconcile plus acknowledgment) and then only the newest
// buffered snapshot is submitted. Intermediate snapshots are counted as
// coalesced and never reach the backend. A failure never stops the buffer
// from draining.
//
// Transition is a pure function so the rules can be tested without timers or
// goroutines. Pipeline executes the effects it returns.
//
// # Concurrency
//
// All coordinator state lives on the goroutine running Pipeline.Run. Debounce
// timers, save goroutines and acknowledgment timers only post messages to the
// loop's inbox. Each message that can arrive late carries the generation it
// was created in; Shutdown bumps the generation, so anything still in
// transit is counted by Dropped and otherwise ignored.
//
// # Error Messages
//
// MessageFor maps the six known backend.StatusCode values to their display
// text and everything else to "Unknown error". The latest message replaces
// the previous one and is cleared by the next success.
//
// # Usage Example
//
//	p, err := autosave.New(autosave.Options{
//		Form:   f,
//		Saver:  backend.NewSimulator(backend.SimulatorOptions{}),
//		Store:  store,
//		Logger: logger,
//	})
//	if err != nil {
//		return err
//	}
//	go p.Run(ctx)
//	defer p.Shutdown()
package autosave
