package autosave

import (
	"slices"

	"github.com/five82/quill/internal/backend"
	"github.com/five82/quill/internal/form"
)

// Phase is the coordinator's position in the save cycle.
type Phase int

const (
	// Idle: nothing in flight, nothing buffered.
	Idle Phase = iota
	// Saving: one save in flight, nothing buffered behind it.
	Saving
	// SavingWithPending: one save in flight and at least one newer
	// snapshot buffered.
	SavingWithPending
)

func (p Phase) String() string {
	switch p {
	case Idle:
		return "idle"
	case Saving:
		return "saving"
	case SavingWithPending:
		return "saving-with-pending"
	default:
		return "unknown"
	}
}

// State is the coordinator state. It is a value; Transition returns a new
// one and never mutates its input.
type State struct {
	Phase Phase
	// Submitted is the snapshot of the in-flight save. Meaningless in Idle.
	Submitted form.Snapshot
	// Pending records every snapshot that arrived during the in-flight
	// save. Only the last one is ever submitted.
	Pending   []form.Snapshot
	LastError string
	HasError  bool
}

// InFlight reports whether a save is outstanding.
func (s State) InFlight() bool {
	return s.Phase != Idle
}

// Event is an input to Transition.
type Event interface {
	isEvent()
}

// SnapshotDebounced is a snapshot leaving the debouncer.
type SnapshotDebounced struct {
	Snapshot form.Snapshot
}

// SaveSucceeded is a successful outcome carrying what the backend stored.
type SaveSucceeded struct {
	Snapshot form.Snapshot
}

// SaveFailed is a failed outcome.
type SaveFailed struct {
	Code backend.StatusCode
}

func (SnapshotDebounced) isEvent() {}
func (SaveSucceeded) isEvent()     {}
func (SaveFailed) isEvent()        {}

// Effect is work the driver performs after a transition, in order.
type Effect interface {
	isEffect()
}

// Submit hands Snapshot to the remote save operation. Superseded counts
// buffered snapshots that were dropped in its favor.
type Submit struct {
	Snapshot   form.Snapshot
	Superseded int
}

// Reconcile merges Result into the form; Base is the snapshot that was
// submitted.
type Reconcile struct {
	Base   form.Snapshot
	Result form.Snapshot
}

// Acknowledge starts a transient "saved" indication.
type Acknowledge struct{}

func (Submit) isEffect()      {}
func (Reconcile) isEffect()   {}
func (Acknowledge) isEffect() {}

// Transition applies ev to s. Outcomes that arrive while Idle are ignored.
func Transition(s State, ev Event) (State, []Effect) {
	switch ev := ev.(type) {
	case SnapshotDebounced:
		return onSnapshot(s, ev.Snapshot)
	case SaveSucceeded, SaveFailed:
		if s.Phase == Idle {
			return s, nil
		}
		next, effects := onOutcome(s, ev)
		return drain(next, effects)
	default:
		return s, nil
	}
}

func onSnapshot(s State, snap form.Snapshot) (State, []Effect) {
	switch s.Phase {
	case Idle:
		s.Phase = Saving
		s.Submitted = snap
		s.Pending = nil
		return s, []Effect{Submit{Snapshot: snap}}
	default:
		s.Phase = SavingWithPending
		s.Pending = append(slices.Clip(s.Pending), snap)
		return s, nil
	}
}

func onOutcome(s State, ev Event) (State, []Effect) {
	switch ev := ev.(type) {
	case SaveSucceeded:
		s.LastError = ""
		s.HasError = false
		return s, []Effect{
			Reconcile{Base: s.Submitted, Result: ev.Snapshot},
			Acknowledge{},
		}
	case SaveFailed:
		s.LastError = MessageFor(ev.Code)
		s.HasError = true
		return s, nil
	}
	return s, nil
}

// drain ends the in-flight save and submits the newest buffered snapshot,
// if any.
func drain(s State, effects []Effect) (State, []Effect) {
	if s.Phase != SavingWithPending || len(s.Pending) == 0 {
		s.Phase = Idle
		s.Submitted = form.Snapshot{}
		s.Pending = nil
		return s, effects
	}
	latest := s.Pending[len(s.Pending)-1]
	superseded := len(s.Pending) - 1
	s.Phase = Saving
	s.Submitted = latest
	s.Pending = nil
	return s, append(effects, Submit{Snapshot: latest, Superseded: superseded})
}
