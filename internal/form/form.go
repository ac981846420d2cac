package form

import (
	"fmt"
	"sync"
)

// Form holds the displayed field values and acts as the change source.
// User-driven setters notify subscribers; Reconcile applies programmatic
// updates without notifying anyone.
type Form struct {
	mu        sync.Mutex
	values    Snapshot
	revision  uint64
	listeners map[int]func(Snapshot)
	nextID    int
}

// New returns a Form holding initial.
func New(initial Snapshot) *Form {
	return &Form{
		values:    initial,
		listeners: make(map[int]func(Snapshot)),
	}
}

// Values returns the current field values.
func (f *Form) Values() Snapshot {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.values
}

// Revision increments whenever Reconcile changes the values. Views compare
// it to decide whether to reload their widgets.
func (f *Form) Revision() uint64 {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.revision
}

// Subscribe registers fn to receive a snapshot after every user-driven
// change. The returned func removes the subscription.
func (f *Form) Subscribe(fn func(Snapshot)) (unsubscribe func()) {
	f.mu.Lock()
	id := f.nextID
	f.nextID++
	f.listeners[id] = fn
	f.mu.Unlock()

	return func() {
		f.mu.Lock()
		delete(f.listeners, id)
		f.mu.Unlock()
	}
}

// SetText records a user edit of the free-text field.
func (f *Form) SetText(v string) {
	f.update(func(s *Snapshot) { s.Text = v })
}

// SetChoice records a user selection. v must be one of Choices.
func (f *Form) SetChoice(v string) error {
	if !ValidChoice(v) {
		return fmt.Errorf("unknown choice %q", v)
	}
	f.update(func(s *Snapshot) { s.Choice = v })
	return nil
}

// SetToggle records a user change of the boolean toggle.
func (f *Form) SetToggle(v bool) {
	f.update(func(s *Snapshot) { s.Toggle = v })
}

// Set replaces every field as a single user edit.
func (f *Form) Set(next Snapshot) error {
	if !ValidChoice(next.Choice) {
		return fmt.Errorf("unknown choice %q", next.Choice)
	}
	f.update(func(s *Snapshot) { *s = next })
	return nil
}

func (f *Form) update(mutate func(*Snapshot)) {
	f.mu.Lock()
	next := f.values
	mutate(&next)
	if next == f.values {
		f.mu.Unlock()
		return
	}
	f.values = next
	listeners := make([]func(Snapshot), 0, len(f.listeners))
	for id := 0; id < f.nextID; id++ {
		if fn, ok := f.listeners[id]; ok {
			listeners = append(listeners, fn)
		}
	}
	f.mu.Unlock()

	for _, fn := range listeners {
		fn(next)
	}
}

// Reconcile merges a saved result into the form. base is the snapshot that
// was submitted; fields edited since then keep their local values. It never
// notifies subscribers and reports whether any value changed.
func (f *Form) Reconcile(base, result Snapshot) (Snapshot, bool) {
	f.mu.Lock()
	defer f.mu.Unlock()

	merged := Merge(base, f.values, result)
	if !ValidChoice(merged.Choice) {
		merged.Choice = f.values.Choice
	}
	if merged == f.values {
		return merged, false
	}
	f.values = merged
	f.revision++
	return merged, true
}
