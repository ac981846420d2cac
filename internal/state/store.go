package state

import (
	"sync"
	"time"

	"github.com/five82/quill/internal/form"
)

// Stats counts pipeline activity since the form was mounted.
type Stats struct {
	Submitted int // saves handed to the backend
	Succeeded int
	Failed    int
	Coalesced int // buffered snapshots superseded before submission
}

// Snapshot is the view of the autosave pipeline the UI renders.
type Snapshot struct {
	Phase        string
	Pending      int // snapshots buffered behind the in-flight save
	ErrorMessage string
	HasError     bool
	Saved        []form.Field // fields showing the transient "saved" mark
	LastSaved    form.Snapshot
	HasSaved     bool
	LastSavedAt  time.Time
	Stats        Stats
	LastUpdated  time.Time
	Closed       bool
}

// IsSaved reports whether f currently shows the "saved" mark.
func (s Snapshot) IsSaved(f form.Field) bool {
	for _, saved := range s.Saved {
		if saved == f {
			return true
		}
	}
	return false
}

// InFlight reports whether a save is outstanding.
func (s Snapshot) InFlight() bool {
	return s.Phase != "" && s.Phase != "idle"
}

// Store coordinates the pipeline writing snapshots and the UI reading them.
type Store struct {
	mu       sync.RWMutex
	snapshot Snapshot
}

// Update replaces the stored snapshot.
func (s *Store) Update(next Snapshot) {
	s.mu.Lock()
	defer s.mu.Unlock()

	next.Saved = cloneFields(next.Saved)
	s.snapshot = next
}

// Snapshot returns a copy of the current snapshot.
func (s *Store) Snapshot() Snapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()

	snap := s.snapshot
	snap.Saved = cloneFields(s.snapshot.Saved)
	return snap
}

func cloneFields(fields []form.Field) []form.Field {
	if len(fields) == 0 {
		return nil
	}
	dup := make([]form.Field, len(fields))
	copy(dup, fields)
	return dup
}
