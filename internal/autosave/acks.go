package autosave

import (
	"slices"
	"time"

	"github.com/five82/quill/internal/clock"
	"github.com/five82/quill/internal/form"
)

// DefaultAckDuration is how long the "saved" mark stays visible.
const DefaultAckDuration = 3 * time.Second

// acknowledgments tracks the transient "saved" marks. Each success starts
// its own timer; a field shows the mark while any live acknowledgment
// covers it. Only the pipeline loop touches it.
type acknowledgments struct {
	clock  clock.Clock
	ttl    time.Duration
	nextID uint64
	live   map[uint64]ack
}

type ack struct {
	fields []form.Field
	timer  *clock.Timer
}

func newAcknowledgments(c clock.Clock, ttl time.Duration) *acknowledgments {
	if ttl <= 0 {
		ttl = DefaultAckDuration
	}
	return &acknowledgments{clock: c, ttl: ttl, live: make(map[uint64]ack)}
}

// start registers an acknowledgment for fields and arranges for expired(id)
// to be called when it lapses.
func (a *acknowledgments) start(fields []form.Field, expired func(id uint64)) uint64 {
	a.nextID++
	id := a.nextID
	a.live[id] = ack{
		fields: slices.Clone(fields),
		timer:  a.clock.AfterFunc(a.ttl, func() { expired(id) }),
	}
	return id
}

// expire removes id. It reports false for unknown or already expired ids.
func (a *acknowledgments) expire(id uint64) bool {
	if _, ok := a.live[id]; !ok {
		return false
	}
	delete(a.live, id)
	return true
}

// visible returns the fields covered by at least one live acknowledgment,
// in form order.
func (a *acknowledgments) visible() []form.Field {
	var out []form.Field
	for _, f := range form.Fields {
		for _, entry := range a.live {
			if slices.Contains(entry.fields, f) {
				out = append(out, f)
				break
			}
		}
	}
	return out
}

func (a *acknowledgments) active() int {
	return len(a.live)
}

// stopAll cancels every pending expiry.
func (a *acknowledgments) stopAll() {
	for id, entry := range a.live {
		entry.timer.Stop()
		delete(a.live, id)
	}
}
