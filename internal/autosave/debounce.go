package autosave

import (
	"sync"
	"time"

	"github.com/five82/quill/internal/clock"
)

// DefaultQuiet is how long input must stay quiet before the debouncer emits.
const DefaultQuiet = 500 * time.Millisecond

// Debouncer emits the last value of a burst once no new value has arrived
// for the quiet interval. A burst that never pauses never emits.
type Debouncer[T any] struct {
	clock clock.Clock
	quiet time.Duration
	emit  func(T)

	mu      sync.Mutex
	timer   *clock.Timer
	latest  T
	seq     uint64
	stopped bool
}

// NewDebouncer returns a Debouncer calling emit from the clock's timer.
// A non-positive quiet uses DefaultQuiet.
func NewDebouncer[T any](c clock.Clock, quiet time.Duration, emit func(T)) *Debouncer[T] {
	if quiet <= 0 {
		quiet = DefaultQuiet
	}
	return &Debouncer[T]{clock: c, quiet: quiet, emit: emit}
}

// Push records v and restarts the quiet period.
func (d *Debouncer[T]) Push(v T) {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.stopped {
		return
	}
	d.latest = v
	d.seq++
	seq := d.seq
	if d.timer != nil {
		d.timer.Stop()
	}
	d.timer = d.clock.AfterFunc(d.quiet, func() { d.fire(seq) })
}

func (d *Debouncer[T]) fire(seq uint64) {
	d.mu.Lock()
	if d.stopped || seq != d.seq {
		d.mu.Unlock()
		return
	}
	v := d.latest
	d.timer = nil
	d.mu.Unlock()

	d.emit(v)
}

// Stop cancels any pending emission and ignores further pushes.
func (d *Debouncer[T]) Stop() {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.stopped = true
	if d.timer != nil {
		d.timer.Stop()
		d.timer = nil
	}
}
