// Package clock provides an injectable time source so the autosave pipeline
// can be driven deterministically in tests.
//
// Components that debounce, wait for a simulated backend, or expire
// acknowledgments take a Clock instead of calling the time package:
//
//	c := clock.Fake(time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC))
//	d := autosave.NewDebouncer(c, 500*time.Millisecond, emit)
//	d.Push(value)
//	c.Advance(500 * time.Millisecond) // emit(value) runs here
//
// Scaled runs real timers faster than wall time; the replay command uses it
// to play long scripts quickly.
package clock
