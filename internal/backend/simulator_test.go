package backend

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/five82/quill/internal/clock"
	"github.com/five82/quill/internal/form"
)

var epoch = time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)

type saveResult struct {
	snap form.Snapshot
	err  error
}

func saveAsync(s *Simulator, ctx context.Context, snap form.Snapshot) <-chan saveResult {
	out := make(chan saveResult, 1)
	go func() {
		got, err := s.Save(ctx, snap)
		out <- saveResult{got, err}
	}()
	return out
}

func TestSimulator_WaitsForLatencyThenEchoes(t *testing.T) {
	c := clock.Fake(epoch)
	sim := NewSimulator(SimulatorOptions{Clock: c, FailureRate: 0, Seed: 1})
	snap := form.Snapshot{Text: "abc", Choice: "option2"}

	results := saveAsync(sim, context.Background(), snap)
	c.WaitForTimers(1)

	c.Advance(999 * time.Millisecond)
	select {
	case r := <-results:
		t.Fatalf("Save returned early: %+v", r)
	default:
	}

	c.Advance(time.Millisecond)
	select {
	case r := <-results:
		if r.err != nil {
			t.Fatalf("Save error = %v", r.err)
		}
		if r.snap != snap {
			t.Fatalf("Save = %v, want %v", r.snap, snap)
		}
	case <-time.After(2 * time.Second):
		t.Fatal("Save did not return after latency")
	}
}

func TestSimulator_AlwaysFailsWithKnownCode(t *testing.T) {
	c := clock.Fake(epoch)
	sim := NewSimulator(SimulatorOptions{Clock: c, FailureRate: 1, Seed: 7, Latency: 10 * time.Millisecond})

	for i := 0; i < 20; i++ {
		results := saveAsync(sim, context.Background(), form.Default())
		c.WaitForTimers(1)
		c.Advance(10 * time.Millisecond)
		r := <-results

		var statusErr *StatusError
		if !errors.As(r.err, &statusErr) {
			t.Fatalf("Save error = %v, want *StatusError", r.err)
		}
		if !statusErr.Code.Known() {
			t.Fatalf("code %v is not one of the classified codes", statusErr.Code)
		}
	}
}

func TestSimulator_FailureRateIsRoughlyHonored(t *testing.T) {
	sim := NewSimulator(SimulatorOptions{Clock: clock.Fake(epoch), FailureRate: 0.3, Seed: 42})
	failures := 0
	const n = 10000
	for i := 0; i < n; i++ {
		if _, failed := sim.roll(); failed {
			failures++
		}
	}
	rate := float64(failures) / n
	if rate < 0.27 || rate > 0.33 {
		t.Fatalf("failure rate = %.3f, want about 0.3", rate)
	}
}

func TestSimulator_ContextCancel(t *testing.T) {
	c := clock.Fake(epoch)
	sim := NewSimulator(SimulatorOptions{Clock: c, Seed: 1})
	ctx, cancel := context.WithCancel(context.Background())

	results := saveAsync(sim, ctx, form.Default())
	c.WaitForTimers(1)
	cancel()

	r := <-results
	if !errors.Is(r.err, context.Canceled) {
		t.Fatalf("Save error = %v, want context.Canceled", r.err)
	}
}

func TestCodeOf(t *testing.T) {
	if got := CodeOf(&StatusError{Code: NotFound}); got != NotFound {
		t.Fatalf("CodeOf(StatusError) = %v, want NOT_FOUND", got)
	}
	wrapped := errors.Join(errors.New("outer"), &StatusError{Code: Forbidden})
	if got := CodeOf(wrapped); got != Forbidden {
		t.Fatalf("CodeOf(wrapped) = %v, want FORBIDDEN", got)
	}
	if got := CodeOf(errors.New("boom")); got != Unrecognized {
		t.Fatalf("CodeOf(plain) = %v, want Unrecognized", got)
	}
	if StatusCode(418).Known() {
		t.Fatal("418 reported as known")
	}
}
