package backend

import (
	"context"
	"math/rand/v2"
	"sync"
	"time"

	"github.com/five82/quill/internal/clock"
	"github.com/five82/quill/internal/form"
)

// Saver is the remote save operation. Save blocks until the backend answers
// and returns either the stored snapshot or an error; a *StatusError is a
// classified failure.
type Saver interface {
	Save(ctx context.Context, snapshot form.Snapshot) (form.Snapshot, error)
}

// Ensure both backends implement Saver at compile time.
var (
	_ Saver = (*Simulator)(nil)
	_ Saver = (*Client)(nil)
)

const (
	DefaultLatency     = time.Second
	DefaultFailureRate = 0.3
)

// SimulatorOptions configure a Simulator.
type SimulatorOptions struct {
	Clock       clock.Clock
	Latency     time.Duration // zero uses DefaultLatency
	FailureRate float64       // probability in [0,1]
	Seed        uint64        // zero seeds from the clock
}

// Simulator is an in-process backend with fixed latency and random failures.
type Simulator struct {
	clock       clock.Clock
	latency     time.Duration
	failureRate float64

	mu  sync.Mutex
	rng *rand.Rand
}

// NewSimulator builds a Simulator. A nil clock uses clock.Real().
func NewSimulator(opts SimulatorOptions) *Simulator {
	c := opts.Clock
	if c == nil {
		c = clock.Real()
	}
	latency := opts.Latency
	if latency <= 0 {
		latency = DefaultLatency
	}
	rate := opts.FailureRate
	if rate < 0 {
		rate = 0
	}
	if rate > 1 {
		rate = 1
	}
	seed := opts.Seed
	if seed == 0 {
		seed = uint64(c.Now().UnixNano())
	}
	return &Simulator{
		clock:       c,
		latency:     latency,
		failureRate: rate,
		rng:         rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15)),
	}
}

// Save waits for the configured latency, then either echoes snapshot or
// fails with a uniformly chosen status code.
func (s *Simulator) Save(ctx context.Context, snapshot form.Snapshot) (form.Snapshot, error) {
	select {
	case <-ctx.Done():
		return form.Snapshot{}, ctx.Err()
	case <-s.clock.After(s.latency):
	}

	if code, failed := s.roll(); failed {
		return form.Snapshot{}, &StatusError{Code: code}
	}
	return snapshot, nil
}

func (s *Simulator) roll() (StatusCode, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.rng.Float64() >= s.failureRate {
		return 0, false
	}
	return StatusCodes[s.rng.IntN(len(StatusCodes))], true
}
