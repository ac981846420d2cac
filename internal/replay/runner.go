package replay

import (
	"context"
	"errors"
	"fmt"
	"io"
	"sync"
	"text/tabwriter"
	"time"

	"go.uber.org/zap"

	"github.com/five82/quill/internal/autosave"
	"github.com/five82/quill/internal/backend"
	"github.com/five82/quill/internal/clock"
	"github.com/five82/quill/internal/form"
	"github.com/five82/quill/internal/state"
)

// Options configure a replay run.
type Options struct {
	Saver  backend.Saver // required
	Clock  clock.Clock   // nil uses clock.Real(); must be the Saver's clock too
	Logger *zap.Logger

	Quiet       time.Duration
	AckDuration time.Duration
}

// Event is one timeline entry, stamped relative to the start of the run.
type Event struct {
	Offset   time.Duration
	Activity autosave.Activity
}

// Timeline is the result of a replay.
type Timeline struct {
	Events  []Event
	Final   form.Snapshot
	Stats   state.Stats
	Error   string
	Dropped int64
}

// Kinds returns the activity kinds in order, mostly for tests.
func (t Timeline) Kinds() []autosave.ActivityKind {
	kinds := make([]autosave.ActivityKind, len(t.Events))
	for i, e := range t.Events {
		kinds[i] = e.Activity.Kind
	}
	return kinds
}

// Run mounts a fresh form, plays script against it and returns everything
// the pipeline did until the settle period ended.
func Run(ctx context.Context, script Script, opts Options) (Timeline, error) {
	if opts.Saver == nil {
		return Timeline{}, errors.New("replay: saver is required")
	}
	if err := script.Validate(); err != nil {
		return Timeline{}, err
	}
	c := opts.Clock
	if c == nil {
		c = clock.Real()
	}
	logger := opts.Logger
	if logger == nil {
		logger = zap.NewNop()
	}

	var (
		mu     sync.Mutex
		events []Event
	)
	start := c.Now()
	f := form.New(form.Default())
	store := &state.Store{}
	p, err := autosave.New(autosave.Options{
		Form:        f,
		Saver:       opts.Saver,
		Store:       store,
		Clock:       c,
		Logger:      logger,
		Quiet:       opts.Quiet,
		AckDuration: opts.AckDuration,
		Observer: func(a autosave.Activity) {
			mu.Lock()
			events = append(events, Event{Offset: a.At.Sub(start), Activity: a})
			mu.Unlock()
		},
	})
	if err != nil {
		return Timeline{}, err
	}

	runCtx, cancel := context.WithCancel(ctx)
	done := make(chan error, 1)
	go func() { done <- p.Run(runCtx) }()
	defer func() {
		cancel()
		<-done
	}()

	logger.Info("replay started", zap.Int("steps", len(script.Steps)))
	for i, step := range script.Steps {
		if err := sleepUntil(ctx, c, start.Add(step.At())); err != nil {
			return Timeline{}, err
		}
		if err := step.apply(f); err != nil {
			return Timeline{}, fmt.Errorf("step %d: %w", i+1, err)
		}
	}
	last := script.Steps[len(script.Steps)-1].At()
	if err := sleepUntil(ctx, c, start.Add(last+script.Settle())); err != nil {
		return Timeline{}, err
	}
	p.Shutdown()

	snap := store.Snapshot()
	mu.Lock()
	defer mu.Unlock()
	return Timeline{
		Events:  append([]Event(nil), events...),
		Final:   f.Values(),
		Stats:   snap.Stats,
		Error:   snap.ErrorMessage,
		Dropped: p.Dropped(),
	}, nil
}

func sleepUntil(ctx context.Context, c clock.Clock, deadline time.Time) error {
	wait := deadline.Sub(c.Now())
	if wait <= 0 {
		return ctx.Err()
	}
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-c.After(wait):
		return nil
	}
}

// Write prints the timeline as aligned columns followed by a summary.
func (t Timeline) Write(w io.Writer) error {
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	for _, e := range t.Events {
		a := e.Activity
		fmt.Fprintf(tw, "+%.3fs\t%s\t%s\t%s\n", e.Offset.Seconds(), a.Kind, shortID(a.Attempt), detail(a))
	}
	if err := tw.Flush(); err != nil {
		return err
	}
	_, err := fmt.Fprintf(w, "\nfinal %s\nsubmitted=%d succeeded=%d failed=%d coalesced=%d dropped=%d\n",
		t.Final, t.Stats.Submitted, t.Stats.Succeeded, t.Stats.Failed, t.Stats.Coalesced, t.Dropped)
	if err != nil {
		return err
	}
	if t.Error != "" {
		_, err = fmt.Fprintf(w, "error %q\n", t.Error)
	}
	return err
}

func detail(a autosave.Activity) string {
	switch a.Kind {
	case autosave.ActivitySubmitted, autosave.ActivitySucceeded,
		autosave.ActivityBuffered, autosave.ActivityReconciled:
		return a.Snapshot.String()
	case autosave.ActivityAckExpired:
		return "saved mark cleared"
	default:
		return a.Message
	}
}

// shortID keeps the random tail of a ULID, which is what differs between
// attempts made in the same millisecond.
func shortID(id string) string {
	if len(id) <= 8 {
		return id
	}
	return id[len(id)-8:]
}
