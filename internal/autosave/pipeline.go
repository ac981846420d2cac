package autosave

import (
	"context"
	"crypto/rand"
	"errors"
	"sync"
	"sync/atomic"
	"time"

	"github.com/oklog/ulid/v2"
	"go.uber.org/zap"

	"github.com/five82/quill/internal/backend"
	"github.com/five82/quill/internal/clock"
	"github.com/five82/quill/internal/form"
	"github.com/five82/quill/internal/state"
)

// ErrClosed is returned when the pipeline has been shut down.
var ErrClosed = errors.New("autosave: pipeline closed")

const inboxSize = 64

// Options configure a Pipeline.
type Options struct {
	Form   *form.Form    // required
	Saver  backend.Saver // required
	Store  *state.Store  // optional; nil keeps no observable view
	Clock  clock.Clock   // nil uses clock.Real()
	Logger *zap.Logger   // nil discards logs

	Quiet       time.Duration // debounce interval; zero uses DefaultQuiet
	AckDuration time.Duration // zero uses DefaultAckDuration

	// Observer, when set, is called from the loop for every activity.
	// It must not block.
	Observer func(Activity)
}

// ActivityKind names something the pipeline did.
type ActivityKind string

const (
	ActivitySubmitted  ActivityKind = "submitted"
	ActivitySucceeded  ActivityKind = "succeeded"
	ActivityFailed     ActivityKind = "failed"
	ActivityBuffered   ActivityKind = "buffered"
	ActivityReconciled ActivityKind = "reconciled"
	ActivityAckExpired ActivityKind = "ack-expired"
	ActivityDropped    ActivityKind = "dropped"
	ActivityShutdown   ActivityKind = "shutdown"
)

// Activity is one entry of the pipeline's timeline.
type Activity struct {
	At       time.Time
	Kind     ActivityKind
	Attempt  string
	Snapshot form.Snapshot
	Message  string
	Phase    Phase
}

// Pipeline wires the form's change stream through the debouncer into the
// save coordinator. All coordinator state is owned by the goroutine running
// Run; every other goroutine talks to it through the inbox.
type Pipeline struct {
	form     *form.Form
	saver    backend.Saver
	store    *state.Store
	clock    clock.Clock
	logger   *zap.Logger
	observer func(Activity)

	debouncer   *Debouncer[form.Snapshot]
	unsubscribe func()

	inbox   chan message
	done    chan struct{}
	running atomic.Bool
	dropped atomic.Int64
	closing sync.Once
	down    atomic.Bool

	// Owned by the loop.
	runCtx    context.Context
	state     State
	gen       uint64
	attempt   ulid.ULID
	acks      *acknowledgments
	stats     state.Stats
	lastSaved form.Snapshot
	hasSaved  bool
	savedAt   time.Time
	closed    bool
	entropy   *ulid.MonotonicEntropy
}

type message interface{}

type snapshotMsg struct {
	snapshot form.Snapshot
}

type outcomeMsg struct {
	gen      uint64
	attempt  ulid.ULID
	snapshot form.Snapshot
	err      error
}

type ackExpiredMsg struct {
	gen uint64
	id  uint64
}

type shutdownMsg struct {
	done chan struct{}
}

type syncMsg struct {
	done chan struct{}
}

// New mounts a pipeline on opts.Form. Changes are debounced immediately but
// nothing is submitted until Run starts.
func New(opts Options) (*Pipeline, error) {
	if opts.Form == nil {
		return nil, errors.New("autosave: form is required")
	}
	if opts.Saver == nil {
		return nil, errors.New("autosave: saver is required")
	}
	c := opts.Clock
	if c == nil {
		c = clock.Real()
	}
	logger := opts.Logger
	if logger == nil {
		logger = zap.NewNop()
	}

	p := &Pipeline{
		form:     opts.Form,
		saver:    opts.Saver,
		store:    opts.Store,
		clock:    c,
		logger:   logger.Named("autosave"),
		observer: opts.Observer,
		inbox:    make(chan message, inboxSize),
		done:     make(chan struct{}),
		gen:      1,
		acks:     newAcknowledgments(c, opts.AckDuration),
		entropy:  ulid.Monotonic(rand.Reader, 0),
	}
	p.debouncer = NewDebouncer(c, opts.Quiet, func(s form.Snapshot) {
		p.post(snapshotMsg{snapshot: s})
	})
	p.unsubscribe = opts.Form.Subscribe(p.debouncer.Push)
	p.publish()
	return p, nil
}

// Run processes pipeline events until ctx is cancelled. Cancelling ctx
// tears the pipeline down the same way Shutdown does: the form is no longer
// observed and outcomes still outstanding are discarded.
func (p *Pipeline) Run(ctx context.Context) error {
	if !p.running.CompareAndSwap(false, true) {
		return errors.New("autosave: pipeline already running")
	}
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()
	defer close(p.done)

	p.runCtx = ctx
	p.logger.Debug("pipeline started")
	for {
		select {
		case <-ctx.Done():
			p.teardown("context done")
			return nil
		case msg := <-p.inbox:
			p.handle(msg)
		}
	}
}

// Shutdown tears the form down: it stops listening for changes, cancels
// pending acknowledgments and invalidates every outstanding save so late
// outcomes have no effect. Saves already in transit are not aborted.
// Shutdown blocks until the loop has processed the request or has exited,
// so it must not be called before Run has started.
func (p *Pipeline) Shutdown() {
	p.stopListening()
	done := make(chan struct{})
	if !p.post(shutdownMsg{done: done}) {
		return
	}
	select {
	case <-done:
	case <-p.done:
	}
}

// Sync blocks until every message posted before the call has been handled.
// It returns ErrClosed once the pipeline has been torn down, either by
// Shutdown or by Run returning.
func (p *Pipeline) Sync() error {
	done := make(chan struct{})
	if !p.post(syncMsg{done: done}) {
		return ErrClosed
	}
	select {
	case <-done:
	case <-p.done:
		return ErrClosed
	}
	if p.down.Load() {
		return ErrClosed
	}
	return nil
}

// Dropped returns how many outcomes or timers were discarded because they
// belonged to a torn-down generation.
func (p *Pipeline) Dropped() int64 {
	return p.dropped.Load()
}

func (p *Pipeline) post(msg message) bool {
	select {
	case p.inbox <- msg:
		return true
	case <-p.done:
		return false
	}
}

func (p *Pipeline) handle(msg message) {
	switch m := msg.(type) {
	case snapshotMsg:
		if p.closed {
			return
		}
		p.apply(SnapshotDebounced{Snapshot: m.snapshot})

	case outcomeMsg:
		if m.gen != p.gen || m.attempt != p.attempt || p.closed {
			p.drop("outcome", m.attempt.String())
			return
		}
		if m.err != nil && errors.Is(m.err, context.Canceled) && p.runCtx.Err() != nil {
			p.drop("outcome", m.attempt.String())
			return
		}
		if m.err != nil {
			code := backend.CodeOf(m.err)
			p.stats.Failed++
			p.logger.Warn("save failed",
				zap.String("attempt", m.attempt.String()),
				zap.Stringer("code", code),
				zap.Error(m.err))
			p.observe(Activity{Kind: ActivityFailed, Attempt: m.attempt.String(), Message: MessageFor(code)})
			p.apply(SaveFailed{Code: code})
			return
		}
		p.stats.Succeeded++
		p.lastSaved = m.snapshot
		p.hasSaved = true
		p.savedAt = p.clock.Now()
		p.logger.Info("save succeeded",
			zap.String("attempt", m.attempt.String()),
			zap.Stringer("snapshot", m.snapshot))
		p.observe(Activity{Kind: ActivitySucceeded, Attempt: m.attempt.String(), Snapshot: m.snapshot})
		p.apply(SaveSucceeded{Snapshot: m.snapshot})

	case ackExpiredMsg:
		if m.gen != p.gen || p.closed {
			p.drop("acknowledgment", "")
			return
		}
		if p.acks.expire(m.id) {
			p.observe(Activity{Kind: ActivityAckExpired})
			p.publish()
		}

	case shutdownMsg:
		p.teardown("shutdown")
		close(m.done)

	case syncMsg:
		close(m.done)
	}
}

func (p *Pipeline) apply(ev Event) {
	prev := p.state
	next, effects := Transition(p.state, ev)
	p.state = next

	if debounced, ok := ev.(SnapshotDebounced); ok && prev.Phase != Idle {
		p.logger.Debug("snapshot buffered behind in-flight save",
			zap.Int("pending", len(next.Pending)))
		p.observe(Activity{Kind: ActivityBuffered, Snapshot: debounced.Snapshot})
	}

	for _, effect := range effects {
		switch e := effect.(type) {
		case Submit:
			p.submit(e)
		case Reconcile:
			merged, changed := p.form.Reconcile(e.Base, e.Result)
			if changed {
				p.logger.Debug("form reconciled", zap.Stringer("values", merged))
				p.observe(Activity{Kind: ActivityReconciled, Snapshot: merged})
			}
		case Acknowledge:
			gen := p.gen
			p.acks.start(form.Fields, func(id uint64) {
				p.post(ackExpiredMsg{gen: gen, id: id})
			})
		}
	}
	p.publish()
}

func (p *Pipeline) submit(s Submit) {
	p.attempt = ulid.MustNew(ulid.Timestamp(p.clock.Now()), p.entropy)
	p.stats.Submitted++
	p.stats.Coalesced += s.Superseded

	attempt := p.attempt
	gen := p.gen
	p.logger.Info("save submitted",
		zap.String("attempt", attempt.String()),
		zap.Stringer("snapshot", s.Snapshot),
		zap.Int("superseded", s.Superseded))
	p.observe(Activity{Kind: ActivitySubmitted, Attempt: attempt.String(), Snapshot: s.Snapshot})

	ctx := p.runCtx
	go func() {
		saved, err := p.saver.Save(ctx, s.Snapshot)
		p.post(outcomeMsg{gen: gen, attempt: attempt, snapshot: saved, err: err})
	}()
}

func (p *Pipeline) drop(what, attempt string) {
	p.dropped.Add(1)
	p.logger.Debug("discarded stale "+what, zap.String("attempt", attempt))
	p.observe(Activity{Kind: ActivityDropped, Attempt: attempt, Message: what})
}

// stopListening detaches the debouncer from the form. Safe to call from any
// goroutine, more than once.
func (p *Pipeline) stopListening() {
	p.closing.Do(func() {
		p.unsubscribe()
		p.debouncer.Stop()
	})
}

func (p *Pipeline) teardown(reason string) {
	if p.closed {
		return
	}
	p.closed = true
	p.down.Store(true)
	p.stopListening()
	p.gen++
	p.acks.stopAll()
	p.logger.Info("pipeline torn down",
		zap.String("reason", reason),
		zap.Stringer("phase", p.state.Phase))
	p.observe(Activity{Kind: ActivityShutdown, Message: reason})
	if p.store != nil {
		snap := p.store.Snapshot()
		snap.Closed = true
		p.store.Update(snap)
	}
}

func (p *Pipeline) observe(a Activity) {
	if p.observer == nil {
		return
	}
	a.At = p.clock.Now()
	a.Phase = p.state.Phase
	p.observer(a)
}

func (p *Pipeline) publish() {
	if p.store == nil {
		return
	}
	p.store.Update(state.Snapshot{
		Phase:        p.state.Phase.String(),
		Pending:      len(p.state.Pending),
		ErrorMessage: p.state.LastError,
		HasError:     p.state.HasError,
		Saved:        p.acks.visible(),
		LastSaved:    p.lastSaved,
		HasSaved:     p.hasSaved,
		LastSavedAt:  p.savedAt,
		Stats:        p.stats,
		LastUpdated:  p.clock.Now(),
		Closed:       p.closed,
	})
}
