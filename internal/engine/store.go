package engine

import (
	"context"
	"sync"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"github.com/MikeBiancalana/quire/internal/logger"
	"github.com/MikeBiancalana/quire/internal/perf"
)

const tracerName = "github.com/MikeBiancalana/quire/internal/engine"

// Store owns the current State. Every mutation goes through Dispatch, which
// applies commands one at a time in arrival order.
type Store struct {
	mu       sync.Mutex
	state    State
	tracer   trace.Tracer
	stats    *perf.Registry
	validate bool

	subMu  sync.Mutex
	nextID int
	subs   map[int]chan State
}

type Option func(*Store)

// WithTracer overrides the tracer used for per-command spans.
func WithTracer(t trace.Tracer) Option {
	return func(s *Store) { s.tracer = t }
}

// WithStats records per-command latency into r.
func WithStats(r *perf.Registry) Option {
	return func(s *Store) { s.stats = r }
}

// WithValidation checks the tree invariants after every command and logs
// any violation.
func WithValidation(on bool) Option {
	return func(s *Store) { s.validate = on }
}

func NewStore(initial State, opts ...Option) *Store {
	s := &Store{
		state: initial,
		subs:  make(map[int]chan State),
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.tracer == nil {
		s.tracer = otel.Tracer(tracerName)
	}
	return s
}

// State returns the current snapshot.
func (s *Store) State() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

// Dispatch applies cmd and returns the resulting state. Subscribers are
// notified only when the state changed.
func (s *Store) Dispatch(ctx context.Context, cmd Command) State {
	_, span := s.tracer.Start(ctx, "layout.apply",
		trace.WithAttributes(attribute.String("layout.command", cmd.Kind())))
	defer span.End()

	start := time.Now()
	s.mu.Lock()
	next, changed := ApplyChanged(s.state, cmd)
	s.state = next
	s.mu.Unlock()
	elapsed := time.Since(start)

	if s.stats != nil {
		s.stats.Record(cmd.Kind(), elapsed)
	}
	span.SetAttributes(
		attribute.Bool("layout.changed", changed),
		attribute.Int("layout.panes", next.Panes.Len()),
	)

	if !changed {
		logger.Debug("layout command ignored", "command", cmd.Kind(), "focused", next.Focused)
		return next
	}
	logger.Debug("layout command applied", "command", cmd.Kind(), "focused", next.Focused, "panes", next.Panes.Len())

	if s.validate {
		if err := next.Validate(); err != nil {
			span.RecordError(err)
			logger.Error("layout invariant violated", "command", cmd.Kind(), "error", err)
		}
	}
	s.publish(next)
	return next
}

// Subscribe returns a channel that receives the latest state after each
// change. Slow readers only see the newest snapshot. The returned func
// unsubscribes and closes the channel.
func (s *Store) Subscribe() (<-chan State, func()) {
	ch := make(chan State, 1)
	s.subMu.Lock()
	id := s.nextID
	s.nextID++
	s.subs[id] = ch
	s.subMu.Unlock()

	var once sync.Once
	return ch, func() {
		once.Do(func() {
			s.subMu.Lock()
			delete(s.subs, id)
			s.subMu.Unlock()
			close(ch)
		})
	}
}

func (s *Store) publish(st State) {
	s.subMu.Lock()
	defer s.subMu.Unlock()
	for _, ch := range s.subs {
		// drop the stale snapshot, if any, so the newest one fits
		select {
		case <-ch:
		default:
		}
		select {
		case ch <- st:
		default:
		}
	}
}
