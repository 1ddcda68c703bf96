// Package perf keeps per-operation latency statistics for layout commands.
package perf

import (
	"context"
	"log/slog"
	"sort"
	"sync"
	"sync/atomic"
	"time"
)

const unsetMin = 1<<63 - 1

type Stats struct {
	Name          string
	Count         int64
	TotalDuration time.Duration
	MinDuration   time.Duration
	MaxDuration   time.Duration
	SlowOps       int64
}

// Average returns the mean duration, or zero when nothing was recorded.
func (s Stats) Average() time.Duration {
	if s.Count == 0 {
		return 0
	}
	return s.TotalDuration / time.Duration(s.Count)
}

// Recorder accumulates durations for one operation. It is safe for
// concurrent use.
type Recorder struct {
	name      string
	count     int64
	totalDur  int64
	minDur    int64
	maxDur    int64
	slowOps   int64
	threshold time.Duration
}

func NewRecorder(name string, threshold time.Duration) *Recorder {
	return &Recorder{name: name, threshold: threshold, minDur: unsetMin}
}

func (r *Recorder) Record(elapsed time.Duration) {
	ns := elapsed.Nanoseconds()
	atomic.AddInt64(&r.count, 1)
	atomic.AddInt64(&r.totalDur, ns)

	for {
		cur := atomic.LoadInt64(&r.minDur)
		if ns >= cur {
			break
		}
		if atomic.CompareAndSwapInt64(&r.minDur, cur, ns) {
			break
		}
	}
	for {
		cur := atomic.LoadInt64(&r.maxDur)
		if ns <= cur {
			break
		}
		if atomic.CompareAndSwapInt64(&r.maxDur, cur, ns) {
			break
		}
	}
	if r.threshold > 0 && elapsed >= r.threshold {
		atomic.AddInt64(&r.slowOps, 1)
	}
}

func (r *Recorder) Stats() Stats {
	minDur := atomic.LoadInt64(&r.minDur)
	if minDur == unsetMin {
		minDur = 0
	}
	return Stats{
		Name:          r.name,
		Count:         atomic.LoadInt64(&r.count),
		TotalDuration: time.Duration(atomic.LoadInt64(&r.totalDur)),
		MinDuration:   time.Duration(minDur),
		MaxDuration:   time.Duration(atomic.LoadInt64(&r.maxDur)),
		SlowOps:       atomic.LoadInt64(&r.slowOps),
	}
}

// Registry hands out one Recorder per operation name.
type Registry struct {
	mu        sync.Mutex
	threshold time.Duration
	recorders map[string]*Recorder
}

// NewRegistry creates a registry whose recorders count operations slower
// than threshold as slow.
func NewRegistry(threshold time.Duration) *Registry {
	return &Registry{threshold: threshold, recorders: make(map[string]*Recorder)}
}

func (g *Registry) Recorder(name string) *Recorder {
	g.mu.Lock()
	defer g.mu.Unlock()
	r, ok := g.recorders[name]
	if !ok {
		r = NewRecorder(name, g.threshold)
		g.recorders[name] = r
	}
	return r
}

// Record is shorthand for g.Recorder(name).Record(elapsed).
func (g *Registry) Record(name string, elapsed time.Duration) {
	g.Recorder(name).Record(elapsed)
}

// Snapshot returns the stats of every recorder sorted by name.
func (g *Registry) Snapshot() []Stats {
	g.mu.Lock()
	out := make([]Stats, 0, len(g.recorders))
	for _, r := range g.recorders {
		out = append(out, r.Stats())
	}
	g.mu.Unlock()
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out
}

// LogStats writes one record per operation at the given level.
func (g *Registry) LogStats(logger *slog.Logger, level slog.Level) {
	if logger == nil {
		return
	}
	for _, s := range g.Snapshot() {
		if s.Count == 0 {
			continue
		}
		logger.Log(context.Background(), level, s.Name+"_stats",
			"count", s.Count,
			"avg_us", s.Average().Microseconds(),
			"min_us", s.MinDuration.Microseconds(),
			"max_us", s.MaxDuration.Microseconds(),
			"slow_ops", s.SlowOps,
		)
	}
}

// Measure returns a func that records the time elapsed since Measure was
// called. Typical use is defer g.Measure("name")().
func (g *Registry) Measure(name string) func() {
	start := time.Now()
	return func() {
		g.Record(name, time.Since(start))
	}
}
