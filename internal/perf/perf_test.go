package perf

import (
	"bytes"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRecorder_Stats(t *testing.T) {
	r := NewRecorder("split", 5*time.Millisecond)
	r.Record(2 * time.Millisecond)
	r.Record(8 * time.Millisecond)
	r.Record(4 * time.Millisecond)

	s := r.Stats()
	assert.Equal(t, "split", s.Name)
	assert.EqualValues(t, 3, s.Count)
	assert.Equal(t, 2*time.Millisecond, s.MinDuration)
	assert.Equal(t, 8*time.Millisecond, s.MaxDuration)
	assert.Equal(t, 14*time.Millisecond, s.TotalDuration)
	assert.EqualValues(t, 1, s.SlowOps)
}

func TestRecorder_EmptyStats(t *testing.T) {
	s := NewRecorder("idle", 0).Stats()
	assert.Zero(t, s.MinDuration)
	assert.Zero(t, s.Average())
}

func TestRegistry_SnapshotSorted(t *testing.T) {
	g := NewRegistry(time.Second)
	g.Record("zoom", time.Millisecond)
	g.Record("balance", time.Millisecond)
	g.Record("balance", 3*time.Millisecond)

	snap := g.Snapshot()
	require.Len(t, snap, 2)
	assert.Equal(t, "balance", snap[0].Name)
	assert.EqualValues(t, 2, snap[0].Count)
	assert.Equal(t, 2*time.Millisecond, snap[0].Average())
	assert.Equal(t, "zoom", snap[1].Name)
}

func TestRegistry_LogStats(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug}))

	g := NewRegistry(time.Second)
	defer g.Measure("split")()
	g.Record("focus_pane", time.Microsecond)
	g.LogStats(logger, slog.LevelInfo)

	assert.Contains(t, buf.String(), "focus_pane_stats")
	assert.Contains(t, buf.String(), "count=1")
}
