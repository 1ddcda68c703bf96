package engine

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel/attribute"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/sdk/trace/tracetest"

	"github.com/MikeBiancalana/quire/internal/layout"
	"github.com/MikeBiancalana/quire/internal/perf"
)

func TestStore_DispatchAndState(t *testing.T) {
	store := NewStore(New("A"), WithValidation(true))

	st := store.Dispatch(context.Background(), Split{Orientation: layout.Vertical})
	assert.Equal(t, layout.PaneID("pane-2"), st.Focused)
	assert.Equal(t, st, store.State())
}

func TestStore_SubscribeReceivesLatest(t *testing.T) {
	store := NewStore(New(""))
	ch, cancel := store.Subscribe()
	defer cancel()

	ctx := context.Background()
	store.Dispatch(ctx, Split{Orientation: layout.Vertical})
	store.Dispatch(ctx, Split{Orientation: layout.Horizontal})

	select {
	case st := <-ch:
		assert.Equal(t, layout.PaneID("pane-3"), st.Focused, "older snapshots are dropped")
	case <-time.After(time.Second):
		t.Fatal("no snapshot delivered")
	}
}

func TestStore_NoopDoesNotPublish(t *testing.T) {
	store := NewStore(New(""))
	ch, cancel := store.Subscribe()
	defer cancel()

	store.Dispatch(context.Background(), CompleteClose{Pane: "pane-1"})

	select {
	case <-ch:
		t.Fatal("unexpected snapshot for a no-op")
	default:
	}
}

func TestStore_UnsubscribeClosesChannel(t *testing.T) {
	store := NewStore(New(""))
	ch, cancel := store.Subscribe()
	cancel()
	cancel()

	_, ok := <-ch
	assert.False(t, ok)
	store.Dispatch(context.Background(), Split{Orientation: layout.Vertical})
}

func TestStore_TracesAndRecordsCommands(t *testing.T) {
	rec := tracetest.NewSpanRecorder()
	provider := sdktrace.NewTracerProvider(sdktrace.WithSpanProcessor(rec))
	stats := perf.NewRegistry(time.Second)

	store := NewStore(New(""), WithTracer(provider.Tracer("test")), WithStats(stats))
	ctx := context.Background()
	store.Dispatch(ctx, Split{Orientation: layout.Vertical})
	store.Dispatch(ctx, JumpToPane{Index: 9})

	spans := rec.Ended()
	require.Len(t, spans, 2)
	assert.Equal(t, "layout.apply", spans[0].Name())
	assert.Contains(t, spans[0].Attributes(), attribute.String("layout.command", "split"))
	assert.Contains(t, spans[0].Attributes(), attribute.Bool("layout.changed", true))
	assert.Contains(t, spans[0].Attributes(), attribute.Int("layout.panes", 2))
	assert.Contains(t, spans[1].Attributes(), attribute.Bool("layout.changed", false))

	snap := stats.Snapshot()
	require.Len(t, snap, 2)
	assert.Equal(t, "jump_to_pane", snap[0].Name)
	assert.Equal(t, "split", snap[1].Name)
}

func TestStore_SerializesConcurrentDispatch(t *testing.T) {
	store := NewStore(New(""), WithValidation(true))
	ctx := context.Background()

	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			store.Dispatch(ctx, Split{Orientation: layout.Vertical})
		}()
	}
	wg.Wait()

	st := store.State()
	require.NoError(t, st.Validate())
	assert.Equal(t, 21, st.Panes.Len())
}
