package layout

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSequence_Monotonic(t *testing.T) {
	var seq Sequence
	a, seq := seq.Next()
	b, seq := seq.Next()
	c, seq := seq.Next()

	assert.Equal(t, PaneID("pane-1"), a)
	assert.Equal(t, PaneID("pane-2"), b)
	assert.Equal(t, PaneID("pane-3"), c)
	assert.Equal(t, 3, seq.Last())
}

func TestRegistry_CopyOnWrite(t *testing.T) {
	base := NewRegistry(PaneState{ID: "pane-1", ContentRef: "a"})
	grown := base.With(PaneState{ID: "pane-2"})
	shrunk := grown.Without("pane-1")

	assert.Equal(t, 1, base.Len())
	assert.Equal(t, 2, grown.Len())
	assert.Equal(t, []PaneID{"pane-2"}, shrunk.IDs())

	p, ok := base.Get("pane-1")
	assert.True(t, ok)
	assert.True(t, p.HasContent())
	assert.False(t, base.Has("pane-2"))
}

func TestRegistry_IDsNumericOrder(t *testing.T) {
	reg := NewRegistry(PaneState{ID: "pane-10"}, PaneState{ID: "pane-2"}, PaneState{ID: "pane-1"})
	assert.Equal(t, []PaneID{"pane-1", "pane-2", "pane-10"}, reg.IDs())
}

func TestRegistry_ZeroValue(t *testing.T) {
	var reg Registry
	assert.Equal(t, 0, reg.Len())
	assert.False(t, reg.Has("pane-1"))
	assert.Equal(t, 1, reg.With(PaneState{ID: "pane-1"}).Len())
}
