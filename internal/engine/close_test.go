package engine

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MikeBiancalana/quire/internal/layout"
)

func TestCompleteClose_SolePaneIsNoop(t *testing.T) {
	s := New("A")
	// force the marker so only the single-leaf guard can reject it
	s.Closing = []layout.PaneID{"pane-1"}

	next, changed := ApplyChanged(s, CompleteClose{Pane: "pane-1"})
	assert.False(t, changed)
	assert.Equal(t, s.Tree, next.Tree)
	assert.Equal(t, s.Panes.IDs(), next.Panes.IDs())
}

func TestPrepareClose_SolePaneIsNoop(t *testing.T) {
	s := New("A")
	next, changed := ApplyChanged(s, PrepareClose{Pane: "pane-1"})
	assert.False(t, changed)
	assert.Empty(t, next.Closing)
}

func TestPrepareClose_UnknownPaneIsNoop(t *testing.T) {
	s := scenarioB(t)
	_, changed := ApplyChanged(s, PrepareClose{Pane: "pane-9"})
	assert.False(t, changed)
}

func TestPrepareClose_SecondCallForSamePaneIsNoop(t *testing.T) {
	s := run(t, New(""),
		Split{Orientation: layout.Vertical},
		Split{Orientation: layout.Vertical},
		PrepareClose{Pane: "pane-2"},
	)
	before := layout.Format(s.Tree)

	next, changed := ApplyChanged(s, PrepareClose{Pane: "pane-2"})
	assert.False(t, changed)
	assert.Equal(t, before, layout.Format(next.Tree), "sizes are not redistributed twice")
}

func TestPrepareClose_RedistributesProportionally(t *testing.T) {
	s := New("")
	s.Tree = layout.Split{
		Orientation: layout.Vertical,
		Sizes:       []float64{20, 30, 50},
		Children:    []layout.Node{layout.NewLeaf("pane-1"), layout.NewLeaf("pane-2"), layout.NewLeaf("pane-3")},
	}
	s.Panes = layout.NewRegistry(
		layout.PaneState{ID: "pane-1"}, layout.PaneState{ID: "pane-2"}, layout.PaneState{ID: "pane-3"},
	)
	s.Seq = layout.Sequence{}
	require.NoError(t, s.Validate())

	s = run(t, s, PrepareClose{Pane: "pane-1"})
	split := s.Tree.(layout.Split)
	assert.InDeltaSlice(t, []float64{0, 37.5, 62.5}, split.Sizes, layout.Epsilon)
}

func TestCompleteClose_FirstCallerWins(t *testing.T) {
	s := run(t, scenarioB(t), PrepareClose{Pane: "pane-3"})

	// animation end and fallback timer both deliver the completion
	first, changed := ApplyChanged(s, CompleteClose{Pane: "pane-3"})
	require.True(t, changed)
	second, changed := ApplyChanged(first, CompleteClose{Pane: "pane-3"})
	assert.False(t, changed)
	assert.Equal(t, first, second)
}

func TestCompleteClose_WithoutPrepareIsNoop(t *testing.T) {
	s := scenarioB(t)
	next, changed := ApplyChanged(s, CompleteClose{Pane: "pane-2"})
	assert.False(t, changed)
	assert.Equal(t, s, next)
}

func TestConcurrentCloses_AreIndependent(t *testing.T) {
	s := run(t, New(""),
		Split{Orientation: layout.Vertical},
		Split{Orientation: layout.Vertical},
		Split{Orientation: layout.Vertical},
		PrepareClose{Pane: "pane-2"},
		PrepareClose{Pane: "pane-4"},
	)
	assert.Equal(t, []layout.PaneID{"pane-2", "pane-4"}, s.Closing)
	assert.Equal(t, layout.PaneID("pane-4"), s.ClosingPaneID())

	// completions may arrive in either order
	s = run(t, s, CompleteClose{Pane: "pane-2"})
	assert.Equal(t, []layout.PaneID{"pane-4"}, s.Closing)
	s = run(t, s, CompleteClose{Pane: "pane-4"})
	assert.Empty(t, s.Closing)
	assert.Equal(t, []layout.PaneID{"pane-1", "pane-3"}, s.Leaves())
}

func TestPrepareClose_KeepsOneSurvivor(t *testing.T) {
	s := run(t, New(""), Split{Orientation: layout.Vertical}, PrepareClose{Pane: "pane-1"})

	_, changed := ApplyChanged(s, PrepareClose{Pane: "pane-2"})
	assert.False(t, changed, "closing both panes would leave an empty tree")
}

func TestCompleteClose_FocusMovesToPreceding(t *testing.T) {
	s := run(t, New(""),
		Split{Orientation: layout.Vertical},
		Split{Orientation: layout.Vertical},
		FocusPane{Pane: "pane-2"},
		PrepareClose{Pane: "pane-2"},
		CompleteClose{Pane: "pane-2"},
	)
	assert.Equal(t, layout.PaneID("pane-1"), s.Focused)
}

func TestCompleteClose_FirstLeafFocusesFollowing(t *testing.T) {
	s := run(t, New(""),
		Split{Orientation: layout.Vertical},
		FocusPane{Pane: "pane-1"},
		PrepareClose{Pane: "pane-1"},
		CompleteClose{Pane: "pane-1"},
	)
	assert.Equal(t, layout.PaneID("pane-2"), s.Focused)
	assert.Equal(t, layout.NewLeaf("pane-2"), s.Tree)
}

func TestCompleteClose_ClearsMarkers(t *testing.T) {
	s := run(t, scenarioB(t), ToggleZoom{}, FocusDirection{Direction: DirPrev})
	require.Equal(t, layout.PaneID("pane-3"), s.Zoomed)
	require.NotNil(t, s.Navigation)

	s = run(t, s, PrepareClose{Pane: "pane-3"}, CompleteClose{Pane: "pane-3"})
	assert.Empty(t, s.Zoomed)
	assert.Nil(t, s.Navigation)
	assert.False(t, s.IsNew("pane-3"))
	assert.NotEqual(t, layout.PaneID("pane-3"), s.PendingContent)
}

func TestCompleteClose_NoCascadeIntoGrandparent(t *testing.T) {
	// V(pane-1, H(pane-2, V(pane-3, pane-4)))
	s := run(t, scenarioB(t), Split{Orientation: layout.Vertical})
	s = run(t, s, PrepareClose{Pane: "pane-2"}, CompleteClose{Pane: "pane-2"})

	assert.Equal(t, "V[50 50](pane-1 V[50 50](pane-3 pane-4))", layout.Format(s.Tree))
}
