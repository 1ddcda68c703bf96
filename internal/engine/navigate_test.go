package engine

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MikeBiancalana/quire/internal/layout"
)

func TestFocusDirection_LinearPreOrder(t *testing.T) {
	tests := []struct {
		name  string
		from  layout.PaneID
		dir   Direction
		want  layout.PaneID
		moved bool
	}{
		{"next from first", "pane-1", DirNext, "pane-2", true},
		{"right is next", "pane-2", DirRight, "pane-3", true},
		{"down is next", "pane-1", DirDown, "pane-2", true},
		{"prev from last", "pane-3", DirPrev, "pane-2", true},
		{"left is prev", "pane-2", DirLeft, "pane-1", true},
		{"up is prev", "pane-3", DirUp, "pane-2", true},
		{"clamped at start", "pane-1", DirPrev, "pane-1", false},
		{"clamped at end", "pane-3", DirNext, "pane-3", false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := run(t, scenarioB(t), FocusPane{Pane: tt.from}, ClearNavigationAnimation{})

			next, changed := ApplyChanged(s, FocusDirection{Direction: tt.dir})
			assert.Equal(t, tt.moved, changed)
			assert.Equal(t, tt.want, next.Focused)
			assert.Contains(t, next.Leaves(), next.Focused)
			if tt.moved {
				require.NotNil(t, next.Navigation)
				assert.Equal(t, NavigationAnimation{From: tt.from, To: tt.want, Direction: tt.dir}, *next.Navigation)
			} else {
				assert.Nil(t, next.Navigation)
			}
		})
	}
}

func TestClearNavigationAnimation(t *testing.T) {
	s := run(t, scenarioB(t), FocusDirection{Direction: DirPrev})
	require.NotNil(t, s.Navigation)

	s = run(t, s, ClearNavigationAnimation{})
	assert.Nil(t, s.Navigation)
	_, changed := ApplyChanged(s, ClearNavigationAnimation{})
	assert.False(t, changed)
}

func TestFocusPane_UnknownIsNoop(t *testing.T) {
	s := scenarioB(t)
	next, changed := ApplyChanged(s, FocusPane{Pane: "pane-42"})
	assert.False(t, changed)
	assert.Equal(t, s.Focused, next.Focused)
}

func TestJumpToPane(t *testing.T) {
	s := scenarioB(t)

	s = run(t, s, JumpToPane{Index: 1})
	assert.Equal(t, layout.PaneID("pane-1"), s.Focused)

	s = run(t, s, JumpToPane{Index: 3})
	assert.Equal(t, layout.PaneID("pane-3"), s.Focused)

	for _, idx := range []int{0, 4, -1} {
		_, changed := ApplyChanged(s, JumpToPane{Index: idx})
		assert.False(t, changed, "index %d", idx)
	}
}

func TestMovePane_ClampedAtEnds(t *testing.T) {
	s := run(t, New("A"), Split{Orientation: layout.Vertical, ContentRef: "B"})
	next, changed := ApplyChanged(s, MovePane{Direction: DirNext})
	assert.False(t, changed)
	assert.Equal(t, s, next)
}

func TestMovePane_PendingRequestFollowsEmptySlot(t *testing.T) {
	s := run(t, New("A"), Split{Orientation: layout.Vertical})
	require.Equal(t, layout.PaneID("pane-2"), s.PendingContent)

	s = run(t, s, MovePane{Direction: DirPrev})
	p1, _ := s.Pane("pane-1")
	p2, _ := s.Pane("pane-2")
	assert.Empty(t, p1.ContentRef)
	assert.Equal(t, "A", p2.ContentRef)
	assert.Equal(t, layout.PaneID("pane-1"), s.PendingContent)
	assert.Equal(t, layout.PaneID("pane-1"), s.Focused)
}
