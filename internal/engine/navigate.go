package engine

import "github.com/MikeBiancalana/quire/internal/layout"

func applyFocusPane(s State, c FocusPane) (State, bool) {
	if s.Focused == c.Pane || !s.Panes.Has(c.Pane) {
		return s, false
	}
	s.Focused = c.Pane
	return s, true
}

// neighbour returns the leaf next to the focused one in direction d, clamped
// at both ends of the sequence.
func neighbour(s State, d Direction) (layout.PaneID, bool) {
	leaves := layout.Leaves(s.Tree)
	idx := indexOf(leaves, s.Focused)
	if idx < 0 {
		return "", false
	}
	j := idx + d.step()
	if j < 0 || j >= len(leaves) {
		return "", false
	}
	return leaves[j], true
}

func applyFocusDirection(s State, c FocusDirection) (State, bool) {
	to, ok := neighbour(s, c.Direction)
	if !ok {
		return s, false
	}
	s.Navigation = &NavigationAnimation{From: s.Focused, To: to, Direction: c.Direction}
	s.Focused = to
	return s, true
}

func applyMovePane(s State, c MovePane) (State, bool) {
	to, ok := neighbour(s, c.Direction)
	if !ok {
		return s, false
	}
	from, _ := s.Panes.Get(s.Focused)
	dst, _ := s.Panes.Get(to)
	from.ContentRef, dst.ContentRef = dst.ContentRef, from.ContentRef
	s.Panes = s.Panes.With(from).With(dst)

	// A pending content request belongs to the empty slot, which moved too.
	switch s.PendingContent {
	case from.ID:
		s.PendingContent = dst.ID
	case dst.ID:
		s.PendingContent = from.ID
	}
	s.Focused = to
	return s, true
}

func applyJumpToPane(s State, c JumpToPane) (State, bool) {
	leaves := layout.Leaves(s.Tree)
	if c.Index < 1 || c.Index > len(leaves) {
		return s, false
	}
	target := leaves[c.Index-1]
	if target == s.Focused {
		return s, false
	}
	s.Focused = target
	return s, true
}
