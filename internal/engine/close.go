package engine

import "github.com/MikeBiancalana/quire/internal/layout"

// Closing a pane takes two commands. PrepareClose zeroes the pane's size so
// the renderer can play a shrink transition while the pane is still in the
// tree; CompleteClose then removes it. CompleteClose only acts on a pane that
// is currently closing, so when both an animation-end event and a fallback
// timer deliver it, the first one wins and the second is ignored.

func applyPrepareClose(s State, c PrepareClose) (State, bool) {
	if s.IsClosing(c.Pane) {
		return s, false
	}
	leaves := layout.Leaves(s.Tree)
	if indexOf(leaves, c.Pane) < 0 {
		return s, false
	}
	// At least one pane has to survive every pending close.
	if len(leaves)-len(s.Closing) <= 1 {
		return s, false
	}
	tree, ok := layout.ShrinkToZero(s.Tree, c.Pane)
	if !ok {
		return s, false
	}
	s.Tree = tree
	s.Closing = withID(s.Closing, c.Pane)
	return s, true
}

func applyCompleteClose(s State, c CompleteClose) (State, bool) {
	if !s.IsClosing(c.Pane) {
		return s, false
	}
	leaves := layout.Leaves(s.Tree)
	if len(leaves) <= 1 {
		return s, false
	}
	idx := indexOf(leaves, c.Pane)
	if idx < 0 {
		return s, false
	}
	tree, ok := layout.RemoveLeaf(s.Tree, c.Pane)
	if !ok {
		return s, false
	}

	s.Tree = tree
	s.Panes = s.Panes.Without(c.Pane)
	s.Closing = withoutID(s.Closing, c.Pane)
	s.NewPanes = withoutID(s.NewPanes, c.Pane)

	if s.Focused == c.Pane {
		if idx > 0 {
			s.Focused = leaves[idx-1]
		} else {
			s.Focused = leaves[idx+1]
		}
	}
	if s.Zoomed == c.Pane {
		s.Zoomed = ""
	}
	if s.PendingContent == c.Pane {
		s.PendingContent = ""
	}
	if nav := s.Navigation; nav != nil && (nav.From == c.Pane || nav.To == c.Pane) {
		s.Navigation = nil
	}
	return s, true
}
