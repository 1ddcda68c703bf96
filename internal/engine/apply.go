package engine

import "github.com/MikeBiancalana/quire/internal/layout"

// Apply returns the state that results from cmd. Commands that do not make
// sense for s (unknown panes, closing the last pane, a late CompleteClose,
// ...) return s unchanged.
func Apply(s State, cmd Command) State {
	next, _ := ApplyChanged(s, cmd)
	return next
}

// ApplyChanged is Apply that also reports whether cmd changed anything.
func ApplyChanged(s State, cmd Command) (State, bool) {
	switch c := cmd.(type) {
	case Split:
		return applySplit(s, c)
	case PrepareClose:
		return applyPrepareClose(s, c)
	case CompleteClose:
		return applyCompleteClose(s, c)
	case FocusPane:
		return applyFocusPane(s, c)
	case FocusDirection:
		return applyFocusDirection(s, c)
	case ClearNavigationAnimation:
		if s.Navigation == nil {
			return s, false
		}
		s.Navigation = nil
		return s, true
	case MovePane:
		return applyMovePane(s, c)
	case Balance:
		return applyBalance(s)
	case ToggleZoom:
		return applyToggleZoom(s)
	case SetPaneConversation:
		return applySetPaneConversation(s, c)
	case JumpToPane:
		return applyJumpToPane(s, c)
	case Reset:
		return New(c.ContentRef), true
	case SetLeaderActive:
		if s.LeaderActive == c.Active {
			return s, false
		}
		s.LeaderActive = c.Active
		return s, true
	case ClearNewPane:
		if !s.IsNew(c.Pane) {
			return s, false
		}
		s.NewPanes = withoutID(s.NewPanes, c.Pane)
		return s, true
	}
	return s, false
}

func applySplit(s State, c Split) (State, bool) {
	if s.Focused == "" || s.IsClosing(s.Focused) {
		return s, false
	}
	id, seq := s.Seq.Next()
	tree, ok := layout.SplitLeaf(s.Tree, s.Focused, c.Orientation, id)
	if !ok {
		return s, false
	}
	s.Tree = tree
	s.Seq = seq
	s.Panes = s.Panes.With(layout.PaneState{ID: id, ContentRef: c.ContentRef})
	s.Focused = id
	// A zoomed view would hide the pane that just took focus.
	s.Zoomed = ""
	s.NewPanes = withID(s.NewPanes, id)
	if c.ContentRef == "" {
		s.PendingContent = id
	}
	return s, true
}

func applyBalance(s State) (State, bool) {
	tree := layout.Balance(s.Tree)
	if layout.Equal(tree, s.Tree) {
		return s, false
	}
	s.Tree = tree
	return s, true
}

func applyToggleZoom(s State) (State, bool) {
	if s.Focused == "" {
		return s, false
	}
	if s.Zoomed == s.Focused {
		s.Zoomed = ""
	} else {
		s.Zoomed = s.Focused
	}
	return s, true
}

func applySetPaneConversation(s State, c SetPaneConversation) (State, bool) {
	p, ok := s.Panes.Get(c.Pane)
	if !ok {
		return s, false
	}
	changed := false
	if p.ContentRef != c.ContentRef {
		p.ContentRef = c.ContentRef
		s.Panes = s.Panes.With(p)
		changed = true
	}
	if s.PendingContent == c.Pane && c.ContentRef != "" {
		s.PendingContent = ""
		changed = true
	}
	return s, changed
}
