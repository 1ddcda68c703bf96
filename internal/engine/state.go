// Package engine implements the pane layout state machine. Apply is a pure
// function from a State and a Command to the next State; Store serializes
// commands from the UI and publishes snapshots to observers.
package engine

import (
	"fmt"
	"strings"

	"github.com/MikeBiancalana/quire/internal/layout"
)

// Direction is a navigation request. Navigation is linear over the pre-order
// leaf sequence: Left and Up step backwards, Right and Down step forwards.
// The visual direction is kept so the renderer can animate accordingly.
type Direction int

const (
	DirPrev Direction = iota
	DirNext
	DirLeft
	DirRight
	DirUp
	DirDown
)

func (d Direction) String() string {
	switch d {
	case DirPrev:
		return "prev"
	case DirNext:
		return "next"
	case DirLeft:
		return "left"
	case DirRight:
		return "right"
	case DirUp:
		return "up"
	case DirDown:
		return "down"
	default:
		return "unknown"
	}
}

// step returns -1 for backwards directions and +1 for forwards ones.
func (d Direction) step() int {
	switch d {
	case DirPrev, DirLeft, DirUp:
		return -1
	default:
		return 1
	}
}

// ParseDirection accepts the names returned by Direction.String.
func ParseDirection(s string) (Direction, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "prev", "previous":
		return DirPrev, nil
	case "next":
		return DirNext, nil
	case "left":
		return DirLeft, nil
	case "right":
		return DirRight, nil
	case "up":
		return DirUp, nil
	case "down":
		return DirDown, nil
	}
	return 0, fmt.Errorf("unknown direction %q", s)
}

// NavigationAnimation describes a focus move for the renderer to animate.
type NavigationAnimation struct {
	From      layout.PaneID
	To        layout.PaneID
	Direction Direction
}

// State is the aggregate layout state of a workspace session. States are
// values; Apply never modifies the State it is given.
type State struct {
	Tree  layout.Node
	Panes layout.Registry
	Seq   layout.Sequence

	Focused layout.PaneID
	// Zoomed is empty when no pane is zoomed.
	Zoomed layout.PaneID
	// Closing lists panes between PrepareClose and CompleteClose, oldest first.
	Closing []layout.PaneID

	Navigation *NavigationAnimation
	// NewPanes are panes whose enter animation has not been acknowledged.
	NewPanes []layout.PaneID

	LeaderActive bool
	// PendingContent is a pane waiting for the host to supply content.
	PendingContent layout.PaneID
}

// New returns the initial single-pane state. contentRef may be empty.
func New(contentRef string) State {
	id, seq := layout.Sequence{}.Next()
	return State{
		Tree:    layout.NewLeaf(id),
		Panes:   layout.NewRegistry(layout.PaneState{ID: id, ContentRef: contentRef}),
		Seq:     seq,
		Focused: id,
	}
}

// ClosingPaneID returns the most recently closing pane, or "".
func (s State) ClosingPaneID() layout.PaneID {
	if len(s.Closing) == 0 {
		return ""
	}
	return s.Closing[len(s.Closing)-1]
}

// IsClosing reports whether id is between the two close phases.
func (s State) IsClosing(id layout.PaneID) bool {
	return containsID(s.Closing, id)
}

// IsNew reports whether id is still marked for its enter animation.
func (s State) IsNew(id layout.PaneID) bool {
	return containsID(s.NewPanes, id)
}

// Leaves returns the pre-order leaf sequence.
func (s State) Leaves() []layout.PaneID {
	return layout.Leaves(s.Tree)
}

// Pane returns the registry entry for id.
func (s State) Pane(id layout.PaneID) (layout.PaneState, bool) {
	return s.Panes.Get(id)
}

// Validate checks the tree invariants and that every marker refers to a
// live pane.
func (s State) Validate() error {
	if err := layout.Validate(s.Tree, s.Panes); err != nil {
		return err
	}
	if !s.Panes.Has(s.Focused) {
		return fmt.Errorf("focused pane %s is not registered", s.Focused)
	}
	for _, id := range []layout.PaneID{s.Zoomed, s.PendingContent} {
		if id != "" && !s.Panes.Has(id) {
			return fmt.Errorf("pane %s is referenced but not registered", id)
		}
	}
	for _, id := range s.Closing {
		if !s.Panes.Has(id) {
			return fmt.Errorf("closing pane %s is not registered", id)
		}
	}
	return nil
}

func containsID(ids []layout.PaneID, id layout.PaneID) bool {
	for _, v := range ids {
		if v == id {
			return true
		}
	}
	return false
}

func indexOf(ids []layout.PaneID, id layout.PaneID) int {
	for i, v := range ids {
		if v == id {
			return i
		}
	}
	return -1
}

// withID returns a new slice with id appended unless already present.
func withID(ids []layout.PaneID, id layout.PaneID) []layout.PaneID {
	if containsID(ids, id) {
		return ids
	}
	out := make([]layout.PaneID, len(ids), len(ids)+1)
	copy(out, ids)
	return append(out, id)
}

// withoutID returns a new slice without id; nil when it becomes empty.
func withoutID(ids []layout.PaneID, id layout.PaneID) []layout.PaneID {
	var out []layout.PaneID
	for _, v := range ids {
		if v != id {
			out = append(out, v)
		}
	}
	return out
}
