package engine

import "github.com/MikeBiancalana/quire/internal/layout"

// Command is one request to the layout engine.
type Command interface {
	Kind() string
}

// Split divides the focused pane and focuses the new one.
type Split struct {
	Orientation layout.Orientation
	ContentRef  string
}

// PrepareClose starts closing a pane: its size drops to zero but it stays in
// the tree until CompleteClose.
type PrepareClose struct {
	Pane layout.PaneID
}

// CompleteClose removes a pane previously passed to PrepareClose.
type CompleteClose struct {
	Pane layout.PaneID
}

// FocusPane focuses a pane by id.
type FocusPane struct {
	Pane layout.PaneID
}

// FocusDirection moves focus to the neighbouring leaf in pre-order.
type FocusDirection struct {
	Direction Direction
}

// ClearNavigationAnimation drops the navigation descriptor once the
// renderer has finished the transition.
type ClearNavigationAnimation struct{}

// MovePane swaps content between the focused pane and its neighbour.
type MovePane struct {
	Direction Direction
}

// Balance resets every split to equal sizes.
type Balance struct{}

// ToggleZoom zooms the focused pane or clears the zoom.
type ToggleZoom struct{}

// SetPaneConversation assigns content to a pane.
type SetPaneConversation struct {
	Pane       layout.PaneID
	ContentRef string
}

// JumpToPane focuses the Index-th leaf (1-based) in pre-order.
type JumpToPane struct {
	Index int
}

// Reset discards the state and starts over with a single pane.
type Reset struct {
	ContentRef string
}

// SetLeaderActive toggles the leader-mode flag.
type SetLeaderActive struct {
	Active bool
}

// ClearNewPane acknowledges a pane's enter animation.
type ClearNewPane struct {
	Pane layout.PaneID
}

func (Split) Kind() string                    { return "split" }
func (PrepareClose) Kind() string             { return "prepare_close" }
func (CompleteClose) Kind() string            { return "complete_close" }
func (FocusPane) Kind() string                { return "focus_pane" }
func (FocusDirection) Kind() string           { return "focus_direction" }
func (ClearNavigationAnimation) Kind() string { return "clear_navigation_animation" }
func (MovePane) Kind() string                 { return "move_pane" }
func (Balance) Kind() string                  { return "balance" }
func (ToggleZoom) Kind() string               { return "toggle_zoom" }
func (SetPaneConversation) Kind() string      { return "set_pane_conversation" }
func (JumpToPane) Kind() string               { return "jump_to_pane" }
func (Reset) Kind() string                    { return "reset" }
func (SetLeaderActive) Kind() string          { return "set_leader_active" }
func (ClearNewPane) Kind() string             { return "clear_new_pane" }
