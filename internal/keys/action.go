// Package keys maps key presses to named pane actions and routes them to
// the handlers registered for the focused pane.
package keys

import (
	"fmt"
	"strings"
)

// Action names a pane operation a key can trigger.
type Action string

const (
	SplitVertical   Action = "split-vertical"
	SplitHorizontal Action = "split-horizontal"
	Close           Action = "close"
	FocusPrev       Action = "focus-prev"
	FocusNext       Action = "focus-next"
	FocusLeft       Action = "focus-left"
	FocusRight      Action = "focus-right"
	FocusUp         Action = "focus-up"
	FocusDown       Action = "focus-down"
	MovePrev        Action = "move-prev"
	MoveNext        Action = "move-next"
	Balance         Action = "balance"
	Zoom            Action = "zoom"
	PickNote        Action = "pick-note"
	FollowLink      Action = "follow-link"
	ScrollUp        Action = "scroll-up"
	ScrollDown      Action = "scroll-down"
)

// JumpAction returns the action that focuses the n-th pane (1-9).
func JumpAction(n int) Action {
	return Action(fmt.Sprintf("jump-%d", n))
}

// JumpIndex returns n for a jump-n action.
func (a Action) JumpIndex() (int, bool) {
	var n int
	if _, err := fmt.Sscanf(string(a), "jump-%d", &n); err != nil || n < 1 || n > 9 {
		return 0, false
	}
	return n, true
}

var descriptions = map[Action]string{
	SplitVertical:   "split right",
	SplitHorizontal: "split below",
	Close:           "close pane",
	FocusPrev:       "previous pane",
	FocusNext:       "next pane",
	FocusLeft:       "focus left",
	FocusRight:      "focus right",
	FocusUp:         "focus up",
	FocusDown:       "focus down",
	MovePrev:        "move content back",
	MoveNext:        "move content forward",
	Balance:         "balance",
	Zoom:            "zoom",
	PickNote:        "open note",
	FollowLink:      "follow link",
	ScrollUp:        "scroll up",
	ScrollDown:      "scroll down",
}

// Description returns a short human label for a.
func (a Action) Description() string {
	if d, ok := descriptions[a]; ok {
		return d
	}
	if n, ok := a.JumpIndex(); ok {
		return fmt.Sprintf("pane %d", n)
	}
	return string(a)
}

// ParseAction validates an action name from configuration.
func ParseAction(s string) (Action, error) {
	a := Action(strings.TrimSpace(strings.ToLower(s)))
	if _, ok := descriptions[a]; ok {
		return a, nil
	}
	if _, ok := a.JumpIndex(); ok {
		return a, nil
	}
	return "", fmt.Errorf("unknown action %q", s)
}
