package engine

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/MikeBiancalana/quire/internal/layout"
)

// ErrUnknownCommand is returned by ParseCommand for an unrecognised verb.
var ErrUnknownCommand = errors.New("unknown command")

// ParseCommand turns a textual command, as typed in the command palette or
// listed in a replay script, into a Command. Commands that target a pane
// default to the focused pane of s.
//
//	split v|h [ref]      close [pane]        complete [pane]
//	focus <pane>|<dir>   move <dir>          jump <n>
//	balance              zoom                open [pane] <ref>
//	reset [ref]          leader on|off       settle [pane]
func ParseCommand(line string, s State) (Command, error) {
	fields := strings.Fields(line)
	if len(fields) == 0 {
		return nil, fmt.Errorf("empty command")
	}
	verb, args := strings.ToLower(fields[0]), fields[1:]

	pane := func() layout.PaneID {
		if len(args) > 0 {
			return layout.PaneID(args[0])
		}
		return s.Focused
	}

	switch verb {
	case "split":
		if len(args) == 0 {
			return nil, fmt.Errorf("split: missing orientation")
		}
		o, err := layout.ParseOrientation(args[0])
		if err != nil {
			return nil, fmt.Errorf("split: %w", err)
		}
		c := Split{Orientation: o}
		if len(args) > 1 {
			c.ContentRef = args[1]
		}
		return c, nil
	case "close":
		return PrepareClose{Pane: pane()}, nil
	case "complete":
		return CompleteClose{Pane: pane()}, nil
	case "focus":
		if len(args) == 0 {
			return nil, fmt.Errorf("focus: missing pane or direction")
		}
		if d, err := ParseDirection(args[0]); err == nil {
			return FocusDirection{Direction: d}, nil
		}
		return FocusPane{Pane: layout.PaneID(args[0])}, nil
	case "move":
		if len(args) == 0 {
			return nil, fmt.Errorf("move: missing direction")
		}
		d, err := ParseDirection(args[0])
		if err != nil {
			return nil, fmt.Errorf("move: %w", err)
		}
		return MovePane{Direction: d}, nil
	case "jump":
		if len(args) == 0 {
			return nil, fmt.Errorf("jump: missing index")
		}
		n, err := strconv.Atoi(args[0])
		if err != nil {
			return nil, fmt.Errorf("jump: invalid index %q: %w", args[0], err)
		}
		return JumpToPane{Index: n}, nil
	case "balance":
		return Balance{}, nil
	case "zoom":
		return ToggleZoom{}, nil
	case "open":
		switch len(args) {
		case 0:
			return nil, fmt.Errorf("open: missing content reference")
		case 1:
			return SetPaneConversation{Pane: s.Focused, ContentRef: args[0]}, nil
		default:
			return SetPaneConversation{Pane: layout.PaneID(args[0]), ContentRef: args[1]}, nil
		}
	case "reset":
		c := Reset{}
		if len(args) > 0 {
			c.ContentRef = args[0]
		}
		return c, nil
	case "leader":
		if len(args) == 0 {
			return nil, fmt.Errorf("leader: missing on|off")
		}
		on, err := parseSwitch(args[0])
		if err != nil {
			return nil, fmt.Errorf("leader: %w", err)
		}
		return SetLeaderActive{Active: on}, nil
	case "settle":
		return ClearNewPane{Pane: pane()}, nil
	case "unanimate":
		return ClearNavigationAnimation{}, nil
	}
	return nil, fmt.Errorf("%w: %q", ErrUnknownCommand, verb)
}

func parseSwitch(s string) (bool, error) {
	switch strings.ToLower(s) {
	case "on", "true", "1":
		return true, nil
	case "off", "false", "0":
		return false, nil
	}
	return false, fmt.Errorf("expected on or off, got %q", s)
}
