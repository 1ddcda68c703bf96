package keys

import (
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/key"
)

// Keymap is a fixed table from key strings (tea.KeyMsg.String() format) to
// actions.
type Keymap struct {
	bindings map[string]Action
}

// DefaultBindings is the direct (non-leader) table.
func DefaultBindings() map[string]Action {
	m := map[string]Action{
		"alt+v": SplitVertical,
		"alt+s": SplitHorizontal,
		"alt+w": Close,
		"alt+h": FocusLeft,
		"alt+j": FocusDown,
		"alt+k": FocusUp,
		"alt+l": FocusRight,
		"alt+[": FocusPrev,
		"alt+]": FocusNext,
		"alt+H": MovePrev,
		"alt+L": MoveNext,
		"alt+=": Balance,
		"alt+z": Zoom,
		"alt+o": PickNote,
		"enter": FollowLink,
		"k":     ScrollUp,
		"up":    ScrollUp,
		"j":     ScrollDown,
		"down":  ScrollDown,
	}
	for i := 1; i <= 9; i++ {
		m["alt+"+strconv.Itoa(i)] = JumpAction(i)
	}
	return m
}

// DefaultLeaderBindings is the table used for the key after the leader.
func DefaultLeaderBindings() map[string]Action {
	m := map[string]Action{
		"v": SplitVertical,
		"%": SplitVertical,
		"s": SplitHorizontal,
		`"`: SplitHorizontal,
		"x": Close,
		"h": FocusLeft,
		"j": FocusDown,
		"k": FocusUp,
		"l": FocusRight,
		"p": FocusPrev,
		"n": FocusNext,
		"H": MovePrev,
		"L": MoveNext,
		"=": Balance,
		"z": Zoom,
		"o": PickNote,
	}
	for i := 1; i <= 9; i++ {
		m[strconv.Itoa(i)] = JumpAction(i)
	}
	return m
}

// NewKeymap copies defaults and applies overrides (key -> action name). An
// override with action "none" removes the key.
func NewKeymap(defaults map[string]Action, overrides map[string]string) (*Keymap, error) {
	km := &Keymap{bindings: make(map[string]Action, len(defaults)+len(overrides))}
	for k, a := range defaults {
		km.bindings[k] = a
	}
	for k, name := range overrides {
		if strings.EqualFold(name, "none") {
			delete(km.bindings, k)
			continue
		}
		a, err := ParseAction(name)
		if err != nil {
			return nil, fmt.Errorf("invalid binding for %q: %w", k, err)
		}
		km.bindings[k] = a
	}
	return km, nil
}

// Lookup maps a key to an action: exact match first, then a
// case-insensitive match.
func (km *Keymap) Lookup(k string) (Action, bool) {
	if a, ok := km.bindings[k]; ok {
		return a, true
	}
	if a, ok := km.bindings[strings.ToLower(k)]; ok {
		return a, true
	}
	return "", false
}

// Binding is one row of a keymap.
type Binding struct {
	Key    string
	Action Action
}

// Bindings returns the table sorted by action then key.
func (km *Keymap) Bindings() []Binding {
	out := make([]Binding, 0, len(km.bindings))
	for k, a := range km.bindings {
		out = append(out, Binding{Key: k, Action: a})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Action != out[j].Action {
			return out[i].Action < out[j].Action
		}
		return out[i].Key < out[j].Key
	})
	return out
}

// KeyBindings groups the table into bubbles key.Bindings, one per action.
func (km *Keymap) KeyBindings() []key.Binding {
	var (
		out  []key.Binding
		keys []string
		last Action
	)
	flush := func() {
		if len(keys) > 0 {
			out = append(out, key.NewBinding(
				key.WithKeys(keys...),
				key.WithHelp(strings.Join(keys, "/"), last.Description()),
			))
		}
	}
	for _, b := range km.Bindings() {
		if b.Action != last {
			flush()
			keys, last = nil, b.Action
		}
		keys = append(keys, b.Key)
	}
	flush()
	return out
}
