package keys

import (
	tea "github.com/charmbracelet/bubbletea"

	"github.com/MikeBiancalana/quire/internal/layout"
)

// Handler runs an action for one pane. It receives the original key so it
// can inspect modifiers.
type Handler func(tea.KeyMsg) tea.Cmd

// Event is a key press as seen by the dispatcher.
type Event struct {
	Key tea.KeyMsg
	// InTextEntry is set when the key went to a text input.
	InTextEntry bool
}

// Dispatcher routes key presses to the handlers of the focused pane only.
// The focused pane, modal state and leader state are read through funcs on
// every event, never cached.
type Dispatcher struct {
	keymap   *Keymap
	leader   *Keymap
	handlers map[layout.PaneID]map[Action]Handler

	focused      func() layout.PaneID
	modalOpen    func() bool
	leaderActive func() bool
}

type DispatcherOption func(*Dispatcher)

// WithModal makes the dispatcher ignore keys while open returns true.
func WithModal(open func() bool) DispatcherOption {
	return func(d *Dispatcher) { d.modalOpen = open }
}

// WithLeader resolves keys through table while active returns true.
func WithLeader(table *Keymap, active func() bool) DispatcherOption {
	return func(d *Dispatcher) {
		d.leader = table
		d.leaderActive = active
	}
}

func NewDispatcher(keymap *Keymap, focused func() layout.PaneID, opts ...DispatcherOption) *Dispatcher {
	d := &Dispatcher{
		keymap:       keymap,
		handlers:     make(map[layout.PaneID]map[Action]Handler),
		focused:      focused,
		modalOpen:    func() bool { return false },
		leaderActive: func() bool { return false },
	}
	for _, opt := range opts {
		opt(d)
	}
	return d
}

// Register adds or replaces the handler for action on pane.
func (d *Dispatcher) Register(pane layout.PaneID, action Action, h Handler) {
	m, ok := d.handlers[pane]
	if !ok {
		m = make(map[Action]Handler)
		d.handlers[pane] = m
	}
	m[action] = h
}

// RegisterAll registers every entry of hs for pane.
func (d *Dispatcher) RegisterAll(pane layout.PaneID, hs map[Action]Handler) {
	for a, h := range hs {
		d.Register(pane, a, h)
	}
}

// Unregister drops every handler of pane.
func (d *Dispatcher) Unregister(pane layout.PaneID) {
	delete(d.handlers, pane)
}

// Registered reports whether pane has any handlers.
func (d *Dispatcher) Registered(pane layout.PaneID) bool {
	return len(d.handlers[pane]) > 0
}

// Panes returns the panes that currently have handlers.
func (d *Dispatcher) Panes() []layout.PaneID {
	out := make([]layout.PaneID, 0, len(d.handlers))
	for id := range d.handlers {
		out = append(out, id)
	}
	return out
}

// Resolve maps a key to an action using the leader table when leader is
// set and the direct table otherwise.
func (d *Dispatcher) Resolve(k string, leader bool) (Action, bool) {
	if leader {
		if d.leader == nil {
			return "", false
		}
		return d.leader.Lookup(k)
	}
	return d.keymap.Lookup(k)
}

// Dispatch handles one key press. It reports whether the key was consumed
// and returns the handler's command, if any.
func (d *Dispatcher) Dispatch(ev Event) (bool, tea.Cmd) {
	if ev.InTextEntry || d.modalOpen() {
		return false, nil
	}
	hs := d.handlers[d.focused()]
	if len(hs) == 0 {
		return false, nil
	}
	action, ok := d.Resolve(ev.Key.String(), d.leaderActive())
	if !ok {
		return false, nil
	}
	h, ok := hs[action]
	if !ok {
		return false, nil
	}
	return true, h(ev.Key)
}
