package keys

import (
	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
)

// HelpMap adapts a Keymap to help.KeyMap. ShortHelp lists the layout
// actions only; FullHelp lists everything in columns of rows.
type HelpMap struct {
	Keymap *Keymap
	Rows   int
}

var _ help.KeyMap = HelpMap{}

var shortActions = map[Action]bool{
	SplitVertical:   true,
	SplitHorizontal: true,
	Close:           true,
	Zoom:            true,
	PickNote:        true,
}

func (h HelpMap) ShortHelp() []key.Binding {
	var out []key.Binding
	for _, b := range h.Keymap.KeyBindings() {
		if a, ok := h.Keymap.Lookup(b.Keys()[0]); ok && shortActions[a] {
			out = append(out, b)
		}
	}
	return out
}

func (h HelpMap) FullHelp() [][]key.Binding {
	rows := h.Rows
	if rows <= 0 {
		rows = 6
	}
	all := h.Keymap.KeyBindings()
	var cols [][]key.Binding
	for len(all) > 0 {
		n := min(rows, len(all))
		cols = append(cols, all[:n])
		all = all[n:]
	}
	return cols
}
