package tui_test

import (
	"fmt"

	"github.com/MikeBiancalana/quire/internal/engine"
	"github.com/MikeBiancalana/quire/internal/layout"
	"github.com/MikeBiancalana/quire/internal/tui"
)

// ExampleArrange lays out a pane beside a stack of two panes.
func ExampleArrange() {
	s := engine.New("")
	s = engine.Apply(s, engine.Split{Orientation: layout.Vertical, ContentRef: "b"})
	s = engine.Apply(s, engine.Split{Orientation: layout.Horizontal, ContentRef: "c"})

	rects := tui.Arrange(s.Tree, tui.Rect{Width: 120, Height: 30}, nil)
	for _, id := range s.Leaves() {
		r := rects[id]
		fmt.Printf("%s: %dx%d at (%d,%d)\n", id, r.Width, r.Height, r.X, r.Y)
	}

	// Output:
	// pane-1: 60x30 at (0,0)
	// pane-2: 60x15 at (60,0)
	// pane-3: 60x15 at (60,15)
}
