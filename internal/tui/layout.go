package tui

import (
	"github.com/MikeBiancalana/quire/internal/engine"
	"github.com/MikeBiancalana/quire/internal/layout"
)

// Rect is a rectangle of terminal cells.
type Rect struct {
	X, Y          int
	Width, Height int
}

// WeightFunc lets the caller replace the stored size of a leaf. It is used
// to give a closing pane, whose stored size is already zero, the size its
// shrink animation has reached.
type WeightFunc func(id layout.PaneID) (float64, bool)

// Arrange assigns a rectangle to every leaf of n inside area. Each Split
// divides its span by its children's weights; integer cells are truncated
// and the remainder goes to the last child, so children always tile the
// parent exactly.
func Arrange(n layout.Node, area Rect, weight WeightFunc) map[layout.PaneID]Rect {
	out := make(map[layout.PaneID]Rect)
	arrange(n, area, weight, out)
	return out
}

func arrange(n layout.Node, area Rect, weight WeightFunc, out map[layout.PaneID]Rect) {
	switch n := n.(type) {
	case layout.Leaf:
		out[n.Pane] = area
	case layout.Split:
		sizes := make([]float64, len(n.Sizes))
		copy(sizes, n.Sizes)
		if weight != nil {
			for i, c := range n.Children {
				if leaf, ok := c.(layout.Leaf); ok {
					if w, ok := weight(leaf.Pane); ok {
						sizes[i] = w
					}
				}
			}
		}
		tracks := engine.GridTracks(layout.Split{Sizes: sizes})

		span := area.Width
		if n.Orientation == layout.Horizontal {
			span = area.Height
		}
		cells := splitSpan(span, tracks)

		offset := 0
		for i, child := range n.Children {
			sub := area
			if n.Orientation == layout.Horizontal {
				sub.Y = area.Y + offset
				sub.Height = cells[i]
			} else {
				sub.X = area.X + offset
				sub.Width = cells[i]
			}
			offset += cells[i]
			arrange(child, sub, weight, out)
		}
	}
}

// splitSpan divides span cells by tracks, which sum to 1.
func splitSpan(span int, tracks []float64) []int {
	out := make([]int, len(tracks))
	if len(tracks) == 0 {
		return out
	}
	used := 0
	for i := 0; i < len(tracks)-1; i++ {
		out[i] = int(tracks[i] * float64(span))
		used += out[i]
	}
	out[len(tracks)-1] = max(span-used, 0)
	return out
}
