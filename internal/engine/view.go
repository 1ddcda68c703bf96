package engine

import "github.com/MikeBiancalana/quire/internal/layout"

// VisiblePanes returns the panes a renderer should show, in pre-order. When a
// pane is zoomed only that pane is visible.
func VisiblePanes(s State) []layout.PaneID {
	if s.Zoomed != "" && layout.Contains(s.Tree, s.Zoomed) {
		return []layout.PaneID{s.Zoomed}
	}
	return layout.Leaves(s.Tree)
}

// VisibleTree returns the tree to render. Zoom follows the path from the root
// to the zoomed leaf and treats each Split on it as having only the branch
// that holds the leaf, which leaves the zoomed leaf filling the whole area.
func VisibleTree(s State) layout.Node {
	if s.Zoomed == "" {
		return s.Tree
	}
	path, ok := layout.PathTo(s.Tree, s.Zoomed)
	if !ok {
		return s.Tree
	}
	return layout.At(s.Tree, path)
}

// GridTracks converts a Split's sizes into track weights that sum to 1.
func GridTracks(s layout.Split) []float64 {
	total := 0.0
	for _, v := range s.Sizes {
		total += v
	}
	out := make([]float64, len(s.Sizes))
	for i, v := range s.Sizes {
		if total > 0 {
			out[i] = v / total
		} else {
			out[i] = 1 / float64(len(s.Sizes))
		}
	}
	return out
}
