package layout

// Leaves returns the pane ids of every leaf in pre-order (left to right,
// depth first). This ordering drives linear navigation.
func Leaves(n Node) []PaneID {
	var out []PaneID
	var walk func(Node)
	walk = func(n Node) {
		switch v := n.(type) {
		case Leaf:
			out = append(out, v.Pane)
		case Split:
			for _, child := range v.Children {
				walk(child)
			}
		}
	}
	walk(n)
	return out
}

// Contains reports whether the tree has a leaf for id.
func Contains(n Node, id PaneID) bool {
	_, ok := PathTo(n, id)
	return ok
}

// PathTo returns the child indices leading from the root to the leaf for id.
// The path of a root leaf is empty.
func PathTo(n Node, id PaneID) ([]int, bool) {
	switch v := n.(type) {
	case Leaf:
		return nil, v.Pane == id
	case Split:
		for i, child := range v.Children {
			if rest, ok := PathTo(child, id); ok {
				return append([]int{i}, rest...), true
			}
		}
	}
	return nil, false
}

// At returns the node at path, or nil when the path does not exist.
func At(n Node, path []int) Node {
	for _, idx := range path {
		s, ok := n.(Split)
		if !ok || idx < 0 || idx >= len(s.Children) {
			return nil
		}
		n = s.Children[idx]
	}
	return n
}

// replaceAt returns a copy of n with the node at path swapped for repl.
// Only the Splits along the path are copied; untouched subtrees are shared.
func replaceAt(n Node, path []int, repl Node) Node {
	if len(path) == 0 {
		return repl
	}
	s := n.(Split).clone()
	s.Children[path[0]] = replaceAt(s.Children[path[0]], path[1:], repl)
	return s
}

// SplitLeaf wraps the leaf for target in a new two-way Split of the given
// orientation, with target first and newID second at equal sizes.
func SplitLeaf(root Node, target PaneID, o Orientation, newID PaneID) (Node, bool) {
	path, ok := PathTo(root, target)
	if !ok {
		return root, false
	}
	repl := Split{
		Orientation: o,
		Sizes:       []float64{Total / 2, Total / 2},
		Children:    []Node{Leaf{Pane: target}, Leaf{Pane: newID}},
	}
	return replaceAt(root, path, repl), true
}

// ShrinkToZero sets the size of id within its parent Split to zero and hands
// the freed space to its siblings in proportion to their current sizes. The
// tree shape does not change. A root leaf has no parent and cannot shrink.
func ShrinkToZero(root Node, id PaneID) (Node, bool) {
	path, ok := PathTo(root, id)
	if !ok || len(path) == 0 {
		return root, false
	}
	parentPath, idx := path[:len(path)-1], path[len(path)-1]
	parent := At(root, parentPath).(Split).clone()
	parent.Sizes = redistribute(parent.Sizes, idx)
	return replaceAt(root, parentPath, parent), true
}

// RemoveLeaf removes the leaf for id. A parent left with one child is
// replaced by that child; otherwise the survivors are renormalized. Only the
// immediate parent is collapsed.
func RemoveLeaf(root Node, id PaneID) (Node, bool) {
	path, ok := PathTo(root, id)
	if !ok || len(path) == 0 {
		return root, false
	}
	parentPath, idx := path[:len(path)-1], path[len(path)-1]
	parent := At(root, parentPath).(Split)

	children := make([]Node, 0, len(parent.Children)-1)
	sizes := make([]float64, 0, len(parent.Sizes)-1)
	for i := range parent.Children {
		if i == idx {
			continue
		}
		children = append(children, parent.Children[i])
		sizes = append(sizes, parent.Sizes[i])
	}

	var repl Node
	if len(children) == 1 {
		repl = children[0]
	} else {
		repl = Split{
			Orientation: parent.Orientation,
			Sizes:       normalize(sizes),
			Children:    children,
		}
	}
	return replaceAt(root, parentPath, repl), true
}

// Balance resets every Split to equal sizes, keeping the structure.
func Balance(n Node) Node {
	s, ok := n.(Split)
	if !ok {
		return n
	}
	out := Split{
		Orientation: s.Orientation,
		Sizes:       equalSizes(len(s.Children)),
		Children:    make([]Node, len(s.Children)),
	}
	for i, child := range s.Children {
		out.Children[i] = Balance(child)
	}
	return out
}

// Equal reports whether two trees have the same shape, ids and sizes
// (sizes compared within Epsilon).
func Equal(a, b Node) bool {
	switch x := a.(type) {
	case Leaf:
		y, ok := b.(Leaf)
		return ok && x.Pane == y.Pane
	case Split:
		y, ok := b.(Split)
		if !ok || x.Orientation != y.Orientation ||
			len(x.Children) != len(y.Children) || len(x.Sizes) != len(y.Sizes) {
			return false
		}
		for i := range x.Sizes {
			if abs(x.Sizes[i]-y.Sizes[i]) > Epsilon {
				return false
			}
		}
		for i := range x.Children {
			if !Equal(x.Children[i], y.Children[i]) {
				return false
			}
		}
		return true
	}
	return a == nil && b == nil
}
