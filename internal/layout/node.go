package layout

import (
	"fmt"
	"strings"
)

// Total is the sum every Split's sizes are kept at.
const Total = 100.0

// Orientation is the axis a Split divides its space along.
type Orientation int

const (
	// Vertical lays children out left to right, separated by vertical dividers.
	Vertical Orientation = iota
	// Horizontal stacks children top to bottom.
	Horizontal
)

func (o Orientation) String() string {
	switch o {
	case Vertical:
		return "vertical"
	case Horizontal:
		return "horizontal"
	default:
		return "unknown"
	}
}

// ParseOrientation accepts "vertical"/"v" and "horizontal"/"h".
func ParseOrientation(s string) (Orientation, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "vertical", "v":
		return Vertical, nil
	case "horizontal", "h":
		return Horizontal, nil
	}
	return 0, fmt.Errorf("unknown orientation %q", s)
}

// Node is either a Leaf or a Split. Trees are values: every operation in this
// package returns a new tree and leaves its input untouched.
type Node interface {
	isNode()
}

// Leaf references exactly one pane.
type Leaf struct {
	Pane PaneID
}

// Split divides its space among two or more ordered children.
type Split struct {
	Orientation Orientation
	Sizes       []float64
	Children    []Node
}

func (Leaf) isNode()  {}
func (Split) isNode() {}

// NewLeaf returns a single-leaf tree.
func NewLeaf(id PaneID) Node {
	return Leaf{Pane: id}
}

// clone returns a copy of s whose slices are not shared with s.
func (s Split) clone() Split {
	out := Split{
		Orientation: s.Orientation,
		Sizes:       make([]float64, len(s.Sizes)),
		Children:    make([]Node, len(s.Children)),
	}
	copy(out.Sizes, s.Sizes)
	copy(out.Children, s.Children)
	return out
}

// Format renders the tree in a compact bracketed form, e.g.
// "V[50 50](pane-1 H[50 50](pane-2 pane-3))".
func Format(n Node) string {
	var b strings.Builder
	format(&b, n)
	return b.String()
}

func format(b *strings.Builder, n Node) {
	switch v := n.(type) {
	case Leaf:
		b.WriteString(string(v.Pane))
	case Split:
		if v.Orientation == Vertical {
			b.WriteString("V[")
		} else {
			b.WriteString("H[")
		}
		for i, size := range v.Sizes {
			if i > 0 {
				b.WriteByte(' ')
			}
			fmt.Fprintf(b, "%g", roundSize(size))
		}
		b.WriteString("](")
		for i, child := range v.Children {
			if i > 0 {
				b.WriteByte(' ')
			}
			format(b, child)
		}
		b.WriteByte(')')
	}
}

// roundSize trims float noise for display.
func roundSize(v float64) float64 {
	const scale = 1000
	if v < 0 {
		return -float64(int64(-v*scale+0.5)) / scale
	}
	return float64(int64(v*scale+0.5)) / scale
}
