package layout_test

import (
	"fmt"

	"github.com/MikeBiancalana/quire/internal/layout"
)

// ExampleSplitLeaf builds a three-pane layout and then shrinks and removes
// the newest pane the way the two-phase close does.
func ExampleSplitLeaf() {
	tree := layout.NewLeaf("pane-1")
	tree, _ = layout.SplitLeaf(tree, "pane-1", layout.Vertical, "pane-2")
	tree, _ = layout.SplitLeaf(tree, "pane-2", layout.Horizontal, "pane-3")
	fmt.Println(layout.Format(tree))

	tree, _ = layout.ShrinkToZero(tree, "pane-3")
	fmt.Println(layout.Format(tree))

	tree, _ = layout.RemoveLeaf(tree, "pane-3")
	fmt.Println(layout.Format(tree))
	fmt.Println(layout.Leaves(tree))

	// Output:
	// V[50 50](pane-1 H[50 50](pane-2 pane-3))
	// V[50 50](pane-1 H[100 0](pane-2 pane-3))
	// V[50 50](pane-1 pane-2)
	// [pane-1 pane-2]
}
