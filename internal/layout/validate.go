package layout

import (
	"errors"
	"fmt"
)

// ErrEmptyTree is returned by Validate for a nil tree.
var ErrEmptyTree = errors.New("layout tree has no leaves")

// Validate checks the structural invariants of a tree against its registry:
// at least one leaf, no duplicate pane ids, leaf ids equal to the registry
// keys, and every Split holding two or more children whose non-negative
// sizes sum to Total.
func Validate(n Node, reg Registry) error {
	if n == nil {
		return ErrEmptyTree
	}
	seen := make(map[PaneID]bool)
	if err := validateNode(n, seen); err != nil {
		return err
	}
	if len(seen) == 0 {
		return ErrEmptyTree
	}
	for id := range seen {
		if !reg.Has(id) {
			return fmt.Errorf("leaf %s is not registered", id)
		}
	}
	for _, id := range reg.IDs() {
		if !seen[id] {
			return fmt.Errorf("registered pane %s has no leaf", id)
		}
	}
	return nil
}

func validateNode(n Node, seen map[PaneID]bool) error {
	switch v := n.(type) {
	case Leaf:
		if seen[v.Pane] {
			return fmt.Errorf("pane %s appears in more than one leaf", v.Pane)
		}
		seen[v.Pane] = true
	case Split:
		if len(v.Children) < 2 {
			return fmt.Errorf("split has %d children, want at least 2", len(v.Children))
		}
		if len(v.Sizes) != len(v.Children) {
			return fmt.Errorf("split has %d sizes for %d children", len(v.Sizes), len(v.Children))
		}
		for _, s := range v.Sizes {
			if s < 0 {
				return fmt.Errorf("split has negative size %g", s)
			}
		}
		if total := sum(v.Sizes); abs(total-Total) > Epsilon*Total {
			return fmt.Errorf("split sizes sum to %g, want %g", total, Total)
		}
		for _, child := range v.Children {
			if err := validateNode(child, seen); err != nil {
				return err
			}
		}
	default:
		return fmt.Errorf("unexpected node type %T", n)
	}
	return nil
}
