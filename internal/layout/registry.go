package layout

import (
	"fmt"
	"sort"
	"strconv"
	"strings"
)

// PaneID identifies a pane for the lifetime of a session.
type PaneID string

// PaneState is the metadata the registry keeps per pane. ContentRef is an
// opaque key the host application resolves; empty means no content yet.
type PaneState struct {
	ID         PaneID
	ContentRef string
}

// HasContent reports whether the pane has been given content.
func (p PaneState) HasContent() bool {
	return p.ContentRef != ""
}

// Registry maps pane ids to their state. The zero value is an empty
// registry. Registry is copy-on-write: With and Without return new values.
type Registry struct {
	panes map[PaneID]PaneState
}

// NewRegistry returns a registry holding the given panes.
func NewRegistry(panes ...PaneState) Registry {
	m := make(map[PaneID]PaneState, len(panes))
	for _, p := range panes {
		m[p.ID] = p
	}
	return Registry{panes: m}
}

// Get returns the state for id.
func (r Registry) Get(id PaneID) (PaneState, bool) {
	p, ok := r.panes[id]
	return p, ok
}

// Has reports whether id is registered.
func (r Registry) Has(id PaneID) bool {
	_, ok := r.panes[id]
	return ok
}

// Len returns the number of registered panes.
func (r Registry) Len() int {
	return len(r.panes)
}

// IDs returns the registered ids in sequence order.
func (r Registry) IDs() []PaneID {
	ids := make([]PaneID, 0, len(r.panes))
	for id := range r.panes {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return lessPaneID(ids[i], ids[j]) })
	return ids
}

// With returns a registry with p added or replaced.
func (r Registry) With(p PaneState) Registry {
	m := make(map[PaneID]PaneState, len(r.panes)+1)
	for id, s := range r.panes {
		m[id] = s
	}
	m[p.ID] = p
	return Registry{panes: m}
}

// Without returns a registry with id removed.
func (r Registry) Without(id PaneID) Registry {
	m := make(map[PaneID]PaneState, len(r.panes))
	for k, s := range r.panes {
		if k != id {
			m[k] = s
		}
	}
	return Registry{panes: m}
}

const paneIDPrefix = "pane-"

// Sequence generates pane ids. It is a value owned by the layout state, so
// resetting the state resets the sequence with it.
type Sequence struct {
	last int
}

// Next returns the next id and the advanced sequence.
func (s Sequence) Next() (PaneID, Sequence) {
	s.last++
	return PaneID(paneIDPrefix + strconv.Itoa(s.last)), s
}

// Last returns how many ids have been issued.
func (s Sequence) Last() int {
	return s.last
}

// paneNumber extracts N from "pane-N"; -1 for foreign ids.
func paneNumber(id PaneID) int {
	s := string(id)
	if !strings.HasPrefix(s, paneIDPrefix) {
		return -1
	}
	n, err := strconv.Atoi(s[len(paneIDPrefix):])
	if err != nil {
		return -1
	}
	return n
}

func lessPaneID(a, b PaneID) bool {
	na, nb := paneNumber(a), paneNumber(b)
	if na != nb {
		return na < nb
	}
	return a < b
}

func (r Registry) String() string {
	var parts []string
	for _, id := range r.IDs() {
		p := r.panes[id]
		parts = append(parts, fmt.Sprintf("%s=%q", id, p.ContentRef))
	}
	return "{" + strings.Join(parts, " ") + "}"
}
