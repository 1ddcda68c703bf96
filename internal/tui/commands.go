package tui

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/MikeBiancalana/quire/internal/anim"
	"github.com/MikeBiancalana/quire/internal/engine"
	"github.com/MikeBiancalana/quire/internal/keys"
	"github.com/MikeBiancalana/quire/internal/layout"
	"github.com/MikeBiancalana/quire/internal/logger"
	"github.com/MikeBiancalana/quire/internal/tui/components"
)

// apply submits cmd to the store and brings the view in line with the
// resulting state.
func (m *Model) apply(cmd engine.Command) tea.Cmd {
	prev := m.state
	next := m.store.Dispatch(m.ctx, cmd)
	if _, ok := cmd.(engine.Reset); ok {
		// pane ids start over, so nothing mounted or animating survives
		m.closer.Reset()
		for id := range m.panes {
			m.unmount(id)
		}
		prev = engine.State{}
	}
	m.state = next
	return m.reconcile(prev, next)
}

// reconcile mounts and unmounts pane views and starts the timers and loads
// that the change from prev to next calls for.
func (m *Model) reconcile(prev, next engine.State) tea.Cmd {
	var cmds []tea.Cmd

	for id := range m.panes {
		if !next.Panes.Has(id) {
			m.unmount(id)
		}
	}

	for _, id := range next.Leaves() {
		p, _ := next.Pane(id)
		if _, mounted := m.panes[id]; !mounted {
			m.mount(id)
			cmds = append(cmds, m.loadContent(id, p.ContentRef))
			if next.IsNew(id) {
				cmds = append(cmds, anim.After(m.settings.Animation.NewPane, engine.ClearNewPane{Pane: id}))
			}
			continue
		}
		if old, ok := prev.Pane(id); !ok || old.ContentRef != p.ContentRef {
			cmds = append(cmds, m.loadContent(id, p.ContentRef))
		}
	}

	for _, id := range next.Closing {
		if prev.IsClosing(id) {
			continue
		}
		cmds = append(cmds, m.closer.Begin(id, weightIn(prev.Tree, id)))
	}

	if next.Navigation != nil && next.Navigation != prev.Navigation {
		cmds = append(cmds, anim.After(m.settings.Animation.Navigation, engine.ClearNavigationAnimation{}))
	}

	if next.PendingContent != "" && next.PendingContent != prev.PendingContent {
		cmds = append(cmds, m.openPicker(next.PendingContent))
	}

	m.resizePanes()
	return tea.Batch(cmds...)
}

// weightIn returns the size of leaf id within its parent Split, or
// layout.Total for a lone leaf.
func weightIn(tree layout.Node, id layout.PaneID) float64 {
	path, ok := layout.PathTo(tree, id)
	if !ok || len(path) == 0 {
		return layout.Total
	}
	parent, ok := layout.At(tree, path[:len(path)-1]).(layout.Split)
	if !ok {
		return layout.Total
	}
	return parent.Sizes[path[len(path)-1]]
}

// mount creates the view of pane id and registers its key handlers.
func (m *Model) mount(id layout.PaneID) {
	v := components.NewPaneView()
	if km, ok := m.firstKey(keys.PickNote); ok {
		v.Clear(fmt.Sprintf("empty pane, press %s to open a note", km))
	}
	m.panes[id] = v
	m.dispatcher.RegisterAll(id, m.handlersFor(id))
	logger.Debug("tui: pane mounted", "pane", id)
}

func (m *Model) unmount(id layout.PaneID) {
	m.dispatcher.Unregister(id)
	delete(m.panes, id)
	if m.pickerPane == id {
		m.picker.Hide()
		m.pickerPane = ""
	}
	logger.Debug("tui: pane unmounted", "pane", id)
}

func (m *Model) firstKey(a keys.Action) (string, bool) {
	for _, b := range m.keymap.Bindings() {
		if b.Action == a {
			return b.Key, true
		}
	}
	return "", false
}

// handlersFor returns the actions pane id responds to while focused.
func (m *Model) handlersFor(id layout.PaneID) map[keys.Action]keys.Handler {
	do := func(cmd engine.Command) keys.Handler {
		return func(tea.KeyMsg) tea.Cmd { return m.apply(cmd) }
	}
	hs := map[keys.Action]keys.Handler{
		keys.SplitVertical:   do(engine.Split{Orientation: layout.Vertical}),
		keys.SplitHorizontal: do(engine.Split{Orientation: layout.Horizontal}),
		keys.Close:           do(engine.PrepareClose{Pane: id}),
		keys.FocusPrev:       do(engine.FocusDirection{Direction: engine.DirPrev}),
		keys.FocusNext:       do(engine.FocusDirection{Direction: engine.DirNext}),
		keys.FocusLeft:       do(engine.FocusDirection{Direction: engine.DirLeft}),
		keys.FocusRight:      do(engine.FocusDirection{Direction: engine.DirRight}),
		keys.FocusUp:         do(engine.FocusDirection{Direction: engine.DirUp}),
		keys.FocusDown:       do(engine.FocusDirection{Direction: engine.DirDown}),
		keys.MovePrev:        do(engine.MovePane{Direction: engine.DirPrev}),
		keys.MoveNext:        do(engine.MovePane{Direction: engine.DirNext}),
		keys.Balance:         do(engine.Balance{}),
		keys.Zoom:            do(engine.ToggleZoom{}),
		keys.PickNote: func(tea.KeyMsg) tea.Cmd {
			return m.openPicker(id)
		},
		keys.FollowLink: func(tea.KeyMsg) tea.Cmd {
			return m.followLink(id)
		},
		keys.ScrollUp: func(tea.KeyMsg) tea.Cmd {
			if v, ok := m.panes[id]; ok {
				v.ScrollUp()
			}
			return nil
		},
		keys.ScrollDown: func(tea.KeyMsg) tea.Cmd {
			if v, ok := m.panes[id]; ok {
				v.ScrollDown()
			}
			return nil
		},
	}
	for n := 1; n <= 9; n++ {
		hs[keys.JumpAction(n)] = do(engine.JumpToPane{Index: n})
	}
	return hs
}

// resizePanes sizes every visible pane view to its arranged rectangle.
func (m *Model) resizePanes() {
	if m.width == 0 || m.terminalTooSmall {
		return
	}
	for id, r := range m.arrange() {
		if v, ok := m.panes[id]; ok {
			v.SetSize(r.Width-BorderWidth, r.Height-BorderHeight)
		}
	}
}

// loadContent resolves ref for pane asynchronously.
func (m *Model) loadContent(pane layout.PaneID, ref string) tea.Cmd {
	if ref == "" {
		if v, ok := m.panes[pane]; ok {
			v.Clear("")
		}
		return nil
	}
	svc := m.notes
	if svc == nil {
		return func() tea.Msg {
			return contentLoadedMsg{pane: pane, ref: ref, title: ref}
		}
	}
	return func() tea.Msg {
		c, err := svc.Resolve(ref)
		if err != nil {
			return contentLoadedMsg{pane: pane, ref: ref, err: err}
		}
		return contentLoadedMsg{pane: pane, ref: ref, title: c.Note.Title, body: c.Body}
	}
}

// openPicker shows the note picker for pane once the note list is loaded.
func (m *Model) openPicker(pane layout.PaneID) tea.Cmd {
	m.pickerPane = pane
	svc := m.notes
	if svc == nil {
		return func() tea.Msg { return notesListedMsg{pane: pane} }
	}
	return func() tea.Msg {
		ns, err := svc.List()
		if err != nil {
			return errMsg{fmt.Errorf("failed to list notes: %w", err)}
		}
		return notesListedMsg{pane: pane, notes: ns}
	}
}

// followLink opens the first resolved wiki link of the note in pane in a
// new pane to its right.
func (m *Model) followLink(pane layout.PaneID) tea.Cmd {
	p, ok := m.state.Pane(pane)
	if !ok || !p.HasContent() || m.notes == nil {
		return nil
	}
	svc := m.notes
	ref := p.ContentRef
	return func() tea.Msg {
		c, err := svc.Resolve(ref)
		if err != nil {
			return errMsg{fmt.Errorf("failed to resolve %s: %w", ref, err)}
		}
		target, err := svc.FirstLinkTarget(c.Note.ID)
		if err != nil {
			return errMsg{fmt.Errorf("no link to follow in %q: %w", c.Note.Title, err)}
		}
		return linkResolvedMsg{from: pane, target: target}
	}
}

// waitForNoteChange waits for the next change reported by the watcher.
// It returns immediately; the closure blocks on the watcher channel.
func (m *Model) waitForNoteChange() tea.Cmd {
	if m.watcher == nil {
		return nil
	}
	changes := m.watcher.Changes()
	return func() tea.Msg {
		ev, ok := <-changes
		return noteChangedMsg{change: ev, ok: ok}
	}
}
