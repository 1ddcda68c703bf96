// Package anim drives the time-based parts of the layout: the close
// shrink animation and the timers that clear transient markers.
package anim

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/MikeBiancalana/quire/internal/engine"
	"github.com/MikeBiancalana/quire/internal/layout"
)

// FrameMsg advances the shrink animation of a closing pane.
type FrameMsg struct {
	Pane  layout.PaneID
	Gen   int
	Frame int
}

// FallbackMsg fires when a close has not finished in time.
type FallbackMsg struct {
	Pane layout.PaneID
	Gen  int
}

type closeAnim struct {
	from  float64
	frame int
}

// Coordinator turns PrepareClose into an eventual CompleteClose. Each close
// starts a frame ticker and a fallback timer; whichever finishes first
// yields the CompleteClose, and the engine ignores the second one.
//
// Generations guard against messages from before a layout Reset, when pane
// ids start over and an old timer could otherwise close a new pane.
type Coordinator struct {
	frames   int
	interval time.Duration
	fallback time.Duration

	gen    int
	active map[layout.PaneID]*closeAnim
}

func NewCoordinator(frames int, interval, fallback time.Duration) *Coordinator {
	return &Coordinator{
		frames:   frames,
		interval: interval,
		fallback: fallback,
		active:   make(map[layout.PaneID]*closeAnim),
	}
}

// Begin starts the close animation for pane, whose weight in its parent was
// from before PrepareClose zeroed it.
func (c *Coordinator) Begin(pane layout.PaneID, from float64) tea.Cmd {
	if _, ok := c.active[pane]; ok {
		return nil
	}
	c.active[pane] = &closeAnim{from: from}
	gen := c.gen

	fallback := tea.Tick(c.fallback, func(time.Time) tea.Msg {
		return FallbackMsg{Pane: pane, Gen: gen}
	})
	if c.frames <= 0 {
		return tea.Batch(func() tea.Msg { return FrameMsg{Pane: pane, Gen: gen} }, fallback)
	}
	return tea.Batch(c.tick(pane, 1), fallback)
}

func (c *Coordinator) tick(pane layout.PaneID, frame int) tea.Cmd {
	gen := c.gen
	return tea.Tick(c.interval, func(time.Time) tea.Msg {
		return FrameMsg{Pane: pane, Gen: gen, Frame: frame}
	})
}

// Update consumes coordinator messages. ok is set when the returned
// CompleteClose should be dispatched.
func (c *Coordinator) Update(msg tea.Msg) (cmd engine.CompleteClose, ok bool, next tea.Cmd) {
	switch msg := msg.(type) {
	case FrameMsg:
		if msg.Gen != c.gen {
			return cmd, false, nil
		}
		a, running := c.active[msg.Pane]
		if !running {
			return cmd, false, nil
		}
		a.frame = msg.Frame
		if msg.Frame < c.frames {
			return cmd, false, c.tick(msg.Pane, msg.Frame+1)
		}
		delete(c.active, msg.Pane)
		return engine.CompleteClose{Pane: msg.Pane}, true, nil
	case FallbackMsg:
		if msg.Gen != c.gen {
			return cmd, false, nil
		}
		delete(c.active, msg.Pane)
		return engine.CompleteClose{Pane: msg.Pane}, true, nil
	}
	return cmd, false, nil
}

// Active reports whether pane is animating.
func (c *Coordinator) Active(pane layout.PaneID) bool {
	_, ok := c.active[pane]
	return ok
}

// Progress returns how far the close of pane has run, from 0 to 1.
func (c *Coordinator) Progress(pane layout.PaneID) float64 {
	a, ok := c.active[pane]
	if !ok || c.frames <= 0 {
		return 1
	}
	return float64(a.frame) / float64(c.frames)
}

// Weight returns the size the renderer should give a closing pane in place
// of the zero stored in the tree.
func (c *Coordinator) Weight(pane layout.PaneID) (float64, bool) {
	a, ok := c.active[pane]
	if !ok {
		return 0, false
	}
	return a.from * (1 - c.Progress(pane)), true
}

// Reset drops every running animation and invalidates pending messages.
func (c *Coordinator) Reset() {
	c.gen++
	c.active = make(map[layout.PaneID]*closeAnim)
}
