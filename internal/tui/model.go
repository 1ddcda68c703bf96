// Package tui is the Bubble Tea front end of the workspace. It renders the
// layout state held by an engine.Store as a grid of bordered panes and turns
// key presses into layout commands.
package tui

import (
	"context"
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/MikeBiancalana/quire/internal/anim"
	"github.com/MikeBiancalana/quire/internal/config"
	"github.com/MikeBiancalana/quire/internal/engine"
	"github.com/MikeBiancalana/quire/internal/keys"
	"github.com/MikeBiancalana/quire/internal/layout"
	"github.com/MikeBiancalana/quire/internal/logger"
	"github.com/MikeBiancalana/quire/internal/notes"
	"github.com/MikeBiancalana/quire/internal/sync"
	"github.com/MikeBiancalana/quire/internal/tui/components"
)

const (
	// Minimum terminal dimensions
	MinTerminalWidth  = 60
	MinTerminalHeight = 15

	// Border dimensions
	BorderWidth  = 2
	BorderHeight = 2

	// StatusHeight is the status bar below the pane grid.
	StatusHeight = 1
)

var (
	paneBorderColor    = lipgloss.Color("240")
	focusedBorderColor = lipgloss.Color("11")
	newBorderColor     = lipgloss.Color("42")
	closingBorderColor = lipgloss.Color("236")
)

// Model is the Bubble Tea model of the workspace.
//
// IMPORTANT: tea.Cmd closures run on another goroutine. Capture any value a
// closure needs (service, pane id, content ref) in a local before building
// it instead of reading model fields inside the closure.
type Model struct {
	ctx      context.Context
	store    *engine.Store
	notes    *notes.Service
	watcher  *sync.Watcher
	settings config.Settings

	keymap     *keys.Keymap
	leaderKeys *keys.Keymap
	dispatcher *keys.Dispatcher
	closer     *anim.Coordinator

	// state is the snapshot the view was last reconciled with
	state engine.State
	panes map[layout.PaneID]*components.PaneView

	picker     *components.NotePicker
	pickerPane layout.PaneID
	palette    *components.CommandBar
	statusBar  *components.StatusBar

	width            int
	height           int
	terminalTooSmall bool
	lastError        error
}

// Option configures optional collaborators of the Model.
type Option func(*Model)

// WithNotes resolves pane content through svc.
func WithNotes(svc *notes.Service) Option {
	return func(m *Model) { m.notes = svc }
}

// WithWatcher re-renders panes when w reports a changed note.
func WithWatcher(w *sync.Watcher) Option {
	return func(m *Model) { m.watcher = w }
}

// WithContext sets the context passed to Store.Dispatch.
func WithContext(ctx context.Context) Option {
	return func(m *Model) { m.ctx = ctx }
}

// NewModel creates the workspace model over store. The keymaps come from
// settings; an invalid override is returned as an error.
func NewModel(store *engine.Store, settings config.Settings, opts ...Option) (*Model, error) {
	keymap, err := keys.NewKeymap(keys.DefaultBindings(), settings.Keys.Bindings)
	if err != nil {
		return nil, fmt.Errorf("failed to build keymap: %w", err)
	}
	leaderKeys, err := keys.NewKeymap(keys.DefaultLeaderBindings(), settings.Keys.LeaderTable)
	if err != nil {
		return nil, fmt.Errorf("failed to build leader keymap: %w", err)
	}

	anims := settings.Animation
	m := &Model{
		ctx:        context.Background(),
		store:      store,
		settings:   settings,
		keymap:     keymap,
		leaderKeys: leaderKeys,
		closer:     anim.NewCoordinator(anims.CloseFrames, anims.CloseFrameInterval, anims.CloseFallback),
		panes:      make(map[layout.PaneID]*components.PaneView),
		picker:     components.NewNotePicker("Open note"),
		palette:    components.NewCommandBar(),
		statusBar: components.NewStatusBar(
			keys.HelpMap{Keymap: keymap}.ShortHelp(),
			leaderKeys.KeyBindings(),
		),
	}
	for _, opt := range opts {
		opt(m)
	}

	// The dispatcher reads focus, modal and leader state fresh on every key.
	m.dispatcher = keys.NewDispatcher(keymap,
		func() layout.PaneID { return m.store.State().Focused },
		keys.WithModal(m.modalOpen),
		keys.WithLeader(leaderKeys, func() bool { return m.store.State().LeaderActive }),
	)

	m.state = store.State()
	for _, id := range m.state.Leaves() {
		m.mount(id)
	}
	return m, nil
}

// Init loads the content of the initial panes and starts the watcher.
func (m *Model) Init() tea.Cmd {
	var cmds []tea.Cmd
	for _, id := range m.state.Leaves() {
		if p, ok := m.state.Pane(id); ok {
			cmds = append(cmds, m.loadContent(id, p.ContentRef))
		}
	}
	if m.state.PendingContent != "" {
		cmds = append(cmds, m.openPicker(m.state.PendingContent))
	}

	if m.watcher != nil {
		if err := m.watcher.Start(); err != nil {
			logger.Warn("tui: watcher not started", "error", err)
		} else {
			cmds = append(cmds, m.waitForNoteChange())
		}
	}

	return tea.Batch(cmds...)
}

// Update handles messages and updates the model. It only routes; the
// handlers live in handlers.go and keyboard.go.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		return m.handleWindowSize(msg)

	case anim.FrameMsg, anim.FallbackMsg:
		return m.handleCloseAnimation(msg)

	case anim.CommandMsg:
		return m, m.apply(msg.Command)

	case contentLoadedMsg:
		return m.handleContentLoaded(msg)

	case notesListedMsg:
		return m.handleNotesListed(msg)

	case components.NotePickerSelectMsg:
		return m.handleNoteSelected(msg)

	case components.NotePickerCancelMsg:
		m.pickerPane = ""
		return m, nil

	case linkResolvedMsg:
		return m.handleLinkResolved(msg)

	case noteChangedMsg:
		return m.handleNoteChanged(msg)

	case errMsg:
		return m.handleError(msg)

	case tea.KeyMsg:
		return m.handleKeyPress(msg)

	default:
		// let an open picker see its own internal messages
		if m.picker.IsVisible() {
			var cmd tea.Cmd
			m.picker, cmd = m.picker.Update(msg)
			return m, cmd
		}
		return m, nil
	}
}

// View renders the TUI
func (m *Model) View() string {
	if m.terminalTooSmall {
		return m.terminalTooSmallView()
	}
	if m.width == 0 || m.height == 0 {
		return "Loading..."
	}

	mainHeight := m.mainHeight()
	var main string
	if m.picker.IsVisible() {
		main = lipgloss.Place(m.width, mainHeight, lipgloss.Center, lipgloss.Center, m.picker.View())
	} else {
		rects := m.arrange()
		main = m.renderNode(engine.VisibleTree(m.state), rects)
	}

	parts := []string{main}
	if m.palette.IsFocused() {
		parts = append(parts, m.palette.View())
	}
	parts = append(parts, m.statusBar.View(m.statusInfo()))
	return lipgloss.JoinVertical(lipgloss.Left, parts...)
}

// State returns the layout snapshot the model last rendered.
func (m *Model) State() engine.State {
	return m.state
}

func (m *Model) modalOpen() bool {
	return m.picker.IsVisible() || m.palette.IsFocused()
}

func (m *Model) mainHeight() int {
	h := m.height - StatusHeight
	if m.palette.IsFocused() {
		h -= m.palette.Height()
	}
	return max(h, 0)
}

func (m *Model) arrange() map[layout.PaneID]Rect {
	area := Rect{Width: m.width, Height: m.mainHeight()}
	return Arrange(engine.VisibleTree(m.state), area, m.closer.Weight)
}

// renderNode joins the rendered children of a Split along its axis.
func (m *Model) renderNode(n layout.Node, rects map[layout.PaneID]Rect) string {
	switch n := n.(type) {
	case layout.Leaf:
		return m.renderPane(n.Pane, rects[n.Pane])
	case layout.Split:
		var parts []string
		for _, c := range n.Children {
			if s := m.renderNode(c, rects); s != "" {
				parts = append(parts, s)
			}
		}
		if n.Orientation == layout.Horizontal {
			return lipgloss.JoinVertical(lipgloss.Left, parts...)
		}
		return lipgloss.JoinHorizontal(lipgloss.Top, parts...)
	}
	return ""
}

// renderPane draws one pane filling r exactly.
func (m *Model) renderPane(id layout.PaneID, r Rect) string {
	if r.Width <= 0 || r.Height <= 0 {
		return ""
	}
	if r.Width < BorderWidth+1 || r.Height < BorderHeight+1 {
		return lipgloss.NewStyle().Width(r.Width).Height(r.Height).Render("")
	}

	style := m.paneStyle(id).
		Width(r.Width - BorderWidth).
		Height(r.Height - BorderHeight).
		MaxWidth(r.Width).
		MaxHeight(r.Height)

	var body string
	if v, ok := m.panes[id]; ok {
		body = v.View(m.paneLabel(id))
	}
	return style.Render(body)
}

func (m *Model) paneStyle(id layout.PaneID) lipgloss.Style {
	style := lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).BorderForeground(paneBorderColor)
	switch {
	case m.state.IsClosing(id):
		style = style.BorderForeground(closingBorderColor)
	case id == m.state.Focused:
		style = style.BorderForeground(focusedBorderColor)
		if nav := m.state.Navigation; nav != nil && nav.To == id {
			style = style.Border(lipgloss.ThickBorder())
		}
	case m.state.IsNew(id):
		style = style.BorderForeground(newBorderColor)
	}
	return style
}

// paneLabel is the jump number of id.
func (m *Model) paneLabel(id layout.PaneID) string {
	for i, leaf := range m.state.Leaves() {
		if leaf == id {
			return fmt.Sprintf("%d", i+1)
		}
	}
	return ""
}

func (m *Model) statusInfo() components.StatusInfo {
	leaves := m.state.Leaves()
	info := components.StatusInfo{
		Total:  len(leaves),
		Zoomed: m.state.Zoomed != "",
		Leader: m.state.LeaderActive,
		Err:    m.lastError,
	}
	for i, id := range leaves {
		if id == m.state.Focused {
			info.Index = i + 1
		}
	}
	return info
}

// terminalTooSmallView renders a message when the terminal is too small
func (m *Model) terminalTooSmallView() string {
	title := "Terminal Too Small"
	currentSize := fmt.Sprintf("Current: %dx%d", m.width, m.height)
	requiredSize := fmt.Sprintf("Required: %dx%d or larger", MinTerminalWidth, MinTerminalHeight)

	style := lipgloss.NewStyle().
		BorderStyle(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color("62")).
		Padding(1, 2).
		Align(lipgloss.Center, lipgloss.Center)

	content := fmt.Sprintf(
		"%s\n\n%s\n\n%s\n\nResize your terminal to continue.",
		title,
		currentSize,
		requiredSize,
	)

	return style.Render(content)
}

// Message type definitions
type contentLoadedMsg struct {
	pane  layout.PaneID
	ref   string
	title string
	body  string
	err   error
}

type notesListedMsg struct {
	pane  layout.PaneID
	notes []*notes.Note
}

type linkResolvedMsg struct {
	from   layout.PaneID
	target string
}

type noteChangedMsg struct {
	change sync.NoteChanged
	ok     bool
}

type errMsg struct {
	err error
}
