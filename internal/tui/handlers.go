package tui

import (
	tea "github.com/charmbracelet/bubbletea"

	"github.com/MikeBiancalana/quire/internal/engine"
	"github.com/MikeBiancalana/quire/internal/layout"
	"github.com/MikeBiancalana/quire/internal/logger"
	"github.com/MikeBiancalana/quire/internal/tui/components"
)

// Message Handlers
//
// These methods handle specific message types, keeping the main Update()
// function clean and focused. Each handler follows the pattern:
//
//   func (m *Model) handle<MessageType>(msg <MessageType>) (tea.Model, tea.Cmd)

// handleWindowSize handles terminal resize events
func (m *Model) handleWindowSize(msg tea.WindowSizeMsg) (tea.Model, tea.Cmd) {
	m.width = msg.Width
	m.height = msg.Height
	m.terminalTooSmall = msg.Width < MinTerminalWidth || msg.Height < MinTerminalHeight

	m.statusBar.SetWidth(msg.Width)
	m.palette.SetWidth(msg.Width)
	m.picker.SetWidth(msg.Width)

	m.resizePanes()
	return m, nil
}

// handleCloseAnimation advances a close animation and completes the close
// when the animation or its fallback timer ends.
func (m *Model) handleCloseAnimation(msg tea.Msg) (tea.Model, tea.Cmd) {
	complete, ok, next := m.closer.Update(msg)
	if !ok {
		m.resizePanes()
		return m, next
	}
	return m, tea.Batch(next, m.apply(complete))
}

// handleContentLoaded shows resolved content, unless the pane has been
// given different content in the meantime.
func (m *Model) handleContentLoaded(msg contentLoadedMsg) (tea.Model, tea.Cmd) {
	v, ok := m.panes[msg.pane]
	if !ok {
		return m, nil
	}
	if p, ok := m.state.Pane(msg.pane); !ok || p.ContentRef != msg.ref {
		return m, nil
	}
	if msg.err != nil {
		logger.Warn("tui: failed to load pane content", "pane", msg.pane, "ref", msg.ref, "error", msg.err)
		v.SetError(msg.err)
		return m, nil
	}
	v.SetContent(msg.title, msg.body)
	return m, nil
}

// handleNotesListed opens the picker, if its pane still wants content.
func (m *Model) handleNotesListed(msg notesListedMsg) (tea.Model, tea.Cmd) {
	if msg.pane != m.pickerPane || !m.state.Panes.Has(msg.pane) {
		return m, nil
	}
	m.picker.Show(msg.notes)
	return m, nil
}

func (m *Model) handleNoteSelected(msg components.NotePickerSelectMsg) (tea.Model, tea.Cmd) {
	pane := m.pickerPane
	m.pickerPane = ""
	if pane == "" {
		return m, nil
	}
	return m, m.apply(engine.SetPaneConversation{Pane: pane, ContentRef: msg.NoteID})
}

// handleLinkResolved opens the link target in a new pane beside the source.
func (m *Model) handleLinkResolved(msg linkResolvedMsg) (tea.Model, tea.Cmd) {
	var cmds []tea.Cmd
	if m.state.Focused != msg.from {
		cmds = append(cmds, m.apply(engine.FocusPane{Pane: msg.from}))
	}
	cmds = append(cmds, m.apply(engine.Split{Orientation: layout.Vertical, ContentRef: msg.target}))
	return m, tea.Batch(cmds...)
}

// handleNoteChanged reloads every pane showing the changed note.
func (m *Model) handleNoteChanged(msg noteChangedMsg) (tea.Model, tea.Cmd) {
	if !msg.ok {
		// watcher stopped
		return m, nil
	}
	cmds := []tea.Cmd{m.waitForNoteChange()}
	if msg.change.NoteID == "" {
		return m, tea.Batch(cmds...)
	}
	for _, id := range m.state.Leaves() {
		p, _ := m.state.Pane(id)
		if p.ContentRef == msg.change.NoteID {
			cmds = append(cmds, m.loadContent(id, p.ContentRef))
		}
	}
	return m, tea.Batch(cmds...)
}

// handleError handles error messages
func (m *Model) handleError(msg errMsg) (tea.Model, tea.Cmd) {
	logger.Warn("tui: error", "error", msg.err)
	m.lastError = msg.err
	return m, nil
}
