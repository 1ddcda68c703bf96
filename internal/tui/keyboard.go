package tui

import (
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/MikeBiancalana/quire/internal/engine"
	"github.com/MikeBiancalana/quire/internal/keys"
	"github.com/MikeBiancalana/quire/internal/logger"
)

// Keyboard Handlers
//
// Modal surfaces get keys first (note picker, then command palette). Outside
// them, a pending leader key routes the next key through the leader table;
// everything else goes to the focused pane's handlers via the dispatcher.

// handleKeyPress is the main keyboard input dispatcher
func (m *Model) handleKeyPress(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if msg.Type == tea.KeyCtrlC {
		return m, tea.Quit
	}

	if m.picker.IsVisible() {
		var cmd tea.Cmd
		m.picker, cmd = m.picker.Update(msg)
		return m, cmd
	}

	if m.palette.IsFocused() {
		return m.handlePaletteKeys(msg)
	}

	if m.state.LeaderActive {
		return m.handleLeaderKeys(msg)
	}

	return m.handleNormalModeKeys(msg)
}

// handleLeaderKeys resolves one key through the leader table and leaves
// leader mode whatever the key was.
func (m *Model) handleLeaderKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if msg.Type == tea.KeyEsc {
		return m, m.apply(engine.SetLeaderActive{Active: false})
	}

	consumed, cmd := m.dispatcher.Dispatch(keys.Event{Key: msg})
	if !consumed {
		logger.Debug("tui: unbound leader key", "key", msg.String())
	}
	return m, tea.Batch(cmd, m.apply(engine.SetLeaderActive{Active: false}))
}

func (m *Model) handleNormalModeKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	k := msg.String()

	if k == m.settings.Keys.Leader {
		return m, m.apply(engine.SetLeaderActive{Active: true})
	}

	if k == ":" {
		m.lastError = nil
		m.palette.Clear()
		cmd := m.palette.Focus()
		m.resizePanes()
		return m, cmd
	}

	if consumed, cmd := m.dispatcher.Dispatch(keys.Event{Key: msg}); consumed {
		m.lastError = nil
		return m, cmd
	}

	switch k {
	case "q":
		return m, tea.Quit
	case "esc":
		m.lastError = nil
	}
	return m, nil
}

// handlePaletteKeys handles keyboard input while the command palette is
// focused
func (m *Model) handlePaletteKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.Type {
	case tea.KeyEnter:
		line := strings.TrimSpace(m.palette.GetValue())
		m.closePalette()
		if line == "" {
			return m, nil
		}
		return m, m.runCommandLine(line)

	case tea.KeyEsc:
		m.closePalette()
		return m, nil
	}

	var cmd tea.Cmd
	m.palette, cmd = m.palette.Update(msg)
	return m, cmd
}

func (m *Model) closePalette() {
	m.palette.Clear()
	m.palette.Blur()
	m.resizePanes()
}

// runCommandLine parses and applies a palette command.
func (m *Model) runCommandLine(line string) tea.Cmd {
	if line == "q" || line == "quit" {
		return tea.Quit
	}
	cmd, err := engine.ParseCommand(line, m.store.State())
	if err != nil {
		m.lastError = err
		return nil
	}
	m.lastError = nil
	return m.apply(cmd)
}
