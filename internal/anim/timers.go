package anim

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/MikeBiancalana/quire/internal/engine"
)

// CommandMsg carries an engine command produced by a timer.
type CommandMsg struct {
	Command engine.Command
}

// After delivers cmd as a CommandMsg once d has elapsed. A zero d delivers
// it on the next update.
func After(d time.Duration, cmd engine.Command) tea.Cmd {
	if d <= 0 {
		return func() tea.Msg { return CommandMsg{Command: cmd} }
	}
	return tea.Tick(d, func(time.Time) tea.Msg { return CommandMsg{Command: cmd} })
}
