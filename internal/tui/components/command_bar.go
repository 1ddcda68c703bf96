package components

import (
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

const commandPrompt = ": "

var (
	activeStyle = lipgloss.NewStyle().
			BorderStyle(lipgloss.NormalBorder()).
			BorderForeground(lipgloss.Color("39")).
			Padding(0, 1)
)

// CommandBar is the command palette: a one-line input for textual layout
// commands such as "split v" or "jump 2".
type CommandBar struct {
	textInput textinput.Model
	width     int
}

// NewCommandBar creates a new, unfocused command bar
func NewCommandBar() *CommandBar {
	ti := textinput.New()
	ti.Prompt = commandPrompt
	ti.Placeholder = "split v | close | focus next | jump 2 | balance | zoom | reset"
	ti.CharLimit = 200

	cb := &CommandBar{textInput: ti}
	cb.SetWidth(80)
	return cb
}

// Height is the number of lines the bar takes while focused.
func (cb *CommandBar) Height() int {
	return 3
}

// Update handles Bubble Tea messages while the bar is focused
func (cb *CommandBar) Update(msg tea.Msg) (*CommandBar, tea.Cmd) {
	if !cb.textInput.Focused() {
		return cb, nil
	}
	var cmd tea.Cmd
	cb.textInput, cmd = cb.textInput.Update(msg)
	return cb, cmd
}

// View renders the bar, or "" when it is not focused
func (cb *CommandBar) View() string {
	if !cb.textInput.Focused() {
		return ""
	}
	return activeStyle.Width(cb.width - 2).Render(cb.textInput.View())
}

// SetWidth sets the width of the command bar
func (cb *CommandBar) SetWidth(width int) {
	cb.width = width
	// border (2), padding (2) and prompt
	available := width - len(commandPrompt) - 4
	if available < 10 {
		available = 10
	}
	cb.textInput.Width = available
}

// GetValue returns the current input value
func (cb *CommandBar) GetValue() string {
	return cb.textInput.Value()
}

// SetValue replaces the input value
func (cb *CommandBar) SetValue(v string) {
	cb.textInput.SetValue(v)
}

// Clear resets the input value
func (cb *CommandBar) Clear() {
	cb.textInput.SetValue("")
}

// Focus focuses the text input
func (cb *CommandBar) Focus() tea.Cmd {
	return cb.textInput.Focus()
}

// Blur removes focus from the text input
func (cb *CommandBar) Blur() {
	cb.textInput.Blur()
}

// IsFocused returns whether the text input is focused
func (cb *CommandBar) IsFocused() bool {
	return cb.textInput.Focused()
}
