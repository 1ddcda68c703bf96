package components

import (
	"fmt"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/lipgloss"
)

var (
	statusBarStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("241")).
			Background(lipgloss.Color("236")).
			Padding(0, 1)

	statusLeaderStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color("232")).
				Background(lipgloss.Color("214")).
				Bold(true).
				Padding(0, 1)

	statusZoomStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("232")).
			Background(lipgloss.Color("39")).
			Padding(0, 1)

	statusErrorStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color("196")).
				Background(lipgloss.Color("236")).
				Padding(0, 1)
)

// StatusInfo is what the status bar shows about the layout.
type StatusInfo struct {
	// Index is the 1-based position of the focused pane.
	Index  int
	Total  int
	Zoomed bool
	Leader bool
	Err    error
}

// StatusBar shows the focused pane position, mode badges and key hints.
type StatusBar struct {
	width  int
	help   help.Model
	hints  []key.Binding
	leader []key.Binding
}

// NewStatusBar creates a status bar that shows hints normally and the
// leader table while leader mode is active.
func NewStatusBar(hints, leader []key.Binding) *StatusBar {
	h := help.New()
	h.ShortSeparator = "  "
	return &StatusBar{help: h, hints: hints, leader: leader}
}

// SetWidth sets the width of the status bar
func (sb *StatusBar) SetWidth(width int) {
	sb.width = width
}

// View renders the status bar
func (sb *StatusBar) View(info StatusInfo) string {
	left := fmt.Sprintf("%d/%d", info.Index, info.Total)
	if info.Zoomed {
		left += " " + statusZoomStyle.Render("ZOOM")
	}

	bindings := sb.hints
	if info.Leader {
		left = statusLeaderStyle.Render("LEADER") + " " + left
		bindings = sb.leader
	}

	if info.Err != nil {
		msg := statusErrorStyle.Render(info.Err.Error())
		return statusBarStyle.Width(sb.width).MaxWidth(sb.width).MaxHeight(1).Render(left + "  " + msg)
	}

	sb.help.Width = max(sb.width-lipgloss.Width(left)-4, 0)
	hints := sb.help.ShortHelpView(bindings)
	return statusBarStyle.Width(sb.width).MaxWidth(sb.width).MaxHeight(1).Render(left + "  " + hints)
}
