package components

import (
	"github.com/charmbracelet/bubbles/viewport"
	"github.com/charmbracelet/lipgloss"
)

var (
	paneTitleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("252"))

	paneIndexStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("240"))

	panePlaceholderStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color("240")).
				Italic(true)

	paneErrorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("196"))
)

// PaneView shows one note inside a pane: a title line and a scrollable
// markdown body.
type PaneView struct {
	viewport viewport.Model
	title    string
	markdown string
	err      error
	// placeholder is shown when the pane has no content
	placeholder string

	width  int
	height int
	// renderedWidth is the width markdown was last rendered at
	renderedWidth int
}

// NewPaneView creates an empty pane view.
func NewPaneView() *PaneView {
	return &PaneView{
		viewport:    viewport.New(0, 0),
		placeholder: "empty pane",
	}
}

// SetSize sets the area inside the pane border.
func (p *PaneView) SetSize(width, height int) {
	if width < 0 {
		width = 0
	}
	if height < 0 {
		height = 0
	}
	p.width = width
	p.height = height
	p.viewport.Width = width
	// one line for the title
	p.viewport.Height = max(height-1, 0)
	if width != p.renderedWidth {
		p.refresh()
	}
}

// Size returns the area set by SetSize.
func (p *PaneView) Size() (int, int) {
	return p.width, p.height
}

// SetContent replaces the note shown in the pane.
func (p *PaneView) SetContent(title, markdown string) {
	p.title = title
	p.markdown = markdown
	p.err = nil
	p.refresh()
	p.viewport.GotoTop()
}

// SetError shows err in place of the body.
func (p *PaneView) SetError(err error) {
	p.err = err
	p.refresh()
}

// Clear empties the pane and shows placeholder.
func (p *PaneView) Clear(placeholder string) {
	p.title = ""
	p.markdown = ""
	p.err = nil
	if placeholder != "" {
		p.placeholder = placeholder
	}
	p.refresh()
}

// Title returns the title of the note shown, or "".
func (p *PaneView) Title() string {
	return p.title
}

func (p *PaneView) refresh() {
	p.renderedWidth = p.width
	switch {
	case p.err != nil:
		p.viewport.SetContent(paneErrorStyle.Width(max(p.width, 1)).Render("Error: " + p.err.Error()))
	case p.markdown == "" && p.title == "":
		p.viewport.SetContent(panePlaceholderStyle.Render(p.placeholder))
	default:
		p.viewport.SetContent(RenderMarkdown(p.markdown, p.width))
	}
}

func (p *PaneView) ScrollUp() {
	p.viewport.LineUp(1)
}

func (p *PaneView) ScrollDown() {
	p.viewport.LineDown(1)
}

// ScrollPercent reports how far the body is scrolled.
func (p *PaneView) ScrollPercent() float64 {
	return p.viewport.ScrollPercent()
}

// View renders the title line and the visible part of the body. label is
// shown before the title, usually the pane's jump number.
func (p *PaneView) View(label string) string {
	if p.width <= 0 || p.height <= 0 {
		return ""
	}
	title := p.title
	if title == "" {
		title = "untitled"
	}
	header := lipgloss.NewStyle().MaxWidth(p.width).Render(
		paneIndexStyle.Render(label+" ") + paneTitleStyle.Render(title))
	if p.height == 1 {
		return header
	}
	return header + "\n" + p.viewport.View()
}
