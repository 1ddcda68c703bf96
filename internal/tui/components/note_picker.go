package components

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/sahilm/fuzzy"

	"github.com/MikeBiancalana/quire/internal/notes"
)

var (
	notePickerBoxStyle = lipgloss.NewStyle().
				Border(lipgloss.RoundedBorder()).
				BorderForeground(lipgloss.Color("39")).
				Padding(1, 2)

	notePickerTitleStyle = lipgloss.NewStyle().
				Bold(true).
				Foreground(lipgloss.Color("39"))

	notePickerItemStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color("252"))

	notePickerSelectedItemStyle = lipgloss.NewStyle().
					Foreground(lipgloss.Color("39")).
					Bold(true)

	notePickerDescStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color("245"))

	notePickerHelpStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color("240"))
)

// NotePickerSelectMsg is sent when a note is selected
type NotePickerSelectMsg struct {
	NoteID string
}

// NotePickerCancelMsg is sent when the note picker is cancelled
type NotePickerCancelMsg struct{}

// notePickerItem implements list.Item for the note picker
type notePickerItem struct {
	note *notes.Note
}

func (i notePickerItem) FilterValue() string {
	// Allow filtering by both title and slug
	return i.note.Title + " " + i.note.Slug
}

func (i notePickerItem) Title() string {
	if i.note.Kind == notes.KindConversation {
		return "» " + i.note.Title
	}
	return i.note.Title
}

func (i notePickerItem) Description() string {
	var parts []string
	parts = append(parts, i.note.Slug)
	if len(i.note.Tags) > 0 {
		parts = append(parts, "#"+strings.Join(i.note.Tags, " #"))
	}
	if !i.note.UpdatedAt.IsZero() {
		parts = append(parts, i.note.UpdatedAt.Format("2006-01-02"))
	}
	return strings.Join(parts, " | ")
}

// notePickerDelegate handles rendering of note picker items
type notePickerDelegate struct{}

func (d notePickerDelegate) Height() int  { return 2 }
func (d notePickerDelegate) Spacing() int { return 1 }
func (d notePickerDelegate) Update(msg tea.Msg, m *list.Model) tea.Cmd {
	return nil
}

func (d notePickerDelegate) Render(w io.Writer, m list.Model, index int, listItem list.Item) {
	item, ok := listItem.(notePickerItem)
	if !ok {
		return
	}

	title := item.Title()
	desc := item.Description()

	titleStyle := notePickerItemStyle
	if index == m.Index() {
		titleStyle = notePickerSelectedItemStyle
		title = "> " + title
	} else {
		title = "  " + title
	}

	fmt.Fprint(w, titleStyle.Render(title))
	if desc != "" {
		fmt.Fprint(w, "\n  "+notePickerDescStyle.Render(desc))
	}
}

// NotePicker is a fuzzy finder over the indexed notes. It is a modal: while
// it is visible it receives every key.
type NotePicker struct {
	list    list.Model
	visible bool
	notes   []*notes.Note
	width   int
}

// notePickerFuzzyFilter implements fuzzy matching for note picker items
func notePickerFuzzyFilter(term string, targets []string) []list.Rank {
	if term == "" {
		return nil
	}

	matches := fuzzy.Find(term, targets)
	ranks := make([]list.Rank, len(matches))
	for i, match := range matches {
		ranks[i] = list.Rank{
			Index:          match.Index,
			MatchedIndexes: match.MatchedIndexes,
		}
	}
	return ranks
}

// NewNotePicker creates a new note picker component
func NewNotePicker(title string) *NotePicker {
	l := list.New([]list.Item{}, notePickerDelegate{}, 0, 0)
	l.Title = title
	l.SetShowStatusBar(false)
	l.SetFilteringEnabled(true)
	l.FilterInput.Prompt = "Filter: "
	l.Styles.Title = notePickerTitleStyle
	l.SetShowHelp(false)
	l.Filter = notePickerFuzzyFilter

	np := &NotePicker{list: l}
	np.SetWidth(80)
	return np
}

// Show displays the note picker with the given notes
func (np *NotePicker) Show(ns []*notes.Note) {
	np.visible = true
	np.notes = ns

	items := make([]list.Item, len(ns))
	for i, n := range ns {
		items[i] = notePickerItem{note: n}
	}
	np.list.SetItems(items)
	np.list.ResetFilter()
	np.list.Select(0)
}

// Hide hides the note picker
func (np *NotePicker) Hide() {
	np.visible = false
}

// IsVisible returns whether the note picker is visible
func (np *NotePicker) IsVisible() bool {
	return np.visible
}

// Len returns the number of notes offered.
func (np *NotePicker) Len() int {
	return len(np.notes)
}

// SetWidth sets the width of the note picker
func (np *NotePicker) SetWidth(width int) {
	np.width = width
	listWidth := width - 10
	if listWidth < 40 {
		listWidth = 40
	}
	np.list.SetSize(listWidth, 15)
}

// Update handles Bubble Tea messages
func (np *NotePicker) Update(msg tea.Msg) (*NotePicker, tea.Cmd) {
	if !np.visible {
		return np, nil
	}

	if keyMsg, ok := msg.(tea.KeyMsg); ok {
		// While the filter is being typed, esc and enter belong to the list.
		filtering := np.list.FilterState() == list.Filtering
		switch {
		case keyMsg.Type == tea.KeyEsc && !filtering:
			np.Hide()
			return np, func() tea.Msg {
				return NotePickerCancelMsg{}
			}

		case keyMsg.Type == tea.KeyEnter && !filtering:
			item, ok := np.list.SelectedItem().(notePickerItem)
			if !ok {
				return np, nil
			}
			np.Hide()
			id := item.note.ID
			return np, func() tea.Msg {
				return NotePickerSelectMsg{NoteID: id}
			}
		}
	}

	var cmd tea.Cmd
	np.list, cmd = np.list.Update(msg)
	return np, cmd
}

// View renders the note picker
func (np *NotePicker) View() string {
	if !np.visible {
		return ""
	}

	var content strings.Builder
	if len(np.notes) == 0 {
		content.WriteString(notePickerTitleStyle.Render(np.list.Title))
		content.WriteString("\n\n")
		content.WriteString(notePickerDescStyle.Render("No notes yet. Create one with `qr notes new`."))
	} else {
		content.WriteString(np.list.View())
	}
	content.WriteString("\n\n")
	content.WriteString(notePickerHelpStyle.Render("ENTER: open  ESC: leave empty  /: filter"))

	return notePickerBoxStyle.Render(content.String())
}
