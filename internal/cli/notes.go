package cli

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/huh"
	"github.com/spf13/cobra"

	"github.com/MikeBiancalana/quire/internal/notes"
	"github.com/MikeBiancalana/quire/internal/tui/components"
)

var (
	tagsFlag   []string
	kindFlag   string
	bodyFlag   string
	formatFlag string
	renderFlag bool
)

var notesCmd = &cobra.Command{
	Use:   "notes",
	Short: "Manage notes and conversations",
	Long:  `Manage the notes and conversations panes can show - create, list, and show them.`,
}

var notesNewCmd = &cobra.Command{
	Use:   "new [title]",
	Short: "Create a note",
	Long: `Creates a note or conversation under the notes directory and indexes it.

If no title is given an interactive form asks for the title, kind, tags and body.`,
	Args: cobra.ArbitraryArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		svc, closeDB, err := initNotesService()
		if err != nil {
			return err
		}
		defer closeDB()

		var in noteInput
		if len(args) == 0 {
			in, err = runInteractiveNoteForm()
			if err != nil {
				return err
			}
		} else {
			in = noteInput{
				Title: strings.TrimSpace(strings.Join(args, " ")),
				Kind:  kindFlag,
				Tags:  tagsFlag,
				Body:  bodyFlag,
			}
		}

		n, err := createNote(svc, in)
		if err != nil {
			return err
		}
		if !quietFlag {
			fmt.Fprintf(cmd.OutOrStdout(), "✓ Created %s: %s (%s)\n", n.Kind, n.Title, n.Slug)
		}
		return nil
	},
}

var notesListCmd = &cobra.Command{
	Use:   "list",
	Short: "List notes",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		svc, closeDB, err := initNotesService()
		if err != nil {
			return err
		}
		defer closeDB()

		all, err := svc.List()
		if err != nil {
			return fmt.Errorf("failed to list notes: %w", err)
		}
		return writeNotes(cmd.OutOrStdout(), all, formatFlag)
	},
}

var notesShowCmd = &cobra.Command{
	Use:   "show <slug>",
	Short: "Show a note and its links",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		svc, closeDB, err := initNotesService()
		if err != nil {
			return err
		}
		defer closeDB()

		return showNote(cmd.OutOrStdout(), svc, strings.TrimSpace(args[0]), renderFlag)
	},
}

func init() {
	notesNewCmd.Flags().StringSliceVarP(&tagsFlag, "tag", "t", nil, "tag to add (repeatable)")
	notesNewCmd.Flags().StringVarP(&kindFlag, "kind", "k", string(notes.KindNote), "note or conversation")
	notesNewCmd.Flags().StringVarP(&bodyFlag, "body", "b", "", "markdown body")
	notesListCmd.Flags().StringVarP(&formatFlag, "format", "f", "table", "output format: table, json, tsv or csv")
	notesShowCmd.Flags().BoolVarP(&renderFlag, "render", "r", false, "render the markdown body")

	notesCmd.AddCommand(notesNewCmd)
	notesCmd.AddCommand(notesListCmd)
	notesCmd.AddCommand(notesShowCmd)
}

func GetNotesCommand() *cobra.Command {
	return notesCmd
}

type noteInput struct {
	Title string
	Kind  string
	Tags  []string
	Body  string
}

// createNote validates in and creates the note.
func createNote(svc *notes.Service, in noteInput) (*notes.Note, error) {
	title := strings.TrimSpace(in.Title)
	if title == "" {
		return nil, fmt.Errorf("note title cannot be empty")
	}
	kind, err := notes.ParseKind(in.Kind)
	if err != nil {
		return nil, err
	}

	var tags []string
	for _, t := range in.Tags {
		t = strings.ToLower(strings.TrimLeft(strings.TrimSpace(t), "#"))
		if t != "" {
			tags = append(tags, t)
		}
	}

	n, err := svc.Create(title, kind, tags, in.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to create note: %w", err)
	}
	return n, nil
}

// runInteractiveNoteForm asks for a new note's fields
func runInteractiveNoteForm() (noteInput, error) {
	var (
		in   noteInput
		tags string
	)
	in.Kind = string(notes.KindNote)

	form := huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Title").
				Value(&in.Title).
				Validate(func(s string) error {
					if strings.TrimSpace(s) == "" {
						return fmt.Errorf("title is required")
					}
					return nil
				}),
			huh.NewSelect[string]().
				Title("Kind").
				Options(
					huh.NewOption("Note", string(notes.KindNote)),
					huh.NewOption("Conversation", string(notes.KindConversation)),
				).
				Value(&in.Kind),
			huh.NewInput().
				Title("Tags (optional, comma-separated)").
				Value(&tags),
			huh.NewText().
				Title("Body (optional, markdown)").
				Value(&in.Body),
		),
	)

	if err := form.Run(); err != nil {
		return noteInput{}, fmt.Errorf("form cancelled: %w", err)
	}

	for _, t := range strings.Split(tags, ",") {
		if t = strings.TrimSpace(t); t != "" {
			in.Tags = append(in.Tags, t)
		}
	}
	return in, nil
}

// showNote prints the note with the given slug or id, then its links.
func showNote(w io.Writer, svc *notes.Service, ref string, render bool) error {
	if ref == "" {
		return fmt.Errorf("note slug cannot be empty")
	}
	c, err := svc.Resolve(ref)
	if err != nil {
		return fmt.Errorf("failed to get note %q: %w", ref, err)
	}
	n := c.Note

	fmt.Fprintf(w, "%s\n", n.Title)
	fmt.Fprintf(w, "  ID:      %s\n", n.ID)
	fmt.Fprintf(w, "  Kind:    %s\n", n.Kind)
	fmt.Fprintf(w, "  File:    %s\n", n.FilePath)
	fmt.Fprintf(w, "  Created: %s\n", n.CreatedAt.Format("2006-01-02 15:04"))
	if len(n.Tags) > 0 {
		fmt.Fprintf(w, "  Tags:    %s\n", strings.Join(n.Tags, ", "))
	}

	body := c.Body
	if render {
		body = components.RenderMarkdown(body, 80)
	}
	if strings.TrimSpace(body) != "" {
		fmt.Fprintf(w, "\n%s\n", strings.TrimRight(body, "\n"))
	}

	links, err := svc.Links(n.ID)
	if err != nil {
		return fmt.Errorf("failed to get links: %w", err)
	}
	if len(links) > 0 {
		fmt.Fprintln(w, "\nLinks:")
		for _, l := range links {
			status := "unresolved"
			if l.TargetID != "" {
				status = l.TargetID
			}
			fmt.Fprintf(w, "  [[%s]] -> %s\n", l.TargetSlug, status)
		}
	}
	return nil
}
