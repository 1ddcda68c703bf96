// Package notes stores the documents and conversations shown in panes.
//
// Notes are markdown files with YAML frontmatter kept under the notes
// directory in a date hierarchy:
//
//	~/.quire/notes/
//	└── yyyy/
//	    └── yyyy-mm/
//	        └── yyyy-mm-dd-slug.md
//
// A sqlite index holds note metadata and the wiki links between notes. A
// pane's content reference is the note ID.
package notes

import (
	"errors"
	"fmt"
	"path/filepath"
	"time"

	"github.com/rs/xid"
)

var ErrNotFound = errors.New("note not found")

type Kind string

const (
	KindNote         Kind = "note"
	KindConversation Kind = "conversation"
)

func ParseKind(s string) (Kind, error) {
	switch Kind(s) {
	case KindNote, "":
		return KindNote, nil
	case KindConversation:
		return KindConversation, nil
	}
	return "", fmt.Errorf("unknown note kind %q", s)
}

type Note struct {
	ID    string   `json:"id"`
	Title string   `json:"title"`
	Slug  string   `json:"slug"`
	Kind  Kind     `json:"kind"`
	Tags  []string `json:"tags"`
	// FilePath is relative to the notes directory.
	FilePath  string    `json:"file_path"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// NewNote creates a note dated now. The slug comes from the title.
func NewNote(title string, kind Kind, tags []string) *Note {
	now := time.Now()
	slug := NormalizeSlug(title)
	if slug == "" {
		slug = "untitled"
	}
	return &Note{
		ID:        xid.New().String(),
		Title:     title,
		Slug:      slug,
		Kind:      kind,
		Tags:      tags,
		FilePath:  RelPath(now, slug),
		CreatedAt: now,
		UpdatedAt: now,
	}
}

// RelPath returns yyyy/yyyy-mm/yyyy-mm-dd-slug.md for a note created at t.
func RelPath(t time.Time, slug string) string {
	return filepath.Join(
		t.Format("2006"),
		t.Format("2006-01"),
		t.Format("2006-01-02")+"-"+slug+".md",
	)
}

// Link is a wiki link from one note to another. TargetID is empty while
// no note with TargetSlug exists.
type Link struct {
	ID         string    `json:"id"`
	SourceID   string    `json:"source_id"`
	TargetSlug string    `json:"target_slug"`
	TargetID   string    `json:"target_id,omitempty"`
	Position   int       `json:"position"`
	CreatedAt  time.Time `json:"created_at"`
}

func newLink(sourceID, targetSlug string, position int) *Link {
	return &Link{
		ID:         xid.New().String(),
		SourceID:   sourceID,
		TargetSlug: targetSlug,
		Position:   position,
		CreatedAt:  time.Now(),
	}
}

// Content is what a pane displays for a content reference.
type Content struct {
	Note *Note
	Body string
}
