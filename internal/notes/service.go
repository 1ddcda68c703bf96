package notes

import (
	"errors"
	"fmt"
	"path/filepath"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/rs/xid"

	"github.com/MikeBiancalana/quire/internal/logger"
)

// Service ties the file store and the index together.
type Service struct {
	repo  *Repository
	files *FileStore
}

func NewService(repo *Repository, files *FileStore) *Service {
	return &Service{repo: repo, files: files}
}

// Files exposes the underlying file store (used by the watcher).
func (s *Service) Files() *FileStore {
	return s.files
}

// Create writes a new note file, indexes it and its links, and connects
// any existing links that were waiting for its slug.
func (s *Service) Create(title string, kind Kind, tags []string, body string) (*Note, error) {
	n := NewNote(title, kind, tags)
	if err := s.uniqueSlug(n); err != nil {
		return nil, err
	}

	content, err := Render(n, body)
	if err != nil {
		return nil, err
	}
	if err := s.files.Write(n.FilePath, content); err != nil {
		return nil, err
	}
	if err := s.index(n, body); err != nil {
		return nil, err
	}
	logger.Info("note created", "note_id", n.ID, "slug", n.Slug, "kind", n.Kind)
	return n, nil
}

func (s *Service) uniqueSlug(n *Note) error {
	base := n.Slug
	for i := 2; ; i++ {
		_, err := s.repo.GetBySlug(n.Slug)
		if errors.Is(err, ErrNotFound) {
			n.FilePath = RelPath(n.CreatedAt, n.Slug)
			return nil
		}
		if err != nil {
			return err
		}
		n.Slug = base + "-" + strconv.Itoa(i)
	}
}

func (s *Service) index(n *Note, body string) error {
	if err := s.repo.SaveNote(n); err != nil {
		return err
	}
	if err := s.repo.ReplaceLinks(n.ID, ExtractWikiLinks(body)); err != nil {
		return fmt.Errorf("failed to update links of %s: %w", n.Slug, err)
	}
	if _, err := s.repo.ResolveOrphans(n.Slug, n.ID); err != nil {
		return err
	}
	return nil
}

// Get returns the note with id or ErrNotFound.
func (s *Service) Get(id string) (*Note, error) {
	return s.repo.GetByID(id)
}

// GetBySlug returns the note with slug or ErrNotFound.
func (s *Service) GetBySlug(slug string) (*Note, error) {
	return s.repo.GetBySlug(NormalizeSlug(slug))
}

// List returns every indexed note, newest first.
func (s *Service) List() ([]*Note, error) {
	return s.repo.List()
}

// Resolve loads what a pane shows for a content reference: a note ID, or
// failing that a slug.
func (s *Service) Resolve(ref string) (Content, error) {
	n, err := s.repo.GetByID(ref)
	if errors.Is(err, ErrNotFound) {
		n, err = s.GetBySlug(ref)
	}
	if err != nil {
		return Content{}, err
	}
	data, err := s.files.Read(n.FilePath)
	if err != nil {
		return Content{}, err
	}
	_, body, err := Parse(data)
	if err != nil {
		return Content{}, fmt.Errorf("failed to parse %s: %w", n.FilePath, err)
	}
	return Content{Note: n, Body: body}, nil
}

// Links returns the wiki links of the note with id in document order.
func (s *Service) Links(id string) ([]Link, error) {
	return s.repo.Links(id)
}

// FirstLinkTarget returns the ID of the first resolved link of id.
func (s *Service) FirstLinkTarget(id string) (string, error) {
	links, err := s.repo.Links(id)
	if err != nil {
		return "", err
	}
	for _, l := range links {
		if l.TargetID != "" {
			return l.TargetID, nil
		}
	}
	return "", ErrNotFound
}

// Reindex refreshes the index from the file at abs, which may have been
// edited, created or removed outside quire. It returns the affected note,
// or nil for a removed file.
func (s *Service) Reindex(abs string) (*Note, error) {
	rel, err := s.files.Rel(abs)
	if err != nil {
		return nil, err
	}
	if filepath.Ext(rel) != ".md" {
		return nil, fmt.Errorf("%s is not a markdown file", rel)
	}

	existing, err := s.repo.GetByPath(rel)
	if err != nil && !errors.Is(err, ErrNotFound) {
		return nil, err
	}

	data, err := s.files.Read(rel)
	if err != nil {
		if existing != nil {
			logger.Info("note removed", "note_id", existing.ID, "path", rel)
			return nil, s.repo.DeleteByPath(rel)
		}
		return nil, err
	}

	fm, body, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", rel, err)
	}
	n := noteFromFile(rel, fm, existing)
	if existing != nil && existing.ID != n.ID {
		// the file was given a new id by hand
		if err := s.repo.DeleteByPath(rel); err != nil {
			return nil, err
		}
	}
	n.UpdatedAt = time.Now()
	if err := s.index(n, body); err != nil {
		return nil, err
	}
	logger.Debug("note reindexed", "note_id", n.ID, "path", rel)
	return n, nil
}

// noteFromFile builds index metadata for a file. IDs come from the
// frontmatter, then the existing index row, then a fresh xid.
func noteFromFile(rel string, fm Frontmatter, existing *Note) *Note {
	n := &Note{FilePath: rel, Title: fm.Title, Tags: fm.Tags}

	switch {
	case fm.ID != "":
		n.ID = fm.ID
	case existing != nil:
		n.ID = existing.ID
	default:
		n.ID = xid.New().String()
	}

	base := strings.TrimSuffix(filepath.Base(rel), ".md")
	if len(base) > len("2006-01-02-") {
		if _, err := time.Parse("2006-01-02", base[:10]); err == nil {
			base = base[11:]
		}
	}
	n.Slug = NormalizeSlug(base)
	if n.Title == "" {
		n.Title = base
	}

	kind, err := ParseKind(fm.Kind)
	if err != nil {
		kind = KindNote
	}
	n.Kind = kind

	if t, err := time.Parse(time.RFC3339, fm.Created); err == nil {
		n.CreatedAt = t
	} else if existing != nil {
		n.CreatedAt = existing.CreatedAt
	} else {
		n.CreatedAt = time.Now()
	}
	return n
}

// Tags returns the distinct tags in use, sorted.
func (s *Service) Tags() ([]string, error) {
	all, err := s.repo.List()
	if err != nil {
		return nil, err
	}
	seen := make(map[string]bool)
	var out []string
	for _, n := range all {
		for _, t := range n.Tags {
			if !seen[t] {
				seen[t] = true
				out = append(out, t)
			}
		}
	}
	sort.Strings(out)
	return out, nil
}
