package notes

import (
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/MikeBiancalana/quire/internal/logger"
)

// Repository is the sqlite side of the note store.
type Repository struct {
	db *Database
}

func NewRepository(db *Database) *Repository {
	return &Repository{db: db}
}

const noteColumns = "id, title, slug, kind, file_path, tags, created_at, updated_at"

type rowScanner interface {
	Scan(dest ...any) error
}

func scanNote(row rowScanner) (*Note, error) {
	var (
		n                    Note
		kind                 string
		tags                 sql.NullString
		createdUnix, updated int64
	)
	if err := row.Scan(&n.ID, &n.Title, &n.Slug, &kind, &n.FilePath, &tags, &createdUnix, &updated); err != nil {
		return nil, err
	}
	n.Kind = Kind(kind)
	n.CreatedAt = time.Unix(createdUnix, 0)
	n.UpdatedAt = time.Unix(updated, 0)
	if tags.Valid && tags.String != "" {
		n.Tags = strings.Split(tags.String, ",")
	}
	return &n, nil
}

// SaveNote inserts or updates a note.
func (r *Repository) SaveNote(n *Note) error {
	logger.Debug("SaveNote", "note_id", n.ID, "slug", n.Slug)

	_, err := r.db.DB().Exec(
		`INSERT INTO notes (`+noteColumns+`)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?)
		 ON CONFLICT(id) DO UPDATE SET
		   title = excluded.title,
		   slug = excluded.slug,
		   kind = excluded.kind,
		   file_path = excluded.file_path,
		   tags = excluded.tags,
		   updated_at = excluded.updated_at`,
		n.ID, n.Title, n.Slug, string(n.Kind), n.FilePath, strings.Join(n.Tags, ","),
		n.CreatedAt.Unix(), n.UpdatedAt.Unix(),
	)
	if err != nil {
		logger.Error("SaveNote", "error", err, "note_id", n.ID)
		return fmt.Errorf("failed to save note: %w", err)
	}
	return nil
}

func (r *Repository) getBy(column, value string) (*Note, error) {
	n, err := scanNote(r.db.DB().QueryRow(
		"SELECT "+noteColumns+" FROM notes WHERE "+column+" = ?", value,
	))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		logger.Error("getNote", "error", err, column, value)
		return nil, fmt.Errorf("failed to get note by %s: %w", column, err)
	}
	return n, nil
}

func (r *Repository) GetByID(id string) (*Note, error) {
	return r.getBy("id", id)
}

func (r *Repository) GetBySlug(slug string) (*Note, error) {
	return r.getBy("slug", slug)
}

func (r *Repository) GetByPath(rel string) (*Note, error) {
	return r.getBy("file_path", rel)
}

// List returns every note, newest first.
func (r *Repository) List() ([]*Note, error) {
	rows, err := r.db.DB().Query("SELECT " + noteColumns + " FROM notes ORDER BY created_at DESC, title")
	if err != nil {
		return nil, fmt.Errorf("failed to query notes: %w", err)
	}
	defer rows.Close()

	var out []*Note
	for rows.Next() {
		n, err := scanNote(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan note: %w", err)
		}
		out = append(out, n)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate notes: %w", err)
	}
	return out, nil
}

// ReplaceLinks swaps the stored links of sourceID for links, resolving
// targets that already exist.
func (r *Repository) ReplaceLinks(sourceID string, links []WikiLink) error {
	tx, err := r.db.BeginTx()
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.Exec("DELETE FROM note_links WHERE source_note_id = ?", sourceID); err != nil {
		return fmt.Errorf("failed to delete note links: %w", err)
	}

	for i, wl := range links {
		link := newLink(sourceID, wl.TargetSlug, i)
		var target sql.NullString
		err := tx.QueryRow("SELECT id FROM notes WHERE slug = ?", wl.TargetSlug).Scan(&target)
		if err != nil && !errors.Is(err, sql.ErrNoRows) {
			return fmt.Errorf("failed to look up target note: %w", err)
		}
		if _, err := tx.Exec(
			`INSERT INTO note_links (id, source_note_id, target_slug, target_note_id, position, created_at)
			 VALUES (?, ?, ?, ?, ?, ?)`,
			link.ID, link.SourceID, link.TargetSlug, target, link.Position, link.CreatedAt.Unix(),
		); err != nil {
			return fmt.Errorf("failed to save note link: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}
	logger.Debug("ReplaceLinks", "note_id", sourceID, "links", len(links))
	return nil
}

// ResolveOrphans points dangling links to slug at noteID.
func (r *Repository) ResolveOrphans(slug, noteID string) (int64, error) {
	res, err := r.db.DB().Exec(
		"UPDATE note_links SET target_note_id = ? WHERE target_slug = ? AND target_note_id IS NULL",
		noteID, slug,
	)
	if err != nil {
		return 0, fmt.Errorf("failed to resolve orphaned links: %w", err)
	}
	return res.RowsAffected()
}

// Links returns the links of sourceID in document order.
func (r *Repository) Links(sourceID string) ([]Link, error) {
	rows, err := r.db.DB().Query(
		`SELECT id, source_note_id, target_slug, target_note_id, position, created_at
		 FROM note_links WHERE source_note_id = ? ORDER BY position`,
		sourceID,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to query links: %w", err)
	}
	defer rows.Close()

	var out []Link
	for rows.Next() {
		var (
			l       Link
			target  sql.NullString
			created int64
		)
		if err := rows.Scan(&l.ID, &l.SourceID, &l.TargetSlug, &target, &l.Position, &created); err != nil {
			return nil, fmt.Errorf("failed to scan link: %w", err)
		}
		l.TargetID = target.String
		l.CreatedAt = time.Unix(created, 0)
		out = append(out, l)
	}
	return out, rows.Err()
}

// DeleteByPath removes the note stored at rel, if any.
func (r *Repository) DeleteByPath(rel string) error {
	if _, err := r.db.DB().Exec("DELETE FROM notes WHERE file_path = ?", rel); err != nil {
		return fmt.Errorf("failed to delete note: %w", err)
	}
	return nil
}
