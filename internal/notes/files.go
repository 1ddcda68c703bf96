package notes

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

// FileStore reads and writes note files below a root directory.
type FileStore struct {
	root string
}

func NewFileStore(root string) *FileStore {
	return &FileStore{root: root}
}

func (fs *FileStore) Root() string {
	return fs.root
}

// Abs returns the absolute path of a note-relative path.
func (fs *FileStore) Abs(rel string) string {
	return filepath.Join(fs.root, rel)
}

// Rel converts an absolute path under the root to a note-relative path.
func (fs *FileStore) Rel(abs string) (string, error) {
	rel, err := filepath.Rel(fs.root, abs)
	if err != nil {
		return "", fmt.Errorf("failed to relativize %s: %w", abs, err)
	}
	if strings.HasPrefix(rel, "..") {
		return "", fmt.Errorf("%s is outside the notes directory", abs)
	}
	return rel, nil
}

func (fs *FileStore) Write(rel string, content []byte) error {
	path := fs.Abs(rel)
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("failed to create note directory: %w", err)
	}
	if err := os.WriteFile(path, content, 0644); err != nil {
		return fmt.Errorf("failed to write note: %w", err)
	}
	return nil
}

func (fs *FileStore) Read(rel string) ([]byte, error) {
	data, err := os.ReadFile(fs.Abs(rel))
	if err != nil {
		return nil, fmt.Errorf("failed to read note: %w", err)
	}
	return data, nil
}

// Frontmatter is the YAML header of a note file.
type Frontmatter struct {
	ID      string   `yaml:"id"`
	Title   string   `yaml:"title"`
	Kind    string   `yaml:"kind,omitempty"`
	Created string   `yaml:"created"`
	Tags    []string `yaml:"tags,omitempty"`
}

const fmDelim = "---"

// Render produces the file content for n with body.
func Render(n *Note, body string) ([]byte, error) {
	fm := Frontmatter{
		ID:      n.ID,
		Title:   n.Title,
		Kind:    string(n.Kind),
		Created: n.CreatedAt.Format(time.RFC3339),
		Tags:    n.Tags,
	}
	header, err := yaml.Marshal(fm)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal frontmatter: %w", err)
	}
	var buf bytes.Buffer
	buf.WriteString(fmDelim + "\n")
	buf.Write(header)
	buf.WriteString(fmDelim + "\n")
	if body != "" {
		buf.WriteString("\n")
		buf.WriteString(strings.TrimRight(body, "\n"))
		buf.WriteString("\n")
	}
	return buf.Bytes(), nil
}

// Parse splits a note file into frontmatter and body. A file without
// frontmatter has an empty Frontmatter and the whole content as body.
func Parse(content []byte) (Frontmatter, string, error) {
	var fm Frontmatter
	text := strings.ReplaceAll(string(content), "\r\n", "\n")
	if !strings.HasPrefix(text, fmDelim+"\n") {
		return fm, text, nil
	}

	// rest keeps the newline after the opening delimiter so an empty
	// header matches at index 0
	rest := text[len(fmDelim):]
	end := strings.Index(rest, "\n"+fmDelim)
	if end < 0 {
		return fm, "", fmt.Errorf("frontmatter not closed")
	}
	if err := yaml.Unmarshal([]byte(rest[:end]), &fm); err != nil {
		return fm, "", fmt.Errorf("failed to parse frontmatter: %w", err)
	}

	body := rest[end+len(fmDelim)+1:]
	return fm, strings.TrimLeft(body, "\n"), nil
}
