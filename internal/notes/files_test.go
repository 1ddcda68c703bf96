package notes

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRenderParseRoundTrip(t *testing.T) {
	n := &Note{
		ID:        "abc",
		Title:     "Plan",
		Kind:      KindConversation,
		Tags:      []string{"work", "q3"},
		CreatedAt: time.Date(2026, 3, 4, 10, 0, 0, 0, time.UTC),
	}
	data, err := Render(n, "Hello [[world]]\n\n")
	require.NoError(t, err)

	fm, body, err := Parse(data)
	require.NoError(t, err)
	assert.Equal(t, "abc", fm.ID)
	assert.Equal(t, "Plan", fm.Title)
	assert.Equal(t, "conversation", fm.Kind)
	assert.Equal(t, []string{"work", "q3"}, fm.Tags)
	assert.Equal(t, "2026-03-04T10:00:00Z", fm.Created)
	assert.Equal(t, "Hello [[world]]\n", body)
}

func TestParse(t *testing.T) {
	fm, body, err := Parse([]byte("just text\n"))
	require.NoError(t, err)
	assert.Empty(t, fm.ID)
	assert.Equal(t, "just text\n", body)

	fm, body, err = Parse([]byte("---\n---\nbody"))
	require.NoError(t, err)
	assert.Empty(t, fm.Title)
	assert.Equal(t, "body", body)

	_, _, err = Parse([]byte("---\ntitle: x\nno end"))
	assert.Error(t, err)

	_, _, err = Parse([]byte("---\ntitle: [x\n---\n"))
	assert.Error(t, err)
}

func TestFileStore(t *testing.T) {
	root := t.TempDir()
	fs := NewFileStore(root)

	rel := RelPath(time.Date(2026, 1, 15, 0, 0, 0, 0, time.UTC), "slug")
	assert.Equal(t, filepath.Join("2026", "2026-01", "2026-01-15-slug.md"), rel)

	require.NoError(t, fs.Write(rel, []byte("x")))
	data, err := fs.Read(rel)
	require.NoError(t, err)
	assert.Equal(t, "x", string(data))

	back, err := fs.Rel(fs.Abs(rel))
	require.NoError(t, err)
	assert.Equal(t, rel, back)

	_, err = fs.Rel(filepath.Join(filepath.Dir(root), "elsewhere.md"))
	assert.Error(t, err)
}
