package sync

import (
	"os"
	"path/filepath"
	gosync "sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MikeBiancalana/quire/internal/notes"
)

type fakeIndexer struct {
	mu    gosync.Mutex
	paths []string
}

func (f *fakeIndexer) Reindex(abs string) (*notes.Note, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.paths = append(f.paths, abs)
	if _, err := os.Stat(abs); err != nil {
		return nil, nil
	}
	return &notes.Note{ID: "id-" + filepath.Base(abs)}, nil
}

func waitChange(t *testing.T, w *Watcher) NoteChanged {
	t.Helper()
	select {
	case ev := <-w.Changes():
		return ev
	case <-time.After(5 * time.Second):
		t.Fatal("timed out waiting for a change")
		return NoteChanged{}
	}
}

func TestWatcher_StartStop(t *testing.T) {
	w, err := NewWatcher(&fakeIndexer{}, t.TempDir(), 0)
	require.NoError(t, err)
	require.NoError(t, w.Start())
	w.Stop()
	w.Stop()

	_, ok := <-w.Changes()
	assert.False(t, ok)
}

func TestWatcher_ReindexesChangedNotes(t *testing.T) {
	root := t.TempDir()
	dir := filepath.Join(root, "2026", "2026-05")
	require.NoError(t, os.MkdirAll(dir, 0755))

	idx := &fakeIndexer{}
	w, err := NewWatcher(idx, root, 20*time.Millisecond)
	require.NoError(t, err)
	require.NoError(t, w.Start())
	defer w.Stop()

	path := filepath.Join(dir, "2026-05-01-a.md")
	require.NoError(t, os.WriteFile(path, []byte("one"), 0644))
	require.NoError(t, os.WriteFile(path, []byte("two"), 0644))

	ev := waitChange(t, w)
	assert.Equal(t, path, ev.Path)
	assert.Equal(t, "id-2026-05-01-a.md", ev.NoteID)
	assert.False(t, ev.Removed)

	require.NoError(t, os.Remove(path))
	// writes may have been split across debounce windows
	for !ev.Removed {
		ev = waitChange(t, w)
	}
	assert.Empty(t, ev.NoteID)
}

func TestWatcher_IgnoresOtherFiles(t *testing.T) {
	root := t.TempDir()
	idx := &fakeIndexer{}
	w, err := NewWatcher(idx, root, 10*time.Millisecond)
	require.NoError(t, err)
	require.NoError(t, w.Start())
	defer w.Stop()

	require.NoError(t, os.WriteFile(filepath.Join(root, "scratch.txt"), []byte("x"), 0644))
	time.Sleep(100 * time.Millisecond)

	idx.mu.Lock()
	defer idx.mu.Unlock()
	assert.Empty(t, idx.paths)
}

func TestWatcher_WatchesNewDirectories(t *testing.T) {
	root := t.TempDir()
	w, err := NewWatcher(&fakeIndexer{}, root, 20*time.Millisecond)
	require.NoError(t, err)
	require.NoError(t, w.Start())
	defer w.Stop()

	dir := filepath.Join(root, "2027")
	require.NoError(t, os.Mkdir(dir, 0755))
	// give the watcher a moment to register the directory
	time.Sleep(100 * time.Millisecond)

	path := filepath.Join(dir, "2027-01-01-new.md")
	require.NoError(t, os.WriteFile(path, []byte("x"), 0644))
	ev := waitChange(t, w)
	assert.Equal(t, path, ev.Path)
}
