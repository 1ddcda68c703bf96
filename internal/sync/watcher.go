// Package sync keeps the note index in step with edits made to note files
// outside quire.
package sync

import (
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	gosync "sync"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/MikeBiancalana/quire/internal/logger"
	"github.com/MikeBiancalana/quire/internal/notes"
)

const DefaultDebounce = 100 * time.Millisecond

// Indexer refreshes the index entry for one file. notes.Service implements
// it.
type Indexer interface {
	Reindex(abs string) (*notes.Note, error)
}

// NoteChanged is sent after a changed file has been reindexed.
type NoteChanged struct {
	Path   string
	NoteID string
	// Removed is set when the file no longer exists.
	Removed bool
}

// Watcher watches the notes tree, debounces bursts of events and reindexes
// the affected files.
type Watcher struct {
	watcher  *fsnotify.Watcher
	indexer  Indexer
	root     string
	debounce time.Duration

	changes chan NoteChanged
	done    chan struct{}

	mu            gosync.Mutex
	stopped       bool
	debounceTimer *time.Timer
	pending       map[string]bool
}

func NewWatcher(indexer Indexer, root string, debounce time.Duration) (*Watcher, error) {
	fsWatcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("failed to create watcher: %w", err)
	}
	if debounce <= 0 {
		debounce = DefaultDebounce
	}
	return &Watcher{
		watcher:  fsWatcher,
		indexer:  indexer,
		root:     root,
		debounce: debounce,
		changes:  make(chan NoteChanged, 16),
		done:     make(chan struct{}),
		pending:  make(map[string]bool),
	}, nil
}

// Start watches root and every directory below it.
func (w *Watcher) Start() error {
	if err := w.addTree(w.root); err != nil {
		return err
	}
	go w.watch()
	return nil
}

func (w *Watcher) addTree(dir string) error {
	return filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			if err := w.watcher.Add(path); err != nil {
				return fmt.Errorf("failed to watch %s: %w", path, err)
			}
		}
		return nil
	})
}

func (w *Watcher) Stop() {
	w.mu.Lock()
	if w.stopped {
		w.mu.Unlock()
		return
	}
	w.stopped = true
	if w.debounceTimer != nil {
		w.debounceTimer.Stop()
	}
	close(w.done)
	close(w.changes)
	w.mu.Unlock()
	w.watcher.Close()
}

// Changes delivers one NoteChanged per reindexed file. It is closed by Stop.
func (w *Watcher) Changes() <-chan NoteChanged {
	return w.changes
}

func (w *Watcher) watch() {
	for {
		select {
		case <-w.done:
			return

		case event, ok := <-w.watcher.Events:
			if !ok {
				return
			}
			w.handle(event)

		case err, ok := <-w.watcher.Errors:
			if !ok {
				return
			}
			logger.Warn("watcher error", "error", err)
		}
	}
}

func (w *Watcher) handle(event fsnotify.Event) {
	if event.Op&fsnotify.Create != 0 {
		if info, err := os.Stat(event.Name); err == nil && info.IsDir() {
			// new yyyy or yyyy-mm directory
			if err := w.addTree(event.Name); err != nil {
				logger.Warn("failed to watch new directory", "path", event.Name, "error", err)
			}
			return
		}
	}
	if filepath.Ext(event.Name) != ".md" {
		return
	}
	if event.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Remove|fsnotify.Rename) == 0 {
		return
	}

	w.mu.Lock()
	defer w.mu.Unlock()
	if w.stopped {
		return
	}
	w.pending[event.Name] = true
	if w.debounceTimer != nil {
		w.debounceTimer.Stop()
	}
	w.debounceTimer = time.AfterFunc(w.debounce, w.flush)
}

// flush reindexes every pending file.
func (w *Watcher) flush() {
	w.mu.Lock()
	pending := w.pending
	w.pending = make(map[string]bool)
	w.mu.Unlock()

	for path := range pending {
		n, err := w.indexer.Reindex(path)
		if err != nil {
			logger.Warn("failed to reindex note", "path", path, "error", err)
			continue
		}
		ev := NoteChanged{Path: path, Removed: n == nil}
		if n != nil {
			ev.NoteID = n.ID
		}
		w.emit(ev)
	}
}

func (w *Watcher) emit(ev NoteChanged) {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.stopped {
		return
	}
	select {
	case w.changes <- ev:
	default:
		logger.Warn("dropping note change, reader is behind", "path", ev.Path)
	}
}
