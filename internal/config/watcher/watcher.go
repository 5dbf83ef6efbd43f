// Package watcher provides file watching for configuration live reload.
//
// The watcher monitors individual files (the configuration file and the
// keymap file) by watching their parent directories, so editors that save
// through rename-and-replace are still seen. Bursts of events for one
// file are collapsed into a single callback after a quiet period.
package watcher

import (
	"errors"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
)

// Errors returned by the watcher.
var (
	ErrWatcherClosed   = errors.New("watcher closed")
	ErrAlreadyWatching = errors.New("already watching path")
	ErrNotWatching     = errors.New("path not watched")
)

// DefaultDebounce is the quiet period used when none is configured.
const DefaultDebounce = 100 * time.Millisecond

// Event represents a file change event.
type Event struct {
	// Path is the absolute path to the changed file.
	Path string

	// Op is the last operation seen for the file during the debounce window.
	Op Operation

	// Time is when the event was delivered.
	Time time.Time
}

// Operation represents the type of file operation.
type Operation int

const (
	// OpWrite indicates the file was modified.
	OpWrite Operation = iota

	// OpCreate indicates a new file was created.
	OpCreate

	// OpRemove indicates the file was deleted.
	OpRemove

	// OpRename indicates the file was renamed.
	OpRename
)

// String returns the operation name.
func (op Operation) String() string {
	switch op {
	case OpWrite:
		return "write"
	case OpCreate:
		return "create"
	case OpRemove:
		return "remove"
	case OpRename:
		return "rename"
	default:
		return "unknown"
	}
}

// Handler is called when a file change is detected.
type Handler func(event Event)

// Option configures a Watcher.
type Option func(*Watcher)

// WithDebounce sets the quiet period before a change is reported.
func WithDebounce(d time.Duration) Option {
	return func(w *Watcher) {
		if d > 0 {
			w.debounce = d
		}
	}
}

// Watcher monitors files for changes.
type Watcher struct {
	mu sync.Mutex

	fs *fsnotify.Watcher

	// Watched files, keyed by absolute path
	files map[string]bool

	// Reference counts for watched parent directories
	dirs map[string]int

	// Pending debounce timers, keyed by file path
	pending map[string]*time.Timer
	lastOp  map[string]Operation

	handlers []Handler
	debounce time.Duration

	errors chan error

	closed  bool
	closeCh chan struct{}
	wg      sync.WaitGroup
}

// New creates a new file watcher.
func New(opts ...Option) (*Watcher, error) {
	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}

	w := &Watcher{
		fs:       fsw,
		files:    make(map[string]bool),
		dirs:     make(map[string]int),
		pending:  make(map[string]*time.Timer),
		lastOp:   make(map[string]Operation),
		debounce: DefaultDebounce,
		errors:   make(chan error, 16),
		closeCh:  make(chan struct{}),
	}
	for _, opt := range opts {
		opt(w)
	}

	w.wg.Add(1)
	go w.processLoop()

	return w, nil
}

// Watch adds a file to the watch list. The file itself need not exist
// yet, but its directory must.
func (w *Watcher) Watch(path string) error {
	absPath, err := filepath.Abs(path)
	if err != nil {
		return err
	}

	w.mu.Lock()
	defer w.mu.Unlock()

	if w.closed {
		return ErrWatcherClosed
	}
	if w.files[absPath] {
		return ErrAlreadyWatching
	}

	dir := filepath.Dir(absPath)
	if w.dirs[dir] == 0 {
		if _, err := os.Stat(dir); err != nil {
			return err
		}
		if err := w.fs.Add(dir); err != nil {
			return err
		}
	}
	w.dirs[dir]++
	w.files[absPath] = true
	return nil
}

// Unwatch removes a file from the watch list.
func (w *Watcher) Unwatch(path string) error {
	absPath, err := filepath.Abs(path)
	if err != nil {
		return err
	}

	w.mu.Lock()
	defer w.mu.Unlock()

	if w.closed {
		return ErrWatcherClosed
	}
	if !w.files[absPath] {
		return ErrNotWatching
	}
	delete(w.files, absPath)

	dir := filepath.Dir(absPath)
	w.dirs[dir]--
	if w.dirs[dir] <= 0 {
		delete(w.dirs, dir)
		return w.fs.Remove(dir)
	}
	return nil
}

// IsWatching returns true if the file is being watched.
func (w *Watcher) IsWatching(path string) bool {
	absPath, err := filepath.Abs(path)
	if err != nil {
		return false
	}
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.files[absPath]
}

// OnChange registers a handler for file changes. Handlers run on the
// debounce timer goroutine.
func (w *Watcher) OnChange(handler Handler) {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.handlers = append(w.handlers, handler)
}

// Errors returns the channel of errors reported by the file system
// watcher. Errors are dropped when nobody reads them.
func (w *Watcher) Errors() <-chan error {
	return w.errors
}

// Close stops the watcher. Pending debounced events are discarded.
func (w *Watcher) Close() error {
	w.mu.Lock()
	if w.closed {
		w.mu.Unlock()
		return nil
	}
	w.closed = true
	close(w.closeCh)
	for path, t := range w.pending {
		t.Stop()
		delete(w.pending, path)
	}
	w.mu.Unlock()

	w.wg.Wait()
	close(w.errors)
	return w.fs.Close()
}

// processLoop handles incoming fsnotify events.
func (w *Watcher) processLoop() {
	defer w.wg.Done()

	for {
		select {
		case <-w.closeCh:
			return

		case ev, ok := <-w.fs.Events:
			if !ok {
				return
			}
			w.handleFSEvent(ev)

		case err, ok := <-w.fs.Errors:
			if !ok {
				return
			}
			select {
			case w.errors <- err:
			default:
			}
		}
	}
}

// handleFSEvent filters an event to the watched files and (re)arms the
// debounce timer for that file.
func (w *Watcher) handleFSEvent(ev fsnotify.Event) {
	op, ok := convertOp(ev.Op)
	if !ok {
		return
	}
	path := filepath.Clean(ev.Name)

	w.mu.Lock()
	defer w.mu.Unlock()

	if w.closed || !w.files[path] {
		return
	}
	w.lastOp[path] = op
	if t, ok := w.pending[path]; ok {
		t.Reset(w.debounce)
		return
	}
	w.pending[path] = time.AfterFunc(w.debounce, func() { w.fire(path) })
}

// fire delivers the debounced event for path.
func (w *Watcher) fire(path string) {
	w.mu.Lock()
	if w.closed {
		w.mu.Unlock()
		return
	}
	delete(w.pending, path)
	op := w.lastOp[path]
	delete(w.lastOp, path)
	handlers := make([]Handler, len(w.handlers))
	copy(handlers, w.handlers)
	w.mu.Unlock()

	event := Event{Path: path, Op: op, Time: time.Now()}
	for _, h := range handlers {
		h(event)
	}
}

// convertOp maps an fsnotify operation to the watcher's. Chmod-only
// events are ignored.
func convertOp(op fsnotify.Op) (Operation, bool) {
	switch {
	case op.Has(fsnotify.Remove):
		return OpRemove, true
	case op.Has(fsnotify.Rename):
		return OpRename, true
	case op.Has(fsnotify.Create):
		return OpCreate, true
	case op.Has(fsnotify.Write):
		return OpWrite, true
	default:
		return 0, false
	}
}
