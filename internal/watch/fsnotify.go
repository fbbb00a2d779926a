package watch

import (
	"errors"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/sirupsen/logrus"

	"github.com/dshills/wikistorm/internal/logging"
)

// Option configures a FileWatcher.
type Option func(*FileWatcher)

// WithBufferSize sets the event channel size.
func WithBufferSize(n int) Option {
	return func(w *FileWatcher) {
		if n > 0 {
			w.bufSize = n
		}
	}
}

// WithLogger sets the logger.
func WithLogger(log logrus.FieldLogger) Option {
	return func(w *FileWatcher) {
		if log != nil {
			w.log = log
		}
	}
}

// FileWatcher implements Watcher using fsnotify.
type FileWatcher struct {
	mu sync.Mutex

	watcher *fsnotify.Watcher
	log     logrus.FieldLogger
	bufSize int

	// watched files, and how many of them live in each directory
	files map[string]bool
	dirs  map[string]int

	events chan Event
	errors chan error

	closed   bool
	closeCh  chan struct{}
	closedWg sync.WaitGroup
}

// NewFileWatcher creates a new fsnotify-based watcher.
func NewFileWatcher(opts ...Option) (*FileWatcher, error) {
	w := &FileWatcher{
		log:     logging.Discard(),
		bufSize: 100,
		files:   make(map[string]bool),
		dirs:    make(map[string]int),
		closeCh: make(chan struct{}),
	}
	for _, opt := range opts {
		opt(w)
	}
	w.log = logging.WithComponent(w.log, "watch")

	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}
	w.watcher = fsw
	w.events = make(chan Event, w.bufSize)
	w.errors = make(chan error, w.bufSize)

	w.closedWg.Add(1)
	go w.processLoop()

	return w, nil
}

// Add starts watching the file at path.
func (w *FileWatcher) Add(path string) error {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.closed {
		return ErrWatcherClosed
	}

	abs, err := filepath.Abs(path)
	if err != nil {
		return err
	}
	if _, err := os.Stat(abs); err != nil {
		if os.IsNotExist(err) {
			return ErrPathNotExist
		}
		return err
	}
	if w.files[abs] {
		return ErrAlreadyWatching
	}

	dir := filepath.Dir(abs)
	if w.dirs[dir] == 0 {
		if err := w.watcher.Add(dir); err != nil {
			return err
		}
	}
	w.dirs[dir]++
	w.files[abs] = true
	w.log.WithField("path", abs).Debug("watching file")
	return nil
}

// Remove stops watching the file at path.
func (w *FileWatcher) Remove(path string) error {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.closed {
		return ErrWatcherClosed
	}

	abs, err := filepath.Abs(path)
	if err != nil {
		return err
	}
	if !w.files[abs] {
		return ErrNotWatching
	}
	delete(w.files, abs)

	dir := filepath.Dir(abs)
	w.dirs[dir]--
	if w.dirs[dir] == 0 {
		delete(w.dirs, dir)
		return w.watcher.Remove(dir)
	}
	return nil
}

// IsWatching returns true if the file is being watched.
func (w *FileWatcher) IsWatching(path string) bool {
	w.mu.Lock()
	defer w.mu.Unlock()

	abs, err := filepath.Abs(path)
	if err != nil {
		return false
	}
	return w.files[abs]
}

// Events returns the event channel.
func (w *FileWatcher) Events() <-chan Event {
	return w.events
}

// Errors returns the error channel.
func (w *FileWatcher) Errors() <-chan error {
	return w.errors
}

// Close stops the watcher.
func (w *FileWatcher) Close() error {
	w.mu.Lock()
	if w.closed {
		w.mu.Unlock()
		return nil
	}
	w.closed = true
	close(w.closeCh)
	w.mu.Unlock()

	w.closedWg.Wait()

	close(w.events)
	close(w.errors)
	return w.watcher.Close()
}

func (w *FileWatcher) processLoop() {
	defer w.closedWg.Done()

	for {
		select {
		case <-w.closeCh:
			return

		case ev, ok := <-w.watcher.Events:
			if !ok {
				return
			}
			w.handleFSEvent(ev)

		case err, ok := <-w.watcher.Errors:
			if !ok {
				return
			}
			w.log.WithError(err).Warn("watch error")
			w.send(w.errors, err)
		}
	}
}

func (w *FileWatcher) handleFSEvent(ev fsnotify.Event) {
	op := convertOp(ev.Op)
	if op == 0 {
		return
	}

	w.mu.Lock()
	watched := w.files[filepath.Clean(ev.Name)]
	w.mu.Unlock()
	if !watched {
		return
	}

	event := Event{Path: filepath.Clean(ev.Name), Op: op, Timestamp: time.Now()}
	select {
	case w.events <- event:
	default:
		w.log.WithField("path", event.Path).Warn("event channel full, dropping event")
		w.send(w.errors, errors.New("event channel full"))
	}
}

func (w *FileWatcher) send(ch chan error, err error) {
	select {
	case ch <- err:
	default:
	}
}

// convertOp converts fsnotify.Op to Op. Chmod is ignored.
func convertOp(fsOp fsnotify.Op) Op {
	var op Op
	if fsOp.Has(fsnotify.Create) {
		op |= OpCreate
	}
	if fsOp.Has(fsnotify.Write) {
		op |= OpWrite
	}
	if fsOp.Has(fsnotify.Remove) {
		op |= OpRemove
	}
	if fsOp.Has(fsnotify.Rename) {
		op |= OpRename
	}
	return op
}

var _ Watcher = (*FileWatcher)(nil)
