package watch

import (
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"aicoder/internal/log"

	"github.com/fsnotify/fsnotify"
)

// Change is a modification of the watched store file.
type Change struct {
	Path      string
	Op        fsnotify.Op
	Timestamp time.Time
}

// Watcher reports changes to one store file. It watches the containing
// directory, because stores replace the file by renaming a temp file over
// it, which drops a watch placed on the file itself.
type Watcher struct {
	path  string
	names map[string]bool

	changes  chan Change
	stopChan chan struct{}
	done     chan struct{}

	fsWatcher *fsnotify.Watcher

	mutex   sync.Mutex
	running bool
	stopped bool
}

// New creates a watcher for path. Changes to any of the sibling files in
// extra (e.g. a SQLite "-wal" journal) are reported as changes to path.
func New(path string, extra ...string) (*Watcher, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, fmt.Errorf("error resolving store path: %w", err)
	}
	dir := filepath.Dir(abs)
	info, err := os.Stat(dir)
	if err != nil {
		return nil, fmt.Errorf("error accessing store directory: %w", err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("%s is not a directory", dir)
	}

	fsWatcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("failed to create fsnotify watcher: %w", err)
	}
	if err := fsWatcher.Add(dir); err != nil {
		fsWatcher.Close()
		return nil, fmt.Errorf("failed to add directory %s to watcher: %w", dir, err)
	}

	names := map[string]bool{abs: true}
	for _, e := range extra {
		names[filepath.Join(dir, filepath.Base(e))] = true
	}

	return &Watcher{
		path:      abs,
		names:     names,
		changes:   make(chan Change, 1),
		fsWatcher: fsWatcher,
	}, nil
}

// Path returns the absolute path of the watched file.
func (w *Watcher) Path() string {
	return w.path
}

// Changes delivers store changes. Bursts collapse into a single pending
// change, since consumers reload the whole list anyway.
func (w *Watcher) Changes() <-chan Change {
	return w.changes
}

// Start begins the event loop. A stopped watcher cannot be restarted; create
// a new one instead.
func (w *Watcher) Start() error {
	w.mutex.Lock()
	defer w.mutex.Unlock()
	if w.running {
		return fmt.Errorf("watcher already running")
	}
	if w.stopped {
		return fmt.Errorf("watcher already stopped")
	}
	w.running = true
	w.stopChan = make(chan struct{})
	w.done = make(chan struct{})

	go w.loop(w.stopChan, w.done)
	log.LogWithFields(log.F("file", w.path)).Debug("Watching project store")
	return nil
}

func (w *Watcher) loop(stop <-chan struct{}, done chan<- struct{}) {
	defer close(done)
	for {
		select {
		case event, ok := <-w.fsWatcher.Events:
			if !ok {
				return
			}
			if !w.names[filepath.Clean(event.Name)] {
				continue
			}
			if !event.Op.Has(fsnotify.Create) && !event.Op.Has(fsnotify.Write) &&
				!event.Op.Has(fsnotify.Rename) && !event.Op.Has(fsnotify.Remove) {
				continue
			}
			change := Change{Path: w.path, Op: event.Op, Timestamp: time.Now()}
			select {
			case w.changes <- change:
			default:
				// a change is already pending
			}

		case err, ok := <-w.fsWatcher.Errors:
			if !ok {
				return
			}
			log.LogWithFields(log.F("error", err)).Error("fsnotify watcher error")

		case <-stop:
			return
		}
	}
}

// Stop halts the watcher and closes the Changes channel.
func (w *Watcher) Stop() {
	w.mutex.Lock()
	defer w.mutex.Unlock()
	if !w.running {
		return
	}
	close(w.stopChan)
	if err := w.fsWatcher.Close(); err != nil {
		log.LogWithFields(log.F("error", err)).Error("Error closing fsnotify watcher")
	}
	<-w.done
	w.running = false
	w.stopped = true
	close(w.changes)
}

// IsRunning returns whether the watcher is currently active
func (w *Watcher) IsRunning() bool {
	w.mutex.Lock()
	defer w.mutex.Unlock()
	return w.running
}
