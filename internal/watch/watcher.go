// Package watch reports filesystem changes under expanded browser branches so
// the tree can refresh them.
package watch

import (
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/fsnotify/fsnotify"

	apperrors "github.com/Akaiko1/image-viewer/internal/errors"
	"github.com/Akaiko1/image-viewer/internal/logging"
)

// Change says that the listing of Dir is out of date.
type Change struct {
	Dir  string
	Path string
	Op   fsnotify.Op
}

// Confiner reports whether a path may be watched. *browser.Browser implements it.
type Confiner interface {
	Contains(path string) bool
}

// Watcher monitors directories for entries appearing, vanishing or being renamed.
type Watcher struct {
	confiner  Confiner
	changes   chan Change
	stopChan  chan struct{}
	done      chan struct{}
	fsWatcher *fsnotify.Watcher
	log       *logging.Logger

	mutex   sync.RWMutex
	dirs    map[string]bool
	running bool
	closed  bool
}

// New creates a watcher whose change channel buffers bufferSize events.
func New(confiner Confiner, bufferSize int, log *logging.Logger) (*Watcher, error) {
	fsWatcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("failed to create fsnotify watcher: %w", err)
	}
	if bufferSize <= 0 {
		bufferSize = 16
	}
	if log == nil {
		log = logging.Nop()
	}
	return &Watcher{
		confiner:  confiner,
		changes:   make(chan Change, bufferSize),
		stopChan:  make(chan struct{}),
		done:      make(chan struct{}),
		fsWatcher: fsWatcher,
		log:       log.Component("watch"),
		dirs:      make(map[string]bool),
	}, nil
}

// Add starts watching dir, which must be a directory inside the root.
func (w *Watcher) Add(dir string) error {
	if !w.confiner.Contains(dir) {
		return apperrors.New(apperrors.OutsideRoot, dir, nil)
	}
	info, err := os.Stat(dir)
	if err != nil {
		return fmt.Errorf("error accessing directory: %w", err)
	}
	if !info.IsDir() {
		return fmt.Errorf("%s is not a directory", dir)
	}

	w.mutex.Lock()
	defer w.mutex.Unlock()
	if w.dirs[dir] {
		return nil
	}
	if err := w.fsWatcher.Add(dir); err != nil {
		return fmt.Errorf("failed to add directory %s to watcher: %w", dir, err)
	}
	w.dirs[dir] = true
	w.log.Debug().Str("directory", dir).Msg("watching directory")
	return nil
}

// Remove stops watching dir, e.g. when its branch is collapsed.
func (w *Watcher) Remove(dir string) {
	w.mutex.Lock()
	defer w.mutex.Unlock()
	if !w.dirs[dir] {
		return
	}
	delete(w.dirs, dir)
	if err := w.fsWatcher.Remove(dir); err != nil {
		w.log.Debug().Err(err).Str("directory", dir).Msg("removing watch")
	}
}

// Directories returns the watched directories.
func (w *Watcher) Directories() []string {
	w.mutex.RLock()
	defer w.mutex.RUnlock()
	out := make([]string, 0, len(w.dirs))
	for d := range w.dirs {
		out = append(out, d)
	}
	return out
}

// Changes delivers change notifications. It is closed by Stop.
func (w *Watcher) Changes() <-chan Change {
	return w.changes
}

// Start begins the event loop.
func (w *Watcher) Start() error {
	w.mutex.Lock()
	defer w.mutex.Unlock()
	if w.closed {
		return fmt.Errorf("watcher stopped")
	}
	if w.running {
		return fmt.Errorf("watcher already running")
	}
	w.running = true
	go w.loop()
	return nil
}

func (w *Watcher) loop() {
	defer close(w.done)
	for {
		select {
		case event, ok := <-w.fsWatcher.Events:
			if !ok {
				return
			}
			// Content writes do not change a listing.
			if !event.Has(fsnotify.Create) && !event.Has(fsnotify.Remove) && !event.Has(fsnotify.Rename) {
				continue
			}
			if !w.confiner.Contains(event.Name) {
				continue
			}
			change := Change{Dir: filepath.Dir(event.Name), Path: event.Name, Op: event.Op}
			// Never block the loop on a slow consumer.
			select {
			case w.changes <- change:
			default:
				w.log.Warn().Str("path", event.Name).Msg("change channel is full, dropped event")
			}

		case err, ok := <-w.fsWatcher.Errors:
			if !ok {
				return
			}
			w.log.Error().Err(err).Msg("fsnotify watcher error")

		case <-w.stopChan:
			return
		}
	}
}

// Stop ends the event loop, releases the fsnotify watcher and closes the
// change channel. It is safe on a watcher that was never started and safe
// to call twice.
func (w *Watcher) Stop() {
	w.mutex.Lock()
	defer w.mutex.Unlock()
	if w.closed {
		return
	}
	w.closed = true
	if w.running {
		close(w.stopChan)
	}
	if err := w.fsWatcher.Close(); err != nil {
		w.log.Error().Err(err).Msg("error closing fsnotify watcher")
	}
	if w.running {
		<-w.done
		w.running = false
	}
	close(w.changes)
}

// IsRunning reports whether the event loop is active.
func (w *Watcher) IsRunning() bool {
	w.mutex.RLock()
	defer w.mutex.RUnlock()
	return w.running
}
