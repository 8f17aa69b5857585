// Package watch triggers resynchronization when canonical documents change
// on disk.
//
// A [Watcher] observes the directories that contain discovered canonical
// files through [github.com/fsnotify/fsnotify] and invokes a callback per
// changed file. Events are debounced per path, since editors and package
// managers commonly produce bursts of writes for a single logical change.
package watch

import (
	"context"
	"fmt"
	"log/slog"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
)

const defaultDebounce = 500 * time.Millisecond

// Watcher observes directories for changes to a fixed file name.
//
// Create instances with [New].
type Watcher struct {
	fileName string
	debounce time.Duration

	mu      sync.Mutex
	pending map[string]*time.Timer
}

// New creates a [Watcher] that reacts to changes of files named fileName.
// A non-positive debounce falls back to the default of 500ms.
func New(fileName string, debounce time.Duration) *Watcher {
	if debounce <= 0 {
		debounce = defaultDebounce
	}

	return &Watcher{
		fileName: fileName,
		debounce: debounce,
		pending:  make(map[string]*time.Timer),
	}
}

// Run watches dirs until ctx is cancelled, invoking onChange with the full
// path of each changed file after its debounce interval elapses. onChange is
// called from a timer goroutine; callers needing serialization must provide
// it themselves.
func (w *Watcher) Run(ctx context.Context, dirs []string, onChange func(path string)) error {
	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("create watcher: %w", err)
	}
	defer fsw.Close()

	for _, dir := range dirs {
		err := fsw.Add(dir)
		if err != nil {
			return fmt.Errorf("watch %s: %w", dir, err)
		}
	}

	defer w.flush()

	for {
		select {
		case <-ctx.Done():
			return nil

		case ev, ok := <-fsw.Events:
			if !ok {
				return nil
			}

			w.handle(ev, onChange)

		case err, ok := <-fsw.Errors:
			if !ok {
				return nil
			}

			slog.Warn("watch error", slog.Any("error", err))
		}
	}
}

// handle schedules the debounced callback for a relevant event.
func (w *Watcher) handle(ev fsnotify.Event, onChange func(path string)) {
	if !ev.Op.Has(fsnotify.Write) && !ev.Op.Has(fsnotify.Create) && !ev.Op.Has(fsnotify.Rename) {
		return
	}

	if filepath.Base(ev.Name) != w.fileName {
		return
	}

	w.mu.Lock()
	defer w.mu.Unlock()

	if timer, ok := w.pending[ev.Name]; ok {
		timer.Stop()
	}

	name := ev.Name
	w.pending[name] = time.AfterFunc(w.debounce, func() {
		w.mu.Lock()
		delete(w.pending, name)
		w.mu.Unlock()

		onChange(name)
	})
}

// flush cancels all pending timers.
func (w *Watcher) flush() {
	w.mu.Lock()
	defer w.mu.Unlock()

	for name, timer := range w.pending {
		timer.Stop()
		delete(w.pending, name)
	}
}
