// Package watch monitors the inbox directory for newly dropped transcripts
// and hands settled files to a handler.
package watch

import (
	"context"
	"fmt"
	"log"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/suykerbuyk/voice-vault/internal/discover"
)

// DefaultDebounce is how long a file must stay quiet before it is handed to
// the handler. Transcription tools write drops incrementally.
const DefaultDebounce = 500 * time.Millisecond

// Handler receives the path of a settled transcript file.
type Handler func(path string)

// Watcher monitors one directory for transcript drops. Each path gets its own
// debounce timer so a slow upload does not delay an unrelated drop.
type Watcher struct {
	dir      string
	debounce time.Duration
	handler  Handler

	mu       sync.Mutex
	timers   map[string]*time.Timer
	watcher  *fsnotify.Watcher
	stopCh   chan struct{}
	stopOnce sync.Once
}

// New constructs a watcher for dir. A non-positive debounce takes the
// default.
func New(dir string, debounce time.Duration, handler Handler) (*Watcher, error) {
	dir = strings.TrimSpace(dir)
	if dir == "" {
		return nil, fmt.Errorf("watch dir required")
	}
	if handler == nil {
		return nil, fmt.Errorf("handler required")
	}
	if abs, err := filepath.Abs(dir); err == nil {
		dir = abs
	}
	if debounce <= 0 {
		debounce = DefaultDebounce
	}

	return &Watcher{
		dir:      filepath.Clean(dir),
		debounce: debounce,
		handler:  handler,
		timers:   make(map[string]*time.Timer),
		stopCh:   make(chan struct{}),
	}, nil
}

// Start begins watching. It returns once the watch is registered; events are
// handled on a background goroutine until Stop or context cancellation.
func (w *Watcher) Start(ctx context.Context) error {
	w.mu.Lock()
	if w.watcher != nil {
		w.mu.Unlock()
		return nil
	}
	fsWatcher, err := fsnotify.NewWatcher()
	if err != nil {
		w.mu.Unlock()
		return err
	}
	w.watcher = fsWatcher
	w.mu.Unlock()

	if err := fsWatcher.Add(w.dir); err != nil {
		_ = fsWatcher.Close()
		w.mu.Lock()
		w.watcher = nil
		w.mu.Unlock()
		return fmt.Errorf("watch %s: %w", w.dir, err)
	}

	go w.watchLoop(fsWatcher)
	if ctx != nil {
		go func() {
			select {
			case <-ctx.Done():
				w.Stop()
			case <-w.stopCh:
			}
		}()
	}
	return nil
}

// Stop terminates the watcher and cancels pending debounce timers.
func (w *Watcher) Stop() {
	w.stopOnce.Do(func() {
		close(w.stopCh)
		w.mu.Lock()
		for path, timer := range w.timers {
			timer.Stop()
			delete(w.timers, path)
		}
		if w.watcher != nil {
			_ = w.watcher.Close()
			w.watcher = nil
		}
		w.mu.Unlock()
	})
}

func (w *Watcher) watchLoop(fsWatcher *fsnotify.Watcher) {
	for {
		select {
		case <-w.stopCh:
			return
		case event, ok := <-fsWatcher.Events:
			if !ok {
				return
			}
			w.handleEvent(event)
		case err, ok := <-fsWatcher.Errors:
			if !ok {
				return
			}
			log.Printf("watch: %v", err)
		}
	}
}

func (w *Watcher) handleEvent(event fsnotify.Event) {
	if event.Name == "" {
		return
	}
	if event.Op&(fsnotify.Create|fsnotify.Write|fsnotify.Rename) == 0 {
		return
	}
	if !discover.IsTranscript(event.Name) {
		return
	}
	w.schedule(filepath.Clean(event.Name))
}

// schedule arms (or re-arms) the per-path debounce timer.
func (w *Watcher) schedule(path string) {
	w.mu.Lock()
	defer w.mu.Unlock()

	if timer, ok := w.timers[path]; ok {
		timer.Stop()
	}
	w.timers[path] = time.AfterFunc(w.debounce, func() {
		select {
		case <-w.stopCh:
			return
		default:
		}
		w.mu.Lock()
		delete(w.timers, path)
		w.mu.Unlock()

		w.handler(path)
	})
}
