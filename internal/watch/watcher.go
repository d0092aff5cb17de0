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

	"docdex/internal/eventbus"
)

// DefaultCoalesceDelay groups rapid file changes into one rescan request
const DefaultCoalesceDelay = 250 * time.Millisecond

// Watcher observes the docs directory and requests an index rescan when
// markdown files change. Rapid bursts of changes coalesce: each new change
// supersedes the pending timer, so only the last one fires.
type Watcher struct {
	bus     eventbus.EventBus
	watcher *fsnotify.Watcher
	root    string
	delay   time.Duration

	mu    sync.Mutex
	timer *time.Timer
}

// New creates a watcher for the given docs directory
func New(bus eventbus.EventBus, root string, delay time.Duration) (*Watcher, error) {
	if delay <= 0 {
		delay = DefaultCoalesceDelay
	}

	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("failed to create file watcher: %w", err)
	}

	if err := fsw.Add(root); err != nil {
		fsw.Close()
		return nil, fmt.Errorf("failed to watch %s: %w", root, err)
	}

	return &Watcher{
		bus:     bus,
		watcher: fsw,
		root:    root,
		delay:   delay,
	}, nil
}

// Start runs the watch loop until the context is cancelled
func (w *Watcher) Start(ctx context.Context) {
	go w.watchLoop(ctx)
}

// Stop closes the underlying watcher
func (w *Watcher) Stop() error {
	w.mu.Lock()
	if w.timer != nil {
		w.timer.Stop()
	}
	w.mu.Unlock()
	return w.watcher.Close()
}

func (w *Watcher) watchLoop(ctx context.Context) {
	for {
		select {
		case <-ctx.Done():
			return
		case event, ok := <-w.watcher.Events:
			if !ok {
				return
			}
			w.handleEvent(event)
		case err, ok := <-w.watcher.Errors:
			if !ok {
				return
			}
			// Log error but continue watching
			log.Printf("Docs watcher error: %v", err)
		}
	}
}

func (w *Watcher) handleEvent(event fsnotify.Event) {
	if !isMarkdown(event.Name) {
		return
	}
	if event.Op&(fsnotify.Create|fsnotify.Write|fsnotify.Remove|fsnotify.Rename) == 0 {
		return
	}

	w.mu.Lock()
	defer w.mu.Unlock()

	// Supersede the pending request
	if w.timer != nil {
		w.timer.Stop()
	}
	w.timer = time.AfterFunc(w.delay, func() {
		log.Printf("Docs changed under %s, requesting rescan", w.root)
		w.bus.Publish(eventbus.RescanRequestedEvent{Root: w.root})
	})
}

func isMarkdown(path string) bool {
	return strings.EqualFold(filepath.Ext(path), ".md")
}
