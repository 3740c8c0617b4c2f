// Package watcher notices writes to the saved-search store made by other
// processes and publishes a debounced change event.
package watcher

import (
	"context"
	"fmt"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/zjrosen/tagsearch/internal/log"
	"github.com/zjrosen/tagsearch/internal/pubsub"
)

// Watcher monitors the store file and publishes the file path on change.
type Watcher struct {
	fsWatcher *fsnotify.Watcher
	path      string
	names     map[string]bool
	debounce  time.Duration
	broker    *pubsub.Broker[string]
	done      chan struct{}
}

// Config holds watcher configuration options.
type Config struct {
	// Path is the store file. Its directory is watched.
	Path string
	// DebounceDur coalesces bursts of events into one notification.
	DebounceDur time.Duration
}

// DefaultConfig returns a one-second debounce for path.
func DefaultConfig(path string) Config {
	return Config{
		Path:        path,
		DebounceDur: time.Second,
	}
}

// New creates a watcher. Call Start to begin watching.
func New(cfg Config) (*Watcher, error) {
	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("creating fsnotify watcher: %w", err)
	}

	base := filepath.Base(cfg.Path)
	return &Watcher{
		fsWatcher: fsw,
		path:      cfg.Path,
		// SQLite writes may land in the WAL or rollback journal first.
		names: map[string]bool{
			base:              true,
			base + "-wal":     true,
			base + "-journal": true,
		},
		debounce: cfg.DebounceDur,
		broker:   pubsub.NewBrokerWithBuffer[string](1),
		done:     make(chan struct{}),
	}, nil
}

// Subscribe returns a channel that receives UpdatedEvent with the store path
// after each debounced burst of changes.
func (w *Watcher) Subscribe(ctx context.Context) <-chan pubsub.Event[string] {
	return w.broker.Subscribe(ctx)
}

// Broker exposes the change broker for tea listeners.
func (w *Watcher) Broker() *pubsub.Broker[string] {
	return w.broker
}

// Start begins watching the directory containing the store file.
func (w *Watcher) Start() error {
	dir := filepath.Dir(w.path)
	if err := w.fsWatcher.Add(dir); err != nil {
		return fmt.Errorf("watching directory %s: %w", dir, err)
	}
	log.Debug(log.CatWatcher, "Watching store", "path", w.path, "debounce", w.debounce)
	go w.loop()
	return nil
}

// Stop terminates the watcher and closes subscriber channels.
func (w *Watcher) Stop() error {
	close(w.done)
	w.broker.Close()
	return w.fsWatcher.Close()
}

func (w *Watcher) loop() {
	var timer *time.Timer
	var fire <-chan time.Time

	for {
		select {
		case event, ok := <-w.fsWatcher.Events:
			if !ok {
				return
			}
			if !w.isRelevantEvent(event) {
				continue
			}
			if timer == nil {
				timer = time.NewTimer(w.debounce)
			} else {
				timer.Reset(w.debounce)
			}
			fire = timer.C

		case <-fire:
			fire = nil
			log.Debug(log.CatWatcher, "Store changed on disk", "path", w.path)
			w.broker.Publish(pubsub.UpdatedEvent, w.path)

		case err, ok := <-w.fsWatcher.Errors:
			if !ok {
				return
			}
			log.ErrorErr(log.CatWatcher, "Watcher error", err)

		case <-w.done:
			if timer != nil {
				timer.Stop()
			}
			return
		}
	}
}

// isRelevantEvent reports whether event touched the store file. Renames onto
// the file show up as Create.
func (w *Watcher) isRelevantEvent(event fsnotify.Event) bool {
	if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) {
		return false
	}
	return w.names[filepath.Base(event.Name)]
}
