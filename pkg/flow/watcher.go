package flow

import (
	"context"
	"fmt"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/sirupsen/logrus"
)

// Watcher reloads a Store when its flow file changes on disk
type Watcher struct {
	store *Store
	delay time.Duration
	log   *logrus.Logger

	mu    sync.Mutex
	timer *time.Timer
}

// NewWatcher creates a watcher for the store's flow file. Bursts of events within
// delay are coalesced into one reload.
func NewWatcher(store *Store, delay time.Duration, log *logrus.Logger) *Watcher {
	if log == nil {
		log = logrus.New()
	}
	if delay <= 0 {
		delay = 500 * time.Millisecond
	}
	return &Watcher{
		store: store,
		delay: delay,
		log:   log,
	}
}

// Run watches until ctx is done. The parent directory is watched rather than the
// file itself so that editors replacing the file by rename are picked up.
func (w *Watcher) Run(ctx context.Context) error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("failed to create watcher: %w", err)
	}
	defer watcher.Close()

	path, err := filepath.Abs(w.store.Path())
	if err != nil {
		return fmt.Errorf("failed to resolve flow path: %w", err)
	}
	if err := watcher.Add(filepath.Dir(path)); err != nil {
		return fmt.Errorf("failed to watch %s: %w", filepath.Dir(path), err)
	}

	w.log.WithField("path", path).Info("Watching flow file for changes")

	for {
		select {
		case <-ctx.Done():
			w.stopTimer()
			return nil
		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if filepath.Clean(event.Name) != path {
				continue
			}
			if event.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename) != 0 {
				w.log.WithField("op", event.Op.String()).Debug("Flow file changed")
				w.schedule()
			}
		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			w.log.WithError(err).Warn("Watcher error")
		}
	}
}

func (w *Watcher) schedule() {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.timer != nil {
		w.timer.Stop()
	}
	w.timer = time.AfterFunc(w.delay, func() {
		// Reload logs its own failures and keeps the previous graph.
		_ = w.store.Reload()
	})
}

func (w *Watcher) stopTimer() {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.timer != nil {
		w.timer.Stop()
		w.timer = nil
	}
}
