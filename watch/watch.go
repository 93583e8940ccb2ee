// Package watch reports writes to a file, debounced.
package watch

import (
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
	"golang.org/x/time/rate"

	"github.com/teranos/typedoc/am"
	"github.com/teranos/typedoc/errors"
	"github.com/teranos/typedoc/logger"
)

// ChangeCallback is called with the watched path after a quiet period.
type ChangeCallback func(path string) error

// Watcher watches one file for writes and calls its callbacks once per burst
type Watcher struct {
	path           string
	watcher        *fsnotify.Watcher
	callbacks      []ChangeCallback
	mu             sync.RWMutex
	debounceTimer  *time.Timer
	debouncePeriod time.Duration
	limiter        *rate.Limiter
	done           chan struct{}
	stopOnce       sync.Once
}

// New creates a watcher for path. The containing directory is watched, so
// editors that replace the file by rename are still seen.
func New(path string, debounce time.Duration) (*Watcher, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to resolve %s", path)
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, errors.Wrap(err, "failed to create fsnotify watcher")
	}

	if err := watcher.Add(filepath.Dir(abs)); err != nil {
		watcher.Close()
		return nil, errors.Wrapf(err, "failed to watch %s", path)
	}

	return &Watcher{
		path:           abs,
		watcher:        watcher,
		debouncePeriod: debounce,
		done:           make(chan struct{}),
	}, nil
}

// SetMaxFiresPerMinute caps how often callbacks run. A change arriving over
// the cap is retried after another quiet period. Zero removes the cap.
func (w *Watcher) SetMaxFiresPerMinute(n int) {
	w.mu.Lock()
	defer w.mu.Unlock()
	if n <= 0 {
		w.limiter = nil
		return
	}
	w.limiter = rate.NewLimiter(rate.Limit(float64(n)/60.0), 1)
}

// Path returns the absolute path being watched.
func (w *Watcher) Path() string { return w.path }

// OnChange registers a callback to be called after the file changes
func (w *Watcher) OnChange(callback ChangeCallback) {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.callbacks = append(w.callbacks, callback)
}

// Start begins watching for changes
func (w *Watcher) Start() {
	go w.watchLoop()
}

func (w *Watcher) watchLoop() {
	for {
		select {
		case event, ok := <-w.watcher.Events:
			if !ok {
				return
			}
			if event.Name != w.path || am.IsBackupFile(event.Name) {
				continue
			}
			if event.Op&(fsnotify.Write|fsnotify.Create) == 0 {
				continue
			}
			logger.Debugw("Watcher detected change",
				logger.FieldFile, event.Name,
				logger.FieldOperation, event.Op.String())
			w.scheduleChange()

		case err, ok := <-w.watcher.Errors:
			if !ok {
				return
			}
			logger.Warnw("Watcher error",
				logger.FieldError, err)

		case <-w.done:
			return
		}
	}
}

// scheduleChange restarts the quiet period
func (w *Watcher) scheduleChange() {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.debounceTimer != nil {
		w.debounceTimer.Stop()
	}
	w.debounceTimer = time.AfterFunc(w.debouncePeriod, w.fire)
}

func (w *Watcher) fire() {
	select {
	case <-w.done:
		return
	default:
	}

	w.mu.RLock()
	limiter := w.limiter
	w.mu.RUnlock()
	if limiter != nil && !limiter.Allow() {
		logger.Debugw("Watcher rate limited",
			logger.FieldFile, w.path)
		w.scheduleChange()
		return
	}

	w.mu.RLock()
	callbacks := make([]ChangeCallback, len(w.callbacks))
	copy(callbacks, w.callbacks)
	w.mu.RUnlock()

	for _, callback := range callbacks {
		if err := callback(w.path); err != nil {
			// Continue calling other callbacks even if one fails
			logger.Warnw("Watch callback error",
				logger.FieldFile, w.path,
				logger.FieldError, err)
		}
	}
}

// Stop stops watching. Pending callbacks are dropped.
func (w *Watcher) Stop() error {
	var err error
	w.stopOnce.Do(func() {
		close(w.done)
		w.mu.Lock()
		if w.debounceTimer != nil {
			w.debounceTimer.Stop()
		}
		w.mu.Unlock()
		err = w.watcher.Close()
	})
	return err
}
