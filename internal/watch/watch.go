// Package watch reloads the config file when it changes on disk.
package watch

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/hexops/gotextdiff"
	"github.com/hexops/gotextdiff/myers"
	"github.com/hexops/gotextdiff/span"

	"github.com/abdullathedruid/maskform/internal/config"
	"github.com/abdullathedruid/maskform/internal/logger"
)

// DefaultPollInterval is how often the file is re-read in case fsnotify
// misses an event.
const DefaultPollInterval = time.Second

// Watcher watches one config file. Callbacks run on the watcher goroutine;
// UI code must marshal onto its own loop.
type Watcher struct {
	path         string
	pollInterval time.Duration

	mu        sync.Mutex
	last      string
	callbacks []func(*config.Config)

	watcher  *fsnotify.Watcher
	stopCh   chan struct{}
	stopOnce sync.Once
}

// New creates a watcher for path. The current contents become the baseline
// for change detection. The file's directory is watched so editors that
// replace the file on save are still seen.
func New(path string) (*Watcher, error) {
	w, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}

	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		w.Close()
		return nil, err
	}
	if err := w.Add(dir); err != nil {
		w.Close()
		return nil, err
	}

	data, _ := os.ReadFile(path)
	return &Watcher{
		path:         path,
		pollInterval: DefaultPollInterval,
		last:         string(data),
		watcher:      w,
		stopCh:       make(chan struct{}),
	}, nil
}

// OnReload registers a callback for successfully reloaded configs.
func (w *Watcher) OnReload(cb func(*config.Config)) {
	w.mu.Lock()
	w.callbacks = append(w.callbacks, cb)
	w.mu.Unlock()
}

// Start begins watching in a background goroutine.
func (w *Watcher) Start() {
	go w.watchLoop()
}

// Stop stops the watcher. It is safe to call more than once.
func (w *Watcher) Stop() {
	w.stopOnce.Do(func() {
		close(w.stopCh)
		w.watcher.Close()
	})
}

func (w *Watcher) watchLoop() {
	ticker := time.NewTicker(w.pollInterval)
	defer ticker.Stop()

	for {
		select {
		case <-w.stopCh:
			return

		case event, ok := <-w.watcher.Events:
			if !ok {
				return
			}
			if filepath.Clean(event.Name) != filepath.Clean(w.path) {
				continue
			}
			if event.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename) != 0 {
				w.Check()
			}

		case <-ticker.C:
			w.Check()

		case err, ok := <-w.watcher.Errors:
			if !ok {
				return
			}
			logger.Error("config watcher: %v", err)
		}
	}
}

// Check re-reads the file and, if it changed, reloads the config and runs
// the callbacks. It reports whether a reload happened.
func (w *Watcher) Check() bool {
	data, err := os.ReadFile(w.path)
	if err != nil {
		if !os.IsNotExist(err) {
			logger.Error("config watcher: read %s: %v", w.path, err)
		}
		return false
	}
	if len(bytes.TrimSpace(data)) == 0 {
		// Truncated mid-save; wait for the content.
		return false
	}

	w.mu.Lock()
	before := w.last
	if string(data) == before {
		w.mu.Unlock()
		return false
	}
	w.last = string(data)
	callbacks := append([]func(*config.Config){}, w.callbacks...)
	w.mu.Unlock()

	logger.Info("config changed: %s\n%s", w.path, Diff(w.path, before, string(data)))

	cfg, err := config.LoadFile(w.path)
	if err != nil {
		logger.Error("config reload failed: %v", err)
		return false
	}
	for _, cb := range callbacks {
		cb(cfg)
	}
	return true
}

// Diff returns a unified diff between two versions of the file at path.
func Diff(path, before, after string) string {
	edits := myers.ComputeEdits(span.URIFromPath(path), before, after)
	return fmt.Sprint(gotextdiff.ToUnified("a/"+filepath.Base(path), "b/"+filepath.Base(path), before, edits))
}
