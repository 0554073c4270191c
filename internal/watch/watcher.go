// Package watch recompiles when registry files change.
package watch

import (
	"fmt"
	"io/fs"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
	"go.uber.org/zap"
)

// debounceWindow coalesces the event bursts editors emit on save.
const debounceWindow = 500 * time.Millisecond

// Watcher observes a registry directory tree and invokes onChange once
// per settled burst of YAML edits.
type Watcher struct {
	dir      string
	onChange func()
	log      *zap.Logger
	fsw      *fsnotify.Watcher

	mu       sync.Mutex
	lastSeen map[string]time.Time

	stopCh chan struct{}
	doneCh chan struct{}
}

// New creates a watcher over dir. Call Start to begin observing and
// Stop to shut down.
func New(dir string, log *zap.Logger, onChange func()) (*Watcher, error) {
	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("watch: %w", err)
	}
	return &Watcher{
		dir:      dir,
		onChange: onChange,
		log:      log,
		fsw:      fsw,
		lastSeen: make(map[string]time.Time),
		stopCh:   make(chan struct{}),
		doneCh:   make(chan struct{}),
	}, nil
}

// Start registers the directory tree and launches the event loop.
func (w *Watcher) Start() error {
	err := filepath.WalkDir(w.dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			return w.fsw.Add(path)
		}
		return nil
	})
	if err != nil {
		w.fsw.Close()
		return fmt.Errorf("watch %s: %w", w.dir, err)
	}
	go w.loop()
	w.log.Info("watching registry", zap.String("dir", w.dir))
	return nil
}

// Stop terminates the event loop and waits for it to exit.
func (w *Watcher) Stop() {
	close(w.stopCh)
	<-w.doneCh
}

func (w *Watcher) loop() {
	defer close(w.doneCh)
	defer w.fsw.Close()
	for {
		select {
		case <-w.stopCh:
			return
		case ev, ok := <-w.fsw.Events:
			if !ok {
				return
			}
			w.handle(ev)
		case err, ok := <-w.fsw.Errors:
			if !ok {
				return
			}
			w.log.Warn("watch error", zap.Error(err))
		}
	}
}

func (w *Watcher) handle(ev fsnotify.Event) {
	if !strings.HasSuffix(ev.Name, ".yaml") {
		// New subdirectories (behavior/team/...) join the watch set.
		if ev.Op.Has(fsnotify.Create) {
			if err := w.fsw.Add(ev.Name); err == nil {
				w.log.Debug("watching new path", zap.String("path", ev.Name))
			}
		}
		return
	}
	if !ev.Op.Has(fsnotify.Write) && !ev.Op.Has(fsnotify.Create) && !ev.Op.Has(fsnotify.Remove) {
		return
	}
	if w.debounced(ev.Name) {
		return
	}
	w.log.Info("registry changed", zap.String("path", ev.Name), zap.String("op", ev.Op.String()))
	w.onChange()
}

// debounced reports whether this path fired within the debounce
// window.
func (w *Watcher) debounced(path string) bool {
	w.mu.Lock()
	defer w.mu.Unlock()
	now := time.Now()
	if last, ok := w.lastSeen[path]; ok && now.Sub(last) < debounceWindow {
		return true
	}
	w.lastSeen[path] = now
	return false
}
