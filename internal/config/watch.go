package config

import (
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
)

// defaultDebounce coalesces the bursts of write events editors produce
// when saving a file.
const defaultDebounce = 100 * time.Millisecond

// Watcher reloads a configuration file when it changes on disk and
// delivers the result to registered handlers. Events are debounced so
// a save that touches the file several times produces one reload.
type Watcher struct {
	path     string
	debounce time.Duration

	fsw  *fsnotify.Watcher
	done chan struct{}
	wg   sync.WaitGroup

	mu       sync.Mutex
	handlers []func(Config, error)
	timer    *time.Timer
	running  bool
}

// NewWatcher creates a watcher for one configuration file. The file
// need not exist yet; creation counts as a change.
func NewWatcher(path string) (*Watcher, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, err
	}
	return &Watcher{path: abs, debounce: defaultDebounce, done: make(chan struct{})}, nil
}

// OnReload registers a handler receiving each reload result.
func (w *Watcher) OnReload(fn func(Config, error)) {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.handlers = append(w.handlers, fn)
}

// Start begins watching. Watching the parent directory rather than the
// file itself survives the rename-then-replace dance most editors do.
func (w *Watcher) Start() error {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.running {
		return nil
	}
	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return err
	}
	if err := fsw.Add(filepath.Dir(w.path)); err != nil {
		fsw.Close()
		return err
	}
	w.fsw = fsw
	w.running = true
	w.wg.Add(1)
	go w.loop()
	return nil
}

// Stop stops watching. Safe to call twice.
func (w *Watcher) Stop() {
	w.mu.Lock()
	if !w.running {
		w.mu.Unlock()
		return
	}
	w.running = false
	if w.timer != nil {
		w.timer.Stop()
		w.timer = nil
	}
	close(w.done)
	w.fsw.Close()
	w.mu.Unlock()

	w.wg.Wait()
}

func (w *Watcher) loop() {
	defer w.wg.Done()
	for {
		select {
		case <-w.done:
			return
		case ev, ok := <-w.fsw.Events:
			if !ok {
				return
			}
			if filepath.Clean(ev.Name) != w.path {
				continue
			}
			if ev.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename|fsnotify.Remove) == 0 {
				continue
			}
			w.scheduleReload()
		case _, ok := <-w.fsw.Errors:
			if !ok {
				return
			}
		}
	}
}

// scheduleReload (re)arms the debounce timer; only the last event of a
// burst triggers the reload.
func (w *Watcher) scheduleReload() {
	w.mu.Lock()
	defer w.mu.Unlock()
	if !w.running {
		return
	}
	if w.timer != nil {
		w.timer.Stop()
	}
	w.timer = time.AfterFunc(w.debounce, w.reload)
}

func (w *Watcher) reload() {
	cfg, err := Load(w.path)

	w.mu.Lock()
	if !w.running {
		w.mu.Unlock()
		return
	}
	handlers := make([]func(Config, error), len(w.handlers))
	copy(handlers, w.handlers)
	w.mu.Unlock()

	for _, fn := range handlers {
		fn(cfg, err)
	}
}
