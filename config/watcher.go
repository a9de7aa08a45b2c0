package config

import (
	"context"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/emberfield/crosstalk"
	"github.com/emberfield/crosstalk/events"
)

// ReloadFunc is called with the freshly loaded configuration after the
// watched file changes.
type ReloadFunc func(cfg Config)

// Watcher monitors a configuration file and reloads it on change.
// Successful reloads publish events.TopicConfigReloaded on the bus;
// failed reloads publish events.TopicConfigError. Rapid change bursts
// (editors often write a file several times on save) are debounced.
type Watcher struct {
	path     string
	bus      crosstalk.Bus
	onReload ReloadFunc
	debounce time.Duration

	fsw *fsnotify.Watcher

	mu     sync.Mutex
	timer  *time.Timer
	closed bool
	done   chan struct{}
	wg     sync.WaitGroup
}

// WatcherOption configures a Watcher.
type WatcherOption func(*Watcher)

// WithDebounce sets the debounce window for change bursts.
func WithDebounce(d time.Duration) WatcherOption {
	return func(w *Watcher) {
		if d > 0 {
			w.debounce = d
		}
	}
}

// WithReloadFunc sets a callback invoked with each reloaded config.
func WithReloadFunc(fn ReloadFunc) WatcherOption {
	return func(w *Watcher) {
		w.onReload = fn
	}
}

// NewWatcher creates a watcher for the given config file, publishing
// reload events on the bus. Watching starts immediately.
func NewWatcher(path string, bus crosstalk.Bus, opts ...WatcherOption) (*Watcher, error) {
	absPath, err := filepath.Abs(path)
	if err != nil {
		return nil, err
	}

	w := &Watcher{
		path:     absPath,
		bus:      bus,
		debounce: 100 * time.Millisecond,
		done:     make(chan struct{}),
	}
	for _, opt := range opts {
		opt(w)
	}

	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}
	w.fsw = fsw

	// Watch the directory rather than the file itself: editors that
	// write-and-rename would otherwise drop the watch on every save.
	if err := fsw.Add(filepath.Dir(absPath)); err != nil {
		_ = fsw.Close()
		return nil, err
	}

	w.wg.Add(1)
	go w.loop()

	return w, nil
}

// Path returns the watched configuration file path.
func (w *Watcher) Path() string {
	return w.path
}

// loop processes fsnotify events until the watcher is closed.
func (w *Watcher) loop() {
	defer w.wg.Done()

	for {
		select {
		case <-w.done:
			return

		case event, ok := <-w.fsw.Events:
			if !ok {
				return
			}
			if event.Name != w.path {
				continue
			}
			if event.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename) == 0 {
				continue
			}
			w.scheduleReload()

		case err, ok := <-w.fsw.Errors:
			if !ok {
				return
			}
			w.publishError(err)
		}
	}
}

// scheduleReload arms the debounce timer, restarting it if already armed.
func (w *Watcher) scheduleReload() {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.closed {
		return
	}

	if w.timer != nil {
		w.timer.Stop()
	}
	w.timer = time.AfterFunc(w.debounce, w.reload)
}

// reload loads the config file and publishes the outcome.
func (w *Watcher) reload() {
	cfg, err := Load(w.path)
	if err != nil {
		w.publishError(err)
		return
	}

	if w.onReload != nil {
		w.onReload(cfg)
	}

	_ = w.bus.Emit(context.Background(), events.TopicConfigReloaded,
		events.ConfigReloaded{Path: w.path},
		crosstalk.WithSource("config"),
	)
}

// publishError publishes a reload failure on the bus.
func (w *Watcher) publishError(err error) {
	_ = w.bus.Emit(context.Background(), events.TopicConfigError,
		events.ConfigError{Path: w.path, Err: err.Error()},
		crosstalk.WithSource("config"),
	)
}

// Close stops watching. Idempotent.
func (w *Watcher) Close() error {
	w.mu.Lock()
	if w.closed {
		w.mu.Unlock()
		return nil
	}
	w.closed = true
	if w.timer != nil {
		w.timer.Stop()
	}
	w.mu.Unlock()

	close(w.done)
	err := w.fsw.Close()
	w.wg.Wait()
	return err
}
