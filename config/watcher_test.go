package config

import (
	"context"
	"os"
	"sync/atomic"
	"testing"
	"time"

	"github.com/emberfield/crosstalk"
	"github.com/emberfield/crosstalk/events"
)

func waitFor(t *testing.T, timeout time.Duration, cond func() bool, msg string) {
	t.Helper()
	deadline := time.Now().Add(timeout)
	for time.Now().Before(deadline) {
		if cond() {
			return
		}
		time.Sleep(10 * time.Millisecond)
	}
	t.Fatal(msg)
}

func TestWatcher_PublishesReload(t *testing.T) {
	path := writeFile(t, "crosstalk.toml", `
[history]
capacity = 10
`)

	bus := crosstalk.New()

	var reloads atomic.Int32
	var lastCapacity atomic.Int32
	bus.SubscribeFunc(events.TopicConfigReloaded, func(ctx context.Context, event any) error {
		reloads.Add(1)
		return nil
	})

	w, err := NewWatcher(path, bus,
		WithDebounce(20*time.Millisecond),
		WithReloadFunc(func(cfg Config) {
			lastCapacity.Store(int32(cfg.History.Capacity))
		}),
	)
	if err != nil {
		t.Fatalf("NewWatcher() failed: %v", err)
	}
	defer w.Close()

	if err := os.WriteFile(path, []byte("[history]\ncapacity = 42\n"), 0o644); err != nil {
		t.Fatalf("rewriting config: %v", err)
	}

	waitFor(t, 3*time.Second, func() bool { return reloads.Load() >= 1 },
		"no reload event published")
	waitFor(t, time.Second, func() bool { return lastCapacity.Load() == 42 },
		"reload callback did not see the new config")
}

func TestWatcher_PublishesErrorOnBadConfig(t *testing.T) {
	path := writeFile(t, "crosstalk.toml", "[history]\ncapacity = 10\n")

	bus := crosstalk.New()

	var errs atomic.Int32
	bus.SubscribeFunc(events.TopicConfigError, func(ctx context.Context, event any) error {
		errs.Add(1)
		return nil
	})

	w, err := NewWatcher(path, bus, WithDebounce(20*time.Millisecond))
	if err != nil {
		t.Fatalf("NewWatcher() failed: %v", err)
	}
	defer w.Close()

	if err := os.WriteFile(path, []byte("capacity = ["), 0o644); err != nil {
		t.Fatalf("rewriting config: %v", err)
	}

	waitFor(t, 3*time.Second, func() bool { return errs.Load() >= 1 },
		"no error event published for malformed config")
}

func TestWatcher_CloseIdempotent(t *testing.T) {
	path := writeFile(t, "crosstalk.toml", "")

	w, err := NewWatcher(path, crosstalk.New())
	if err != nil {
		t.Fatalf("NewWatcher() failed: %v", err)
	}

	if err := w.Close(); err != nil {
		t.Errorf("Close() failed: %v", err)
	}
	if err := w.Close(); err != nil {
		t.Errorf("second Close() failed: %v", err)
	}
}

func TestWatcher_Path(t *testing.T) {
	path := writeFile(t, "crosstalk.toml", "")

	w, err := NewWatcher(path, crosstalk.New())
	if err != nil {
		t.Fatalf("NewWatcher() failed: %v", err)
	}
	defer w.Close()

	if w.Path() != path {
		t.Errorf("Path() = %s, want %s", w.Path(), path)
	}
}
