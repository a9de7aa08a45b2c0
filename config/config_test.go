package config

import (
	"context"
	"testing"
	"time"

	"github.com/emberfield/crosstalk"
)

func TestDefault(t *testing.T) {
	cfg := Default()

	if cfg.History.Capacity != crosstalk.DefaultHistorySize {
		t.Errorf("History.Capacity = %d, want %d", cfg.History.Capacity, crosstalk.DefaultHistorySize)
	}
	if cfg.Async.Workers != 4 {
		t.Errorf("Async.Workers = %d, want 4", cfg.Async.Workers)
	}
	if cfg.Async.QueueSize != 1000 {
		t.Errorf("Async.QueueSize = %d, want 1000", cfg.Async.QueueSize)
	}
	if cfg.Log.Level != "info" {
		t.Errorf("Log.Level = %s, want info", cfg.Log.Level)
	}

	if err := cfg.Validate(); err != nil {
		t.Errorf("default config fails validation: %v", err)
	}
}

func TestConfig_Validate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr bool
	}{
		{"valid", func(c *Config) {}, false},
		{"empty log level", func(c *Config) { c.Log.Level = "" }, false},
		{"negative capacity", func(c *Config) { c.History.Capacity = -1 }, true},
		{"negative workers", func(c *Config) { c.Async.Workers = -1 }, true},
		{"negative queue", func(c *Config) { c.Async.QueueSize = -1 }, true},
		{"negative timeout", func(c *Config) { c.Async.HandlerTimeoutMs = -1 }, true},
		{"bad log level", func(c *Config) { c.Log.Level = "loud" }, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.mutate(&cfg)
			err := cfg.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate() = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestConfig_HandlerTimeout(t *testing.T) {
	cfg := Default()
	cfg.Async.HandlerTimeoutMs = 250

	if got := cfg.HandlerTimeout(); got != 250*time.Millisecond {
		t.Errorf("HandlerTimeout() = %v, want 250ms", got)
	}
}

func TestNewBus(t *testing.T) {
	cfg := Default()
	cfg.History.Capacity = 2

	bus := NewBus(cfg)
	if bus == nil {
		t.Fatal("NewBus() returned nil")
	}

	ctx := context.Background()
	for i := 0; i < 5; i++ {
		bus.Emit(ctx, "toast:show", i)
	}
	if got := len(bus.History()); got != 2 {
		t.Errorf("history length = %d, want capacity 2 applied", got)
	}
}
