package config

import (
	"fmt"
	"time"

	"github.com/emberfield/crosstalk"
)

// Config holds bus configuration loaded from files and the environment.
type Config struct {
	// History configures the event history buffer.
	History HistoryConfig `toml:"history" yaml:"history"`

	// Async configures the async delivery worker pool.
	Async AsyncConfig `toml:"async" yaml:"async"`

	// Log configures bus logging.
	Log LogConfig `toml:"log" yaml:"log"`
}

// HistoryConfig configures the event history buffer.
type HistoryConfig struct {
	// Capacity is the number of events retained. Zero uses the default.
	Capacity int `toml:"capacity" yaml:"capacity"`
}

// AsyncConfig configures the async delivery worker pool.
type AsyncConfig struct {
	// Workers is the number of delivery goroutines.
	Workers int `toml:"workers" yaml:"workers"`

	// QueueSize is the bounded delivery queue length.
	QueueSize int `toml:"queue_size" yaml:"queue_size"`

	// HandlerTimeoutMs bounds individual handler execution in
	// milliseconds. Zero means no deadline.
	HandlerTimeoutMs int `toml:"handler_timeout_ms" yaml:"handler_timeout_ms"`
}

// LogConfig configures bus logging.
type LogConfig struct {
	// Level is the minimum log level: debug, info, warn, or error.
	Level string `toml:"level" yaml:"level"`
}

// Default returns the default configuration.
func Default() Config {
	return Config{
		History: HistoryConfig{
			Capacity: crosstalk.DefaultHistorySize,
		},
		Async: AsyncConfig{
			Workers:   4,
			QueueSize: 1000,
		},
		Log: LogConfig{
			Level: "info",
		},
	}
}

// Validate checks the configuration for invalid values.
func (c *Config) Validate() error {
	if c.History.Capacity < 0 {
		return fmt.Errorf("history.capacity must not be negative: %d", c.History.Capacity)
	}
	if c.Async.Workers < 0 {
		return fmt.Errorf("async.workers must not be negative: %d", c.Async.Workers)
	}
	if c.Async.QueueSize < 0 {
		return fmt.Errorf("async.queue_size must not be negative: %d", c.Async.QueueSize)
	}
	if c.Async.HandlerTimeoutMs < 0 {
		return fmt.Errorf("async.handler_timeout_ms must not be negative: %d", c.Async.HandlerTimeoutMs)
	}
	switch c.Log.Level {
	case "", "debug", "info", "warn", "warning", "error":
	default:
		return fmt.Errorf("log.level must be debug, info, warn, or error: %q", c.Log.Level)
	}
	return nil
}

// HandlerTimeout returns the handler timeout as a duration.
func (c *Config) HandlerTimeout() time.Duration {
	return time.Duration(c.Async.HandlerTimeoutMs) * time.Millisecond
}

// BusOptions converts the configuration into bus options.
func (c *Config) BusOptions() []crosstalk.BusOption {
	opts := []crosstalk.BusOption{
		crosstalk.WithHistorySize(c.History.Capacity),
	}
	if c.Async.Workers > 0 {
		opts = append(opts, crosstalk.WithAsyncWorkerCount(c.Async.Workers))
	}
	if c.Async.QueueSize > 0 {
		opts = append(opts, crosstalk.WithAsyncQueueSize(c.Async.QueueSize))
	}
	if timeout := c.HandlerTimeout(); timeout > 0 {
		opts = append(opts, crosstalk.WithHandlerTimeout(timeout))
	}
	if c.Log.Level != "" {
		logger := crosstalk.NewLogger(crosstalk.LoggerConfig{
			Level:  crosstalk.ParseLogLevel(c.Log.Level),
			Prefix: "crosstalk",
		})
		opts = append(opts, crosstalk.WithLogger(logger))
	}
	return opts
}

// NewBus creates a bus from the configuration.
func NewBus(cfg Config, extra ...crosstalk.BusOption) crosstalk.Bus {
	opts := append(cfg.BusOptions(), extra...)
	return crosstalk.New(opts...)
}
