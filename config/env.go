package config

import (
	"os"
	"strconv"
)

// Environment variables recognized by ApplyEnv.
const (
	EnvHistoryCapacity  = "CROSSTALK_HISTORY_CAPACITY"
	EnvAsyncWorkers     = "CROSSTALK_ASYNC_WORKERS"
	EnvAsyncQueueSize   = "CROSSTALK_ASYNC_QUEUE_SIZE"
	EnvHandlerTimeoutMs = "CROSSTALK_HANDLER_TIMEOUT_MS"
	EnvLogLevel         = "CROSSTALK_LOG_LEVEL"
)

// ApplyEnv overlays environment variable overrides onto the config.
// Unset variables leave the config untouched; unparsable values are
// ignored rather than failing the load.
func ApplyEnv(cfg *Config) {
	if v, ok := envInt(EnvHistoryCapacity); ok {
		cfg.History.Capacity = v
	}
	if v, ok := envInt(EnvAsyncWorkers); ok {
		cfg.Async.Workers = v
	}
	if v, ok := envInt(EnvAsyncQueueSize); ok {
		cfg.Async.QueueSize = v
	}
	if v, ok := envInt(EnvHandlerTimeoutMs); ok {
		cfg.Async.HandlerTimeoutMs = v
	}
	if v, ok := os.LookupEnv(EnvLogLevel); ok && v != "" {
		cfg.Log.Level = v
	}
}

// envInt reads an integer environment variable.
func envInt(name string) (int, bool) {
	v, ok := os.LookupEnv(name)
	if !ok {
		return 0, false
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return 0, false
	}
	return n, true
}
