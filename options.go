package crosstalk

import "time"

// busConfig holds the configuration assembled from BusOptions.
type busConfig struct {
	historySize      int
	asyncQueueSize   int
	asyncWorkerCount int
	handlerTimeout   time.Duration
	errorHandler     ErrorHandler
	panicHandler     PanicHandler
	logger           *Logger
	wildcardFirst    bool
}

// defaultBusConfig returns the default bus configuration.
func defaultBusConfig() busConfig {
	return busConfig{
		historySize:      DefaultHistorySize,
		asyncQueueSize:   1000,
		asyncWorkerCount: 4,
		handlerTimeout:   0, // no timeout
		logger:           NullLogger,
	}
}

// BusOption configures a Bus at construction time.
type BusOption func(*busConfig)

// WithHistorySize sets the capacity of the event history buffer.
// Non-positive values fall back to DefaultHistorySize.
func WithHistorySize(size int) BusOption {
	return func(c *busConfig) {
		c.historySize = size
	}
}

// WithAsyncQueueSize sets the queue size for async deliveries.
func WithAsyncQueueSize(size int) BusOption {
	return func(c *busConfig) {
		if size > 0 {
			c.asyncQueueSize = size
		}
	}
}

// WithAsyncWorkerCount sets the number of async delivery workers.
func WithAsyncWorkerCount(count int) BusOption {
	return func(c *busConfig) {
		if count > 0 {
			c.asyncWorkerCount = count
		}
	}
}

// WithHandlerTimeout bounds individual handler execution. Zero means
// handlers run without a deadline, which is the default.
func WithHandlerTimeout(timeout time.Duration) BusOption {
	return func(c *busConfig) {
		if timeout > 0 {
			c.handlerTimeout = timeout
		}
	}
}

// WithErrorHandler sets the diagnostic sink for handler errors.
func WithErrorHandler(h ErrorHandler) BusOption {
	return func(c *busConfig) {
		c.errorHandler = h
	}
}

// WithPanicHandler sets the diagnostic sink for handler panics.
func WithPanicHandler(h PanicHandler) BusOption {
	return func(c *busConfig) {
		c.panicHandler = h
	}
}

// WithLogger sets the bus logger.
func WithLogger(l *Logger) BusOption {
	return func(c *busConfig) {
		if l != nil {
			c.logger = l
		}
	}
}

// WithWildcardFirst makes wildcard subscribers run before exact-topic
// subscribers on each emit. The default is the reverse: specific
// handlers first, catch-all observers after.
func WithWildcardFirst() BusOption {
	return func(c *busConfig) {
		c.wildcardFirst = true
	}
}
