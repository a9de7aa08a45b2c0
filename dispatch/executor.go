package dispatch

import (
	"context"
	"runtime/debug"
	"time"
)

// Executor runs a single event handler with panic recovery and timing.
// A panicking observer must never take down the emitting component, so
// every execution path recovers and reports through the panic handler.
type Executor struct {
	panicHandler PanicHandler
}

// NewExecutor creates a new executor with the given options.
func NewExecutor(opts ...ExecutorOption) *Executor {
	e := &Executor{
		panicHandler: defaultPanicHandler,
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// ExecutorOption configures an Executor.
type ExecutorOption func(*Executor)

// WithExecutorPanicHandler sets the panic handler for the executor.
func WithExecutorPanicHandler(h PanicHandler) ExecutorOption {
	return func(e *Executor) {
		if h != nil {
			e.panicHandler = h
		}
	}
}

// Execute runs a handler with the given event and returns the result.
// It recovers from panics and captures timing information.
func (e *Executor) Execute(ctx context.Context, event any, handler Handler) (result Result) {
	select {
	case <-ctx.Done():
		return Result{
			Success: false,
			Error:   ctx.Err(),
			Skipped: true,
		}
	default:
	}

	start := time.Now()

	defer func() {
		result.Duration = time.Since(start)

		if r := recover(); r != nil {
			stack := debug.Stack()

			result.Success = false
			result.Panicked = true
			result.PanicValue = r
			result.PanicStack = stack

			// The panic handler itself must not crash the process either
			if e.panicHandler != nil {
				func() {
					defer func() { _ = recover() }()
					e.panicHandler(event, r, stack)
				}()
			}
		}
	}()

	err := handler.Handle(ctx, event)

	if err != nil {
		result.Success = false
		result.Error = err
	} else {
		result.Success = true
	}

	return result
}

// ExecuteWithTimeout runs a handler with a timeout.
// The handler must respect context cancellation for the timeout to take effect.
func (e *Executor) ExecuteWithTimeout(ctx context.Context, event any, handler Handler, timeout time.Duration) Result {
	if timeout <= 0 {
		return e.Execute(ctx, event, handler)
	}

	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	return e.Execute(ctx, event, handler)
}

// ExecuteAll runs multiple handlers sequentially and returns all results.
// Execution stops early if the context is cancelled; remaining handlers are
// marked as skipped.
func (e *Executor) ExecuteAll(ctx context.Context, event any, handlers []Handler) []Result {
	results := make([]Result, len(handlers))

	for i, handler := range handlers {
		select {
		case <-ctx.Done():
			for j := i; j < len(handlers); j++ {
				results[j] = Result{
					Success: false,
					Error:   ctx.Err(),
					Skipped: true,
				}
			}
			return results
		default:
		}

		results[i] = e.Execute(ctx, event, handler)
	}

	return results
}
