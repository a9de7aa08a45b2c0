package crosstalk

import "context"

// Priority determines handler execution order within a dispatch group.
// Lower values execute first.
type Priority int

const (
	// PriorityCritical is for handlers that keep views consistent and must run first.
	PriorityCritical Priority = 0

	// PriorityHigh is for application controllers and coordinators.
	PriorityHigh Priority = 100

	// PriorityNormal is the default priority for component handlers.
	PriorityNormal Priority = 200

	// PriorityLow is for metrics and logging handlers that run last.
	PriorityLow Priority = 300
)

// String returns a human-readable priority name.
func (p Priority) String() string {
	switch {
	case p <= PriorityCritical:
		return "critical"
	case p <= PriorityHigh:
		return "high"
	case p <= PriorityNormal:
		return "normal"
	default:
		return "low"
	}
}

// DeliveryMode specifies how events are delivered to handlers.
type DeliveryMode int

const (
	// DeliverySync executes the handler synchronously in the emitter's
	// goroutine. This is the default; an Emit returns only after every
	// sync handler has run.
	DeliverySync DeliveryMode = iota

	// DeliveryAsync queues the event for delivery by the worker pool.
	// Use for handlers that must not block the emitting component.
	DeliveryAsync
)

// String returns a human-readable delivery mode name.
func (m DeliveryMode) String() string {
	switch m {
	case DeliverySync:
		return "sync"
	case DeliveryAsync:
		return "async"
	default:
		return "unknown"
	}
}

// Handler is the interface for event handlers.
type Handler interface {
	// Handle processes an event.
	// The event parameter is type-erased; handlers should type-assert.
	Handle(ctx context.Context, event any) error
}

// HandlerFunc is a function adapter for Handler.
type HandlerFunc func(ctx context.Context, event any) error

// Handle implements the Handler interface.
func (f HandlerFunc) Handle(ctx context.Context, event any) error {
	return f(ctx, event)
}

// TypedHandler provides type-safe event handling using generics.
type TypedHandler[T any] interface {
	Handle(ctx context.Context, event Event[T]) error
}

// TypedHandlerFunc is a function adapter for TypedHandler.
type TypedHandlerFunc[T any] func(ctx context.Context, event Event[T]) error

// Handle implements the TypedHandler interface.
func (f TypedHandlerFunc[T]) Handle(ctx context.Context, event Event[T]) error {
	return f(ctx, event)
}

// AsHandler converts a TypedHandler to a generic Handler. Both bare
// Event[T] values and bus-delivered envelopes carrying a T payload are
// handled; anything else is skipped silently.
func AsHandler[T any](h TypedHandler[T]) Handler {
	return HandlerFunc(func(ctx context.Context, event any) error {
		if e, ok := event.(Event[T]); ok {
			return h.Handle(ctx, e)
		}
		if env, ok := event.(Envelope); ok {
			if payload, ok := env.Payload.(T); ok {
				return h.Handle(ctx, Event[T]{
					Type:     env.Topic,
					Payload:  payload,
					Metadata: env.Metadata,
				})
			}
		}
		return nil
	})
}

// AsHandlerFunc converts a TypedHandlerFunc to a generic Handler.
func AsHandlerFunc[T any](fn TypedHandlerFunc[T]) Handler {
	return AsHandler[T](fn)
}

// FilterFunc is a predicate for filtering events.
// Return true to allow the event, false to filter it out.
type FilterFunc func(event any) bool

// ErrorHandler is the diagnostic sink for handler errors. One failing
// observer never aborts delivery to the others; the error is routed here
// instead of propagating to the emitter. The subscription is nil for
// asynchronous deliveries.
type ErrorHandler func(event any, sub Subscription, err error)

// PanicHandler is the diagnostic sink for handler panics. The subscription
// is nil for asynchronous deliveries.
type PanicHandler func(event any, sub Subscription, recovered any, stack []byte)

// Stats contains event bus counters.
type Stats struct {
	// EventsEmitted is the total number of events emitted.
	EventsEmitted uint64

	// EventsDelivered is the total number of successful handler deliveries.
	EventsDelivered uint64

	// EventsDropped is the number of async deliveries dropped (queue full
	// or bus closed).
	EventsDropped uint64

	// HandlersExecuted is the total number of handler executions.
	HandlersExecuted uint64

	// HandlerErrors is the number of handlers that returned errors.
	HandlerErrors uint64

	// HandlerPanics is the number of handlers that panicked.
	HandlerPanics uint64

	// ActiveSubscriptions is the current number of active subscriptions.
	ActiveSubscriptions int

	// HistoryLen is the current number of records in the history buffer.
	HistoryLen int

	// AsyncQueueDepth is the current async queue depth.
	AsyncQueueDepth int
}
