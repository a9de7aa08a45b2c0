package crosstalk

import "errors"

// Sentinel errors for the event bus.
var (
	// ErrInvalidTopic is returned when a topic is empty or malformed.
	// Subscribing or emitting with an invalid topic is a programming
	// error and fails fast rather than registering an unusable entry.
	ErrInvalidTopic = errors.New("invalid topic")

	// ErrInvalidEvent is returned when a published event carries no topic.
	ErrInvalidEvent = errors.New("invalid event")

	// ErrNilHandler is returned when a nil handler is provided.
	ErrNilHandler = errors.New("handler cannot be nil")

	// ErrHandlerPanic is the sentinel matched by errors.Is for PanicError.
	ErrHandlerPanic = errors.New("handler panicked")

	// ErrChannelClosed is returned when subscribing through a closed
	// channel accessor.
	ErrChannelClosed = errors.New("channel is closed")

	// ErrBusClosed is returned when Close is called more than once.
	ErrBusClosed = errors.New("bus is closed")
)

// HandlerError wraps an error from a handler with delivery context.
// Instances are passed to the diagnostic sink, never to the emitter.
type HandlerError struct {
	// SubscriptionID is the ID of the subscription whose handler failed.
	SubscriptionID string

	// Topic is the topic the event was emitted on.
	Topic string

	// Err is the underlying error.
	Err error
}

// Error implements the error interface.
func (e *HandlerError) Error() string {
	return "handler error for subscription " + e.SubscriptionID + " on topic " + e.Topic + ": " + e.Err.Error()
}

// Unwrap returns the underlying error.
func (e *HandlerError) Unwrap() error {
	return e.Err
}

// PanicError wraps a panic value recovered from a handler.
type PanicError struct {
	// SubscriptionID is the ID of the subscription whose handler panicked.
	SubscriptionID string

	// Topic is the topic the event was emitted on.
	Topic string

	// Value is the value passed to panic().
	Value any

	// Stack is the stack trace at the time of the panic.
	Stack string
}

// Error implements the error interface.
func (e *PanicError) Error() string {
	return "handler panic for subscription " + e.SubscriptionID + " on topic " + e.Topic
}

// Is allows errors.Is to match PanicError with ErrHandlerPanic.
func (e *PanicError) Is(target error) bool {
	return target == ErrHandlerPanic
}
