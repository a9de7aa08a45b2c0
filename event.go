package crosstalk

import (
	"time"

	"github.com/google/uuid"

	"github.com/emberfield/crosstalk/topic"
)

// timeNow is a variable to allow testing with fixed timestamps.
var timeNow = time.Now

// Event represents one emitted occurrence with a typed payload.
// Events are immutable once created; the bus never mutates a record
// after construction.
type Event[T any] struct {
	// Type is the topic the event was emitted on (e.g., "panel:collapse").
	Type topic.Topic

	// Payload contains the event-specific data.
	Payload T

	// Metadata contains standard event information.
	Metadata Metadata
}

// Metadata contains standard information attached to every event.
type Metadata struct {
	// ID is a unique identifier for this event instance.
	ID string

	// Timestamp is when the event was created. Assigned at emit time;
	// monotonic non-decreasing within a process.
	Timestamp time.Time

	// Source identifies the channel or component that emitted the event.
	Source string

	// CorrelationID links related events across components.
	CorrelationID string

	// CausationID links to the event that caused this one.
	CausationID string

	// Version is the schema version of the payload.
	Version int
}

// NewEvent creates a new event with the given topic and payload.
func NewEvent[T any](t topic.Topic, payload T, source string) Event[T] {
	return Event[T]{
		Type:    t,
		Payload: payload,
		Metadata: Metadata{
			ID:        newEventID(),
			Timestamp: timeNow(),
			Source:    source,
			Version:   1,
		},
	}
}

// NewEventWithMetadata creates a new event with custom metadata.
// Missing metadata fields are filled with defaults.
func NewEventWithMetadata[T any](t topic.Topic, payload T, meta Metadata) Event[T] {
	if meta.ID == "" {
		meta.ID = newEventID()
	}
	if meta.Timestamp.IsZero() {
		meta.Timestamp = timeNow()
	}
	if meta.Version == 0 {
		meta.Version = 1
	}
	return Event[T]{
		Type:     t,
		Payload:  payload,
		Metadata: meta,
	}
}

// EventTopic returns the event's topic for type-erased handling.
func (e Event[T]) EventTopic() topic.Topic {
	return e.Type
}

// EventMetadata returns the event's metadata for type-erased handling.
func (e Event[T]) EventMetadata() Metadata {
	return e.Metadata
}

// EventPayload returns the payload for type-erased handling.
func (e Event[T]) EventPayload() any {
	return e.Payload
}

// WithCorrelation returns a copy of the event with a correlation ID set.
func (e Event[T]) WithCorrelation(correlationID string) Event[T] {
	e.Metadata.CorrelationID = correlationID
	return e
}

// WithCausation returns a copy of the event with a causation ID set.
func (e Event[T]) WithCausation(causationID string) Event[T] {
	e.Metadata.CausationID = causationID
	return e
}

// WithEventSource returns a copy of the event with a different source.
func (e Event[T]) WithEventSource(source string) Event[T] {
	e.Metadata.Source = source
	return e
}

// TopicProvider is implemented by types that can provide their topic.
type TopicProvider interface {
	EventTopic() topic.Topic
}

// MetadataProvider is implemented by types that can provide their metadata.
type MetadataProvider interface {
	EventMetadata() Metadata
}

// PayloadProvider is implemented by types that can provide their payload.
type PayloadProvider interface {
	EventPayload() any
}

// newEventID generates a unique event ID.
func newEventID() string {
	return uuid.NewString()
}

// Envelope wraps any event for type-erased handling. This is the record
// shape the bus stores in history and delivers for untyped emits.
type Envelope struct {
	// Topic is the event topic.
	Topic topic.Topic

	// Payload is the type-erased event payload. Opaque to the bus.
	Payload any

	// Metadata is the event metadata.
	Metadata Metadata
}

// EventTopic returns the envelope's topic.
func (e Envelope) EventTopic() topic.Topic {
	return e.Topic
}

// EventMetadata returns the envelope's metadata.
func (e Envelope) EventMetadata() Metadata {
	return e.Metadata
}

// NewEnvelope creates a new envelope from a typed event.
func NewEnvelope[T any](e Event[T]) Envelope {
	return Envelope{
		Topic:    e.Type,
		Payload:  e.Payload,
		Metadata: e.Metadata,
	}
}

// ToEnvelope converts a TopicProvider to an Envelope.
// Returns an empty Envelope if the event doesn't implement the required
// interfaces.
func ToEnvelope(event any) Envelope {
	if env, ok := event.(Envelope); ok {
		return env
	}

	tp, ok := event.(TopicProvider)
	if !ok {
		return Envelope{}
	}

	env := Envelope{
		Topic:   tp.EventTopic(),
		Payload: event,
	}

	// Typed events unwrap to their inner payload, so the envelope shape
	// is the same whether the caller went through Emit or Publish.
	if pp, ok := event.(PayloadProvider); ok {
		env.Payload = pp.EventPayload()
	}

	if mp, ok := event.(MetadataProvider); ok {
		env.Metadata = mp.EventMetadata()
	}

	return env
}
