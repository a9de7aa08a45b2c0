package crosstalk

import (
	"context"
	"sync"
	"sync/atomic"

	"github.com/emberfield/crosstalk/dispatch"
	"github.com/emberfield/crosstalk/topic"
)

// Bus is the central event bus. Components publish occurrences without
// knowing who listens and subscribe to topics without knowing who emits.
//
// Emit is synchronous by default: it returns after every sync handler for
// the topic has run. Handler errors and panics never propagate to the
// emitter; they are routed to the bus's diagnostic sinks.
type Bus interface {
	// Emit publishes a payload on a concrete topic. The only error is
	// ErrInvalidTopic, for an empty or wildcard-containing topic.
	//
	// Each emit dispatches over a snapshot of the matching subscriptions.
	// Subscribing during the pass does not add to it; cancelling a
	// subscription during the pass suppresses its delivery if its turn
	// has not yet come, and never disturbs deliveries already made.
	Emit(ctx context.Context, t topic.Topic, payload any, opts ...EmitOption) error

	// Publish publishes a pre-built event. The event must implement
	// TopicProvider or be an Envelope; anything else is ErrInvalidEvent.
	Publish(ctx context.Context, event any) error

	// Subscribe registers a handler for a topic pattern. The pattern may
	// contain wildcards ("*" matches one segment, "**" matches any
	// number; bare "*" matches every topic).
	Subscribe(t topic.Topic, h Handler, opts ...SubscriptionOption) (Subscription, error)

	// SubscribeFunc registers a handler function for a topic pattern.
	SubscribeFunc(t topic.Topic, fn HandlerFunc, opts ...SubscriptionOption) (Subscription, error)

	// SubscribeAll registers a handler that receives every event.
	SubscribeAll(h Handler, opts ...SubscriptionOption) (Subscription, error)

	// Unsubscribe removes a subscription. Idempotent; unknown or
	// already-removed handles are ignored.
	Unsubscribe(sub Subscription)

	// History returns a copy of the retained event records, oldest first.
	History() []Envelope

	// HistoryFor returns the retained records for one exact topic.
	HistoryFor(t topic.Topic) []Envelope

	// HandlerCount returns the number of subscriptions registered for
	// the exact topic, wildcard subscriptions excluded.
	HandlerCount(t topic.Topic) int

	// Clear removes all subscriptions and clears the history.
	Clear()

	// Stats returns a snapshot of the bus counters.
	Stats() Stats

	// Close shuts the bus down, draining queued async deliveries until
	// the context expires. Emits after Close are dropped.
	Close(ctx context.Context) error
}

// EmitOption customizes the metadata attached to an emitted event.
type EmitOption func(*Metadata)

// WithSource sets the emitting component on the event metadata.
func WithSource(source string) EmitOption {
	return func(m *Metadata) {
		m.Source = source
	}
}

// WithCorrelationID links the event to a correlation chain.
func WithCorrelationID(id string) EmitOption {
	return func(m *Metadata) {
		m.CorrelationID = id
	}
}

// WithCausationID links the event to the event that caused it.
func WithCausationID(id string) EmitOption {
	return func(m *Metadata) {
		m.CausationID = id
	}
}

// bus is the internal implementation of Bus.
type bus struct {
	config   busConfig
	registry *Registry
	history  *history
	logger   *Logger

	syncDisp  *dispatch.SyncDispatcher
	asyncDisp *dispatch.AsyncDispatcher
	asyncOnce sync.Once

	closed  atomic.Bool
	emitted atomic.Uint64
	dropped atomic.Uint64
}

// New creates a new event bus. The zero-option bus delivers synchronously,
// retains the last DefaultHistorySize events, and discards diagnostics.
func New(opts ...BusOption) Bus {
	config := defaultBusConfig()
	for _, opt := range opts {
		opt(&config)
	}

	b := &bus{
		config:   config,
		registry: NewRegistry(),
		history:  newHistory(config.historySize),
		logger:   config.logger.WithComponent("bus"),
	}

	b.syncDisp = dispatch.NewSyncDispatcher(
		dispatch.WithTimeout(config.handlerTimeout),
	)

	// Async deliveries lose the subscription handle by the time a worker
	// runs them, so the sinks receive a nil subscription there.
	b.asyncDisp = dispatch.NewAsyncDispatcher(
		dispatch.WithQueueSize(config.asyncQueueSize),
		dispatch.WithWorkerCount(config.asyncWorkerCount),
		dispatch.WithAsyncTimeout(config.handlerTimeout),
		dispatch.WithAsyncErrorHandler(func(event any, err error) {
			b.reportError(event, nil, err)
		}),
		dispatch.WithAsyncPanicHandler(func(event any, recovered any, stack []byte) {
			b.reportPanic(event, nil, recovered, stack)
		}),
	)

	return b
}

// Emit publishes a payload on a concrete topic.
func (b *bus) Emit(ctx context.Context, t topic.Topic, payload any, opts ...EmitOption) error {
	if !t.IsValid() || t.IsWildcard() {
		return ErrInvalidTopic
	}

	meta := Metadata{
		ID:        newEventID(),
		Timestamp: timeNow(),
		Version:   1,
	}
	for _, opt := range opts {
		opt(&meta)
	}

	b.emitEnvelope(ctx, Envelope{
		Topic:    t,
		Payload:  payload,
		Metadata: meta,
	})
	return nil
}

// Publish publishes a pre-built event.
func (b *bus) Publish(ctx context.Context, event any) error {
	env := ToEnvelope(event)
	if env.Topic == "" {
		return ErrInvalidEvent
	}
	if !env.Topic.IsValid() || env.Topic.IsWildcard() {
		return ErrInvalidTopic
	}

	if env.Metadata.ID == "" {
		env.Metadata.ID = newEventID()
	}
	if env.Metadata.Timestamp.IsZero() {
		env.Metadata.Timestamp = timeNow()
	}

	b.emitEnvelope(ctx, env)
	return nil
}

// emitEnvelope records the envelope and delivers it to matching
// subscriptions. The record lands in history before any handler runs, so
// a handler reading History sees the event it is handling.
func (b *bus) emitEnvelope(ctx context.Context, env Envelope) {
	if b.closed.Load() {
		b.dropped.Add(1)
		return
	}

	b.emitted.Add(1)
	b.history.Append(env)

	exact, wildcard := b.registry.MatchActive(env.Topic)

	if b.config.wildcardFirst {
		b.deliverGroup(ctx, env, wildcard)
		b.deliverGroup(ctx, env, exact)
	} else {
		b.deliverGroup(ctx, env, exact)
		b.deliverGroup(ctx, env, wildcard)
	}
}

// deliverGroup delivers the envelope to one ordered group of subscriptions.
// The group is a snapshot: subscribing during the pass never adds to it,
// and unsubscribing never disturbs handlers already delivered. Each
// subscription's state is rechecked at its turn, so a handler that
// cancels a later subscription suppresses that delivery in the same pass.
func (b *bus) deliverGroup(ctx context.Context, env Envelope, subs []*subscription) {
	for _, sub := range subs {
		if !sub.ShouldDeliver(env) {
			continue
		}

		if sub.Config().DeliveryMode == DeliveryAsync {
			b.deliverAsync(ctx, env, sub)
			continue
		}

		result := b.syncDisp.Dispatch(ctx, env, sub.Handler())
		b.settle(env, sub, result)
	}
}

// deliverAsync hands the envelope to the worker pool.
func (b *bus) deliverAsync(ctx context.Context, env Envelope, sub *subscription) {
	b.asyncOnce.Do(func() {
		if err := b.asyncDisp.Start(); err != nil {
			b.logger.Error("async dispatcher start failed: %v", err)
		}
	})

	if err := b.asyncDisp.Enqueue(ctx, env, sub.Handler()); err != nil {
		b.dropped.Add(1)
		b.logger.Warn("async delivery dropped on %s: %v", env.Topic, err)
		return
	}

	if sub.Config().Once {
		sub.Unsubscribe()
	}
}

// settle routes a sync dispatch result to the diagnostic sinks and
// retires once-subscriptions.
func (b *bus) settle(env Envelope, sub *subscription, result dispatch.Result) {
	switch {
	case result.Panicked:
		b.reportPanic(env, sub, result.PanicValue, result.PanicStack)
	case result.Skipped:
		// Context expired before the handler ran; not a handler failure.
	case result.Error != nil:
		b.reportError(env, sub, &HandlerError{
			SubscriptionID: sub.ID(),
			Topic:          env.Topic.String(),
			Err:            result.Error,
		})
	}

	if sub.Config().Once && !result.Skipped {
		sub.Unsubscribe()
	}
}

// reportError invokes the error sink, guarding against sink panics.
func (b *bus) reportError(event any, sub Subscription, err error) {
	if b.config.errorHandler == nil {
		b.logger.Debug("handler error: %v", err)
		return
	}
	defer func() {
		if r := recover(); r != nil {
			b.logger.Error("error sink panicked: %v", r)
		}
	}()
	b.config.errorHandler(event, sub, err)
}

// reportPanic invokes the panic sink, guarding against sink panics.
func (b *bus) reportPanic(event any, sub Subscription, recovered any, stack []byte) {
	if b.config.panicHandler == nil {
		b.logger.Error("handler panic: %v", recovered)
		return
	}
	defer func() {
		if r := recover(); r != nil {
			b.logger.Error("panic sink panicked: %v", r)
		}
	}()
	b.config.panicHandler(event, sub, recovered, stack)
}

// Subscribe registers a handler for a topic pattern.
func (b *bus) Subscribe(t topic.Topic, h Handler, opts ...SubscriptionOption) (Subscription, error) {
	if b.closed.Load() {
		return nil, ErrBusClosed
	}
	if !t.IsValid() {
		return nil, ErrInvalidTopic
	}
	if h == nil {
		return nil, ErrNilHandler
	}

	sub := newSubscription(newEventID(), t, h, opts...)
	sub.remove = func() {
		b.registry.Remove(sub.id)
	}
	b.registry.Add(sub)

	b.logger.Debug("subscribed %s to %s", sub.id, t)
	return sub, nil
}

// SubscribeFunc registers a handler function for a topic pattern.
func (b *bus) SubscribeFunc(t topic.Topic, fn HandlerFunc, opts ...SubscriptionOption) (Subscription, error) {
	if fn == nil {
		return nil, ErrNilHandler
	}
	return b.Subscribe(t, fn, opts...)
}

// SubscribeAll registers a handler that receives every event.
func (b *bus) SubscribeAll(h Handler, opts ...SubscriptionOption) (Subscription, error) {
	return b.Subscribe(topic.All, h, opts...)
}

// Unsubscribe removes a subscription.
func (b *bus) Unsubscribe(sub Subscription) {
	if sub == nil {
		return
	}
	sub.Unsubscribe()
}

// History returns a copy of the retained event records.
func (b *bus) History() []Envelope {
	return b.history.Snapshot()
}

// HistoryFor returns the retained records for one exact topic.
func (b *bus) HistoryFor(t topic.Topic) []Envelope {
	return b.history.ForTopic(t)
}

// HandlerCount returns the number of exact subscriptions for a topic.
func (b *bus) HandlerCount(t topic.Topic) int {
	return b.registry.CountByTopic(t)
}

// Clear removes all subscriptions and clears the history.
func (b *bus) Clear() {
	b.registry.Clear()
	b.history.Clear()
	b.logger.Debug("bus cleared")
}

// Stats returns a snapshot of the bus counters.
func (b *bus) Stats() Stats {
	syncStats := b.syncDisp.Stats()
	asyncStats := b.asyncDisp.Stats()

	return Stats{
		EventsEmitted:       b.emitted.Load(),
		EventsDelivered:     syncStats.Succeeded + asyncStats.Succeeded,
		EventsDropped:       b.dropped.Load(),
		HandlersExecuted:    syncStats.Dispatched + asyncStats.Processed,
		HandlerErrors:       syncStats.Failed + asyncStats.Failed,
		HandlerPanics:       syncStats.Panicked + asyncStats.Panicked,
		ActiveSubscriptions: b.registry.CountActive(),
		HistoryLen:          b.history.Len(),
		AsyncQueueDepth:     asyncStats.QueueDepth,
	}
}

// Close shuts the bus down.
func (b *bus) Close(ctx context.Context) error {
	if !b.closed.CompareAndSwap(false, true) {
		return ErrBusClosed
	}

	if b.asyncDisp.IsRunning() {
		if err := b.asyncDisp.Stop(ctx); err != nil {
			return err
		}
	}

	b.registry.Clear()
	b.logger.Debug("bus closed")
	return nil
}

// SubscribePayload registers a typed handler function for a topic pattern.
// Events whose payload is not T are skipped silently.
func SubscribePayload[T any](b Bus, t topic.Topic, fn func(ctx context.Context, event Event[T]) error, opts ...SubscriptionOption) (Subscription, error) {
	if fn == nil {
		return nil, ErrNilHandler
	}
	return b.Subscribe(t, HandlerFunc(func(ctx context.Context, event any) error {
		env, ok := event.(Envelope)
		if !ok {
			return nil
		}
		payload, ok := env.Payload.(T)
		if !ok {
			return nil
		}
		return fn(ctx, Event[T]{
			Type:     env.Topic,
			Payload:  payload,
			Metadata: env.Metadata,
		})
	}), opts...)
}
