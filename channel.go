package crosstalk

import (
	"context"
	"sync"

	"github.com/emberfield/crosstalk/topic"
)

// Channel is a named, scoped view of a Bus. Topics emitted or subscribed
// through a channel are qualified with the channel name ("sidebar" +
// "panel:collapse" becomes "sidebar:panel:collapse"), so two components
// using the same topic names on different channels never hear each other.
//
// The channel tracks every subscription made through it; Close cancels
// them all in one call, which is the teardown path for a component that
// owns the channel.
type Channel struct {
	name string
	bus  Bus

	mu     sync.Mutex
	subs   map[string]Subscription
	closed bool
}

// NewChannel creates a named channel over the given bus.
func NewChannel(b Bus, name string) *Channel {
	return &Channel{
		name: name,
		bus:  b,
		subs: make(map[string]Subscription),
	}
}

// Name returns the channel name.
func (c *Channel) Name() string {
	return c.name
}

// Bus returns the underlying bus.
func (c *Channel) Bus() Bus {
	return c.bus
}

// Emit publishes a payload on the channel-qualified topic. The channel
// name is recorded as the event source. Emitting on a closed channel is
// a no-op returning ErrChannelClosed.
func (c *Channel) Emit(ctx context.Context, t topic.Topic, payload any, opts ...EmitOption) error {
	c.mu.Lock()
	closed := c.closed
	c.mu.Unlock()
	if closed {
		return ErrChannelClosed
	}

	opts = append([]EmitOption{WithSource(c.name)}, opts...)
	return c.bus.Emit(ctx, t.Qualify(c.name), payload, opts...)
}

// Subscribe registers a handler for the channel-qualified pattern.
func (c *Channel) Subscribe(t topic.Topic, h Handler, opts ...SubscriptionOption) (Subscription, error) {
	return c.track(func() (Subscription, error) {
		return c.bus.Subscribe(t.Qualify(c.name), h, opts...)
	})
}

// SubscribeFunc registers a handler function for the channel-qualified pattern.
func (c *Channel) SubscribeFunc(t topic.Topic, fn HandlerFunc, opts ...SubscriptionOption) (Subscription, error) {
	if fn == nil {
		return nil, ErrNilHandler
	}
	return c.Subscribe(t, fn, opts...)
}

// SubscribeAll registers a handler for every event on the bus, across
// all channels. The topic is deliberately not qualified: a catch-all
// observer would be useless if it only saw its own namespace. The handle
// is still tracked, so Close tears it down with the rest.
func (c *Channel) SubscribeAll(h Handler, opts ...SubscriptionOption) (Subscription, error) {
	return c.track(func() (Subscription, error) {
		return c.bus.SubscribeAll(h, opts...)
	})
}

// SubscribeLocal registers a handler for every event emitted on this
// channel's namespace.
func (c *Channel) SubscribeLocal(h Handler, opts ...SubscriptionOption) (Subscription, error) {
	return c.track(func() (Subscription, error) {
		return c.bus.Subscribe(topic.Topic(c.name).Child(topic.WildcardMulti), h, opts...)
	})
}

// track runs subscribe under the channel lock and records the handle so
// Close can cancel it later.
func (c *Channel) track(subscribe func() (Subscription, error)) (Subscription, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.closed {
		return nil, ErrChannelClosed
	}

	sub, err := subscribe()
	if err != nil {
		return nil, err
	}

	c.subs[sub.ID()] = sub
	return sub, nil
}

// Unsubscribe removes a subscription made through this channel.
// Idempotent; handles from other channels are ignored.
func (c *Channel) Unsubscribe(sub Subscription) {
	if sub == nil {
		return
	}

	c.mu.Lock()
	_, mine := c.subs[sub.ID()]
	if mine {
		delete(c.subs, sub.ID())
	}
	c.mu.Unlock()

	if mine {
		sub.Unsubscribe()
	}
}

// Count returns the number of live subscriptions made through this channel.
func (c *Channel) Count() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.subs)
}

// Close cancels every subscription made through this channel and marks
// the channel closed. Idempotent: a second Close is a no-op.
func (c *Channel) Close() {
	c.mu.Lock()
	if c.closed {
		c.mu.Unlock()
		return
	}
	c.closed = true
	subs := c.subs
	c.subs = nil
	c.mu.Unlock()

	for _, sub := range subs {
		sub.Unsubscribe()
	}
}

// IsClosed reports whether the channel has been closed.
func (c *Channel) IsClosed() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.closed
}
