// Package crosstalk implements a topic-keyed publish/subscribe event bus
// for decoupling components inside a process.
//
// Components emit events on colon-separated topics ("panel:collapse",
// "toast:show") and subscribe to concrete topics or wildcard patterns.
// Emission is synchronous by default: Emit returns after every matching
// sync handler has run, in priority-then-registration order, with exact
// subscribers before wildcard subscribers. A handler that returns an
// error or panics never disturbs the other handlers or the emitter; the
// failure is routed to the bus's diagnostic sinks instead.
//
// The bus keeps a bounded FIFO history of the most recent events so that
// late-joining components can inspect what happened before they attached.
// Channel provides a named, scoped view of a bus with automatic topic
// qualification and one-call teardown of everything subscribed through it.
//
// Basic usage:
//
//	bus := crosstalk.New()
//	sub, _ := bus.SubscribeFunc("toast:show", func(ctx context.Context, event any) error {
//	    env := crosstalk.ToEnvelope(event)
//	    fmt.Println("toast:", env.Payload)
//	    return nil
//	})
//	defer sub.Unsubscribe()
//
//	bus.Emit(context.Background(), "toast:show", "saved")
package crosstalk
