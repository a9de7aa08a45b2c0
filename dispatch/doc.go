// Package dispatch provides handler execution for the crosstalk event bus.
//
// The package implements both synchronous and asynchronous delivery with
// panic recovery, error reporting, context support, and configurable
// timeouts.
//
// # Dispatchers
//
//   - SyncDispatcher: executes handlers in the emitter's goroutine. This is
//     the bus's default delivery mode; an emit returns only after every
//     matching handler has run.
//
//   - AsyncDispatcher: executes handlers on a bounded worker pool. Used for
//     subscriptions that opt into asynchronous delivery.
//
// # Error Isolation
//
// All dispatchers recover from handler panics, so one misbehaving observer
// cannot break delivery to the others or crash the host application. Panics
// and handler errors are reported via the PanicHandler and ErrorHandler
// callbacks; the bus routes both through its diagnostic sink.
//
// # Context Support
//
// Dispatchers respect context cancellation and deadlines. If a context is
// cancelled before or during handler execution, the dispatch result carries
// context.Canceled or context.DeadlineExceeded.
package dispatch
