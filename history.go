package crosstalk

import (
	"sync"

	"github.com/emberfield/crosstalk/topic"
)

// DefaultHistorySize is the default capacity of the bus history buffer.
const DefaultHistorySize = 100

// history is a bounded FIFO log of the most recently emitted records
// across all topics. Recording is independent of subscriptions: an event
// is appended even when no handler is registered for its topic. When the
// buffer is at capacity, appending evicts the oldest entry.
type history struct {
	mu    sync.RWMutex
	buf   []Envelope
	head  int // index of the oldest entry
	count int
}

// newHistory creates a history buffer with the given capacity.
// Non-positive capacities fall back to DefaultHistorySize.
func newHistory(capacity int) *history {
	if capacity <= 0 {
		capacity = DefaultHistorySize
	}
	return &history{
		buf: make([]Envelope, capacity),
	}
}

// Append records an envelope, evicting the oldest entry at capacity.
func (h *history) Append(env Envelope) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if h.count < len(h.buf) {
		h.buf[(h.head+h.count)%len(h.buf)] = env
		h.count++
		return
	}

	h.buf[h.head] = env
	h.head = (h.head + 1) % len(h.buf)
}

// Snapshot returns a copy of all entries, oldest first.
// Mutating the result does not affect the buffer.
func (h *history) Snapshot() []Envelope {
	h.mu.RLock()
	defer h.mu.RUnlock()

	if h.count == 0 {
		return nil
	}

	out := make([]Envelope, h.count)
	for i := 0; i < h.count; i++ {
		out[i] = h.buf[(h.head+i)%len(h.buf)]
	}
	return out
}

// ForTopic returns a copy of the entries whose topic equals t exactly,
// oldest first.
func (h *history) ForTopic(t topic.Topic) []Envelope {
	h.mu.RLock()
	defer h.mu.RUnlock()

	var out []Envelope
	for i := 0; i < h.count; i++ {
		env := h.buf[(h.head+i)%len(h.buf)]
		if env.Topic == t {
			out = append(out, env)
		}
	}
	return out
}

// Len returns the current number of entries.
func (h *history) Len() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return h.count
}

// Cap returns the buffer capacity.
func (h *history) Cap() int {
	return len(h.buf)
}

// Clear removes all entries.
func (h *history) Clear() {
	h.mu.Lock()
	defer h.mu.Unlock()

	h.head = 0
	h.count = 0
}
