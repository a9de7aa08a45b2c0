package crosstalk

import (
	"sort"
	"sync"

	"github.com/emberfield/crosstalk/topic"
)

// Registry manages subscriptions organized by topic pattern.
// Exact patterns are indexed directly; wildcard patterns additionally go
// through the trie matcher. It is thread-safe for concurrent access.
type Registry struct {
	mu      sync.RWMutex
	subs    map[topic.Topic][]*subscription
	byID    map[string]*subscription
	matcher *topic.Matcher
	nextSeq uint64
}

// NewRegistry creates a new subscription registry.
func NewRegistry() *Registry {
	return &Registry{
		subs:    make(map[topic.Topic][]*subscription),
		byID:    make(map[string]*subscription),
		matcher: topic.NewMatcher(),
	}
}

// Add adds a subscription for a topic pattern.
// Entries are kept in priority order; registration order breaks ties, so
// equal-priority handlers on one topic fire in the order they subscribed.
func (r *Registry) Add(sub *subscription) {
	r.mu.Lock()
	defer r.mu.Unlock()

	sub.seq = r.nextSeq
	r.nextSeq++

	pattern := sub.Topic()

	subs := append(r.subs[pattern], sub)
	sort.SliceStable(subs, func(i, j int) bool {
		if subs[i].Config().Priority != subs[j].Config().Priority {
			return subs[i].Config().Priority < subs[j].Config().Priority
		}
		return subs[i].seq < subs[j].seq
	})
	r.subs[pattern] = subs

	r.byID[sub.ID()] = sub

	if pattern.IsWildcard() {
		r.matcher.Add(pattern)
	}
}

// Remove removes a subscription by ID.
func (r *Registry) Remove(subID string) bool {
	r.mu.Lock()
	defer r.mu.Unlock()

	return r.removeLocked(subID)
}

func (r *Registry) removeLocked(subID string) bool {
	sub, exists := r.byID[subID]
	if !exists {
		return false
	}

	pattern := sub.Topic()

	subs := r.subs[pattern]
	for i, s := range subs {
		if s.ID() == subID {
			r.subs[pattern] = append(subs[:i], subs[i+1:]...)
			break
		}
	}

	// Clean up empty pattern entries
	if len(r.subs[pattern]) == 0 {
		delete(r.subs, pattern)
		if pattern.IsWildcard() {
			r.matcher.Remove(pattern)
		}
	}

	delete(r.byID, subID)

	return true
}

// Get returns a subscription by ID.
func (r *Registry) Get(subID string) (*subscription, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	sub, exists := r.byID[subID]
	return sub, exists
}

// Match returns the subscriptions matching the given concrete event topic,
// partitioned into exact-topic matches and wildcard-pattern matches. Both
// slices are copies in priority-then-registration order, so dispatch
// iterates a snapshot that concurrent subscribe/unsubscribe cannot disturb.
func (r *Registry) Match(eventTopic topic.Topic) (exact, wildcard []*subscription) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	if subs := r.subs[eventTopic]; len(subs) > 0 {
		exact = make([]*subscription, len(subs))
		copy(exact, subs)
	}

	patterns := r.matcher.Match(eventTopic)
	for _, pattern := range patterns {
		wildcard = append(wildcard, r.subs[pattern]...)
	}
	if len(wildcard) > 1 {
		sort.SliceStable(wildcard, func(i, j int) bool {
			if wildcard[i].Config().Priority != wildcard[j].Config().Priority {
				return wildcard[i].Config().Priority < wildcard[j].Config().Priority
			}
			return wildcard[i].seq < wildcard[j].seq
		})
	}

	return exact, wildcard
}

// MatchActive is Match filtered to subscriptions that can receive events.
func (r *Registry) MatchActive(eventTopic topic.Topic) (exact, wildcard []*subscription) {
	allExact, allWildcard := r.Match(eventTopic)

	for _, sub := range allExact {
		if sub.IsActive() {
			exact = append(exact, sub)
		}
	}
	for _, sub := range allWildcard {
		if sub.IsActive() {
			wildcard = append(wildcard, sub)
		}
	}
	return exact, wildcard
}

// Count returns the total number of subscriptions.
func (r *Registry) Count() int {
	r.mu.RLock()
	defer r.mu.RUnlock()

	return len(r.byID)
}

// CountByTopic returns the number of subscriptions registered for the
// exact pattern, wildcard subscriptions excluded.
func (r *Registry) CountByTopic(pattern topic.Topic) int {
	if pattern.IsWildcard() {
		return 0
	}

	r.mu.RLock()
	defer r.mu.RUnlock()

	return len(r.subs[pattern])
}

// CountActive returns the number of active subscriptions.
func (r *Registry) CountActive() int {
	r.mu.RLock()
	defer r.mu.RUnlock()

	count := 0
	for _, sub := range r.byID {
		if sub.IsActive() {
			count++
		}
	}
	return count
}

// Topics returns all patterns with registered subscriptions.
func (r *Registry) Topics() []topic.Topic {
	r.mu.RLock()
	defer r.mu.RUnlock()

	if len(r.subs) == 0 {
		return nil
	}

	topics := make([]topic.Topic, 0, len(r.subs))
	for t := range r.subs {
		topics = append(topics, t)
	}
	return topics
}

// Clear removes all subscriptions, cancelling each so that handles held
// by callers observe the removal.
func (r *Registry) Clear() {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, sub := range r.byID {
		sub.Cancel()
	}

	r.subs = make(map[topic.Topic][]*subscription)
	r.byID = make(map[string]*subscription)
	r.matcher.Clear()
}

// RemoveCancelled removes all cancelled subscriptions from the registry.
// Returns the number of subscriptions removed.
func (r *Registry) RemoveCancelled() int {
	r.mu.Lock()
	defer r.mu.Unlock()

	removed := 0
	for id, sub := range r.byID {
		if sub.IsCancelled() {
			r.removeLocked(id)
			removed++
		}
	}

	return removed
}
