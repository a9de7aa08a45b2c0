package topic

import "sync"

// Matcher indexes wildcard patterns for efficient lookup against concrete
// event topics. Patterns are stored in a trie keyed by segment; the bare
// match-all patterns ("*", "**") are tracked separately since they match
// regardless of segment count. Safe for concurrent use.
type Matcher struct {
	mu       sync.RWMutex
	root     *trieNode
	matchAll []Topic
}

// trieNode represents a node in the pattern trie.
type trieNode struct {
	children map[string]*trieNode
	patterns []Topic // Patterns that terminate at this node
}

func newTrieNode() *trieNode {
	return &trieNode{
		children: make(map[string]*trieNode),
	}
}

// NewMatcher creates a new topic matcher.
func NewMatcher() *Matcher {
	return &Matcher{
		root: newTrieNode(),
	}
}

// Add adds a pattern to the matcher. Adding the same pattern twice is a
// no-op; the registry tracks per-subscription entries, not the matcher.
func (m *Matcher) Add(pattern Topic) {
	if pattern == "" {
		return
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	if pattern.MatchesAll() {
		for _, p := range m.matchAll {
			if p == pattern {
				return
			}
		}
		m.matchAll = append(m.matchAll, pattern)
		return
	}

	node := m.root
	for _, seg := range pattern.Segments() {
		if node.children[seg] == nil {
			node.children[seg] = newTrieNode()
		}
		node = node.children[seg]
	}

	for _, p := range node.patterns {
		if p == pattern {
			return
		}
	}
	node.patterns = append(node.patterns, pattern)
}

// Remove removes a pattern from the matcher.
func (m *Matcher) Remove(pattern Topic) {
	if pattern == "" {
		return
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	if pattern.MatchesAll() {
		for i, p := range m.matchAll {
			if p == pattern {
				m.matchAll = append(m.matchAll[:i], m.matchAll[i+1:]...)
				return
			}
		}
		return
	}

	node := m.root
	for _, seg := range pattern.Segments() {
		if node.children[seg] == nil {
			return // Pattern not found
		}
		node = node.children[seg]
	}

	for i, p := range node.patterns {
		if p == pattern {
			node.patterns = append(node.patterns[:i], node.patterns[i+1:]...)
			break
		}
	}
}

// Has returns true if the pattern exists in the matcher.
func (m *Matcher) Has(pattern Topic) bool {
	if pattern == "" {
		return false
	}

	m.mu.RLock()
	defer m.mu.RUnlock()

	if pattern.MatchesAll() {
		for _, p := range m.matchAll {
			if p == pattern {
				return true
			}
		}
		return false
	}

	node := m.root
	for _, seg := range pattern.Segments() {
		if node.children[seg] == nil {
			return false
		}
		node = node.children[seg]
	}

	for _, p := range node.patterns {
		if p == pattern {
			return true
		}
	}
	return false
}

// Match returns all patterns that match the given concrete topic, each
// pattern at most once. The topic itself must not contain wildcards.
func (m *Matcher) Match(eventTopic Topic) []Topic {
	if eventTopic == "" {
		return nil
	}

	m.mu.RLock()
	defer m.mu.RUnlock()

	// Patterns with more than one ** can reach their terminal node via
	// several recursion paths; seen collapses them to one match.
	seen := make(map[Topic]struct{})
	var matches []Topic
	segments := eventTopic.Segments()

	m.matchRecursive(m.root, segments, 0, seen, &matches)

	for _, p := range m.matchAll {
		if _, dup := seen[p]; !dup {
			seen[p] = struct{}{}
			matches = append(matches, p)
		}
	}

	return matches
}

// matchRecursive walks the trie collecting patterns that consume the topic.
func (m *Matcher) matchRecursive(node *trieNode, segments []string, depth int, seen map[Topic]struct{}, matches *[]Topic) {
	if node == nil {
		return
	}

	if depth == len(segments) {
		for _, p := range node.patterns {
			if _, dup := seen[p]; dup {
				continue
			}
			seen[p] = struct{}{}
			*matches = append(*matches, p)
		}

		// A trailing ** matches zero additional segments
		if child := node.children[WildcardMulti]; child != nil {
			m.matchRecursive(child, segments, depth, seen, matches)
		}
		return
	}

	segment := segments[depth]

	if child := node.children[segment]; child != nil {
		m.matchRecursive(child, segments, depth+1, seen, matches)
	}

	if child := node.children[WildcardSingle]; child != nil {
		m.matchRecursive(child, segments, depth+1, seen, matches)
	}

	if child := node.children[WildcardMulti]; child != nil {
		for i := depth; i <= len(segments); i++ {
			m.matchRecursive(child, segments, i, seen, matches)
		}
	}
}

// Patterns returns all patterns in the matcher.
func (m *Matcher) Patterns() []Topic {
	m.mu.RLock()
	defer m.mu.RUnlock()

	var patterns []Topic
	patterns = append(patterns, m.matchAll...)
	m.collectPatterns(m.root, &patterns)
	return patterns
}

func (m *Matcher) collectPatterns(node *trieNode, patterns *[]Topic) {
	if node == nil {
		return
	}

	*patterns = append(*patterns, node.patterns...)

	for _, child := range node.children {
		m.collectPatterns(child, patterns)
	}
}

// Count returns the number of patterns in the matcher.
func (m *Matcher) Count() int {
	return len(m.Patterns())
}

// Clear removes all patterns from the matcher.
func (m *Matcher) Clear() {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.root = newTrieNode()
	m.matchAll = nil
}
