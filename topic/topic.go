package topic

import "strings"

// Topic identifies a category of events using colon-separated segments.
// The first segment conventionally names the emitting channel.
// Examples: "panel:collapse", "toast:show", "tree:node:selected"
type Topic string

// Wildcard constants for pattern matching.
const (
	// WildcardSingle matches exactly one segment within a pattern.
	// As an entire pattern, it matches every topic.
	WildcardSingle = "*"

	// WildcardMulti matches zero or more segments.
	WildcardMulti = "**"

	// Separator is the character used to separate topic segments.
	Separator = ":"
)

// All is the pattern that matches every emitted topic.
const All Topic = WildcardSingle

// String returns the topic as a string.
func (t Topic) String() string {
	return string(t)
}

// Segments returns the topic split by the separator.
func (t Topic) Segments() []string {
	if t == "" {
		return nil
	}
	return strings.Split(string(t), Separator)
}

// SegmentCount returns the number of segments in the topic.
func (t Topic) SegmentCount() int {
	if t == "" {
		return 0
	}
	return strings.Count(string(t), Separator) + 1
}

// Qualify prefixes the topic with a channel name.
// An empty channel leaves the topic unchanged.
//
// Example: Topic("collapse").Qualify("panel") -> "panel:collapse"
func (t Topic) Qualify(channel string) Topic {
	if channel == "" {
		return t
	}
	return Topic(channel + Separator + string(t))
}

// Channel returns the first segment of the topic, or "" for a
// single-segment topic.
//
// Example: "panel:collapse" -> "panel"
func (t Topic) Channel() string {
	s := string(t)
	idx := strings.Index(s, Separator)
	if idx < 0 {
		return ""
	}
	return s[:idx]
}

// Base returns the last segment of the topic.
//
// Example: "tree:node:selected" -> "selected"
func (t Topic) Base() string {
	s := string(t)
	idx := strings.LastIndex(s, Separator)
	if idx < 0 {
		return s
	}
	return s[idx+1:]
}

// Child returns a child topic by appending a segment.
//
// Example: "tree:node".Child("selected") -> "tree:node:selected"
func (t Topic) Child(segment string) Topic {
	if t == "" {
		return Topic(segment)
	}
	return Topic(string(t) + Separator + segment)
}

// HasPrefix returns true if the topic starts with the given prefix on a
// segment boundary.
func (t Topic) HasPrefix(prefix Topic) bool {
	if prefix == "" {
		return true
	}
	s := string(t)
	p := string(prefix)
	if !strings.HasPrefix(s, p) {
		return false
	}
	if len(s) == len(p) {
		return true
	}
	return s[len(p)] == ':'
}

// IsWildcard returns true if the topic contains any wildcard characters.
func (t Topic) IsWildcard() bool {
	return strings.Contains(string(t), WildcardSingle)
}

// MatchesAll returns true for the patterns that match every topic:
// a bare "*" or a bare "**".
func (t Topic) MatchesAll() bool {
	return t == WildcardSingle || t == WildcardMulti
}

// IsValid returns true if the topic is well formed.
// A valid topic:
//   - Is not empty
//   - Does not start or end with a separator
//   - Does not contain empty segments
func (t Topic) IsValid() bool {
	s := string(t)
	if s == "" {
		return false
	}
	if strings.HasPrefix(s, Separator) || strings.HasSuffix(s, Separator) {
		return false
	}
	if strings.Contains(s, Separator+Separator) {
		return false
	}
	for _, seg := range t.Segments() {
		if seg == "" {
			return false
		}
	}
	return true
}

// Matches returns true if this topic matches the given pattern.
// A bare "*" or "**" pattern matches any topic. Within multi-segment
// patterns, "*" matches exactly one segment and "**" matches zero or more.
func (t Topic) Matches(pattern Topic) bool {
	if pattern.MatchesAll() {
		return true
	}
	return matchSegments(t.Segments(), pattern.Segments())
}

// matchSegments performs recursive pattern matching on topic segments.
func matchSegments(topic, pattern []string) bool {
	ti, pi := 0, 0

	for pi < len(pattern) {
		if pattern[pi] == WildcardMulti {
			// ** matches zero or more segments
			for ti <= len(topic) {
				if matchSegments(topic[ti:], pattern[pi+1:]) {
					return true
				}
				ti++
			}
			return false
		}

		if ti >= len(topic) {
			return false
		}

		switch {
		case pattern[pi] == WildcardSingle:
			ti++
			pi++
		case pattern[pi] == topic[ti]:
			ti++
			pi++
		default:
			return false
		}
	}

	return ti == len(topic)
}

// Join joins multiple segments into a topic.
func Join(segments ...string) Topic {
	return Topic(strings.Join(segments, Separator))
}

// Split splits a topic string into segments without creating a Topic first.
func Split(s string) []string {
	if s == "" {
		return nil
	}
	return strings.Split(s, Separator)
}
