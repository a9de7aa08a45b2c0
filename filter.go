package crosstalk

import (
	"encoding/json"

	"github.com/tidwall/gjson"

	"github.com/emberfield/crosstalk/topic"
)

// Filters are predicates applied per subscription before delivery. They
// run in the emitter's goroutine, so keep them cheap.

// FilterBySource allows only events emitted by the given source.
func FilterBySource(source string) FilterFunc {
	return func(event any) bool {
		return ToEnvelope(event).Metadata.Source == source
	}
}

// FilterBySources allows events emitted by any of the given sources.
func FilterBySources(sources ...string) FilterFunc {
	set := make(map[string]struct{}, len(sources))
	for _, s := range sources {
		set[s] = struct{}{}
	}
	return func(event any) bool {
		_, ok := set[ToEnvelope(event).Metadata.Source]
		return ok
	}
}

// FilterExcludeSource rejects events emitted by the given source.
// Useful for components that emit and subscribe on the same topic.
func FilterExcludeSource(source string) FilterFunc {
	return func(event any) bool {
		return ToEnvelope(event).Metadata.Source != source
	}
}

// FilterByTopic allows only events whose topic matches the pattern.
func FilterByTopic(pattern topic.Topic) FilterFunc {
	return func(event any) bool {
		return ToEnvelope(event).Topic.Matches(pattern)
	}
}

// FilterByTopicPrefix allows only events whose topic starts with the
// prefix on a segment boundary.
func FilterByTopicPrefix(prefix topic.Topic) FilterFunc {
	return func(event any) bool {
		return ToEnvelope(event).Topic.HasPrefix(prefix)
	}
}

// FilterByCorrelation allows only events in the given correlation chain.
func FilterByCorrelation(correlationID string) FilterFunc {
	return func(event any) bool {
		return ToEnvelope(event).Metadata.CorrelationID == correlationID
	}
}

// FilterByVersion allows only events with the given payload schema version.
func FilterByVersion(version int) FilterFunc {
	return func(event any) bool {
		return ToEnvelope(event).Metadata.Version == version
	}
}

// FilterPayload allows only events whose payload is of type T and
// satisfies the predicate. A nil predicate accepts every T payload.
func FilterPayload[T any](pred func(T) bool) FilterFunc {
	return func(event any) bool {
		payload, ok := ToEnvelope(event).Payload.(T)
		if !ok {
			return false
		}
		if pred == nil {
			return true
		}
		return pred(payload)
	}
}

// FilterAnd combines filters; all must pass.
func FilterAnd(filters ...FilterFunc) FilterFunc {
	return func(event any) bool {
		for _, f := range filters {
			if !f(event) {
				return false
			}
		}
		return true
	}
}

// FilterOr combines filters; at least one must pass.
func FilterOr(filters ...FilterFunc) FilterFunc {
	return func(event any) bool {
		for _, f := range filters {
			if f(event) {
				return true
			}
		}
		return false
	}
}

// FilterNot inverts a filter.
func FilterNot(f FilterFunc) FilterFunc {
	return func(event any) bool {
		return !f(event)
	}
}

// FilterAll accepts every event.
func FilterAll() FilterFunc {
	return func(any) bool { return true }
}

// FilterNone rejects every event.
func FilterNone() FilterFunc {
	return func(any) bool { return false }
}

// FilterJSON allows only events whose JSON payload has a value at the
// given gjson path satisfying the predicate. The payload must be
// []byte, json.RawMessage, or string containing JSON; anything else is
// rejected. Events whose payload lacks the path are rejected.
func FilterJSON(path string, pred func(gjson.Result) bool) FilterFunc {
	return func(event any) bool {
		raw, ok := payloadJSON(ToEnvelope(event).Payload)
		if !ok {
			return false
		}
		value := gjson.GetBytes(raw, path)
		if !value.Exists() {
			return false
		}
		return pred(value)
	}
}

// FilterJSONEquals allows only events whose JSON payload has the given
// value at the gjson path.
func FilterJSONEquals(path string, want any) FilterFunc {
	return FilterJSON(path, func(value gjson.Result) bool {
		switch w := want.(type) {
		case string:
			return value.String() == w
		case bool:
			if value.Type != gjson.True && value.Type != gjson.False {
				return false
			}
			return value.Bool() == w
		case float64:
			return value.Num == w
		case int:
			return value.Num == float64(w)
		case int64:
			return value.Int() == w
		default:
			return value.Value() == want
		}
	})
}

// payloadJSON extracts raw JSON bytes from a payload, if it carries any.
func payloadJSON(payload any) ([]byte, bool) {
	switch p := payload.(type) {
	case []byte:
		return p, true
	case json.RawMessage:
		return p, true
	case string:
		return []byte(p), true
	default:
		return nil, false
	}
}
