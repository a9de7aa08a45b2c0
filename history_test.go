package crosstalk

import (
	"fmt"
	"testing"

	"github.com/emberfield/crosstalk/topic"
)

func envelopeFor(t topic.Topic, payload any) Envelope {
	return Envelope{
		Topic:   t,
		Payload: payload,
		Metadata: Metadata{
			ID:        newEventID(),
			Timestamp: timeNow(),
		},
	}
}

func TestHistory_AppendAndSnapshot(t *testing.T) {
	h := newHistory(10)

	if h.Len() != 0 {
		t.Errorf("new history length = %d, want 0", h.Len())
	}
	if h.Snapshot() != nil {
		t.Error("empty snapshot should be nil")
	}

	for i := 0; i < 3; i++ {
		h.Append(envelopeFor("toast:show", i))
	}

	snap := h.Snapshot()
	if len(snap) != 3 {
		t.Fatalf("snapshot length = %d, want 3", len(snap))
	}
	for i, env := range snap {
		if env.Payload != i {
			t.Errorf("snapshot[%d].Payload = %v, want %d", i, env.Payload, i)
		}
	}
}

func TestHistory_EvictsOldest(t *testing.T) {
	h := newHistory(4)

	for i := 0; i < 10; i++ {
		h.Append(envelopeFor("tree:refresh", i))
	}

	if h.Len() != 4 {
		t.Fatalf("length = %d, want 4", h.Len())
	}

	snap := h.Snapshot()
	for i, env := range snap {
		if env.Payload != i+6 {
			t.Errorf("snapshot[%d].Payload = %v, want %d", i, env.Payload, i+6)
		}
	}
}

func TestHistory_DefaultCapacity(t *testing.T) {
	for _, capacity := range []int{0, -5} {
		h := newHistory(capacity)
		if h.Cap() != DefaultHistorySize {
			t.Errorf("newHistory(%d).Cap() = %d, want %d", capacity, h.Cap(), DefaultHistorySize)
		}
	}

	h := newHistory(DefaultHistorySize)
	for i := 0; i < DefaultHistorySize+20; i++ {
		h.Append(envelopeFor("toast:show", i))
	}
	if h.Len() != DefaultHistorySize {
		t.Errorf("length = %d, want %d", h.Len(), DefaultHistorySize)
	}
}

func TestHistory_ForTopic(t *testing.T) {
	h := newHistory(10)

	for i := 0; i < 6; i++ {
		h.Append(envelopeFor(topic.Topic(fmt.Sprintf("panel:%d", i%2)), i))
	}

	got := h.ForTopic("panel:0")
	if len(got) != 3 {
		t.Fatalf("ForTopic length = %d, want 3", len(got))
	}
	for i, env := range got {
		if env.Payload != i*2 {
			t.Errorf("ForTopic[%d].Payload = %v, want %d", i, env.Payload, i*2)
		}
	}

	if got := h.ForTopic("panel:collapse"); got != nil {
		t.Errorf("ForTopic(unmatched) = %v, want nil", got)
	}
}

func TestHistory_Clear(t *testing.T) {
	h := newHistory(5)
	h.Append(envelopeFor("toast:show", "a"))
	h.Append(envelopeFor("toast:show", "b"))

	h.Clear()

	if h.Len() != 0 {
		t.Errorf("length after Clear = %d, want 0", h.Len())
	}

	// Buffer is reusable after clearing.
	h.Append(envelopeFor("toast:show", "c"))
	snap := h.Snapshot()
	if len(snap) != 1 || snap[0].Payload != "c" {
		t.Errorf("snapshot after clear+append = %v", snap)
	}
}

func TestHistory_SnapshotIsCopy(t *testing.T) {
	h := newHistory(5)
	h.Append(envelopeFor("toast:show", "a"))

	snap := h.Snapshot()
	snap[0].Payload = "mutated"

	if h.Snapshot()[0].Payload != "a" {
		t.Error("mutating a snapshot leaked into the buffer")
	}
}
