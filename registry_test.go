package crosstalk

import (
	"context"
	"fmt"
	"testing"

	"github.com/emberfield/crosstalk/topic"
)

func nopHandler() Handler {
	return HandlerFunc(func(ctx context.Context, event any) error { return nil })
}

func TestRegistry_AddAndMatch(t *testing.T) {
	r := NewRegistry()

	exact := newSubscription("s1", "toast:show", nopHandler())
	wild := newSubscription("s2", "toast:*", nopHandler())
	other := newSubscription("s3", "panel:collapse", nopHandler())

	r.Add(exact)
	r.Add(wild)
	r.Add(other)

	gotExact, gotWild := r.Match("toast:show")
	if len(gotExact) != 1 || gotExact[0].ID() != "s1" {
		t.Errorf("exact matches = %v, want [s1]", ids(gotExact))
	}
	if len(gotWild) != 1 || gotWild[0].ID() != "s2" {
		t.Errorf("wildcard matches = %v, want [s2]", ids(gotWild))
	}

	if r.Count() != 3 {
		t.Errorf("Count() = %d, want 3", r.Count())
	}
}

func ids(subs []*subscription) []string {
	out := make([]string, len(subs))
	for i, s := range subs {
		out[i] = s.ID()
	}
	return out
}

func TestRegistry_MatchAllPattern(t *testing.T) {
	r := NewRegistry()
	r.Add(newSubscription("all", "*", nopHandler()))

	for _, tc := range []topic.Topic{"toast:show", "tree:node:selected", "logout"} {
		_, wild := r.Match(tc)
		if len(wild) != 1 {
			t.Errorf("match-all pattern missed topic %s", tc)
		}
	}
}

func TestRegistry_Remove(t *testing.T) {
	r := NewRegistry()
	sub := newSubscription("s1", "toast:show", nopHandler())
	r.Add(sub)

	if !r.Remove("s1") {
		t.Error("Remove() = false for existing subscription")
	}
	if r.Remove("s1") {
		t.Error("Remove() = true for already-removed subscription")
	}
	if r.Count() != 0 {
		t.Errorf("Count() = %d after removal, want 0", r.Count())
	}

	exact, _ := r.Match("toast:show")
	if len(exact) != 0 {
		t.Error("removed subscription still matched")
	}
}

func TestRegistry_RemoveWildcardCleansMatcher(t *testing.T) {
	r := NewRegistry()
	r.Add(newSubscription("w1", "tree:*", nopHandler()))

	r.Remove("w1")

	_, wild := r.Match("tree:refresh")
	if len(wild) != 0 {
		t.Error("removed wildcard pattern still matched")
	}
}

func TestRegistry_PriorityOrdering(t *testing.T) {
	r := NewRegistry()

	low := newSubscription("low", "form:submitted", nopHandler(), WithPriority(PriorityLow))
	crit := newSubscription("crit", "form:submitted", nopHandler(), WithPriority(PriorityCritical))
	norm := newSubscription("norm", "form:submitted", nopHandler())

	r.Add(low)
	r.Add(crit)
	r.Add(norm)

	exact, _ := r.Match("form:submitted")
	want := []string{"crit", "norm", "low"}
	got := ids(exact)
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("order = %v, want %v", got, want)
		}
	}
}

func TestRegistry_WildcardOrderingAcrossPatterns(t *testing.T) {
	r := NewRegistry()

	// Two wildcard patterns both matching the same topic; ordering is by
	// priority then registration across patterns, not by pattern.
	first := newSubscription("first", "tree:**", nopHandler())
	second := newSubscription("second", "tree:*", nopHandler())
	urgent := newSubscription("urgent", "tree:*", nopHandler(), WithPriority(PriorityHigh))

	r.Add(first)
	r.Add(second)
	r.Add(urgent)

	_, wild := r.Match("tree:refresh")
	want := []string{"urgent", "first", "second"}
	got := ids(wild)
	if len(got) != len(want) {
		t.Fatalf("wildcard matches = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("order = %v, want %v", got, want)
		}
	}
}

func TestRegistry_MatchActive(t *testing.T) {
	r := NewRegistry()

	active := newSubscription("active", "toast:show", nopHandler())
	paused := newSubscription("paused", "toast:show", nopHandler())
	r.Add(active)
	r.Add(paused)
	paused.Pause()

	exact, _ := r.MatchActive("toast:show")
	if len(exact) != 1 || exact[0].ID() != "active" {
		t.Errorf("MatchActive = %v, want [active]", ids(exact))
	}

	if r.CountActive() != 1 {
		t.Errorf("CountActive() = %d, want 1", r.CountActive())
	}
}

func TestRegistry_CountByTopic(t *testing.T) {
	r := NewRegistry()
	r.Add(newSubscription("s1", "toast:show", nopHandler()))
	r.Add(newSubscription("s2", "toast:show", nopHandler()))
	r.Add(newSubscription("w1", "toast:*", nopHandler()))

	if got := r.CountByTopic("toast:show"); got != 2 {
		t.Errorf("CountByTopic(toast:show) = %d, want 2", got)
	}
	// Wildcard patterns never count as exact registrations.
	if got := r.CountByTopic("toast:*"); got != 0 {
		t.Errorf("CountByTopic(toast:*) = %d, want 0", got)
	}
	if got := r.CountByTopic("panel:collapse"); got != 0 {
		t.Errorf("CountByTopic(panel:collapse) = %d, want 0", got)
	}
}

func TestRegistry_Clear(t *testing.T) {
	r := NewRegistry()
	sub := newSubscription("s1", "toast:show", nopHandler())
	r.Add(sub)

	r.Clear()

	if r.Count() != 0 {
		t.Errorf("Count() after Clear = %d, want 0", r.Count())
	}
	if !sub.IsCancelled() {
		t.Error("Clear did not cancel the subscription handle")
	}
}

func TestRegistry_RemoveCancelled(t *testing.T) {
	r := NewRegistry()
	for i := 0; i < 4; i++ {
		r.Add(newSubscription(fmt.Sprintf("s%d", i), "toast:show", nopHandler()))
	}

	sub, _ := r.Get("s1")
	sub.Cancel()
	sub, _ = r.Get("s3")
	sub.Cancel()

	if removed := r.RemoveCancelled(); removed != 2 {
		t.Errorf("RemoveCancelled() = %d, want 2", removed)
	}
	if r.Count() != 2 {
		t.Errorf("Count() = %d, want 2", r.Count())
	}
}
