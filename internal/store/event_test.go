package store

import (
	"testing"
	"time"
)

func TestEventLess(t *testing.T) {
	a := Event{Type: "a", Timestamp: 1}
	b := Event{Type: "a", Timestamp: 2}

	if !a.Less(b) {
		t.Error("1 should order before 2")
	}
	if b.Less(a) {
		t.Error("2 should not order before 1")
	}

	// Strict ordering: an equal timestamp never orders before, so new
	// duplicates always insert after the existing run.
	c := Event{Type: "b", Timestamp: 1}
	if a.Less(c) || c.Less(a) {
		t.Error("equal timestamps must not order strictly before each other")
	}
}

func TestEventTime(t *testing.T) {
	ev := Event{Type: "a", Timestamp: 1700000000000}
	if got := ev.Time(); !got.Equal(time.UnixMilli(1700000000000)) {
		t.Errorf("Time() = %v", got)
	}
}
