package store

import "time"

// Event is the unit of storage: an immutable type label plus a timestamp.
//
// The timestamp is an opaque int64 to the engine; by convention callers use
// Unix milliseconds. Payload is carried untouched and never inspected; the
// store orders and queries by timestamp only.
type Event struct {
	// Type is the partition key. All ordering and locking is scoped to
	// one type.
	Type string

	// Timestamp orders the event within its type. Must be non-negative to
	// be accepted by the store.
	Timestamp int64

	// Payload is opaque caller data. May be nil.
	Payload []byte
}

// Less reports whether e orders strictly before other.
//
// Ordering is by timestamp only and strict: an event with an equal
// timestamp never orders before another, so a new duplicate always lands
// after the existing run on insertion and binary search stays well-defined
// over runs of duplicate timestamps (no comparison ever reports "equal",
// so no search may short-circuit on an exact match).
func (e Event) Less(other Event) bool {
	return e.Timestamp < other.Timestamp
}

// Time returns the timestamp as a time.Time, interpreting it as Unix
// milliseconds.
func (e Event) Time() time.Time {
	return time.UnixMilli(e.Timestamp)
}
