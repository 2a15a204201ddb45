package store

import "github.com/tickstore/tickstore/internal/errors"

// unstarted is the cursor value before the first Next call.
const unstarted = -1

// Iterator is a forward-only cursor over a half-open index range of one
// type's sequence, created by Store.Query.
//
// The iterator owns the type's lock for its entire lifetime. Close releases
// it exactly once and must be called on every exit path:
//
//	it, err := s.Query("a", 0, 100)
//	if err != nil {
//		return err
//	}
//	defer it.Close()
//	for it.Next() {
//		ev, _ := it.Current()
//		...
//	}
//
// An Iterator is for use by a single goroutine; the held per-type lock is
// what makes its view exclusive against other store operations.
type Iterator struct {
	store *Store
	entry *entry

	first  int
	end    int
	cursor int

	locked bool
	closed bool
}

// Next advances the iterator to the next event in range. The first call
// positions it on the first event. Next reports whether the iterator is now
// positioned on a valid event; once it has returned false it keeps
// returning false.
func (it *Iterator) Next() bool {
	if it.closed {
		return false
	}

	if it.cursor == unstarted {
		it.cursor = it.first
	} else if it.cursor < it.end {
		it.cursor++
	}
	return it.cursor < it.end
}

// Current returns the event at the cursor.
//
// Current is valid only while the iterator is positioned: it fails with
// errors.ErrInvalidCursor before the first Next and after exhaustion, and
// with errors.ErrIteratorClosed after Close.
func (it *Iterator) Current() (Event, error) {
	if it.closed {
		return Event{}, errors.ErrIteratorClosed
	}
	if it.cursor == unstarted || it.cursor >= it.end {
		return Event{}, errors.ErrInvalidCursor
	}
	return it.entry.events[it.cursor], nil
}

// Remove deletes the event at the cursor from the underlying sequence.
// The cursor retreats by one and the range end shrinks by one, so the next
// call to Next lands on the event that followed the removed one: removal
// while iterating never skips or repeats events.
//
// Remove has the same state requirements as Current. The deletion costs
// O(n) from shifting the greater elements left.
func (it *Iterator) Remove() error {
	if it.closed {
		return errors.ErrIteratorClosed
	}
	if it.cursor == unstarted || it.cursor >= it.end {
		return errors.ErrInvalidCursor
	}

	events := it.entry.events
	copy(events[it.cursor:], events[it.cursor+1:])
	events[len(events)-1] = Event{} // clear for GC
	it.entry.events = events[:len(events)-1]

	it.cursor--
	it.end--

	it.store.iterRemovals.Add(1)
	return nil
}

// Close releases the type's lock and drops the sequence reference. Closing
// an already closed iterator is a no-op; the lock is released exactly once.
func (it *Iterator) Close() {
	if it.closed {
		return
	}
	it.closed = true

	if it.locked {
		it.entry.mu.Unlock()
		it.locked = false
	}
	it.entry = nil
}
