// Package store implements an in-memory, type-partitioned store of
// timestamped events.
//
// Each event type owns one sequence kept sorted ascending by timestamp and
// one mutex. Range queries locate both boundaries of a timestamp range with
// a single combined binary search and hand back an iterator that keeps the
// type's lock until closed, so the caller can traverse and delete without
// the sequence shifting underneath it.
//
// The sorted-slice layout trades O(n) insertion and removal (shifting) for
// O(log n) range lookup and compact memory. An order-maintaining tree would
// invert that trade-off; it is a tunable, not a correctness requirement.
package store

import (
	"sort"
	"sync"
	"sync/atomic"

	"github.com/tickstore/tickstore/internal/errors"
)

// entry pairs one type's sorted sequence with its lock. Entries are created
// lazily on first insert and dropped wholesale by RemoveAll. An iterator
// holds a pointer to its entry, so a dropped entry stays alive (detached
// from the store) while the iterator still references it.
type entry struct {
	mu     sync.Mutex
	events []Event
}

// Store is a type-partitioned in-memory event store.
//
// Store is safe for concurrent use. Mutual exclusion is per event type:
// operations on disjoint types never contend, operations on one type
// serialize on that type's lock. A query transfers the lock to its
// iterator; the type stays exclusively held until the iterator is closed.
type Store struct {
	mu    sync.RWMutex
	types map[string]*entry

	// Statistics
	inserts      atomic.Int64
	rejected     atomic.Int64
	queries      atomic.Int64
	removeAlls   atomic.Int64
	iterRemovals atomic.Int64
}

// Stats is a point-in-time snapshot of store counters.
type Stats struct {
	Inserts      int64
	Rejected     int64
	Queries      int64
	RemoveAlls   int64
	IterRemovals int64
}

// New creates an empty Store.
func New() *Store {
	return &Store{
		types: make(map[string]*entry),
	}
}

// Insert stores an event in its type's sequence, keeping the sequence
// sorted ascending by timestamp. Events with equal timestamps insert after
// the existing run, so duplicates stay contiguous in arrival order.
//
// Events with a negative timestamp are rejected with
// errors.ErrNegativeTimestamp and cause no mutation.
//
// Finding the insertion index costs O(log n); the insertion itself costs
// O(n) from shifting the greater elements right.
func (s *Store) Insert(ev Event) error {
	if ev.Timestamp < 0 {
		s.rejected.Add(1)
		return errors.ErrNegativeTimestamp
	}

	e := s.entry(ev.Type)

	e.mu.Lock()
	idx := insertIndex(e.events, ev.Timestamp)
	e.events = append(e.events, Event{})
	copy(e.events[idx+1:], e.events[idx:])
	e.events[idx] = ev
	e.mu.Unlock()

	s.inserts.Add(1)
	return nil
}

// entry returns the (sequence, lock) pair for typ, creating it if absent.
//
// Creation runs under the store-wide lock, independent of the per-type
// lock: two threads first-touching the same type must not each create a
// distinct lock for it, or mutual exclusion on that type is lost. The read
// path stays on the shared lock once the entry exists.
func (s *Store) entry(typ string) *entry {
	s.mu.RLock()
	e := s.types[typ]
	s.mu.RUnlock()
	if e != nil {
		return e
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if e = s.types[typ]; e == nil {
		e = &entry{}
		s.types[typ] = e
	}
	return e
}

// lookup returns the entry for typ, or nil if the type was never inserted.
func (s *Store) lookup(typ string) *entry {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.types[typ]
}

// RemoveAll drops the sequence and lock for typ from the store. A type that
// was never inserted is a no-op; RemoveAll never fails.
//
// RemoveAll does not synchronize with in-flight operations on typ. An open
// iterator keeps its own reference to the detached sequence and lock and
// continues to operate on them; it simply no longer observes, nor is
// observed by, the store. Callers must not rely on RemoveAll interrupting
// an in-progress iteration.
func (s *Store) RemoveAll(typ string) {
	s.mu.Lock()
	delete(s.types, typ)
	s.mu.Unlock()

	s.removeAlls.Add(1)
}

// Query returns an iterator over the events of typ whose timestamp lies in
// the half-open range [start, end), in ascending order.
//
// Query fails with errors.ErrInvalidRange when end <= start, before taking
// any lock. A type that was never inserted is treated as an empty sequence:
// the returned iterator is already exhausted and holds no lock.
//
// Otherwise Query blocks until the type's lock is available, computes the
// boundary index range in O(log n), and returns an iterator that owns the
// still-held lock. The lock is released only by the iterator's Close, which
// must run on every exit path; until then all other operations on typ
// block. Insert throughput on a type under active scan is deliberately
// sacrificed for iteration consistency.
func (s *Store) Query(typ string, start, end int64) (*Iterator, error) {
	if start >= end {
		return nil, errors.ErrInvalidRange
	}

	s.queries.Add(1)

	e := s.lookup(typ)
	if e == nil {
		return &Iterator{store: s, cursor: unstarted}, nil
	}

	e.mu.Lock()
	low, high := searchRange(e.events, start, end)

	return &Iterator{
		store:  s,
		entry:  e,
		first:  low,
		end:    high,
		cursor: unstarted,
		locked: true,
	}, nil
}

// Types returns the labels of all types currently in the store, sorted.
func (s *Store) Types() []string {
	s.mu.RLock()
	names := make([]string, 0, len(s.types))
	for typ := range s.types {
		names = append(names, typ)
	}
	s.mu.RUnlock()

	sort.Strings(names)
	return names
}

// Len returns the number of events stored for typ, or 0 if the type is
// absent. Len blocks while an iterator holds the type's lock.
func (s *Store) Len(typ string) int {
	e := s.lookup(typ)
	if e == nil {
		return 0
	}

	e.mu.Lock()
	n := len(e.events)
	e.mu.Unlock()
	return n
}

// Stats returns a snapshot of the store counters.
func (s *Store) Stats() Stats {
	return Stats{
		Inserts:      s.inserts.Load(),
		Rejected:     s.rejected.Load(),
		Queries:      s.queries.Load(),
		RemoveAlls:   s.removeAlls.Load(),
		IterRemovals: s.iterRemovals.Load(),
	}
}
