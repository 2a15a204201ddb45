package store

// searchRange locates the half-open index range [low, high) of events whose
// timestamp satisfies start <= ts < end, given a slice sorted ascending by
// timestamp.
//
// low is the smallest index with events[low].Timestamp >= start (or
// len(events) if none); high is the smallest index with
// events[high].Timestamp >= end (or len(events) if none).
//
// Both bounds are found in a single combined pass: the first binary search
// locates low while narrowing [nextLow, nextHigh], the tightest sub-range
// known to contain high, by comparing end against every midpoint the first
// search visits. The second search then runs confined to that sub-range,
// so the combined cost stays one effective O(log n) pass instead of two
// independent ones.
//
// Neither loop short-circuits on an exact match. That is what keeps the
// result correct over runs of duplicate timestamps: the searches converge
// on the first and one-past-last matching positions, not on an arbitrary
// one in the middle of a run.
func searchRange(events []Event, start, end int64) (int, int) {
	nextLow := 0
	nextHigh := len(events) - 1

	low, high := 0, len(events)-1
	for low <= high {
		// Overflow-safe midpoint.
		mid := int(uint(low+high) >> 1)
		midVal := events[mid].Timestamp

		if start <= midVal {
			high = mid - 1
			if end <= midVal {
				nextHigh = high
			}
		} else {
			low = mid + 1
			if end > midVal {
				nextLow = low
			}
		}
	}

	if nextLow < low {
		nextLow = low
	}
	first := low

	for nextLow <= nextHigh {
		mid := int(uint(nextLow+nextHigh) >> 1)
		if end <= events[mid].Timestamp {
			nextHigh = mid - 1
		} else {
			nextLow = mid + 1
		}
	}

	return first, nextLow
}

// insertIndex returns the position at which an event with the given
// timestamp should be inserted to keep the slice sorted. Duplicates insert
// after their run, consistent with the strict never-equal ordering.
func insertIndex(events []Event, ts int64) int {
	low, high := 0, len(events)-1
	for low <= high {
		mid := int(uint(low+high) >> 1)
		if ts < events[mid].Timestamp {
			high = mid - 1
		} else {
			low = mid + 1
		}
	}
	return low
}
