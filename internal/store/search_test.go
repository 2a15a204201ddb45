package store

import "testing"

func eventsWithTimestamps(ts ...int64) []Event {
	events := make([]Event, len(ts))
	for i, t := range ts {
		events[i] = Event{Type: "a", Timestamp: t}
	}
	return events
}

func TestSearchRange(t *testing.T) {
	cases := []struct {
		name       string
		timestamps []int64
		start, end int64
		wantLow    int
		wantHigh   int
	}{
		{"empty sequence", nil, 0, 10, 0, 0},
		{"single in range", []int64{4}, 4, 5, 0, 1},
		{"single before range", []int64{4}, 5, 6, 1, 1},
		{"single after range", []int64{4}, 1, 3, 0, 0},
		{"full cover", []int64{1, 4, 5}, -100, 100, 0, 3},
		{"inner range", []int64{1, 2, 2, 3, 4}, 1, 4, 0, 4},
		{"duplicates at low bound", []int64{2, 2, 2, 5}, 2, 5, 0, 3},
		{"duplicates at high bound", []int64{1, 5, 5, 5}, 1, 5, 0, 1},
		{"all duplicates in range", []int64{3, 3, 3, 3}, 3, 4, 0, 4},
		{"all duplicates out of range", []int64{3, 3, 3, 3}, 4, 9, 4, 4},
		{"bounds between elements", []int64{1, 3, 5, 7, 9}, 2, 8, 1, 4},
		{"start equals first", []int64{1, 3, 5}, 1, 5, 0, 2},
		{"end past last", []int64{1, 3, 5}, 3, 100, 1, 3},
		{"long run in middle", []int64{1, 3, 4, 4, 4, 5, 7, 8, 8, 9, 13, 15, 17, 20, 70}, 3, 9, 1, 9},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			events := eventsWithTimestamps(tc.timestamps...)
			low, high := searchRange(events, tc.start, tc.end)
			if low != tc.wantLow || high != tc.wantHigh {
				t.Errorf("searchRange(%v, %d, %d) = [%d, %d), want [%d, %d)",
					tc.timestamps, tc.start, tc.end, low, high, tc.wantLow, tc.wantHigh)
			}
		})
	}
}

func TestInsertIndex(t *testing.T) {
	cases := []struct {
		name       string
		timestamps []int64
		ts         int64
		want       int
	}{
		{"empty", nil, 5, 0},
		{"before all", []int64{2, 4, 6}, 1, 0},
		{"after all", []int64{2, 4, 6}, 7, 3},
		{"between", []int64{2, 4, 6}, 5, 2},
		{"equal goes after run", []int64{2, 4, 4, 6}, 4, 3},
		{"equal to first", []int64{2, 4, 6}, 2, 1},
		{"equal to last", []int64{2, 4, 6}, 6, 3},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			events := eventsWithTimestamps(tc.timestamps...)
			if got := insertIndex(events, tc.ts); got != tc.want {
				t.Errorf("insertIndex(%v, %d) = %d, want %d", tc.timestamps, tc.ts, got, tc.want)
			}
		})
	}
}
