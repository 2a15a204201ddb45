// Package stats tracks operation latency distributions.
//
// A Recorder keeps one DDSketch per operation name, so percentiles stay
// cheap to maintain at ingest rates while only paying the sketch's relative
// accuracy (1% by default) when read back.
package stats

import (
	"sort"
	"sync"
	"time"

	"github.com/DataDog/sketches-go/ddsketch"
)

// DefaultAccuracy is the default relative accuracy for percentiles.
const DefaultAccuracy = 0.01

// Recorder collects latency observations per operation.
//
// Recorder is safe for concurrent use. Sketches are created lazily on the
// first observation of an operation.
type Recorder struct {
	mu       sync.Mutex
	accuracy float64
	ops      map[string]*opSketch
}

type opSketch struct {
	sketch *ddsketch.DDSketch
	count  int64
	sum    time.Duration
	min    time.Duration
	max    time.Duration
}

// OpStats is a read-only summary for one operation.
type OpStats struct {
	Op    string
	Count int64
	Min   time.Duration
	Max   time.Duration
	Avg   time.Duration
	P50   time.Duration
	P95   time.Duration
	P99   time.Duration
}

// NewRecorder creates a Recorder with the given relative accuracy.
// Accuracy values outside (0, 1) fall back to DefaultAccuracy.
func NewRecorder(accuracy float64) *Recorder {
	if accuracy <= 0 || accuracy >= 1 {
		accuracy = DefaultAccuracy
	}
	return &Recorder{
		accuracy: accuracy,
		ops:      make(map[string]*opSketch),
	}
}

// Observe records one latency sample for op.
func (r *Recorder) Observe(op string, d time.Duration) {
	if d < 0 {
		d = 0
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	s, ok := r.ops[op]
	if !ok {
		sketch, err := ddsketch.NewDefaultDDSketch(r.accuracy)
		if err != nil {
			// Accuracy was validated in NewRecorder; a failure here
			// means the sketch library itself is broken.
			return
		}
		s = &opSketch{sketch: sketch, min: d, max: d}
		r.ops[op] = s
	}

	if err := s.sketch.Add(float64(d)); err != nil {
		return
	}

	s.count++
	s.sum += d
	if d < s.min {
		s.min = d
	}
	if d > s.max {
		s.max = d
	}
}

// Snapshot returns per-operation summaries, ordered by operation name.
// Percentiles reflect the sketch's relative accuracy; counts are exact.
func (r *Recorder) Snapshot() []OpStats {
	r.mu.Lock()
	defer r.mu.Unlock()

	out := make([]OpStats, 0, len(r.ops))
	for op, s := range r.ops {
		if s.count == 0 {
			continue
		}

		stats := OpStats{
			Op:    op,
			Count: s.count,
			Min:   s.min,
			Max:   s.max,
			Avg:   s.sum / time.Duration(s.count),
		}
		stats.P50 = quantile(s.sketch, 0.50)
		stats.P95 = quantile(s.sketch, 0.95)
		stats.P99 = quantile(s.sketch, 0.99)

		out = append(out, stats)
	}

	sort.Slice(out, func(i, j int) bool { return out[i].Op < out[j].Op })
	return out
}

// Reset drops all recorded observations.
func (r *Recorder) Reset() {
	r.mu.Lock()
	r.ops = make(map[string]*opSketch)
	r.mu.Unlock()
}

// quantile reads one quantile off a sketch; an empty sketch reports zero.
func quantile(sketch *ddsketch.DDSketch, q float64) time.Duration {
	v, err := sketch.GetValueAtQuantile(q)
	if err != nil {
		return 0
	}
	return time.Duration(v)
}
