package physics

import (
	"fmt"
	"strings"
	"time"

	"gonum.org/v1/gonum/spatial/r3"
)

// Sample is one tracked saber position
type Sample struct {
	Position r3.Vec
	Time     time.Time
}

// Tracker estimates saber velocity from position samples
// Implementations return exactly the zero vector until two samples at least
// the check interval apart have been seen
type Tracker interface {
	RecordSample(position r3.Vec, at time.Time)
	Velocity() r3.Vec
	Reset()
	Len() int
}

// TrackerMode selects a Tracker strategy
type TrackerMode uint8

const (
	// TrackerWindow averages finite differences over a bounded sample ring
	TrackerWindow TrackerMode = iota
	// TrackerInterval recomputes a single difference once per check interval
	TrackerInterval
)

func (m TrackerMode) String() string {
	if m == TrackerInterval {
		return "interval"
	}
	return "window"
}

// ParseTrackerMode accepts "window" and "interval"
func ParseTrackerMode(s string) (TrackerMode, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "window", "":
		return TrackerWindow, nil
	case "interval":
		return TrackerInterval, nil
	}
	return 0, fmt.Errorf("unknown tracker mode %q", s)
}

// NewTracker builds the tracker for mode
func NewTracker(mode TrackerMode, capacity int, interval time.Duration) Tracker {
	if mode == TrackerInterval {
		return NewIntervalTracker(interval)
	}
	return NewWindowTracker(capacity, interval)
}

// Speed returns the magnitude of the tracker's current velocity
func Speed(t Tracker) float64 {
	return r3.Norm(t.Velocity())
}

// WindowTracker keeps a ring of the most recent samples, oldest evicted first
type WindowTracker struct {
	samples []Sample
	head    int // index of oldest sample
	count   int

	minSpan time.Duration
	firstAt time.Time // first sample since the last reset
	primed  bool      // samples have spanned minSpan since firstAt
}

// NewWindowTracker creates a window tracker; capacity below 2 is raised to 2
func NewWindowTracker(capacity int, minSpan time.Duration) *WindowTracker {
	if capacity < 2 {
		capacity = 2
	}
	return &WindowTracker{
		samples: make([]Sample, capacity),
		minSpan: minSpan,
	}
}

// RecordSample appends a sample, overwriting the oldest when full
func (t *WindowTracker) RecordSample(position r3.Vec, at time.Time) {
	capacity := len(t.samples)
	if t.count < capacity {
		t.samples[(t.head+t.count)%capacity] = Sample{Position: position, Time: at}
		t.count++
	} else {
		t.samples[t.head] = Sample{Position: position, Time: at}
		t.head = (t.head + 1) % capacity
	}

	// primed by the span since the first sample, not the retained window
	if t.count == 1 {
		t.firstAt = at
	}
	if !t.primed && t.count >= 2 && at.Sub(t.firstAt) >= t.minSpan {
		t.primed = true
	}
}

// Velocity averages the consecutive-sample velocities across the window
// Pairs with non-increasing timestamps are skipped
func (t *WindowTracker) Velocity() r3.Vec {
	if t.count < 2 || !t.primed {
		return r3.Vec{}
	}

	var sum r3.Vec
	n := 0
	prev := t.at(0)
	for i := 1; i < t.count; i++ {
		curr := t.at(i)
		dt := curr.Time.Sub(prev.Time).Seconds()
		if dt > 0 {
			sum = r3.Add(sum, r3.Scale(1/dt, r3.Sub(curr.Position, prev.Position)))
			n++
		}
		prev = curr
	}

	if n == 0 {
		return r3.Vec{}
	}
	return r3.Scale(1/float64(n), sum)
}

// Reset drops all samples
func (t *WindowTracker) Reset() {
	t.head, t.count = 0, 0
	t.firstAt = time.Time{}
	t.primed = false
}

// Len returns the number of retained samples
func (t *WindowTracker) Len() int {
	return t.count
}

// Capacity returns the ring size
func (t *WindowTracker) Capacity() int {
	return len(t.samples)
}

// Samples returns retained samples oldest first
func (t *WindowTracker) Samples() []Sample {
	out := make([]Sample, t.count)
	for i := range out {
		out[i] = t.at(i)
	}
	return out
}

func (t *WindowTracker) at(i int) Sample {
	return t.samples[(t.head+i)%len(t.samples)]
}

// IntervalTracker is the coarse strategy: one difference per check interval
type IntervalTracker struct {
	interval time.Duration

	previous  r3.Vec
	lastCheck time.Time
	velocity  r3.Vec
	started   bool
	samples   int
}

// NewIntervalTracker creates an interval tracker
func NewIntervalTracker(interval time.Duration) *IntervalTracker {
	return &IntervalTracker{interval: interval}
}

// RecordSample updates the velocity once at least interval has passed since the last check
func (t *IntervalTracker) RecordSample(position r3.Vec, at time.Time) {
	t.samples++
	if !t.started {
		t.previous = position
		t.lastCheck = at
		t.started = true
		return
	}

	elapsed := at.Sub(t.lastCheck)
	if elapsed < t.interval || elapsed <= 0 {
		return
	}

	t.velocity = r3.Scale(1/elapsed.Seconds(), r3.Sub(position, t.previous))
	t.previous = position
	t.lastCheck = at
}

// Velocity returns the last computed velocity
func (t *IntervalTracker) Velocity() r3.Vec {
	return t.velocity
}

// Reset forgets the reference position and velocity
func (t *IntervalTracker) Reset() {
	*t = IntervalTracker{interval: t.interval}
}

// Len returns how many samples have been recorded since the last reset
func (t *IntervalTracker) Len() int {
	return t.samples
}
