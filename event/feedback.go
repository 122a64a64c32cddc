package event

import (
	"gonum.org/v1/gonum/spatial/r3"

	"github.com/lixenwraith/vi-saber/core"
)

// Feedback is one fire-and-forget notification from the core
type Feedback struct {
	Kind     Kind
	Block    core.BlockID
	Saber    core.SaberID
	Color    core.Color
	Position r3.Vec
	Reason   core.FailureReason // KindSliceFail only
	Plane    core.CutPlane      // KindSliceSuccess only
	Frame    int64
}

// Sink receives feedback; implementations must not call back into the core
type Sink interface {
	Notify(f Feedback)
}

// SinkFunc adapts a function to Sink
type SinkFunc func(f Feedback)

func (fn SinkFunc) Notify(f Feedback) { fn(f) }

// Discard drops every event
var Discard Sink = SinkFunc(func(Feedback) {})

// Fanout delivers each event to every sink in order
type Fanout []Sink

func (fo Fanout) Notify(f Feedback) {
	for _, s := range fo {
		s.Notify(f)
	}
}

// Recorder keeps every event it receives; single goroutine only
type Recorder struct {
	Events []Feedback
}

func (r *Recorder) Notify(f Feedback) {
	r.Events = append(r.Events, f)
}

// Kinds returns the recorded kinds in order
func (r *Recorder) Kinds() []Kind {
	out := make([]Kind, len(r.Events))
	for i, f := range r.Events {
		out[i] = f.Kind
	}
	return out
}

// Count returns how many events of kind were recorded
func (r *Recorder) Count(kind Kind) int {
	n := 0
	for _, f := range r.Events {
		if f.Kind == kind {
			n++
		}
	}
	return n
}

// Reset forgets recorded events
func (r *Recorder) Reset() {
	r.Events = r.Events[:0]
}
