package status

import "sync/atomic"

// HUD metric names
const (
	KeySliced        = "blocks.sliced"
	KeyMissed        = "blocks.missed"
	KeyFallback      = "blocks.fallback"
	KeyFailedSwings  = "swings.failed"
	KeyLastReason    = "swings.last_reason"
	KeyPeakSpeed     = "swings.peak_speed"
	KeyActiveBlocks  = "blocks.active"
	KeyPaused        = "session.paused"
	KeyActiveSaber   = "session.saber"
	KeySaberSpeed    = "session.saber_speed"
	KeyFrames        = "session.frames"
	KeyAudioDisabled = "audio.disabled"
)

// Registry is the HUD metrics facade
// Writers cache pointers once; the render loop reads the atomics
type Registry struct {
	Bools   *MetricMap[atomic.Bool]
	Ints    *MetricMap[atomic.Int64]
	Floats  *MetricMap[AtomicFloat]
	Strings *MetricMap[AtomicString]
}

func NewRegistry() *Registry {
	return &Registry{
		Bools:   NewMetricMap[atomic.Bool](),
		Ints:    NewMetricMap[atomic.Int64](),
		Floats:  NewMetricMap[AtomicFloat](),
		Strings: NewMetricMap[AtomicString](),
	}
}

// TotalCount returns total metrics across all types
func (r *Registry) TotalCount() int {
	return r.Bools.Count() + r.Ints.Count() + r.Floats.Count() + r.Strings.Count()
}
