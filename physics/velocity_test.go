package physics

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/spatial/r3"

	"github.com/lixenwraith/vi-saber/vmath"
)

var epoch = time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)

func at(ms int) time.Time {
	return epoch.Add(time.Duration(ms) * time.Millisecond)
}

func TestTrackers_ZeroBeforeTwoSamples(t *testing.T) {
	for _, mode := range []TrackerMode{TrackerWindow, TrackerInterval} {
		t.Run(mode.String(), func(t *testing.T) {
			tr := NewTracker(mode, 5, 20*time.Millisecond)
			assert.Equal(t, r3.Vec{}, tr.Velocity())

			tr.RecordSample(r3.Vec{X: 3, Y: 4}, at(0))
			assert.Equal(t, r3.Vec{}, tr.Velocity())
			assert.Equal(t, 1, tr.Len())
		})
	}
}

func TestTrackers_ZeroUntilIntervalSpanned(t *testing.T) {
	for _, mode := range []TrackerMode{TrackerWindow, TrackerInterval} {
		t.Run(mode.String(), func(t *testing.T) {
			tr := NewTracker(mode, 5, 20*time.Millisecond)
			tr.RecordSample(r3.Vec{}, at(0))
			tr.RecordSample(r3.Vec{Y: 0.05}, at(10))
			assert.Equal(t, r3.Vec{}, tr.Velocity(), "10ms apart is below the check interval")

			tr.RecordSample(r3.Vec{Y: 0.1}, at(20))
			v := tr.Velocity()
			assert.InDelta(t, 5.0, v.Y, 1e-9)
			assert.InDelta(t, 0.0, v.X, 1e-9)
		})
	}
}

func TestWindowTracker_PrimesAtHighSampleRate(t *testing.T) {
	tr := NewWindowTracker(5, 20*time.Millisecond)
	// 1 kHz samples of a 5 m/s swing along +Y; the ring never spans 20ms
	for ms := 0; ms < 20; ms++ {
		tr.RecordSample(r3.Vec{Y: 0.005 * float64(ms)}, at(ms))
		require.Equal(t, r3.Vec{}, tr.Velocity(), "before 20ms at sample %d", ms)
	}
	for ms := 20; ms <= 200; ms++ {
		tr.RecordSample(r3.Vec{Y: 0.005 * float64(ms)}, at(ms))
	}

	v := tr.Velocity()
	assert.InDelta(t, 5.0, v.Y, 1e-6)
	assert.InDelta(t, 5.0, Speed(tr), 1e-6)

	tr.Reset()
	tr.RecordSample(r3.Vec{}, at(300))
	tr.RecordSample(r3.Vec{Y: 0.005}, at(301))
	assert.Equal(t, r3.Vec{}, tr.Velocity(), "reset restarts priming")
}

func TestWindowTracker_AveragesFiniteDifferences(t *testing.T) {
	tr := NewWindowTracker(5, 20*time.Millisecond)
	// Δ per 10ms: 0.01, 0.03, 0.05 → 1, 3, 5 m/s → mean 3
	tr.RecordSample(r3.Vec{X: 0}, at(0))
	tr.RecordSample(r3.Vec{X: 0.01}, at(10))
	tr.RecordSample(r3.Vec{X: 0.04}, at(20))
	tr.RecordSample(r3.Vec{X: 0.09}, at(30))

	v := tr.Velocity()
	assert.InDelta(t, 3.0, v.X, 1e-9)
	assert.InDelta(t, 3.0, Speed(tr), 1e-9)
}

func TestWindowTracker_EvictsOldestFirst(t *testing.T) {
	tr := NewWindowTracker(3, 0)
	for i := 0; i < 5; i++ {
		tr.RecordSample(r3.Vec{X: float64(i)}, at(i*10))
	}

	require.Equal(t, 3, tr.Len())
	samples := tr.Samples()
	require.Len(t, samples, 3)
	assert.Equal(t, 2.0, samples[0].Position.X)
	assert.Equal(t, 4.0, samples[2].Position.X)
	assert.LessOrEqual(t, tr.Len(), tr.Capacity())
}

func TestWindowTracker_SkipsNonIncreasingTimestamps(t *testing.T) {
	tr := NewWindowTracker(5, 0)
	tr.RecordSample(r3.Vec{X: 0}, at(0))
	tr.RecordSample(r3.Vec{X: 1}, at(0))
	assert.Equal(t, r3.Vec{}, tr.Velocity(), "zero Δt contributes nothing")

	tr.RecordSample(r3.Vec{X: 2}, at(100))
	v := tr.Velocity()
	assert.InDelta(t, 10.0, v.X, 1e-9)
	assert.False(t, vmath.IsZero(v, vmath.Epsilon))
}

func TestWindowTracker_Reset(t *testing.T) {
	tr := NewWindowTracker(5, 20*time.Millisecond)
	tr.RecordSample(r3.Vec{}, at(0))
	tr.RecordSample(r3.Vec{Y: 1}, at(50))
	require.NotEqual(t, r3.Vec{}, tr.Velocity())

	tr.Reset()
	assert.Equal(t, 0, tr.Len())
	assert.Equal(t, r3.Vec{}, tr.Velocity())

	tr.RecordSample(r3.Vec{}, at(100))
	tr.RecordSample(r3.Vec{Y: 1}, at(105))
	assert.Equal(t, r3.Vec{}, tr.Velocity(), "priming restarts after reset")
}

func TestIntervalTracker_HoldsUntilNextInterval(t *testing.T) {
	tr := NewIntervalTracker(20 * time.Millisecond)
	tr.RecordSample(r3.Vec{}, at(0))
	tr.RecordSample(r3.Vec{X: 0.1}, at(20))
	assert.InDelta(t, 5.0, tr.Velocity().X, 1e-9)

	// within the interval: estimate unchanged
	tr.RecordSample(r3.Vec{X: 5}, at(30))
	assert.InDelta(t, 5.0, tr.Velocity().X, 1e-9)

	tr.RecordSample(r3.Vec{X: 0.1}, at(40))
	assert.InDelta(t, 0.0, tr.Velocity().X, 1e-9)

	tr.Reset()
	assert.Equal(t, r3.Vec{}, tr.Velocity())
	assert.Equal(t, 0, tr.Len())
}

func TestParseTrackerMode(t *testing.T) {
	m, err := ParseTrackerMode("Interval")
	require.NoError(t, err)
	assert.Equal(t, TrackerInterval, m)

	m, err = ParseTrackerMode("")
	require.NoError(t, err)
	assert.Equal(t, TrackerWindow, m)

	_, err = ParseTrackerMode("kalman")
	assert.Error(t, err)
}
