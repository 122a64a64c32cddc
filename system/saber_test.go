package system

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/spatial/r3"

	"github.com/lixenwraith/vi-saber/core"
	"github.com/lixenwraith/vi-saber/physics"
	"github.com/lixenwraith/vi-saber/status"
)

func TestSaberSystem_DefaultsAndSnapshots(t *testing.T) {
	reg := status.NewRegistry()
	s := NewSaberSystem(physics.TrackerWindow, 5, 20*time.Millisecond, reg)

	left, err := s.Snapshot(core.SaberLeft)
	require.NoError(t, err)
	assert.Equal(t, core.ColorRed, left.Color)
	assert.Equal(t, r3.Vec{}, left.Velocity)

	right, err := s.Snapshot(core.SaberRight)
	require.NoError(t, err)
	assert.Equal(t, core.ColorBlue, right.Color)

	require.NoError(t, s.RecordSample(core.SaberRight, r3.Vec{}, epoch))
	require.NoError(t, s.RecordSample(core.SaberRight, r3.Vec{X: 0.1}, epoch.Add(20*time.Millisecond)))
	right, _ = s.Snapshot(core.SaberRight)
	assert.InDelta(t, 5.0, right.Velocity.X, 1e-9)
	assert.Equal(t, r3.Vec{X: 0.1}, right.Position)
	assert.InDelta(t, 5.0, reg.Floats.Get(status.KeyPeakSpeed).Get(), 1e-9)

	left, _ = s.Snapshot(core.SaberLeft)
	assert.Equal(t, r3.Vec{}, left.Velocity, "hands are independent")
}

func TestSaberSystem_UnknownSaber(t *testing.T) {
	s := NewSaberSystem(physics.TrackerInterval, 5, 20*time.Millisecond, status.NewRegistry())

	assert.ErrorIs(t, s.RecordSample(core.SaberCount, r3.Vec{}, epoch), core.ErrUnknownSaber)
	_, err := s.Velocity(core.SaberID(9))
	assert.ErrorIs(t, err, core.ErrUnknownSaber)
	assert.ErrorIs(t, s.SetColor(core.SaberCount, core.ColorRed), core.ErrUnknownSaber)
	assert.ErrorIs(t, s.Reset(core.SaberCount), core.ErrUnknownSaber)
	assert.False(t, s.Sampled(core.SaberCount))
}

func TestSaberSystem_SetColorAndReset(t *testing.T) {
	s := NewSaberSystem(physics.TrackerWindow, 5, 20*time.Millisecond, status.NewRegistry())

	require.NoError(t, s.SetColor(core.SaberLeft, core.ColorBlue))
	assert.ErrorIs(t, s.SetColor(core.SaberLeft, core.Color(4)), core.ErrConfiguration)
	snap, _ := s.Snapshot(core.SaberLeft)
	assert.Equal(t, core.ColorBlue, snap.Color)

	require.NoError(t, s.RecordSample(core.SaberLeft, r3.Vec{}, epoch))
	assert.True(t, s.Sampled(core.SaberLeft))
	require.NoError(t, s.Reset(core.SaberLeft))
	assert.False(t, s.Sampled(core.SaberLeft))

	require.NoError(t, s.RecordSample(core.SaberRight, r3.Vec{}, epoch))
	s.Init()
	assert.False(t, s.Sampled(core.SaberRight))
}
