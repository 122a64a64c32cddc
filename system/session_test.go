package system

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lixenwraith/vi-saber/core"
	"github.com/lixenwraith/vi-saber/event"
	"github.com/lixenwraith/vi-saber/status"
	"github.com/lixenwraith/vi-saber/vmath"
)

func TestSession_StepCountsFrames(t *testing.T) {
	h := newHarness(t)
	h.step(0, nil)
	h.step(16*time.Millisecond, nil)
	assert.Equal(t, int64(2), h.sess.Frame())
	assert.Equal(t, int64(2), h.reg.Ints.Get(status.KeyFrames).Load())
	assert.Equal(t, "test", h.sess.ID)
}

func TestSession_FullApproachFromGrid(t *testing.T) {
	h := newHarness(t)
	hd, err := h.sess.Spawn(core.BlockSpec{Color: core.ColorBlue, Direction: core.DirectionDown, Column: 2, Row: 1})
	require.NoError(t, err)

	// 30 → -5 at 5 u/s takes 7s; step at 100ms
	h.step(0, nil)
	for i := 0; i < 69; i++ {
		h.step(100*time.Millisecond, nil)
	}
	require.Equal(t, core.StateActive, mustState(t, hd))
	pos, _ := hd.Position()
	assert.InDelta(t, -4.5, pos.Z, 1e-6)

	h.step(200*time.Millisecond, nil)
	assert.Equal(t, core.StateResolvedMissed, mustState(t, hd))
	assert.Equal(t, []event.Kind{event.KindMiss}, h.rec.Kinds())
	assert.Equal(t, core.SaberRight, h.rec.Events[0].Saber, "miss attributed to the blue hand")
}

func TestSession_FeedbackCarriesFrame(t *testing.T) {
	h := newHarness(t, withLayout(fixedLayout{Y: 1}))
	hd := h.spawn(t, core.ColorRed, core.DirectionAny)
	h.step(0, nil)
	h.swing(t, core.SaberLeft, vmath.Up, 3)
	h.step(16*time.Millisecond, contact(core.SaberLeft, hd.ID))

	require.Len(t, h.rec.Events, 1)
	assert.Equal(t, int64(2), h.rec.Events[0].Frame)
}

func TestSession_RestartResetsSabersAndBlocks(t *testing.T) {
	h := newHarness(t, withLayout(fixedLayout{Y: 1}))
	h.spawn(t, core.ColorRed, core.DirectionAny)
	h.swing(t, core.SaberLeft, vmath.Up, 3)
	h.step(0, nil)

	h.sess.Restart()
	assert.Equal(t, 0, h.sess.Blocks.Len())
	assert.False(t, h.sess.Sabers.Sampled(core.SaberLeft))
	assert.Equal(t, int64(0), h.reg.Ints.Get(status.KeyActiveBlocks).Load())
}
