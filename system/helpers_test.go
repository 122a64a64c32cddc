package system

import (
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/spatial/r3"

	"github.com/lixenwraith/vi-saber/config"
	"github.com/lixenwraith/vi-saber/core"
	"github.com/lixenwraith/vi-saber/engine"
	"github.com/lixenwraith/vi-saber/event"
	"github.com/lixenwraith/vi-saber/slicer"
	"github.com/lixenwraith/vi-saber/status"
	"github.com/lixenwraith/vi-saber/vmath"
)

var epoch = time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)

// fixedLayout spawns every valid cell at the same point
type fixedLayout r3.Vec

func (l fixedLayout) Position(column, row int) (r3.Vec, bool) {
	return r3.Vec(l), column >= 0 && row >= 0
}

type harness struct {
	sess  *Session
	rec   *event.Recorder
	clock *engine.ManualClock
	reg   *status.Registry
}

type harnessOption func(*config.Config, *SessionDeps)

func withPolicy(p core.FailPolicy) harnessOption {
	return func(c *config.Config, _ *SessionDeps) { c.Block.FailPolicy = p.String() }
}

func withSplitter(s slicer.Splitter) harnessOption {
	return func(_ *config.Config, d *SessionDeps) { d.Splitter = s }
}

func withLayout(l Layout) harnessOption {
	return func(_ *config.Config, d *SessionDeps) { d.Layout = l }
}

func newHarness(t *testing.T, opts ...harnessOption) *harness {
	t.Helper()
	cfg := config.Default()
	rec := &event.Recorder{}
	reg := status.NewRegistry()
	deps := SessionDeps{
		Logger:   zerolog.Nop(),
		Sink:     rec,
		Registry: reg,
		ID:       "test",
	}
	for _, o := range opts {
		o(&cfg, &deps)
	}
	require.NoError(t, cfg.Validate())
	return &harness{
		sess:  NewSession(cfg, deps),
		rec:   rec,
		clock: engine.NewManualClock(epoch),
		reg:   reg,
	}
}

// swing records three samples ending at the clock's current time, moving along dir at speed
func (h *harness) swing(t *testing.T, id core.SaberID, dir r3.Vec, speed float64) {
	t.Helper()
	v := r3.Scale(speed, vmath.Normalize(dir))
	now := h.clock.Now()
	for i := -2; i <= 0; i++ {
		at := now.Add(time.Duration(i) * 20 * time.Millisecond)
		pos := r3.Scale(at.Sub(epoch).Seconds(), v)
		require.NoError(t, h.sess.RecordSample(id, pos, at))
	}
}

func (h *harness) spawn(t *testing.T, color core.Color, dir core.Direction) BlockHandle {
	t.Helper()
	hd, err := h.sess.Spawn(core.BlockSpec{Color: color, Direction: dir, SpawnTime: h.clock.Now()})
	require.NoError(t, err)
	return hd
}

// step advances the clock by d and runs one tick
func (h *harness) step(d time.Duration, collide func(*ContactAdapter)) time.Time {
	now := h.clock.Advance(d)
	h.sess.Step(now, collide)
	return now
}

func contact(saber core.SaberID, block core.BlockID) func(*ContactAdapter) {
	return func(a *ContactAdapter) { a.Contact(saber, block) }
}

func mustState(t *testing.T, h BlockHandle) core.BlockState {
	t.Helper()
	st, ok := h.State()
	require.True(t, ok, "block %d destroyed", h.ID)
	return st
}
