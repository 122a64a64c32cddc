package render

import (
	"math"
	"strings"
	"testing"

	"github.com/gdamore/tcell/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/spatial/r3"

	"github.com/lixenwraith/vi-saber/core"
	"github.com/lixenwraith/vi-saber/event"
	"github.com/lixenwraith/vi-saber/status"
	"github.com/lixenwraith/vi-saber/system"
)

func TestViewProjectCenter(t *testing.T) {
	v := NewView(80, 42, 1)
	x, y, scale := v.Project(r3.Vec{X: 0, Y: 1, Z: 0})
	assert.InDelta(t, 40, x, 1e-9)
	assert.InDelta(t, 2+20, y, 1e-9)
	assert.InDelta(t, 1, scale, 1e-9)
}

func TestViewRoundTrip(t *testing.T) {
	v := NewView(120, 40, 1)
	for _, p := range []r3.Vec{
		{X: -1.5, Y: 0, Z: 0},
		{X: 0.5, Y: 2, Z: 0},
		{X: 1.5, Y: 1, Z: 12},
	} {
		x, y, _ := v.Project(p)
		got := v.Unproject(x, y, p.Z)
		assert.InDelta(t, p.X, got.X, 1e-9)
		assert.InDelta(t, p.Y, got.Y, 1e-9)
	}
}

func TestViewPerspective(t *testing.T) {
	v := NewView(120, 40, 1)
	nearW, nearH := v.Extent(0.25, 0)
	farW, farH := v.Extent(0.25, 30)
	assert.Greater(t, nearW, farW)
	assert.Greater(t, nearH, farH)
	assert.InDelta(t, nearW, nearH*v.Aspect, 1e-9)

	assert.True(t, v.Visible(r3.Vec{Z: 0}))
	assert.False(t, v.Visible(r3.Vec{Z: -5}))
}

func TestArrow(t *testing.T) {
	assert.Equal(t, '↑', Arrow(core.DirectionUp))
	assert.Equal(t, '↘', Arrow(core.DirectionDownRight))
	assert.Equal(t, '•', Arrow(core.DirectionAny))
	assert.Equal(t, '?', Arrow(core.DirectionCount))
}

func TestLerpEnds(t *testing.T) {
	a, b := core.RGBRed, core.RGBBlue
	assert.Equal(t, a, Lerp(a, b, 0))
	assert.Equal(t, b, Lerp(a, b, 1))
	g := Grayscale(a)
	assert.Equal(t, g.R, g.G)
	assert.Equal(t, g.G, g.B)
}

func newScreen(t *testing.T, w, h int) tcell.SimulationScreen {
	t.Helper()
	s := tcell.NewSimulationScreen("")
	require.NoError(t, s.Init())
	s.SetSize(w, h)
	t.Cleanup(s.Fini)
	return s
}

func rowText(s tcell.Screen, y, w int) string {
	var sb strings.Builder
	for x := 0; x < w; x++ {
		r, _, _, _ := s.GetContent(x, y)
		sb.WriteRune(r)
	}
	return sb.String()
}

func TestDrawBlockAndHUD(t *testing.T) {
	const w, h = 80, 30
	screen := newScreen(t, w, h)
	v := NewView(w, h, 1)

	reg := status.NewRegistry()
	reg.Ints.Get(status.KeySliced).Store(3)
	reg.Strings.Get(status.KeyActiveSaber).Store("left")
	reg.Bools.Get(status.KeyPaused).Store(true)

	block := system.Block{
		ID:         1,
		Color:      core.ColorRed,
		Direction:  core.DirectionLeft,
		Position:   r3.Vec{X: 0, Y: 1, Z: 0},
		HalfExtent: 0.25,
		State:      core.StateActive,
	}
	Draw(screen, v, Frame{Blocks: []system.Block{block}}, reg)

	cx, cy, _ := v.Project(block.Position)
	r, _, _, _ := screen.GetContent(int(math.Floor(cx)), int(math.Floor(cy)))
	assert.Equal(t, '←', r)

	assert.Contains(t, rowText(screen, 0, w), "sliced 3")
	assert.Contains(t, rowText(screen, 1, w), "saber left")
	assert.Contains(t, rowText(screen, 1, w), "[PAUSED]")
	assert.Contains(t, rowText(screen, h-1, w), "tab:hand")
}

func TestDrawSkipsSlicedBlock(t *testing.T) {
	const w, h = 60, 24
	screen := newScreen(t, w, h)
	v := NewView(w, h, 1)

	block := system.Block{
		Color:      core.ColorBlue,
		Direction:  core.DirectionUp,
		Position:   r3.Vec{Y: 1},
		HalfExtent: 0.25,
		State:      core.StateResolvedSliced,
	}
	Draw(screen, v, Frame{Blocks: []system.Block{block}}, status.NewRegistry())

	cx, cy, _ := v.Project(block.Position)
	r, _, _, _ := screen.GetContent(int(math.Floor(cx)), int(math.Floor(cy)))
	assert.NotEqual(t, '↑', r)
}

func TestDrawActiveSaber(t *testing.T) {
	const w, h = 60, 24
	screen := newScreen(t, w, h)
	v := NewView(w, h, 1)

	saber := system.SaberSnapshot{ID: core.SaberRight, Color: core.ColorBlue, Position: r3.Vec{X: 1, Y: 0.5}}
	Draw(screen, v, Frame{Sabers: []system.SaberSnapshot{saber}, Active: core.SaberRight}, status.NewRegistry())

	x, y, _ := v.Project(saber.Position)
	r, _, _, _ := screen.GetContent(int(math.Floor(x)), int(math.Floor(y)))
	assert.Equal(t, glyphSaber, r)
}

func TestDrawFailFlash(t *testing.T) {
	const w, h = 60, 24
	screen := newScreen(t, w, h)
	v := NewView(w, h, 1)

	fail := event.Feedback{Kind: event.KindSliceFail, Position: r3.Vec{X: -1, Y: 1.5}}
	miss := event.Feedback{Kind: event.KindMiss, Position: r3.Vec{X: 1, Y: 1.5}}
	Draw(screen, v, Frame{Flashes: []event.Feedback{fail, miss}}, status.NewRegistry())

	x, y, _ := v.Project(fail.Position)
	r, _, _, _ := screen.GetContent(int(math.Floor(x)), int(math.Floor(y)))
	assert.Equal(t, glyphFail, r)

	x, y, _ = v.Project(miss.Position)
	r, _, _, _ = screen.GetContent(int(math.Floor(x)), int(math.Floor(y)))
	assert.NotEqual(t, glyphFail, r)
}
