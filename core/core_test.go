package core

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/spatial/r3"
)

func TestDirectionVectorsAreUnit(t *testing.T) {
	for d := Direction(0); d < DirectionAny; d++ {
		v, ok := d.Vector()
		require.True(t, ok, d.String())
		assert.InDelta(t, 1, r3.Norm(v), 1e-12, d.String())
		assert.Zero(t, v.Z, "swings are in the view plane")
	}

	_, ok := DirectionAny.Vector()
	assert.False(t, ok)
	_, ok = DirectionCount.Vector()
	assert.False(t, ok)
}

func TestDirectionOpposites(t *testing.T) {
	pairs := [][2]Direction{
		{DirectionUp, DirectionDown},
		{DirectionLeft, DirectionRight},
		{DirectionUpLeft, DirectionDownRight},
		{DirectionUpRight, DirectionDownLeft},
	}
	for _, p := range pairs {
		a, _ := p[0].Vector()
		b, _ := p[1].Vector()
		assert.InDelta(t, -1, r3.Dot(a, b), 1e-12, "%s/%s", p[0], p[1])
	}
}

func TestParseDirection(t *testing.T) {
	for d := Direction(0); d < DirectionCount; d++ {
		got, err := ParseDirection(d.String())
		require.NoError(t, err)
		assert.Equal(t, d, got)
	}

	got, err := ParseDirection(" Up-Left ")
	require.NoError(t, err)
	assert.Equal(t, DirectionUpLeft, got)

	_, err = ParseDirection("sideways")
	assert.True(t, errors.Is(err, ErrConfiguration))
}

func TestParseColor(t *testing.T) {
	c, err := ParseColor("A")
	require.NoError(t, err)
	assert.Equal(t, ColorRed, c)

	c, err = ParseColor("blue")
	require.NoError(t, err)
	assert.Equal(t, ColorBlue, c)

	_, err = ParseColor("green")
	assert.ErrorIs(t, err, ErrConfiguration)
	assert.False(t, ColorCount.Valid())
}

func TestSaberDefaultColors(t *testing.T) {
	assert.Equal(t, ColorRed, SaberLeft.DefaultColor())
	assert.Equal(t, ColorBlue, SaberRight.DefaultColor())
}

func TestBlockStateResolved(t *testing.T) {
	for _, s := range []BlockState{StateSpawned, StateActive, StateResolvingSlice} {
		assert.False(t, s.Resolved(), s.String())
	}
	for _, s := range []BlockState{StateResolvedSliced, StateResolvedFallback, StateResolvedMissed} {
		assert.True(t, s.Resolved(), s.String())
	}
}

func TestVerdictAndPolicy(t *testing.T) {
	assert.Equal(t, SwingVerdict{Passed: true}, Pass())
	assert.Equal(t, SwingVerdict{Reason: ReasonTooSlow}, Fail(ReasonTooSlow))
	assert.Equal(t, "wrong_direction", ReasonWrongDirection.String())

	p, err := ParseFailPolicy("")
	require.NoError(t, err)
	assert.Equal(t, FailPolicyRetry, p)

	p, err = ParseFailPolicy(FailPolicyTerminal.String())
	require.NoError(t, err)
	assert.Equal(t, FailPolicyTerminal, p)

	p, err = ParseFailPolicy(" Terminal ")
	require.NoError(t, err)
	assert.Equal(t, FailPolicyTerminal, p)

	p, err = ParseFailPolicy("RETRY")
	require.NoError(t, err)
	assert.Equal(t, FailPolicyRetry, p)

	_, err = ParseFailPolicy("forgive")
	assert.ErrorIs(t, err, ErrConfiguration)
}

func TestCutPlaneSignedDistance(t *testing.T) {
	p := CutPlane{Origin: r3.Vec{Y: 1}, Normal: r3.Vec{Y: 1}}
	assert.InDelta(t, 2, p.SignedDistance(r3.Vec{X: 5, Y: 3}), 1e-12)
	assert.InDelta(t, -1, p.SignedDistance(r3.Vec{}), 1e-12)
}

func TestRGBScale(t *testing.T) {
	assert.Equal(t, RGB{}, RGBRed.Scale(0))
	assert.Equal(t, RGB{R: 255, G: 80, B: 80}, RGBRed.Scale(2))
	assert.Equal(t, RGBGray, Color(9).RGB())
}

func TestHandleCrashNilIsNoop(t *testing.T) {
	called := false
	SetCrashCleanup(func() { called = true })
	HandleCrash(nil)
	assert.False(t, called)
}
