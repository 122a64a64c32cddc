package system

import (
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSpawnSystemInterval(t *testing.T) {
	s := NewSpawnSystem(7, 4, 3, time.Second)

	_, ok := s.Due(epoch)
	require.True(t, ok, "first call spawns immediately")

	_, ok = s.Due(epoch.Add(999 * time.Millisecond))
	assert.False(t, ok)

	spec, ok := s.Due(epoch.Add(time.Second))
	require.True(t, ok)
	assert.Equal(t, epoch.Add(time.Second), spec.SpawnTime)
	assert.Equal(t, 2, s.Count())
}

func TestSpawnSystemDeterministic(t *testing.T) {
	a := NewSpawnSystem(42, 4, 3, time.Second)
	b := NewSpawnSystem(42, 4, 3, time.Second)
	for i := 0; i < 50; i++ {
		sa, sb := a.Generate(epoch), b.Generate(epoch)
		if diff := cmp.Diff(sa, sb); diff != "" {
			t.Fatalf("spec %d differs (-a +b):\n%s", i, diff)
		}
		assert.True(t, sa.Color.Valid())
		assert.True(t, sa.Direction.Valid())
		assert.True(t, DefaultGridLayout().Valid(sa.Column, sa.Row))
	}
}

func TestSpawnSystemDelay(t *testing.T) {
	s := NewSpawnSystem(1, 4, 3, time.Second)
	s.Delay(epoch)

	_, ok := s.Due(epoch.Add(500 * time.Millisecond))
	assert.False(t, ok)
	_, ok = s.Due(epoch.Add(time.Second))
	assert.True(t, ok)
}

func TestSpawnedSpecsEnterActive(t *testing.T) {
	h := newHarness(t)
	s := NewSpawnSystem(3, 4, 3, time.Second)
	for i := 0; i < 10; i++ {
		_, err := h.sess.Spawn(s.Generate(h.clock.Now()))
		require.NoError(t, err)
	}
	assert.Equal(t, 10, h.sess.Blocks.Len())
}
