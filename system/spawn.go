package system

import (
	"math/rand"
	"time"

	"github.com/lixenwraith/vi-saber/core"
)

// SpawnSystem generates pseudo-random block specs on a fixed interval
// The same seed yields the same sequence of specs
type SpawnSystem struct {
	rng      *rand.Rand
	columns  int
	rows     int
	interval time.Duration

	next    time.Time
	started bool
	count   int
}

// NewSpawnSystem creates a spawner over a columns×rows grid
func NewSpawnSystem(seed int64, columns, rows int, interval time.Duration) *SpawnSystem {
	return &SpawnSystem{
		rng:      rand.New(rand.NewSource(seed)),
		columns:  columns,
		rows:     rows,
		interval: interval,
	}
}

func (s *SpawnSystem) Name() string {
	return "spawn"
}

// Due returns the next spec when the interval has elapsed since the previous one
// The first call spawns immediately
func (s *SpawnSystem) Due(now time.Time) (core.BlockSpec, bool) {
	if s.started && now.Before(s.next) {
		return core.BlockSpec{}, false
	}
	s.started = true
	s.next = now.Add(s.interval)
	s.count++
	return s.Generate(now), true
}

// Generate draws one spec regardless of timing
func (s *SpawnSystem) Generate(now time.Time) core.BlockSpec {
	return core.BlockSpec{
		Color:     core.Color(s.rng.Intn(int(core.ColorCount))),
		Direction: core.Direction(s.rng.Intn(int(core.DirectionCount))),
		Column:    s.rng.Intn(s.columns),
		Row:       s.rng.Intn(s.rows),
		SpawnTime: now,
	}
}

// Delay pushes the next spawn back, e.g. after a restart
func (s *SpawnSystem) Delay(now time.Time) {
	s.started = true
	s.next = now.Add(s.interval)
}

// Count returns the number of specs handed out by Due
func (s *SpawnSystem) Count() int {
	return s.count
}
