package system

import (
	"sync/atomic"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"gonum.org/v1/gonum/spatial/r3"

	"github.com/lixenwraith/vi-saber/config"
	"github.com/lixenwraith/vi-saber/core"
	"github.com/lixenwraith/vi-saber/event"
	"github.com/lixenwraith/vi-saber/physics"
	"github.com/lixenwraith/vi-saber/slicer"
	"github.com/lixenwraith/vi-saber/status"
)

// SessionDeps are the external collaborators of a session; zero values get defaults
type SessionDeps struct {
	Logger   zerolog.Logger
	Sink     event.Sink
	Splitter slicer.Splitter
	Layout   Layout
	Registry *status.Registry
	ID       string
}

// Session wires the systems and runs the fixed tick order
// Not goroutine-safe: drive it from one loop
type Session struct {
	ID       string
	Sabers   *SaberSystem
	Blocks   *BlockSystem
	Contacts *ContactAdapter

	radius  float64
	last    time.Time
	started bool
	frame   int64

	statFrames *atomic.Int64
	logger     zerolog.Logger
}

// NewSession builds a session from cfg
func NewSession(cfg config.Config, deps SessionDeps) *Session {
	if deps.Registry == nil {
		deps.Registry = status.NewRegistry()
	}
	if deps.Layout == nil {
		deps.Layout = GridLayoutFromConfig(cfg.Grid)
	}
	if deps.ID == "" {
		deps.ID = uuid.NewString()
	}
	logger := deps.Logger.With().Str("session", deps.ID).Logger()

	sabers := NewSaberSystem(cfg.TrackerMode(), cfg.Tracker.Capacity, cfg.Tracker.CheckInterval, deps.Registry)
	blocks := NewBlockSystem(BlockRulesFromConfig(cfg), BlockDeps{
		Layout:    deps.Layout,
		Sabers:    sabers,
		Validator: physics.NewValidator(cfg.SwingRules()),
		Splitter:  deps.Splitter,
		Sink:      deps.Sink,
		Logger:    logger,
		Registry:  deps.Registry,
	})

	s := &Session{
		ID:         deps.ID,
		Sabers:     sabers,
		Blocks:     blocks,
		Contacts:   NewContactAdapter(blocks, logger),
		radius:     cfg.Sandbox.SaberRadius,
		statFrames: deps.Registry.Ints.Get(status.KeyFrames),
		logger:     logger,
	}
	logger.Info().
		Str("tracker", cfg.TrackerMode().String()).
		Str("failPolicy", cfg.FailPolicy().String()).
		Msg("session started")
	return s
}

// RecordSample feeds a tracked saber position; call before Step for this tick
func (s *Session) RecordSample(id core.SaberID, position r3.Vec, at time.Time) error {
	return s.Sabers.RecordSample(id, position, at)
}

// Spawn hands a spawner spec to the block system
func (s *Session) Spawn(spec core.BlockSpec) (BlockHandle, error) {
	return s.Blocks.OnBlockSpawned(spec)
}

// Step runs one tick: move blocks, collision phase, miss boundary, deferred actions
// collide is the collision phase; nil runs the built-in overlap detector
func (s *Session) Step(now time.Time, collide func(*ContactAdapter)) {
	var dt time.Duration
	if s.started {
		dt = now.Sub(s.last)
	}
	s.last, s.started = now, true
	s.frame++
	s.statFrames.Store(s.frame)

	s.Blocks.Advance(dt)

	s.Contacts.BeginPhase(now)
	if collide != nil {
		collide(s.Contacts)
	} else {
		s.Contacts.DetectOverlaps(s.Sabers, s.Blocks, s.radius)
	}

	s.Blocks.CheckBoundaries(now)
	s.Blocks.RunDeferred(now)
}

// Frame returns the number of steps run
func (s *Session) Frame() int64 {
	return s.frame
}

// Clear drops all blocks and overlaps, e.g. at level end; pending destroys become no-ops
func (s *Session) Clear() {
	s.Blocks.Clear()
	s.Contacts.Reset()
	s.logger.Info().Msg("session cleared")
}

// Restart clears blocks and saber history
func (s *Session) Restart() {
	s.Clear()
	s.Sabers.Init()
	s.started = false
}
