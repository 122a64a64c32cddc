package system

import (
	"errors"
	"fmt"
	"sync/atomic"
	"time"

	"github.com/rs/zerolog"
	"gonum.org/v1/gonum/spatial/r3"

	"github.com/lixenwraith/vi-saber/config"
	"github.com/lixenwraith/vi-saber/core"
	"github.com/lixenwraith/vi-saber/engine"
	"github.com/lixenwraith/vi-saber/event"
	"github.com/lixenwraith/vi-saber/parameter"
	"github.com/lixenwraith/vi-saber/physics"
	"github.com/lixenwraith/vi-saber/slicer"
	"github.com/lixenwraith/vi-saber/status"
	"github.com/lixenwraith/vi-saber/vmath"
)

// Block is one timed target
type Block struct {
	ID         core.BlockID
	Color      core.Color
	Direction  core.Direction
	ArrowRoll  float64
	Position   r3.Vec
	Velocity   r3.Vec // constant, track-relative
	HalfExtent float64
	State      core.BlockState
	Collidable bool
	Spec       core.BlockSpec
	ResolvedAt time.Time
}

func (b *Block) RequiredColor() core.Color         { return b.Color }
func (b *Block) RequiredDirection() core.Direction { return b.Direction }

// Bounds returns the world-space box
func (b *Block) Bounds() (lo, hi r3.Vec) {
	e := r3.Vec{X: b.HalfExtent, Y: b.HalfExtent, Z: b.HalfExtent}
	return r3.Sub(b.Position, e), r3.Add(b.Position, e)
}

// BlockHandle is the spawner's reference to a block; it never keeps the block alive
type BlockHandle struct {
	ID  core.BlockID
	sys *BlockSystem
}

// Exists reports whether the block has not yet been destroyed
func (h BlockHandle) Exists() bool {
	return h.sys != nil && h.sys.exists(h.ID)
}

// State returns the current state; ok is false once destroyed
func (h BlockHandle) State() (core.BlockState, bool) {
	if h.sys == nil {
		return 0, false
	}
	b, ok := h.sys.blocks[h.ID]
	if !ok {
		return 0, false
	}
	return b.State, true
}

// Position returns the current position; ok is false once destroyed
func (h BlockHandle) Position() (r3.Vec, bool) {
	if h.sys == nil {
		return r3.Vec{}, false
	}
	b, ok := h.sys.blocks[h.ID]
	if !ok {
		return r3.Vec{}, false
	}
	return b.Position, true
}

// BlockRules are the lifecycle tunables
type BlockRules struct {
	MoveSpeed       float64
	MissBoundaryZ   float64
	FeedbackDelay   time.Duration
	FailPolicy      core.FailPolicy
	HalfExtent      float64
	SeparationForce float64
	LiftForce       float64
	PiecesLifetime  time.Duration
	Gravity         float64
}

// DefaultBlockRules returns the stock tunables
func DefaultBlockRules() BlockRules {
	return BlockRules{
		MoveSpeed:       parameter.BlockMoveSpeed,
		MissBoundaryZ:   parameter.MissBoundaryZ,
		FeedbackDelay:   parameter.FeedbackDelay,
		FailPolicy:      core.FailPolicyRetry,
		HalfExtent:      parameter.BlockHalfExtent,
		SeparationForce: parameter.SeparationForce,
		LiftForce:       parameter.LiftForce,
		PiecesLifetime:  parameter.SlicedLifetime,
		Gravity:         parameter.Gravity,
	}
}

// BlockRulesFromConfig maps the block.* and slice.* keys
func BlockRulesFromConfig(c config.Config) BlockRules {
	return BlockRules{
		MoveSpeed:       c.Block.MoveSpeed,
		MissBoundaryZ:   c.Block.MissBoundaryZ,
		FeedbackDelay:   c.Block.FeedbackDelay,
		FailPolicy:      c.FailPolicy(),
		HalfExtent:      c.Block.HalfExtent,
		SeparationForce: c.Slice.SeparationForce,
		LiftForce:       c.Slice.LiftForce,
		PiecesLifetime:  c.Slice.PiecesLifetime,
		Gravity:         c.Slice.Gravity,
	}
}

// BlockSystem owns every block and sequences validation, slicing and misses
// Single-threaded: all calls come from the tick loop
type BlockSystem struct {
	rules     BlockRules
	layout    Layout
	sabers    *SaberSystem
	validator *physics.Validator
	splitter  slicer.Splitter
	sink      event.Sink
	logger    zerolog.Logger

	blocks map[core.BlockID]*Block
	order  []core.BlockID // spawn order, for deterministic iteration
	nextID core.BlockID

	debris      map[DebrisID]*Debris
	debrisOrder []DebrisID
	nextDebris  DebrisID

	destroyQueue *engine.Scheduler[core.BlockID]
	cleanupQueue *engine.Scheduler[DebrisID]

	frame int64

	statActive *atomic.Int64
}

// BlockDeps are the collaborators of a BlockSystem
type BlockDeps struct {
	Layout    Layout
	Sabers    *SaberSystem
	Validator *physics.Validator
	Splitter  slicer.Splitter
	Sink      event.Sink
	Logger    zerolog.Logger
	Registry  *status.Registry
}

// NewBlockSystem creates an empty block system
func NewBlockSystem(rules BlockRules, deps BlockDeps) *BlockSystem {
	s := &BlockSystem{
		rules:      rules,
		layout:     deps.Layout,
		sabers:     deps.Sabers,
		validator:  deps.Validator,
		splitter:   deps.Splitter,
		sink:       deps.Sink,
		logger:     deps.Logger.With().Str("system", "block").Logger(),
		statActive: deps.Registry.Ints.Get(status.KeyActiveBlocks),
	}
	if s.sink == nil {
		s.sink = event.Discard
	}
	if s.splitter == nil {
		s.splitter = slicer.NewBoxSplitter()
	}
	if s.validator == nil {
		s.validator = physics.NewValidator(physics.DefaultSwingRules())
	}
	s.destroyQueue = engine.NewScheduler(s.exists)
	s.cleanupQueue = engine.NewScheduler(s.debrisExists)
	s.Init()
	return s
}

// Name returns system's name
func (s *BlockSystem) Name() string {
	return "block"
}

// Init resets session state; pending deferred actions become no-ops
func (s *BlockSystem) Init() {
	s.blocks = make(map[core.BlockID]*Block)
	s.order = s.order[:0]
	s.debris = make(map[DebrisID]*Debris)
	s.debrisOrder = s.debrisOrder[:0]
	s.statActive.Store(0)
}

// Clear removes every block and piece, e.g. at level end
// IDs are never reused, so already scheduled destroys stay no-ops
func (s *BlockSystem) Clear() {
	s.Init()
}

// Rules returns the active tunables
func (s *BlockSystem) Rules() BlockRules {
	return s.rules
}

func (s *BlockSystem) exists(id core.BlockID) bool {
	_, ok := s.blocks[id]
	return ok
}

// OnBlockSpawned creates a block from spec and activates it
// A configuration fault discards the block before Active and is returned
func (s *BlockSystem) OnBlockSpawned(spec core.BlockSpec) (BlockHandle, error) {
	pos, err := s.spawnPosition(spec)
	if err != nil {
		s.logger.Warn().Err(err).
			Str("color", spec.Color.String()).
			Str("direction", spec.Direction.String()).
			Int("column", spec.Column).
			Int("row", spec.Row).
			Msg("block discarded")
		return BlockHandle{}, err
	}

	s.nextID++
	b := &Block{
		ID:         s.nextID,
		Color:      spec.Color,
		Direction:  spec.Direction,
		Position:   pos,
		HalfExtent: s.rules.HalfExtent,
		State:      core.StateSpawned,
		Spec:       spec,
	}
	s.blocks[b.ID] = b
	s.order = append(s.order, b.ID)
	s.activate(b)

	s.logger.Debug().
		Uint64("block", uint64(b.ID)).
		Str("color", b.Color.String()).
		Str("direction", b.Direction.String()).
		Msg("block spawned")

	return BlockHandle{ID: b.ID, sys: s}, nil
}

func (s *BlockSystem) spawnPosition(spec core.BlockSpec) (r3.Vec, error) {
	if !spec.Color.Valid() {
		return r3.Vec{}, fmt.Errorf("%w: unknown color %s", core.ErrConfiguration, spec.Color)
	}
	if !spec.Direction.Valid() {
		return r3.Vec{}, fmt.Errorf("%w: unknown direction %s", core.ErrConfiguration, spec.Direction)
	}
	if s.layout == nil {
		return r3.Vec{}, fmt.Errorf("%w: no grid layout", core.ErrConfiguration)
	}
	pos, ok := s.layout.Position(spec.Column, spec.Row)
	if !ok {
		return r3.Vec{}, fmt.Errorf("%w: invalid grid cell (%d, %d)", core.ErrConfiguration, spec.Column, spec.Row)
	}
	return pos, nil
}

// activate applies color, arrow and track motion; Spawned → Active
func (s *BlockSystem) activate(b *Block) {
	b.ArrowRoll = b.Direction.ArrowRoll()
	b.Velocity = r3.Scale(s.rules.MoveSpeed, vmath.Back)
	b.Collidable = true
	b.State = core.StateActive
	s.statActive.Add(1)
}

// Advance moves active blocks along the track and integrates pieces
func (s *BlockSystem) Advance(dt time.Duration) {
	s.frame++
	sec := dt.Seconds()
	if sec <= 0 {
		return
	}
	for _, id := range s.order {
		b := s.blocks[id]
		if b.State != core.StateActive {
			continue
		}
		b.Position = r3.Add(b.Position, r3.Scale(sec, b.Velocity))
	}
	s.advanceDebris(sec)
}

// HandleContact runs one contact attempt of saber against block
// Contacts on unknown or non-active blocks change nothing and return an error
func (s *BlockSystem) HandleContact(saber core.SaberID, id core.BlockID, now time.Time) (core.SwingVerdict, error) {
	b, ok := s.blocks[id]
	if !ok {
		return core.SwingVerdict{}, fmt.Errorf("%w: %d", core.ErrUnknownBlock, id)
	}
	if b.State != core.StateActive {
		return core.SwingVerdict{}, fmt.Errorf("%w: %d is %s", core.ErrBlockInactive, id, b.State)
	}

	snap, err := s.sabers.Snapshot(saber)
	if err != nil {
		return core.SwingVerdict{}, err
	}

	verdict := s.validator.Validate(snap.Color, b, snap.Velocity)
	s.logger.Debug().
		Uint64("block", uint64(id)).
		Str("saber", saber.String()).
		Bool("passed", verdict.Passed).
		Str("reason", verdict.Reason.String()).
		Float64("speed", r3.Norm(snap.Velocity)).
		Msg("swing verdict")

	if !verdict.Passed {
		s.sink.Notify(s.feedback(event.KindSliceFail, b, saber, func(f *event.Feedback) {
			f.Reason = verdict.Reason
		}))
		if s.rules.FailPolicy == core.FailPolicyTerminal {
			s.resolve(b, core.StateResolvedMissed, now)
			s.logger.Info().Uint64("block", uint64(id)).Str("reason", verdict.Reason.String()).Msg("block consumed by failed swing")
			s.sink.Notify(s.feedback(event.KindMiss, b, saber, nil))
		}
		return verdict, nil
	}

	b.State = core.StateResolvingSlice
	s.slice(b, saber, snap.Velocity, now)
	return verdict, nil
}

// slice resolves a validated swing: cut with retries, else non-cut separation
func (s *BlockSystem) slice(b *Block, saber core.SaberID, swing r3.Vec, now time.Time) {
	solid := slicer.BoxAt(r3.Vec{}, b.HalfExtent) // local frame
	var upper, lower slicer.Solid
	cut := func(p core.CutPlane) bool {
		u, l, ok := s.splitter.Split(solid, p.Origin, p.Normal)
		if ok {
			upper, lower = u, l
		}
		return ok
	}

	plane, attempts, err := physics.ResolveAndCut(solid.Center(), swing, cut)
	if err != nil {
		if !errors.Is(err, core.ErrGeometry) {
			// ResolveAndCut only fails with geometry errors
			s.logger.Error().Err(err).Msg("unexpected slice error")
		}
		normal := physics.PrimaryNormal(swing)
		s.resolve(b, core.StateResolvedFallback, now)
		s.separate(b, solid, solid, normal, false, now)
		s.logger.Warn().Err(err).
			Uint64("block", uint64(b.ID)).
			Int("attempts", attempts).
			Msg("slice fell back to separation")
		s.sink.Notify(s.feedback(event.KindGeometryFallback, b, saber, func(f *event.Feedback) {
			f.Plane = core.CutPlane{Origin: solid.Center(), Normal: normal}
		}))
		return
	}

	s.resolve(b, core.StateResolvedSliced, now)
	s.separate(b, upper, lower, plane.Normal, true, now)
	s.logger.Info().
		Uint64("block", uint64(b.ID)).
		Str("saber", saber.String()).
		Int("attempts", attempts).
		Msg("block sliced")
	s.sink.Notify(s.feedback(event.KindSliceSuccess, b, saber, func(f *event.Feedback) {
		f.Plane = plane
	}))
}

// CheckBoundaries resolves active blocks past the miss line
func (s *BlockSystem) CheckBoundaries(now time.Time) int {
	missed := 0
	for _, id := range s.order {
		b := s.blocks[id]
		if b.State != core.StateActive || b.Position.Z >= s.rules.MissBoundaryZ {
			continue
		}
		s.resolve(b, core.StateResolvedMissed, now)
		s.logger.Info().Uint64("block", uint64(id)).Float64("z", b.Position.Z).Msg("block missed")
		s.sink.Notify(s.feedback(event.KindMiss, b, colorSaber(b.Color), nil))
		missed++
	}
	return missed
}

// resolve enters a terminal state: collision off now, destroy after the feedback delay
func (s *BlockSystem) resolve(b *Block, state core.BlockState, now time.Time) {
	if b.State == core.StateActive || b.State == core.StateResolvingSlice {
		s.statActive.Add(-1)
	}
	b.State = state
	b.Collidable = false
	b.ResolvedAt = now
	s.destroyQueue.After(now.Add(s.rules.FeedbackDelay), b.ID, s.destroy)
}

func (s *BlockSystem) destroy(id core.BlockID) {
	delete(s.blocks, id)
	for i, oid := range s.order {
		if oid == id {
			s.order = append(s.order[:i], s.order[i+1:]...)
			break
		}
	}
}

// RunDeferred fires due destroys and piece cleanups; returns how many fired
func (s *BlockSystem) RunDeferred(now time.Time) int {
	return s.destroyQueue.RunDue(now) + s.cleanupQueue.RunDue(now)
}

// PendingDeferred returns the number of scheduled actions, live or not
func (s *BlockSystem) PendingDeferred() int {
	return s.destroyQueue.Len() + s.cleanupQueue.Len()
}

// Block returns a copy of the block with id
func (s *BlockSystem) Block(id core.BlockID) (Block, bool) {
	b, ok := s.blocks[id]
	if !ok {
		return Block{}, false
	}
	return *b, true
}

// Blocks returns copies of all live blocks in spawn order
func (s *BlockSystem) Blocks() []Block {
	out := make([]Block, 0, len(s.order))
	for _, id := range s.order {
		out = append(out, *s.blocks[id])
	}
	return out
}

// Len returns the number of live blocks
func (s *BlockSystem) Len() int {
	return len(s.order)
}

func (s *BlockSystem) feedback(kind event.Kind, b *Block, saber core.SaberID, fill func(*event.Feedback)) event.Feedback {
	f := event.Feedback{
		Kind:     kind,
		Block:    b.ID,
		Saber:    saber,
		Color:    b.Color,
		Position: b.Position,
		Frame:    s.frame,
	}
	if fill != nil {
		fill(&f)
	}
	return f
}

// colorSaber returns the hand that carries c by default
func colorSaber(c core.Color) core.SaberID {
	for id := core.SaberID(0); id < core.SaberCount; id++ {
		if id.DefaultColor() == c {
			return id
		}
	}
	return core.SaberLeft
}
