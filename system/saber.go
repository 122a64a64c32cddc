package system

import (
	"fmt"
	"time"

	"gonum.org/v1/gonum/spatial/r3"

	"github.com/lixenwraith/vi-saber/core"
	"github.com/lixenwraith/vi-saber/physics"
	"github.com/lixenwraith/vi-saber/status"
)

// Saber is the single owned record for one hand
type Saber struct {
	ID         core.SaberID
	Color      core.Color
	Tracker    physics.Tracker
	Position   r3.Vec
	LastSample time.Time
}

// SaberSnapshot is a read-only view handed to blocks
type SaberSnapshot struct {
	ID       core.SaberID
	Color    core.Color
	Position r3.Vec
	Velocity r3.Vec
}

// SaberSystem owns both sabers; blocks read velocity through it only
type SaberSystem struct {
	sabers [core.SaberCount]Saber

	statSpeed *status.AtomicFloat
	statPeak  *status.AtomicFloat
}

// NewSaberSystem creates the two hands with their default colors
func NewSaberSystem(mode physics.TrackerMode, capacity int, interval time.Duration, reg *status.Registry) *SaberSystem {
	s := &SaberSystem{
		statSpeed: reg.Floats.Get(status.KeySaberSpeed),
		statPeak:  reg.Floats.Get(status.KeyPeakSpeed),
	}
	for id := core.SaberID(0); id < core.SaberCount; id++ {
		s.sabers[id] = Saber{
			ID:      id,
			Color:   id.DefaultColor(),
			Tracker: physics.NewTracker(mode, capacity, interval),
		}
	}
	return s
}

// Name returns system's name
func (s *SaberSystem) Name() string {
	return "saber"
}

// Init drops sample history for a new session
func (s *SaberSystem) Init() {
	for i := range s.sabers {
		s.sabers[i].Tracker.Reset()
		s.sabers[i].Position = r3.Vec{}
		s.sabers[i].LastSample = time.Time{}
	}
	s.statSpeed.Set(0)
	s.statPeak.Set(0)
}

func (s *SaberSystem) saber(id core.SaberID) (*Saber, error) {
	if id >= core.SaberCount {
		return nil, fmt.Errorf("%w: %s", core.ErrUnknownSaber, id)
	}
	return &s.sabers[id], nil
}

// RecordSample feeds one tracked position for id
func (s *SaberSystem) RecordSample(id core.SaberID, position r3.Vec, at time.Time) error {
	sb, err := s.saber(id)
	if err != nil {
		return err
	}
	sb.Tracker.RecordSample(position, at)
	sb.Position = position
	sb.LastSample = at

	speed := physics.Speed(sb.Tracker)
	s.statSpeed.Set(speed)
	s.statPeak.Max(speed)
	return nil
}

// Velocity returns the current estimate for id
func (s *SaberSystem) Velocity(id core.SaberID) (r3.Vec, error) {
	sb, err := s.saber(id)
	if err != nil {
		return r3.Vec{}, err
	}
	return sb.Tracker.Velocity(), nil
}

// Snapshot returns color, position and velocity of id
func (s *SaberSystem) Snapshot(id core.SaberID) (SaberSnapshot, error) {
	sb, err := s.saber(id)
	if err != nil {
		return SaberSnapshot{}, err
	}
	return SaberSnapshot{
		ID:       sb.ID,
		Color:    sb.Color,
		Position: sb.Position,
		Velocity: sb.Tracker.Velocity(),
	}, nil
}

// SetColor reassigns the color a hand cuts
func (s *SaberSystem) SetColor(id core.SaberID, c core.Color) error {
	sb, err := s.saber(id)
	if err != nil {
		return err
	}
	if !c.Valid() {
		return fmt.Errorf("%w: unknown color %s", core.ErrConfiguration, c)
	}
	sb.Color = c
	return nil
}

// Reset drops the history of one saber, used when a hand is re-homed
func (s *SaberSystem) Reset(id core.SaberID) error {
	sb, err := s.saber(id)
	if err != nil {
		return err
	}
	sb.Tracker.Reset()
	return nil
}

// Sampled reports whether id has received any sample since the last reset
func (s *SaberSystem) Sampled(id core.SaberID) bool {
	sb, err := s.saber(id)
	return err == nil && sb.Tracker.Len() > 0
}
