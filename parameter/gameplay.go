package parameter

import "time"

// Swing Detection
const (
	// VelocityHistorySize is the sample ring capacity of the window tracker
	VelocityHistorySize = 5

	// SwingCheckInterval is the recompute period of the interval tracker, and the
	// minimum sample span before any tracker reports a non-zero velocity
	SwingCheckInterval = 20 * time.Millisecond

	// MinSwingSpeed is the slowest accepted swing in world units per second
	MinSwingSpeed = 2.0

	// DirectionTolerance is the dot product a swing must exceed against the required
	// direction (0.5 is a 60 degree half-angle)
	DirectionTolerance = 0.5
)

// Block Lifecycle
const (
	// BlockMoveSpeed is the track speed toward the player in units per second
	BlockMoveSpeed = 5.0

	// MissBoundaryZ is the track coordinate past which an unstruck block is missed
	MissBoundaryZ = -5.0

	// FeedbackDelay is the presentation window between resolution and destruction
	FeedbackDelay = 500 * time.Millisecond

	// BlockHalfExtent is half the edge length of a block's cube
	BlockHalfExtent = 0.25

	// SaberContactRadius is the radius of the saber tip used by the overlap detector
	SaberContactRadius = 0.15
)

// Grid Layout
const (
	GridColumns       = 4
	GridRows          = 3
	GridColumnSpacing = 1.0
	GridRowSpacing    = 1.0
	GridCenterY       = 1.0
	GridSpawnZ        = 30.0
)

// Spawning
const (
	// SpawnInterval is the sandbox auto-spawn period
	SpawnInterval = time.Second
)
