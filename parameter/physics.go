package parameter

import "time"

// Slice Geometry
const (
	// DominantAxisThreshold is the unit component above which a swing is axis-aligned
	DominantAxisThreshold = 0.7

	// ParallelThreshold is the |dot| above which two unit vectors count as parallel
	ParallelThreshold = 0.99

	// CutDepthBias tilts axis-class normals slightly toward the track
	CutDepthBias = 0.1

	// DegenerateNormalLength is the cross product length below which a normal is rejected
	DegenerateNormalLength = 1e-4

	// MaxFallbackNormals bounds the retry candidates after the primary normal fails
	MaxFallbackNormals = 3
)

// Sliced Pieces
const (
	// SeparationForce pushes the two halves apart along the cut normal
	SeparationForce = 1.0

	// LiftForce is the upward impulse added to every piece
	LiftForce = 0.5

	// SlicedLifetime is how long pieces stay before cleanup
	SlicedLifetime = 3 * time.Second

	// Gravity is the downward acceleration applied to pieces
	Gravity = 9.81
)
