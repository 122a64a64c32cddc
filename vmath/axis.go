package vmath

import (
	"math"

	"gonum.org/v1/gonum/spatial/r3"
)

// Axis names one of the three world axes
type Axis uint8

const (
	AxisNone Axis = iota
	AxisX
	AxisY
	AxisZ
)

func (a Axis) String() string {
	switch a {
	case AxisX:
		return "x"
	case AxisY:
		return "y"
	case AxisZ:
		return "z"
	default:
		return "none"
	}
}

// DominantAxis returns the single axis whose absolute component of unit exceeds threshold
// AxisNone when no component qualifies or when more than one does (near 45° swings)
func DominantAxis(unit r3.Vec, threshold float64) Axis {
	axis, hits := AxisNone, 0
	if math.Abs(unit.X) > threshold {
		axis, hits = AxisX, hits+1
	}
	if math.Abs(unit.Y) > threshold {
		axis, hits = AxisY, hits+1
	}
	if math.Abs(unit.Z) > threshold {
		axis, hits = AxisZ, hits+1
	}
	if hits != 1 {
		return AxisNone
	}
	return axis
}

// NearlyParallel reports whether two unit vectors are within threshold of (anti)parallel
func NearlyParallel(a, b r3.Vec, threshold float64) bool {
	return math.Abs(r3.Dot(a, b)) > threshold
}

// ClosestPointOnBox clamps p into the axis-aligned box [lo, hi]
func ClosestPointOnBox(p, lo, hi r3.Vec) r3.Vec {
	return r3.Vec{
		X: math.Max(lo.X, math.Min(p.X, hi.X)),
		Y: math.Max(lo.Y, math.Min(p.Y, hi.Y)),
		Z: math.Max(lo.Z, math.Min(p.Z, hi.Z)),
	}
}

// SphereIntersectsBox reports whether a sphere touches an axis-aligned box
func SphereIntersectsBox(center r3.Vec, radius float64, lo, hi r3.Vec) bool {
	closest := ClosestPointOnBox(center, lo, hi)
	return r3.Norm2(r3.Sub(center, closest)) <= radius*radius
}
