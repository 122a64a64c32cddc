package vmath

import (
	"math"

	"gonum.org/v1/gonum/spatial/r3"
)

// World axes. Blocks travel along -Z toward the player
var (
	Up      = r3.Vec{Y: 1}
	Down    = r3.Vec{Y: -1}
	Right   = r3.Vec{X: 1}
	Left    = r3.Vec{X: -1}
	Forward = r3.Vec{Z: 1}
	Back    = r3.Vec{Z: -1}
)

// Epsilon is the length under which a vector is treated as zero
const Epsilon = 1e-9

// IsZero reports whether v is shorter than eps
func IsZero(v r3.Vec, eps float64) bool {
	return r3.Norm2(v) <= eps*eps
}

// Normalize returns the unit vector of v, or the zero vector when v is (near) zero
// r3.Unit yields NaN for the zero vector, which must never leak into a verdict
func Normalize(v r3.Vec) r3.Vec {
	mag := r3.Norm(v)
	if mag <= Epsilon {
		return r3.Vec{}
	}
	inv := 1.0 / mag
	return r3.Vec{X: v.X * inv, Y: v.Y * inv, Z: v.Z * inv}
}

// ApproxEqual compares component-wise within eps
func ApproxEqual(a, b r3.Vec, eps float64) bool {
	return math.Abs(a.X-b.X) <= eps &&
		math.Abs(a.Y-b.Y) <= eps &&
		math.Abs(a.Z-b.Z) <= eps
}

// Lerp interpolates a→b by t without clamping
func Lerp(a, b r3.Vec, t float64) r3.Vec {
	return r3.Add(a, r3.Scale(t, r3.Sub(b, a)))
}
