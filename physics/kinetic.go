package physics

import (
	"gonum.org/v1/gonum/spatial/r3"

	"github.com/lixenwraith/vi-saber/vmath"
)

// Body is a free-moving point mass, used for separated pieces
type Body struct {
	Position r3.Vec
	Velocity r3.Vec
}

// Integrate performs semi-implicit Euler: v = v + a*dt; p = p + v*dt
func Integrate(b *Body, accel r3.Vec, dt float64) r3.Vec {
	b.Velocity = r3.Add(b.Velocity, r3.Scale(dt, accel))
	b.Position = r3.Add(b.Position, r3.Scale(dt, b.Velocity))
	return b.Position
}

// ApplyImpulse adds velocity delta (unit mass)
func ApplyImpulse(b *Body, impulse r3.Vec) {
	b.Velocity = r3.Add(b.Velocity, impulse)
}

// SetImpulse overrides velocity
func SetImpulse(b *Body, velocity r3.Vec) {
	b.Velocity = velocity
}

// GravityAccel returns the downward acceleration for magnitude g
func GravityAccel(g float64) r3.Vec {
	return r3.Scale(g, vmath.Down)
}

// SeparationImpulses returns the impulses for the pieces on the positive and
// negative side of a cut with the given normal: ±normal·separation plus up·lift
// A zero normal yields pure lift for both pieces
func SeparationImpulses(normal r3.Vec, separation, lift float64) (upper, lower r3.Vec) {
	n := vmath.Normalize(normal)
	up := r3.Scale(lift, vmath.Up)
	upper = r3.Add(r3.Scale(separation, n), up)
	lower = r3.Add(r3.Scale(-separation, n), up)
	return upper, lower
}
