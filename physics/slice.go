package physics

import (
	"fmt"

	"gonum.org/v1/gonum/spatial/r3"

	"github.com/lixenwraith/vi-saber/core"
	"github.com/lixenwraith/vi-saber/parameter"
	"github.com/lixenwraith/vi-saber/vmath"
)

// SwingClass buckets a swing by its dominant axis
type SwingClass uint8

const (
	SwingDiagonal SwingClass = iota
	SwingHorizontal
	SwingVertical
	SwingDepth
)

func (c SwingClass) String() string {
	switch c {
	case SwingHorizontal:
		return "horizontal"
	case SwingVertical:
		return "vertical"
	case SwingDepth:
		return "depth"
	default:
		return "diagonal"
	}
}

// ClassifySwing returns the class of swing; a zero swing is a depth thrust
func ClassifySwing(swing r3.Vec) SwingClass {
	unit := vmath.Normalize(swing)
	if vmath.IsZero(unit, vmath.Epsilon) {
		return SwingDepth
	}
	switch vmath.DominantAxis(unit, parameter.DominantAxisThreshold) {
	case vmath.AxisX:
		return SwingHorizontal
	case vmath.AxisY:
		return SwingVertical
	case vmath.AxisZ:
		return SwingDepth
	default:
		return SwingDiagonal
	}
}

// Per-class normals, built once
var (
	horizontalNormal = vmath.Normalize(r3.Vec{Y: 1, Z: parameter.CutDepthBias})
	verticalNormal   = vmath.Normalize(r3.Vec{X: 1, Z: parameter.CutDepthBias})
	depthNormal      = vmath.Up
)

// Resolve maps a contact center and swing to a cut plane; deterministic
func Resolve(center, swing r3.Vec) core.CutPlane {
	return core.CutPlane{Origin: center, Normal: PrimaryNormal(swing)}
}

// PrimaryNormal returns the first-choice normal for swing
func PrimaryNormal(swing r3.Vec) r3.Vec {
	switch ClassifySwing(swing) {
	case SwingHorizontal:
		return horizontalNormal
	case SwingVertical:
		return verticalNormal
	case SwingDepth:
		return depthNormal
	}

	// Diagonal swings have no component above the axis threshold, so they are never
	// parallel to right; the switch to up guards direct callers with other thresholds
	unit := vmath.Normalize(swing)
	ref := vmath.Right
	if vmath.NearlyParallel(unit, ref, parameter.ParallelThreshold) {
		ref = vmath.Up
	}
	return vmath.Normalize(r3.Cross(unit, ref))
}

// FallbackNormals returns the retry candidates for swing in fixed order
// Degenerate cross products are skipped, so fewer than three may be returned
func FallbackNormals(swing r3.Vec) []r3.Vec {
	unit := vmath.Normalize(swing)
	refs := [parameter.MaxFallbackNormals]r3.Vec{vmath.Up, vmath.Right, vmath.Forward}

	out := make([]r3.Vec, 0, len(refs))
	for _, ref := range refs {
		c := r3.Cross(unit, ref)
		if r3.Norm(c) < parameter.DegenerateNormalLength {
			continue
		}
		out = append(out, vmath.Normalize(c))
	}
	return out
}

// Cutter attempts a split along plane and reports success
type Cutter func(plane core.CutPlane) bool

// ResolveAndCut tries the primary plane then each fallback normal until cut succeeds
// attempts counts every cut invocation; on total failure the error wraps core.ErrGeometry
func ResolveAndCut(center, swing r3.Vec, cut Cutter) (plane core.CutPlane, attempts int, err error) {
	plane = Resolve(center, swing)
	attempts++
	if cut(plane) {
		return plane, attempts, nil
	}

	for _, n := range FallbackNormals(swing) {
		candidate := core.CutPlane{Origin: center, Normal: n}
		attempts++
		if cut(candidate) {
			return candidate, attempts, nil
		}
	}

	return plane, attempts, fmt.Errorf("%w: no cut after %d attempts", core.ErrGeometry, attempts)
}
