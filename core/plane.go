package core

import "gonum.org/v1/gonum/spatial/r3"

// CutPlane is an origin and unit normal in the target's local frame
type CutPlane struct {
	Origin r3.Vec
	Normal r3.Vec
}

// SignedDistance returns the distance of p from the plane, positive on the normal side
func (p CutPlane) SignedDistance(point r3.Vec) float64 {
	return r3.Dot(r3.Sub(point, p.Origin), p.Normal)
}
