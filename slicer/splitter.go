// Package slicer splits solids along a plane
// BoxSplitter is the reference implementation over axis-aligned boxes
package slicer

import (
	"gonum.org/v1/gonum/spatial/r3"
)

// Solid is anything the splitter can cut
type Solid interface {
	Center() r3.Vec
}

// Splitter cuts solid along the plane through origin with normal
// ok is false on a degenerate normal or a plane that misses the solid
type Splitter interface {
	Split(solid Solid, origin, normal r3.Vec) (upper, lower Solid, ok bool)
}

// SplitterFunc adapts a function to Splitter
type SplitterFunc func(solid Solid, origin, normal r3.Vec) (Solid, Solid, bool)

func (f SplitterFunc) Split(solid Solid, origin, normal r3.Vec) (Solid, Solid, bool) {
	return f(solid, origin, normal)
}
