package slicer

import (
	"gonum.org/v1/gonum/spatial/r3"

	"github.com/lixenwraith/vi-saber/vmath"
)

// Box is an axis-aligned solid
type Box struct {
	Min, Max r3.Vec
}

// BoxAt returns the cube of half extent h centered on c
func BoxAt(c r3.Vec, h float64) Box {
	e := r3.Vec{X: h, Y: h, Z: h}
	return Box{Min: r3.Sub(c, e), Max: r3.Add(c, e)}
}

func (b Box) Center() r3.Vec {
	return r3.Scale(0.5, r3.Add(b.Min, b.Max))
}

// Corners returns the eight corners, bit 0 = X, bit 1 = Y, bit 2 = Z selects Max
func (b Box) Corners() [8]r3.Vec {
	var c [8]r3.Vec
	for i := range c {
		p := b.Min
		if i&1 != 0 {
			p.X = b.Max.X
		}
		if i&2 != 0 {
			p.Y = b.Max.Y
		}
		if i&4 != 0 {
			p.Z = b.Max.Z
		}
		c[i] = p
	}
	return c
}

// boxEdges lists corner index pairs differing in exactly one bit
var boxEdges = [12][2]int{
	{0, 1}, {2, 3}, {4, 5}, {6, 7}, // X
	{0, 2}, {1, 3}, {4, 6}, {5, 7}, // Y
	{0, 4}, {1, 5}, {2, 6}, {3, 7}, // Z
}

// Piece is one side of a cut box: its hull vertices and their centroid
type Piece struct {
	Vertices []r3.Vec
	Centroid r3.Vec
}

func (p Piece) Center() r3.Vec {
	return p.Centroid
}

// BoxSplitter cuts Box solids
// Vertices within Epsilon of the plane are shared by both pieces
type BoxSplitter struct {
	Epsilon float64
}

// NewBoxSplitter returns a splitter with a micrometre tolerance
func NewBoxSplitter() *BoxSplitter {
	return &BoxSplitter{Epsilon: 1e-6}
}

// Split implements Splitter; solids other than Box always fail
func (s *BoxSplitter) Split(solid Solid, origin, normal r3.Vec) (Solid, Solid, bool) {
	box, ok := solid.(Box)
	if !ok {
		return nil, nil, false
	}
	n := vmath.Normalize(normal)
	if vmath.IsZero(n, vmath.Epsilon) {
		return nil, nil, false
	}

	corners := box.Corners()
	var dist [8]float64
	above, below := 0, 0
	for i, c := range corners {
		dist[i] = r3.Dot(r3.Sub(c, origin), n)
		switch {
		case dist[i] > s.Epsilon:
			above++
		case dist[i] < -s.Epsilon:
			below++
		}
	}
	if above == 0 || below == 0 {
		return nil, nil, false
	}

	var upper, lower []r3.Vec
	for i, c := range corners {
		if dist[i] >= -s.Epsilon {
			upper = append(upper, c)
		}
		if dist[i] <= s.Epsilon {
			lower = append(lower, c)
		}
	}
	for _, e := range boxEdges {
		da, db := dist[e[0]], dist[e[1]]
		if (da > s.Epsilon && db < -s.Epsilon) || (da < -s.Epsilon && db > s.Epsilon) {
			t := da / (da - db)
			p := vmath.Lerp(corners[e[0]], corners[e[1]], t)
			upper = append(upper, p)
			lower = append(lower, p)
		}
	}

	return newPiece(upper), newPiece(lower), true
}

func newPiece(vertices []r3.Vec) Piece {
	var sum r3.Vec
	for _, v := range vertices {
		sum = r3.Add(sum, v)
	}
	return Piece{
		Vertices: vertices,
		Centroid: r3.Scale(1/float64(len(vertices)), sum),
	}
}
