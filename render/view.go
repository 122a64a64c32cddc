// Package render draws the sandbox front view: blocks approaching the player,
// their arrows, sliced debris, the saber tip and a status HUD
package render

import (
	"gonum.org/v1/gonum/spatial/r3"

	"github.com/lixenwraith/vi-saber/parameter"
)

// minDepth clamps the perspective divisor near the camera
const minDepth = 0.5

// View is a pinhole projection from world space onto terminal cells
// The camera sits on the track axis looking down +Z, world Y is up
type View struct {
	Width   int
	Height  int
	HUDRows int

	Focal   float64
	CameraZ float64
	CenterY float64 // world height mapped to the middle of the play area
	Aspect  float64 // cell height / width
}

// NewView creates a view for a w×h screen using the sandbox defaults
func NewView(w, h int, centerY float64) View {
	return View{
		Width:   w,
		Height:  h,
		HUDRows: parameter.HUDRows,
		Focal:   parameter.ViewFocalLength,
		CameraZ: parameter.ViewCameraZ,
		CenterY: centerY,
		Aspect:  parameter.ViewCellAspect,
	}
}

// Resize keeps projection parameters and updates the screen size
func (v *View) Resize(w, h int) {
	v.Width, v.Height = w, h
}

func (v View) playHeight() float64 {
	h := v.Height - v.HUDRows
	if h < 1 {
		h = 1
	}
	return float64(h)
}

// unitScale is cells per world unit at the hit plane
// Four world units of height fill the play area
func (v View) unitScale() float64 {
	return v.playHeight() / 4
}

// invDepth is the perspective factor at track coordinate z
// With the default focal length it is 1 at the hit plane
func (v View) invDepth(z float64) float64 {
	depth := z - v.CameraZ
	if depth < minDepth {
		depth = minDepth
	}
	return v.Focal / depth
}

// Visible reports whether p is in front of the camera
func (v View) Visible(p r3.Vec) bool {
	return p.Z-v.CameraZ >= minDepth
}

// Project maps p to fractional cell coordinates and the perspective factor
func (v View) Project(p r3.Vec) (x, y, scale float64) {
	scale = v.invDepth(p.Z)
	s := scale * v.unitScale()
	x = float64(v.Width)/2 + p.X*s*v.Aspect
	y = float64(v.HUDRows) + v.playHeight()/2 - (p.Y-v.CenterY)*s
	return x, y, scale
}

// Unproject maps cell coordinates back to the world point at track coordinate z
func (v View) Unproject(x, y, z float64) r3.Vec {
	s := v.invDepth(z) * v.unitScale()
	return r3.Vec{
		X: (x - float64(v.Width)/2) / (s * v.Aspect),
		Y: v.CenterY - (y-float64(v.HUDRows)-v.playHeight()/2)/s,
		Z: z,
	}
}

// Extent is the half size in cells (columns, rows) of a world length r at depth z
func (v View) Extent(r, z float64) (w, h float64) {
	s := v.invDepth(z) * v.unitScale() * r
	return s * v.Aspect, s
}
