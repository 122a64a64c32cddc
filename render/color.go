package render

import (
	"github.com/gdamore/tcell/v2"

	"github.com/lixenwraith/vi-saber/core"
)

var (
	RGBBlack = core.RGB{}
	RGBWhite = core.RGB{R: 235, G: 235, B: 235}
	RGBDim   = core.RGB{R: 100, G: 100, B: 110}
	RGBAlert = core.RGB{R: 255, G: 200, B: 50}
)

// Lerp linearly interpolates between two colors
// t=0 returns a, t=1 returns b
func Lerp(a, b core.RGB, t float64) core.RGB {
	if t <= 0 {
		return a
	}
	if t >= 1 {
		return b
	}
	return core.RGB{
		R: uint8(float64(a.R) + t*float64(int(b.R)-int(a.R))),
		G: uint8(float64(a.G) + t*float64(int(b.G)-int(a.G))),
		B: uint8(float64(a.B) + t*float64(int(b.B)-int(a.B))),
	}
}

// Grayscale converts using luminance weights
func Grayscale(c core.RGB) core.RGB {
	gray := uint8((int(c.R)*299 + int(c.G)*587 + int(c.B)*114) / 1000)
	return core.RGB{R: gray, G: gray, B: gray}
}

// TCell converts to a true-color tcell color
func TCell(c core.RGB) tcell.Color {
	return tcell.NewRGBColor(int32(c.R), int32(c.G), int32(c.B))
}

// Fg is a default-background style with foreground c
func Fg(c core.RGB) tcell.Style {
	return tcell.StyleDefault.Foreground(TCell(c))
}
