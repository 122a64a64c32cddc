package render

import (
	"cmp"
	"fmt"
	"math"
	"slices"

	"github.com/gdamore/tcell/v2"

	"github.com/lixenwraith/vi-saber/core"
	"github.com/lixenwraith/vi-saber/event"
	"github.com/lixenwraith/vi-saber/status"
	"github.com/lixenwraith/vi-saber/system"
)

const controlsLine = "mouse:swing  tab:hand  space:pause  r:restart  m:mute  q:quit"

// Frame is one snapshot of the session to draw
type Frame struct {
	Blocks []system.Block
	Debris []system.Debris
	Sabers []system.SaberSnapshot // sampled hands only
	Active core.SaberID

	// Flashes are recent feedback events marked at their position
	Flashes []event.Feedback
}

// Draw renders f and the registry HUD onto screen; the caller calls Show
func Draw(screen tcell.Screen, v View, f Frame, reg *status.Registry) {
	screen.Clear()

	// Painter's algorithm: far to near
	blocks := slices.Clone(f.Blocks)
	slices.SortFunc(blocks, func(a, b system.Block) int {
		return cmp.Compare(b.Position.Z, a.Position.Z)
	})
	for i := range blocks {
		drawBlock(screen, v, &blocks[i])
	}

	for i := range f.Debris {
		drawDebris(screen, v, &f.Debris[i])
	}

	for i := range f.Flashes {
		drawFlash(screen, v, &f.Flashes[i])
	}

	for _, s := range f.Sabers {
		drawSaber(screen, v, s, s.ID == f.Active)
	}

	drawHUD(screen, v, reg)
}

func drawBlock(screen tcell.Screen, v View, b *system.Block) {
	if !v.Visible(b.Position) {
		return
	}

	var fill core.RGB
	glyph := glyphBlock
	switch b.State {
	case core.StateActive, core.StateSpawned:
		fill = b.Color.RGB()
	case core.StateResolvingSlice:
		fill = b.Color.RGB()
		glyph = glyphShade
	case core.StateResolvedMissed:
		fill = Lerp(b.Color.RGB(), Grayscale(b.Color.RGB()), 0.7).Scale(0.6)
	default:
		// sliced and fallback blocks are drawn as debris
		return
	}

	cx, cy, _ := v.Project(b.Position)
	w, h := v.Extent(b.HalfExtent, b.Position.Z)
	x0, x1 := cellSpan(cx, w)
	y0, y1 := cellSpan(cy, h)

	style := Fg(fill)
	for y := y0; y <= y1; y++ {
		for x := x0; x <= x1; x++ {
			screen.SetContent(x, y, glyph, nil, style)
		}
	}

	arrow := tcell.StyleDefault.Foreground(TCell(RGBWhite)).Background(TCell(fill))
	screen.SetContent(int(math.Floor(cx)), int(math.Floor(cy)), Arrow(b.Direction), nil, arrow)
}

func drawDebris(screen tcell.Screen, v View, d *system.Debris) {
	p := d.Body.Position
	if !v.Visible(p) {
		return
	}
	c := d.Color.RGB()
	if !d.Cut {
		c = Lerp(c, Grayscale(c), 0.5)
	}
	x, y, _ := v.Project(p)
	screen.SetContent(int(math.Floor(x)), int(math.Floor(y)), glyphDebris, nil, Fg(c))
}

func drawFlash(screen tcell.Screen, v View, f *event.Feedback) {
	var glyph rune
	switch f.Kind {
	case event.KindSliceFail:
		glyph = glyphFail
	case event.KindGeometryFallback:
		glyph = glyphFallback
	default:
		return
	}
	if !v.Visible(f.Position) {
		return
	}
	x, y, _ := v.Project(f.Position)
	screen.SetContent(int(math.Floor(x)), int(math.Floor(y)), glyph, nil, Fg(RGBAlert).Bold(true))
}

func drawSaber(screen tcell.Screen, v View, s system.SaberSnapshot, active bool) {
	c := s.Color.RGB()
	glyph := glyphSaber
	if !active {
		c = c.Scale(0.5)
		glyph = glyphTrail
	}
	x, y, _ := v.Project(s.Position)
	screen.SetContent(int(math.Floor(x)), int(math.Floor(y)), glyph, nil, Fg(c).Bold(active))
}

func drawHUD(screen tcell.Screen, v View, reg *status.Registry) {
	stats := fmt.Sprintf("sliced %d  missed %d  fallback %d  failed %d (%s)  peak %.1f",
		reg.Ints.Get(status.KeySliced).Load(),
		reg.Ints.Get(status.KeyMissed).Load(),
		reg.Ints.Get(status.KeyFallback).Load(),
		reg.Ints.Get(status.KeyFailedSwings).Load(),
		orDash(reg.Strings.Get(status.KeyLastReason).Load()),
		reg.Floats.Get(status.KeyPeakSpeed).Get(),
	)
	writeStr(screen, 1, 0, stats, RGBWhite)

	session := fmt.Sprintf("saber %s  speed %.1f  blocks %d  frame %d",
		orDash(reg.Strings.Get(status.KeyActiveSaber).Load()),
		reg.Floats.Get(status.KeySaberSpeed).Get(),
		reg.Ints.Get(status.KeyActiveBlocks).Load(),
		reg.Ints.Get(status.KeyFrames).Load(),
	)
	writeStr(screen, 1, 1, session, RGBDim)

	x := v.Width - 1
	if reg.Bools.Get(status.KeyPaused).Load() {
		x -= len("[PAUSED]")
		writeStr(screen, x, 1, "[PAUSED]", RGBAlert)
	}
	if reg.Bools.Get(status.KeyAudioDisabled).Load() {
		x -= len("[MUTED] ")
		writeStr(screen, x, 1, "[MUTED]", RGBDim)
	}

	writeStr(screen, 1, v.Height-1, controlsLine, RGBDim)
}

func writeStr(screen tcell.Screen, x, y int, s string, fg core.RGB) {
	style := Fg(fg)
	for _, r := range s {
		screen.SetContent(x, y, r, nil, style)
		x++
	}
}

func orDash(s string) string {
	if s == "" {
		return "-"
	}
	return s
}

// cellSpan is the inclusive cell range covering center±half, at least one cell
func cellSpan(center, half float64) (lo, hi int) {
	lo = int(math.Floor(center - half))
	hi = int(math.Floor(center + half))
	if hi < lo {
		hi = lo
	}
	return lo, hi
}
