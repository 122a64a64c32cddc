package render

import "github.com/lixenwraith/vi-saber/core"

// arrowGlyphs indexed by core.Direction
var arrowGlyphs = [core.DirectionCount]rune{
	core.DirectionUp:        '↑',
	core.DirectionDown:      '↓',
	core.DirectionLeft:      '←',
	core.DirectionRight:     '→',
	core.DirectionUpLeft:    '↖',
	core.DirectionUpRight:   '↗',
	core.DirectionDownLeft:  '↙',
	core.DirectionDownRight: '↘',
	core.DirectionAny:       '•',
}

// Arrow returns the glyph for d, '?' when invalid
func Arrow(d core.Direction) rune {
	if !d.Valid() {
		return '?'
	}
	return arrowGlyphs[d]
}

const (
	glyphBlock  = '█'
	glyphShade  = '▓'
	glyphDebris = '▪'
	glyphSaber  = '✦'
	glyphTrail  = '·'

	glyphFail     = '✗'
	glyphFallback = '◇'
)
