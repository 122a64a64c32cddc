package core

import (
	"fmt"
	"strings"
)

// Color identifies which saber may cut a block
// The space is closed: exactly two values, A (red, left hand) and B (blue, right hand)
type Color uint8

const (
	ColorRed  Color = iota // A
	ColorBlue              // B
	ColorCount
)

// Valid reports whether c is one of the two defined colors
func (c Color) Valid() bool {
	return c < ColorCount
}

func (c Color) String() string {
	switch c {
	case ColorRed:
		return "red"
	case ColorBlue:
		return "blue"
	default:
		return fmt.Sprintf("color(%d)", uint8(c))
	}
}

// ParseColor accepts "red"/"a" and "blue"/"b", case-insensitive
func ParseColor(s string) (Color, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "red", "a":
		return ColorRed, nil
	case "blue", "b":
		return ColorBlue, nil
	}
	return 0, fmt.Errorf("%w: unknown color %q", ErrConfiguration, s)
}

// RGB stores explicit 8-bit color channels, decoupled from tcell
type RGB struct {
	R, G, B uint8
}

var (
	RGBRed  = RGB{220, 40, 40}
	RGBBlue = RGB{40, 90, 230}
	RGBGray = RGB{90, 90, 90}
)

// RGB returns the presentation color for c
func (c Color) RGB() RGB {
	switch c {
	case ColorRed:
		return RGBRed
	case ColorBlue:
		return RGBBlue
	default:
		return RGBGray
	}
}

// Scale dims or brightens all channels by factor, clamped to [0,255]
func (c RGB) Scale(factor float64) RGB {
	if factor <= 0 {
		return RGB{}
	}
	clamp := func(v float64) uint8 {
		if v > 255 {
			return 255
		}
		return uint8(v)
	}
	return RGB{
		R: clamp(float64(c.R) * factor),
		G: clamp(float64(c.G) * factor),
		B: clamp(float64(c.B) * factor),
	}
}
