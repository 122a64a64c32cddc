package core

import (
	"fmt"
	"strings"

	"gonum.org/v1/gonum/spatial/r3"
)

// Direction is the swing a block demands
// Eight compass directions plus Any; values match the spawner's wire order
type Direction uint8

const (
	DirectionUp Direction = iota
	DirectionDown
	DirectionLeft
	DirectionRight
	DirectionUpLeft
	DirectionUpRight
	DirectionDownLeft
	DirectionDownRight
	DirectionAny
	DirectionCount
)

type directionInfo struct {
	name   string
	vector r3.Vec  // unit swing vector, zero for Any
	roll   float64 // arrow roll around the track axis, degrees
}

// directionTable is the whole direction space as data, built once
var directionTable [DirectionCount]directionInfo

func init() {
	diag := func(x, y float64) r3.Vec {
		return r3.Unit(r3.Vec{X: x, Y: y})
	}
	directionTable = [DirectionCount]directionInfo{
		DirectionUp:        {"up", r3.Vec{Y: 1}, 180},
		DirectionDown:      {"down", r3.Vec{Y: -1}, 0},
		DirectionLeft:      {"left", r3.Vec{X: -1}, -90},
		DirectionRight:     {"right", r3.Vec{X: 1}, 90},
		DirectionUpLeft:    {"up-left", diag(-1, 1), -135},
		DirectionUpRight:   {"up-right", diag(1, 1), 135},
		DirectionDownLeft:  {"down-left", diag(-1, -1), -45},
		DirectionDownRight: {"down-right", diag(1, -1), 45},
		DirectionAny:       {"any", r3.Vec{}, 0},
	}
}

// Valid reports whether d is inside the nine-value direction space
func (d Direction) Valid() bool {
	return d < DirectionCount
}

// Vector returns the required unit swing vector
// ok is false for Any and for out-of-range values
func (d Direction) Vector() (v r3.Vec, ok bool) {
	if d >= DirectionAny {
		return r3.Vec{}, false
	}
	return directionTable[d].vector, true
}

// ArrowRoll returns the arrow indicator rotation in degrees
func (d Direction) ArrowRoll() float64 {
	if !d.Valid() {
		return 0
	}
	return directionTable[d].roll
}

func (d Direction) String() string {
	if !d.Valid() {
		return fmt.Sprintf("direction(%d)", uint8(d))
	}
	return directionTable[d].name
}

// ParseDirection accepts the names produced by String, case-insensitive
func ParseDirection(s string) (Direction, error) {
	name := strings.ToLower(strings.TrimSpace(s))
	for d := Direction(0); d < DirectionCount; d++ {
		if directionTable[d].name == name {
			return d, nil
		}
	}
	return 0, fmt.Errorf("%w: unknown direction %q", ErrConfiguration, s)
}
