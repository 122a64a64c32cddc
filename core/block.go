package core

import (
	"fmt"
	"time"
)

// BlockID identifies a block for its whole lifetime, never reused within a session
type BlockID uint64

// BlockSpec is what the spawner supplies for one block
type BlockSpec struct {
	Color     Color
	Direction Direction
	Column    int
	Row       int
	SpawnTime time.Time
}

// BlockState is the lifecycle position of a block
type BlockState uint8

const (
	StateSpawned BlockState = iota
	StateActive
	StateResolvingSlice
	StateResolvedSliced
	StateResolvedFallback
	StateResolvedMissed
)

// Resolved reports whether s is terminal
func (s BlockState) Resolved() bool {
	return s >= StateResolvedSliced
}

func (s BlockState) String() string {
	switch s {
	case StateSpawned:
		return "spawned"
	case StateActive:
		return "active"
	case StateResolvingSlice:
		return "resolving"
	case StateResolvedSliced:
		return "sliced"
	case StateResolvedFallback:
		return "fallback"
	case StateResolvedMissed:
		return "missed"
	default:
		return fmt.Sprintf("state(%d)", uint8(s))
	}
}

// SaberID names a hand; there is exactly one saber per hand
type SaberID uint8

const (
	SaberLeft SaberID = iota
	SaberRight
	SaberCount
)

func (id SaberID) String() string {
	switch id {
	case SaberLeft:
		return "left"
	case SaberRight:
		return "right"
	default:
		return fmt.Sprintf("saber(%d)", uint8(id))
	}
}

// DefaultColor is the color a hand carries unless configured otherwise
func (id SaberID) DefaultColor() Color {
	if id == SaberRight {
		return ColorBlue
	}
	return ColorRed
}
