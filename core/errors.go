package core

import "errors"

var (
	// ErrConfiguration marks missing or invalid reference data at spawn time
	// Fatal to the block only; it is discarded without entering Active
	ErrConfiguration = errors.New("configuration fault")

	// ErrGeometry marks a cut that failed for every candidate normal
	// Degrades to a non-cut separation
	ErrGeometry = errors.New("geometry failure")

	ErrUnknownSaber = errors.New("unknown saber")
	ErrUnknownBlock = errors.New("unknown block")

	// ErrBlockInactive is returned for contacts on a block that is no longer Active
	ErrBlockInactive = errors.New("block not active")
)
