package engine

import "time"

// Clock is the time source the session reads each tick
type Clock interface {
	Now() time.Time
}

// SystemClock returns real wall time with monotonic readings
type SystemClock struct{}

// NewSystemClock creates a system clock
func NewSystemClock() SystemClock {
	return SystemClock{}
}

// Now returns time.Now
func (SystemClock) Now() time.Time {
	return time.Now()
}
