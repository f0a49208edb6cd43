package engine

import "time"

// Clock abstracts time.Now() to allow deterministic testing.
// The tick runner reads it once per tick and breaks the result down into a BrokenTime.
type Clock interface {
	Now() time.Time
}

// RealClock implements Clock using the standard time package.
type RealClock struct{}

// Now returns the current local time.
func (RealClock) Now() time.Time {
	return time.Now()
}
