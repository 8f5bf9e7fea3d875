package core

import "time"

// Clock measures elapsed time between frame ticks in seconds.
type Clock struct {
	startTime time.Time
	lastTick  time.Time
}

func NewClock() *Clock {
	return &Clock{}
}

// Starts the provided clock. Resets elapsed time.
func (c *Clock) Start() {
	now := time.Now()
	c.startTime = now
	c.lastTick = now
}

// Tick returns the seconds elapsed since the previous Tick (or Start) and
// advances the clock. Has no effect on non-started clocks.
func (c *Clock) Tick() float64 {
	if c.startTime.IsZero() {
		return 0
	}
	now := time.Now()
	elapsed := now.Sub(c.lastTick).Seconds()
	c.lastTick = now
	return elapsed
}

// Elapsed returns the total seconds since Start.
func (c *Clock) Elapsed() float64 {
	if c.startTime.IsZero() {
		return 0
	}
	return time.Since(c.startTime).Seconds()
}
