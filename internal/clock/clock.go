// Package clock is the frame clock the terminal host feeds to the simulation.
package clock

import "time"

// Clock samples wall time once per frame and reports the last frame's delta
// and the elapsed time since the last Reset, both in seconds.
type Clock struct {
	now      func() time.Time
	maxDelta time.Duration

	last    time.Time
	delta   float64
	elapsed float64
}

// New creates a clock reading time from now. A nil now uses time.Now.
// maxDelta caps a single frame's delta; zero or negative disables the cap.
func New(now func() time.Time, maxDelta time.Duration) *Clock {
	if now == nil {
		now = time.Now
	}
	c := &Clock{now: now, maxDelta: maxDelta}
	c.Reset()
	return c
}

// Tick samples the time source. Call it exactly once per frame, before Update.
func (c *Clock) Tick() {
	t := c.now()
	d := t.Sub(c.last)
	c.last = t

	if d < 0 {
		d = 0
	}
	if c.maxDelta > 0 && d > c.maxDelta {
		d = c.maxDelta
	}
	c.delta = d.Seconds()
	c.elapsed += c.delta
}

// Reset restarts the elapsed count from the current time.
func (c *Clock) Reset() {
	c.last = c.now()
	c.delta = 0
	c.elapsed = 0
}

// DeltaSeconds returns the length of the last sampled frame.
func (c *Clock) DeltaSeconds() float64 {
	return c.delta
}

// NowSeconds returns the elapsed simulation time since the last Reset.
func (c *Clock) NowSeconds() float64 {
	return c.elapsed
}
