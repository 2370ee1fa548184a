package chip8

import (
	"time"
)

// TimerPeriod is the interval between timer decrements. The delay and sound
// timers decay at 60Hz regardless of the instruction rate.
const TimerPeriod = time.Second / 60

// TimerClock schedules the 60Hz decay of the delay and sound timers,
// decoupled from the CPU clock driving Step.
type TimerClock struct {
	last time.Time
}

// TickIfDue reports whether a timer decrement is due at now, consuming the
// elapsed interval. At most one decrement is due per TimerPeriod.
func (tc *TimerClock) TickIfDue(now time.Time) bool {
	if tc.last.IsZero() {
		tc.last = now
		return false
	}

	if now.Sub(tc.last) < TimerPeriod {
		return false
	}

	tc.last = now
	return true
}

// Reset forgets the last decrement time.
func (tc *TimerClock) Reset() {
	tc.last = time.Time{}
}

// DecayTimers decrements the delay and sound timers, clamping at zero.
// Call once per due TimerClock tick.
func (c *Chip8) DecayTimers() {
	if c.Delay > 0 {
		c.Delay--
	}
	if c.Sound > 0 {
		c.Sound--
	}
}

// ToneOn reports whether the sound timer is calling for a tone. The engine
// never produces audio itself.
func (c *Chip8) ToneOn() bool {
	return c.Sound > 0
}
