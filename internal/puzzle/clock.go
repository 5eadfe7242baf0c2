// Package puzzle implements the overworld puzzles: four-dial clock puzzles
// and button sequence puzzles. Their progress is kept in the ledger so a
// reloaded scene picks up where the player left off.
package puzzle

import "github.com/samdwyer/timelock/internal/ledger"

const minuteStep = 5

// Clock is a single dial with an hour hand (1..12) and a minute hand that
// moves in steps of five (0..55). Both hands wrap.
type Clock struct {
	hour   int
	minute int
}

// NewClock returns a clock at 12:00.
func NewClock() Clock {
	return Clock{hour: ledger.DefaultDial.Hour, minute: ledger.DefaultDial.Minute}
}

// IncrementHour moves the hour hand forward, 12 wraps to 1.
func (c *Clock) IncrementHour() {
	c.hour++
	if c.hour > 12 {
		c.hour = 1
	}
}

// DecrementHour moves the hour hand back, 1 wraps to 12.
func (c *Clock) DecrementHour() {
	c.hour--
	if c.hour < 1 {
		c.hour = 12
	}
}

// IncrementMinute moves the minute hand forward, 55 wraps to 0.
func (c *Clock) IncrementMinute() {
	c.minute += minuteStep
	if c.minute >= 60 {
		c.minute = 0
	}
}

// DecrementMinute moves the minute hand back, 0 wraps to 55.
func (c *Clock) DecrementMinute() {
	c.minute -= minuteStep
	if c.minute < 0 {
		c.minute = 60 - minuteStep
	}
}

// SetTime sets both hands, normalising out-of-range values: an hour below 1
// becomes 12, an hour above 12 wraps modulo 12 (multiples of 12 give 12),
// and a minute outside 0..59 becomes 0.
func (c *Clock) SetTime(hour, minute int) {
	switch {
	case hour < 1:
		hour = 12
	case hour > 12:
		if hour%12 == 0 {
			hour = 12
		} else {
			hour %= 12
		}
	}
	if minute < 0 || minute >= 60 {
		minute = 0
	}
	c.hour = hour
	c.minute = minute
}

// Hour returns the hour hand.
func (c Clock) Hour() int { return c.hour }

// Minute returns the minute hand.
func (c Clock) Minute() int { return c.minute }

// Time returns the clock as a ledger dial value.
func (c Clock) Time() ledger.Dial {
	return ledger.Dial{Hour: c.hour, Minute: c.minute}
}

// Shows reports whether the clock reads d.
func (c Clock) Shows(d ledger.Dial) bool {
	return c.hour == d.Hour && c.minute == d.Minute
}
