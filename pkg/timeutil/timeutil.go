// Package timeutil provides the wall clock used to derive the current
// academic year, bound to a configurable timezone (Asia/Almaty by default).
// No external dependencies - uses only standard library.
package timeutil

import (
	"time"
)

// DefaultTimezone is the timezone used when none is configured.
const DefaultTimezone = "Asia/Almaty"

// AlmatyTZ is the Almaty timezone (UTC+5, no DST).
// Used as a fallback when the tz database is not available on the host.
var AlmatyTZ = time.FixedZone(DefaultTimezone, 5*60*60)

// Clock is the source of "now" for everything that depends on the calendar.
type Clock interface {
	Now() time.Time
}

// SystemClock reads the system clock and converts it to Location.
type SystemClock struct {
	Location *time.Location
}

// NewSystemClock creates a clock for the given location (UTC when nil).
func NewSystemClock(loc *time.Location) SystemClock {
	if loc == nil {
		loc = time.UTC
	}
	return SystemClock{Location: loc}
}

// Now returns the current time in the clock's location.
func (c SystemClock) Now() time.Time {
	loc := c.Location
	if loc == nil {
		loc = time.UTC
	}
	return time.Now().In(loc)
}

// FixedClock always returns the same instant. Used in tests.
type FixedClock struct {
	T time.Time
}

// Now returns the fixed instant.
func (c FixedClock) Now() time.Time {
	return c.T
}

// YearClock returns a FixedClock pinned to the middle of the given year.
func YearClock(year int) FixedClock {
	return FixedClock{T: Date(year, 6, 15)}
}

// CurrentYear returns the calendar year of clock.Now().
func CurrentYear(clock Clock) int {
	return clock.Now().Year()
}

// LoadLocation resolves a timezone name.
// Unknown names fall back to AlmatyTZ for the default zone and to UTC otherwise.
func LoadLocation(name string) *time.Location {
	if name == "" {
		name = DefaultTimezone
	}
	loc, err := time.LoadLocation(name)
	if err == nil {
		return loc
	}
	if name == DefaultTimezone {
		return AlmatyTZ
	}
	return time.UTC
}

// Date creates a time in Almaty timezone with the given date.
func Date(year, month, day int) time.Time {
	return time.Date(year, time.Month(month), day, 0, 0, 0, 0, AlmatyTZ)
}
