package service

import "time"

// SystemClock implements Clock on the wall clock, pinned to a location so
// the end-of-day boundary is not re-derived from a changing environment
// mid-session.
type SystemClock struct {
	loc *time.Location
}

func NewSystemClock(loc *time.Location) *SystemClock {
	if loc == nil {
		loc = time.Local
	}
	return &SystemClock{loc: loc}
}

func (c *SystemClock) Now() time.Time {
	return time.Now().In(c.loc)
}

// EndOfDay returns 23:59:59.999 of t's calendar day in the clock's
// location, matching the millisecond resolution of the stored timestamps.
func (c *SystemClock) EndOfDay(t time.Time) time.Time {
	t = t.In(c.loc)
	return time.Date(t.Year(), t.Month(), t.Day(), 23, 59, 59, 999*int(time.Millisecond), c.loc)
}
