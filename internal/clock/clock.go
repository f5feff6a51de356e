package clock

import (
	"time"
)

// DefaultZone is the operational civil time zone used when none is configured.
const DefaultZone = "America/Santiago"

// fallbackOffsetSeconds is a fixed UTC-3 offset (no daylight saving) used
// when the configured zone name cannot be resolved on the host.
const fallbackOffsetSeconds = -3 * 60 * 60

// Clock converts between storage time (UTC) and the gym's civil time zone.
// All "today" and day-boundary computations in the application go through
// a Clock; stored timestamps are never truncated to dates directly.
type Clock struct {
	loc      *time.Location
	fallback bool
}

// New resolves zoneName into a Clock. If the zone database does not know the
// name, the Clock deterministically falls back to a fixed UTC-3 offset
// instead of failing; UsedFallback reports whether that happened.
func New(zoneName string) *Clock {
	if zoneName == "" {
		zoneName = DefaultZone
	}
	loc, err := time.LoadLocation(zoneName)
	if err != nil {
		return &Clock{loc: time.FixedZone("UTC-3", fallbackOffsetSeconds), fallback: true}
	}
	return &Clock{loc: loc}
}

// UsedFallback reports whether the configured zone could not be resolved.
func (c *Clock) UsedFallback() bool {
	return c.fallback
}

// Location returns the operational time zone.
func (c *Clock) Location() *time.Location {
	return c.loc
}

// NowLocal returns the current instant expressed in the operational zone.
func (c *Clock) NowLocal() time.Time {
	return time.Now().In(c.loc)
}

// Today returns midnight of the current local calendar day.
func (c *Clock) Today() time.Time {
	return c.LocalDay(time.Now())
}

// LocalDay returns midnight (in the operational zone) of the calendar day
// the given instant falls on. A payment stored at 02:50 UTC may belong to
// the previous local day; this is the single place that decides.
func (c *Clock) LocalDay(t time.Time) time.Time {
	lt := t.In(c.loc)
	return time.Date(lt.Year(), lt.Month(), lt.Day(), 0, 0, 0, 0, c.loc)
}

// DayBounds returns the UTC instants [start, end) spanning the local
// calendar day that contains the given time. Computing the end as midnight
// of the next civil day keeps the window correct across DST transitions.
func (c *Clock) DayBounds(day time.Time) (time.Time, time.Time) {
	lt := day.In(c.loc)
	start := time.Date(lt.Year(), lt.Month(), lt.Day(), 0, 0, 0, 0, c.loc)
	end := time.Date(lt.Year(), lt.Month(), lt.Day()+1, 0, 0, 0, 0, c.loc)
	return start.UTC(), end.UTC()
}

// SameLocalDay reports whether two instants fall on the same local calendar day.
func (c *Clock) SameLocalDay(a, b time.Time) bool {
	return c.LocalDay(a).Equal(c.LocalDay(b))
}

// ParseDay parses a YYYY-MM-DD string as midnight of that local day.
func (c *Clock) ParseDay(s string) (time.Time, error) {
	return time.ParseInLocation("2006-01-02", s, c.loc)
}

// FormatDay renders a local day as YYYY-MM-DD.
func (c *Clock) FormatDay(day time.Time) string {
	return day.In(c.loc).Format("2006-01-02")
}
