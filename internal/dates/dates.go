// Package dates computes the reference dates a reminder run compares against.
package dates

import (
	"math"
	"strconv"
	"strings"
	"time"
)

// Layout is the display format of plan dates (uk-UA, two-digit day and month).
const Layout = "02.01.2006"

// parseLayout also accepts single-digit day and month.
const parseLayout = "2.1.2006"

// NoTime is returned by TimeToMinutes for a missing or malformed time so that
// such posts sort after every timed one.
const NoTime = math.MaxInt32

// Clock reads the current date in a fixed location.
type Clock struct {
	loc *time.Location
	now func() time.Time
}

// NewClock returns a Clock for loc backed by time.Now.
func NewClock(loc *time.Location) *Clock {
	if loc == nil {
		loc = time.UTC
	}
	return &Clock{loc: loc, now: time.Now}
}

// WithNow returns a copy of the clock that reads the time from now.
func (c *Clock) WithNow(now func() time.Time) *Clock {
	return &Clock{loc: c.loc, now: now}
}

// Location returns the clock's time zone.
func (c *Clock) Location() *time.Location {
	return c.loc
}

// Now returns the current instant in the clock's location.
func (c *Clock) Now() time.Time {
	return c.now().In(c.loc)
}

// Today returns today's display date.
func (c *Clock) Today() string {
	return c.FromNow(0)
}

// FromNow returns the display date n calendar days from today.
func (c *Clock) FromNow(n int) string {
	return c.Now().AddDate(0, 0, n).Format(Layout)
}

// Ref holds the dates one run is evaluated against.
type Ref struct {
	TodayDate   time.Time
	Today       string
	Tomorrow    string
	InThreeDays string
}

// Ref captures today, tomorrow and today+3 from a single clock reading.
func (c *Clock) Ref() Ref {
	now := c.Now()
	y, m, d := now.Date()
	return Ref{
		TodayDate:   time.Date(y, m, d, 0, 0, 0, 0, c.loc),
		Today:       now.Format(Layout),
		Tomorrow:    now.AddDate(0, 0, 1).Format(Layout),
		InThreeDays: now.AddDate(0, 0, 3).Format(Layout),
	}
}

// Parse converts a DD.MM.YYYY string into a date at midnight UTC.
// It reports false when s is not a valid date.
func Parse(s string) (time.Time, bool) {
	t, err := time.Parse(parseLayout, strings.TrimSpace(s))
	if err != nil {
		return time.Time{}, false
	}
	return t, true
}

// DayDelta returns the number of calendar days from b to a. Dates earlier
// than b give negative values; the time of day is ignored.
func DayDelta(a, b time.Time) int {
	ay, am, ad := a.Date()
	by, bm, bd := b.Date()
	da := time.Date(ay, am, ad, 0, 0, 0, 0, time.UTC)
	db := time.Date(by, bm, bd, 0, 0, 0, 0, time.UTC)
	hours := da.Sub(db).Hours()
	return int(math.Floor(hours / 24))
}

// TimeToMinutes parses H:MM or HH:MM into minutes since midnight.
func TimeToMinutes(hhmm string) int {
	h, m, ok := strings.Cut(strings.TrimSpace(hhmm), ":")
	if !ok || len(h) == 0 || len(h) > 2 || len(m) != 2 {
		return NoTime
	}
	hour, err := strconv.Atoi(h)
	if err != nil || hour < 0 || hour > 23 {
		return NoTime
	}
	minute, err := strconv.Atoi(m)
	if err != nil || minute < 0 || minute > 59 {
		return NoTime
	}
	return hour*60 + minute
}
