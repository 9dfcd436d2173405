// Package dateutil converts calendar dates of the business time zone into
// half-open timestamp ranges.
package dateutil

import (
	"os"
	"sync"
	"time"
)

const (
	DefaultTimezone = "America/Sao_Paulo"
	Layout          = "2006-01-02"
)

var (
	locOnce sync.Once
	loc     *time.Location
)

// Location returns the zone named by APP_TIMEZONE, falling back to
// DefaultTimezone and finally UTC when the zone database lacks it.
func Location() *time.Location {
	locOnce.Do(func() {
		loc = LoadLocation(os.Getenv("APP_TIMEZONE"))
	})
	return loc
}

func LoadLocation(name string) *time.Location {
	if name == "" {
		name = DefaultTimezone
	}
	l, err := time.LoadLocation(name)
	if err != nil {
		if l, err = time.LoadLocation(DefaultTimezone); err != nil {
			return time.UTC
		}
	}
	return l
}

// ParseDate parses a YYYY-MM-DD date as midnight in loc.
func ParseDate(s string, loc *time.Location) (time.Time, error) {
	return time.ParseInLocation(Layout, s, loc)
}

// Day truncates t to midnight of its calendar day in loc.
func Day(t time.Time, loc *time.Location) time.Time {
	y, m, d := t.In(loc).Date()
	return time.Date(y, m, d, 0, 0, 0, 0, loc)
}

// Range turns the inclusive calendar days [start, end] into [from, to).
func Range(start, end time.Time, loc *time.Location) (time.Time, time.Time) {
	return Day(start, loc), Day(end, loc).AddDate(0, 0, 1)
}

// OnDate returns midnight in loc of the calendar date t carries in its own
// location. Date columns come back from the database as UTC midnight.
func OnDate(t time.Time, loc *time.Location) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, loc)
}
