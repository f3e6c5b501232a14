// Package dates holds the calendar helpers shared by the scheduling engine.
//
// Due dates arrive as plain calendar days ("2025-03-14") with no time component.
// They are always interpreted as midnight in the caller's location, never UTC,
// so a due date does not drift by a day for operators west of Greenwich.
package dates

import (
	"fmt"
	"math"
	"strings"
	"time"
)

// DayLayout is the wire format for calendar days
const DayLayout = "2006-01-02"

// ParseLocalDateStrict parses a calendar day in loc.
// A full timestamp is accepted and truncated to its date part.
func ParseLocalDateStrict(value string, loc *time.Location) (time.Time, error) {
	if loc == nil {
		loc = time.Local
	}

	day := strings.TrimSpace(value)
	if i := strings.IndexByte(day, 'T'); i > 0 {
		day = day[:i]
	}

	parsed, err := time.ParseInLocation(DayLayout, day, loc)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid calendar date %q: %w", value, err)
	}
	return parsed, nil
}

// ParseLocalDate parses a calendar day in loc, returning fallback when the value
// cannot be parsed. Display and advisory code paths rely on this never failing.
func ParseLocalDate(value string, loc *time.Location, fallback time.Time) time.Time {
	parsed, err := ParseLocalDateStrict(value, loc)
	if err != nil {
		return fallback
	}
	return parsed
}

// StartOfDay returns midnight of t's calendar day in t's location
func StartOfDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

// EndOfDay returns midnight of the following calendar day in t's location
func EndOfDay(t time.Time) time.Time {
	return StartOfDay(t).AddDate(0, 0, 1)
}

// DaysBetween returns the number of calendar days from from to to.
// Negative when to is before from. Time of day is ignored.
func DaysBetween(from, to time.Time) int {
	// Compare on a UTC grid so DST transitions don't shorten a day to 23 hours
	a := time.Date(from.Year(), from.Month(), from.Day(), 0, 0, 0, 0, time.UTC)
	b := time.Date(to.Year(), to.Month(), to.Day(), 0, 0, 0, 0, time.UTC)
	return int(math.Round(b.Sub(a).Hours() / 24))
}

// HoursToDuration converts fractional hours to a duration rounded to the second
func HoursToDuration(hours float64) time.Duration {
	return time.Duration(math.Round(hours*3600)) * time.Second
}

// FormatDay formats t as a calendar day
func FormatDay(t time.Time) string {
	return t.Format(DayLayout)
}
