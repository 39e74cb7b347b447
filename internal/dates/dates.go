// Package dates converts between ISO-8601 strings and calendar days.
//
// A calendar day is represented as a time.Time at midnight UTC so that it can be
// handed to any charting library without conversion.
package dates

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

// ErrParse is returned when a string is not a recognisable date.
var ErrParse = errors.New("invalid date")

// Layout is the ISO-8601 calendar date layout.
const Layout = "2006-01-02"

const day = 24 * time.Hour

// Parse returns the calendar day named by s. Both plain dates and RFC 3339
// timestamps are accepted; a timestamp maps to its UTC calendar day, as Day
// does.
func Parse(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	if t, err := time.Parse(Layout, s); err == nil {
		return t, nil
	}
	if t, err := time.Parse(time.RFC3339, s); err == nil {
		return Day(t), nil
	}
	if t, err := time.Parse("2006-01-02T15:04:05", s); err == nil {
		return Day(t), nil
	}
	return time.Time{}, fmt.Errorf("%w: %q", ErrParse, s)
}

// MustParse is like Parse but panics on error. Intended for tests and constants.
func MustParse(s string) time.Time {
	t, err := Parse(s)
	if err != nil {
		panic(err)
	}
	return t
}

// Day truncates t to midnight UTC of its UTC calendar day, whatever zone t is
// in. Parse follows the same rule for timestamps.
func Day(t time.Time) time.Time {
	y, m, d := t.UTC().Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// Add returns the day n days after t.
func Add(t time.Time, n int) time.Time {
	return Day(t).AddDate(0, 0, n)
}

// DaysBetween returns the number of whole days from a to b.
func DaysBetween(a, b time.Time) int {
	return int(Day(b).Sub(Day(a)) / day)
}

// Format renders t as YYYY-MM-DD.
func Format(t time.Time) string {
	return t.UTC().Format(Layout)
}
