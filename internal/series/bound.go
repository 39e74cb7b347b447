package series

import (
	"strconv"
	"strings"
	"time"

	"github.com/GrzesiuKo/covidsimulation/internal/dates"
)

type boundKind int

const (
	boundNone boundKind = iota
	boundIndex
	boundDate
)

// Bound addresses a position in a Series either by raw offset or by calendar
// day. The zero value is an unset bound.
type Bound struct {
	kind  boundKind
	index int
	day   time.Time
}

// Index returns a bound at raw offset i.
func Index(i int) Bound {
	return Bound{kind: boundIndex, index: i}
}

// On returns a bound at the calendar day of t.
func On(t time.Time) Bound {
	return Bound{kind: boundDate, day: dates.Day(t)}
}

// ParseBound reads a bound from user input. An empty string is an unset
// bound, an integer is an offset and anything else must be an ISO date.
func ParseBound(s string) (Bound, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return Bound{}, nil
	}
	if i, err := strconv.Atoi(s); err == nil {
		return Index(i), nil
	}
	day, err := dates.Parse(s)
	if err != nil {
		return Bound{}, err
	}
	return On(day), nil
}

// IsZero reports whether b is unset.
func (b Bound) IsZero() bool {
	return b.kind == boundNone
}

func (b Bound) String() string {
	switch b.kind {
	case boundIndex:
		return strconv.Itoa(b.index)
	case boundDate:
		return dates.Format(b.day)
	default:
		return ""
	}
}

// MarshalText renders b the way ParseBound reads it.
func (b Bound) MarshalText() ([]byte, error) {
	return []byte(b.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (b *Bound) UnmarshalText(text []byte) error {
	parsed, err := ParseBound(string(text))
	if err != nil {
		return err
	}
	*b = parsed
	return nil
}
