// Package series holds calendar-aligned value sequences.
//
// A Series always covers a gap-free run of calendar days with exactly one value
// per day. Sparse input is densified by carrying the last known value forward.
package series

import (
	"fmt"
	"slices"
	"time"

	"github.com/GrzesiuKo/covidsimulation/internal/dates"
)

// DefaultFill is the value used for days preceding the first known value.
const DefaultFill = 0.0

// Series is an immutable run of daily values.
type Series struct {
	dates  []time.Time
	values []float64
}

type config struct {
	dates     []time.Time
	hasDates  bool
	start     time.Time
	hasStart  bool
	startText string
}

// Option configures New.
type Option func(*config)

// WithDates supplies the (possibly sparse) day of every value.
func WithDates(days []time.Time) Option {
	return func(c *config) {
		c.dates = days
		c.hasDates = true
	}
}

// WithStartDate makes the values a dense run starting at day.
func WithStartDate(day time.Time) Option {
	return func(c *config) {
		c.start = day
		c.hasStart = true
	}
}

// WithStartDateString is WithStartDate for an ISO-8601 string. An empty
// string leaves the start date unset.
func WithStartDateString(day string) Option {
	return func(c *config) {
		if day == "" {
			return
		}
		c.startText = day
		c.hasStart = true
	}
}

// New builds a Series from values and either their dates or a start date.
// When both are supplied the start date wins.
func New(values []float64, opts ...Option) (*Series, error) {
	var c config
	for _, opt := range opts {
		opt(&c)
	}

	switch {
	case c.hasStart:
		start := c.start
		if c.startText != "" {
			day, err := dates.Parse(c.startText)
			if err != nil {
				return nil, fmt.Errorf("parsing start date: %w", err)
			}
			start = day
		}
		return FromStart(start, values), nil
	case c.hasDates:
		return FromDates(c.dates, values)
	default:
		return nil, fmt.Errorf("%w: either dates or a start date must be specified", ErrConfiguration)
	}
}

// FromStart returns the dense series whose first value falls on start.
func FromStart(start time.Time, values []float64) *Series {
	return &Series{
		dates:  consecutive(dates.Day(start), len(values)),
		values: slices.Clone(values),
	}
}

// FromDates densifies values observed on the given days. Days must be in
// non-decreasing order; a repeated day keeps its last value. Every missing day
// between the first and last takes the most recent earlier value, or
// DefaultFill before any value is known.
func FromDates(days []time.Time, values []float64) (*Series, error) {
	if len(days) != len(values) {
		return nil, fmt.Errorf("%w: %d dates for %d values", ErrInvariant, len(days), len(values))
	}
	if len(days) == 0 {
		return nil, fmt.Errorf("%w: at least one date is required", ErrConfiguration)
	}

	first := dates.Day(days[0])
	known := make(map[int]float64, len(days))
	prev := first
	for i, d := range days {
		d = dates.Day(d)
		if d.Before(prev) {
			return nil, fmt.Errorf("%w: dates not sorted, %s follows %s", ErrInvariant, dates.Format(d), dates.Format(prev))
		}
		known[dates.DaysBetween(first, d)] = values[i]
		prev = d
	}

	span := dates.DaysBetween(first, prev) + 1
	s := &Series{
		dates:  consecutive(first, span),
		values: make([]float64, span),
	}
	last := DefaultFill
	for i := range s.values {
		if v, ok := known[i]; ok {
			last = v
		}
		s.values[i] = last
	}
	return s, nil
}

func consecutive(start time.Time, n int) []time.Time {
	out := make([]time.Time, n)
	for i := range out {
		out[i] = start.AddDate(0, 0, i)
	}
	return out
}

// Len returns the number of days covered.
func (s *Series) Len() int {
	return len(s.values)
}

// FirstDate returns the earliest day, or the zero time for an empty series.
func (s *Series) FirstDate() time.Time {
	if len(s.dates) == 0 {
		return time.Time{}
	}
	return s.dates[0]
}

// LastDate returns the latest day, or the zero time for an empty series.
func (s *Series) LastDate() time.Time {
	if len(s.dates) == 0 {
		return time.Time{}
	}
	return s.dates[len(s.dates)-1]
}

// Dates returns a copy of the covered days.
func (s *Series) Dates() []time.Time {
	return slices.Clone(s.dates)
}

// Values returns a copy of the daily values.
func (s *Series) Values() []float64 {
	return slices.Clone(s.values)
}

// ResolveIndex maps b to an offset in [0, Len()-1]. Out-of-range offsets and
// days clamp to the nearest end; an unset bound resolves to 0.
func (s *Series) ResolveIndex(b Bound) int {
	var i int
	switch b.kind {
	case boundIndex:
		i = b.index
	case boundDate:
		i = dates.DaysBetween(s.FirstDate(), b.day)
	}
	return clamp(i, 0, s.Len()-1)
}

// ResolveString parses value with ParseBound and resolves it.
func (s *Series) ResolveString(value string) (int, error) {
	b, err := ParseBound(value)
	if err != nil {
		return 0, err
	}
	return s.ResolveIndex(b), nil
}

// ValueAt returns the value at the resolved position of b. An empty series has
// no values and yields DefaultFill.
func (s *Series) ValueAt(b Bound) float64 {
	if s.Len() == 0 {
		return DefaultFill
	}
	return s.values[s.ResolveIndex(b)]
}

// Trim returns the days from start through stop inclusive. An unset start keeps
// the beginning and an unset stop keeps the end.
func (s *Series) Trim(start, stop Bound) *Series {
	from := s.ResolveIndex(start)
	to := s.Len()
	if !stop.IsZero() {
		to = min(s.ResolveIndex(stop)+1, s.Len())
	}
	if from >= to {
		return &Series{}
	}
	return &Series{
		dates:  slices.Clone(s.dates[from:to]),
		values: slices.Clone(s.values[from:to]),
	}
}

// Equal reports whether both series cover the same days with the same values.
func (s *Series) Equal(other *Series) bool {
	if other == nil {
		return false
	}
	return slices.EqualFunc(s.dates, other.dates, time.Time.Equal) && slices.Equal(s.values, other.values)
}

func clamp(i, lo, hi int) int {
	if hi < lo {
		return lo
	}
	return max(lo, min(i, hi))
}
