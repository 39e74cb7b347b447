package charts

import "github.com/GrzesiuKo/covidsimulation/internal/series"

// Errors returned by Compose. They are the same values as the series package
// uses so callers can test either with errors.Is.
var (
	ErrConfiguration = series.ErrConfiguration
	ErrInvariant     = series.ErrInvariant
)
