package series

import "errors"

var (
	// ErrConfiguration reports a request the caller should not have made, such
	// as a series without dates or a start date.
	ErrConfiguration = errors.New("configuration error")

	// ErrInvariant reports input data that breaks a structural assumption, such
	// as unsorted dates.
	ErrInvariant = errors.New("invariant violated")
)
