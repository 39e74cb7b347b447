package commands

import "time"

const (
	// DefaultQueryRange is how far back range queries reach by default.
	DefaultQueryRange = 90 * 24 * time.Hour

	// OutputTable selects the table renderer.
	OutputTable = "table"
)
