package stat

import "errors"

var (
	// ErrUnknownChart is returned for a chart type outside the supported enumeration
	ErrUnknownChart = errors.New("unknown chart type")
	// ErrSubgroupSize is returned when the subgroup size is outside the domain of the chart
	ErrSubgroupSize = errors.New("unsupported subgroup size")
	// ErrSubgroupLength is returned when a subgroup does not have exactly n observations
	ErrSubgroupLength = errors.New("subgroup length does not match subgroup size")
	// ErrShape is returned when flat data is given to a subgroup chart or the reverse
	ErrShape = errors.New("data shape does not match chart type")
	// ErrInsufficientData is returned when there are too few observations to compute limits
	ErrInsufficientData = errors.New("insufficient data")
)
