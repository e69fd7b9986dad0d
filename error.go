package spc

import "errors"

var (
	// ErrLimitsUnsupported is returned when custom limits are given for a chart that has none
	ErrLimitsUnsupported = errors.New("chart does not support control limits")
	// ErrBoundaries is returned for changepoints that do not partition the series
	ErrBoundaries = errors.New("invalid changepoint boundaries")
	// ErrExtraDataSegmented is returned when extra data is combined with changepoints
	ErrExtraDataSegmented = errors.New("extra data cannot be used with changepoints")
	// ErrNoRenderer is returned when a chart image is requested from a command without a renderer
	ErrNoRenderer = errors.New("no renderer configured")
)
