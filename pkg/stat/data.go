package stat

import "fmt"

// Data is a measurement series, either a flat sequence of observations or a sequence of
// subgroups.  Data is treated as immutable; constructors and accessors copy.
type Data struct {
	values    []float64
	subgroups [][]float64
	grouped   bool
}

// Flat returns a series of individual observations or counts
func Flat(values ...float64) Data {
	out := make([]float64, len(values))
	copy(out, values)
	return Data{values: out}
}

// Grouped returns a series of subgroups.  Subgroups are not required to be the same length
// here, the limit calculator validates them against the subgroup size.
func Grouped(subgroups ...[]float64) Data {
	out := make([][]float64, len(subgroups))
	for i, g := range subgroups {
		out[i] = append([]float64(nil), g...)
	}
	return Data{subgroups: out, grouped: true}
}

// Len returns the number of observations, or the number of subgroups for grouped data
func (d Data) Len() int {
	if d.grouped {
		return len(d.subgroups)
	}
	return len(d.values)
}

// IsGrouped reports whether the series is made of subgroups
func (d Data) IsGrouped() bool {
	return d.grouped
}

// Values returns a copy of the flat observations.  It is nil for grouped data.
func (d Data) Values() []float64 {
	if d.grouped {
		return nil
	}
	return append([]float64(nil), d.values...)
}

// Subgroups returns a copy of the subgroups.  It is nil for flat data.
func (d Data) Subgroups() [][]float64 {
	if !d.grouped {
		return nil
	}
	out := make([][]float64, len(d.subgroups))
	for i, g := range d.subgroups {
		out[i] = append([]float64(nil), g...)
	}
	return out
}

// Arity returns the length of the first subgroup, or 1 for flat or empty data
func (d Data) Arity() int {
	if d.grouped && len(d.subgroups) > 0 {
		return len(d.subgroups[0])
	}
	return 1
}

// Slice returns observations (or whole subgroups) [i, j)
func (d Data) Slice(i, j int) Data {
	if d.grouped {
		return Grouped(d.subgroups[i:j]...)
	}
	return Flat(d.values[i:j]...)
}

// Append returns d followed by o.  Both must have the same shape; empty data of either shape
// appends to anything.
func (d Data) Append(o Data) (Data, error) {
	switch {
	case o.Len() == 0:
		return d, nil
	case d.Len() == 0:
		return o, nil
	case d.grouped != o.grouped:
		return Data{}, fmt.Errorf("%w: cannot append grouped and flat data", ErrShape)
	case d.grouped:
		return Grouped(append(d.Subgroups(), o.subgroups...)...), nil
	default:
		return Flat(append(d.Values(), o.values...)...), nil
	}
}
