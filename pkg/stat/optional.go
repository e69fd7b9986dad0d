package stat

import (
	"encoding/json"
	"strconv"
)

// Optional is a float64 that may be absent.  Absent control limits mean "no threshold", which
// is not the same as a threshold at zero.
type Optional struct {
	value float64
	ok    bool
}

// None is the absent value
var None = Optional{}

// Some returns a present value
func Some(v float64) Optional {
	return Optional{value: v, ok: true}
}

// Get returns the value and whether it is present
func (o Optional) Get() (float64, bool) {
	return o.value, o.ok
}

// Valid reports whether the value is present
func (o Optional) Valid() bool {
	return o.ok
}

// Or returns the value if present, otherwise d
func (o Optional) Or(d float64) float64 {
	if !o.ok {
		return d
	}
	return o.value
}

func (o Optional) String() string {
	if !o.ok {
		return "none"
	}
	return strconv.FormatFloat(o.value, 'g', -1, 64)
}

// MarshalJSON encodes an absent value as null
func (o Optional) MarshalJSON() ([]byte, error) {
	if !o.ok {
		return []byte("null"), nil
	}
	return json.Marshal(o.value)
}

// UnmarshalJSON decodes null as an absent value
func (o *Optional) UnmarshalJSON(b []byte) error {
	if string(b) == "null" {
		*o = None
		return nil
	}
	var v float64
	if err := json.Unmarshal(b, &v); err != nil {
		return err
	}
	*o = Some(v)
	return nil
}
