// Package metric names the quantities written to analysis reports.  A name is a base identifier
// followed by logfmt metadata, e.g. x-mr-x_center[segment=1 start=8 end=20 @extra].
package metric

import (
	"bytes"
	"fmt"
	"sort"
	"strings"

	"github.com/BTBurke/spc/pkg/stat"
	"github.com/go-logfmt/logfmt"
)

type metadata map[string]string

// Name identifies a reported value.  Names are values; the With methods return modified copies.
type Name struct {
	name string
	md   metadata
}

// NewName returns a new name with a copy of the metadata
func NewName(name string, md map[string]string) Name {
	cp := make(metadata, len(md))
	for k, v := range md {
		cp[k] = v
	}
	return Name{name: name, md: cp}
}

// ForChart returns the base name for a quantity of a chart, e.g. p_upper
func ForChart(c stat.Chart, quantity string) Name {
	return NewName(c.Slug()+"_"+quantity, nil)
}

// Base is the name without metadata
func (n Name) Base() string {
	return n.name
}

// String marshals the name, such as x-mr-x_center[segment=1 start=8 end=20]
func (n Name) String() string {
	md, err := MarshalText(n.md)
	if err != nil {
		md = []byte{}
	}
	return n.name + string(md)
}

// WithMetadata returns a copy with the metadata upserted
func (n Name) WithMetadata(md map[string]string) Name {
	out := NewName(n.name, n.md)
	for k, v := range md {
		out.md[k] = v
	}
	return out
}

// WithSpan returns a copy labelled with the segment number and the [start, end) range of the
// data it covers
func (n Name) WithSpan(segment, start, end int) Name {
	return n.WithMetadata(map[string]string{
		"segment": fmt.Sprint(segment),
		"start":   fmt.Sprint(start),
		"end":     fmt.Sprint(end),
	})
}

// WithAnnotation returns a copy with the annotations added
func (n Name) WithAnnotation(ann ...string) Name {
	out := NewName(n.name, n.md)
	for _, a := range ann {
		out.md[a] = ""
	}
	return out
}

// Metadata returns a copy of the key value pairs, annotations included with empty values
func (n Name) Metadata() map[string]string {
	out := make(map[string]string, len(n.md))
	for k, v := range n.md {
		out[k] = v
	}
	return out
}

// MarshalText will return the metadata encoded as a modified logfmt representation.  Metadata opens with a [
// then is followed by (key, value) pairs k=v in sorted key order, the finally by annotations starting with @ in
// sorted order.  Close with a ].  Example: [segment=0 start=0 end=8 @extra]
func MarshalText(m metadata) ([]byte, error) {
	if len(m) == 0 {
		return []byte{}, nil
	}
	keys := make([]string, 0, len(m))
	ann := make([]string, 0, len(m))
	for k, v := range m {
		switch v {
		case "":
			ann = append(ann, fmt.Sprintf("@%s", k))
		default:
			keys = append(keys, k)
		}
	}
	sort.Strings(keys)
	sort.Strings(ann)

	var b bytes.Buffer
	b.WriteString("[")
	e := logfmt.NewEncoder(&b)
	for _, k := range keys {
		if err := e.EncodeKeyval(k, m[k]); err != nil {
			return nil, fmt.Errorf("failed to encode %s=%s: %v", k, m[k], err)
		}
	}
	if len(keys) > 0 && len(ann) > 0 {
		b.WriteString(" ")
	}
	b.WriteString(strings.Join(ann, " "))
	b.WriteString("]")
	return b.Bytes(), nil
}
