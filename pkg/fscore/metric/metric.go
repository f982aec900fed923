// Package metric turns raw provider values into numbers the scorers can
// trust. Anything missing, non-finite or absurdly large becomes Unavailable.
package metric

import (
	"encoding/json"
	"math"
	"strconv"

	"github.com/komsit37/fscore/pkg/fscore/types"
)

// Scale factors applied before the envelope check.
const (
	Ratio   = 1.0
	Percent = 100.0
)

// Envelope is the largest magnitude accepted as a usable number.
const Envelope = 1e8

// Metric is either a finite number inside the envelope or Unavailable.
// The zero value is Unavailable.
type Metric struct {
	v  float64
	ok bool
}

// Unavailable is the uniform "no usable data" marker.
var Unavailable = Metric{}

// Number wraps a finite value. Non-finite or out-of-envelope values yield
// Unavailable so the invariant holds for every constructor.
func Number(v float64) Metric {
	if math.IsNaN(v) || math.Abs(v) > Envelope {
		return Unavailable
	}
	return Metric{v: v, ok: true}
}

// Value returns the number and whether it is available.
func (m Metric) Value() (float64, bool) { return m.v, m.ok }

// Available reports whether m carries a number.
func (m Metric) Available() bool { return m.ok }

// String formats with two decimals, or "n/a".
func (m Metric) String() string {
	if !m.ok {
		return "n/a"
	}
	return strconv.FormatFloat(m.v, 'f', 2, 64)
}

// MarshalJSON encodes a number, or null when unavailable.
func (m Metric) MarshalJSON() ([]byte, error) {
	if !m.ok {
		return []byte("null"), nil
	}
	return json.Marshal(m.v)
}

// MarshalYAML encodes a number, or null when unavailable.
func (m Metric) MarshalYAML() (any, error) {
	if !m.ok {
		return nil, nil
	}
	return m.v, nil
}

// Normalize scales raw and rounds it to two decimals. It never fails: absent,
// NaN and out-of-envelope inputs all come back Unavailable.
func Normalize(raw *float64, scale float64) Metric {
	if raw == nil || math.IsNaN(*raw) {
		return Unavailable
	}
	scaled := *raw * scale
	if math.IsNaN(scaled) || math.Abs(scaled) > Envelope {
		return Unavailable
	}
	return Metric{v: round2(scaled), ok: true}
}

// FromRaw normalizes a single field of a RawMetrics bundle.
func FromRaw(raw types.RawMetrics, f types.Field, scale float64) Metric {
	return Normalize(raw.Get(f), scale)
}

func round2(v float64) float64 {
	r := math.Round(v*100) / 100
	if r == 0 {
		// drop negative zero so "-0.00" never shows up
		return 0
	}
	return r
}
