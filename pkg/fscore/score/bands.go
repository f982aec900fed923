package score

import "github.com/komsit37/fscore/pkg/fscore/metric"

// Op is the comparison a band applies against its cut point.
type Op int

const (
	Above Op = iota // v > cut
	Below           // v < cut
)

// Band awards Points when the value satisfies Op against Cut.
type Band struct {
	Op     Op
	Cut    float64
	Points int
}

func (b Band) match(v float64) bool {
	switch b.Op {
	case Above:
		return v > b.Cut
	case Below:
		return v < b.Cut
	}
	return false
}

// Bands is an ordered threshold table. The first matching band wins and
// Else applies when none match.
type Bands struct {
	Steps []Band
	Else  int
}

// Eval scores m. Unavailable always scores 0 without consulting the table.
func (b Bands) Eval(m metric.Metric) int {
	v, ok := m.Value()
	if !ok {
		return 0
	}
	for _, s := range b.Steps {
		if s.match(v) {
			return s.Points
		}
	}
	return b.Else
}

// growth rewards upside: >hi 5, >mid 3, >lo 1, else 0.
func growth(hi, mid, lo float64) Bands {
	return Bands{Steps: []Band{{Above, hi, 5}, {Above, mid, 3}, {Above, lo, 1}}, Else: 0}
}

// ceiling penalizes excess: <lo 5, <hi 3, else 1.
func ceiling(lo, hi float64) Bands {
	return Bands{Steps: []Band{{Below, lo, 5}, {Below, hi, 3}}, Else: 1}
}
