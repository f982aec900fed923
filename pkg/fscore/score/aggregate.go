package score

import (
	"encoding/json"

	"github.com/komsit37/fscore/pkg/fscore/metric"
	"github.com/komsit37/fscore/pkg/fscore/types"
)

// Interpretation buckets a total score.
type Interpretation string

const (
	Strong       Interpretation = "strong"
	Sound        Interpretation = "sound"
	ElevatedRisk Interpretation = "elevated_risk"
)

// Interpret maps a total to its bucket: >40 strong, 30..40 sound, <30
// elevated risk.
func Interpret(total int) Interpretation {
	switch {
	case total > 40:
		return Strong
	case total >= 30:
		return Sound
	}
	return ElevatedRisk
}

// Result is one scored criterion. Value is the primary normalized input and
// Inputs holds every input in table order.
type Result struct {
	Key    Key
	Value  metric.Metric
	Inputs []metric.Metric
	Points int
}

// Evaluate normalizes the criterion's inputs from raw and scores them.
func Evaluate(c Criterion, raw types.RawMetrics) Result {
	ms := make([]metric.Metric, len(c.Inputs))
	for i, in := range c.Inputs {
		ms[i] = metric.FromRaw(raw, in.Field, in.Scale)
	}
	return Result{Key: c.Key, Value: ms[0], Inputs: ms, Points: c.eval(ms)}
}

// Report is the outcome of one analysis. It is built once and only exposes
// copies of its contents.
type Report struct {
	company types.Company
	results []Result
	total   int
}

// Score runs every criterion against raw and aggregates the results. It
// performs no I/O.
func Score(raw types.RawMetrics) Report {
	results := make([]Result, 0, len(criteria))
	for _, c := range criteria {
		results = append(results, Evaluate(c, raw))
	}
	return Aggregate(results)
}

// Aggregate sums the criterion scores into a report.
func Aggregate(results []Result) Report {
	r := Report{results: cloneResults(results)}
	for _, res := range results {
		r.total += res.Points
	}
	return r
}

// WithCompany returns a copy of r annotated with the resolved company.
func (r Report) WithCompany(c types.Company) Report {
	r.results = cloneResults(r.results)
	r.company = c
	return r
}

func (r Report) Company() types.Company { return r.company }

func (r Report) Results() []Result { return cloneResults(r.results) }

func (r Report) Total() int { return r.total }

// Max is the best achievable total for the criteria in r.
func (r Report) Max() int { return len(r.results) * MaxPoints }

func (r Report) Interpretation() Interpretation { return Interpret(r.total) }

// Result returns the scored criterion for k.
func (r Report) Result(k Key) (Result, bool) {
	for _, res := range r.results {
		if res.Key == k {
			return cloneResult(res), true
		}
	}
	return Result{}, false
}

func cloneResults(in []Result) []Result {
	out := make([]Result, len(in))
	for i, r := range in {
		out[i] = cloneResult(r)
	}
	return out
}

func cloneResult(r Result) Result {
	r.Inputs = append([]metric.Metric(nil), r.Inputs...)
	return r
}

// View is the serialized shape of a report.
type View struct {
	Company        types.Company  `json:"company" yaml:"company"`
	Criteria       []ResultView   `json:"criteria" yaml:"criteria"`
	Total          int            `json:"total" yaml:"total"`
	Max            int            `json:"max" yaml:"max"`
	Interpretation Interpretation `json:"interpretation" yaml:"interpretation"`
}

// ResultView is the serialized shape of a criterion result.
type ResultView struct {
	Key    Key                      `json:"key" yaml:"key"`
	Value  metric.Metric            `json:"value" yaml:"value"`
	Inputs map[string]metric.Metric `json:"inputs" yaml:"inputs"`
	Score  int                      `json:"score" yaml:"score"`
}

// View builds the serializable form of r.
func (r Report) View() View {
	v := View{
		Company:        r.company,
		Criteria:       make([]ResultView, 0, len(r.results)),
		Total:          r.total,
		Max:            r.Max(),
		Interpretation: r.Interpretation(),
	}
	for _, res := range r.results {
		rv := ResultView{Key: res.Key, Value: res.Value, Score: res.Points, Inputs: map[string]metric.Metric{}}
		if c, ok := Lookup(res.Key); ok {
			for i, in := range c.Inputs {
				if i < len(res.Inputs) {
					rv.Inputs[string(in.Field)] = res.Inputs[i]
				}
			}
		}
		v.Criteria = append(v.Criteria, rv)
	}
	return v
}

func (r Report) MarshalJSON() ([]byte, error) { return json.Marshal(r.View()) }

func (r Report) MarshalYAML() (any, error) { return r.View(), nil }
