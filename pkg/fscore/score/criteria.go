package score

import (
	"github.com/komsit37/fscore/pkg/fscore/metric"
	"github.com/komsit37/fscore/pkg/fscore/types"
)

// Key identifies a criterion.
type Key string

const (
	RevenueGrowth  Key = "revenue_growth"
	EarningsGrowth Key = "earnings_growth"
	ROE            Key = "roe"
	DebtEquity     Key = "debt_equity"
	PE             Key = "pe"
	PEG            Key = "peg"
	PB             Key = "pb"
	Dividend       Key = "dividend"
	NetMargin      Key = "net_margin"
)

// MaxPoints is the best score any single criterion can award.
const MaxPoints = 5

// Input binds a raw field to the scale it is normalized with.
type Input struct {
	Field types.Field
	Scale float64
}

// Criterion is one row of the scoring table.
type Criterion struct {
	Key    Key
	Inputs []Input
	// Bands scores single-input criteria; Pair overrides it for criteria
	// that need two inputs.
	Bands Bands
	Pair  func(a, b metric.Metric) int
}

func (c Criterion) eval(ms []metric.Metric) int {
	if c.Pair != nil {
		return c.Pair(ms[0], ms[1])
	}
	return c.Bands.Eval(ms[0])
}

// criteria is the scoring table in export order.
var criteria = []Criterion{
	{Key: RevenueGrowth, Inputs: []Input{{types.RevenueGrowth, metric.Percent}}, Bands: growth(10, 2, 0)},
	{Key: EarningsGrowth, Inputs: []Input{{types.EarningsGrowth, metric.Percent}}, Bands: growth(10, 2, 0)},
	{Key: ROE, Inputs: []Input{{types.ReturnOnEquity, metric.Percent}}, Bands: growth(15, 10, 5)},
	// Yahoo already reports debt/equity as a percentage figure.
	{Key: DebtEquity, Inputs: []Input{{types.DebtToEquity, metric.Ratio}}, Bands: ceiling(50, 100)},
	{Key: PE, Inputs: []Input{{types.TrailingPE, metric.Ratio}}, Bands: ceiling(15, 25)},
	{Key: PEG, Inputs: []Input{{types.PEGRatio, metric.Ratio}}, Bands: ceiling(1, 2)},
	{Key: PB, Inputs: []Input{{types.PriceToBook, metric.Ratio}}, Bands: ceiling(1.5, 3)},
	{
		Key: Dividend,
		Inputs: []Input{
			{types.DividendYield, metric.Percent},
			{types.PayoutRatio, metric.Percent},
		},
		Pair: dividend,
	},
	{
		Key:    NetMargin,
		Inputs: []Input{{types.ProfitMargins, metric.Percent}},
		Bands:  Bands{Steps: []Band{{Above, 20, 5}, {Above, 10, 3}}, Else: 1},
	},
}

// dividend wants a yield inside [2,5] paid from less than 70% of earnings.
// Zero yield and a missing payout both score nothing.
func dividend(yield, payout metric.Metric) int {
	y, ok := yield.Value()
	if !ok {
		return 0
	}
	p, ok := payout.Value()
	if !ok {
		return 0
	}
	switch {
	case y >= 2 && y <= 5 && p < 70:
		return 5
	case y > 0:
		return 3
	}
	return 0
}

// Criteria returns a copy of the scoring table in export order.
func Criteria() []Criterion {
	out := make([]Criterion, len(criteria))
	for i, c := range criteria {
		out[i] = c.clone()
	}
	return out
}

// Lookup returns a copy of the criterion for k.
func Lookup(k Key) (Criterion, bool) {
	for _, c := range criteria {
		if c.Key == k {
			return c.clone(), true
		}
	}
	return Criterion{}, false
}

func (c Criterion) clone() Criterion {
	c.Inputs = append([]Input(nil), c.Inputs...)
	c.Bands.Steps = append([]Band(nil), c.Bands.Steps...)
	return c
}

// Keys lists criterion keys in export order.
func Keys() []Key {
	out := make([]Key, len(criteria))
	for i, c := range criteria {
		out[i] = c.Key
	}
	return out
}
