package types

// Field names a raw fundamental as reported by the data provider.
type Field string

const (
	ReturnOnEquity Field = "returnOnEquity"
	DebtToEquity   Field = "debtToEquity"
	TrailingPE     Field = "trailingPE"
	PEGRatio       Field = "pegRatio"
	PriceToBook    Field = "priceToBook"
	DividendYield  Field = "dividendYield"
	PayoutRatio    Field = "payoutRatio"
	ProfitMargins  Field = "profitMargins"
	RevenueGrowth  Field = "revenueGrowth"
	EarningsGrowth Field = "earningsGrowth"
)

// Fields lists every raw fundamental in provider order.
var Fields = []Field{
	ReturnOnEquity,
	DebtToEquity,
	TrailingPE,
	PEGRatio,
	PriceToBook,
	DividendYield,
	PayoutRatio,
	ProfitMargins,
	RevenueGrowth,
	EarningsGrowth,
}

// RawMetrics maps a field to an optional value. A missing key and a nil
// pointer both mean the provider had nothing for that field. Values may be
// NaN, infinite or garbage; the metric package sorts that out.
type RawMetrics map[Field]*float64

// Get returns the raw value for f, or nil when absent.
func (m RawMetrics) Get(f Field) *float64 {
	if m == nil {
		return nil
	}
	return m[f]
}

// Set stores v under f.
func (m RawMetrics) Set(f Field, v float64) {
	m[f] = &v
}

// Company describes a resolved listing.
type Company struct {
	Symbol    string `json:"symbol" yaml:"symbol"`
	Name      string `json:"name,omitempty" yaml:"name,omitempty"`
	Exchange  string `json:"exchange,omitempty" yaml:"exchange,omitempty"`
	QuoteType string `json:"quote_type,omitempty" yaml:"quote_type,omitempty"`
	Currency  string `json:"currency,omitempty" yaml:"currency,omitempty"`
}

// Candidate is one hit from a symbol search.
type Candidate struct {
	Symbol    string
	ShortName string
	LongName  string
	Exchange  string
	QuoteType string
}

// DisplayName prefers the long name.
func (c Candidate) DisplayName() string {
	if c.LongName != "" {
		return c.LongName
	}
	return c.ShortName
}
