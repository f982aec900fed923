package provider

import (
	"encoding/json"
	"strconv"
	"strings"

	"github.com/komsit37/fscore/pkg/fscore/types"
)

// Paths maps each raw field to its location in a quoteSummary result.
// Alternatives are separated by "|" and tried left to right.
var Paths = map[types.Field]string{
	types.ReturnOnEquity: "financialData.returnOnEquity.raw",
	types.DebtToEquity:   "financialData.debtToEquity.raw",
	types.TrailingPE:     "summaryDetail.trailingPE.raw|price.trailingPE.raw",
	types.PEGRatio:       "defaultKeyStatistics.pegRatio.raw",
	types.PriceToBook:    "defaultKeyStatistics.priceToBook.raw",
	types.DividendYield:  "summaryDetail.dividendYield.raw",
	types.PayoutRatio:    "summaryDetail.payoutRatio.raw",
	types.ProfitMargins:  "financialData.profitMargins.raw|defaultKeyStatistics.profitMargins.raw",
	types.RevenueGrowth:  "financialData.revenueGrowth.raw",
	types.EarningsGrowth: "financialData.earningsGrowth.raw",
}

// RawToMap coerces a decoded quoteSummary result into a map.
func RawToMap(raw any) map[string]any {
	if m, ok := raw.(map[string]any); ok {
		return m
	}
	return map[string]any{}
}

// Extract returns the first non-null value found along the "|"-separated
// dotted paths.
func Extract(m map[string]any, paths string) (any, bool) {
	for _, p := range strings.Split(paths, "|") {
		p = strings.TrimSpace(p)
		if p == "" {
			continue
		}
		if v, ok := walk(m, strings.Split(p, ".")); ok && v != nil {
			return v, true
		}
	}
	return nil, false
}

func walk(node any, parts []string) (any, bool) {
	cur := node
	for _, part := range parts {
		m, ok := cur.(map[string]any)
		if !ok {
			return nil, false
		}
		cur, ok = m[part]
		if !ok {
			return nil, false
		}
	}
	return cur, true
}

// ExtractFloat reads a numeric value. Yahoo occasionally sends numbers as
// strings ("Infinity"); those are parsed so the normalizer can reject them.
// Anything else that is not a number is treated as absent.
func ExtractFloat(m map[string]any, paths string) *float64 {
	v, ok := Extract(m, paths)
	if !ok {
		return nil
	}
	var f float64
	switch t := v.(type) {
	case float64:
		f = t
	case int:
		f = float64(t)
	case int64:
		f = float64(t)
	case json.Number:
		n, err := t.Float64()
		if err != nil {
			return nil
		}
		f = n
	case string:
		n, err := strconv.ParseFloat(strings.TrimSpace(t), 64)
		if err != nil {
			return nil
		}
		f = n
	default:
		return nil
	}
	return &f
}

// ExtractString reads the first non-empty string along paths, or "".
func ExtractString(m map[string]any, paths string) string {
	for _, p := range strings.Split(paths, "|") {
		v, ok := Extract(m, p)
		if !ok {
			continue
		}
		if s, _ := v.(string); strings.TrimSpace(s) != "" {
			return s
		}
	}
	return ""
}

// MetricsFromRaw builds RawMetrics from a decoded quoteSummary result. Fields
// the payload lacks are left out of the map.
func MetricsFromRaw(raw any) types.RawMetrics {
	m := RawToMap(raw)
	out := types.RawMetrics{}
	for _, f := range types.Fields {
		if v := ExtractFloat(m, Paths[f]); v != nil {
			out[f] = v
		}
	}
	return out
}

// CompanyFromRaw reads listing details from the price module.
func CompanyFromRaw(sym string, raw any) types.Company {
	m := RawToMap(raw)
	c := types.Company{
		Symbol:    ExtractString(m, "price.symbol"),
		Name:      ExtractString(m, "price.longName|price.shortName"),
		Exchange:  ExtractString(m, "price.exchange"),
		QuoteType: ExtractString(m, "price.quoteType|quoteType.quoteType"),
		Currency:  ExtractString(m, "price.currency|financialData.financialCurrency"),
	}
	if c.Symbol == "" {
		c.Symbol = sym
	}
	return c
}
