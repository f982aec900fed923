package columns

import (
	"strconv"
	"strings"

	"github.com/komsit37/fscore/pkg/fscore/locale"
	"github.com/komsit37/fscore/pkg/fscore/score"
)

// Resolver converts a scored criterion into a cell value for a column.
type Resolver func(res score.Result, cat locale.Catalog) string

// Registry maps column keys to resolvers.
var Registry = map[string]Resolver{}

func init() {
	Registry["criterion"] = func(res score.Result, cat locale.Catalog) string {
		return cat.Criterion(res.Key)
	}
	Registry["key"] = func(res score.Result, _ locale.Catalog) string {
		return string(res.Key)
	}
	// value: primary normalized input, two decimals or n/a
	Registry["value"] = func(res score.Result, _ locale.Catalog) string {
		return res.Value.String()
	}
	Registry["score"] = func(res score.Result, _ locale.Catalog) string {
		return strconv.Itoa(res.Points)
	}
	Registry["max"] = func(score.Result, locale.Catalog) string {
		return strconv.Itoa(score.MaxPoints)
	}
	// inputs: every normalized input as field=value
	Registry["inputs"] = func(res score.Result, _ locale.Catalog) string {
		c, ok := score.Lookup(res.Key)
		if !ok {
			return ""
		}
		parts := make([]string, 0, len(c.Inputs))
		for i, in := range c.Inputs {
			if i >= len(res.Inputs) {
				break
			}
			parts = append(parts, string(in.Field)+"="+res.Inputs[i].String())
		}
		return strings.Join(parts, " ")
	}
}

// Compute determines the final column order. Explicit columns are honored
// in order with duplicates and unknown keys dropped; otherwise the export set
// is used.
func Compute(explicit []string) []string {
	if len(explicit) == 0 {
		return append([]string(nil), Sets["export"]...)
	}
	seen := map[string]struct{}{}
	out := make([]string, 0, len(explicit))
	for _, k := range explicit {
		k = strings.ToLower(strings.TrimSpace(k))
		if _, ok := Registry[k]; !ok {
			continue
		}
		if _, ok := seen[k]; ok {
			continue
		}
		seen[k] = struct{}{}
		out = append(out, k)
	}
	if len(out) == 0 {
		return append([]string(nil), Sets["export"]...)
	}
	return out
}

// RenderValue calls the resolver for the given column.
func RenderValue(col string, res score.Result, cat locale.Catalog) string {
	if r, ok := Registry[col]; ok {
		return r(res, cat)
	}
	return ""
}

// Rows renders every criterion of rep into string cells for cols.
func Rows(rep score.Report, cols []string, cat locale.Catalog) [][]string {
	results := rep.Results()
	out := make([][]string, 0, len(results))
	for _, res := range results {
		row := make([]string, len(cols))
		for i, c := range cols {
			row[i] = RenderValue(c, res, cat)
		}
		out = append(out, row)
	}
	return out
}

// Headers returns localized header labels for cols.
func Headers(cols []string, cat locale.Catalog) []string {
	out := make([]string, len(cols))
	for i, c := range cols {
		out[i] = cat.Header(c)
	}
	return out
}
