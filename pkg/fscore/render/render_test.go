package render

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"github.com/jedib0t/go-pretty/v6/text"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tealeg/xlsx/v2"
	"gopkg.in/yaml.v3"

	"github.com/komsit37/fscore/pkg/fscore/locale"
	"github.com/komsit37/fscore/pkg/fscore/score"
	"github.com/komsit37/fscore/pkg/fscore/types"
)

func sampleReport() score.Report {
	raw := types.RawMetrics{}
	raw.Set(types.RevenueGrowth, 0.0812)
	raw.Set(types.EarningsGrowth, 0.15)
	raw.Set(types.ReturnOnEquity, 1.5)
	raw.Set(types.DebtToEquity, 145)
	raw.Set(types.TrailingPE, 31.2)
	raw.Set(types.PriceToBook, 52.1)
	raw.Set(types.DividendYield, 0.0044)
	raw.Set(types.PayoutRatio, 0.15)
	raw.Set(types.ProfitMargins, 0.2397)
	return score.Score(raw).WithCompany(types.Company{Symbol: "AAPL", Name: "Apple Inc.", Currency: "USD"})
}

func TestForFormat(t *testing.T) {
	for _, name := range Formats() {
		r, err := ForFormat(name)
		require.NoError(t, err, name)
		assert.NotNil(t, r)
	}
	r, err := ForFormat(" CSV ")
	require.NoError(t, err)
	assert.IsType(t, &CSVRenderer{}, r)

	_, err = ForFormat("pdf")
	var ufe *UnknownFormatError
	require.ErrorAs(t, err, &ufe)
	assert.Equal(t, []string{"csv", "json", "summary", "table", "xlsx", "yaml"}, ufe.Available)
}

func TestCSVRenderer(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, NewCSVRenderer().Render(&buf, sampleReport(), RenderOptions{}))

	want := strings.Join([]string{
		"criterion,value,score",
		"Revenue growth,8.12,3",
		"Earnings growth,15.00,5",
		"Return on equity (ROE),150.00,5",
		"Debt/Equity,145.00,1",
		"P/E ratio,31.20,1",
		"PEG ratio,n/a,0",
		"P/B ratio,52.10,1",
		"Dividend,0.44,3",
		"Net margin,23.97,5",
	}, "\n") + "\n"
	assert.Equal(t, want, buf.String())
}

func TestCSVRenderer_German(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, NewCSVRenderer().Render(&buf, sampleReport(), RenderOptions{Catalog: locale.Match("de")}))
	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	require.Len(t, lines, 10)
	assert.Equal(t, "Kriterium,Wert,Punkte", lines[0])
	assert.Equal(t, "KGV,31.20,1", lines[5])
}

func TestJSONRenderer(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, NewJSONRenderer().Render(&buf, sampleReport(), RenderOptions{PrettyJSON: true}))

	var out map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &out))
	assert.Equal(t, float64(24), out["total"])
	assert.Equal(t, float64(45), out["max"])
	assert.Equal(t, "elevated_risk", out["interpretation"])
	assert.Equal(t, "elevated risk / needs improvement", out["verdict"])

	labels := out["labels"].(map[string]any)
	assert.Equal(t, "Net margin", labels["net_margin"])

	crit := out["criteria"].([]any)
	require.Len(t, crit, 9)
	peg := crit[5].(map[string]any)
	assert.Equal(t, "peg", peg["key"])
	assert.Nil(t, peg["value"])
	assert.Contains(t, buf.String(), "\n  \"company\"")
}

func TestYAMLRenderer(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, NewYAMLRenderer().Render(&buf, sampleReport(), RenderOptions{}))

	var out struct {
		Company  types.Company `yaml:"company"`
		Total    int           `yaml:"total"`
		Verdict  string        `yaml:"verdict"`
		Criteria []struct {
			Key   string   `yaml:"key"`
			Value *float64 `yaml:"value"`
			Score int      `yaml:"score"`
		} `yaml:"criteria"`
	}
	require.NoError(t, yaml.Unmarshal(buf.Bytes(), &out))
	assert.Equal(t, "AAPL", out.Company.Symbol)
	assert.Equal(t, 24, out.Total)
	require.Len(t, out.Criteria, 9)
	assert.Nil(t, out.Criteria[5].Value)
	require.NotNil(t, out.Criteria[0].Value)
	assert.InDelta(t, 8.12, *out.Criteria[0].Value, 1e-9)
}

func TestSummaryRenderer(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, NewSummaryRenderer().Render(&buf, sampleReport(), RenderOptions{}))
	assert.Equal(t, "AAPL 24/45 elevated risk / needs improvement\n", buf.String())

	buf.Reset()
	require.NoError(t, NewSummaryRenderer().Render(&buf, score.Score(nil), RenderOptions{}))
	assert.Equal(t, "0/45 elevated risk / needs improvement\n", buf.String())
}

func TestTableRenderer_Plain(t *testing.T) {
	var buf bytes.Buffer
	err := NewTableRenderer().Render(&buf, sampleReport(), RenderOptions{Columns: []string{"criterion", "value", "score", "max"}})
	require.NoError(t, err)

	out := buf.String()
	assert.True(t, strings.HasPrefix(out, "AAPL · Apple Inc.\n"))
	assert.Contains(t, out, "CRITERION")
	assert.Contains(t, out, "Return on equity (ROE)")
	assert.Contains(t, out, "n/a")
	assert.Contains(t, out, "24/45")
	assert.True(t, strings.HasSuffix(out, "elevated risk / needs improvement\n"))
	assert.NotContains(t, out, "\x1b[")
	assert.NotContains(t, out, "NIL")
}

func TestTableRenderer_FooterHasNoEmptyCellMarkers(t *testing.T) {
	raw := types.RawMetrics{}
	raw.Set(types.ReturnOnEquity, 0.2)
	raw.Set(types.DividendYield, 0.03)

	for _, cols := range [][]string{nil, {"criterion", "key", "inputs", "value", "score", "max"}} {
		var buf bytes.Buffer
		require.NoError(t, NewTableRenderer().Render(&buf, score.Score(raw), RenderOptions{Columns: cols}))
		out := buf.String()
		assert.Contains(t, out, "5/45")
		assert.NotContains(t, out, "NIL")
	}
}

func TestTableRenderer_Color(t *testing.T) {
	text.EnableColors()
	var buf bytes.Buffer
	require.NoError(t, NewTableRenderer().Render(&buf, sampleReport(), RenderOptions{Color: true}))
	assert.Contains(t, buf.String(), "\x1b[")
}

func TestXLSXRenderer(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, NewXLSXRenderer().Render(&buf, sampleReport(), RenderOptions{}))
	require.NotZero(t, buf.Len())

	f, err := xlsx.OpenBinary(buf.Bytes())
	require.NoError(t, err)
	require.Len(t, f.Sheets, 1)
	sh := f.Sheets[0]
	assert.Equal(t, "AAPL", sh.Name)
	require.Len(t, sh.Rows, 11)
	assert.Equal(t, "criterion", sh.Rows[0].Cells[0].String())
	assert.Equal(t, "Revenue growth", sh.Rows[1].Cells[0].String())
	assert.Equal(t, "n/a", sh.Rows[6].Cells[1].String())
	n, err := sh.Rows[10].Cells[2].Int()
	require.NoError(t, err)
	assert.Equal(t, 24, n)
}

func TestSheetName(t *testing.T) {
	assert.Equal(t, "AAPL", sheetName("AAPL"))
	assert.Len(t, []rune(sheetName(strings.Repeat("x", 40))), 31)
}
