package render

import (
	"fmt"
	"io"
	"strings"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"

	"github.com/komsit37/fscore/pkg/fscore/columns"
	"github.com/komsit37/fscore/pkg/fscore/score"
)

type TableRenderer struct{}

func NewTableRenderer() *TableRenderer { return &TableRenderer{} }

func (r *TableRenderer) Render(w io.Writer, rep score.Report, opts RenderOptions) error {
	cat := opts.catalog()
	cols := columns.Compute(opts.Columns)

	co := rep.Company()
	if co.Symbol != "" {
		title := co.Symbol
		if co.Name != "" {
			title += " · " + co.Name
		}
		if opts.Color {
			title = text.Bold.Sprint(title)
		}
		fmt.Fprintln(w, title)
	}

	tw := table.NewWriter()
	tw.SetOutputMirror(w)
	tw.SetStyle(table.StyleColoredDark)
	tw.Style().Options.DrawBorder = false
	tw.Style().Options.SeparateRows = false
	tw.Style().Options.SeparateColumns = false
	if !opts.Color {
		tw.SetStyle(table.StyleLight)
		tw.Style().Options.DrawBorder = false
	}

	hdr := make(table.Row, len(cols))
	for i, h := range columns.Headers(cols, cat) {
		hdr[i] = strings.ToUpper(h)
	}
	tw.AppendHeader(hdr)

	maxWidth := opts.MaxColWidth
	if maxWidth <= 0 {
		maxWidth = 40
	}
	cfgs := make([]table.ColumnConfig, 0, len(cols))
	for i, c := range cols {
		cfg := table.ColumnConfig{Number: i + 1, WidthMax: maxWidth}
		switch c {
		case "value", "score", "max":
			cfg.Align = text.AlignRight
			cfg.AlignHeader = text.AlignRight
		}
		cfgs = append(cfgs, cfg)
	}
	tw.SetColumnConfigs(cfgs)

	results := rep.Results()
	for ri, cells := range columns.Rows(rep, cols, cat) {
		row := make(table.Row, len(cells))
		for i, v := range cells {
			row[i] = v
			if opts.Color && cols[i] == "score" {
				row[i] = pointsColor(results[ri].Points).Sprint(v)
			}
		}
		tw.AppendRow(row)
	}

	footer := make(table.Row, len(cols))
	for i := range footer {
		footer[i] = ""
	}
	if len(cols) > 0 {
		footer[0] = cat.TotalLabel
	}
	for i, c := range cols {
		if c == "score" {
			footer[i] = fmt.Sprintf("%d/%d", rep.Total(), rep.Max())
		}
	}
	tw.AppendFooter(footer)
	tw.Render()

	verdict := cat.Verdict(rep.Interpretation())
	if opts.Color {
		verdict = verdictColor(rep.Interpretation()).Sprint(verdict)
	}
	_, err := fmt.Fprintln(w, verdict)
	return err
}

func pointsColor(points int) text.Colors {
	switch {
	case points >= 5:
		return text.Colors{text.FgGreen}
	case points >= 3:
		return text.Colors{text.FgYellow}
	}
	return text.Colors{text.FgRed}
}

func verdictColor(i score.Interpretation) text.Colors {
	switch i {
	case score.Strong:
		return text.Colors{text.FgGreen, text.Bold}
	case score.Sound:
		return text.Colors{text.FgYellow, text.Bold}
	}
	return text.Colors{text.FgRed, text.Bold}
}
