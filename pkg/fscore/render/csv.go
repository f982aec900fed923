package render

import (
	"io"

	"github.com/jedib0t/go-pretty/v6/table"

	"github.com/komsit37/fscore/pkg/fscore/columns"
	"github.com/komsit37/fscore/pkg/fscore/score"
)

// CSVRenderer writes one row per criterion in criterion order. With the
// default columns the record is criterion,value,score.
type CSVRenderer struct{}

func NewCSVRenderer() *CSVRenderer { return &CSVRenderer{} }

func (r *CSVRenderer) Render(w io.Writer, rep score.Report, opts RenderOptions) error {
	cat := opts.catalog()
	cols := columns.Compute(opts.Columns)

	tw := table.NewWriter()
	hdr := make(table.Row, len(cols))
	for i, h := range columns.Headers(cols, cat) {
		hdr[i] = h
	}
	tw.AppendHeader(hdr)
	for _, cells := range columns.Rows(rep, cols, cat) {
		row := make(table.Row, len(cells))
		for i, v := range cells {
			row[i] = v
		}
		tw.AppendRow(row)
	}
	_, err := io.WriteString(w, tw.RenderCSV()+"\n")
	return err
}
