package render

import (
	"io"
	"strconv"

	"github.com/rotisserie/eris"
	"github.com/tealeg/xlsx/v2"

	"github.com/komsit37/fscore/pkg/fscore/columns"
	"github.com/komsit37/fscore/pkg/fscore/score"
)

// XLSXRenderer writes the record as a single-sheet workbook. Numeric cells
// stay numeric; unavailable values are written as text.
type XLSXRenderer struct{}

func NewXLSXRenderer() *XLSXRenderer { return &XLSXRenderer{} }

func (r *XLSXRenderer) Render(w io.Writer, rep score.Report, opts RenderOptions) error {
	cat := opts.catalog()
	cols := columns.Compute(opts.Columns)

	f := xlsx.NewFile()
	name := rep.Company().Symbol
	if name == "" {
		name = "score"
	}
	sheet, err := f.AddSheet(sheetName(name))
	if err != nil {
		return eris.Wrap(err, "render: add sheet")
	}

	hdr := sheet.AddRow()
	for _, h := range columns.Headers(cols, cat) {
		hdr.AddCell().SetString(h)
	}
	for _, cells := range columns.Rows(rep, cols, cat) {
		row := sheet.AddRow()
		for i, v := range cells {
			setCell(row.AddCell(), cols[i], v)
		}
	}

	total := sheet.AddRow()
	for i, c := range cols {
		cell := total.AddCell()
		switch {
		case i == 0:
			cell.SetString(cat.TotalLabel)
		case c == "score":
			cell.SetInt(rep.Total())
		}
	}

	if err := f.Write(w); err != nil {
		return eris.Wrap(err, "render: write xlsx")
	}
	return nil
}

func setCell(cell *xlsx.Cell, col, v string) {
	switch col {
	case "score", "max":
		if n, err := strconv.Atoi(v); err == nil {
			cell.SetInt(n)
			return
		}
	case "value":
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			cell.SetFloat(f)
			return
		}
	}
	cell.SetString(v)
}

// sheetName trims to Excel's 31 character limit.
func sheetName(s string) string {
	r := []rune(s)
	if len(r) > 31 {
		r = r[:31]
	}
	return string(r)
}
