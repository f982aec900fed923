package render

import (
	"fmt"
	"io"
	"strings"

	"github.com/komsit37/fscore/pkg/fscore/score"
)

// summaryRenderer prints a single line: symbol, total and verdict.
type summaryRenderer struct{}

func NewSummaryRenderer() Renderer {
	return summaryRenderer{}
}

func (summaryRenderer) Render(w io.Writer, rep score.Report, opts RenderOptions) error {
	parts := make([]string, 0, 3)
	if sym := strings.TrimSpace(rep.Company().Symbol); sym != "" {
		parts = append(parts, sym)
	}
	parts = append(parts, fmt.Sprintf("%d/%d", rep.Total(), rep.Max()))
	parts = append(parts, opts.catalog().Verdict(rep.Interpretation()))
	_, err := fmt.Fprintln(w, strings.Join(parts, " "))
	return err
}
