package pipeline

import (
	"context"
	"io"

	"github.com/komsit37/fscore/pkg/fscore/locale"
	"github.com/komsit37/fscore/pkg/fscore/render"
	"github.com/komsit37/fscore/pkg/fscore/resolve"
	"github.com/komsit37/fscore/pkg/fscore/score"
)

// Runner resolves a query and renders its score.
type Runner struct {
	Resolver resolve.Resolver
	Renderer render.Renderer
	Writer   io.Writer
}

type ExecuteOptions struct {
	Columns     []string
	Color       bool
	PrettyJSON  bool
	MaxColWidth int
	Catalog     locale.Catalog
}

// Analyze resolves query and scores it. Resolver errors are returned
// untouched so callers can map them with resolve.UserMessage.
func Analyze(ctx context.Context, r resolve.Resolver, query string) (score.Report, error) {
	res, err := r.Resolve(ctx, query)
	if err != nil {
		return score.Report{}, err
	}
	return score.Score(res.Metrics).WithCompany(res.Company), nil
}

func (r *Runner) Execute(ctx context.Context, query string, opts ExecuteOptions) (score.Report, error) {
	rep, err := Analyze(ctx, r.Resolver, query)
	if err != nil {
		return rep, err
	}
	return rep, r.Renderer.Render(r.Writer, rep, render.RenderOptions{
		Columns:     opts.Columns,
		Color:       opts.Color,
		PrettyJSON:  opts.PrettyJSON,
		MaxColWidth: opts.MaxColWidth,
		Catalog:     opts.Catalog,
	})
}
