package render

import (
	"io"

	"github.com/rotisserie/eris"
	"gopkg.in/yaml.v3"

	"github.com/komsit37/fscore/pkg/fscore/score"
)

type YAMLRenderer struct{}

func NewYAMLRenderer() *YAMLRenderer { return &YAMLRenderer{} }

func (r *YAMLRenderer) Render(w io.Writer, rep score.Report, opts RenderOptions) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(newModel(rep, opts.catalog())); err != nil {
		return eris.Wrap(err, "render: encode yaml")
	}
	return enc.Close()
}
