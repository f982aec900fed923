package render

import (
	"encoding/json"
	"io"

	"github.com/komsit37/fscore/pkg/fscore/locale"
	"github.com/komsit37/fscore/pkg/fscore/score"
)

// jsonModel is the output shape for JSONRenderer and YAMLRenderer.
type jsonModel struct {
	score.View `yaml:",inline"`
	Verdict    string            `json:"verdict" yaml:"verdict"`
	Labels     map[string]string `json:"labels" yaml:"labels"`
}

func newModel(rep score.Report, cat locale.Catalog) jsonModel {
	m := jsonModel{View: rep.View(), Verdict: cat.Verdict(rep.Interpretation()), Labels: map[string]string{}}
	for _, res := range rep.Results() {
		m.Labels[string(res.Key)] = cat.Criterion(res.Key)
	}
	return m
}

type JSONRenderer struct{}

func NewJSONRenderer() *JSONRenderer { return &JSONRenderer{} }

func (r *JSONRenderer) Render(w io.Writer, rep score.Report, opts RenderOptions) error {
	enc := json.NewEncoder(w)
	if opts.PrettyJSON {
		enc.SetIndent("", "  ")
	}
	return enc.Encode(newModel(rep, opts.catalog()))
}
