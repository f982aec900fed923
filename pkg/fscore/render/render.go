package render

import (
	"io"
	"sort"
	"strings"

	"github.com/komsit37/fscore/pkg/fscore/locale"
	"github.com/komsit37/fscore/pkg/fscore/score"
)

// Renderer writes a report to an output writer.
type Renderer interface {
	Render(w io.Writer, rep score.Report, opts RenderOptions) error
}

type RenderOptions struct {
	Columns     []string
	Color       bool
	PrettyJSON  bool
	MaxColWidth int
	Catalog     locale.Catalog
}

func (o RenderOptions) catalog() locale.Catalog {
	if o.Catalog.Criteria == nil {
		return locale.Default()
	}
	return o.Catalog
}

var formats = map[string]func() Renderer{
	"table":   func() Renderer { return NewTableRenderer() },
	"csv":     func() Renderer { return NewCSVRenderer() },
	"json":    func() Renderer { return NewJSONRenderer() },
	"yaml":    func() Renderer { return NewYAMLRenderer() },
	"xlsx":    func() Renderer { return NewXLSXRenderer() },
	"summary": func() Renderer { return NewSummaryRenderer() },
}

// ForFormat returns the renderer registered under name.
func ForFormat(name string) (Renderer, error) {
	f, ok := formats[strings.ToLower(strings.TrimSpace(name))]
	if !ok {
		return nil, &UnknownFormatError{Name: name, Available: Formats()}
	}
	return f(), nil
}

// Formats lists the registered output formats.
func Formats() []string {
	out := make([]string, 0, len(formats))
	for k := range formats {
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}

// UnknownFormatError reports an unknown output format.
type UnknownFormatError struct {
	Name      string
	Available []string
}

func (e *UnknownFormatError) Error() string {
	return "unknown output format: " + e.Name + "; available: " + strings.Join(e.Available, ", ")
}
