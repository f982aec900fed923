package main

import (
	"context"
	"errors"
	"io"
	"os"
	"strings"

	"github.com/rotisserie/eris"
	"go.uber.org/zap"

	"github.com/komsit37/fscore/pkg/fscore/pipeline"
	"github.com/komsit37/fscore/pkg/fscore/render"
	"github.com/komsit37/fscore/pkg/fscore/resolve"
)

// checkOutput rejects binary formats aimed at the terminal.
func checkOutput(format, outPath string) error {
	if strings.EqualFold(strings.TrimSpace(format), "xlsx") && outPath == "" {
		return eris.New("xlsx output is binary; use --out to name a file")
	}
	return nil
}

// lazyFile creates path on the first write so a failed run leaves nothing behind.
type lazyFile struct {
	path string
	f    *os.File
}

func (l *lazyFile) Write(p []byte) (int, error) {
	if l.f == nil {
		f, err := os.Create(l.path)
		if err != nil {
			return 0, eris.Wrapf(err, "create %s", l.path)
		}
		l.f = f
	}
	return l.f.Write(p)
}

func (l *lazyFile) Close() error {
	if l.f == nil {
		return nil
	}
	return l.f.Close()
}

// discard closes and removes the file if it was created.
func (l *lazyFile) discard() {
	if l.f == nil {
		return
	}
	_ = l.f.Close()
	if err := os.Remove(l.path); err != nil {
		zap.L().Warn("remove partial output", zap.String("path", l.path), zap.Error(err))
	}
}

// runScore executes one score run into outPath, or stdout when outPath is empty.
func runScore(ctx context.Context, resolver resolve.Resolver, renderer render.Renderer, query, outPath string, stdout io.Writer, opts pipeline.ExecuteOptions) error {
	var (
		w    = stdout
		file *lazyFile
	)
	if outPath != "" {
		file = &lazyFile{path: outPath}
		w = file
	}

	runner := &pipeline.Runner{Resolver: resolver, Renderer: renderer, Writer: w}
	_, err := runner.Execute(ctx, query, opts)
	if file != nil {
		if err != nil {
			file.discard()
		} else if cerr := file.Close(); cerr != nil {
			err = eris.Wrapf(cerr, "close %s", outPath)
		}
	}
	if errors.Is(err, resolve.ErrNotFound) || errors.Is(err, resolve.ErrFetch) {
		return errors.New(resolve.UserMessage(err, opts.Catalog))
	}
	return err
}
