// Package web serves the score form, a JSON API and spreadsheet downloads.
package web

import (
	"bytes"
	"context"
	"embed"
	"errors"
	"html/template"
	"net/http"
	"strings"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/rotisserie/eris"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/komsit37/fscore/pkg/fscore/columns"
	"github.com/komsit37/fscore/pkg/fscore/locale"
	"github.com/komsit37/fscore/pkg/fscore/pipeline"
	"github.com/komsit37/fscore/pkg/fscore/render"
	"github.com/komsit37/fscore/pkg/fscore/resolve"
	"github.com/komsit37/fscore/pkg/fscore/score"
)

//go:embed templates/index.html
var templateFS embed.FS

var indexTmpl = template.Must(template.ParseFS(templateFS, "templates/index.html"))

type Options struct {
	Addr           string
	AllowedOrigins []string
	DefaultQuery   string
	// DefaultLang applies when neither ?lang= nor Accept-Language is set.
	DefaultLang     string
	ShutdownTimeout time.Duration
}

type Server struct {
	resolver resolve.Resolver
	opts     Options
	router   *gin.Engine
}

func NewServer(r resolve.Resolver, opts Options) *Server {
	if opts.DefaultQuery == "" {
		opts.DefaultQuery = "Apple"
	}
	if opts.ShutdownTimeout <= 0 {
		opts.ShutdownTimeout = 5 * time.Second
	}
	s := &Server{resolver: r, opts: opts}
	s.router = s.routes()
	return s
}

// Handler exposes the router for tests and embedding.
func (s *Server) Handler() http.Handler { return s.router }

func (s *Server) routes() *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery(), requestLogger())
	r.Use(cors.New(corsConfig(s.opts.AllowedOrigins)))

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	r.GET("/", s.handleIndex)
	r.GET("/api/score", s.handleScore)
	r.GET("/export.csv", s.handleExport("csv", "text/csv; charset=utf-8"))
	r.GET("/export.xlsx", s.handleExport("xlsx", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"))
	return r
}

func corsConfig(origins []string) cors.Config {
	cfg := cors.Config{
		AllowMethods: []string{http.MethodGet, http.MethodOptions},
		AllowHeaders: []string{"Origin", "Accept", "Accept-Language"},
		MaxAge:       12 * time.Hour,
	}
	if len(origins) == 0 || (len(origins) == 1 && origins[0] == "*") {
		cfg.AllowAllOrigins = true
	} else {
		cfg.AllowOrigins = origins
	}
	return cfg
}

func requestLogger() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		zap.L().Info("http request",
			zap.String("method", c.Request.Method),
			zap.String("path", c.Request.URL.Path),
			zap.Int("status", c.Writer.Status()),
			zap.Duration("elapsed", time.Since(start)),
		)
	}
}

func (s *Server) catalog(c *gin.Context) locale.Catalog {
	if lang := c.Query("lang"); lang != "" {
		return locale.Match(lang)
	}
	if al := c.GetHeader("Accept-Language"); al != "" {
		return locale.Match(al)
	}
	return locale.Match(s.opts.DefaultLang)
}

// statusFor maps resolver errors to HTTP status codes.
func statusFor(err error) int {
	switch {
	case errors.Is(err, resolve.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, resolve.ErrFetch):
		return http.StatusBadGateway
	}
	return http.StatusInternalServerError
}

type pageData struct {
	Lang   string
	Title  string
	Prompt string
	Query  string
	Error  string
	Report *pageReport
}

type pageReport struct {
	Symbol     string
	Name       string
	Headers    []string
	Rows       [][]string
	TotalLabel string
	Total      int
	Max        int
	Verdict    string
}

func newPageReport(rep score.Report, cat locale.Catalog) *pageReport {
	cols := columns.Compute(nil)
	return &pageReport{
		Symbol:     rep.Company().Symbol,
		Name:       rep.Company().Name,
		Headers:    columns.Headers(cols, cat),
		Rows:       columns.Rows(rep, cols, cat),
		TotalLabel: cat.TotalLabel,
		Total:      rep.Total(),
		Max:        rep.Max(),
		Verdict:    cat.Verdict(rep.Interpretation()),
	}
}

func (s *Server) handleIndex(c *gin.Context) {
	cat := s.catalog(c)
	q := strings.TrimSpace(c.DefaultQuery("q", s.opts.DefaultQuery))
	data := pageData{
		Lang:   cat.Tag.String(),
		Title:  cat.Title,
		Prompt: cat.Prompt,
		Query:  q,
	}
	status := http.StatusOK
	if q != "" {
		rep, err := pipeline.Analyze(c.Request.Context(), s.resolver, q)
		if err != nil {
			status = statusFor(err)
			data.Error = resolve.UserMessage(err, cat)
		} else {
			data.Report = newPageReport(rep, cat)
		}
	}

	var buf bytes.Buffer
	if err := indexTmpl.Execute(&buf, data); err != nil {
		_ = c.Error(eris.Wrap(err, "web: render index"))
		c.String(http.StatusInternalServerError, "internal error")
		return
	}
	c.Data(status, "text/html; charset=utf-8", buf.Bytes())
}

func (s *Server) handleScore(c *gin.Context) {
	cat := s.catalog(c)
	rep, err := pipeline.Analyze(c.Request.Context(), s.resolver, c.Query("q"))
	if err != nil {
		c.JSON(statusFor(err), gin.H{"error": resolve.UserMessage(err, cat)})
		return
	}
	var buf bytes.Buffer
	if err := render.NewJSONRenderer().Render(&buf, rep, render.RenderOptions{Catalog: cat}); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.Data(http.StatusOK, "application/json; charset=utf-8", buf.Bytes())
}

func (s *Server) handleExport(format, contentType string) gin.HandlerFunc {
	return func(c *gin.Context) {
		cat := s.catalog(c)
		rep, err := pipeline.Analyze(c.Request.Context(), s.resolver, c.Query("q"))
		if err != nil {
			c.String(statusFor(err), resolve.UserMessage(err, cat))
			return
		}
		r, err := render.ForFormat(format)
		if err != nil {
			c.String(http.StatusInternalServerError, err.Error())
			return
		}
		var buf bytes.Buffer
		if err := r.Render(&buf, rep, render.RenderOptions{Catalog: cat}); err != nil {
			zap.L().Error("export failed", zap.String("format", format), zap.Error(err))
			c.String(http.StatusInternalServerError, cat.FetchFailed)
			return
		}
		c.Header("Content-Disposition", `attachment; filename="`+exportName(rep)+"."+format+`"`)
		c.Data(http.StatusOK, contentType, buf.Bytes())
	}
}

func exportName(rep score.Report) string {
	sym := strings.Map(func(r rune) rune {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9', r == '.', r == '-', r == '_':
			return r
		}
		return -1
	}, rep.Company().Symbol)
	if sym == "" {
		return "fscore"
	}
	return sym + "_fscore"
}

// Run serves until ctx is cancelled, then shuts down gracefully.
func (s *Server) Run(ctx context.Context) error {
	srv := &http.Server{
		Addr:              s.opts.Addr,
		Handler:           s.router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		zap.L().Info("listening", zap.String("addr", s.opts.Addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return eris.Wrap(err, "web: listen")
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), s.opts.ShutdownTimeout)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			return eris.Wrap(err, "web: shutdown")
		}
		return nil
	})
	return g.Wait()
}
