// Package resolve maps free text to a listing and its raw fundamentals.
package resolve

import (
	"context"
	"errors"
	"strings"

	"github.com/rotisserie/eris"
	"go.uber.org/zap"

	"github.com/komsit37/fscore/pkg/fscore/filter"
	"github.com/komsit37/fscore/pkg/fscore/locale"
	"github.com/komsit37/fscore/pkg/fscore/provider"
	"github.com/komsit37/fscore/pkg/fscore/types"
)

var (
	// ErrNotFound means no listing matched the query.
	ErrNotFound = eris.New("resolve: ticker not found")
	// ErrFetch means a listing matched but its data could not be retrieved.
	ErrFetch = eris.New("resolve: data retrieval failed")
)

// Resolution is a resolved listing with its raw fundamentals.
type Resolution struct {
	Company types.Company
	Metrics types.RawMetrics
}

// Resolver turns free text into a Resolution.
type Resolver interface {
	Resolve(ctx context.Context, query string) (Resolution, error)
}

// YahooResolver searches for the query, keeps the first candidate that
// passes Filter and fetches its fundamentals.
type YahooResolver struct {
	Search  Searcher
	Metrics provider.MetricsService
	Filter  filter.Filter
}

func (r *YahooResolver) Resolve(ctx context.Context, query string) (Resolution, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return Resolution{}, ErrNotFound
	}
	cands, err := r.Search.Search(ctx, query)
	if err != nil {
		// a failed search reads the same as no match to the user
		zap.L().Warn("symbol search failed", zap.String("query", query), zap.Error(err))
		return Resolution{}, ErrNotFound
	}
	cands = filter.Candidates(r.Filter, cands)
	if len(cands) == 0 {
		return Resolution{}, ErrNotFound
	}
	best := cands[0]

	company, metrics, err := r.Metrics.Get(ctx, best.Symbol)
	if err != nil {
		zap.L().Warn("fundamentals fetch failed", zap.String("symbol", best.Symbol), zap.Error(err))
		return Resolution{}, &FetchError{Symbol: best.Symbol, Err: err}
	}
	if company.Name == "" {
		company.Name = best.DisplayName()
	}
	if company.Exchange == "" {
		company.Exchange = best.Exchange
	}
	if company.QuoteType == "" {
		company.QuoteType = best.QuoteType
	}
	zap.L().Info("resolved",
		zap.String("query", query),
		zap.String("symbol", company.Symbol),
		zap.Int("fields", len(metrics)),
	)
	return Resolution{Company: company, Metrics: metrics}, nil
}

// FetchError reports a failed fundamentals fetch for a matched symbol.
type FetchError struct {
	Symbol string
	Err    error
}

func (e *FetchError) Error() string {
	return "resolve: fetch " + e.Symbol + ": " + e.Err.Error()
}

func (e *FetchError) Unwrap() error { return e.Err }

// Is lets errors.Is(err, ErrFetch) match any FetchError.
func (e *FetchError) Is(target error) bool { return target == ErrFetch }

// UserMessage renders err as the single sentence shown to a user.
func UserMessage(err error, cat locale.Catalog) string {
	switch {
	case err == nil:
		return ""
	case errors.Is(err, ErrNotFound):
		return cat.NotFound
	case errors.Is(err, ErrFetch):
		var fe *FetchError
		if errors.As(err, &fe) {
			return cat.FetchFailed + ": " + fe.Err.Error()
		}
		return cat.FetchFailed
	}
	return cat.FetchFailed + ": " + err.Error()
}
