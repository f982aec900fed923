package main

import (
	"github.com/komsit37/fscore/pkg/fscore/config"
	"github.com/komsit37/fscore/pkg/fscore/filter"
	"github.com/komsit37/fscore/pkg/fscore/provider"
	"github.com/komsit37/fscore/pkg/fscore/resolve"
)

// buildResolver wires search, yf-go and the in-process cache from cfg.
// filterExpr overrides search.filter when non-empty.
func buildResolver(cfg *config.Config, filterExpr string) (*resolve.YahooResolver, error) {
	if filterExpr == "" {
		filterExpr = cfg.Search.Filter
	}
	f, err := filter.Parse(filterExpr)
	if err != nil {
		return nil, err
	}

	client, err := provider.NewClient(provider.ClientOptions{
		Timeout:  cfg.Provider.Timeout,
		CacheTTL: cfg.Provider.CacheTTL,
		CacheDir: cfg.Provider.CacheDir,
	})
	if err != nil {
		return nil, err
	}
	var metrics provider.MetricsService = provider.NewYFService(client, cfg.Provider.Timeout)
	if cfg.Provider.CacheTTL > 0 {
		metrics = provider.NewCacheService(metrics, cfg.Provider.CacheTTL, cfg.Provider.CacheSize)
	}

	retry := resolve.DefaultRetryConfig()
	retry.MaxAttempts = cfg.Search.Retries
	search := resolve.NewSearchClient(resolve.SearchOptions{
		BaseURL:    cfg.Search.BaseURL,
		MaxResults: cfg.Search.MaxResults,
		Timeout:    cfg.Provider.Timeout,
		Rate:       cfg.Search.Rate,
		Burst:      cfg.Search.Burst,
		Retry:      retry,
	})

	return &resolve.YahooResolver{Search: search, Metrics: metrics, Filter: f}, nil
}

// colWidth caps the table's widest column to half the terminal when the
// terminal is narrower than the configured maximum allows.
func colWidth(configured, term int) int {
	if configured <= 0 {
		configured = 40
	}
	if term > 0 && term/2 < configured {
		if term/2 < 12 {
			return 12
		}
		return term / 2
	}
	return configured
}
