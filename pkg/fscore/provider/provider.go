// Package provider fetches raw fundamentals for a resolved symbol.
package provider

import (
	"context"
	"net/http"
	"strings"
	"sync"
	"time"

	yfgo "github.com/komsit37/yf-go"
	"github.com/rotisserie/eris"
	"go.uber.org/zap"

	"github.com/komsit37/fscore/pkg/fscore/types"
)

// Modules are the quoteSummary modules that carry every scored field.
var Modules = []yfgo.QuoteSummaryModule{
	yfgo.ModulePrice,
	yfgo.ModuleFinancialData,
	yfgo.ModuleSummaryDetail,
	yfgo.ModuleDefaultKeyStatistics,
}

// MetricsService fetches listing details and raw fundamentals for a symbol.
type MetricsService interface {
	Get(ctx context.Context, sym string) (types.Company, types.RawMetrics, error)
}

// QuoteSummarizer is the part of the yf-go API the provider uses.
type QuoteSummarizer interface {
	QuoteSummary(ctx context.Context, symbol string, modules []yfgo.QuoteSummaryModule) (any, error)
}

// ClientOptions configures the yf-go client.
type ClientOptions struct {
	Timeout  time.Duration
	CacheTTL time.Duration
	// CacheDir switches the payload cache from memory to disk when set.
	CacheDir string
}

// NewClient builds a yf-go client from opts.
func NewClient(opts ClientOptions) (*yfgo.Client, error) {
	clientOpts := []yfgo.ClientOption{
		yfgo.WithHTTPClient(&http.Client{Timeout: opts.Timeout}),
	}
	if opts.CacheTTL <= 0 {
		clientOpts = append(clientOpts, yfgo.WithCacheDisabled())
		return yfgo.NewClient(clientOpts...), nil
	}
	clientOpts = append(clientOpts, yfgo.WithDefaultCacheTTL(opts.CacheTTL))
	if strings.TrimSpace(opts.CacheDir) != "" {
		store, err := yfgo.NewFileCacheStore(opts.CacheDir)
		if err != nil {
			return nil, eris.Wrapf(err, "provider: open cache dir %s", opts.CacheDir)
		}
		clientOpts = append(clientOpts, yfgo.WithCacheStore(store))
	}
	return yfgo.NewClient(clientOpts...), nil
}

// YFService implements MetricsService using yf-go.
type YFService struct {
	api     QuoteSummarizer
	timeout time.Duration
}

func NewYFService(api QuoteSummarizer, timeout time.Duration) *YFService {
	return &YFService{api: api, timeout: timeout}
}

func (s *YFService) Get(ctx context.Context, sym string) (types.Company, types.RawMetrics, error) {
	sym = strings.TrimSpace(sym)
	if sym == "" {
		return types.Company{}, nil, eris.New("provider: empty symbol")
	}
	cctx := ctx
	if s.timeout > 0 {
		var cancel context.CancelFunc
		cctx, cancel = context.WithTimeout(ctx, s.timeout)
		defer cancel()
	}
	start := time.Now()
	raw, err := s.api.QuoteSummary(cctx, sym, Modules)
	if err != nil {
		return types.Company{}, nil, eris.Wrapf(err, "provider: quote summary %s", sym)
	}
	if _, ok := raw.(map[string]any); !ok {
		return types.Company{}, nil, eris.Errorf("provider: unexpected quote summary shape for %s", sym)
	}
	metrics := MetricsFromRaw(raw)
	zap.L().Debug("fetched fundamentals",
		zap.String("symbol", sym),
		zap.Int("fields", len(metrics)),
		zap.Duration("took", time.Since(start)),
	)
	return CompanyFromRaw(sym, raw), metrics, nil
}

// CacheService decorates a MetricsService with TTL+LRU cache.
type CacheService struct {
	next MetricsService
	ttl  time.Duration
	size int
	now  func() time.Time

	mu    sync.Mutex
	items map[string]cacheEntry
	order []string // simple LRU order, oldest at index 0
}

type cacheEntry struct {
	at      time.Time
	company types.Company
	metrics types.RawMetrics
}

func NewCacheService(next MetricsService, ttl time.Duration, size int) *CacheService {
	if size <= 0 {
		size = 1
	}
	return &CacheService{next: next, ttl: ttl, size: size, now: time.Now, items: make(map[string]cacheEntry)}
}

func (c *CacheService) key(sym string) string {
	return strings.ToUpper(strings.TrimSpace(sym))
}

func (c *CacheService) Get(ctx context.Context, sym string) (types.Company, types.RawMetrics, error) {
	k := c.key(sym)
	now := c.now()
	c.mu.Lock()
	if ent, ok := c.items[k]; ok {
		if now.Sub(ent.at) <= c.ttl {
			c.touchLocked(k)
			co, m := ent.company, cloneMetrics(ent.metrics)
			c.mu.Unlock()
			return co, m, nil
		}
		delete(c.items, k)
		c.removeFromOrderLocked(k)
	}
	c.mu.Unlock()

	co, m, err := c.next.Get(ctx, sym)
	if err != nil {
		return co, m, err
	}
	c.mu.Lock()
	if _, ok := c.items[k]; ok {
		c.removeFromOrderLocked(k)
	}
	c.items[k] = cacheEntry{at: now, company: co, metrics: cloneMetrics(m)}
	c.order = append(c.order, k)
	for len(c.items) > c.size && len(c.order) > 0 {
		old := c.order[0]
		c.order = c.order[1:]
		delete(c.items, old)
	}
	c.mu.Unlock()
	return co, m, nil
}

func (c *CacheService) touchLocked(k string) {
	c.removeFromOrderLocked(k)
	c.order = append(c.order, k)
}

func (c *CacheService) removeFromOrderLocked(k string) {
	for i, v := range c.order {
		if v == k {
			c.order = append(c.order[:i], c.order[i+1:]...)
			return
		}
	}
}

func cloneMetrics(in types.RawMetrics) types.RawMetrics {
	if in == nil {
		return nil
	}
	out := make(types.RawMetrics, len(in))
	for k, v := range in {
		if v == nil {
			out[k] = nil
			continue
		}
		f := *v
		out[k] = &f
	}
	return out
}
