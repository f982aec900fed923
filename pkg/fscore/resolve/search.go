package resolve

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/rotisserie/eris"
	"golang.org/x/time/rate"

	"github.com/komsit37/fscore/pkg/fscore/types"
)

// DefaultSearchURL is Yahoo Finance's symbol lookup endpoint.
const DefaultSearchURL = "https://query2.finance.yahoo.com/v1/finance/search"

// Searcher looks up listings by free text.
type Searcher interface {
	Search(ctx context.Context, query string) ([]types.Candidate, error)
}

// SearchOptions configures SearchClient.
type SearchOptions struct {
	BaseURL    string
	MaxResults int
	Timeout    time.Duration
	// Rate and Burst pace outgoing requests; Rate <= 0 disables pacing.
	Rate  float64
	Burst int
	Retry RetryConfig
}

// SearchClient calls the Yahoo search endpoint.
type SearchClient struct {
	http    *http.Client
	opts    SearchOptions
	limiter *rate.Limiter
}

func NewSearchClient(opts SearchOptions) *SearchClient {
	if opts.BaseURL == "" {
		opts.BaseURL = DefaultSearchURL
	}
	if opts.MaxResults <= 0 {
		opts.MaxResults = 8
	}
	if opts.Timeout <= 0 {
		opts.Timeout = 10 * time.Second
	}
	if opts.Burst <= 0 {
		opts.Burst = 1
	}
	lim := rate.NewLimiter(rate.Inf, opts.Burst)
	if opts.Rate > 0 {
		lim = rate.NewLimiter(rate.Limit(opts.Rate), opts.Burst)
	}
	return &SearchClient{
		http:    &http.Client{Timeout: opts.Timeout},
		opts:    opts,
		limiter: lim,
	}
}

type searchEnvelope struct {
	Quotes []struct {
		Symbol    string `json:"symbol"`
		ShortName string `json:"shortname"`
		LongName  string `json:"longname"`
		Exchange  string `json:"exchange"`
		QuoteType string `json:"quoteType"`
	} `json:"quotes"`
}

// Search returns candidates in the provider's relevance order.
func (c *SearchClient) Search(ctx context.Context, query string) ([]types.Candidate, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return nil, nil
	}
	q := url.Values{}
	q.Set("q", query)
	q.Set("quotesCount", strconv.Itoa(c.opts.MaxResults))
	q.Set("newsCount", "0")
	u := c.opts.BaseURL + "?" + q.Encode()

	return retryDo(ctx, c.opts.Retry, func(ctx context.Context) ([]types.Candidate, error) {
		if err := c.limiter.Wait(ctx); err != nil {
			return nil, eris.Wrap(err, "search: rate limit wait")
		}
		return c.fetch(ctx, u)
	})
}

func (c *SearchClient) fetch(ctx context.Context, u string) ([]types.Candidate, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return nil, eris.Wrap(err, "search: build request")
	}
	req.Header.Set("User-Agent", "Mozilla/5.0 (compatible; fscore/1.0)")
	req.Header.Set("Accept", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()
	b, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil {
		return nil, eris.Wrap(err, "search: read body")
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, &statusError{Code: resp.StatusCode, Body: strings.TrimSpace(string(b))}
	}
	var env searchEnvelope
	if err := json.Unmarshal(b, &env); err != nil {
		return nil, eris.Wrap(err, "search: decode response")
	}
	out := make([]types.Candidate, 0, len(env.Quotes))
	for _, q := range env.Quotes {
		if strings.TrimSpace(q.Symbol) == "" {
			continue
		}
		out = append(out, types.Candidate{
			Symbol:    q.Symbol,
			ShortName: q.ShortName,
			LongName:  q.LongName,
			Exchange:  q.Exchange,
			QuoteType: q.QuoteType,
		})
	}
	return out, nil
}
