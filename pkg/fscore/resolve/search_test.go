package resolve

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func fastRetry(attempts int) RetryConfig {
	return RetryConfig{MaxAttempts: attempts, InitialBackoff: time.Millisecond, MaxBackoff: 2 * time.Millisecond}
}

func TestSearchClient_Search(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "apple", r.URL.Query().Get("q"))
		assert.Equal(t, "5", r.URL.Query().Get("quotesCount"))
		assert.Equal(t, "0", r.URL.Query().Get("newsCount"))
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"quotes":[
			{"symbol":"AAPL","shortname":"Apple Inc.","longname":"Apple Inc.","exchange":"NMS","quoteType":"EQUITY"},
			{"shortname":"no symbol"},
			{"symbol":"APC.F","shortname":"APPLE INC","exchange":"FRA","quoteType":"EQUITY"}
		]}`))
	}))
	defer srv.Close()

	c := NewSearchClient(SearchOptions{BaseURL: srv.URL, MaxResults: 5, Retry: fastRetry(1)})
	got, err := c.Search(context.Background(), " apple ")
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, "AAPL", got[0].Symbol)
	assert.Equal(t, "NMS", got[0].Exchange)
	assert.Equal(t, "APC.F", got[1].Symbol)
	assert.Equal(t, "APPLE INC", got[1].DisplayName())
}

func TestSearchClient_EmptyQuery(t *testing.T) {
	c := NewSearchClient(SearchOptions{BaseURL: "http://127.0.0.1:1"})
	got, err := c.Search(context.Background(), "   ")
	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestSearchClient_RetriesTransient(t *testing.T) {
	var calls atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if calls.Add(1) < 3 {
			http.Error(w, "busy", http.StatusServiceUnavailable)
			return
		}
		_, _ = w.Write([]byte(`{"quotes":[{"symbol":"SAP.DE","exchange":"GER","quoteType":"EQUITY"}]}`))
	}))
	defer srv.Close()

	c := NewSearchClient(SearchOptions{BaseURL: srv.URL, Retry: fastRetry(3)})
	got, err := c.Search(context.Background(), "sap")
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, int32(3), calls.Load())
}

func TestSearchClient_NoRetryOnClientError(t *testing.T) {
	var calls atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		http.Error(w, "bad", http.StatusBadRequest)
	}))
	defer srv.Close()

	c := NewSearchClient(SearchOptions{BaseURL: srv.URL, Retry: fastRetry(3)})
	_, err := c.Search(context.Background(), "x")
	var se *statusError
	require.True(t, errors.As(err, &se))
	assert.Equal(t, http.StatusBadRequest, se.Code)
	assert.Equal(t, int32(1), calls.Load())
}

func TestSearchClient_MalformedBody(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"quotes":`))
	}))
	defer srv.Close()

	c := NewSearchClient(SearchOptions{BaseURL: srv.URL, Retry: fastRetry(1)})
	_, err := c.Search(context.Background(), "x")
	assert.Error(t, err)
}

func TestIsTransient(t *testing.T) {
	assert.False(t, isTransient(nil))
	assert.True(t, isTransient(&statusError{Code: http.StatusTooManyRequests}))
	assert.True(t, isTransient(&statusError{Code: http.StatusBadGateway}))
	assert.False(t, isTransient(&statusError{Code: http.StatusNotFound}))
	assert.False(t, isTransient(errors.New("plain")))
}

func TestBackoff(t *testing.T) {
	cfg := RetryConfig{InitialBackoff: 100 * time.Millisecond, MaxBackoff: 300 * time.Millisecond}
	assert.Equal(t, 100*time.Millisecond, backoff(0, cfg))
	assert.Equal(t, 200*time.Millisecond, backoff(1, cfg))
	assert.Equal(t, 300*time.Millisecond, backoff(5, cfg))

	cfg.JitterFraction = 0.5
	for i := 0; i < 20; i++ {
		d := backoff(0, cfg)
		assert.GreaterOrEqual(t, d, 50*time.Millisecond)
		assert.LessOrEqual(t, d, 150*time.Millisecond)
	}
}
