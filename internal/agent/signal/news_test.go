package signal

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newsServer(t *testing.T, handler http.HandlerFunc) *NewsSource {
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	return NewNewsSource(srv.URL, "test-key")
}

func TestNewsSource_AveragesHeadlines(t *testing.T) {
	var gotQuery string
	s := newsServer(t, func(w http.ResponseWriter, r *http.Request) {
		gotQuery = r.URL.RawQuery
		json.NewEncoder(w).Encode(map[string]interface{}{
			"status": "ok",
			"articles": []map[string]string{
				{"title": "Apple shares surge after record earnings"},
				{"title": "Strong iPhone growth beats expectations"},
				{"title": "Apple announces new product event"},
			},
		})
	})

	score, err := s.Score(context.Background(), "AAPL")
	require.NoError(t, err)
	assert.Greater(t, score, 0.0)
	assert.Contains(t, gotQuery, "q=AAPL")
	assert.Contains(t, gotQuery, "apiKey=test-key")
	assert.Contains(t, gotQuery, "sortBy=publishedAt")
}

func TestNewsSource_NoArticlesIsNoSignal(t *testing.T) {
	s := newsServer(t, func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(map[string]interface{}{"status": "ok", "articles": []interface{}{}})
	})

	score, err := s.Score(context.Background(), "AAPL")
	require.NoError(t, err)
	assert.Zero(t, score)
}

func TestNewsSource_RateLimitedStatusCode(t *testing.T) {
	s := newsServer(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTooManyRequests)
	})

	_, err := s.Score(context.Background(), "AAPL")
	assert.ErrorIs(t, err, ErrRateLimited)
}

func TestNewsSource_RateLimitedBodyCode(t *testing.T) {
	s := newsServer(t, func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(map[string]string{"status": "error", "code": "rateLimited"})
	})

	_, err := s.Score(context.Background(), "AAPL")
	assert.ErrorIs(t, err, ErrRateLimited)
}

func TestNewsSource_ProviderError(t *testing.T) {
	s := newsServer(t, func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(map[string]string{"status": "error", "code": "apiKeyInvalid"})
	})

	_, err := s.Score(context.Background(), "AAPL")
	require.Error(t, err)
	assert.NotErrorIs(t, err, ErrRateLimited)
}
