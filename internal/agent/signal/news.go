package signal

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"github.com/rs/zerolog/log"
)

// NewsSource scores a ticker by averaging the sentiment of its most recent
// headlines. Headlines come from a NewsAPI-compatible /v2/everything endpoint.
type NewsSource struct {
	BaseURL  string
	APIKey   string
	PageSize int
	Scorer   *Lexicon
	Client   *http.Client
}

func NewNewsSource(baseURL, apiKey string) *NewsSource {
	return &NewsSource{
		BaseURL:  baseURL,
		APIKey:   apiKey,
		PageSize: 3,
		Scorer:   DefaultLexicon(),
		Client:   &http.Client{Timeout: 10 * time.Second},
	}
}

type newsResponse struct {
	Status   string `json:"status"`
	Code     string `json:"code"`
	Articles []struct {
		Title string `json:"title"`
	} `json:"articles"`
}

// Score fetches the freshest headlines for the ticker and returns the average
// headline sentiment. No articles means no signal, not an error.
func (s *NewsSource) Score(ctx context.Context, ticker string) (float64, error) {
	q := url.Values{}
	q.Set("q", ticker)
	q.Set("language", "en")
	q.Set("sortBy", "publishedAt")
	q.Set("pageSize", fmt.Sprintf("%d", s.PageSize))
	q.Set("apiKey", s.APIKey)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, s.BaseURL+"/v2/everything?"+q.Encode(), nil)
	if err != nil {
		return 0, err
	}
	resp, err := s.Client.Do(req)
	if err != nil {
		return 0, err
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusTooManyRequests {
		return 0, ErrRateLimited
	}

	var body newsResponse
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return 0, fmt.Errorf("news for %s: decode: %w", ticker, err)
	}
	if body.Status != "ok" {
		if body.Code == "rateLimited" {
			return 0, ErrRateLimited
		}
		return 0, fmt.Errorf("news for %s: provider status %q", ticker, body.Status)
	}
	if len(body.Articles) == 0 {
		return 0, nil
	}

	total := 0.0
	for _, a := range body.Articles {
		score := s.Scorer.Score(a.Title)
		total += score
		log.Debug().Str("ticker", ticker).Str("headline", a.Title).Float64("score", score).Msg("headline scored")
	}
	return total / float64(len(body.Articles)), nil
}
