package quotes

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// HTTPClient is a Provider backed by a market-data HTTP API that serves the
// last traded price per symbol.
type HTTPClient struct {
	BaseURL string
	APIKey  string
	Client  *http.Client
}

type lastPriceResponse struct {
	Ticker string          `json:"ticker"`
	Price  decimal.Decimal `json:"price"`
}

func (c *HTTPClient) LastPrice(ctx context.Context, ticker string) (decimal.Decimal, error) {
	if c.Client == nil {
		c.Client = &http.Client{Timeout: 10 * time.Second}
	}
	if c.BaseURL == "" {
		return decimal.Zero, fmt.Errorf("quotes: QUOTE_API_URL is not set: %w", ErrUnavailable)
	}
	base := strings.TrimRight(c.BaseURL, "/")
	url := fmt.Sprintf("%s/v1/last/%s", base, strings.ToUpper(ticker))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return decimal.Zero, err
	}
	if c.APIKey != "" {
		req.Header.Set("apikey", c.APIKey)
	}

	resp, err := c.Client.Do(req)
	if err != nil {
		return decimal.Zero, fmt.Errorf("quotes request: %w", ErrUnavailable)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotFound {
		return decimal.Zero, ErrSymbolNotFound
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		body, _ := io.ReadAll(resp.Body)
		return decimal.Zero, fmt.Errorf("quotes status %d body %s: %w", resp.StatusCode, string(body), ErrUnavailable)
	}

	var data lastPriceResponse
	if err := json.NewDecoder(resp.Body).Decode(&data); err != nil {
		return decimal.Zero, fmt.Errorf("quotes decode: %w", ErrUnavailable)
	}
	if data.Price.IsNegative() {
		return decimal.Zero, fmt.Errorf("quotes negative price %s: %w", data.Price, ErrUnavailable)
	}
	return data.Price.Round(2), nil
}
