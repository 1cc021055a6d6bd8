package client

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/cookiejar"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// ErrUnauthorized is returned when the API rejects the session. The caller
// should log in again.
var ErrUnauthorized = errors.New("session rejected")

// Client talks to the game API over its public HTTP surface, the same way a
// browser would: cookie session, JSON bodies.
type Client struct {
	BaseURL  string
	Username string
	Password string
	HTTP     *http.Client
}

func New(baseURL, username, password string) (*Client, error) {
	jar, err := cookiejar.New(nil)
	if err != nil {
		return nil, err
	}
	return &Client{
		BaseURL:  strings.TrimRight(baseURL, "/"),
		Username: username,
		Password: password,
		HTTP:     &http.Client{Timeout: 15 * time.Second, Jar: jar},
	}, nil
}

// envelope is the API's standard response shape.
type envelope struct {
	Status  string          `json:"status"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
	Error   *struct {
		Message    string `json:"message"`
		StatusCode int    `json:"statusCode"`
	} `json:"error"`
}

func (c *Client) do(ctx context.Context, method, path string, body interface{}, out interface{}) error {
	var rdr *bytes.Reader
	if body != nil {
		b, err := json.Marshal(body)
		if err != nil {
			return err
		}
		rdr = bytes.NewReader(b)
	} else {
		rdr = bytes.NewReader(nil)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.BaseURL+path, rdr)
	if err != nil {
		return err
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.HTTP.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	var env envelope
	if err := json.NewDecoder(resp.Body).Decode(&env); err != nil {
		return fmt.Errorf("%s %s: decode response: %w", method, path, err)
	}
	if resp.StatusCode == http.StatusUnauthorized {
		return ErrUnauthorized
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		msg := env.Message
		if env.Error != nil {
			msg = env.Error.Message
		}
		return fmt.Errorf("%s %s: %s (status %d)", method, path, msg, resp.StatusCode)
	}
	if out != nil && env.Data != nil {
		if err := json.Unmarshal(env.Data, out); err != nil {
			return fmt.Errorf("%s %s: decode data: %w", method, path, err)
		}
	}
	return nil
}

// Login opens a session. The cookie jar keeps it for later calls.
func (c *Client) Login(ctx context.Context) error {
	return c.do(ctx, http.MethodPost, "/api/v1/auth/login", map[string]string{
		"username": c.Username,
		"password": c.Password,
	}, nil)
}

// Idea is one research catalogue entry.
type Idea struct {
	Ticker      string `json:"ticker"`
	Name        string `json:"name"`
	Description string `json:"desc"`
}

// Research returns the idea catalogue grouped by category.
func (c *Client) Research(ctx context.Context) (map[string][]Idea, error) {
	var out map[string][]Idea
	if err := c.do(ctx, http.MethodGet, "/api/v1/research", nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// Balance returns the current cash balance.
func (c *Client) Balance(ctx context.Context) (decimal.Decimal, error) {
	var out struct {
		Balance decimal.Decimal `json:"balance"`
	}
	if err := c.do(ctx, http.MethodGet, "/api/v1/account/balance", nil, &out); err != nil {
		return decimal.Zero, err
	}
	return out.Balance, nil
}

// Quote returns the last traded price for a ticker.
func (c *Client) Quote(ctx context.Context, ticker string) (decimal.Decimal, error) {
	var out struct {
		Price decimal.Decimal `json:"price"`
	}
	if err := c.do(ctx, http.MethodGet, "/api/v1/market/quote?ticker="+ticker, nil, &out); err != nil {
		return decimal.Zero, err
	}
	return out.Price, nil
}

// Position is one row of the portfolio.
type Position struct {
	Ticker string `json:"ticker"`
	Shares int64  `json:"shares"`
}

// Portfolio returns the user's positions.
func (c *Client) Portfolio(ctx context.Context) ([]Position, error) {
	var out []Position
	if err := c.do(ctx, http.MethodGet, "/api/v1/portfolio", nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

type tradeRequest struct {
	Ticker string `json:"ticker"`
	Shares int64  `json:"shares"`
}

// Buy places a market buy for the given number of shares.
func (c *Client) Buy(ctx context.Context, ticker string, shares int64) error {
	return c.do(ctx, http.MethodPost, "/api/v1/trading/buy", tradeRequest{Ticker: ticker, Shares: shares}, nil)
}

// Sell places a market sell for the given number of shares.
func (c *Client) Sell(ctx context.Context, ticker string, shares int64) error {
	return c.do(ctx, http.MethodPost, "/api/v1/trading/sell", tradeRequest{Ticker: ticker, Shares: shares}, nil)
}
