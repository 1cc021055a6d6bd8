package quotes

import (
	"context"
	"errors"

	"github.com/shopspring/decimal"
)

// Provider resolves a ticker to its most recent trade price.
type Provider interface {
	LastPrice(ctx context.Context, ticker string) (decimal.Decimal, error)
}

var (
	// ErrSymbolNotFound means the provider does not know the ticker.
	ErrSymbolNotFound = errors.New("Symbol not found")
	// ErrUnavailable means the provider could not answer (network, 5xx,
	// malformed body). Callers decide whether a fallback price applies.
	ErrUnavailable = errors.New("Quote provider unavailable")
)
