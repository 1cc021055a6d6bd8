package trading

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"famfolio-backend/internal/application/ledger"
	"famfolio-backend/internal/domain"
	"famfolio-backend/internal/infrastructure/quotes"
	"famfolio-backend/internal/pkg/validation"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
	"github.com/shopspring/decimal"
)

// Service is the trade engine. It validates buy/sell intents, prices them
// against the quote provider and hands the atomic apply to the ledger store.
// The quote fetch always happens before the ledger takes the account lock.
type Service struct {
	Ledger *ledger.Service
	Quotes quotes.Provider
}

// Confirmation is returned on a successful trade.
type Confirmation struct {
	Message string          `json:"message"`
	Ticker  string          `json:"ticker"`
	Shares  int64           `json:"shares"`
	Price   decimal.Decimal `json:"price"`
}

// Buy purchases shares at the current quote. Fails with
// quotes.ErrSymbolNotFound for unknown tickers, ErrQuoteUnavailable when the
// feed is down (no fallback price exists for a buy) and
// ledger.ErrInsufficientFunds when the balance cannot cover the cost.
func (s *Service) Buy(ctx context.Context, userID uuid.UUID, ticker string, shares int64) (*Confirmation, error) {
	if shares <= 0 {
		return nil, ErrInvalidQuantity
	}
	ticker = normalizeTicker(ticker)
	if !validation.IsValidTicker(ticker) {
		return nil, quotes.ErrSymbolNotFound
	}

	price, err := s.Quotes.LastPrice(ctx, ticker)
	if err != nil {
		if errors.Is(err, quotes.ErrSymbolNotFound) {
			return nil, quotes.ErrSymbolNotFound
		}
		return nil, ErrQuoteUnavailable
	}

	err = s.Ledger.ApplyTrade(ctx, userID, ledger.TradeApply{
		Type:        domain.TradeTypeBuy,
		Ticker:      ticker,
		Shares:      shares,
		Price:       price,
		PriceSource: ledger.PriceSourceLive,
	})
	if err != nil {
		return nil, err
	}
	return &Confirmation{
		Message: fmt.Sprintf("Bought %d %s", shares, ticker),
		Ticker:  ticker,
		Shares:  shares,
		Price:   price,
	}, nil
}

// Sell liquidates shares at the current quote. When the quote provider is
// down the holding's cost basis is used as a degraded liquidation price, so
// sells stay executable without a live feed.
func (s *Service) Sell(ctx context.Context, userID uuid.UUID, ticker string, shares int64) (*Confirmation, error) {
	if shares <= 0 {
		return nil, ErrInvalidQuantity
	}
	ticker = normalizeTicker(ticker)

	holding, err := s.Ledger.Holding(ctx, userID, ticker)
	if err != nil {
		if errors.Is(err, ledger.ErrHoldingNotFound) {
			return nil, ledger.ErrInsufficientShares
		}
		return nil, err
	}
	if holding.Shares < shares {
		return nil, ledger.ErrInsufficientShares
	}

	priceSource := ledger.PriceSourceLive
	price, err := s.Quotes.LastPrice(ctx, ticker)
	if err != nil {
		log.Warn().Err(err).Str("ticker", ticker).Msg("sell pricing degraded to cost basis")
		price = holding.AvgPrice
		priceSource = ledger.PriceSourceCostBasis
	}

	err = s.Ledger.ApplyTrade(ctx, userID, ledger.TradeApply{
		Type:        domain.TradeTypeSell,
		Ticker:      ticker,
		Shares:      shares,
		Price:       price,
		PriceSource: priceSource,
	})
	if err != nil {
		return nil, err
	}
	return &Confirmation{
		Message: fmt.Sprintf("Sold %d %s", shares, ticker),
		Ticker:  ticker,
		Shares:  shares,
		Price:   price,
	}, nil
}

func normalizeTicker(ticker string) string {
	return strings.ToUpper(strings.TrimSpace(ticker))
}
