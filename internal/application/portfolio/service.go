package portfolio

import (
	"context"
	"sort"

	"famfolio-backend/internal/application/ledger"
	"famfolio-backend/internal/domain"
	"famfolio-backend/internal/infrastructure/quotes"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// Service computes mark-to-market valuations and the family leaderboard.
// It only ever reads ledger state; it never mutates.
type Service struct {
	DB     *gorm.DB
	Ledger *ledger.Service
	Quotes quotes.Provider
}

// Position is one valued holding. When the quote provider cannot price the
// ticker, CurrentPrice degrades to the holding's cost basis (so CurrentPrice
// == AvgPrice and Profit == 0 flags degraded data implicitly).
type Position struct {
	Ticker       string          `json:"ticker"`
	Shares       int64           `json:"shares"`
	CurrentPrice decimal.Decimal `json:"current_price"`
	MarketValue  decimal.Decimal `json:"market_value"`
	Profit       decimal.Decimal `json:"profit"`
}

// Entry is one leaderboard row.
type Entry struct {
	Username string          `json:"username"`
	NetWorth decimal.Decimal `json:"net_worth"`
	Cash     decimal.Decimal `json:"cash"`
	Stocks   decimal.Decimal `json:"stocks"`
}

// PortfolioValue values every holding of a user at the current quote.
func (s *Service) PortfolioValue(ctx context.Context, userID uuid.UUID) ([]Position, error) {
	holdings, err := s.Ledger.Holdings(ctx, userID)
	if err != nil {
		return nil, err
	}

	positions := make([]Position, 0, len(holdings))
	for _, h := range holdings {
		positions = append(positions, s.value(ctx, h))
	}
	return positions, nil
}

func (s *Service) value(ctx context.Context, h domain.Holding) Position {
	price, err := s.Quotes.LastPrice(ctx, h.Ticker)
	if err != nil {
		log.Warn().Err(err).Str("ticker", h.Ticker).Msg("valuation degraded to cost basis")
		price = h.AvgPrice
	}
	shares := decimal.NewFromInt(h.Shares)
	value := price.Mul(shares).Round(2)
	profit := value.Sub(h.AvgPrice.Mul(shares)).Round(2)
	return Position{
		Ticker:       h.Ticker,
		Shares:       h.Shares,
		CurrentPrice: price.Round(2),
		MarketValue:  value,
		Profit:       profit,
	}
}

// Leaderboard ranks every user in a family by net worth (cash + market value
// of holdings), descending, ties broken by username so the ordering is
// deterministic. A quote failure for one holding degrades that holding's
// value and never aborts the computation.
func (s *Service) Leaderboard(ctx context.Context, familyID uuid.UUID) ([]Entry, error) {
	var users []domain.User
	if err := s.DB.WithContext(ctx).
		Where("family_id = ?", familyID).
		Order("username ASC").
		Find(&users).Error; err != nil {
		return nil, err
	}

	entries := make([]Entry, 0, len(users))
	for _, u := range users {
		acct, err := s.Ledger.Account(ctx, u.UserID)
		if err != nil {
			return nil, err
		}
		holdings, err := s.Ledger.Holdings(ctx, u.UserID)
		if err != nil {
			return nil, err
		}

		stocks := decimal.Zero
		for _, h := range holdings {
			stocks = stocks.Add(s.value(ctx, h).MarketValue)
		}
		entries = append(entries, Entry{
			Username: u.Username,
			NetWorth: acct.Balance.Add(stocks).Round(2),
			Cash:     acct.Balance.Round(2),
			Stocks:   stocks.Round(2),
		})
	}

	sort.SliceStable(entries, func(i, j int) bool {
		if !entries[i].NetWorth.Equal(entries[j].NetWorth) {
			return entries[i].NetWorth.GreaterThan(entries[j].NetWorth)
		}
		return entries[i].Username < entries[j].Username
	})
	return entries, nil
}
