package portfolio

import (
	"context"
	"testing"

	"famfolio-backend/internal/application/ledger"
	"famfolio-backend/internal/domain"
	"famfolio-backend/internal/infrastructure/quotes"

	"github.com/glebarez/sqlite"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

type fakeProvider struct {
	prices map[string]string
}

func (f *fakeProvider) LastPrice(ctx context.Context, ticker string) (decimal.Decimal, error) {
	p, ok := f.prices[ticker]
	if !ok {
		return decimal.Zero, quotes.ErrSymbolNotFound
	}
	return decimal.RequireFromString(p), nil
}

func setupPortfolioTest(t *testing.T, provider quotes.Provider) (*Service, *gorm.DB) {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(
		&domain.User{}, &domain.Account{}, &domain.Holding{},
		&domain.Transaction{}, &domain.TradeEvent{},
	))
	return &Service{DB: db, Ledger: ledger.NewService(db), Quotes: provider}, db
}

func seedMember(t *testing.T, db *gorm.DB, familyID uuid.UUID, username, balance string) uuid.UUID {
	t.Helper()
	u := domain.User{FamilyID: familyID, Username: username, PasswordHash: "x"}
	require.NoError(t, db.Create(&u).Error)
	require.NoError(t, db.Create(&domain.Account{
		UserID:  u.UserID,
		Balance: decimal.RequireFromString(balance),
	}).Error)
	return u.UserID
}

func seedHolding(t *testing.T, db *gorm.DB, userID uuid.UUID, ticker string, shares int64, avg string) {
	t.Helper()
	require.NoError(t, db.Create(&domain.Holding{
		UserID: userID, Ticker: ticker, Shares: shares,
		AvgPrice: decimal.RequireFromString(avg),
	}).Error)
}

func TestPortfolioValue_MarksToMarket(t *testing.T) {
	s, db := setupPortfolioTest(t, &fakeProvider{prices: map[string]string{"AAPL": "160.00"}})
	userID := seedMember(t, db, uuid.New(), "Kid1", "1000.00")
	seedHolding(t, db, userID, "AAPL", 10, "150.00")

	positions, err := s.PortfolioValue(context.Background(), userID)
	require.NoError(t, err)
	require.Len(t, positions, 1)
	assert.True(t, positions[0].MarketValue.Equal(decimal.RequireFromString("1600.00")))
	assert.True(t, positions[0].Profit.Equal(decimal.RequireFromString("100.00")))
}

func TestPortfolioValue_DegradesToCostBasis(t *testing.T) {
	s, db := setupPortfolioTest(t, &fakeProvider{prices: map[string]string{}})
	userID := seedMember(t, db, uuid.New(), "Kid1", "1000.00")
	seedHolding(t, db, userID, "AAPL", 10, "150.00")

	positions, err := s.PortfolioValue(context.Background(), userID)
	require.NoError(t, err)
	require.Len(t, positions, 1)
	assert.True(t, positions[0].CurrentPrice.Equal(decimal.RequireFromString("150.00")))
	assert.True(t, positions[0].Profit.IsZero(), "unpriceable holding shows no paper profit")
}

func TestPortfolioValue_EmptyPortfolio(t *testing.T) {
	s, db := setupPortfolioTest(t, &fakeProvider{})
	userID := seedMember(t, db, uuid.New(), "Kid1", "1000.00")

	positions, err := s.PortfolioValue(context.Background(), userID)
	require.NoError(t, err)
	assert.Empty(t, positions)
	assert.NotNil(t, positions)
}

func TestLeaderboard_RanksByNetWorth(t *testing.T) {
	s, db := setupPortfolioTest(t, &fakeProvider{prices: map[string]string{"AAPL": "200.00"}})
	familyID := uuid.New()

	rich := seedMember(t, db, familyID, "Dad", "500.00")
	seedHolding(t, db, rich, "AAPL", 10, "150.00") // 500 + 2000 = 2500
	seedMember(t, db, familyID, "Kid1", "1000.00") // 1000
	// Another family stays out of this board.
	seedMember(t, db, uuid.New(), "Stranger", "999999.00")

	entries, err := s.Leaderboard(context.Background(), familyID)
	require.NoError(t, err)
	require.Len(t, entries, 2)
	assert.Equal(t, "Dad", entries[0].Username)
	assert.True(t, entries[0].NetWorth.Equal(decimal.RequireFromString("2500.00")))
	assert.Equal(t, "Kid1", entries[1].Username)
}

func TestLeaderboard_TiesBreakByUsername(t *testing.T) {
	s, db := setupPortfolioTest(t, &fakeProvider{})
	familyID := uuid.New()
	seedMember(t, db, familyID, "Zoe", "1000.00")
	seedMember(t, db, familyID, "Amy", "1000.00")
	seedMember(t, db, familyID, "Mia", "1000.00")

	entries, err := s.Leaderboard(context.Background(), familyID)
	require.NoError(t, err)
	require.Len(t, entries, 3)
	assert.Equal(t, "Amy", entries[0].Username)
	assert.Equal(t, "Mia", entries[1].Username)
	assert.Equal(t, "Zoe", entries[2].Username)
}

func TestLeaderboard_QuoteFailureDoesNotAbort(t *testing.T) {
	s, db := setupPortfolioTest(t, &fakeProvider{prices: map[string]string{}})
	familyID := uuid.New()
	userID := seedMember(t, db, familyID, "Dad", "100.00")
	seedHolding(t, db, userID, "AAPL", 2, "50.00")

	entries, err := s.Leaderboard(context.Background(), familyID)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	// Unpriceable stock valued at cost basis: 100 cash + 100 stock.
	assert.True(t, entries[0].NetWorth.Equal(decimal.RequireFromString("200.00")))
}
