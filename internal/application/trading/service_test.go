package trading

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

// fakeProvider serves fixed prices and records lookups.
type fakeProvider struct {
	prices map[string]string
	err    error
	calls  int
}

func (f *fakeProvider) LastPrice(ctx context.Context, ticker string) (decimal.Decimal, error) {
	f.calls++
	if f.err != nil {
		return decimal.Zero, f.err
	}
	p, ok := f.prices[ticker]
	if !ok {
		return decimal.Zero, quotes.ErrSymbolNotFound
	}
	return decimal.RequireFromString(p), nil
}

func setupTradingTest(t *testing.T, provider quotes.Provider) (*Service, uuid.UUID) {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(
		&domain.Account{}, &domain.Holding{}, &domain.Transaction{}, &domain.TradeEvent{},
	))

	userID := uuid.New()
	require.NoError(t, db.Create(&domain.Account{
		UserID:  userID,
		Balance: decimal.RequireFromString("10000.00"),
	}).Error)
	return &Service{Ledger: ledger.NewService(db), Quotes: provider}, userID
}

func TestBuy_Success(t *testing.T) {
	fp := &fakeProvider{prices: map[string]string{"AAPL": "150.00"}}
	s, userID := setupTradingTest(t, fp)

	conf, err := s.Buy(context.Background(), userID, "aapl ", 10)
	require.NoError(t, err)
	assert.Equal(t, "Bought 10 AAPL", conf.Message)
	assert.Equal(t, "AAPL", conf.Ticker)
	assert.True(t, conf.Price.Equal(decimal.RequireFromString("150.00")))
}

func TestBuy_InvalidQuantity(t *testing.T) {
	s, userID := setupTradingTest(t, &fakeProvider{})

	for _, shares := range []int64{0, -3} {
		_, err := s.Buy(context.Background(), userID, "AAPL", shares)
		assert.ErrorIs(t, err, ErrInvalidQuantity)
	}
}

func TestBuy_UnknownTicker(t *testing.T) {
	fp := &fakeProvider{prices: map[string]string{}}
	s, userID := setupTradingTest(t, fp)

	_, err := s.Buy(context.Background(), userID, "ZZZZ", 1)
	assert.ErrorIs(t, err, quotes.ErrSymbolNotFound)
}

func TestBuy_MalformedTickerSkipsQuoteFetch(t *testing.T) {
	fp := &fakeProvider{}
	s, userID := setupTradingTest(t, fp)

	_, err := s.Buy(context.Background(), userID, "not a ticker!!", 1)
	assert.ErrorIs(t, err, quotes.ErrSymbolNotFound)
	assert.Zero(t, fp.calls)
}

func TestBuy_QuoteFeedDown(t *testing.T) {
	fp := &fakeProvider{err: quotes.ErrUnavailable}
	s, userID := setupTradingTest(t, fp)

	_, err := s.Buy(context.Background(), userID, "AAPL", 1)
	assert.ErrorIs(t, err, ErrQuoteUnavailable)
}

func TestBuy_InsufficientFunds(t *testing.T) {
	fp := &fakeProvider{prices: map[string]string{"AAPL": "150.00"}}
	s, userID := setupTradingTest(t, fp)

	_, err := s.Buy(context.Background(), userID, "AAPL", 100)
	assert.ErrorIs(t, err, ledger.ErrInsufficientFunds)
}

func TestSell_Success(t *testing.T) {
	fp := &fakeProvider{prices: map[string]string{"DIS": "90.00"}}
	s, userID := setupTradingTest(t, fp)

	_, err := s.Buy(context.Background(), userID, "DIS", 5)
	require.NoError(t, err)

	conf, err := s.Sell(context.Background(), userID, "dis", 5)
	require.NoError(t, err)
	assert.Equal(t, "Sold 5 DIS", conf.Message)
}

func TestSell_NeverBought(t *testing.T) {
	fp := &fakeProvider{prices: map[string]string{"DIS": "90.00"}}
	s, userID := setupTradingTest(t, fp)

	_, err := s.Sell(context.Background(), userID, "DIS", 1)
	assert.ErrorIs(t, err, ledger.ErrInsufficientShares)
	assert.Zero(t, fp.calls, "no quote fetch for a position the user does not hold")
}

func TestSell_FallsBackToCostBasisWhenFeedDown(t *testing.T) {
	fp := &fakeProvider{prices: map[string]string{"NKE": "75.00"}}
	s, userID := setupTradingTest(t, fp)

	_, err := s.Buy(context.Background(), userID, "NKE", 4)
	require.NoError(t, err)

	// Feed dies between buy and sell.
	fp.err = quotes.ErrUnavailable
	conf, err := s.Sell(context.Background(), userID, "NKE", 4)
	require.NoError(t, err)
	assert.True(t, conf.Price.Equal(decimal.RequireFromString("75.00")), "degraded sell prices at cost basis")

	var events []domain.TradeEvent
	require.NoError(t, s.Ledger.DB.Where("user_id = ?", userID).Order("created_at ASC").Find(&events).Error)
	require.Len(t, events, 2)
	assert.Contains(t, string(events[1].EventData), ledger.PriceSourceCostBasis)
}
