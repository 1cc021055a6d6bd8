package research

import (
	"context"
	"testing"

	"famfolio-backend/internal/domain"

	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func setupResearchTest(t *testing.T) *Service {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&domain.StockIdea{}))

	rows := []domain.StockIdea{
		{Category: "Tech & Cars", Ticker: "AAPL", Name: "Apple", Description: "iPhones and MacBooks."},
		{Category: "Entertainment", Ticker: "DIS", Name: "Disney", Description: "Marvel and Theme Parks."},
		{Category: "Tech & Cars", Ticker: "TSLA", Name: "Tesla", Description: "Electric cars."},
	}
	for i := range rows {
		require.NoError(t, db.Create(&rows[i]).Error)
	}
	return &Service{DB: db}
}

func TestListIdeas_GroupedByCategory(t *testing.T) {
	s := setupResearchTest(t)

	out, err := s.ListIdeas(context.Background())
	require.NoError(t, err)
	require.Len(t, out, 2)

	tech := out["Tech & Cars"]
	require.Len(t, tech, 2)
	assert.Equal(t, "AAPL", tech[0].Ticker)
	assert.Equal(t, "TSLA", tech[1].Ticker)
	assert.Equal(t, "Electric cars.", tech[1].Desc)

	require.Len(t, out["Entertainment"], 1)
}

func TestListIdeas_Empty(t *testing.T) {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&domain.StockIdea{}))
	s := &Service{DB: db}

	out, err := s.ListIdeas(context.Background())
	require.NoError(t, err)
	assert.Empty(t, out)
}
