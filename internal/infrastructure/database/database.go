package database

import (
	"strings"

	"famfolio-backend/internal/domain"

	"github.com/glebarez/sqlite"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

// Open opens a GORM DB for the configured backend. The backend is chosen once
// at process start and injected everywhere; nothing queries the environment
// per call. A "sqlite:" DSN selects the embedded backend, anything else is
// treated as a Postgres URL.
// PreferSimpleProtocol disables prepared statement caching to avoid 42P05
// ("prepared statement already exists") behind connection poolers.
func Open(dsn string) (*gorm.DB, error) {
	if path, ok := strings.CutPrefix(dsn, "sqlite:"); ok {
		return gorm.Open(sqlite.Open(path), &gorm.Config{})
	}
	return gorm.Open(postgres.New(postgres.Config{
		DSN:                  dsn,
		PreferSimpleProtocol: true,
	}), &gorm.Config{})
}

// AutoMigrate runs migrations for the full game schema.
func AutoMigrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&domain.Family{},
		&domain.User{},
		&domain.Account{},
		&domain.Holding{},
		&domain.Transaction{},
		&domain.TradeEvent{},
		&domain.StockIdea{},
	)
}
