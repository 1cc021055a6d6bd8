package domain

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// Holding is a user's current position in one ticker. At most one row per
// (user, ticker); a holding sold down to zero shares is deleted, not kept.
// AvgPrice is the weighted-average cost basis of the open lots and is only
// recomputed on additional buys, never by market moves.
type Holding struct {
	HoldingID uuid.UUID       `gorm:"column:holding_id;type:uuid;primaryKey" json:"holding_id"`
	UserID    uuid.UUID       `gorm:"column:user_id;type:uuid;not null;uniqueIndex:idx_user_ticker" json:"user_id"`
	Ticker    string          `gorm:"column:ticker;type:varchar(12);not null;uniqueIndex:idx_user_ticker" json:"ticker"`
	Shares    int64           `gorm:"column:shares;not null" json:"shares"`
	AvgPrice  decimal.Decimal `gorm:"column:avg_price;type:decimal(18,2);not null" json:"avg_price"`
	CreatedAt time.Time       `json:"createdAt"`
	UpdatedAt time.Time       `json:"updatedAt"`
}

func (Holding) TableName() string {
	return "holdings"
}

func (h *Holding) BeforeCreate(tx *gorm.DB) error {
	if h.HoldingID == uuid.Nil {
		h.HoldingID = uuid.New()
	}
	return nil
}
