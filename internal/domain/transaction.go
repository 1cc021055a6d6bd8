package domain

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Trade types recorded in the transaction log.
const (
	TradeTypeBuy  = "BUY"
	TradeTypeSell = "SELL"
)

// Transaction is an immutable, append-only trade record. Rows are never
// updated or deleted; the auto-increment tx_id breaks timestamp ties so
// history ordering is deterministic.
type Transaction struct {
	TxID      int64           `gorm:"column:tx_id;primaryKey;autoIncrement" json:"tx_id"`
	UserID    uuid.UUID       `gorm:"column:user_id;type:uuid;not null;index" json:"user_id"`
	Type      string          `gorm:"column:type;type:varchar(4);not null" json:"type"`
	Ticker    string          `gorm:"column:ticker;type:varchar(12);not null" json:"ticker"`
	Shares    int64           `gorm:"column:shares;not null" json:"shares"`
	Price     decimal.Decimal `gorm:"column:price;type:decimal(18,2);not null" json:"price"`
	CreatedAt time.Time       `json:"createdAt"`
}

func (Transaction) TableName() string {
	return "transactions"
}
