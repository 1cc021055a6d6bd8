package domain

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// Trade event types.
const (
	TradeEventExecuted = "EXECUTED"
	TradeEventReset    = "RESET"
)

// TradeEvent is an audit row written in the same transaction as the trade it
// describes. EventData carries execution context (price source, cost or
// proceeds) as JSON.
type TradeEvent struct {
	EventID   uuid.UUID      `gorm:"column:event_id;type:uuid;primaryKey" json:"event_id"`
	TxID      *int64         `gorm:"column:tx_id" json:"tx_id"`
	UserID    uuid.UUID      `gorm:"column:user_id;type:uuid;not null;index" json:"user_id"`
	EventType string         `gorm:"column:event_type;type:varchar(20);not null" json:"event_type"`
	EventData datatypes.JSON `gorm:"column:event_data" json:"event_data"`
	CreatedAt time.Time      `json:"createdAt"`
}

func (TradeEvent) TableName() string {
	return "trade_events"
}

func (e *TradeEvent) BeforeCreate(tx *gorm.DB) error {
	if e.EventID == uuid.Nil {
		e.EventID = uuid.New()
	}
	return nil
}
