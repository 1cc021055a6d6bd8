package domain

// StockIdea is one entry in the read-only research reference list. The core
// never mutates these; they are seeded and consumed as the tradable universe.
type StockIdea struct {
	IdeaID      int64  `gorm:"column:idea_id;primaryKey;autoIncrement" json:"idea_id"`
	Category    string `gorm:"column:category;not null" json:"category"`
	Ticker      string `gorm:"column:ticker;type:varchar(12);not null" json:"ticker"`
	Name        string `gorm:"column:name;not null" json:"name"`
	Description string `gorm:"column:description" json:"description"`
}

func (StockIdea) TableName() string {
	return "stock_ideas"
}
