package domain

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Family is the isolation scope for leaderboard and admin operations.
// Every user belongs to exactly one family.
type Family struct {
	FamilyID  uuid.UUID `gorm:"column:family_id;type:uuid;primaryKey" json:"family_id"`
	Name      string    `gorm:"column:name;not null" json:"name"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

func (Family) TableName() string {
	return "families"
}

// BeforeCreate sets the UUID for DBs without gen_random_uuid.
func (f *Family) BeforeCreate(tx *gorm.DB) error {
	if f.FamilyID == uuid.Nil {
		f.FamilyID = uuid.New()
	}
	return nil
}
