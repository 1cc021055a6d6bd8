package domain

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// User is a family member. Usernames are unique within a family.
// IsAdmin scopes administrative bulk operations to the user's own family.
type User struct {
	UserID       uuid.UUID `gorm:"column:user_id;type:uuid;primaryKey" json:"user_id"`
	FamilyID     uuid.UUID `gorm:"column:family_id;type:uuid;not null;uniqueIndex:idx_family_username" json:"family_id"`
	Username     string    `gorm:"column:username;not null;uniqueIndex:idx_family_username" json:"username"`
	PasswordHash string    `gorm:"column:password_hash;not null" json:"-"`
	IsAdmin      bool      `gorm:"column:is_admin;not null;default:false" json:"is_admin"`
	CreatedAt    time.Time `json:"createdAt"`
	UpdatedAt    time.Time `json:"updatedAt"`
}

func (User) TableName() string {
	return "users"
}

func (u *User) BeforeCreate(tx *gorm.DB) error {
	if u.UserID == uuid.Nil {
		u.UserID = uuid.New()
	}
	return nil
}
