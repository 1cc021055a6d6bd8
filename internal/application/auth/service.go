package auth

import (
	"famfolio-backend/internal/domain"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// LoginInput for login request body.
type LoginInput struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// SessionUserShape is the object stored in session and returned by /me.
// The core trusts this identity; it is attached by the session middleware
// and never re-derived downstream.
type SessionUserShape struct {
	UserID   string `json:"user_id"`
	Username string `json:"username"`
	IsAdmin  bool   `json:"is_admin"`
	FamilyID string `json:"family_id"`
}

// UserFinder abstracts user lookup by username+password (GORM in production,
// test doubles in handler tests).
type UserFinder interface {
	FindByUsernameAndPassword(username, password string) (*domain.User, error)
}

// GormUserFinder implements UserFinder using GORM and bcrypt.
type GormUserFinder struct{ DB *gorm.DB }

func (g *GormUserFinder) FindByUsernameAndPassword(username, password string) (*domain.User, error) {
	return LoginUser(g.DB, LoginInput{Username: username, Password: password})
}

// LoginUser finds a user by username and verifies the password.
func LoginUser(db *gorm.DB, input LoginInput) (*domain.User, error) {
	if input.Username == "" || input.Password == "" {
		return nil, ErrCredentialsRequired
	}
	var u domain.User
	if err := db.Where("username = ?", input.Username).First(&u).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, ErrInvalidCredentials
		}
		return nil, err
	}
	if u.PasswordHash == "" {
		return nil, ErrInvalidCredentials
	}
	if err := bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(input.Password)); err != nil {
		return nil, ErrInvalidCredentials
	}
	return &u, nil
}

// VerifyUser validates the session user and returns the shape for /me.
func VerifyUser(sessionUser interface{}) (*SessionUserShape, error) {
	if sessionUser == nil {
		return nil, ErrNotAuthenticated
	}
	m, ok := sessionUser.(map[string]interface{})
	if !ok {
		return nil, ErrNotAuthenticated
	}
	userID, _ := m["user_id"].(string)
	if userID == "" {
		return nil, ErrNotAuthenticated
	}
	isAdmin, _ := m["is_admin"].(bool)
	username, _ := m["username"].(string)
	familyID, _ := m["family_id"].(string)
	return &SessionUserShape{
		UserID:   userID,
		Username: username,
		IsAdmin:  isAdmin,
		FamilyID: familyID,
	}, nil
}
