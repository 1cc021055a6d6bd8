package auth

import (
	"testing"

	"famfolio-backend/internal/domain"

	"github.com/glebarez/sqlite"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

func setupAuthTest(t *testing.T) *gorm.DB {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&domain.User{}))

	hash, err := bcrypt.GenerateFromPassword([]byte("password123"), bcrypt.MinCost)
	require.NoError(t, err)
	require.NoError(t, db.Create(&domain.User{
		FamilyID:     uuid.New(),
		Username:     "Dad",
		PasswordHash: string(hash),
		IsAdmin:      true,
	}).Error)
	return db
}

func TestLoginUser_Success(t *testing.T) {
	db := setupAuthTest(t)

	u, err := LoginUser(db, LoginInput{Username: "Dad", Password: "password123"})
	require.NoError(t, err)
	assert.Equal(t, "Dad", u.Username)
	assert.True(t, u.IsAdmin)
}

func TestLoginUser_WrongPassword(t *testing.T) {
	db := setupAuthTest(t)

	_, err := LoginUser(db, LoginInput{Username: "Dad", Password: "nope"})
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestLoginUser_UnknownUser(t *testing.T) {
	db := setupAuthTest(t)

	_, err := LoginUser(db, LoginInput{Username: "Nobody", Password: "password123"})
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestLoginUser_MissingCredentials(t *testing.T) {
	db := setupAuthTest(t)

	_, err := LoginUser(db, LoginInput{Username: "Dad"})
	assert.ErrorIs(t, err, ErrCredentialsRequired)
	_, err = LoginUser(db, LoginInput{Password: "password123"})
	assert.ErrorIs(t, err, ErrCredentialsRequired)
}

func TestVerifyUser(t *testing.T) {
	_, err := VerifyUser(nil)
	assert.ErrorIs(t, err, ErrNotAuthenticated)

	_, err = VerifyUser("not a map")
	assert.ErrorIs(t, err, ErrNotAuthenticated)

	_, err = VerifyUser(map[string]interface{}{"username": "Dad"})
	assert.ErrorIs(t, err, ErrNotAuthenticated)

	shape, err := VerifyUser(map[string]interface{}{
		"user_id":   "abc",
		"username":  "Dad",
		"is_admin":  true,
		"family_id": "fam",
	})
	require.NoError(t, err)
	assert.Equal(t, "abc", shape.UserID)
	assert.True(t, shape.IsAdmin)
	assert.Equal(t, "fam", shape.FamilyID)
}
