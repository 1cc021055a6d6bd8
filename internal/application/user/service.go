package user

import (
	"context"
	"encoding/json"
	"errors"

	"famfolio-backend/internal/domain"
	"famfolio-backend/internal/pkg/validation"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

var (
	ErrMissingFields   = errors.New("Missing fields")
	ErrInvalidUsername = errors.New("Invalid username")
	ErrInvalidPassword = errors.New("Password too short")
	ErrUsernameTaken   = errors.New("Username already taken")
	ErrNoFamilyUsers   = errors.New("No users found")
)

// Service handles user and family provisioning plus the admin game reset.
type Service struct {
	DB *gorm.DB
}

// RegisterFamily creates a family with its admin user and a funded account,
// all in one transaction.
func (s *Service) RegisterFamily(ctx context.Context, familyName, username, password string, startingBalance decimal.Decimal) (*domain.User, error) {
	if familyName == "" || username == "" || password == "" {
		return nil, ErrMissingFields
	}
	if !validation.IsValidUsername(username) {
		return nil, ErrInvalidUsername
	}
	if !validation.IsValidPassword(password) {
		return nil, ErrInvalidPassword
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	var admin domain.User
	err = s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		family := domain.Family{Name: familyName}
		if err := tx.Create(&family).Error; err != nil {
			return err
		}
		admin = domain.User{
			FamilyID:     family.FamilyID,
			Username:     username,
			PasswordHash: string(hash),
			IsAdmin:      true,
		}
		if err := tx.Create(&admin).Error; err != nil {
			return err
		}
		return tx.Create(&domain.Account{
			UserID:  admin.UserID,
			Balance: startingBalance.Round(2),
		}).Error
	})
	if err != nil {
		return nil, err
	}
	return &admin, nil
}

// CreateFamilyMember adds a non-admin user to the given family with a funded
// account. Admin handlers call this with the caller's own family only.
func (s *Service) CreateFamilyMember(ctx context.Context, familyID uuid.UUID, username, password string, cash decimal.Decimal) (*domain.User, error) {
	if username == "" || password == "" {
		return nil, ErrMissingFields
	}
	if !validation.IsValidUsername(username) {
		return nil, ErrInvalidUsername
	}
	if !validation.IsValidPassword(password) {
		return nil, ErrInvalidPassword
	}
	if cash.IsNegative() {
		cash = decimal.Zero
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	var member domain.User
	err = s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var existing domain.User
		err := tx.Where("family_id = ? AND username = ?", familyID, username).First(&existing).Error
		if err == nil {
			return ErrUsernameTaken
		}
		if err != gorm.ErrRecordNotFound {
			return err
		}
		member = domain.User{
			FamilyID:     familyID,
			Username:     username,
			PasswordHash: string(hash),
			IsAdmin:      false,
		}
		if err := tx.Create(&member).Error; err != nil {
			return err
		}
		return tx.Create(&domain.Account{
			UserID:  member.UserID,
			Balance: cash.Round(2),
		}).Error
	})
	if err != nil {
		return nil, err
	}
	return &member, nil
}

// ResetFamily restarts the game for one family: every member's balance is set
// to resetAmount, holdings and transactions are wiped. The affected user set
// is resolved server-side and passed as bind parameters; nothing caller-
// supplied is ever spliced into a query.
func (s *Service) ResetFamily(ctx context.Context, familyID uuid.UUID, resetAmount decimal.Decimal) (int, error) {
	resetAmount = resetAmount.Round(2)

	var affected int
	err := s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var users []domain.User
		if err := tx.Where("family_id = ?", familyID).Find(&users).Error; err != nil {
			return err
		}
		if len(users) == 0 {
			return ErrNoFamilyUsers
		}
		ids := make([]uuid.UUID, len(users))
		for i, u := range users {
			ids[i] = u.UserID
		}

		if err := tx.Model(&domain.Account{}).Where("user_id IN ?", ids).
			Update("balance", resetAmount).Error; err != nil {
			return err
		}
		if err := tx.Where("user_id IN ?", ids).Delete(&domain.Holding{}).Error; err != nil {
			return err
		}
		if err := tx.Where("user_id IN ?", ids).Delete(&domain.Transaction{}).Error; err != nil {
			return err
		}

		eventData, _ := json.Marshal(map[string]interface{}{
			"reset_amount": resetAmount.String(),
		})
		for _, id := range ids {
			if err := tx.Create(&domain.TradeEvent{
				UserID:    id,
				EventType: domain.TradeEventReset,
				EventData: datatypes.JSON(eventData),
			}).Error; err != nil {
				return err
			}
		}
		affected = len(ids)
		return nil
	})
	if err != nil {
		return 0, err
	}
	return affected, nil
}
