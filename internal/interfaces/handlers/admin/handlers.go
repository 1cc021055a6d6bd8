package admin

import (
	"fmt"

	usersvc "famfolio-backend/internal/application/user"
	"famfolio-backend/internal/middleware"
	"famfolio-backend/internal/pkg/response"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Handlers for family administration. Routes sit behind RequireAdmin and only
// ever touch the calling admin's own family.
type Handlers struct {
	Service *usersvc.Service
}

// CreateUserRequest body.
type CreateUserRequest struct {
	Username string          `json:"username"`
	Password string          `json:"password"`
	Cash     decimal.Decimal `json:"cash"`
}

// CreateUser POST /api/v1/admin/create-user — add a member to the caller's family.
func (h *Handlers) CreateUser(c *fiber.Ctx) error {
	familyID, ok := actorFamilyID(c)
	if !ok {
		return response.Unauthorized(c, "Unauthorized")
	}
	var req CreateUserRequest
	if err := c.BodyParser(&req); err != nil {
		return response.Error(c, usersvc.ErrMissingFields.Error(), fiber.StatusBadRequest, nil)
	}
	if req.Cash.IsZero() {
		req.Cash = decimal.NewFromFloat(1000.00)
	}

	member, err := h.Service.CreateFamilyMember(c.Context(), familyID, req.Username, req.Password, req.Cash)
	if err != nil {
		switch err {
		case usersvc.ErrMissingFields, usersvc.ErrInvalidUsername, usersvc.ErrInvalidPassword, usersvc.ErrUsernameTaken:
			return response.Error(c, err.Error(), fiber.StatusBadRequest, nil)
		default:
			return response.Error(c, "Internal Server Error", fiber.StatusInternalServerError, nil)
		}
	}
	return response.SuccessCreated(c, fmt.Sprintf("Added %s to your family", member.Username), fiber.Map{
		"user_id":  member.UserID.String(),
		"username": member.Username,
	}, nil)
}

// ResetRequest body.
type ResetRequest struct {
	ResetAmount decimal.Decimal `json:"reset_amount"`
}

// Reset POST /api/v1/admin/reset — restart the game for the caller's family.
func (h *Handlers) Reset(c *fiber.Ctx) error {
	familyID, ok := actorFamilyID(c)
	if !ok {
		return response.Unauthorized(c, "Unauthorized")
	}
	var req ResetRequest
	if err := c.BodyParser(&req); err != nil {
		return response.Error(c, "reset_amount is required", fiber.StatusBadRequest, nil)
	}
	if req.ResetAmount.IsZero() {
		req.ResetAmount = decimal.NewFromFloat(10000.00)
	}
	if req.ResetAmount.IsNegative() {
		return response.Error(c, "reset_amount must be positive", fiber.StatusBadRequest, nil)
	}

	count, err := h.Service.ResetFamily(c.Context(), familyID, req.ResetAmount)
	if err != nil {
		if err == usersvc.ErrNoFamilyUsers {
			return response.Error(c, err.Error(), fiber.StatusNotFound, nil)
		}
		return response.Error(c, "Internal Server Error", fiber.StatusInternalServerError, nil)
	}
	return response.Success(c, fmt.Sprintf("Game reset! Everyone starts with %s", req.ResetAmount.StringFixed(2)), fiber.Map{
		"users_reset": count,
	}, nil)
}

func actorFamilyID(c *fiber.Ctx) (uuid.UUID, bool) {
	m, ok := middleware.GetUser(c).(map[string]interface{})
	if !ok {
		return uuid.Nil, false
	}
	s, _ := m["family_id"].(string)
	id, err := uuid.Parse(s)
	if err != nil {
		return uuid.Nil, false
	}
	return id, true
}
