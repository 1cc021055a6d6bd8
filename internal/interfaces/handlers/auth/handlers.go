package auth

import (
	"context"

	authsvc "famfolio-backend/internal/application/auth"
	usersvc "famfolio-backend/internal/application/user"
	"famfolio-backend/internal/middleware"
	"famfolio-backend/internal/pkg/response"

	"github.com/gofiber/fiber/v2"
	"github.com/redis/go-redis/v9"
	"github.com/shopspring/decimal"
)

const userSessionsPrefix = "user_sessions:"

// Handlers holds dependencies for auth endpoints.
type Handlers struct {
	UserFinder      authsvc.UserFinder
	Users           *usersvc.Service
	Rdb             *redis.Client
	Config          middleware.SessionConfig
	StartingBalance decimal.Decimal
}

// LoginRequest body.
type LoginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// Login POST /api/v1/auth/login — authenticate, create session, set cookie.
func (h *Handlers) Login(c *fiber.Ctx) error {
	if h.UserFinder == nil {
		return response.Error(c, "Internal Server Error", fiber.StatusInternalServerError, nil)
	}
	var req LoginRequest
	if err := c.BodyParser(&req); err != nil {
		return response.Error(c, authsvc.ErrCredentialsRequired.Error(), fiber.StatusBadRequest, nil)
	}
	if req.Username == "" || req.Password == "" {
		return response.Error(c, authsvc.ErrCredentialsRequired.Error(), fiber.StatusBadRequest, nil)
	}

	user, err := h.UserFinder.FindByUsernameAndPassword(req.Username, req.Password)
	if err != nil {
		switch err {
		case authsvc.ErrCredentialsRequired:
			return response.Error(c, err.Error(), fiber.StatusBadRequest, nil)
		case authsvc.ErrInvalidCredentials:
			return response.Error(c, err.Error(), fiber.StatusUnauthorized, nil)
		default:
			return response.Error(c, "Internal Server Error", fiber.StatusInternalServerError, nil)
		}
	}

	sessionID := middleware.RegenerateSessionID(c)
	middleware.SetSessionUser(c, middleware.SessionUser{
		UserID:   user.UserID.String(),
		Username: user.Username,
		IsAdmin:  user.IsAdmin,
		FamilyID: user.FamilyID.String(),
	})

	if h.Rdb != nil {
		if err := h.Rdb.SAdd(context.Background(), userSessionsPrefix+user.UserID.String(), sessionID).Err(); err != nil {
			return response.Error(c, "Internal Server Error", fiber.StatusInternalServerError, nil)
		}
	}

	cookie := middleware.SessionCookieConfig(h.Config)
	cookie.Value = sessionID
	c.Cookie(&cookie)

	return response.Success(c, "Logged in", fiber.Map{
		"user": fiber.Map{
			"user_id":   user.UserID.String(),
			"username":  user.Username,
			"is_admin":  user.IsAdmin,
			"family_id": user.FamilyID.String(),
		},
	}, nil)
}

// Me GET /api/v1/auth/me — return the current session user.
func (h *Handlers) Me(c *fiber.Ctx) error {
	user, err := authsvc.VerifyUser(middleware.GetUser(c))
	if err != nil {
		return response.Error(c, "Not authenticated", fiber.StatusUnauthorized, nil)
	}
	return response.Success(c, "Authenticated", fiber.Map{"user": user}, nil)
}

// Logout DELETE /api/v1/auth/logout — destroy session, clear cookie.
func (h *Handlers) Logout(c *fiber.Ctx) error {
	sessionID := middleware.GetSessionID(c)
	sessionUser := middleware.GetUser(c)

	ctx := context.Background()
	if h.Rdb != nil {
		if m, ok := sessionUser.(map[string]interface{}); ok && sessionID != "" {
			if userID, _ := m["user_id"].(string); userID != "" {
				_ = h.Rdb.SRem(ctx, userSessionsPrefix+userID, sessionID).Err()
			}
		}
		if sessionID != "" {
			_ = h.Rdb.Del(ctx, middleware.SessionRedisPrefix+sessionID).Err()
		}
	}

	middleware.DestroySession(c)

	cookie := middleware.SessionCookieConfig(h.Config)
	cookie.Value = ""
	cookie.MaxAge = -1
	c.Cookie(&cookie)

	return response.Success(c, "Logged out", nil, nil)
}

// RegisterFamilyRequest body for public family signup.
type RegisterFamilyRequest struct {
	FamilyName string `json:"family_name"`
	Username   string `json:"username"`
	Password   string `json:"password"`
}

// RegisterFamily POST /api/v1/auth/register-family — public signup creating
// family + admin user + funded account.
func (h *Handlers) RegisterFamily(c *fiber.Ctx) error {
	if h.Users == nil {
		return response.Error(c, "Internal Server Error", fiber.StatusInternalServerError, nil)
	}
	var req RegisterFamilyRequest
	if err := c.BodyParser(&req); err != nil {
		return response.Error(c, usersvc.ErrMissingFields.Error(), fiber.StatusBadRequest, nil)
	}

	_, err := h.Users.RegisterFamily(c.Context(), req.FamilyName, req.Username, req.Password, h.StartingBalance)
	if err != nil {
		switch err {
		case usersvc.ErrMissingFields, usersvc.ErrInvalidUsername, usersvc.ErrInvalidPassword, usersvc.ErrUsernameTaken:
			return response.Error(c, err.Error(), fiber.StatusBadRequest, nil)
		default:
			return response.Error(c, "Internal Server Error", fiber.StatusInternalServerError, nil)
		}
	}
	return response.SuccessCreated(c, "Family created! Please log in.", nil, nil)
}
