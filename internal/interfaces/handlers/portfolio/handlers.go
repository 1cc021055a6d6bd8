package portfolio

import (
	portfoliosvc "famfolio-backend/internal/application/portfolio"
	"famfolio-backend/internal/middleware"
	"famfolio-backend/internal/pkg/response"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

type Handlers struct {
	Service *portfoliosvc.Service
}

// Portfolio GET /api/v1/portfolio — the user's valued positions.
func (h *Handlers) Portfolio(c *fiber.Ctx) error {
	userID, _, ok := actor(c)
	if !ok {
		return response.Unauthorized(c, "Unauthorized")
	}
	positions, err := h.Service.PortfolioValue(c.Context(), userID)
	if err != nil {
		return response.Error(c, "Internal Server Error", fiber.StatusInternalServerError, nil)
	}
	return response.Success(c, "Portfolio fetched", positions, nil)
}

// Leaderboard GET /api/v1/leaderboard — family ranking by net worth.
func (h *Handlers) Leaderboard(c *fiber.Ctx) error {
	_, familyID, ok := actor(c)
	if !ok {
		return response.Unauthorized(c, "Unauthorized")
	}
	entries, err := h.Service.Leaderboard(c.Context(), familyID)
	if err != nil {
		return response.Error(c, "Internal Server Error", fiber.StatusInternalServerError, nil)
	}
	return response.Success(c, "Leaderboard fetched", entries, nil)
}

func actor(c *fiber.Ctx) (userID, familyID uuid.UUID, ok bool) {
	m, isMap := middleware.GetUser(c).(map[string]interface{})
	if !isMap {
		return uuid.Nil, uuid.Nil, false
	}
	us, _ := m["user_id"].(string)
	fs, _ := m["family_id"].(string)
	uid, err := uuid.Parse(us)
	if err != nil {
		return uuid.Nil, uuid.Nil, false
	}
	fid, err := uuid.Parse(fs)
	if err != nil {
		return uuid.Nil, uuid.Nil, false
	}
	return uid, fid, true
}
