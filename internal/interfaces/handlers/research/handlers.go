package research

import (
	researchsvc "famfolio-backend/internal/application/research"
	"famfolio-backend/internal/pkg/response"

	"github.com/gofiber/fiber/v2"
)

type Handlers struct {
	Service *researchsvc.Service
}

// Research GET /api/v1/research — idea catalogue grouped by category.
func (h *Handlers) Research(c *fiber.Ctx) error {
	ideas, err := h.Service.ListIdeas(c.Context())
	if err != nil {
		return response.Error(c, "Internal Server Error", fiber.StatusInternalServerError, nil)
	}
	return response.Success(c, "Research fetched", ideas, nil)
}
