package market

import (
	"errors"
	"strings"

	"famfolio-backend/internal/infrastructure/quotes"
	"famfolio-backend/internal/pkg/response"
	"famfolio-backend/internal/pkg/validation"

	"github.com/gofiber/fiber/v2"
)

type Handlers struct {
	Quotes quotes.Provider
}

// Quote GET /api/v1/market/quote?ticker=X — last traded price for a ticker.
func (h *Handlers) Quote(c *fiber.Ctx) error {
	ticker := strings.ToUpper(strings.TrimSpace(c.Query("ticker")))
	if ticker == "" {
		return response.Error(c, "ticker is required", fiber.StatusBadRequest, nil)
	}
	if !validation.IsValidTicker(ticker) {
		return response.Error(c, quotes.ErrSymbolNotFound.Error(), fiber.StatusNotFound, nil)
	}

	price, err := h.Quotes.LastPrice(c.Context(), ticker)
	if err != nil {
		if errors.Is(err, quotes.ErrSymbolNotFound) {
			return response.Error(c, err.Error(), fiber.StatusNotFound, nil)
		}
		return response.Error(c, quotes.ErrUnavailable.Error(), fiber.StatusBadGateway, nil)
	}
	return response.Success(c, "Quote fetched", fiber.Map{"ticker": ticker, "price": price}, nil)
}
