package trading

import (
	"errors"

	"famfolio-backend/internal/application/ledger"
	tradesvc "famfolio-backend/internal/application/trading"
	"famfolio-backend/internal/infrastructure/quotes"
	"famfolio-backend/internal/middleware"
	"famfolio-backend/internal/pkg/response"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

type Handlers struct {
	Service *tradesvc.Service
}

// TradeRequest body for buy and sell.
type TradeRequest struct {
	Ticker string `json:"ticker"`
	Shares int64  `json:"shares"`
}

// Buy POST /api/v1/trading/buy
func (h *Handlers) Buy(c *fiber.Ctx) error {
	userID, ok := actorUserID(c)
	if !ok {
		return response.Unauthorized(c, "Unauthorized")
	}
	var req TradeRequest
	if err := c.BodyParser(&req); err != nil {
		return response.Error(c, "ticker and shares are required", fiber.StatusBadRequest, nil)
	}
	if req.Ticker == "" {
		return response.Error(c, "ticker and shares are required", fiber.StatusBadRequest, nil)
	}

	conf, err := h.Service.Buy(c.Context(), userID, req.Ticker, req.Shares)
	if err != nil {
		return tradeError(c, err)
	}
	return response.Success(c, conf.Message, conf, nil)
}

// Sell POST /api/v1/trading/sell
func (h *Handlers) Sell(c *fiber.Ctx) error {
	userID, ok := actorUserID(c)
	if !ok {
		return response.Unauthorized(c, "Unauthorized")
	}
	var req TradeRequest
	if err := c.BodyParser(&req); err != nil {
		return response.Error(c, "ticker and shares are required", fiber.StatusBadRequest, nil)
	}
	if req.Ticker == "" {
		return response.Error(c, "ticker and shares are required", fiber.StatusBadRequest, nil)
	}

	conf, err := h.Service.Sell(c.Context(), userID, req.Ticker, req.Shares)
	if err != nil {
		return tradeError(c, err)
	}
	return response.Success(c, conf.Message, conf, nil)
}

func tradeError(c *fiber.Ctx, err error) error {
	switch {
	case errors.Is(err, tradesvc.ErrInvalidQuantity):
		return response.Error(c, err.Error(), fiber.StatusBadRequest, nil)
	case errors.Is(err, quotes.ErrSymbolNotFound):
		return response.Error(c, err.Error(), fiber.StatusNotFound, nil)
	case errors.Is(err, ledger.ErrInsufficientFunds), errors.Is(err, ledger.ErrInsufficientShares):
		return response.Error(c, err.Error(), fiber.StatusBadRequest, nil)
	case errors.Is(err, ledger.ErrAccountNotFound):
		return response.Error(c, err.Error(), fiber.StatusNotFound, nil)
	case errors.Is(err, tradesvc.ErrQuoteUnavailable):
		return response.Error(c, err.Error(), fiber.StatusBadGateway, nil)
	default:
		return response.Error(c, "Internal Server Error", fiber.StatusInternalServerError, nil)
	}
}

func actorUserID(c *fiber.Ctx) (uuid.UUID, bool) {
	m, ok := middleware.GetUser(c).(map[string]interface{})
	if !ok {
		return uuid.Nil, false
	}
	s, _ := m["user_id"].(string)
	id, err := uuid.Parse(s)
	if err != nil {
		return uuid.Nil, false
	}
	return id, true
}
