package account

import (
	"famfolio-backend/internal/application/ledger"
	"famfolio-backend/internal/middleware"
	"famfolio-backend/internal/pkg/response"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

type Handlers struct {
	Ledger *ledger.Service
}

// Balance GET /api/v1/account/balance — the user's cash balance.
func (h *Handlers) Balance(c *fiber.Ctx) error {
	userID, ok := actorUserID(c)
	if !ok {
		return response.Unauthorized(c, "Unauthorized")
	}

	acct, err := h.Ledger.Account(c.Context(), userID)
	if err != nil {
		if err == ledger.ErrAccountNotFound {
			return response.Error(c, err.Error(), fiber.StatusNotFound, nil)
		}
		return response.Error(c, "Internal Server Error", fiber.StatusInternalServerError, nil)
	}
	return response.Success(c, "Balance fetched", fiber.Map{"balance": acct.Balance}, nil)
}

type historyRow struct {
	Type   string      `json:"type"`
	Ticker string      `json:"ticker"`
	Shares int64       `json:"shares"`
	Price  interface{} `json:"price"`
	Date   interface{} `json:"date"`
}

// History GET /api/v1/history — trade records, newest first.
func (h *Handlers) History(c *fiber.Ctx) error {
	userID, ok := actorUserID(c)
	if !ok {
		return response.Unauthorized(c, "Unauthorized")
	}

	txs, err := h.Ledger.History(c.Context(), userID)
	if err != nil {
		return response.Error(c, "Internal Server Error", fiber.StatusInternalServerError, nil)
	}

	out := make([]historyRow, len(txs))
	for i, tx := range txs {
		out[i] = historyRow{
			Type:   tx.Type,
			Ticker: tx.Ticker,
			Shares: tx.Shares,
			Price:  tx.Price,
			Date:   tx.CreatedAt,
		}
	}
	return response.Success(c, "History fetched", out, nil)
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
