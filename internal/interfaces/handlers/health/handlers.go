package health

import (
	"context"
	"time"

	"famfolio-backend/internal/pkg/response"

	"github.com/gofiber/fiber/v2"
	"github.com/redis/go-redis/v9"
)

// DBPinger abstracts the database liveness probe.
type DBPinger interface {
	Ping() error
}

type Handlers struct {
	DB  DBPinger
	Rdb *redis.Client
}

// JSON GET /health/json — liveness of DB and Redis.
func (h *Handlers) JSON(c *fiber.Ctx) error {
	db := "skipped"
	if h.DB != nil {
		db = "ok"
		if err := h.DB.Ping(); err != nil {
			db = "down"
		}
	}
	rds := "skipped"
	if h.Rdb != nil {
		rds = "ok"
		ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
		defer cancel()
		if err := h.Rdb.Ping(ctx).Err(); err != nil {
			rds = "down"
		}
	}
	return response.Success(c, "Health", fiber.Map{
		"database": db,
		"redis":    rds,
		"time":     time.Now().UTC(),
	}, nil)
}
