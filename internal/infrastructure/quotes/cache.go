package quotes

import (
	"context"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"
	"github.com/shopspring/decimal"
)

const cacheKeyPrefix = "quote:"

// Cache is a Provider decorator that keeps recent prices in Redis so that
// portfolio and leaderboard fan-out does not hammer the upstream API.
// Only successful lookups are cached; a Redis fault falls through to the
// inner provider rather than failing the quote.
type Cache struct {
	Inner Provider
	Rdb   *redis.Client
	TTL   time.Duration
}

func NewCache(inner Provider, rdb *redis.Client, ttl time.Duration) *Cache {
	if ttl <= 0 {
		ttl = 30 * time.Second
	}
	return &Cache{Inner: inner, Rdb: rdb, TTL: ttl}
}

func (c *Cache) LastPrice(ctx context.Context, ticker string) (decimal.Decimal, error) {
	key := cacheKeyPrefix + ticker
	if c.Rdb != nil {
		if s, err := c.Rdb.Get(ctx, key).Result(); err == nil {
			if price, perr := decimal.NewFromString(s); perr == nil {
				return price, nil
			}
		}
	}

	price, err := c.Inner.LastPrice(ctx, ticker)
	if err != nil {
		return decimal.Zero, err
	}

	if c.Rdb != nil {
		if err := c.Rdb.Set(ctx, key, price.String(), c.TTL).Err(); err != nil {
			log.Warn().Err(err).Str("ticker", ticker).Msg("quote cache set failed")
		}
	}
	return price, nil
}
