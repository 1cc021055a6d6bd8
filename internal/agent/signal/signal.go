package signal

import (
	"context"
	"errors"
)

// ErrRateLimited signals that the news provider refused the request because
// the daily quota is spent. Callers should stop scanning for the cycle rather
// than burn the remaining quota on errors.
var ErrRateLimited = errors.New("news provider rate limited")

// Source produces a sentiment score for a ticker in [-1, 1]. Zero means no
// signal (no news, or neutral coverage).
type Source interface {
	Score(ctx context.Context, ticker string) (float64, error)
}
