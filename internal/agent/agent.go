package agent

import (
	"context"
	"errors"
	"time"

	"famfolio-backend/internal/agent/client"
	"famfolio-backend/internal/agent/signal"

	"github.com/rs/zerolog/log"
	"github.com/shopspring/decimal"
)

// API is the slice of the game client the agent uses. Tests fake it.
type API interface {
	Login(ctx context.Context) error
	Research(ctx context.Context) (map[string][]client.Idea, error)
	Balance(ctx context.Context) (decimal.Decimal, error)
	Quote(ctx context.Context, ticker string) (decimal.Decimal, error)
	Portfolio(ctx context.Context) ([]client.Position, error)
	Buy(ctx context.Context, ticker string, shares int64) error
	Sell(ctx context.Context, ticker string, shares int64) error
}

// Config sets the agent's thresholds and pacing.
type Config struct {
	HypeThreshold  float64
	PanicThreshold float64
	MaxSpendPct    float64
	SymbolCooldown time.Duration
	CycleCooldown  time.Duration
}

// Action is the decision the agent takes for one scored ticker.
type Action int

const (
	ActionSkip Action = iota
	ActionBuy
	ActionSell
)

// Decision is the outcome of sizing a scored ticker against the account.
type Decision struct {
	Action Action
	Ticker string
	Shares int64
}

// defaultUniverse backs the agent when the research catalogue is unreachable
// or empty.
var defaultUniverse = []string{"AAPL", "TSLA", "DIS", "RBLX", "NKE"}

// signalFloor is the minimum absolute sentiment worth acting on.
const signalFloor = 0.05

// Agent reads news sentiment for every ticker in the research catalogue and
// trades through the public API like any other player.
type Agent struct {
	API     API
	Signals signal.Source
	Cfg     Config

	// sleep is swapped out in tests.
	sleep func(ctx context.Context, d time.Duration) error
}

func New(api API, signals signal.Source, cfg Config) *Agent {
	return &Agent{API: api, Signals: signals, Cfg: cfg, sleep: sleepCtx}
}

func sleepCtx(ctx context.Context, d time.Duration) error {
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}

// Universe asks the research catalogue which tickers are in play, falling
// back to a fixed list when the catalogue is unreachable or empty.
func (a *Agent) Universe(ctx context.Context) []string {
	grouped, err := a.API.Research(ctx)
	if err != nil {
		log.Warn().Err(err).Msg("research catalogue unreachable, using default universe")
		return defaultUniverse
	}
	var tickers []string
	for _, ideas := range grouped {
		for _, idea := range ideas {
			tickers = append(tickers, idea.Ticker)
		}
	}
	if len(tickers) == 0 {
		log.Warn().Msg("research catalogue empty, using default universe")
		return defaultUniverse
	}
	return tickers
}

// Decide sizes a trade for a scored ticker. Buys spend at most MaxSpendPct of
// current cash. Panic sells dump the whole position.
func (a *Agent) Decide(ctx context.Context, ticker string, sentiment float64) (Decision, error) {
	skip := Decision{Action: ActionSkip, Ticker: ticker}
	if sentiment > a.Cfg.HypeThreshold {
		cash, err := a.API.Balance(ctx)
		if err != nil {
			return skip, err
		}
		price, err := a.API.Quote(ctx, ticker)
		if err != nil {
			return skip, err
		}
		if !price.IsPositive() {
			return skip, nil
		}
		budget := cash.Mul(decimal.NewFromFloat(a.Cfg.MaxSpendPct))
		shares := budget.Div(price).IntPart()
		if shares <= 0 {
			log.Info().Str("ticker", ticker).Str("price", price.String()).Msg("positive sentiment but budget too small")
			return skip, nil
		}
		return Decision{Action: ActionBuy, Ticker: ticker, Shares: shares}, nil
	}
	if sentiment < a.Cfg.PanicThreshold {
		positions, err := a.API.Portfolio(ctx)
		if err != nil {
			return skip, err
		}
		for _, p := range positions {
			if p.Ticker == ticker && p.Shares > 0 {
				return Decision{Action: ActionSell, Ticker: ticker, Shares: p.Shares}, nil
			}
		}
		return skip, nil
	}
	return skip, nil
}

func (a *Agent) execute(ctx context.Context, d Decision, sentiment float64) error {
	switch d.Action {
	case ActionBuy:
		log.Info().Str("ticker", d.Ticker).Int64("shares", d.Shares).Float64("sentiment", sentiment).Msg("buying")
		return a.API.Buy(ctx, d.Ticker, d.Shares)
	case ActionSell:
		log.Info().Str("ticker", d.Ticker).Int64("shares", d.Shares).Float64("sentiment", sentiment).Msg("panic selling")
		return a.API.Sell(ctx, d.Ticker, d.Shares)
	}
	return nil
}

// Cycle scans the whole universe once. A rate-limited news provider aborts
// the remainder of the scan; individual trade failures are logged and the
// scan continues.
func (a *Agent) Cycle(ctx context.Context, universe []string) error {
	for i, ticker := range universe {
		sentiment, err := a.Signals.Score(ctx, ticker)
		if err != nil {
			if errors.Is(err, signal.ErrRateLimited) {
				log.Warn().Str("ticker", ticker).Msg("news quota spent, ending cycle early")
				return err
			}
			log.Warn().Err(err).Str("ticker", ticker).Msg("sentiment fetch failed")
			sentiment = 0
		}

		if sentiment > signalFloor || sentiment < -signalFloor {
			decision, err := a.Decide(ctx, ticker, sentiment)
			if err != nil {
				if errors.Is(err, client.ErrUnauthorized) {
					return err
				}
				log.Warn().Err(err).Str("ticker", ticker).Msg("decision failed")
			} else if err := a.execute(ctx, decision, sentiment); err != nil {
				if errors.Is(err, client.ErrUnauthorized) {
					return err
				}
				log.Warn().Err(err).Str("ticker", ticker).Msg("trade rejected")
			}
		}

		// The free news tier allows about a hundred requests a day.
		if i < len(universe)-1 {
			if err := a.sleep(ctx, a.Cfg.SymbolCooldown); err != nil {
				return err
			}
		}
	}
	return nil
}

// Run loops cycles until the context is cancelled. Lost sessions are
// re-established with a login; repeated failures back off.
func (a *Agent) Run(ctx context.Context) error {
	if err := a.API.Login(ctx); err != nil {
		return err
	}
	log.Info().Msg("agent logged in")

	universe := a.Universe(ctx)
	log.Info().Int("tickers", len(universe)).Msg("agent active")

	backoff := time.Second
	for {
		err := a.Cycle(ctx, universe)
		switch {
		case err == nil:
			backoff = time.Second
		case errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded):
			return err
		case errors.Is(err, client.ErrUnauthorized):
			log.Warn().Msg("session expired, logging in again")
			if err := a.sleep(ctx, backoff); err != nil {
				return err
			}
			if backoff < time.Minute {
				backoff *= 2
			}
			if err := a.API.Login(ctx); err != nil {
				log.Warn().Err(err).Msg("relogin failed")
			}
			continue
		case errors.Is(err, signal.ErrRateLimited):
			// fall through to the cycle rest, the quota may recover
		default:
			log.Warn().Err(err).Msg("cycle failed")
		}

		log.Info().Msg("cycle complete, resting")
		if err := a.sleep(ctx, a.Cfg.CycleCooldown); err != nil {
			return err
		}
	}
}
