package main

import (
	"context"
	"errors"
	"os/signal"
	"syscall"

	"famfolio-backend/internal/agent"
	"famfolio-backend/internal/agent/client"
	sentiment "famfolio-backend/internal/agent/signal"
	"famfolio-backend/internal/config"

	"github.com/rs/zerolog/log"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("config load")
	}
	if cfg.AgentUsername == "" || cfg.AgentPassword == "" {
		log.Fatal().Msg("AGENT_USERNAME and AGENT_PASSWORD are required")
	}
	if cfg.NewsAPIKey == "" {
		log.Fatal().Msg("NEWS_API_KEY is required")
	}

	api, err := client.New(cfg.APIBaseURL, cfg.AgentUsername, cfg.AgentPassword)
	if err != nil {
		log.Fatal().Err(err).Msg("client create")
	}
	news := sentiment.NewNewsSource(cfg.NewsAPIURL, cfg.NewsAPIKey)

	a := agent.New(api, news, agent.Config{
		HypeThreshold:  cfg.HypeThreshold,
		PanicThreshold: cfg.PanicThreshold,
		MaxSpendPct:    cfg.MaxSpendPct,
		SymbolCooldown: cfg.SymbolCooldown,
		CycleCooldown:  cfg.CycleCooldown,
	})

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	log.Info().Str("api", cfg.APIBaseURL).Str("user", cfg.AgentUsername).Msg("agent starting")
	if err := a.Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
		log.Fatal().Err(err).Msg("agent stopped")
	}
	log.Info().Msg("agent stopped")
}
