package config

import (
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config holds application configuration (env + Viper).
type Config struct {
	Env           string
	Port          string
	SessionSecret string
	DatabaseURL   string
	RedisURL      string

	StartingBalance string // cash granted to a family admin at signup
	FrontendSuffix  string // extra origin suffix allowed by CORS

	QuoteAPIURL   string
	QuoteAPIKey   string
	QuoteCacheTTL time.Duration

	// Agent settings (cmd/agent only).
	APIBaseURL     string
	AgentUsername  string
	AgentPassword  string
	NewsAPIURL     string
	NewsAPIKey     string
	HypeThreshold  float64
	PanicThreshold float64
	MaxSpendPct    float64
	SymbolCooldown time.Duration
	CycleCooldown  time.Duration
}

// Load loads config from env and optional .env file.
func Load() (*Config, error) {
	viper.SetConfigFile(".env")
	_ = viper.ReadInConfig()

	viper.AutomaticEnv()
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	port := viper.GetString("PORT")
	if port == "" {
		port = "8080"
	}
	env := viper.GetString("APP_ENV")
	if env == "" {
		env = "development"
	}

	dbURL := viper.GetString("DATABASE_URL_DEV")
	if env == "production" {
		dbURL = viper.GetString("DATABASE_URL_PROD")
	} else if env == "test" {
		dbURL = viper.GetString("DATABASE_URL_TEST")
	}
	if dbURL == "" {
		dbURL = viper.GetString("DATABASE_URL")
	}

	return &Config{
		Env:           env,
		Port:          port,
		SessionSecret: viper.GetString("SESSION_SECRET"),
		DatabaseURL:   dbURL,
		RedisURL:      viper.GetString("REDIS_URL"),

		StartingBalance: stringOr(viper.GetString("STARTING_BALANCE"), "100000.00"),
		FrontendSuffix:  viper.GetString("FRONTEND_URL_ENDS_WITH"),

		QuoteAPIURL:   viper.GetString("QUOTE_API_URL"),
		QuoteAPIKey:   viper.GetString("QUOTE_API_KEY"),
		QuoteCacheTTL: secondsOr("QUOTE_CACHE_TTL_SECONDS", 30*time.Second),

		APIBaseURL:     stringOr(viper.GetString("API_BASE_URL"), "http://127.0.0.1:8080"),
		AgentUsername:  viper.GetString("AGENT_USERNAME"),
		AgentPassword:  viper.GetString("AGENT_PASSWORD"),
		NewsAPIURL:     stringOr(viper.GetString("NEWS_API_URL"), "https://newsapi.org"),
		NewsAPIKey:     viper.GetString("NEWS_API_KEY"),
		HypeThreshold:  floatOr("HYPE_THRESHOLD", 0.2),
		PanicThreshold: floatOr("PANIC_THRESHOLD", -0.2),
		MaxSpendPct:    floatOr("MAX_SPEND_PCT", 0.10),
		SymbolCooldown: secondsOr("SYMBOL_COOLDOWN_SECONDS", 5*time.Second),
		CycleCooldown:  secondsOr("CYCLE_COOLDOWN_SECONDS", 10*time.Minute),
	}, nil
}

func stringOr(s, fallback string) string {
	if strings.TrimSpace(s) == "" {
		return fallback
	}
	return s
}

func floatOr(key string, fallback float64) float64 {
	if !viper.IsSet(key) {
		return fallback
	}
	return viper.GetFloat64(key)
}

func secondsOr(key string, fallback time.Duration) time.Duration {
	s := viper.GetInt(key)
	if s <= 0 {
		return fallback
	}
	return time.Duration(s) * time.Second
}
