package router

import (
	"github.com/redis/go-redis/v9"
	"github.com/shopspring/decimal"

	authsvc "famfolio-backend/internal/application/auth"
	ledgersvc "famfolio-backend/internal/application/ledger"
	portfoliosvc "famfolio-backend/internal/application/portfolio"
	researchsvc "famfolio-backend/internal/application/research"
	tradesvc "famfolio-backend/internal/application/trading"
	usersvc "famfolio-backend/internal/application/user"
	"famfolio-backend/internal/config"
	"famfolio-backend/internal/infrastructure/database"
	"famfolio-backend/internal/infrastructure/quotes"
	accounthandler "famfolio-backend/internal/interfaces/handlers/account"
	adminhandler "famfolio-backend/internal/interfaces/handlers/admin"
	authhandler "famfolio-backend/internal/interfaces/handlers/auth"
	healthhandler "famfolio-backend/internal/interfaces/handlers/health"
	markethandler "famfolio-backend/internal/interfaces/handlers/market"
	portfoliohandler "famfolio-backend/internal/interfaces/handlers/portfolio"
	researchhandler "famfolio-backend/internal/interfaces/handlers/research"
	tradinghandler "famfolio-backend/internal/interfaces/handlers/trading"
	"famfolio-backend/internal/middleware"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

type gormDBPinger struct {
	db *gorm.DB
}

func (g *gormDBPinger) Ping() error {
	if g == nil || g.db == nil {
		return nil
	}
	sqlDB, err := g.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Ping()
}

// CreateApp builds the Fiber app with all routes and middleware wired,
// opening the database and Redis connections from config.
func CreateApp(cfg *config.Config) (*fiber.App, *gorm.DB, *redis.Client, error) {
	db, err := database.Open(cfg.DatabaseURL)
	if err != nil {
		return nil, nil, nil, err
	}
	if err := database.AutoMigrate(db); err != nil {
		return nil, nil, nil, err
	}

	sessionHandler, rdb, err := middleware.Session(middleware.SessionConfig{
		Secret:       cfg.SessionSecret,
		RedisURL:     cfg.RedisURL,
		IsProduction: cfg.Env == "production",
	})
	if err != nil {
		return nil, nil, nil, err
	}

	var provider quotes.Provider = &quotes.HTTPClient{
		BaseURL: cfg.QuoteAPIURL,
		APIKey:  cfg.QuoteAPIKey,
	}
	provider = quotes.NewCache(provider, rdb, cfg.QuoteCacheTTL)

	app := NewApp(cfg, db, rdb, sessionHandler, provider)
	return app, db, rdb, nil
}

// NewApp wires the app from already-constructed dependencies. Tests inject
// an in-memory database, miniredis and a fake quote provider here.
func NewApp(cfg *config.Config, db *gorm.DB, rdb *redis.Client, sessionHandler fiber.Handler, provider quotes.Provider) *fiber.App {
	app := fiber.New(fiber.Config{
		DisableStartupMessage:   true,
		ErrorHandler:            middleware.ErrorHandler,
		EnableTrustedProxyCheck: true,
	})

	app.Use(middleware.CORS(middleware.CORSConfig{AllowedSuffix: cfg.FrontendSuffix}))
	app.Use(sessionHandler)
	app.Use(middleware.Tracing())
	app.Use(middleware.RouteLogger())

	hh := &healthhandler.Handlers{DB: &gormDBPinger{db: db}, Rdb: rdb}
	app.Get("/health/json", hh.JSON)

	sessionCfg := middleware.SessionConfig{
		Secret:       cfg.SessionSecret,
		RedisURL:     cfg.RedisURL,
		IsProduction: cfg.Env == "production",
	}

	startingBalance, err := decimal.NewFromString(cfg.StartingBalance)
	if err != nil {
		startingBalance = decimal.NewFromInt(100000)
	}

	ledgerSvc := ledgersvc.NewService(db)
	userSvc := &usersvc.Service{DB: db}
	tradeSvc := &tradesvc.Service{Ledger: ledgerSvc, Quotes: provider}
	portfolioSvc := &portfoliosvc.Service{DB: db, Ledger: ledgerSvc, Quotes: provider}
	researchSvc := &researchsvc.Service{DB: db}

	ah := &authhandler.Handlers{
		UserFinder:      &authsvc.GormUserFinder{DB: db},
		Users:           userSvc,
		Rdb:             rdb,
		Config:          sessionCfg,
		StartingBalance: startingBalance,
	}
	authGroup := app.Group("/api/v1/auth")
	authGroup.Post("/login", ah.Login)
	authGroup.Get("/me", ah.Me)
	authGroup.Delete("/logout", ah.Logout)
	authGroup.Post("/register-family", ah.RegisterFamily)

	acch := &accounthandler.Handlers{Ledger: ledgerSvc}
	accg := app.Group("/api/v1/account", middleware.RequireAuth())
	accg.Get("/balance", acch.Balance)
	app.Get("/api/v1/history", middleware.RequireAuth(), acch.History)

	ph := &portfoliohandler.Handlers{Service: portfolioSvc}
	app.Get("/api/v1/portfolio", middleware.RequireAuth(), ph.Portfolio)
	app.Get("/api/v1/leaderboard", middleware.RequireAuth(), ph.Leaderboard)

	mh := &markethandler.Handlers{Quotes: provider}
	app.Get("/api/v1/market/quote", middleware.RequireAuth(), mh.Quote)

	th := &tradinghandler.Handlers{Service: tradeSvc}
	tg := app.Group("/api/v1/trading", middleware.RequireAuth())
	tg.Post("/buy", th.Buy)
	tg.Post("/sell", th.Sell)

	rh := &researchhandler.Handlers{Service: researchSvc}
	app.Get("/api/v1/research", middleware.RequireAuth(), rh.Research)

	adh := &adminhandler.Handlers{Service: userSvc}
	ag := app.Group("/api/v1/admin", middleware.RequireAuth(), middleware.RequireAdmin())
	ag.Post("/create-user", adh.CreateUser)
	ag.Post("/reset", adh.Reset)

	return app
}
