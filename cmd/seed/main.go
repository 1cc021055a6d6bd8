package main

import (
	"context"
	"fmt"

	"famfolio-backend/internal/application/user"
	"famfolio-backend/internal/config"
	"famfolio-backend/internal/domain"
	"famfolio-backend/internal/infrastructure/database"

	"github.com/rs/zerolog/log"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type ideaRow struct {
	Category, Ticker, Name, Description string
}

var ideas = []ideaRow{
	{"Video Games", "RBLX", "Roblox", "The platform where you build and play games."},
	{"Video Games", "NTDOY", "Nintendo", "Mario, Zelda, Pokemon, and the Switch."},
	{"Video Games", "EA", "Electronic Arts", "FIFA, Madden, and The Sims."},
	{"Video Games", "TTWO", "Take-Two", "Grand Theft Auto and NBA 2K."},
	{"Video Games", "MSFT", "Microsoft (Xbox)", "Xbox, Minecraft, and Windows computers."},
	{"Video Games", "SONY", "Sony", "PlayStation consoles and games."},

	{"Social Media", "SNAP", "Snapchat", "Filters, streaks, and messaging."},
	{"Social Media", "META", "Meta", "Instagram, Facebook, and WhatsApp."},
	{"Social Media", "RDDT", "Reddit", "The front page of the internet."},
	{"Social Media", "PINS", "Pinterest", "Ideas, styles, and mood boards."},
	{"Social Media", "SPOT", "Spotify", "Music and podcast streaming."},
	{"Social Media", "UBER", "Uber", "Rides and food delivery."},

	{"Snacks & Food", "MCD", "McDonalds", "Big Macs, Fries, and Happy Meals."},
	{"Snacks & Food", "DPZ", "Domino's", "Pizza delivery technology."},
	{"Snacks & Food", "SBUX", "Starbucks", "Coffee, Cake Pops, and Frappuccinos."},
	{"Snacks & Food", "KO", "Coca-Cola", "Coke, Sprite, and Dasani Water."},
	{"Snacks & Food", "PEP", "PepsiCo", "Pepsi, Gatorade, Doritos, and Cheetos."},
	{"Snacks & Food", "YUM", "Yum! Brands", "Taco Bell, KFC, and Pizza Hut."},
	{"Snacks & Food", "HSY", "Hershey", "Chocolate bars, Reese's, and Kisses."},

	{"Shopping", "AMZN", "Amazon", "Fast delivery, Prime Video, and Alexa."},
	{"Shopping", "WMT", "Walmart", "Superstores and grocery shopping."},
	{"Shopping", "TGT", "Target", "The store with the red bullseye dog."},
	{"Shopping", "COST", "Costco", "Huge warehouse stores and $1.50 hot dogs."},
	{"Shopping", "EBAY", "eBay", "Buying and selling collectibles online."},

	{"Fashion", "NKE", "Nike", "Air Jordans, sneakers, and sports gear."},
	{"Fashion", "CROX", "Crocs", "Foam clogs and Jibbitz charms."},
	{"Fashion", "LULU", "Lululemon", "Yoga pants and athletic wear."},
	{"Fashion", "SKX", "Skechers", "Comfortable shoes and sneakers."},
	{"Fashion", "TJX", "TJ Maxx", "Discount clothing and home goods."},

	{"Entertainment", "DIS", "Disney", "Marvel, Star Wars, Pixar, and Theme Parks."},
	{"Entertainment", "NFLX", "Netflix", "Streaming movies and Stranger Things."},
	{"Entertainment", "CNK", "Cinemark", "Movie theaters and popcorn."},
	{"Entertainment", "CMCSA", "Comcast/Universal", "Minions, Mario Movie, and Universal Studios."},

	{"Tech & Cars", "AAPL", "Apple", "iPhones, iPads, and MacBooks."},
	{"Tech & Cars", "GOOGL", "Google", "YouTube, Search, and Android."},
	{"Tech & Cars", "TSLA", "Tesla", "Electric cars and rockets."},
	{"Tech & Cars", "F", "Ford", "Mustangs and F-150 Trucks."},
	{"Tech & Cars", "TM", "Toyota", "Camrys and Priuses."},
}

func seedIdeas(db *gorm.DB) error {
	return db.Transaction(func(tx *gorm.DB) error {
		// Replace the catalogue wholesale so re-runs pick up edits.
		if err := tx.Where("1 = 1").Delete(&domain.StockIdea{}).Error; err != nil {
			return err
		}
		for _, row := range ideas {
			idea := domain.StockIdea{
				Category:    row.Category,
				Ticker:      row.Ticker,
				Name:        row.Name,
				Description: row.Description,
			}
			if err := tx.Create(&idea).Error; err != nil {
				return err
			}
		}
		return nil
	})
}

func seedFamily(db *gorm.DB, cfg *config.Config) error {
	ctx := context.Background()

	var existing int64
	if err := db.WithContext(ctx).Model(&domain.User{}).Where("username = ?", "Dad").Count(&existing).Error; err != nil {
		return err
	}
	if existing > 0 {
		fmt.Println("Default family already present, skipping")
		return nil
	}

	svc := &user.Service{DB: db}
	admin, err := svc.RegisterFamily(ctx, "The Smith Family", "Dad", "password123", decimal.RequireFromString(cfg.StartingBalance))
	if err != nil {
		return err
	}
	if _, err := svc.CreateFamilyMember(ctx, admin.FamilyID, "Kid1", "1234", decimal.RequireFromString("1000.00")); err != nil {
		return err
	}
	if cfg.AgentUsername != "" && cfg.AgentPassword != "" {
		if _, err := svc.CreateFamilyMember(ctx, admin.FamilyID, cfg.AgentUsername, cfg.AgentPassword, decimal.RequireFromString(cfg.StartingBalance)); err != nil {
			return err
		}
		fmt.Printf("Agent user %q created\n", cfg.AgentUsername)
	}
	fmt.Println("Default family created: Dad (admin), Kid1")
	return nil
}

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("config load")
	}
	db, err := database.Open(cfg.DatabaseURL)
	if err != nil {
		log.Fatal().Err(err).Msg("database open")
	}
	if err := database.AutoMigrate(db); err != nil {
		log.Fatal().Err(err).Msg("database migrate")
	}

	if err := seedIdeas(db); err != nil {
		log.Fatal().Err(err).Msg("seed research ideas")
	}
	if err := seedFamily(db, cfg); err != nil {
		log.Fatal().Err(err).Msg("seed family")
	}
	fmt.Printf("Database ready: %d research ideas loaded\n", len(ideas))
}
