package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"

	"cradle/internal/config"
	"cradle/internal/database"
	"cradle/internal/models"
	"cradle/internal/repository"
)

var (
	clearExisting = flag.Bool("clear", false, "Clear existing gifts before seeding")
	dryRun        = flag.Bool("dry-run", false, "Show what would be seeded without making changes")
)

type sampleGift struct {
	name        string
	description string
	category    string
	quantity    int
	priority    int
}

var sampleGifts = []sampleGift{
	{"Bodysuit set 0-3m", "Pack of 5, neutral colors", "Clothing", 0, 1},
	{"Diapers size 1", "One pack per guest is plenty", "Hygiene", 10, 2},
	{"Baby bathtub", "", "Hygiene", 0, 1},
	{"Swaddle blankets", "Muslin, pack of 3", "Bedding", 4, 0},
	{"Bottle warmer", "", "Feeding", 0, 0},
	{"Wet wipes", "Fragrance free", "Hygiene", 12, 2},
	{"Night light", "Warm white, dimmable", "Nursery", 0, 0},
	{"Baby monitor", "", "Nursery", 0, 2},
}

func main() {
	flag.Parse()

	slog.Info("Starting registry seeder...")

	cfg := config.Load()
	db, err := database.Connect(cfg.Database)
	if err != nil {
		slog.Error("Failed to connect to database", "error", err)
		os.Exit(1)
	}
	defer db.Close()

	if err := db.RunMigrations(); err != nil {
		slog.Error("Failed to run migrations", "error", err)
		os.Exit(1)
	}

	if err := seed(db); err != nil {
		slog.Error("Failed to seed registry", "error", err)
		os.Exit(1)
	}

	slog.Info("Registry seeding completed successfully!")
}

func seed(db *database.DB) error {
	ctx := context.Background()
	repos := repository.NewRepositories(db)

	if *dryRun {
		for _, sample := range sampleGifts {
			slog.Info("Would seed gift", "name", sample.name, "category", sample.category)
		}
		return nil
	}

	if *clearExisting {
		if _, err := db.ExecContext(ctx, `DELETE FROM gifts`); err != nil {
			return fmt.Errorf("failed to clear gifts: %w", err)
		}
		slog.Info("Cleared existing gifts")
	}

	if err := repos.Settings.Init(ctx, models.DefaultEventSettings()); err != nil {
		return fmt.Errorf("failed to seed event settings: %w", err)
	}

	for _, sample := range sampleGifts {
		gift := &models.Gift{
			Name:     sample.name,
			Category: sample.category,
			Status:   models.GiftStatusAvailable,
		}
		if sample.description != "" {
			description := sample.description
			gift.Description = &description
		}
		if sample.quantity > 0 {
			quantity := sample.quantity
			gift.TotalQuantity = &quantity
		}
		priority := sample.priority
		gift.Priority = &priority

		created, err := repos.Gifts.Create(ctx, gift)
		if err != nil {
			return fmt.Errorf("failed to seed gift %q: %w", sample.name, err)
		}
		slog.Info("Seeded gift", "id", created.ID, "name", created.Name)
	}

	return nil
}
