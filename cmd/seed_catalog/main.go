package main

import (
	"context"
	"flag"
	"os"

	"go.uber.org/zap"

	"github.com/pageza/pantrypal/backend/config"
	"github.com/pageza/pantrypal/backend/internal/catalog"
	"github.com/pageza/pantrypal/backend/internal/database"
	"github.com/pageza/pantrypal/backend/internal/logger"
	"github.com/pageza/pantrypal/backend/internal/models"
	"github.com/pageza/pantrypal/backend/internal/service"
)

func main() {
	file := flag.String("file", "", "YAML recipe catalog to load (default: built-in catalog)")
	flag.Parse()

	logger.Init()
	defer logger.Sync()
	log := logger.Named("seed_catalog")

	if err := seed(context.Background(), *file, log); err != nil {
		log.Error("Seeding failed", zap.Error(err))
		logger.Sync()
		os.Exit(1)
	}
}

func seed(ctx context.Context, file string, log *zap.Logger) error {
	cfg, err := config.LoadConfig()
	if err != nil {
		return err
	}

	var recipes []models.Recipe
	if file == "" {
		recipes, err = catalog.Default()
	} else {
		recipes, err = catalog.Load(file)
	}
	if err != nil {
		return err
	}

	db, err := database.Open(ctx, cfg, log)
	if err != nil {
		return err
	}
	defer database.Close(db)

	catalogSvc := service.NewCatalogService(db, log)

	// Rankings cached by a running API were computed against the old catalog.
	if client, err := database.NewRedisClient(ctx, cfg, log); err != nil {
		log.Warn("Redis unavailable, cached rankings not cleared", zap.Error(err))
	} else {
		defer client.Close()
		catalogSvc.OnSeed(service.NewRedisRankingCache(client, cfg.RankingCacheTTL, log).Clear)
	}

	n, err := catalogSvc.Seed(ctx, recipes)
	if err != nil {
		return err
	}
	log.Info("Seed complete", zap.Int("created", n), zap.Int("updated", len(recipes)-n))
	return nil
}
