package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/pageza/pantrypal/backend/config"
	"github.com/pageza/pantrypal/backend/internal/api"
	"github.com/pageza/pantrypal/backend/internal/catalog"
	"github.com/pageza/pantrypal/backend/internal/database"
	"github.com/pageza/pantrypal/backend/internal/logger"
	"github.com/pageza/pantrypal/backend/internal/middleware"
	"github.com/pageza/pantrypal/backend/internal/models"
	"github.com/pageza/pantrypal/backend/internal/realtime"
	"github.com/pageza/pantrypal/backend/internal/recommend"
	"github.com/pageza/pantrypal/backend/internal/router"
	"github.com/pageza/pantrypal/backend/internal/server"
	"github.com/pageza/pantrypal/backend/internal/service"
)

func main() {
	logger.Init()
	defer logger.Sync()
	log := logger.L()

	if err := run(log); err != nil {
		log.Error("Server exited with error", zap.Error(err))
		logger.Sync()
		os.Exit(1)
	}
	log.Info("Server stopped")
}

func run(log *zap.Logger) error {
	cfg, err := config.LoadConfig()
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	db, err := database.Open(ctx, cfg, logger.Named("database"))
	if err != nil {
		return err
	}
	defer func() {
		if err := database.Close(db); err != nil {
			log.Warn("Failed to close database", zap.Error(err))
		}
	}()

	catalogSvc := service.NewCatalogService(db, logger.Named("catalog"))

	// Redis backs the ranking cache and the rate limiters. Without it both
	// degrade to pass-through.
	redisClient, err := database.NewRedisClient(ctx, cfg, logger.Named("redis"))
	if err != nil {
		log.Warn("Redis unavailable, continuing without cache and rate limits", zap.Error(err))
		redisClient = nil
	} else {
		defer redisClient.Close()
	}

	var cache service.RankingCache
	if redisClient != nil && cfg.RankingCacheTTL > 0 {
		cache = service.NewRedisRankingCache(redisClient, cfg.RankingCacheTTL, logger.Named("ranking_cache"))
	}

	recommendations := service.NewRecommendationService(catalogSvc, recommend.NewEngine(logger.Named("recommend")), cache, logger.Named("recommendations"))
	catalogSvc.OnSeed(recommendations.ClearCache)
	if err := seedCatalog(ctx, catalogSvc, cfg.CatalogFile, log); err != nil {
		return err
	}

	hub := realtime.NewHub(logger.Named("realtime"))
	journal := service.NewJournalService(db, catalogSvc, logger.Named("journal"))

	services := api.Services{
		Auth:            service.NewAuthService(db, cfg.JWTSecret),
		Recommendations: recommendations,
		Details:         service.NewDetailService(catalogSvc, logger.Named("detail")),
		Sessions:        service.NewSessionService(db, recommendations, hub, logger.Named("session")),
		Planner:         service.NewPlannerService(catalogSvc),
		Journal:         journal,
		Hub:             hub,
		SearchLimiter:   middleware.NewPublicSearchRateLimiter(redisClient, logger.Named("rate_limit")),
		PhotoLimiter:    middleware.NewPhotoUploadRateLimiter(redisClient, cfg.PhotoUploadLimit, logger.Named("rate_limit")),
		AllowedOrigins:  cfg.AllowedOrigins,
		Health:          healthCheck(db, redisClient),
		Log:             logger.Named("api"),
	}

	if cfg.S3Bucket != "" {
		s3Config, err := config.NewS3Config(ctx, cfg)
		if err != nil {
			return err
		}
		services.Photos = service.NewPhotoService(journal, service.NewS3PhotoStore(s3Config), logger.Named("photos"))
		log.Info("Journal photo storage enabled", zap.String("bucket", s3Config.BucketName))
	} else {
		log.Info("S3_BUCKET_NAME not set, journal photo uploads disabled")
	}

	engine := router.New(cfg, services, logger.Named("http"))
	srv := server.New(cfg, engine, logger.Named("server"))
	log.Info("Starting server", zap.String("addr", srv.Addr()))
	return srv.Run(ctx)
}

// seedCatalog loads the recipe catalog into an empty database. An empty path
// selects the built-in catalog.
func seedCatalog(ctx context.Context, catalogSvc *service.CatalogService, path string, log *zap.Logger) error {
	count, err := catalogSvc.Count(ctx)
	if err != nil {
		return fmt.Errorf("failed to count recipes: %w", err)
	}
	if count > 0 {
		log.Info("Recipe catalog present", zap.Int64("recipes", count))
		return nil
	}

	var recipes []models.Recipe
	if path == "" {
		recipes, err = catalog.Default()
	} else {
		recipes, err = catalog.Load(path)
	}
	if err != nil {
		return fmt.Errorf("failed to load recipe catalog: %w", err)
	}

	n, err := catalogSvc.Seed(ctx, recipes)
	if err != nil {
		return fmt.Errorf("failed to seed recipe catalog: %w", err)
	}
	log.Info("Seeded recipe catalog", zap.Int("recipes", n), zap.String("source", sourceName(path)))
	return nil
}

func sourceName(path string) string {
	if path == "" {
		return "built-in"
	}
	return path
}

func healthCheck(db *gorm.DB, redisClient *redis.Client) func(ctx context.Context) error {
	return func(ctx context.Context) error {
		if err := database.HealthCheck(ctx, db); err != nil {
			return fmt.Errorf("database: %w", err)
		}
		if redisClient != nil {
			if err := redisClient.Ping(ctx).Err(); err != nil {
				return fmt.Errorf("redis: %w", err)
			}
		}
		return nil
	}
}
