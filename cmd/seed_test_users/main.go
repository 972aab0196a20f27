package main

import (
	"context"
	"errors"
	"os"

	"go.uber.org/zap"

	"github.com/pageza/pantrypal/backend/config"
	"github.com/pageza/pantrypal/backend/internal/database"
	"github.com/pageza/pantrypal/backend/internal/logger"
	"github.com/pageza/pantrypal/backend/internal/service"
)

// Shared password for every demo account.
const testPassword = "testpassword123"

var testUsers = []struct {
	username string
	email    string
}{
	{"johndoe", "john.doe@example.com"},
	{"janesmith", "jane.smith@example.com"},
	{"bobwilson", "bob.wilson@example.com"},
}

func main() {
	logger.Init()
	defer logger.Sync()
	log := logger.Named("seed_test_users")

	if config.IsProduction() {
		log.Error("Refusing to create test users in production")
		logger.Sync()
		os.Exit(1)
	}

	cfg, err := config.LoadConfig()
	if err != nil {
		log.Error("Failed to load configuration", zap.Error(err))
		logger.Sync()
		os.Exit(1)
	}

	ctx := context.Background()
	db, err := database.Open(ctx, cfg, logger.Named("database"))
	if err != nil {
		log.Error("Failed to open database", zap.Error(err))
		logger.Sync()
		os.Exit(1)
	}
	defer database.Close(db)

	auth := service.NewAuthService(db, cfg.JWTSecret)
	for _, u := range testUsers {
		user, err := auth.Register(ctx, u.username, u.email, testPassword)
		switch {
		case errors.Is(err, service.ErrUserExists):
			log.Info("Test user already exists", zap.String("email", u.email))
		case err != nil:
			log.Error("Failed to create test user", zap.String("email", u.email), zap.Error(err))
		default:
			log.Info("Created test user", zap.String("email", user.Email), zap.String("id", user.ID.String()))
		}
	}
	log.Info("Test users ready", zap.String("password", testPassword))
}
