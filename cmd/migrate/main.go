package main

import (
	"context"
	"flag"
	"os"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/pageza/pantrypal/backend/config"
	"github.com/pageza/pantrypal/backend/internal/database"
	"github.com/pageza/pantrypal/backend/internal/logger"
)

func main() {
	// Parse command line flags
	down := flag.Bool("down", false, "Roll back every migration instead of applying them")
	flag.Parse()

	logger.Init()
	defer logger.Sync()
	log := logger.Named("migrate")

	cfg, err := config.LoadConfig()
	if err != nil {
		log.Error("Failed to load configuration", zap.Error(err))
		logger.Sync()
		os.Exit(1)
	}

	var db *gorm.DB
	if cfg.DBDriver == "sqlite" {
		db, err = database.OpenSQLite(cfg.SQLitePath)
	} else {
		db, err = database.OpenPostgres(context.Background(), cfg.DSN())
	}
	if err != nil {
		log.Error("Failed to connect to database", zap.Error(err))
		logger.Sync()
		os.Exit(1)
	}
	defer database.Close(db)

	if *down {
		err = database.MigrateDown(db)
	} else {
		err = database.Migrate(db, log)
	}
	if err != nil {
		log.Error("Migration failed", zap.Bool("down", *down), zap.Error(err))
		database.Close(db)
		logger.Sync()
		os.Exit(1)
	}
	log.Info("Migration complete", zap.Bool("down", *down))
}
