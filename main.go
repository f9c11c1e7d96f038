// main.go
package main

import (
	"context"
	"log"

	"stempede-store/cmd"
	"stempede-store/internal/data/repository"
	"stempede-store/internal/metrics"
	"stempede-store/internal/wire"
	"stempede-store/pkg/database"
	"stempede-store/pkg/utils"

	"go.uber.org/zap"
)

func main() {
	// Load config
	config, err := utils.LoadConfig(".env")
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	// Initialize logger
	logger, err := utils.InitLogger(config.App.LogPath, config.App.Debug)
	if err != nil {
		log.Printf("Failed to init logger: %v. Using standard log.", err)
		logger, _ = zap.NewProduction()
	}
	defer logger.Sync()

	logger.Info("Starting application",
		zap.String("app", config.App.Name),
		zap.String("port", config.App.Port),
		zap.String("db_driver", config.Database.Driver),
		zap.Bool("debug", config.App.Debug),
	)

	// Connect to database
	db, err := database.Open(config.Database, logger, config.App.Debug)
	if err != nil {
		logger.Fatal("Failed to connect to database", zap.Error(err))
	}
	defer db.Close()

	logger.Info("Database connected successfully")

	if err := repository.AutoMigrate(db.Gorm); err != nil {
		logger.Fatal("Failed to migrate schema", zap.Error(err))
	}

	m := metrics.New()
	factory := repository.NewUnitOfWorkFactory(db.Gorm, logger,
		repository.WithCollation(config.Database.Collation),
		repository.WithTransactionObserver(m),
	)

	if err := repository.SeedRoles(context.Background(), factory.New()); err != nil {
		logger.Fatal("Failed to seed roles", zap.Error(err))
	}

	// Wire all dependencies
	app := wire.Wiring(db, factory, m, config, logger)

	if err := cmd.APIServer(app.Router, config.App.Port, logger); err != nil {
		logger.Error("Server error", zap.Error(err))
	}
}
