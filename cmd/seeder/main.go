package main

import (
	"context"
	"flag"
	"log"
	"time"

	"github.com/fikaregister/fika-api/internal/assist"
	"github.com/fikaregister/fika-api/internal/cache"
	"github.com/fikaregister/fika-api/internal/config"
	"github.com/fikaregister/fika-api/internal/database"
	"github.com/fikaregister/fika-api/internal/repository"
	"github.com/fikaregister/fika-api/internal/seeder"
	"github.com/fikaregister/fika-api/internal/service"
	"github.com/golang-migrate/migrate/v4"
	_ "github.com/golang-migrate/migrate/v4/database/sqlite3"
	_ "github.com/golang-migrate/migrate/v4/source/file"
	"go.uber.org/zap"
)

func main() {
	var (
		path = flag.String("path", "", "Seed file path (defaults to SEEDER_PATH)")
	)
	flag.Parse()

	logger, err := zap.NewDevelopment()
	if err != nil {
		log.Fatalf("Failed to initialize logger: %v", err)
	}
	defer logger.Sync()

	cfg, err := config.Load()
	if err != nil {
		logger.Fatal("Failed to load config", zap.Error(err))
	}
	seedPath := cfg.Seeder.Path
	if *path != "" {
		seedPath = *path
	}

	db, err := database.Connect(context.Background(), cfg.DB)
	if err != nil {
		logger.Fatal("Failed to connect to database", zap.Error(err))
	}
	defer db.Close()

	if err := db.Ping(); err != nil {
		logger.Fatal("Failed to ping database", zap.Error(err))
	}

	logger.Info("Connected to database", zap.String("type", string(cfg.DB.Type)))

	// Auto-migrate if using memory DB to ensure schema exists
	if cfg.DB.IsMemory() {
		m, err := migrate.New("file://migrations/sqlite", "sqlite3://"+cfg.DB.DSN())
		if err != nil {
			logger.Fatal("Failed to init migration", zap.Error(err))
		}
		if err := m.Up(); err != nil && err != migrate.ErrNoChange {
			logger.Fatal("Failed to run migration", zap.Error(err))
		}
	}

	logger.Info("Parsing seed file...", zap.String("path", seedPath))
	file, err := seeder.NewParser(seedPath).Parse()
	if err != nil {
		logger.Fatal("Failed to parse seed file", zap.Error(err))
	}

	store := repository.NewStore(db, cfg.DB.Type)
	oracle := assist.New(cfg.Assist, logger)
	svc := service.NewService(store, cache.NewMemory(), time.Minute, oracle, logger)

	ctx := context.Background()
	if err := seeder.NewSeeder(svc, store, logger).Run(ctx, file); err != nil {
		logger.Fatal("Failed to seed database", zap.Error(err))
	}

	logger.Info("Data import completed successfully!",
		zap.Int("places", len(file.Places)),
		zap.Int("categories", len(file.Categories)))
}
