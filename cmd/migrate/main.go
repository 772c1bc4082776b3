package main

import (
	"flag"
	"log"

	"dcet-prep/internal/config"
	"dcet-prep/internal/database"
	"dcet-prep/internal/logger"

	"go.uber.org/zap"
)

func main() {
	source := flag.String("source", "file://database/migrations", "migrations source URL")
	flag.Parse()

	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	if err := logger.Initialize(cfg.Logger); err != nil {
		log.Fatalf("Failed to initialize logger: %v", err)
	}
	l := logger.Get()
	defer logger.Sync()

	if err := database.RunMigrations(*source, cfg.GetDSN()); err != nil {
		l.Fatal("Failed to run migrations", zap.Error(err))
	}
	l.Info("Migrations completed successfully")
}
