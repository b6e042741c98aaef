package main

import (
	"context"
	"flag"
	"log"

	"quiz-master/internal/config"
	"quiz-master/internal/database"
	"quiz-master/internal/logger"

	"go.uber.org/zap"
)

func main() {
	down := flag.Bool("down", false, "roll every migration back instead of applying them")
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

	ctx := context.Background()
	db, err := database.Open(ctx, cfg)
	if err != nil {
		l.Fatal("Failed to connect to database", zap.Error(err))
	}
	defer db.Close()

	dir := database.Up
	if *down {
		dir = database.Down
	}
	if err := database.Migrate(ctx, db, dir); err != nil {
		l.Fatal("Failed to run migrations", zap.String("direction", string(dir)), zap.Error(err))
	}
	l.Info("Migrations complete", zap.String("driver", cfg.DB.Driver), zap.String("direction", string(dir)))
}
