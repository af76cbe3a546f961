package main

import (
	"context"
	"flag"
	"os"

	"github.com/joho/godotenv"

	"github.com/oksasatya/go-bootcamp-directory/config"
	pginfra "github.com/oksasatya/go-bootcamp-directory/internal/infrastructure/postgres"
	"github.com/oksasatya/go-bootcamp-directory/pkg/helpers"
)

func main() {
	importData := flag.Bool("i", false, "import fixtures")
	destroyData := flag.Bool("d", false, "delete all data")
	flag.Parse()

	_ = godotenv.Load()
	cfg := config.Load()
	logger := helpers.NewLogger(cfg.AppName+"-seed", cfg.Env, cfg.LogLevel)

	if *importData == *destroyData {
		logger.Error("invalid command. usage: seed -i (import) | -d (delete)")
		os.Exit(1)
	}

	ctx := context.Background()
	pool, err := pginfra.NewPool(ctx, cfg.PostgresDSN(), cfg.DBMaxConns, cfg.DBMinConns, cfg.DBMaxConnLife)
	if err != nil {
		logger.Fatalf("failed to connect to postgres: %v", err)
	}
	defer pool.Close()
	if err := pginfra.RunMigrations(cfg.PostgresDSN(), logger); err != nil {
		logger.Fatalf("migration failed: %v", err)
	}

	s := newSeeder(pool, logger)
	if *destroyData {
		if err := s.Destroy(ctx); err != nil {
			logger.Fatalf("error deleting data: %v", err)
		}
		logger.Info("data destroyed")
		return
	}

	fx, err := loadFixtures()
	if err != nil {
		logger.Fatalf("error reading fixtures: %v", err)
	}
	if err := s.Import(ctx, fx); err != nil {
		logger.Fatalf("error importing data: %v", err)
	}
	logger.Info("data imported")
}
