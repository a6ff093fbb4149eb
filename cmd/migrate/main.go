package main

import (
	"context"
	"flag"
	"fmt"
	"os"

	"laundry-be/internal/config"
	"laundry-be/internal/db"
	"laundry-be/internal/logger"

	"go.uber.org/zap"
)

func main() {
	if err := run(os.Args[1:]); err != nil {
		logger.L().Fatal("migration failed", zap.Error(err))
	}
}

func run(args []string) error {
	fs := flag.NewFlagSet("migrate", flag.ContinueOnError)
	mode := fs.String("mode", "up", "migration mode: up or down")
	seed := fs.Bool("seed", false, "insert seed data after migrating up (only when users is empty)")
	if err := fs.Parse(args); err != nil {
		return err
	}

	cfg := config.LoadConfig()
	logger.InitWithFile(cfg.AppEnv, cfg.LogFile)
	defer logger.Sync()

	database, err := db.NewDatabase(cfg)
	if err != nil {
		return err
	}
	defer database.Close()

	ctx := context.Background()
	if err := db.Migrate(ctx, database, *mode); err != nil {
		return err
	}

	if *seed {
		if *mode != "up" {
			return fmt.Errorf("-seed requires -mode=up")
		}
		return db.Seed(ctx, database)
	}
	return nil
}
