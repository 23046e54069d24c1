package main

import (
	"context"
	"log"
	"os"

	"github.com/dmitrijs2005/bijligrid/internal/logging"
	"github.com/dmitrijs2005/bijligrid/internal/server"
	"github.com/dmitrijs2005/bijligrid/internal/server/config"
	"github.com/dmitrijs2005/bijligrid/internal/server/repositories/repomanager"
	"github.com/dmitrijs2005/bijligrid/internal/server/seed"
)

func main() {
	ctx := context.Background()
	cfg := config.LoadConfig()
	logger := logging.New(os.Stdout, "text", cfg.LogLevel)

	logger.Info(ctx, "Seeding Bijli database...")

	rm := repomanager.NewPostgresRepositoryManager()
	db, err := server.OpenDatabase(ctx, cfg.DatabaseDSN, rm)
	if err != nil {
		log.Fatalf("%v", err)
	}
	defer db.Close()

	if _, err := seed.Run(ctx, db, rm, logger); err != nil {
		logger.Error(ctx, "seed failed", "error", err)
		os.Exit(1)
	}
}
