package main

import (
	"context"
	"log"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/joho/godotenv"
	_ "github.com/lib/pq"

	"statengine/adapters/battery"
	"statengine/adapters/postgres"
	"statengine/app"
	"statengine/internal"
	"statengine/internal/config"
	"statengine/ui"
)

func main() {
	// Load .env if present; real environments set variables directly.
	_ = godotenv.Load()

	cfg := config.Load()
	logger := internal.NewDefaultLogger()

	service := app.NewAnalysisService(battery.New())

	var runs *postgres.RunRepository
	if cfg.Database.URL != "" {
		db, err := sqlx.Connect("postgres", cfg.Database.URL)
		if err != nil {
			log.Fatalf("failed to connect to database: %v", err)
		}
		runs = postgres.NewRunRepository(db)

		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := runs.Migrate(ctx); err != nil {
			log.Fatalf("failed to migrate run history: %v", err)
		}
		logger.Info("run history enabled")
	} else {
		logger.Info("DATABASE_URL not set, run history disabled")
	}

	webApp, err := ui.NewApp(ui.Config{
		Service:      service,
		Runs:         runs,
		HistoryLimit: cfg.Database.HistoryLimit,
		Logger:       logger,
	})
	if err != nil {
		log.Fatalf("failed to initialize web app: %v", err)
	}

	if err := webApp.Start(":" + cfg.Server.Port); err != nil {
		log.Fatalf("server stopped: %v", err)
	}
}
