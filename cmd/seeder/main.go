// cmd/seeder/main.go
package main

import (
	"context"
	"database/sql"
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog"

	"github.com/unclebandit/blooddrive-backend/internal/config"
	"github.com/unclebandit/blooddrive-backend/internal/db"
	"github.com/unclebandit/blooddrive-backend/internal/logger"
)

// Campaign 5 is seeded without donations so the chart's exclusion of
// empty campaigns is visible.
var seedFiles = []string{
	"seed/schema.sql",
	"seed/campaigns.sql",
	"seed/donations.sql",
}

type execer interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
}

// seed runs each file in order and stops at the first failure.
func seed(ctx context.Context, conn execer, files []string, log zerolog.Logger) error {
	for _, file := range files {
		content, err := os.ReadFile(file)
		if err != nil {
			return fmt.Errorf("failed to read %s: %w", file, err)
		}
		if _, err := conn.ExecContext(ctx, string(content)); err != nil {
			return fmt.Errorf("failed to execute %s: %w", file, err)
		}
		log.Info().Str("file", file).Msg("seeded")
	}
	return nil
}

func main() {
	_ = godotenv.Load()
	ctx := context.Background()

	cfg, err := config.Load(ctx)
	if err != nil {
		boot := zerolog.New(os.Stderr).With().Timestamp().Logger()
		boot.Fatal().Err(err).Msg("failed to load config")
	}
	log := logger.New(cfg.App.Environment, cfg.App.LogLevel)

	conn, err := db.NewDB(ctx, cfg.Database)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to connect to database")
	}
	defer conn.Close()

	if err := seed(ctx, conn, seedFiles, log); err != nil {
		log.Fatal().Err(err).Msg("seeding failed")
	}
	log.Info().Msg("database seeding completed successfully")
}
