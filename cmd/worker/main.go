package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog"

	"github.com/unclebandit/blooddrive-backend/internal/config"
	"github.com/unclebandit/blooddrive-backend/internal/db"
	"github.com/unclebandit/blooddrive-backend/internal/logger"
	"github.com/unclebandit/blooddrive-backend/internal/model"
	"github.com/unclebandit/blooddrive-backend/internal/queue"
	"github.com/unclebandit/blooddrive-backend/internal/repository"
	"github.com/unclebandit/blooddrive-backend/internal/service"
)

// logSnapshot prints the refreshed chart, one line per campaign.
func logSnapshot(log zerolog.Logger) func([]model.CampaignDonationTotal) {
	return func(totals []model.CampaignDonationTotal) {
		for _, t := range totals {
			log.Debug().Int("campaign_id", t.CampaignID).Str("name", t.Name).Int("total", t.Total).Msg("chart row")
		}
	}
}

func main() {
	_ = godotenv.Load()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	cfg, err := config.Load(ctx)
	if err != nil {
		boot := zerolog.New(os.Stderr).With().Timestamp().Logger()
		boot.Fatal().Err(err).Msg("failed to load config")
	}
	log := logger.New(cfg.App.Environment, cfg.App.LogLevel)

	if cfg.AMQP.URL == "" {
		log.Fatal().Msg("AMQP_URL is required for the worker")
	}

	conn, err := db.NewDB(ctx, cfg.Database)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to connect to database")
	}
	defer conn.Close()

	q, err := queue.DialAMQP(cfg.AMQP.URL, log)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to connect to RabbitMQ")
	}
	defer q.Close()

	campaignRepo := &repository.CampaignRepository{DB: conn}
	if _, err := service.StartChartPipeline(ctx, q, cfg.AMQP.Queue, campaignRepo, logSnapshot(log), log); err != nil {
		log.Fatal().Err(err).Msg("failed to start chart worker")
	}

	log.Info().Str("queue", cfg.AMQP.Queue).Msg("worker running, waiting for record changes")
	<-ctx.Done()
	log.Info().Msg("worker stopped")
}
