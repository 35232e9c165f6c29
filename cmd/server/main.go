// cmd/server/main.go
package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"
	"golang.org/x/net/http2"
	"golang.org/x/net/http2/h2c"

	"github.com/unclebandit/blooddrive-backend/internal/config"
	"github.com/unclebandit/blooddrive-backend/internal/controller"
	"github.com/unclebandit/blooddrive-backend/internal/db"
	"github.com/unclebandit/blooddrive-backend/internal/handler"
	"github.com/unclebandit/blooddrive-backend/internal/logger"
	"github.com/unclebandit/blooddrive-backend/internal/metrics"
	"github.com/unclebandit/blooddrive-backend/internal/middleware"
	"github.com/unclebandit/blooddrive-backend/internal/queue"
	"github.com/unclebandit/blooddrive-backend/internal/repository"
	"github.com/unclebandit/blooddrive-backend/internal/service"
)

// newRouter wires probes and metrics outside the rate limit and the REST
// API inside it.
func newRouter(log zerolog.Logger, ratePerMinute int, health *handler.HealthHandler,
	campaigns *controller.CampaignController, donations *controller.DonationController) http.Handler {
	r := chi.NewRouter()
	r.Use(
		chimw.RealIP,
		middleware.RequestID,
		chimw.Recoverer,
		middleware.Logger(log),
		middleware.Metrics(metrics.HTTPRequestDuration),
	)

	r.Get("/health", health.Health)
	r.Get("/health/db", health.HealthDB)
	r.Handle("/metrics", promhttp.Handler())

	r.Group(func(r chi.Router) {
		r.Use(middleware.RateLimit(ratePerMinute))
		controller.Mount(r, campaigns, donations)
	})
	return r
}

func main() {
	envErr := godotenv.Load()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	cfg, err := config.Load(ctx)
	if err != nil {
		boot := zerolog.New(os.Stderr).With().Timestamp().Logger()
		boot.Fatal().Err(err).Msg("failed to load config")
	}
	log := logger.New(cfg.App.Environment, cfg.App.LogLevel)
	if envErr != nil {
		log.Debug().Msg("no .env file found, relying on OS environment variables")
	}

	conn, err := db.NewDB(ctx, cfg.Database)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to connect to database")
	}
	defer conn.Close()

	campaignRepo := &repository.CampaignRepository{DB: conn}
	donationRepo := &repository.DonationRepository{DB: conn}

	// With a broker configured, chart refreshes happen in cmd/worker.
	var q queue.Queue
	if cfg.AMQP.URL != "" {
		aq, err := queue.DialAMQP(cfg.AMQP.URL, log)
		if err != nil {
			log.Fatal().Err(err).Msg("failed to connect to RabbitMQ")
		}
		defer aq.Close()
		q = aq
	} else {
		mq := queue.NewInMemoryQueue(log)
		if _, err := service.StartChartPipeline(ctx, mq, cfg.AMQP.Queue, campaignRepo, nil, log); err != nil {
			log.Fatal().Err(err).Msg("failed to start chart worker")
		}
		q = mq
	}
	changes := service.NewChangePublisher(q, cfg.AMQP.Queue, log)

	campaignController := &controller.CampaignController{
		CampaignService: &service.CampaignService{CampaignRepo: campaignRepo, Changes: changes, Log: log},
		Log:             log,
	}
	donationController := &controller.DonationController{
		DonationService: &service.DonationService{DonationRepo: donationRepo, Changes: changes, Log: log},
		Log:             log,
	}
	health := &handler.HealthHandler{DB: conn, Service: "blooddrive"}

	r := newRouter(log, cfg.Server.RateLimitPerMinute, health, campaignController, donationController)

	server := &http.Server{
		Addr:           cfg.Server.GetServerAddr(),
		ReadTimeout:    time.Duration(cfg.Server.ReadTimeout) * time.Second,
		WriteTimeout:   time.Duration(cfg.Server.WriteTimeout) * time.Second,
		IdleTimeout:    120 * time.Second,
		MaxHeaderBytes: 1 << 20,
		// h2c serves HTTP/2 without TLS
		Handler: h2c.NewHandler(r, &http2.Server{}),
	}

	go func() {
		log.Info().Str("addr", server.Addr).Str("environment", cfg.App.Environment).Msg("server listening")
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("failed to start server")
		}
	}()

	<-ctx.Done()
	log.Info().Msg("shutting down server")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("server forced to shutdown")
		return
	}
	log.Info().Msg("server exited gracefully")
}
