package main

import (
	"context"
	"database/sql"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/rs/zerolog/log"
	"github.com/sangkips/mail-merge-service/internal/config"
	"github.com/sangkips/mail-merge-service/internal/db"
	"github.com/sangkips/mail-merge-service/internal/domains/campaigns"
	"github.com/sangkips/mail-merge-service/internal/domains/deliveries"
	"github.com/sangkips/mail-merge-service/internal/domains/emails"
	"github.com/sangkips/mail-merge-service/internal/health"
	"github.com/sangkips/mail-merge-service/internal/queue"
)

func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load config")
	}
	cfg.SetupLogging()

	transport, err := cfg.Transport()
	if err != nil {
		log.Fatal().Err(err).Msg("failed to create mail transport")
	}

	// The result is only logged; the server starts either way.
	verifyCtx, cancelVerify := context.WithTimeout(context.Background(), 10*time.Second)
	if err := transport.Verify(verifyCtx); err != nil {
		log.Error().Err(err).Str("transport", cfg.MailTransport).Msg("mail transport verification failed")
	} else {
		log.Info().Str("transport", cfg.MailTransport).Msg("mail transport is ready to send emails")
	}
	cancelVerify()

	var dbConn *sql.DB
	if cfg.DBURL != "" {
		dbConn, err = db.ConnectAndMigrate(cfg.DBURL)
		if err != nil {
			log.Fatal().Err(err).Msg("failed to connect to database")
		}
		defer dbConn.Close()
	}

	var (
		recorder campaigns.DeliveryRecorder
		pinger   health.Pinger
	)
	if cfg.RabbitMQURL != "" {
		rabbitMQ, err := queue.NewRabbitMQ(cfg.RabbitMQURL)
		if err != nil {
			log.Fatal().Err(err).Msg("failed to connect to RabbitMQ")
		}
		defer rabbitMQ.Close()
		recorder = rabbitMQ
		pinger = rabbitMQ
	}

	maxMemory := cfg.MaxUploadMB << 20

	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: cfg.CORSOrigins,
		AllowedMethods: []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders: []string{"Accept", "Content-Type", "X-Request-Id"},
		MaxAge:         300,
	}))

	emailHandler := emails.NewHandler(transport, cfg.SMTPFrom, maxMemory)
	campaignHandler := campaigns.NewHandler(transport, cfg.SMTPFrom, recorder, maxMemory)

	r.Route("/api", func(r chi.Router) {
		emailHandler.RegisterEmailRoutes(r)

		r.Route("/campaigns", func(r chi.Router) {
			campaignHandler.RegisterCampaignRoutes(r)
			if dbConn != nil {
				deliveries.NewHandler(dbConn).RegisterDeliveryRoutes(r)
			}
		})
	})

	healthHandler := health.NewHandler(dbConn, pinger, transport)
	r.Get("/health", healthHandler.Health)

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		sigChan := make(chan os.Signal, 1)
		signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
		sig := <-sigChan
		log.Info().Str("signal", sig.String()).Msg("received signal, shutting down")

		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()
		if err := srv.Shutdown(ctx); err != nil {
			log.Error().Err(err).Msg("failed to shut down server")
		}
	}()

	log.Info().Msg("server starting on :" + cfg.Port)
	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		log.Fatal().Err(err).Msg("failed to start server")
	}

	log.Info().Msg("server stopped")
}
