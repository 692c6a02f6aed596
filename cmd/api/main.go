package main

import (
	"context"
	"crypto/tls"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/aws/aws-sdk-go-v2/service/sesv2"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/redis/go-redis/v9"

	"github.com/mirrorfinish/detailing-platform/cmd/mainconfig"
	"github.com/mirrorfinish/detailing-platform/internal/api/router"
	"github.com/mirrorfinish/detailing-platform/internal/availability"
	"github.com/mirrorfinish/detailing-platform/internal/booking"
	"github.com/mirrorfinish/detailing-platform/internal/catalog"
	appconfig "github.com/mirrorfinish/detailing-platform/internal/config"
	"github.com/mirrorfinish/detailing-platform/internal/gcal"
	"github.com/mirrorfinish/detailing-platform/internal/http/handlers"
	"github.com/mirrorfinish/detailing-platform/internal/notify"
	"github.com/mirrorfinish/detailing-platform/internal/observability/metrics"
	"github.com/mirrorfinish/detailing-platform/pkg/logging"
)

func main() {
	_ = godotenv.Load()
	cfg := appconfig.Load()

	logger := logging.New(cfg.LogLevel, cfg.LogFormat)
	logger.Info("starting detailing-platform API server",
		"env", cfg.Env,
		"port", cfg.Port,
	)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	pool := connectPostgresPool(ctx, cfg.DatabaseURL, logger)
	if pool == nil {
		logger.Error("DATABASE_URL is required")
		os.Exit(1)
	}
	defer pool.Close()

	redisClient := connectRedis(ctx, cfg, logger)
	if redisClient != nil {
		defer func() { _ = redisClient.Close() }()
	}

	// Storage and pricing
	bookingStore := booking.NewStore(pool)
	settingsStore := catalog.NewSettingsStore(pool)
	settings := catalog.NewCachedSettings(settingsStore, redisClient, cfg.SettingsCacheTTL)
	resolver := catalog.NewResolver(settings)

	// Observability
	registry := prometheus.NewRegistry()
	bookingMetrics := metrics.NewBookingMetrics(registry)
	metricsHandler := promhttp.HandlerFor(registry, promhttp.HandlerOpts{})

	// Email and calendar integrations
	sender := buildEmailSender(ctx, cfg, logger)
	notifier := notify.NewService(sender, cfg.PublicBaseURL, cfg.OwnerEmail, logger)

	calendarClient, err := gcal.New(ctx, cfg.GoogleCredentialsJSON, cfg.GoogleCalendarID, logger)
	if err != nil {
		logger.Error("google calendar init failed", "error", err)
		os.Exit(1)
	}
	var calendar booking.Calendar
	if calendarClient != nil {
		calendar = calendarClient
		logger.Info("google calendar integration enabled", "calendar_id", cfg.GoogleCalendarID)
	}

	// Core services
	bookingSvc := booking.NewService(bookingStore, resolver, notifier, calendar, bookingMetrics, logger)
	availabilitySvc := availability.NewService(bookingStore)

	// Expired-hold housekeeping
	sweeper := booking.NewHoldSweeper(bookingStore, cfg.HoldSweepEvery, logger)
	go sweeper.Run(ctx)

	r := router.New(&router.Config{
		Logger:             logger,
		Bookings:           handlers.NewBookingsHandler(bookingSvc, logger),
		Availability:       handlers.NewAvailabilityHandler(availabilitySvc, logger),
		Contact:            handlers.NewContactHandler(notifier, logger),
		AdminBookings:      handlers.NewAdminBookingsHandler(bookingSvc, logger),
		AdminSettings:      handlers.NewAdminSettingsHandler(settings, logger),
		AdminAuthSecret:    cfg.AdminJWTSecret,
		MetricsHandler:     metricsHandler,
		CORSAllowedOrigins: cfg.CORSAllowedOrigins,
		PublicRateLimit:    2,
		PublicRateBurst:    10,
	})

	srv := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      r,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		logger.Info("server listening", "addr", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Error("server error", "error", err)
			os.Exit(1)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("shutting down server...")
	cancel()

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer shutdownCancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("server forced to shutdown", "error", err)
		os.Exit(1)
	}

	logger.Info("server stopped")
}

// connectPostgresPool opens a pgx pool, or returns nil when no URL is set.
func connectPostgresPool(ctx context.Context, databaseURL string, logger *logging.Logger) *pgxpool.Pool {
	if databaseURL == "" {
		return nil
	}
	pool, err := pgxpool.New(ctx, databaseURL)
	if err != nil {
		logger.Error("postgres pool init failed", "error", err)
		return nil
	}
	pingCtx, pingCancel := context.WithTimeout(ctx, 5*time.Second)
	defer pingCancel()
	if err := pool.Ping(pingCtx); err != nil {
		logger.Error("postgres ping failed", "error", err)
		pool.Close()
		return nil
	}
	logger.Info("postgres connected")
	return pool
}

// connectRedis opens the settings-cache redis client. Redis is optional;
// without it settings reads go straight to Postgres.
func connectRedis(ctx context.Context, cfg *appconfig.Config, logger *logging.Logger) *redis.Client {
	if cfg.RedisAddr == "" {
		logger.Info("redis not configured, settings cache disabled")
		return nil
	}
	opts := &redis.Options{
		Addr:     cfg.RedisAddr,
		Password: cfg.RedisPassword,
	}
	if cfg.RedisTLS {
		opts.TLSConfig = &tls.Config{MinVersion: tls.VersionTLS12}
	}
	client := redis.NewClient(opts)
	pingCtx, pingCancel := context.WithTimeout(ctx, 5*time.Second)
	defer pingCancel()
	if err := client.Ping(pingCtx).Err(); err != nil {
		logger.Warn("redis unreachable, settings cache disabled", "error", err)
		_ = client.Close()
		return nil
	}
	logger.Info("redis connected", "addr", cfg.RedisAddr)
	return client
}

// buildEmailSender picks the email provider from configuration. Unknown or
// unconfigured providers fall back to the logging stub.
func buildEmailSender(ctx context.Context, cfg *appconfig.Config, logger *logging.Logger) notify.EmailSender {
	switch cfg.EmailProvider {
	case "sendgrid":
		sender := notify.NewSendGridSender(notify.SendGridConfig{
			APIKey:    cfg.SendGridAPIKey,
			FromEmail: cfg.SendGridFromEmail,
			FromName:  cfg.SendGridFromName,
		}, logger)
		if sender != nil {
			logger.Info("email provider: sendgrid")
			return sender
		}
		logger.Warn("sendgrid selected but no API key set, using stub sender")
	case "ses":
		awsCfg, err := mainconfig.LoadAWSConfig(ctx, cfg)
		if err != nil {
			logger.Warn("AWS config load failed, using stub sender", "error", err)
			break
		}
		sender := notify.NewSESSender(sesv2.NewFromConfig(awsCfg), notify.SESConfig{
			FromEmail: cfg.SESFromEmail,
			FromName:  cfg.SESFromName,
		}, logger)
		if sender != nil {
			logger.Info("email provider: ses", "region", cfg.AWSRegion)
			return sender
		}
	}
	return notify.NewStubEmailSender(logger)
}
