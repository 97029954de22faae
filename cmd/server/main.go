package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"go.uber.org/zap"

	"github.com/stashspot/backend/internal/adapter/httpapi"
	"github.com/stashspot/backend/internal/adapter/messaging/nats"
	"github.com/stashspot/backend/internal/adapter/repository/cache"
	"github.com/stashspot/backend/internal/adapter/repository/postgres"
	"github.com/stashspot/backend/internal/adapter/storage/s3"
	"github.com/stashspot/backend/internal/config"
	listingusecase "github.com/stashspot/backend/internal/listing/usecase"
	"github.com/stashspot/backend/internal/mailer"
	"github.com/stashspot/backend/internal/platform/logger"
	"github.com/stashspot/backend/internal/platform/metrics"
	"github.com/stashspot/backend/internal/platform/tracer"
	userusecase "github.com/stashspot/backend/internal/user/usecase"
)

const shutdownTimeout = 10 * time.Second

func main() {
	if err := godotenv.Load(); err != nil {
		if !os.IsNotExist(err) {
			zap.NewExample().Warn("Error loading .env file", zap.Error(err))
		}
	}

	appLogger := logger.NewLogger()
	defer func() {
		_ = appLogger.Sync()
	}()

	cfg, err := config.LoadConfig(appLogger)
	if err != nil {
		appLogger.Fatal("Failed to load configuration", zap.Error(err))
	}
	appLogger.Info("Configuration loaded", zap.String("service_name", cfg.ServiceName))

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	if cfg.OTELExporterEndpoint != "" {
		tp, err := tracer.InitTracer(cfg.ServiceName, cfg.OTELExporterEndpoint, appLogger)
		if err != nil {
			appLogger.Error("Failed to initialize tracer, continuing without tracing", zap.Error(err))
		} else {
			defer func() {
				shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
				defer shutdownCancel()
				if err := tp.Shutdown(shutdownCtx); err != nil {
					appLogger.Error("Failed to shutdown tracer provider", zap.Error(err))
				}
			}()
		}
	}

	db, err := postgres.Open(cfg.DatabaseURL)
	if err != nil {
		appLogger.Fatal("Failed to connect to PostgreSQL", zap.Error(err))
	}
	if err := postgres.Migrate(db); err != nil {
		appLogger.Fatal("Failed to run database migrations", zap.Error(err))
	}
	appLogger.Info("Connected to PostgreSQL and ran migrations")

	listingRepo := postgres.NewListingRepository(db)
	userRepo := postgres.NewUserRepository(db)

	var listingCache listingusecase.Cache
	if cfg.RedisAddress != "" {
		redisCache, err := cache.NewListingCache(cfg.RedisAddress)
		if err != nil {
			appLogger.Error("Failed to connect to Redis, continuing without cache", zap.Error(err))
		} else {
			listingCache = redisCache
			appLogger.Info("Connected to Redis", zap.String("address", cfg.RedisAddress))
		}
	}

	var events listingusecase.Publisher
	if cfg.NATSURL != "" {
		publisher, err := nats.NewPublisher(cfg.NATSURL)
		if err != nil {
			appLogger.Error("Failed to connect to NATS, continuing without events", zap.Error(err))
		} else {
			defer publisher.Close()
			events = publisher
			appLogger.Info("Connected to NATS", zap.String("url", cfg.NATSURL))
		}
	}

	var photoStorage listingusecase.Storage
	if cfg.MinIOEndpoint != "" {
		s3Storage, err := s3.NewS3Storage(cfg.MinIOEndpoint, cfg.MinIOAccessKey, cfg.MinIOSecretKey, cfg.MinIOBucket, cfg.MinIOUseSSL, appLogger)
		if err != nil {
			appLogger.Error("Failed to connect to MinIO, continuing without photo uploads", zap.Error(err))
		} else {
			photoStorage = s3Storage
			appLogger.Info("Connected to MinIO", zap.String("endpoint", cfg.MinIOEndpoint))
		}
	}

	var listingMailer listingusecase.Mailer
	if cfg.SMTPEmail != "" && cfg.SMTPPassword != "" {
		listingMailer = mailer.NewSMTPMailer(cfg.SMTPHost, cfg.SMTPPort, cfg.SMTPEmail, cfg.SMTPPassword)
		appLogger.Info("SMTP mailer configured", zap.String("host", cfg.SMTPHost))
	}

	metricsManager := metrics.NewMetricsManager(cfg.ServiceName)
	if cfg.PrometheusMetricsPort != "" {
		go func() {
			if err := metrics.StartMetricsServer(cfg.PrometheusMetricsPort, appLogger, metricsManager.Registry); err != nil {
				appLogger.Error("Metrics server failed", zap.Error(err))
			}
		}()
	}

	listingUC := listingusecase.NewListingUsecase(listingRepo, userRepo, listingCache, events, listingMailer, appLogger)
	userUC := userusecase.NewUserUsecase(userRepo, cfg.JWTSecret, time.Duration(cfg.TokenTTLHours)*time.Hour, appLogger)

	var photoUC *listingusecase.PhotoUsecase
	if photoStorage != nil {
		photoUC = listingusecase.NewPhotoUsecase(photoStorage, listingRepo)
	}

	listingHandler := httpapi.NewListingHandler(listingUC, photoUC, metricsManager, appLogger)
	userHandler := httpapi.NewUserHandler(userUC, appLogger)
	router := httpapi.NewRouter(listingHandler, userHandler, cfg.JWTSecret, metricsManager, appLogger)

	server := &http.Server{
		Addr:         ":" + cfg.HTTPPort,
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	serverErrors := make(chan error, 1)
	go func() {
		appLogger.Info("HTTP server starting", zap.String("port", cfg.HTTPPort))
		serverErrors <- server.ListenAndServe()
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-serverErrors:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			appLogger.Fatal("HTTP server failed", zap.Error(err))
		}
	case sig := <-quit:
		appLogger.Info("Shutdown signal received", zap.String("signal", sig.String()))

		shutdownCtx, shutdownCancel := context.WithTimeout(ctx, shutdownTimeout)
		defer shutdownCancel()

		if err := server.Shutdown(shutdownCtx); err != nil {
			appLogger.Error("Graceful shutdown failed, forcing close", zap.Error(err))
			_ = server.Close()
		}
	}

	appLogger.Info("Server stopped")
}
