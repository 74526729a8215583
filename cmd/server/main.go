package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	natsAdapter "github.com/arthurCDG/Vinted-clone-server/internal/adapter/messaging/nats"
	mongoRepo "github.com/arthurCDG/Vinted-clone-server/internal/adapter/repository/mongodb"
	"github.com/arthurCDG/Vinted-clone-server/internal/adapter/storage/s3"

	"github.com/arthurCDG/Vinted-clone-server/internal/adapter/httpapi"
	"github.com/arthurCDG/Vinted-clone-server/internal/config"
	"github.com/arthurCDG/Vinted-clone-server/internal/domain"
	"github.com/arthurCDG/Vinted-clone-server/internal/mailer"
	"github.com/arthurCDG/Vinted-clone-server/internal/platform/logger"
	"github.com/arthurCDG/Vinted-clone-server/internal/platform/metrics"
	"github.com/arthurCDG/Vinted-clone-server/internal/platform/tracer"
	"github.com/arthurCDG/Vinted-clone-server/internal/usecase"

	"go.uber.org/zap"
)

func main() {
	appLogger := logger.NewLogger()
	defer appLogger.Sync()

	cfg, err := config.Load()
	if err != nil {
		appLogger.Fatal("Failed to load configuration", zap.Error(err))
	}
	appLogger.Info("Configuration loaded",
		zap.String("service_name", cfg.ServiceName),
		zap.String("http_port", cfg.HTTPPort),
		zap.String("mongo_database", cfg.MongoDatabase),
		zap.Bool("nats_enabled", cfg.NATSURL != ""),
		zap.Bool("smtp_enabled", cfg.SMTPEmail != ""),
	)

	ctx := context.Background()

	// OpenTelemetry tracer (disabled when no endpoint is configured)
	tp, err := tracer.Init(ctx, cfg.ServiceName, cfg.OTELExporterEndpoint)
	if err != nil {
		appLogger.Fatal("Failed to initialize tracer", zap.Error(err))
	}
	if tp != nil {
		defer func() {
			shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			if err := tp.Shutdown(shutdownCtx); err != nil {
				appLogger.Error("Failed to shutdown tracer provider", zap.Error(err))
			}
		}()
	}

	// MongoDB
	mongoClient, err := mongoRepo.Connect(ctx, cfg.MongoURI)
	if err != nil {
		appLogger.Fatal("Failed to connect to MongoDB", zap.Error(err))
	}
	defer func() {
		if err := mongoClient.Disconnect(context.Background()); err != nil {
			appLogger.Error("Error disconnecting from MongoDB", zap.Error(err))
		}
	}()
	db := mongoClient.Database(cfg.MongoDatabase)

	userRepo := mongoRepo.NewUserRepository(db, appLogger)
	offerRepo := mongoRepo.NewOfferRepository(db, appLogger)

	// Blob store
	storage, err := s3.NewStorage(cfg.MinIOEndpoint, cfg.MinIOAccessKey, cfg.MinIOSecretKey, cfg.MinIOBucket, cfg.MinIOUseSSL, appLogger)
	if err != nil {
		appLogger.Fatal("Failed to initialize blob storage", zap.Error(err))
	}

	// NATS publisher (no-op when NATS_URL is not set)
	var events domain.EventPublisher = natsAdapter.NoopPublisher{}
	if cfg.NATSURL != "" {
		publisher, err := natsAdapter.NewPublisher(cfg.NATSURL)
		if err != nil {
			appLogger.Fatal("Failed to connect to NATS", zap.Error(err))
		}
		defer publisher.Close()
		events = publisher
	}

	// Mailer (no-op when SMTP_EMAIL is not set)
	var mail domain.Mailer = mailer.NoopMailer{}
	if cfg.SMTPEmail != "" {
		mail = mailer.NewSMTPMailer(cfg.SMTPHost, cfg.SMTPPort, cfg.SMTPEmail, cfg.SMTPPassword)
	}

	// Metrics
	metricsManager := metrics.NewManager(cfg.ServiceName)
	if cfg.MetricsPort != "" {
		go func() {
			if err := metrics.StartServer(cfg.MetricsPort, appLogger, metricsManager.Registry); err != nil && !errors.Is(err, http.ErrServerClosed) {
				appLogger.Error("Metrics server failed", zap.Error(err))
			}
		}()
	}

	// Usecases and HTTP surface
	userUsecase := usecase.NewUserUsecase(userRepo, storage, mail, appLogger)
	offerUsecase := usecase.NewOfferUsecase(offerRepo, userRepo, storage, events, appLogger)

	userHandler := httpapi.NewUserHandler(userUsecase, metricsManager, appLogger)
	offerHandler := httpapi.NewOfferHandler(offerUsecase, metricsManager, appLogger)
	router := httpapi.NewRouter(cfg.ServiceName, userRepo, userHandler, offerHandler, metricsManager, appLogger)

	srv := &http.Server{
		Addr:    ":" + cfg.HTTPPort,
		Handler: router,
	}

	go func() {
		appLogger.Info("Starting HTTP server", zap.String("address", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			appLogger.Fatal("HTTP server failed", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	sig := <-quit
	appLogger.Info("Received shutdown signal", zap.String("signal", sig.String()))

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		appLogger.Error("HTTP server shutdown error", zap.Error(err))
	}
	appLogger.Info("Application stopped")
}
