package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"github.com/tallyworks/tally/internal/application/usecase"
	"github.com/tallyworks/tally/internal/infrastructure/config"
	infrakafka "github.com/tallyworks/tally/internal/infrastructure/kafka"
	infrapostgres "github.com/tallyworks/tally/internal/infrastructure/postgres"
	grpcpresentation "github.com/tallyworks/tally/internal/presentation/grpc"
	"github.com/tallyworks/tally/internal/presentation/rest"
	"github.com/tallyworks/tally/pkg/auth"
	pkgkafka "github.com/tallyworks/tally/pkg/kafka"
	"github.com/tallyworks/tally/pkg/observability"
	pkgpostgres "github.com/tallyworks/tally/pkg/postgres"
)

func main() {
	// .env is a development convenience; absence is not an error.
	_ = godotenv.Load()

	cfg := config.Load()
	cfg.Validate()

	logger := observability.InitLogger(observability.LogConfig{
		Level:  cfg.LogLevel,
		Format: cfg.LogFormat,
	})
	logger.Info("starting ledger service", "service", cfg.ServiceName)

	meterProvider, meter, metricsHandler, err := observability.InitMetrics(observability.MetricsConfig{
		ServiceName: cfg.ServiceName,
	})
	if err != nil {
		logger.Error("failed to initialize metrics", "error", err)
		os.Exit(1)
	}

	// Database connection pool.
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	pool, err := pkgpostgres.NewPool(ctx, cfg.Database)
	if err != nil {
		logger.Error("failed to connect to database", "error", err)
		os.Exit(1)
	}
	defer pool.Close()
	logger.Info("connected to database", "database", cfg.Database.Database)

	if err := pkgpostgres.RunMigrations(cfg.Database.DSN(), "file://"+cfg.MigrationsPath); err != nil {
		logger.Error("failed to run migrations", "error", err)
		os.Exit(1)
	}

	// Infrastructure adapters.
	accountRepo := infrapostgres.NewAccountRepo(pool)
	taxRateRepo := infrapostgres.NewTaxRateRepo(pool)
	periodRepo := infrapostgres.NewPeriodRepo(pool)
	journalRepo := infrapostgres.NewJournalRepo(pool)
	ledgerReader := infrapostgres.NewLedgerReader(pool)

	kafkaProducer := pkgkafka.NewProducer(pkgkafka.Config{Brokers: cfg.Kafka.Brokers})
	defer kafkaProducer.Close()
	eventPublisher := infrakafka.NewPublisher(kafkaProducer, logger)

	// Use cases.
	engine := usecase.NewBalanceEngine(ledgerReader)
	handler := grpcpresentation.NewLedgerHandler(
		usecase.NewPostJournal(journalRepo, accountRepo, taxRateRepo, periodRepo, eventPublisher, logger, cfg.AllowClosedPostings),
		usecase.NewGetJournal(journalRepo),
		usecase.NewDeleteJournal(journalRepo, periodRepo, eventPublisher, logger),
		usecase.NewTrialBalance(accountRepo, periodRepo, engine),
		usecase.NewGeneralLedger(accountRepo, engine),
		usecase.NewBalanceSheetPL(accountRepo, periodRepo, engine),
		usecase.NewTaxSummary(ledgerReader),
		usecase.NewClosePeriod(accountRepo, periodRepo, journalRepo, engine, eventPublisher, logger),
		usecase.NewLockPeriod(periodRepo, eventPublisher, logger),
	)

	// JWT service (validation-only: public key preferred, secret as fallback).
	jwtCfg := auth.JWTConfig{Issuer: "tally-gateway"}
	if cfg.Auth.PublicKeyPath != "" {
		keyData, loadErr := auth.LoadKeyFromFile(cfg.Auth.PublicKeyPath)
		if loadErr != nil {
			logger.Error("failed to load JWT public key file", "error", loadErr)
			os.Exit(1)
		}
		jwtCfg.PublicKeyPEM = string(keyData)
	} else {
		jwtCfg.Secret = cfg.Auth.Secret
	}
	jwtSvc, err := auth.NewJWTService(jwtCfg)
	if err != nil {
		logger.Error("failed to initialize JWT service", "error", err)
		os.Exit(1)
	}

	grpcServer, err := grpcpresentation.NewServer(handler, cfg.GRPCPort, logger, jwtSvc, meter)
	if err != nil {
		logger.Error("failed to initialize gRPC server", "error", err)
		os.Exit(1)
	}

	// HTTP server: health probes and Prometheus metrics.
	healthHandler := rest.NewHealthHandler(cfg.ServiceName, pool, logger)
	httpMux := http.NewServeMux()
	healthHandler.RegisterRoutes(httpMux)
	httpMux.Handle("GET /metrics", metricsHandler)

	httpServer := &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.HTTPPort),
		Handler:           httpMux,
		ReadHeaderTimeout: 10 * time.Second,
	}

	// Start servers in goroutines.
	errCh := make(chan error, 2)

	go func() {
		if err := grpcServer.Start(); err != nil {
			errCh <- fmt.Errorf("gRPC server error: %w", err)
		}
	}()

	go func() {
		logger.Info("HTTP server starting", "port", cfg.HTTPPort)
		if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errCh <- fmt.Errorf("HTTP server error: %w", err)
		}
	}()

	// Wait for shutdown signal.
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	select {
	case sig := <-sigCh:
		logger.Info("received shutdown signal", "signal", sig)
	case err := <-errCh:
		logger.Error("server error", "error", err)
	}

	// Graceful shutdown.
	logger.Info("shutting down servers")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer shutdownCancel()

	grpcServer.Stop()

	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		logger.Error("failed to shutdown HTTP server", "error", err)
	}
	if err := meterProvider.Shutdown(shutdownCtx); err != nil {
		logger.Error("failed to shutdown meter provider", "error", err)
	}

	logger.Info("ledger service stopped")
}
