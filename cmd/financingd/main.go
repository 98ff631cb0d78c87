package main

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/agrofin/financing-service/internal/application/registry"
	"github.com/agrofin/financing-service/internal/application/usecase"
	"github.com/agrofin/financing-service/internal/domain/port"
	"github.com/agrofin/financing-service/internal/domain/service"
	"github.com/agrofin/financing-service/internal/infrastructure/adapter"
	"github.com/agrofin/financing-service/internal/infrastructure/config"
	"github.com/agrofin/financing-service/internal/infrastructure/kafka"
	pgRepo "github.com/agrofin/financing-service/internal/infrastructure/persistence/postgres"
	grpcPresentation "github.com/agrofin/financing-service/internal/presentation/grpc"
	"github.com/agrofin/financing-service/internal/presentation/rest"
	"github.com/agrofin/financing-service/pkg/auth"
	pkgkafka "github.com/agrofin/financing-service/pkg/kafka"
	"github.com/agrofin/financing-service/pkg/money"
	"github.com/agrofin/financing-service/pkg/observability"
	pkgpostgres "github.com/agrofin/financing-service/pkg/postgres"
)

func main() {
	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	cfg := config.Load()

	logger := observability.InitLogger(observability.LogConfig{
		Level:  cfg.LogLevel,
		Format: cfg.LogFormat,
	})
	slog.SetDefault(logger)

	if err := cfg.Validate(); err != nil {
		logger.Error("invalid configuration", "error", err)
		os.Exit(1)
	}

	logger.Info("starting financing-service",
		"grpc_port", cfg.GRPCPort,
		"metrics_port", cfg.MetricsPort,
	)

	// Metrics exporter.
	meterProvider, metricsHandler, err := observability.InitMetrics(observability.MetricsConfig{
		ServiceName: cfg.ServiceName,
	})
	if err != nil {
		logger.Error("failed to initialize metrics", "error", err)
		os.Exit(1)
	}
	defer func() { _ = meterProvider.Shutdown(context.Background()) }() //nolint:errcheck

	// Database connection.
	dbCtx, dbCancel := context.WithTimeout(ctx, 10*time.Second)
	defer dbCancel()

	pgCfg := pkgpostgres.Config{
		Host:     cfg.DB.Host,
		Port:     cfg.DB.Port,
		User:     cfg.DB.User,
		Password: cfg.DB.Password,
		Database: cfg.DB.Name,
		SSLMode:  cfg.DB.SSLMode,
	}
	pool, err := pkgpostgres.NewPool(dbCtx, pgCfg)
	if err != nil {
		logger.Error("failed to connect to database", "error", err)
		os.Exit(1)
	}
	defer pool.Close()
	logger.Info("connected to database")

	if migErr := pkgpostgres.RunMigrations(pgCfg.DSN(), cfg.MigrationsDir); migErr != nil {
		logger.Warn("migration warning", "error", migErr)
	}

	// Infrastructure adapters.
	dealRepo := pgRepo.NewDealRepo(pool)
	kafkaProducer := pkgkafka.NewProducer(pkgkafka.Config{
		Brokers:       cfg.Kafka.Brokers,
		SASLEnabled:   cfg.Kafka.SASLEnabled,
		SASLMechanism: cfg.Kafka.SASLMechanism,
		SASLUsername:  cfg.Kafka.SASLUsername,
		SASLPassword:  cfg.Kafka.SASLPassword,
		TLS:           cfg.Kafka.TLS,
	})
	defer kafkaProducer.Close()
	publisher := kafka.NewEventPublisher(kafkaProducer, cfg.Kafka.EventsTopic, logger)

	var funds port.FundsAuthority = adapter.NewStubFundsAuthority(money.FromMajorUnits(1_000_000))
	inspection := adapter.NewStubInspectionClient()

	// Registry and domain services.
	dealRegistry, err := registry.NewDealRegistry(ctx, dealRepo)
	if err != nil {
		logger.Error("failed to initialize deal registry", "error", err)
		os.Exit(1)
	}
	calc := service.NewLeaseTermCalculator().
		WithMissedPaymentFee(money.FromMajorUnits(cfg.MissedPaymentFee))

	// Use cases.
	originateUC := usecase.NewOriginateDealUseCase(dealRegistry, publisher)
	applyPaymentUC := usecase.NewApplyPaymentUseCase(dealRegistry, funds, publisher, logger)
	resolveLeaseUC := usecase.NewResolveLeaseTermUseCase(dealRegistry, funds, publisher, calc, logger)
	getDealUC := usecase.NewGetDealUseCase(dealRegistry)
	listDealsUC := usecase.NewListFarmDealsUseCase(dealRegistry)
	getScheduleUC := usecase.NewGetScheduleUseCase(dealRegistry)
	recordMissedUC := usecase.NewRecordMissedPaymentUseCase(dealRegistry, publisher)
	markDefaultUC := usecase.NewMarkDefaultedUseCase(dealRegistry, publisher)
	inspectionUC := usecase.NewGetInspectionOptionsUseCase(inspection)

	// JWT service (validation-only: public key preferred, secret as fallback).
	var jwtSvc *auth.JWTService
	if !cfg.Auth.SkipAuth {
		jwtCfg := auth.JWTConfig{Issuer: "agrofin-gateway"}
		if cfg.Auth.JWTPublicKey != "" {
			keyData, loadErr := auth.LoadKeyFromFile(cfg.Auth.JWTPublicKey)
			if loadErr != nil {
				logger.Error("failed to load JWT public key file", "error", loadErr)
				os.Exit(1)
			}
			jwtCfg.PublicKeyPEM = string(keyData)
		} else {
			jwtCfg.Secret = cfg.Auth.JWTSecret
		}
		jwtSvc, err = auth.NewJWTService(jwtCfg)
		if err != nil {
			logger.Error("failed to initialize JWT service", "error", err)
			os.Exit(1)
		}
	}

	// gRPC server.
	handler := grpcPresentation.NewFinancingHandler(
		originateUC, applyPaymentUC, resolveLeaseUC,
		getDealUC, listDealsUC, getScheduleUC,
		recordMissedUC, markDefaultUC, inspectionUC,
	)
	grpcServer := grpcPresentation.NewServer(handler, logger, jwtSvc, cfg.TLS)

	// HTTP server: health checks and the Prometheus metrics endpoint.
	mux := http.NewServeMux()
	healthHandler := rest.NewHealthHandler(pool, logger)
	healthHandler.RegisterRoutes(mux)
	mux.Handle("GET /metrics", metricsHandler)

	httpServer := &http.Server{
		Addr:              cfg.MetricsAddr(),
		Handler:           mux,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 2)

	go func() {
		if err := grpcServer.Serve(cfg.GRPCAddr()); err != nil {
			errCh <- fmt.Errorf("gRPC server error: %w", err)
		}
	}()

	go func() {
		logger.Info("HTTP server starting", "port", cfg.MetricsPort)
		if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errCh <- fmt.Errorf("HTTP server error: %w", err)
		}
	}()

	select {
	case <-ctx.Done():
		logger.Info("shutdown signal received")
	case err := <-errCh:
		logger.Error("server error", "error", err)
	}

	grpcServer.GracefulStop()

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer shutdownCancel()

	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		logger.Error("HTTP server shutdown error", "error", err)
	}

	logger.Info("financing-service stopped")
}
