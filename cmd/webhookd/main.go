package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	"github.com/impulso-stone/webhook-service/internal/api"
	"github.com/impulso-stone/webhook-service/internal/clock/system"
	"github.com/impulso-stone/webhook-service/internal/config"
	"github.com/impulso-stone/webhook-service/internal/forward"
	"github.com/impulso-stone/webhook-service/internal/ingest"
	"github.com/impulso-stone/webhook-service/internal/logging"
	"github.com/impulso-stone/webhook-service/internal/storage/postgres"
	"github.com/impulso-stone/webhook-service/internal/telemetry"
)

func main() {
	cfgPath := flag.String("config", "", "Path to config file")
	flag.Parse()

	cfg, err := config.Load(*cfgPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "load config failed: %v\n", err)
		os.Exit(1)
	}
	logger, err := logging.New(cfg.Logging.Development)
	if err != nil {
		fmt.Fprintf(os.Stderr, "logger init failed: %v\n", err)
		os.Exit(1)
	}
	defer func() {
		if syncErr := logger.Sync(); syncErr != nil {
			fmt.Fprintf(os.Stderr, "logger sync failed: %v\n", syncErr)
		}
	}()
	zap.ReplaceGlobals(logger)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	telemetry.Init()
	clock := system.New()

	repo, err := postgres.NewEntrepreneurStore(ctx, postgres.EntrepreneurStoreConfig{
		DSN:             cfg.DB.DSN,
		Table:           cfg.DB.Table,
		MaxConns:        cfg.DB.MaxConns,
		MinConns:        cfg.DB.MinConns,
		MaxConnLifetime: time.Duration(cfg.DB.MaxConnLifetime) * time.Second,
	}, clock)
	if err != nil {
		logger.Fatal("store init failed", zap.Error(err))
	}
	defer repo.Close()

	mapper := ingest.NewMapper(logger.Named("mapper"))
	normalizer := ingest.NewNormalizer(clock, logger.Named("normalizer"))
	forwarder := forward.New(cfg.Forwarder.URL, cfg.ForwarderTimeout(), logger.Named("forward"))

	apiServer := api.NewServer(
		repo,
		mapper,
		normalizer,
		forwarder,
		logger.Named("api"),
		cfg.RequestTimeout(),
	)

	srv := &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.Server.Port),
		Handler:           apiServer.Handler(),
		ReadHeaderTimeout: 5 * time.Second,
	}

	go func() {
		logger.Info("http server started", zap.Int("port", cfg.Server.Port))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("http server error", zap.Error(err))
			stop()
		}
	}()

	<-ctx.Done()
	logger.Info("shutdown initiated")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("server shutdown error", zap.Error(err))
	}
	logger.Info("shutdown complete")
}
