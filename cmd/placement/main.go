package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/MikeSquared-Agency/Placement/internal/api"
	"github.com/MikeSquared-Agency/Placement/internal/config"
	"github.com/MikeSquared-Agency/Placement/internal/hermes"
	"github.com/MikeSquared-Agency/Placement/internal/ingest"
	"github.com/MikeSquared-Agency/Placement/internal/metrics"
	"github.com/MikeSquared-Agency/Placement/internal/runner"
	"github.com/MikeSquared-Agency/Placement/internal/store"
	"github.com/MikeSquared-Agency/Placement/internal/vikor"
)

func main() {
	configPath := flag.String("config", "", "path to config file")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	logger := newLogger(cfg)
	slog.SetDefault(logger)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Run store
	var runStore store.Store
	if cfg.Database.URL != "" {
		db, err := store.NewPostgresStore(ctx, cfg.Database.URL)
		if err != nil {
			logger.Error("failed to connect to database", "error", err)
			os.Exit(1)
		}
		if err := db.Migrate(ctx); err != nil {
			logger.Error("failed to migrate database", "error", err)
			os.Exit(1)
		}
		runStore = db
		logger.Info("connected to database")
	} else {
		runStore = store.NewMemoryStore(cfg.Server.MaxStoredRuns)
		logger.Info("no database configured, keeping runs in memory", "max_runs", cfg.Server.MaxStoredRuns)
	}
	defer runStore.Close()

	// Hermes (optional)
	var hermesClient hermes.Client
	if cfg.Hermes.URL != "" {
		hc, err := hermes.NewNATSClient(ctx, cfg.Hermes.URL, logger)
		if err != nil {
			logger.Warn("failed to connect to hermes, running without events", "error", err)
		} else {
			hermesClient = hc
			defer hc.Close()
			logger.Info("connected to hermes")
		}
	}

	// Google Sheets (optional)
	var sheetsService api.SheetsService
	if _, err := os.Stat(cfg.Sheets.CredentialsFile); err == nil {
		client, err := ingest.NewSheetsClient(ctx, cfg.Sheets.CredentialsFile)
		if err != nil {
			logger.Warn("failed to create sheets client, sheets import disabled", "error", err)
		} else {
			sheetsService = ingest.NewSheetsSource(client, cfg.Sheets.KriteriaRange, cfg.Sheets.JarakRange)
			logger.Info("google sheets enabled", "credentials", cfg.Sheets.CredentialsFile)
		}
	} else {
		logger.Info("no sheets credentials found, sheets import disabled", "path", cfg.Sheets.CredentialsFile)
	}

	weights, err := cfg.WeightVector()
	if err != nil {
		logger.Error("invalid default weights", "error", err)
		os.Exit(1)
	}

	engine := vikor.NewEngine(cfg.EngineOptions(), logger)
	m := metrics.New(prometheus.DefaultRegisterer)
	rn := runner.New(engine, runStore, hermesClient, m, runner.Defaults{Weights: weights, V: cfg.VIKOR.V}, logger)

	if hermesClient != nil {
		if err := hermesClient.Subscribe(hermes.SubjectRunRequest, rn.HandleRequest); err != nil {
			logger.Warn("failed to subscribe to run requests", "subject", hermes.SubjectRunRequest, "error", err)
		}
	}

	// API server
	router := api.NewRouter(rn, runStore, sheetsService, api.RouterConfig{
		AdminToken:           cfg.Server.AdminToken,
		RateLimit:            cfg.Server.RateLimit,
		DefaultSpreadsheetID: cfg.Sheets.SpreadsheetID,
	}, logger)
	apiServer := &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.Server.Port),
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	// Metrics server
	metricsServer := &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.Server.MetricsPort),
		Handler:           api.NewMetricsRouter(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		logger.Info("API server starting", "port", cfg.Server.Port)
		if err := apiServer.ListenAndServe(); !errors.Is(err, http.ErrServerClosed) {
			logger.Error("API server error", "error", err)
		}
	}()

	go func() {
		logger.Info("metrics server starting", "port", cfg.Server.MetricsPort)
		if err := metricsServer.ListenAndServe(); !errors.Is(err, http.ErrServerClosed) {
			logger.Error("metrics server error", "error", err)
		}
	}()

	// Graceful shutdown
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	<-sigCh

	logger.Info("shutting down...")
	cancel()

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	_ = apiServer.Shutdown(shutdownCtx)
	_ = metricsServer.Shutdown(shutdownCtx)

	logger.Info("shutdown complete")
}

func newLogger(cfg *config.Config) *slog.Logger {
	opts := &slog.HandlerOptions{Level: cfg.SlogLevel()}
	if cfg.Logging.Format == "text" {
		return slog.New(slog.NewTextHandler(os.Stdout, opts))
	}
	return slog.New(slog.NewJSONHandler(os.Stdout, opts))
}
