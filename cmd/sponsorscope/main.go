package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/sponsorscope/sponsorscope/internal/api"
	"github.com/sponsorscope/sponsorscope/internal/brandai"
	"github.com/sponsorscope/sponsorscope/internal/bus"
	"github.com/sponsorscope/sponsorscope/internal/config"
	"github.com/sponsorscope/sponsorscope/internal/refresher"
	"github.com/sponsorscope/sponsorscope/internal/scoring"
	"github.com/sponsorscope/sponsorscope/internal/sentiment"
	"github.com/sponsorscope/sponsorscope/internal/simulator"
	"github.com/sponsorscope/sponsorscope/internal/store"
	"github.com/sponsorscope/sponsorscope/internal/youtube"
)

func main() {
	configPath := flag.String("config", "", "path to config file")
	flag.Parse()

	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelInfo}))
	slog.SetDefault(logger)

	cfg, err := config.Load(*configPath)
	if err != nil {
		logger.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Database
	db, err := store.NewPostgresStore(ctx, cfg.Database.URL)
	if err != nil {
		logger.Error("failed to connect to database", "error", err)
		os.Exit(1)
	}
	defer db.Close()
	logger.Info("connected to database")

	// Event bus (optional)
	var busClient bus.Client
	if cfg.Bus.Enabled && cfg.Bus.URL != "" {
		bc, err := bus.NewNATSClient(ctx, cfg.Bus.URL, logger)
		if err != nil {
			logger.Warn("failed to connect to bus, running without events", "error", err)
		} else {
			busClient = bc
			defer bc.Close()
			logger.Info("connected to bus")
		}
	}

	// Platform API
	ytClient := youtube.NewHTTPClient(
		cfg.YouTube.BaseURL,
		cfg.YouTube.APIKey,
		cfg.YouTube.Region,
		cfg.YouTube.Language,
		cfg.YouTube.RequestsPerSecond,
	)

	// Analysis services
	brandClient := brandai.NewHTTPClient(cfg.BrandAI.URL, cfg.BrandAI.Token)
	sentimentClient := sentiment.NewHTTPClient(cfg.Sentiment.URL, cfg.Sentiment.Token)

	// Simulator
	defaults := scoring.WeightConfig{
		Brand:     cfg.Scoring.Weights.Brand,
		Sentiment: cfg.Scoring.Weights.Sentiment,
		ROI:       cfg.Scoring.Weights.ROI,
	}
	if err := defaults.Validate(); err != nil {
		logger.Error("invalid configured weights", "error", err)
		os.Exit(1)
	}
	sim := simulator.New(db, ytClient, brandClient, sentimentClient, busClient, defaults, logger)

	// Catalog refresher
	var refr *refresher.Refresher
	if cfg.Refresher.Enabled {
		refr = refresher.New(db, ytClient, busClient, cfg, logger)
		refr.Start(ctx)
		defer refr.Stop()
		if err := refr.SetupSubscriptions(ctx); err != nil {
			logger.Warn("failed to subscribe to refresh requests", "error", err)
		}
		logger.Info("refresher started", "interval", cfg.Refresher.Interval())
	}

	// API server
	var refresherForAPI api.ChannelRefresher
	if refr != nil {
		refresherForAPI = refr
	}
	router := api.NewRouter(db, sim, refresherForAPI, cfg.Server.AdminToken, logger)
	apiServer := &http.Server{
		Addr:    fmt.Sprintf(":%d", cfg.Server.Port),
		Handler: router,
	}

	// Metrics server
	metricsServer := &http.Server{
		Addr:    fmt.Sprintf(":%d", cfg.Server.MetricsPort),
		Handler: api.NewMetricsRouter(),
	}

	go func() {
		logger.Info("API server starting", "port", cfg.Server.Port)
		if err := apiServer.ListenAndServe(); err != http.ErrServerClosed {
			logger.Error("API server error", "error", err)
		}
	}()

	go func() {
		logger.Info("metrics server starting", "port", cfg.Server.MetricsPort)
		if err := metricsServer.ListenAndServe(); err != http.ErrServerClosed {
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
