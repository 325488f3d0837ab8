package config

import (
	"math"
	"os"
	"testing"
	"time"
)

func TestLoadDefaults(t *testing.T) {
	// Unset all SCOPE_ env vars to test pure defaults
	envVars := []string{
		"SCOPE_PORT", "SCOPE_METRICS_PORT", "SCOPE_ADMIN_TOKEN",
		"SCOPE_DATABASE_URL", "SCOPE_BUS_URL", "SCOPE_BUS_ENABLED",
		"SCOPE_YOUTUBE_API_KEY", "SCOPE_YOUTUBE_BASE_URL",
		"SCOPE_BRANDAI_URL", "SCOPE_BRANDAI_TOKEN",
		"SCOPE_SENTIMENT_URL", "SCOPE_SENTIMENT_TOKEN",
		"SCOPE_REFRESHER_ENABLED", "SCOPE_REFRESH_INTERVAL_MINUTES", "SCOPE_LOG_LEVEL",
	}
	for _, k := range envVars {
		t.Setenv(k, "")
		os.Unsetenv(k)
	}

	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	if cfg.Server.Port != 8700 {
		t.Errorf("expected port 8700, got %d", cfg.Server.Port)
	}
	if cfg.Server.MetricsPort != 8701 {
		t.Errorf("expected metrics port 8701, got %d", cfg.Server.MetricsPort)
	}
	if cfg.Bus.URL != "nats://localhost:4222" {
		t.Errorf("expected nats URL, got %s", cfg.Bus.URL)
	}
	if !cfg.Bus.Enabled {
		t.Error("expected bus enabled by default")
	}
	if cfg.BrandAI.URL != "http://localhost:8710" {
		t.Errorf("expected brandai URL, got %s", cfg.BrandAI.URL)
	}
	if cfg.Sentiment.URL != "http://localhost:8711" {
		t.Errorf("expected sentiment URL, got %s", cfg.Sentiment.URL)
	}
	if cfg.Logging.Level != "info" {
		t.Errorf("expected log level 'info', got '%s'", cfg.Logging.Level)
	}
	if cfg.Logging.Format != "json" {
		t.Errorf("expected log format 'json', got '%s'", cfg.Logging.Format)
	}

	// Scoring defaults
	sw := cfg.Scoring.Weights
	if sw.Brand != 0.3 || sw.Sentiment != 0.3 || sw.ROI != 0.4 {
		t.Errorf("unexpected default weights: %+v", sw)
	}
	if math.Abs(sw.Brand+sw.Sentiment+sw.ROI-1.0) > 0.001 {
		t.Errorf("default weights sum to %f, expected 1.0", sw.Brand+sw.Sentiment+sw.ROI)
	}

	// Refresher defaults
	if !cfg.Refresher.Enabled {
		t.Error("expected refresher enabled by default")
	}
	if cfg.Refresher.Interval() != 6*time.Hour {
		t.Errorf("expected refresh interval 6h, got %v", cfg.Refresher.Interval())
	}
	if cfg.Refresher.MinSubscribers != 100_000 || cfg.Refresher.MaxSubscribers != 1_000_000 {
		t.Errorf("unexpected subscriber band: %d-%d",
			cfg.Refresher.MinSubscribers, cfg.Refresher.MaxSubscribers)
	}
	if len(cfg.Refresher.Categories) == 0 {
		t.Error("expected default crawl categories")
	}
	if cfg.Refresher.VideosPerChannel != 5 {
		t.Errorf("expected 5 videos per channel, got %d", cfg.Refresher.VideosPerChannel)
	}
}

func TestLoadFromEnv(t *testing.T) {
	t.Setenv("SCOPE_PORT", "9100")
	t.Setenv("SCOPE_METRICS_PORT", "9101")
	t.Setenv("SCOPE_ADMIN_TOKEN", "secret-token")
	t.Setenv("SCOPE_DATABASE_URL", "postgres://localhost/scope_test")
	t.Setenv("SCOPE_BUS_URL", "nats://nats:4222")
	t.Setenv("SCOPE_BUS_ENABLED", "false")
	t.Setenv("SCOPE_YOUTUBE_API_KEY", "yt-key")
	t.Setenv("SCOPE_BRANDAI_URL", "http://brandai:8710")
	t.Setenv("SCOPE_BRANDAI_TOKEN", "brand-secret")
	t.Setenv("SCOPE_SENTIMENT_URL", "http://sentiment:8711")
	t.Setenv("SCOPE_REFRESHER_ENABLED", "false")
	t.Setenv("SCOPE_REFRESH_INTERVAL_MINUTES", "60")
	t.Setenv("SCOPE_LOG_LEVEL", "debug")

	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	if cfg.Server.Port != 9100 {
		t.Errorf("expected port 9100, got %d", cfg.Server.Port)
	}
	if cfg.Server.MetricsPort != 9101 {
		t.Errorf("expected metrics port 9101, got %d", cfg.Server.MetricsPort)
	}
	if cfg.Server.AdminToken != "secret-token" {
		t.Errorf("expected admin token 'secret-token', got '%s'", cfg.Server.AdminToken)
	}
	if cfg.Database.URL != "postgres://localhost/scope_test" {
		t.Errorf("expected database URL, got '%s'", cfg.Database.URL)
	}
	if cfg.Bus.URL != "nats://nats:4222" {
		t.Errorf("expected bus URL, got '%s'", cfg.Bus.URL)
	}
	if cfg.Bus.Enabled {
		t.Error("expected bus disabled")
	}
	if cfg.YouTube.APIKey != "yt-key" {
		t.Errorf("expected api key, got '%s'", cfg.YouTube.APIKey)
	}
	if cfg.BrandAI.URL != "http://brandai:8710" {
		t.Errorf("expected brandai URL, got '%s'", cfg.BrandAI.URL)
	}
	if cfg.BrandAI.Token != "brand-secret" {
		t.Errorf("expected brandai token, got '%s'", cfg.BrandAI.Token)
	}
	if cfg.Sentiment.URL != "http://sentiment:8711" {
		t.Errorf("expected sentiment URL, got '%s'", cfg.Sentiment.URL)
	}
	if cfg.Refresher.Enabled {
		t.Error("expected refresher disabled")
	}
	if cfg.Refresher.IntervalMinutes != 60 {
		t.Errorf("expected interval 60, got %d", cfg.Refresher.IntervalMinutes)
	}
	if cfg.Logging.Level != "debug" {
		t.Errorf("expected log level 'debug', got '%s'", cfg.Logging.Level)
	}
}
