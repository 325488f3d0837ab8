package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"gopkg.in/yaml.v3"
)

type Config struct {
	Server    ServerConfig    `yaml:"server"`
	Database  DatabaseConfig  `yaml:"database"`
	Bus       BusConfig       `yaml:"bus"`
	YouTube   YouTubeConfig   `yaml:"youtube"`
	BrandAI   BrandAIConfig   `yaml:"brandai"`
	Sentiment SentimentConfig `yaml:"sentiment"`
	Scoring   ScoringConfig   `yaml:"scoring"`
	Refresher RefresherConfig `yaml:"refresher"`
	Logging   LoggingConfig   `yaml:"logging"`
}

type ServerConfig struct {
	Port        int    `yaml:"port"`
	MetricsPort int    `yaml:"metrics_port"`
	AdminToken  string `yaml:"admin_token"`
}

type DatabaseConfig struct {
	URL string `yaml:"url"`
}

type BusConfig struct {
	URL     string `yaml:"url"`
	Enabled bool   `yaml:"enabled"`
}

type YouTubeConfig struct {
	BaseURL           string  `yaml:"base_url"`
	APIKey            string  `yaml:"api_key"`
	Region            string  `yaml:"region"`
	Language          string  `yaml:"language"`
	RequestsPerSecond float64 `yaml:"requests_per_second"`
}

type BrandAIConfig struct {
	URL   string `yaml:"url"`
	Token string `yaml:"token"`
}

type SentimentConfig struct {
	URL   string `yaml:"url"`
	Token string `yaml:"token"`
}

type ScoringConfig struct {
	Weights ScoringWeights `yaml:"weights"`
}

type ScoringWeights struct {
	Brand     float64 `yaml:"brand"`
	Sentiment float64 `yaml:"sentiment"`
	ROI       float64 `yaml:"roi"`
}

type RefresherConfig struct {
	Enabled             bool              `yaml:"enabled"`
	IntervalMinutes     int               `yaml:"interval_minutes"`
	Categories          map[string]string `yaml:"categories"`
	ChannelsPerCategory int               `yaml:"channels_per_category"`
	VideosPerChannel    int               `yaml:"videos_per_channel"`
	MinSubscribers      int64             `yaml:"min_subscribers"`
	MaxSubscribers      int64             `yaml:"max_subscribers"`
}

func (r RefresherConfig) Interval() time.Duration {
	return time.Duration(r.IntervalMinutes) * time.Minute
}

type LoggingConfig struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"`
}

func Load(path string) (*Config, error) {
	cfg := &Config{
		Server: ServerConfig{
			Port:        8700,
			MetricsPort: 8701,
		},
		Bus: BusConfig{
			URL:     "nats://localhost:4222",
			Enabled: true,
		},
		YouTube: YouTubeConfig{
			Region:            "US",
			Language:          "en",
			RequestsPerSecond: 5,
		},
		BrandAI: BrandAIConfig{
			URL: "http://localhost:8710",
		},
		Sentiment: SentimentConfig{
			URL: "http://localhost:8711",
		},
		Scoring: ScoringConfig{
			Weights: ScoringWeights{
				Brand:     0.3,
				Sentiment: 0.3,
				ROI:       0.4,
			},
		},
		Refresher: RefresherConfig{
			Enabled:         true,
			IntervalMinutes: 360,
			Categories: map[string]string{
				"tech":      "tech review",
				"gaming":    "gaming",
				"beauty":    "beauty makeup",
				"food":      "food cooking",
				"fitness":   "fitness workout",
				"education": "education lecture",
				"music":     "music cover",
				"travel":    "travel vlog",
			},
			ChannelsPerCategory: 50,
			VideosPerChannel:    5,
			MinSubscribers:      100_000,
			MaxSubscribers:      1_000_000,
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "json",
		},
	}

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("read config: %w", err)
		}
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parse config: %w", err)
		}
	}

	applyEnv(cfg)
	return cfg, nil
}

func applyEnv(cfg *Config) {
	if v := os.Getenv("SCOPE_PORT"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			cfg.Server.Port = n
		}
	}
	if v := os.Getenv("SCOPE_METRICS_PORT"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			cfg.Server.MetricsPort = n
		}
	}
	if v := os.Getenv("SCOPE_ADMIN_TOKEN"); v != "" {
		cfg.Server.AdminToken = v
	}
	if v := os.Getenv("SCOPE_DATABASE_URL"); v != "" {
		cfg.Database.URL = v
	}
	if v := os.Getenv("SCOPE_BUS_URL"); v != "" {
		cfg.Bus.URL = v
	}
	if v := os.Getenv("SCOPE_BUS_ENABLED"); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			cfg.Bus.Enabled = b
		}
	}
	if v := os.Getenv("SCOPE_YOUTUBE_API_KEY"); v != "" {
		cfg.YouTube.APIKey = v
	}
	if v := os.Getenv("SCOPE_YOUTUBE_BASE_URL"); v != "" {
		cfg.YouTube.BaseURL = v
	}
	if v := os.Getenv("SCOPE_BRANDAI_URL"); v != "" {
		cfg.BrandAI.URL = v
	}
	if v := os.Getenv("SCOPE_BRANDAI_TOKEN"); v != "" {
		cfg.BrandAI.Token = v
	}
	if v := os.Getenv("SCOPE_SENTIMENT_URL"); v != "" {
		cfg.Sentiment.URL = v
	}
	if v := os.Getenv("SCOPE_SENTIMENT_TOKEN"); v != "" {
		cfg.Sentiment.Token = v
	}
	if v := os.Getenv("SCOPE_REFRESHER_ENABLED"); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			cfg.Refresher.Enabled = b
		}
	}
	if v := os.Getenv("SCOPE_REFRESH_INTERVAL_MINUTES"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			cfg.Refresher.IntervalMinutes = n
		}
	}
	if v := os.Getenv("SCOPE_LOG_LEVEL"); v != "" {
		cfg.Logging.Level = v
	}
}
