package config

import (
	"fmt"
	"os"
	"strconv"

	"gopkg.in/yaml.v3"
)

type Config struct {
	Server   ServerConfig   `yaml:"server"`
	Database DatabaseConfig `yaml:"database"`
	Events   EventsConfig   `yaml:"events"`
	Catalog  CatalogConfig  `yaml:"catalog"`
	Compare  CompareConfig  `yaml:"compare"`
	Rooms    RoomsConfig    `yaml:"rooms"`
	Scoring  ScoringConfig  `yaml:"scoring"`
	Logging  LoggingConfig  `yaml:"logging"`
}

type ServerConfig struct {
	Port        int    `yaml:"port"`
	MetricsPort int    `yaml:"metrics_port"`
	AdminToken  string `yaml:"admin_token"`
}

type DatabaseConfig struct {
	URL string `yaml:"url"`
}

type EventsConfig struct {
	URL string `yaml:"url"`
}

type CatalogConfig struct {
	URL   string `yaml:"url"`
	Token string `yaml:"token"`
}

type CompareConfig struct {
	RemoteURL    string `yaml:"remote_url"`
	Owner        string `yaml:"owner"`
	HistoryLimit int    `yaml:"history_limit"`
}

type RoomsConfig struct {
	PoolSize  int    `yaml:"pool_size"`
	StatePath string `yaml:"state_path"`
}

type ScoringConfig struct {
	Weights ScoringWeights `yaml:"weights"`
}

type ScoringWeights struct {
	Mileage        float64 `yaml:"mileage"`
	Performance    float64 `yaml:"performance"`
	PriceAdvantage float64 `yaml:"price_advantage"`
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
		Events: EventsConfig{
			URL: "nats://localhost:4222",
		},
		Compare: CompareConfig{
			Owner:        "guest",
			HistoryLimit: 50,
		},
		Rooms: RoomsConfig{
			PoolSize:  5,
			StatePath: "compare_rooms.json",
		},
		Scoring: ScoringConfig{
			Weights: ScoringWeights{
				Mileage:        0.40,
				Performance:    0.40,
				PriceAdvantage: 0.20,
			},
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
	if v := os.Getenv("VERDICT_PORT"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			cfg.Server.Port = n
		}
	}
	if v := os.Getenv("VERDICT_METRICS_PORT"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			cfg.Server.MetricsPort = n
		}
	}
	if v := os.Getenv("VERDICT_ADMIN_TOKEN"); v != "" {
		cfg.Server.AdminToken = v
	}
	if v := os.Getenv("VERDICT_DATABASE_URL"); v != "" {
		cfg.Database.URL = v
	}
	if v := os.Getenv("VERDICT_EVENTS_URL"); v != "" {
		cfg.Events.URL = v
	}
	if v := os.Getenv("VERDICT_CATALOG_URL"); v != "" {
		cfg.Catalog.URL = v
	}
	if v := os.Getenv("VERDICT_CATALOG_TOKEN"); v != "" {
		cfg.Catalog.Token = v
	}
	if v := os.Getenv("VERDICT_REMOTE_URL"); v != "" {
		cfg.Compare.RemoteURL = v
	}
	if v := os.Getenv("VERDICT_OWNER"); v != "" {
		cfg.Compare.Owner = v
	}
	if v := os.Getenv("VERDICT_ROOM_POOL_SIZE"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			cfg.Rooms.PoolSize = n
		}
	}
	if v := os.Getenv("VERDICT_ROOM_STATE_PATH"); v != "" {
		cfg.Rooms.StatePath = v
	}
	if v := os.Getenv("VERDICT_LOG_LEVEL"); v != "" {
		cfg.Logging.Level = v
	}
}
