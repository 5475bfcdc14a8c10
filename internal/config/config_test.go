package config

import (
	"math"
	"os"
	"path/filepath"
	"testing"
)

func clearEnv(t *testing.T) {
	t.Helper()
	envVars := []string{
		"VERDICT_PORT", "VERDICT_METRICS_PORT", "VERDICT_ADMIN_TOKEN",
		"VERDICT_DATABASE_URL", "VERDICT_EVENTS_URL", "VERDICT_CATALOG_URL",
		"VERDICT_CATALOG_TOKEN", "VERDICT_REMOTE_URL", "VERDICT_OWNER",
		"VERDICT_ROOM_POOL_SIZE", "VERDICT_ROOM_STATE_PATH", "VERDICT_LOG_LEVEL",
	}
	for _, k := range envVars {
		t.Setenv(k, "")
		os.Unsetenv(k)
	}
}

func TestLoadDefaults(t *testing.T) {
	clearEnv(t)

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
	if cfg.Events.URL != "nats://localhost:4222" {
		t.Errorf("expected nats URL, got %s", cfg.Events.URL)
	}
	if cfg.Compare.Owner != "guest" {
		t.Errorf("expected owner 'guest', got '%s'", cfg.Compare.Owner)
	}
	if cfg.Compare.HistoryLimit != 50 {
		t.Errorf("expected history limit 50, got %d", cfg.Compare.HistoryLimit)
	}
	if cfg.Rooms.PoolSize != 5 {
		t.Errorf("expected pool size 5, got %d", cfg.Rooms.PoolSize)
	}
	if cfg.Rooms.StatePath != "compare_rooms.json" {
		t.Errorf("expected state path 'compare_rooms.json', got '%s'", cfg.Rooms.StatePath)
	}
	if cfg.Logging.Level != "info" {
		t.Errorf("expected log level 'info', got '%s'", cfg.Logging.Level)
	}
	if cfg.Logging.Format != "json" {
		t.Errorf("expected log format 'json', got '%s'", cfg.Logging.Format)
	}

	w := cfg.Scoring.Weights
	sum := w.Mileage + w.Performance + w.PriceAdvantage
	if math.Abs(sum-1.0) > 0.001 {
		t.Errorf("default weights sum to %f, expected 1.0", sum)
	}
	if math.Abs(w.Mileage-0.40) > 0.001 || math.Abs(w.Performance-0.40) > 0.001 || math.Abs(w.PriceAdvantage-0.20) > 0.001 {
		t.Errorf("unexpected default weights: %+v", w)
	}
}

func TestLoadFromFile(t *testing.T) {
	clearEnv(t)

	path := filepath.Join(t.TempDir(), "config.yaml")
	yaml := `
server:
  port: 9100
  admin_token: file-token
compare:
  remote_url: http://verdict.internal:8080
  history_limit: 10
rooms:
  pool_size: 3
scoring:
  weights:
    mileage: 0.5
    performance: 0.3
    price_advantage: 0.2
`
	if err := os.WriteFile(path, []byte(yaml), 0o644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	if cfg.Server.Port != 9100 {
		t.Errorf("expected port 9100, got %d", cfg.Server.Port)
	}
	if cfg.Server.AdminToken != "file-token" {
		t.Errorf("expected admin token from file, got '%s'", cfg.Server.AdminToken)
	}
	if cfg.Compare.RemoteURL != "http://verdict.internal:8080" {
		t.Errorf("unexpected remote URL: %s", cfg.Compare.RemoteURL)
	}
	if cfg.Compare.HistoryLimit != 10 {
		t.Errorf("expected history limit 10, got %d", cfg.Compare.HistoryLimit)
	}
	if cfg.Rooms.PoolSize != 3 {
		t.Errorf("expected pool size 3, got %d", cfg.Rooms.PoolSize)
	}
	if math.Abs(cfg.Scoring.Weights.Mileage-0.5) > 0.001 {
		t.Errorf("expected mileage weight 0.5, got %f", cfg.Scoring.Weights.Mileage)
	}
	// Untouched sections keep their defaults.
	if cfg.Server.MetricsPort != 8701 {
		t.Errorf("expected default metrics port, got %d", cfg.Server.MetricsPort)
	}
}

func TestEnvOverridesFile(t *testing.T) {
	clearEnv(t)

	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte("server:\n  port: 9100\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	t.Setenv("VERDICT_PORT", "9200")
	t.Setenv("VERDICT_DATABASE_URL", "postgres://env/verdict")
	t.Setenv("VERDICT_OWNER", "mike")
	t.Setenv("VERDICT_ROOM_POOL_SIZE", "7")

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	if cfg.Server.Port != 9200 {
		t.Errorf("env should override file: expected 9200, got %d", cfg.Server.Port)
	}
	if cfg.Database.URL != "postgres://env/verdict" {
		t.Errorf("unexpected database URL: %s", cfg.Database.URL)
	}
	if cfg.Compare.Owner != "mike" {
		t.Errorf("expected owner 'mike', got '%s'", cfg.Compare.Owner)
	}
	if cfg.Rooms.PoolSize != 7 {
		t.Errorf("expected pool size 7, got %d", cfg.Rooms.PoolSize)
	}
}

func TestLoadMissingFile(t *testing.T) {
	clearEnv(t)

	if _, err := Load(filepath.Join(t.TempDir(), "nope.yaml")); err == nil {
		t.Error("expected error for missing config file")
	}
}
