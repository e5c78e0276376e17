package config

import (
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/MikeSquared-Agency/Placement/internal/vikor"
)

var envVars = []string{
	"PLACEMENT_PORT", "PLACEMENT_METRICS_PORT", "PLACEMENT_ADMIN_TOKEN", "PLACEMENT_RATE_LIMIT",
	"PLACEMENT_DATABASE_URL", "PLACEMENT_HERMES_URL", "PLACEMENT_SHEETS_CREDENTIALS",
	"PLACEMENT_SPREADSHEET_ID", "PLACEMENT_WEIGHTS", "PLACEMENT_V",
	"PLACEMENT_LOG_LEVEL", "PLACEMENT_LOG_FORMAT",
}

func clearEnv(t *testing.T) {
	t.Helper()
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
	if cfg.Server.RateLimit != 120 {
		t.Errorf("expected rate limit 120, got %d", cfg.Server.RateLimit)
	}
	if cfg.Database.URL != "" {
		t.Errorf("expected in-memory store by default, got %q", cfg.Database.URL)
	}
	if cfg.Hermes.URL != "nats://localhost:4222" {
		t.Errorf("expected nats URL, got %s", cfg.Hermes.URL)
	}
	if cfg.Logging.Level != "info" || cfg.SlogLevel() != slog.LevelInfo {
		t.Errorf("expected log level 'info', got '%s'", cfg.Logging.Level)
	}
	if cfg.Logging.Format != "json" {
		t.Errorf("expected log format 'json', got '%s'", cfg.Logging.Format)
	}

	w, err := cfg.WeightVector()
	if err != nil {
		t.Fatalf("default weights invalid: %v", err)
	}
	if w != vikor.DefaultWeights() {
		t.Errorf("expected default weights, got %v", w)
	}
	if cfg.VIKOR.V != 0.5 {
		t.Errorf("expected v 0.5, got %f", cfg.VIKOR.V)
	}
	if cfg.VIKOR.Thresholds != (vikor.Thresholds{C1: 75, C4: 80}) {
		t.Errorf("unexpected thresholds %+v", cfg.VIKOR.Thresholds)
	}

	opts := cfg.EngineOptions()
	if opts.PriorityWeights != vikor.DefaultPriorityWeights() {
		t.Errorf("unexpected priority weights %+v", opts.PriorityWeights)
	}
}

func TestLoadFromEnv(t *testing.T) {
	clearEnv(t)
	t.Setenv("PLACEMENT_PORT", "9000")
	t.Setenv("PLACEMENT_METRICS_PORT", "9001")
	t.Setenv("PLACEMENT_ADMIN_TOKEN", "secret-token")
	t.Setenv("PLACEMENT_DATABASE_URL", "postgres://localhost/placement_test")
	t.Setenv("PLACEMENT_HERMES_URL", "nats://nats:4222")
	t.Setenv("PLACEMENT_SPREADSHEET_ID", "sheet-123")
	t.Setenv("PLACEMENT_WEIGHTS", "0.2, 0.2, 0.2, 0.2, 0.2")
	t.Setenv("PLACEMENT_V", "0.7")
	t.Setenv("PLACEMENT_LOG_LEVEL", "debug")

	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	if cfg.Server.Port != 9000 {
		t.Errorf("expected port 9000, got %d", cfg.Server.Port)
	}
	if cfg.Server.MetricsPort != 9001 {
		t.Errorf("expected metrics port 9001, got %d", cfg.Server.MetricsPort)
	}
	if cfg.Server.AdminToken != "secret-token" {
		t.Errorf("expected admin token 'secret-token', got '%s'", cfg.Server.AdminToken)
	}
	if cfg.Database.URL != "postgres://localhost/placement_test" {
		t.Errorf("expected database URL, got '%s'", cfg.Database.URL)
	}
	if cfg.Hermes.URL != "nats://nats:4222" {
		t.Errorf("expected hermes URL, got '%s'", cfg.Hermes.URL)
	}
	if cfg.Sheets.SpreadsheetID != "sheet-123" {
		t.Errorf("expected spreadsheet id, got '%s'", cfg.Sheets.SpreadsheetID)
	}
	if w, _ := cfg.WeightVector(); w != (vikor.WeightVector{0.2, 0.2, 0.2, 0.2, 0.2}) {
		t.Errorf("expected equal weights, got %v", w)
	}
	if cfg.VIKOR.V != 0.7 {
		t.Errorf("expected v 0.7, got %f", cfg.VIKOR.V)
	}
	if cfg.SlogLevel() != slog.LevelDebug {
		t.Errorf("expected debug level, got %v", cfg.SlogLevel())
	}
}

func TestLoadFromFile(t *testing.T) {
	clearEnv(t)
	path := filepath.Join(t.TempDir(), "placement.yaml")
	data := `
server:
  port: 8080
vikor:
  v: 0.3
  thresholds:
    c1: 70
    c4: 70
  weights: [0.25, 0.25, 0.1, 0.25, 0.15]
logging:
  format: text
`
	if err := os.WriteFile(path, []byte(data), 0o600); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if cfg.Server.Port != 8080 {
		t.Errorf("expected port 8080, got %d", cfg.Server.Port)
	}
	if cfg.Server.MetricsPort != 8701 {
		t.Errorf("expected default metrics port kept, got %d", cfg.Server.MetricsPort)
	}
	if cfg.VIKOR.Thresholds.C1 != 70 || cfg.VIKOR.Thresholds.C4 != 70 {
		t.Errorf("unexpected thresholds %+v", cfg.VIKOR.Thresholds)
	}
	if cfg.VIKOR.V != 0.3 {
		t.Errorf("expected v 0.3, got %f", cfg.VIKOR.V)
	}
	if cfg.Logging.Format != "text" {
		t.Errorf("expected text format, got %s", cfg.Logging.Format)
	}
}

func TestLoadRejectsInvalid(t *testing.T) {
	tests := []struct {
		name string
		env  map[string]string
		want string
	}{
		{"weights do not sum", map[string]string{"PLACEMENT_WEIGHTS": "0.5,0.5,0.5,0.5,0.5"}, "sum"},
		{"wrong weight count", map[string]string{"PLACEMENT_WEIGHTS": "0.5,0.5"}, "Weights"},
		{"v out of range", map[string]string{"PLACEMENT_V": "1.5"}, "V"},
		{"bad log level", map[string]string{"PLACEMENT_LOG_LEVEL": "loud"}, "Level"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			clearEnv(t)
			for k, v := range tt.env {
				t.Setenv(k, v)
			}
			_, err := Load("")
			if err == nil {
				t.Fatal("expected error")
			}
			if !strings.Contains(err.Error(), tt.want) {
				t.Errorf("expected error mentioning %q, got %v", tt.want, err)
			}
		})
	}
}

func TestLoadMissingFile(t *testing.T) {
	clearEnv(t)
	if _, err := Load(filepath.Join(t.TempDir(), "missing.yaml")); err == nil {
		t.Error("expected error for missing file")
	}
}
