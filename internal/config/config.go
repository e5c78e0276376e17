package config

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"strconv"
	"strings"

	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"

	"github.com/MikeSquared-Agency/Placement/internal/vikor"
)

type Config struct {
	Server   ServerConfig   `yaml:"server"`
	Database DatabaseConfig `yaml:"database"`
	Hermes   HermesConfig   `yaml:"hermes"`
	Sheets   SheetsConfig   `yaml:"sheets"`
	VIKOR    VIKORConfig    `yaml:"vikor"`
	Logging  LoggingConfig  `yaml:"logging"`
}

type ServerConfig struct {
	Port          int    `yaml:"port" validate:"min=1,max=65535"`
	MetricsPort   int    `yaml:"metrics_port" validate:"min=1,max=65535"`
	AdminToken    string `yaml:"admin_token"`
	RateLimit     int    `yaml:"rate_limit" validate:"gte=0"`
	MaxStoredRuns int    `yaml:"max_stored_runs" validate:"gte=0"`
}

// DatabaseConfig selects the run store. An empty URL keeps runs in memory.
type DatabaseConfig struct {
	URL string `yaml:"url"`
}

type HermesConfig struct {
	URL string `yaml:"url"`
}

type SheetsConfig struct {
	CredentialsFile string `yaml:"credentials_file"`
	SpreadsheetID   string `yaml:"spreadsheet_id"`
	KriteriaRange   string `yaml:"kriteria_range"`
	JarakRange      string `yaml:"jarak_range"`
}

type VIKORConfig struct {
	Weights         []float64             `yaml:"weights" validate:"len=5,dive,gte=0,lte=1"`
	V               float64               `yaml:"v" validate:"gte=0,lte=1"`
	Thresholds      vikor.Thresholds      `yaml:"thresholds"`
	PriorityWeights vikor.PriorityWeights `yaml:"priority_weights"`
	Parallelism     int                   `yaml:"parallelism" validate:"gte=0"`
}

type LoggingConfig struct {
	Level  string `yaml:"level" validate:"oneof=debug info warn error"`
	Format string `yaml:"format" validate:"oneof=json text"`
}

// WeightVector returns the configured default VIKOR weights.
func (c *Config) WeightVector() (vikor.WeightVector, error) {
	return vikor.NewWeightVector(c.VIKOR.Weights)
}

// EngineOptions builds engine options from the vikor section.
func (c *Config) EngineOptions() vikor.Options {
	opts := vikor.DefaultOptions()
	opts.Thresholds = c.VIKOR.Thresholds
	opts.PriorityWeights = c.VIKOR.PriorityWeights
	opts.Parallelism = c.VIKOR.Parallelism
	return opts
}

func (c *Config) SlogLevel() slog.Level {
	var l slog.Level
	if err := l.UnmarshalText([]byte(c.Logging.Level)); err != nil {
		return slog.LevelInfo
	}
	return l
}

func Load(path string) (*Config, error) {
	cfg := &Config{
		Server: ServerConfig{
			Port:          8700,
			MetricsPort:   8701,
			RateLimit:     120,
			MaxStoredRuns: 200,
		},
		Hermes: HermesConfig{
			URL: "nats://localhost:4222",
		},
		Sheets: SheetsConfig{
			CredentialsFile: "credentials.json",
		},
		VIKOR: VIKORConfig{
			Weights:         vikor.DefaultWeights().Slice(),
			V:               vikor.DefaultV,
			Thresholds:      vikor.DefaultThresholds(),
			PriorityWeights: vikor.DefaultPriorityWeights(),
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
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks field ranges and that both weight sets sum to one.
func (c *Config) Validate() error {
	var problems []string
	if err := validator.New().Struct(c); err != nil {
		var fieldErrs validator.ValidationErrors
		if !errors.As(err, &fieldErrs) {
			return fmt.Errorf("invalid config: %w", err)
		}
		for _, fe := range fieldErrs {
			problems = append(problems, fmt.Sprintf("%s failed '%s' (value %v)", fe.Namespace(), fe.Tag(), fe.Value()))
		}
	}
	if len(c.VIKOR.Weights) == vikor.NumCriteria {
		if _, err := c.WeightVector(); err != nil {
			problems = append(problems, vikor.Problems(err)...)
		}
	}
	if err := c.VIKOR.PriorityWeights.Validate(); err != nil {
		problems = append(problems, err.Error())
	}
	if len(problems) > 0 {
		return fmt.Errorf("invalid config: %s", strings.Join(problems, "; "))
	}
	return nil
}

func applyEnv(cfg *Config) {
	if v := os.Getenv("PLACEMENT_PORT"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			cfg.Server.Port = n
		}
	}
	if v := os.Getenv("PLACEMENT_METRICS_PORT"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			cfg.Server.MetricsPort = n
		}
	}
	if v := os.Getenv("PLACEMENT_ADMIN_TOKEN"); v != "" {
		cfg.Server.AdminToken = v
	}
	if v := os.Getenv("PLACEMENT_RATE_LIMIT"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			cfg.Server.RateLimit = n
		}
	}
	if v := os.Getenv("PLACEMENT_DATABASE_URL"); v != "" {
		cfg.Database.URL = v
	}
	if v := os.Getenv("PLACEMENT_HERMES_URL"); v != "" {
		cfg.Hermes.URL = v
	}
	if v := os.Getenv("PLACEMENT_SHEETS_CREDENTIALS"); v != "" {
		cfg.Sheets.CredentialsFile = v
	}
	if v := os.Getenv("PLACEMENT_SPREADSHEET_ID"); v != "" {
		cfg.Sheets.SpreadsheetID = v
	}
	if v := os.Getenv("PLACEMENT_WEIGHTS"); v != "" {
		var ws []float64
		for _, p := range strings.Split(v, ",") {
			if f, err := strconv.ParseFloat(strings.TrimSpace(p), 64); err == nil {
				ws = append(ws, f)
			}
		}
		cfg.VIKOR.Weights = ws
	}
	if v := os.Getenv("PLACEMENT_V"); v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			cfg.VIKOR.V = f
		}
	}
	if v := os.Getenv("PLACEMENT_LOG_LEVEL"); v != "" {
		cfg.Logging.Level = v
	}
	if v := os.Getenv("PLACEMENT_LOG_FORMAT"); v != "" {
		cfg.Logging.Format = v
	}
}
