package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"gopkg.in/yaml.v3"
)

// Config is the full process configuration. Defaults are overlaid by an
// optional YAML file (CONFIG_FILE), then by environment variables, so a
// deployment can pin everything in the file and still override per-instance
// values through the environment.
type Config struct {
	HTTPAddr    string   `yaml:"http_addr"`
	LogLevel    string   `yaml:"log_level"`
	CORSOrigins []string `yaml:"cors_origins"`
	DB          DB       `yaml:"db"`
	Engine      Engine   `yaml:"engine"`
	SeedDemo    bool     `yaml:"seed_demo_data"`
}

type DB struct {
	Driver string `yaml:"driver"` // "postgres" or "sqlite"
	DSN    string `yaml:"dsn"`
}

// Engine tunes the scenario engine itself.
type Engine struct {
	// DataLagThresholdSeconds is the skew between the canonical ledger's
	// update time and its datalake replica beyond which a missing internal
	// record is attributed to replication lag rather than a true gap.
	DataLagThresholdSeconds int64 `yaml:"data_lag_threshold_seconds"`
	// JoinWorkers caps the parallel per-record-type fetches in one join.
	JoinWorkers int `yaml:"join_workers"`
	// FetchTimeoutSeconds bounds each individual per-type fetch.
	FetchTimeoutSeconds int `yaml:"fetch_timeout_seconds"`
}

func (e Engine) DataLagThreshold() time.Duration {
	return time.Duration(e.DataLagThresholdSeconds) * time.Second
}

func (e Engine) FetchTimeout() time.Duration {
	return time.Duration(e.FetchTimeoutSeconds) * time.Second
}

func defaults() *Config {
	return &Config{
		HTTPAddr:    ":8080",
		LogLevel:    "info",
		CORSOrigins: []string{"http://localhost:3000"},
		DB: DB{
			Driver: "sqlite",
			DSN:    "recon_analysis.sqlite",
		},
		Engine: Engine{
			DataLagThresholdSeconds: 3600,
			JoinWorkers:             4,
			FetchTimeoutSeconds:     10,
		},
	}
}

// Load assembles the configuration. The YAML file named by CONFIG_FILE is
// optional; a missing file is only an error when it was explicitly requested.
func Load() (*Config, error) {
	cfg := defaults()

	if path := os.Getenv("CONFIG_FILE"); path != "" {
		raw, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("read config file: %w", err)
		}
		if err := yaml.Unmarshal(raw, cfg); err != nil {
			return nil, fmt.Errorf("parse config file %s: %w", path, err)
		}
	}

	applyEnv(cfg)

	if cfg.DB.Driver != "postgres" && cfg.DB.Driver != "sqlite" {
		return nil, fmt.Errorf("unsupported db driver %q", cfg.DB.Driver)
	}
	return cfg, nil
}

func applyEnv(cfg *Config) {
	setString(&cfg.HTTPAddr, "HTTP_ADDR")
	setString(&cfg.LogLevel, "LOG_LEVEL")
	setString(&cfg.DB.Driver, "DB_DRIVER")
	setString(&cfg.DB.DSN, "DB_DSN")
	setInt64(&cfg.Engine.DataLagThresholdSeconds, "DATA_LAG_THRESHOLD_SECONDS")
	setInt(&cfg.Engine.JoinWorkers, "JOIN_WORKERS")
	setInt(&cfg.Engine.FetchTimeoutSeconds, "FETCH_TIMEOUT_SECONDS")
	if v := os.Getenv("SEED_DEMO_DATA"); v != "" {
		cfg.SeedDemo, _ = strconv.ParseBool(v)
	}
}

func setString(dst *string, key string) {
	if v := os.Getenv(key); v != "" {
		*dst = v
	}
}

func setInt(dst *int, key string) {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			*dst = n
		}
	}
}

func setInt64(dst *int64, key string) {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.ParseInt(v, 10, 64); err == nil {
			*dst = n
		}
	}
}
