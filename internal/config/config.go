package config

import (
	"fmt"
	"strings"

	"github.com/BurntSushi/toml"
)

type Config struct {
	Host        string
	Port        int
	Environment string

	QuotesCsvPath string `toml:"quotes_csv_path"`

	// logging
	LogLevel      string `toml:"log_level"`
	LogsPath      string `toml:"logs_path"`
	LogToStdout   bool   `toml:"log_to_stdout"`
	SentryEnabled bool   `toml:"sentry_enabled"`

	// postgres
	PostgresHost   string `toml:"postgres_host"`
	PostgresPort   string `toml:"postgres_port"`
	PostgresDBName string `toml:"postgres_db_name"`

	// redis
	RedisHost string `toml:"redis_host"`
	RedisPort string `toml:"redis_port"`

	// prometheus metrics server
	PrometheusMetricsHost string `toml:"prometheus_metrics_host"`
	PrometheusMetricsPort string `toml:"prometheus_metrics_port"`

	// rate limits
	LoginRateLimitAllowedPerMin     int `toml:"login_rate_limit_allowed_per_min"`
	RecomputeRateLimitAllowedPerMin int `toml:"recompute_rate_limit_allowed_per_min"`

	// recovery engine inputs
	RecoveryWindowDays int `toml:"recovery_window_days"`

	// workout history backups to google drive
	GDriveBackupEnabled       bool   `toml:"gdrive_backup_enabled"`
	GDriveBackupIntervalHours int    `toml:"gdrive_backup_interval_hours"`
	GDriveCredentialsFile     string `toml:"gdrive_credentials_file"`
	GDriveBackupShareEmail    string `toml:"gdrive_backup_share_email"`

	// spotify soundtrack sync
	SpotifyRedirectURL string `toml:"spotify_redirect_url"`
}

type Toml struct {
	Development *Config
	Production  *Config
}

func (t *Toml) Get(env string) (*Config, error) {
	switch strings.ToLower(env) {
	case "dev", "development":
		return t.Development, nil
	case "prod", "production":
		return t.Production, nil
	default:
		return nil, fmt.Errorf("unknown env: %s", env)
	}
}

// Load reads the TOML config file at path and returns the section for env.
func Load(env, path string) (*Config, error) {
	var tomlCfg Toml
	if _, err := toml.DecodeFile(path, &tomlCfg); err != nil {
		return nil, fmt.Errorf("decode config file %s: %w", path, err)
	}

	cfg, err := tomlCfg.Get(env)
	if err != nil {
		return nil, err
	}
	if cfg == nil {
		return nil, fmt.Errorf("config section for env %s missing", env)
	}

	cfg.Environment = env

	if cfg.QuotesCsvPath == "" {
		cfg.QuotesCsvPath = "./assets/quotes.csv"
	}
	if cfg.RecoveryWindowDays <= 0 {
		cfg.RecoveryWindowDays = 90
	}
	if cfg.LoginRateLimitAllowedPerMin <= 0 {
		cfg.LoginRateLimitAllowedPerMin = 10
	}
	if cfg.RecomputeRateLimitAllowedPerMin <= 0 {
		cfg.RecomputeRateLimitAllowedPerMin = 20
	}
	if cfg.GDriveBackupIntervalHours <= 0 {
		cfg.GDriveBackupIntervalHours = 24
	}

	return cfg, nil
}
