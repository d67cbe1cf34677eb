// Package config provides configuration management for the ETL worker.
package config

import (
	"errors"
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

// Configuration validation errors.
var (
	ErrMissingBaseURL           = errors.New("scraper.base_url is required")
	ErrInvalidTotalPages        = errors.New("scraper.total_pages must be at least 1")
	ErrInvalidMaxAttempts       = errors.New("retry.max_attempts must be at least 1")
	ErrInvalidInitialDelay      = errors.New("retry.initial_delay_ms must be non-negative")
	ErrInvalidBackoffMultiplier = errors.New("retry.backoff_multiplier must be >= 1.0")
	ErrInvalidTimeout           = errors.New("retry.timeout_sec must be at least 1")
	ErrInvalidCurrencyRate      = errors.New("transform.currency_rate must be positive")
	ErrNoEnabledSinks           = errors.New("at least one sink must be enabled")
	ErrMissingCSVFilename       = errors.New("sinks.csv.filename is required when the csv sink is enabled")
	ErrMissingPostgresTable     = errors.New("sinks.postgres.table is required when the postgres sink is enabled")
	ErrInvalidWritePolicy       = errors.New("sinks.postgres.if_exists must be one of: replace, append, fail")
	ErrInvalidLogLevel          = errors.New("logging.level must be one of: debug, info, warn, error")
)

// Environment variables that override secret-bearing settings.
const (
	EnvSheetsCredentials = "ETL_SHEETS_CREDENTIALS"
	EnvPostgresPassword  = "ETL_POSTGRES_PASSWORD"
)

// Config represents the complete ETL worker configuration.
type Config struct {
	Scraper   ScraperConfig   `yaml:"scraper"`
	Transform TransformConfig `yaml:"transform"`
	Sinks     SinksConfig     `yaml:"sinks"`
	Logging   LoggingConfig   `yaml:"logging"`
}

// ScraperConfig contains extraction settings.
type ScraperConfig struct {
	BaseURL      string      `yaml:"base_url"`
	TotalPages   int         `yaml:"total_pages"`
	PageDelayMs  int         `yaml:"page_delay_ms"`
	BufferSizeKb int         `yaml:"buffer_size_kb"`
	Retry        RetryPolicy `yaml:"retry"`
}

// RetryPolicy defines retry behavior for page fetches.
type RetryPolicy struct {
	MaxAttempts       int     `yaml:"max_attempts"`
	InitialDelayMs    int     `yaml:"initial_delay_ms"`
	MaxDelayMs        int     `yaml:"max_delay_ms"`
	BackoffMultiplier float64 `yaml:"backoff_multiplier"`
	TimeoutSec        int     `yaml:"timeout_sec"`
}

// GetRetryDelay calculates exponential backoff delay for attempt number.
func (rp *RetryPolicy) GetRetryDelay(attempt int) time.Duration {
	if attempt <= 1 {
		return 0
	}

	delayMs := float64(rp.InitialDelayMs)
	for i := 1; i < attempt; i++ {
		delayMs *= rp.BackoffMultiplier
	}

	// Cap at max delay
	if int(delayMs) > rp.MaxDelayMs {
		delayMs = float64(rp.MaxDelayMs)
	}

	return time.Duration(int(delayMs)) * time.Millisecond
}

// GetTimeout returns the per-request timeout duration.
func (rp *RetryPolicy) GetTimeout() time.Duration {
	return time.Duration(rp.TimeoutSec) * time.Second
}

// TransformConfig contains the normalization settings.
type TransformConfig struct {
	CurrencyRate  float64             `yaml:"currency_rate"`
	DirtyPatterns map[string][]string `yaml:"dirty_patterns"`
}

// SinksConfig groups the three load destinations.
type SinksConfig struct {
	CSV      CSVSinkConfig      `yaml:"csv"`
	Sheets   SheetsSinkConfig   `yaml:"sheets"`
	Postgres PostgresSinkConfig `yaml:"postgres"`
}

// CSVSinkConfig configures the flat-file sink.
type CSVSinkConfig struct {
	Enabled  bool   `yaml:"enabled"`
	Dir      string `yaml:"dir"`
	Filename string `yaml:"filename"`
}

// SheetsSinkConfig configures the Google Sheets sink.
type SheetsSinkConfig struct {
	Enabled         bool   `yaml:"enabled"`
	CredentialsFile string `yaml:"credentials_file"`
	SpreadsheetID   string `yaml:"spreadsheet_id"`
	SheetName       string `yaml:"sheet_name"`
	CreateIfMissing *bool  `yaml:"create_if_missing"`
}

// ShouldCreate reports whether a missing spreadsheet may be created.
// Unset means yes.
func (s *SheetsSinkConfig) ShouldCreate() bool {
	return s.CreateIfMissing == nil || *s.CreateIfMissing
}

// PostgresSinkConfig configures the database sink.
type PostgresSinkConfig struct {
	Enabled  bool   `yaml:"enabled"`
	Host     string `yaml:"host"`
	Port     int    `yaml:"port"`
	Database string `yaml:"database"`
	User     string `yaml:"user"`
	Password string `yaml:"password"`
	SSLMode  string `yaml:"sslmode"`
	Table    string `yaml:"table"`
	Schema   string `yaml:"schema"`
	IfExists string `yaml:"if_exists"`
}

// LoggingConfig defines logging behavior.
type LoggingConfig struct {
	Level string `yaml:"level"`
	JSON  bool   `yaml:"json"`
}

// DefaultConfig returns the configuration used when no file is given.
func DefaultConfig() *Config {
	cfg := &Config{}
	cfg.applyDefaults()
	cfg.Sinks.CSV.Enabled = true

	return cfg
}

// DefaultDirtyPatterns returns the placeholder strings that mark a raw
// record as dirty, keyed by column.
func DefaultDirtyPatterns() map[string][]string {
	return map[string][]string{
		"title":  {"Unknown Product", "N/A", ""},
		"rating": {"Invalid Rating / 5", "Not Rated", "N/A", ""},
		"price":  {"Price Unavailable", "N/A", ""},
	}
}

// LoadConfig loads configuration from a YAML file, applies defaults and
// environment overrides, and validates the result.
func LoadConfig(filepath string) (*Config, error) {
	data, err := os.ReadFile(filepath)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse YAML: %w", err)
	}

	cfg.applyDefaults()
	cfg.applyEnvOverrides()

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	return &cfg, nil
}

// SaveConfig saves configuration to a YAML file.
func (c *Config) SaveConfig(filepath string) error {
	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	if err := os.WriteFile(filepath, data, 0644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	return nil
}

func (c *Config) applyDefaults() {
	if c.Scraper.BaseURL == "" {
		c.Scraper.BaseURL = "https://fashion-studio.dicoding.dev"
	}

	if c.Scraper.TotalPages == 0 {
		c.Scraper.TotalPages = 50
	}

	if c.Scraper.BufferSizeKb == 0 {
		c.Scraper.BufferSizeKb = 1024
	}

	if c.Scraper.Retry.MaxAttempts == 0 {
		c.Scraper.Retry = RetryPolicy{
			MaxAttempts:       3,
			InitialDelayMs:    500,
			MaxDelayMs:        30000,
			BackoffMultiplier: 2.0,
			TimeoutSec:        10,
		}
	}

	if c.Transform.CurrencyRate == 0 {
		c.Transform.CurrencyRate = 16000
	}

	if c.Transform.DirtyPatterns == nil {
		c.Transform.DirtyPatterns = DefaultDirtyPatterns()
	}

	if c.Sinks.CSV.Dir == "" {
		c.Sinks.CSV.Dir = "./data"
	}

	if c.Sinks.CSV.Filename == "" {
		c.Sinks.CSV.Filename = "products.csv"
	}

	if c.Sinks.Sheets.SheetName == "" {
		c.Sinks.Sheets.SheetName = "Products"
	}

	if c.Sinks.Postgres.Port == 0 {
		c.Sinks.Postgres.Port = 5432
	}

	if c.Sinks.Postgres.SSLMode == "" {
		c.Sinks.Postgres.SSLMode = "disable"
	}

	if c.Sinks.Postgres.Schema == "" {
		c.Sinks.Postgres.Schema = "public"
	}

	if c.Sinks.Postgres.IfExists == "" {
		c.Sinks.Postgres.IfExists = "replace"
	}

	if c.Logging.Level == "" {
		c.Logging.Level = "info"
	}
}

func (c *Config) applyEnvOverrides() {
	if v := os.Getenv(EnvSheetsCredentials); v != "" {
		c.Sinks.Sheets.CredentialsFile = v
	}

	if v := os.Getenv(EnvPostgresPassword); v != "" {
		c.Sinks.Postgres.Password = v
	}
}

// Validate validates the configuration.
func (c *Config) Validate() error {
	if c.Scraper.BaseURL == "" {
		return ErrMissingBaseURL
	}

	if c.Scraper.TotalPages < 1 {
		return ErrInvalidTotalPages
	}

	if c.Scraper.Retry.MaxAttempts < 1 {
		return ErrInvalidMaxAttempts
	}

	if c.Scraper.Retry.InitialDelayMs < 0 {
		return ErrInvalidInitialDelay
	}

	if c.Scraper.Retry.BackoffMultiplier < 1.0 {
		return ErrInvalidBackoffMultiplier
	}

	if c.Scraper.Retry.TimeoutSec < 1 {
		return ErrInvalidTimeout
	}

	if c.Transform.CurrencyRate <= 0 {
		return ErrInvalidCurrencyRate
	}

	if !c.Sinks.CSV.Enabled && !c.Sinks.Sheets.Enabled && !c.Sinks.Postgres.Enabled {
		return ErrNoEnabledSinks
	}

	if c.Sinks.CSV.Enabled && c.Sinks.CSV.Filename == "" {
		return ErrMissingCSVFilename
	}

	if c.Sinks.Postgres.Enabled {
		if c.Sinks.Postgres.Table == "" {
			return ErrMissingPostgresTable
		}

		switch c.Sinks.Postgres.IfExists {
		case "replace", "append", "fail":
		default:
			return fmt.Errorf("%w: got %q", ErrInvalidWritePolicy, c.Sinks.Postgres.IfExists)
		}
	}

	validLevels := map[string]bool{"debug": true, "info": true, "warn": true, "error": true}
	if !validLevels[c.Logging.Level] {
		return ErrInvalidLogLevel
	}

	return nil
}

// EnabledSinks returns the names of all enabled sinks.
func (c *Config) EnabledSinks() []string {
	var enabled []string

	if c.Sinks.CSV.Enabled {
		enabled = append(enabled, "csv")
	}

	if c.Sinks.Sheets.Enabled {
		enabled = append(enabled, "sheets")
	}

	if c.Sinks.Postgres.Enabled {
		enabled = append(enabled, "postgres")
	}

	return enabled
}

// PageURL builds the catalog URL for the given 1-based page number.
func (c *Config) PageURL(page int) string {
	if page <= 1 {
		return c.Scraper.BaseURL
	}

	return fmt.Sprintf("%s/page%d", c.Scraper.BaseURL, page)
}

// String returns a string representation of the config.
func (c *Config) String() string {
	return fmt.Sprintf(
		"Config{BaseURL: %s, Pages: %d, Sinks: %v}",
		c.Scraper.BaseURL,
		c.Scraper.TotalPages,
		c.EnabledSinks(),
	)
}
