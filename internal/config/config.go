// Package config provides the configuration for the showtimes search service.
package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	serrors "github.com/chronoworld/showtimes/internal/errors"
)

// DefaultTableName is the table scanned when TABLE_NAME is not set.
const DefaultTableName = "ChronoWorldShowtimes"

// Config holds the configuration for the search handler and its entry points.
// It is populated once at startup and passed to the components that need it.
type Config struct {
	// Table configuration
	Table TableConfig `json:"table" yaml:"table"`

	// Log configuration
	Log LogConfig `json:"log" yaml:"log"`

	// HTTP configuration for the local server
	HTTP HTTPConfig `json:"http" yaml:"http"`
}

// TableConfig holds DynamoDB table configuration.
type TableConfig struct {
	// Name is the DynamoDB table name
	Name string `json:"name" yaml:"name"`

	// Region is the AWS region; empty uses the SDK default chain
	Region string `json:"region" yaml:"region"`

	// Endpoint is a custom DynamoDB endpoint (DynamoDB Local, LocalStack)
	Endpoint string `json:"endpoint" yaml:"endpoint"`

	// ScanAllPages follows LastEvaluatedKey instead of reading only the first page
	ScanAllPages bool `json:"scan_all_pages" yaml:"scan_all_pages"`
}

// LogConfig holds logging configuration.
type LogConfig struct {
	// Level is one of trace, debug, info, warn, error
	Level string `json:"level" yaml:"level"`

	// Format is json or console
	Format string `json:"format" yaml:"format"`
}

// HTTPConfig holds HTTP server configuration.
type HTTPConfig struct {
	// Addr is the listen address
	Addr string `json:"addr" yaml:"addr"`

	// ReadTimeout is the HTTP read timeout
	ReadTimeout time.Duration `json:"read_timeout" yaml:"read_timeout"`

	// WriteTimeout is the HTTP write timeout
	WriteTimeout time.Duration `json:"write_timeout" yaml:"write_timeout"`

	// IdleTimeout is the HTTP idle timeout
	IdleTimeout time.Duration `json:"idle_timeout" yaml:"idle_timeout"`
}

// DefaultConfig returns the default configuration.
func DefaultConfig() *Config {
	return &Config{
		Table: TableConfig{
			Name: DefaultTableName,
		},
		Log: LogConfig{
			Level:  "info",
			Format: "json",
		},
		HTTP: HTTPConfig{
			Addr:         ":8080",
			ReadTimeout:  30 * time.Second,
			WriteTimeout: 60 * time.Second,
			IdleTimeout:  120 * time.Second,
		},
	}
}

// Validate validates the configuration.
func (c *Config) Validate() error {
	if c.Table.Name == "" {
		return serrors.NewConfigError(serrors.CodeInvalidConfig, "table.name is required", nil)
	}

	switch c.Log.Level {
	case "trace", "debug", "info", "warn", "error":
	default:
		return serrors.NewConfigError(serrors.CodeInvalidConfig,
			fmt.Sprintf("invalid log level: %s (must be trace, debug, info, warn, or error)", c.Log.Level), nil)
	}

	if c.Log.Format != "json" && c.Log.Format != "console" {
		return serrors.NewConfigError(serrors.CodeInvalidConfig,
			fmt.Sprintf("invalid log format: %s (must be json or console)", c.Log.Format), nil)
	}

	return nil
}

// LoadFromFile loads configuration from a YAML or JSON file on top of the defaults.
func LoadFromFile(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, serrors.NewConfigError(serrors.CodeConfigRead, "failed to read config file", err)
	}

	cfg := DefaultConfig()

	ext := strings.ToLower(filepath.Ext(path))
	switch ext {
	case ".yaml", ".yml":
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, serrors.NewConfigError(serrors.CodeConfigRead, "failed to parse YAML config", err)
		}
	case ".json":
		if err := json.Unmarshal(data, cfg); err != nil {
			return nil, serrors.NewConfigError(serrors.CodeConfigRead, "failed to parse JSON config", err)
		}
	default:
		return nil, serrors.NewConfigError(serrors.CodeConfigRead,
			fmt.Sprintf("unsupported config file format: %s", ext), nil)
	}

	return cfg, nil
}

// LoadFromEnv applies environment overrides to cfg.
// TABLE_NAME is the table name set by the deployment; the remaining
// variables use the SHOWTIMES_ prefix.
func LoadFromEnv(cfg *Config) {
	if v := os.Getenv("TABLE_NAME"); v != "" {
		cfg.Table.Name = v
	}

	// Table configuration
	if v := os.Getenv("SHOWTIMES_AWS_REGION"); v != "" {
		cfg.Table.Region = v
	}
	if v := os.Getenv("SHOWTIMES_DYNAMODB_ENDPOINT"); v != "" {
		cfg.Table.Endpoint = v
	}
	if v := os.Getenv("SHOWTIMES_SCAN_ALL_PAGES"); v != "" {
		cfg.Table.ScanAllPages = v == "true" || v == "1"
	}

	// Log configuration
	if v := os.Getenv("SHOWTIMES_LOG_LEVEL"); v != "" {
		cfg.Log.Level = strings.ToLower(v)
	}
	if v := os.Getenv("SHOWTIMES_LOG_FORMAT"); v != "" {
		cfg.Log.Format = strings.ToLower(v)
	}

	// HTTP configuration
	if v := os.Getenv("SHOWTIMES_HTTP_ADDR"); v != "" {
		cfg.HTTP.Addr = v
	}
}

// Load builds the startup configuration: defaults, then the optional file at
// path, then environment overrides, then validation.
func Load(path string) (*Config, error) {
	cfg := DefaultConfig()
	if path != "" {
		fileCfg, err := LoadFromFile(path)
		if err != nil {
			return nil, err
		}
		cfg = fileCfg
	}

	LoadFromEnv(cfg)

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}
