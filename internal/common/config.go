// Package common provides shared utilities for the day-trade assistant.
package common

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	toml "github.com/pelletier/go-toml/v2"
)

// Config holds all configuration for the assistant.
type Config struct {
	Environment string          `toml:"environment"`
	Server      ServerConfig    `toml:"server"`
	Storage     StorageConfig   `toml:"storage"`
	Clients     ClientsConfig   `toml:"clients"`
	Universe    UniverseConfig  `toml:"universe"`
	Scheduler   SchedulerConfig `toml:"scheduler"`
	Logging     LoggingConfig   `toml:"logging"`
}

// ServerConfig holds HTTP server configuration
type ServerConfig struct {
	Host string `toml:"host"`
	Port int    `toml:"port"`
}

// StorageConfig holds the BadgerHold data directory.
type StorageConfig struct {
	Path string `toml:"path"`
}

// ClientsConfig holds API client configurations
type ClientsConfig struct {
	Tradier TradierConfig `toml:"tradier"`
}

// TradierConfig holds Tradier API configuration
type TradierConfig struct {
	BaseURL   string `toml:"base_url"`
	APIKey    string `toml:"api_key"`
	RateLimit int    `toml:"rate_limit"`
	Timeout   string `toml:"timeout"`
}

// GetTimeout parses and returns the timeout duration
func (c *TradierConfig) GetTimeout() time.Duration {
	d, err := time.ParseDuration(c.Timeout)
	if err != nil {
		return 30 * time.Second
	}
	return d
}

// UniverseConfig holds the tracked symbol list and the benchmark symbol.
// Universe discovery happens outside this service; the list here is input.
type UniverseConfig struct {
	Symbols   []string `toml:"symbols"`
	Benchmark string   `toml:"benchmark"`
	SyncDays  int      `toml:"sync_days"` // calendar days of history to keep in sync
}

// SchedulerConfig holds the nightly sync schedule.
type SchedulerConfig struct {
	Enabled bool   `toml:"enabled"`
	Cron    string `toml:"cron"`
}

// LoggingConfig holds logging configuration
type LoggingConfig struct {
	Level  string `toml:"level"`
	Format string `toml:"format"`
}

// NewDefaultConfig returns a Config with sensible defaults
func NewDefaultConfig() *Config {
	return &Config{
		Environment: "development",
		Server: ServerConfig{
			Host: "0.0.0.0",
			Port: 4270,
		},
		Storage: StorageConfig{
			Path: "data",
		},
		Clients: ClientsConfig{
			Tradier: TradierConfig{
				BaseURL:   "https://api.tradier.com/v1",
				RateLimit: 5,
				Timeout:   "30s",
			},
		},
		Universe: UniverseConfig{
			Benchmark: "SPY",
			SyncDays:  365,
		},
		Scheduler: SchedulerConfig{
			Enabled: false,
			Cron:    "0 30 17 * * MON-FRI", // after US market close
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "json",
		},
	}
}

// LoadConfig loads configuration from files with environment overrides
func LoadConfig(paths ...string) (*Config, error) {
	config := NewDefaultConfig()

	// Load and merge each config file in order (later files override earlier)
	for _, path := range paths {
		if path == "" {
			continue
		}

		if _, err := os.Stat(path); os.IsNotExist(err) {
			continue // Skip missing files
		}

		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
		}

		if err := toml.Unmarshal(data, config); err != nil {
			return nil, fmt.Errorf("failed to parse config file %s: %w", path, err)
		}
	}

	applyEnvOverrides(config)

	return config, nil
}

// applyEnvOverrides applies environment variable overrides to config
func applyEnvOverrides(config *Config) {
	if env := os.Getenv("ASSISTANT_ENV"); env != "" {
		config.Environment = env
	}

	if host := os.Getenv("ASSISTANT_HOST"); host != "" {
		config.Server.Host = host
	}

	if port := os.Getenv("ASSISTANT_PORT"); port != "" {
		if p, err := strconv.Atoi(port); err == nil {
			config.Server.Port = p
		}
	}

	if level := os.Getenv("ASSISTANT_LOG_LEVEL"); level != "" {
		config.Logging.Level = level
	}

	if path := os.Getenv("ASSISTANT_DATA_PATH"); path != "" {
		config.Storage.Path = path
	}

	if key := os.Getenv("TRADIER_API_ACCESS_TOKEN"); key != "" {
		config.Clients.Tradier.APIKey = key
	}
	if key := os.Getenv("ASSISTANT_TRADIER_API_KEY"); key != "" {
		config.Clients.Tradier.APIKey = key
	}
	if base := os.Getenv("TRADIER_BASE_URL"); base != "" {
		config.Clients.Tradier.BaseURL = base
	}

	if bench := os.Getenv("ASSISTANT_BENCHMARK"); bench != "" {
		config.Universe.Benchmark = strings.ToUpper(bench)
	}

	if symbols := os.Getenv("ASSISTANT_UNIVERSE"); symbols != "" {
		parts := strings.Split(symbols, ",")
		cleaned := make([]string, 0, len(parts))
		for _, p := range parts {
			if s := strings.ToUpper(strings.TrimSpace(p)); s != "" {
				cleaned = append(cleaned, s)
			}
		}
		if len(cleaned) > 0 {
			config.Universe.Symbols = cleaned
		}
	}
}

// IsProduction returns true if running in production mode
func (c *Config) IsProduction() bool {
	env := strings.ToLower(strings.TrimSpace(c.Environment))
	return env == "production" || env == "prod"
}
