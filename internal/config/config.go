package config

import (
	"fmt"
	"net/url"
	"os"
	"time"

	"github.com/kelseyhightower/envconfig"
	"gopkg.in/yaml.v2"
)

// Config represents the complete application configuration
type Config struct {
	Server  ServerConfig  `yaml:"server" envconfig:"SERVER"`
	Logging LoggingConfig `yaml:"logging" envconfig:"LOGGING"`
	Source  SourceConfig  `yaml:"source" envconfig:"SOURCE"`
	Locale  LocaleConfig  `yaml:"locale" envconfig:"LOCALE"`
	RateLimit RateLimitConfig `yaml:"rate_limit" envconfig:"RATE_LIMIT"`
}

// ServerConfig contains HTTP server configuration
type ServerConfig struct {
	Port            int           `yaml:"port" envconfig:"PORT" default:"8080"`
	ReadTimeout     time.Duration `yaml:"read_timeout" envconfig:"READ_TIMEOUT" default:"15s"`
	WriteTimeout    time.Duration `yaml:"write_timeout" envconfig:"WRITE_TIMEOUT" default:"120s"`
	IdleTimeout     time.Duration `yaml:"idle_timeout" envconfig:"IDLE_TIMEOUT" default:"60s"`
	ShutdownTimeout time.Duration `yaml:"shutdown_timeout" envconfig:"SHUTDOWN_TIMEOUT" default:"30s"`
}

// LoggingConfig contains logging configuration
type LoggingConfig struct {
	Level    string `yaml:"level" envconfig:"LEVEL" default:"info"`
	Output   string `yaml:"output" envconfig:"OUTPUT" default:"console"`
	FilePath string `yaml:"file_path" envconfig:"FILE_PATH" default:"logs/ventas.log"`
}

// SourceConfig describes the remote sales extract.
type SourceConfig struct {
	// URL of the shared CSV/XLSX export. The loader appends download=1
	// to force raw content delivery.
	URL          string        `yaml:"url" envconfig:"URL"`
	FetchTimeout time.Duration `yaml:"fetch_timeout" envconfig:"FETCH_TIMEOUT" default:"60s"`
	CacheTTL     time.Duration `yaml:"cache_ttl" envconfig:"CACHE_TTL" default:"10m"`
}

// LocaleConfig controls month-name derivation. Month names must be
// deterministic across hosts, so the language is explicit config rather
// than an environment locale.
type LocaleConfig struct {
	MonthLanguage string `yaml:"month_language" envconfig:"MONTH_LANGUAGE" default:"es"`
}

// RateLimitConfig contains API rate limiting configuration
type RateLimitConfig struct {
	Enabled bool    `yaml:"enabled" envconfig:"ENABLED" default:"true"`
	RPS     float64 `yaml:"rps" envconfig:"RPS" default:"25"`
	Burst   int     `yaml:"burst" envconfig:"BURST" default:"10"`
}

// Load loads configuration from environment variables and config file.
// Environment variables take precedence over the YAML file.
func Load() (*Config, error) {
	return LoadFrom(configFilePath())
}

// LoadFrom loads configuration using the given YAML file path.
func LoadFrom(configFile string) (*Config, error) {
	var cfg Config

	if _, err := os.Stat(configFile); err == nil {
		data, err := os.ReadFile(configFile)
		if err != nil {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return nil, fmt.Errorf("failed to parse config file: %w", err)
		}
	}

	// envconfig fills defaults and lets VENTAS_* variables override the file
	if err := envconfig.Process("VENTAS", &cfg); err != nil {
		return nil, fmt.Errorf("failed to load config from env: %w", err)
	}

	if err := cfg.validate(); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	return &cfg, nil
}

func configFilePath() string {
	if path := os.Getenv("VENTAS_CONFIG_FILE"); path != "" {
		return path
	}
	return "config.yaml"
}

func (c *Config) validate() error {
	if c.Server.Port < 1 || c.Server.Port > 65535 {
		return fmt.Errorf("invalid server port: %d", c.Server.Port)
	}
	if c.Source.FetchTimeout <= 0 {
		return fmt.Errorf("source fetch timeout must be positive, got %s", c.Source.FetchTimeout)
	}
	if c.Source.CacheTTL < 0 {
		return fmt.Errorf("source cache ttl must not be negative, got %s", c.Source.CacheTTL)
	}
	if c.Source.URL != "" {
		if _, err := url.ParseRequestURI(c.Source.URL); err != nil {
			return fmt.Errorf("invalid source url: %w", err)
		}
	}
	switch c.Logging.Output {
	case "console", "file", "both":
	default:
		return fmt.Errorf("invalid logging output: %s", c.Logging.Output)
	}
	return nil
}
