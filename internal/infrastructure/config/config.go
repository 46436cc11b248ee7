package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

// Config is the root configuration structure for the capacity checker.
// All configuration is loaded from YAML and can be overridden by environment variables.
type Config struct {
	Server   ServerConfig   `yaml:"server"`
	Database DatabaseConfig `yaml:"database"`
	Cache    CacheConfig    `yaml:"cache"`
	Logging  LoggingConfig  `yaml:"logging"`
	Auth     AuthConfig     `yaml:"auth"`
}

// ServerConfig contains HTTP server settings.
type ServerConfig struct {
	Host     string              `yaml:"host"`
	Port     int                 `yaml:"port"`
	Timeouts ServerTimeoutConfig `yaml:"timeouts"`
	CORS     CORSConfig          `yaml:"cors"`
}

// ServerTimeoutConfig contains HTTP timeout settings in seconds.
type ServerTimeoutConfig struct {
	Read  int `yaml:"read"`
	Write int `yaml:"write"`
	Idle  int `yaml:"idle"`
}

// CORSConfig contains Cross-Origin Resource Sharing settings.
type CORSConfig struct {
	AllowedOrigins []string `yaml:"allowed_origins"`
	AllowedMethods []string `yaml:"allowed_methods"`
	AllowedHeaders []string `yaml:"allowed_headers"`
}

// DatabaseConfig contains database settings.
//
// When URL is set (typically via the DATABASE_URL environment variable) the
// service uses PostgreSQL with SSL required and a statement timeout.
// Otherwise it uses a local SQLite file.
type DatabaseConfig struct {
	// URL is a PostgreSQL connection URL. Empty means use SQLite at Path.
	URL string `yaml:"url"`

	// Path is the filesystem path to the SQLite database file.
	Path string `yaml:"path"`

	// WALMode enables Write-Ahead Logging for SQLite.
	WALMode bool `yaml:"wal_mode"`

	// BusyTimeout is the maximum time to wait for a SQLite lock (seconds).
	BusyTimeout int `yaml:"busy_timeout"`

	// ConnMaxAge is how long connections are kept alive (seconds).
	ConnMaxAge int `yaml:"conn_max_age"`

	// StatementTimeout is the PostgreSQL per-statement timeout (seconds).
	StatementTimeout int `yaml:"statement_timeout"`
}

// CacheConfig contains in-memory cache settings.
type CacheConfig struct {
	// TTL is the default entry lifetime in seconds.
	TTL int `yaml:"ttl"`

	// MaxEntries bounds the number of cached entries.
	MaxEntries int `yaml:"max_entries"`
}

// LoggingConfig contains logging settings.
type LoggingConfig struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"`
	Output string `yaml:"output"`
}

// AuthConfig contains admin authentication settings.
type AuthConfig struct {
	// Secret signs admin JWT tokens. Required for the admin endpoints.
	Secret string `yaml:"secret"`

	// Username and Password are the shared admin credential.
	Username string `yaml:"username"`
	Password string `yaml:"password"`

	// TokenTTL is the access token lifetime in minutes.
	TokenTTL int `yaml:"token_ttl"`
}

// Load reads configuration from a YAML file and applies environment variable overrides.
//
// The configuration loading order is:
//  1. Default values (hardcoded)
//  2. YAML file values (override defaults)
//  3. Environment variables (override file values)
//
// Environment variables follow the pattern: CHECKER_SECTION_KEY
// For example: CHECKER_DATABASE_PATH, CHECKER_SERVER_PORT.
// DATABASE_URL is honoured without a prefix for platform compatibility.
func Load(path string) (*Config, error) {
	cfg := defaultConfig()

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading config file: %w", err)
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parsing config file: %w", err)
	}

	applyEnvOverrides(cfg)

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("validating config: %w", err)
	}

	return cfg, nil
}

// Default returns the default configuration with environment overrides applied.
// Used when no config file is present.
func Default() *Config {
	cfg := defaultConfig()
	applyEnvOverrides(cfg)
	return cfg
}

// defaultConfig returns a Config with sensible defaults.
func defaultConfig() *Config {
	return &Config{
		Server: ServerConfig{
			Host: "0.0.0.0",
			Port: 8080,
			Timeouts: ServerTimeoutConfig{
				Read:  30,
				Write: 30,
				Idle:  60,
			},
		},
		Database: DatabaseConfig{
			Path:             "./data/checker.db",
			WALMode:          true,
			BusyTimeout:      5,
			ConnMaxAge:       600,
			StatementTimeout: 15,
		},
		Cache: CacheConfig{
			TTL:        300,
			MaxEntries: 1000,
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "json",
			Output: "stdout",
		},
		Auth: AuthConfig{
			Username: "admin",
			TokenTTL: 15,
		},
	}
}

// applyEnvOverrides applies environment variable overrides to the configuration.
// Environment variables follow the pattern: CHECKER_SECTION_KEY.
func applyEnvOverrides(cfg *Config) {
	// DATABASE_URL is the conventional platform variable and switches the
	// backend to PostgreSQL when present.
	if v := os.Getenv("DATABASE_URL"); v != "" {
		cfg.Database.URL = v
	}
	if v := os.Getenv("CHECKER_DATABASE_URL"); v != "" {
		cfg.Database.URL = v
	}
	if v := os.Getenv("CHECKER_DATABASE_PATH"); v != "" {
		cfg.Database.Path = v
	}

	// Server
	if v := os.Getenv("CHECKER_SERVER_HOST"); v != "" {
		cfg.Server.Host = v
	}
	if v := os.Getenv("CHECKER_SERVER_PORT"); v != "" {
		if port, err := strconv.Atoi(v); err == nil {
			cfg.Server.Port = port
		}
	}

	// Logging
	if v := os.Getenv("CHECKER_LOG_LEVEL"); v != "" {
		cfg.Logging.Level = v
	}

	// Auth - secret should always come from the environment in production.
	if v := os.Getenv("CHECKER_AUTH_SECRET"); v != "" {
		cfg.Auth.Secret = v
	}
	if v := os.Getenv("CHECKER_AUTH_PASSWORD"); v != "" {
		cfg.Auth.Password = v
	}
}

// Validate checks the configuration for errors.
func (c *Config) Validate() error {
	var errs []string

	if c.Server.Port < 1 || c.Server.Port > 65535 {
		errs = append(errs, "server.port must be between 1 and 65535")
	}

	if c.Database.URL == "" && c.Database.Path == "" {
		errs = append(errs, "database.path is required when database.url is not set")
	}
	if c.Database.ConnMaxAge < 0 {
		errs = append(errs, "database.conn_max_age must not be negative")
	}
	if c.Database.StatementTimeout < 0 {
		errs = append(errs, "database.statement_timeout must not be negative")
	}

	if c.Cache.TTL <= 0 {
		errs = append(errs, "cache.ttl must be positive")
	}
	if c.Cache.MaxEntries <= 0 {
		errs = append(errs, "cache.max_entries must be positive")
	}

	if len(errs) > 0 {
		return fmt.Errorf("configuration errors: %s", strings.Join(errs, "; "))
	}

	return nil
}

// GetReadTimeout returns the server read timeout as a Duration.
func (c *Config) GetReadTimeout() time.Duration {
	return time.Duration(c.Server.Timeouts.Read) * time.Second
}

// GetWriteTimeout returns the server write timeout as a Duration.
func (c *Config) GetWriteTimeout() time.Duration {
	return time.Duration(c.Server.Timeouts.Write) * time.Second
}

// GetIdleTimeout returns the server idle timeout as a Duration.
func (c *Config) GetIdleTimeout() time.Duration {
	return time.Duration(c.Server.Timeouts.Idle) * time.Second
}

// GetCacheTTL returns the default cache entry lifetime as a Duration.
func (c *Config) GetCacheTTL() time.Duration {
	return time.Duration(c.Cache.TTL) * time.Second
}

// GetConnMaxAge returns the connection max lifetime as a Duration.
func (c *Config) GetConnMaxAge() time.Duration {
	return time.Duration(c.Database.ConnMaxAge) * time.Second
}
