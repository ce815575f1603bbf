package config

import (
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"strconv"
	"time"
)

// Unauthorized response policies.
const (
	UnauthorizedClear = "clear"
	UnauthorizedKeep  = "keep"
)

// Session storage backends.
const (
	SessionBackendFile     = "file"
	SessionBackendRedis    = "redis"
	SessionBackendPostgres = "postgres"
)

// Config holds all application configuration.
type Config struct {
	API     APIConfig
	Session SessionConfig
	Logger  LoggerConfig
	S3      S3Config
	Catalog CatalogConfig
	Metrics MetricsConfig
}

// APIConfig holds storefront REST API configuration.
type APIConfig struct {
	BaseURL string
	// Timeout of zero leaves the HTTP client default in place.
	Timeout time.Duration
	// OnUnauthorized is "clear" (drop the session on 401) or "keep".
	OnUnauthorized string
}

// SessionConfig holds configuration for the persisted session.
type SessionConfig struct {
	Backend     string
	FilePath    string
	Key         string
	TTL         time.Duration
	RedisAddr   string
	RedisPass   string
	RedisDB     int
	PostgresDSN string
}

// LoggerConfig holds logger-related configuration.
type LoggerConfig struct {
	Level  string
	Format string // "json" or "console"
}

// S3Config holds AWS S3 configuration for catalog import files.
type S3Config struct {
	Enabled bool
	Bucket  string
	Region  string
	Prefix  string // Path prefix within bucket (e.g., "catalog/")
}

// CatalogConfig holds bulk catalog import configuration.
type CatalogConfig struct {
	Workers int
}

// MetricsConfig holds client metrics configuration.
type MetricsConfig struct {
	// PushURL is a Prometheus Pushgateway address; empty disables pushing.
	PushURL string
	Job     string
}

// Load loads configuration from environment variables.
func Load() (*Config, error) {
	cfg := &Config{
		API: APIConfig{
			BaseURL:        getEnv("API_BASE_URL", "http://localhost:5000"),
			Timeout:        getEnvAsDuration("API_TIMEOUT", 0),
			OnUnauthorized: getEnv("API_ON_UNAUTHORIZED", UnauthorizedClear),
		},
		Session: SessionConfig{
			Backend:     getEnv("SESSION_BACKEND", SessionBackendFile),
			FilePath:    getEnv("SESSION_FILE", defaultSessionFile()),
			Key:         getEnv("SESSION_KEY", "auth-storage"),
			TTL:         getEnvAsDuration("SESSION_TTL", 7*24*time.Hour),
			RedisAddr:   getEnv("REDIS_ADDR", "localhost:6379"),
			RedisPass:   getEnv("REDIS_PASSWORD", ""),
			RedisDB:     getEnvAsInt("REDIS_DB", 0),
			PostgresDSN: getEnv("SESSION_POSTGRES_DSN", ""),
		},
		Logger: LoggerConfig{
			Level:  getEnv("LOG_LEVEL", "warn"),
			Format: getEnv("LOG_FORMAT", "console"),
		},
		S3: S3Config{
			Enabled: getEnvAsBool("S3_ENABLED", false),
			Bucket:  getEnv("S3_BUCKET", ""),
			Region:  getEnv("S3_REGION", "us-east-1"),
			Prefix:  getEnv("S3_PREFIX", "catalog/"),
		},
		Catalog: CatalogConfig{
			Workers: getEnvAsInt("CATALOG_WORKERS", 4),
		},
		Metrics: MetricsConfig{
			PushURL: getEnv("METRICS_PUSH_URL", ""),
			Job:     getEnv("METRICS_JOB", "storefront"),
		},
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	return cfg, nil
}

// Validate validates the configuration.
func (c *Config) Validate() error {
	if c.API.BaseURL == "" {
		return fmt.Errorf("API base URL is required")
	}

	u, err := url.Parse(c.API.BaseURL)
	if err != nil || u.Scheme == "" || u.Host == "" {
		return fmt.Errorf("invalid API base URL: %s", c.API.BaseURL)
	}

	if c.API.Timeout < 0 {
		return fmt.Errorf("API timeout cannot be negative")
	}

	if c.API.OnUnauthorized != UnauthorizedClear && c.API.OnUnauthorized != UnauthorizedKeep {
		return fmt.Errorf("invalid unauthorized policy: %s (must be clear or keep)", c.API.OnUnauthorized)
	}

	if c.Session.Key == "" {
		return fmt.Errorf("session key is required")
	}

	switch c.Session.Backend {
	case SessionBackendFile:
		if c.Session.FilePath == "" {
			return fmt.Errorf("session file path is required for the file backend")
		}
	case SessionBackendRedis:
		if c.Session.RedisAddr == "" {
			return fmt.Errorf("redis address is required for the redis backend")
		}
	case SessionBackendPostgres:
		if c.Session.PostgresDSN == "" {
			return fmt.Errorf("postgres DSN is required for the postgres backend")
		}
	default:
		return fmt.Errorf("invalid session backend: %s (must be file, redis, or postgres)", c.Session.Backend)
	}

	if c.Session.TTL < 0 {
		return fmt.Errorf("session TTL cannot be negative")
	}

	validLogLevels := map[string]bool{
		"debug": true,
		"info":  true,
		"warn":  true,
		"error": true,
	}

	if !validLogLevels[c.Logger.Level] {
		return fmt.Errorf("invalid log level: %s (must be debug, info, warn, or error)", c.Logger.Level)
	}

	if c.Logger.Format != "json" && c.Logger.Format != "console" {
		return fmt.Errorf("invalid log format: %s (must be json or console)", c.Logger.Format)
	}

	if c.S3.Enabled {
		if c.S3.Bucket == "" {
			return fmt.Errorf("S3 bucket is required when S3 is enabled")
		}
		if c.S3.Region == "" {
			return fmt.Errorf("S3 region is required when S3 is enabled")
		}
	}

	if c.Catalog.Workers < 1 {
		return fmt.Errorf("catalog workers must be at least 1")
	}

	return nil
}

// Key returns the S3 object key for a catalog file name.
func (c *S3Config) Key(name string) string {
	return c.Prefix + name
}

// defaultSessionFile places the session next to the user's other config files.
func defaultSessionFile() string {
	dir, err := os.UserConfigDir()
	if err != nil {
		return ".storefront-session.json"
	}
	return filepath.Join(dir, "storefront", "session.json")
}

// getEnv retrieves an environment variable or returns a default value.
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// getEnvAsInt retrieves an environment variable as an integer or returns a default value.
func getEnvAsInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}
	return defaultValue
}

// getEnvAsBool retrieves an environment variable as a boolean or returns a default value.
func getEnvAsBool(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if boolValue, err := strconv.ParseBool(value); err == nil {
			return boolValue
		}
	}
	return defaultValue
}

// getEnvAsDuration retrieves an environment variable as a duration or returns a default value.
func getEnvAsDuration(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if d, err := time.ParseDuration(value); err == nil {
			return d
		}
	}
	return defaultValue
}
