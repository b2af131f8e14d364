package config

import (
	"os"
	"strconv"
	"time"
)

// DatabaseConfig holds SQLite database file and connection pool settings.
type DatabaseConfig struct {
	Path               string
	BusyTimeoutMs      int
	MaxOpenConns       int
	MaxIdleConns       int
	ConnMaxLifetimeSec int
}

// UpstreamConfig holds settings for the third-party fact API.
type UpstreamConfig struct {
	URL     string
	Timeout time.Duration
}

// ArchiveConfig holds optional S3-compatible object storage settings used to archive fetched facts.
// The archive is disabled when Endpoint is empty.
type ArchiveConfig struct {
	Endpoint  string
	AccessKey string
	SecretKey string
	Bucket    string
	UseSSL    bool
}

// Enabled reports whether an archive endpoint has been configured.
func (a ArchiveConfig) Enabled() bool {
	return a.Endpoint != ""
}

// AppConfig is the centralized configuration struct for the application.
// It is populated from environment variables. Sensitive values are not hardcoded.
type AppConfig struct {
	Port     string
	Timezone string
	LogLevel string
	Database DatabaseConfig
	Upstream UpstreamConfig
	Archive  ArchiveConfig
}

// Location resolves the configured timezone, falling back to UTC when it cannot be loaded.
func (c *AppConfig) Location() *time.Location {
	loc, err := time.LoadLocation(c.Timezone)
	if err != nil {
		return time.UTC
	}
	return loc
}

// Load reads configuration from environment variables.
// A .env file can be auto-loaded by importing: _ "github.com/joho/godotenv/autoload"
// This function does not require a .env file; real environment variables take precedence.
func Load() *AppConfig {
	return &AppConfig{
		Port:     getEnv("PORT", "8080"),
		Timezone: getEnv("APP_TIMEZONE", "UTC"),
		LogLevel: getEnv("LOG_LEVEL", "info"),
		Database: DatabaseConfig{
			Path:               getEnv("DB_PATH", "facts.db"),
			BusyTimeoutMs:      getEnvInt("DB_BUSY_TIMEOUT_MS", 5000),
			MaxOpenConns:       getEnvInt("DB_MAX_OPEN_CONNS", 4),
			MaxIdleConns:       getEnvInt("DB_MAX_IDLE_CONNS", 2),
			ConnMaxLifetimeSec: getEnvInt("DB_CONN_MAX_LIFETIME_SEC", 300),
		},
		Upstream: UpstreamConfig{
			URL:     getEnv("UPSTREAM_URL", "https://catfact.ninja/fact"),
			Timeout: getEnvDuration("UPSTREAM_TIMEOUT", 5*time.Second),
		},
		Archive: ArchiveConfig{
			Endpoint:  getEnv("ARCHIVE_ENDPOINT", ""),
			AccessKey: getEnv("ARCHIVE_ACCESS_KEY", ""),
			SecretKey: getEnv("ARCHIVE_SECRET_KEY", ""),
			Bucket:    getEnv("ARCHIVE_BUCKET", ""),
			UseSSL:    getEnvBool("ARCHIVE_USE_SSL", false),
		},
	}
}

func getEnv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func getEnvBool(key string, def bool) bool {
	if v := os.Getenv(key); v != "" {
		b, err := strconv.ParseBool(v)
		if err == nil {
			return b
		}
	}
	return def
}

func getEnvInt(key string, def int) int {
	if v := os.Getenv(key); v != "" {
		i, err := strconv.Atoi(v)
		if err == nil {
			return i
		}
	}
	return def
}

func getEnvDuration(key string, def time.Duration) time.Duration {
	if v := os.Getenv(key); v != "" {
		d, err := time.ParseDuration(v)
		if err == nil && d > 0 {
			return d
		}
	}
	return def
}
