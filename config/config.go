// Package config provides configuration management for the application.
// All settings come from environment variables; a .env file in the working
// directory is loaded first when present.
package config

import (
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// DefaultBodySizeLimit caps request bodies at 64KB; the only inbound payload
// is a short JSON object carrying a game title.
const DefaultBodySizeLimit int64 = 64 * 1024

// Config holds the application configuration
type Config struct {
	Server  ServerConfig
	HLTB    HLTBConfig
	Serp    SerpConfig
	Cache   CacheConfig
	Metrics MetricsConfig
	Logging LoggingConfig
}

// ServerConfig holds HTTP server configuration
type ServerConfig struct {
	Port          string
	MasterKey     string
	BodySizeLimit int64
}

// HLTBConfig holds primary backend configuration
type HLTBConfig struct {
	Enabled bool
}

// SerpConfig holds fallback backend configuration. The fallback path is
// unavailable when no API key is configured.
type SerpConfig struct {
	Enabled bool
	APIKey  string
}

// FallbackAvailable reports whether the fallback backend can be used.
func (c SerpConfig) FallbackAvailable() bool {
	return c.Enabled && c.APIKey != ""
}

// CacheConfig holds result cache configuration
type CacheConfig struct {
	// TTL is how long resolved estimates stay valid (default: 168h).
	TTL time.Duration
	// RedisURL selects the Redis store when set; empty means in-memory.
	RedisURL string
}

// MetricsConfig holds Prometheus metrics configuration
type MetricsConfig struct {
	Enabled  bool
	Endpoint string
}

// LoggingConfig holds log output configuration
type LoggingConfig struct {
	// Format is "json" (default) or "text" for the pretty development handler.
	Format string
	// Level is the minimum level: debug, info (default), warn, error.
	Level string
}

// Load reads configuration from the environment. A missing .env file is not
// an error.
func Load() (*Config, error) {
	_ = godotenv.Load()

	cfg := &Config{
		Server: ServerConfig{
			Port:          getEnv("PORT", "8080"),
			MasterKey:     os.Getenv("GAMELENGTH_MASTER_KEY"),
			BodySizeLimit: getEnvInt64("BODY_SIZE_LIMIT", DefaultBodySizeLimit),
		},
		HLTB: HLTBConfig{
			Enabled: getEnvBool("HLTB_ENABLED", true),
		},
		Serp: SerpConfig{
			Enabled: getEnvBool("SERP_ENABLED", true),
			APIKey:  os.Getenv("SERP_API_KEY"),
		},
		Cache: CacheConfig{
			TTL:      getEnvDuration("CACHE_TTL", 7*24*time.Hour),
			RedisURL: os.Getenv("REDIS_URL"),
		},
		Metrics: MetricsConfig{
			Enabled:  getEnvBool("METRICS_ENABLED", true),
			Endpoint: getEnv("METRICS_ENDPOINT", "/metrics"),
		},
		Logging: LoggingConfig{
			Format: getEnv("LOG_FORMAT", "json"),
			Level:  getEnv("LOG_LEVEL", "info"),
		},
	}

	return cfg, nil
}

// getEnv reads a string from the environment, returning the default when
// unset or empty.
func getEnv(key, defaultVal string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return defaultVal
}

// getEnvBool reads a boolean, returning the default when unset or invalid.
func getEnvBool(key string, defaultVal bool) bool {
	val := os.Getenv(key)
	if val == "" {
		return defaultVal
	}
	b, err := strconv.ParseBool(val)
	if err != nil {
		return defaultVal
	}
	return b
}

// getEnvInt64 reads an integer, returning the default when unset or invalid.
func getEnvInt64(key string, defaultVal int64) int64 {
	val := os.Getenv(key)
	if val == "" {
		return defaultVal
	}
	n, err := strconv.ParseInt(val, 10, 64)
	if err != nil || n <= 0 {
		return defaultVal
	}
	return n
}

// getEnvDuration reads a duration, accepting either plain integers
// (interpreted as hours) or Go duration strings ("168h", "30m"). Returns
// the default when unset or invalid.
func getEnvDuration(key string, defaultVal time.Duration) time.Duration {
	val := os.Getenv(key)
	if val == "" {
		return defaultVal
	}
	if hrs, err := strconv.Atoi(val); err == nil && hrs > 0 {
		return time.Duration(hrs) * time.Hour
	}
	if d, err := time.ParseDuration(val); err == nil && d > 0 {
		return d
	}
	return defaultVal
}
