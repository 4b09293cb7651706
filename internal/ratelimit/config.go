package ratelimit

import (
	"os"
	"strconv"
	"time"
)

// Config holds rate limiting configuration for upstream model calls.
type Config struct {
	Enabled bool
	Limit   int           // Maximum calls per window
	Window  time.Duration // Time window
	Burst   int           // Burst capacity (defaults to Limit if 0)
}

// LoadConfig loads rate limiting configuration from environment variables.
func LoadConfig() *Config {
	enabled := getEnvBool("EMBED_RATE_LIMIT_ENABLED", true)
	if !enabled {
		return &Config{Enabled: false}
	}

	return &Config{
		Enabled: enabled,
		Limit:   getEnvInt("EMBED_RATE_LIMIT", 1500),
		Window:  getEnvDuration("EMBED_RATE_LIMIT_WINDOW", time.Minute),
		Burst:   getEnvInt("EMBED_RATE_LIMIT_BURST", 0),
	}
}

// NewBucket builds a token bucket from the configuration.
// Returns nil when limiting is disabled or the limit is not positive.
func (c *Config) NewBucket() *TokenBucket {
	if c == nil || !c.Enabled || c.Limit <= 0 || c.Window <= 0 {
		return nil
	}
	burst := c.Burst
	if burst <= 0 {
		burst = c.Limit
	}
	return NewTokenBucket(burst, float64(c.Limit)/c.Window.Seconds())
}

// getEnvInt gets an environment variable as an integer with a default value.
func getEnvInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}
	return defaultValue
}

// getEnvBool gets an environment variable as a boolean with a default value.
func getEnvBool(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if boolValue, err := strconv.ParseBool(value); err == nil {
			return boolValue
		}
	}
	return defaultValue
}

// getEnvDuration gets an environment variable as a duration with a default value.
func getEnvDuration(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if duration, err := time.ParseDuration(value); err == nil {
			return duration
		}
	}
	return defaultValue
}
