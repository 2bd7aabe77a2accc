// Package config loads service settings from the environment.
package config

import (
	"os"
	"strconv"
	"strings"
	"time"
)

// Fetch modes
const (
	FetchModeBrowser = "browser"
	FetchModeHTTP    = "http"
)

// Config holds all service settings
type Config struct {
	Port           string
	Host           string
	AllowedOrigins []string
	DatabaseURL    string

	FetchMode    string // "browser" or "http"
	FetchTimeout time.Duration

	BatchWorkers  int
	BatchDeadline time.Duration

	RescheduleCron    string
	RescheduleEnabled bool

	RateLimitRPS   float64
	MaxExtractURLs int
	MaxUploadSize  int64
}

// Load reads the configuration from environment variables, falling back to
// development defaults
func Load() *Config {
	return &Config{
		Port:           getEnv("PORT", "8080"),
		Host:           getEnv("HOST", "0.0.0.0"),
		AllowedOrigins: splitCSV(getEnv("ALLOWED_ORIGINS", "*")),
		DatabaseURL:    getEnv("DATABASE_URL", ""),

		FetchMode:    getEnv("FETCH_MODE", FetchModeBrowser),
		FetchTimeout: getEnvDuration("FETCH_TIMEOUT", 45*time.Second),

		BatchWorkers:  getEnvInt("BATCH_WORKERS", 3),
		BatchDeadline: getEnvDuration("BATCH_DEADLINE", 10*time.Minute),

		RescheduleCron:    getEnv("RESCHEDULE_CRON", "0 */12 * * *"),
		RescheduleEnabled: getEnvBool("RESCHEDULE_ENABLED", true),

		RateLimitRPS:   getEnvFloat("RATE_LIMIT_RPS", 5),
		MaxExtractURLs: getEnvInt("MAX_EXTRACT_URLS", 10),
		MaxUploadSize:  getEnvInt64("MAX_UPLOAD_SIZE", 10*1024*1024), // 10MB
	}
}

// Addr returns the listen address for the HTTP server
func (c *Config) Addr() string {
	return c.Host + ":" + c.Port
}

func splitCSV(value string) []string {
	var out []string
	for _, part := range strings.Split(value, ",") {
		if trimmed := strings.TrimSpace(part); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}

// Helper functions for environment variables
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvBool(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if boolValue, err := strconv.ParseBool(value); err == nil {
			return boolValue
		}
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}
	return defaultValue
}

func getEnvInt64(key string, defaultValue int64) int64 {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.ParseInt(value, 10, 64); err == nil {
			return intValue
		}
	}
	return defaultValue
}

func getEnvFloat(key string, defaultValue float64) float64 {
	if value := os.Getenv(key); value != "" {
		if floatValue, err := strconv.ParseFloat(value, 64); err == nil {
			return floatValue
		}
	}
	return defaultValue
}

func getEnvDuration(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if duration, err := time.ParseDuration(value); err == nil {
			return duration
		}
	}
	return defaultValue
}
