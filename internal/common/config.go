package common

import (
	"os"
	"strconv"
	"time"
)

// Config holds all application configuration
type Config struct {
	Database DatabaseConfig
	Server   ServerConfig
	LLM      LLMConfig
}

// DatabaseConfig holds database-related configuration
type DatabaseConfig struct {
	DSN        string // Postgres DSN; empty means local sqlite at SQLitePath
	SQLitePath string
}

// ServerConfig holds server-related configuration
type ServerConfig struct {
	HTTPAddr string
}

// LLMConfig holds extraction-backend configuration
type LLMConfig struct {
	Backend     string // "openai" or "fixture"
	Model       string
	APIKey      string
	BaseURL     string
	Temperature float32
	Timeout     time.Duration
}

// LoadConfig loads configuration from environment variables
func LoadConfig() *Config {
	return &Config{
		Database: DatabaseConfig{
			DSN:        getEnv("DB_DSN", ""),
			SQLitePath: getEnv("SQLITE_PATH", "sheetforge.db"),
		},
		Server: ServerConfig{
			HTTPAddr: getEnv("HTTP_ADDR", ":8000"),
		},
		LLM: LLMConfig{
			Backend:     getEnv("EXTRACTOR_BACKEND", "openai"),
			Model:       getEnv("OPENAI_MODEL", "gpt-4o-mini"),
			APIKey:      getEnv("OPENAI_API_KEY", ""),
			BaseURL:     getEnv("OPENAI_BASE_URL", ""),
			Temperature: getEnvAsFloat32("OPENAI_TEMPERATURE", 0.0),
			Timeout:     getEnvAsDuration("OPENAI_TIMEOUT", 45*time.Second),
		},
	}
}

// Helper functions for environment variable parsing
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvAsFloat32(key string, defaultValue float32) float32 {
	if value := os.Getenv(key); value != "" {
		if floatVal, err := strconv.ParseFloat(value, 32); err == nil {
			return float32(floatVal)
		}
	}
	return defaultValue
}

func getEnvAsDuration(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if duration, err := time.ParseDuration(value); err == nil {
			return duration
		}
	}
	return defaultValue
}

// Validate checks the parts of the configuration that must be present
// before the process can serve traffic. A missing OpenAI key with the live
// backend selected is a configuration error, never a silent fixture fallback.
func (c *Config) Validate() error {
	if c.Server.HTTPAddr == "" {
		return NewAppError("CONFIG_ERROR", "HTTP_ADDR is required", ErrConfiguration)
	}
	switch c.LLM.Backend {
	case "openai":
		if c.LLM.APIKey == "" {
			return NewAppError("CONFIG_ERROR",
				"OPENAI_API_KEY is required for the live extraction backend; "+
					"set it in the environment or select EXTRACTOR_BACKEND=fixture for offline runs",
				ErrConfiguration)
		}
	case "fixture":
		// explicitly offline, nothing to check
	default:
		return NewAppError("CONFIG_ERROR",
			"EXTRACTOR_BACKEND must be \"openai\" or \"fixture\", got "+strconv.Quote(c.LLM.Backend),
			ErrConfiguration)
	}
	return nil
}
