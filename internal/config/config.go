package config

import (
	"os"

	"github.com/joho/godotenv"
)

// Config holds all environment-driven configuration for the CLI
type Config struct {
	// Server overrides the configured server address (RENTD_SERVER)
	Server string

	// Logging Configuration
	Logging LoggingConfig
}

// LoggingConfig holds logging-related configuration
type LoggingConfig struct {
	Level  string
	Format string // json, console
}

// Load loads configuration from environment variables
func Load() *Config {
	// Load .env files (fails silently if files don't exist)
	_ = godotenv.Load(".env")
	_ = godotenv.Load(".env.local")

	logLevel := os.Getenv("RENTD_LOG_LEVEL")
	if logLevel == "" {
		logLevel = "warn"
	}

	logFormat := os.Getenv("RENTD_LOG_FORMAT")
	if logFormat == "" {
		logFormat = "console"
	}

	return &Config{
		Server: os.Getenv("RENTD_SERVER"),
		Logging: LoggingConfig{
			Level:  logLevel,
			Format: logFormat,
		},
	}
}
