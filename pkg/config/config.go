// pkg/config/config.go
package config

import (
	"errors"
	"os"
	"strconv"
)

// Config represents the application configuration
type Config struct {
	// Dataset storage
	DataDir string

	// Injection settings
	Seed           int64
	CorruptionRate float64
	Strategy       string

	// Optional run catalog
	Catalog *CatalogConfig

	// Logging
	LogLevel  string
	LogFormat string
}

// LoadConfig loads configuration from environment variables
func LoadConfig() (*Config, error) {
	cfg := &Config{
		// Default values
		DataDir:        getEnv("NOISEGEN_DATA_DIR", "data"),
		Seed:           getEnvAsInt64("NOISEGEN_SEED", 0),
		CorruptionRate: getEnvAsFloat("NOISEGEN_CORRUPTION_RATE", 0.1),
		Strategy:       getEnv("NOISEGEN_STRATEGY", "balanced"),
		LogLevel:       getEnv("LOG_LEVEL", "info"),
		LogFormat:      getEnv("LOG_FORMAT", "json"),
	}

	// The catalog is optional: runs without a database simply skip recording.
	if os.Getenv("CATALOG_DB") != "" {
		catCfg, err := LoadCatalogConfig()
		if err != nil {
			return nil, errors.New("failed to load catalog configuration: " + err.Error())
		}
		cfg.Catalog = catCfg
	}

	// Validate configuration
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// Validate ensures all required configuration is present and valid
func (c *Config) Validate() error {
	if c.DataDir == "" {
		return errors.New("data directory is required")
	}

	if c.CorruptionRate < 0 || c.CorruptionRate > 1 {
		return errors.New("corruption rate must be within [0, 1]")
	}

	if c.Strategy == "" {
		return errors.New("strategy name is required")
	}

	return nil
}

// Helper functions for environment variables
func getEnv(key, defaultValue string) string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	return value
}

func getEnvAsInt(key string, defaultValue int) int {
	valueStr := getEnv(key, "")
	if valueStr == "" {
		return defaultValue
	}

	value, err := strconv.Atoi(valueStr)
	if err != nil {
		return defaultValue
	}
	return value
}

func getEnvAsInt64(key string, defaultValue int64) int64 {
	valueStr := getEnv(key, "")
	if valueStr == "" {
		return defaultValue
	}

	value, err := strconv.ParseInt(valueStr, 10, 64)
	if err != nil {
		return defaultValue
	}
	return value
}

func getEnvAsFloat(key string, defaultValue float64) float64 {
	valueStr := getEnv(key, "")
	if valueStr == "" {
		return defaultValue
	}

	value, err := strconv.ParseFloat(valueStr, 64)
	if err != nil {
		return defaultValue
	}
	return value
}
