// pkg/config/database.go
package config

import (
	"errors"
	"fmt"
	"time"
)

// CatalogConfig holds PostgreSQL connection parameters for the run catalog
type CatalogConfig struct {
	Host     string
	Port     int
	User     string
	Password string
	Database string
	SSLMode  string

	// Connection pool settings
	MaxOpenConns    int
	MaxIdleConns    int
	ConnMaxLifetime time.Duration
	ConnMaxIdleTime time.Duration

	// Statement timeout
	StatementTimeout time.Duration
}

// LoadCatalogConfig loads catalog database configuration from environment variables
func LoadCatalogConfig() (*CatalogConfig, error) {
	database := getEnv("CATALOG_DB", "")
	if database == "" {
		return nil, errors.New("CATALOG_DB environment variable is required")
	}

	user := getEnv("CATALOG_DB_USER", "")
	if user == "" {
		return nil, errors.New("CATALOG_DB_USER environment variable is required")
	}

	password := getEnv("CATALOG_DB_PASSWORD", "")
	if password == "" {
		return nil, errors.New("CATALOG_DB_PASSWORD environment variable is required")
	}

	cfg := &CatalogConfig{
		Host:     getEnv("CATALOG_DB_HOST", "localhost"),
		Port:     getEnvAsInt("CATALOG_DB_PORT", 5432),
		User:     user,
		Password: password,
		Database: database,
		SSLMode:  getEnv("CATALOG_DB_SSLMODE", "disable"),

		MaxOpenConns:     getEnvAsInt("CATALOG_DB_MAX_OPEN_CONNS", 10),
		MaxIdleConns:     getEnvAsInt("CATALOG_DB_MAX_IDLE_CONNS", 5),
		ConnMaxLifetime:  time.Duration(getEnvAsInt("CATALOG_DB_CONN_MAX_LIFETIME_SECONDS", 1800)) * time.Second,
		ConnMaxIdleTime:  time.Duration(getEnvAsInt("CATALOG_DB_CONN_MAX_IDLE_TIME_SECONDS", 600)) * time.Second,
		StatementTimeout: time.Duration(getEnvAsInt("CATALOG_DB_STATEMENT_TIMEOUT_SECONDS", 300)) * time.Second,
	}

	return cfg, nil
}

// ConnectionString returns a formatted PostgreSQL connection string
func (c *CatalogConfig) ConnectionString() string {
	return fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		c.Host,
		c.Port,
		c.User,
		c.Password,
		c.Database,
		c.SSLMode,
	)
}
