// Package config reads the weightlog server configuration from the environment.
package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

// Storage backends selectable with STORAGE.
const (
	StorageSQLite   = "sqlite"
	StoragePostgres = "postgres"
	StorageMemory   = "memory"
)

// Config captures runtime configuration values for the server.
type Config struct {
	Addr            string
	WebDir          string
	Storage         string
	SQLitePath      string
	DatabaseURL     string
	ChartWidth      int
	ChartHeight     int
	ShutdownTimeout time.Duration
}

// Load reads environment variables into Config, applying defaults for local use.
func Load() Config {
	return Config{
		Addr:            getEnv("ADDR", ":8080"),
		WebDir:          getEnv("WEB_DIR", "web"),
		Storage:         strings.ToLower(getEnv("STORAGE", StorageSQLite)),
		SQLitePath:      getEnv("SQLITE_PATH", "weightlog.db"),
		DatabaseURL:     getEnv("DATABASE_URL", ""),
		ChartWidth:      getIntEnv("CHART_WIDTH", 800),
		ChartHeight:     getIntEnv("CHART_HEIGHT", 400),
		ShutdownTimeout: getDurationEnv("SHUTDOWN_TIMEOUT", 10*time.Second),
	}
}

// Validate reports configuration combinations the server cannot start with.
func (c Config) Validate() error {
	switch c.Storage {
	case StorageSQLite:
		if c.SQLitePath == "" {
			return fmt.Errorf("SQLITE_PATH is required for %s storage", c.Storage)
		}
	case StoragePostgres:
		if c.DatabaseURL == "" {
			return fmt.Errorf("DATABASE_URL is required for %s storage", c.Storage)
		}
	case StorageMemory:
	default:
		return fmt.Errorf("unknown STORAGE %q", c.Storage)
	}
	if c.ChartWidth <= 0 || c.ChartHeight <= 0 {
		return fmt.Errorf("chart size must be positive, got %dx%d", c.ChartWidth, c.ChartHeight)
	}
	return nil
}

func getEnv(key, fallback string) string {
	if value, ok := os.LookupEnv(key); ok && value != "" {
		return value
	}
	return fallback
}

func getIntEnv(key string, fallback int) int {
	if value, ok := os.LookupEnv(key); ok && value != "" {
		if parsed, err := strconv.Atoi(value); err == nil {
			return parsed
		}
	}
	return fallback
}

func getDurationEnv(key string, fallback time.Duration) time.Duration {
	if value, ok := os.LookupEnv(key); ok && value != "" {
		if parsed, err := time.ParseDuration(value); err == nil {
			return parsed
		}
	}
	return fallback
}
