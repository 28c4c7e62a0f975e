package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Config contains runtime configuration required by the service.
type Config struct {
	DatabaseURL      string
	HTTPAddr         string
	LogLevel         string
	ShutdownTimeout  time.Duration
	ListDefaultLimit int
	ListMaxLimit     int
}

// DefaultDatabaseURL keeps local development self-contained.
const DefaultDatabaseURL = "badger://./tracking_service.db"

// Load reads values from the environment, after applying an optional .env
// file in the working directory.
//
// DATABASE_URL (or DB_URL) schemes: postgres://, postgresql://, badger://<dir>, memory://
func Load() (Config, error) {
	_ = godotenv.Load()

	cfg := Config{
		DatabaseURL:      DefaultDatabaseURL,
		HTTPAddr:         ":8000",
		LogLevel:         "info",
		ShutdownTimeout:  10 * time.Second,
		ListDefaultLimit: 20,
		ListMaxLimit:     500,
	}

	if v := env("DATABASE_URL"); v != "" {
		cfg.DatabaseURL = v
	} else if v := env("DB_URL"); v != "" {
		cfg.DatabaseURL = v
	}
	if v := env("HTTP_ADDR"); v != "" {
		cfg.HTTPAddr = v
	}
	if v := env("LOG_LEVEL"); v != "" {
		cfg.LogLevel = strings.ToLower(v)
	}

	if v := env("SHUTDOWN_TIMEOUT"); v != "" {
		d, err := time.ParseDuration(v)
		if err != nil || d <= 0 {
			return Config{}, fmt.Errorf("SHUTDOWN_TIMEOUT must be a positive duration, got %q", v)
		}
		cfg.ShutdownTimeout = d
	}

	var err error
	if cfg.ListDefaultLimit, err = positiveInt("LIST_DEFAULT_LIMIT", cfg.ListDefaultLimit); err != nil {
		return Config{}, err
	}
	if cfg.ListMaxLimit, err = positiveInt("LIST_MAX_LIMIT", cfg.ListMaxLimit); err != nil {
		return Config{}, err
	}
	if cfg.ListDefaultLimit > cfg.ListMaxLimit {
		return Config{}, errors.New("LIST_DEFAULT_LIMIT must not exceed LIST_MAX_LIMIT")
	}

	return cfg, nil
}

func env(key string) string {
	return strings.TrimSpace(os.Getenv(key))
}

func positiveInt(key string, fallback int) (int, error) {
	v := env(key)
	if v == "" {
		return fallback, nil
	}
	n, err := strconv.Atoi(v)
	if err != nil || n <= 0 {
		return 0, fmt.Errorf("%s must be a positive integer, got %q", key, v)
	}
	return n, nil
}
