package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func clearEnv(t *testing.T) {
	for _, k := range []string{
		"DATABASE_URL", "DB_URL", "HTTP_ADDR", "LOG_LEVEL",
		"SHUTDOWN_TIMEOUT", "LIST_DEFAULT_LIMIT", "LIST_MAX_LIMIT",
	} {
		t.Setenv(k, "")
	}
}

func TestLoadDefaults(t *testing.T) {
	clearEnv(t)

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, DefaultDatabaseURL, cfg.DatabaseURL)
	assert.Equal(t, ":8000", cfg.HTTPAddr)
	assert.Equal(t, "info", cfg.LogLevel)
	assert.Equal(t, 10*time.Second, cfg.ShutdownTimeout)
	assert.Equal(t, 20, cfg.ListDefaultLimit)
	assert.Equal(t, 500, cfg.ListMaxLimit)
}

func TestLoadOverrides(t *testing.T) {
	clearEnv(t)
	t.Setenv("DB_URL", "postgres://legacy")
	t.Setenv("DATABASE_URL", " postgres://user:pw@db:5432/tracking ")
	t.Setenv("HTTP_ADDR", ":9090")
	t.Setenv("LOG_LEVEL", "DEBUG")
	t.Setenv("SHUTDOWN_TIMEOUT", "3s")
	t.Setenv("LIST_DEFAULT_LIMIT", "5")
	t.Setenv("LIST_MAX_LIMIT", "50")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "postgres://user:pw@db:5432/tracking", cfg.DatabaseURL)
	assert.Equal(t, ":9090", cfg.HTTPAddr)
	assert.Equal(t, "debug", cfg.LogLevel)
	assert.Equal(t, 3*time.Second, cfg.ShutdownTimeout)
	assert.Equal(t, 5, cfg.ListDefaultLimit)
	assert.Equal(t, 50, cfg.ListMaxLimit)
}

func TestLoadLegacyDBURL(t *testing.T) {
	clearEnv(t)
	t.Setenv("DB_URL", "postgres://legacy")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "postgres://legacy", cfg.DatabaseURL)
}

func TestLoadInvalid(t *testing.T) {
	tests := []struct {
		name  string
		key   string
		value string
	}{
		{"bad duration", "SHUTDOWN_TIMEOUT", "soon"},
		{"negative duration", "SHUTDOWN_TIMEOUT", "-1s"},
		{"non numeric limit", "LIST_DEFAULT_LIMIT", "ten"},
		{"zero limit", "LIST_MAX_LIMIT", "0"},
		{"default above max", "LIST_DEFAULT_LIMIT", "1000"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			clearEnv(t)
			t.Setenv(tt.key, tt.value)

			_, err := Load()
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.key)
		})
	}
}
