package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLoadDefaults(t *testing.T) {
	cfg := Load()

	assert.Equal(t, "development", cfg.AppEnv)
	assert.Equal(t, "8080", cfg.AppPort)
	assert.Equal(t, "sqlite", cfg.DBDriver)
	assert.Equal(t, "mindspace.db", cfg.DBPath)
	assert.Equal(t, "nats://localhost:4222", cfg.NatsURL)
	assert.Equal(t, 24, cfg.JWTExpirationHours)
	assert.Equal(t, 12, cfg.SweepIntervalHours)
	assert.Empty(t, cfg.AuthPasswordHash)
}

func TestLoadFromEnvironment(t *testing.T) {
	t.Setenv("APP_PORT", "9090")
	t.Setenv("DB_DRIVER", "postgres")
	t.Setenv("SWEEP_INTERVAL_HOURS", "6")
	t.Setenv("AUTH_PASSWORD_HASH", "$2a$10$fakehash")

	cfg := Load()

	assert.Equal(t, "9090", cfg.AppPort)
	assert.Equal(t, "postgres", cfg.DBDriver)
	assert.Equal(t, 6, cfg.SweepIntervalHours)
	assert.Equal(t, "$2a$10$fakehash", cfg.AuthPasswordHash)
}

func TestLoadIgnoresInvalidIntegers(t *testing.T) {
	t.Setenv("SWEEP_INTERVAL_HOURS", "often")

	cfg := Load()
	assert.Equal(t, 12, cfg.SweepIntervalHours)
}
