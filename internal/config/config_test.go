package config

import (
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestLoad(t *testing.T) {
	t.Setenv("DB_HOST", "test-host")
	t.Setenv("DB_MAX_OPEN_CONNS", "20")
	t.Setenv("API_PREFIX", "v1/")
	t.Setenv("STORAGE_DRIVER", "MEMORY")

	cfg := Load()

	assert.Equal(t, "test-host", cfg.Database.Host)
	assert.Equal(t, 20, cfg.Database.MaxOpenConns)
	assert.Equal(t, "/v1", cfg.APIPrefix)
	assert.Equal(t, StorageMemory, cfg.StorageDriver)
}

func TestLoad_Defaults(t *testing.T) {
	for _, k := range []string{"PORT", "API_PREFIX", "APP_TIMEZONE", "STORAGE_DRIVER", "CORS_ALLOW_ORIGINS", "SHUTDOWN_TIMEOUT_SEC"} {
		t.Setenv(k, "")
	}

	cfg := Load()

	assert.Equal(t, "8080", cfg.Port)
	assert.Equal(t, "/api", cfg.APIPrefix)
	assert.Equal(t, "UTC", cfg.Timezone)
	assert.Equal(t, StoragePostgres, cfg.StorageDriver)
	assert.Equal(t, "*", cfg.CORSAllowOrigins)
	assert.Equal(t, 10*time.Second, cfg.ShutdownTimeout())
}

func TestLocation(t *testing.T) {
	cfg := &AppConfig{Timezone: "Local"}
	assert.Equal(t, time.Local, cfg.Location())

	cfg.Timezone = "Not/AZone"
	assert.Equal(t, time.UTC, cfg.Location())
}

func TestNormalizePrefix(t *testing.T) {
	assert.Equal(t, "/api", normalizePrefix("/api"))
	assert.Equal(t, "/api", normalizePrefix("api/"))
	assert.Equal(t, "", normalizePrefix("/"))
	assert.Equal(t, "", normalizePrefix(" "))
}

func TestGetEnv(t *testing.T) {
	key := "TEST_ENV_VAR"
	os.Setenv(key, "value")
	defer os.Unsetenv(key)

	assert.Equal(t, "value", getEnv(key, "default"))
	assert.Equal(t, "default", getEnv("NON_EXISTENT", "default"))
}

func TestGetEnvInt(t *testing.T) {
	key := "TEST_INT_VAR"

	os.Setenv(key, "123")
	assert.Equal(t, 123, getEnvInt(key, 0))

	os.Setenv(key, "invalid")
	assert.Equal(t, 10, getEnvInt(key, 10))

	os.Unsetenv(key)
	assert.Equal(t, 10, getEnvInt(key, 10))
}
