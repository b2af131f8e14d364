package config

import (
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestLoad(t *testing.T) {
	t.Setenv("DB_PATH", "/tmp/test-facts.db")
	t.Setenv("DB_MAX_OPEN_CONNS", "20")
	t.Setenv("UPSTREAM_TIMEOUT", "2s")
	t.Setenv("ARCHIVE_USE_SSL", "true")

	cfg := Load()

	assert.Equal(t, "/tmp/test-facts.db", cfg.Database.Path)
	assert.Equal(t, 20, cfg.Database.MaxOpenConns)
	assert.Equal(t, 2*time.Second, cfg.Upstream.Timeout)
	assert.True(t, cfg.Archive.UseSSL)
}

func TestLoadDefaults(t *testing.T) {
	for _, key := range []string{"PORT", "DB_PATH", "UPSTREAM_URL", "UPSTREAM_TIMEOUT", "ARCHIVE_ENDPOINT"} {
		t.Setenv(key, "")
	}

	cfg := Load()

	assert.Equal(t, "8080", cfg.Port)
	assert.Equal(t, "facts.db", cfg.Database.Path)
	assert.Equal(t, "https://catfact.ninja/fact", cfg.Upstream.URL)
	assert.Equal(t, 5*time.Second, cfg.Upstream.Timeout)
	assert.False(t, cfg.Archive.Enabled())
}

func TestLocation(t *testing.T) {
	cfg := &AppConfig{Timezone: "Local"}
	assert.Equal(t, time.Local, cfg.Location())

	cfg.Timezone = "Not/AZone"
	assert.Equal(t, time.UTC, cfg.Location())
}

func TestGetEnv(t *testing.T) {
	key := "TEST_ENV_VAR"
	os.Setenv(key, "value")
	defer os.Unsetenv(key)

	assert.Equal(t, "value", getEnv(key, "default"))
	assert.Equal(t, "default", getEnv("NON_EXISTENT", "default"))
}

func TestGetEnvBool(t *testing.T) {
	key := "TEST_BOOL_VAR"

	os.Setenv(key, "true")
	assert.True(t, getEnvBool(key, false))

	os.Setenv(key, "false")
	assert.False(t, getEnvBool(key, true))

	os.Setenv(key, "invalid")
	assert.True(t, getEnvBool(key, true))

	os.Unsetenv(key)
	assert.True(t, getEnvBool(key, true))
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

func TestGetEnvDuration(t *testing.T) {
	key := "TEST_DURATION_VAR"

	os.Setenv(key, "750ms")
	assert.Equal(t, 750*time.Millisecond, getEnvDuration(key, time.Second))

	os.Setenv(key, "-1s")
	assert.Equal(t, time.Second, getEnvDuration(key, time.Second))

	os.Setenv(key, "soon")
	assert.Equal(t, time.Second, getEnvDuration(key, time.Second))

	os.Unsetenv(key)
	assert.Equal(t, time.Second, getEnvDuration(key, time.Second))
}
