package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_RequiresDatabaseURLAndSecret(t *testing.T) {
	t.Setenv("DATABASE_URL", "")
	t.Setenv("JWT_SECRET", "s")
	_, err := Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "DATABASE_URL")

	t.Setenv("DATABASE_URL", "sqlite::memory:")
	t.Setenv("JWT_SECRET", "")
	_, err = Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "JWT_SECRET")
}

func TestLoad_Defaults(t *testing.T) {
	t.Setenv("DATABASE_URL", "sqlite::memory:")
	t.Setenv("JWT_SECRET", "secret")
	t.Setenv("API_AUTH_REQUIRED", "")
	t.Setenv("KAFKA_BROKERS", "k1:9092, k2:9092")
	t.Setenv("ACCESS_TOKEN_TTL", "")

	cfg, err := Load()
	require.NoError(t, err)
	assert.True(t, cfg.AuthRequired)
	assert.Equal(t, 12*time.Hour, cfg.AccessTokenTTL)
	assert.Equal(t, []string{"k1:9092", "k2:9092"}, cfg.KafkaBrokers)
	assert.Equal(t, []byte("secret"), cfg.JWTSecret)
}

func TestLoadConsole(t *testing.T) {
	t.Setenv("API_URL", "http://api:8080")
	t.Setenv("CONSOLE_PORT", "")
	t.Setenv("COOKIE_SECURE", "true")

	cfg, err := LoadConsole()
	require.NoError(t, err)
	assert.Equal(t, "8501", cfg.Port)
	assert.Equal(t, "http://api:8080", cfg.APIURL)
	assert.True(t, cfg.CookieSecure)
}
