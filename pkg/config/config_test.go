package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCSV(t *testing.T) {
	assert.Nil(t, CSV(""))
	assert.Equal(t, []string{"a:9092", "b:9092"}, CSV(" a:9092, ,b:9092 "))
}

func TestEnvHelpers(t *testing.T) {
	t.Setenv("SHOP_INT", "42")
	t.Setenv("SHOP_BAD_INT", "forty")
	t.Setenv("SHOP_BOOL", "false")
	t.Setenv("SHOP_DUR", "90s")
	t.Setenv("SHOP_FLOAT", "0.5")

	assert.Equal(t, 42, EnvIntDefault("SHOP_INT", 1))
	assert.Equal(t, 1, EnvIntDefault("SHOP_BAD_INT", 1))
	assert.Equal(t, 7, EnvIntDefault("SHOP_MISSING", 7))
	assert.False(t, EnvBoolDefault("SHOP_BOOL", true))
	assert.True(t, EnvBoolDefault("SHOP_MISSING", true))
	assert.Equal(t, 90*time.Second, EnvDurationDefault("SHOP_DUR", time.Minute))
	assert.Equal(t, 0.5, EnvFloatDefault("SHOP_FLOAT", 2))
	assert.Equal(t, "fallback", EnvDefault("SHOP_MISSING", "fallback"))
}

func TestRequireNonEmpty(t *testing.T) {
	require.NoError(t, RequireNonEmpty("x", "X"))
	err := RequireNonEmpty("", "DATABASE_URL")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "DATABASE_URL")
}
