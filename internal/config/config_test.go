package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestCSV(t *testing.T) {
	t.Parallel()

	assert.Nil(t, CSV(""))
	assert.Equal(t, []string{"a:9092", "b:9092"}, CSV(" a:9092, ,b:9092 "))
}

func TestEnvHelpers(t *testing.T) {
	t.Setenv("TEST_INT", "42")
	t.Setenv("TEST_BAD_INT", "forty")
	t.Setenv("TEST_BOOL", "true")
	t.Setenv("TEST_DUR", "90m")
	t.Setenv("TEST_NEG_DUR", "-1s")
	t.Setenv("TEST_FLOAT", "2.5")

	assert.Equal(t, 42, EnvIntDefault("TEST_INT", 1))
	assert.Equal(t, 1, EnvIntDefault("TEST_BAD_INT", 1))
	assert.Equal(t, 7, EnvIntDefault("TEST_MISSING_INT", 7))
	assert.True(t, EnvBoolDefault("TEST_BOOL", false))
	assert.True(t, EnvBoolDefault("TEST_MISSING_BOOL", true))
	assert.Equal(t, 90*time.Minute, EnvDurationDefault("TEST_DUR", time.Second))
	assert.Equal(t, time.Second, EnvDurationDefault("TEST_NEG_DUR", time.Second))
	assert.InDelta(t, 2.5, EnvFloatDefault("TEST_FLOAT", 1), 1e-9)
	assert.Equal(t, "def", EnvDefault("TEST_MISSING_STR", "def"))
}

func TestFromEnv_Defaults(t *testing.T) {
	for _, k := range []string{"SERVER_PORT", "SESSION_STORE", "SESSION_TTL", "CORS_ORIGINS", "ALLOW_ADMIN_SIGNUP", "ES_INDEX"} {
		t.Setenv(k, "")
	}

	cfg := FromEnv()
	assert.Equal(t, 5000, cfg.ServerPort)
	assert.Equal(t, SessionStoreMemory, cfg.SessionStore)
	assert.Equal(t, 24*time.Hour, cfg.SessionTTL)
	assert.Equal(t, []string{"http://localhost:5173"}, cfg.CORSOrigins)
	assert.True(t, cfg.AllowAdminSignup)
	assert.Equal(t, "products", cfg.ESIndex)
}

func TestFromEnv_Overrides(t *testing.T) {
	t.Setenv("SERVER_PORT", "8081")
	t.Setenv("SESSION_STORE", "redis")
	t.Setenv("KAFKA_BROKERS", "k1:9092,k2:9092")
	t.Setenv("CORS_ORIGINS", "https://shop.example.com")

	cfg := FromEnv()
	assert.Equal(t, 8081, cfg.ServerPort)
	assert.Equal(t, SessionStoreRedis, cfg.SessionStore)
	assert.Equal(t, []string{"k1:9092", "k2:9092"}, cfg.KafkaBrokers)
	assert.Equal(t, []string{"https://shop.example.com"}, cfg.CORSOrigins)
}
