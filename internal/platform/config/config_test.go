package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFromEnv_Defaults(t *testing.T) {
	for _, key := range []string{"LAHU_ADDR", "ACCESS_TOKEN_TTL", "DATABASE_URL", "REDIS_URL", "KAFKA_BROKERS", "CORS_ALLOWED_ORIGINS", "JWT_SIGNING_KEY", "RATE_LIMIT_ENABLED", "RATE_LIMIT_AUTH_PER_MINUTE", "TRUSTED_PROXIES"} {
		t.Setenv(key, "")
	}

	cfg := FromEnv()
	assert.Equal(t, ":8080", cfg.Addr)
	assert.Equal(t, 30*time.Minute, cfg.Auth.AccessTokenTTL)
	assert.Equal(t, []string{"*"}, cfg.CORSOrigins)
	assert.Empty(t, cfg.Database.URL)
	assert.Empty(t, cfg.Kafka.Brokers)
	assert.True(t, cfg.UsingDefaultSigningKey())
	assert.True(t, cfg.RateLimit.Enabled)
	assert.Equal(t, 10, cfg.RateLimit.AuthPerMinute)
	assert.Empty(t, cfg.TrustedProxies)
	require.NoError(t, cfg.Validate())
}

func TestFromEnv_Overrides(t *testing.T) {
	t.Setenv("LAHU_ADDR", ":9090")
	t.Setenv("ACCESS_TOKEN_TTL", "15m")
	t.Setenv("REDIS_POOL_SIZE", "42")
	t.Setenv("KAFKA_BROKERS", "kafka-1:9092, kafka-2:9092,kafka-1:9092")
	t.Setenv("JWT_SIGNING_KEY", "a-much-longer-production-secret")
	t.Setenv("TRUSTED_PROXIES", "10.0.0.0/8, 192.168.1.5")

	cfg := FromEnv()
	assert.Equal(t, ":9090", cfg.Addr)
	assert.Equal(t, 15*time.Minute, cfg.Auth.AccessTokenTTL)
	assert.Equal(t, 42, cfg.Redis.PoolSize)
	assert.Equal(t, []string{"kafka-1:9092", "kafka-2:9092"}, cfg.Kafka.Brokers)
	assert.False(t, cfg.UsingDefaultSigningKey())
	assert.Equal(t, []string{"10.0.0.0/8", "192.168.1.5"}, cfg.TrustedProxies)
	require.NoError(t, cfg.Validate())
}

func TestFromEnv_MalformedValuesFallBack(t *testing.T) {
	t.Setenv("ACCESS_TOKEN_TTL", "thirty minutes")
	t.Setenv("REDIS_POOL_SIZE", "many")

	cfg := FromEnv()
	assert.Equal(t, 30*time.Minute, cfg.Auth.AccessTokenTTL)
	assert.Equal(t, 10, cfg.Redis.PoolSize)
}

func TestValidate(t *testing.T) {
	cfg := FromEnv()
	cfg.Auth.JWTSigningKey = "short"
	cfg.Auth.AccessTokenTTL = 0
	cfg.Seed.AdminEmail = "admin@example.com"
	cfg.RateLimit = RateLimitConfig{Enabled: true, AuthPerMinute: 0, DefaultPerMinute: 300}
	cfg.TrustedProxies = []string{"lb.internal"}

	err := cfg.Validate()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "JWT_SIGNING_KEY")
	assert.Contains(t, err.Error(), "ACCESS_TOKEN_TTL")
	assert.Contains(t, err.Error(), "SEED_ADMIN_PASSWORD")
	assert.Contains(t, err.Error(), "RATE_LIMIT_ENABLED")
	assert.Contains(t, err.Error(), "TRUSTED_PROXIES")
}
