package mcpserver

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

// clearMocksmithEnv clears all MOCKSMITH_* env vars to isolate tests from
// the ambient environment.
func clearMocksmithEnv(t *testing.T) {
	t.Helper()
	for _, key := range []string{
		"MOCKSMITH_CACHE_ENABLED", "MOCKSMITH_CACHE_MAX_SIZE",
		"MOCKSMITH_CACHE_FILE_TTL", "MOCKSMITH_CACHE_URL_TTL",
		"MOCKSMITH_CACHE_CONTENT_TTL", "MOCKSMITH_CACHE_SWEEP_INTERVAL",
		"MOCKSMITH_EXCHANGE_LIMIT", "MOCKSMITH_MAX_LIMIT",
		"MOCKSMITH_MAX_INLINE_SIZE", "MOCKSMITH_ALLOW_PRIVATE_IPS",
	} {
		t.Setenv(key, "")
	}
}

func TestLoadConfigDefaults(t *testing.T) {
	clearMocksmithEnv(t)

	c := loadConfig()

	assert.True(t, c.CacheEnabled)
	assert.Equal(t, 10, c.CacheMaxSize)
	assert.Equal(t, 15*time.Minute, c.CacheFileTTL)
	assert.Equal(t, 5*time.Minute, c.CacheURLTTL)
	assert.Equal(t, 15*time.Minute, c.CacheContentTTL)
	assert.Equal(t, 60*time.Second, c.CacheSweepInterval)
	assert.Equal(t, 100, c.ExchangeLimit)
	assert.Equal(t, 1000, c.MaxLimit)
	assert.Equal(t, int64(10*1024*1024), c.MaxInlineSize)
	assert.False(t, c.AllowPrivateIPs)
}

func TestLoadConfigEnvOverrides(t *testing.T) {
	clearMocksmithEnv(t)
	t.Setenv("MOCKSMITH_CACHE_ENABLED", "false")
	t.Setenv("MOCKSMITH_CACHE_MAX_SIZE", "50")
	t.Setenv("MOCKSMITH_CACHE_FILE_TTL", "30m")
	t.Setenv("MOCKSMITH_EXCHANGE_LIMIT", "200")
	t.Setenv("MOCKSMITH_MAX_INLINE_SIZE", "1024")
	t.Setenv("MOCKSMITH_ALLOW_PRIVATE_IPS", "true")

	c := loadConfig()

	assert.False(t, c.CacheEnabled)
	assert.Equal(t, 50, c.CacheMaxSize)
	assert.Equal(t, 30*time.Minute, c.CacheFileTTL)
	assert.Equal(t, 200, c.ExchangeLimit)
	assert.Equal(t, int64(1024), c.MaxInlineSize)
	assert.True(t, c.AllowPrivateIPs)
}

func TestLoadConfigInvalidValues(t *testing.T) {
	clearMocksmithEnv(t)
	t.Setenv("MOCKSMITH_CACHE_ENABLED", "not-a-bool")
	t.Setenv("MOCKSMITH_CACHE_MAX_SIZE", "-3")
	t.Setenv("MOCKSMITH_CACHE_FILE_TTL", "soon")
	t.Setenv("MOCKSMITH_EXCHANGE_LIMIT", "zero")

	c := loadConfig()

	assert.True(t, c.CacheEnabled)
	assert.Equal(t, 10, c.CacheMaxSize)
	assert.Equal(t, 15*time.Minute, c.CacheFileTTL)
	assert.Equal(t, 100, c.ExchangeLimit)
}
