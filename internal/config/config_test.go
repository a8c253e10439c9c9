package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	t.Setenv("DATABASE_URL", "")
	t.Setenv("LISTEN_ADDR", "")
	t.Setenv("STORAGE_PATH", "")
	t.Setenv("CACHE_MAX_AGE_MINUTES", "")
	t.Setenv("USE_MEMORY_STORE", "")

	require.NoError(t, Load())
	assert.Equal(t, ":8080", Current.ListenAddr)
	assert.Equal(t, "storage", Current.StoragePath)
	assert.Equal(t, 30*time.Minute, Current.CacheMaxAge)
	assert.False(t, Current.UseMemoryStore)
}

func TestCacheControl(t *testing.T) {
	c := Config{CacheMaxAge: 30 * time.Minute}
	assert.Equal(t, "public, s-maxage=1800", c.CacheControl())

	c.CacheMaxAge = time.Minute
	assert.Equal(t, "public, s-maxage=60", c.CacheControl())
}

func TestLoadOverrides(t *testing.T) {
	t.Setenv("CACHE_MAX_AGE_MINUTES", "5")
	t.Setenv("USE_MEMORY_STORE", "true")

	require.NoError(t, Load())
	assert.Equal(t, 5*time.Minute, Current.CacheMaxAge)
	assert.True(t, Current.UseMemoryStore)
}
