package config

import (
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	t.Setenv("KV_BACKEND", "")
	t.Setenv("UPSTREAM_BASE_URL", "")
	t.Setenv("WARM_INTERVAL_MINUTES", "")
	t.Setenv("WARM_LEAGUES", "")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, BackendMemory, cfg.KVBackend)
	assert.Equal(t, "http://stats.nesn.com", cfg.UpstreamBaseURL)
	assert.Equal(t, 15*time.Minute, cfg.CacheDefaultTTL)
	assert.Equal(t, slog.LevelInfo, cfg.LogLevel)
	assert.True(t, cfg.CacheEnabled)
	assert.Zero(t, cfg.WarmInterval)
	assert.Equal(t, LeagueCodes(), cfg.WarmLeagues)
}

func TestLoadOverrides(t *testing.T) {
	t.Setenv("UPSTREAM_BASE_URL", "http://example.test/")
	t.Setenv("LOG_LEVEL", "debug")
	t.Setenv("CORS_ALLOW_ORIGINS", "https://a.test, ,https://b.test")
	t.Setenv("SCHEDULE_FETCH_CONCURRENCY", "0")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "http://example.test", cfg.UpstreamBaseURL)
	assert.Equal(t, slog.LevelDebug, cfg.LogLevel)
	assert.Equal(t, []string{"https://a.test", "https://b.test"}, cfg.CORSAllowOrigins)
	assert.Equal(t, 1, cfg.ScheduleFetchConcurrency)
}

func TestLoadRejectsBadBackend(t *testing.T) {
	t.Setenv("KV_BACKEND", "redis")
	_, err := Load()
	require.Error(t, err)

	t.Setenv("KV_BACKEND", "postgres")
	t.Setenv("DATABASE_URL", "")
	_, err = Load()
	require.Error(t, err)
}

func TestLeagueLookup(t *testing.T) {
	l, ok := League("NFL")
	require.True(t, ok)
	assert.Equal(t, "fb", l.Sport)

	_, ok = League("xfl")
	assert.False(t, ok)

	assert.Equal(t, []string{"epl", "mlb", "mls", "nba", "nfl", "nhl"}, LeagueCodes())
}
