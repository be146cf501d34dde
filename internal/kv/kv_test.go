package kv

import (
	"context"
	"log/slog"
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/albapepper/scoracle-tables/internal/config"
	"github.com/albapepper/scoracle-tables/internal/db"
)

type clock struct{ t time.Time }

func (c *clock) now() time.Time { return c.t }

// exerciseStore runs the shared contract against a backend whose clock can be
// advanced. advance may be nil for backends that use the wall clock.
func exerciseStore(t *testing.T, s Store, advance func(time.Duration)) {
	ctx := context.Background()

	_, err := s.Get(ctx, "missing")
	require.ErrorIs(t, err, ErrNotFound)

	require.NoError(t, s.Set(ctx, "a", []byte("one"), time.Minute))
	got, err := s.Get(ctx, "a")
	require.NoError(t, err)
	assert.Equal(t, []byte("one"), got)

	require.NoError(t, s.Set(ctx, "a", []byte("two"), time.Minute))
	got, err = s.Get(ctx, "a")
	require.NoError(t, err)
	assert.Equal(t, []byte("two"), got)

	ok, err := s.SetNX(ctx, "registry", []byte("first"))
	require.NoError(t, err)
	assert.True(t, ok)
	ok, err = s.SetNX(ctx, "registry", []byte("second"))
	require.NoError(t, err)
	assert.False(t, ok)
	got, err = s.Get(ctx, "registry")
	require.NoError(t, err)
	assert.Equal(t, []byte("first"), got)

	require.NoError(t, s.Delete(ctx, "registry"))
	_, err = s.Get(ctx, "registry")
	require.ErrorIs(t, err, ErrNotFound)

	if advance == nil {
		return
	}

	require.NoError(t, s.Set(ctx, "short", []byte("x"), time.Second))
	require.NoError(t, s.Set(ctx, "forever", []byte("y"), 0))
	advance(2 * time.Second)

	_, err = s.Get(ctx, "short")
	require.ErrorIs(t, err, ErrNotFound)
	got, err = s.Get(ctx, "forever")
	require.NoError(t, err)
	assert.Equal(t, []byte("y"), got)

	// an expired key may be claimed by SetNX
	ok, err = s.SetNX(ctx, "short", []byte("claimed"))
	require.NoError(t, err)
	assert.True(t, ok)

	require.NoError(t, s.Set(ctx, "stale", []byte("z"), time.Second))
	advance(2 * time.Second)
	n, err := s.Purge(ctx)
	require.NoError(t, err)
	assert.EqualValues(t, 1, n)
}

func TestMemoryStore(t *testing.T) {
	c := &clock{t: time.Unix(1_700_000_000, 0)}
	m := NewMemory(0)
	m.now = c.now
	defer m.Close()

	exerciseStore(t, m, func(d time.Duration) { c.t = c.t.Add(d) })
}

func TestMemoryStoreCopiesValues(t *testing.T) {
	m := NewMemory(0)
	defer m.Close()

	buf := []byte("abc")
	require.NoError(t, m.Set(context.Background(), "k", buf, 0))
	buf[0] = 'z'

	got, err := m.Get(context.Background(), "k")
	require.NoError(t, err)
	assert.Equal(t, "abc", string(got))
}

func TestSQLiteStore(t *testing.T) {
	s, err := OpenSQLite(context.Background(), ":memory:")
	require.NoError(t, err)
	defer s.Close()

	c := &clock{t: time.Unix(1_700_000_000, 0)}
	s.now = c.now

	exerciseStore(t, s, func(d time.Duration) { c.t = c.t.Add(d) })
}

func TestPostgresStore(t *testing.T) {
	url := os.Getenv("TEST_DATABASE_URL")
	if url == "" {
		t.Skip("TEST_DATABASE_URL not set")
	}
	cfg := &config.Config{DatabaseURL: url, DBPoolMinConns: 1, DBPoolMaxConns: 2, DBPoolMaxLife: time.Minute}
	pool, err := db.New(context.Background(), cfg)
	require.NoError(t, err)
	defer pool.Close()

	_, err = pool.Exec(context.Background(), "DELETE FROM kv_entries WHERE key IN ('a', 'registry', 'missing')")
	require.NoError(t, err)

	exerciseStore(t, NewPostgres(pool), nil)
}

func TestOpenBackends(t *testing.T) {
	ctx := context.Background()

	mem, err := Open(ctx, &config.Config{KVBackend: config.BackendMemory}, slog.Default())
	require.NoError(t, err)
	assert.Nil(t, mem.Check)
	assert.Equal(t, "memory", mem.Stats()["backend"])
	require.NoError(t, mem.Close())

	lite, err := Open(ctx, &config.Config{KVBackend: config.BackendSQLite, SQLitePath: ":memory:"}, slog.Default())
	require.NoError(t, err)
	require.NotNil(t, lite.Check)
	assert.NoError(t, lite.Check(ctx))
	require.NoError(t, lite.Set(ctx, "k", []byte("v"), 0))
	assert.EqualValues(t, 1, lite.Stats()["active_keys"])
	require.NoError(t, lite.Close())

	_, err = Open(ctx, &config.Config{KVBackend: "redis"}, slog.Default())
	assert.Error(t, err)
}
