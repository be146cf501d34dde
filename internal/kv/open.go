package kv

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/albapepper/scoracle-tables/internal/config"
	"github.com/albapepper/scoracle-tables/internal/db"
)

// Backend is the configured Store plus a connectivity probe. Check is nil
// for the memory backend.
type Backend struct {
	Store
	Check func(ctx context.Context) error

	pool *db.Pool
}

// Open connects the backend selected by cfg.KVBackend.
func Open(ctx context.Context, cfg *config.Config, logger *slog.Logger) (*Backend, error) {
	switch cfg.KVBackend {
	case config.BackendPostgres:
		pool, err := db.New(ctx, cfg)
		if err != nil {
			return nil, err
		}
		logger.Info("Database connected",
			"min_conns", cfg.DBPoolMinConns,
			"max_conns", cfg.DBPoolMaxConns)
		return &Backend{Store: NewPostgres(pool), Check: pool.HealthCheck, pool: pool}, nil
	case config.BackendSQLite:
		s, err := OpenSQLite(ctx, cfg.SQLitePath)
		if err != nil {
			return nil, err
		}
		logger.Info("SQLite store opened", "path", cfg.SQLitePath)
		return &Backend{Store: s, Check: s.Ping}, nil
	case config.BackendMemory:
		logger.Info("In-memory store initialized")
		return &Backend{Store: NewMemory(cfg.KVPurgeInterval)}, nil
	}
	return nil, fmt.Errorf("unknown KV_BACKEND %q", cfg.KVBackend)
}

// Close releases the store and, for Postgres, the pool behind it.
func (b *Backend) Close() error {
	err := b.Store.Close()
	if b.pool != nil {
		b.pool.Close()
	}
	return err
}
