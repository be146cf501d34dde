package kv

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/albapepper/scoracle-tables/internal/db"
)

// Postgres stores keys in the kv_entries table through the prepared
// statements registered by db.New.
type Postgres struct {
	pool *db.Pool
}

func NewPostgres(pool *db.Pool) *Postgres {
	return &Postgres{pool: pool}
}

func (p *Postgres) Get(ctx context.Context, key string) ([]byte, error) {
	var value []byte
	err := p.pool.QueryRow(ctx, "kv_get", key).Scan(&value)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("kv get %q: %w", key, err)
	}
	return value, nil
}

func (p *Postgres) Set(ctx context.Context, key string, value []byte, ttl time.Duration) error {
	var expiresAt *time.Time
	if exp := expiry(time.Now(), ttl); !exp.IsZero() {
		expiresAt = &exp
	}
	if _, err := p.pool.Exec(ctx, "kv_set", key, value, expiresAt); err != nil {
		return fmt.Errorf("kv set %q: %w", key, err)
	}
	return nil
}

func (p *Postgres) SetNX(ctx context.Context, key string, value []byte) (bool, error) {
	tag, err := p.pool.Exec(ctx, "kv_setnx", key, value)
	if err != nil {
		return false, fmt.Errorf("kv setnx %q: %w", key, err)
	}
	return tag.RowsAffected() == 1, nil
}

func (p *Postgres) Delete(ctx context.Context, key string) error {
	if _, err := p.pool.Exec(ctx, "kv_delete", key); err != nil {
		return fmt.Errorf("kv delete %q: %w", key, err)
	}
	return nil
}

func (p *Postgres) Purge(ctx context.Context) (int64, error) {
	tag, err := p.pool.Exec(ctx, "kv_purge")
	if err != nil {
		return 0, fmt.Errorf("kv purge: %w", err)
	}
	return tag.RowsAffected(), nil
}

// Stats returns key counts for the health endpoint.
func (p *Postgres) Stats() map[string]interface{} {
	var total, active int64
	if err := p.pool.QueryRow(context.Background(), "kv_stats").Scan(&total, &active); err != nil {
		return map[string]interface{}{"backend": "postgres", "error": err.Error()}
	}
	return map[string]interface{}{
		"backend":      "postgres",
		"total_keys":   total,
		"active_keys":  active,
		"expired_keys": total - active,
	}
}

// Close is a no-op; the pool is owned by the caller.
func (p *Postgres) Close() error { return nil }
