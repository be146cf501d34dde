// Package cache provides the fingerprinted response cache with ETag support.
package cache

import (
	"context"
	"crypto/md5"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/albapepper/scoracle-tables/internal/envelope"
	"github.com/albapepper/scoracle-tables/internal/kv"
)

// TTLs are a property of each call site.
const (
	TTLTeams     = 300 * 24 * time.Hour // team lists are near-static
	TTLRoster    = 24 * time.Hour
	TTLSchedule  = 24 * time.Hour
	TTLStandings = 2 * time.Hour
	TTLStats     = 24 * time.Hour
	TTLRankings  = 12 * time.Hour
	TTLInjuries  = 12 * time.Hour
	TTLScores    = 1 * time.Minute // live in-progress data
	TTLNoGames   = 24 * time.Hour
)

const keyPrefix = "cache:"

// Observer receives lookup outcomes; the metrics package implements it.
type Observer interface {
	CacheLookup(hit bool)
}

// Cache stores envelopes in a kv.Store under request fingerprints.
type Cache struct {
	store      kv.Store
	enabled    bool
	defaultTTL time.Duration
	logger     *slog.Logger
	observer   Observer
}

// Options configures a Cache.
type Options struct {
	Enabled    bool
	DefaultTTL time.Duration
	Logger     *slog.Logger
	Observer   Observer
}

// New creates a cache. A disabled cache never hits and never writes.
func New(store kv.Store, opts Options) *Cache {
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}
	ttl := opts.DefaultTTL
	if ttl <= 0 {
		ttl = 15 * time.Minute
	}
	return &Cache{
		store:      store,
		enabled:    opts.Enabled,
		defaultTTL: ttl,
		logger:     logger,
		observer:   opts.Observer,
	}
}

// Fingerprint hashes the canonical request target. Only the arguments the
// caller passes take part, so cosmetic query noise never splits the key.
func Fingerprint(path string, args ...string) string {
	sum := sha256.Sum224([]byte(path + strings.Join(args, "")))
	return hex.EncodeToString(sum[:])
}

// entry is the stored form of an envelope. TTL remembers what the entry was
// written with, since one fingerprint can hold results of different classes.
type entry struct {
	Data json.RawMessage `json:"data"`
	Meta envelope.Meta   `json:"meta"`
	TTL  int64           `json:"ttl_seconds,omitempty"`
}

// Lookup returns a fresh envelope for fp with LoadedFromCache set, plus the
// TTL it was stored under (zero for entries written without one). Store or
// decode failures are logged and reported as misses.
func (c *Cache) Lookup(ctx context.Context, fp string) (*envelope.Envelope, time.Duration, bool) {
	if !c.enabled {
		return nil, 0, false
	}
	raw, err := c.store.Get(ctx, keyPrefix+fp)
	if err != nil {
		if !errors.Is(err, kv.ErrNotFound) {
			c.logger.Warn("Cache lookup failed", "fingerprint", fp, "error", err)
		}
		c.observe(false)
		return nil, 0, false
	}

	var stored entry
	if err := json.Unmarshal(raw, &stored); err != nil {
		c.logger.Warn("Discarding undecodable cache entry", "fingerprint", fp, "error", err)
		c.observe(false)
		return nil, 0, false
	}

	c.observe(true)
	env := &envelope.Envelope{Data: stored.Data, Meta: stored.Meta}
	env.Meta.LoadedFromCache = true
	return env, time.Duration(stored.TTL) * time.Second, true
}

// Store writes env under fp. A ttl of zero uses the default TTL.
func (c *Cache) Store(ctx context.Context, fp string, env *envelope.Envelope, ttl time.Duration) error {
	if !c.enabled {
		return nil
	}
	if ttl <= 0 {
		ttl = c.defaultTTL
	}
	data, err := json.Marshal(env.Data)
	if err != nil {
		return fmt.Errorf("encode envelope: %w", err)
	}
	raw, err := json.Marshal(entry{Data: data, Meta: env.Meta, TTL: int64(ttl / time.Second)})
	if err != nil {
		return fmt.Errorf("encode envelope: %w", err)
	}
	if err := c.store.Set(ctx, keyPrefix+fp, raw, ttl); err != nil {
		return fmt.Errorf("store envelope: %w", err)
	}
	c.logger.Debug("Cached envelope", "fingerprint", fp, "ttl", ttl)
	return nil
}

// Enabled reports whether lookups can hit.
func (c *Cache) Enabled() bool { return c.enabled }

func (c *Cache) observe(hit bool) {
	if c.observer != nil {
		c.observer.CacheLookup(hit)
	}
}

// ComputeETag generates a weak ETag from response data using MD5.
func ComputeETag(data []byte) string {
	hash := md5.Sum(data)
	return fmt.Sprintf(`W/"%x"`, hash[:8])
}

// CheckETagMatch checks if If-None-Match header matches the current ETag.
func CheckETagMatch(ifNoneMatch, etag string) bool {
	if ifNoneMatch == "" {
		return false
	}
	if ifNoneMatch == "*" {
		return true
	}
	for _, candidate := range strings.Split(ifNoneMatch, ",") {
		if strings.TrimSpace(candidate) == etag {
			return true
		}
	}
	return false
}
