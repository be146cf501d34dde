// Package pipeline runs one operation per content family: cache lookup,
// then on a miss fetch, extract, parse, wrap and store.
package pipeline

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/albapepper/scoracle-tables/internal/cache"
	"github.com/albapepper/scoracle-tables/internal/config"
	"github.com/albapepper/scoracle-tables/internal/envelope"
	"github.com/albapepper/scoracle-tables/internal/fetch"
	"github.com/albapepper/scoracle-tables/internal/kv"
	"github.com/albapepper/scoracle-tables/internal/table"
	"github.com/albapepper/scoracle-tables/internal/teams"
)

// ErrUnsupportedLeague is returned for a league a family does not cover.
var ErrUnsupportedLeague = errors.New("unsupported league")

func unsupported(family, league string) error {
	return fmt.Errorf("%w: %s has no %s", ErrUnsupportedLeague, league, family)
}

// Fetcher retrieves upstream documents. *fetch.Fetcher implements it.
type Fetcher interface {
	Fetch(ctx context.Context, res fetch.Resource) (*fetch.Document, error)
}

// Deps are the handles a Service is built from. The entry point owns their
// lifetime.
type Deps struct {
	Fetcher  Fetcher
	Cache    *cache.Cache
	Store    kv.Store // team registry entries
	Logger   *slog.Logger
	Observer teams.Observer

	// ScheduleConcurrency bounds parallel month fetches; 1 is sequential.
	ScheduleConcurrency int
	Now                 func() time.Time
}

// Service implements every extraction operation.
type Service struct {
	fetcher  Fetcher
	cache    *cache.Cache
	registry *teams.Registry
	logger   *slog.Logger
	conc     int
	now      func() time.Time
}

// New wires a Service. The team registry loads missing entries through the
// service's own teams page extraction.
func New(d Deps) *Service {
	s := &Service{
		fetcher: d.Fetcher,
		cache:   d.Cache,
		logger:  d.Logger,
		conc:    d.ScheduleConcurrency,
		now:     d.Now,
	}
	if s.logger == nil {
		s.logger = slog.Default()
	}
	if s.conc < 1 {
		s.conc = 1
	}
	if s.now == nil {
		s.now = time.Now
	}
	s.registry = teams.NewRegistry(d.Store, teams.LoaderFunc(s.TeamNames), s.logger, d.Observer)
	return s
}

// Registry exposes the team registry for maintenance commands.
func (s *Service) Registry() *teams.Registry {
	return s.registry
}

// Result is an operation's envelope plus the TTL it was cached under.
type Result struct {
	Envelope *envelope.Envelope
	TTL      time.Duration
}

// Cached reports whether the envelope came from the cache.
func (r *Result) Cached() bool {
	return r.Envelope != nil && r.Envelope.Meta.LoadedFromCache
}

type refreshKey struct{}

// WithRefresh makes operations under ctx skip the cache lookup and
// overwrite the entry with a fresh extraction.
func WithRefresh(ctx context.Context) context.Context {
	return context.WithValue(ctx, refreshKey{}, true)
}

func refreshing(ctx context.Context) bool {
	v, _ := ctx.Value(refreshKey{}).(bool)
	return v
}

// builder produces a fresh envelope and the TTL to cache it under.
type builder func(ctx context.Context) (*envelope.Envelope, time.Duration, error)

// cached runs build on a miss. Nothing is stored unless build succeeds. A
// hit keeps the TTL its entry was stored with; ttl covers older entries.
func (s *Service) cached(ctx context.Context, fp string, ttl time.Duration, build builder) (*Result, error) {
	if !refreshing(ctx) {
		if env, stored, ok := s.cache.Lookup(ctx, fp); ok {
			if stored > 0 {
				ttl = stored
			}
			return &Result{Envelope: env, TTL: ttl}, nil
		}
	}
	s.logger.Debug("Cache miss", "fingerprint", fp)

	env, ttl, err := build(ctx)
	if err != nil {
		return nil, err
	}
	if err := s.cache.Store(ctx, fp, env, ttl); err != nil {
		s.logger.Warn("Cache store failed", "fingerprint", fp, "error", err)
	}
	return &Result{Envelope: env, TTL: ttl}, nil
}

// lookupLeague resolves a public league code for family.
func lookupLeague(family, code string) (config.LeagueConfig, error) {
	lc, ok := config.League(code)
	if !ok {
		return config.LeagueConfig{}, unsupported(family, code)
	}
	return lc, nil
}

func isNoMatch(err error) bool {
	var nm *table.NoMatchError
	return errors.As(err, &nm)
}
