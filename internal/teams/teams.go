// Package teams resolves free-text team names to the upstream's 1-indexed
// team numbers, backed by a persisted per-league registry.
package teams

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"regexp"
	"strings"
	"time"

	"github.com/antzucaro/matchr"
	"golang.org/x/sync/singleflight"

	"github.com/albapepper/scoracle-tables/internal/kv"
)

// ErrNotFound is wrapped by every NotFoundError.
var ErrNotFound = errors.New("team not found")

// NotFoundError reports a query that matched no team, or more than one.
type NotFoundError struct {
	League     string
	Query      string
	Candidates []string // set when the query was ambiguous
	Suggestion string   // closest name when nothing matched
}

func (e *NotFoundError) Error() string {
	switch {
	case len(e.Candidates) > 1:
		return fmt.Sprintf("%s team %q is ambiguous (%s)", e.League, e.Query, strings.Join(e.Candidates, ", "))
	case e.Suggestion != "":
		return fmt.Sprintf("%s team %q not found, did you mean %q?", e.League, e.Query, e.Suggestion)
	default:
		return fmt.Sprintf("%s team %q not found", e.League, e.Query)
	}
}

func (e *NotFoundError) Unwrap() error { return ErrNotFound }

// Loader extracts a league's team names in upstream order.
type Loader interface {
	TeamNames(ctx context.Context, league string) ([]string, error)
}

// LoaderFunc adapts a function to Loader.
type LoaderFunc func(ctx context.Context, league string) ([]string, error)

func (f LoaderFunc) TeamNames(ctx context.Context, league string) ([]string, error) {
	return f(ctx, league)
}

// Observer is told whenever a registry entry is rebuilt from the upstream.
type Observer interface {
	RegistryRebuild(league string)
}

// suggestMin is the lowest Jaro-Winkler similarity worth suggesting.
const suggestMin = 0.7

// rebuildTimeout bounds a shared registry rebuild.
const rebuildTimeout = 30 * time.Second

// Registry owns the persisted team lists.
type Registry struct {
	store    kv.Store
	loader   Loader
	logger   *slog.Logger
	observer Observer
	rebuilds singleflight.Group
}

// NewRegistry creates a registry. logger and observer may be nil.
func NewRegistry(store kv.Store, loader Loader, logger *slog.Logger, observer Observer) *Registry {
	if logger == nil {
		logger = slog.Default()
	}
	return &Registry{store: store, loader: loader, logger: logger, observer: observer}
}

// Key is the store key of a league's registry entry.
func Key(league string) string {
	return league + "_teams"
}

// Names returns the league's ordered team list, building and persisting it
// on first use. An existing entry is never rewritten.
func (r *Registry) Names(ctx context.Context, league string) ([]string, error) {
	names, err := r.read(ctx, league)
	if err == nil {
		return names, nil
	}
	if !errors.Is(err, kv.ErrNotFound) {
		return nil, err
	}

	// The rebuild is shared by every waiting caller, so it must outlive any
	// single one of them. Each caller still gives up on its own ctx.
	ch := r.rebuilds.DoChan(league, func() (any, error) {
		rctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), rebuildTimeout)
		defer cancel()
		return r.rebuild(rctx, league)
	})
	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	case res := <-ch:
		if res.Err != nil {
			return nil, res.Err
		}
		return res.Val.([]string), nil
	}
}

func (r *Registry) read(ctx context.Context, league string) ([]string, error) {
	raw, err := r.store.Get(ctx, Key(league))
	if err != nil {
		return nil, err
	}
	var names []string
	if err := json.Unmarshal(raw, &names); err != nil {
		return nil, fmt.Errorf("decode %s registry: %w", league, err)
	}
	return names, nil
}

func (r *Registry) rebuild(ctx context.Context, league string) ([]string, error) {
	var names []string
	// The upstream lists NFL teams alphabetically, not by team number.
	if league == "nfl" {
		names = append(names, nflTeams...)
	} else {
		loaded, err := r.loader.TeamNames(ctx, league)
		if err != nil {
			return nil, fmt.Errorf("load %s teams: %w", league, err)
		}
		names = loaded
	}

	return r.persist(ctx, league, names)
}

// Prime stores names as the league's entry unless one already exists, so a
// teams page fetched for display also seeds the registry.
func (r *Registry) Prime(ctx context.Context, league string, names []string) error {
	if league == "nfl" {
		names = nflTeams
	}
	_, err := r.persist(ctx, league, names)
	return err
}

func (r *Registry) persist(ctx context.Context, league string, names []string) ([]string, error) {
	raw, err := json.Marshal(names)
	if err != nil {
		return nil, err
	}
	written, err := r.store.SetNX(ctx, Key(league), raw)
	if err != nil {
		return nil, fmt.Errorf("store %s registry: %w", league, err)
	}
	if !written {
		// Another writer got there first; its order wins.
		return r.read(ctx, league)
	}

	if r.observer != nil {
		r.observer.RegistryRebuild(league)
	}
	r.logger.Info("Team registry built", "league", league, "teams", len(names))
	return names, nil
}

// Reset drops a league's registry entry so the next lookup rebuilds it.
func (r *Registry) Reset(ctx context.Context, league string) error {
	return r.store.Delete(ctx, Key(league))
}

var separatorRe = regexp.MustCompile(`[+_-]`)

// Normalize turns a URL team reference such as "red+sox" into "red sox".
func Normalize(query string) string {
	return strings.ToLower(strings.TrimSpace(separatorRe.ReplaceAllString(query, " ")))
}

// Resolve returns the 1-indexed team number whose name starts with query,
// ignoring case. Zero or several matches yield a *NotFoundError.
func (r *Registry) Resolve(ctx context.Context, league, query string) (int, error) {
	names, err := r.Names(ctx, league)
	if err != nil {
		return 0, err
	}
	return Match(league, names, query)
}

// Match resolves query against an ordered name list.
func Match(league string, names []string, query string) (int, error) {
	q := Normalize(query)
	var hits []int
	if q != "" {
		for i, name := range names {
			if strings.HasPrefix(strings.ToLower(name), q) {
				hits = append(hits, i)
			}
		}
	}
	if len(hits) == 1 {
		return hits[0] + 1, nil
	}

	nf := &NotFoundError{League: league, Query: query}
	if len(hits) > 1 {
		for _, i := range hits {
			nf.Candidates = append(nf.Candidates, names[i])
		}
	} else {
		nf.Suggestion = suggest(names, q)
	}
	return 0, nf
}

func suggest(names []string, q string) string {
	if q == "" {
		return ""
	}
	var best string
	var bestScore float64
	for _, name := range names {
		if name == "" {
			continue
		}
		score := matchr.JaroWinkler(q, strings.ToLower(name), false)
		if score > bestScore {
			best, bestScore = name, score
		}
	}
	if bestScore < suggestMin {
		return ""
	}
	return best
}
