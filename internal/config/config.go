// Package config provides centralized configuration loaded from environment
// variables. Shared by both cmd/api and cmd/scrape.
package config

import (
	"fmt"
	"log/slog"
	"os"
	"sort"
	"strconv"
	"strings"
	"time"
)

// --------------------------------------------------------------------------
// League registry: public league codes and how the upstream names them
// --------------------------------------------------------------------------

type LeagueConfig struct {
	ID    string
	Name  string
	Sport string // upstream path segment, e.g. "fb" for the NFL

	// ScoresSport and ScoresLeague override the sport/lg query arguments
	// of the multisport scoreboard.
	ScoresSport  string
	ScoresLeague string
}

var LeagueRegistry = map[string]LeagueConfig{
	"mlb": {ID: "mlb", Name: "Major League Baseball", Sport: "mlb"},
	"nhl": {ID: "nhl", Name: "National Hockey League", Sport: "nhl"},
	"nfl": {ID: "nfl", Name: "National Football League", Sport: "fb"},
	"nba": {ID: "nba", Name: "National Basketball Association", Sport: "nba"},
	"mls": {ID: "mls", Name: "Major League Soccer", Sport: "mls"},
	"epl": {ID: "epl", Name: "English Premier League", Sport: "epl", ScoresSport: "ifb", ScoresLeague: "epl"},
}

// League looks up a league by its public code, case-insensitively.
func League(code string) (LeagueConfig, bool) {
	l, ok := LeagueRegistry[strings.ToLower(code)]
	return l, ok
}

// LeagueCodes lists every public league code in sorted order.
func LeagueCodes() []string {
	codes := make([]string, 0, len(LeagueRegistry))
	for code := range LeagueRegistry {
		codes = append(codes, code)
	}
	sort.Strings(codes)
	return codes
}

// --------------------------------------------------------------------------
// Key-value backends
// --------------------------------------------------------------------------

const (
	BackendMemory   = "memory"
	BackendPostgres = "postgres"
	BackendSQLite   = "sqlite"
)

// --------------------------------------------------------------------------
// Config struct, populated from environment variables
// --------------------------------------------------------------------------

type Config struct {
	// API server
	APIHost     string
	APIPort     int
	Environment string // development, staging, production
	Debug       bool
	LogLevel    slog.Level

	// CORS
	CORSAllowOrigins []string

	// Rate limiting (inbound)
	RateLimitEnabled  bool
	RateLimitRequests int
	RateLimitWindow   time.Duration

	// Upstream provider
	UpstreamBaseURL           string
	UpstreamTimeout           time.Duration
	UpstreamRequestsPerMinute int
	UpstreamUserAgent         string
	ScheduleFetchConcurrency  int

	// Key-value store
	KVBackend       string
	DatabaseURL     string
	DBPoolMinConns  int
	DBPoolMaxConns  int
	DBPoolMaxLife   time.Duration
	SQLitePath      string
	KVPurgeInterval time.Duration

	// Cache
	CacheEnabled    bool
	CacheDefaultTTL time.Duration

	// Background warm pass; a zero interval disables it
	WarmInterval time.Duration
	WarmLeagues  []string
	WarmWorkers  int
}

// Load reads configuration from environment variables with sensible defaults.
func Load() (*Config, error) {
	cfg := &Config{
		APIHost:     envOr("API_HOST", "0.0.0.0"),
		APIPort:     envInt("API_PORT", envInt("PORT", 8000)),
		Environment: envOr("ENVIRONMENT", "development"),
		Debug:       envBool("DEBUG", false),
		LogLevel:    envLevel("LOG_LEVEL", slog.LevelInfo),

		CORSAllowOrigins: envList("CORS_ALLOW_ORIGINS", []string{
			"http://localhost:3000",
			"http://localhost:5173",
		}),

		RateLimitEnabled:  envBool("RATE_LIMIT_ENABLED", true),
		RateLimitRequests: envInt("RATE_LIMIT_REQUESTS", 100),
		RateLimitWindow:   time.Duration(envInt("RATE_LIMIT_WINDOW", 60)) * time.Second,

		UpstreamBaseURL:           strings.TrimRight(envOr("UPSTREAM_BASE_URL", "http://stats.nesn.com"), "/"),
		UpstreamTimeout:           time.Duration(envInt("UPSTREAM_TIMEOUT_SECONDS", 15)) * time.Second,
		UpstreamRequestsPerMinute: envInt("UPSTREAM_REQUESTS_PER_MINUTE", 120),
		UpstreamUserAgent:         envOr("UPSTREAM_USER_AGENT", "scoracle-tables/1.0"),
		ScheduleFetchConcurrency:  envInt("SCHEDULE_FETCH_CONCURRENCY", 4),

		KVBackend:       strings.ToLower(envOr("KV_BACKEND", BackendMemory)),
		DatabaseURL:     envOr("DATABASE_URL", ""),
		DBPoolMinConns:  envInt("DB_POOL_MIN_CONNS", 2),
		DBPoolMaxConns:  envInt("DB_POOL_MAX_CONNS", 10),
		DBPoolMaxLife:   time.Duration(envInt("DB_POOL_MAX_LIFE_MINUTES", 30)) * time.Minute,
		SQLitePath:      envOr("SQLITE_PATH", "scoracle.db"),
		KVPurgeInterval: time.Duration(envInt("KV_PURGE_INTERVAL_MINUTES", 30)) * time.Minute,

		CacheEnabled:    envBool("CACHE_ENABLED", true),
		CacheDefaultTTL: time.Duration(envInt("CACHE_DEFAULT_TTL_MINUTES", 15)) * time.Minute,

		WarmInterval: time.Duration(envInt("WARM_INTERVAL_MINUTES", 0)) * time.Minute,
		WarmLeagues:  envList("WARM_LEAGUES", LeagueCodes()),
		WarmWorkers:  envInt("WARM_WORKERS", 4),
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) validate() error {
	switch c.KVBackend {
	case BackendMemory, BackendSQLite:
	case BackendPostgres:
		if c.DatabaseURL == "" {
			return fmt.Errorf("DATABASE_URL must be set when KV_BACKEND=%s", BackendPostgres)
		}
	default:
		return fmt.Errorf("unknown KV_BACKEND %q (want memory, postgres or sqlite)", c.KVBackend)
	}
	if c.UpstreamRequestsPerMinute <= 0 {
		return fmt.Errorf("UPSTREAM_REQUESTS_PER_MINUTE must be positive")
	}
	if c.ScheduleFetchConcurrency < 1 {
		c.ScheduleFetchConcurrency = 1
	}
	return nil
}

// IsProduction returns true if running in production environment.
func (c *Config) IsProduction() bool {
	return c.Environment == "production"
}

// --------------------------------------------------------------------------
// Env helpers
// --------------------------------------------------------------------------

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func envInt(key string, fallback int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return fallback
}

func envBool(key string, fallback bool) bool {
	if v := os.Getenv(key); v != "" {
		b, err := strconv.ParseBool(v)
		if err == nil {
			return b
		}
	}
	return fallback
}

func envList(key string, fallback []string) []string {
	if v := os.Getenv(key); v != "" {
		parts := strings.Split(v, ",")
		result := make([]string, 0, len(parts))
		for _, p := range parts {
			if trimmed := strings.TrimSpace(p); trimmed != "" {
				result = append(result, trimmed)
			}
		}
		if len(result) > 0 {
			return result
		}
	}
	return fallback
}

func envLevel(key string, fallback slog.Level) slog.Level {
	if v := os.Getenv(key); v != "" {
		var lvl slog.Level
		if err := lvl.UnmarshalText([]byte(v)); err == nil {
			return lvl
		}
	}
	return fallback
}
