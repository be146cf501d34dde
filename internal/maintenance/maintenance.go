// Package maintenance runs periodic background tasks as Go tickers: expired
// key purges and, when enabled, a cache warm pass.
package maintenance

import (
	"context"
	"log/slog"
	"time"
)

// Purger removes expired entries. Every kv.Store implements it.
type Purger interface {
	Purge(ctx context.Context) (int64, error)
}

// WarmFunc refreshes cached content and returns a one-line summary.
type WarmFunc func(ctx context.Context) string

// Config controls maintenance task intervals. Zero duration disables a task.
type Config struct {
	PurgeInterval time.Duration
	WarmInterval  time.Duration
}

// DefaultConfig returns sensible production defaults.
func DefaultConfig() Config {
	return Config{
		PurgeInterval: 30 * time.Minute,
	}
}

// Start launches all configured maintenance tickers. Blocks until ctx is
// cancelled. Intended to be called with `go`. warm may be nil.
func Start(ctx context.Context, store Purger, warm WarmFunc, cfg Config, logger *slog.Logger) {
	if logger == nil {
		logger = slog.Default()
	}
	logger.Info("Maintenance tickers started",
		"purge", cfg.PurgeInterval,
		"warm", cfg.WarmInterval)

	tickers := make([]*time.Ticker, 0, 2)
	defer func() {
		for _, t := range tickers {
			t.Stop()
		}
	}()

	if cfg.PurgeInterval > 0 {
		t := time.NewTicker(cfg.PurgeInterval)
		tickers = append(tickers, t)
		go runLoop(ctx, t.C, func() { _, _ = PurgeExpired(ctx, store, logger) })
	}

	if cfg.WarmInterval > 0 && warm != nil {
		t := time.NewTicker(cfg.WarmInterval)
		tickers = append(tickers, t)
		go runLoop(ctx, t.C, func() {
			logger.Info("Warm pass finished", "summary", warm(ctx))
		})
	}

	<-ctx.Done()
	logger.Info("Maintenance tickers stopped")
}

func runLoop(ctx context.Context, ch <-chan time.Time, fn func()) {
	for {
		select {
		case <-ch:
			fn()
		case <-ctx.Done():
			return
		}
	}
}
