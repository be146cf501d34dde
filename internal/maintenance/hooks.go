package maintenance

import (
	"context"
	"fmt"
	"log/slog"
	"time"
)

// PurgeExpired removes expired cache and registry entries once. Used by the
// purge ticker and the purge command.
func PurgeExpired(ctx context.Context, store Purger, logger *slog.Logger) (int64, error) {
	start := time.Now()
	n, err := store.Purge(ctx)
	dur := time.Since(start).Round(time.Millisecond)

	if err != nil {
		logger.Warn("Failed to purge expired keys", "duration", dur, "error", err)
		return 0, fmt.Errorf("purge expired keys: %w", err)
	}
	if n > 0 {
		logger.Info("Purged expired keys", "count", n, "duration", dur)
	}
	return n, nil
}
