// Command scrape runs extractions from the terminal and maintains the store.
//
// Usage:
//
//	scoracle-scrape teams mlb --flat
//	scoracle-scrape roster mlb red+sox
//	scoracle-scrape schedule nhl bruins --refresh
//	scoracle-scrape scores epl --date 2013-09-14
//	scoracle-scrape warm --league mlb --league nhl --workers 4
//	scoracle-scrape registry show nfl
//	scoracle-scrape purge
package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/albapepper/scoracle-tables/internal/cache"
	"github.com/albapepper/scoracle-tables/internal/config"
	"github.com/albapepper/scoracle-tables/internal/fetch"
	"github.com/albapepper/scoracle-tables/internal/kv"
	"github.com/albapepper/scoracle-tables/internal/maintenance"
	"github.com/albapepper/scoracle-tables/internal/pipeline"
)

// Logs go to stderr so stdout carries only JSON.
var logger = slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelInfo}))

var refresh bool

func main() {
	// Load .env if present
	_ = godotenv.Load(".env")

	if err := rootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func rootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:          "scoracle-scrape",
		Short:        "Scoracle table extraction CLI",
		SilenceUsage: true,
	}
	root.PersistentFlags().BoolVar(&refresh, "refresh", false, "Skip the cache and overwrite the stored entry")

	root.AddCommand(teamsCmd())
	root.AddCommand(teamCmd("roster", "Print a team's roster", (*pipeline.Service).Roster))
	root.AddCommand(teamCmd("schedule", "Print a team's season schedule", (*pipeline.Service).Schedule))
	root.AddCommand(teamCmd("stats", "Print a team's player stats", (*pipeline.Service).Stats))
	root.AddCommand(leagueCmd("standings", "Print league standings", (*pipeline.Service).Standings))
	root.AddCommand(leagueCmd("injuries", "Print the recent injury report", (*pipeline.Service).Injuries))
	root.AddCommand(rankingsCmd())
	root.AddCommand(scoresCmd())
	root.AddCommand(warmCmd())
	root.AddCommand(registryCmd())
	root.AddCommand(purgeCmd())
	return root
}

// --------------------------------------------------------------------------
// extraction commands
// --------------------------------------------------------------------------

func teamsCmd() *cobra.Command {
	var flat bool
	cmd := &cobra.Command{
		Use:   "teams <league>",
		Short: "Print a league's teams",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runPipeline(func(ctx context.Context, svc *pipeline.Service) error {
				res, err := svc.Teams(ctx, args[0], flat)
				return printResult(cmd.OutOrStdout(), res, err)
			})
		},
	}
	cmd.Flags().BoolVar(&flat, "flat", false, "One list instead of league and division sections")
	return cmd
}

type teamOp func(*pipeline.Service, context.Context, string, string) (*pipeline.Result, error)

func teamCmd(use, short string, op teamOp) *cobra.Command {
	return &cobra.Command{
		Use:   use + " <league> <team>",
		Short: short,
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runPipeline(func(ctx context.Context, svc *pipeline.Service) error {
				res, err := op(svc, ctx, args[0], args[1])
				return printResult(cmd.OutOrStdout(), res, err)
			})
		},
	}
}

type leagueOp func(*pipeline.Service, context.Context, string) (*pipeline.Result, error)

func leagueCmd(use, short string, op leagueOp) *cobra.Command {
	return &cobra.Command{
		Use:   use + " <league>",
		Short: short,
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runPipeline(func(ctx context.Context, svc *pipeline.Service) error {
				res, err := op(svc, ctx, args[0])
				return printResult(cmd.OutOrStdout(), res, err)
			})
		},
	}
}

func rankingsCmd() *cobra.Command {
	return leagueCmd("rankings", "Print golf or tennis rankings by tour", (*pipeline.Service).Rankings)
}

func scoresCmd() *cobra.Command {
	var date string
	cmd := &cobra.Command{
		Use:   "scores <league>",
		Short: "Print a scoreboard",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var day *time.Time
			if date != "" {
				d, err := time.Parse(time.DateOnly, date)
				if err != nil {
					return fmt.Errorf("--date must be YYYY-MM-DD: %w", err)
				}
				day = &d
			}
			return runPipeline(func(ctx context.Context, svc *pipeline.Service) error {
				res, err := svc.Scores(ctx, args[0], day)
				return printResult(cmd.OutOrStdout(), res, err)
			})
		},
	}
	cmd.Flags().StringVar(&date, "date", "", "Scoreboard day (YYYY-MM-DD); today when empty")
	return cmd
}

// --------------------------------------------------------------------------
// warm command
// --------------------------------------------------------------------------

func warmCmd() *cobra.Command {
	var (
		leagues []string
		workers int
	)
	cmd := &cobra.Command{
		Use:   "warm",
		Short: "Refresh teams, standings and today's scores for each league",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runPipeline(func(ctx context.Context, svc *pipeline.Service) error {
				if len(leagues) == 0 {
					leagues = config.LeagueCodes()
				}
				result := svc.Warm(ctx, leagues, workers)
				logger.Info("Warm finished",
					"duration", result.Duration.Round(time.Millisecond),
					"summary", result.Summary())
				if len(result.Errors) > 0 {
					for _, e := range result.Errors {
						logger.Error("warm error", "error", e)
					}
					return fmt.Errorf("%d of %d warm jobs failed", result.Failed, result.Jobs)
				}
				return nil
			})
		},
	}
	cmd.Flags().StringSliceVar(&leagues, "league", nil, "League to warm (repeatable); all when empty")
	cmd.Flags().IntVar(&workers, "workers", 4, "Concurrent worker count")
	return cmd
}

// --------------------------------------------------------------------------
// registry and purge commands
// --------------------------------------------------------------------------

func registryCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "registry",
		Short: "Inspect or reset team registries",
	}
	cmd.AddCommand(&cobra.Command{
		Use:   "show <league>",
		Short: "Print a league's ordered team list, building it if missing",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runPipeline(func(ctx context.Context, svc *pipeline.Service) error {
				names, err := svc.Registry().Names(ctx, args[0])
				if err != nil {
					return err
				}
				for i, name := range names {
					fmt.Fprintf(cmd.OutOrStdout(), "%2d  %s\n", i+1, name)
				}
				return nil
			})
		},
	})
	cmd.AddCommand(&cobra.Command{
		Use:   "reset <league>",
		Short: "Drop a league's registry so the next lookup rebuilds it",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runPipeline(func(ctx context.Context, svc *pipeline.Service) error {
				if err := svc.Registry().Reset(ctx, args[0]); err != nil {
					return err
				}
				logger.Info("Team registry reset", "league", args[0])
				return nil
			})
		},
	})
	return cmd
}

func purgeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "purge",
		Short: "Remove expired cache and registry entries",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runStore(func(ctx context.Context, cfg *config.Config, backend *kv.Backend) error {
				n, err := maintenance.PurgeExpired(ctx, backend, logger)
				if err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "purged %d expired keys\n", n)
				return nil
			})
		},
	}
}

// --------------------------------------------------------------------------
// Shared setup
// --------------------------------------------------------------------------

// runStore handles config loading, store connection, and context cancellation.
func runStore(fn func(ctx context.Context, cfg *config.Config, backend *kv.Backend) error) error {
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt)
	defer cancel()

	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	logger = slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: cfg.LogLevel}))

	backend, err := kv.Open(ctx, cfg, logger)
	if err != nil {
		return fmt.Errorf("open %s store: %w", cfg.KVBackend, err)
	}
	defer backend.Close()

	return fn(ctx, cfg, backend)
}

// runPipeline builds a Service over the configured store.
func runPipeline(fn func(ctx context.Context, svc *pipeline.Service) error) error {
	return runStore(func(ctx context.Context, cfg *config.Config, backend *kv.Backend) error {
		svc := pipeline.New(pipeline.Deps{
			Fetcher: fetch.New(fetch.Options{
				BaseURL:           cfg.UpstreamBaseURL,
				Timeout:           cfg.UpstreamTimeout,
				RequestsPerMinute: cfg.UpstreamRequestsPerMinute,
				UserAgent:         cfg.UpstreamUserAgent,
				Logger:            logger,
			}),
			Cache: cache.New(backend, cache.Options{
				Enabled:    cfg.CacheEnabled,
				DefaultTTL: cfg.CacheDefaultTTL,
				Logger:     logger,
			}),
			Store:               backend,
			Logger:              logger,
			ScheduleConcurrency: cfg.ScheduleFetchConcurrency,
		})
		if refresh {
			ctx = pipeline.WithRefresh(ctx)
		}
		return fn(ctx, svc)
	})
}

func printResult(w io.Writer, res *pipeline.Result, err error) error {
	if err != nil {
		return err
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(res.Envelope)
}
