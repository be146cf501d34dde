package pipeline

import (
	"context"
	"fmt"
	"sync"
	"time"
)

// WarmJob is one refreshed cache entry.
type WarmJob struct {
	League   string
	Family   string
	Success  bool
	Error    string
	Duration time.Duration
}

// WarmResult tracks the outcome of a full warm run.
type WarmResult struct {
	Jobs      int
	Succeeded int
	Failed    int
	Duration  time.Duration
	Errors    []string
	Results   []WarmJob // in submission order
}

// Summary returns a human-readable summary.
func (r *WarmResult) Summary() string {
	return fmt.Sprintf("jobs=%d succeeded=%d failed=%d errors=%d dur=%s",
		r.Jobs, r.Succeeded, r.Failed, len(r.Errors), r.Duration.Round(time.Millisecond))
}

type warmWork struct {
	index  int
	league string
	family string
	run    func(ctx context.Context) error
}

// warmJobs lists the entries refreshed for one league.
func (s *Service) warmJobs(league string) []warmWork {
	return []warmWork{
		{league: league, family: "teams", run: func(ctx context.Context) error {
			_, err := s.Teams(ctx, league, false)
			return err
		}},
		{league: league, family: "standings", run: func(ctx context.Context) error {
			_, err := s.Standings(ctx, league)
			return err
		}},
		{league: league, family: "scores", run: func(ctx context.Context) error {
			_, err := s.Scores(ctx, league, nil)
			return err
		}},
	}
}

// Warm refreshes the teams, standings and today's scores of every league
// using a pool of workers. Entries are rebuilt even when still cached. One
// failing job never stops the others.
func (s *Service) Warm(ctx context.Context, leagues []string, workers int) WarmResult {
	start := time.Now()
	var result WarmResult

	var jobs []warmWork
	for _, l := range leagues {
		jobs = append(jobs, s.warmJobs(l)...)
	}
	for i := range jobs {
		jobs[i].index = i
	}
	result.Jobs = len(jobs)
	result.Results = make([]WarmJob, len(jobs))
	if len(jobs) == 0 {
		result.Duration = time.Since(start)
		return result
	}

	if workers < 1 {
		workers = 1
	}
	if workers > len(jobs) {
		workers = len(jobs)
	}

	ch := make(chan warmWork, len(jobs))
	for _, j := range jobs {
		ch <- j
	}
	close(ch)

	rctx := WithRefresh(ctx)
	var mu sync.Mutex
	var wg sync.WaitGroup

	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for work := range ch {
				jobStart := time.Now()
				err := work.run(rctx)
				r := WarmJob{
					League:   work.league,
					Family:   work.family,
					Success:  err == nil,
					Duration: time.Since(jobStart),
				}
				if err != nil {
					r.Error = err.Error()
				}

				mu.Lock()
				result.Results[work.index] = r
				if r.Success {
					result.Succeeded++
				} else {
					result.Failed++
					result.Errors = append(result.Errors, fmt.Sprintf("%s %s: %s", work.league, work.family, r.Error))
				}
				mu.Unlock()
			}
		}()
	}

	wg.Wait()
	result.Duration = time.Since(start)

	s.logger.Info("Warm run complete", "summary", result.Summary())
	return result
}
