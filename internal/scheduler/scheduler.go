// Package scheduler runs periodic maintenance jobs.
package scheduler

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/go-co-op/gocron"

	"github.com/yadascribe/scribe-backend/internal/service/lexicon"
)

type recounter interface {
	Recount(ctx context.Context, workers int) (lexicon.RecountResult, error)
}

// Scheduler runs the lexicon recount every interval. A run that is still
// going when the next one is due delays it rather than overlapping.
type Scheduler struct {
	cron      *gocron.Scheduler
	log       *slog.Logger
	recounter recounter
	interval  time.Duration
	workers   int
}

// New creates a Scheduler. An interval of zero or less disables the job.
func New(logger *slog.Logger, r recounter, interval time.Duration, workers int) *Scheduler {
	return &Scheduler{
		cron:      gocron.NewScheduler(time.UTC),
		log:       logger.With("component", "scheduler"),
		recounter: r,
		interval:  interval,
		workers:   workers,
	}
}

// Start schedules the recount and starts the scheduler in the background.
// The first run happens one interval after Start. ctx is passed to every run;
// cancel it to abort a run in progress.
func (s *Scheduler) Start(ctx context.Context) error {
	if s.interval <= 0 {
		s.log.InfoContext(ctx, "scheduled recount disabled")
		return nil
	}

	_, err := s.cron.Every(s.interval).
		WaitForSchedule().
		SingletonMode().
		Do(s.recount, ctx)
	if err != nil {
		return fmt.Errorf("schedule recount: %w", err)
	}

	s.cron.StartAsync()
	s.log.InfoContext(ctx, "scheduled recount started",
		slog.Duration("interval", s.interval),
		slog.Int("workers", s.workers),
	)
	return nil
}

// Stop stops the scheduler. Runs in progress are not waited for.
func (s *Scheduler) Stop() {
	if s.cron.IsRunning() {
		s.cron.Stop()
	}
}

func (s *Scheduler) recount(ctx context.Context) {
	res, err := s.recounter.Recount(ctx, s.workers)
	if err != nil {
		s.log.ErrorContext(ctx, "scheduled recount failed", slog.String("error", err.Error()))
		return
	}
	s.log.InfoContext(ctx, "scheduled recount finished",
		slog.Int("spellings", res.Spellings),
		slog.Int("changed", res.Changed),
		slog.Duration("elapsed", res.Elapsed),
	)
}
