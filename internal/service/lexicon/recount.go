package lexicon

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/yadascribe/scribe-backend/internal/domain"
)

// RecountResult summarizes a full recount.
type RecountResult struct {
	Spellings int
	Changed   int
	Elapsed   time.Duration
}

// Recount recomputes the occurrence count of every spelling and every entry
// aggregate. Spellings are split into workers chunks counted in parallel;
// only changed counts are written, in one transaction.
func (s *Service) Recount(ctx context.Context, workers int) (RecountResult, error) {
	start := time.Now()
	if workers < 1 {
		workers = 1
	}

	spellings, err := s.lexicon.AllSpellings(ctx)
	if err != nil {
		return RecountResult{}, fmt.Errorf("lexicon.Recount load spellings: %w", err)
	}

	counts := make([]int16, len(spellings))
	chunk := (len(spellings) + workers - 1) / workers

	g, gctx := errgroup.WithContext(ctx)
	for lo := 0; lo < len(spellings); lo += chunk {
		hi := min(lo+chunk, len(spellings))
		g.Go(func() error {
			texts := make([]string, hi-lo)
			for i, sp := range spellings[lo:hi] {
				texts[i] = sp.Text
			}
			got, err := s.counter.CountMany(gctx, texts)
			if err != nil {
				return err
			}
			copy(counts[lo:hi], got)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return RecountResult{}, fmt.Errorf("lexicon.Recount count: %w", err)
	}

	var changed []domain.Spelling
	for i, sp := range spellings {
		if sp.OccurrenceCount != counts[i] {
			sp.OccurrenceCount = counts[i]
			changed = append(changed, sp)
		}
	}

	err = s.tx.RunInTx(ctx, func(txCtx context.Context) error {
		if err := s.lexicon.UpdateSpellingCounts(txCtx, changed); err != nil {
			return fmt.Errorf("store spelling counts: %w", err)
		}
		return s.lexicon.RefreshEntryCounts(txCtx, nil)
	})
	if err != nil {
		return RecountResult{}, fmt.Errorf("lexicon.Recount: %w", err)
	}

	res := RecountResult{Spellings: len(spellings), Changed: len(changed), Elapsed: time.Since(start)}
	s.log.InfoContext(ctx, "lexicon recount finished",
		slog.Int("spellings", res.Spellings),
		slog.Int("changed", res.Changed),
		slog.Int("workers", workers),
		slog.Duration("elapsed", res.Elapsed),
	)
	return res, nil
}
