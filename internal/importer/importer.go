// Package importer loads glossary spreadsheets (CSV or XLSX) into the lexicon.
package importer

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/yadascribe/scribe-backend/internal/domain"
)

type lexiconStore interface {
	Create(ctx context.Context, e domain.LexiconEntry) (int64, error)
	SyncIdentity(ctx context.Context) error
	ReplaceSpellings(ctx context.Context, entryID int64, spellings []domain.Spelling) ([]domain.Spelling, error)
	RefreshEntryCounts(ctx context.Context, entryIDs []int64) error
}

type occurrenceCounter interface {
	CountMany(ctx context.Context, spellings []string) ([]int16, error)
}

type txManager interface {
	RunInTx(ctx context.Context, fn func(ctx context.Context) error) error
}

// Result summarises one import run.
type Result struct {
	Rows     int
	Imported int
	Errors   []RowError
}

// Importer writes parsed spreadsheet rows in a single transaction.
type Importer struct {
	log     *slog.Logger
	store   lexiconStore
	counter occurrenceCounter
	tx      txManager
}

// New creates an Importer.
func New(logger *slog.Logger, store lexiconStore, counter occurrenceCounter, tx txManager) *Importer {
	return &Importer{
		log:     logger.With("component", "importer"),
		store:   store,
		counter: counter,
		tx:      tx,
	}
}

// ImportWords inserts the entries of a words sheet keeping their ids, then
// moves the id sequence past them. Nothing is written if any insert fails.
func (im *Importer) ImportWords(ctx context.Context, rows [][]string) (Result, error) {
	entries, rowErrs := ParseWords(rows)
	res := Result{Rows: max(len(rows)-1, 0), Errors: rowErrs}
	if len(entries) == 0 {
		return res, nil
	}

	err := im.tx.RunInTx(ctx, func(ctx context.Context) error {
		for _, e := range entries {
			if _, err := im.store.Create(ctx, e); err != nil {
				return fmt.Errorf("entry %d: %w", e.ID, err)
			}
		}
		return im.store.SyncIdentity(ctx)
	})
	if err != nil {
		return res, fmt.Errorf("importer.ImportWords: %w", err)
	}

	res.Imported = len(entries)
	im.log.InfoContext(ctx, "words imported",
		slog.Int("imported", res.Imported),
		slog.Int("row_errors", len(res.Errors)),
	)
	return res, nil
}

// ImportSpellings replaces the spelling lists of the entries in a spellings
// sheet. Every spelling is counted across the corpus in one pass before the
// transaction starts.
func (im *Importer) ImportSpellings(ctx context.Context, rows [][]string) (Result, error) {
	sets, rowErrs := ParseSpellings(rows)
	res := Result{Rows: max(len(rows)-1, 0), Errors: rowErrs}
	if len(sets) == 0 {
		return res, nil
	}

	var all []string
	for _, set := range sets {
		all = append(all, set.Spellings...)
	}
	counts, err := im.counter.CountMany(ctx, all)
	if err != nil {
		return res, fmt.Errorf("importer.ImportSpellings count: %w", err)
	}

	entryIDs := make([]int64, 0, len(sets))
	err = im.tx.RunInTx(ctx, func(ctx context.Context) error {
		next := 0
		for _, set := range sets {
			spellings := make([]domain.Spelling, len(set.Spellings))
			for i, text := range set.Spellings {
				spellings[i] = domain.Spelling{
					EntryID:         set.EntryID,
					Text:            text,
					Sort:            int16(i),
					OccurrenceCount: counts[next],
				}
				next++
			}
			if _, err := im.store.ReplaceSpellings(ctx, set.EntryID, spellings); err != nil {
				return fmt.Errorf("entry %d: %w", set.EntryID, err)
			}
			entryIDs = append(entryIDs, set.EntryID)
		}
		return im.store.RefreshEntryCounts(ctx, entryIDs)
	})
	if err != nil {
		return res, fmt.Errorf("importer.ImportSpellings: %w", err)
	}

	res.Imported = len(sets)
	im.log.InfoContext(ctx, "spellings imported",
		slog.Int("entries", res.Imported),
		slog.Int("spellings", len(all)),
		slog.Int("row_errors", len(res.Errors)),
	)
	return res, nil
}
