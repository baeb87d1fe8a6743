package lexicon

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/yadascribe/scribe-backend/internal/domain"
	"github.com/yadascribe/scribe-backend/pkg/ctxutil"
)

const historyLimit = 50

// Get returns an entry with its spellings and counts.
func (s *Service) Get(ctx context.Context, id int64) (*domain.LexiconEntry, error) {
	return s.lexicon.GetByID(ctx, id)
}

// Search finds entries by Strong's number, Hebrew, transliteration,
// definitions or spelling. A blank term lists every entry.
func (s *Service) Search(ctx context.Context, term string) ([]domain.EntrySummary, error) {
	if strings.TrimSpace(term) == "" {
		return s.lexicon.List(ctx)
	}
	return s.lexicon.Search(ctx, term, s.cfg.SearchLimit)
}

// Create validates and stores a new entry with its spellings, counting each
// spelling across the corpus.
func (s *Service) Create(ctx context.Context, in EntryInput) (*domain.LexiconEntry, error) {
	userKey, ok := ctxutil.UserKeyFromCtx(ctx)
	if !ok {
		return nil, domain.ErrUnauthorized
	}
	if err := in.Validate(); err != nil {
		return nil, err
	}

	spellings, err := s.countedSpellings(ctx, in.Spellings)
	if err != nil {
		return nil, fmt.Errorf("lexicon.Create: %w", err)
	}

	var id int64
	err = s.tx.RunAsUser(ctx, userKey, func(txCtx context.Context) error {
		var err error
		if id, err = s.lexicon.Create(txCtx, in.entry(0)); err != nil {
			return fmt.Errorf("insert entry: %w", err)
		}
		return s.storeSpellings(txCtx, id, spellings)
	})
	if err != nil {
		return nil, fmt.Errorf("lexicon.Create: %w", err)
	}

	s.log.InfoContext(ctx, "lexicon entry created",
		slog.Int64("entry_id", id),
		slog.Int64("user_key", userKey),
		slog.Int("spellings", len(spellings)),
	)
	return s.lexicon.GetByID(ctx, id)
}

// Update overwrites entry id and replaces its spellings.
func (s *Service) Update(ctx context.Context, id int64, in EntryInput) (*domain.LexiconEntry, error) {
	userKey, ok := ctxutil.UserKeyFromCtx(ctx)
	if !ok {
		return nil, domain.ErrUnauthorized
	}
	if err := in.Validate(); err != nil {
		return nil, err
	}

	spellings, err := s.countedSpellings(ctx, in.Spellings)
	if err != nil {
		return nil, fmt.Errorf("lexicon.Update: %w", err)
	}

	err = s.tx.RunAsUser(ctx, userKey, func(txCtx context.Context) error {
		if err := s.lexicon.Update(txCtx, in.entry(id)); err != nil {
			return fmt.Errorf("update entry: %w", err)
		}
		return s.storeSpellings(txCtx, id, spellings)
	})
	if err != nil {
		return nil, fmt.Errorf("lexicon.Update: %w", err)
	}

	s.log.InfoContext(ctx, "lexicon entry updated",
		slog.Int64("entry_id", id),
		slog.Int64("user_key", userKey),
	)
	return s.lexicon.GetByID(ctx, id)
}

// Delete removes entry id and its spellings.
func (s *Service) Delete(ctx context.Context, id int64) error {
	userKey, ok := ctxutil.UserKeyFromCtx(ctx)
	if !ok {
		return domain.ErrUnauthorized
	}

	err := s.tx.RunAsUser(ctx, userKey, func(txCtx context.Context) error {
		return s.lexicon.Delete(txCtx, id)
	})
	if err != nil {
		return fmt.Errorf("lexicon.Delete: %w", err)
	}

	s.log.InfoContext(ctx, "lexicon entry deleted",
		slog.Int64("entry_id", id),
		slog.Int64("user_key", userKey),
	)
	return nil
}

// History returns the recorded changes of entry id, newest first.
func (s *Service) History(ctx context.Context, id int64) ([]domain.AuditRecord, error) {
	if _, err := s.lexicon.GetByID(ctx, id); err != nil {
		return nil, err
	}
	return s.audit.History(ctx, domain.AuditLexiconEntries, id, historyLimit)
}

// countedSpellings cleans the submitted spellings and counts each one in
// the corpus. Sort follows submission order.
func (s *Service) countedSpellings(ctx context.Context, raw []string) ([]domain.Spelling, error) {
	texts := domain.CleanSpellings(raw)
	if len(texts) == 0 {
		return nil, nil
	}

	counts, err := s.counter.CountMany(ctx, texts)
	if err != nil {
		return nil, fmt.Errorf("count spellings: %w", err)
	}

	out := make([]domain.Spelling, len(texts))
	for i, text := range texts {
		out[i] = domain.Spelling{Text: text, Sort: int16(i), OccurrenceCount: counts[i]}
	}
	return out, nil
}

func (s *Service) storeSpellings(ctx context.Context, entryID int64, spellings []domain.Spelling) error {
	if _, err := s.lexicon.ReplaceSpellings(ctx, entryID, spellings); err != nil {
		return fmt.Errorf("replace spellings: %w", err)
	}
	if err := s.lexicon.RefreshEntryCounts(ctx, []int64{entryID}); err != nil {
		return fmt.Errorf("refresh entry count: %w", err)
	}
	return nil
}
