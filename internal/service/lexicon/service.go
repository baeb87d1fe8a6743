// Package lexicon implements the lexicon use cases: word lookup for the
// annotation client, entry administration, the glossary, and corpus
// occurrence counting.
package lexicon

import (
	"context"
	"log/slog"

	"github.com/yadascribe/scribe-backend/internal/config"
	"github.com/yadascribe/scribe-backend/internal/domain"
)

// ---------------------------------------------------------------------------
// Consumer-defined interfaces (private)
// ---------------------------------------------------------------------------

type lexiconRepo interface {
	MatchSpellings(ctx context.Context, words []string, includeInactive bool) ([]domain.MatchResult, error)
	SpellingTextsByEntries(ctx context.Context, entryIDs []int64) (map[int64][]string, error)
	GetByID(ctx context.Context, id int64) (*domain.LexiconEntry, error)
	Search(ctx context.Context, term string, limit uint64) ([]domain.EntrySummary, error)
	List(ctx context.Context) ([]domain.EntrySummary, error)
	Create(ctx context.Context, e domain.LexiconEntry) (int64, error)
	Update(ctx context.Context, e domain.LexiconEntry) error
	ReplaceSpellings(ctx context.Context, entryID int64, spellings []domain.Spelling) ([]domain.Spelling, error)
	Delete(ctx context.Context, id int64) error
	AllSpellings(ctx context.Context) ([]domain.Spelling, error)
	UpdateSpellingCounts(ctx context.Context, spellings []domain.Spelling) error
	RefreshEntryCounts(ctx context.Context, entryIDs []int64) error
	Letters(ctx context.Context) ([]domain.Letter, error)
	WordsByLetter(ctx context.Context, letter string) ([]domain.EntrySummary, error)
}

type occurrenceRepo interface {
	Occurrences(ctx context.Context, pattern string) ([]domain.WordOccurrence, error)
}

type auditRepo interface {
	History(ctx context.Context, table string, rowID int64, limit uint64) ([]domain.AuditRecord, error)
}

type occurrenceCounter interface {
	CountMany(ctx context.Context, spellings []string) ([]int16, error)
}

type txManager interface {
	RunInTx(ctx context.Context, fn func(ctx context.Context) error) error
	RunAsUser(ctx context.Context, userKey int64, fn func(ctx context.Context) error) error
}

// ---------------------------------------------------------------------------
// Service
// ---------------------------------------------------------------------------

// Service implements the lexicon business logic.
type Service struct {
	log         *slog.Logger
	lexicon     lexiconRepo
	occurrences occurrenceRepo
	audit       auditRepo
	counter     occurrenceCounter
	tx          txManager
	cfg         config.LexiconConfig
}

// NewService creates a new lexicon service.
func NewService(
	logger *slog.Logger,
	lexicon lexiconRepo,
	occurrences occurrenceRepo,
	audit auditRepo,
	counter occurrenceCounter,
	tx txManager,
	cfg config.LexiconConfig,
) *Service {
	return &Service{
		log:         logger.With("service", "lexicon"),
		lexicon:     lexicon,
		occurrences: occurrences,
		audit:       audit,
		counter:     counter,
		tx:          tx,
		cfg:         cfg,
	}
}
