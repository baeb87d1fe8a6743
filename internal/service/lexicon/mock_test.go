package lexicon

import (
	"context"
	"sync"

	"github.com/yadascribe/scribe-backend/internal/domain"
)

// ===========================================================================
// Manual mocks (moq-style with func fields)
// ===========================================================================

type mockLexiconRepo struct {
	MatchSpellingsFunc         func(ctx context.Context, words []string, includeInactive bool) ([]domain.MatchResult, error)
	SpellingTextsByEntriesFunc func(ctx context.Context, entryIDs []int64) (map[int64][]string, error)
	GetByIDFunc                func(ctx context.Context, id int64) (*domain.LexiconEntry, error)
	SearchFunc                 func(ctx context.Context, term string, limit uint64) ([]domain.EntrySummary, error)
	ListFunc                   func(ctx context.Context) ([]domain.EntrySummary, error)
	CreateFunc                 func(ctx context.Context, e domain.LexiconEntry) (int64, error)
	UpdateFunc                 func(ctx context.Context, e domain.LexiconEntry) error
	ReplaceSpellingsFunc       func(ctx context.Context, entryID int64, spellings []domain.Spelling) ([]domain.Spelling, error)
	DeleteFunc                 func(ctx context.Context, id int64) error
	AllSpellingsFunc           func(ctx context.Context) ([]domain.Spelling, error)
	UpdateSpellingCountsFunc   func(ctx context.Context, spellings []domain.Spelling) error
	RefreshEntryCountsFunc     func(ctx context.Context, entryIDs []int64) error
	LettersFunc                func(ctx context.Context) ([]domain.Letter, error)
	WordsByLetterFunc          func(ctx context.Context, letter string) ([]domain.EntrySummary, error)
}

func (m *mockLexiconRepo) MatchSpellings(ctx context.Context, words []string, includeInactive bool) ([]domain.MatchResult, error) {
	if m.MatchSpellingsFunc != nil {
		return m.MatchSpellingsFunc(ctx, words, includeInactive)
	}
	return nil, nil
}

func (m *mockLexiconRepo) SpellingTextsByEntries(ctx context.Context, entryIDs []int64) (map[int64][]string, error) {
	if m.SpellingTextsByEntriesFunc != nil {
		return m.SpellingTextsByEntriesFunc(ctx, entryIDs)
	}
	return map[int64][]string{}, nil
}

func (m *mockLexiconRepo) GetByID(ctx context.Context, id int64) (*domain.LexiconEntry, error) {
	if m.GetByIDFunc != nil {
		return m.GetByIDFunc(ctx, id)
	}
	return nil, domain.ErrNotFound
}

func (m *mockLexiconRepo) Search(ctx context.Context, term string, limit uint64) ([]domain.EntrySummary, error) {
	if m.SearchFunc != nil {
		return m.SearchFunc(ctx, term, limit)
	}
	return nil, nil
}

func (m *mockLexiconRepo) List(ctx context.Context) ([]domain.EntrySummary, error) {
	if m.ListFunc != nil {
		return m.ListFunc(ctx)
	}
	return nil, nil
}

func (m *mockLexiconRepo) Create(ctx context.Context, e domain.LexiconEntry) (int64, error) {
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, e)
	}
	return 1, nil
}

func (m *mockLexiconRepo) Update(ctx context.Context, e domain.LexiconEntry) error {
	if m.UpdateFunc != nil {
		return m.UpdateFunc(ctx, e)
	}
	return nil
}

func (m *mockLexiconRepo) ReplaceSpellings(ctx context.Context, entryID int64, spellings []domain.Spelling) ([]domain.Spelling, error) {
	if m.ReplaceSpellingsFunc != nil {
		return m.ReplaceSpellingsFunc(ctx, entryID, spellings)
	}
	return spellings, nil
}

func (m *mockLexiconRepo) Delete(ctx context.Context, id int64) error {
	if m.DeleteFunc != nil {
		return m.DeleteFunc(ctx, id)
	}
	return nil
}

func (m *mockLexiconRepo) AllSpellings(ctx context.Context) ([]domain.Spelling, error) {
	if m.AllSpellingsFunc != nil {
		return m.AllSpellingsFunc(ctx)
	}
	return nil, nil
}

func (m *mockLexiconRepo) UpdateSpellingCounts(ctx context.Context, spellings []domain.Spelling) error {
	if m.UpdateSpellingCountsFunc != nil {
		return m.UpdateSpellingCountsFunc(ctx, spellings)
	}
	return nil
}

func (m *mockLexiconRepo) RefreshEntryCounts(ctx context.Context, entryIDs []int64) error {
	if m.RefreshEntryCountsFunc != nil {
		return m.RefreshEntryCountsFunc(ctx, entryIDs)
	}
	return nil
}

func (m *mockLexiconRepo) Letters(ctx context.Context) ([]domain.Letter, error) {
	if m.LettersFunc != nil {
		return m.LettersFunc(ctx)
	}
	return nil, nil
}

func (m *mockLexiconRepo) WordsByLetter(ctx context.Context, letter string) ([]domain.EntrySummary, error) {
	if m.WordsByLetterFunc != nil {
		return m.WordsByLetterFunc(ctx, letter)
	}
	return nil, nil
}

type mockOccurrenceRepo struct {
	OccurrencesFunc func(ctx context.Context, pattern string) ([]domain.WordOccurrence, error)
}

func (m *mockOccurrenceRepo) Occurrences(ctx context.Context, pattern string) ([]domain.WordOccurrence, error) {
	if m.OccurrencesFunc != nil {
		return m.OccurrencesFunc(ctx, pattern)
	}
	return nil, nil
}

type mockAuditRepo struct {
	HistoryFunc func(ctx context.Context, table string, rowID int64, limit uint64) ([]domain.AuditRecord, error)
}

func (m *mockAuditRepo) History(ctx context.Context, table string, rowID int64, limit uint64) ([]domain.AuditRecord, error) {
	if m.HistoryFunc != nil {
		return m.HistoryFunc(ctx, table, rowID, limit)
	}
	return nil, nil
}

type mockCounter struct {
	mu            sync.Mutex
	calls         int
	CountManyFunc func(ctx context.Context, spellings []string) ([]int16, error)
}

func (m *mockCounter) CountMany(ctx context.Context, spellings []string) ([]int16, error) {
	m.mu.Lock()
	m.calls++
	m.mu.Unlock()
	if m.CountManyFunc != nil {
		return m.CountManyFunc(ctx, spellings)
	}
	return make([]int16, len(spellings)), nil
}

// mockTxManager runs fn directly and records the acting user.
type mockTxManager struct {
	runs     int
	userKeys []int64
}

func (m *mockTxManager) RunInTx(ctx context.Context, fn func(ctx context.Context) error) error {
	m.runs++
	return fn(ctx)
}

func (m *mockTxManager) RunAsUser(ctx context.Context, userKey int64, fn func(ctx context.Context) error) error {
	m.userKeys = append(m.userKeys, userKey)
	return m.RunInTx(ctx, fn)
}
