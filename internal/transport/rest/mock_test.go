package rest

import (
	"context"

	"github.com/yadascribe/scribe-backend/internal/auth"
	"github.com/yadascribe/scribe-backend/internal/domain"
	authsvc "github.com/yadascribe/scribe-backend/internal/service/auth"
	"github.com/yadascribe/scribe-backend/internal/service/lexicon"
	"github.com/yadascribe/scribe-backend/internal/service/translation"
	"github.com/yadascribe/scribe-backend/internal/wordlink"
)

type mockLexiconService struct {
	LookupFunc           func(ctx context.Context, raw string) (map[string]domain.MatchResult, error)
	GetFunc              func(ctx context.Context, id int64) (*domain.LexiconEntry, error)
	SearchFunc           func(ctx context.Context, term string) ([]domain.EntrySummary, error)
	CreateFunc           func(ctx context.Context, in lexicon.EntryInput) (*domain.LexiconEntry, error)
	UpdateFunc           func(ctx context.Context, id int64, in lexicon.EntryInput) (*domain.LexiconEntry, error)
	DeleteFunc           func(ctx context.Context, id int64) error
	HistoryFunc          func(ctx context.Context, id int64) ([]domain.AuditRecord, error)
	LettersFunc          func(ctx context.Context) ([]domain.Letter, error)
	WordsByLetterFunc    func(ctx context.Context, letter string) ([]domain.EntrySummary, error)
	WordTranslationsFunc func(ctx context.Context, id int64) ([]domain.WordOccurrence, error)
}

func (m *mockLexiconService) Lookup(ctx context.Context, raw string) (map[string]domain.MatchResult, error) {
	if m.LookupFunc != nil {
		return m.LookupFunc(ctx, raw)
	}
	return map[string]domain.MatchResult{}, nil
}

func (m *mockLexiconService) Get(ctx context.Context, id int64) (*domain.LexiconEntry, error) {
	if m.GetFunc != nil {
		return m.GetFunc(ctx, id)
	}
	return nil, domain.ErrNotFound
}

func (m *mockLexiconService) Search(ctx context.Context, term string) ([]domain.EntrySummary, error) {
	if m.SearchFunc != nil {
		return m.SearchFunc(ctx, term)
	}
	return nil, nil
}

func (m *mockLexiconService) Create(ctx context.Context, in lexicon.EntryInput) (*domain.LexiconEntry, error) {
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, in)
	}
	return nil, nil
}

func (m *mockLexiconService) Update(ctx context.Context, id int64, in lexicon.EntryInput) (*domain.LexiconEntry, error) {
	if m.UpdateFunc != nil {
		return m.UpdateFunc(ctx, id, in)
	}
	return nil, domain.ErrNotFound
}

func (m *mockLexiconService) Delete(ctx context.Context, id int64) error {
	if m.DeleteFunc != nil {
		return m.DeleteFunc(ctx, id)
	}
	return nil
}

func (m *mockLexiconService) History(ctx context.Context, id int64) ([]domain.AuditRecord, error) {
	if m.HistoryFunc != nil {
		return m.HistoryFunc(ctx, id)
	}
	return nil, nil
}

func (m *mockLexiconService) Letters(ctx context.Context) ([]domain.Letter, error) {
	if m.LettersFunc != nil {
		return m.LettersFunc(ctx)
	}
	return nil, nil
}

func (m *mockLexiconService) WordsByLetter(ctx context.Context, letter string) ([]domain.EntrySummary, error) {
	if m.WordsByLetterFunc != nil {
		return m.WordsByLetterFunc(ctx, letter)
	}
	return nil, nil
}

func (m *mockLexiconService) WordTranslations(ctx context.Context, id int64) ([]domain.WordOccurrence, error) {
	if m.WordTranslationsFunc != nil {
		return m.WordTranslationsFunc(ctx, id)
	}
	return nil, nil
}

type mockTranslationService struct {
	ListFunc      func(ctx context.Context, filter domain.TranslationFilter) ([]domain.Translation, error)
	GetFunc       func(ctx context.Context, id int64) (*domain.Translation, error)
	CreateFunc    func(ctx context.Context, in translation.Input) (*domain.Translation, error)
	UpdateFunc    func(ctx context.Context, id int64, in translation.Input) (*domain.Translation, error)
	DeleteFunc    func(ctx context.Context, id int64) error
	HistoryFunc   func(ctx context.Context, id int64) ([]domain.AuditRecord, error)
	AnnotatedFunc func(ctx context.Context, filter domain.TranslationFilter, mode wordlink.Mode) (*translation.Annotated, error)
}

func (m *mockTranslationService) List(ctx context.Context, filter domain.TranslationFilter) ([]domain.Translation, error) {
	if m.ListFunc != nil {
		return m.ListFunc(ctx, filter)
	}
	return nil, nil
}

func (m *mockTranslationService) Get(ctx context.Context, id int64) (*domain.Translation, error) {
	if m.GetFunc != nil {
		return m.GetFunc(ctx, id)
	}
	return nil, domain.ErrNotFound
}

func (m *mockTranslationService) Create(ctx context.Context, in translation.Input) (*domain.Translation, error) {
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, in)
	}
	return nil, nil
}

func (m *mockTranslationService) Update(ctx context.Context, id int64, in translation.Input) (*domain.Translation, error) {
	if m.UpdateFunc != nil {
		return m.UpdateFunc(ctx, id, in)
	}
	return nil, domain.ErrNotFound
}

func (m *mockTranslationService) Delete(ctx context.Context, id int64) error {
	if m.DeleteFunc != nil {
		return m.DeleteFunc(ctx, id)
	}
	return nil
}

func (m *mockTranslationService) History(ctx context.Context, id int64) ([]domain.AuditRecord, error) {
	if m.HistoryFunc != nil {
		return m.HistoryFunc(ctx, id)
	}
	return nil, nil
}

func (m *mockTranslationService) Annotated(ctx context.Context, filter domain.TranslationFilter, mode wordlink.Mode) (*translation.Annotated, error) {
	if m.AnnotatedFunc != nil {
		return m.AnnotatedFunc(ctx, filter, mode)
	}
	return &translation.Annotated{}, nil
}

type mockAuthService struct {
	LoginFunc  func(ctx context.Context, input authsvc.LoginInput) (*authsvc.LoginResult, error)
	StatusFunc func(token string) (auth.Session, bool)
}

func (m *mockAuthService) Login(ctx context.Context, input authsvc.LoginInput) (*authsvc.LoginResult, error) {
	if m.LoginFunc != nil {
		return m.LoginFunc(ctx, input)
	}
	return nil, nil
}

func (m *mockAuthService) Status(token string) (auth.Session, bool) {
	if m.StatusFunc != nil {
		return m.StatusFunc(token)
	}
	return auth.Session{}, false
}
