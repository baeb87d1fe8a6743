package lexicon

import (
	"context"
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/yadascribe/scribe-backend/internal/domain"
	"github.com/yadascribe/scribe-backend/internal/wordlink"
)

// Letters returns the glossary alphabet.
func (s *Service) Letters(ctx context.Context) ([]domain.Letter, error) {
	return s.lexicon.Letters(ctx)
}

// WordsByLetter returns the active entries whose transliteration starts
// with letter. letter must be exactly one character.
func (s *Service) WordsByLetter(ctx context.Context, letter string) ([]domain.EntrySummary, error) {
	letter = strings.TrimSpace(letter)
	if utf8.RuneCountInString(letter) != 1 {
		return nil, domain.NewValidationError("letter", "must be exactly one character")
	}
	return s.lexicon.WordsByLetter(ctx, letter)
}

// WordTranslations returns the translations in which any spelling of entry
// id appears as a whole word.
func (s *Service) WordTranslations(ctx context.Context, id int64) ([]domain.WordOccurrence, error) {
	entry, err := s.lexicon.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	pattern := wordlink.PostgresWordPattern(entry.SpellingTexts())
	if pattern == "" {
		return []domain.WordOccurrence{}, nil
	}

	occ, err := s.occurrences.Occurrences(ctx, pattern)
	if err != nil {
		return nil, fmt.Errorf("lexicon.WordTranslations: %w", err)
	}
	return occ, nil
}
