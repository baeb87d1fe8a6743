package lexicon

import (
	"context"
	"fmt"
	"strings"

	"github.com/yadascribe/scribe-backend/internal/domain"
	"github.com/yadascribe/scribe-backend/internal/wordlink"
)

// Lookup parses a pipe-delimited word list and matches it against the
// lexicon. See Match.
func (s *Service) Lookup(ctx context.Context, raw string) (map[string]domain.MatchResult, error) {
	return s.Match(ctx, wordlink.ParseWordList(raw))
}

// Match returns the lexicon entry for each word that is a known spelling,
// keyed by the lowercase spelling. When a spelling belongs to several
// entries the one with the lowest spelling sort wins. Every result carries
// all spellings of its entry in sort order. Unknown words are left out.
func (s *Service) Match(ctx context.Context, words []string) (map[string]domain.MatchResult, error) {
	out := make(map[string]domain.MatchResult)

	words = wordlink.TokenSet(words)
	if len(words) == 0 {
		return out, nil
	}

	rows, err := s.lexicon.MatchSpellings(ctx, words, s.cfg.LinkInactive)
	if err != nil {
		return nil, fmt.Errorf("lexicon.Match spellings: %w", err)
	}

	var entryIDs []int64
	seenEntry := make(map[int64]struct{})
	for _, row := range rows {
		key := strings.ToLower(row.Spelling)
		if _, ok := out[key]; ok {
			continue
		}
		out[key] = row
		if _, ok := seenEntry[row.EntryID]; !ok {
			seenEntry[row.EntryID] = struct{}{}
			entryIDs = append(entryIDs, row.EntryID)
		}
	}
	if len(out) == 0 {
		return out, nil
	}

	spellings, err := s.lexicon.SpellingTextsByEntries(ctx, entryIDs)
	if err != nil {
		return nil, fmt.Errorf("lexicon.Match entry spellings: %w", err)
	}
	for key, m := range out {
		m.Spellings = spellings[m.EntryID]
		if m.Spellings == nil {
			m.Spellings = []string{}
		}
		out[key] = m
	}
	return out, nil
}
