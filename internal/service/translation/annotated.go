package translation

import (
	"context"
	"fmt"
	"strconv"

	"github.com/yadascribe/scribe-backend/internal/domain"
	"github.com/yadascribe/scribe-backend/internal/wordlink"
)

// AnnotatedRecord is a translation with its rendered copy.
type AnnotatedRecord struct {
	domain.Translation
	HTML   string
	Linked int
}

// Annotated is the result of rendering a set of records with one lexicon
// lookup. Refs is keyed by the ids written into the records' HTML, which are
// unique across the whole result.
type Annotated struct {
	Records []AnnotatedRecord
	Refs    map[string]domain.MatchResult
	Linked  int
}

// Annotated lists the records matching filter and links their marked runs
// to the lexicon. Ids have the form t<record id>-w<n>.
func (s *Service) Annotated(ctx context.Context, filter domain.TranslationFilter, mode wordlink.Mode) (*Annotated, error) {
	records, err := s.List(ctx, filter)
	if err != nil {
		return nil, err
	}

	var words []string
	for _, t := range records {
		words = append(words, wordlink.CandidateWords(t.Copy, mode)...)
	}
	lookup, err := s.matcher.Match(ctx, words)
	if err != nil {
		return nil, fmt.Errorf("translation.Annotated match: %w", err)
	}

	out := &Annotated{
		Records: make([]AnnotatedRecord, len(records)),
		Refs:    make(map[string]domain.MatchResult),
	}
	for i, t := range records {
		a := wordlink.Annotator{Mode: mode, IDPrefix: "t" + strconv.FormatInt(t.ID, 10) + "-w"}
		res := a.Annotate(t.Copy, lookup)
		for id, m := range res.Refs {
			out.Refs[id] = m
		}
		out.Records[i] = AnnotatedRecord{Translation: t, HTML: res.HTML, Linked: res.Linked}
		out.Linked += res.Linked
	}
	return out, nil
}
