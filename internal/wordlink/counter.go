package wordlink

import (
	"context"
	"fmt"
	"regexp"
	"strings"
	"unicode/utf8"

	"github.com/yadascribe/scribe-backend/internal/domain"
)

// CorpusSource streams the copy of every translation record.
type CorpusSource interface {
	EachCopy(ctx context.Context, fn func(body string) error) error
}

// Counter counts spelling occurrences inside the marked runs of the corpus.
type Counter struct {
	corpus CorpusSource
}

// NewCounter creates a Counter reading from corpus.
func NewCounter(corpus CorpusSource) *Counter {
	return &Counter{corpus: corpus}
}

// CountOccurrences counts one spelling. See CountMany.
func (c *Counter) CountOccurrences(ctx context.Context, spelling string) (int16, error) {
	counts, err := c.CountMany(ctx, []string{spelling})
	if err != nil {
		return 0, err
	}
	return counts[0], nil
}

// CountMany counts each spelling across the whole corpus in a single pass.
// A spelling matches case-insensitively when it is not directly preceded or
// followed by an ASCII letter or an apostrophe. Results saturate at
// domain.MaxOccurrenceCount. Blank spellings count zero.
func (c *Counter) CountMany(ctx context.Context, spellings []string) ([]int16, error) {
	patterns := make([]*regexp.Regexp, len(spellings))
	pending := 0
	for i, sp := range spellings {
		re, err := SpellingPattern(sp)
		if err != nil {
			return nil, fmt.Errorf("compile pattern for %q: %w", sp, err)
		}
		if re != nil {
			patterns[i] = re
			pending++
		}
	}

	totals := make([]int, len(spellings))
	if pending > 0 {
		err := c.corpus.EachCopy(ctx, func(body string) error {
			runs := CorpusRuns(body)
			if len(runs) == 0 {
				return nil
			}
			for i, re := range patterns {
				if re == nil || totals[i] >= domain.MaxOccurrenceCount {
					continue
				}
				for _, r := range runs {
					totals[i] += CountInText(re, r)
				}
			}
			return nil
		})
		if err != nil {
			return nil, fmt.Errorf("scan corpus: %w", err)
		}
	}

	out := make([]int16, len(totals))
	for i, n := range totals {
		out[i] = domain.ClampOccurrences(n)
	}
	return out, nil
}

// SpellingPattern compiles the case-insensitive literal pattern for a spelling.
// Returns nil for a blank spelling.
func SpellingPattern(spelling string) (*regexp.Regexp, error) {
	spelling = strings.TrimSpace(spelling)
	if spelling == "" {
		return nil, nil
	}
	return regexp.Compile("(?i)" + regexp.QuoteMeta(strings.ToLower(spelling)))
}

// CountInText counts bounded matches of re in text. After a candidate is
// rejected the scan resumes one rune past its start, so overlapping
// candidates are still considered.
func CountInText(re *regexp.Regexp, text string) int {
	n := 0
	for pos := 0; pos < len(text); {
		loc := re.FindStringIndex(text[pos:])
		if loc == nil || loc[0] == loc[1] {
			break
		}
		start, end := pos+loc[0], pos+loc[1]
		if bounded(text, start, end) {
			n++
			pos = end
			continue
		}
		_, size := utf8.DecodeRuneInString(text[start:])
		pos = start + size
	}
	return n
}

func bounded(text string, start, end int) bool {
	if start > 0 && isWordByte(text[start-1]) {
		return false
	}
	if end < len(text) && isWordByte(text[end]) {
		return false
	}
	return true
}
