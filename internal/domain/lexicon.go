package domain

import (
	"strings"
	"time"
)

// MaxOccurrenceCount is the ceiling for stored corpus occurrence counts.
// Counts are persisted as smallint and saturate at this value.
const MaxOccurrenceCount = 32767

// Gender is the grammatical gender of a lexicon entry.
type Gender string

const (
	GenderUnset     Gender = ""
	GenderMasculine Gender = "masculine"
	GenderFeminine  Gender = "feminine"
	GenderNeuter    Gender = "neuter"
)

func (g Gender) String() string { return string(g) }

// IsValid reports whether g is one of the known genders (unset included).
func (g Gender) IsValid() bool {
	switch g {
	case GenderUnset, GenderMasculine, GenderFeminine, GenderNeuter:
		return true
	}
	return false
}

// ParseGender accepts the long names and the single-letter codes m, f, n.
func ParseGender(s string) (Gender, bool) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "":
		return GenderUnset, true
	case "m", "masculine":
		return GenderMasculine, true
	case "f", "feminine":
		return GenderFeminine, true
	case "n", "neuter":
		return GenderNeuter, true
	}
	return GenderUnset, false
}

// PartsOfSpeech holds the part-of-speech flags of an entry.
type PartsOfSpeech struct {
	Noun        bool
	Verb        bool
	Adjective   bool
	Adverb      bool
	Preposition bool
	Conjunction bool
	Substantive bool
}

// LexiconEntry is a source-language headword with its spellings.
type LexiconEntry struct {
	ID                  int64
	Strongs             string
	Hebrew              string
	Transliteration     *string
	Gender              Gender
	Plural              bool
	PartsOfSpeech       PartsOfSpeech
	PrimaryDefinition   *string
	SecondaryDefinition *string
	Active              bool
	OccurrenceCount     int16
	Spellings           []Spelling
	CreatedAt           time.Time
	UpdatedAt           time.Time
}

// SpellingTexts returns the spelling texts in stored order.
func (e LexiconEntry) SpellingTexts() []string {
	out := make([]string, len(e.Spellings))
	for i, sp := range e.Spellings {
		out[i] = sp.Text
	}
	return out
}

// Spelling is one written variant of a lexicon headword.
type Spelling struct {
	ID              int64
	EntryID         int64
	Text            string
	Sort            int16
	OccurrenceCount int16
}

// EntrySummary is a lexicon row for list, search and glossary views.
// SpellingsDisplay is the comma-joined spelling list in sort order.
type EntrySummary struct {
	LexiconEntry
	SpellingsDisplay string
}

// Letter is one letter of the source alphabet shown by the glossary.
type Letter struct {
	Key             int64
	Transliteration string
	Hebrew          string
	Label           *string
	Overview        *string
	NumericValue    *int32
	Sort            int16
}

// PadStrongs left-pads a catalog number with zeros to four digits.
func PadStrongs(s string) string {
	s = strings.TrimSpace(s)
	if len(s) >= 4 {
		return s
	}
	return strings.Repeat("0", 4-len(s)) + s
}

// CleanSpellings trims every spelling and drops the empty ones,
// keeping submission order.
func CleanSpellings(raw []string) []string {
	out := make([]string, 0, len(raw))
	for _, s := range raw {
		if s = strings.TrimSpace(s); s != "" {
			out = append(out, s)
		}
	}
	return out
}

// ClampOccurrences converts a raw count into the stored range [0, MaxOccurrenceCount].
func ClampOccurrences(n int) int16 {
	switch {
	case n <= 0:
		return 0
	case n >= MaxOccurrenceCount:
		return MaxOccurrenceCount
	}
	return int16(n)
}

// SumOccurrences adds spelling counts with saturation.
func SumOccurrences(spellings []Spelling) int16 {
	total := 0
	for _, sp := range spellings {
		total += int(sp.OccurrenceCount)
		if total >= MaxOccurrenceCount {
			return MaxOccurrenceCount
		}
	}
	return ClampOccurrences(total)
}
