package lexicon

import (
	"time"

	"github.com/yadascribe/scribe-backend/internal/domain"
)

var entryColumns = []string{
	"e.id", "e.strongs", "e.hebrew", "e.transliteration", "e.gender", "e.plural",
	"e.noun", "e.verb", "e.adjective", "e.adverb", "e.preposition", "e.conjunction", "e.substantive",
	"e.primary_definition", "e.secondary_definition", "e.active", "e.occurrence_count",
	"e.created_at", "e.updated_at",
}

const spellingsDisplayColumn = `(SELECT COALESCE(string_agg(sd.text, ', ' ORDER BY sd.sort, sd.id), '')
    FROM lexicon_spellings sd WHERE sd.entry_id = e.id) AS spellings_display`

type entryRow struct {
	ID                  int64     `db:"id"`
	Strongs             string    `db:"strongs"`
	Hebrew              string    `db:"hebrew"`
	Transliteration     *string   `db:"transliteration"`
	Gender              string    `db:"gender"`
	Plural              bool      `db:"plural"`
	Noun                bool      `db:"noun"`
	Verb                bool      `db:"verb"`
	Adjective           bool      `db:"adjective"`
	Adverb              bool      `db:"adverb"`
	Preposition         bool      `db:"preposition"`
	Conjunction         bool      `db:"conjunction"`
	Substantive         bool      `db:"substantive"`
	PrimaryDefinition   *string   `db:"primary_definition"`
	SecondaryDefinition *string   `db:"secondary_definition"`
	Active              bool      `db:"active"`
	OccurrenceCount     int16     `db:"occurrence_count"`
	CreatedAt           time.Time `db:"created_at"`
	UpdatedAt           time.Time `db:"updated_at"`
}

func (r entryRow) toDomain() domain.LexiconEntry {
	return domain.LexiconEntry{
		ID:              r.ID,
		Strongs:         r.Strongs,
		Hebrew:          r.Hebrew,
		Transliteration: r.Transliteration,
		Gender:          domain.Gender(r.Gender),
		Plural:          r.Plural,
		PartsOfSpeech: domain.PartsOfSpeech{
			Noun:        r.Noun,
			Verb:        r.Verb,
			Adjective:   r.Adjective,
			Adverb:      r.Adverb,
			Preposition: r.Preposition,
			Conjunction: r.Conjunction,
			Substantive: r.Substantive,
		},
		PrimaryDefinition:   r.PrimaryDefinition,
		SecondaryDefinition: r.SecondaryDefinition,
		Active:              r.Active,
		OccurrenceCount:     r.OccurrenceCount,
		CreatedAt:           r.CreatedAt,
		UpdatedAt:           r.UpdatedAt,
	}
}

type matchRow struct {
	entryRow
	Spelling string `db:"spelling"`
}

type summaryRow struct {
	entryRow
	SpellingsDisplay string `db:"spellings_display"`
}

func (r summaryRow) toDomain() domain.EntrySummary {
	return domain.EntrySummary{LexiconEntry: r.entryRow.toDomain(), SpellingsDisplay: r.SpellingsDisplay}
}

type spellingRow struct {
	ID              int64  `db:"id"`
	EntryID         int64  `db:"entry_id"`
	Text            string `db:"text"`
	Sort            int16  `db:"sort"`
	OccurrenceCount int16  `db:"occurrence_count"`
}

func (r spellingRow) toDomain() domain.Spelling {
	return domain.Spelling{
		ID:              r.ID,
		EntryID:         r.EntryID,
		Text:            r.Text,
		Sort:            r.Sort,
		OccurrenceCount: r.OccurrenceCount,
	}
}

type letterRow struct {
	Key             int64   `db:"key"`
	Transliteration string  `db:"transliteration"`
	Hebrew          string  `db:"hebrew"`
	Label           *string `db:"label"`
	Overview        *string `db:"overview"`
	NumericValue    *int32  `db:"numeric_value"`
	Sort            int16   `db:"sort"`
}

func (r letterRow) toDomain() domain.Letter {
	return domain.Letter(r)
}

// entryFields maps the writable entry columns for insert and update.
func entryFields(e domain.LexiconEntry) map[string]any {
	return map[string]any{
		"strongs":              e.Strongs,
		"hebrew":               e.Hebrew,
		"transliteration":      e.Transliteration,
		"gender":               string(e.Gender),
		"plural":               e.Plural,
		"noun":                 e.PartsOfSpeech.Noun,
		"verb":                 e.PartsOfSpeech.Verb,
		"adjective":            e.PartsOfSpeech.Adjective,
		"adverb":               e.PartsOfSpeech.Adverb,
		"preposition":          e.PartsOfSpeech.Preposition,
		"conjunction":          e.PartsOfSpeech.Conjunction,
		"substantive":          e.PartsOfSpeech.Substantive,
		"primary_definition":   e.PrimaryDefinition,
		"secondary_definition": e.SecondaryDefinition,
		"active":               e.Active,
		"occurrence_count":     e.OccurrenceCount,
	}
}
