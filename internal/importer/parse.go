package importer

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/yadascribe/scribe-backend/internal/domain"
)

// RowError reports a row that could not be imported. Row is 1-based and
// counts the header.
type RowError struct {
	Row     int
	Message string
}

func (e RowError) Error() string {
	return fmt.Sprintf("row %d: %s", e.Row, e.Message)
}

// EntrySpellings is the ordered spelling list of one entry.
type EntrySpellings struct {
	EntryID   int64
	Spellings []string
}

// wordColumns maps accepted header names to entry columns. Both the short
// names and the legacy glossary export names are recognised.
var wordColumns = map[string]string{
	"id":                    "id",
	"word_id":               "id",
	"strongs":               "strongs",
	"word_strongs":          "strongs",
	"hebrew":                "hebrew",
	"word_hebrew":           "hebrew",
	"transliteration":       "transliteration",
	"word_yt":               "transliteration",
	"definition":            "definition",
	"word_definition":       "definition",
	"secondary_definition":  "secondary_definition",
	"word_definition_yy":    "secondary_definition",
	"gender_m":              "gender_m",
	"word_flag_gender_m":    "gender_m",
	"gender_f":              "gender_f",
	"word_flag_gender_f":    "gender_f",
	"plural":                "plural",
	"word_flag_plural":      "plural",
	"noun":                  "noun",
	"word_flag_noun":        "noun",
	"verb":                  "verb",
	"word_flag_verb":        "verb",
	"adjective":             "adjective",
	"word_flag_adjective":   "adjective",
	"adverb":                "adverb",
	"word_flag_adverb":      "adverb",
	"preposition":           "preposition",
	"word_flag_preposition": "preposition",
	"conjunction":           "conjunction",
	"word_flag_conjunction": "conjunction",
	"substantive":           "substantive",
	"word_flag_subst":       "substantive",
}

// ParseWords reads header-keyed entry rows. Rows without an id are skipped
// silently; rows that fail validation are reported and skipped. Flag columns
// are true only when the cell is exactly "1".
func ParseWords(rows [][]string) ([]domain.LexiconEntry, []RowError) {
	if len(rows) == 0 {
		return nil, nil
	}

	index := make(map[string]int)
	for i, name := range rows[0] {
		if col, ok := wordColumns[strings.ToLower(strings.TrimSpace(name))]; ok {
			if _, dup := index[col]; !dup {
				index[col] = i
			}
		}
	}
	for _, required := range []string{"id", "strongs", "hebrew"} {
		if _, ok := index[required]; !ok {
			return nil, []RowError{{Row: 1, Message: fmt.Sprintf("missing %q column", required)}}
		}
	}

	var (
		entries []domain.LexiconEntry
		errs    []RowError
	)
	for n, row := range rows[1:] {
		rowNum := n + 2
		cell := func(col string) string {
			i, ok := index[col]
			if !ok || i >= len(row) {
				return ""
			}
			return strings.TrimSpace(row[i])
		}
		flag := func(col string) bool { return cell(col) == "1" }

		rawID := cell("id")
		if rawID == "" {
			continue
		}
		id, err := strconv.ParseInt(rawID, 10, 64)
		if err != nil || id <= 0 {
			errs = append(errs, RowError{Row: rowNum, Message: fmt.Sprintf("invalid id %q", rawID)})
			continue
		}
		strongs := cell("strongs")
		if strongs == "" || len(strongs) > 4 {
			errs = append(errs, RowError{Row: rowNum, Message: fmt.Sprintf("invalid strongs %q", strongs)})
			continue
		}
		if _, err := strconv.Atoi(strongs); err != nil {
			errs = append(errs, RowError{Row: rowNum, Message: fmt.Sprintf("invalid strongs %q", strongs)})
			continue
		}
		hebrew := cell("hebrew")
		if hebrew == "" {
			errs = append(errs, RowError{Row: rowNum, Message: "hebrew is empty"})
			continue
		}

		gender := domain.GenderUnset
		switch m, f := flag("gender_m"), flag("gender_f"); {
		case m && f:
			errs = append(errs, RowError{Row: rowNum, Message: "both gender flags set"})
			continue
		case m:
			gender = domain.GenderMasculine
		case f:
			gender = domain.GenderFeminine
		}

		entries = append(entries, domain.LexiconEntry{
			ID:              id,
			Strongs:         domain.PadStrongs(strongs),
			Hebrew:          hebrew,
			Transliteration: optional(cell("transliteration")),
			Gender:          gender,
			Plural:          flag("plural"),
			PartsOfSpeech: domain.PartsOfSpeech{
				Noun:        flag("noun"),
				Verb:        flag("verb"),
				Adjective:   flag("adjective"),
				Adverb:      flag("adverb"),
				Preposition: flag("preposition"),
				Conjunction: flag("conjunction"),
				Substantive: flag("substantive"),
			},
			PrimaryDefinition:   optional(cell("definition")),
			SecondaryDefinition: optional(cell("secondary_definition")),
			Active:              true,
		})
	}
	return entries, errs
}

// ParseSpellings reads (entry id, spellings) rows after a header row.
// The second cell holds one spelling per line. Rows with an empty first
// cell are skipped.
func ParseSpellings(rows [][]string) ([]EntrySpellings, []RowError) {
	var (
		out  []EntrySpellings
		errs []RowError
	)
	for n, row := range rows {
		if n == 0 || len(row) == 0 {
			continue
		}
		rowNum := n + 1
		rawID := strings.TrimSpace(row[0])
		if rawID == "" {
			continue
		}
		id, err := strconv.ParseInt(rawID, 10, 64)
		if err != nil || id <= 0 {
			errs = append(errs, RowError{Row: rowNum, Message: fmt.Sprintf("invalid entry id %q", rawID)})
			continue
		}
		var raw string
		if len(row) > 1 {
			raw = row[1]
		}
		raw = strings.ReplaceAll(raw, "\r\n", "\n")
		out = append(out, EntrySpellings{
			EntryID:   id,
			Spellings: domain.CleanSpellings(strings.Split(raw, "\n")),
		})
	}
	return out, errs
}

func optional(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}
