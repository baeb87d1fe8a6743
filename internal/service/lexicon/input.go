package lexicon

import (
	"regexp"
	"slices"
	"strings"

	"github.com/yadascribe/scribe-backend/internal/domain"
)

var strongsRe = regexp.MustCompile(`^[0-9]{1,4}$`)

// EntryInput holds the editable fields of a lexicon entry and its spellings
// in display order.
type EntryInput struct {
	Strongs             string
	Hebrew              string
	Transliteration     *string
	Gender              string
	Plural              bool
	PartsOfSpeech       domain.PartsOfSpeech
	PrimaryDefinition   *string
	SecondaryDefinition *string
	Active              *bool
	Spellings           []string
}

// Validate checks all fields and collects all errors.
func (i *EntryInput) Validate() error {
	var v domain.Violations

	v.Require(strongsRe.MatchString(strings.TrimSpace(i.Strongs)), "strongs", "Strong's number is required (1-4 digits).")
	v.Require(strings.TrimSpace(i.Hebrew) != "", "hebrew", "Hebrew text is required.")
	_, knownGender := domain.ParseGender(i.Gender)
	v.Require(knownGender, "gender", "Unknown gender.")
	v.Require(!slices.ContainsFunc(i.Spellings, func(sp string) bool { return len(sp) > 255 }),
		"spellings", "Spellings are limited to 255 characters.")

	return v.Err()
}

// entry converts a validated input. Optional text fields are trimmed and
// blank values stored as NULL.
func (i *EntryInput) entry(id int64) domain.LexiconEntry {
	gender, _ := domain.ParseGender(i.Gender)
	active := true
	if i.Active != nil {
		active = *i.Active
	}
	return domain.LexiconEntry{
		ID:                  id,
		Strongs:             domain.PadStrongs(i.Strongs),
		Hebrew:              strings.TrimSpace(i.Hebrew),
		Transliteration:     trimmedOrNil(i.Transliteration),
		Gender:              gender,
		Plural:              i.Plural,
		PartsOfSpeech:       i.PartsOfSpeech,
		PrimaryDefinition:   trimmedOrNil(i.PrimaryDefinition),
		SecondaryDefinition: trimmedOrNil(i.SecondaryDefinition),
		Active:              active,
	}
}

func trimmedOrNil(s *string) *string {
	if s == nil {
		return nil
	}
	t := strings.TrimSpace(*s)
	if t == "" {
		return nil
	}
	return &t
}
