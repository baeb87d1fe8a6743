package domain

// MatchResult is the snapshot of a lexicon entry returned for a matched word.
// It carries the spelling that matched and every spelling of the entry in sort order.
type MatchResult struct {
	EntryID             int64
	Spelling            string
	Strongs             string
	Hebrew              string
	Transliteration     *string
	Gender              Gender
	Plural              bool
	PartsOfSpeech       PartsOfSpeech
	PrimaryDefinition   *string
	SecondaryDefinition *string
	Spellings           []string
}

// NewMatchResult builds a MatchResult for entry e matched through spelling.
// Spellings is left empty; the matcher attaches the full list afterwards.
func NewMatchResult(e LexiconEntry, spelling string) MatchResult {
	return MatchResult{
		EntryID:             e.ID,
		Spelling:            spelling,
		Strongs:             e.Strongs,
		Hebrew:              e.Hebrew,
		Transliteration:     e.Transliteration,
		Gender:              e.Gender,
		Plural:              e.Plural,
		PartsOfSpeech:       e.PartsOfSpeech,
		PrimaryDefinition:   e.PrimaryDefinition,
		SecondaryDefinition: e.SecondaryDefinition,
	}
}
