package rest

import (
	"time"

	"github.com/yadascribe/scribe-backend/internal/domain"
	"github.com/yadascribe/scribe-backend/internal/service/lexicon"
	"github.com/yadascribe/scribe-backend/internal/service/translation"
)

// ---------------------------------------------------------------------------
// Lexicon
// ---------------------------------------------------------------------------

type partsOfSpeech struct {
	Noun        bool `json:"noun"`
	Verb        bool `json:"verb"`
	Adjective   bool `json:"adjective"`
	Adverb      bool `json:"adverb"`
	Preposition bool `json:"preposition"`
	Conjunction bool `json:"conjunction"`
	Substantive bool `json:"substantive"`
}

func toPartsOfSpeech(p domain.PartsOfSpeech) partsOfSpeech {
	return partsOfSpeech(p)
}

func (p partsOfSpeech) domain() domain.PartsOfSpeech {
	return domain.PartsOfSpeech(p)
}

type matchResponse struct {
	EntryID             int64   `json:"entryId"`
	Spelling            string  `json:"spelling"`
	Strongs             string  `json:"strongs"`
	Hebrew              string  `json:"hebrew"`
	Transliteration     *string `json:"transliteration"`
	Gender              string  `json:"gender"`
	Plural              bool    `json:"plural"`
	partsOfSpeech
	PrimaryDefinition   *string  `json:"primaryDefinition"`
	SecondaryDefinition *string  `json:"secondaryDefinition"`
	Spellings           []string `json:"spellings"`
}

func toMatchResponse(m domain.MatchResult) matchResponse {
	spellings := m.Spellings
	if spellings == nil {
		spellings = []string{}
	}
	return matchResponse{
		EntryID:             m.EntryID,
		Spelling:            m.Spelling,
		Strongs:             m.Strongs,
		Hebrew:              m.Hebrew,
		Transliteration:     m.Transliteration,
		Gender:              m.Gender.String(),
		Plural:              m.Plural,
		partsOfSpeech:       toPartsOfSpeech(m.PartsOfSpeech),
		PrimaryDefinition:   m.PrimaryDefinition,
		SecondaryDefinition: m.SecondaryDefinition,
		Spellings:           spellings,
	}
}

func toLookupResponse(lookup map[string]domain.MatchResult) map[string]matchResponse {
	out := make(map[string]matchResponse, len(lookup))
	for k, m := range lookup {
		out[k] = toMatchResponse(m)
	}
	return out
}

type spellingResponse struct {
	ID              int64  `json:"id"`
	Text            string `json:"text"`
	Sort            int16  `json:"sort"`
	OccurrenceCount int16  `json:"occurrenceCount"`
}

type entryResponse struct {
	ID                  int64   `json:"id"`
	Strongs             string  `json:"strongs"`
	Hebrew              string  `json:"hebrew"`
	Transliteration     *string `json:"transliteration"`
	Gender              string  `json:"gender"`
	Plural              bool    `json:"plural"`
	partsOfSpeech
	PrimaryDefinition   *string            `json:"primaryDefinition"`
	SecondaryDefinition *string            `json:"secondaryDefinition"`
	Active              bool               `json:"active"`
	OccurrenceCount     int16              `json:"occurrenceCount"`
	Spellings           []spellingResponse `json:"spellings,omitempty"`
	SpellingsDisplay    *string            `json:"spellingsDisplay,omitempty"`
	CreatedAt           time.Time          `json:"createdAt"`
	UpdatedAt           time.Time          `json:"updatedAt"`
}

func toEntryResponse(e domain.LexiconEntry) entryResponse {
	spellings := make([]spellingResponse, len(e.Spellings))
	for i, sp := range e.Spellings {
		spellings[i] = spellingResponse{
			ID:              sp.ID,
			Text:            sp.Text,
			Sort:            sp.Sort,
			OccurrenceCount: sp.OccurrenceCount,
		}
	}
	return entryResponse{
		ID:                  e.ID,
		Strongs:             e.Strongs,
		Hebrew:              e.Hebrew,
		Transliteration:     e.Transliteration,
		Gender:              e.Gender.String(),
		Plural:              e.Plural,
		partsOfSpeech:       toPartsOfSpeech(e.PartsOfSpeech),
		PrimaryDefinition:   e.PrimaryDefinition,
		SecondaryDefinition: e.SecondaryDefinition,
		Active:              e.Active,
		OccurrenceCount:     e.OccurrenceCount,
		Spellings:           spellings,
		CreatedAt:           e.CreatedAt,
		UpdatedAt:           e.UpdatedAt,
	}
}

func toSummaryResponses(rows []domain.EntrySummary) []entryResponse {
	out := make([]entryResponse, len(rows))
	for i, row := range rows {
		resp := toEntryResponse(row.LexiconEntry)
		display := row.SpellingsDisplay
		resp.Spellings = nil
		resp.SpellingsDisplay = &display
		out[i] = resp
	}
	return out
}

type wordRequest struct {
	Strongs             string  `json:"strongs"`
	Hebrew              string  `json:"hebrew"`
	Transliteration     *string `json:"transliteration"`
	Gender              string  `json:"gender"`
	Plural              bool    `json:"plural"`
	partsOfSpeech
	PrimaryDefinition   *string  `json:"primaryDefinition"`
	SecondaryDefinition *string  `json:"secondaryDefinition"`
	Active              *bool    `json:"active"`
	Spellings           []string `json:"spellings"`
}

func (req wordRequest) input() lexicon.EntryInput {
	return lexicon.EntryInput{
		Strongs:             req.Strongs,
		Hebrew:              req.Hebrew,
		Transliteration:     req.Transliteration,
		Gender:              req.Gender,
		Plural:              req.Plural,
		PartsOfSpeech:       req.partsOfSpeech.domain(),
		PrimaryDefinition:   req.PrimaryDefinition,
		SecondaryDefinition: req.SecondaryDefinition,
		Active:              req.Active,
		Spellings:           req.Spellings,
	}
}

type letterResponse struct {
	Key             int64   `json:"key"`
	Transliteration string  `json:"transliteration"`
	Hebrew          string  `json:"hebrew"`
	Label           *string `json:"label"`
	Overview        *string `json:"overview"`
	NumericValue    *int32  `json:"numericValue"`
	Sort            int16   `json:"sort"`
}

func toLetterResponses(letters []domain.Letter) []letterResponse {
	out := make([]letterResponse, len(letters))
	for i, l := range letters {
		out[i] = letterResponse(l)
	}
	return out
}

type occurrenceResponse struct {
	TranslationID  int64   `json:"translationId"`
	VolumeKey      int64   `json:"volumeKey"`
	VolumeFile     *string `json:"volumeFile"`
	VolumeFlipCode *string `json:"volumeFlipCode"`
	SeriesSort     int16   `json:"seriesSort"`
	VolumeSort     int16   `json:"volumeSort"`
	Page           *int16  `json:"page"`
	Copy           string  `json:"copy"`
	ChapterHeading *string `json:"chapterHeading"`
}

func toOccurrenceResponses(rows []domain.WordOccurrence) []occurrenceResponse {
	out := make([]occurrenceResponse, len(rows))
	for i, row := range rows {
		out[i] = occurrenceResponse(row)
	}
	return out
}

// ---------------------------------------------------------------------------
// Translations
// ---------------------------------------------------------------------------

type translationResponse struct {
	ID                  int64     `json:"id"`
	ScrollKey           int64     `json:"scrollKey"`
	ChapterKey          int64     `json:"chapterKey"`
	VerseKey            int64     `json:"verseKey"`
	SeriesKey           int64     `json:"seriesKey"`
	VolumeKey           int64     `json:"volumeKey"`
	VolumeChapterKey    int64     `json:"volumeChapterKey"`
	Page                *int16    `json:"page"`
	Paragraph           *int16    `json:"paragraph"`
	Copy                string    `json:"copy"`
	Date                *string   `json:"date"`
	Sort                int16     `json:"sort"`
	UpdatedAt           time.Time `json:"updatedAt"`
	ScrollLabel         string    `json:"scrollLabel"`
	ScrollLabelCommon   *string   `json:"scrollLabelCommon"`
	ChapterNumber       int16     `json:"chapterNumber"`
	VerseNumber         int16     `json:"verseNumber"`
	SeriesName          string    `json:"seriesName"`
	VolumeName          string    `json:"volumeName"`
	VolumeNumber        *int16    `json:"volumeNumber"`
	VolumeChapterNumber *int16    `json:"volumeChapterNumber"`
	VolumeChapterName   *string   `json:"volumeChapterName"`
}

func toTranslationResponse(t domain.Translation) translationResponse {
	var date *string
	if t.Date != nil {
		d := t.Date.Format("2006-01-02")
		date = &d
	}
	return translationResponse{
		ID:                  t.ID,
		ScrollKey:           t.ScrollKey,
		ChapterKey:          t.ChapterKey,
		VerseKey:            t.VerseKey,
		SeriesKey:           t.SeriesKey,
		VolumeKey:           t.VolumeKey,
		VolumeChapterKey:    t.VolumeChapterKey,
		Page:                t.Page,
		Paragraph:           t.Paragraph,
		Copy:                t.Copy,
		Date:                date,
		Sort:                t.Sort,
		UpdatedAt:           t.UpdatedAt,
		ScrollLabel:         t.Ref.ScrollLabel,
		ScrollLabelCommon:   t.Ref.ScrollLabelCommon,
		ChapterNumber:       t.Ref.ChapterNumber,
		VerseNumber:         t.Ref.VerseNumber,
		SeriesName:          t.Ref.SeriesName,
		VolumeName:          t.Ref.VolumeName,
		VolumeNumber:        t.Ref.VolumeNumber,
		VolumeChapterNumber: t.Ref.VolumeChapterNumber,
		VolumeChapterName:   t.Ref.VolumeChapterName,
	}
}

func toTranslationResponses(rows []domain.Translation) []translationResponse {
	out := make([]translationResponse, len(rows))
	for i, row := range rows {
		out[i] = toTranslationResponse(row)
	}
	return out
}

type annotatedRecordResponse struct {
	translationResponse
	HTML   string `json:"html"`
	Linked int    `json:"linked"`
}

type annotatedResponse struct {
	Records []annotatedRecordResponse `json:"records"`
	Refs    map[string]matchResponse  `json:"refs"`
	Linked  int                       `json:"linked"`
}

func toAnnotatedResponse(a *translation.Annotated) annotatedResponse {
	records := make([]annotatedRecordResponse, len(a.Records))
	for i, rec := range a.Records {
		records[i] = annotatedRecordResponse{
			translationResponse: toTranslationResponse(rec.Translation),
			HTML:                rec.HTML,
			Linked:              rec.Linked,
		}
	}
	return annotatedResponse{
		Records: records,
		Refs:    toLookupResponse(a.Refs),
		Linked:  a.Linked,
	}
}

type translationRequest struct {
	ScrollKey        int64  `json:"scrollKey"`
	ChapterKey       int64  `json:"chapterKey"`
	VerseKey         int64  `json:"verseKey"`
	SeriesKey        int64  `json:"seriesKey"`
	VolumeKey        int64  `json:"volumeKey"`
	VolumeChapterKey int64  `json:"volumeChapterKey"`
	Page             *int16 `json:"page"`
	Paragraph        *int16 `json:"paragraph"`
	Copy             string `json:"copy"`
	Date             string `json:"date"`
	Sort             int16  `json:"sort"`
}

func (req translationRequest) input() translation.Input {
	return translation.Input(req)
}

// ---------------------------------------------------------------------------
// Audit
// ---------------------------------------------------------------------------

type auditResponse struct {
	ID        int64     `json:"id"`
	Action    string    `json:"action"`
	UserKey   *int64    `json:"userKey"`
	ChangedAt time.Time `json:"changedAt"`
}

func toAuditResponses(rows []domain.AuditRecord) []auditResponse {
	out := make([]auditResponse, len(rows))
	for i, row := range rows {
		out[i] = auditResponse{
			ID:        row.ID,
			Action:    row.Action,
			UserKey:   row.UserKey,
			ChangedAt: row.ChangedAt,
		}
	}
	return out
}
