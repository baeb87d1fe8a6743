package translation

import (
	"strings"
	"time"

	"github.com/yadascribe/scribe-backend/internal/domain"
	"github.com/yadascribe/scribe-backend/internal/wordlink"
)

const dateLayout = "2006-01-02"

// Input holds the editable fields of a translation record.
type Input struct {
	ScrollKey        int64
	ChapterKey       int64
	VerseKey         int64
	SeriesKey        int64
	VolumeKey        int64
	VolumeChapterKey int64
	Page             *int16
	Paragraph        *int16
	Copy             string
	Date             string
	Sort             int16
}

type reference struct {
	name  string
	field string
	label string
	key   func(*Input) int64
}

var references = []reference{
	{domain.RefScroll, "scrollKey", "Scroll", func(i *Input) int64 { return i.ScrollKey }},
	{domain.RefChapter, "chapterKey", "Chapter", func(i *Input) int64 { return i.ChapterKey }},
	{domain.RefVerse, "verseKey", "Verse", func(i *Input) int64 { return i.VerseKey }},
	{domain.RefSeries, "seriesKey", "Series", func(i *Input) int64 { return i.SeriesKey }},
	{domain.RefVolume, "volumeKey", "Volume", func(i *Input) int64 { return i.VolumeKey }},
	{domain.RefVolumeChapter, "volumeChapterKey", "YY Chapter", func(i *Input) int64 { return i.VolumeChapterKey }},
}

// Validate checks all fields and collects all errors. Reference existence is
// checked separately against the database.
func (i *Input) Validate() error {
	var v domain.Violations

	for _, ref := range references {
		v.Require(ref.key(i) > 0, ref.field, ref.label+" is required.")
	}
	v.Require(strings.TrimSpace(wordlink.PlainText(i.Copy)) != "", "copy", "Copy is required.")
	v.Require(i.Page == nil || *i.Page >= 1, "page", "Page must be 1 or greater.")
	v.Require(i.Paragraph == nil || *i.Paragraph >= 1, "paragraph", "Paragraph must be 1 or greater.")
	if d := strings.TrimSpace(i.Date); d != "" {
		_, err := time.Parse(dateLayout, d)
		v.Require(err == nil, "date", "Date must be YYYY-MM-DD.")
	}
	v.Require(i.Sort >= 0, "sort", "Sort must be 0 or greater.")

	return v.Err()
}

// missingErrors turns reference names reported by the repository into field
// errors.
func missingErrors(missing []string) error {
	var v domain.Violations
	for _, name := range missing {
		for _, ref := range references {
			if ref.name == name {
				v.Add(ref.field, ref.label+" does not exist.")
			}
		}
	}
	return v.Err()
}

func (i *Input) translation(id int64) domain.Translation {
	t := domain.Translation{
		ID:               id,
		ScrollKey:        i.ScrollKey,
		ChapterKey:       i.ChapterKey,
		VerseKey:         i.VerseKey,
		SeriesKey:        i.SeriesKey,
		VolumeKey:        i.VolumeKey,
		VolumeChapterKey: i.VolumeChapterKey,
		Page:             i.Page,
		Paragraph:        i.Paragraph,
		Copy:             i.Copy,
		Sort:             i.Sort,
	}
	if d, err := time.Parse(dateLayout, strings.TrimSpace(i.Date)); err == nil {
		t.Date = &d
	}
	return t
}
