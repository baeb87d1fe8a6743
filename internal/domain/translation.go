package domain

import "time"

// Translation is one translation record: rich HTML copy tied to a verse
// reference and to a page of a published volume.
type Translation struct {
	ID               int64
	ScrollKey        int64
	ChapterKey       int64
	VerseKey         int64
	SeriesKey        int64
	VolumeKey        int64
	VolumeChapterKey int64
	Page             *int16
	Paragraph        *int16
	Copy             string
	Date             *time.Time
	Sort             int16
	UpdatedAt        time.Time

	Ref TranslationRef
}

// TranslationRef holds the display labels joined in from the reference tables.
type TranslationRef struct {
	ScrollLabel         string
	ScrollLabelCommon   *string
	ChapterNumber       int16
	VerseNumber         int16
	SeriesName          string
	VolumeName          string
	VolumeNumber        *int16
	VolumeChapterNumber *int16
	VolumeChapterName   *string
}

// TranslationFilter selects translations by verse reference.
// All must be set explicitly to list without a reference filter.
type TranslationFilter struct {
	ScrollKey  *int64
	ChapterKey *int64
	VerseKey   *int64
	All        bool
}

// IsEmpty reports whether no reference filter is set.
func (f TranslationFilter) IsEmpty() bool {
	return f.ScrollKey == nil && f.ChapterKey == nil && f.VerseKey == nil
}

// WordOccurrence is a translation in which one of an entry's spellings appears.
type WordOccurrence struct {
	TranslationID  int64
	VolumeKey      int64
	VolumeFile     *string
	VolumeFlipCode *string
	SeriesSort     int16
	VolumeSort     int16
	Page           *int16
	Copy           string
	ChapterHeading *string
}

// Reference tables a translation points at, as reported by reference checks.
const (
	RefScroll        = "scroll"
	RefChapter       = "chapter"
	RefVerse         = "verse"
	RefSeries        = "series"
	RefVolume        = "volume"
	RefVolumeChapter = "volume_chapter"
)
