// Package translation implements the translation record repository using
// PostgreSQL. It also streams the corpus for occurrence counting and finds
// the records that mention a lexicon entry.
package translation

import (
	"context"
	"fmt"
	"time"

	sq "github.com/Masterminds/squirrel"
	"github.com/georgysavva/scany/v2/pgxscan"

	"github.com/yadascribe/scribe-backend/internal/adapter/postgres"
	"github.com/yadascribe/scribe-backend/internal/domain"
)

// Repo provides translation persistence backed by PostgreSQL.
type Repo struct {
	db postgres.Querier
}

// New creates a new translation repository.
func New(db postgres.Querier) *Repo {
	return &Repo{db: db}
}

func (r *Repo) q(ctx context.Context) postgres.Querier {
	return postgres.QuerierFromCtx(ctx, r.db)
}

type translationRow struct {
	ID                  int64      `db:"id"`
	ScrollKey           int64      `db:"scroll_key"`
	ChapterKey          int64      `db:"chapter_key"`
	VerseKey            int64      `db:"verse_key"`
	SeriesKey           int64      `db:"series_key"`
	VolumeKey           int64      `db:"volume_key"`
	VolumeChapterKey    int64      `db:"volume_chapter_key"`
	Page                *int16     `db:"page"`
	Paragraph           *int16     `db:"paragraph"`
	Copy                string     `db:"copy"`
	Date                *time.Time `db:"date"`
	Sort                int16      `db:"sort"`
	UpdatedAt           time.Time  `db:"updated_at"`
	ScrollLabel         string     `db:"scroll_label"`
	ScrollLabelCommon   *string    `db:"scroll_label_common"`
	ChapterNumber       int16      `db:"chapter_number"`
	VerseNumber         int16      `db:"verse_number"`
	SeriesName          string     `db:"series_name"`
	VolumeName          string     `db:"volume_name"`
	VolumeNumber        *int16     `db:"volume_number"`
	VolumeChapterNumber *int16     `db:"volume_chapter_number"`
	VolumeChapterName   *string    `db:"volume_chapter_name"`
}

func (r translationRow) toDomain() domain.Translation {
	return domain.Translation{
		ID:               r.ID,
		ScrollKey:        r.ScrollKey,
		ChapterKey:       r.ChapterKey,
		VerseKey:         r.VerseKey,
		SeriesKey:        r.SeriesKey,
		VolumeKey:        r.VolumeKey,
		VolumeChapterKey: r.VolumeChapterKey,
		Page:             r.Page,
		Paragraph:        r.Paragraph,
		Copy:             r.Copy,
		Date:             r.Date,
		Sort:             r.Sort,
		UpdatedAt:        r.UpdatedAt,
		Ref: domain.TranslationRef{
			ScrollLabel:         r.ScrollLabel,
			ScrollLabelCommon:   r.ScrollLabelCommon,
			ChapterNumber:       r.ChapterNumber,
			VerseNumber:         r.VerseNumber,
			SeriesName:          r.SeriesName,
			VolumeName:          r.VolumeName,
			VolumeNumber:        r.VolumeNumber,
			VolumeChapterNumber: r.VolumeChapterNumber,
			VolumeChapterName:   r.VolumeChapterName,
		},
	}
}

func selectTranslations() sq.SelectBuilder {
	return postgres.Builder().
		Select(
			"t.id", "t.scroll_key", "t.chapter_key", "t.verse_key",
			"t.series_key", "t.volume_key", "t.volume_chapter_key",
			"t.page", "t.paragraph", "t.copy", "t.date", "t.sort", "t.updated_at",
			"sc.label AS scroll_label", "sc.label_common AS scroll_label_common",
			"ch.number AS chapter_number", "v.number AS verse_number",
			"se.name AS series_name", "vo.name AS volume_name", "vo.number AS volume_number",
			"vc.number AS volume_chapter_number", "vc.name AS volume_chapter_name",
		).
		From("translations t").
		Join("scrolls sc ON sc.key = t.scroll_key").
		Join("scroll_chapters ch ON ch.key = t.chapter_key").
		Join("scroll_verses v ON v.key = t.verse_key").
		Join("series se ON se.key = t.series_key").
		Join("volumes vo ON vo.key = t.volume_key").
		LeftJoin("volume_chapters vc ON vc.key = t.volume_chapter_key")
}

// List returns the records matching filter in reading order: scroll, chapter
// and verse, then highest sort and most recently updated first.
func (r *Repo) List(ctx context.Context, filter domain.TranslationFilter) ([]domain.Translation, error) {
	query := selectTranslations()
	if filter.ScrollKey != nil {
		query = query.Where(sq.Eq{"t.scroll_key": *filter.ScrollKey})
	}
	if filter.ChapterKey != nil {
		query = query.Where(sq.Eq{"t.chapter_key": *filter.ChapterKey})
	}
	if filter.VerseKey != nil {
		query = query.Where(sq.Eq{"t.verse_key": *filter.VerseKey})
	}
	query = query.OrderBy("sc.sort", "ch.number", "v.number", "t.sort DESC", "t.updated_at DESC", "t.id")

	sql, args, err := query.ToSql()
	if err != nil {
		return nil, fmt.Errorf("build list translations: %w", err)
	}

	var rows []translationRow
	if err := pgxscan.Select(ctx, r.q(ctx), &rows, sql, args...); err != nil {
		return nil, postgres.MapError(err, "translation", 0)
	}
	out := make([]domain.Translation, len(rows))
	for i, row := range rows {
		out[i] = row.toDomain()
	}
	return out, nil
}

// GetByID returns one record with its reference labels.
func (r *Repo) GetByID(ctx context.Context, id int64) (*domain.Translation, error) {
	sql, args, err := selectTranslations().Where(sq.Eq{"t.id": id}).ToSql()
	if err != nil {
		return nil, fmt.Errorf("build get translation: %w", err)
	}

	var row translationRow
	if err := pgxscan.Get(ctx, r.q(ctx), &row, sql, args...); err != nil {
		return nil, postgres.MapError(err, "translation", id)
	}
	t := row.toDomain()
	return &t, nil
}

func translationFields(t domain.Translation) map[string]any {
	return map[string]any{
		"scroll_key":         t.ScrollKey,
		"chapter_key":        t.ChapterKey,
		"verse_key":          t.VerseKey,
		"series_key":         t.SeriesKey,
		"volume_key":         t.VolumeKey,
		"volume_chapter_key": t.VolumeChapterKey,
		"page":               t.Page,
		"paragraph":          t.Paragraph,
		"copy":               t.Copy,
		"date":               t.Date,
		"sort":               t.Sort,
	}
}

// Create inserts a record and returns its id.
func (r *Repo) Create(ctx context.Context, t domain.Translation) (int64, error) {
	sql, args, err := postgres.Builder().
		Insert("translations").
		SetMap(translationFields(t)).
		Suffix("RETURNING id").
		ToSql()
	if err != nil {
		return 0, fmt.Errorf("build insert translation: %w", err)
	}

	var id int64
	if err := r.q(ctx).QueryRow(ctx, sql, args...).Scan(&id); err != nil {
		return 0, postgres.MapError(err, "translation", 0)
	}
	return id, nil
}

// Update overwrites record t.ID.
func (r *Repo) Update(ctx context.Context, t domain.Translation) error {
	sql, args, err := postgres.Builder().
		Update("translations").
		SetMap(translationFields(t)).
		Where(sq.Eq{"id": t.ID}).
		ToSql()
	if err != nil {
		return fmt.Errorf("build update translation: %w", err)
	}

	tag, err := r.q(ctx).Exec(ctx, sql, args...)
	if err != nil {
		return postgres.MapError(err, "translation", t.ID)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("translation %d: %w", t.ID, domain.ErrNotFound)
	}
	return nil
}

// Delete removes record id.
func (r *Repo) Delete(ctx context.Context, id int64) error {
	tag, err := r.q(ctx).Exec(ctx, `DELETE FROM translations WHERE id = $1`, id)
	if err != nil {
		return postgres.MapError(err, "translation", id)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("translation %d: %w", id, domain.ErrNotFound)
	}
	return nil
}

const referencesExistSQL = `
SELECT
    EXISTS (SELECT 1 FROM scrolls WHERE key = $1)         AS scroll,
    EXISTS (SELECT 1 FROM scroll_chapters WHERE key = $2) AS chapter,
    EXISTS (SELECT 1 FROM scroll_verses WHERE key = $3)   AS verse,
    EXISTS (SELECT 1 FROM series WHERE key = $4)          AS series,
    EXISTS (SELECT 1 FROM volumes WHERE key = $5)         AS volume,
    EXISTS (SELECT 1 FROM volume_chapters WHERE key = $6) AS volume_chapter`

// MissingReferences reports which of the six reference keys of t do not
// exist, as domain.Ref* names in table order.
func (r *Repo) MissingReferences(ctx context.Context, t domain.Translation) ([]string, error) {
	var exists [6]bool
	err := r.q(ctx).QueryRow(ctx, referencesExistSQL,
		t.ScrollKey, t.ChapterKey, t.VerseKey, t.SeriesKey, t.VolumeKey, t.VolumeChapterKey,
	).Scan(&exists[0], &exists[1], &exists[2], &exists[3], &exists[4], &exists[5])
	if err != nil {
		return nil, postgres.MapError(err, "translation", t.ID)
	}

	names := [6]string{
		domain.RefScroll, domain.RefChapter, domain.RefVerse,
		domain.RefSeries, domain.RefVolume, domain.RefVolumeChapter,
	}
	var missing []string
	for i, ok := range exists {
		if !ok {
			missing = append(missing, names[i])
		}
	}
	return missing, nil
}

// EachCopy streams the copy of every record to fn in id order. It stops at
// the first error from fn.
func (r *Repo) EachCopy(ctx context.Context, fn func(body string) error) error {
	rows, err := r.q(ctx).Query(ctx, `SELECT copy FROM translations ORDER BY id`)
	if err != nil {
		return postgres.MapError(err, "translation", 0)
	}
	defer rows.Close()

	for rows.Next() {
		var body string
		if err := rows.Scan(&body); err != nil {
			return fmt.Errorf("scan translation copy: %w", err)
		}
		if err := fn(body); err != nil {
			return err
		}
	}
	if err := rows.Err(); err != nil {
		return postgres.MapError(err, "translation", 0)
	}
	return nil
}

type occurrenceRow struct {
	TranslationID  int64   `db:"translation_id"`
	VolumeKey      int64   `db:"volume_key"`
	VolumeFile     *string `db:"volume_file"`
	VolumeFlipCode *string `db:"volume_flip_code"`
	SeriesSort     int16   `db:"series_sort"`
	VolumeSort     int16   `db:"volume_sort"`
	Page           *int16  `db:"page"`
	Copy           string  `db:"copy"`
	ChapterHeading *string `db:"chapter_heading"`
}

const occurrencesSQL = `
SELECT t.id AS translation_id,
       vo.key AS volume_key,
       vo.file AS volume_file,
       vo.flip_code AS volume_flip_code,
       se.sort AS series_sort,
       vo.sort AS volume_sort,
       t.page,
       t.copy,
       (SELECT 'Chapter ' || vc.number || ':' || vc.name
          FROM volume_chapters vc
         WHERE vc.volume_key = t.volume_key
           AND vc.page <= t.page
         ORDER BY vc.page DESC
         LIMIT 1) AS chapter_heading
FROM translations t
JOIN volumes vo ON vo.key = t.volume_key
JOIN series se ON se.key = vo.series_key
WHERE t.copy ~* $1
ORDER BY se.sort, vo.sort, t.page, t.id`

// Occurrences returns the records whose copy matches the Postgres regular
// expression pattern case-insensitively, with the volume chapter heading in
// effect at each record's page.
func (r *Repo) Occurrences(ctx context.Context, pattern string) ([]domain.WordOccurrence, error) {
	if pattern == "" {
		return []domain.WordOccurrence{}, nil
	}

	var rows []occurrenceRow
	if err := pgxscan.Select(ctx, r.q(ctx), &rows, occurrencesSQL, pattern); err != nil {
		return nil, postgres.MapError(err, "translation", 0)
	}
	out := make([]domain.WordOccurrence, len(rows))
	for i, row := range rows {
		out[i] = domain.WordOccurrence(row)
	}
	return out, nil
}
