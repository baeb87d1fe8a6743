package translation

import (
	"context"
	"errors"
	"testing"
	"time"

	pgxmock "github.com/pashagolub/pgxmock/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yadascribe/scribe-backend/internal/domain"
)

var translationCols = []string{
	"id", "scroll_key", "chapter_key", "verse_key", "series_key", "volume_key", "volume_chapter_key",
	"page", "paragraph", "copy", "date", "sort", "updated_at",
	"scroll_label", "scroll_label_common", "chapter_number", "verse_number",
	"series_name", "volume_name", "volume_number", "volume_chapter_number", "volume_chapter_name",
}

func ptr[T any](v T) *T { return &v }

func translationValues(id int64, sort int16, now time.Time) []any {
	return []any{
		id, int64(1), int64(2), int64(3), int64(4), int64(5), int64(6),
		ptr(int16(12)), ptr(int16(1)), "<p>The <i>ruach</i> moved</p>", ptr(now), sort, now,
		"Genesis", ptr("Gen"), int16(1), int16(2),
		"Yada Yah", "Observations", ptr(int16(1)), ptr(int16(3)), ptr("Beginnings"),
	}
}

func newRepo(t *testing.T) (*Repo, pgxmock.PgxPoolIface) {
	t.Helper()
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	t.Cleanup(mock.Close)
	return New(mock), mock
}

func TestList_FiltersAndOrders(t *testing.T) {
	t.Parallel()
	repo, mock := newRepo(t)
	now := time.Now().UTC()

	scroll, verse := int64(1), int64(3)
	mock.ExpectQuery(`LEFT JOIN volume_chapters vc ON vc.key = t.volume_chapter_key WHERE t.scroll_key = \$1 AND t.verse_key = \$2 ORDER BY sc.sort, ch.number, v.number, t.sort DESC, t.updated_at DESC, t.id`).
		WithArgs(scroll, verse).
		WillReturnRows(pgxmock.NewRows(translationCols).
			AddRow(translationValues(8, 2, now)...).
			AddRow(translationValues(7, 1, now)...))

	got, err := repo.List(context.Background(), domain.TranslationFilter{ScrollKey: &scroll, VerseKey: &verse})
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, int64(8), got[0].ID)
	assert.Equal(t, "Genesis", got[0].Ref.ScrollLabel)
	assert.Equal(t, "Beginnings", *got[0].Ref.VolumeChapterName)
	assert.Equal(t, int16(12), *got[1].Page)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestList_NoFilter(t *testing.T) {
	t.Parallel()
	repo, mock := newRepo(t)

	mock.ExpectQuery(`t.volume_chapter_key ORDER BY sc.sort`).
		WillReturnRows(pgxmock.NewRows(translationCols))

	got, err := repo.List(context.Background(), domain.TranslationFilter{All: true})
	require.NoError(t, err)
	assert.Empty(t, got)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestGetByID(t *testing.T) {
	t.Parallel()

	t.Run("found", func(t *testing.T) {
		t.Parallel()
		repo, mock := newRepo(t)
		now := time.Now().UTC()
		mock.ExpectQuery(`WHERE t.id = \$1`).
			WithArgs(int64(7)).
			WillReturnRows(pgxmock.NewRows(translationCols).AddRow(translationValues(7, 0, now)...))

		got, err := repo.GetByID(context.Background(), 7)
		require.NoError(t, err)
		assert.Equal(t, int64(6), got.VolumeChapterKey)
		assert.Equal(t, "Observations", got.Ref.VolumeName)
	})

	t.Run("not found", func(t *testing.T) {
		t.Parallel()
		repo, mock := newRepo(t)
		mock.ExpectQuery(`WHERE t.id = \$1`).
			WithArgs(int64(99)).
			WillReturnRows(pgxmock.NewRows(translationCols))

		_, err := repo.GetByID(context.Background(), 99)
		assert.ErrorIs(t, err, domain.ErrNotFound)
	})
}

func TestCreate(t *testing.T) {
	t.Parallel()
	repo, mock := newRepo(t)

	args := make([]any, 11)
	for i := range args {
		args[i] = pgxmock.AnyArg()
	}
	mock.ExpectQuery(`INSERT INTO translations \(chapter_key,copy,date,page,paragraph,scroll_key,series_key,sort,verse_key,volume_chapter_key,volume_key\) .* RETURNING id`).
		WithArgs(args...).
		WillReturnRows(pgxmock.NewRows([]string{"id"}).AddRow(int64(41)))

	id, err := repo.Create(context.Background(), domain.Translation{ScrollKey: 1, Copy: "<p>x</p>"})
	require.NoError(t, err)
	assert.Equal(t, int64(41), id)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestUpdate_NotFound(t *testing.T) {
	t.Parallel()
	repo, mock := newRepo(t)

	args := make([]any, 12)
	for i := range args {
		args[i] = pgxmock.AnyArg()
	}
	mock.ExpectExec(`UPDATE translations SET .* WHERE id = \$12`).
		WithArgs(args...).
		WillReturnResult(pgxmock.NewResult("UPDATE", 0))

	err := repo.Update(context.Background(), domain.Translation{ID: 5, Copy: "x"})
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestDelete(t *testing.T) {
	t.Parallel()
	repo, mock := newRepo(t)

	mock.ExpectExec(`DELETE FROM translations WHERE id = \$1`).
		WithArgs(int64(3)).
		WillReturnResult(pgxmock.NewResult("DELETE", 1))
	mock.ExpectExec(`DELETE FROM translations WHERE id = \$1`).
		WithArgs(int64(4)).
		WillReturnResult(pgxmock.NewResult("DELETE", 0))

	require.NoError(t, repo.Delete(context.Background(), 3))
	assert.ErrorIs(t, repo.Delete(context.Background(), 4), domain.ErrNotFound)
}

func TestMissingReferences(t *testing.T) {
	t.Parallel()
	repo, mock := newRepo(t)

	mock.ExpectQuery(`EXISTS \(SELECT 1 FROM scrolls WHERE key = \$1\)`).
		WithArgs(int64(1), int64(2), int64(3), int64(4), int64(5), int64(6)).
		WillReturnRows(pgxmock.NewRows([]string{"scroll", "chapter", "verse", "series", "volume", "volume_chapter"}).
			AddRow(true, false, true, true, true, false))

	missing, err := repo.MissingReferences(context.Background(), domain.Translation{
		ScrollKey: 1, ChapterKey: 2, VerseKey: 3, SeriesKey: 4, VolumeKey: 5, VolumeChapterKey: 6,
	})
	require.NoError(t, err)
	assert.Equal(t, []string{domain.RefChapter, domain.RefVolumeChapter}, missing)
}

func TestEachCopy(t *testing.T) {
	t.Parallel()

	t.Run("streams in order", func(t *testing.T) {
		t.Parallel()
		repo, mock := newRepo(t)
		mock.ExpectQuery(`SELECT copy FROM translations ORDER BY id`).
			WillReturnRows(pgxmock.NewRows([]string{"copy"}).AddRow("one").AddRow("two"))

		var got []string
		err := repo.EachCopy(context.Background(), func(body string) error {
			got = append(got, body)
			return nil
		})
		require.NoError(t, err)
		assert.Equal(t, []string{"one", "two"}, got)
	})

	t.Run("callback error stops", func(t *testing.T) {
		t.Parallel()
		repo, mock := newRepo(t)
		mock.ExpectQuery(`SELECT copy FROM translations`).
			WillReturnRows(pgxmock.NewRows([]string{"copy"}).AddRow("one").AddRow("two"))

		stop := errors.New("stop")
		calls := 0
		err := repo.EachCopy(context.Background(), func(string) error {
			calls++
			return stop
		})
		assert.ErrorIs(t, err, stop)
		assert.Equal(t, 1, calls)
	})
}

func TestOccurrences(t *testing.T) {
	t.Parallel()
	repo, mock := newRepo(t)

	cols := []string{
		"translation_id", "volume_key", "volume_file", "volume_flip_code",
		"series_sort", "volume_sort", "page", "copy", "chapter_heading",
	}
	mock.ExpectQuery(`WHERE t.copy ~\* \$1`).
		WithArgs(`(\mruach\M)`).
		WillReturnRows(pgxmock.NewRows(cols).
			AddRow(int64(7), int64(5), ptr("obs.pdf"), (*string)(nil), int16(1), int16(2), ptr(int16(12)), "<i>ruach</i>", ptr("Chapter 3:Beginnings")))

	got, err := repo.Occurrences(context.Background(), `(\mruach\M)`)
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "Chapter 3:Beginnings", *got[0].ChapterHeading)
	assert.Nil(t, got[0].VolumeFlipCode)

	empty, err := repo.Occurrences(context.Background(), "")
	require.NoError(t, err)
	assert.Empty(t, empty)
	require.NoError(t, mock.ExpectationsWereMet())
}
