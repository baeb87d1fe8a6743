package lexicon

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/jackc/pgx/v5"
	pgxmock "github.com/pashagolub/pgxmock/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yadascribe/scribe-backend/internal/domain"
)

var entryCols = []string{
	"id", "strongs", "hebrew", "transliteration", "gender", "plural",
	"noun", "verb", "adjective", "adverb", "preposition", "conjunction", "substantive",
	"primary_definition", "secondary_definition", "active", "occurrence_count",
	"created_at", "updated_at",
}

func ptr[T any](v T) *T { return &v }

func entryValues(id int64, strongs string, now time.Time) []any {
	return []any{
		id, strongs, "רוח", ptr("ruwach"), "feminine", false,
		true, false, false, false, false, false, false,
		ptr("spirit"), (*string)(nil), true, int16(12),
		now, now,
	}
}

func newRepo(t *testing.T) (*Repo, pgxmock.PgxPoolIface) {
	t.Helper()
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	t.Cleanup(mock.Close)
	return New(mock), mock
}

func TestRepo_MatchSpellings(t *testing.T) {
	t.Parallel()

	now := time.Now()
	tests := []struct {
		name            string
		words           []string
		includeInactive bool
		setup           func(mock pgxmock.PgxPoolIface)
		want            []string
		wantErr         bool
	}{
		{
			name:  "empty input skips query",
			words: nil,
			setup: func(pgxmock.PgxPoolIface) {},
			want:  []string{},
		},
		{
			name:  "rows in spelling order",
			words: []string{"ruach", "ruwach"},
			setup: func(mock pgxmock.PgxPoolIface) {
				rows := pgxmock.NewRows(append(entryCols, "spelling")).
					AddRow(append(entryValues(7, "7307", now), "Ruach")...).
					AddRow(append(entryValues(7, "7307", now), "ruwach")...)
				mock.ExpectQuery(`JOIN lexicon_entries e ON e.id = s.entry_id WHERE lower\(s.text\) = ANY\(\$1\) AND e.active = \$2 ORDER BY s.sort, s.id`).
					WithArgs([]string{"ruach", "ruwach"}, true).
					WillReturnRows(rows)
			},
			want: []string{"Ruach", "ruwach"},
		},
		{
			name:            "inactive included drops the active filter",
			words:           []string{"ruach"},
			includeInactive: true,
			setup: func(mock pgxmock.PgxPoolIface) {
				mock.ExpectQuery(`= ANY\(\$1\) ORDER BY s.sort`).
					WithArgs([]string{"ruach"}).
					WillReturnRows(pgxmock.NewRows(append(entryCols, "spelling")))
			},
			want: []string{},
		},
		{
			name:  "query error",
			words: []string{"ruach"},
			setup: func(mock pgxmock.PgxPoolIface) {
				mock.ExpectQuery(`FROM lexicon_spellings s`).
					WithArgs(pgxmock.AnyArg(), pgxmock.AnyArg()).
					WillReturnError(errors.New("connection reset"))
			},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			repo, mock := newRepo(t)
			tt.setup(mock)

			got, err := repo.MatchSpellings(context.Background(), tt.words, tt.includeInactive)
			if tt.wantErr {
				require.Error(t, err)
			} else {
				require.NoError(t, err)
				spellings := make([]string, len(got))
				for i, m := range got {
					spellings[i] = m.Spelling
					assert.Equal(t, int64(7), m.EntryID)
					assert.Equal(t, domain.GenderFeminine, m.Gender)
					assert.True(t, m.PartsOfSpeech.Noun)
				}
				assert.Equal(t, tt.want, spellings)
			}
			require.NoError(t, mock.ExpectationsWereMet())
		})
	}
}

func TestRepo_SpellingTextsByEntries(t *testing.T) {
	t.Parallel()

	repo, mock := newRepo(t)
	rows := pgxmock.NewRows([]string{"id", "entry_id", "text", "sort", "occurrence_count"}).
		AddRow(int64(1), int64(7), "Ruach", int16(0), int16(2)).
		AddRow(int64(2), int64(7), "ruwach", int16(1), int16(0)).
		AddRow(int64(5), int64(9), "Elohim", int16(0), int16(1))
	mock.ExpectQuery(`FROM lexicon_spellings WHERE entry_id IN \(\$1,\$2\) ORDER BY entry_id, sort, id`).
		WithArgs(int64(7), int64(9)).
		WillReturnRows(rows)

	got, err := repo.SpellingTextsByEntries(context.Background(), []int64{7, 9})

	require.NoError(t, err)
	assert.Equal(t, map[int64][]string{7: {"Ruach", "ruwach"}, 9: {"Elohim"}}, got)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestRepo_GetByID(t *testing.T) {
	t.Parallel()

	now := time.Now()
	tests := []struct {
		name    string
		setup   func(mock pgxmock.PgxPoolIface)
		wantErr error
	}{
		{
			name: "found with spellings",
			setup: func(mock pgxmock.PgxPoolIface) {
				mock.ExpectQuery(`FROM lexicon_entries e WHERE e.id = \$1`).
					WithArgs(int64(7)).
					WillReturnRows(pgxmock.NewRows(entryCols).AddRow(entryValues(7, "7307", now)...))
				mock.ExpectQuery(`FROM lexicon_spellings WHERE entry_id = \$1 ORDER BY sort, id`).
					WithArgs(int64(7)).
					WillReturnRows(pgxmock.NewRows([]string{"id", "entry_id", "text", "sort", "occurrence_count"}).
						AddRow(int64(1), int64(7), "Ruach", int16(0), int16(12)))
			},
		},
		{
			name: "not found",
			setup: func(mock pgxmock.PgxPoolIface) {
				mock.ExpectQuery(`FROM lexicon_entries e`).
					WithArgs(int64(7)).
					WillReturnError(pgx.ErrNoRows)
			},
			wantErr: domain.ErrNotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			repo, mock := newRepo(t)
			tt.setup(mock)

			got, err := repo.GetByID(context.Background(), 7)
			if tt.wantErr != nil {
				require.ErrorIs(t, err, tt.wantErr)
			} else {
				require.NoError(t, err)
				assert.Equal(t, "7307", got.Strongs)
				assert.Equal(t, "ruwach", *got.Transliteration)
				assert.Nil(t, got.SecondaryDefinition)
				require.Len(t, got.Spellings, 1)
				assert.Equal(t, int16(12), got.Spellings[0].OccurrenceCount)
			}
			require.NoError(t, mock.ExpectationsWereMet())
		})
	}
}

func TestRepo_Search(t *testing.T) {
	t.Parallel()

	now := time.Now()
	repo, mock := newRepo(t)
	rows := pgxmock.NewRows(append(entryCols, "spellings_display")).
		AddRow(append(entryValues(7, "7307", now), "Ruach, ruwach")...)
	mock.ExpectQuery(`e.strongs ILIKE \$1 OR e.hebrew ILIKE \$2 OR .* ORDER BY e.strongs, e.id LIMIT 50`).
		WithArgs(`%50\%%`, `%50\%%`, `%50\%%`, `%50\%%`, `%50\%%`, `%50\%%`).
		WillReturnRows(rows)

	got, err := repo.Search(context.Background(), " 50% ", 50)

	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "Ruach, ruwach", got[0].SpellingsDisplay)
	assert.Equal(t, int64(7), got[0].ID)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestRepo_Create(t *testing.T) {
	t.Parallel()

	repo, mock := newRepo(t)
	mock.ExpectQuery(`INSERT INTO lexicon_entries .* RETURNING id`).
		WithArgs(pgxmock.AnyArg(), pgxmock.AnyArg(), pgxmock.AnyArg(), pgxmock.AnyArg(),
			pgxmock.AnyArg(), pgxmock.AnyArg(), pgxmock.AnyArg(), pgxmock.AnyArg(),
			pgxmock.AnyArg(), pgxmock.AnyArg(), pgxmock.AnyArg(), pgxmock.AnyArg(),
			pgxmock.AnyArg(), pgxmock.AnyArg(), pgxmock.AnyArg(), pgxmock.AnyArg()).
		WillReturnRows(pgxmock.NewRows([]string{"id"}).AddRow(int64(41)))

	id, err := repo.Create(context.Background(), domain.LexiconEntry{Strongs: "0430", Hebrew: "אלהים", Active: true})

	require.NoError(t, err)
	assert.Equal(t, int64(41), id)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestRepo_Update_NotFound(t *testing.T) {
	t.Parallel()

	repo, mock := newRepo(t)
	mock.ExpectExec(`UPDATE lexicon_entries SET .* WHERE id = \$17`).
		WithArgs(pgxmock.AnyArg(), pgxmock.AnyArg(), pgxmock.AnyArg(), pgxmock.AnyArg(),
			pgxmock.AnyArg(), pgxmock.AnyArg(), pgxmock.AnyArg(), pgxmock.AnyArg(),
			pgxmock.AnyArg(), pgxmock.AnyArg(), pgxmock.AnyArg(), pgxmock.AnyArg(),
			pgxmock.AnyArg(), pgxmock.AnyArg(), pgxmock.AnyArg(), pgxmock.AnyArg(), int64(99)).
		WillReturnResult(pgxmock.NewResult("UPDATE", 0))

	err := repo.Update(context.Background(), domain.LexiconEntry{ID: 99, Strongs: "0001", Hebrew: "א"})

	require.ErrorIs(t, err, domain.ErrNotFound)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestRepo_ReplaceSpellings(t *testing.T) {
	t.Parallel()

	repo, mock := newRepo(t)
	mock.ExpectExec(`DELETE FROM lexicon_spellings WHERE entry_id = \$1`).
		WithArgs(int64(7)).
		WillReturnResult(pgxmock.NewResult("DELETE", 3))
	mock.ExpectQuery(`INSERT INTO lexicon_spellings \(entry_id,text,sort,occurrence_count\) VALUES \(\$1,\$2,\$3,\$4\),\(\$5,\$6,\$7,\$8\) RETURNING`).
		WithArgs(int64(7), "Ruach", int16(0), int16(2), int64(7), "ruwach", int16(1), int16(0)).
		WillReturnRows(pgxmock.NewRows([]string{"id", "entry_id", "text", "sort", "occurrence_count"}).
			AddRow(int64(10), int64(7), "Ruach", int16(0), int16(2)).
			AddRow(int64(11), int64(7), "ruwach", int16(1), int16(0)))

	got, err := repo.ReplaceSpellings(context.Background(), 7, []domain.Spelling{
		{Text: "Ruach", Sort: 0, OccurrenceCount: 2},
		{Text: "ruwach", Sort: 1},
	})

	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, int64(10), got[0].ID)
	assert.Equal(t, "ruwach", got[1].Text)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestRepo_ReplaceSpellings_EmptyOnlyDeletes(t *testing.T) {
	t.Parallel()

	repo, mock := newRepo(t)
	mock.ExpectExec(`DELETE FROM lexicon_spellings`).
		WithArgs(int64(7)).
		WillReturnResult(pgxmock.NewResult("DELETE", 1))

	got, err := repo.ReplaceSpellings(context.Background(), 7, nil)

	require.NoError(t, err)
	assert.Empty(t, got)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestRepo_Delete(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		affected int64
		wantErr  error
	}{
		{"deleted", 1, nil},
		{"missing", 0, domain.ErrNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			repo, mock := newRepo(t)
			mock.ExpectExec(`DELETE FROM lexicon_spellings WHERE entry_id = \$1`).
				WithArgs(int64(7)).
				WillReturnResult(pgxmock.NewResult("DELETE", 2))
			mock.ExpectExec(`DELETE FROM lexicon_entries WHERE id = \$1`).
				WithArgs(int64(7)).
				WillReturnResult(pgxmock.NewResult("DELETE", tt.affected))

			err := repo.Delete(context.Background(), 7)
			if tt.wantErr != nil {
				require.ErrorIs(t, err, tt.wantErr)
			} else {
				require.NoError(t, err)
			}
			require.NoError(t, mock.ExpectationsWereMet())
		})
	}
}

func TestRepo_UpdateSpellingCounts(t *testing.T) {
	t.Parallel()

	repo, mock := newRepo(t)
	mock.ExpectExec(`UPDATE lexicon_spellings s`).
		WithArgs([]int64{1, 2}, []int16{2, 32767}).
		WillReturnResult(pgxmock.NewResult("UPDATE", 2))

	err := repo.UpdateSpellingCounts(context.Background(), []domain.Spelling{
		{ID: 1, OccurrenceCount: 2},
		{ID: 2, OccurrenceCount: 32767},
	})

	require.NoError(t, err)
	require.NoError(t, repo.UpdateSpellingCounts(context.Background(), nil))
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestRepo_RefreshEntryCounts(t *testing.T) {
	t.Parallel()

	repo, mock := newRepo(t)
	mock.ExpectExec(`UPDATE lexicon_entries e SET occurrence_count = LEAST\(32767, .* WHERE e.id = ANY\(\$1\)`).
		WithArgs([]int64{7}).
		WillReturnResult(pgxmock.NewResult("UPDATE", 1))
	mock.ExpectExec(`UPDATE lexicon_entries e SET occurrence_count = LEAST\(32767, .*\)\)$`).
		WillReturnResult(pgxmock.NewResult("UPDATE", 40))

	require.NoError(t, repo.RefreshEntryCounts(context.Background(), []int64{7}))
	require.NoError(t, repo.RefreshEntryCounts(context.Background(), []int64{}))
	require.NoError(t, repo.RefreshEntryCounts(context.Background(), nil))
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestRepo_Letters(t *testing.T) {
	t.Parallel()

	repo, mock := newRepo(t)
	rows := pgxmock.NewRows([]string{"key", "transliteration", "hebrew", "label", "overview", "numeric_value", "sort"}).
		AddRow(int64(1), "A", "א", ptr("Aleph"), (*string)(nil), ptr(int32(1)), int16(1))
	mock.ExpectQuery(`FROM lexicon_letters ORDER BY sort, key`).WillReturnRows(rows)

	got, err := repo.Letters(context.Background())

	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "Aleph", *got[0].Label)
	assert.Equal(t, int32(1), *got[0].NumericValue)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestRepo_WordsByLetter(t *testing.T) {
	t.Parallel()

	repo, mock := newRepo(t)
	mock.ExpectQuery(`WHERE e.active = \$1 AND left\(e.transliteration, 1\) = \$2 ORDER BY e.transliteration, e.id`).
		WithArgs(true, "R").
		WillReturnRows(pgxmock.NewRows(append(entryCols, "spellings_display")))

	got, err := repo.WordsByLetter(context.Background(), "R")

	require.NoError(t, err)
	assert.Empty(t, got)
	require.NoError(t, mock.ExpectationsWereMet())
}
