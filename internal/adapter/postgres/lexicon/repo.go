// Package lexicon implements the lexicon repository (entries, spellings and
// glossary letters) using PostgreSQL. Queries are built with squirrel and
// scanned with pgxscan.
package lexicon

import (
	"context"
	"fmt"

	sq "github.com/Masterminds/squirrel"
	"github.com/georgysavva/scany/v2/pgxscan"

	"github.com/yadascribe/scribe-backend/internal/adapter/postgres"
	"github.com/yadascribe/scribe-backend/internal/domain"
)

// Repo provides lexicon persistence backed by PostgreSQL.
type Repo struct {
	db postgres.Querier
}

// New creates a new lexicon repository.
func New(db postgres.Querier) *Repo {
	return &Repo{db: db}
}

func (r *Repo) q(ctx context.Context) postgres.Querier {
	return postgres.QuerierFromCtx(ctx, r.db)
}

// ---------------------------------------------------------------------------
// Matching
// ---------------------------------------------------------------------------

// MatchSpellings returns one row per spelling whose lowercase text is in
// words, ordered by spelling sort then spelling id. words must already be
// lowercase. Inactive entries are skipped unless includeInactive is set.
// Spellings of the results are left empty.
func (r *Repo) MatchSpellings(ctx context.Context, words []string, includeInactive bool) ([]domain.MatchResult, error) {
	if len(words) == 0 {
		return []domain.MatchResult{}, nil
	}

	query := postgres.Builder().
		Select(append(entryColumns[:len(entryColumns):len(entryColumns)], "s.text AS spelling")...).
		From("lexicon_spellings s").
		Join("lexicon_entries e ON e.id = s.entry_id").
		Where("lower(s.text) = ANY(?)", words).
		OrderBy("s.sort", "s.id")
	if !includeInactive {
		query = query.Where(sq.Eq{"e.active": true})
	}

	sql, args, err := query.ToSql()
	if err != nil {
		return nil, fmt.Errorf("build match query: %w", err)
	}

	var rows []matchRow
	if err := pgxscan.Select(ctx, r.q(ctx), &rows, sql, args...); err != nil {
		return nil, postgres.MapError(err, "lexicon_spelling", 0)
	}

	out := make([]domain.MatchResult, len(rows))
	for i, row := range rows {
		out[i] = domain.NewMatchResult(row.entryRow.toDomain(), row.Spelling)
	}
	return out, nil
}

// SpellingTextsByEntries returns the spelling texts of each entry in sort order.
func (r *Repo) SpellingTextsByEntries(ctx context.Context, entryIDs []int64) (map[int64][]string, error) {
	out := make(map[int64][]string, len(entryIDs))
	if len(entryIDs) == 0 {
		return out, nil
	}

	sql, args, err := postgres.Builder().
		Select("id", "entry_id", "text", "sort", "occurrence_count").
		From("lexicon_spellings").
		Where(sq.Eq{"entry_id": entryIDs}).
		OrderBy("entry_id", "sort", "id").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build spellings query: %w", err)
	}

	var rows []spellingRow
	if err := pgxscan.Select(ctx, r.q(ctx), &rows, sql, args...); err != nil {
		return nil, postgres.MapError(err, "lexicon_spelling", 0)
	}
	for _, row := range rows {
		out[row.EntryID] = append(out[row.EntryID], row.Text)
	}
	return out, nil
}

// ---------------------------------------------------------------------------
// Entries
// ---------------------------------------------------------------------------

// GetByID returns an entry with its spellings.
func (r *Repo) GetByID(ctx context.Context, id int64) (*domain.LexiconEntry, error) {
	sql, args, err := postgres.Builder().
		Select(entryColumns...).
		From("lexicon_entries e").
		Where(sq.Eq{"e.id": id}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build entry query: %w", err)
	}

	var row entryRow
	if err := pgxscan.Get(ctx, r.q(ctx), &row, sql, args...); err != nil {
		return nil, postgres.MapError(err, "lexicon_entry", id)
	}

	e := row.toDomain()
	e.Spellings, err = r.Spellings(ctx, id)
	if err != nil {
		return nil, err
	}
	return &e, nil
}

// Spellings returns the spellings of one entry ordered by sort, then id.
func (r *Repo) Spellings(ctx context.Context, entryID int64) ([]domain.Spelling, error) {
	sql, args, err := postgres.Builder().
		Select("id", "entry_id", "text", "sort", "occurrence_count").
		From("lexicon_spellings").
		Where(sq.Eq{"entry_id": entryID}).
		OrderBy("sort", "id").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build spellings query: %w", err)
	}

	var rows []spellingRow
	if err := pgxscan.Select(ctx, r.q(ctx), &rows, sql, args...); err != nil {
		return nil, postgres.MapError(err, "lexicon_entry", entryID)
	}
	out := make([]domain.Spelling, len(rows))
	for i, row := range rows {
		out[i] = row.toDomain()
	}
	return out, nil
}

// Search returns entries whose catalog number, headword, transliteration,
// definitions or any spelling contain term, ordered by catalog number.
func (r *Repo) Search(ctx context.Context, term string, limit uint64) ([]domain.EntrySummary, error) {
	pattern := postgres.ContainsPattern(term)
	query := summarySelect().
		Where(sq.Or{
			sq.ILike{"e.strongs": pattern},
			sq.ILike{"e.hebrew": pattern},
			sq.ILike{"e.transliteration": pattern},
			sq.ILike{"e.primary_definition": pattern},
			sq.ILike{"e.secondary_definition": pattern},
			sq.Expr("EXISTS (SELECT 1 FROM lexicon_spellings s WHERE s.entry_id = e.id AND s.text ILIKE ?)", pattern),
		}).
		OrderBy("e.strongs", "e.id").
		Limit(limit)
	return r.selectSummaries(ctx, query)
}

// List returns every entry ordered by catalog number.
func (r *Repo) List(ctx context.Context) ([]domain.EntrySummary, error) {
	return r.selectSummaries(ctx, summarySelect().OrderBy("e.strongs", "e.id"))
}

func summarySelect() sq.SelectBuilder {
	return postgres.Builder().
		Select(append(entryColumns[:len(entryColumns):len(entryColumns)], spellingsDisplayColumn)...).
		From("lexicon_entries e")
}

func (r *Repo) selectSummaries(ctx context.Context, query sq.SelectBuilder) ([]domain.EntrySummary, error) {
	sql, args, err := query.ToSql()
	if err != nil {
		return nil, fmt.Errorf("build summary query: %w", err)
	}

	var rows []summaryRow
	if err := pgxscan.Select(ctx, r.q(ctx), &rows, sql, args...); err != nil {
		return nil, postgres.MapError(err, "lexicon_entry", 0)
	}
	out := make([]domain.EntrySummary, len(rows))
	for i, row := range rows {
		out[i] = row.toDomain()
	}
	return out, nil
}

// Create inserts an entry without its spellings and returns the new id.
// A non-zero e.ID is written as is, which importers use to keep catalog ids.
func (r *Repo) Create(ctx context.Context, e domain.LexiconEntry) (int64, error) {
	fields := entryFields(e)
	if e.ID != 0 {
		fields["id"] = e.ID
	}

	sql, args, err := postgres.Builder().
		Insert("lexicon_entries").
		SetMap(fields).
		Suffix("RETURNING id").
		ToSql()
	if err != nil {
		return 0, fmt.Errorf("build insert entry: %w", err)
	}

	var id int64
	if err := r.q(ctx).QueryRow(ctx, sql, args...).Scan(&id); err != nil {
		return 0, postgres.MapError(err, "lexicon_entry", e.ID)
	}
	return id, nil
}

// Update overwrites the writable fields of entry e.ID.
func (r *Repo) Update(ctx context.Context, e domain.LexiconEntry) error {
	sql, args, err := postgres.Builder().
		Update("lexicon_entries").
		SetMap(entryFields(e)).
		Where(sq.Eq{"id": e.ID}).
		ToSql()
	if err != nil {
		return fmt.Errorf("build update entry: %w", err)
	}

	tag, err := r.q(ctx).Exec(ctx, sql, args...)
	if err != nil {
		return postgres.MapError(err, "lexicon_entry", e.ID)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("lexicon_entry %d: %w", e.ID, domain.ErrNotFound)
	}
	return nil
}

// ReplaceSpellings deletes the spellings of entryID and inserts spellings in
// the given order. IDs are assigned by the database and written back.
func (r *Repo) ReplaceSpellings(ctx context.Context, entryID int64, spellings []domain.Spelling) ([]domain.Spelling, error) {
	q := r.q(ctx)

	del, args, err := postgres.Builder().
		Delete("lexicon_spellings").
		Where(sq.Eq{"entry_id": entryID}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build delete spellings: %w", err)
	}
	if _, err := q.Exec(ctx, del, args...); err != nil {
		return nil, postgres.MapError(err, "lexicon_entry", entryID)
	}

	if len(spellings) == 0 {
		return []domain.Spelling{}, nil
	}

	ins := postgres.Builder().
		Insert("lexicon_spellings").
		Columns("entry_id", "text", "sort", "occurrence_count").
		Suffix("RETURNING id, entry_id, text, sort, occurrence_count")
	for _, sp := range spellings {
		ins = ins.Values(entryID, sp.Text, sp.Sort, sp.OccurrenceCount)
	}
	sql, args, err := ins.ToSql()
	if err != nil {
		return nil, fmt.Errorf("build insert spellings: %w", err)
	}

	var rows []spellingRow
	if err := pgxscan.Select(ctx, q, &rows, sql, args...); err != nil {
		return nil, postgres.MapError(err, "lexicon_entry", entryID)
	}
	out := make([]domain.Spelling, len(rows))
	for i, row := range rows {
		out[i] = row.toDomain()
	}
	return out, nil
}

// Delete removes an entry and its spellings.
func (r *Repo) Delete(ctx context.Context, id int64) error {
	q := r.q(ctx)

	if _, err := q.Exec(ctx, `DELETE FROM lexicon_spellings WHERE entry_id = $1`, id); err != nil {
		return postgres.MapError(err, "lexicon_entry", id)
	}
	tag, err := q.Exec(ctx, `DELETE FROM lexicon_entries WHERE id = $1`, id)
	if err != nil {
		return postgres.MapError(err, "lexicon_entry", id)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("lexicon_entry %d: %w", id, domain.ErrNotFound)
	}
	return nil
}

// ---------------------------------------------------------------------------
// Occurrence counts
// ---------------------------------------------------------------------------

// AllSpellings returns every spelling ordered by entry, sort and id.
func (r *Repo) AllSpellings(ctx context.Context) ([]domain.Spelling, error) {
	var rows []spellingRow
	err := pgxscan.Select(ctx, r.q(ctx), &rows,
		`SELECT id, entry_id, text, sort, occurrence_count FROM lexicon_spellings ORDER BY entry_id, sort, id`)
	if err != nil {
		return nil, postgres.MapError(err, "lexicon_spelling", 0)
	}
	out := make([]domain.Spelling, len(rows))
	for i, row := range rows {
		out[i] = row.toDomain()
	}
	return out, nil
}

// UpdateSpellingCounts stores the occurrence count of each given spelling in
// one statement.
func (r *Repo) UpdateSpellingCounts(ctx context.Context, spellings []domain.Spelling) error {
	if len(spellings) == 0 {
		return nil
	}
	ids := make([]int64, len(spellings))
	counts := make([]int16, len(spellings))
	for i, sp := range spellings {
		ids[i] = sp.ID
		counts[i] = sp.OccurrenceCount
	}

	_, err := r.q(ctx).Exec(ctx, `
UPDATE lexicon_spellings s
SET occurrence_count = v.cnt
FROM unnest($1::bigint[], $2::smallint[]) AS v(id, cnt)
WHERE s.id = v.id`, ids, counts)
	if err != nil {
		return postgres.MapError(err, "lexicon_spelling", 0)
	}
	return nil
}

// RefreshEntryCounts recomputes the saturated aggregate count of the given
// entries from their spellings. A nil slice refreshes every entry.
func (r *Repo) RefreshEntryCounts(ctx context.Context, entryIDs []int64) error {
	query := postgres.Builder().
		Update("lexicon_entries e").
		Set("occurrence_count", sq.Expr(fmt.Sprintf(
			"LEAST(%d, COALESCE((SELECT SUM(s.occurrence_count) FROM lexicon_spellings s WHERE s.entry_id = e.id), 0))",
			domain.MaxOccurrenceCount)))
	if entryIDs != nil {
		if len(entryIDs) == 0 {
			return nil
		}
		query = query.Where("e.id = ANY(?)", entryIDs)
	}

	sql, args, err := query.ToSql()
	if err != nil {
		return fmt.Errorf("build refresh counts: %w", err)
	}
	if _, err := r.q(ctx).Exec(ctx, sql, args...); err != nil {
		return postgres.MapError(err, "lexicon_entry", 0)
	}
	return nil
}

// SyncIdentity moves the entry id sequence past the highest stored id.
// Needed after inserting entries with explicit ids.
func (r *Repo) SyncIdentity(ctx context.Context) error {
	_, err := r.q(ctx).Exec(ctx,
		`SELECT setval(pg_get_serial_sequence('lexicon_entries', 'id'), COALESCE((SELECT MAX(id) FROM lexicon_entries), 1))`)
	if err != nil {
		return postgres.MapError(err, "lexicon_entry", 0)
	}
	return nil
}

// ---------------------------------------------------------------------------
// Glossary
// ---------------------------------------------------------------------------

// Letters returns the alphabet ordered by sort, then key.
func (r *Repo) Letters(ctx context.Context) ([]domain.Letter, error) {
	var rows []letterRow
	err := pgxscan.Select(ctx, r.q(ctx), &rows,
		`SELECT key, transliteration, hebrew, label, overview, numeric_value, sort
		 FROM lexicon_letters ORDER BY sort, key`)
	if err != nil {
		return nil, postgres.MapError(err, "lexicon_letter", 0)
	}
	out := make([]domain.Letter, len(rows))
	for i, row := range rows {
		out[i] = row.toDomain()
	}
	return out, nil
}

// WordsByLetter returns active entries whose transliteration starts with
// letter, ordered by transliteration.
func (r *Repo) WordsByLetter(ctx context.Context, letter string) ([]domain.EntrySummary, error) {
	query := summarySelect().
		Where(sq.Eq{"e.active": true}).
		Where("left(e.transliteration, 1) = ?", letter).
		OrderBy("e.transliteration", "e.id")
	return r.selectSummaries(ctx, query)
}
