package testhelper

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	"golang.org/x/crypto/bcrypt"

	"github.com/yadascribe/scribe-backend/internal/domain"
)

// uniqueSuffix returns a short unique string for generating non-conflicting test data.
func uniqueSuffix() string {
	return uuid.New().String()[:8]
}

// Reference holds one complete set of scripture and volume keys that a
// translation record can point at.
type Reference struct {
	ScrollKey        int64
	ChapterKey       int64
	VerseKey         int64
	SeriesKey        int64
	VolumeKey        int64
	VolumeChapterKey int64
}

// SeedUser creates a user whose password is "secret-password" and returns it.
func SeedUser(t *testing.T, pool *pgxpool.Pool) domain.User {
	t.Helper()
	ctx := context.Background()

	hash, err := bcrypt.GenerateFromPassword([]byte("secret-password"), bcrypt.MinCost)
	if err != nil {
		t.Fatalf("testhelper: SeedUser hash: %v", err)
	}

	name := "Test User"
	u := domain.User{
		Code:         "user-" + uniqueSuffix(),
		FullName:     &name,
		PasswordHash: string(hash),
	}
	err = pool.QueryRow(ctx,
		`INSERT INTO users (code, full_name, password_hash) VALUES ($1, $2, $3)
		 RETURNING key, created_at`,
		u.Code, u.FullName, u.PasswordHash,
	).Scan(&u.Key, &u.CreatedAt)
	if err != nil {
		t.Fatalf("testhelper: SeedUser insert: %v", err)
	}
	return u
}

// SeedReference creates a scroll, chapter, verse, series, volume and volume
// chapter (starting at page 1) and returns their keys.
func SeedReference(t *testing.T, pool *pgxpool.Pool) Reference {
	t.Helper()
	ctx := context.Background()
	suffix := uniqueSuffix()

	insert := func(sql string, args ...any) int64 {
		t.Helper()
		var key int64
		if err := pool.QueryRow(ctx, sql, args...).Scan(&key); err != nil {
			t.Fatalf("testhelper: SeedReference: %v", err)
		}
		return key
	}

	var ref Reference
	ref.ScrollKey = insert(`INSERT INTO scrolls (label, label_common, sort) VALUES ($1, 'Genesis', 1) RETURNING key`, "Bare'syth "+suffix)
	ref.ChapterKey = insert(`INSERT INTO scroll_chapters (scroll_key, number) VALUES ($1, 1) RETURNING key`, ref.ScrollKey)
	ref.VerseKey = insert(`INSERT INTO scroll_verses (chapter_key, number) VALUES ($1, 1) RETURNING key`, ref.ChapterKey)
	ref.SeriesKey = insert(`INSERT INTO series (name, sort) VALUES ($1, 1) RETURNING key`, "Series "+suffix)
	ref.VolumeKey = insert(`INSERT INTO volumes (series_key, name, number, file, sort) VALUES ($1, $2, 1, 'vol1.pdf', 1) RETURNING key`,
		ref.SeriesKey, "Volume "+suffix)
	ref.VolumeChapterKey = insert(`INSERT INTO volume_chapters (volume_key, number, name, page, sort) VALUES ($1, 1, 'In the Beginning', 1, 1) RETURNING key`,
		ref.VolumeKey)
	return ref
}

// SeedTranslation inserts a translation record with the given body on page 1.
func SeedTranslation(t *testing.T, pool *pgxpool.Pool, ref Reference, body string) int64 {
	t.Helper()

	var id int64
	err := pool.QueryRow(context.Background(),
		`INSERT INTO translations
		   (scroll_key, chapter_key, verse_key, series_key, volume_key, volume_chapter_key, page, copy)
		 VALUES ($1, $2, $3, $4, $5, $6, 1, $7)
		 RETURNING id`,
		ref.ScrollKey, ref.ChapterKey, ref.VerseKey, ref.SeriesKey, ref.VolumeKey, ref.VolumeChapterKey, body,
	).Scan(&id)
	if err != nil {
		t.Fatalf("testhelper: SeedTranslation: %v", err)
	}
	return id
}

// SeedEntry inserts an active lexicon entry with the given spellings in order.
func SeedEntry(t *testing.T, pool *pgxpool.Pool, strongs, hebrew string, spellings ...string) domain.LexiconEntry {
	t.Helper()
	ctx := context.Background()

	tr := "translit-" + uniqueSuffix()
	e := domain.LexiconEntry{
		Strongs:         domain.PadStrongs(strongs),
		Hebrew:          hebrew,
		Transliteration: &tr,
		Active:          true,
	}
	err := pool.QueryRow(ctx,
		`INSERT INTO lexicon_entries (strongs, hebrew, transliteration, active)
		 VALUES ($1, $2, $3, true) RETURNING id`,
		e.Strongs, e.Hebrew, e.Transliteration,
	).Scan(&e.ID)
	if err != nil {
		t.Fatalf("testhelper: SeedEntry insert entry: %v", err)
	}

	for i, text := range spellings {
		sp := domain.Spelling{EntryID: e.ID, Text: text, Sort: int16(i)}
		err := pool.QueryRow(ctx,
			`INSERT INTO lexicon_spellings (entry_id, text, sort) VALUES ($1, $2, $3) RETURNING id`,
			sp.EntryID, sp.Text, sp.Sort,
		).Scan(&sp.ID)
		if err != nil {
			t.Fatalf("testhelper: SeedEntry insert spelling: %v", err)
		}
		e.Spellings = append(e.Spellings, sp)
	}
	return e
}
