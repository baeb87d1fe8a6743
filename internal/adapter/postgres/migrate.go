package postgres

import (
	"context"
	"database/sql"
	"fmt"
	"io/fs"

	_ "github.com/jackc/pgx/v5/stdlib" // pgx driver for database/sql
	"github.com/pressly/goose/v3"

	"github.com/yadascribe/scribe-backend/migrations"
)

// Migrator applies the embedded goose migrations. goose needs a *sql.DB,
// so it opens its own connection through the pgx stdlib driver.
type Migrator struct {
	db       *sql.DB
	provider *goose.Provider
}

// NewMigrator connects to dsn and prepares a goose provider over the
// embedded migrations. Close must be called when done.
func NewMigrator(ctx context.Context, dsn string) (*Migrator, error) {
	return newMigrator(ctx, dsn, migrations.FS)
}

func newMigrator(ctx context.Context, dsn string, fsys fs.FS) (*Migrator, error) {
	db, err := sql.Open("pgx", dsn)
	if err != nil {
		return nil, fmt.Errorf("open migration connection: %w", err)
	}
	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping migration connection: %w", err)
	}

	// NewProvider keeps $$-delimited plpgsql bodies intact.
	provider, err := goose.NewProvider(goose.DialectPostgres, db, fsys)
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("goose provider: %w", err)
	}

	return &Migrator{db: db, provider: provider}, nil
}

// MigrationResult describes one applied migration.
type MigrationResult struct {
	Version int64
	Source  string
	Elapsed string
}

// MigrationStatus describes the state of one known migration.
type MigrationStatus struct {
	Version int64
	Source  string
	Applied bool
	// AppliedAt is empty for pending migrations.
	AppliedAt string
}

// Up applies every pending migration.
func (m *Migrator) Up(ctx context.Context) ([]MigrationResult, error) {
	results, err := m.provider.Up(ctx)
	if err != nil {
		return nil, fmt.Errorf("goose up: %w", err)
	}
	out := make([]MigrationResult, 0, len(results))
	for _, r := range results {
		out = append(out, MigrationResult{
			Version: r.Source.Version,
			Source:  r.Source.Path,
			Elapsed: r.Duration.String(),
		})
	}
	return out, nil
}

// Status lists every known migration and whether it has been applied.
func (m *Migrator) Status(ctx context.Context) ([]MigrationStatus, error) {
	statuses, err := m.provider.Status(ctx)
	if err != nil {
		return nil, fmt.Errorf("goose status: %w", err)
	}
	out := make([]MigrationStatus, 0, len(statuses))
	for _, s := range statuses {
		st := MigrationStatus{
			Version: s.Source.Version,
			Source:  s.Source.Path,
			Applied: s.State == goose.StateApplied,
		}
		if st.Applied {
			st.AppliedAt = s.AppliedAt.Format("2006-01-02 15:04:05")
		}
		out = append(out, st)
	}
	return out, nil
}

// Close releases the migration connection.
func (m *Migrator) Close() error {
	return m.db.Close()
}
