package postgres

import (
	"context"
	"fmt"
	"io/fs"
	"strconv"
	"strings"

	"github.com/yadascribe/scribe-backend/migrations"
)

// SchemaCheck compares the applied goose version with the newest embedded
// migration. A server started against an old schema reports itself not ready.
type SchemaCheck struct {
	db     Querier
	latest int64
	err    error
}

// NewSchemaCheck reads the embedded migrations once.
func NewSchemaCheck(db Querier) *SchemaCheck {
	latest, err := latestVersion(migrations.FS)
	return &SchemaCheck{db: db, latest: latest, err: err}
}

// Check fails when the goose version table is missing or behind.
func (c *SchemaCheck) Check(ctx context.Context) error {
	if c.err != nil {
		return c.err
	}
	var current int64
	err := c.db.QueryRow(ctx,
		`SELECT COALESCE(MAX(version_id), 0) FROM goose_db_version WHERE is_applied`,
	).Scan(&current)
	if err != nil {
		return fmt.Errorf("read schema version: %w", err)
	}
	if current < c.latest {
		return fmt.Errorf("schema at version %d, migrations go to %d", current, c.latest)
	}
	return nil
}

// latestVersion returns the highest numeric prefix among the .sql files.
func latestVersion(fsys fs.FS) (int64, error) {
	names, err := fs.Glob(fsys, "*.sql")
	if err != nil {
		return 0, fmt.Errorf("list migrations: %w", err)
	}
	var latest int64
	for _, name := range names {
		prefix, _, ok := strings.Cut(name, "_")
		if !ok {
			return 0, fmt.Errorf("migration %q: missing version prefix", name)
		}
		v, err := strconv.ParseInt(prefix, 10, 64)
		if err != nil {
			return 0, fmt.Errorf("migration %q: %w", name, err)
		}
		latest = max(latest, v)
	}
	return latest, nil
}
