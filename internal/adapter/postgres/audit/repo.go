// Package audit reads the change history written by the audit triggers.
// Rows are only ever inserted by the database.
package audit

import (
	"context"
	"fmt"
	"time"

	sq "github.com/Masterminds/squirrel"
	"github.com/georgysavva/scany/v2/pgxscan"

	"github.com/yadascribe/scribe-backend/internal/adapter/postgres"
	"github.com/yadascribe/scribe-backend/internal/domain"
)

// Repo provides audit log reads backed by PostgreSQL.
type Repo struct {
	db postgres.Querier
}

// New creates a new audit repository.
func New(db postgres.Querier) *Repo {
	return &Repo{db: db}
}

type auditRow struct {
	ID        int64     `db:"id"`
	TableName string    `db:"table_name"`
	RowID     int64     `db:"row_id"`
	Action    string    `db:"action"`
	UserKey   *int64    `db:"user_key"`
	ChangedAt time.Time `db:"changed_at"`
}

// History returns the changes of one row, newest first, at most limit records.
func (r *Repo) History(ctx context.Context, table string, rowID int64, limit uint64) ([]domain.AuditRecord, error) {
	sql, args, err := postgres.Builder().
		Select("id", "table_name", "row_id", "action", "user_key", "changed_at").
		From("audit_log").
		Where(sq.Eq{"table_name": table, "row_id": rowID}).
		OrderBy("changed_at DESC", "id DESC").
		Limit(limit).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build audit history: %w", err)
	}

	var rows []auditRow
	if err := pgxscan.Select(ctx, postgres.QuerierFromCtx(ctx, r.db), &rows, sql, args...); err != nil {
		return nil, postgres.MapError(err, table, rowID)
	}

	records := make([]domain.AuditRecord, len(rows))
	for i, row := range rows {
		records[i] = domain.AuditRecord(row)
	}
	return records, nil
}
