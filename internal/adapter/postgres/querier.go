package postgres

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

// Querier is what repositories run statements on: a *pgxpool.Pool, the
// pgx.Tx carried by a RunInTx context, or a pgxmock pool in tests.
type Querier interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
	SendBatch(ctx context.Context, b *pgx.Batch) pgx.BatchResults
}

// QuerierFromCtx returns the transaction opened by RunInTx, or db when ctx
// carries none.
func QuerierFromCtx(ctx context.Context, db Querier) Querier {
	if tx := txFrom(ctx); tx != nil {
		return tx
	}
	return db
}

// InTx reports whether ctx is inside RunInTx.
func InTx(ctx context.Context) bool {
	return txFrom(ctx) != nil
}
