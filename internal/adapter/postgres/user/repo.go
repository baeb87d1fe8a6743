// Package user implements the editor account repository using PostgreSQL.
package user

import (
	"context"
	"fmt"
	"time"

	sq "github.com/Masterminds/squirrel"
	"github.com/georgysavva/scany/v2/pgxscan"

	"github.com/yadascribe/scribe-backend/internal/adapter/postgres"
	"github.com/yadascribe/scribe-backend/internal/domain"
)

// Repo provides user persistence backed by PostgreSQL.
type Repo struct {
	db postgres.Querier
}

// New creates a new user repository.
func New(db postgres.Querier) *Repo {
	return &Repo{db: db}
}

type userRow struct {
	Key          int64     `db:"key"`
	Code         string    `db:"code"`
	FullName     *string   `db:"full_name"`
	PasswordHash string    `db:"password_hash"`
	CreatedAt    time.Time `db:"created_at"`
}

var userColumns = []string{"key", "code", "full_name", "password_hash", "created_at"}

func (r *Repo) get(ctx context.Context, where sq.Eq, key int64) (*domain.User, error) {
	sql, args, err := postgres.Builder().
		Select(userColumns...).
		From("users").
		Where(where).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build get user: %w", err)
	}

	var row userRow
	if err := pgxscan.Get(ctx, postgres.QuerierFromCtx(ctx, r.db), &row, sql, args...); err != nil {
		return nil, postgres.MapError(err, "user", key)
	}
	u := domain.User(row)
	return &u, nil
}

// GetByKey returns a user by primary key.
func (r *Repo) GetByKey(ctx context.Context, key int64) (*domain.User, error) {
	return r.get(ctx, sq.Eq{"key": key}, key)
}

// GetByCode returns a user by login code.
func (r *Repo) GetByCode(ctx context.Context, code string) (*domain.User, error) {
	return r.get(ctx, sq.Eq{"code": code}, 0)
}

// Create inserts a user and returns it with key and created_at set.
func (r *Repo) Create(ctx context.Context, u domain.User) (*domain.User, error) {
	sql, args, err := postgres.Builder().
		Insert("users").
		Columns("code", "full_name", "password_hash").
		Values(u.Code, u.FullName, u.PasswordHash).
		Suffix("RETURNING key, code, full_name, password_hash, created_at").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build insert user: %w", err)
	}

	var row userRow
	if err := pgxscan.Get(ctx, postgres.QuerierFromCtx(ctx, r.db), &row, sql, args...); err != nil {
		return nil, postgres.MapError(err, "user", 0)
	}
	created := domain.User(row)
	return &created, nil
}

// SetPassword replaces the password hash of user key.
func (r *Repo) SetPassword(ctx context.Context, key int64, hash string) error {
	tag, err := postgres.QuerierFromCtx(ctx, r.db).Exec(ctx,
		`UPDATE users SET password_hash = $1 WHERE key = $2`, hash, key)
	if err != nil {
		return postgres.MapError(err, "user", key)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("user %d: %w", key, domain.ErrNotFound)
	}
	return nil
}
