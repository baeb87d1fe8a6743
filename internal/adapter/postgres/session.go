package postgres

import (
	"context"
	"fmt"
	"strconv"
)

// SetCurrentUser exposes the acting user to audit triggers for the rest of
// the current transaction. Outside a transaction the setting would leak to
// the pooled connection, so it is rejected.
func SetCurrentUser(ctx context.Context, fallback Querier, userKey int64) error {
	if !InTx(ctx) {
		return fmt.Errorf("set current user: no transaction in context")
	}
	q := QuerierFromCtx(ctx, fallback)
	if _, err := q.Exec(ctx, `SELECT set_config('app.current_user_key', $1, true)`, strconv.FormatInt(userKey, 10)); err != nil {
		return fmt.Errorf("set current user: %w", err)
	}
	return nil
}
