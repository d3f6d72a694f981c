package repositories

import (
	"context"

	"github.com/jackc/pgx/v5"
)

// TransactionManager is implemented by SQL-backed repositories that group
// several statements into one unit of work.
type TransactionManager interface {
	Begin(ctx context.Context) (pgx.Tx, error)
	Commit(ctx context.Context, tx pgx.Tx) error
	// Rollback ignores pgx.ErrTxClosed so it can be deferred after Commit.
	Rollback(ctx context.Context, tx pgx.Tx) error
}
