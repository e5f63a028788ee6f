package repositories

import (
	"context"

	"github.com/jackc/pgx/v5"
)

// TxFunc is a unit of work executed inside a database transaction.
type TxFunc func(ctx context.Context, tx pgx.Tx) error

// TransactionManager defines methods for transaction management
type TransactionManager interface {
	// Begin starts a new database transaction
	Begin(ctx context.Context) (pgx.Tx, error)

	// Commit commits a transaction
	Commit(ctx context.Context, tx pgx.Tx) error

	// Rollback rolls back a transaction
	Rollback(ctx context.Context, tx pgx.Tx) error
}

// TxRunner owns the transaction boundary of a business event.
type TxRunner interface {
	// WithinTx runs fn in a new transaction, committing when fn returns nil and rolling back otherwise.
	WithinTx(ctx context.Context, fn TxFunc) error

	// WithinSavepoint runs fn inside a savepoint of tx. If fn fails only the work done by fn
	// is rolled back and the enclosing transaction stays usable.
	WithinSavepoint(ctx context.Context, tx pgx.Tx, fn TxFunc) error
}
