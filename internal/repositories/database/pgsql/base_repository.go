package pgsql

import (
	"context"
	"errors"
	"log/slog"

	"github.com/SscSPs/bizledger/internal/apperrors"
	portsrepo "github.com/SscSPs/bizledger/internal/core/ports/repositories"
	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

// querier is the subset of pgx shared by *pgxpool.Pool and pgx.Tx.
type querier interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
	SendBatch(ctx context.Context, b *pgx.Batch) pgx.BatchResults
}

// BaseRepository provides common functionality for all repositories
type BaseRepository struct {
	Pool *pgxpool.Pool
}

// db returns tx when the caller is inside a transaction and the pool otherwise.
func (r *BaseRepository) db(tx pgx.Tx) querier {
	if tx != nil {
		return tx
	}
	return r.Pool
}

// Begin starts a new database transaction
func (r *BaseRepository) Begin(ctx context.Context) (pgx.Tx, error) {
	tx, err := r.Pool.Begin(ctx)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to begin transaction", err)
	}
	return tx, nil
}

// Commit commits a transaction
func (r *BaseRepository) Commit(ctx context.Context, tx pgx.Tx) error {
	if err := tx.Commit(ctx); err != nil {
		return apperrors.NewAppError(500, "failed to commit transaction", err)
	}
	return nil
}

// Rollback rolls back a transaction
func (r *BaseRepository) Rollback(ctx context.Context, tx pgx.Tx) error {
	if err := tx.Rollback(ctx); err != nil && !errors.Is(err, pgx.ErrTxClosed) {
		return apperrors.NewAppError(500, "failed to rollback transaction", err)
	}
	return nil
}

// PgxTxManager runs units of work inside pgx transactions and savepoints.
type PgxTxManager struct {
	BaseRepository
}

func newPgxTxManager(pool *pgxpool.Pool) *PgxTxManager {
	return &PgxTxManager{BaseRepository: BaseRepository{Pool: pool}}
}

var _ portsrepo.TxRunner = (*PgxTxManager)(nil)
var _ portsrepo.TransactionManager = (*PgxTxManager)(nil)

// WithinTx runs fn in a new transaction. fn's error is returned unchanged so callers can
// still match it with errors.Is.
func (m *PgxTxManager) WithinTx(ctx context.Context, fn portsrepo.TxFunc) (err error) {
	tx, err := m.Begin(ctx)
	if err != nil {
		return err
	}
	defer func() {
		if p := recover(); p != nil {
			_ = m.Rollback(ctx, tx)
			panic(p)
		}
	}()

	if err := fn(ctx, tx); err != nil {
		if rbErr := m.Rollback(ctx, tx); rbErr != nil {
			slog.ErrorContext(ctx, "rollback failed", "error", rbErr, "cause", err)
		}
		return err
	}
	return m.Commit(ctx, tx)
}

// WithinSavepoint runs fn in a pgx nested transaction, which is a SAVEPOINT on tx.
func (m *PgxTxManager) WithinSavepoint(ctx context.Context, tx pgx.Tx, fn portsrepo.TxFunc) error {
	if tx == nil {
		return apperrors.NewAppError(500, "savepoint requires an open transaction", apperrors.ErrInternal)
	}
	sp, err := tx.Begin(ctx)
	if err != nil {
		return apperrors.NewAppError(500, "failed to create savepoint", err)
	}
	if err := fn(ctx, sp); err != nil {
		if rbErr := sp.Rollback(ctx); rbErr != nil && !errors.Is(rbErr, pgx.ErrTxClosed) {
			slog.ErrorContext(ctx, "rollback to savepoint failed", "error", rbErr, "cause", err)
		}
		return err
	}
	if err := sp.Commit(ctx); err != nil {
		return apperrors.NewAppError(500, "failed to release savepoint", err)
	}
	return nil
}

func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == pgerrcode.UniqueViolation
}

func isForeignKeyViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == pgerrcode.ForeignKeyViolation
}

func isCheckViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == pgerrcode.CheckViolation
}
