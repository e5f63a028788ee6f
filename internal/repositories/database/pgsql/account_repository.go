package pgsql

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"time"

	"github.com/SscSPs/bizledger/internal/apperrors"
	"github.com/SscSPs/bizledger/internal/core/domain"
	portsrepo "github.com/SscSPs/bizledger/internal/core/ports/repositories"
	"github.com/SscSPs/bizledger/internal/models"
	"github.com/SscSPs/bizledger/internal/utils/mapping"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"
)

type PgxAccountRepository struct {
	BaseRepository
}

// newPgxAccountRepository creates a new repository for account data.
func newPgxAccountRepository(pool *pgxpool.Pool) portsrepo.AccountRepositoryFacade {
	return &PgxAccountRepository{BaseRepository: BaseRepository{Pool: pool}}
}

// Ensure PgxAccountRepository implements portsrepo.AccountRepositoryFacade
var _ portsrepo.AccountRepositoryFacade = (*PgxAccountRepository)(nil)

const accountColumns = `
	account_id, workplace_id, cfid, name, account_type, currency_code, parent_account_id,
	description, is_active, balance, created_at, created_by, last_updated_at, last_updated_by`

func collectAccounts(rows pgx.Rows) ([]domain.Account, error) {
	modelAccounts, err := pgx.CollectRows(rows, pgx.RowToStructByName[models.Account])
	if err != nil {
		return nil, err
	}
	return mapping.ToDomainAccountSlice(modelAccounts), nil
}

// SaveAccount inserts a new account.
func (r *PgxAccountRepository) SaveAccount(ctx context.Context, account domain.Account) error {
	modelAcc := mapping.ToModelAccount(account)

	query := `
		INSERT INTO accounts (` + accountColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14);
	`
	_, err := r.Pool.Exec(ctx, query,
		modelAcc.AccountID,
		modelAcc.WorkplaceID,
		modelAcc.CFID,
		modelAcc.Name,
		modelAcc.AccountType,
		modelAcc.CurrencyCode,
		modelAcc.ParentAccountID,
		modelAcc.Description,
		modelAcc.IsActive,
		modelAcc.Balance,
		modelAcc.CreatedAt,
		modelAcc.CreatedBy,
		modelAcc.LastUpdatedAt,
		modelAcc.LastUpdatedBy,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("%w: account code %s already exists in workplace", apperrors.ErrDuplicate, modelAcc.CFID)
		}
		if isForeignKeyViolation(err) {
			return apperrors.NewValidationError("parent account or workplace does not exist")
		}
		return fmt.Errorf("failed to save account %s: %w", modelAcc.AccountID, err)
	}
	return nil
}

// FindAccountByID retrieves an account by its ID.
func (r *PgxAccountRepository) FindAccountByID(ctx context.Context, workplaceID, accountID string) (*domain.Account, error) {
	query := `SELECT ` + accountColumns + ` FROM accounts WHERE workplace_id = $1 AND account_id = $2;`
	return r.findOne(ctx, r.Pool, "account "+accountID, query, workplaceID, accountID)
}

// FindAccountByCFID retrieves an account by its customer facing code.
func (r *PgxAccountRepository) FindAccountByCFID(ctx context.Context, tx pgx.Tx, workplaceID, cfid string) (*domain.Account, error) {
	query := `SELECT ` + accountColumns + ` FROM accounts WHERE workplace_id = $1 AND cfid = $2;`
	return r.findOne(ctx, r.db(tx), "account code "+cfid, query, workplaceID, cfid)
}

func (r *PgxAccountRepository) findOne(ctx context.Context, q querier, what, query string, args ...any) (*domain.Account, error) {
	rows, err := q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query %s: %w", what, err)
	}
	modelAcc, err := pgx.CollectExactlyOneRow(rows, pgx.RowToStructByName[models.Account])
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewNotFoundError(what + " not found")
		}
		return nil, fmt.Errorf("failed to scan %s: %w", what, err)
	}
	acc := mapping.ToDomainAccount(modelAcc)
	return &acc, nil
}

// ListAccounts retrieves a page of accounts ordered by code.
func (r *PgxAccountRepository) ListAccounts(ctx context.Context, workplaceID string, limit int, offset int) ([]domain.Account, error) {
	query := `
		SELECT ` + accountColumns + `
		FROM accounts
		WHERE workplace_id = $1
		ORDER BY cfid
		LIMIT $2 OFFSET $3;`
	rows, err := r.Pool.Query(ctx, query, workplaceID, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("failed to query accounts for workplace %s: %w", workplaceID, err)
	}
	accounts, err := collectAccounts(rows)
	if err != nil {
		return nil, fmt.Errorf("failed to scan accounts for workplace %s: %w", workplaceID, err)
	}
	return accounts, nil
}

// FindAccountsByIDsForUpdate locks the accounts in id order. Missing ids are simply absent
// from the returned map.
func (r *PgxAccountRepository) FindAccountsByIDsForUpdate(ctx context.Context, tx pgx.Tx, workplaceID string, accountIDs []string) (map[string]domain.Account, error) {
	if len(accountIDs) == 0 {
		return map[string]domain.Account{}, nil
	}

	query := `
		SELECT ` + accountColumns + `
		FROM accounts
		WHERE workplace_id = $1 AND account_id = ANY($2)
		ORDER BY account_id
		FOR UPDATE;`
	rows, err := tx.Query(ctx, query, workplaceID, accountIDs)
	if err != nil {
		return nil, fmt.Errorf("failed to lock accounts: %w", err)
	}
	accounts, err := collectAccounts(rows)
	if err != nil {
		return nil, fmt.Errorf("failed to scan locked accounts: %w", err)
	}

	accountsMap := make(map[string]domain.Account, len(accounts))
	for _, acc := range accounts {
		accountsMap[acc.AccountID] = acc
	}
	return accountsMap, nil
}

// UpdateAccountBalancesInTx applies the balance deltas in account id order.
func (r *PgxAccountRepository) UpdateAccountBalancesInTx(ctx context.Context, tx pgx.Tx, balanceChanges map[string]decimal.Decimal, userID string, now time.Time) error {
	if len(balanceChanges) == 0 {
		return nil
	}

	accountIDs := make([]string, 0, len(balanceChanges))
	for id := range balanceChanges {
		accountIDs = append(accountIDs, id)
	}
	sort.Strings(accountIDs)

	batch := &pgx.Batch{}
	query := `
		UPDATE accounts
		SET balance = balance + $1, last_updated_at = $2, last_updated_by = $3
		WHERE account_id = $4;`
	for _, id := range accountIDs {
		batch.Queue(query, balanceChanges[id], now, userID, id)
	}

	br := tx.SendBatch(ctx, batch)
	for _, id := range accountIDs {
		tag, err := br.Exec()
		if err != nil {
			_ = br.Close()
			return fmt.Errorf("failed to update balance of account %s: %w", id, err)
		}
		if tag.RowsAffected() == 0 {
			_ = br.Close()
			return apperrors.NewNotFoundError("account " + id + " not found")
		}
	}
	return br.Close()
}
