package repositories

import (
	"context"
	"time"

	"github.com/SscSPs/bizledger/internal/core/domain"
	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"
)

// AccountReader defines read operations for account data
type AccountReader interface {
	// FindAccountByID retrieves a specific account within a workplace.
	FindAccountByID(ctx context.Context, workplaceID, accountID string) (*domain.Account, error)

	// FindAccountByCFID retrieves an account by its customer facing code. tx may be nil.
	FindAccountByCFID(ctx context.Context, tx pgx.Tx, workplaceID, cfid string) (*domain.Account, error)

	// ListAccounts retrieves a page of accounts for a workplace ordered by CFID.
	ListAccounts(ctx context.Context, workplaceID string, limit int, offset int) ([]domain.Account, error)
}

// AccountWriter defines write operations for account data
type AccountWriter interface {
	// SaveAccount persists a new account. A CFID clash yields apperrors.ErrDuplicate.
	SaveAccount(ctx context.Context, account domain.Account) error
}

// AccountTransactionSupport defines operations that support posting inside a transaction
type AccountTransactionSupport interface {
	// FindAccountsByIDsForUpdate selects workplace accounts and locks them for update.
	FindAccountsByIDsForUpdate(ctx context.Context, tx pgx.Tx, workplaceID string, accountIDs []string) (map[string]domain.Account, error)

	// UpdateAccountBalancesInTx adds the signed deltas to the stored account balances.
	UpdateAccountBalancesInTx(ctx context.Context, tx pgx.Tx, balanceChanges map[string]decimal.Decimal, userID string, now time.Time) error
}

// AccountRepositoryFacade combines all account-related repository interfaces
type AccountRepositoryFacade interface {
	AccountReader
	AccountWriter
	AccountTransactionSupport
}
