package pgsql

import (
	portsrepo "github.com/SscSPs/bizledger/internal/core/ports/repositories"
	"github.com/jackc/pgx/v5/pgxpool"
)

// NewRepositoryProvider wires every pgx repository onto a shared pool.
func NewRepositoryProvider(dbPool *pgxpool.Pool) portsrepo.RepositoryProvider {
	return portsrepo.RepositoryProvider{
		TxRunner:      newPgxTxManager(dbPool),
		WorkplaceRepo: newPgxWorkplaceRepository(dbPool),
		AccountRepo:   newPgxAccountRepository(dbPool),
		JournalRepo:   newPgxJournalRepository(dbPool),
		BillRepo:      newPgxBillRepository(dbPool),
		ProductRepo:   newPgxProductRepository(dbPool),
		MovementRepo:  newPgxMovementRepository(dbPool),
	}
}
