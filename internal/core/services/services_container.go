package services

import (
	portsrepo "github.com/SscSPs/bizledger/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/bizledger/internal/core/ports/services"
	"github.com/SscSPs/bizledger/internal/platform/config"
)

// NewServiceContainer creates a new service container with properly initialized dependencies
func NewServiceContainer(cfg *config.Config, repos portsrepo.RepositoryProvider) *portssvc.ServiceContainer {
	container := &portssvc.ServiceContainer{}

	// Initialize workplace service first since every other service authorizes through it
	container.Workplace = NewWorkplaceService(repos.WorkplaceRepo)
	authorizer := container.Workplace.(portssvc.WorkplaceAuthorizerSvc)

	container.Account = NewAccountService(
		repos.AccountRepo,
		WithAccountWorkplaceAuthorizer(authorizer),
	)

	container.Journal = NewJournalService(repos.TxRunner, repos.JournalRepo, repos.AccountRepo, authorizer)

	container.Inventory = NewInventoryService(InventoryServiceDeps{
		ProductRepo:     repos.ProductRepo,
		MovementRepo:    repos.MovementRepo,
		AccountRepo:     repos.AccountRepo,
		JournalRepo:     repos.JournalRepo,
		JournalSvc:      container.Journal,
		Authorizer:      authorizer,
		PostingAccounts: cfg.PostingAccounts,
	})

	container.Bill = NewBillService(BillServiceDeps{
		TxRunner:        repos.TxRunner,
		BillRepo:        repos.BillRepo,
		AccountRepo:     repos.AccountRepo,
		JournalRepo:     repos.JournalRepo,
		InventorySvc:    container.Inventory,
		JournalSvc:      container.Journal,
		Authorizer:      authorizer,
		FailurePolicy:   cfg.InventoryFailurePolicy,
		PostingAccounts: cfg.PostingAccounts,
	})

	return container
}

// Helper to check interface implementations at compile time
var (
	_ portssvc.AccountSvcFacade   = (*accountService)(nil)
	_ portssvc.WorkplaceSvcFacade = (*workplaceService)(nil)
	_ portssvc.JournalSvcFacade   = (*journalService)(nil)
)
