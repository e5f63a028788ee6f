package services_test

import (
	"context"
	"time"

	"github.com/SscSPs/bizledger/internal/core/domain"
	portssvc "github.com/SscSPs/bizledger/internal/core/ports/services"
	"github.com/SscSPs/bizledger/internal/core/services"
	"github.com/SscSPs/bizledger/internal/platform/config"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

const (
	testWorkplaceID = "wp-1"
	testUserID      = "user-1"
)

var testPostingAccounts = config.PostingAccounts{
	InventoryCode:       "1400",
	AccountsPayableCode: "2000",
	CashCode:            "1000",
	ExpenseCode:         "5000",
	TaxCode:             "1300",
}

func d(s string) decimal.Decimal { return decimal.RequireFromString(s) }

func strPtr(s string) *string { return &s }

// ledgerFixture wires the journal, inventory and bill services over one memStore.
type ledgerFixture struct {
	ctx       context.Context
	store     *memStore
	txRunner  *memTxRunner
	journal   portssvc.JournalSvcFacade
	inventory portssvc.InventorySvcFacade
	bills     portssvc.BillSvcFacade

	inventoryAcc domain.Account
	payableAcc   domain.Account
	cashAcc      domain.Account
	expenseAcc   domain.Account
	taxAcc       domain.Account
}

func newLedgerFixture(policy config.FailurePolicy) *ledgerFixture {
	store := newMemStore()
	txRunner := &memTxRunner{store: store}
	authorizer := allowAll()

	journal := services.NewJournalService(txRunner, store, store, authorizer)
	inventory := services.NewInventoryService(services.InventoryServiceDeps{
		ProductRepo:     store,
		MovementRepo:    store,
		AccountRepo:     store,
		JournalRepo:     store,
		JournalSvc:      journal,
		Authorizer:      authorizer,
		PostingAccounts: testPostingAccounts,
	})
	bills := services.NewBillService(services.BillServiceDeps{
		TxRunner:        txRunner,
		BillRepo:        store,
		AccountRepo:     store,
		JournalRepo:     store,
		InventorySvc:    inventory,
		JournalSvc:      journal,
		Authorizer:      authorizer,
		FailurePolicy:   policy,
		PostingAccounts: testPostingAccounts,
	})

	f := &ledgerFixture{
		ctx:       context.Background(),
		store:     store,
		txRunner:  txRunner,
		journal:   journal,
		inventory: inventory,
		bills:     bills,
	}
	f.inventoryAcc = f.addAccount("1400", domain.Asset)
	f.payableAcc = f.addAccount("2000", domain.Liability)
	f.cashAcc = f.addAccount("1000", domain.Asset)
	f.expenseAcc = f.addAccount("5000", domain.Expense)
	f.taxAcc = f.addAccount("1300", domain.Asset)
	return f
}

func (f *ledgerFixture) addAccount(cfid string, accountType domain.AccountType) domain.Account {
	acc := domain.Account{
		AccountID:    uuid.NewString(),
		WorkplaceID:  testWorkplaceID,
		CFID:         cfid,
		Name:         "Account " + cfid,
		AccountType:  accountType,
		CurrencyCode: "USD",
		IsActive:     true,
		Balance:      decimal.Zero,
		AuditFields:  domain.NewAuditFields(testUserID, time.Now().UTC()),
	}
	f.store.accounts[acc.AccountID] = acc
	return acc
}

func (f *ledgerFixture) removeAccount(acc domain.Account) {
	delete(f.store.accounts, acc.AccountID)
}

func (f *ledgerFixture) addProduct(sku, onHand, cost string) domain.Product {
	p := domain.Product{
		ProductID:      uuid.NewString(),
		WorkplaceID:    testWorkplaceID,
		SKU:            sku,
		Name:           "Product " + sku,
		TrackInventory: true,
		QuantityOnHand: d(onHand),
		CostPrice:      d(cost),
		AuditFields:    domain.NewAuditFields(testUserID, time.Now().UTC()),
	}
	f.store.products[p.ProductID] = p
	return p
}

func (f *ledgerFixture) product(id string) domain.Product {
	return f.store.products[id]
}

func (f *ledgerFixture) balance(acc domain.Account) decimal.Decimal {
	return f.store.accounts[acc.AccountID].Balance
}

// storeBill saves a bill with the given status and lines directly in the store.
func (f *ledgerFixture) storeBill(status domain.BillStatus, lines ...domain.BillLine) domain.Bill {
	now := time.Now().UTC()
	f.store.billSeq++
	bill := domain.Bill{
		BillID:       uuid.NewString(),
		WorkplaceID:  testWorkplaceID,
		VendorID:     "vendor-1",
		BillNumber:   "BILL-9" + uuid.NewString()[:5],
		BillDate:     now,
		DueDate:      now.AddDate(0, 0, 30),
		Status:       status,
		AmountPaid:   decimal.Zero,
		CurrencyCode: "USD",
		AuditFields:  domain.NewAuditFields(testUserID, now),
	}
	bill.SetLines(lines)
	f.store.bills[bill.BillID] = bill
	return bill
}

func productLine(productID, qty, unitCost string) domain.BillLine {
	return domain.BillLine{
		BillLineID: uuid.NewString(),
		ProductID:  strPtr(productID),
		Quantity:   d(qty),
		UnitCost:   d(unitCost),
		TaxRate:    decimal.Zero,
	}
}

func serviceLine(description, qty, unitCost string) domain.BillLine {
	return domain.BillLine{
		BillLineID:  uuid.NewString(),
		Description: description,
		Quantity:    d(qty),
		UnitCost:    d(unitCost),
		TaxRate:     decimal.Zero,
	}
}
