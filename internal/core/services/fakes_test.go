package services_test

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/SscSPs/bizledger/internal/apperrors"
	"github.com/SscSPs/bizledger/internal/core/domain"
	portsrepo "github.com/SscSPs/bizledger/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/bizledger/internal/core/ports/services"
	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
)

// --- Mock WorkplaceAuthorizer ---
type MockWorkplaceAuthorizer struct {
	mock.Mock
}

var _ portssvc.WorkplaceAuthorizerSvc = (*MockWorkplaceAuthorizer)(nil)

func (m *MockWorkplaceAuthorizer) AuthorizeUserAction(ctx context.Context, userID, workplaceID string, requiredRole domain.UserWorkplaceRole) error {
	args := m.Called(ctx, userID, workplaceID, requiredRole)
	return args.Error(0)
}

func allowAll() *MockWorkplaceAuthorizer {
	m := new(MockWorkplaceAuthorizer)
	m.On("AuthorizeUserAction", mock.Anything, mock.Anything, mock.Anything, mock.Anything).Return(nil)
	return m
}

// memStore is an in-memory stand-in for every repository the ledger services use.
// memTxRunner snapshots it so failed transactions and savepoints leave no trace.
type memStore struct {
	accounts     map[string]domain.Account
	journals     map[string]domain.JournalEntry
	journalOrder []string
	products     map[string]domain.Product
	locations    map[locationKey]decimal.Decimal
	movements    []domain.InventoryMovement
	bills        map[string]domain.Bill
	payments     []domain.BillPayment
	billSeq      int

	// fail makes the named method return the error.
	fail map[string]error
}

type locationKey struct{ productID, locationID string }

var (
	_ portsrepo.AccountRepositoryFacade     = (*memStore)(nil)
	_ portsrepo.JournalRepositoryFacade     = (*memStore)(nil)
	_ portsrepo.ProductRepositoryFacade     = (*memStore)(nil)
	_ portsrepo.InventoryMovementRepository = (*memStore)(nil)
	_ portsrepo.BillRepositoryFacade        = (*memStore)(nil)
)

func newMemStore() *memStore {
	return &memStore{
		accounts:  map[string]domain.Account{},
		journals:  map[string]domain.JournalEntry{},
		products:  map[string]domain.Product{},
		locations: map[locationKey]decimal.Decimal{},
		bills:     map[string]domain.Bill{},
		fail:      map[string]error{},
	}
}

func (s *memStore) failure(method string) error {
	return s.fail[method]
}

func (s *memStore) clone() *memStore {
	c := newMemStore()
	for k, v := range s.accounts {
		c.accounts[k] = v
	}
	for k, v := range s.journals {
		v.Lines = append([]domain.JournalLine(nil), v.Lines...)
		c.journals[k] = v
	}
	c.journalOrder = append([]string(nil), s.journalOrder...)
	for k, v := range s.products {
		c.products[k] = v
	}
	for k, v := range s.locations {
		c.locations[k] = v
	}
	c.movements = append([]domain.InventoryMovement(nil), s.movements...)
	for k, v := range s.bills {
		v.Lines = append([]domain.BillLine(nil), v.Lines...)
		c.bills[k] = v
	}
	c.payments = append([]domain.BillPayment(nil), s.payments...)
	c.billSeq = s.billSeq
	c.fail = s.fail
	return c
}

func (s *memStore) restore(from *memStore) {
	*s = *from
}

// memTxRunner runs units of work against a memStore with rollback on error.
type memTxRunner struct {
	store *memStore
}

var _ portsrepo.TxRunner = (*memTxRunner)(nil)

func (r *memTxRunner) WithinTx(ctx context.Context, fn portsrepo.TxFunc) error {
	snapshot := r.store.clone()
	if err := fn(ctx, nil); err != nil {
		r.store.restore(snapshot)
		return err
	}
	return nil
}

func (r *memTxRunner) WithinSavepoint(ctx context.Context, tx pgx.Tx, fn portsrepo.TxFunc) error {
	snapshot := r.store.clone()
	if err := fn(ctx, tx); err != nil {
		r.store.restore(snapshot)
		return err
	}
	return nil
}

// --- accounts ---

func (s *memStore) FindAccountByID(_ context.Context, workplaceID, accountID string) (*domain.Account, error) {
	acc, ok := s.accounts[accountID]
	if !ok || acc.WorkplaceID != workplaceID {
		return nil, apperrors.NewNotFoundError("account not found")
	}
	return &acc, nil
}

func (s *memStore) FindAccountByCFID(_ context.Context, _ pgx.Tx, workplaceID, cfid string) (*domain.Account, error) {
	for _, acc := range s.accounts {
		if acc.WorkplaceID == workplaceID && acc.CFID == cfid {
			a := acc
			return &a, nil
		}
	}
	return nil, apperrors.NewNotFoundError("account not found")
}

func (s *memStore) ListAccounts(_ context.Context, workplaceID string, limit int, offset int) ([]domain.Account, error) {
	var out []domain.Account
	for _, acc := range s.accounts {
		if acc.WorkplaceID == workplaceID {
			out = append(out, acc)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CFID < out[j].CFID })
	if offset >= len(out) {
		return nil, nil
	}
	out = out[offset:]
	if len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

func (s *memStore) SaveAccount(_ context.Context, account domain.Account) error {
	for _, acc := range s.accounts {
		if acc.WorkplaceID == account.WorkplaceID && acc.CFID == account.CFID {
			return apperrors.NewAppError(409, "account code already exists", apperrors.ErrDuplicate)
		}
	}
	s.accounts[account.AccountID] = account
	return nil
}

func (s *memStore) FindAccountsByIDsForUpdate(_ context.Context, _ pgx.Tx, workplaceID string, accountIDs []string) (map[string]domain.Account, error) {
	if err := s.failure("FindAccountsByIDsForUpdate"); err != nil {
		return nil, err
	}
	out := make(map[string]domain.Account)
	for _, id := range accountIDs {
		if acc, ok := s.accounts[id]; ok && acc.WorkplaceID == workplaceID {
			out[id] = acc
		}
	}
	return out, nil
}

func (s *memStore) UpdateAccountBalancesInTx(_ context.Context, _ pgx.Tx, balanceChanges map[string]decimal.Decimal, userID string, now time.Time) error {
	for id, delta := range balanceChanges {
		acc, ok := s.accounts[id]
		if !ok {
			return apperrors.NewNotFoundError("account not found")
		}
		acc.Balance = acc.Balance.Add(delta)
		acc.Touch(userID, now)
		s.accounts[id] = acc
	}
	return nil
}

// --- journals ---

func (s *memStore) FindJournalByID(_ context.Context, workplaceID, journalEntryID string) (*domain.JournalEntry, error) {
	j, ok := s.journals[journalEntryID]
	if !ok || j.WorkplaceID != workplaceID {
		return nil, apperrors.NewNotFoundError("journal entry not found")
	}
	return &j, nil
}

func (s *memStore) FindJournalForUpdate(ctx context.Context, _ pgx.Tx, workplaceID, journalEntryID string) (*domain.JournalEntry, error) {
	return s.FindJournalByID(ctx, workplaceID, journalEntryID)
}

func (s *memStore) FindOriginalJournalByReference(_ context.Context, _ pgx.Tx, workplaceID, referenceType, referenceID string) (*domain.JournalEntry, error) {
	for _, id := range s.journalOrder {
		j := s.journals[id]
		if j.WorkplaceID != workplaceID || j.OriginalEntryID != nil || j.ReferenceType == nil || j.ReferenceID == nil {
			continue
		}
		if *j.ReferenceType == referenceType && *j.ReferenceID == referenceID {
			return &j, nil
		}
	}
	return nil, apperrors.NewNotFoundError("journal entry not found")
}

func (s *memStore) SaveJournalInTx(_ context.Context, _ pgx.Tx, entry domain.JournalEntry) error {
	if err := s.failure("SaveJournalInTx"); err != nil {
		return err
	}
	entry.Lines = append([]domain.JournalLine(nil), entry.Lines...)
	s.journals[entry.JournalEntryID] = entry
	s.journalOrder = append(s.journalOrder, entry.JournalEntryID)
	return nil
}

func (s *memStore) UpdateJournalStatusAndLinksInTx(_ context.Context, _ pgx.Tx, journalEntryID string, status domain.JournalStatus, reversingEntryID *string, updatedByUserID string, updatedAt time.Time) error {
	j, ok := s.journals[journalEntryID]
	if !ok {
		return apperrors.NewNotFoundError("journal entry not found")
	}
	j.Status = status
	j.ReversingEntryID = reversingEntryID
	j.Touch(updatedByUserID, updatedAt)
	s.journals[journalEntryID] = j
	return nil
}

// journalsByReference returns the entries written for a source document in posting order.
func (s *memStore) journalsByReference(referenceType, referenceID string) []domain.JournalEntry {
	var out []domain.JournalEntry
	for _, id := range s.journalOrder {
		j := s.journals[id]
		if j.ReferenceType != nil && *j.ReferenceType == referenceType && j.ReferenceID != nil && *j.ReferenceID == referenceID {
			out = append(out, j)
		}
	}
	return out
}

// --- products ---

func (s *memStore) FindProductByID(_ context.Context, workplaceID, productID string) (*domain.Product, error) {
	p, ok := s.products[productID]
	if !ok || p.WorkplaceID != workplaceID {
		return nil, apperrors.NewNotFoundError("product not found")
	}
	return &p, nil
}

func (s *memStore) ListStockLocations(_ context.Context, productID string) ([]domain.ProductStockLocation, error) {
	var out []domain.ProductStockLocation
	for k, qty := range s.locations {
		if k.productID == productID {
			out = append(out, domain.ProductStockLocation{ProductID: productID, LocationID: k.locationID, Quantity: qty})
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].LocationID < out[j].LocationID })
	return out, nil
}

func (s *memStore) SaveProduct(_ context.Context, product domain.Product) error {
	for _, p := range s.products {
		if p.WorkplaceID == product.WorkplaceID && p.SKU == product.SKU {
			return apperrors.NewAppError(409, "sku already exists", apperrors.ErrDuplicate)
		}
	}
	s.products[product.ProductID] = product
	return nil
}

func (s *memStore) FindProductsByIDsForUpdate(_ context.Context, _ pgx.Tx, workplaceID string, productIDs []string) (map[string]domain.Product, error) {
	out := make(map[string]domain.Product)
	for _, id := range productIDs {
		if p, ok := s.products[id]; ok && p.WorkplaceID == workplaceID {
			out[id] = p
		}
	}
	return out, nil
}

func (s *memStore) UpdateProductStockInTx(_ context.Context, _ pgx.Tx, product domain.Product) error {
	if _, ok := s.products[product.ProductID]; !ok {
		return apperrors.NewNotFoundError("product not found")
	}
	s.products[product.ProductID] = product
	return nil
}

func (s *memStore) AdjustStockLocationInTx(_ context.Context, _ pgx.Tx, _ string, productID, locationID string, delta decimal.Decimal, _ string, _ time.Time) error {
	k := locationKey{productID, locationID}
	s.locations[k] = s.locations[k].Add(delta)
	return nil
}

// --- movements ---

func (s *memStore) FindMovementsByReference(_ context.Context, _ pgx.Tx, workplaceID, referenceType, referenceID string) ([]domain.InventoryMovement, error) {
	out := []domain.InventoryMovement{}
	for _, mv := range s.movements {
		if mv.WorkplaceID == workplaceID && mv.ReferenceType == referenceType && mv.ReferenceID == referenceID {
			out = append(out, mv)
		}
	}
	return out, nil
}

func (s *memStore) FindLatestMovementsByProductIDs(_ context.Context, _ pgx.Tx, productIDs []string) (map[string]domain.InventoryMovement, error) {
	wanted := make(map[string]bool, len(productIDs))
	for _, id := range productIDs {
		wanted[id] = true
	}
	out := make(map[string]domain.InventoryMovement)
	for _, mv := range s.movements {
		if wanted[mv.ProductID] {
			out[mv.ProductID] = mv
		}
	}
	return out, nil
}

func (s *memStore) SaveMovementsInTx(_ context.Context, _ pgx.Tx, movements []domain.InventoryMovement) error {
	for _, mv := range movements {
		for _, existing := range s.movements {
			if existing.ReferenceType == mv.ReferenceType && existing.ReferenceID == mv.ReferenceID &&
				existing.BillLineID != nil && mv.BillLineID != nil && *existing.BillLineID == *mv.BillLineID {
				return apperrors.NewAppError(409, "movement already recorded", apperrors.ErrDuplicate)
			}
		}
	}
	s.movements = append(s.movements, movements...)
	return nil
}

func (s *memStore) ListMovementsByProduct(_ context.Context, workplaceID, productID string, limit int, _ *string) ([]domain.InventoryMovement, *string, error) {
	var out []domain.InventoryMovement
	for i := len(s.movements) - 1; i >= 0; i-- {
		mv := s.movements[i]
		if mv.WorkplaceID == workplaceID && mv.ProductID == productID {
			out = append(out, mv)
		}
	}
	if len(out) > limit {
		out = out[:limit]
	}
	return out, nil, nil
}

// --- bills ---

func (s *memStore) FindBillByID(_ context.Context, workplaceID, billID string) (*domain.Bill, error) {
	b, ok := s.bills[billID]
	if !ok || b.WorkplaceID != workplaceID {
		return nil, apperrors.NewNotFoundError("bill not found")
	}
	b.Lines = append([]domain.BillLine(nil), b.Lines...)
	return &b, nil
}

func (s *memStore) FindBillForUpdate(ctx context.Context, _ pgx.Tx, workplaceID, billID string) (*domain.Bill, error) {
	return s.FindBillByID(ctx, workplaceID, billID)
}

func (s *memStore) ListBills(_ context.Context, workplaceID string, status *domain.BillStatus, limit int, _ *string) ([]domain.Bill, *string, error) {
	var out []domain.Bill
	for _, b := range s.bills {
		if b.WorkplaceID != workplaceID || (status != nil && b.Status != *status) {
			continue
		}
		b.Lines = nil
		out = append(out, b)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].BillNumber > out[j].BillNumber })
	if len(out) > limit {
		out = out[:limit]
	}
	return out, nil, nil
}

func (s *memStore) ListBillPayments(_ context.Context, billID string) ([]domain.BillPayment, error) {
	var out []domain.BillPayment
	for _, p := range s.payments {
		if p.BillID == billID {
			out = append(out, p)
		}
	}
	return out, nil
}

func (s *memStore) NextBillNumber(_ context.Context, _ pgx.Tx, _ string) (string, error) {
	s.billSeq++
	return fmt.Sprintf("BILL-%06d", s.billSeq), nil
}

func (s *memStore) SaveBillInTx(_ context.Context, _ pgx.Tx, bill domain.Bill) error {
	if _, ok := s.bills[bill.BillID]; ok {
		return apperrors.NewAppError(409, "bill already exists", apperrors.ErrDuplicate)
	}
	bill.Lines = append([]domain.BillLine(nil), bill.Lines...)
	s.bills[bill.BillID] = bill
	return nil
}

func (s *memStore) UpdateBillInTx(_ context.Context, _ pgx.Tx, bill domain.Bill) error {
	existing, ok := s.bills[bill.BillID]
	if !ok {
		return apperrors.NewNotFoundError("bill not found")
	}
	bill.Lines = existing.Lines
	s.bills[bill.BillID] = bill
	return nil
}

func (s *memStore) ReplaceBillLinesInTx(_ context.Context, _ pgx.Tx, billID string, lines []domain.BillLine) error {
	b, ok := s.bills[billID]
	if !ok {
		return apperrors.NewNotFoundError("bill not found")
	}
	b.Lines = append([]domain.BillLine(nil), lines...)
	s.bills[billID] = b
	return nil
}

func (s *memStore) DeleteBillInTx(_ context.Context, _ pgx.Tx, billID string) error {
	if _, ok := s.bills[billID]; !ok {
		return apperrors.NewNotFoundError("bill not found")
	}
	delete(s.bills, billID)
	return nil
}

func (s *memStore) SaveBillPaymentInTx(_ context.Context, _ pgx.Tx, payment domain.BillPayment) error {
	s.payments = append(s.payments, payment)
	return nil
}

func (s *memStore) MarkOverdueBills(_ context.Context, asOf time.Time, updatedBy string) (int64, error) {
	var n int64
	for id, b := range s.bills {
		if (b.Status == domain.BillApproved || b.Status == domain.BillPartial) && b.DueDate.Before(asOf) {
			b.Status = domain.BillOverdue
			b.Touch(updatedBy, time.Now().UTC())
			s.bills[id] = b
			n++
		}
	}
	return n, nil
}
