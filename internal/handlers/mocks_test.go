package handlers

import (
	"context"
	"time"

	"github.com/SscSPs/bizledger/internal/core/domain"
	"github.com/SscSPs/bizledger/internal/dto"
	"github.com/jackc/pgx/v5"
	"github.com/stretchr/testify/mock"
)

// MockBillService is a mock implementation of portssvc.BillSvcFacade.
type MockBillService struct {
	mock.Mock
}

func (m *MockBillService) GetBill(ctx context.Context, workplaceID, billID, userID string) (*domain.Bill, error) {
	args := m.Called(ctx, workplaceID, billID, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Bill), args.Error(1)
}

func (m *MockBillService) ListBills(ctx context.Context, workplaceID, userID string, params dto.ListBillsParams) (*dto.ListBillsResponse, error) {
	args := m.Called(ctx, workplaceID, userID, params)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*dto.ListBillsResponse), args.Error(1)
}

func (m *MockBillService) ListPayments(ctx context.Context, workplaceID, billID, userID string) ([]domain.BillPayment, error) {
	args := m.Called(ctx, workplaceID, billID, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.BillPayment), args.Error(1)
}

func (m *MockBillService) CreateBill(ctx context.Context, workplaceID string, req dto.CreateBillRequest, userID string) (*domain.Bill, error) {
	args := m.Called(ctx, workplaceID, req, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Bill), args.Error(1)
}

func (m *MockBillService) UpdateBill(ctx context.Context, workplaceID, billID string, req dto.UpdateBillRequest, userID string) (*domain.Bill, error) {
	args := m.Called(ctx, workplaceID, billID, req, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Bill), args.Error(1)
}

func (m *MockBillService) VoidBill(ctx context.Context, workplaceID, billID, userID string) (*domain.Bill, *domain.InventoryReversal, error) {
	args := m.Called(ctx, workplaceID, billID, userID)
	var bill *domain.Bill
	if b := args.Get(0); b != nil {
		bill = b.(*domain.Bill)
	}
	var reversal *domain.InventoryReversal
	if r := args.Get(1); r != nil {
		reversal = r.(*domain.InventoryReversal)
	}
	return bill, reversal, args.Error(2)
}

func (m *MockBillService) DeleteBill(ctx context.Context, workplaceID, billID, userID string) error {
	args := m.Called(ctx, workplaceID, billID, userID)
	return args.Error(0)
}

func (m *MockBillService) RecordPayment(ctx context.Context, workplaceID, billID string, req dto.RecordPaymentRequest, userID string) (*domain.Bill, error) {
	args := m.Called(ctx, workplaceID, billID, req, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Bill), args.Error(1)
}

func (m *MockBillService) MarkOverdueBills(ctx context.Context, asOf time.Time) (int64, error) {
	args := m.Called(ctx, asOf)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockBillService) ReprocessInventory(ctx context.Context, workplaceID, billID, userID string) (*domain.InventoryResult, error) {
	args := m.Called(ctx, workplaceID, billID, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.InventoryResult), args.Error(1)
}

// MockJournalService is a mock implementation of portssvc.JournalSvcFacade.
type MockJournalService struct {
	mock.Mock
}

func (m *MockJournalService) GetJournalByID(ctx context.Context, workplaceID, journalID, userID string) (*domain.JournalEntry, error) {
	args := m.Called(ctx, workplaceID, journalID, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.JournalEntry), args.Error(1)
}

func (m *MockJournalService) CreateJournal(ctx context.Context, workplaceID string, req dto.CreateJournalRequest, userID string) (*domain.JournalEntry, error) {
	args := m.Called(ctx, workplaceID, req, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.JournalEntry), args.Error(1)
}

func (m *MockJournalService) ReverseJournal(ctx context.Context, workplaceID, journalID, userID string) (*domain.JournalEntry, error) {
	args := m.Called(ctx, workplaceID, journalID, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.JournalEntry), args.Error(1)
}

func (m *MockJournalService) PostInTx(ctx context.Context, tx pgx.Tx, workplaceID string, posting domain.JournalPosting, userID string) (*domain.JournalEntry, error) {
	args := m.Called(ctx, tx, workplaceID, posting, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.JournalEntry), args.Error(1)
}

func (m *MockJournalService) ReverseInTx(ctx context.Context, tx pgx.Tx, workplaceID, journalID, userID string) (*domain.JournalEntry, error) {
	args := m.Called(ctx, tx, workplaceID, journalID, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.JournalEntry), args.Error(1)
}
