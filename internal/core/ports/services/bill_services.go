package services

import (
	"context"
	"time"

	"github.com/SscSPs/bizledger/internal/core/domain"
	"github.com/SscSPs/bizledger/internal/dto"
)

// BillReaderSvc defines read operations for bill data
type BillReaderSvc interface {
	// GetBill retrieves a bill with its lines.
	GetBill(ctx context.Context, workplaceID, billID, userID string) (*domain.Bill, error)

	// ListBills retrieves a page of bills.
	ListBills(ctx context.Context, workplaceID, userID string, params dto.ListBillsParams) (*dto.ListBillsResponse, error)

	// ListPayments retrieves the payments recorded against a bill.
	ListPayments(ctx context.Context, workplaceID, billID, userID string) ([]domain.BillPayment, error)
}

// BillWriterSvc defines the bill lifecycle operations
type BillWriterSvc interface {
	// CreateBill creates a draft bill.
	CreateBill(ctx context.Context, workplaceID string, req dto.CreateBillRequest, userID string) (*domain.Bill, error)

	// UpdateBill applies a partial update. Moving a draft to approved receives its inventory.
	UpdateBill(ctx context.Context, workplaceID, billID string, req dto.UpdateBillRequest, userID string) (*domain.Bill, error)

	// VoidBill voids a bill, reversing any inventory it received.
	VoidBill(ctx context.Context, workplaceID, billID, userID string) (*domain.Bill, *domain.InventoryReversal, error)

	// DeleteBill removes an unpaid draft bill and its lines.
	DeleteBill(ctx context.Context, workplaceID, billID, userID string) error

	// RecordPayment records a payment against an approved, partial or overdue bill.
	RecordPayment(ctx context.Context, workplaceID, billID string, req dto.RecordPaymentRequest, userID string) (*domain.Bill, error)
}

// BillMaintenanceSvc defines operator and background operations. They skip membership checks.
type BillMaintenanceSvc interface {
	// MarkOverdueBills moves approved and partial bills past their due date to overdue.
	MarkOverdueBills(ctx context.Context, asOf time.Time) (int64, error)

	// ReprocessInventory re-runs inventory processing for an approved bill. It is safe to
	// repeat because processing is idempotent.
	ReprocessInventory(ctx context.Context, workplaceID, billID, userID string) (*domain.InventoryResult, error)
}

// BillSvcFacade combines all bill-related service interfaces
type BillSvcFacade interface {
	BillReaderSvc
	BillWriterSvc
	BillMaintenanceSvc
}
