package repositories

import (
	"context"
	"time"

	"github.com/SscSPs/bizledger/internal/core/domain"
	"github.com/jackc/pgx/v5"
)

// BillReader defines read operations for bill data
type BillReader interface {
	// FindBillByID retrieves a bill with its lines.
	FindBillByID(ctx context.Context, workplaceID, billID string) (*domain.Bill, error)

	// FindBillForUpdate retrieves a bill with its lines and locks the bill row until tx ends.
	FindBillForUpdate(ctx context.Context, tx pgx.Tx, workplaceID, billID string) (*domain.Bill, error)

	// ListBills retrieves a page of bills (without lines) ordered by bill date, newest first.
	// It returns the bills, a token for the next page, and an error.
	ListBills(ctx context.Context, workplaceID string, status *domain.BillStatus, limit int, nextToken *string) ([]domain.Bill, *string, error)

	// ListBillPayments retrieves the payments recorded against a bill.
	ListBillPayments(ctx context.Context, billID string) ([]domain.BillPayment, error)
}

// BillWriter defines write operations for bill data
type BillWriter interface {
	// NextBillNumber allocates the next human readable bill number for a workplace.
	NextBillNumber(ctx context.Context, tx pgx.Tx, workplaceID string) (string, error)

	// SaveBillInTx inserts a bill and its lines.
	SaveBillInTx(ctx context.Context, tx pgx.Tx, bill domain.Bill) error

	// UpdateBillInTx updates the header fields (dates, status, totals, notes...) of a bill.
	UpdateBillInTx(ctx context.Context, tx pgx.Tx, bill domain.Bill) error

	// ReplaceBillLinesInTx deletes every line of the bill and inserts the given ones.
	ReplaceBillLinesInTx(ctx context.Context, tx pgx.Tx, billID string, lines []domain.BillLine) error

	// DeleteBillInTx deletes the bill's lines and then the bill.
	DeleteBillInTx(ctx context.Context, tx pgx.Tx, billID string) error

	// SaveBillPaymentInTx inserts a payment record.
	SaveBillPaymentInTx(ctx context.Context, tx pgx.Tx, payment domain.BillPayment) error

	// MarkOverdueBills flips approved and partial bills whose due date is before asOf to overdue.
	// It returns the number of bills changed.
	MarkOverdueBills(ctx context.Context, asOf time.Time, updatedBy string) (int64, error)
}

// BillRepositoryFacade combines all bill-related repository interfaces
type BillRepositoryFacade interface {
	BillReader
	BillWriter
}
