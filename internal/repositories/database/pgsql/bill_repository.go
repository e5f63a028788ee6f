package pgsql

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/SscSPs/bizledger/internal/apperrors"
	"github.com/SscSPs/bizledger/internal/core/domain"
	portsrepo "github.com/SscSPs/bizledger/internal/core/ports/repositories"
	"github.com/SscSPs/bizledger/internal/models"
	"github.com/SscSPs/bizledger/internal/utils/mapping"
	"github.com/SscSPs/bizledger/internal/utils/pagination"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type PgxBillRepository struct {
	BaseRepository
}

// newPgxBillRepository creates a new repository for bills, their lines and payments.
func newPgxBillRepository(pool *pgxpool.Pool) portsrepo.BillRepositoryFacade {
	return &PgxBillRepository{BaseRepository: BaseRepository{Pool: pool}}
}

// Ensure PgxBillRepository implements portsrepo.BillRepositoryFacade
var _ portsrepo.BillRepositoryFacade = (*PgxBillRepository)(nil)

const billColumns = `
	bill_id, workplace_id, vendor_id, bill_number, vendor_invoice_number, bill_date, due_date,
	status, subtotal, tax_amount, total, amount_paid, currency_code, notes, location_id,
	created_at, created_by, last_updated_at, last_updated_by`

const billLineColumns = `
	bill_line_id, bill_id, line_number, product_id, description, quantity, unit_cost, tax_rate, line_total`

const billPaymentColumns = `
	payment_id, bill_id, payment_date, amount, reference, journal_entry_id, created_at, created_by`

const billNumberPrefix = "BILL-"

// FindBillByID retrieves a bill with its lines.
func (r *PgxBillRepository) FindBillByID(ctx context.Context, workplaceID, billID string) (*domain.Bill, error) {
	query := `SELECT ` + billColumns + ` FROM bills WHERE workplace_id = $1 AND bill_id = $2;`
	return r.findOne(ctx, r.Pool, query, workplaceID, billID)
}

// FindBillForUpdate retrieves a bill with its lines and holds a row lock on the bill.
func (r *PgxBillRepository) FindBillForUpdate(ctx context.Context, tx pgx.Tx, workplaceID, billID string) (*domain.Bill, error) {
	query := `SELECT ` + billColumns + ` FROM bills WHERE workplace_id = $1 AND bill_id = $2 FOR UPDATE;`
	return r.findOne(ctx, tx, query, workplaceID, billID)
}

func (r *PgxBillRepository) findOne(ctx context.Context, q querier, query string, args ...any) (*domain.Bill, error) {
	rows, err := q.Query(ctx, query, args...)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to query bill", err)
	}
	m, err := pgx.CollectExactlyOneRow(rows, pgx.RowToStructByName[models.Bill])
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewNotFoundError("bill not found")
		}
		return nil, apperrors.NewAppError(500, "failed to scan bill", err)
	}

	lineRows, err := q.Query(ctx, `SELECT `+billLineColumns+` FROM bill_lines WHERE bill_id = $1 ORDER BY line_number;`, m.BillID)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to query lines of bill "+m.BillID, err)
	}
	lines, err := pgx.CollectRows(lineRows, pgx.RowToStructByName[models.BillLine])
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to scan lines of bill "+m.BillID, err)
	}

	bill := mapping.ToDomainBill(m, lines)
	return &bill, nil
}

// ListBills returns bills newest first using keyset pagination on (bill_date, created_at).
func (r *PgxBillRepository) ListBills(ctx context.Context, workplaceID string, status *domain.BillStatus, limit int, nextToken *string) ([]domain.Bill, *string, error) {
	args := []any{workplaceID}
	where := `WHERE workplace_id = $1`

	if status != nil {
		args = append(args, *status)
		where += fmt.Sprintf(" AND status = $%d", len(args))
	}

	if nextToken != nil && *nextToken != "" {
		billDate, createdAt, err := pagination.DecodeToken(*nextToken)
		if err != nil {
			return nil, nil, apperrors.NewValidationError("invalid pagination token")
		}
		args = append(args, billDate, createdAt)
		where += fmt.Sprintf(" AND (bill_date, created_at) < ($%d, $%d)", len(args)-1, len(args))
	}

	// Fetch one extra row to know whether another page exists.
	args = append(args, limit+1)
	query := `SELECT ` + billColumns + ` FROM bills ` + where +
		fmt.Sprintf(" ORDER BY bill_date DESC, created_at DESC LIMIT $%d;", len(args))

	rows, err := r.Pool.Query(ctx, query, args...)
	if err != nil {
		return nil, nil, apperrors.NewAppError(500, "failed to query bills", err)
	}
	modelBills, err := pgx.CollectRows(rows, pgx.RowToStructByName[models.Bill])
	if err != nil {
		return nil, nil, apperrors.NewAppError(500, "failed to scan bills", err)
	}

	var token *string
	if len(modelBills) > limit {
		modelBills = modelBills[:limit]
		last := modelBills[len(modelBills)-1]
		t := pagination.EncodeToken(last.BillDate, last.CreatedAt)
		token = &t
	}

	bills := make([]domain.Bill, len(modelBills))
	for i, m := range modelBills {
		bills[i] = mapping.ToDomainBill(m, nil)
	}
	return bills, token, nil
}

// ListBillPayments returns a bill's payments in the order they were made.
func (r *PgxBillRepository) ListBillPayments(ctx context.Context, billID string) ([]domain.BillPayment, error) {
	query := `SELECT ` + billPaymentColumns + ` FROM bill_payments WHERE bill_id = $1 ORDER BY payment_date, created_at;`
	rows, err := r.Pool.Query(ctx, query, billID)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to query payments of bill "+billID, err)
	}
	modelPayments, err := pgx.CollectRows(rows, pgx.RowToStructByName[models.BillPayment])
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to scan payments of bill "+billID, err)
	}
	payments := make([]domain.BillPayment, len(modelPayments))
	for i, m := range modelPayments {
		payments[i] = mapping.ToDomainBillPayment(m)
	}
	return payments, nil
}

// NextBillNumber allocates BILL-000001 style numbers. The advisory lock serialises
// allocation per workplace until tx ends.
func (r *PgxBillRepository) NextBillNumber(ctx context.Context, tx pgx.Tx, workplaceID string) (string, error) {
	if _, err := tx.Exec(ctx, `SELECT pg_advisory_xact_lock(hashtext($1));`, "bills:"+workplaceID); err != nil {
		return "", apperrors.NewAppError(500, "failed to lock bill numbering", err)
	}

	var last int64
	query := `
		SELECT COALESCE(MAX(CAST(SUBSTRING(bill_number FROM 6) AS BIGINT)), 0)
		FROM bills
		WHERE workplace_id = $1 AND bill_number ~ '^BILL-[0-9]+$';`
	if err := tx.QueryRow(ctx, query, workplaceID).Scan(&last); err != nil {
		return "", apperrors.NewAppError(500, "failed to allocate bill number", err)
	}
	return fmt.Sprintf("%s%06d", billNumberPrefix, last+1), nil
}

// SaveBillInTx inserts the bill header and its lines.
func (r *PgxBillRepository) SaveBillInTx(ctx context.Context, tx pgx.Tx, bill domain.Bill) error {
	m := mapping.ToModelBill(bill)
	_, err := tx.Exec(ctx, `
		INSERT INTO bills (`+billColumns+`)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18, $19);`,
		m.BillID,
		m.WorkplaceID,
		m.VendorID,
		m.BillNumber,
		m.VendorInvoiceNumber,
		m.BillDate,
		m.DueDate,
		m.Status,
		m.Subtotal,
		m.TaxAmount,
		m.Total,
		m.AmountPaid,
		m.CurrencyCode,
		m.Notes,
		m.LocationID,
		m.CreatedAt,
		m.CreatedBy,
		m.LastUpdatedAt,
		m.LastUpdatedBy,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("%w: bill number %s already exists", apperrors.ErrDuplicate, m.BillNumber)
		}
		return apperrors.NewAppError(500, "failed to insert bill "+m.BillID, err)
	}
	return r.insertLines(ctx, tx, bill.Lines)
}

// UpdateBillInTx writes the header fields of a bill.
func (r *PgxBillRepository) UpdateBillInTx(ctx context.Context, tx pgx.Tx, bill domain.Bill) error {
	m := mapping.ToModelBill(bill)
	query := `
		UPDATE bills
		SET vendor_id = $1, vendor_invoice_number = $2, bill_date = $3, due_date = $4, status = $5,
		    subtotal = $6, tax_amount = $7, total = $8, amount_paid = $9, notes = $10, location_id = $11,
		    last_updated_at = $12, last_updated_by = $13
		WHERE bill_id = $14;`
	tag, err := tx.Exec(ctx, query,
		m.VendorID,
		m.VendorInvoiceNumber,
		m.BillDate,
		m.DueDate,
		m.Status,
		m.Subtotal,
		m.TaxAmount,
		m.Total,
		m.AmountPaid,
		m.Notes,
		m.LocationID,
		m.LastUpdatedAt,
		m.LastUpdatedBy,
		m.BillID,
	)
	if err != nil {
		if isCheckViolation(err) {
			return apperrors.NewValidationError("bill total must equal subtotal plus tax")
		}
		return apperrors.NewAppError(500, "failed to update bill "+m.BillID, err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.NewNotFoundError("bill not found")
	}
	return nil
}

// ReplaceBillLinesInTx deletes the bill's lines and inserts the given set.
func (r *PgxBillRepository) ReplaceBillLinesInTx(ctx context.Context, tx pgx.Tx, billID string, lines []domain.BillLine) error {
	if _, err := tx.Exec(ctx, `DELETE FROM bill_lines WHERE bill_id = $1;`, billID); err != nil {
		return apperrors.NewAppError(500, "failed to delete lines of bill "+billID, err)
	}
	return r.insertLines(ctx, tx, lines)
}

func (r *PgxBillRepository) insertLines(ctx context.Context, tx pgx.Tx, lines []domain.BillLine) error {
	if len(lines) == 0 {
		return nil
	}
	batch := &pgx.Batch{}
	query := `
		INSERT INTO bill_lines (` + billLineColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9);`
	for _, line := range lines {
		ml := mapping.ToModelBillLine(line)
		batch.Queue(query,
			ml.BillLineID,
			ml.BillID,
			ml.LineNumber,
			ml.ProductID,
			ml.Description,
			ml.Quantity,
			ml.UnitCost,
			ml.TaxRate,
			ml.LineTotal,
		)
	}
	if err := tx.SendBatch(ctx, batch).Close(); err != nil {
		if isForeignKeyViolation(err) {
			return apperrors.NewValidationError("bill line references an unknown product")
		}
		return apperrors.NewAppError(500, "failed to insert bill lines", err)
	}
	return nil
}

// DeleteBillInTx deletes a bill's lines and then the bill.
func (r *PgxBillRepository) DeleteBillInTx(ctx context.Context, tx pgx.Tx, billID string) error {
	if _, err := tx.Exec(ctx, `DELETE FROM bill_lines WHERE bill_id = $1;`, billID); err != nil {
		return apperrors.NewAppError(500, "failed to delete lines of bill "+billID, err)
	}
	tag, err := tx.Exec(ctx, `DELETE FROM bills WHERE bill_id = $1;`, billID)
	if err != nil {
		return apperrors.NewAppError(500, "failed to delete bill "+billID, err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.NewNotFoundError("bill not found")
	}
	return nil
}

// SaveBillPaymentInTx inserts a payment record.
func (r *PgxBillRepository) SaveBillPaymentInTx(ctx context.Context, tx pgx.Tx, payment domain.BillPayment) error {
	_, err := tx.Exec(ctx, `
		INSERT INTO bill_payments (`+billPaymentColumns+`)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8);`,
		payment.PaymentID,
		payment.BillID,
		payment.PaymentDate,
		payment.Amount,
		payment.Reference,
		payment.JournalEntryID,
		payment.CreatedAt,
		payment.CreatedBy,
	)
	if err != nil {
		return apperrors.NewAppError(500, "failed to insert payment for bill "+payment.BillID, err)
	}
	return nil
}

// MarkOverdueBills moves approved and partial bills due before asOf to overdue.
func (r *PgxBillRepository) MarkOverdueBills(ctx context.Context, asOf time.Time, updatedBy string) (int64, error) {
	query := `
		UPDATE bills
		SET status = $1, last_updated_at = $2, last_updated_by = $3
		WHERE status = ANY($4) AND due_date < $5;`
	tag, err := r.Pool.Exec(ctx, query,
		domain.BillOverdue,
		time.Now().UTC(),
		updatedBy,
		[]string{string(domain.BillApproved), string(domain.BillPartial)},
		asOf,
	)
	if err != nil {
		return 0, apperrors.NewAppError(500, "failed to mark overdue bills", err)
	}
	return tag.RowsAffected(), nil
}
