package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Bill is a row of the bills table.
type Bill struct {
	BillID              string          `db:"bill_id"`
	WorkplaceID         string          `db:"workplace_id"`
	VendorID            string          `db:"vendor_id"`
	BillNumber          string          `db:"bill_number"`
	VendorInvoiceNumber string          `db:"vendor_invoice_number"`
	BillDate            time.Time       `db:"bill_date"`
	DueDate             time.Time       `db:"due_date"`
	Status              string          `db:"status"`
	Subtotal            decimal.Decimal `db:"subtotal"`
	TaxAmount           decimal.Decimal `db:"tax_amount"`
	Total               decimal.Decimal `db:"total"`
	AmountPaid          decimal.Decimal `db:"amount_paid"`
	CurrencyCode        string          `db:"currency_code"`
	Notes               string          `db:"notes"`
	LocationID          *string         `db:"location_id"`
	AuditFields
}

// BillLine is a row of the bill_lines table.
type BillLine struct {
	BillLineID  string          `db:"bill_line_id"`
	BillID      string          `db:"bill_id"`
	LineNumber  int             `db:"line_number"`
	ProductID   *string         `db:"product_id"`
	Description string          `db:"description"`
	Quantity    decimal.Decimal `db:"quantity"`
	UnitCost    decimal.Decimal `db:"unit_cost"`
	TaxRate     decimal.Decimal `db:"tax_rate"`
	LineTotal   decimal.Decimal `db:"line_total"`
}

// BillPayment is a row of the bill_payments table.
type BillPayment struct {
	PaymentID      string          `db:"payment_id"`
	BillID         string          `db:"bill_id"`
	PaymentDate    time.Time       `db:"payment_date"`
	Amount         decimal.Decimal `db:"amount"`
	Reference      string          `db:"reference"`
	JournalEntryID *string         `db:"journal_entry_id"`
	CreatedAt      time.Time       `db:"created_at"`
	CreatedBy      string          `db:"created_by"`
}
