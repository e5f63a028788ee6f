package domain

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"
)

// BillStatus is the lifecycle state of a bill.
type BillStatus string

const (
	BillDraft    BillStatus = "draft"
	BillApproved BillStatus = "approved"
	BillPartial  BillStatus = "partial"
	BillPaid     BillStatus = "paid"
	BillOverdue  BillStatus = "overdue"
	BillVoid     BillStatus = "void"
)

// billTransitions lists the allowed forward moves. Void is handled by CanVoid.
var billTransitions = map[BillStatus][]BillStatus{
	BillDraft:    {BillApproved},
	BillApproved: {BillPartial, BillPaid, BillOverdue},
	BillPartial:  {BillPaid, BillOverdue},
	BillOverdue:  {BillPartial, BillPaid},
}

// IsValid reports whether s is a known bill status.
func (s BillStatus) IsValid() bool {
	switch s {
	case BillDraft, BillApproved, BillPartial, BillPaid, BillOverdue, BillVoid:
		return true
	}
	return false
}

// IsTerminal reports whether no further transition (including void) is possible.
func (s BillStatus) IsTerminal() bool {
	return s == BillPaid || s == BillVoid
}

// CanTransitionTo reports whether the state machine allows moving from s to next.
func (s BillStatus) CanTransitionTo(next BillStatus) bool {
	if next == BillVoid {
		return s.CanVoid()
	}
	for _, allowed := range billTransitions[s] {
		if allowed == next {
			return true
		}
	}
	return false
}

// CanVoid reports whether a bill in status s may be voided. Drafts are deleted, not voided.
func (s BillStatus) CanVoid() bool {
	return s == BillApproved || s == BillPartial || s == BillOverdue
}

// HasReceivedInventory reports whether stock for the bill's lines has been received.
func (s BillStatus) HasReceivedInventory() bool {
	return s == BillApproved || s == BillPartial || s == BillOverdue || s == BillPaid
}

// Bill is a vendor obligation to pay.
type Bill struct {
	BillID              string          `json:"billID"`
	WorkplaceID         string          `json:"workplaceID"`
	VendorID            string          `json:"vendorID"`
	BillNumber          string          `json:"billNumber"`
	VendorInvoiceNumber string          `json:"vendorInvoiceNumber"`
	BillDate            time.Time       `json:"billDate"`
	DueDate             time.Time       `json:"dueDate"`
	Status              BillStatus      `json:"status"`
	Subtotal            decimal.Decimal `json:"subtotal"`
	TaxAmount           decimal.Decimal `json:"taxAmount"`
	Total               decimal.Decimal `json:"total"`
	AmountPaid          decimal.Decimal `json:"amountPaid"`
	CurrencyCode        string          `json:"currencyCode"`
	Notes               string          `json:"notes"`
	LocationID          *string         `json:"locationID,omitempty"`
	Lines               []BillLine      `json:"lines"`
	AuditFields
}

// BalanceDue is the amount still owed on the bill.
func (b Bill) BalanceDue() decimal.Decimal {
	return b.Total.Sub(b.AmountPaid)
}

// TransitionTo moves the bill to next if the state machine allows it.
func (b *Bill) TransitionTo(next BillStatus) error {
	if !b.Status.CanTransitionTo(next) {
		return fmt.Errorf("cannot move bill from %s to %s", b.Status, next)
	}
	b.Status = next
	return nil
}

// SetLines replaces the bill's lines and recomputes subtotal, tax and total.
// Lines are renumbered from 1 in the order given.
func (b *Bill) SetLines(lines []BillLine) {
	subtotal := decimal.Zero
	tax := decimal.Zero
	for i := range lines {
		lines[i].BillID = b.BillID
		lines[i].LineNumber = i + 1
		lines[i].LineTotal = lines[i].Quantity.Mul(lines[i].UnitCost)
		subtotal = subtotal.Add(lines[i].LineTotal)
		tax = tax.Add(lines[i].LineTotal.Mul(lines[i].TaxRate))
	}
	b.Lines = lines
	b.Subtotal = subtotal.Round(4)
	b.TaxAmount = tax.Round(4)
	b.Total = b.Subtotal.Add(b.TaxAmount)
}

// BillLine is one purchased item or service on a bill.
type BillLine struct {
	BillLineID  string          `json:"billLineID"`
	BillID      string          `json:"billID"`
	LineNumber  int             `json:"lineNumber"`
	ProductID   *string         `json:"productID,omitempty"`
	Description string          `json:"description"`
	Quantity    decimal.Decimal `json:"quantity"`
	UnitCost    decimal.Decimal `json:"unitCost"`
	TaxRate     decimal.Decimal `json:"taxRate"` // Fraction, 0.07 means 7%
	LineTotal   decimal.Decimal `json:"lineTotal"`
}

// AffectsInventory reports whether the line should move stock: it needs a product and a
// non-zero quantity.
func (l BillLine) AffectsInventory() bool {
	return l.ProductID != nil && *l.ProductID != "" && !l.Quantity.IsZero()
}

// BillPayment records money paid against a bill.
type BillPayment struct {
	PaymentID      string          `json:"paymentID"`
	BillID         string          `json:"billID"`
	PaymentDate    time.Time       `json:"paymentDate"`
	Amount         decimal.Decimal `json:"amount"`
	Reference      string          `json:"reference"`
	JournalEntryID *string         `json:"journalEntryID,omitempty"`
	CreatedAt      time.Time       `json:"createdAt"`
	CreatedBy      string          `json:"createdBy"`
}
