package dto

import (
	"time"

	"github.com/SscSPs/bizledger/internal/core/domain"
	"github.com/shopspring/decimal"
)

// BillLineRequest is one line item as submitted by the client.
type BillLineRequest struct {
	ProductID   *string         `json:"product_id"`
	Description string          `json:"description"`
	Quantity    decimal.Decimal `json:"quantity"`
	UnitCost    decimal.Decimal `json:"unit_cost"`
	TaxRate     decimal.Decimal `json:"tax_rate"`
}

// CreateBillRequest defines the data needed to create a draft bill.
type CreateBillRequest struct {
	VendorID            string            `json:"vendor_id" binding:"required"`
	VendorInvoiceNumber string            `json:"vendor_invoice_number"`
	BillDate            Date              `json:"bill_date"`
	DueDate             Date              `json:"due_date"`
	CurrencyCode        string            `json:"currency_code" binding:"required,iso4217"`
	Notes               string            `json:"notes"`
	LocationID          *string           `json:"location_id"`
	Lines               []BillLineRequest `json:"lines" binding:"dive"`
}

// UpdateBillRequest is a partial update of a bill. Absent fields are left untouched.
// Lines may be sent as either "line_items" or "lines"; when present they replace every
// existing line.
type UpdateBillRequest struct {
	LineItems           []BillLineRequest  `json:"line_items" binding:"omitempty,dive"`
	Lines               []BillLineRequest  `json:"lines" binding:"omitempty,dive"`
	VendorID            *string            `json:"vendor_id"`
	BillDate            *Date              `json:"bill_date"`
	DueDate             *Date              `json:"due_date"`
	VendorInvoiceNumber *string            `json:"vendor_invoice_number"`
	Notes               *string            `json:"notes"`
	LocationID          *string            `json:"location_id"`
	Status              *domain.BillStatus `json:"status" binding:"omitempty,billstatus"`
}

// ReplacementLines returns the submitted lines, preferring "line_items", and whether any were sent.
func (r UpdateBillRequest) ReplacementLines() ([]BillLineRequest, bool) {
	if r.LineItems != nil {
		return r.LineItems, true
	}
	if r.Lines != nil {
		return r.Lines, true
	}
	return nil, false
}

// RecordPaymentRequest defines a payment made against a bill.
type RecordPaymentRequest struct {
	Amount      decimal.Decimal `json:"amount"`
	PaymentDate *Date           `json:"payment_date"`
	Reference   string          `json:"reference" binding:"max=100"`
}

// ListBillsParams holds the query parameters for listing bills.
type ListBillsParams struct {
	Limit     int     `form:"limit" binding:"omitempty,min=1,max=100"`
	NextToken *string `form:"nextToken"`
	Status    *string `form:"status" binding:"omitempty,billstatus"`
}

// BillLineResponse defines the data returned for a bill line.
type BillLineResponse struct {
	BillLineID  string          `json:"billLineID"`
	LineNumber  int             `json:"lineNumber"`
	ProductID   *string         `json:"productID,omitempty"`
	Description string          `json:"description"`
	Quantity    decimal.Decimal `json:"quantity"`
	UnitCost    decimal.Decimal `json:"unitCost"`
	TaxRate     decimal.Decimal `json:"taxRate"`
	LineTotal   decimal.Decimal `json:"lineTotal"`
}

// BillResponse defines the data returned for a bill.
type BillResponse struct {
	BillID              string             `json:"billID"`
	WorkplaceID         string             `json:"workplaceID"`
	VendorID            string             `json:"vendorID"`
	BillNumber          string             `json:"billNumber"`
	VendorInvoiceNumber string             `json:"vendorInvoiceNumber"`
	BillDate            Date               `json:"billDate"`
	DueDate             Date               `json:"dueDate"`
	Status              domain.BillStatus  `json:"status"`
	Subtotal            decimal.Decimal    `json:"subtotal"`
	TaxAmount           decimal.Decimal    `json:"taxAmount"`
	Total               decimal.Decimal    `json:"total"`
	AmountPaid          decimal.Decimal    `json:"amountPaid"`
	BalanceDue          decimal.Decimal    `json:"balanceDue"`
	CurrencyCode        string             `json:"currencyCode"`
	Notes               string             `json:"notes"`
	LocationID          *string            `json:"locationID,omitempty"`
	Lines               []BillLineResponse `json:"lines,omitempty"`
	CreatedAt           time.Time          `json:"createdAt"`
	CreatedBy           string             `json:"createdBy"`
	LastUpdatedAt       time.Time          `json:"lastUpdatedAt"`
	LastUpdatedBy       string             `json:"lastUpdatedBy"`
}

// ToBillResponse converts a domain.Bill to BillResponse DTO.
func ToBillResponse(b *domain.Bill) BillResponse {
	var lines []BillLineResponse
	if len(b.Lines) > 0 {
		lines = make([]BillLineResponse, len(b.Lines))
		for i, l := range b.Lines {
			lines[i] = BillLineResponse{
				BillLineID:  l.BillLineID,
				LineNumber:  l.LineNumber,
				ProductID:   l.ProductID,
				Description: l.Description,
				Quantity:    l.Quantity,
				UnitCost:    l.UnitCost,
				TaxRate:     l.TaxRate,
				LineTotal:   l.LineTotal,
			}
		}
	}
	return BillResponse{
		BillID:              b.BillID,
		WorkplaceID:         b.WorkplaceID,
		VendorID:            b.VendorID,
		BillNumber:          b.BillNumber,
		VendorInvoiceNumber: b.VendorInvoiceNumber,
		BillDate:            NewDate(b.BillDate),
		DueDate:             NewDate(b.DueDate),
		Status:              b.Status,
		Subtotal:            b.Subtotal,
		TaxAmount:           b.TaxAmount,
		Total:               b.Total,
		AmountPaid:          b.AmountPaid,
		BalanceDue:          b.BalanceDue(),
		CurrencyCode:        b.CurrencyCode,
		Notes:               b.Notes,
		LocationID:          b.LocationID,
		Lines:               lines,
		CreatedAt:           b.CreatedAt,
		CreatedBy:           b.CreatedBy,
		LastUpdatedAt:       b.LastUpdatedAt,
		LastUpdatedBy:       b.LastUpdatedBy,
	}
}

// ListBillsResponse wraps a page of bills.
type ListBillsResponse struct {
	Bills     []BillResponse `json:"bills"`
	NextToken *string        `json:"nextToken,omitempty"`
}

// InventoryReversalResponse reports the stock side effect of a void.
type InventoryReversalResponse struct {
	Reversed       bool    `json:"reversed"`
	JournalEntryID *string `json:"journalEntryId"`
}

// VoidBillResponse is returned by the void action.
type VoidBillResponse struct {
	Data      BillResponse              `json:"data"`
	Message   string                    `json:"message"`
	Inventory InventoryReversalResponse `json:"inventory"`
}

// MessageResponse is a bare confirmation message.
type MessageResponse struct {
	Message string `json:"message"`
}

// BillPaymentResponse defines the data returned for a bill payment.
type BillPaymentResponse struct {
	PaymentID      string          `json:"paymentID"`
	PaymentDate    Date            `json:"paymentDate"`
	Amount         decimal.Decimal `json:"amount"`
	Reference      string          `json:"reference"`
	JournalEntryID *string         `json:"journalEntryID,omitempty"`
	CreatedAt      time.Time       `json:"createdAt"`
	CreatedBy      string          `json:"createdBy"`
}

// ToBillPaymentResponses converts payments to DTOs.
func ToBillPaymentResponses(ps []domain.BillPayment) []BillPaymentResponse {
	out := make([]BillPaymentResponse, len(ps))
	for i, p := range ps {
		out[i] = BillPaymentResponse{
			PaymentID:      p.PaymentID,
			PaymentDate:    NewDate(p.PaymentDate),
			Amount:         p.Amount,
			Reference:      p.Reference,
			JournalEntryID: p.JournalEntryID,
			CreatedAt:      p.CreatedAt,
			CreatedBy:      p.CreatedBy,
		}
	}
	return out
}
