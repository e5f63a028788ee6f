package mapping

import (
	"github.com/SscSPs/bizledger/internal/core/domain"
	"github.com/SscSPs/bizledger/internal/models"
)

// ToModelBill converts a domain Bill to a model Bill. Lines are mapped separately.
func ToModelBill(d domain.Bill) models.Bill {
	return models.Bill{
		BillID:              d.BillID,
		WorkplaceID:         d.WorkplaceID,
		VendorID:            d.VendorID,
		BillNumber:          d.BillNumber,
		VendorInvoiceNumber: d.VendorInvoiceNumber,
		BillDate:            d.BillDate,
		DueDate:             d.DueDate,
		Status:              string(d.Status),
		Subtotal:            d.Subtotal,
		TaxAmount:           d.TaxAmount,
		Total:               d.Total,
		AmountPaid:          d.AmountPaid,
		CurrencyCode:        d.CurrencyCode,
		Notes:               d.Notes,
		LocationID:          d.LocationID,
		AuditFields:         ToModelAuditFields(d.AuditFields),
	}
}

// ToDomainBill converts a model Bill and its lines to a domain Bill
func ToDomainBill(m models.Bill, lines []models.BillLine) domain.Bill {
	return domain.Bill{
		BillID:              m.BillID,
		WorkplaceID:         m.WorkplaceID,
		VendorID:            m.VendorID,
		BillNumber:          m.BillNumber,
		VendorInvoiceNumber: m.VendorInvoiceNumber,
		BillDate:            m.BillDate,
		DueDate:             m.DueDate,
		Status:              domain.BillStatus(m.Status),
		Subtotal:            m.Subtotal,
		TaxAmount:           m.TaxAmount,
		Total:               m.Total,
		AmountPaid:          m.AmountPaid,
		CurrencyCode:        m.CurrencyCode,
		Notes:               m.Notes,
		LocationID:          m.LocationID,
		Lines:               ToDomainBillLineSlice(lines),
		AuditFields:         ToDomainAuditFields(m.AuditFields),
	}
}

// ToModelBillLine converts a domain BillLine to a model BillLine
func ToModelBillLine(d domain.BillLine) models.BillLine {
	return models.BillLine{
		BillLineID:  d.BillLineID,
		BillID:      d.BillID,
		LineNumber:  d.LineNumber,
		ProductID:   d.ProductID,
		Description: d.Description,
		Quantity:    d.Quantity,
		UnitCost:    d.UnitCost,
		TaxRate:     d.TaxRate,
		LineTotal:   d.LineTotal,
	}
}

// ToDomainBillLineSlice converts a slice of model BillLines to a slice of domain BillLines
func ToDomainBillLineSlice(ms []models.BillLine) []domain.BillLine {
	ds := make([]domain.BillLine, len(ms))
	for i, m := range ms {
		ds[i] = domain.BillLine{
			BillLineID:  m.BillLineID,
			BillID:      m.BillID,
			LineNumber:  m.LineNumber,
			ProductID:   m.ProductID,
			Description: m.Description,
			Quantity:    m.Quantity,
			UnitCost:    m.UnitCost,
			TaxRate:     m.TaxRate,
			LineTotal:   m.LineTotal,
		}
	}
	return ds
}

// ToDomainBillPayment converts a model BillPayment to a domain BillPayment
func ToDomainBillPayment(m models.BillPayment) domain.BillPayment {
	return domain.BillPayment{
		PaymentID:      m.PaymentID,
		BillID:         m.BillID,
		PaymentDate:    m.PaymentDate,
		Amount:         m.Amount,
		Reference:      m.Reference,
		JournalEntryID: m.JournalEntryID,
		CreatedAt:      m.CreatedAt,
		CreatedBy:      m.CreatedBy,
	}
}
