package mapping

import (
	"github.com/SscSPs/bizledger/internal/core/domain"
	"github.com/SscSPs/bizledger/internal/models"
)

// ToModelJournalEntry converts a domain JournalEntry to a model JournalEntry. Lines are not included.
func ToModelJournalEntry(d domain.JournalEntry) models.JournalEntry {
	return models.JournalEntry{
		JournalEntryID:   d.JournalEntryID,
		WorkplaceID:      d.WorkplaceID,
		EntryDate:        d.EntryDate,
		Description:      d.Description,
		SourceModule:     string(d.SourceModule),
		ReferenceType:    d.ReferenceType,
		ReferenceID:      d.ReferenceID,
		CurrencyCode:     d.CurrencyCode,
		Status:           string(d.Status),
		Amount:           d.Amount,
		OriginalEntryID:  d.OriginalEntryID,
		ReversingEntryID: d.ReversingEntryID,
		AuditFields:      ToModelAuditFields(d.AuditFields),
	}
}

// ToDomainJournalEntry converts a model JournalEntry and its lines to a domain JournalEntry
func ToDomainJournalEntry(m models.JournalEntry, lines []models.JournalLine) domain.JournalEntry {
	return domain.JournalEntry{
		JournalEntryID:   m.JournalEntryID,
		WorkplaceID:      m.WorkplaceID,
		EntryDate:        m.EntryDate,
		Description:      m.Description,
		SourceModule:     domain.SourceModule(m.SourceModule),
		ReferenceType:    m.ReferenceType,
		ReferenceID:      m.ReferenceID,
		CurrencyCode:     m.CurrencyCode,
		Status:           domain.JournalStatus(m.Status),
		Amount:           m.Amount,
		OriginalEntryID:  m.OriginalEntryID,
		ReversingEntryID: m.ReversingEntryID,
		Lines:            ToDomainJournalLineSlice(lines),
		AuditFields:      ToDomainAuditFields(m.AuditFields),
	}
}

// ToModelJournalLine converts a domain JournalLine to a model JournalLine
func ToModelJournalLine(d domain.JournalLine) models.JournalLine {
	return models.JournalLine{
		JournalLineID:  d.JournalLineID,
		JournalEntryID: d.JournalEntryID,
		LineNumber:     d.LineNumber,
		AccountID:      d.AccountID,
		Debit:          d.Debit,
		Credit:         d.Credit,
		Description:    d.Description,
	}
}

// ToDomainJournalLineSlice converts a slice of model JournalLines to a slice of domain JournalLines
func ToDomainJournalLineSlice(ms []models.JournalLine) []domain.JournalLine {
	ds := make([]domain.JournalLine, len(ms))
	for i, m := range ms {
		ds[i] = domain.JournalLine{
			JournalLineID:  m.JournalLineID,
			JournalEntryID: m.JournalEntryID,
			LineNumber:     m.LineNumber,
			AccountID:      m.AccountID,
			Debit:          m.Debit,
			Credit:         m.Credit,
			Description:    m.Description,
		}
	}
	return ds
}
