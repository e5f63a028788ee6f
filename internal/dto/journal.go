package dto

import (
	"time"

	"github.com/SscSPs/bizledger/internal/core/domain"
	"github.com/shopspring/decimal"
)

// JournalLineRequest is one line of a manual journal entry.
type JournalLineRequest struct {
	AccountID   string          `json:"accountID" binding:"required"`
	Debit       decimal.Decimal `json:"debit"`
	Credit      decimal.Decimal `json:"credit"`
	Description string          `json:"description"`
}

// CreateJournalRequest defines the data needed to post a manual journal entry.
type CreateJournalRequest struct {
	Date         Date                 `json:"date"`
	Description  string               `json:"description" binding:"required"`
	CurrencyCode string               `json:"currencyCode" binding:"required,iso4217"`
	Lines        []JournalLineRequest `json:"lines" binding:"required,min=2,dive"`
}

// JournalLineResponse defines the data returned for a journal line.
type JournalLineResponse struct {
	JournalLineID string          `json:"journalLineID"`
	LineNumber    int             `json:"lineNumber"`
	AccountID     string          `json:"accountID"`
	Debit         decimal.Decimal `json:"debit"`
	Credit        decimal.Decimal `json:"credit"`
	Description   string          `json:"description"`
}

// JournalResponse defines the data returned for a journal entry.
type JournalResponse struct {
	JournalEntryID   string                `json:"journalEntryID"`
	EntryDate        Date                  `json:"entryDate"`
	Description      string                `json:"description"`
	SourceModule     domain.SourceModule   `json:"sourceModule"`
	ReferenceType    *string               `json:"referenceType,omitempty"`
	ReferenceID      *string               `json:"referenceID,omitempty"`
	CurrencyCode     string                `json:"currencyCode"`
	Status           domain.JournalStatus  `json:"status"`
	Amount           decimal.Decimal       `json:"amount"`
	OriginalEntryID  *string               `json:"originalEntryID,omitempty"`
	ReversingEntryID *string               `json:"reversingEntryID,omitempty"`
	Lines            []JournalLineResponse `json:"lines"`
	CreatedAt        time.Time             `json:"createdAt"`
	CreatedBy        string                `json:"createdBy"`
}

// ToJournalResponse converts a domain.JournalEntry to JournalResponse DTO.
func ToJournalResponse(j *domain.JournalEntry) JournalResponse {
	lines := make([]JournalLineResponse, len(j.Lines))
	for i, l := range j.Lines {
		lines[i] = JournalLineResponse{
			JournalLineID: l.JournalLineID,
			LineNumber:    l.LineNumber,
			AccountID:     l.AccountID,
			Debit:         l.Debit,
			Credit:        l.Credit,
			Description:   l.Description,
		}
	}
	return JournalResponse{
		JournalEntryID:   j.JournalEntryID,
		EntryDate:        NewDate(j.EntryDate),
		Description:      j.Description,
		SourceModule:     j.SourceModule,
		ReferenceType:    j.ReferenceType,
		ReferenceID:      j.ReferenceID,
		CurrencyCode:     j.CurrencyCode,
		Status:           j.Status,
		Amount:           j.Amount,
		OriginalEntryID:  j.OriginalEntryID,
		ReversingEntryID: j.ReversingEntryID,
		Lines:            lines,
		CreatedAt:        j.CreatedAt,
		CreatedBy:        j.CreatedBy,
	}
}
