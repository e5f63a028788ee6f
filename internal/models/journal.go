package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// JournalEntry is a row of the journal_entries table.
type JournalEntry struct {
	JournalEntryID   string          `db:"journal_entry_id"`
	WorkplaceID      string          `db:"workplace_id"`
	EntryDate        time.Time       `db:"entry_date"`
	Description      string          `db:"description"`
	SourceModule     string          `db:"source_module"`
	ReferenceType    *string         `db:"reference_type"`
	ReferenceID      *string         `db:"reference_id"`
	CurrencyCode     string          `db:"currency_code"`
	Status           string          `db:"status"`
	Amount           decimal.Decimal `db:"amount"`
	OriginalEntryID  *string         `db:"original_entry_id"`
	ReversingEntryID *string         `db:"reversing_entry_id"`
	AuditFields
}

// JournalLine is a row of the journal_lines table.
type JournalLine struct {
	JournalLineID  string          `db:"journal_line_id"`
	JournalEntryID string          `db:"journal_entry_id"`
	LineNumber     int             `db:"line_number"`
	AccountID      string          `db:"account_id"`
	Debit          decimal.Decimal `db:"debit"`
	Credit         decimal.Decimal `db:"credit"`
	Description    string          `db:"description"`
}
