package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// JournalStatus indicates the state of a journal entry.
type JournalStatus string

const (
	JournalDraft    JournalStatus = "DRAFT"
	JournalPosted   JournalStatus = "POSTED"
	JournalReversed JournalStatus = "REVERSED"
)

// SourceModule tags the part of the system that produced a journal entry.
type SourceModule string

const (
	SourceManual    SourceModule = "manual"
	SourceInventory SourceModule = "inventory"
	SourceBills     SourceModule = "bills"
)

// Reference types used on journal entries and inventory movements.
const (
	ReferenceBill        = "bill"
	ReferenceBillVoid    = "bill_void"
	ReferenceBillPayment = "bill_payment"
	ReferenceBillCharges = "bill_charges"
)

// JournalEntry is a balanced double-entry record. It is never edited after posting;
// corrections are made by posting a reversing entry.
type JournalEntry struct {
	JournalEntryID   string          `json:"journalEntryID"`
	WorkplaceID      string          `json:"workplaceID"`
	EntryDate        time.Time       `json:"entryDate"`
	Description      string          `json:"description"`
	SourceModule     SourceModule    `json:"sourceModule"`
	ReferenceType    *string         `json:"referenceType,omitempty"`
	ReferenceID      *string         `json:"referenceID,omitempty"`
	CurrencyCode     string          `json:"currencyCode"`
	Status           JournalStatus   `json:"status"`
	Amount           decimal.Decimal `json:"amount"` // Sum of the debit side
	OriginalEntryID  *string         `json:"originalEntryID,omitempty"`
	ReversingEntryID *string         `json:"reversingEntryID,omitempty"`
	Lines            []JournalLine   `json:"lines"`
	AuditFields
}

// JournalLine is one side of a journal entry. Exactly one of Debit and Credit is non-zero.
type JournalLine struct {
	JournalLineID  string          `json:"journalLineID"`
	JournalEntryID string          `json:"journalEntryID"`
	LineNumber     int             `json:"lineNumber"`
	AccountID      string          `json:"accountID"`
	Debit          decimal.Decimal `json:"debit"`
	Credit         decimal.Decimal `json:"credit"`
	Description    string          `json:"description"`
}

// Flipped returns a copy of the line with the debit and credit sides swapped.
func (l JournalLine) Flipped() JournalLine {
	l.Debit, l.Credit = l.Credit, l.Debit
	return l
}

// JournalPosting is the input to journal posting: what to book, before ids and audit
// fields are assigned.
type JournalPosting struct {
	EntryDate     time.Time
	Description   string
	SourceModule  SourceModule
	ReferenceType *string
	ReferenceID   *string
	CurrencyCode  string
	Lines         []JournalLine
}
