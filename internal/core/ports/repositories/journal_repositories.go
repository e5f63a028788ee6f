package repositories

import (
	"context"
	"time"

	"github.com/SscSPs/bizledger/internal/core/domain"
	"github.com/jackc/pgx/v5"
)

// JournalReader defines read operations for journal data
type JournalReader interface {
	// FindJournalByID retrieves a journal entry with its lines.
	FindJournalByID(ctx context.Context, workplaceID, journalEntryID string) (*domain.JournalEntry, error)

	// FindJournalForUpdate retrieves a journal entry with its lines and locks the entry row.
	FindJournalForUpdate(ctx context.Context, tx pgx.Tx, workplaceID, journalEntryID string) (*domain.JournalEntry, error)

	// FindOriginalJournalByReference retrieves the non-reversal entry posted for a source
	// document, or apperrors.ErrNotFound when none exists.
	FindOriginalJournalByReference(ctx context.Context, tx pgx.Tx, workplaceID, referenceType, referenceID string) (*domain.JournalEntry, error)
}

// JournalWriter defines write operations for journal data
type JournalWriter interface {
	// SaveJournalInTx inserts the entry and its lines within tx.
	SaveJournalInTx(ctx context.Context, tx pgx.Tx, entry domain.JournalEntry) error

	// UpdateJournalStatusAndLinksInTx updates the status and reversing link of an entry.
	UpdateJournalStatusAndLinksInTx(ctx context.Context, tx pgx.Tx, journalEntryID string, status domain.JournalStatus, reversingEntryID *string, updatedByUserID string, updatedAt time.Time) error
}

// JournalRepositoryFacade combines all journal-related repository interfaces
type JournalRepositoryFacade interface {
	JournalReader
	JournalWriter
}
