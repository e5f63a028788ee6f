package services

import (
	"context"

	"github.com/SscSPs/bizledger/internal/core/domain"
	"github.com/SscSPs/bizledger/internal/dto"
	"github.com/jackc/pgx/v5"
)

// JournalReaderSvc defines read operations for journal data
type JournalReaderSvc interface {
	// GetJournalByID retrieves a journal entry with its lines.
	GetJournalByID(ctx context.Context, workplaceID, journalID, userID string) (*domain.JournalEntry, error)
}

// JournalWriterSvc defines the user-facing write operations for journal data
type JournalWriterSvc interface {
	// CreateJournal posts a manual, balanced journal entry.
	CreateJournal(ctx context.Context, workplaceID string, req dto.CreateJournalRequest, userID string) (*domain.JournalEntry, error)

	// ReverseJournal posts the reversing entry of a posted journal entry.
	ReverseJournal(ctx context.Context, workplaceID, journalID, userID string) (*domain.JournalEntry, error)
}

// JournalPosterSvc posts entries as part of a larger business event. The caller owns tx.
type JournalPosterSvc interface {
	// PostInTx validates and writes a balanced entry, updating account balances.
	// An unbalanced posting fails with apperrors.ErrUnbalancedEntry and writes nothing.
	PostInTx(ctx context.Context, tx pgx.Tx, workplaceID string, posting domain.JournalPosting, userID string) (*domain.JournalEntry, error)

	// ReverseInTx posts an entry with every line of the original flipped and marks the
	// original as reversed.
	ReverseInTx(ctx context.Context, tx pgx.Tx, workplaceID, journalID, userID string) (*domain.JournalEntry, error)
}

// JournalSvcFacade combines all journal-related service interfaces
type JournalSvcFacade interface {
	JournalReaderSvc
	JournalWriterSvc
	JournalPosterSvc
}
