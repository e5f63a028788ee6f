package pgsql

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/SscSPs/bizledger/internal/apperrors"
	"github.com/SscSPs/bizledger/internal/core/domain"
	portsrepo "github.com/SscSPs/bizledger/internal/core/ports/repositories"
	"github.com/SscSPs/bizledger/internal/models"
	"github.com/SscSPs/bizledger/internal/utils/mapping"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type PgxJournalRepository struct {
	BaseRepository
}

// newPgxJournalRepository creates a new repository for journal entries and their lines.
func newPgxJournalRepository(pool *pgxpool.Pool) portsrepo.JournalRepositoryFacade {
	return &PgxJournalRepository{BaseRepository: BaseRepository{Pool: pool}}
}

// Ensure PgxJournalRepository implements portsrepo.JournalRepositoryFacade
var _ portsrepo.JournalRepositoryFacade = (*PgxJournalRepository)(nil)

const journalColumns = `
	journal_entry_id, workplace_id, entry_date, description, source_module, reference_type,
	reference_id, currency_code, status, amount, original_entry_id, reversing_entry_id,
	created_at, created_by, last_updated_at, last_updated_by`

const journalLineColumns = `
	journal_line_id, journal_entry_id, line_number, account_id, debit, credit, description`

// SaveJournalInTx inserts the entry header followed by its lines in a single batch.
func (r *PgxJournalRepository) SaveJournalInTx(ctx context.Context, tx pgx.Tx, entry domain.JournalEntry) error {
	m := mapping.ToModelJournalEntry(entry)

	batch := &pgx.Batch{}
	batch.Queue(`
		INSERT INTO journal_entries (`+journalColumns+`)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16);`,
		m.JournalEntryID,
		m.WorkplaceID,
		m.EntryDate,
		m.Description,
		m.SourceModule,
		m.ReferenceType,
		m.ReferenceID,
		m.CurrencyCode,
		m.Status,
		m.Amount,
		m.OriginalEntryID,
		m.ReversingEntryID,
		m.CreatedAt,
		m.CreatedBy,
		m.LastUpdatedAt,
		m.LastUpdatedBy,
	)

	lineQuery := `
		INSERT INTO journal_lines (` + journalLineColumns + `, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8);`
	for _, line := range entry.Lines {
		ml := mapping.ToModelJournalLine(line)
		batch.Queue(lineQuery,
			ml.JournalLineID,
			ml.JournalEntryID,
			ml.LineNumber,
			ml.AccountID,
			ml.Debit,
			ml.Credit,
			ml.Description,
			m.CreatedAt,
		)
	}

	if err := tx.SendBatch(ctx, batch).Close(); err != nil {
		if isCheckViolation(err) {
			return apperrors.NewValidationError("journal line must have exactly one positive side")
		}
		return apperrors.NewAppError(500, "failed to insert journal entry "+m.JournalEntryID, err)
	}
	return nil
}

// UpdateJournalStatusAndLinksInTx updates the status and reversing link of an entry.
func (r *PgxJournalRepository) UpdateJournalStatusAndLinksInTx(ctx context.Context, tx pgx.Tx, journalEntryID string, status domain.JournalStatus, reversingEntryID *string, updatedByUserID string, updatedAt time.Time) error {
	query := `
		UPDATE journal_entries
		SET status = $1, reversing_entry_id = $2, last_updated_at = $3, last_updated_by = $4
		WHERE journal_entry_id = $5;`
	tag, err := tx.Exec(ctx, query, status, reversingEntryID, updatedAt, updatedByUserID, journalEntryID)
	if err != nil {
		return apperrors.NewAppError(500, "failed to update journal entry "+journalEntryID, err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.NewNotFoundError("journal entry " + journalEntryID + " not found")
	}
	return nil
}

// FindJournalByID retrieves a journal entry with its lines.
func (r *PgxJournalRepository) FindJournalByID(ctx context.Context, workplaceID, journalEntryID string) (*domain.JournalEntry, error) {
	query := `SELECT ` + journalColumns + ` FROM journal_entries WHERE workplace_id = $1 AND journal_entry_id = $2;`
	return r.findOne(ctx, r.Pool, query, workplaceID, journalEntryID)
}

// FindJournalForUpdate retrieves a journal entry and locks its row.
func (r *PgxJournalRepository) FindJournalForUpdate(ctx context.Context, tx pgx.Tx, workplaceID, journalEntryID string) (*domain.JournalEntry, error) {
	query := `SELECT ` + journalColumns + ` FROM journal_entries WHERE workplace_id = $1 AND journal_entry_id = $2 FOR UPDATE;`
	return r.findOne(ctx, tx, query, workplaceID, journalEntryID)
}

// FindOriginalJournalByReference finds the first non-reversal entry posted for a document.
func (r *PgxJournalRepository) FindOriginalJournalByReference(ctx context.Context, tx pgx.Tx, workplaceID, referenceType, referenceID string) (*domain.JournalEntry, error) {
	query := `
		SELECT ` + journalColumns + `
		FROM journal_entries
		WHERE workplace_id = $1 AND reference_type = $2 AND reference_id = $3 AND original_entry_id IS NULL
		ORDER BY created_at
		LIMIT 1;`
	return r.findOne(ctx, r.db(tx), query, workplaceID, referenceType, referenceID)
}

func (r *PgxJournalRepository) findOne(ctx context.Context, q querier, query string, args ...any) (*domain.JournalEntry, error) {
	rows, err := q.Query(ctx, query, args...)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to query journal entry", err)
	}
	m, err := pgx.CollectExactlyOneRow(rows, pgx.RowToStructByName[models.JournalEntry])
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewNotFoundError("journal entry not found")
		}
		return nil, apperrors.NewAppError(500, "failed to scan journal entry", err)
	}

	lines, err := r.findLines(ctx, q, m.JournalEntryID)
	if err != nil {
		return nil, err
	}
	entry := mapping.ToDomainJournalEntry(m, lines)
	return &entry, nil
}

func (r *PgxJournalRepository) findLines(ctx context.Context, q querier, journalEntryID string) ([]models.JournalLine, error) {
	query := `SELECT ` + journalLineColumns + ` FROM journal_lines WHERE journal_entry_id = $1 ORDER BY line_number;`
	rows, err := q.Query(ctx, query, journalEntryID)
	if err != nil {
		return nil, fmt.Errorf("failed to query lines of journal entry %s: %w", journalEntryID, err)
	}
	lines, err := pgx.CollectRows(rows, pgx.RowToStructByName[models.JournalLine])
	if err != nil {
		return nil, fmt.Errorf("failed to scan lines of journal entry %s: %w", journalEntryID, err)
	}
	return lines, nil
}
