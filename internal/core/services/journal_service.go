package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sort"
	"strings"
	"time"

	"github.com/SscSPs/bizledger/internal/apperrors"
	"github.com/SscSPs/bizledger/internal/core/domain"
	portsrepo "github.com/SscSPs/bizledger/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/bizledger/internal/core/ports/services"
	"github.com/SscSPs/bizledger/internal/dto"
	"github.com/SscSPs/bizledger/internal/utils/accounting"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"
)

// journalService implements the JournalSvcFacade interface
type journalService struct {
	BaseService
	txRunner    portsrepo.TxRunner
	journalRepo portsrepo.JournalRepositoryFacade
	accountRepo portsrepo.AccountRepositoryFacade
}

// NewJournalService creates a new journal service
func NewJournalService(txRunner portsrepo.TxRunner, journalRepo portsrepo.JournalRepositoryFacade, accountRepo portsrepo.AccountRepositoryFacade, authorizer portssvc.WorkplaceAuthorizerSvc) portssvc.JournalSvcFacade {
	return &journalService{
		BaseService: BaseService{WorkplaceAuthorizer: authorizer},
		txRunner:    txRunner,
		journalRepo: journalRepo,
		accountRepo: accountRepo,
	}
}

// Ensure journalService implements the JournalSvcFacade interface
var _ portssvc.JournalSvcFacade = (*journalService)(nil)

// CreateJournal posts a manual journal entry in its own transaction.
func (s *journalService) CreateJournal(ctx context.Context, workplaceID string, req dto.CreateJournalRequest, userID string) (*domain.JournalEntry, error) {
	if err := s.AuthorizeUser(ctx, userID, workplaceID, domain.RoleMember); err != nil {
		return nil, err
	}

	lines := make([]domain.JournalLine, len(req.Lines))
	for i, l := range req.Lines {
		lines[i] = domain.JournalLine{
			AccountID:   l.AccountID,
			Debit:       l.Debit,
			Credit:      l.Credit,
			Description: l.Description,
		}
	}
	posting := domain.JournalPosting{
		EntryDate:    req.Date.Time,
		Description:  req.Description,
		SourceModule: domain.SourceManual,
		CurrencyCode: req.CurrencyCode,
		Lines:        lines,
	}

	var entry *domain.JournalEntry
	err := s.txRunner.WithinTx(ctx, func(ctx context.Context, tx pgx.Tx) error {
		var err error
		entry, err = s.PostInTx(ctx, tx, workplaceID, posting, userID)
		return err
	})
	if err != nil {
		return nil, err
	}
	return entry, nil
}

// PostInTx validates the posting, locks the accounts it touches, writes the entry and
// applies the balance changes.
func (s *journalService) PostInTx(ctx context.Context, tx pgx.Tx, workplaceID string, posting domain.JournalPosting, userID string) (*domain.JournalEntry, error) {
	return s.post(ctx, tx, workplaceID, posting, userID, nil)
}

func (s *journalService) post(ctx context.Context, tx pgx.Tx, workplaceID string, posting domain.JournalPosting, userID string, originalEntryID *string) (*domain.JournalEntry, error) {
	logger := s.GetLogger(ctx).With(slog.String("workplace_id", workplaceID))

	if strings.TrimSpace(posting.CurrencyCode) == "" {
		return nil, apperrors.NewValidationError("journal currency is required")
	}
	// Nothing is written for an invalid or unbalanced entry.
	if err := accounting.ValidateJournalLines(posting.Lines); err != nil {
		logger.Warn("Rejected journal posting", slog.String("error", err.Error()))
		return nil, err
	}

	accountIDs := make([]string, 0, len(posting.Lines))
	seen := make(map[string]bool, len(posting.Lines))
	for _, l := range posting.Lines {
		if !seen[l.AccountID] {
			seen[l.AccountID] = true
			accountIDs = append(accountIDs, l.AccountID)
		}
	}
	sort.Strings(accountIDs)

	accounts, err := s.accountRepo.FindAccountsByIDsForUpdate(ctx, tx, workplaceID, accountIDs)
	if err != nil {
		logger.Error("Failed to lock accounts for posting", slog.String("error", err.Error()))
		return nil, err
	}

	now := time.Now().UTC()
	entryID := uuid.NewString()
	entryDate := posting.EntryDate
	if entryDate.IsZero() {
		entryDate = now
	}

	balanceChanges := make(map[string]decimal.Decimal, len(accountIDs))
	lines := make([]domain.JournalLine, len(posting.Lines))
	for i, l := range posting.Lines {
		acc, ok := accounts[l.AccountID]
		if !ok {
			return nil, apperrors.NewValidationError(fmt.Sprintf("account %s not found in workplace", l.AccountID))
		}
		if !acc.IsActive {
			return nil, apperrors.NewValidationError(fmt.Sprintf("account %s is inactive", acc.CFID))
		}

		signed, err := accounting.CalculateSignedAmount(l, acc.AccountType)
		if err != nil {
			return nil, apperrors.NewAppError(500, "failed to calculate signed amount", err)
		}
		balanceChanges[l.AccountID] = balanceChanges[l.AccountID].Add(signed)

		l.JournalLineID = uuid.NewString()
		l.JournalEntryID = entryID
		l.LineNumber = i + 1
		lines[i] = l
	}

	debits, _ := accounting.SumSides(lines)
	entry := domain.JournalEntry{
		JournalEntryID:  entryID,
		WorkplaceID:     workplaceID,
		EntryDate:       entryDate,
		Description:     posting.Description,
		SourceModule:    posting.SourceModule,
		ReferenceType:   posting.ReferenceType,
		ReferenceID:     posting.ReferenceID,
		CurrencyCode:    strings.ToUpper(posting.CurrencyCode),
		Status:          domain.JournalPosted,
		Amount:          debits,
		OriginalEntryID: originalEntryID,
		Lines:           lines,
		AuditFields:     domain.NewAuditFields(userID, now),
	}

	if err := s.journalRepo.SaveJournalInTx(ctx, tx, entry); err != nil {
		logger.Error("Failed to save journal entry", slog.String("error", err.Error()))
		return nil, err
	}
	if err := s.accountRepo.UpdateAccountBalancesInTx(ctx, tx, balanceChanges, userID, now); err != nil {
		logger.Error("Failed to update account balances", slog.String("error", err.Error()))
		return nil, err
	}

	logger.Info("Journal entry posted",
		slog.String("journal_entry_id", entryID),
		slog.String("source_module", string(entry.SourceModule)),
		slog.String("amount", entry.Amount.String()))
	return &entry, nil
}

// GetJournalByID retrieves a journal entry with its lines.
func (s *journalService) GetJournalByID(ctx context.Context, workplaceID, journalID, userID string) (*domain.JournalEntry, error) {
	if err := s.AuthorizeUser(ctx, userID, workplaceID, domain.RoleReadOnly); err != nil {
		return nil, err
	}
	entry, err := s.journalRepo.FindJournalByID(ctx, workplaceID, journalID)
	if err != nil {
		if !errors.Is(err, apperrors.ErrNotFound) {
			s.LogError(ctx, err, "Failed to fetch journal entry", slog.String("journal_entry_id", journalID))
		}
		return nil, err
	}
	return entry, nil
}

// ReverseJournal reverses a posted entry in its own transaction.
func (s *journalService) ReverseJournal(ctx context.Context, workplaceID, journalID, userID string) (*domain.JournalEntry, error) {
	if err := s.AuthorizeUser(ctx, userID, workplaceID, domain.RoleMember); err != nil {
		return nil, err
	}

	var reversal *domain.JournalEntry
	err := s.txRunner.WithinTx(ctx, func(ctx context.Context, tx pgx.Tx) error {
		var err error
		reversal, err = s.ReverseInTx(ctx, tx, workplaceID, journalID, userID)
		return err
	})
	if err != nil {
		return nil, err
	}
	return reversal, nil
}

// ReverseInTx posts the mirror image of an entry and links the two. Reversing an entry
// that is already reversed returns the existing reversal.
func (s *journalService) ReverseInTx(ctx context.Context, tx pgx.Tx, workplaceID, journalID, userID string) (*domain.JournalEntry, error) {
	original, err := s.journalRepo.FindJournalForUpdate(ctx, tx, workplaceID, journalID)
	if err != nil {
		return nil, err
	}

	if original.Status == domain.JournalReversed && original.ReversingEntryID != nil {
		s.LogDebug(ctx, "Journal entry already reversed",
			slog.String("journal_entry_id", journalID),
			slog.String("reversing_entry_id", *original.ReversingEntryID))
		return s.journalRepo.FindJournalForUpdate(ctx, tx, workplaceID, *original.ReversingEntryID)
	}
	if original.OriginalEntryID != nil {
		return nil, fmt.Errorf("%w: cannot reverse a journal entry that is itself a reversal", apperrors.ErrConflict)
	}
	if original.Status != domain.JournalPosted {
		return nil, fmt.Errorf("%w: only posted journal entries can be reversed", apperrors.ErrConflict)
	}

	lines := make([]domain.JournalLine, len(original.Lines))
	for i, l := range original.Lines {
		flipped := l.Flipped()
		flipped.JournalLineID = ""
		lines[i] = flipped
	}
	posting := domain.JournalPosting{
		EntryDate:     time.Now().UTC(),
		Description:   "Reversal of: " + original.Description,
		SourceModule:  original.SourceModule,
		ReferenceType: original.ReferenceType,
		ReferenceID:   original.ReferenceID,
		CurrencyCode:  original.CurrencyCode,
		Lines:         lines,
	}

	reversal, err := s.post(ctx, tx, workplaceID, posting, userID, &original.JournalEntryID)
	if err != nil {
		return nil, err
	}

	if err := s.journalRepo.UpdateJournalStatusAndLinksInTx(ctx, tx, original.JournalEntryID, domain.JournalReversed, &reversal.JournalEntryID, userID, reversal.CreatedAt); err != nil {
		s.LogError(ctx, err, "Failed to mark journal entry reversed",
			slog.String("journal_entry_id", original.JournalEntryID),
			slog.String("reversing_entry_id", reversal.JournalEntryID))
		return nil, err
	}
	return reversal, nil
}
