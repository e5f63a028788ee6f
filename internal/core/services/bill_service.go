package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/SscSPs/bizledger/internal/apperrors"
	"github.com/SscSPs/bizledger/internal/core/domain"
	portsrepo "github.com/SscSPs/bizledger/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/bizledger/internal/core/ports/services"
	"github.com/SscSPs/bizledger/internal/dto"
	"github.com/SscSPs/bizledger/internal/platform/config"
	"github.com/SscSPs/bizledger/internal/utils/accounting"
	"github.com/SscSPs/bizledger/internal/utils/pagination"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"
)

// systemUserID is recorded as the updater of rows changed by background jobs.
const systemUserID = "system"

// billService implements the BillSvcFacade interface
type billService struct {
	BaseService
	txRunner        portsrepo.TxRunner
	billRepo        portsrepo.BillRepositoryFacade
	accountRepo     portsrepo.AccountReader
	journalRepo     portsrepo.JournalReader
	inventorySvc    portssvc.InventoryValuationSvc
	journalSvc      portssvc.JournalPosterSvc
	failurePolicy   config.FailurePolicy
	postingAccounts config.PostingAccounts
}

// BillServiceDeps groups the collaborators of the bill service.
type BillServiceDeps struct {
	TxRunner        portsrepo.TxRunner
	BillRepo        portsrepo.BillRepositoryFacade
	AccountRepo     portsrepo.AccountReader
	JournalRepo     portsrepo.JournalReader
	InventorySvc    portssvc.InventoryValuationSvc
	JournalSvc      portssvc.JournalPosterSvc
	Authorizer      portssvc.WorkplaceAuthorizerSvc
	FailurePolicy   config.FailurePolicy
	PostingAccounts config.PostingAccounts
}

// NewBillService creates a new bill service
func NewBillService(deps BillServiceDeps) portssvc.BillSvcFacade {
	policy := deps.FailurePolicy
	if policy == "" {
		policy = config.FailurePolicyStrict
	}
	return &billService{
		BaseService:     BaseService{WorkplaceAuthorizer: deps.Authorizer},
		txRunner:        deps.TxRunner,
		billRepo:        deps.BillRepo,
		accountRepo:     deps.AccountRepo,
		journalRepo:     deps.JournalRepo,
		inventorySvc:    deps.InventorySvc,
		journalSvc:      deps.JournalSvc,
		failurePolicy:   policy,
		postingAccounts: deps.PostingAccounts,
	}
}

// Ensure billService implements the BillSvcFacade interface
var _ portssvc.BillSvcFacade = (*billService)(nil)

func (s *billService) CreateBill(ctx context.Context, workplaceID string, req dto.CreateBillRequest, userID string) (*domain.Bill, error) {
	if err := s.AuthorizeUser(ctx, userID, workplaceID, domain.RoleMember); err != nil {
		return nil, err
	}

	if strings.TrimSpace(req.VendorID) == "" {
		return nil, apperrors.NewValidationError("vendor_id is required")
	}
	now := time.Now().UTC()
	billDate := req.BillDate.Time
	if billDate.IsZero() {
		billDate = dto.NewDate(now).Time
	}
	dueDate := req.DueDate.Time
	if dueDate.IsZero() {
		dueDate = billDate
	}
	if dueDate.Before(billDate) {
		return nil, apperrors.NewValidationError("due_date cannot be before bill_date")
	}
	lines, err := buildBillLines(req.Lines)
	if err != nil {
		return nil, err
	}

	bill := domain.Bill{
		BillID:              uuid.NewString(),
		WorkplaceID:         workplaceID,
		VendorID:            req.VendorID,
		VendorInvoiceNumber: req.VendorInvoiceNumber,
		BillDate:            billDate,
		DueDate:             dueDate,
		Status:              domain.BillDraft,
		AmountPaid:          decimal.Zero,
		CurrencyCode:        strings.ToUpper(req.CurrencyCode),
		Notes:               req.Notes,
		LocationID:          req.LocationID,
		AuditFields:         domain.NewAuditFields(userID, now),
	}
	bill.SetLines(lines)

	err = s.txRunner.WithinTx(ctx, func(ctx context.Context, tx pgx.Tx) error {
		number, err := s.billRepo.NextBillNumber(ctx, tx, workplaceID)
		if err != nil {
			return err
		}
		bill.BillNumber = number
		return s.billRepo.SaveBillInTx(ctx, tx, bill)
	})
	if err != nil {
		s.LogError(ctx, err, "Failed to create bill", slog.String("workplace_id", workplaceID))
		return nil, err
	}

	s.LogInfo(ctx, "Bill created successfully",
		slog.String("bill_id", bill.BillID),
		slog.String("bill_number", bill.BillNumber),
		slog.String("workplace_id", workplaceID))
	return &bill, nil
}

func (s *billService) GetBill(ctx context.Context, workplaceID, billID, userID string) (*domain.Bill, error) {
	if err := s.AuthorizeUser(ctx, userID, workplaceID, domain.RoleReadOnly); err != nil {
		return nil, err
	}
	return s.billRepo.FindBillByID(ctx, workplaceID, billID)
}

func (s *billService) ListBills(ctx context.Context, workplaceID, userID string, params dto.ListBillsParams) (*dto.ListBillsResponse, error) {
	if err := s.AuthorizeUser(ctx, userID, workplaceID, domain.RoleReadOnly); err != nil {
		return nil, err
	}

	var status *domain.BillStatus
	if params.Status != nil && *params.Status != "" {
		st := domain.BillStatus(strings.ToLower(*params.Status))
		if !st.IsValid() {
			return nil, apperrors.NewValidationError("invalid status filter " + *params.Status)
		}
		status = &st
	}

	bills, nextToken, err := s.billRepo.ListBills(ctx, workplaceID, status, pagination.ClampLimit(params.Limit), params.NextToken)
	if err != nil {
		s.LogError(ctx, err, "Failed to list bills", slog.String("workplace_id", workplaceID))
		return nil, err
	}

	resp := &dto.ListBillsResponse{Bills: make([]dto.BillResponse, len(bills)), NextToken: nextToken}
	for i := range bills {
		resp.Bills[i] = dto.ToBillResponse(&bills[i])
	}
	return resp, nil
}

func (s *billService) ListPayments(ctx context.Context, workplaceID, billID, userID string) ([]domain.BillPayment, error) {
	if err := s.AuthorizeUser(ctx, userID, workplaceID, domain.RoleReadOnly); err != nil {
		return nil, err
	}
	if _, err := s.billRepo.FindBillByID(ctx, workplaceID, billID); err != nil {
		return nil, err
	}
	payments, err := s.billRepo.ListBillPayments(ctx, billID)
	if err != nil {
		return nil, err
	}
	if payments == nil {
		return []domain.BillPayment{}, nil
	}
	return payments, nil
}

// UpdateBill applies the patch, replaces lines and, on draft to approved, books the
// payable and receives inventory, all in one transaction holding the bill row lock.
// Approval is the only status change a patch can make.
func (s *billService) UpdateBill(ctx context.Context, workplaceID, billID string, req dto.UpdateBillRequest, userID string) (*domain.Bill, error) {
	if err := s.AuthorizeUser(ctx, userID, workplaceID, domain.RoleMember); err != nil {
		return nil, err
	}

	var updated *domain.Bill
	err := s.txRunner.WithinTx(ctx, func(ctx context.Context, tx pgx.Tx) error {
		bill, err := s.billRepo.FindBillForUpdate(ctx, tx, workplaceID, billID)
		if err != nil {
			return err
		}
		if bill.Status.IsTerminal() {
			return apperrors.NewValidationError("Cannot edit paid or voided bills")
		}
		previous := bill.Status

		if err := applyBillPatch(bill, req); err != nil {
			return err
		}

		newLines, replaceLines := req.ReplacementLines()
		if replaceLines {
			if previous.HasReceivedInventory() {
				return apperrors.NewValidationError("lines of a bill that has received stock cannot be changed; void it and enter a new bill")
			}
			lines, err := buildBillLines(newLines)
			if err != nil {
				return err
			}
			bill.SetLines(lines)
		}

		if req.Status != nil && *req.Status != previous {
			next := *req.Status
			switch {
			case next == domain.BillVoid:
				return apperrors.NewValidationError("use the void action to void a bill")
			case next == domain.BillPartial || next == domain.BillPaid:
				return apperrors.NewValidationError("record a payment to move a bill to " + string(next))
			case next != domain.BillApproved:
				return apperrors.NewValidationError(fmt.Sprintf("cannot change bill status from %s to %s", previous, next))
			}
			if err := bill.TransitionTo(next); err != nil {
				return apperrors.NewValidationError(err.Error())
			}
			if next == domain.BillApproved && len(bill.Lines) == 0 {
				return apperrors.NewValidationError("a bill needs at least one line to be approved")
			}
		}

		bill.Touch(userID, time.Now().UTC())
		if err := s.billRepo.UpdateBillInTx(ctx, tx, *bill); err != nil {
			return err
		}
		if replaceLines {
			if err := s.billRepo.ReplaceBillLinesInTx(ctx, tx, bill.BillID, bill.Lines); err != nil {
				return err
			}
		}

		if previous == domain.BillDraft && bill.Status == domain.BillApproved {
			if _, err := s.postCharges(ctx, tx, *bill, userID); err != nil {
				return err
			}
			err := s.withFailurePolicy(ctx, tx, "process bill inventory", bill.BillID, func(ctx context.Context, tx pgx.Tx) error {
				_, err := s.inventorySvc.ProcessBillInventory(ctx, tx, *bill, userID)
				return err
			})
			if err != nil {
				return err
			}
		}

		updated = bill
		return nil
	})
	if err != nil {
		if !errors.Is(err, apperrors.ErrNotFound) && !errors.Is(err, apperrors.ErrValidation) {
			s.LogError(ctx, err, "Failed to update bill",
				slog.String("bill_id", billID),
				slog.String("workplace_id", workplaceID))
		}
		return nil, err
	}

	s.LogInfo(ctx, "Bill updated successfully",
		slog.String("bill_id", billID),
		slog.String("status", string(updated.Status)))
	return updated, nil
}

// VoidBill reverses received stock and flips the bill to void in one transaction.
func (s *billService) VoidBill(ctx context.Context, workplaceID, billID, userID string) (*domain.Bill, *domain.InventoryReversal, error) {
	if err := s.AuthorizeUser(ctx, userID, workplaceID, domain.RoleMember); err != nil {
		return nil, nil, err
	}

	var voided *domain.Bill
	reversal := &domain.InventoryReversal{Reversed: false}
	err := s.txRunner.WithinTx(ctx, func(ctx context.Context, tx pgx.Tx) error {
		bill, err := s.billRepo.FindBillForUpdate(ctx, tx, workplaceID, billID)
		if err != nil {
			return err
		}
		switch bill.Status {
		case domain.BillVoid:
			return apperrors.NewValidationError("Bill is already voided")
		case domain.BillDraft:
			return apperrors.NewValidationError("Draft bills cannot be voided; delete them instead")
		case domain.BillPaid:
			return apperrors.NewValidationError("Paid bills cannot be voided")
		}

		if bill.Status.HasReceivedInventory() {
			if err := s.reverseCharges(ctx, tx, *bill, userID); err != nil {
				return err
			}
			err := s.withFailurePolicy(ctx, tx, "reverse bill inventory", bill.BillID, func(ctx context.Context, tx pgx.Tx) error {
				res, err := s.inventorySvc.ReverseBillInventory(ctx, tx, *bill, userID)
				if err != nil {
					return err
				}
				reversal = res
				return nil
			})
			if err != nil {
				return err
			}
		}

		if err := bill.TransitionTo(domain.BillVoid); err != nil {
			return apperrors.NewValidationError(err.Error())
		}
		bill.Touch(userID, time.Now().UTC())
		if err := s.billRepo.UpdateBillInTx(ctx, tx, *bill); err != nil {
			return err
		}
		voided = bill
		return nil
	})
	if err != nil {
		if !errors.Is(err, apperrors.ErrNotFound) && !errors.Is(err, apperrors.ErrValidation) {
			s.LogError(ctx, err, "Failed to void bill",
				slog.String("bill_id", billID),
				slog.String("workplace_id", workplaceID))
		}
		return nil, nil, err
	}

	s.LogInfo(ctx, "Bill voided successfully",
		slog.String("bill_id", billID),
		slog.Bool("inventory_reversed", reversal.Reversed))
	return voided, reversal, nil
}

func (s *billService) DeleteBill(ctx context.Context, workplaceID, billID, userID string) error {
	if err := s.AuthorizeUser(ctx, userID, workplaceID, domain.RoleMember); err != nil {
		return err
	}

	err := s.txRunner.WithinTx(ctx, func(ctx context.Context, tx pgx.Tx) error {
		bill, err := s.billRepo.FindBillForUpdate(ctx, tx, workplaceID, billID)
		if err != nil {
			return err
		}
		if bill.Status != domain.BillDraft || !bill.AmountPaid.IsZero() {
			return apperrors.NewValidationError("Only draft bills with no payments can be deleted")
		}
		return s.billRepo.DeleteBillInTx(ctx, tx, billID)
	})
	if err != nil {
		return err
	}

	s.LogInfo(ctx, "Bill deleted successfully",
		slog.String("bill_id", billID),
		slog.String("workplace_id", workplaceID))
	return nil
}

// RecordPayment books a payment, moves the bill to partial or paid and posts
// Dr accounts payable / Cr cash.
func (s *billService) RecordPayment(ctx context.Context, workplaceID, billID string, req dto.RecordPaymentRequest, userID string) (*domain.Bill, error) {
	if err := s.AuthorizeUser(ctx, userID, workplaceID, domain.RoleMember); err != nil {
		return nil, err
	}
	if !req.Amount.IsPositive() {
		return nil, apperrors.NewValidationError("payment amount must be positive")
	}

	now := time.Now().UTC()
	paymentDate := dto.NewDate(now).Time
	if req.PaymentDate != nil && !req.PaymentDate.IsZero() {
		paymentDate = req.PaymentDate.Time
	}

	var paid *domain.Bill
	err := s.txRunner.WithinTx(ctx, func(ctx context.Context, tx pgx.Tx) error {
		bill, err := s.billRepo.FindBillForUpdate(ctx, tx, workplaceID, billID)
		if err != nil {
			return err
		}
		switch bill.Status {
		case domain.BillApproved, domain.BillPartial, domain.BillOverdue:
		default:
			return apperrors.NewValidationError(fmt.Sprintf("cannot record a payment on a %s bill", bill.Status))
		}
		if req.Amount.GreaterThan(bill.BalanceDue()) {
			return apperrors.NewValidationError(fmt.Sprintf("payment %s exceeds balance due %s", req.Amount.StringFixed(2), bill.BalanceDue().StringFixed(2)))
		}

		payment := domain.BillPayment{
			PaymentID:   uuid.NewString(),
			BillID:      bill.BillID,
			PaymentDate: paymentDate,
			Amount:      req.Amount,
			Reference:   req.Reference,
			CreatedAt:   now,
			CreatedBy:   userID,
		}

		// Cash movements are always posted; the failure policy only covers inventory.
		entry, err := s.postPayment(ctx, tx, *bill, payment, userID)
		if err != nil {
			return err
		}
		payment.JournalEntryID = &entry.JournalEntryID
		if err := s.billRepo.SaveBillPaymentInTx(ctx, tx, payment); err != nil {
			return err
		}

		bill.AmountPaid = bill.AmountPaid.Add(req.Amount)
		next := bill.Status
		switch {
		case bill.BalanceDue().IsZero():
			next = domain.BillPaid
		case bill.Status == domain.BillApproved:
			next = domain.BillPartial
		}
		if next != bill.Status {
			if err := bill.TransitionTo(next); err != nil {
				return apperrors.NewValidationError(err.Error())
			}
		}
		bill.Touch(userID, now)
		if err := s.billRepo.UpdateBillInTx(ctx, tx, *bill); err != nil {
			return err
		}
		paid = bill
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.LogInfo(ctx, "Bill payment recorded",
		slog.String("bill_id", billID),
		slog.String("amount", req.Amount.String()),
		slog.String("status", string(paid.Status)))
	return paid, nil
}

func (s *billService) postPayment(ctx context.Context, tx pgx.Tx, bill domain.Bill, payment domain.BillPayment, userID string) (*domain.JournalEntry, error) {
	payable, err := s.postingAccount(ctx, tx, bill.WorkplaceID, s.postingAccounts.AccountsPayableCode, "accounts payable")
	if err != nil {
		return nil, err
	}
	cash, err := s.postingAccount(ctx, tx, bill.WorkplaceID, s.postingAccounts.CashCode, "cash")
	if err != nil {
		return nil, err
	}

	refType, refID := domain.ReferenceBillPayment, payment.PaymentID
	return s.journalSvc.PostInTx(ctx, tx, bill.WorkplaceID, domain.JournalPosting{
		EntryDate:     payment.PaymentDate,
		Description:   "Payment of bill " + bill.BillNumber,
		SourceModule:  domain.SourceBills,
		ReferenceType: &refType,
		ReferenceID:   &refID,
		CurrencyCode:  bill.CurrencyCode,
		Lines: []domain.JournalLine{
			{AccountID: payable.AccountID, Debit: payment.Amount, Description: "Accounts payable " + bill.BillNumber},
			{AccountID: cash.AccountID, Credit: payment.Amount, Description: payment.Reference},
		},
	}, userID)
}

// postCharges books the part of the bill that is not stock: non-inventory lines are
// debited to purchase expense and the tax amount to purchase tax, against accounts payable.
// Together with the inventory receipt entry this credits payable with the bill total.
// It returns nil when there is nothing to post.
func (s *billService) postCharges(ctx context.Context, tx pgx.Tx, bill domain.Bill, userID string) (*domain.JournalEntry, error) {
	stockValue := decimal.Zero
	for _, l := range bill.Lines {
		if l.AffectsInventory() {
			stockValue = stockValue.Add(accounting.LineValue(l.Quantity, l.UnitCost))
		}
	}
	expense := bill.Subtotal.Sub(stockValue)
	tax := bill.TaxAmount
	payable := expense.Add(tax)
	if expense.IsZero() && tax.IsZero() {
		return nil, nil
	}

	var lines []domain.JournalLine
	if !expense.IsZero() {
		acc, err := s.postingAccount(ctx, tx, bill.WorkplaceID, s.postingAccounts.ExpenseCode, "purchase expense")
		if err != nil {
			return nil, err
		}
		lines = append(lines, signedJournalLine(acc.AccountID, expense, "Purchases on bill "+bill.BillNumber))
	}
	if !tax.IsZero() {
		acc, err := s.postingAccount(ctx, tx, bill.WorkplaceID, s.postingAccounts.TaxCode, "purchase tax")
		if err != nil {
			return nil, err
		}
		lines = append(lines, signedJournalLine(acc.AccountID, tax, "Tax on bill "+bill.BillNumber))
	}
	if !payable.IsZero() {
		acc, err := s.postingAccount(ctx, tx, bill.WorkplaceID, s.postingAccounts.AccountsPayableCode, "accounts payable")
		if err != nil {
			return nil, err
		}
		lines = append(lines, signedJournalLine(acc.AccountID, payable.Neg(), "Accounts payable "+bill.BillNumber))
	}

	refType, refID := domain.ReferenceBillCharges, bill.BillID
	return s.journalSvc.PostInTx(ctx, tx, bill.WorkplaceID, domain.JournalPosting{
		EntryDate:     bill.BillDate,
		Description:   "Bill " + bill.BillNumber + " from vendor " + bill.VendorID,
		SourceModule:  domain.SourceBills,
		ReferenceType: &refType,
		ReferenceID:   &refID,
		CurrencyCode:  bill.CurrencyCode,
		Lines:         lines,
	}, userID)
}

// reverseCharges reverses the charges entry posted at approval, if there is one.
func (s *billService) reverseCharges(ctx context.Context, tx pgx.Tx, bill domain.Bill, userID string) error {
	original, err := s.journalRepo.FindOriginalJournalByReference(ctx, tx, bill.WorkplaceID, domain.ReferenceBillCharges, bill.BillID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil
		}
		return err
	}
	_, err = s.journalSvc.ReverseInTx(ctx, tx, bill.WorkplaceID, original.JournalEntryID, userID)
	return err
}

// signedJournalLine debits a positive amount and credits a negative one.
func signedJournalLine(accountID string, amount decimal.Decimal, description string) domain.JournalLine {
	if amount.IsNegative() {
		return domain.JournalLine{AccountID: accountID, Credit: amount.Abs(), Description: description}
	}
	return domain.JournalLine{AccountID: accountID, Debit: amount, Description: description}
}

func (s *billService) postingAccount(ctx context.Context, tx pgx.Tx, workplaceID, cfid, purpose string) (*domain.Account, error) {
	acc, err := s.accountRepo.FindAccountByCFID(ctx, tx, workplaceID, cfid)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, apperrors.NewValidationError(fmt.Sprintf("%s account %s is not set up in this workplace", purpose, cfid))
		}
		return nil, err
	}
	return acc, nil
}

// MarkOverdueBills flips approved and partial bills due before asOf to overdue.
func (s *billService) MarkOverdueBills(ctx context.Context, asOf time.Time) (int64, error) {
	n, err := s.billRepo.MarkOverdueBills(ctx, asOf, systemUserID)
	if err != nil {
		s.LogError(ctx, err, "Failed to mark overdue bills")
		return 0, err
	}
	if n > 0 {
		s.LogInfo(ctx, "Marked bills overdue", slog.Int64("count", n), slog.Time("as_of", asOf))
	}
	return n, nil
}

// ReprocessInventory runs inventory processing for a bill that has already been approved,
// regardless of the failure policy. Bills processed before are returned unchanged.
func (s *billService) ReprocessInventory(ctx context.Context, workplaceID, billID, userID string) (*domain.InventoryResult, error) {
	var result *domain.InventoryResult
	err := s.txRunner.WithinTx(ctx, func(ctx context.Context, tx pgx.Tx) error {
		bill, err := s.billRepo.FindBillForUpdate(ctx, tx, workplaceID, billID)
		if err != nil {
			return err
		}
		if !bill.Status.HasReceivedInventory() {
			return apperrors.NewValidationError(fmt.Sprintf("bill in status %s has no inventory to process", bill.Status))
		}
		result, err = s.inventorySvc.ProcessBillInventory(ctx, tx, *bill, userID)
		return err
	})
	if err != nil {
		s.LogError(ctx, err, "Failed to reprocess bill inventory", slog.String("bill_id", billID))
		return nil, err
	}
	return result, nil
}

// withFailurePolicy runs an inventory side effect of a bill transition. Under the strict policy its
// error aborts the transaction. Under the lenient policy it runs in a savepoint and a
// failure is logged and dropped, except for unbalanced entries which always abort.
func (s *billService) withFailurePolicy(ctx context.Context, tx pgx.Tx, action, billID string, fn portsrepo.TxFunc) error {
	if s.failurePolicy != config.FailurePolicyLenient {
		return fn(ctx, tx)
	}
	err := s.txRunner.WithinSavepoint(ctx, tx, fn)
	if err == nil || errors.Is(err, apperrors.ErrUnbalancedEntry) {
		return err
	}
	s.LogWarn(ctx, "Side effect failed, continuing under lenient policy",
		slog.String("action", action),
		slog.String("bill_id", billID),
		slog.String("error", err.Error()))
	return nil
}

// applyBillPatch copies the header fields present in req onto bill.
func applyBillPatch(bill *domain.Bill, req dto.UpdateBillRequest) error {
	if req.VendorID != nil {
		if strings.TrimSpace(*req.VendorID) == "" {
			return apperrors.NewValidationError("vendor_id cannot be empty")
		}
		bill.VendorID = *req.VendorID
	}
	if req.VendorInvoiceNumber != nil {
		bill.VendorInvoiceNumber = *req.VendorInvoiceNumber
	}
	if req.Notes != nil {
		bill.Notes = *req.Notes
	}
	if req.BillDate != nil && !req.BillDate.IsZero() {
		bill.BillDate = req.BillDate.Time
	}
	if req.DueDate != nil && !req.DueDate.IsZero() {
		bill.DueDate = req.DueDate.Time
	}
	if bill.DueDate.Before(bill.BillDate) {
		return apperrors.NewValidationError("due_date cannot be before bill_date")
	}
	if req.LocationID != nil {
		if bill.Status.HasReceivedInventory() {
			return apperrors.NewValidationError("location of a bill that has received stock cannot be changed")
		}
		loc := strings.TrimSpace(*req.LocationID)
		if loc == "" {
			bill.LocationID = nil
		} else {
			bill.LocationID = &loc
		}
	}
	return nil
}

// buildBillLines validates submitted lines and converts them to domain lines.
// Totals and numbering are filled in by Bill.SetLines.
func buildBillLines(reqs []dto.BillLineRequest) ([]domain.BillLine, error) {
	one := decimal.NewFromInt(1)
	lines := make([]domain.BillLine, 0, len(reqs))
	for i, r := range reqs {
		n := i + 1
		if r.UnitCost.IsNegative() {
			return nil, apperrors.NewValidationError(fmt.Sprintf("line %d: unit_cost cannot be negative", n))
		}
		if r.TaxRate.IsNegative() || r.TaxRate.GreaterThan(one) {
			return nil, apperrors.NewValidationError(fmt.Sprintf("line %d: tax_rate must be between 0 and 1", n))
		}
		var productID *string
		if r.ProductID != nil && strings.TrimSpace(*r.ProductID) != "" {
			id := strings.TrimSpace(*r.ProductID)
			productID = &id
		}
		if productID == nil && strings.TrimSpace(r.Description) == "" {
			return nil, apperrors.NewValidationError(fmt.Sprintf("line %d: description or product_id is required", n))
		}
		lines = append(lines, domain.BillLine{
			BillLineID:  uuid.NewString(),
			ProductID:   productID,
			Description: r.Description,
			Quantity:    r.Quantity,
			UnitCost:    r.UnitCost,
			TaxRate:     r.TaxRate,
		})
	}
	return lines, nil
}
