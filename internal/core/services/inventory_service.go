package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sort"
	"time"

	"github.com/SscSPs/bizledger/internal/apperrors"
	"github.com/SscSPs/bizledger/internal/core/domain"
	portsrepo "github.com/SscSPs/bizledger/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/bizledger/internal/core/ports/services"
	"github.com/SscSPs/bizledger/internal/platform/config"
	"github.com/SscSPs/bizledger/internal/utils/accounting"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"
)

// inventoryService implements the InventorySvcFacade interface
type inventoryService struct {
	BaseService
	productRepo     portsrepo.ProductRepositoryFacade
	movementRepo    portsrepo.InventoryMovementRepository
	accountRepo     portsrepo.AccountReader
	journalRepo     portsrepo.JournalReader
	journalSvc      portssvc.JournalPosterSvc
	postingAccounts config.PostingAccounts
}

// InventoryServiceDeps groups the collaborators of the inventory service.
type InventoryServiceDeps struct {
	ProductRepo     portsrepo.ProductRepositoryFacade
	MovementRepo    portsrepo.InventoryMovementRepository
	AccountRepo     portsrepo.AccountReader
	JournalRepo     portsrepo.JournalReader
	JournalSvc      portssvc.JournalPosterSvc
	Authorizer      portssvc.WorkplaceAuthorizerSvc
	PostingAccounts config.PostingAccounts
}

// NewInventoryService creates a new inventory service
func NewInventoryService(deps InventoryServiceDeps) portssvc.InventorySvcFacade {
	return &inventoryService{
		BaseService:     BaseService{WorkplaceAuthorizer: deps.Authorizer},
		productRepo:     deps.ProductRepo,
		movementRepo:    deps.MovementRepo,
		accountRepo:     deps.AccountRepo,
		journalRepo:     deps.JournalRepo,
		journalSvc:      deps.JournalSvc,
		postingAccounts: deps.PostingAccounts,
	}
}

// Ensure inventoryService implements the InventorySvcFacade interface
var _ portssvc.InventorySvcFacade = (*inventoryService)(nil)

// ProcessBillInventory receives every inventory line of the bill. Products are locked in
// id order, the weighted-average cost is updated line by line, and one journal entry
// debits inventory (or purchase expense for untracked products) against accounts payable
// for the vendor value of the lines.
func (s *inventoryService) ProcessBillInventory(ctx context.Context, tx pgx.Tx, bill domain.Bill, userID string) (*domain.InventoryResult, error) {
	logger := s.GetLogger(ctx).With(
		slog.String("workplace_id", bill.WorkplaceID),
		slog.String("bill_id", bill.BillID))

	existing, err := s.movementRepo.FindMovementsByReference(ctx, tx, bill.WorkplaceID, domain.ReferenceBill, bill.BillID)
	if err != nil {
		return nil, err
	}
	journal, err := s.journalRepo.FindOriginalJournalByReference(ctx, tx, bill.WorkplaceID, domain.ReferenceBill, bill.BillID)
	if err != nil && !errors.Is(err, apperrors.ErrNotFound) {
		return nil, err
	}
	// A bill of untracked products leaves a journal entry but no movements.
	if len(existing) > 0 || journal != nil {
		logger.Info("Bill inventory already processed", slog.Int("movements", len(existing)))
		result := &domain.InventoryResult{Movements: existing, AlreadyProcessed: true}
		if journal != nil {
			result.JournalEntryID = &journal.JournalEntryID
		}
		return result, nil
	}

	lines := inventoryLines(bill.Lines)
	if len(lines) == 0 {
		return &domain.InventoryResult{Movements: []domain.InventoryMovement{}}, nil
	}

	products, err := s.lockProducts(ctx, tx, bill.WorkplaceID, productIDsOfLines(lines))
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	movements := make([]domain.InventoryMovement, 0, len(lines))
	var stockLines, expenseLines []domain.JournalLine
	touched := make(map[string]bool)
	net := decimal.Zero

	for _, line := range lines {
		product := products[*line.ProductID]
		lineValue := accounting.LineValue(line.Quantity, line.UnitCost)
		if !product.TrackInventory {
			// Untracked products are bought straight into expense.
			if !lineValue.IsZero() {
				net = net.Add(lineValue)
				expenseLines = append(expenseLines, inventoryJournalLine(lineValue, fmt.Sprintf("%s x %s @ %s", product.SKU, line.Quantity.String(), line.UnitCost.String())))
			}
			continue
		}

		costBefore := product.CostPrice
		newOnHand, newCost := accounting.WeightedAverage(product.QuantityOnHand, product.CostPrice, line.Quantity, line.UnitCost)
		if newOnHand.IsNegative() {
			return nil, fmt.Errorf("%w: insufficient stock of %s to return %s (on hand %s)",
				apperrors.ErrConflict, product.SKU, line.Quantity.Neg().String(), product.QuantityOnHand.String())
		}
		product.QuantityOnHand = newOnHand
		product.CostPrice = newCost
		product.Touch(userID, now)
		products[product.ProductID] = product
		touched[product.ProductID] = true

		movementType := domain.MovementPurchase
		unitCost, totalCost := line.UnitCost, lineValue
		if line.Quantity.IsNegative() {
			// Returns leave at the pool cost; the gap to the vendor credit is a price variance.
			movementType = domain.MovementReturn
			unitCost = costBefore
			totalCost = accounting.LineValue(line.Quantity, costBefore)
			if variance := lineValue.Sub(totalCost); !variance.IsZero() {
				expenseLines = append(expenseLines, inventoryJournalLine(variance, "Return price variance "+product.SKU))
			}
		}
		lineID := line.BillLineID
		movements = append(movements, domain.InventoryMovement{
			MovementID:    uuid.NewString(),
			WorkplaceID:   bill.WorkplaceID,
			ProductID:     product.ProductID,
			MovementType:  movementType,
			Quantity:      line.Quantity,
			UnitCost:      unitCost,
			TotalCost:     totalCost,
			CostBefore:    costBefore,
			ReferenceType: domain.ReferenceBill,
			ReferenceID:   bill.BillID,
			BillLineID:    &lineID,
			LocationID:    bill.LocationID,
			CreatedAt:     now,
			CreatedBy:     userID,
		})

		if bill.LocationID != nil && *bill.LocationID != "" {
			if err := s.productRepo.AdjustStockLocationInTx(ctx, tx, bill.WorkplaceID, product.ProductID, *bill.LocationID, line.Quantity, userID, now); err != nil {
				return nil, err
			}
		}

		net = net.Add(lineValue)
		if !totalCost.IsZero() {
			stockLines = append(stockLines, inventoryJournalLine(totalCost, fmt.Sprintf("%s x %s @ %s", product.SKU, line.Quantity.String(), line.UnitCost.String())))
		}
	}

	if err := s.saveStock(ctx, tx, products, touched, movements); err != nil {
		return nil, err
	}

	result := &domain.InventoryResult{Movements: movements}
	if len(stockLines) == 0 && len(expenseLines) == 0 {
		logger.Info("Bill inventory processed without journal", slog.Int("movements", len(movements)))
		return result, nil
	}

	journalLines, err := s.assignPostingAccounts(ctx, tx, bill.WorkplaceID, stockLines, expenseLines)
	if err != nil {
		return nil, err
	}
	payableAcc, err := s.resolveAccount(ctx, tx, bill.WorkplaceID, s.postingAccounts.AccountsPayableCode, "accounts payable")
	if err != nil {
		return nil, err
	}
	switch {
	case net.IsPositive():
		journalLines = append(journalLines, domain.JournalLine{AccountID: payableAcc.AccountID, Credit: net, Description: "Accounts payable " + bill.BillNumber})
	case net.IsNegative():
		journalLines = append(journalLines, domain.JournalLine{AccountID: payableAcc.AccountID, Debit: net.Abs(), Description: "Accounts payable " + bill.BillNumber})
	}

	refType, refID := domain.ReferenceBill, bill.BillID
	entry, err := s.journalSvc.PostInTx(ctx, tx, bill.WorkplaceID, domain.JournalPosting{
		EntryDate:     bill.BillDate,
		Description:   "Inventory received on bill " + bill.BillNumber,
		SourceModule:  domain.SourceInventory,
		ReferenceType: &refType,
		ReferenceID:   &refID,
		CurrencyCode:  bill.CurrencyCode,
		Lines:         journalLines,
	}, userID)
	if err != nil {
		return nil, err
	}
	result.JournalEntryID = &entry.JournalEntryID

	logger.Info("Bill inventory processed",
		slog.Int("movements", len(movements)),
		slog.String("journal_entry_id", entry.JournalEntryID),
		slog.String("net_value", net.String()))
	return result, nil
}

// ReverseBillInventory takes the bill's receipts back out of stock. Quantities are always
// reversed. The unit cost is restored to its value before the bill only when no other
// movement has touched the product since; otherwise the blended cost is kept.
func (s *inventoryService) ReverseBillInventory(ctx context.Context, tx pgx.Tx, bill domain.Bill, userID string) (*domain.InventoryReversal, error) {
	logger := s.GetLogger(ctx).With(
		slog.String("workplace_id", bill.WorkplaceID),
		slog.String("bill_id", bill.BillID))

	voided, err := s.movementRepo.FindMovementsByReference(ctx, tx, bill.WorkplaceID, domain.ReferenceBillVoid, bill.BillID)
	if err != nil {
		return nil, err
	}
	if len(voided) > 0 {
		logger.Info("Bill inventory already reversed")
		reversal := &domain.InventoryReversal{Reversed: true, Movements: voided}
		original, err := s.journalRepo.FindOriginalJournalByReference(ctx, tx, bill.WorkplaceID, domain.ReferenceBill, bill.BillID)
		switch {
		case err == nil:
			reversal.JournalEntryID = original.ReversingEntryID
		case !errors.Is(err, apperrors.ErrNotFound):
			return nil, err
		}
		return reversal, nil
	}

	receipts, err := s.movementRepo.FindMovementsByReference(ctx, tx, bill.WorkplaceID, domain.ReferenceBill, bill.BillID)
	if err != nil {
		return nil, err
	}
	if len(receipts) == 0 {
		return s.reverseReceiptJournal(ctx, tx, bill, userID)
	}
	sortByBillLine(receipts, bill.Lines)

	productIDs := make([]string, 0, len(receipts))
	seen := make(map[string]bool)
	for _, mv := range receipts {
		if !seen[mv.ProductID] {
			seen[mv.ProductID] = true
			productIDs = append(productIDs, mv.ProductID)
		}
	}
	sort.Strings(productIDs)

	products, err := s.lockProducts(ctx, tx, bill.WorkplaceID, productIDs)
	if err != nil {
		return nil, err
	}
	// Read after locking so no other bill can slip a movement in between.
	latest, err := s.movementRepo.FindLatestMovementsByProductIDs(ctx, tx, productIDs)
	if err != nil {
		return nil, err
	}

	restoreCost := make(map[string]decimal.Decimal)
	for _, mv := range receipts {
		last, ok := latest[mv.ProductID]
		if !ok || last.ReferenceType != domain.ReferenceBill || last.ReferenceID != bill.BillID {
			continue
		}
		if _, done := restoreCost[mv.ProductID]; !done {
			restoreCost[mv.ProductID] = mv.CostBefore
		}
	}

	now := time.Now().UTC()
	movements := make([]domain.InventoryMovement, 0, len(receipts))
	touched := make(map[string]bool)
	for _, mv := range receipts {
		product := products[mv.ProductID]
		newOnHand := product.QuantityOnHand.Sub(mv.Quantity)
		if newOnHand.IsNegative() {
			return nil, fmt.Errorf("%w: cannot reverse %s of %s, only %s on hand",
				apperrors.ErrConflict, mv.Quantity.String(), product.SKU, product.QuantityOnHand.String())
		}

		movements = append(movements, domain.InventoryMovement{
			MovementID:    uuid.NewString(),
			WorkplaceID:   bill.WorkplaceID,
			ProductID:     product.ProductID,
			MovementType:  domain.MovementAdjustment,
			Quantity:      mv.Quantity.Neg(),
			UnitCost:      mv.UnitCost,
			TotalCost:     mv.TotalCost.Neg(),
			CostBefore:    product.CostPrice,
			ReferenceType: domain.ReferenceBillVoid,
			ReferenceID:   bill.BillID,
			BillLineID:    mv.BillLineID,
			LocationID:    mv.LocationID,
			CreatedAt:     now,
			CreatedBy:     userID,
		})

		product.QuantityOnHand = newOnHand
		if cost, ok := restoreCost[product.ProductID]; ok {
			product.CostPrice = cost
		}
		product.Touch(userID, now)
		products[product.ProductID] = product
		touched[product.ProductID] = true

		if mv.LocationID != nil && *mv.LocationID != "" {
			if err := s.productRepo.AdjustStockLocationInTx(ctx, tx, bill.WorkplaceID, product.ProductID, *mv.LocationID, mv.Quantity.Neg(), userID, now); err != nil {
				return nil, err
			}
		}
	}

	if err := s.saveStock(ctx, tx, products, touched, movements); err != nil {
		return nil, err
	}

	reversal := &domain.InventoryReversal{Reversed: true, Movements: movements}
	original, err := s.journalRepo.FindOriginalJournalByReference(ctx, tx, bill.WorkplaceID, domain.ReferenceBill, bill.BillID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			logger.Info("Bill inventory reversed, no receipt journal to reverse", slog.Int("movements", len(movements)))
			return reversal, nil
		}
		return nil, err
	}
	reversingEntry, err := s.journalSvc.ReverseInTx(ctx, tx, bill.WorkplaceID, original.JournalEntryID, userID)
	if err != nil {
		return nil, err
	}
	reversal.JournalEntryID = &reversingEntry.JournalEntryID

	logger.Info("Bill inventory reversed",
		slog.Int("movements", len(movements)),
		slog.String("journal_entry_id", reversingEntry.JournalEntryID))
	return reversal, nil
}

// reverseReceiptJournal handles bills that moved no stock: only the expense entry of
// untracked products, if any, has to be undone.
func (s *inventoryService) reverseReceiptJournal(ctx context.Context, tx pgx.Tx, bill domain.Bill, userID string) (*domain.InventoryReversal, error) {
	reversal := &domain.InventoryReversal{Reversed: false, Movements: []domain.InventoryMovement{}}
	original, err := s.journalRepo.FindOriginalJournalByReference(ctx, tx, bill.WorkplaceID, domain.ReferenceBill, bill.BillID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return reversal, nil
		}
		return nil, err
	}
	reversingEntry, err := s.journalSvc.ReverseInTx(ctx, tx, bill.WorkplaceID, original.JournalEntryID, userID)
	if err != nil {
		return nil, err
	}
	reversal.Reversed = true
	reversal.JournalEntryID = &reversingEntry.JournalEntryID
	return reversal, nil
}

func (s *inventoryService) lockProducts(ctx context.Context, tx pgx.Tx, workplaceID string, productIDs []string) (map[string]domain.Product, error) {
	products, err := s.productRepo.FindProductsByIDsForUpdate(ctx, tx, workplaceID, productIDs)
	if err != nil {
		return nil, err
	}
	for _, id := range productIDs {
		if _, ok := products[id]; !ok {
			return nil, apperrors.NewValidationError(fmt.Sprintf("product %s not found in workplace", id))
		}
	}
	return products, nil
}

func (s *inventoryService) saveStock(ctx context.Context, tx pgx.Tx, products map[string]domain.Product, touched map[string]bool, movements []domain.InventoryMovement) error {
	ids := make([]string, 0, len(touched))
	for id := range touched {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	for _, id := range ids {
		if err := s.productRepo.UpdateProductStockInTx(ctx, tx, products[id]); err != nil {
			return err
		}
	}
	return s.movementRepo.SaveMovementsInTx(ctx, tx, movements)
}

// assignPostingAccounts points stock lines at the inventory account and expense lines at
// the purchase expense account, resolving only the accounts that are needed.
func (s *inventoryService) assignPostingAccounts(ctx context.Context, tx pgx.Tx, workplaceID string, stockLines, expenseLines []domain.JournalLine) ([]domain.JournalLine, error) {
	out := make([]domain.JournalLine, 0, len(stockLines)+len(expenseLines)+1)
	if len(stockLines) > 0 {
		inventory, err := s.resolveAccount(ctx, tx, workplaceID, s.postingAccounts.InventoryCode, "inventory")
		if err != nil {
			return nil, err
		}
		for _, l := range stockLines {
			l.AccountID = inventory.AccountID
			out = append(out, l)
		}
	}
	if len(expenseLines) > 0 {
		expense, err := s.resolveAccount(ctx, tx, workplaceID, s.postingAccounts.ExpenseCode, "purchase expense")
		if err != nil {
			return nil, err
		}
		for _, l := range expenseLines {
			l.AccountID = expense.AccountID
			out = append(out, l)
		}
	}
	return out, nil
}

func (s *inventoryService) resolveAccount(ctx context.Context, tx pgx.Tx, workplaceID, cfid, purpose string) (*domain.Account, error) {
	acc, err := s.accountRepo.FindAccountByCFID(ctx, tx, workplaceID, cfid)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, apperrors.NewValidationError(fmt.Sprintf("%s account %s is not set up in this workplace", purpose, cfid))
		}
		return nil, err
	}
	return acc, nil
}

// inventoryLines returns the stock-affecting lines in line number order.
func inventoryLines(lines []domain.BillLine) []domain.BillLine {
	out := make([]domain.BillLine, 0, len(lines))
	for _, l := range lines {
		if l.AffectsInventory() {
			out = append(out, l)
		}
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].LineNumber < out[j].LineNumber })
	return out
}

func productIDsOfLines(lines []domain.BillLine) []string {
	seen := make(map[string]bool)
	ids := make([]string, 0, len(lines))
	for _, l := range lines {
		if !seen[*l.ProductID] {
			seen[*l.ProductID] = true
			ids = append(ids, *l.ProductID)
		}
	}
	sort.Strings(ids)
	return ids
}

// sortByBillLine orders movements by the line number of the bill line they came from.
func sortByBillLine(movements []domain.InventoryMovement, lines []domain.BillLine) {
	lineNumbers := make(map[string]int, len(lines))
	for _, l := range lines {
		lineNumbers[l.BillLineID] = l.LineNumber
	}
	rank := func(mv domain.InventoryMovement) int {
		if mv.BillLineID == nil {
			return 0
		}
		return lineNumbers[*mv.BillLineID]
	}
	sort.SliceStable(movements, func(i, j int) bool { return rank(movements[i]) < rank(movements[j]) })
}

func inventoryJournalLine(amount decimal.Decimal, description string) domain.JournalLine {
	if amount.IsNegative() {
		return domain.JournalLine{Credit: amount.Abs(), Description: description}
	}
	return domain.JournalLine{Debit: amount, Description: description}
}
