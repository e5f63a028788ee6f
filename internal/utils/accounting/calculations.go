package accounting

import (
	"fmt"

	"github.com/SscSPs/bizledger/internal/apperrors"
	"github.com/SscSPs/bizledger/internal/core/domain"
	"github.com/shopspring/decimal"
)

// BalanceTolerance is the largest debit/credit difference accepted for a journal entry.
var BalanceTolerance = decimal.New(1, -2)

// costPrecision is the number of decimal places kept on weighted-average unit costs.
const costPrecision = 6

// CalculateSignedAmount returns the effect of a journal line on the balance of an account
// of the given type. Debits increase asset and expense accounts; credits increase the rest.
func CalculateSignedAmount(line domain.JournalLine, accountType domain.AccountType) (decimal.Decimal, error) {
	net := line.Debit.Sub(line.Credit)
	switch accountType {
	case domain.Asset, domain.Expense:
		return net, nil
	case domain.Liability, domain.Equity, domain.Revenue:
		return net.Neg(), nil
	default:
		return decimal.Zero, fmt.Errorf("unknown account type '%s' encountered for account ID %s", accountType, line.AccountID)
	}
}

// SumSides totals the debit and credit columns.
func SumSides(lines []domain.JournalLine) (debits, credits decimal.Decimal) {
	debits, credits = decimal.Zero, decimal.Zero
	for _, l := range lines {
		debits = debits.Add(l.Debit)
		credits = credits.Add(l.Credit)
	}
	return debits, credits
}

// ValidateJournalLines checks the shape and balance of a set of journal lines.
// Shape problems are validation errors; a debit/credit mismatch beyond BalanceTolerance
// is an unbalanced-entry error.
func ValidateJournalLines(lines []domain.JournalLine) error {
	if len(lines) < 2 {
		return fmt.Errorf("%w: journal entry must have at least two lines", apperrors.ErrValidation)
	}

	for i, l := range lines {
		if l.AccountID == "" {
			return fmt.Errorf("%w: line %d has no account", apperrors.ErrValidation, i+1)
		}
		if l.Debit.IsNegative() || l.Credit.IsNegative() {
			return fmt.Errorf("%w: line %d has a negative amount", apperrors.ErrValidation, i+1)
		}
		if l.Debit.IsZero() == l.Credit.IsZero() {
			return fmt.Errorf("%w: line %d must have exactly one of debit or credit", apperrors.ErrValidation, i+1)
		}
	}

	debits, credits := SumSides(lines)
	if debits.Sub(credits).Abs().GreaterThan(BalanceTolerance) {
		return apperrors.NewUnbalancedEntryError(debits.StringFixed(2), credits.StringFixed(2))
	}
	return nil
}

// WeightedAverage applies a receipt of qty units at unitCost to a stock position of
// onHand units valued at cost. A negative qty is a return: it leaves at the current cost,
// so only the quantity changes. When the resulting position is zero the previous cost is kept.
func WeightedAverage(onHand, cost, qty, unitCost decimal.Decimal) (newOnHand, newCost decimal.Decimal) {
	newOnHand = onHand.Add(qty)
	if newOnHand.IsZero() || !qty.IsPositive() {
		return newOnHand, cost
	}
	value := onHand.Mul(cost).Add(qty.Mul(unitCost))
	return newOnHand, value.DivRound(newOnHand, costPrecision)
}

// LineValue is the extended value of qty units at unitCost as posted to the ledger.
func LineValue(qty, unitCost decimal.Decimal) decimal.Decimal {
	return qty.Mul(unitCost).Round(4)
}
