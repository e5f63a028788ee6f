package accounting

import (
	"errors"
	"testing"

	"github.com/SscSPs/bizledger/internal/apperrors"
	"github.com/SscSPs/bizledger/internal/core/domain"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func d(s string) decimal.Decimal { return decimal.RequireFromString(s) }

func line(account, debit, credit string) domain.JournalLine {
	return domain.JournalLine{AccountID: account, Debit: d(debit), Credit: d(credit)}
}

func TestCalculateSignedAmount(t *testing.T) {
	debit := line("a", "10", "0")
	credit := line("a", "0", "10")

	got, err := CalculateSignedAmount(debit, domain.Asset)
	require.NoError(t, err)
	assert.True(t, got.Equal(d("10")))

	got, err = CalculateSignedAmount(credit, domain.Asset)
	require.NoError(t, err)
	assert.True(t, got.Equal(d("-10")))

	got, err = CalculateSignedAmount(credit, domain.Liability)
	require.NoError(t, err)
	assert.True(t, got.Equal(d("10")))

	_, err = CalculateSignedAmount(debit, domain.AccountType("BOGUS"))
	assert.Error(t, err)
}

func TestValidateJournalLines(t *testing.T) {
	tests := []struct {
		name    string
		lines   []domain.JournalLine
		wantErr error
	}{
		{"balanced", []domain.JournalLine{line("inv", "50", "0"), line("ap", "0", "50")}, nil},
		{"within tolerance", []domain.JournalLine{line("inv", "50.005", "0"), line("ap", "0", "50")}, nil},
		{"single line", []domain.JournalLine{line("inv", "50", "0")}, apperrors.ErrValidation},
		{"both sides set", []domain.JournalLine{line("inv", "50", "50"), line("ap", "0", "50")}, apperrors.ErrValidation},
		{"neither side set", []domain.JournalLine{line("inv", "0", "0"), line("ap", "0", "50")}, apperrors.ErrValidation},
		{"negative", []domain.JournalLine{line("inv", "-50", "0"), line("ap", "0", "50")}, apperrors.ErrValidation},
		{"missing account", []domain.JournalLine{line("", "50", "0"), line("ap", "0", "50")}, apperrors.ErrValidation},
		{"unbalanced", []domain.JournalLine{line("inv", "50", "0"), line("ap", "0", "49.98")}, apperrors.ErrUnbalancedEntry},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateJournalLines(tt.lines)
			if tt.wantErr == nil {
				assert.NoError(t, err)
				return
			}
			assert.True(t, errors.Is(err, tt.wantErr), "got %v", err)
		})
	}
}

func TestWeightedAverage(t *testing.T) {
	tests := []struct {
		name                        string
		onHand, cost, qty, unitCost string
		wantOnHand, wantCost        string
	}{
		{"first receipt", "0", "0", "10", "5.00", "10", "5"},
		{"blend", "10", "5.00", "10", "7.00", "20", "6"},
		{"uneven blend", "3", "2.00", "1", "3.00", "4", "2.25"},
		{"return", "20", "6.00", "-5", "6.00", "15", "6"},
		{"return above pool cost keeps cost", "10", "5.00", "-9", "50.00", "1", "5"},
		{"return below pool cost keeps cost", "10", "5.00", "-4", "1.00", "6", "5"},
		{"back to zero keeps cost", "10", "5.00", "-10", "7.00", "0", "5"},
		{"repeating decimal rounds", "1", "1.00", "2", "1.00", "3", "1"},
		{"thirds", "2", "1.00", "1", "2.00", "3", "1.333333"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			onHand, cost := WeightedAverage(d(tt.onHand), d(tt.cost), d(tt.qty), d(tt.unitCost))
			assert.True(t, onHand.Equal(d(tt.wantOnHand)), "on hand %s", onHand)
			assert.True(t, cost.Equal(d(tt.wantCost)), "cost %s", cost)
		})
	}
}

func TestLineValue(t *testing.T) {
	assert.True(t, LineValue(d("3"), d("1.33333")).Equal(d("4")))
	assert.True(t, LineValue(d("-9"), d("50")).Equal(d("-450")))
	assert.True(t, LineValue(d("0.5"), d("0.00015")).Equal(d("0.0001")))
}

func TestSumSides(t *testing.T) {
	debits, credits := SumSides([]domain.JournalLine{line("a", "10", "0"), line("b", "5", "0"), line("c", "0", "15")})
	assert.True(t, debits.Equal(d("15")))
	assert.True(t, credits.Equal(d("15")))
}
