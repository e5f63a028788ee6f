package models

import (
	"github.com/shopspring/decimal"
)

// Account is a row of the accounts table.
type Account struct {
	AccountID       string          `db:"account_id"`
	WorkplaceID     string          `db:"workplace_id"`
	CFID            string          `db:"cfid"` // Customer Facing ID, unique per workplace
	Name            string          `db:"name"`
	AccountType     string          `db:"account_type"`
	CurrencyCode    string          `db:"currency_code"`
	ParentAccountID *string         `db:"parent_account_id"` // Nullable
	Description     string          `db:"description"`
	IsActive        bool            `db:"is_active"`
	Balance         decimal.Decimal `db:"balance"`
	AuditFields
}
