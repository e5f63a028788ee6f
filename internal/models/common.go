package models

import "time"

// AuditFields holds the audit columns shared by most tables.
type AuditFields struct {
	CreatedAt     time.Time `db:"created_at"`
	CreatedBy     string    `db:"created_by"`
	LastUpdatedAt time.Time `db:"last_updated_at"`
	LastUpdatedBy string    `db:"last_updated_by"`
}

// Workplace is a row of the workplaces table.
type Workplace struct {
	WorkplaceID         string  `db:"workplace_id"`
	Name                string  `db:"name"`
	Description         string  `db:"description"`
	DefaultCurrencyCode *string `db:"default_currency_code"`
	IsActive            bool    `db:"is_active"`
	AuditFields
}
