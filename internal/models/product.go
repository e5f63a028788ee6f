package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Product is a row of the products table.
type Product struct {
	ProductID      string          `db:"product_id"`
	WorkplaceID    string          `db:"workplace_id"`
	SKU            string          `db:"sku"`
	Name           string          `db:"name"`
	TrackInventory bool            `db:"track_inventory"`
	QuantityOnHand decimal.Decimal `db:"quantity_on_hand"`
	CostPrice      decimal.Decimal `db:"cost_price"`
	ReorderPoint   decimal.Decimal `db:"reorder_point"`
	AuditFields
}

// ProductStockLocation is a row of the product_stock_locations table.
type ProductStockLocation struct {
	ProductID     string          `db:"product_id"`
	LocationID    string          `db:"location_id"`
	WorkplaceID   string          `db:"workplace_id"`
	Quantity      decimal.Decimal `db:"quantity"`
	LastUpdatedAt time.Time       `db:"last_updated_at"`
	LastUpdatedBy string          `db:"last_updated_by"`
}

// InventoryMovement is a row of the inventory_movements table.
type InventoryMovement struct {
	MovementID    string          `db:"movement_id"`
	WorkplaceID   string          `db:"workplace_id"`
	ProductID     string          `db:"product_id"`
	MovementType  string          `db:"movement_type"`
	Quantity      decimal.Decimal `db:"quantity"`
	UnitCost      decimal.Decimal `db:"unit_cost"`
	TotalCost     decimal.Decimal `db:"total_cost"`
	CostBefore    decimal.Decimal `db:"cost_before"`
	ReferenceType string          `db:"reference_type"`
	ReferenceID   string          `db:"reference_id"`
	BillLineID    *string         `db:"bill_line_id"`
	LocationID    *string         `db:"location_id"`
	CreatedAt     time.Time       `db:"created_at"`
	CreatedBy     string          `db:"created_by"`
}
