package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// MovementType classifies an inventory movement.
type MovementType string

const (
	MovementPurchase   MovementType = "purchase"
	MovementSale       MovementType = "sale"
	MovementAdjustment MovementType = "adjustment"
	MovementReturn     MovementType = "return"
	MovementTransfer   MovementType = "transfer"
)

// Product holds the inventory valuation state of a stock item.
type Product struct {
	ProductID      string          `json:"productID"`
	WorkplaceID    string          `json:"workplaceID"`
	SKU            string          `json:"sku"`
	Name           string          `json:"name"`
	TrackInventory bool            `json:"trackInventory"`
	QuantityOnHand decimal.Decimal `json:"quantityOnHand"`
	CostPrice      decimal.Decimal `json:"costPrice"` // Weighted-average unit cost
	ReorderPoint   decimal.Decimal `json:"reorderPoint"`
	AuditFields
}

// BelowReorderPoint reports whether stock has fallen to or under the reorder point.
func (p Product) BelowReorderPoint() bool {
	return p.ReorderPoint.IsPositive() && p.QuantityOnHand.LessThanOrEqual(p.ReorderPoint)
}

// ProductStockLocation is the per-location quantity of a product.
type ProductStockLocation struct {
	ProductID     string          `json:"productID"`
	LocationID    string          `json:"locationID"`
	WorkplaceID   string          `json:"workplaceID"`
	Quantity      decimal.Decimal `json:"quantity"`
	LastUpdatedAt time.Time       `json:"lastUpdatedAt"`
	LastUpdatedBy string          `json:"lastUpdatedBy"`
}

// InventoryMovement is an immutable record of a stock change.
type InventoryMovement struct {
	MovementID    string          `json:"movementID"`
	WorkplaceID   string          `json:"workplaceID"`
	ProductID     string          `json:"productID"`
	MovementType  MovementType    `json:"movementType"`
	Quantity      decimal.Decimal `json:"quantity"` // Signed
	UnitCost      decimal.Decimal `json:"unitCost"`
	TotalCost     decimal.Decimal `json:"totalCost"` // Quantity * UnitCost, signed
	CostBefore    decimal.Decimal `json:"costBefore"`
	ReferenceType string          `json:"referenceType"`
	ReferenceID   string          `json:"referenceID"`
	BillLineID    *string         `json:"billLineID,omitempty"`
	LocationID    *string         `json:"locationID,omitempty"`
	CreatedAt     time.Time       `json:"createdAt"`
	CreatedBy     string          `json:"createdBy"`
}

// InventoryResult summarises the stock receipt for a bill.
type InventoryResult struct {
	Movements        []InventoryMovement `json:"movements"`
	JournalEntryID   *string             `json:"journalEntryId"`
	AlreadyProcessed bool                `json:"alreadyProcessed"`
}

// InventoryReversal summarises the stock reversal for a voided bill.
type InventoryReversal struct {
	Reversed       bool                `json:"reversed"`
	JournalEntryID *string             `json:"journalEntryId"`
	Movements      []InventoryMovement `json:"movements,omitempty"`
}
