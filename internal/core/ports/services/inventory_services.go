package services

import (
	"context"

	"github.com/SscSPs/bizledger/internal/core/domain"
	"github.com/SscSPs/bizledger/internal/dto"
	"github.com/jackc/pgx/v5"
)

// InventoryValuationSvc applies weighted-average costing to bill receipts and reversals.
// Both operations run inside the caller's transaction.
type InventoryValuationSvc interface {
	// ProcessBillInventory receives the bill's inventory lines into stock and posts the
	// aggregate journal entry. Calling it again for the same bill returns the earlier result.
	ProcessBillInventory(ctx context.Context, tx pgx.Tx, bill domain.Bill, userID string) (*domain.InventoryResult, error)

	// ReverseBillInventory takes the bill's receipts back out of stock and reverses the
	// receipt journal entry. Calling it again for the same bill is a no-op.
	ReverseBillInventory(ctx context.Context, tx pgx.Tx, bill domain.Bill, userID string) (*domain.InventoryReversal, error)
}

// ProductSvc defines product operations
type ProductSvc interface {
	// CreateProduct creates a stock item with zero quantity.
	CreateProduct(ctx context.Context, workplaceID string, req dto.CreateProductRequest, userID string) (*domain.Product, error)

	// GetProduct retrieves a product with its per-location stock.
	GetProduct(ctx context.Context, workplaceID, productID, userID string) (*domain.Product, []domain.ProductStockLocation, error)

	// ListMovements retrieves a page of the product's inventory movements.
	ListMovements(ctx context.Context, workplaceID, productID, userID string, params dto.ListMovementsParams) (*dto.ListMovementsResponse, error)
}

// InventorySvcFacade combines all inventory-related service interfaces
type InventorySvcFacade interface {
	InventoryValuationSvc
	ProductSvc
}
