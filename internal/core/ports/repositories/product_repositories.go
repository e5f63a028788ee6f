package repositories

import (
	"context"
	"time"

	"github.com/SscSPs/bizledger/internal/core/domain"
	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"
)

// ProductReader defines read operations for product data
type ProductReader interface {
	// FindProductByID retrieves a product within a workplace.
	FindProductByID(ctx context.Context, workplaceID, productID string) (*domain.Product, error)

	// ListStockLocations retrieves the per-location quantities of a product.
	ListStockLocations(ctx context.Context, productID string) ([]domain.ProductStockLocation, error)
}

// ProductWriter defines write operations for product data
type ProductWriter interface {
	// SaveProduct persists a new product. A SKU clash yields apperrors.ErrDuplicate.
	SaveProduct(ctx context.Context, product domain.Product) error
}

// ProductStockSupport defines the stock-changing operations used during inventory processing.
type ProductStockSupport interface {
	// FindProductsByIDsForUpdate locks the given products in product id order and returns them.
	FindProductsByIDsForUpdate(ctx context.Context, tx pgx.Tx, workplaceID string, productIDs []string) (map[string]domain.Product, error)

	// UpdateProductStockInTx persists quantity on hand and cost price.
	UpdateProductStockInTx(ctx context.Context, tx pgx.Tx, product domain.Product) error

	// AdjustStockLocationInTx adds delta to the product's quantity at a location, creating the row if needed.
	AdjustStockLocationInTx(ctx context.Context, tx pgx.Tx, workplaceID, productID, locationID string, delta decimal.Decimal, userID string, now time.Time) error
}

// ProductRepositoryFacade combines all product-related repository interfaces
type ProductRepositoryFacade interface {
	ProductReader
	ProductWriter
	ProductStockSupport
}

// InventoryMovementRepository stores the append-only stock audit trail.
type InventoryMovementRepository interface {
	// FindMovementsByReference retrieves the movements written for a source document, oldest first. tx may be nil.
	FindMovementsByReference(ctx context.Context, tx pgx.Tx, workplaceID, referenceType, referenceID string) ([]domain.InventoryMovement, error)

	// FindLatestMovementsByProductIDs returns the most recent movement of each product.
	FindLatestMovementsByProductIDs(ctx context.Context, tx pgx.Tx, productIDs []string) (map[string]domain.InventoryMovement, error)

	// SaveMovementsInTx inserts movements. A clash on the source line yields apperrors.ErrDuplicate.
	SaveMovementsInTx(ctx context.Context, tx pgx.Tx, movements []domain.InventoryMovement) error

	// ListMovementsByProduct retrieves a page of a product's movements, newest first.
	// It returns the movements, a token for the next page, and an error.
	ListMovementsByProduct(ctx context.Context, workplaceID, productID string, limit int, nextToken *string) ([]domain.InventoryMovement, *string, error)
}
