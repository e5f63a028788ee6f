package pgsql

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/SscSPs/bizledger/internal/apperrors"
	"github.com/SscSPs/bizledger/internal/core/domain"
	portsrepo "github.com/SscSPs/bizledger/internal/core/ports/repositories"
	"github.com/SscSPs/bizledger/internal/models"
	"github.com/SscSPs/bizledger/internal/utils/mapping"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"
)

type PgxProductRepository struct {
	BaseRepository
}

// newPgxProductRepository creates a new repository for products and their stock locations.
func newPgxProductRepository(pool *pgxpool.Pool) portsrepo.ProductRepositoryFacade {
	return &PgxProductRepository{BaseRepository: BaseRepository{Pool: pool}}
}

// Ensure PgxProductRepository implements portsrepo.ProductRepositoryFacade
var _ portsrepo.ProductRepositoryFacade = (*PgxProductRepository)(nil)

const productColumns = `
	product_id, workplace_id, sku, name, track_inventory, quantity_on_hand, cost_price, reorder_point,
	created_at, created_by, last_updated_at, last_updated_by`

// SaveProduct inserts a new product.
func (r *PgxProductRepository) SaveProduct(ctx context.Context, product domain.Product) error {
	m := mapping.ToModelProduct(product)
	_, err := r.Pool.Exec(ctx, `
		INSERT INTO products (`+productColumns+`)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12);`,
		m.ProductID,
		m.WorkplaceID,
		m.SKU,
		m.Name,
		m.TrackInventory,
		m.QuantityOnHand,
		m.CostPrice,
		m.ReorderPoint,
		m.CreatedAt,
		m.CreatedBy,
		m.LastUpdatedAt,
		m.LastUpdatedBy,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("%w: product with SKU %s already exists", apperrors.ErrDuplicate, m.SKU)
		}
		return apperrors.NewAppError(500, "failed to save product "+m.ProductID, err)
	}
	return nil
}

// FindProductByID retrieves a product within a workplace.
func (r *PgxProductRepository) FindProductByID(ctx context.Context, workplaceID, productID string) (*domain.Product, error) {
	rows, err := r.Pool.Query(ctx, `SELECT `+productColumns+` FROM products WHERE workplace_id = $1 AND product_id = $2;`, workplaceID, productID)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to query product "+productID, err)
	}
	m, err := pgx.CollectExactlyOneRow(rows, pgx.RowToStructByName[models.Product])
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewNotFoundError("product not found")
		}
		return nil, apperrors.NewAppError(500, "failed to scan product "+productID, err)
	}
	p := mapping.ToDomainProduct(m)
	return &p, nil
}

// ListStockLocations retrieves the per-location quantities of a product.
func (r *PgxProductRepository) ListStockLocations(ctx context.Context, productID string) ([]domain.ProductStockLocation, error) {
	query := `
		SELECT product_id, location_id, workplace_id, quantity, last_updated_at, last_updated_by
		FROM product_stock_locations
		WHERE product_id = $1
		ORDER BY location_id;`
	rows, err := r.Pool.Query(ctx, query, productID)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to query stock locations of product "+productID, err)
	}
	modelLocations, err := pgx.CollectRows(rows, pgx.RowToStructByName[models.ProductStockLocation])
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to scan stock locations of product "+productID, err)
	}
	locations := make([]domain.ProductStockLocation, len(modelLocations))
	for i, m := range modelLocations {
		locations[i] = mapping.ToDomainStockLocation(m)
	}
	return locations, nil
}

// FindProductsByIDsForUpdate locks products in product id order so concurrent bills
// touching the same products cannot deadlock.
func (r *PgxProductRepository) FindProductsByIDsForUpdate(ctx context.Context, tx pgx.Tx, workplaceID string, productIDs []string) (map[string]domain.Product, error) {
	if len(productIDs) == 0 {
		return map[string]domain.Product{}, nil
	}
	query := `
		SELECT ` + productColumns + `
		FROM products
		WHERE workplace_id = $1 AND product_id = ANY($2)
		ORDER BY product_id
		FOR UPDATE;`
	rows, err := tx.Query(ctx, query, workplaceID, productIDs)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to lock products", err)
	}
	modelProducts, err := pgx.CollectRows(rows, pgx.RowToStructByName[models.Product])
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to scan locked products", err)
	}
	products := make(map[string]domain.Product, len(modelProducts))
	for _, m := range modelProducts {
		products[m.ProductID] = mapping.ToDomainProduct(m)
	}
	return products, nil
}

// UpdateProductStockInTx persists quantity on hand and cost price.
func (r *PgxProductRepository) UpdateProductStockInTx(ctx context.Context, tx pgx.Tx, product domain.Product) error {
	query := `
		UPDATE products
		SET quantity_on_hand = $1, cost_price = $2, last_updated_at = $3, last_updated_by = $4
		WHERE product_id = $5;`
	tag, err := tx.Exec(ctx, query,
		product.QuantityOnHand,
		product.CostPrice,
		product.LastUpdatedAt,
		product.LastUpdatedBy,
		product.ProductID,
	)
	if err != nil {
		return apperrors.NewAppError(500, "failed to update stock of product "+product.ProductID, err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.NewNotFoundError("product " + product.ProductID + " not found")
	}
	return nil
}

// AdjustStockLocationInTx adds delta to the quantity held at a location.
func (r *PgxProductRepository) AdjustStockLocationInTx(ctx context.Context, tx pgx.Tx, workplaceID, productID, locationID string, delta decimal.Decimal, userID string, now time.Time) error {
	query := `
		INSERT INTO product_stock_locations (product_id, location_id, workplace_id, quantity, last_updated_at, last_updated_by)
		VALUES ($1, $2, $3, $4, $5, $6)
		ON CONFLICT (product_id, location_id) DO UPDATE
		SET quantity = product_stock_locations.quantity + EXCLUDED.quantity,
		    last_updated_at = EXCLUDED.last_updated_at,
		    last_updated_by = EXCLUDED.last_updated_by;`
	if _, err := tx.Exec(ctx, query, productID, locationID, workplaceID, delta, now, userID); err != nil {
		return apperrors.NewAppError(500, "failed to adjust stock of product "+productID+" at location "+locationID, err)
	}
	return nil
}
