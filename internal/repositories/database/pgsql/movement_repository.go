package pgsql

import (
	"context"
	"fmt"
	"time"

	"github.com/SscSPs/bizledger/internal/apperrors"
	"github.com/SscSPs/bizledger/internal/core/domain"
	portsrepo "github.com/SscSPs/bizledger/internal/core/ports/repositories"
	"github.com/SscSPs/bizledger/internal/models"
	"github.com/SscSPs/bizledger/internal/utils/mapping"
	"github.com/SscSPs/bizledger/internal/utils/pagination"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type PgxMovementRepository struct {
	BaseRepository
}

// newPgxMovementRepository creates a new repository for the inventory movement ledger.
func newPgxMovementRepository(pool *pgxpool.Pool) portsrepo.InventoryMovementRepository {
	return &PgxMovementRepository{BaseRepository: BaseRepository{Pool: pool}}
}

// Ensure PgxMovementRepository implements portsrepo.InventoryMovementRepository
var _ portsrepo.InventoryMovementRepository = (*PgxMovementRepository)(nil)

const movementColumns = `
	movement_id, workplace_id, product_id, movement_type, quantity, unit_cost, total_cost, cost_before,
	reference_type, reference_id, bill_line_id, location_id, created_at, created_by`

func collectMovements(rows pgx.Rows) ([]domain.InventoryMovement, error) {
	ms, err := pgx.CollectRows(rows, pgx.RowToStructByName[models.InventoryMovement])
	if err != nil {
		return nil, err
	}
	return mapping.ToDomainMovementSlice(ms), nil
}

// FindMovementsByReference retrieves the movements written for a source document.
func (r *PgxMovementRepository) FindMovementsByReference(ctx context.Context, tx pgx.Tx, workplaceID, referenceType, referenceID string) ([]domain.InventoryMovement, error) {
	query := `
		SELECT ` + movementColumns + `
		FROM inventory_movements
		WHERE workplace_id = $1 AND reference_type = $2 AND reference_id = $3
		ORDER BY created_at, movement_id;`
	rows, err := r.db(tx).Query(ctx, query, workplaceID, referenceType, referenceID)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to query movements for "+referenceType+" "+referenceID, err)
	}
	movements, err := collectMovements(rows)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to scan movements for "+referenceType+" "+referenceID, err)
	}
	return movements, nil
}

// FindLatestMovementsByProductIDs returns the most recent movement of each product.
func (r *PgxMovementRepository) FindLatestMovementsByProductIDs(ctx context.Context, tx pgx.Tx, productIDs []string) (map[string]domain.InventoryMovement, error) {
	if len(productIDs) == 0 {
		return map[string]domain.InventoryMovement{}, nil
	}
	query := `
		SELECT DISTINCT ON (product_id) ` + movementColumns + `
		FROM inventory_movements
		WHERE product_id = ANY($1)
		ORDER BY product_id, created_at DESC, movement_id DESC;`
	rows, err := r.db(tx).Query(ctx, query, productIDs)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to query latest movements", err)
	}
	movements, err := collectMovements(rows)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to scan latest movements", err)
	}
	latest := make(map[string]domain.InventoryMovement, len(movements))
	for _, mv := range movements {
		latest[mv.ProductID] = mv
	}
	return latest, nil
}

// SaveMovementsInTx inserts movements in one batch.
func (r *PgxMovementRepository) SaveMovementsInTx(ctx context.Context, tx pgx.Tx, movements []domain.InventoryMovement) error {
	if len(movements) == 0 {
		return nil
	}
	batch := &pgx.Batch{}
	query := `
		INSERT INTO inventory_movements (` + movementColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14);`
	for _, mv := range movements {
		m := mapping.ToModelMovement(mv)
		batch.Queue(query,
			m.MovementID,
			m.WorkplaceID,
			m.ProductID,
			m.MovementType,
			m.Quantity,
			m.UnitCost,
			m.TotalCost,
			m.CostBefore,
			m.ReferenceType,
			m.ReferenceID,
			m.BillLineID,
			m.LocationID,
			m.CreatedAt,
			m.CreatedBy,
		)
	}
	if err := tx.SendBatch(ctx, batch).Close(); err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("%w: inventory movements already recorded for this document", apperrors.ErrDuplicate)
		}
		return apperrors.NewAppError(500, "failed to insert inventory movements", err)
	}
	return nil
}

// ListMovementsByProduct returns a product's movements newest first. The page token
// encodes the created_at and movement_id of the last row returned.
func (r *PgxMovementRepository) ListMovementsByProduct(ctx context.Context, workplaceID, productID string, limit int, nextToken *string) ([]domain.InventoryMovement, *string, error) {
	args := []any{workplaceID, productID}
	where := `WHERE workplace_id = $1 AND product_id = $2`

	if nextToken != nil && *nextToken != "" {
		fields, err := pagination.DecodeMultiFieldToken(*nextToken)
		if err != nil || len(fields) != 2 {
			return nil, nil, apperrors.NewValidationError("invalid pagination token")
		}
		createdAt, err := time.Parse(time.RFC3339Nano, fields[0])
		if err != nil {
			return nil, nil, apperrors.NewValidationError("invalid pagination token")
		}
		args = append(args, createdAt, fields[1])
		where += ` AND (created_at, movement_id) < ($3, $4)`
	}

	args = append(args, limit+1)
	query := `SELECT ` + movementColumns + ` FROM inventory_movements ` + where +
		fmt.Sprintf(" ORDER BY created_at DESC, movement_id DESC LIMIT $%d;", len(args))

	rows, err := r.Pool.Query(ctx, query, args...)
	if err != nil {
		return nil, nil, apperrors.NewAppError(500, "failed to query movements of product "+productID, err)
	}
	movements, err := collectMovements(rows)
	if err != nil {
		return nil, nil, apperrors.NewAppError(500, "failed to scan movements of product "+productID, err)
	}

	var token *string
	if len(movements) > limit {
		movements = movements[:limit]
		last := movements[len(movements)-1]
		t := pagination.EncodeMultiFieldToken(last.CreatedAt.Format(time.RFC3339Nano), last.MovementID)
		token = &t
	}
	return movements, token, nil
}
