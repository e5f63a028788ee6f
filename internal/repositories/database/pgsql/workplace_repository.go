package pgsql

import (
	"context"
	"errors"

	"github.com/SscSPs/bizledger/internal/apperrors"
	"github.com/SscSPs/bizledger/internal/core/domain"
	portsrepo "github.com/SscSPs/bizledger/internal/core/ports/repositories"
	"github.com/SscSPs/bizledger/internal/models"
	"github.com/SscSPs/bizledger/internal/utils/mapping"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type PgxWorkplaceRepository struct {
	BaseRepository
}

// newPgxWorkplaceRepository creates a new repository for workplace data.
func newPgxWorkplaceRepository(pool *pgxpool.Pool) portsrepo.WorkplaceRepositoryFacade {
	return &PgxWorkplaceRepository{
		BaseRepository: BaseRepository{Pool: pool},
	}
}

// Ensure PgxWorkplaceRepository implements portsrepo.WorkplaceRepositoryFacade
var _ portsrepo.WorkplaceRepositoryFacade = (*PgxWorkplaceRepository)(nil)

const workplaceSelectQuery = `
SELECT
	w.workplace_id, w.name, w.description, w.default_currency_code, w.is_active,
	w.created_at, w.created_by, w.last_updated_at, w.last_updated_by
FROM workplaces w
`

// getWorkplaces runs the workplace select with the given filter appended
func (r *PgxWorkplaceRepository) getWorkplaces(ctx context.Context, filterQuery string, args ...any) ([]domain.Workplace, error) {
	rows, err := r.Pool.Query(ctx, workplaceSelectQuery+filterQuery, args...)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to query workplaces", err)
	}
	modelWorkplaces, err := pgx.CollectRows(rows, pgx.RowToStructByName[models.Workplace])
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to collect workplace rows", err)
	}
	return mapping.ToDomainWorkplaceSlice(modelWorkplaces), nil
}

// SaveWorkplace inserts the workplace and its creator's membership in one transaction.
func (r *PgxWorkplaceRepository) SaveWorkplace(ctx context.Context, workplace domain.Workplace, creator domain.UserWorkplace) error {
	tx, err := r.Begin(ctx)
	if err != nil {
		return err
	}
	defer r.Rollback(ctx, tx)

	_, err = tx.Exec(ctx, `
		INSERT INTO workplaces (
			workplace_id, name, description, default_currency_code, is_active,
			created_at, created_by, last_updated_at, last_updated_by
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9);`,
		workplace.WorkplaceID,
		workplace.Name,
		workplace.Description,
		workplace.DefaultCurrencyCode,
		workplace.IsActive,
		workplace.CreatedAt,
		workplace.CreatedBy,
		workplace.LastUpdatedAt,
		workplace.LastUpdatedBy,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return apperrors.NewAppError(409, "workplace ID "+workplace.WorkplaceID+" already exists", apperrors.ErrDuplicate)
		}
		return apperrors.NewAppError(500, "failed to save workplace "+workplace.WorkplaceID, err)
	}

	if err := r.insertMembership(ctx, tx, creator); err != nil {
		return err
	}
	return r.Commit(ctx, tx)
}

func (r *PgxWorkplaceRepository) FindWorkplaceByID(ctx context.Context, workplaceID string) (*domain.Workplace, error) {
	workplaces, err := r.getWorkplaces(ctx, `WHERE w.workplace_id = $1`, workplaceID)
	if err != nil {
		return nil, err
	}
	if len(workplaces) == 0 {
		return nil, apperrors.NewNotFoundError("workplace not found")
	}
	return &workplaces[0], nil
}

// AddUserToWorkplace adds a member or updates the role of an existing one.
func (r *PgxWorkplaceRepository) AddUserToWorkplace(ctx context.Context, membership domain.UserWorkplace) error {
	return r.insertMembership(ctx, r.Pool, membership)
}

func (r *PgxWorkplaceRepository) insertMembership(ctx context.Context, q querier, membership domain.UserWorkplace) error {
	query := `
		INSERT INTO user_workplaces (user_id, workplace_id, role, joined_at)
		VALUES ($1, $2, $3, $4)
		ON CONFLICT (user_id, workplace_id) DO UPDATE SET role = EXCLUDED.role;
	`
	_, err := q.Exec(ctx, query,
		membership.UserID,
		membership.WorkplaceID,
		membership.Role,
		membership.JoinedAt,
	)
	if err != nil {
		if isForeignKeyViolation(err) {
			return apperrors.NewNotFoundError("workplace not found")
		}
		return apperrors.NewAppError(500, "failed to add/update user "+membership.UserID+" in workplace "+membership.WorkplaceID, err)
	}
	return nil
}

func (r *PgxWorkplaceRepository) FindUserWorkplaceRole(ctx context.Context, userID, workplaceID string) (*domain.UserWorkplace, error) {
	query := `
		SELECT user_id, workplace_id, role, joined_at
		FROM user_workplaces
		WHERE user_id = $1 AND workplace_id = $2;
	`
	var uw domain.UserWorkplace
	err := r.Pool.QueryRow(ctx, query, userID, workplaceID).Scan(
		&uw.UserID,
		&uw.WorkplaceID,
		&uw.Role,
		&uw.JoinedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			// Absence of a membership is reported as a missing workplace so ids are not leaked.
			return nil, apperrors.NewNotFoundError("workplace not found")
		}
		return nil, apperrors.NewAppError(500, "failed to find user "+userID+" workplace role in "+workplaceID, err)
	}
	return &uw, nil
}

// ListWorkplacesByUserID lists the active workplaces the user has not been removed from.
func (r *PgxWorkplaceRepository) ListWorkplacesByUserID(ctx context.Context, userID string) ([]domain.Workplace, error) {
	query := `
		JOIN user_workplaces uw ON w.workplace_id = uw.workplace_id
		WHERE uw.user_id = $1 AND uw.role <> $2 AND w.is_active = true
		ORDER BY w.name;`
	return r.getWorkplaces(ctx, query, userID, domain.RoleRemoved)
}
