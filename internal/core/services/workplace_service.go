package services

import (
	"context"
	"errors"
	"log/slog"
	"strings"
	"time"

	"github.com/SscSPs/bizledger/internal/apperrors"
	"github.com/SscSPs/bizledger/internal/core/domain"
	portsrepo "github.com/SscSPs/bizledger/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/bizledger/internal/core/ports/services"
	"github.com/google/uuid"
)

// workplaceService implements the WorkplaceSvcFacade interface
type workplaceService struct {
	BaseService
	workplaceRepo portsrepo.WorkplaceRepositoryFacade
}

// NewWorkplaceService creates a new workplace service with the provided dependencies
func NewWorkplaceService(workplaceRepo portsrepo.WorkplaceRepositoryFacade) portssvc.WorkplaceSvcFacade {
	return &workplaceService{workplaceRepo: workplaceRepo}
}

// Ensure workplaceService implements the WorkplaceSvcFacade interface
var _ portssvc.WorkplaceSvcFacade = (*workplaceService)(nil)

// FindWorkplaceByID retrieves a workplace by its ID
func (s *workplaceService) FindWorkplaceByID(ctx context.Context, workplaceID string) (*domain.Workplace, error) {
	workplace, err := s.workplaceRepo.FindWorkplaceByID(ctx, workplaceID)
	if err != nil {
		if !errors.Is(err, apperrors.ErrNotFound) {
			s.LogError(ctx, err, "Failed to find workplace by ID",
				slog.String("workplace_id", workplaceID))
		}
		return nil, err
	}
	return workplace, nil
}

// ListUserWorkplaces retrieves all workplaces a user belongs to
func (s *workplaceService) ListUserWorkplaces(ctx context.Context, userID string) ([]domain.Workplace, error) {
	workplaces, err := s.workplaceRepo.ListWorkplacesByUserID(ctx, userID)
	if err != nil {
		s.LogError(ctx, err, "Failed to list workplaces for user",
			slog.String("user_id", userID))
		return nil, err
	}
	if workplaces == nil {
		return []domain.Workplace{}, nil
	}
	return workplaces, nil
}

// CreateWorkplace creates a workplace and makes its creator an admin in the same transaction
func (s *workplaceService) CreateWorkplace(ctx context.Context, name, description, defaultCurrencyCode, creatorUserID string) (*domain.Workplace, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, apperrors.NewValidationError("workplace name is required")
	}

	now := time.Now().UTC()
	workplace := domain.Workplace{
		WorkplaceID: uuid.NewString(),
		Name:        name,
		Description: description,
		IsActive:    true,
		AuditFields: domain.NewAuditFields(creatorUserID, now),
	}
	if defaultCurrencyCode != "" {
		code := strings.ToUpper(defaultCurrencyCode)
		workplace.DefaultCurrencyCode = &code
	}

	creator := domain.UserWorkplace{
		UserID:      creatorUserID,
		WorkplaceID: workplace.WorkplaceID,
		Role:        domain.RoleAdmin,
		JoinedAt:    now,
	}
	if err := s.workplaceRepo.SaveWorkplace(ctx, workplace, creator); err != nil {
		s.LogError(ctx, err, "Failed to save workplace",
			slog.String("workplace_id", workplace.WorkplaceID))
		return nil, err
	}

	s.LogInfo(ctx, "Workplace created successfully",
		slog.String("workplace_id", workplace.WorkplaceID),
		slog.String("creator_id", creatorUserID))
	return &workplace, nil
}

// AddUserToWorkplace adds a user to a workplace with a specific role
func (s *workplaceService) AddUserToWorkplace(ctx context.Context, addingUserID, targetUserID, workplaceID string, role domain.UserWorkplaceRole) error {
	if err := s.AuthorizeUserAction(ctx, addingUserID, workplaceID, domain.RoleAdmin); err != nil {
		s.LogWarn(ctx, "User not authorized to add members to workplace",
			slog.String("adding_user_id", addingUserID),
			slog.String("workplace_id", workplaceID))
		return err
	}
	if targetUserID == "" {
		return apperrors.NewValidationError("user ID is required")
	}
	if _, ok := map[domain.UserWorkplaceRole]bool{domain.RoleAdmin: true, domain.RoleMember: true, domain.RoleReadOnly: true, domain.RoleRemoved: true}[role]; !ok {
		return apperrors.NewValidationError("invalid role " + string(role))
	}

	membership := domain.UserWorkplace{
		UserID:      targetUserID,
		WorkplaceID: workplaceID,
		Role:        role,
		JoinedAt:    time.Now().UTC(),
	}
	if err := s.workplaceRepo.AddUserToWorkplace(ctx, membership); err != nil {
		s.LogError(ctx, err, "Failed to add user to workplace",
			slog.String("target_user_id", targetUserID),
			slog.String("workplace_id", workplaceID))
		return err
	}

	s.LogInfo(ctx, "User added to workplace",
		slog.String("target_user_id", targetUserID),
		slog.String("workplace_id", workplaceID),
		slog.String("role", string(role)))
	return nil
}

// AuthorizeUserAction checks whether the user's role in the workplace satisfies requiredRole.
func (s *workplaceService) AuthorizeUserAction(ctx context.Context, userID, workplaceID string, requiredRole domain.UserWorkplaceRole) error {
	if userID == "" {
		return apperrors.NewAppError(401, "user not authenticated", apperrors.ErrUnauthorized)
	}

	membership, err := s.workplaceRepo.FindUserWorkplaceRole(ctx, userID, workplaceID)
	if err != nil {
		if !errors.Is(err, apperrors.ErrNotFound) {
			s.LogError(ctx, err, "Failed to look up workplace membership",
				slog.String("user_id", userID),
				slog.String("workplace_id", workplaceID))
		}
		return err
	}

	if membership.Role == domain.RoleRemoved {
		return apperrors.NewNotFoundError("workplace not found")
	}
	if !membership.Role.Satisfies(requiredRole) {
		s.LogDebug(ctx, "Insufficient workplace role",
			slog.String("user_id", userID),
			slog.String("workplace_id", workplaceID),
			slog.String("role", string(membership.Role)),
			slog.String("required_role", string(requiredRole)))
		return apperrors.NewAppError(403, "user does not have the required role in this workplace", apperrors.ErrForbidden)
	}
	return nil
}
