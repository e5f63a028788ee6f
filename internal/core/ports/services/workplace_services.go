package services

import (
	"context"

	"github.com/SscSPs/bizledger/internal/core/domain"
)

// WorkplaceReaderSvc defines read operations for workplace data
type WorkplaceReaderSvc interface {
	// FindWorkplaceByID retrieves a workplace by its ID.
	FindWorkplaceByID(ctx context.Context, workplaceID string) (*domain.Workplace, error)

	// ListUserWorkplaces retrieves all workplaces a user belongs to.
	ListUserWorkplaces(ctx context.Context, userID string) ([]domain.Workplace, error)
}

// WorkplaceWriterSvc defines write operations for workplace data
type WorkplaceWriterSvc interface {
	// CreateWorkplace creates a workplace and makes the creator its admin.
	CreateWorkplace(ctx context.Context, name, description, defaultCurrencyCode, creatorUserID string) (*domain.Workplace, error)

	// AddUserToWorkplace adds a user to a workplace. The adding user must be an admin.
	AddUserToWorkplace(ctx context.Context, addingUserID, targetUserID, workplaceID string, role domain.UserWorkplaceRole) error
}

// WorkplaceAuthorizerSvc defines authorization operations
type WorkplaceAuthorizerSvc interface {
	// AuthorizeUserAction checks that the user holds at least requiredRole in the workplace.
	// Returns apperrors.ErrNotFound when the user is not a member and apperrors.ErrForbidden
	// when the role is insufficient.
	AuthorizeUserAction(ctx context.Context, userID, workplaceID string, requiredRole domain.UserWorkplaceRole) error
}

// WorkplaceSvcFacade combines all workplace-related service interfaces
type WorkplaceSvcFacade interface {
	WorkplaceReaderSvc
	WorkplaceWriterSvc
	WorkplaceAuthorizerSvc
}
