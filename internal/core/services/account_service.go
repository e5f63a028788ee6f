package services

import (
	"context"
	"log/slog"
	"strings"
	"time"

	"github.com/SscSPs/bizledger/internal/apperrors"
	"github.com/SscSPs/bizledger/internal/core/domain"
	portsrepo "github.com/SscSPs/bizledger/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/bizledger/internal/core/ports/services"
	"github.com/SscSPs/bizledger/internal/dto"
	"github.com/SscSPs/bizledger/internal/utils/pagination"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// accountService implements the AccountSvcFacade interface
type accountService struct {
	BaseService
	accountRepo portsrepo.AccountRepositoryFacade
}

// AccountServiceOption is a functional option for configuring the account service
type AccountServiceOption func(*accountService)

// WithAccountWorkplaceAuthorizer adds workplace authorizer dependency
func WithAccountWorkplaceAuthorizer(authorizer portssvc.WorkplaceAuthorizerSvc) AccountServiceOption {
	return func(s *accountService) {
		s.WorkplaceAuthorizer = authorizer
	}
}

// NewAccountService creates a new account service with the provided options
func NewAccountService(repo portsrepo.AccountRepositoryFacade, options ...AccountServiceOption) portssvc.AccountSvcFacade {
	svc := &accountService{accountRepo: repo}
	for _, option := range options {
		option(svc)
	}
	return svc
}

// Ensure accountService implements the AccountSvcFacade interface
var _ portssvc.AccountSvcFacade = (*accountService)(nil)

func (s *accountService) CreateAccount(ctx context.Context, workplaceID string, req dto.CreateAccountRequest, userID string) (*domain.Account, error) {
	if err := s.AuthorizeUser(ctx, userID, workplaceID, domain.RoleMember); err != nil {
		return nil, err
	}

	if !req.AccountType.IsValid() {
		return nil, apperrors.NewValidationError("invalid account type " + string(req.AccountType))
	}
	cfid := strings.TrimSpace(req.CFID)
	if cfid == "" {
		return nil, apperrors.NewValidationError("account code is required")
	}

	account := domain.Account{
		AccountID:       uuid.NewString(),
		WorkplaceID:     workplaceID,
		CFID:            cfid,
		Name:            req.Name,
		AccountType:     req.AccountType,
		CurrencyCode:    strings.ToUpper(req.CurrencyCode),
		ParentAccountID: req.ParentAccountID,
		Description:     req.Description,
		IsActive:        true,
		Balance:         decimal.Zero,
		AuditFields:     domain.NewAuditFields(userID, time.Now().UTC()),
	}

	if err := s.accountRepo.SaveAccount(ctx, account); err != nil {
		s.LogError(ctx, err, "Failed to save account",
			slog.String("workplace_id", workplaceID),
			slog.String("cfid", cfid))
		return nil, err
	}

	s.LogInfo(ctx, "Account created successfully",
		slog.String("account_id", account.AccountID),
		slog.String("workplace_id", workplaceID))
	return &account, nil
}

func (s *accountService) GetAccountByID(ctx context.Context, workplaceID, accountID, userID string) (*domain.Account, error) {
	if err := s.AuthorizeUser(ctx, userID, workplaceID, domain.RoleReadOnly); err != nil {
		return nil, err
	}
	return s.accountRepo.FindAccountByID(ctx, workplaceID, accountID)
}

func (s *accountService) ListAccounts(ctx context.Context, workplaceID, userID string, params dto.ListAccountsParams) ([]domain.Account, error) {
	if err := s.AuthorizeUser(ctx, userID, workplaceID, domain.RoleReadOnly); err != nil {
		return nil, err
	}
	accounts, err := s.accountRepo.ListAccounts(ctx, workplaceID, pagination.ClampLimit(params.Limit), params.Offset)
	if err != nil {
		s.LogError(ctx, err, "Failed to list accounts", slog.String("workplace_id", workplaceID))
		return nil, err
	}
	if accounts == nil {
		return []domain.Account{}, nil
	}
	return accounts, nil
}
