package services

import (
	"context"
	"log/slog"
	"strings"
	"time"

	"github.com/SscSPs/bizledger/internal/apperrors"
	"github.com/SscSPs/bizledger/internal/core/domain"
	"github.com/SscSPs/bizledger/internal/dto"
	"github.com/SscSPs/bizledger/internal/utils/pagination"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

func (s *inventoryService) CreateProduct(ctx context.Context, workplaceID string, req dto.CreateProductRequest, userID string) (*domain.Product, error) {
	if err := s.AuthorizeUser(ctx, userID, workplaceID, domain.RoleMember); err != nil {
		return nil, err
	}

	sku := strings.TrimSpace(req.SKU)
	if sku == "" {
		return nil, apperrors.NewValidationError("sku is required")
	}
	if req.ReorderPoint.IsNegative() {
		return nil, apperrors.NewValidationError("reorder point cannot be negative")
	}

	track := true
	if req.TrackInventory != nil {
		track = *req.TrackInventory
	}

	product := domain.Product{
		ProductID:      uuid.NewString(),
		WorkplaceID:    workplaceID,
		SKU:            sku,
		Name:           req.Name,
		TrackInventory: track,
		QuantityOnHand: decimal.Zero,
		CostPrice:      decimal.Zero,
		ReorderPoint:   req.ReorderPoint,
		AuditFields:    domain.NewAuditFields(userID, time.Now().UTC()),
	}

	if err := s.productRepo.SaveProduct(ctx, product); err != nil {
		s.LogError(ctx, err, "Failed to save product",
			slog.String("workplace_id", workplaceID),
			slog.String("sku", sku))
		return nil, err
	}

	s.LogInfo(ctx, "Product created successfully",
		slog.String("product_id", product.ProductID),
		slog.String("workplace_id", workplaceID))
	return &product, nil
}

// GetProduct returns the product and its per-location stock.
func (s *inventoryService) GetProduct(ctx context.Context, workplaceID, productID, userID string) (*domain.Product, []domain.ProductStockLocation, error) {
	if err := s.AuthorizeUser(ctx, userID, workplaceID, domain.RoleReadOnly); err != nil {
		return nil, nil, err
	}

	product, err := s.productRepo.FindProductByID(ctx, workplaceID, productID)
	if err != nil {
		return nil, nil, err
	}
	locations, err := s.productRepo.ListStockLocations(ctx, productID)
	if err != nil {
		s.LogError(ctx, err, "Failed to list stock locations", slog.String("product_id", productID))
		return nil, nil, err
	}
	return product, locations, nil
}

func (s *inventoryService) ListMovements(ctx context.Context, workplaceID, productID, userID string, params dto.ListMovementsParams) (*dto.ListMovementsResponse, error) {
	if err := s.AuthorizeUser(ctx, userID, workplaceID, domain.RoleReadOnly); err != nil {
		return nil, err
	}

	// 404 for products outside the workplace rather than an empty page
	if _, err := s.productRepo.FindProductByID(ctx, workplaceID, productID); err != nil {
		return nil, err
	}

	movements, nextToken, err := s.movementRepo.ListMovementsByProduct(ctx, workplaceID, productID, pagination.ClampLimit(params.Limit), params.NextToken)
	if err != nil {
		s.LogError(ctx, err, "Failed to list movements", slog.String("product_id", productID))
		return nil, err
	}

	return &dto.ListMovementsResponse{
		Movements: dto.ToMovementResponses(movements),
		NextToken: nextToken,
	}, nil
}
