package dto

import (
	"time"

	"github.com/SscSPs/bizledger/internal/core/domain"
	"github.com/shopspring/decimal"
)

// CreateProductRequest defines the data needed to create a product.
type CreateProductRequest struct {
	SKU            string          `json:"sku" binding:"required,max=64"`
	Name           string          `json:"name" binding:"required"`
	TrackInventory *bool           `json:"trackInventory"`
	ReorderPoint   decimal.Decimal `json:"reorderPoint"`
}

// StockLocationResponse is a product's quantity at one location.
type StockLocationResponse struct {
	LocationID string          `json:"locationID"`
	Quantity   decimal.Decimal `json:"quantity"`
}

// ProductResponse defines the data returned for a product.
type ProductResponse struct {
	ProductID         string                  `json:"productID"`
	SKU               string                  `json:"sku"`
	Name              string                  `json:"name"`
	TrackInventory    bool                    `json:"trackInventory"`
	QuantityOnHand    decimal.Decimal         `json:"quantityOnHand"`
	CostPrice         decimal.Decimal         `json:"costPrice"`
	ReorderPoint      decimal.Decimal         `json:"reorderPoint"`
	BelowReorderPoint bool                    `json:"belowReorderPoint"`
	Locations         []StockLocationResponse `json:"locations,omitempty"`
	CreatedAt         time.Time               `json:"createdAt"`
	LastUpdatedAt     time.Time               `json:"lastUpdatedAt"`
}

// ToProductResponse converts a domain.Product (and optional locations) to DTO.
func ToProductResponse(p *domain.Product, locations []domain.ProductStockLocation) ProductResponse {
	var locs []StockLocationResponse
	for _, l := range locations {
		locs = append(locs, StockLocationResponse{LocationID: l.LocationID, Quantity: l.Quantity})
	}
	return ProductResponse{
		ProductID:         p.ProductID,
		SKU:               p.SKU,
		Name:              p.Name,
		TrackInventory:    p.TrackInventory,
		QuantityOnHand:    p.QuantityOnHand,
		CostPrice:         p.CostPrice,
		ReorderPoint:      p.ReorderPoint,
		BelowReorderPoint: p.BelowReorderPoint(),
		Locations:         locs,
		CreatedAt:         p.CreatedAt,
		LastUpdatedAt:     p.LastUpdatedAt,
	}
}

// ListMovementsParams holds the query parameters for listing a product's movements.
type ListMovementsParams struct {
	Limit     int     `form:"limit" binding:"omitempty,min=1,max=200"`
	NextToken *string `form:"nextToken"`
}

// MovementResponse defines the data returned for an inventory movement.
type MovementResponse struct {
	MovementID    string              `json:"movementID"`
	MovementType  domain.MovementType `json:"movementType"`
	Quantity      decimal.Decimal     `json:"quantity"`
	UnitCost      decimal.Decimal     `json:"unitCost"`
	TotalCost     decimal.Decimal     `json:"totalCost"`
	ReferenceType string              `json:"referenceType"`
	ReferenceID   string              `json:"referenceID"`
	LocationID    *string             `json:"locationID,omitempty"`
	CreatedAt     time.Time           `json:"createdAt"`
	CreatedBy     string              `json:"createdBy"`
}

// ToMovementResponses converts movements to DTOs.
func ToMovementResponses(ms []domain.InventoryMovement) []MovementResponse {
	out := make([]MovementResponse, len(ms))
	for i, m := range ms {
		out[i] = MovementResponse{
			MovementID:    m.MovementID,
			MovementType:  m.MovementType,
			Quantity:      m.Quantity,
			UnitCost:      m.UnitCost,
			TotalCost:     m.TotalCost,
			ReferenceType: m.ReferenceType,
			ReferenceID:   m.ReferenceID,
			LocationID:    m.LocationID,
			CreatedAt:     m.CreatedAt,
			CreatedBy:     m.CreatedBy,
		}
	}
	return out
}

// ListMovementsResponse wraps a page of movements.
type ListMovementsResponse struct {
	Movements []MovementResponse `json:"movements"`
	NextToken *string            `json:"nextToken,omitempty"`
}
