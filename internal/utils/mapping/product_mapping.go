package mapping

import (
	"github.com/SscSPs/bizledger/internal/core/domain"
	"github.com/SscSPs/bizledger/internal/models"
)

// ToModelProduct converts a domain Product to a model Product
func ToModelProduct(d domain.Product) models.Product {
	return models.Product{
		ProductID:      d.ProductID,
		WorkplaceID:    d.WorkplaceID,
		SKU:            d.SKU,
		Name:           d.Name,
		TrackInventory: d.TrackInventory,
		QuantityOnHand: d.QuantityOnHand,
		CostPrice:      d.CostPrice,
		ReorderPoint:   d.ReorderPoint,
		AuditFields:    ToModelAuditFields(d.AuditFields),
	}
}

// ToDomainProduct converts a model Product to a domain Product
func ToDomainProduct(m models.Product) domain.Product {
	return domain.Product{
		ProductID:      m.ProductID,
		WorkplaceID:    m.WorkplaceID,
		SKU:            m.SKU,
		Name:           m.Name,
		TrackInventory: m.TrackInventory,
		QuantityOnHand: m.QuantityOnHand,
		CostPrice:      m.CostPrice,
		ReorderPoint:   m.ReorderPoint,
		AuditFields:    ToDomainAuditFields(m.AuditFields),
	}
}

// ToDomainStockLocation converts a model ProductStockLocation to a domain ProductStockLocation
func ToDomainStockLocation(m models.ProductStockLocation) domain.ProductStockLocation {
	return domain.ProductStockLocation{
		ProductID:     m.ProductID,
		LocationID:    m.LocationID,
		WorkplaceID:   m.WorkplaceID,
		Quantity:      m.Quantity,
		LastUpdatedAt: m.LastUpdatedAt,
		LastUpdatedBy: m.LastUpdatedBy,
	}
}

// ToModelMovement converts a domain InventoryMovement to a model InventoryMovement
func ToModelMovement(d domain.InventoryMovement) models.InventoryMovement {
	return models.InventoryMovement{
		MovementID:    d.MovementID,
		WorkplaceID:   d.WorkplaceID,
		ProductID:     d.ProductID,
		MovementType:  string(d.MovementType),
		Quantity:      d.Quantity,
		UnitCost:      d.UnitCost,
		TotalCost:     d.TotalCost,
		CostBefore:    d.CostBefore,
		ReferenceType: d.ReferenceType,
		ReferenceID:   d.ReferenceID,
		BillLineID:    d.BillLineID,
		LocationID:    d.LocationID,
		CreatedAt:     d.CreatedAt,
		CreatedBy:     d.CreatedBy,
	}
}

// ToDomainMovement converts a model InventoryMovement to a domain InventoryMovement
func ToDomainMovement(m models.InventoryMovement) domain.InventoryMovement {
	return domain.InventoryMovement{
		MovementID:    m.MovementID,
		WorkplaceID:   m.WorkplaceID,
		ProductID:     m.ProductID,
		MovementType:  domain.MovementType(m.MovementType),
		Quantity:      m.Quantity,
		UnitCost:      m.UnitCost,
		TotalCost:     m.TotalCost,
		CostBefore:    m.CostBefore,
		ReferenceType: m.ReferenceType,
		ReferenceID:   m.ReferenceID,
		BillLineID:    m.BillLineID,
		LocationID:    m.LocationID,
		CreatedAt:     m.CreatedAt,
		CreatedBy:     m.CreatedBy,
	}
}

// ToDomainMovementSlice converts a slice of model InventoryMovements to a slice of domain InventoryMovements
func ToDomainMovementSlice(ms []models.InventoryMovement) []domain.InventoryMovement {
	ds := make([]domain.InventoryMovement, len(ms))
	for i, m := range ms {
		ds[i] = ToDomainMovement(m)
	}
	return ds
}
