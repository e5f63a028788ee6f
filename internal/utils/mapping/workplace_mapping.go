package mapping

import (
	"github.com/SscSPs/bizledger/internal/core/domain"
	"github.com/SscSPs/bizledger/internal/models"
)

// ToDomainWorkplace converts a model Workplace to a domain Workplace
func ToDomainWorkplace(m models.Workplace) domain.Workplace {
	return domain.Workplace{
		WorkplaceID:         m.WorkplaceID,
		Name:                m.Name,
		Description:         m.Description,
		DefaultCurrencyCode: m.DefaultCurrencyCode,
		IsActive:            m.IsActive,
		AuditFields:         ToDomainAuditFields(m.AuditFields),
	}
}

// ToDomainWorkplaceSlice converts a slice of model Workplaces to a slice of domain Workplaces
func ToDomainWorkplaceSlice(ms []models.Workplace) []domain.Workplace {
	ds := make([]domain.Workplace, len(ms))
	for i, m := range ms {
		ds[i] = ToDomainWorkplace(m)
	}
	return ds
}
