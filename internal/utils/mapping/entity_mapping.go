package mapping

import (
	"github.com/SscSPs/ledger_engine/internal/core/domain"
	"github.com/SscSPs/ledger_engine/internal/models"
)

// ToModelEntity converts a domain Entity to a model Entity
func ToModelEntity(d domain.Entity) models.Entity {
	return models.Entity{
		EntityID:        d.EntityID,
		Name:            d.Name,
		Slug:            d.Slug,
		ChartSlug:       d.ChartSlug,
		LastClosingDate: d.LastClosingDate,
		AuditFields:     ToModelAuditFields(d.AuditFields),
	}
}

// ToDomainEntity converts a model Entity to a domain Entity
func ToDomainEntity(m models.Entity) domain.Entity {
	return domain.Entity{
		EntityID:        m.EntityID,
		Name:            m.Name,
		Slug:            m.Slug,
		ChartSlug:       m.ChartSlug,
		LastClosingDate: m.LastClosingDate,
		AuditFields:     ToDomainAuditFields(m.AuditFields),
	}
}

// ToModelUnit converts a domain Unit to a model Unit
func ToModelUnit(d domain.Unit) models.Unit {
	return models.Unit{
		UnitID:      d.UnitID,
		EntityID:    d.EntityID,
		Name:        d.Name,
		Slug:        d.Slug,
		AuditFields: ToModelAuditFields(d.AuditFields),
	}
}

// ToDomainUnit converts a model Unit to a domain Unit
func ToDomainUnit(m models.Unit) domain.Unit {
	return domain.Unit{
		UnitID:      m.UnitID,
		EntityID:    m.EntityID,
		Name:        m.Name,
		Slug:        m.Slug,
		AuditFields: ToDomainAuditFields(m.AuditFields),
	}
}
