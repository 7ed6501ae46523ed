package mapping

import (
	"github.com/SscSPs/ledger_engine/internal/core/domain"
	"github.com/SscSPs/ledger_engine/internal/models"
)

// ToModelLedger converts a domain Ledger to a model Ledger
func ToModelLedger(d domain.Ledger) models.Ledger {
	return models.Ledger{
		LedgerID:    d.LedgerID,
		EntityID:    d.EntityID,
		Name:        d.Name,
		ExternalID:  d.ExternalID,
		IsPosted:    d.IsPosted,
		IsLocked:    d.IsLocked,
		AuditFields: ToModelAuditFields(d.AuditFields),
	}
}

// ToDomainLedger converts a model Ledger to a domain Ledger
func ToDomainLedger(m models.Ledger) domain.Ledger {
	return domain.Ledger{
		LedgerID:    m.LedgerID,
		EntityID:    m.EntityID,
		Name:        m.Name,
		ExternalID:  m.ExternalID,
		IsPosted:    m.IsPosted,
		IsLocked:    m.IsLocked,
		AuditFields: ToDomainAuditFields(m.AuditFields),
	}
}
