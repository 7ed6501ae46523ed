package mapping

import (
	"github.com/SscSPs/ledger_engine/internal/core/domain"
	"github.com/SscSPs/ledger_engine/internal/models"
)

// ToModelAccount converts a domain Account to a model Account
func ToModelAccount(d domain.Account) models.Account {
	return models.Account{
		AccountID:       d.AccountID,
		EntityID:        d.EntityID,
		ChartSlug:       d.ChartSlug,
		Code:            d.Code,
		Name:            d.Name,
		Role:            string(d.Role),
		BalanceType:     string(d.BalanceType),
		ParentAccountID: d.ParentAccountID,
		Path:            d.Path,
		Depth:           d.Depth,
		IsActive:        d.IsActive,
		IsLocked:        d.IsLocked,
		AuditFields:     ToModelAuditFields(d.AuditFields),
	}
}

// ToDomainAccount converts a model Account to a domain Account
func ToDomainAccount(m models.Account) domain.Account {
	return domain.Account{
		AccountID:       m.AccountID,
		EntityID:        m.EntityID,
		ChartSlug:       m.ChartSlug,
		Code:            m.Code,
		Name:            m.Name,
		Role:            domain.Role(m.Role),
		BalanceType:     domain.TransactionType(m.BalanceType),
		ParentAccountID: m.ParentAccountID,
		Path:            m.Path,
		Depth:           m.Depth,
		IsActive:        m.IsActive,
		IsLocked:        m.IsLocked,
		AuditFields:     ToDomainAuditFields(m.AuditFields),
	}
}

// ToDomainAccountSlice converts a slice of model Accounts to a slice of domain Accounts
func ToDomainAccountSlice(ms []models.Account) []domain.Account {
	ds := make([]domain.Account, len(ms))
	for i, m := range ms {
		ds[i] = ToDomainAccount(m)
	}
	return ds
}
