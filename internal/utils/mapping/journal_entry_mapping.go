package mapping

import (
	"github.com/SscSPs/ledger_engine/internal/core/domain"
	"github.com/SscSPs/ledger_engine/internal/models"
)

// ToModelJournalEntry converts a domain JournalEntry to a model JournalEntry
func ToModelJournalEntry(d domain.JournalEntry) models.JournalEntry {
	return models.JournalEntry{
		JournalEntryID: d.JournalEntryID,
		LedgerID:       d.LedgerID,
		EntityID:       d.EntityID,
		UnitID:         d.UnitID,
		ParentID:       d.ParentID,
		Timestamp:      d.Timestamp,
		Description:    d.Description,
		Origin:         d.Origin,
		Activity:       string(d.Activity),
		IsPosted:       d.IsPosted,
		IsLocked:       d.IsLocked,
		AuditFields:    ToModelAuditFields(d.AuditFields),
	}
}

// ToDomainJournalEntry converts a model JournalEntry to a domain JournalEntry
func ToDomainJournalEntry(m models.JournalEntry) domain.JournalEntry {
	return domain.JournalEntry{
		JournalEntryID: m.JournalEntryID,
		LedgerID:       m.LedgerID,
		EntityID:       m.EntityID,
		UnitID:         m.UnitID,
		ParentID:       m.ParentID,
		Timestamp:      m.Timestamp.UTC(),
		Description:    m.Description,
		Origin:         m.Origin,
		Activity:       domain.Activity(m.Activity),
		IsPosted:       m.IsPosted,
		IsLocked:       m.IsLocked,
		AuditFields:    ToDomainAuditFields(m.AuditFields),
	}
}

// ToModelTransaction converts a domain Transaction to a model Transaction
func ToModelTransaction(d domain.Transaction) models.Transaction {
	return models.Transaction{
		TransactionID:  d.TransactionID,
		JournalEntryID: d.JournalEntryID,
		AccountID:      d.AccountID,
		TxType:         string(d.TxType),
		Amount:         d.Amount,
		Description:    d.Description,
		Cleared:        d.Cleared,
		Reconciled:     d.Reconciled,
		AuditFields:    ToModelAuditFields(d.AuditFields),
	}
}

// ToDomainTransaction converts a model Transaction to a domain Transaction
func ToDomainTransaction(m models.Transaction) domain.Transaction {
	return domain.Transaction{
		TransactionID:  m.TransactionID,
		JournalEntryID: m.JournalEntryID,
		AccountID:      m.AccountID,
		TxType:         domain.TransactionType(m.TxType),
		Amount:         m.Amount,
		Description:    m.Description,
		Cleared:        m.Cleared,
		Reconciled:     m.Reconciled,
		AuditFields:    ToDomainAuditFields(m.AuditFields),
	}
}

// ToDomainTransactionSlice converts a slice of model Transactions to a slice of domain Transactions
func ToDomainTransactionSlice(ms []models.Transaction) []domain.Transaction {
	ds := make([]domain.Transaction, len(ms))
	for i, m := range ms {
		ds[i] = ToDomainTransaction(m)
	}
	return ds
}
