package mapping

import (
	"github.com/SscSPs/ledger_engine/internal/core/domain"
	"github.com/SscSPs/ledger_engine/internal/models"
)

// ToModelClosingEntry splits a domain ClosingEntry into its header and line rows.
func ToModelClosingEntry(d domain.ClosingEntry) (models.ClosingEntry, []models.ClosingEntryLine) {
	lines := make([]models.ClosingEntryLine, len(d.Lines))
	for i, l := range d.Lines {
		lines[i] = models.ClosingEntryLine{
			ClosingEntryID: d.ClosingEntryID,
			AccountID:      l.AccountID,
			UnitID:         l.UnitID,
			Activity:       string(l.Activity),
			TxType:         string(l.TxType),
			Balance:        l.Balance,
		}
	}
	return models.ClosingEntry{
		ClosingEntryID: d.ClosingEntryID,
		EntityID:       d.EntityID,
		FiscalYear:     d.FiscalYear,
		ClosingDate:    d.ClosingDate,
		IsPosted:       d.IsPosted,
		AuditFields:    ToModelAuditFields(d.AuditFields),
	}, lines
}

// ToDomainClosingEntry joins header and line rows into a domain ClosingEntry.
func ToDomainClosingEntry(m models.ClosingEntry, ls []models.ClosingEntryLine) domain.ClosingEntry {
	d := domain.ClosingEntry{
		ClosingEntryID: m.ClosingEntryID,
		EntityID:       m.EntityID,
		FiscalYear:     m.FiscalYear,
		ClosingDate:    domain.DateOf(m.ClosingDate),
		IsPosted:       m.IsPosted,
		AuditFields:    ToDomainAuditFields(m.AuditFields),
	}
	for _, l := range ls {
		d.Lines = append(d.Lines, ToDomainClosingEntryLine(l))
	}
	return d
}

// ToDomainClosingEntryLine converts a model line to a domain line.
func ToDomainClosingEntryLine(m models.ClosingEntryLine) domain.ClosingEntryLine {
	return domain.ClosingEntryLine{
		AccountID: m.AccountID,
		UnitID:    m.UnitID,
		Activity:  domain.Activity(m.Activity),
		TxType:    domain.TransactionType(m.TxType),
		Balance:   m.Balance,
	}
}
