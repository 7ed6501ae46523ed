package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// ClosingEntry is the header row of a closing checkpoint.
type ClosingEntry struct {
	ClosingEntryID string    `db:"closing_entry_id"`
	EntityID       string    `db:"entity_id"`
	FiscalYear     int       `db:"fiscal_year"`
	ClosingDate    time.Time `db:"closing_date"`
	IsPosted       bool      `db:"is_posted"`
	AuditFields
}

// ClosingEntryLine holds one cumulative balance of a closing entry.
type ClosingEntryLine struct {
	ClosingEntryID string          `db:"closing_entry_id"`
	AccountID      string          `db:"account_id"`
	UnitID         string          `db:"unit_id"`  // Nullable
	Activity       string          `db:"activity"` // Nullable
	TxType         string          `db:"tx_type"`
	Balance        decimal.Decimal `db:"balance"`
}
