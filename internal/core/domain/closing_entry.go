package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// ClosingEntry is a checkpoint of cumulative raw balances for an entity as of ClosingDate.
// Lines hold the same raw sums phase one aggregation produces, so a checkpoint can
// stand in for every transaction on or before its date.
type ClosingEntry struct {
	ClosingEntryID string             `json:"closingEntryID"`
	EntityID       string             `json:"entityID"`
	FiscalYear     int                `json:"fiscalYear"`
	ClosingDate    time.Time          `json:"closingDate"`
	IsPosted       bool               `json:"isPosted"`
	Lines          []ClosingEntryLine `json:"lines,omitempty"`
	AuditFields
}

// ClosingEntryLine is one (account, unit, activity, tx type) cumulative sum.
type ClosingEntryLine struct {
	AccountID string          `json:"accountID"`
	UnitID    string          `json:"unitID,omitempty"`
	Activity  Activity        `json:"activity,omitempty"`
	TxType    TransactionType `json:"txType"`
	Balance   decimal.Decimal `json:"balance"`
}

// AsAggregateRow converts the line into a phase one row.
func (l ClosingEntryLine) AsAggregateRow() AggregateRow {
	return AggregateRow{
		AccountID: l.AccountID,
		UnitID:    l.UnitID,
		Activity:  l.Activity,
		TxType:    l.TxType,
		Balance:   l.Balance,
	}
}
